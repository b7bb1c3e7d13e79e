package httpserver

import (
	"net/http"
	"time"

	ordersvc "tailorshop/internal/service/order"

	"github.com/gin-gonic/gin"
)

type statusRequest struct {
	Status string `json:"status"`
}

type readyAtRequest struct {
	ReadyAt *time.Time `json:"readyAt"`
}

type detailsRequest struct {
	Code  string `json:"code"`
	Notes string `json:"notes"`
}

func createOrderHandler(svc OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ordersvc.CreateInput
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "invalid request body")
			return
		}
		o, err := svc.Create(c.Request.Context(), currentOperator(c).ID, req)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, o)
	}
}

func getOrderHandler(svc OrderService, billing BillingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		o, err := svc.Get(c.Request.Context(), currentOperator(c).ID, c.Param("id"))
		if err != nil {
			writeError(c, err)
			return
		}
		totals, err := billing.Compute(c.Request.Context(), o)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"order":        o,
			"totals":       totals,
			"displayTotal": totals.DisplayTotal(),
		})
	}
}

func deleteOrderHandler(svc OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.Delete(c.Request.Context(), currentOperator(c).ID, c.Param("id")); err != nil {
			writeError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

func setStatusHandler(svc OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req statusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "invalid request body")
			return
		}
		o, err := svc.SetStatus(c.Request.Context(), currentOperator(c).ID, c.Param("id"), req.Status)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, o)
	}
}

func setReadyAtHandler(svc OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req readyAtRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "invalid request body")
			return
		}
		if err := svc.SetReadyAt(c.Request.Context(), currentOperator(c).ID, c.Param("id"), req.ReadyAt); err != nil {
			writeError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

func setAdjustmentsHandler(svc OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ordersvc.AdjustmentsInput
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "invalid request body")
			return
		}
		if err := svc.SetAdjustments(c.Request.Context(), currentOperator(c).ID, c.Param("id"), req); err != nil {
			writeError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

func updateDetailsHandler(svc OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req detailsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "invalid request body")
			return
		}
		if err := svc.UpdateDetails(c.Request.Context(), currentOperator(c).ID, c.Param("id"), req.Code, req.Notes); err != nil {
			writeError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

func totalsHandler(svc OrderService, billing BillingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		o, err := svc.Get(c.Request.Context(), currentOperator(c).ID, c.Param("id"))
		if err != nil {
			writeError(c, err)
			return
		}
		totals, err := billing.Compute(c.Request.Context(), o)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"totals":       totals,
			"displayTotal": totals.DisplayTotal(),
		})
	}
}

func addItemHandler(svc OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ordersvc.ItemInput
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "invalid request body")
			return
		}
		item, err := svc.AddItem(c.Request.Context(), currentOperator(c).ID, c.Param("id"), req)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, item)
	}
}

func listItemsHandler(svc OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		items, err := svc.ListItems(c.Request.Context(), currentOperator(c).ID, c.Param("id"))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"items": items})
	}
}

func removeItemHandler(svc OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.RemoveItem(c.Request.Context(), currentOperator(c).ID, c.Param("id"), c.Param("itemId")); err != nil {
			writeError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}
