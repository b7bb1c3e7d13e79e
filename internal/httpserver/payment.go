package httpserver

import (
	"net/http"

	paymentsvc "tailorshop/internal/service/payment"

	"github.com/gin-gonic/gin"
)

type reverseRequest struct {
	Note string `json:"note"`
}

func addPaymentHandler(svc PaymentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req paymentsvc.Input
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "invalid request body")
			return
		}
		p, err := svc.Add(c.Request.Context(), currentOperator(c).ID, c.Param("id"), req)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, p)
	}
}

func listPaymentsHandler(svc PaymentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		payments, err := svc.List(c.Request.Context(), currentOperator(c).ID, c.Param("id"))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"payments": payments})
	}
}

func reversePaymentHandler(svc PaymentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req reverseRequest
		// The body is optional; a bare POST reverses with an empty note.
		_ = c.ShouldBindJSON(&req)
		p, err := svc.Reverse(c.Request.Context(), currentOperator(c).ID, c.Param("id"), c.Param("paymentId"), req.Note)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, p)
	}
}
