package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func issueTrackingTokenHandler(svc TrackingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := svc.IssueOrRetrieve(c.Request.Context(), currentOperator(c).ID, c.Param("id"))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"trackingToken": token})
	}
}

func trackHandler(svc TrackingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		view, err := svc.Resolve(c.Request.Context(), c.Param("token"))
		if err != nil {
			// Every resolution failure reads the same from outside.
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, view)
	}
}
