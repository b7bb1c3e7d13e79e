package httpserver

import (
	"net/http"
	"strings"

	"tailorshop/internal/domain"

	"github.com/gin-gonic/gin"
)

const operatorKey = "operator"

// authMiddleware resolves the Bearer token into an operator and aborts with
// 401 when it cannot.
func authMiddleware(auth AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(token) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, errorResponse{Error: "unauthorized"})
			return
		}
		op, err := auth.LookupByToken(c.Request.Context(), strings.TrimSpace(token))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, errorResponse{Error: "unauthorized"})
			return
		}
		c.Set(operatorKey, op)
		c.Next()
	}
}

// currentOperator returns the operator bound by authMiddleware.
func currentOperator(c *gin.Context) *domain.Operator {
	v, ok := c.Get(operatorKey)
	if !ok {
		return nil
	}
	op, _ := v.(*domain.Operator)
	return op
}
