package httpserver

import (
	"errors"
	"net/http"

	"tailorshop/internal/domain"
	"tailorshop/internal/money"
	authsvc "tailorshop/internal/service/auth"

	"github.com/gin-gonic/gin"
)

type errorResponse struct {
	Error string `json:"error"`
}

// writeError maps domain errors onto HTTP statuses. Ownership failures are
// reported exactly like missing resources so a caller cannot probe which ids
// exist under another account.
func writeError(c *gin.Context, err error) {
	var (
		vErr  *domain.ValidationError
		sErr  *domain.InvalidStateError
		tErr  *domain.InvalidTransitionError
		cmErr *money.CurrencyMismatchError
	)

	switch {
	case errors.As(err, &vErr):
		c.JSON(http.StatusBadRequest, errorResponse{Error: vErr.Error()})
	case errors.As(err, &sErr):
		c.JSON(http.StatusConflict, errorResponse{Error: sErr.Error()})
	case errors.As(err, &tErr):
		c.JSON(http.StatusConflict, errorResponse{Error: tErr.Error()})
	case errors.As(err, &cmErr):
		c.JSON(http.StatusConflict, errorResponse{Error: cmErr.Error()})
	case errors.Is(err, domain.ErrAlreadyExists):
		c.JSON(http.StatusConflict, errorResponse{Error: "already exists"})
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrNotOwner):
		c.JSON(http.StatusNotFound, errorResponse{Error: "not found"})
	case errors.Is(err, authsvc.ErrInvalidCredentials), errors.Is(err, authsvc.ErrInvalidToken):
		c.JSON(http.StatusUnauthorized, errorResponse{Error: "unauthorized"})
	default:
		c.JSON(http.StatusBadGateway, errorResponse{Error: "storage unavailable"})
	}
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, errorResponse{Error: msg})
}
