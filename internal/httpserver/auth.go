package httpserver

import (
	"net/http"

	authsvc "tailorshop/internal/service/auth"

	"github.com/gin-gonic/gin"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    int    `json:"expiresIn"`
}

func signupHandler(auth AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req authsvc.SignupInput
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "invalid request body")
			return
		}
		op, err := auth.Signup(c.Request.Context(), req)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, op)
	}
}

func loginHandler(auth AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req loginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "invalid request body")
			return
		}
		op, access, refresh, err := auth.Login(c.Request.Context(), req.Email, req.Password)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"operator": op,
			"token": tokenResponse{
				AccessToken:  access,
				RefreshToken: refresh,
				ExpiresIn:    auth.AccessTTLSeconds(),
			},
		})
	}
}

func meHandler(c *gin.Context) {
	c.JSON(http.StatusOK, currentOperator(c))
}
