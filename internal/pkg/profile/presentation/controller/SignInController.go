package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"recovery-chat/internal/pkg/profile/application/usecase"
)

// SignInController handles POST /auth/signin
type SignInController struct {
	UC      *usecase.SignInUseCase
	Timeout time.Duration
}

func NewSignInController(uc *usecase.SignInUseCase, timeout time.Duration) *SignInController {
	return &SignInController{UC: uc, Timeout: timeout}
}

type signInRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *SignInController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req signInRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication failed"})
			return
		}

		ctx, cancel := requestContext(c, h.Timeout)
		defer cancel()
		res, err := h.UC.Execute(ctx, usecase.SignInInput{Email: req.Email, Username: req.Username, Password: req.Password})
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, res)
	}
}
