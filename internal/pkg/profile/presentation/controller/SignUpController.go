package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"recovery-chat/internal/pkg/profile/application/usecase"
)

// SignUpController handles POST /auth/signup
type SignUpController struct {
	UC      *usecase.SignUpUseCase
	Timeout time.Duration
}

func NewSignUpController(uc *usecase.SignUpUseCase, timeout time.Duration) *SignUpController {
	return &SignUpController{UC: uc, Timeout: timeout}
}

type signUpRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Username string `json:"username"`
	FullName string `json:"fullName"`
	UserType string `json:"userType"`
}

func (h *SignUpController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req signUpRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to create account", "details": err.Error()})
			return
		}

		ctx, cancel := requestContext(c, h.Timeout)
		defer cancel()
		res, err := h.UC.Execute(ctx, usecase.SignUpInput{
			Email:    req.Email,
			Password: req.Password,
			Username: req.Username,
			FullName: req.FullName,
			UserType: req.UserType,
		})
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, res)
	}
}
