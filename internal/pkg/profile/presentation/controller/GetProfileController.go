package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"recovery-chat/internal/pkg/profile/application/usecase"
)

// GetProfileController handles GET /profiles/:userId
type GetProfileController struct {
	UC      *usecase.GetProfileUseCase
	Timeout time.Duration
}

func NewGetProfileController(uc *usecase.GetProfileUseCase, timeout time.Duration) *GetProfileController {
	return &GetProfileController{UC: uc, Timeout: timeout}
}

func (h *GetProfileController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := requestContext(c, h.Timeout)
		defer cancel()

		p, err := h.UC.Execute(ctx, c.Param("userId"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, p)
	}
}
