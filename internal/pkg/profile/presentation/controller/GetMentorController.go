package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"recovery-chat/internal/pkg/profile/application/usecase"
)

// GetMentorController handles GET /mentors/:userId
type GetMentorController struct {
	UC      *usecase.GetMentorUseCase
	Timeout time.Duration
}

func NewGetMentorController(uc *usecase.GetMentorUseCase, timeout time.Duration) *GetMentorController {
	return &GetMentorController{UC: uc, Timeout: timeout}
}

func (h *GetMentorController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := requestContext(c, h.Timeout)
		defer cancel()

		m, err := h.UC.Execute(ctx, c.Param("userId"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, m)
	}
}
