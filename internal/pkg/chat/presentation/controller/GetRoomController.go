package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"recovery-chat/internal/pkg/chat/application/usecase"
)

// GetRoomController handles GET /chat-rooms/:id
type GetRoomController struct {
	UC      *usecase.GetRoomUseCase
	Timeout time.Duration
}

func NewGetRoomController(uc *usecase.GetRoomUseCase, timeout time.Duration) *GetRoomController {
	return &GetRoomController{UC: uc, Timeout: timeout}
}

func (h *GetRoomController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := requestContext(c, h.Timeout)
		defer cancel()

		details, err := h.UC.Execute(ctx, c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, toRoomView(*details))
	}
}
