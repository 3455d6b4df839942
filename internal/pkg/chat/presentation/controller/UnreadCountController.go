package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"recovery-chat/internal/pkg/chat/application/usecase"
)

// UnreadCountController handles GET /chat-rooms/:id/unread?viewerId=
type UnreadCountController struct {
	UC      *usecase.UnreadCountUseCase
	Timeout time.Duration
}

func NewUnreadCountController(uc *usecase.UnreadCountUseCase, timeout time.Duration) *UnreadCountController {
	return &UnreadCountController{UC: uc, Timeout: timeout}
}

func (h *UnreadCountController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		in := usecase.UnreadCountInput{ChatRoomID: c.Param("id"), ViewerID: c.Query("viewerId")}
		if in.ViewerID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "viewerId is required"})
			return
		}

		ctx, cancel := requestContext(c, h.Timeout)
		defer cancel()
		n, err := h.UC.Execute(ctx, in)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"chatRoomId":  in.ChatRoomID,
			"viewerId":    in.ViewerID,
			"unreadCount": n,
		})
	}
}
