package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"recovery-chat/internal/pkg/chat/application/usecase"
)

// ListMessagesController handles GET /messages?chatRoomId=[&since=RFC3339]
type ListMessagesController struct {
	UC      *usecase.ListMessagesUseCase
	Timeout time.Duration
}

func NewListMessagesController(uc *usecase.ListMessagesUseCase, timeout time.Duration) *ListMessagesController {
	return &ListMessagesController{UC: uc, Timeout: timeout}
}

func (h *ListMessagesController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		in := usecase.ListMessagesInput{ChatRoomID: c.Query("chatRoomId")}
		if in.ChatRoomID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "chatRoomId is required"})
			return
		}
		if v := c.Query("since"); v != "" {
			since, err := time.Parse(time.RFC3339Nano, v)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "since must be an RFC3339 timestamp"})
				return
			}
			in.Since = &since
		}

		ctx, cancel := requestContext(c, h.Timeout)
		defer cancel()
		msgs, err := h.UC.Execute(ctx, in)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, msgs)
	}
}
