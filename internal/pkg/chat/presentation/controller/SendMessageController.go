package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"recovery-chat/internal/pkg/chat/application/usecase"
)

// SendMessageController handles POST /messages.
// The message is durable once 201 is returned; live delivery happens afterwards.
type SendMessageController struct {
	UC      *usecase.SendMessageUseCase
	Timeout time.Duration
}

func NewSendMessageController(uc *usecase.SendMessageUseCase, timeout time.Duration) *SendMessageController {
	return &SendMessageController{UC: uc, Timeout: timeout}
}

// sendMessageRequest is the DTO for the HTTP request body.
// Content is checked by the domain so whitespace-only bodies get the same error everywhere.
type sendMessageRequest struct {
	ChatRoomID string `json:"chatRoomId" binding:"required"`
	SenderID   string `json:"senderId" binding:"required"`
	Content    string `json:"content"`
}

func (h *SendMessageController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req sendMessageRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid message data", "details": err.Error()})
			return
		}

		ctx, cancel := requestContext(c, h.Timeout)
		defer cancel()
		msg, err := h.UC.Execute(ctx, usecase.SendMessageInput{
			ChatRoomID: req.ChatRoomID,
			SenderID:   req.SenderID,
			Content:    req.Content,
		})
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, msg)
	}
}
