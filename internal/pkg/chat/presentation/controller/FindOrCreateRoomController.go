package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"recovery-chat/internal/pkg/chat/application/usecase"
)

// FindOrCreateRoomController handles POST /chat-rooms.
// An existing room answers 200, a freshly created one 201.
type FindOrCreateRoomController struct {
	UC      *usecase.FindOrCreateRoomUseCase
	Timeout time.Duration
}

func NewFindOrCreateRoomController(uc *usecase.FindOrCreateRoomUseCase, timeout time.Duration) *FindOrCreateRoomController {
	return &FindOrCreateRoomController{UC: uc, Timeout: timeout}
}

type findOrCreateRoomRequest struct {
	MentorID  string `json:"mentorId" binding:"required"`
	PatientID string `json:"patientId" binding:"required"`
}

func (h *FindOrCreateRoomController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req findOrCreateRoomRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid chat room data", "details": err.Error()})
			return
		}

		ctx, cancel := requestContext(c, h.Timeout)
		defer cancel()
		room, created, err := h.UC.Execute(ctx, usecase.FindOrCreateRoomInput{MentorID: req.MentorID, PatientID: req.PatientID})
		if err != nil {
			respondError(c, err)
			return
		}

		status := http.StatusOK
		if created {
			status = http.StatusCreated
		}
		c.JSON(status, room)
	}
}
