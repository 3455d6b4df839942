package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	chat "recovery-chat/internal/pkg/chat/application/domain"
	"recovery-chat/internal/pkg/chat/application/usecase"
)

// ListRoomsController handles GET /chat-rooms?mentorId= or ?patientId=.
// mentorId wins when both are given.
type ListRoomsController struct {
	UC      *usecase.ListRoomsUseCase
	Timeout time.Duration
}

func NewListRoomsController(uc *usecase.ListRoomsUseCase, timeout time.Duration) *ListRoomsController {
	return &ListRoomsController{UC: uc, Timeout: timeout}
}

func (h *ListRoomsController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		in := usecase.ListRoomsInput{ParticipantID: c.Query("mentorId"), Role: chat.RoleMentor}
		if in.ParticipantID == "" {
			in = usecase.ListRoomsInput{ParticipantID: c.Query("patientId"), Role: chat.RolePatient}
		}
		if in.ParticipantID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "mentorId or patientId is required"})
			return
		}

		ctx, cancel := requestContext(c, h.Timeout)
		defer cancel()
		summaries, err := h.UC.Execute(ctx, in)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, toRoomSummaryViews(summaries))
	}
}
