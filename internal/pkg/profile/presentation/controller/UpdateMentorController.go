package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	profile "recovery-chat/internal/pkg/profile/application/domain"
	"recovery-chat/internal/pkg/profile/application/usecase"
)

// UpdateMentorController handles PUT /mentors/:userId as a partial update.
type UpdateMentorController struct {
	UC      *usecase.UpdateMentorUseCase
	Timeout time.Duration
}

func NewUpdateMentorController(uc *usecase.UpdateMentorUseCase, timeout time.Duration) *UpdateMentorController {
	return &UpdateMentorController{UC: uc, Timeout: timeout}
}

type updateMentorRequest struct {
	Specialization  *string `json:"specialization"`
	Bio             *string `json:"bio"`
	ExperienceYears *int    `json:"experienceYears"`
	IsAvailable     *bool   `json:"isAvailable"`
}

func (h *UpdateMentorController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req updateMentorRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid mentor data", "details": err.Error()})
			return
		}

		ctx, cancel := requestContext(c, h.Timeout)
		defer cancel()
		m, err := h.UC.Execute(ctx, c.Param("userId"), profile.MentorChanges{
			Specialization:  req.Specialization,
			Bio:             req.Bio,
			ExperienceYears: req.ExperienceYears,
			IsAvailable:     req.IsAvailable,
		})
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, m)
	}
}
