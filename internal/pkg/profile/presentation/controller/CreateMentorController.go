package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	profile "recovery-chat/internal/pkg/profile/application/domain"
	"recovery-chat/internal/pkg/profile/application/usecase"
)

// CreateMentorController handles POST /mentors
type CreateMentorController struct {
	UC      *usecase.CreateMentorUseCase
	Timeout time.Duration
}

func NewCreateMentorController(uc *usecase.CreateMentorUseCase, timeout time.Duration) *CreateMentorController {
	return &CreateMentorController{UC: uc, Timeout: timeout}
}

// createMentorRequest leaves isAvailable optional; mentors start available.
type createMentorRequest struct {
	UserID          string  `json:"userId" binding:"required"`
	Specialization  string  `json:"specialization" binding:"required"`
	Bio             *string `json:"bio"`
	ExperienceYears *int    `json:"experienceYears"`
	IsAvailable     *bool   `json:"isAvailable"`
}

func (h *CreateMentorController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req createMentorRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid mentor data", "details": err.Error()})
			return
		}

		available := true
		if req.IsAvailable != nil {
			available = *req.IsAvailable
		}

		ctx, cancel := requestContext(c, h.Timeout)
		defer cancel()
		m, err := h.UC.Execute(ctx, profile.Mentor{
			UserID:          req.UserID,
			Specialization:  req.Specialization,
			Bio:             req.Bio,
			ExperienceYears: req.ExperienceYears,
			IsAvailable:     available,
		})
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, m)
	}
}
