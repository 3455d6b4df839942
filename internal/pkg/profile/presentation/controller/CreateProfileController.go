package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	profile "recovery-chat/internal/pkg/profile/application/domain"
	"recovery-chat/internal/pkg/profile/application/usecase"
)

// CreateProfileController handles POST /profiles
type CreateProfileController struct {
	UC      *usecase.CreateProfileUseCase
	Timeout time.Duration
}

func NewCreateProfileController(uc *usecase.CreateProfileUseCase, timeout time.Duration) *CreateProfileController {
	return &CreateProfileController{UC: uc, Timeout: timeout}
}

type createProfileRequest struct {
	UserID    string  `json:"userId" binding:"required"`
	Username  *string `json:"username"`
	FullName  *string `json:"fullName"`
	UserType  string  `json:"userType" binding:"required"`
	AvatarURL *string `json:"avatarUrl"`
}

func (h *CreateProfileController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req createProfileRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid profile data", "details": err.Error()})
			return
		}

		ctx, cancel := requestContext(c, h.Timeout)
		defer cancel()
		p, err := h.UC.Execute(ctx, profile.Profile{
			UserID:    req.UserID,
			Username:  req.Username,
			FullName:  req.FullName,
			UserType:  profile.UserType(req.UserType),
			AvatarURL: req.AvatarURL,
		})
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, p)
	}
}
