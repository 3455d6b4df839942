package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	profile "recovery-chat/internal/pkg/profile/application/domain"
	"recovery-chat/internal/pkg/profile/application/usecase"
)

// UpdateProfileController handles PUT /profiles/:userId as a partial update.
type UpdateProfileController struct {
	UC      *usecase.UpdateProfileUseCase
	Timeout time.Duration
}

func NewUpdateProfileController(uc *usecase.UpdateProfileUseCase, timeout time.Duration) *UpdateProfileController {
	return &UpdateProfileController{UC: uc, Timeout: timeout}
}

type updateProfileRequest struct {
	Username  *string `json:"username"`
	FullName  *string `json:"fullName"`
	UserType  *string `json:"userType"`
	AvatarURL *string `json:"avatarUrl"`
}

func (h *UpdateProfileController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req updateProfileRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid profile data", "details": err.Error()})
			return
		}

		changes := profile.ProfileChanges{Username: req.Username, FullName: req.FullName, AvatarURL: req.AvatarURL}
		if req.UserType != nil {
			ut := profile.UserType(*req.UserType)
			changes.UserType = &ut
		}

		ctx, cancel := requestContext(c, h.Timeout)
		defer cancel()
		p, err := h.UC.Execute(ctx, c.Param("userId"), changes)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, p)
	}
}
