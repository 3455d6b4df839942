package controller

import (
	"github.com/gin-gonic/gin"

	profile "recovery-chat/internal/pkg/profile/application/domain"
)

// CurrentUserController handles GET /auth/me. Sessions are not kept on the
// server, so there is never a current user to report.
type CurrentUserController struct{}

func NewCurrentUserController() *CurrentUserController {
	return &CurrentUserController{}
}

func (h *CurrentUserController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		respondError(c, profile.ErrUnauthenticated)
	}
}
