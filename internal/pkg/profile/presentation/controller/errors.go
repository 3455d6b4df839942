package controller

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	profile "recovery-chat/internal/pkg/profile/application/domain"
)

func statusFor(err error) int {
	switch {
	case errors.Is(err, profile.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, profile.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, profile.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, profile.ErrUnauthenticated):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

func respondError(c *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		_ = c.Error(err)
		c.JSON(status, gin.H{"error": "unexpected persistence error"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func requestContext(c *gin.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return context.WithTimeout(c.Request.Context(), timeout)
}
