package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"recovery-chat/internal/pkg/profile/application/usecase"
)

// ListMentorsController handles GET /mentors[?specialization=]
type ListMentorsController struct {
	UC      *usecase.ListMentorsUseCase
	Timeout time.Duration
}

func NewListMentorsController(uc *usecase.ListMentorsUseCase, timeout time.Duration) *ListMentorsController {
	return &ListMentorsController{UC: uc, Timeout: timeout}
}

func (h *ListMentorsController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := requestContext(c, h.Timeout)
		defer cancel()

		mentors, err := h.UC.Execute(ctx, c.Query("specialization"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, mentors)
	}
}
