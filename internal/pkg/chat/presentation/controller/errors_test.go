package controller

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	chat "recovery-chat/internal/pkg/chat/application/domain"
	"recovery-chat/internal/pkg/chat/application/usecase"
)

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, statusFor(chat.ErrInvalidPair))
	assert.Equal(t, http.StatusBadRequest, statusFor(chat.ErrNotAParticipant))
	assert.Equal(t, http.StatusBadRequest, statusFor(chat.ErrEmptyContent))
	assert.Equal(t, http.StatusNotFound, statusFor(chat.ErrRoomNotFound))
	assert.Equal(t, http.StatusNotFound, statusFor(fmt.Errorf("resolve mentor: %w", chat.ErrProfileNotFound)))
	assert.Equal(t, http.StatusInternalServerError, statusFor(usecase.ErrStorageUnavailable))
	assert.Equal(t, http.StatusInternalServerError, statusFor(errors.New("boom")))
}

func TestRespondError_HidesInternalCauses(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	respondError(c, fmt.Errorf("%w: dial tcp 10.0.0.7:5432: connection refused", usecase.ErrStorageUnavailable))
	require.Equal(t, http.StatusInternalServerError, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, "unexpected persistence error", body["error"])
	require.Len(t, c.Errors, 1)
}
