package app

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"recovery-chat/internal/config"
	"recovery-chat/internal/infrastructure/database"
)

func testConfig(t *testing.T) config.Config {
	t.Helper()
	return config.Config{
		HTTPAddr:        "127.0.0.1:0",
		GinMode:         gin.TestMode,
		DBDriver:        database.DriverSQLite,
		DBURL:           filepath.Join(t.TempDir(), "app.db"),
		RequestTimeout:  3 * time.Second,
		StorageTimeout:  5 * time.Second,
		NotifyTimeout:   time.Second,
		ProfileCacheTTL: time.Minute,
	}
}

func newTestApp(t *testing.T) (*App, *httptest.Server) {
	t.Helper()
	a, err := New(context.Background(), testConfig(t), zaptest.NewLogger(t))
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })

	srv := httptest.NewServer(a.Handler())
	t.Cleanup(srv.Close)
	return a, srv
}

func call(t *testing.T, srv *httptest.Server, method, path string, body any) (int, []byte) {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req, err := http.NewRequest(method, srv.URL+path, r)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, out
}

func TestApp_Health(t *testing.T) {
	req := require.New(t)
	_, srv := newTestApp(t)

	for _, path := range []string{"/", "/healthz"} {
		status, body := call(t, srv, http.MethodGet, path, nil)
		req.Equal(http.StatusOK, status, path)
		req.JSONEq(`{"status":"OK"}`, string(body))
	}
}

func TestApp_MentorPatientConversation(t *testing.T) {
	req := require.New(t)
	_, srv := newTestApp(t)

	status, _ := call(t, srv, http.MethodPost, "/api/profiles", map[string]any{"userId": "m-1", "userType": "mentor", "fullName": "Maya"})
	req.Equal(http.StatusCreated, status)
	status, _ = call(t, srv, http.MethodPost, "/api/profiles", map[string]any{"userId": "p-1", "userType": "patient"})
	req.Equal(http.StatusCreated, status)

	status, body := call(t, srv, http.MethodPost, "/api/chat-rooms", map[string]any{"mentorId": "m-1", "patientId": "p-1"})
	req.Equal(http.StatusCreated, status)
	var room struct {
		ID        string `json:"id"`
		MentorID  string `json:"mentorId"`
		PatientID string `json:"patientId"`
	}
	req.NoError(json.Unmarshal(body, &room))
	req.NotEmpty(room.ID)
	req.Equal("m-1", room.MentorID)
	req.Equal("p-1", room.PatientID)

	status, body = call(t, srv, http.MethodGet, "/api/chat-rooms/"+room.ID, nil)
	req.Equal(http.StatusOK, status)
	var view struct {
		MentorProfile struct {
			FullName string `json:"fullName"`
		} `json:"mentorProfile"`
	}
	req.NoError(json.Unmarshal(body, &view))
	req.Equal("Maya", view.MentorProfile.FullName)

	status, _ = call(t, srv, http.MethodPost, "/api/chat-rooms", map[string]any{"mentorId": "m-1", "patientId": "p-1"})
	req.Equal(http.StatusOK, status)

	for _, m := range []struct{ sender, content string }{{"m-1", "hi"}, {"p-1", "hello"}} {
		status, _ = call(t, srv, http.MethodPost, "/api/messages", map[string]any{"chatRoomId": room.ID, "senderId": m.sender, "content": m.content})
		req.Equal(http.StatusCreated, status)
	}

	status, body = call(t, srv, http.MethodGet, "/api/messages?chatRoomId="+room.ID, nil)
	req.Equal(http.StatusOK, status)
	var msgs []struct {
		SenderID string `json:"senderId"`
		Content  string `json:"content"`
	}
	req.NoError(json.Unmarshal(body, &msgs))
	req.Len(msgs, 2)
	req.Equal("hi", msgs[0].Content)
	req.Equal("hello", msgs[1].Content)

	status, body = call(t, srv, http.MethodGet, "/api/chat-rooms/"+room.ID+"/unread?viewerId=m-1", nil)
	req.Equal(http.StatusOK, status)
	var unread struct {
		UnreadCount int64 `json:"unreadCount"`
	}
	req.NoError(json.Unmarshal(body, &unread))
	req.EqualValues(1, unread.UnreadCount)

	status, body = call(t, srv, http.MethodGet, "/metrics", nil)
	req.Equal(http.StatusOK, status)
	req.Contains(string(body), "recovery_chat_chat_messages_appended_total 2")
	req.Contains(string(body), "recovery_chat_chat_rooms_created_total 1")
}

func TestApp_RoomForUnknownProfileIsNotFound(t *testing.T) {
	_, srv := newTestApp(t)

	status, _ := call(t, srv, http.MethodPost, "/api/chat-rooms", map[string]any{"mentorId": "ghost", "patientId": "nobody"})
	require.Equal(t, http.StatusNotFound, status)
}

func TestNew_RejectsUnknownDriver(t *testing.T) {
	cfg := testConfig(t)
	cfg.DBDriver = "mysql"

	_, err := New(context.Background(), cfg, nil)
	require.ErrorContains(t, err, "unsupported DB_DRIVER")
}

func TestApp_RunStopsOnCancel(t *testing.T) {
	a, err := New(context.Background(), testConfig(t), zaptest.NewLogger(t))
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
