package controller

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"recovery-chat/internal/infrastructure/realtime"
	chat "recovery-chat/internal/pkg/chat/application/domain"
	"recovery-chat/internal/pkg/chat/application/usecase"
	"recovery-chat/internal/pkg/chat/delivery"
)

// ChatSocketController handles the websocket endpoint for realtime chat traffic.
// Messages sent over the socket go through the same use case as POST /messages,
// so the room fan-out happens in the notifier, not here.
type ChatSocketController struct {
	router          *realtime.Router
	sendMessageUC   *usecase.SendMessageUseCase
	joinRoomUC      *usecase.JoinRoomUseCase
	logger          *zap.Logger
	inflightTimeout time.Duration
}

func NewChatSocketController(router *realtime.Router, send *usecase.SendMessageUseCase, join *usecase.JoinRoomUseCase, logger *zap.Logger, timeout time.Duration) *ChatSocketController {
	if logger == nil {
		logger = zap.NewNop()
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &ChatSocketController{
		router:          router,
		sendMessageUC:   send,
		joinRoomUC:      join,
		logger:          logger,
		inflightTimeout: timeout,
	}
}

var wsUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Allow all origins for now; plug a proper checker when auth is added.
		return true
	},
}

type inboundFrame struct {
	Type       string `json:"type"`
	ChatRoomID string `json:"chatRoomId,omitempty"`
	Content    string `json:"content,omitempty"`
}

type errorFrame struct {
	Type  string `json:"type"`
	Code  string `json:"code"`
	Error string `json:"error"`
}

type ackFrame struct {
	Type       string `json:"type"`
	ChatRoomID string `json:"chatRoomId,omitempty"`
	UserID     string `json:"userId,omitempty"`
}

const (
	defaultReadTimeout = 60 * time.Second
	maxFrameBytes      = 64 << 10
)

// Handle upgrades HTTP connections to websocket and processes frames until the client disconnects.
func (ctl *ChatSocketController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.Query("user_id")
		if userID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "user_id is required"})
			return
		}

		ws, err := wsUpgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			// Upgrade already wrote the response
			ctl.logger.Debug("websocket upgrade failed", zap.Error(err))
			return
		}

		conn := realtime.NewConnection(userID, ws)
		ctl.router.Attach(conn)
		defer func() {
			ctl.router.Detach(conn)
			conn.Close(websocket.CloseNormalClosure, "session closed")
		}()

		ws.SetReadLimit(maxFrameBytes)
		_ = ws.SetReadDeadline(time.Now().Add(defaultReadTimeout))
		ws.SetPongHandler(func(string) error {
			return ws.SetReadDeadline(time.Now().Add(defaultReadTimeout))
		})

		ctl.reply(conn, ackFrame{Type: delivery.FrameConnected, UserID: userID})

		for {
			_, data, err := ws.ReadMessage()
			if err != nil {
				if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway, websocket.CloseNoStatusReceived) &&
					!errors.Is(err, websocket.ErrCloseSent) {
					ctl.logger.Debug("websocket read failed", zap.String("user_id", userID), zap.Error(err))
				}
				return
			}

			var frame inboundFrame
			if err := json.Unmarshal(data, &frame); err != nil {
				ctl.replyError(conn, "bad_request", "invalid payload")
				continue
			}

			switch frame.Type {
			case "join":
				ctl.handleJoin(c.Request.Context(), conn, frame)
			case "leave":
				ctl.handleLeave(conn, frame)
			case "message":
				ctl.handleMessage(c.Request.Context(), conn, frame)
			default:
				ctl.replyError(conn, "unsupported_type", "unknown frame type")
			}
		}
	}
}

func (ctl *ChatSocketController) handleJoin(parent context.Context, conn *realtime.Connection, frame inboundFrame) {
	ctx, cancel := context.WithTimeout(parent, ctl.inflightTimeout)
	defer cancel()

	err := ctl.joinRoomUC.Execute(ctx, usecase.JoinRoomInput{ChatRoomID: frame.ChatRoomID, UserID: conn.UserID})
	if err != nil {
		ctl.handleUseCaseError(conn, err)
		return
	}

	ctl.router.Join(frame.ChatRoomID, conn)
	ctl.reply(conn, ackFrame{Type: delivery.FrameJoined, ChatRoomID: frame.ChatRoomID})
}

func (ctl *ChatSocketController) handleLeave(conn *realtime.Connection, frame inboundFrame) {
	if frame.ChatRoomID == "" {
		ctl.replyError(conn, "bad_request", "chatRoomId is required")
		return
	}
	ctl.router.Leave(frame.ChatRoomID, conn)
	ctl.reply(conn, ackFrame{Type: delivery.FrameLeft, ChatRoomID: frame.ChatRoomID})
}

func (ctl *ChatSocketController) handleMessage(parent context.Context, conn *realtime.Connection, frame inboundFrame) {
	ctx, cancel := context.WithTimeout(parent, ctl.inflightTimeout)
	defer cancel()

	msg, err := ctl.sendMessageUC.Execute(ctx, usecase.SendMessageInput{
		ChatRoomID: frame.ChatRoomID,
		SenderID:   conn.UserID,
		Content:    frame.Content,
	})
	if err != nil {
		ctl.handleUseCaseError(conn, err)
		return
	}

	payload, err := delivery.EncodeMessage(delivery.FrameSent, *msg)
	if err != nil {
		ctl.replyError(conn, "internal_error", "failed to encode message")
		return
	}
	// the sender's other tabs and devices see the message too, joined or not
	ctl.router.NotifyUser(conn.UserID, payload)
}

func (ctl *ChatSocketController) handleUseCaseError(conn *realtime.Connection, err error) {
	switch {
	case errors.Is(err, chat.ErrNotAParticipant):
		ctl.replyError(conn, "forbidden", "user is not a participant in this chat room")
	case errors.Is(err, chat.ErrValidation):
		ctl.replyError(conn, "bad_request", err.Error())
	case errors.Is(err, chat.ErrNotFound):
		ctl.replyError(conn, "not_found", err.Error())
	default:
		ctl.logger.Error("websocket request failed", zap.String("user_id", conn.UserID), zap.Error(err))
		ctl.replyError(conn, "internal_error", "unexpected persistence error")
	}
}

func (ctl *ChatSocketController) reply(conn *realtime.Connection, frame any) {
	if payload, err := json.Marshal(frame); err == nil {
		_ = conn.Send(payload)
	}
}

func (ctl *ChatSocketController) replyError(conn *realtime.Connection, code string, message string) {
	ctl.reply(conn, errorFrame{Type: delivery.FrameError, Code: code, Error: message})
}
