package http

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"recovery-chat/internal/infrastructure/metrics"
	"recovery-chat/internal/infrastructure/realtime"
	"recovery-chat/internal/pkg/chat/application/port"
	"recovery-chat/internal/pkg/chat/application/usecase"
	repository "recovery-chat/internal/pkg/chat/persistence/repository/port"
	"recovery-chat/internal/pkg/chat/presentation/controller"
)

// Deps is everything the chat endpoints need.
type Deps struct {
	Repo           repository.ChatRepository
	Profiles       port.ProfileDirectory
	Notifier       port.Notifier
	Router         *realtime.Router
	Logger         *zap.Logger
	Metrics        *metrics.Chat
	RequestTimeout time.Duration
	StorageTimeout time.Duration
}

// RegisterRoutes registers chat-related HTTP endpoints under the given router group.
// It constructs per-endpoint controllers and binds them directly to routes.
func RegisterRoutes(g *gin.RouterGroup, d Deps) {
	sendUC := usecase.NewSendMessageUseCase(d.Repo, d.Notifier, d.Logger, d.Metrics, d.StorageTimeout)
	timeout := d.RequestTimeout

	findOrCreateCtl := controller.NewFindOrCreateRoomController(usecase.NewFindOrCreateRoomUseCase(d.Repo, d.Profiles, d.Logger, d.Metrics), timeout)
	getRoomCtl := controller.NewGetRoomController(usecase.NewGetRoomUseCase(d.Repo, d.Profiles), timeout)
	listRoomsCtl := controller.NewListRoomsController(usecase.NewListRoomsUseCase(d.Repo, d.Profiles), timeout)
	unreadCtl := controller.NewUnreadCountController(usecase.NewUnreadCountUseCase(d.Repo), timeout)
	listMsgCtl := controller.NewListMessagesController(usecase.NewListMessagesUseCase(d.Repo), timeout)
	sendMsgCtl := controller.NewSendMessageController(sendUC, timeout)

	// POST /api/chat-rooms -> find or create the room of a mentor/patient pair
	g.POST("/chat-rooms", findOrCreateCtl.Handle())

	// GET /api/chat-rooms?mentorId=|patientId= -> dashboard listing
	g.GET("/chat-rooms", listRoomsCtl.Handle())

	// GET /api/chat-rooms/:id -> room with participant profiles
	g.GET("/chat-rooms/:id", getRoomCtl.Handle())

	// GET /api/chat-rooms/:id/unread?viewerId= -> unread counter
	g.GET("/chat-rooms/:id/unread", unreadCtl.Handle())

	// GET /api/messages?chatRoomId= -> room log in order
	g.GET("/messages", listMsgCtl.Handle())

	// POST /api/messages -> append a message
	g.POST("/messages", sendMsgCtl.Handle())

	if d.Router != nil {
		socketCtl := controller.NewChatSocketController(d.Router, sendUC, usecase.NewJoinRoomUseCase(d.Repo), d.Logger, d.StorageTimeout)
		// GET /api/chat/ws -> websocket endpoint for realtime chat
		g.GET("/chat/ws", socketCtl.Handle())
	}
}
