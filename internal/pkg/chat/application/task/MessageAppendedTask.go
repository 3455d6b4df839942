package task

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	qport "recovery-chat/internal/infrastructure/queue/port"
	chat "recovery-chat/internal/pkg/chat/application/domain"
	"recovery-chat/internal/pkg/chat/application/port"
)

// MessageAppendedTaskType is the queue task name for fanning out an appended message.
const MessageAppendedTaskType = "chat:message_appended"

const (
	messageAppendedQueue    = "chat"
	messageAppendedRetries  = 3
	messageAppendedTimeout  = 10 * time.Second
	messageAppendedLifetime = time.Minute
)

// MessageAppendedPayload is the JSON payload transported via the queue.
type MessageAppendedPayload struct {
	Message chat.Message `json:"message"`
}

// QueueNotifier enqueues appended messages for the worker pool to fan out.
type QueueNotifier struct {
	client  qport.Client
	timeout time.Duration
}

func NewQueueNotifier(client qport.Client, timeout time.Duration) *QueueNotifier {
	if timeout <= 0 {
		timeout = time.Second
	}
	return &QueueNotifier{client: client, timeout: timeout}
}

var _ port.Notifier = (*QueueNotifier)(nil)

func (n *QueueNotifier) Notify(ctx context.Context, msg chat.Message) error {
	payload, err := json.Marshal(MessageAppendedPayload{Message: msg})
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, n.timeout)
	defer cancel()

	// a frame delivered minutes late is noise; clients re-list on reconnect
	_, err = n.client.Enqueue(ctx, qport.Task{Type: MessageAppendedTaskType, Payload: payload}, qport.EnqueueOption{
		Queue:    messageAppendedQueue,
		MaxRetry: messageAppendedRetries,
		Timeout:  messageAppendedTimeout,
		Deadline: time.Now().Add(messageAppendedLifetime),
	})
	if err != nil {
		return fmt.Errorf("enqueue %s: %w", MessageAppendedTaskType, err)
	}
	return nil
}

// RegisterMessageAppendedTask binds the task handler to the provided server.
// The handler passes the message to notifier, normally a broadcast notifier.
func RegisterMessageAppendedTask(srv qport.Server, notifier port.Notifier, logger *zap.Logger) {
	if logger == nil {
		logger = zap.NewNop()
	}
	srv.Register(MessageAppendedTaskType, func(ctx context.Context, t qport.Task) error {
		var p MessageAppendedPayload
		if err := json.Unmarshal(t.Payload, &p); err != nil {
			return fmt.Errorf("decode %s payload: %v: %w", MessageAppendedTaskType, err, qport.ErrSkipRetry)
		}
		if p.Message.ID == "" || p.Message.ChatRoomID == "" {
			return fmt.Errorf("%s payload without message: %w", MessageAppendedTaskType, qport.ErrSkipRetry)
		}

		if err := notifier.Notify(ctx, p.Message); err != nil {
			// retry/backoff policy is controlled by the adapter/server
			return err
		}
		logger.Debug("message fanned out",
			zap.String("room_id", p.Message.ChatRoomID),
			zap.String("message_id", p.Message.ID),
		)
		return nil
	})
}
