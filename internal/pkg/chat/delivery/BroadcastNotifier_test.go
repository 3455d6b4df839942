package delivery

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	chat "recovery-chat/internal/pkg/chat/application/domain"
)

type recordingBroadcaster struct {
	roomID   string
	payload  []byte
	deadline bool
	err      error
}

func (b *recordingBroadcaster) Publish(ctx context.Context, roomID string, payload []byte) error {
	b.roomID = roomID
	b.payload = payload
	_, b.deadline = ctx.Deadline()
	return b.err
}

func sampleMessage() chat.Message {
	return chat.Message{
		ID:         "0190c6a8-0000-7000-8000-000000000001",
		ChatRoomID: "room-1",
		SenderID:   "patient-p",
		Content:    "hello",
		CreatedAt:  time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC),
	}
}

func TestBroadcastNotifier_PublishesMessageFrame(t *testing.T) {
	req := require.New(t)
	b := &recordingBroadcaster{}
	n := NewBroadcastNotifier(b, 0)

	req.NoError(n.Notify(context.Background(), sampleMessage()))
	req.Equal("room-1", b.roomID)
	req.True(b.deadline)

	var frame MessageFrame
	req.NoError(json.Unmarshal(b.payload, &frame))
	req.Equal(FrameMessage, frame.Type)
	req.Equal("room-1", frame.ChatRoomID)
	req.Equal(sampleMessage(), frame.Message)
}

func TestBroadcastNotifier_WrapsPublishErrors(t *testing.T) {
	boom := errors.New("pubsub down")
	n := NewBroadcastNotifier(&recordingBroadcaster{err: boom}, time.Second)

	err := n.Notify(context.Background(), sampleMessage())
	require.ErrorIs(t, err, boom)
	require.Contains(t, err.Error(), "room-1")
}

func TestEncodeMessage_CamelCaseWireFormat(t *testing.T) {
	payload, err := EncodeMessage(FrameSent, sampleMessage())
	require.NoError(t, err)
	require.JSONEq(t, `{
		"type": "sent",
		"chatRoomId": "room-1",
		"message": {
			"id": "0190c6a8-0000-7000-8000-000000000001",
			"chatRoomId": "room-1",
			"senderId": "patient-p",
			"content": "hello",
			"createdAt": "2026-05-01T09:00:00Z"
		}
	}`, string(payload))
}
