package repository

import (
	"context"
	"time"

	chat "recovery-chat/internal/pkg/chat/application/domain"
)

// ChatRepository defines persistence operations for chat rooms and their message logs.
//
// Adapters report a missing room as chat.ErrRoomNotFound and a duplicate
// (mentor, patient) pair as chat.ErrConflict; anything else is a storage failure.
type ChatRepository interface {
	CreateRoom(ctx context.Context, room chat.ChatRoom) error
	GetRoom(ctx context.Context, roomID string) (chat.ChatRoom, error)
	FindRoomByPair(ctx context.Context, mentorID string, patientID string) (chat.ChatRoom, error)
	// ListRoomsByParticipant returns the rooms where participantID holds role, newest first.
	ListRoomsByParticipant(ctx context.Context, participantID string, role chat.Role) ([]chat.ChatRoom, error)

	SaveMessage(ctx context.Context, m chat.Message) error
	// ListMessages returns the room's messages ordered by (created_at, id).
	// A non-nil since keeps only messages created strictly after it.
	ListMessages(ctx context.Context, roomID string, since *time.Time) ([]chat.Message, error)
	// LatestMessage returns nil when the room has no messages.
	LatestMessage(ctx context.Context, roomID string) (*chat.Message, error)
	CountMessagesNotFrom(ctx context.Context, roomID string, viewerID string) (int, error)
}
