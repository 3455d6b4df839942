package chat

import "time"

// Message is an immutable log entry in a chat room.
// Within a room messages are ordered by (CreatedAt, ID).
type Message struct {
	ID         string    `json:"id" db:"id"`
	ChatRoomID string    `json:"chatRoomId" db:"chat_room_id"`
	SenderID   string    `json:"senderId" db:"sender_id"`
	Content    string    `json:"content" db:"content"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
}

// Before reports whether m sorts before other in a room's log.
func (m Message) Before(other Message) bool {
	if !m.CreatedAt.Equal(other.CreatedAt) {
		return m.CreatedAt.Before(other.CreatedAt)
	}
	return m.ID < other.ID
}
