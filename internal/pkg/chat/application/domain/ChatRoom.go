package chat

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// ChatRoom is the durable pairing of one mentor and one patient.
// All fields are immutable once the room exists; (MentorID, PatientID) is unique.
type ChatRoom struct {
	ID        string    `json:"id" db:"id"`
	MentorID  string    `json:"mentorId" db:"mentor_id"`
	PatientID string    `json:"patientId" db:"patient_id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// NewChatRoom validates the pair and returns a room with a fresh id.
// The pairing is directional: swapping mentor and patient is a different room.
func NewChatRoom(mentorID, patientID string, now time.Time) (ChatRoom, error) {
	mentorID = strings.TrimSpace(mentorID)
	patientID = strings.TrimSpace(patientID)
	if mentorID == "" || patientID == "" {
		return ChatRoom{}, ErrMissingParticipant
	}
	if mentorID == patientID {
		return ChatRoom{}, ErrInvalidPair
	}
	return ChatRoom{
		ID:        uuid.NewString(),
		MentorID:  mentorID,
		PatientID: patientID,
		CreatedAt: Timestamp(now),
	}, nil
}

// HasParticipant tells whether userID is the mentor or the patient of this room.
func (r ChatRoom) HasParticipant(userID string) bool {
	return userID != "" && (userID == r.MentorID || userID == r.PatientID)
}

// PostMessage applies the room's rules and returns a message ready to persist.
//
// Validations:
// - Sender must be the room's mentor or patient
// - Content must be non-empty after trimming whitespace
//
// The message gets a time-ordered (v7) id so that messages sharing a
// timestamp still sort in creation order.
func (r ChatRoom) PostMessage(senderID, content string, now time.Time) (Message, error) {
	if senderID == "" {
		return Message{}, ErrMissingSender
	}
	if !r.HasParticipant(senderID) {
		return Message{}, ErrNotAParticipant
	}
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return Message{}, ErrEmptyContent
	}
	return Message{
		ID:         uuid.Must(uuid.NewV7()).String(),
		ChatRoomID: r.ID,
		SenderID:   senderID,
		Content:    trimmed,
		CreatedAt:  Timestamp(now),
	}, nil
}

// Timestamp normalizes t to the precision every supported store keeps
// (microseconds, UTC), so a returned entity equals its persisted row.
func Timestamp(t time.Time) time.Time {
	if t.IsZero() {
		t = time.Now()
	}
	return t.UTC().Truncate(time.Microsecond)
}
