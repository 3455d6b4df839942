// Package delivery turns appended messages into realtime frames and hands
// them to whatever fans them out to connected clients.
package delivery

import (
	"encoding/json"

	chat "recovery-chat/internal/pkg/chat/application/domain"
)

// Frame types written to websocket clients.
const (
	FrameConnected = "connected"
	FrameJoined    = "joined"
	FrameLeft      = "left"
	FrameSent      = "sent"
	FrameMessage   = "message"
	FrameError     = "error"
)

// MessageFrame carries a message to every session listening to its room.
type MessageFrame struct {
	Type       string       `json:"type"`
	ChatRoomID string       `json:"chatRoomId"`
	Message    chat.Message `json:"message"`
}

// EncodeMessage renders msg as a frame of the given type.
func EncodeMessage(frameType string, msg chat.Message) ([]byte, error) {
	return json.Marshal(MessageFrame{Type: frameType, ChatRoomID: msg.ChatRoomID, Message: msg})
}
