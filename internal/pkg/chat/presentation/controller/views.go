package controller

import (
	chat "recovery-chat/internal/pkg/chat/application/domain"
	"recovery-chat/internal/pkg/chat/application/port"
	"recovery-chat/internal/pkg/chat/application/usecase"
)

type roomView struct {
	chat.ChatRoom
	MentorProfile  *port.Participant `json:"mentorProfile"`
	PatientProfile *port.Participant `json:"patientProfile"`
}

type roomSummaryView struct {
	roomView
	LatestMessage *chat.Message `json:"latestMessage"`
	UnreadCount   int           `json:"unreadCount"`
}

func toRoomView(d usecase.RoomDetails) roomView {
	return roomView{ChatRoom: d.Room, MentorProfile: d.Mentor, PatientProfile: d.Patient}
}

func toRoomSummaryViews(summaries []usecase.RoomSummary) []roomSummaryView {
	out := make([]roomSummaryView, 0, len(summaries))
	for _, s := range summaries {
		out = append(out, roomSummaryView{
			roomView:      toRoomView(s.RoomDetails),
			LatestMessage: s.LatestMessage,
			UnreadCount:   s.UnreadCount,
		})
	}
	return out
}
