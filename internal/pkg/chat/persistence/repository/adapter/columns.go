package adapter

import (
	chat "recovery-chat/internal/pkg/chat/application/domain"

	"github.com/google/uuid"
)

// roleColumn maps a role to its chat_rooms column. The result is spliced into
// SQL, so only the two fixed names may ever come back.
func roleColumn(role chat.Role) (string, error) {
	switch role {
	case chat.RoleMentor:
		return "mentor_id", nil
	case chat.RolePatient:
		return "patient_id", nil
	default:
		return "", chat.ErrInvalidRole
	}
}

func isUUID(s string) bool {
	return uuid.Validate(s) == nil
}
