package chat

// Role is the fixed side a participant holds in a chat room.
type Role string

const (
	RoleMentor  Role = "mentor"
	RolePatient Role = "patient"
)

// ParseRole accepts only the two known roles.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleMentor, RolePatient:
		return Role(s), nil
	default:
		return "", ErrInvalidRole
	}
}
