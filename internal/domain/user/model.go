package user

import "time"

type Role string

const (
	RoleUser      Role = "user"
	RoleModerator Role = "moderator"
	RoleAdmin     Role = "admin"
)

// InitialBalance is the grant every account starts with, in the smallest
// monetary unit.
const InitialBalance int64 = 100_000_000

type User struct {
	ID           string
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	TeamName     string
	Balance      int64
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Principal is the verified identity attached to authenticated requests.
type Principal struct {
	UserID string
	Email  string
	Role   Role
}

func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}

func ParseRole(v string) (Role, bool) {
	switch Role(v) {
	case RoleUser, RoleModerator, RoleAdmin:
		return Role(v), true
	default:
		return "", false
	}
}
