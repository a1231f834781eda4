package postgres

import (
	"time"

	"github.com/riskibarqy/liga-fantasy/internal/domain/user"
)

type userTableModel struct {
	ID           int64      `db:"id"`
	PublicID     string     `db:"public_id"`
	Email        string     `db:"email"`
	PasswordHash string     `db:"password_hash"`
	FirstName    string     `db:"first_name"`
	LastName     string     `db:"last_name"`
	TeamName     string     `db:"team_name"`
	Balance      int64      `db:"balance"`
	Role         string     `db:"role"`
	CreatedAt    time.Time  `db:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at"`
	DeletedAt    *time.Time `db:"deleted_at"`
}

func (m userTableModel) toDomain() user.User {
	return user.User{
		ID:           m.PublicID,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		FirstName:    m.FirstName,
		LastName:     m.LastName,
		TeamName:     m.TeamName,
		Balance:      m.Balance,
		Role:         user.Role(m.Role),
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}
