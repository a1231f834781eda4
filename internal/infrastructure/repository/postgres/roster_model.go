package postgres

import (
	"database/sql"
	"time"

	"github.com/riskibarqy/liga-fantasy/internal/domain/roster"
)

type rosterTableModel struct {
	ID            int64          `db:"id"`
	PublicID      string         `db:"public_id"`
	UserPublicID  string         `db:"user_public_id"`
	GameWeekID    int            `db:"game_week_id"`
	CaptainID     sql.NullString `db:"captain_public_id"`
	ViceCaptainID sql.NullString `db:"vice_captain_public_id"`
	Points        int            `db:"points"`
	CreatedAt     time.Time      `db:"created_at"`
	UpdatedAt     time.Time      `db:"updated_at"`
	DeletedAt     *time.Time     `db:"deleted_at"`
}

func (m rosterTableModel) toDomain(playerIDs []string) roster.Roster {
	return roster.Roster{
		ID:            m.PublicID,
		UserID:        m.UserPublicID,
		GameWeekID:    m.GameWeekID,
		PlayerIDs:     playerIDs,
		CaptainID:     m.CaptainID.String,
		ViceCaptainID: m.ViceCaptainID.String,
		Points:        m.Points,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

func nullableString(v string) sql.NullString {
	return sql.NullString{String: v, Valid: v != ""}
}
