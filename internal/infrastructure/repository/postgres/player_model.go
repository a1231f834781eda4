package postgres

import (
	"time"

	"github.com/riskibarqy/liga-fantasy/internal/domain/player"
)

type playerTableModel struct {
	ID                int64      `db:"id"`
	PublicID          string     `db:"public_id"`
	Name              string     `db:"name"`
	RealTeam          string     `db:"real_team"`
	Sport             string     `db:"sport"`
	Price             int64      `db:"price"`
	TotalPoints       int        `db:"total_points"`
	CurrentCycleDelta int        `db:"current_cycle_delta"`
	SelectionRate     float64    `db:"selection_rate"`
	TransfersIn       int64      `db:"transfers_in"`
	TransfersOut      int64      `db:"transfers_out"`
	Matches           int        `db:"matches"`
	Goals             int        `db:"goals"`
	Assists           int        `db:"assists"`
	YellowCards       int        `db:"yellow_cards"`
	RedCards          int        `db:"red_cards"`
	MinutesPlayed     int        `db:"minutes_played"`
	Points            int        `db:"points"`
	CreatedAt         time.Time  `db:"created_at"`
	UpdatedAt         time.Time  `db:"updated_at"`
	DeletedAt         *time.Time `db:"deleted_at"`
}

func (m playerTableModel) toDomain() player.Player {
	return player.Player{
		ID:                m.PublicID,
		Name:              m.Name,
		RealTeam:          m.RealTeam,
		Sport:             player.Sport(m.Sport),
		Price:             m.Price,
		TotalPoints:       m.TotalPoints,
		CurrentCycleDelta: m.CurrentCycleDelta,
		SelectionRate:     m.SelectionRate,
		TransfersIn:       m.TransfersIn,
		TransfersOut:      m.TransfersOut,
		Stats: player.Stats{
			Matches:       m.Matches,
			Goals:         m.Goals,
			Assists:       m.Assists,
			YellowCards:   m.YellowCards,
			RedCards:      m.RedCards,
			MinutesPlayed: m.MinutesPlayed,
			Points:        m.Points,
		},
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}
