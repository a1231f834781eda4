package player

import (
	"fmt"
	"time"
)

type Sport string

const (
	SportFootball Sport = "football"
	SportFutsal   Sport = "futsal"
)

// MinimumPrice is the floor applied after every market adjustment.
const MinimumPrice int64 = 5_000_000

// Stats holds the raw per-sport counters as last persisted. Futsal feeds
// report a separate points column; football derives everything from the
// remaining counters.
type Stats struct {
	Matches       int
	Goals         int
	Assists       int
	YellowCards   int
	RedCards      int
	MinutesPlayed int
	Points        int
}

// Player is a selectable real-world athlete in the pool.
type Player struct {
	ID                string
	Name              string
	RealTeam          string
	Sport             Sport
	Price             int64
	TotalPoints       int
	CurrentCycleDelta int
	SelectionRate     float64
	TransfersIn       int64
	TransfersOut      int64
	Stats             Stats
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// MatchKey joins scraped records to persisted players. Exact match on
// (name, realTeam); the stat feeds carry no stable external id.
type MatchKey struct {
	Name     string
	RealTeam string
}

func (p Player) Key() MatchKey {
	return MatchKey{Name: p.Name, RealTeam: p.RealTeam}
}

func (p Player) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("player id is required")
	}
	if p.Name == "" {
		return fmt.Errorf("player name is required")
	}
	if p.RealTeam == "" {
		return fmt.Errorf("player real team is required")
	}
	if _, ok := ParseSport(string(p.Sport)); !ok {
		return fmt.Errorf("invalid player sport: %s", p.Sport)
	}
	if p.Price <= 0 {
		return fmt.Errorf("player price must be greater than zero")
	}

	return nil
}

func ParseSport(v string) (Sport, bool) {
	switch Sport(v) {
	case SportFootball, SportFutsal:
		return Sport(v), true
	default:
		return "", false
	}
}
