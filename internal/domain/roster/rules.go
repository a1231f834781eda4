package roster

import (
	"errors"
	"fmt"

	"github.com/riskibarqy/liga-fantasy/internal/domain/player"
)

var (
	ErrUnknownPlayer     = errors.New("unknown player")
	ErrDuplicatePlayer   = errors.New("player already in roster")
	ErrRosterFull        = errors.New("roster is full")
	ErrTeamCapExceeded   = errors.New("max players from same real team exceeded")
	ErrInsufficientFunds = errors.New("insufficient balance")
	ErrNotInRoster       = errors.New("player is not a roster member")
)

// Rules stores roster validation parameters.
type Rules struct {
	SquadSize         int
	MaxPlayersPerTeam int
}

func DefaultRules() Rules {
	return Rules{
		SquadSize:         15,
		MaxPlayersPerTeam: 3,
	}
}

// Draft is a working snapshot of one mutation batch. Members of the same
// batch are evaluated sequentially against tentative state, so two additions
// cannot both pass a check the pair together would violate.
type Draft struct {
	rules     Rules
	members   map[string]struct{}
	teamCount map[string]int
	balance   int64
}

func NewDraft(r Roster, teamByPlayerID map[string]string, balance int64, rules Rules) *Draft {
	d := &Draft{
		rules:     rules,
		members:   make(map[string]struct{}, len(r.PlayerIDs)),
		teamCount: make(map[string]int, len(r.PlayerIDs)),
		balance:   balance,
	}
	for _, id := range r.PlayerIDs {
		d.members[id] = struct{}{}
		if team, ok := teamByPlayerID[id]; ok {
			d.teamCount[team]++
		}
	}
	return d
}

func (d *Draft) Balance() int64 {
	return d.balance
}

func (d *Draft) Size() int {
	return len(d.members)
}

// Add validates one candidate against the tentative state and, on success,
// applies it. Checks run in a fixed order so callers get deterministic
// failure reasons.
func (d *Draft) Add(p player.Player) error {
	if _, exists := d.members[p.ID]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicatePlayer, p.ID)
	}
	if len(d.members) >= d.rules.SquadSize {
		return fmt.Errorf("%w: max=%d", ErrRosterFull, d.rules.SquadSize)
	}
	if d.teamCount[p.RealTeam] >= d.rules.MaxPlayersPerTeam {
		return fmt.Errorf("%w: team=%s max=%d", ErrTeamCapExceeded, p.RealTeam, d.rules.MaxPlayersPerTeam)
	}
	if d.balance < p.Price {
		return fmt.Errorf("%w: balance=%d price=%d", ErrInsufficientFunds, d.balance, p.Price)
	}

	d.members[p.ID] = struct{}{}
	d.teamCount[p.RealTeam]++
	d.balance -= p.Price
	return nil
}

// Remove validates membership and credits the price back.
func (d *Draft) Remove(p player.Player) error {
	if _, exists := d.members[p.ID]; !exists {
		return fmt.Errorf("%w: %s", ErrNotInRoster, p.ID)
	}

	delete(d.members, p.ID)
	if d.teamCount[p.RealTeam] > 0 {
		d.teamCount[p.RealTeam]--
	}
	d.balance += p.Price
	return nil
}

func (d *Draft) Has(playerID string) bool {
	_, ok := d.members[playerID]
	return ok
}
