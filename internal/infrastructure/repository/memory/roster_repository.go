package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/liga-fantasy/internal/domain/player"
	"github.com/riskibarqy/liga-fantasy/internal/domain/roster"
)

// RosterRepository keeps rosters in process memory. CommitMutation mirrors
// the transactional contract of the database implementation by applying the
// roster, balance and transfer counter writes under one lock, touching the
// user and player repositories it was built with.
type RosterRepository struct {
	mu      sync.RWMutex
	items   map[string]roster.Roster
	users   *UserRepository
	players *PlayerRepository
}

func NewRosterRepository(users *UserRepository, players *PlayerRepository) *RosterRepository {
	return &RosterRepository{
		items:   make(map[string]roster.Roster),
		users:   users,
		players: players,
	}
}

func (r *RosterRepository) GetByUserAndWeek(_ context.Context, userID string, gameWeekID int) (roster.Roster, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, item := range r.items {
		if item.UserID == userID && item.GameWeekID == gameWeekID {
			return item.Clone(), true, nil
		}
	}

	return roster.Roster{}, false, nil
}

func (r *RosterRepository) GetLatestBefore(_ context.Context, userID string, gameWeekID int) (roster.Roster, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var latest roster.Roster
	found := false
	for _, item := range r.items {
		if item.UserID != userID || item.GameWeekID >= gameWeekID {
			continue
		}
		if !found || item.GameWeekID > latest.GameWeekID {
			latest = item
			found = true
		}
	}
	if !found {
		return roster.Roster{}, false, nil
	}

	return latest.Clone(), true, nil
}

func (r *RosterRepository) Create(_ context.Context, item roster.Roster) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[item.ID] = item.Clone()
	return nil
}

func (r *RosterRepository) CommitMutation(ctx context.Context, m roster.Mutation) error {
	r.mu.Lock()
	r.items[m.Roster.ID] = m.Roster.Clone()
	r.mu.Unlock()

	owner, ok, err := r.users.GetByID(ctx, m.Roster.UserID)
	if err != nil {
		return err
	}
	if ok {
		owner.Balance = m.NewBalance
		if err := r.users.Update(ctx, owner); err != nil {
			return err
		}
	}

	if err := r.bumpTransfers(m.TransfersIn, func(p *player.Player) { p.TransfersIn++ }); err != nil {
		return err
	}
	return r.bumpTransfers(m.TransfersOut, func(p *player.Player) { p.TransfersOut++ })
}

func (r *RosterRepository) bumpTransfers(ids []string, bump func(*player.Player)) error {
	r.players.mu.Lock()
	defer r.players.mu.Unlock()

	for _, id := range ids {
		item, ok := r.players.items[id]
		if !ok {
			continue
		}
		bump(&item)
		r.players.items[id] = item
	}

	return nil
}

func (r *RosterRepository) ListByWeek(_ context.Context, gameWeekID int) ([]roster.Roster, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]roster.Roster, 0)
	for _, item := range r.items {
		if item.GameWeekID == gameWeekID {
			out = append(out, item.Clone())
		}
	}

	return out, nil
}

func (r *RosterRepository) UpdatePoints(_ context.Context, rosterID string, points int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[rosterID]
	if !ok {
		return nil
	}
	item.Points = points
	r.items[rosterID] = item

	return nil
}

func (r *RosterRepository) CountOwnersByPlayer(_ context.Context, gameWeekID int) (map[string]int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	counts := make(map[string]int)
	for _, item := range r.items {
		if item.GameWeekID != gameWeekID {
			continue
		}
		for _, id := range item.PlayerIDs {
			counts[id]++
		}
	}

	return counts, nil
}
