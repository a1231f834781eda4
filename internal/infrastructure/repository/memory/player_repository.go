package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/riskibarqy/liga-fantasy/internal/domain/player"
)

// PlayerRepository keeps the player pool in process memory. Used as the
// development fallback when no database is configured and as the test double
// for the service suites.
type PlayerRepository struct {
	mu    sync.RWMutex
	items map[string]player.Player
}

func NewPlayerRepository(seed []player.Player) *PlayerRepository {
	items := make(map[string]player.Player, len(seed))
	for _, item := range seed {
		items[item.ID] = item
	}
	return &PlayerRepository{items: items}
}

func (r *PlayerRepository) Create(_ context.Context, item player.Player) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[item.ID] = item
	return nil
}

func (r *PlayerRepository) GetByID(_ context.Context, id string) (player.Player, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[id]
	return item, ok, nil
}

func (r *PlayerRepository) GetByIDs(_ context.Context, ids []string) ([]player.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]player.Player, 0, len(ids))
	for _, id := range ids {
		item, ok := r.items[id]
		if !ok {
			continue
		}
		out = append(out, item)
	}

	return out, nil
}

func (r *PlayerRepository) List(_ context.Context, filter player.ListFilter) ([]player.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]player.Player, 0, len(r.items))
	for _, item := range r.items {
		if filter.Sport != "" && item.Sport != filter.Sport {
			continue
		}
		if filter.RealTeam != "" && item.RealTeam != filter.RealTeam {
			continue
		}
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })

	if filter.Offset > 0 {
		if filter.Offset >= len(out) {
			return []player.Player{}, nil
		}
		out = out[filter.Offset:]
	}
	if filter.Limit > 0 && filter.Limit < len(out) {
		out = out[:filter.Limit]
	}

	return out, nil
}

func (r *PlayerRepository) Update(_ context.Context, item player.Player) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.items[item.ID]
	if !ok {
		return nil
	}
	current.Name = item.Name
	current.RealTeam = item.RealTeam
	current.Price = item.Price
	current.UpdatedAt = item.UpdatedAt
	r.items[item.ID] = current

	return nil
}

func (r *PlayerRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.items, id)
	return nil
}

func (r *PlayerRepository) UpdateSettlement(_ context.Context, id string, stats player.Stats, cycleDelta, totalPoints int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[id]
	if !ok {
		return nil
	}
	item.Stats = stats
	item.CurrentCycleDelta = cycleDelta
	item.TotalPoints = totalPoints
	r.items[id] = item

	return nil
}

func (r *PlayerRepository) UpdatePrice(_ context.Context, id string, price int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[id]
	if !ok {
		return nil
	}
	item.Price = price
	r.items[id] = item

	return nil
}

func (r *PlayerRepository) UpdateSelectionRates(_ context.Context, rateByID map[string]float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, item := range r.items {
		item.SelectionRate = rateByID[id]
		r.items[id] = item
	}

	return nil
}
