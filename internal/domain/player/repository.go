package player

import "context"

// ListFilter narrows catalog listings. Zero values mean "no filter".
type ListFilter struct {
	Sport    Sport
	RealTeam string
	Limit    int
	Offset   int
}

// Repository describes player persistence needs from use cases.
type Repository interface {
	Create(ctx context.Context, item Player) error
	GetByID(ctx context.Context, id string) (Player, bool, error)
	GetByIDs(ctx context.Context, ids []string) ([]Player, error)
	List(ctx context.Context, filter ListFilter) ([]Player, error)
	Update(ctx context.Context, item Player) error
	Delete(ctx context.Context, id string) error
	// UpdateSettlement persists the per-cycle scoring output for one player:
	// refreshed raw stats, cycle delta and recomputed total.
	UpdateSettlement(ctx context.Context, id string, stats Stats, cycleDelta, totalPoints int) error
	UpdatePrice(ctx context.Context, id string, price int64) error
	UpdateSelectionRates(ctx context.Context, rateByID map[string]float64) error
}
