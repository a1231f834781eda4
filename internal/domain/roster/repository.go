package roster

import "context"

// Mutation is the committed outcome of one add/remove batch. Roster
// membership, the owner's balance and the affected players' transfer
// counters must be written in a single transaction.
type Mutation struct {
	Roster       Roster
	NewBalance   int64
	TransfersIn  []string
	TransfersOut []string
}

type Repository interface {
	GetByUserAndWeek(ctx context.Context, userID string, gameWeekID int) (Roster, bool, error)
	// GetLatestBefore returns the user's most recent roster with a game week
	// id strictly below the given one.
	GetLatestBefore(ctx context.Context, userID string, gameWeekID int) (Roster, bool, error)
	Create(ctx context.Context, item Roster) error
	CommitMutation(ctx context.Context, m Mutation) error
	ListByWeek(ctx context.Context, gameWeekID int) ([]Roster, error)
	UpdatePoints(ctx context.Context, rosterID string, points int) error
	// CountOwnersByPlayer reports, per player id, how many rosters of the
	// given game week contain that player.
	CountOwnersByPlayer(ctx context.Context, gameWeekID int) (map[string]int, error)
}
