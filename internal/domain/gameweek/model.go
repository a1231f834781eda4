package gameweek

import "time"

// GameWeek is an immutable scheduling record. The schedule is preloaded
// from a fixed season calendar, never user-created.
type GameWeek struct {
	ID        int
	StartDate time.Time
	EndDate   time.Time
}

// IsActive reports whether now falls inside [StartDate, EndDate].
func (g GameWeek) IsActive(now time.Time) bool {
	return !now.Before(g.StartDate) && !now.After(g.EndDate)
}

// DeadlinePassed reports whether roster mutation is closed for this week.
func (g GameWeek) DeadlinePassed(now time.Time) bool {
	return !now.Before(g.EndDate)
}
