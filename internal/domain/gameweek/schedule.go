package gameweek

import (
	"errors"
	"fmt"
	"sort"
	"time"
)

var (
	ErrNoActiveWeek      = errors.New("no active game week")
	ErrOverlappingWeeks  = errors.New("overlapping game week schedule")
	ErrUnknownGameWeek   = errors.New("unknown game week")
	ErrInvalidWeekPeriod = errors.New("game week end date must be after start date")
	ErrDuplicateWeekID   = errors.New("duplicate game week id")
)

// Schedule is a validated, ordered season calendar.
type Schedule struct {
	weeks []GameWeek
}

// NewSchedule validates the calendar at load time. Overlapping periods are a
// configuration error and fail fast rather than silently picking one.
func NewSchedule(weeks []GameWeek) (*Schedule, error) {
	sorted := append([]GameWeek(nil), weeks...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].StartDate.Before(sorted[j].StartDate) })

	seen := make(map[int]struct{}, len(sorted))
	for i, week := range sorted {
		if week.ID <= 0 {
			return nil, fmt.Errorf("%w: id=%d", ErrUnknownGameWeek, week.ID)
		}
		if _, dup := seen[week.ID]; dup {
			return nil, fmt.Errorf("%w: id=%d", ErrDuplicateWeekID, week.ID)
		}
		seen[week.ID] = struct{}{}

		if !week.EndDate.After(week.StartDate) {
			return nil, fmt.Errorf("%w: id=%d", ErrInvalidWeekPeriod, week.ID)
		}
		if i > 0 && !sorted[i-1].EndDate.Before(week.StartDate) {
			return nil, fmt.Errorf("%w: id=%d overlaps id=%d", ErrOverlappingWeeks, week.ID, sorted[i-1].ID)
		}
	}

	return &Schedule{weeks: sorted}, nil
}

// All returns the calendar ordered by start date.
func (s *Schedule) All() []GameWeek {
	return append([]GameWeek(nil), s.weeks...)
}

// CurrentAt scans for the unique period bracketing now. At most one can
// match because NewSchedule rejects overlaps.
func (s *Schedule) CurrentAt(now time.Time) (GameWeek, bool) {
	for _, week := range s.weeks {
		if week.IsActive(now) {
			return week, true
		}
	}
	return GameWeek{}, false
}

func (s *Schedule) ByID(id int) (GameWeek, bool) {
	for _, week := range s.weeks {
		if week.ID == id {
			return week, true
		}
	}
	return GameWeek{}, false
}

// SeasonCalendar is the fixed league schedule for the running season.
func SeasonCalendar() []GameWeek {
	return []GameWeek{
		{ID: 1, StartDate: utc(2024, 10, 17, 0), EndDate: utc(2024, 10, 26, 10)},
		{ID: 2, StartDate: utc(2024, 10, 28, 0), EndDate: utc(2024, 11, 1, 10)},
		{ID: 3, StartDate: utc(2024, 11, 4, 0), EndDate: utc(2024, 11, 9, 10)},
		{ID: 4, StartDate: utc(2024, 11, 11, 0), EndDate: utc(2024, 11, 15, 10)},
		{ID: 5, StartDate: utc(2024, 11, 18, 0), EndDate: utc(2024, 11, 23, 10)},
		{ID: 6, StartDate: utc(2024, 11, 25, 0), EndDate: utc(2024, 11, 30, 10)},
		{ID: 7, StartDate: utc(2024, 12, 1, 0), EndDate: utc(2024, 12, 7, 10)},
		{ID: 8, StartDate: utc(2024, 12, 9, 0), EndDate: utc(2024, 12, 13, 10)},
		{ID: 9, StartDate: utc(2024, 12, 16, 0), EndDate: utc(2025, 1, 5, 10)},
		{ID: 10, StartDate: utc(2025, 1, 13, 0), EndDate: utc(2025, 1, 17, 10)},
		{ID: 11, StartDate: utc(2025, 1, 20, 0), EndDate: utc(2025, 1, 25, 10)},
		{ID: 12, StartDate: utc(2025, 2, 3, 0), EndDate: utc(2025, 2, 8, 10)},
		{ID: 13, StartDate: utc(2025, 2, 10, 0), EndDate: utc(2025, 2, 23, 10)},
		{ID: 14, StartDate: utc(2025, 2, 24, 0), EndDate: utc(2025, 2, 28, 10)},
		{ID: 15, StartDate: utc(2025, 3, 10, 0), EndDate: utc(2025, 3, 14, 10)},
	}
}

func utc(year int, month time.Month, day, hour int) time.Time {
	return time.Date(year, month, day, hour, 0, 0, 0, time.UTC)
}
