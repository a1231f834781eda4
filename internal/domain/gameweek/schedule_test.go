package gameweek

import (
	"errors"
	"testing"
	"time"
)

func TestNewSchedule_RejectsOverlappingWeeks(t *testing.T) {
	_, err := NewSchedule([]GameWeek{
		{ID: 1, StartDate: utc(2024, 10, 1, 0), EndDate: utc(2024, 10, 10, 10)},
		{ID: 2, StartDate: utc(2024, 10, 10, 0), EndDate: utc(2024, 10, 20, 10)},
	})
	if !errors.Is(err, ErrOverlappingWeeks) {
		t.Fatalf("expected ErrOverlappingWeeks, got %v", err)
	}
}

func TestNewSchedule_RejectsInvalidPeriodsAndIDs(t *testing.T) {
	_, err := NewSchedule([]GameWeek{
		{ID: 1, StartDate: utc(2024, 10, 10, 0), EndDate: utc(2024, 10, 1, 0)},
	})
	if !errors.Is(err, ErrInvalidWeekPeriod) {
		t.Fatalf("expected ErrInvalidWeekPeriod, got %v", err)
	}

	_, err = NewSchedule([]GameWeek{
		{ID: 0, StartDate: utc(2024, 10, 1, 0), EndDate: utc(2024, 10, 10, 0)},
	})
	if !errors.Is(err, ErrUnknownGameWeek) {
		t.Fatalf("expected ErrUnknownGameWeek for non-positive id, got %v", err)
	}

	_, err = NewSchedule([]GameWeek{
		{ID: 3, StartDate: utc(2024, 10, 1, 0), EndDate: utc(2024, 10, 5, 0)},
		{ID: 3, StartDate: utc(2024, 10, 7, 0), EndDate: utc(2024, 10, 9, 0)},
	})
	if !errors.Is(err, ErrDuplicateWeekID) {
		t.Fatalf("expected ErrDuplicateWeekID, got %v", err)
	}
}

func TestSchedule_CurrentAt(t *testing.T) {
	schedule, err := NewSchedule(SeasonCalendar())
	if err != nil {
		t.Fatalf("season calendar must validate: %v", err)
	}

	week, ok := schedule.CurrentAt(time.Date(2024, 10, 20, 12, 0, 0, 0, time.UTC))
	if !ok || week.ID != 1 {
		t.Fatalf("expected week 1, got ok=%t id=%d", ok, week.ID)
	}

	// The winter break between weeks 9 and 10 has no active week.
	if _, ok := schedule.CurrentAt(time.Date(2025, 1, 8, 0, 0, 0, 0, time.UTC)); ok {
		t.Fatal("expected no active week during the break")
	}

	if _, ok := schedule.CurrentAt(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)); ok {
		t.Fatal("expected no active week after the season")
	}
}

func TestSchedule_ByID(t *testing.T) {
	schedule, err := NewSchedule(SeasonCalendar())
	if err != nil {
		t.Fatalf("season calendar must validate: %v", err)
	}

	week, ok := schedule.ByID(15)
	if !ok || !week.EndDate.Equal(utc(2025, 3, 14, 10)) {
		t.Fatalf("expected week 15 ending 2025-03-14T10:00Z, got ok=%t end=%v", ok, week.EndDate)
	}

	if _, ok := schedule.ByID(99); ok {
		t.Fatal("expected unknown id to miss")
	}
}

func TestGameWeek_Boundaries(t *testing.T) {
	week := GameWeek{ID: 1, StartDate: utc(2024, 10, 17, 0), EndDate: utc(2024, 10, 26, 10)}

	if !week.IsActive(week.StartDate) || !week.IsActive(week.EndDate) {
		t.Fatal("start and end instants are both inside the week")
	}
	if week.IsActive(week.StartDate.Add(-time.Second)) {
		t.Fatal("instant before start must not be active")
	}

	if week.DeadlinePassed(week.EndDate.Add(-time.Second)) {
		t.Fatal("deadline must still be open just before the end date")
	}
	if !week.DeadlinePassed(week.EndDate) {
		t.Fatal("deadline closes exactly at the end date")
	}
}
