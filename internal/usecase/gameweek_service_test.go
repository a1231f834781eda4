package usecase

import (
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/liga-fantasy/internal/domain/gameweek"
	"github.com/riskibarqy/liga-fantasy/internal/platform/cache"
)

func newGameWeekFixture(t *testing.T, store *cache.Store) *GameWeekService {
	t.Helper()
	schedule, err := gameweek.NewSchedule(gameweek.SeasonCalendar())
	if err != nil {
		t.Fatalf("build schedule: %v", err)
	}
	service := NewGameWeekService(schedule, store)
	service.now = func() time.Time { return midWeekOne }
	return service
}

func TestGameWeekService_Current(t *testing.T) {
	service := newGameWeekFixture(t, nil)

	week, err := service.Current(t.Context())
	if err != nil {
		t.Fatalf("current week: %v", err)
	}
	if week.ID != 1 {
		t.Fatalf("expected week 1, got %d", week.ID)
	}
}

func TestGameWeekService_CurrentOffSeason(t *testing.T) {
	service := newGameWeekFixture(t, nil)
	service.now = func() time.Time {
		return time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	}

	if _, err := service.Current(t.Context()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound off-season, got %v", err)
	}
}

func TestGameWeekService_ListIsCached(t *testing.T) {
	store := cache.NewStore(time.Minute)
	service := newGameWeekFixture(t, store)

	first, err := service.List(t.Context())
	if err != nil {
		t.Fatalf("list weeks: %v", err)
	}
	if len(first) != 15 {
		t.Fatalf("expected 15 weeks, got %d", len(first))
	}

	if _, ok := store.Get(t.Context(), "gameweek:list"); !ok {
		t.Fatal("expected game week list to be cached")
	}

	second, err := service.List(t.Context())
	if err != nil {
		t.Fatalf("list weeks again: %v", err)
	}
	if len(second) != len(first) {
		t.Fatalf("cached list length mismatch: %d vs %d", len(second), len(first))
	}
}

func TestGameWeekService_ByID(t *testing.T) {
	service := newGameWeekFixture(t, nil)

	week, err := service.ByID(t.Context(), 15)
	if err != nil {
		t.Fatalf("get week 15: %v", err)
	}
	if week.ID != 15 {
		t.Fatalf("expected week 15, got %d", week.ID)
	}

	if _, err := service.ByID(t.Context(), 99); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for week 99, got %v", err)
	}
}
