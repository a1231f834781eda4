package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/riskibarqy/liga-fantasy/internal/domain/gameweek"
	"github.com/riskibarqy/liga-fantasy/internal/platform/cache"
)

const gameWeekListCacheKey = "gameweek:list"

// GameWeekService resolves the active scoring period from the static season
// calendar. The schedule is validated once at construction; recomputing the
// active week is idempotent and yields zero or one period.
type GameWeekService struct {
	schedule *gameweek.Schedule
	cache    *cache.Store
	now      func() time.Time
}

func NewGameWeekService(schedule *gameweek.Schedule, store *cache.Store) *GameWeekService {
	return &GameWeekService{
		schedule: schedule,
		cache:    store,
		now:      time.Now,
	}
}

func (s *GameWeekService) Current(ctx context.Context) (gameweek.GameWeek, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GameWeekService.Current")
	defer span.End()

	week, ok := s.schedule.CurrentAt(s.now().UTC())
	if !ok {
		return gameweek.GameWeek{}, fmt.Errorf("%w: %v", ErrNotFound, gameweek.ErrNoActiveWeek)
	}

	return week, nil
}

func (s *GameWeekService) List(ctx context.Context) ([]gameweek.GameWeek, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GameWeekService.List")
	defer span.End()

	if s.cache != nil {
		if cached, ok := s.cache.Get(ctx, gameWeekListCacheKey); ok {
			if weeks, ok := cached.([]gameweek.GameWeek); ok {
				return weeks, nil
			}
		}
	}

	weeks := s.schedule.All()
	if s.cache != nil {
		s.cache.Set(ctx, gameWeekListCacheKey, weeks)
	}

	return weeks, nil
}

func (s *GameWeekService) ByID(ctx context.Context, id int) (gameweek.GameWeek, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GameWeekService.ByID")
	defer span.End()

	week, ok := s.schedule.ByID(id)
	if !ok {
		return gameweek.GameWeek{}, fmt.Errorf("%w: game week %d", ErrNotFound, id)
	}

	return week, nil
}
