package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/riskibarqy/liga-fantasy/internal/platform/logging"
	"github.com/riskibarqy/liga-fantasy/internal/usecase"
)

// Scheduler runs the settlement cycle on a fixed interval. The internal job
// endpoint stays available for manual triggers alongside it.
type Scheduler struct {
	s          gocron.Scheduler
	settlement *usecase.SettlementService
	interval   time.Duration
	logger     *logging.Logger
}

func New(settlement *usecase.SettlementService, interval time.Duration, logger *logging.Logger) (*Scheduler, error) {
	if interval <= 0 {
		return nil, fmt.Errorf("scheduler interval must be > 0")
	}
	if logger == nil {
		logger = logging.Default()
	}

	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("create scheduler: %w", err)
	}

	return &Scheduler{
		s:          s,
		settlement: settlement,
		interval:   interval,
		logger:     logger,
	}, nil
}

func (s *Scheduler) Start() error {
	_, err := s.s.NewJob(
		gocron.DurationJob(s.interval),
		gocron.NewTask(s.runSettlement),
	)
	if err != nil {
		return fmt.Errorf("create settlement job: %w", err)
	}

	s.s.Start()
	s.logger.Info("settlement scheduler started", "interval", s.interval.String())

	return nil
}

func (s *Scheduler) Stop() error {
	return s.s.Shutdown()
}

func (s *Scheduler) runSettlement() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	result, err := s.settlement.Run(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "scheduled settlement failed", "error", err)
		return
	}

	s.logger.InfoContext(ctx, "scheduled settlement finished",
		"game_week_id", result.GameWeekID,
		"scored_players", result.ScoredPlayers,
		"failed_players", result.FailedPlayers,
		"repriced", result.RepricedCount,
		"duration_ms", result.DurationMs,
	)
}
