package usecase

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/sourcegraph/conc"

	"github.com/riskibarqy/liga-fantasy/internal/domain/gameweek"
	"github.com/riskibarqy/liga-fantasy/internal/domain/player"
	"github.com/riskibarqy/liga-fantasy/internal/domain/roster"
	"github.com/riskibarqy/liga-fantasy/internal/domain/user"
	"github.com/riskibarqy/liga-fantasy/internal/platform/logging"
)

// StatsProvider pulls the latest absolute stat counters for one sport from
// the upstream feed.
type StatsProvider interface {
	FetchStats(ctx context.Context, sport player.Sport) ([]ScrapedPlayerStat, error)
}

type SettlementResult struct {
	GameWeekID     int   `json:"game_week_id"`
	PoolSize       int   `json:"pool_size"`
	ScrapedRecords int   `json:"scraped_records"`
	ScoredPlayers  int   `json:"scored_players"`
	FailedPlayers  int   `json:"failed_players"`
	UnmatchedStats int   `json:"unmatched_stats"`
	RepricedCount  int   `json:"repriced_count"`
	RosterCount    int   `json:"roster_count"`
	WorkerCount    int   `json:"worker_count"`
	DurationMs     int64 `json:"duration_ms"`
}

// SettlementService runs the post-match cycle: scrape, score, persist
// per-player results, refresh selection rates, reprice and award roster
// points. Each persisted player is isolated, one failure never aborts the
// rest of the cycle.
type SettlementService struct {
	userRepo   user.Repository
	playerRepo player.Repository
	rosterRepo roster.Repository
	schedule   *gameweek.Schedule
	provider   StatsProvider
	workers    int
	logger     *logging.Logger
	now        func() time.Time
}

func NewSettlementService(
	userRepo user.Repository,
	playerRepo player.Repository,
	rosterRepo roster.Repository,
	schedule *gameweek.Schedule,
	provider StatsProvider,
	workers int,
	logger *logging.Logger,
) *SettlementService {
	if workers <= 0 {
		workers = 8
	}
	if logger == nil {
		logger = logging.Default()
	}

	return &SettlementService{
		userRepo:   userRepo,
		playerRepo: playerRepo,
		rosterRepo: rosterRepo,
		schedule:   schedule,
		provider:   provider,
		workers:    workers,
		logger:     logger,
		now:        time.Now,
	}
}

// Run executes one full settlement cycle for the active game week.
func (s *SettlementService) Run(ctx context.Context) (SettlementResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SettlementService.Run")
	defer span.End()

	start := s.now()
	week, ok := s.schedule.CurrentAt(start.UTC())
	if !ok {
		return SettlementResult{}, fmt.Errorf("%w: %v", ErrNotFound, gameweek.ErrNoActiveWeek)
	}
	if s.provider == nil {
		return SettlementResult{}, fmt.Errorf("%w: stats provider is not configured", ErrDependencyUnavailable)
	}

	pool, err := s.playerRepo.List(ctx, player.ListFilter{})
	if err != nil {
		return SettlementResult{}, fmt.Errorf("list player pool: %w", err)
	}

	scraped, err := s.fetchAllSports(ctx)
	if err != nil {
		return SettlementResult{}, err
	}

	results, unmatched := ComputeDeltas(pool, scraped)
	for _, record := range unmatched {
		s.logger.WarnContext(ctx, "scraped stat has no pool match",
			"name", record.Name,
			"real_team", record.RealTeam,
		)
	}

	scored, failed, err := s.persistScores(ctx, results)
	if err != nil {
		return SettlementResult{}, err
	}

	rates, err := s.refreshSelectionRates(ctx, week.ID)
	if err != nil {
		return SettlementResult{}, err
	}

	repriced := s.repricePool(ctx, pool, results, rates)

	rosterCount, err := s.awardRosterPoints(ctx, week.ID, results)
	if err != nil {
		return SettlementResult{}, err
	}

	out := SettlementResult{
		GameWeekID:     week.ID,
		PoolSize:       len(pool),
		ScrapedRecords: len(scraped),
		ScoredPlayers:  scored,
		FailedPlayers:  failed,
		UnmatchedStats: len(unmatched),
		RepricedCount:  repriced,
		RosterCount:    rosterCount,
		WorkerCount:    s.workers,
		DurationMs:     time.Since(start).Milliseconds(),
	}

	s.logger.InfoContext(ctx, "settlement cycle finished",
		"game_week_id", out.GameWeekID,
		"scored", out.ScoredPlayers,
		"failed", out.FailedPlayers,
		"unmatched", out.UnmatchedStats,
		"repriced", out.RepricedCount,
		"rosters", out.RosterCount,
		"duration_ms", out.DurationMs,
	)

	return out, nil
}

// fetchAllSports pulls both feeds concurrently. A failed feed fails the
// cycle before any write happens.
func (s *SettlementService) fetchAllSports(ctx context.Context) ([]ScrapedPlayerStat, error) {
	sports := []player.Sport{player.SportFootball, player.SportFutsal}

	var mu sync.Mutex
	var merged []ScrapedPlayerStat
	errs := make([]error, len(sports))

	var wg conc.WaitGroup
	for i, sport := range sports {
		i, sport := i, sport
		wg.Go(func() {
			records, err := s.provider.FetchStats(ctx, sport)
			if err != nil {
				errs[i] = fmt.Errorf("fetch %s stats: %w", sport, err)
				return
			}
			mu.Lock()
			merged = append(merged, records...)
			mu.Unlock()
		})
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return merged, nil
}

func (s *SettlementService) persistScores(ctx context.Context, results []ScoreResult) (scored, failed int, err error) {
	if len(results) == 0 {
		return 0, 0, nil
	}

	pool, err := ants.NewPool(s.workers)
	if err != nil {
		return 0, 0, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var scoredCount, failedCount atomic.Int32
	var workers sync.WaitGroup
	for _, result := range results {
		result := result
		workers.Add(1)
		if submitErr := pool.Submit(func() {
			defer workers.Done()

			writeErr := s.playerRepo.UpdateSettlement(ctx, result.PlayerID, result.Stats, result.Delta, result.NewTotal)
			if writeErr != nil {
				failedCount.Add(1)
				s.logger.ErrorContext(ctx, "persist player score failed",
					"player_id", result.PlayerID,
					"error", writeErr.Error(),
				)
				return
			}
			scoredCount.Add(1)
		}); submitErr != nil {
			workers.Done()
			return 0, 0, fmt.Errorf("submit score to worker pool: %w", submitErr)
		}
	}
	workers.Wait()

	return int(scoredCount.Load()), int(failedCount.Load()), nil
}

func (s *SettlementService) refreshSelectionRates(ctx context.Context, gameWeekID int) (map[string]float64, error) {
	owners, err := s.rosterRepo.CountOwnersByPlayer(ctx, gameWeekID)
	if err != nil {
		return nil, fmt.Errorf("count roster owners: %w", err)
	}

	total, err := s.userRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}
	if total == 0 {
		return map[string]float64{}, nil
	}

	rates := make(map[string]float64, len(owners))
	for playerID, count := range owners {
		rates[playerID] = float64(count) / float64(total)
	}

	if err := s.playerRepo.UpdateSelectionRates(ctx, rates); err != nil {
		return nil, fmt.Errorf("update selection rates: %w", err)
	}
	return rates, nil
}

// repricePool adjusts every pool player from their pre-cycle price, the
// refreshed selection rate and this cycle's goal delta. Failures are logged
// and skipped.
func (s *SettlementService) repricePool(ctx context.Context, pool []player.Player, results []ScoreResult, rates map[string]float64) int {
	goalsByPlayer := make(map[string]int, len(results))
	statsByPlayer := make(map[string]player.Stats, len(results))
	for _, result := range results {
		statsByPlayer[result.PlayerID] = result.Stats
	}
	for _, p := range pool {
		if next, ok := statsByPlayer[p.ID]; ok {
			goalsByPlayer[p.ID] = next.Goals - p.Stats.Goals
		}
	}

	repriced := 0
	for _, p := range pool {
		if rate, ok := rates[p.ID]; ok {
			p.SelectionRate = rate
		} else {
			p.SelectionRate = 0
		}

		next := AdjustPrice(p, goalsByPlayer[p.ID])
		if next == p.Price {
			continue
		}

		if err := s.playerRepo.UpdatePrice(ctx, p.ID, next); err != nil {
			s.logger.ErrorContext(ctx, "update player price failed",
				"player_id", p.ID,
				"error", err.Error(),
			)
			continue
		}
		repriced++
	}
	return repriced
}

func (s *SettlementService) awardRosterPoints(ctx context.Context, gameWeekID int, results []ScoreResult) (int, error) {
	rosters, err := s.rosterRepo.ListByWeek(ctx, gameWeekID)
	if err != nil {
		return 0, fmt.Errorf("list rosters for week: %w", err)
	}

	pointsByPlayer := make(map[string]int, len(results))
	for _, result := range results {
		pointsByPlayer[result.PlayerID] = result.Delta
	}

	updated := 0
	for _, item := range rosters {
		points := item.Points + RosterPoints(item, pointsByPlayer)
		if err := s.rosterRepo.UpdatePoints(ctx, item.ID, points); err != nil {
			s.logger.ErrorContext(ctx, "update roster points failed",
				"roster_id", item.ID,
				"error", err.Error(),
			)
			continue
		}
		updated++
	}
	return updated, nil
}
