package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/liga-fantasy/internal/domain/gameweek"
	"github.com/riskibarqy/liga-fantasy/internal/domain/player"
	"github.com/riskibarqy/liga-fantasy/internal/domain/roster"
	"github.com/riskibarqy/liga-fantasy/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/liga-fantasy/internal/platform/logging"
)

type stubStatsProvider struct {
	bySport map[player.Sport][]ScrapedPlayerStat
	errs    map[player.Sport]error
}

func (p *stubStatsProvider) FetchStats(_ context.Context, sport player.Sport) ([]ScrapedPlayerStat, error) {
	if err := p.errs[sport]; err != nil {
		return nil, err
	}
	return p.bySport[sport], nil
}

type flakyPlayerRepository struct {
	player.Repository
	failSettlementFor string
}

func (r *flakyPlayerRepository) UpdateSettlement(ctx context.Context, id string, stats player.Stats, cycleDelta, totalPoints int) error {
	if id == r.failSettlementFor {
		return errors.New("write refused")
	}
	return r.Repository.UpdateSettlement(ctx, id, stats, cycleDelta, totalPoints)
}

func settlementPool() []player.Player {
	return []player.Player{
		{ID: "plr-a", Name: "Gustavo Almeida", RealTeam: "Persija Jakarta", Sport: player.SportFootball, Price: 10_000_000},
		{ID: "plr-b", Name: "Evan Soumilena", RealTeam: "Black Steel Papua", Sport: player.SportFutsal, Price: 8_000_000},
	}
}

func settlementFeed() *stubStatsProvider {
	return &stubStatsProvider{
		bySport: map[player.Sport][]ScrapedPlayerStat{
			player.SportFootball: {
				{Name: "Gustavo Almeida", RealTeam: "Persija Jakarta", Sport: player.SportFootball, Matches: "1", Goals: "2", MinutesPlayed: "90"},
				{Name: "Unknown Trialist", RealTeam: "Persija Jakarta", Sport: player.SportFootball, Matches: "1"},
			},
			player.SportFutsal: {
				{Name: "Evan Soumilena", RealTeam: "Black Steel Papua", Sport: player.SportFutsal, Matches: "1", Goals: "1", Assists: "1", Points: "5"},
			},
		},
	}
}

func newSettlementFixture(t *testing.T, memPlayers *memory.PlayerRepository, playerRepo player.Repository, provider StatsProvider) (*SettlementService, *memory.RosterRepository) {
	t.Helper()

	userRepo := memory.NewUserRepository(memory.SeedUsers())
	rosterRepo := memory.NewRosterRepository(userRepo, memPlayers)

	schedule, err := gameweek.NewSchedule(gameweek.SeasonCalendar())
	if err != nil {
		t.Fatalf("build schedule: %v", err)
	}

	service := NewSettlementService(
		userRepo,
		playerRepo,
		rosterRepo,
		schedule,
		provider,
		2,
		logging.NewNop(),
	)
	service.now = func() time.Time { return time.Date(2024, 10, 20, 12, 0, 0, 0, time.UTC) }

	return service, rosterRepo
}

func TestSettlementService_Run_FullCycle(t *testing.T) {
	playerRepo := memory.NewPlayerRepository(settlementPool())
	service, rosterRepo := newSettlementFixture(t, playerRepo, playerRepo, settlementFeed())

	if err := rosterRepo.Create(t.Context(), roster.Roster{
		ID:         "roster-1",
		UserID:     memory.SeedDevUserID,
		GameWeekID: 1,
		PlayerIDs:  []string{"plr-a", "plr-b"},
		CaptainID:  "plr-a",
	}); err != nil {
		t.Fatalf("create roster: %v", err)
	}

	result, err := service.Run(t.Context())
	if err != nil {
		t.Fatalf("settlement run failed: %v", err)
	}

	if result.GameWeekID != 1 {
		t.Fatalf("expected game week 1, got %d", result.GameWeekID)
	}
	if result.PoolSize != 2 || result.ScrapedRecords != 3 {
		t.Fatalf("unexpected pool/scraped counts: %+v", result)
	}
	if result.ScoredPlayers != 2 || result.FailedPlayers != 0 {
		t.Fatalf("expected 2 scored, 0 failed, got %+v", result)
	}
	if result.UnmatchedStats != 1 {
		t.Fatalf("expected 1 unmatched record, got %d", result.UnmatchedStats)
	}
	if result.RosterCount != 1 {
		t.Fatalf("expected 1 roster updated, got %d", result.RosterCount)
	}

	// Football: 4*2 goals + 1 match + floor(3.5*90/60) minutes = 14.
	footballer, _, err := playerRepo.GetByID(t.Context(), "plr-a")
	if err != nil {
		t.Fatalf("get player: %v", err)
	}
	if footballer.CurrentCycleDelta != 14 || footballer.TotalPoints != 14 {
		t.Fatalf("expected delta/total 14, got %d/%d", footballer.CurrentCycleDelta, footballer.TotalPoints)
	}
	if footballer.Stats.Goals != 2 {
		t.Fatalf("expected persisted goals 2, got %d", footballer.Stats.Goals)
	}

	// Owned by 1 of 2 users, so selection rate 0.5 triggers the top
	// popularity tier: 10,000,000 * 1.05 + 2 goals * 100,000.
	if footballer.SelectionRate != 0.5 {
		t.Fatalf("expected selection rate 0.5, got %f", footballer.SelectionRate)
	}
	if footballer.Price != 10_700_000 {
		t.Fatalf("expected repriced 10700000, got %d", footballer.Price)
	}

	// Futsal delta: 5 points + 4*1 + 3*1 + 1 match = 13.
	futsaler, _, err := playerRepo.GetByID(t.Context(), "plr-b")
	if err != nil {
		t.Fatalf("get player: %v", err)
	}
	if futsaler.CurrentCycleDelta != 13 {
		t.Fatalf("expected futsal delta 13, got %d", futsaler.CurrentCycleDelta)
	}
	if futsaler.Price != 8_500_000 {
		t.Fatalf("expected repriced 8500000, got %d", futsaler.Price)
	}

	// Roster: 14 + 13 + captain bonus 14 = 41.
	item, _, err := rosterRepo.GetByUserAndWeek(t.Context(), memory.SeedDevUserID, 1)
	if err != nil {
		t.Fatalf("get roster: %v", err)
	}
	if item.Points != 41 {
		t.Fatalf("expected roster points 41, got %d", item.Points)
	}
}

func TestSettlementService_Run_IsolatesPersistFailures(t *testing.T) {
	flaky := &flakyPlayerRepository{
		Repository:        memory.NewPlayerRepository(settlementPool()),
		failSettlementFor: "plr-a",
	}
	service, _ := newSettlementFixture(t, flaky.Repository.(*memory.PlayerRepository), flaky, settlementFeed())

	result, err := service.Run(t.Context())
	if err != nil {
		t.Fatalf("settlement run failed: %v", err)
	}

	if result.ScoredPlayers != 1 || result.FailedPlayers != 1 {
		t.Fatalf("expected 1 scored and 1 failed, got %+v", result)
	}
}

func TestSettlementService_Run_FeedFailureAbortsBeforeWrites(t *testing.T) {
	playerRepo := memory.NewPlayerRepository(settlementPool())
	provider := settlementFeed()
	provider.errs = map[player.Sport]error{player.SportFutsal: errors.New("feed down")}
	service, _ := newSettlementFixture(t, playerRepo, playerRepo, provider)

	if _, err := service.Run(t.Context()); err == nil {
		t.Fatal("expected run to fail when one feed is down")
	}

	untouched, _, err := playerRepo.GetByID(t.Context(), "plr-a")
	if err != nil {
		t.Fatalf("get player: %v", err)
	}
	if untouched.CurrentCycleDelta != 0 || untouched.Price != 10_000_000 {
		t.Fatalf("expected no writes after feed failure, got %+v", untouched)
	}
}

func TestSettlementService_Run_NoActiveWeek(t *testing.T) {
	playerRepo := memory.NewPlayerRepository(settlementPool())
	service, _ := newSettlementFixture(t, playerRepo, playerRepo, settlementFeed())
	service.now = func() time.Time { return time.Date(2024, 10, 27, 0, 0, 0, 0, time.UTC) }

	if _, err := service.Run(t.Context()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound between weeks, got %v", err)
	}
}

func TestSettlementService_Run_MissingProvider(t *testing.T) {
	playerRepo := memory.NewPlayerRepository(settlementPool())
	service, _ := newSettlementFixture(t, playerRepo, playerRepo, nil)

	if _, err := service.Run(t.Context()); !errors.Is(err, ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable, got %v", err)
	}
}

var _ StatsProvider = (*stubStatsProvider)(nil)
var _ player.Repository = (*flakyPlayerRepository)(nil)
