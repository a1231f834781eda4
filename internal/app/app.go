package app

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"

	"github.com/riskibarqy/liga-fantasy/external/statsfeed"
	"github.com/riskibarqy/liga-fantasy/internal/config"
	"github.com/riskibarqy/liga-fantasy/internal/domain/gameweek"
	"github.com/riskibarqy/liga-fantasy/internal/domain/player"
	"github.com/riskibarqy/liga-fantasy/internal/domain/roster"
	"github.com/riskibarqy/liga-fantasy/internal/domain/user"
	"github.com/riskibarqy/liga-fantasy/internal/infrastructure/auth"
	"github.com/riskibarqy/liga-fantasy/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/liga-fantasy/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/liga-fantasy/internal/interfaces/httpapi"
	"github.com/riskibarqy/liga-fantasy/internal/platform/cache"
	idgen "github.com/riskibarqy/liga-fantasy/internal/platform/id"
	"github.com/riskibarqy/liga-fantasy/internal/platform/logging"
	"github.com/riskibarqy/liga-fantasy/internal/platform/resilience"
	"github.com/riskibarqy/liga-fantasy/internal/usecase"

	_ "github.com/lib/pq"
)

// Application bundles the wired components a command binary needs. DB is nil
// when the in-memory repositories are active.
type Application struct {
	Config     config.Config
	Logger     *logging.Logger
	DB         *sqlx.DB
	Server     *http.Server
	Settlement *usecase.SettlementService
}

func New(cfg config.Config, logger *logging.Logger) (*Application, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	schedule, err := gameweek.NewSchedule(gameweek.SeasonCalendar())
	if err != nil {
		return nil, fmt.Errorf("build game week schedule: %w", err)
	}

	var (
		db         *sqlx.DB
		userRepo   user.Repository
		playerRepo player.Repository
		rosterRepo roster.Repository
	)
	if strings.TrimSpace(cfg.DBURL) != "" {
		db, err = openDB(cfg)
		if err != nil {
			return nil, fmt.Errorf("open database: %w", err)
		}
		if cfg.DBSeedOnBoot {
			seedCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			err = postgres.BootstrapSeed(seedCtx, db)
			cancel()
			if err != nil {
				_ = db.Close()
				return nil, fmt.Errorf("bootstrap seed: %w", err)
			}
		}
		userRepo = postgres.NewUserRepository(db)
		playerRepo = postgres.NewPlayerRepository(db)
		rosterRepo = postgres.NewRosterRepository(db)
	} else {
		logger.Info("no DB_URL configured, using in-memory repositories")
		memUsers := memory.NewUserRepository(memory.SeedUsers())
		memPlayers := memory.NewPlayerRepository(memory.SeedPlayers())
		userRepo = memUsers
		playerRepo = memPlayers
		rosterRepo = memory.NewRosterRepository(memUsers, memPlayers)
	}

	var store *cache.Store
	if cfg.CacheEnabled {
		store = cache.NewStore(cfg.CacheTTL)
	}

	idGenerator := idgen.NewRandomGenerator()
	tokenManager := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTAccessTTL, cfg.JWTIssuer)
	passwordHasher := auth.NewBcryptHasher(cfg.BcryptCost)

	var statsProvider usecase.StatsProvider
	if cfg.StatsFeedEnabled {
		statsProvider = statsfeed.NewClient(statsfeed.ClientConfig{
			HTTPClient: &http.Client{Timeout: cfg.StatsFeedTimeout},
			BaseURL:    cfg.StatsFeedBaseURL,
			Token:      cfg.StatsFeedToken,
			Timeout:    cfg.StatsFeedTimeout,
			MaxRetries: cfg.StatsFeedMaxRetries,
			Logger:     logger,
			CircuitBreaker: resilience.CircuitBreakerConfig{
				Enabled:          cfg.StatsFeedCircuitEnabled,
				FailureThreshold: cfg.StatsFeedCircuitFailureCount,
				OpenTimeout:      cfg.StatsFeedCircuitOpenTimeout,
				HalfOpenMaxReq:   cfg.StatsFeedCircuitHalfOpenMaxReq,
			},
		})
	}

	authSvc := usecase.NewAuthService(userRepo, passwordHasher, tokenManager, idGenerator, logger)
	userSvc := usecase.NewUserService(userRepo, logger)
	playerSvc := usecase.NewPlayerService(playerRepo, idGenerator, store)
	rosterSvc := usecase.NewRosterService(
		userRepo,
		playerRepo,
		rosterRepo,
		schedule,
		roster.DefaultRules(),
		idGenerator,
		logger,
	)
	gameWeekSvc := usecase.NewGameWeekService(schedule, store)
	settlementSvc := usecase.NewSettlementService(
		userRepo,
		playerRepo,
		rosterRepo,
		schedule,
		statsProvider,
		cfg.SettlementWorkers,
		logger,
	)

	var readiness httpapi.Pinger
	if db != nil {
		readiness = db
	}
	handler := httpapi.NewHandler(authSvc, userSvc, playerSvc, rosterSvc, gameWeekSvc, settlementSvc, readiness, logger)
	router := httpapi.NewRouter(handler, tokenManager, logger, cfg.CORSAllowedOrigins, cfg.InternalJobToken)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	return &Application{
		Config:     cfg,
		Logger:     logger,
		DB:         db,
		Server:     server,
		Settlement: settlementSvc,
	}, nil
}

func (a *Application) Close() error {
	if a.DB == nil {
		return nil
	}
	return a.DB.Close()
}

func openDB(cfg config.Config) (*sqlx.DB, error) {
	dsn := normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary)

	db, err := otelsqlx.Open("postgres", dsn,
		otelsql.WithDBSystem("postgresql"),
		otelsql.WithDBName(dbNameFromURL(cfg.DBURL)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	return db, nil
}
