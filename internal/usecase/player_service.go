package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/liga-fantasy/internal/domain/player"
	"github.com/riskibarqy/liga-fantasy/internal/domain/user"
	"github.com/riskibarqy/liga-fantasy/internal/platform/cache"
	idgen "github.com/riskibarqy/liga-fantasy/internal/platform/id"
)

type CreatePlayerInput struct {
	Name     string
	RealTeam string
	Sport    string
	Price    int64
}

type UpdatePlayerInput struct {
	ID       string
	Name     string
	RealTeam string
	Price    int64
}

const playerListCacheKey = "player:list"

type PlayerService struct {
	playerRepo player.Repository
	idGen      idgen.Generator
	cache      *cache.Store
	now        func() time.Time
}

func NewPlayerService(playerRepo player.Repository, idGen idgen.Generator, store *cache.Store) *PlayerService {
	return &PlayerService{
		playerRepo: playerRepo,
		idGen:      idGen,
		cache:      store,
		now:        time.Now,
	}
}

func (s *PlayerService) List(ctx context.Context, filter player.ListFilter) ([]player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.List")
	defer span.End()

	if filter.Sport != "" {
		if _, ok := player.ParseSport(string(filter.Sport)); !ok {
			return nil, fmt.Errorf("%w: unknown sport %q", ErrInvalidInput, filter.Sport)
		}
	}

	// Only the unfiltered catalog listing is cached; filtered queries go
	// straight to the repository.
	if s.cache != nil && filter == (player.ListFilter{}) {
		value, err := s.cache.GetOrLoad(ctx, playerListCacheKey, func(ctx context.Context) (any, error) {
			items, err := s.playerRepo.List(ctx, filter)
			if err != nil {
				return nil, fmt.Errorf("list players: %w", err)
			}
			return items, nil
		})
		if err != nil {
			return nil, err
		}
		if items, ok := value.([]player.Player); ok {
			return items, nil
		}
	}

	items, err := s.playerRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}

	return items, nil
}

func (s *PlayerService) GetByID(ctx context.Context, playerID string) (player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.GetByID")
	defer span.End()

	playerID = strings.TrimSpace(playerID)
	if playerID == "" {
		return player.Player{}, fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}

	item, exists, err := s.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		return player.Player{}, fmt.Errorf("get player: %w", err)
	}
	if !exists {
		return player.Player{}, fmt.Errorf("%w: player=%s", ErrNotFound, playerID)
	}

	return item, nil
}

// Create registers a new catalog entry. Admin only.
func (s *PlayerService) Create(ctx context.Context, requester user.Principal, input CreatePlayerInput) (player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.Create")
	defer span.End()

	if !requester.IsAdmin() {
		return player.Player{}, fmt.Errorf("%w: admin role required", ErrForbidden)
	}

	sport, ok := player.ParseSport(strings.TrimSpace(input.Sport))
	if !ok {
		return player.Player{}, fmt.Errorf("%w: unknown sport %q", ErrInvalidInput, input.Sport)
	}

	id, err := s.idGen.NewID()
	if err != nil {
		return player.Player{}, fmt.Errorf("generate player id: %w", err)
	}

	now := s.now().UTC()
	item := player.Player{
		ID:        id,
		Name:      strings.TrimSpace(input.Name),
		RealTeam:  strings.TrimSpace(input.RealTeam),
		Sport:     sport,
		Price:     input.Price,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := item.Validate(); err != nil {
		return player.Player{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.playerRepo.Create(ctx, item); err != nil {
		return player.Player{}, fmt.Errorf("create player: %w", err)
	}
	s.invalidateListCache(ctx)

	return item, nil
}

func (s *PlayerService) Update(ctx context.Context, requester user.Principal, input UpdatePlayerInput) (player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.Update")
	defer span.End()

	if !requester.IsAdmin() {
		return player.Player{}, fmt.Errorf("%w: admin role required", ErrForbidden)
	}

	item, err := s.GetByID(ctx, input.ID)
	if err != nil {
		return player.Player{}, err
	}

	if name := strings.TrimSpace(input.Name); name != "" {
		item.Name = name
	}
	if team := strings.TrimSpace(input.RealTeam); team != "" {
		item.RealTeam = team
	}
	if input.Price > 0 {
		item.Price = input.Price
	}
	item.UpdatedAt = s.now().UTC()

	if err := item.Validate(); err != nil {
		return player.Player{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := s.playerRepo.Update(ctx, item); err != nil {
		return player.Player{}, fmt.Errorf("update player: %w", err)
	}
	s.invalidateListCache(ctx)

	return item, nil
}

func (s *PlayerService) Delete(ctx context.Context, requester user.Principal, playerID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.Delete")
	defer span.End()

	if !requester.IsAdmin() {
		return fmt.Errorf("%w: admin role required", ErrForbidden)
	}

	playerID = strings.TrimSpace(playerID)
	if playerID == "" {
		return fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}

	if err := s.playerRepo.Delete(ctx, playerID); err != nil {
		return fmt.Errorf("delete player: %w", err)
	}
	s.invalidateListCache(ctx)
	return nil
}

func (s *PlayerService) invalidateListCache(ctx context.Context) {
	if s.cache != nil {
		s.cache.Delete(ctx, playerListCacheKey)
	}
}
