package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/liga-fantasy/internal/domain/gameweek"
	"github.com/riskibarqy/liga-fantasy/internal/domain/player"
	"github.com/riskibarqy/liga-fantasy/internal/domain/roster"
	"github.com/riskibarqy/liga-fantasy/internal/domain/user"
	idgen "github.com/riskibarqy/liga-fantasy/internal/platform/id"
	"github.com/riskibarqy/liga-fantasy/internal/platform/logging"
)

// RosterMutationInput is the incoming payload for add/remove batches.
type RosterMutationInput struct {
	UserID     string
	GameWeekID int
	PlayerIDs  []string
}

// PlayerIssue reports why one batch member was rejected. Batch semantics
// are best-effort: members that pass are applied, the rest are reported
// here instead of failing the whole call.
type PlayerIssue struct {
	PlayerID string
	Reason   string
}

type RosterMutationResult struct {
	Roster   roster.Roster
	Balance  int64
	Deadline time.Time
	Issues   []PlayerIssue
}

// RosterService owns the balance/membership invariants of user rosters.
// Every committed batch writes roster membership, the owner balance and the
// players' transfer counters in one repository transaction.
type RosterService struct {
	userRepo   user.Repository
	playerRepo player.Repository
	rosterRepo roster.Repository
	schedule   *gameweek.Schedule
	rules      roster.Rules
	idGen      idgen.Generator
	logger     *logging.Logger
	now        func() time.Time
}

func NewRosterService(
	userRepo user.Repository,
	playerRepo player.Repository,
	rosterRepo roster.Repository,
	schedule *gameweek.Schedule,
	rules roster.Rules,
	idGen idgen.Generator,
	logger *logging.Logger,
) *RosterService {
	if logger == nil {
		logger = logging.Default()
	}

	return &RosterService{
		userRepo:   userRepo,
		playerRepo: playerRepo,
		rosterRepo: rosterRepo,
		schedule:   schedule,
		rules:      rules,
		idGen:      idGen,
		logger:     logger,
		now:        time.Now,
	}
}

func (s *RosterService) AddPlayers(ctx context.Context, input RosterMutationInput) (RosterMutationResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.AddPlayers")
	defer span.End()

	week, owner, current, err := s.prepareMutation(ctx, input)
	if err != nil {
		return RosterMutationResult{}, err
	}

	draft, err := s.buildDraft(ctx, current, owner.Balance)
	if err != nil {
		return RosterMutationResult{}, err
	}

	ids, err := normalizePlayerIDs(input.PlayerIDs)
	if err != nil {
		return RosterMutationResult{}, err
	}
	requested, err := s.loadRequested(ctx, ids)
	if err != nil {
		return RosterMutationResult{}, err
	}

	updated := current.Clone()
	var issues []PlayerIssue
	var added []string
	for _, id := range ids {
		p, known := requested[id]
		if !known {
			issues = append(issues, PlayerIssue{PlayerID: id, Reason: roster.ErrUnknownPlayer.Error()})
			continue
		}
		if addErr := draft.Add(p); addErr != nil {
			issues = append(issues, PlayerIssue{PlayerID: id, Reason: addErr.Error()})
			continue
		}
		updated.PlayerIDs = append(updated.PlayerIDs, id)
		added = append(added, id)
	}

	if len(added) > 0 {
		updated.UpdatedAt = s.now().UTC()
		mutation := roster.Mutation{
			Roster:      updated,
			NewBalance:  draft.Balance(),
			TransfersIn: added,
		}
		if err := s.rosterRepo.CommitMutation(ctx, mutation); err != nil {
			return RosterMutationResult{}, fmt.Errorf("commit roster addition: %w", err)
		}

		s.logger.InfoContext(ctx, "players added to roster",
			"user_id", input.UserID,
			"game_week_id", input.GameWeekID,
			"added", len(added),
			"rejected", len(issues),
			"balance", draft.Balance(),
		)
	}

	return RosterMutationResult{
		Roster:   updated,
		Balance:  draft.Balance(),
		Deadline: week.EndDate,
		Issues:   issues,
	}, nil
}

func (s *RosterService) RemovePlayers(ctx context.Context, input RosterMutationInput) (RosterMutationResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.RemovePlayers")
	defer span.End()

	week, owner, current, err := s.prepareMutation(ctx, input)
	if err != nil {
		return RosterMutationResult{}, err
	}

	draft, err := s.buildDraft(ctx, current, owner.Balance)
	if err != nil {
		return RosterMutationResult{}, err
	}

	ids, err := normalizePlayerIDs(input.PlayerIDs)
	if err != nil {
		return RosterMutationResult{}, err
	}
	requested, err := s.loadRequested(ctx, ids)
	if err != nil {
		return RosterMutationResult{}, err
	}

	updated := current.Clone()
	var issues []PlayerIssue
	var removed []string
	for _, id := range ids {
		p, known := requested[id]
		if !known {
			issues = append(issues, PlayerIssue{PlayerID: id, Reason: roster.ErrUnknownPlayer.Error()})
			continue
		}
		if removeErr := draft.Remove(p); removeErr != nil {
			issues = append(issues, PlayerIssue{PlayerID: id, Reason: removeErr.Error()})
			continue
		}
		updated.PlayerIDs = deleteID(updated.PlayerIDs, id)
		if updated.CaptainID == id {
			updated.CaptainID = ""
		}
		if updated.ViceCaptainID == id {
			updated.ViceCaptainID = ""
		}
		removed = append(removed, id)
	}

	if len(removed) > 0 {
		updated.UpdatedAt = s.now().UTC()
		mutation := roster.Mutation{
			Roster:       updated,
			NewBalance:   draft.Balance(),
			TransfersOut: removed,
		}
		if err := s.rosterRepo.CommitMutation(ctx, mutation); err != nil {
			return RosterMutationResult{}, fmt.Errorf("commit roster removal: %w", err)
		}

		s.logger.InfoContext(ctx, "players removed from roster",
			"user_id", input.UserID,
			"game_week_id", input.GameWeekID,
			"removed", len(removed),
			"rejected", len(issues),
			"balance", draft.Balance(),
		)
	}

	return RosterMutationResult{
		Roster:   updated,
		Balance:  draft.Balance(),
		Deadline: week.EndDate,
		Issues:   issues,
	}, nil
}

// EnsureRosterForWeek is the idempotent get-or-create run before any
// mutation: a user's first touch of a new game week clones the most recent
// prior week's membership and captaincy, or starts empty.
func (s *RosterService) EnsureRosterForWeek(ctx context.Context, userID string, gameWeekID int) (roster.Roster, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.EnsureRosterForWeek")
	defer span.End()

	userID = strings.TrimSpace(userID)
	if userID == "" {
		return roster.Roster{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	if _, ok := s.schedule.ByID(gameWeekID); !ok {
		return roster.Roster{}, fmt.Errorf("%w: game week %d", ErrNotFound, gameWeekID)
	}

	existing, found, err := s.rosterRepo.GetByUserAndWeek(ctx, userID, gameWeekID)
	if err != nil {
		return roster.Roster{}, fmt.Errorf("get roster: %w", err)
	}
	if found {
		return existing, nil
	}

	id, err := s.idGen.NewID()
	if err != nil {
		return roster.Roster{}, fmt.Errorf("generate roster id: %w", err)
	}

	now := s.now().UTC()
	fresh := roster.Roster{
		ID:         id,
		UserID:     userID,
		GameWeekID: gameWeekID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	prior, hasPrior, err := s.rosterRepo.GetLatestBefore(ctx, userID, gameWeekID)
	if err != nil {
		return roster.Roster{}, fmt.Errorf("get prior roster: %w", err)
	}
	if hasPrior {
		fresh.PlayerIDs = append([]string(nil), prior.PlayerIDs...)
		fresh.CaptainID = prior.CaptainID
		fresh.ViceCaptainID = prior.ViceCaptainID
	}

	if err := s.rosterRepo.Create(ctx, fresh); err != nil {
		return roster.Roster{}, fmt.Errorf("create roster: %w", err)
	}

	s.logger.InfoContext(ctx, "roster created for game week",
		"user_id", userID,
		"game_week_id", gameWeekID,
		"cloned_from_prior", hasPrior,
		"player_count", len(fresh.PlayerIDs),
	)

	return fresh, nil
}

// ViewRoster applies the temporal-disclosure rule: another user's roster
// for the currently active week stays hidden until its deadline passes, so
// picks cannot be copied before lock-in.
func (s *RosterService) ViewRoster(ctx context.Context, requester user.Principal, targetUserID string, gameWeekID int) (roster.Roster, []player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.ViewRoster")
	defer span.End()

	targetUserID = strings.TrimSpace(targetUserID)
	if targetUserID == "" {
		targetUserID = requester.UserID
	}

	week, ok := s.schedule.ByID(gameWeekID)
	if !ok {
		return roster.Roster{}, nil, fmt.Errorf("%w: game week %d", ErrNotFound, gameWeekID)
	}

	if targetUserID != requester.UserID && !requester.IsAdmin() {
		now := s.now().UTC()
		if week.IsActive(now) && !week.DeadlinePassed(now) {
			return roster.Roster{}, nil, fmt.Errorf("%w: game week %d", ErrNotYetVisible, gameWeekID)
		}
	}

	item, found, err := s.rosterRepo.GetByUserAndWeek(ctx, targetUserID, gameWeekID)
	if err != nil {
		return roster.Roster{}, nil, fmt.Errorf("get roster: %w", err)
	}
	if !found {
		return roster.Roster{}, nil, fmt.Errorf("%w: roster for user %s, game week %d", ErrNotFound, targetUserID, gameWeekID)
	}

	members, err := s.playerRepo.GetByIDs(ctx, item.PlayerIDs)
	if err != nil {
		return roster.Roster{}, nil, fmt.Errorf("get roster players: %w", err)
	}

	return item, members, nil
}

func (s *RosterService) prepareMutation(ctx context.Context, input RosterMutationInput) (gameweek.GameWeek, user.User, roster.Roster, error) {
	input.UserID = strings.TrimSpace(input.UserID)
	if input.UserID == "" {
		return gameweek.GameWeek{}, user.User{}, roster.Roster{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	if len(input.PlayerIDs) == 0 {
		return gameweek.GameWeek{}, user.User{}, roster.Roster{}, fmt.Errorf("%w: player ids are required", ErrInvalidInput)
	}

	week, ok := s.schedule.ByID(input.GameWeekID)
	if !ok {
		return gameweek.GameWeek{}, user.User{}, roster.Roster{}, fmt.Errorf("%w: game week %d", ErrNotFound, input.GameWeekID)
	}
	if week.DeadlinePassed(s.now().UTC()) {
		return gameweek.GameWeek{}, user.User{}, roster.Roster{}, fmt.Errorf("%w: game week %d closed at %s", ErrDeadlinePassed, week.ID, week.EndDate.Format(time.RFC3339))
	}

	owner, found, err := s.userRepo.GetByID(ctx, input.UserID)
	if err != nil {
		return gameweek.GameWeek{}, user.User{}, roster.Roster{}, fmt.Errorf("get user: %w", err)
	}
	if !found {
		return gameweek.GameWeek{}, user.User{}, roster.Roster{}, fmt.Errorf("%w: user %s", ErrNotFound, input.UserID)
	}

	current, err := s.EnsureRosterForWeek(ctx, input.UserID, input.GameWeekID)
	if err != nil {
		return gameweek.GameWeek{}, user.User{}, roster.Roster{}, err
	}

	return week, owner, current, nil
}

func (s *RosterService) buildDraft(ctx context.Context, current roster.Roster, balance int64) (*roster.Draft, error) {
	members, err := s.playerRepo.GetByIDs(ctx, current.PlayerIDs)
	if err != nil {
		return nil, fmt.Errorf("get current roster players: %w", err)
	}

	teamByPlayerID := make(map[string]string, len(members))
	for _, p := range members {
		teamByPlayerID[p.ID] = p.RealTeam
	}

	return roster.NewDraft(current, teamByPlayerID, balance, s.rules), nil
}

// normalizePlayerIDs trims each requested id, preserving order and
// duplicates so the apply loop reports issues against every entry.
func normalizePlayerIDs(playerIDs []string) ([]string, error) {
	ids := make([]string, 0, len(playerIDs))
	for _, id := range playerIDs {
		id = strings.TrimSpace(id)
		if id == "" {
			return nil, fmt.Errorf("%w: player id cannot be empty", ErrInvalidInput)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func (s *RosterService) loadRequested(ctx context.Context, playerIDs []string) (map[string]player.Player, error) {
	unique := make([]string, 0, len(playerIDs))
	seen := make(map[string]struct{}, len(playerIDs))
	for _, id := range playerIDs {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}

	found, err := s.playerRepo.GetByIDs(ctx, unique)
	if err != nil {
		return nil, fmt.Errorf("get requested players: %w", err)
	}

	byID := make(map[string]player.Player, len(found))
	for _, p := range found {
		byID[p.ID] = p
	}
	return byID, nil
}

func deleteID(ids []string, target string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == target {
			continue
		}
		out = append(out, id)
	}
	return out
}
