package httpapi

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/riskibarqy/liga-fantasy/internal/domain/gameweek"
	"github.com/riskibarqy/liga-fantasy/internal/domain/player"
	"github.com/riskibarqy/liga-fantasy/internal/domain/roster"
	"github.com/riskibarqy/liga-fantasy/internal/domain/user"
	"github.com/riskibarqy/liga-fantasy/internal/platform/logging"
	"github.com/riskibarqy/liga-fantasy/internal/usecase"
)

// Pinger reports readiness of a backing dependency.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type Handler struct {
	authService       *usecase.AuthService
	userService       *usecase.UserService
	playerService     *usecase.PlayerService
	rosterService     *usecase.RosterService
	gameWeekService   *usecase.GameWeekService
	settlementService *usecase.SettlementService
	readiness         Pinger
	logger            *logging.Logger
	validator         *validator.Validate
}

func NewHandler(
	authService *usecase.AuthService,
	userService *usecase.UserService,
	playerService *usecase.PlayerService,
	rosterService *usecase.RosterService,
	gameWeekService *usecase.GameWeekService,
	settlementService *usecase.SettlementService,
	readiness Pinger,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		authService:       authService,
		userService:       userService,
		playerService:     playerService,
		rosterService:     rosterService,
		gameWeekService:   gameWeekService,
		settlementService: settlementService,
		readiness:         readiness,
		logger:            logger,
		validator:         validator.New(),
	}
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

type registerRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
	FirstName string `json:"first_name" validate:"omitempty,max=100"`
	LastName  string `json:"last_name" validate:"omitempty,max=100"`
	TeamName  string `json:"team_name" validate:"required,max=100"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type updateProfileRequest struct {
	FirstName string `json:"first_name" validate:"omitempty,max=100"`
	LastName  string `json:"last_name" validate:"omitempty,max=100"`
	TeamName  string `json:"team_name" validate:"omitempty,max=100"`
}

type rosterMutationRequest struct {
	GameWeekID int      `json:"game_week_id" validate:"required,gt=0"`
	PlayerIDs  []string `json:"player_ids" validate:"required,min=1,dive,required"`
}

type createPlayerRequest struct {
	Name     string `json:"name" validate:"required,max=150"`
	RealTeam string `json:"real_team" validate:"required,max=150"`
	Sport    string `json:"sport" validate:"required,oneof=football futsal"`
	Price    int64  `json:"price" validate:"required,gt=0"`
}

type updatePlayerRequest struct {
	Name     string `json:"name" validate:"omitempty,max=150"`
	RealTeam string `json:"real_team" validate:"omitempty,max=150"`
	Price    int64  `json:"price" validate:"omitempty,gt=0"`
}

type userDTO struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	TeamName  string `json:"team_name"`
	Balance   int64  `json:"balance"`
	Role      string `json:"role"`
	CreatedAt string `json:"created_at"`
}

type sessionDTO struct {
	User        userDTO `json:"user"`
	AccessToken string  `json:"access_token"`
	ExpiresAt   string  `json:"expires_at"`
}

type playerDTO struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	RealTeam      string  `json:"real_team"`
	Sport         string  `json:"sport"`
	Price         int64   `json:"price"`
	TotalPoints   int     `json:"total_points"`
	SelectionRate float64 `json:"selection_rate"`
	Matches       int     `json:"matches"`
	Goals         int     `json:"goals"`
	Assists       int     `json:"assists"`
	YellowCards   int     `json:"yellow_cards"`
	RedCards      int     `json:"red_cards"`
	MinutesPlayed int     `json:"minutes_played"`
}

type playerIssueDTO struct {
	PlayerID string `json:"player_id"`
	Reason   string `json:"reason"`
}

type rosterDTO struct {
	ID            string   `json:"id"`
	UserID        string   `json:"user_id"`
	GameWeekID    int      `json:"game_week_id"`
	PlayerIDs     []string `json:"player_ids"`
	CaptainID     string   `json:"captain_id,omitempty"`
	ViceCaptainID string   `json:"vice_captain_id,omitempty"`
	Points        int      `json:"points"`
}

type rosterMutationDTO struct {
	Roster   rosterDTO        `json:"roster"`
	Balance  int64            `json:"balance"`
	Deadline string           `json:"deadline"`
	Errors   []playerIssueDTO `json:"errors,omitempty"`
}

type rosterViewDTO struct {
	Roster  rosterDTO   `json:"roster"`
	Players []playerDTO `json:"players"`
}

type gameWeekDTO struct {
	ID        int    `json:"id"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

func userToDTO(item user.User) userDTO {
	return userDTO{
		ID:        item.ID,
		Email:     item.Email,
		FirstName: item.FirstName,
		LastName:  item.LastName,
		TeamName:  item.TeamName,
		Balance:   item.Balance,
		Role:      string(item.Role),
		CreatedAt: item.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func sessionToDTO(session usecase.AuthSession) sessionDTO {
	return sessionDTO{
		User:        userToDTO(session.User),
		AccessToken: session.AccessToken,
		ExpiresAt:   session.ExpiresAt.UTC().Format(time.RFC3339),
	}
}

func playerToDTO(item player.Player) playerDTO {
	return playerDTO{
		ID:            item.ID,
		Name:          item.Name,
		RealTeam:      item.RealTeam,
		Sport:         string(item.Sport),
		Price:         item.Price,
		TotalPoints:   item.TotalPoints,
		SelectionRate: item.SelectionRate,
		Matches:       item.Stats.Matches,
		Goals:         item.Stats.Goals,
		Assists:       item.Stats.Assists,
		YellowCards:   item.Stats.YellowCards,
		RedCards:      item.Stats.RedCards,
		MinutesPlayed: item.Stats.MinutesPlayed,
	}
}

func playersToDTO(items []player.Player) []playerDTO {
	out := make([]playerDTO, 0, len(items))
	for _, item := range items {
		out = append(out, playerToDTO(item))
	}
	return out
}

func rosterToDTO(item roster.Roster) rosterDTO {
	ids := item.PlayerIDs
	if ids == nil {
		ids = []string{}
	}
	return rosterDTO{
		ID:            item.ID,
		UserID:        item.UserID,
		GameWeekID:    item.GameWeekID,
		PlayerIDs:     ids,
		CaptainID:     item.CaptainID,
		ViceCaptainID: item.ViceCaptainID,
		Points:        item.Points,
	}
}

func rosterMutationToDTO(result usecase.RosterMutationResult) rosterMutationDTO {
	issues := make([]playerIssueDTO, 0, len(result.Issues))
	for _, issue := range result.Issues {
		issues = append(issues, playerIssueDTO{
			PlayerID: issue.PlayerID,
			Reason:   issue.Reason,
		})
	}
	return rosterMutationDTO{
		Roster:   rosterToDTO(result.Roster),
		Balance:  result.Balance,
		Deadline: result.Deadline.UTC().Format(time.RFC3339),
		Errors:   issues,
	}
}

func gameWeekToDTO(item gameweek.GameWeek) gameWeekDTO {
	return gameWeekDTO{
		ID:        item.ID,
		StartDate: item.StartDate.UTC().Format(time.RFC3339),
		EndDate:   item.EndDate.UTC().Format(time.RFC3339),
	}
}

func gameWeeksToDTO(items []gameweek.GameWeek) []gameWeekDTO {
	out := make([]gameWeekDTO, 0, len(items))
	for _, item := range items {
		out = append(out, gameWeekToDTO(item))
	}
	return out
}
