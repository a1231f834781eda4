package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/riskibarqy/liga-fantasy/internal/domain/user"
	idgen "github.com/riskibarqy/liga-fantasy/internal/platform/id"
	"github.com/riskibarqy/liga-fantasy/internal/platform/logging"
)

type RegisterInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	TeamName  string
}

type LoginInput struct {
	Email    string
	Password string
}

type AuthSession struct {
	User        user.User
	AccessToken string
	ExpiresAt   time.Time
}

// PasswordHasher abstracts the hashing scheme used for stored credentials.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Compare(hashed, plaintext string) bool
}

// TokenIssuer mints access tokens for an authenticated principal.
type TokenIssuer interface {
	IssueAccessToken(principal user.Principal) (string, time.Time, error)
}

type AuthService struct {
	userRepo user.Repository
	hasher   PasswordHasher
	issuer   TokenIssuer
	idGen    idgen.Generator
	logger   *logging.Logger
	now      func() time.Time
}

func NewAuthService(
	userRepo user.Repository,
	hasher PasswordHasher,
	issuer TokenIssuer,
	idGen idgen.Generator,
	logger *logging.Logger,
) *AuthService {
	if logger == nil {
		logger = logging.Default()
	}

	return &AuthService{
		userRepo: userRepo,
		hasher:   hasher,
		issuer:   issuer,
		idGen:    idGen,
		logger:   logger,
		now:      time.Now,
	}
}

// Register creates an account with the league's starting balance and logs
// the new user in.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (AuthSession, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AuthService.Register")
	defer span.End()

	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	input.FirstName = strings.TrimSpace(input.FirstName)
	input.LastName = strings.TrimSpace(input.LastName)
	input.TeamName = strings.TrimSpace(input.TeamName)

	if input.Email == "" {
		return AuthSession{}, fmt.Errorf("%w: email is required", ErrInvalidInput)
	}
	if input.TeamName == "" {
		return AuthSession{}, fmt.Errorf("%w: team name is required", ErrInvalidInput)
	}
	if err := validatePassword(input.Password); err != nil {
		return AuthSession{}, err
	}

	if _, exists, err := s.userRepo.GetByEmail(ctx, input.Email); err != nil {
		return AuthSession{}, fmt.Errorf("get user by email: %w", err)
	} else if exists {
		return AuthSession{}, fmt.Errorf("%w: email is already registered", ErrInvalidInput)
	}

	hashed, err := s.hasher.Hash(input.Password)
	if err != nil {
		return AuthSession{}, err
	}

	id, err := s.idGen.NewID()
	if err != nil {
		return AuthSession{}, fmt.Errorf("generate user id: %w", err)
	}

	now := s.now().UTC()
	account := user.User{
		ID:           id,
		Email:        input.Email,
		PasswordHash: hashed,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		TeamName:     input.TeamName,
		Balance:      user.InitialBalance,
		Role:         user.RoleUser,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.userRepo.Create(ctx, account); err != nil {
		return AuthSession{}, fmt.Errorf("create user: %w", err)
	}

	s.logger.InfoContext(ctx, "user registered",
		"user_id", account.ID,
		"team_name", account.TeamName,
	)

	return s.issueSession(account)
}

func (s *AuthService) Login(ctx context.Context, input LoginInput) (AuthSession, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AuthService.Login")
	defer span.End()

	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	if input.Email == "" || input.Password == "" {
		return AuthSession{}, fmt.Errorf("%w: email and password are required", ErrInvalidInput)
	}

	account, exists, err := s.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		return AuthSession{}, fmt.Errorf("get user by email: %w", err)
	}
	if !exists || !s.hasher.Compare(account.PasswordHash, input.Password) {
		return AuthSession{}, fmt.Errorf("%w: invalid credentials", ErrUnauthorized)
	}

	s.logger.InfoContext(ctx, "user logged in", "user_id", account.ID)

	return s.issueSession(account)
}

func (s *AuthService) issueSession(account user.User) (AuthSession, error) {
	principal := user.Principal{
		UserID: account.ID,
		Email:  account.Email,
		Role:   account.Role,
	}

	token, expiresAt, err := s.issuer.IssueAccessToken(principal)
	if err != nil {
		return AuthSession{}, fmt.Errorf("issue access token: %w", err)
	}

	account.PasswordHash = ""
	return AuthSession{
		User:        account,
		AccessToken: token,
		ExpiresAt:   expiresAt,
	}, nil
}

func validatePassword(password string) error {
	if len(password) < 8 {
		return fmt.Errorf("%w: password must be at least 8 characters", ErrInvalidInput)
	}

	var hasLetter, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasLetter || !hasDigit {
		return fmt.Errorf("%w: password must contain letters and digits", ErrInvalidInput)
	}
	return nil
}
