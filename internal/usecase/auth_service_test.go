package usecase

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/riskibarqy/liga-fantasy/internal/domain/user"
	"github.com/riskibarqy/liga-fantasy/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/liga-fantasy/internal/platform/logging"
)

type reverseHasher struct{}

func (reverseHasher) Hash(plaintext string) (string, error) {
	return "hashed:" + plaintext, nil
}

func (reverseHasher) Compare(hashed, plaintext string) bool {
	return hashed == "hashed:"+plaintext
}

type stubTokenIssuer struct{}

func (stubTokenIssuer) IssueAccessToken(principal user.Principal) (string, time.Time, error) {
	return "token-for-" + principal.UserID, time.Date(2024, 10, 20, 13, 0, 0, 0, time.UTC), nil
}

func newAuthFixture() (*AuthService, *memory.UserRepository) {
	userRepo := memory.NewUserRepository(nil)
	service := NewAuthService(
		userRepo,
		reverseHasher{},
		stubTokenIssuer{},
		&seqIDGenerator{prefix: "usr"},
		logging.NewNop(),
	)
	service.now = func() time.Time { return time.Date(2024, 10, 20, 12, 0, 0, 0, time.UTC) }

	return service, userRepo
}

func TestAuthService_Register(t *testing.T) {
	service, userRepo := newAuthFixture()

	session, err := service.Register(t.Context(), RegisterInput{
		Email:    "  Andi@Example.com ",
		Password: "sandiaman123",
		TeamName: "Garuda XI",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if session.User.Email != "andi@example.com" {
		t.Fatalf("expected normalized email, got %s", session.User.Email)
	}
	if session.User.Balance != user.InitialBalance {
		t.Fatalf("expected starting balance %d, got %d", user.InitialBalance, session.User.Balance)
	}
	if session.User.Role != user.RoleUser {
		t.Fatalf("expected role user, got %s", session.User.Role)
	}
	if session.User.PasswordHash != "" {
		t.Fatal("password hash must not leak into the session")
	}
	if session.AccessToken == "" {
		t.Fatal("expected an access token")
	}

	stored, found, err := userRepo.GetByEmail(t.Context(), "andi@example.com")
	if err != nil || !found {
		t.Fatalf("expected stored user, found=%t err=%v", found, err)
	}
	if stored.PasswordHash != "hashed:sandiaman123" {
		t.Fatalf("expected hashed credential, got %s", stored.PasswordHash)
	}
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	service, _ := newAuthFixture()

	input := RegisterInput{Email: "andi@example.com", Password: "sandiaman123", TeamName: "Garuda XI"}
	if _, err := service.Register(t.Context(), input); err != nil {
		t.Fatalf("first register failed: %v", err)
	}

	_, err := service.Register(t.Context(), input)
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for duplicate email, got %v", err)
	}
}

func TestAuthService_Register_WeakPassword(t *testing.T) {
	service, _ := newAuthFixture()

	cases := []string{"short1", "allletters", "1234567890"}
	for _, password := range cases {
		_, err := service.Register(t.Context(), RegisterInput{
			Email:    fmt.Sprintf("%s@example.com", password),
			Password: password,
			TeamName: "Garuda XI",
		})
		if !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput for password %q, got %v", password, err)
		}
	}
}

func TestAuthService_Login(t *testing.T) {
	service, _ := newAuthFixture()

	if _, err := service.Register(t.Context(), RegisterInput{
		Email:    "andi@example.com",
		Password: "sandiaman123",
		TeamName: "Garuda XI",
	}); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	session, err := service.Login(t.Context(), LoginInput{
		Email:    "ANDI@example.com",
		Password: "sandiaman123",
	})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if session.AccessToken == "" {
		t.Fatal("expected an access token")
	}

	_, err = service.Login(t.Context(), LoginInput{Email: "andi@example.com", Password: "wrongpass99"})
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for bad password, got %v", err)
	}

	_, err = service.Login(t.Context(), LoginInput{Email: "nobody@example.com", Password: "sandiaman123"})
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for unknown email, got %v", err)
	}
}
