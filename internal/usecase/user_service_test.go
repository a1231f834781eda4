package usecase

import (
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/liga-fantasy/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/liga-fantasy/internal/platform/logging"
)

func newUserFixture() (*UserService, *memory.UserRepository) {
	repo := memory.NewUserRepository(memory.SeedUsers())
	service := NewUserService(repo, logging.NewNop())
	service.now = func() time.Time { return midWeekOne }
	return service, repo
}

func TestUserService_GetProfileStripsPasswordHash(t *testing.T) {
	service, _ := newUserFixture()

	account, err := service.GetProfile(t.Context(), userPrincipal)
	if err != nil {
		t.Fatalf("get profile: %v", err)
	}
	if account.ID != memory.SeedDevUserID {
		t.Fatalf("unexpected account %s", account.ID)
	}
	if account.PasswordHash != "" {
		t.Fatal("password hash must not leave the service")
	}
}

func TestUserService_UpdateProfilePartial(t *testing.T) {
	service, repo := newUserFixture()

	updated, err := service.UpdateProfile(t.Context(), userPrincipal, UpdateProfileInput{
		TeamName: "Timnas Day XI",
	})
	if err != nil {
		t.Fatalf("update profile: %v", err)
	}
	if updated.TeamName != "Timnas Day XI" {
		t.Fatalf("unexpected team name %q", updated.TeamName)
	}

	stored, exists, err := repo.GetByID(t.Context(), memory.SeedDevUserID)
	if err != nil || !exists {
		t.Fatalf("load stored user: exists=%v err=%v", exists, err)
	}
	if stored.TeamName != "Timnas Day XI" {
		t.Fatalf("team name not persisted: %q", stored.TeamName)
	}
	if !stored.UpdatedAt.Equal(midWeekOne) {
		t.Fatalf("expected updated_at %s, got %s", midWeekOne, stored.UpdatedAt)
	}
}

func TestUserService_DeleteAccountGating(t *testing.T) {
	service, repo := newUserFixture()

	if err := service.DeleteAccount(t.Context(), userPrincipal, memory.SeedAdminUserID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden deleting another account, got %v", err)
	}

	// An empty target means the requester's own account.
	if err := service.DeleteAccount(t.Context(), userPrincipal, ""); err != nil {
		t.Fatalf("delete own account: %v", err)
	}
	if _, exists, _ := repo.GetByID(t.Context(), memory.SeedDevUserID); exists {
		t.Fatal("expected account to be gone")
	}

	// Admins may delete any account.
	if err := service.DeleteAccount(t.Context(), adminPrincipal, memory.SeedAdminUserID); err != nil {
		t.Fatalf("admin self delete: %v", err)
	}
}
