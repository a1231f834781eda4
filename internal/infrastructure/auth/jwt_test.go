package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/liga-fantasy/internal/domain/user"
	"github.com/riskibarqy/liga-fantasy/internal/usecase"
)

var testPrincipal = user.Principal{
	UserID: "usr-001",
	Email:  "andi@example.com",
	Role:   user.RoleAdmin,
}

func TestTokenManager_RoundTrip(t *testing.T) {
	manager := NewTokenManager("test-secret", 30*time.Minute, "liga-fantasy")
	issued := time.Date(2024, 10, 20, 12, 0, 0, 0, time.UTC)
	manager.now = func() time.Time { return issued }

	token, expiresAt, err := manager.IssueAccessToken(testPrincipal)
	if err != nil {
		t.Fatalf("issue token failed: %v", err)
	}
	if !expiresAt.Equal(issued.Add(30 * time.Minute)) {
		t.Fatalf("unexpected expiry %v", expiresAt)
	}

	principal, err := manager.VerifyAccessToken(t.Context(), token)
	if err != nil {
		t.Fatalf("verify token failed: %v", err)
	}
	if principal != testPrincipal {
		t.Fatalf("expected %+v, got %+v", testPrincipal, principal)
	}
}

func TestTokenManager_ExpiredToken(t *testing.T) {
	manager := NewTokenManager("test-secret", 30*time.Minute, "liga-fantasy")
	issued := time.Date(2024, 10, 20, 12, 0, 0, 0, time.UTC)
	manager.now = func() time.Time { return issued }

	token, _, err := manager.IssueAccessToken(testPrincipal)
	if err != nil {
		t.Fatalf("issue token failed: %v", err)
	}

	manager.now = func() time.Time { return issued.Add(31 * time.Minute) }
	if _, err := manager.VerifyAccessToken(t.Context(), token); !errors.Is(err, usecase.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for expired token, got %v", err)
	}
}

func TestTokenManager_WrongSecretAndIssuer(t *testing.T) {
	manager := NewTokenManager("test-secret", 30*time.Minute, "liga-fantasy")

	token, _, err := manager.IssueAccessToken(testPrincipal)
	if err != nil {
		t.Fatalf("issue token failed: %v", err)
	}

	other := NewTokenManager("other-secret", 30*time.Minute, "liga-fantasy")
	if _, err := other.VerifyAccessToken(t.Context(), token); !errors.Is(err, usecase.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for wrong secret, got %v", err)
	}

	wrongIssuer := NewTokenManager("test-secret", 30*time.Minute, "someone-else")
	if _, err := wrongIssuer.VerifyAccessToken(t.Context(), token); !errors.Is(err, usecase.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for wrong issuer, got %v", err)
	}
}

func TestTokenManager_EmptyToken(t *testing.T) {
	manager := NewTokenManager("test-secret", 30*time.Minute, "liga-fantasy")

	if _, err := manager.VerifyAccessToken(t.Context(), "  "); !errors.Is(err, usecase.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for empty token, got %v", err)
	}
}

func TestBcryptHasher(t *testing.T) {
	hasher := NewBcryptHasher(4)

	hashed, err := hasher.Hash("sandiaman123")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	if hashed == "sandiaman123" {
		t.Fatal("hash must not equal the plaintext")
	}

	if !hasher.Compare(hashed, "sandiaman123") {
		t.Fatal("expected matching password to compare true")
	}
	if hasher.Compare(hashed, "wrongpass99") {
		t.Fatal("expected mismatched password to compare false")
	}
}

func TestNewBcryptHasher_ClampsInvalidCost(t *testing.T) {
	hasher := NewBcryptHasher(99)

	hashed, err := hasher.Hash("sandiaman123")
	if err != nil {
		t.Fatalf("hash with clamped cost failed: %v", err)
	}
	if !hasher.Compare(hashed, "sandiaman123") {
		t.Fatal("expected clamped hasher to round-trip")
	}
}
