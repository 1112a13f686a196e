package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/Abh1nav7/AgenticSprint/internal/core/domain"
)

func newAuthService(repo *stubUserRepo, tokens *stubTokens) *AuthService {
	return NewAuthService(repo, stubHasher{}, tokens, zerolog.Nop())
}

func TestAuthService_Signup_Success(t *testing.T) {
	repo := newStubUserRepo()
	tokens := &stubTokens{}
	svc := newAuthService(repo, tokens)

	token, user, err := svc.Signup(context.Background(), "Alice", "alice@example.com", "pass123")
	if err != nil {
		t.Fatalf("Signup returned error: %v", err)
	}
	if user == nil || user.ID == 0 {
		t.Fatalf("expected user with id, got %+v", user)
	}
	if user.PasswordHash == "pass123" {
		t.Fatalf("expected password to be hashed")
	}
	if token != "token-"+idString(user.ID) {
		t.Fatalf("unexpected token %q", token)
	}
	if len(tokens.issued) != 1 || tokens.issued[0].Extra["email"] != "alice@example.com" {
		t.Fatalf("unexpected claims: %+v", tokens.issued)
	}
	if user.CreatedAt.IsZero() {
		t.Fatalf("expected CreatedAt to be set")
	}
}

func TestAuthService_Signup_Duplicate(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthService(repo, &stubTokens{})

	if _, _, err := svc.Signup(context.Background(), "Alice", "alice@example.com", "pass123"); err != nil {
		t.Fatalf("first signup failed: %v", err)
	}
	if _, _, err := svc.Signup(context.Background(), "Other", "alice@example.com", "x"); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
	if len(repo.users) != 1 {
		t.Fatalf("expected a single stored user, got %d", len(repo.users))
	}
}

func TestAuthService_Signup_RaceLosesToUniqueIndex(t *testing.T) {
	repo := newStubUserRepo()
	repo.createErr = domain.ErrUserExists
	svc := newAuthService(repo, &stubTokens{})

	if _, _, err := svc.Signup(context.Background(), "Alice", "alice@example.com", "pass123"); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthService_Signup_TokenFailureKeepsNothing(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthService(repo, &stubTokens{err: errors.New("signing failed")})

	if _, _, err := svc.Signup(context.Background(), "Alice", "alice@example.com", "pass123"); err == nil {
		t.Fatalf("expected error")
	}
	if len(repo.users) != 0 {
		t.Fatalf("expected no stored user, got %d", len(repo.users))
	}
}

func TestAuthService_Signup_Validation(t *testing.T) {
	svc := newAuthService(newStubUserRepo(), &stubTokens{})

	_, _, err := svc.Signup(context.Background(), "", "alice@example.com", "pass")
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestAuthService_Login(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthService(repo, &stubTokens{})
	_, created, err := svc.Signup(context.Background(), "Alice", "alice@example.com", "pass123")
	if err != nil {
		t.Fatalf("Signup returned error: %v", err)
	}

	token, user, err := svc.Login(context.Background(), "alice@example.com", "pass123")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if user.ID != created.ID || token != "token-"+idString(created.ID) {
		t.Fatalf("unexpected login result %q %+v", token, user)
	}

	if _, _, err := svc.Login(context.Background(), "alice@example.com", "wrong"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, _, err := svc.Login(context.Background(), "bob@example.com", "pass123"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
