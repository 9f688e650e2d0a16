package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/zoo-arcadia/arcadia-api/internal/core/domain"
	"github.com/zoo-arcadia/arcadia-api/internal/core/token"
	"github.com/zoo-arcadia/arcadia-api/internal/pkg/hash"
)

func newAuthService(repo *stubUserRepo) *AuthService {
	tokens := token.NewService("secret", 0, 0)
	return NewAuthService(repo, tokens, hash.New(2), zerolog.Nop())
}

func seedUser(t *testing.T, repo *stubUserRepo, email, password, role string) *domain.User {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("hash seed password: %v", err)
	}
	return repo.add(&domain.User{
		Email:        email,
		PasswordHash: string(hashed),
		Role:         domain.Role{Name: role},
	})
}

func TestAuthService_Login_Success(t *testing.T) {
	repo := newStubUserRepo()
	seedUser(t, repo, "carol@zoo-arcadia.fr", "s3cret", domain.RoleVeterinaire)
	svc := newAuthService(repo)

	pair, user, err := svc.Login(context.Background(), "carol@zoo-arcadia.fr", "s3cret")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Fatalf("expected token pair, got %+v", pair)
	}
	if user == nil || user.Email != "carol@zoo-arcadia.fr" {
		t.Fatalf("unexpected user: %+v", user)
	}

	claims, err := token.NewService("secret", 0, 0).Verify(pair.AccessToken)
	if err != nil {
		t.Fatalf("verify issued token: %v", err)
	}
	if claims.Subject != user.ID || claims.Role != domain.RoleVeterinaire {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

// Wrong password and unknown email must be indistinguishable.
func TestAuthService_Login_InvalidIsUniform(t *testing.T) {
	repo := newStubUserRepo()
	seedUser(t, repo, "dave@zoo-arcadia.fr", "goodpass", domain.RoleEmploye)
	svc := newAuthService(repo)

	_, _, wrongPwd := svc.Login(context.Background(), "dave@zoo-arcadia.fr", "badpass")
	_, _, noUser := svc.Login(context.Background(), "ghost@zoo-arcadia.fr", "whatever")

	if !errors.Is(wrongPwd, domain.ErrInvalidCredentials) {
		t.Fatalf("wrong password: expected ErrInvalidCredentials, got %v", wrongPwd)
	}
	if !errors.Is(noUser, domain.ErrInvalidCredentials) {
		t.Fatalf("unknown email: expected ErrInvalidCredentials, got %v", noUser)
	}
	if wrongPwd.Error() != noUser.Error() {
		t.Fatalf("failure shapes differ: %q vs %q", wrongPwd, noUser)
	}
}

func TestAuthService_Login_EmptyInput(t *testing.T) {
	svc := newAuthService(newStubUserRepo())

	if _, _, err := svc.Login(context.Background(), "", "pwd"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, _, err := svc.Login(context.Background(), "a@b.fr", ""); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Refresh_ReissuesForCurrentPrincipal(t *testing.T) {
	repo := newStubUserRepo()
	user := seedUser(t, repo, "erin@zoo-arcadia.fr", "pwd", domain.RoleEmploye)
	svc := newAuthService(repo)

	pair, _, err := svc.Login(context.Background(), "erin@zoo-arcadia.fr", "pwd")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	// Role changes after the pair was minted; refresh must pick it up.
	repo.byID[user.ID].Role = domain.Role{Name: domain.RoleAdmin}

	fresh, refreshed, err := svc.Refresh(context.Background(), pair.RefreshToken)
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if refreshed.ID != user.ID {
		t.Fatalf("refresh changed subject: %s vs %s", refreshed.ID, user.ID)
	}

	claims, err := token.NewService("secret", 0, 0).Verify(fresh.AccessToken)
	if err != nil {
		t.Fatalf("verify refreshed token: %v", err)
	}
	if claims.Role != domain.RoleAdmin {
		t.Fatalf("expected refreshed role %q, got %q", domain.RoleAdmin, claims.Role)
	}
}

func TestAuthService_Refresh_SubjectGone(t *testing.T) {
	repo := newStubUserRepo()
	user := seedUser(t, repo, "frank@zoo-arcadia.fr", "pwd", domain.RoleEmploye)
	svc := newAuthService(repo)

	pair, _, err := svc.Login(context.Background(), "frank@zoo-arcadia.fr", "pwd")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	delete(repo.byID, user.ID)
	delete(repo.byEmail, user.Email)

	if _, _, err := svc.Refresh(context.Background(), pair.RefreshToken); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestAuthService_Refresh_BadTokens(t *testing.T) {
	repo := newStubUserRepo()
	seedUser(t, repo, "gina@zoo-arcadia.fr", "pwd", domain.RoleEmploye)
	svc := newAuthService(repo)

	if _, _, err := svc.Refresh(context.Background(), "garbage"); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}

	expiredIssuer := token.NewService("secret", -time.Minute, -time.Minute)
	pair, err := expiredIssuer.Issue(&domain.User{ID: "u-9", Email: "x@y.fr", Role: domain.Role{Name: domain.RoleEmploye}})
	if err != nil {
		t.Fatalf("issue expired pair: %v", err)
	}
	if _, _, err := svc.Refresh(context.Background(), pair.RefreshToken); !errors.Is(err, domain.ErrExpiredToken) {
		t.Fatalf("expected ErrExpiredToken, got %v", err)
	}
}
