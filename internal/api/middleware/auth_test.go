package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/zoo-arcadia/arcadia-api/internal/core/domain"
	"github.com/zoo-arcadia/arcadia-api/internal/core/token"
)

type stubUserRepo struct {
	users map[string]*domain.User
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	if u, ok := r.users[id]; ok {
		return u, nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.users[user.ID] = user
	return user, nil
}

func (r *stubUserRepo) UpdatePasswordHash(_ context.Context, id, hash string, mustChange bool) error {
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.PasswordHash = hash
	u.MustChangePassword = mustChange
	return nil
}

func authFixture() (*token.Service, *stubUserRepo, *domain.User) {
	user := &domain.User{ID: "u-1", Email: "alice@zoo-arcadia.fr", Role: domain.Role{Name: domain.RoleAdmin}}
	repo := &stubUserRepo{users: map[string]*domain.User{user.ID: user}}
	return token.NewService("secret", 0, 0), repo, user
}

func runAuth(t *testing.T, tokens *token.Service, repo *stubUserRepo, header string) (error, bool) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	handler := Auth(tokens, repo)(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})
	return handler(c), called
}

func TestAuth_ValidToken(t *testing.T) {
	tokens, repo, user := authFixture()
	pair, err := tokens.Issue(user)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+pair.AccessToken)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := Auth(tokens, repo)(func(c echo.Context) error {
		principal, ok := c.Get(PrincipalKey).(*domain.User)
		if !ok || principal.ID != "u-1" {
			t.Fatalf("principal not injected: %+v", c.Get(PrincipalKey))
		}
		claims, ok := c.Get(ClaimsKey).(*token.Claims)
		if !ok || claims.Subject != "u-1" {
			t.Fatalf("claims not injected: %+v", c.Get(ClaimsKey))
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuth_MissingHeader(t *testing.T) {
	tokens, repo, _ := authFixture()

	err, called := runAuth(t, tokens, repo, "")
	if !errors.Is(err, domain.ErrMissingToken) {
		t.Fatalf("expected ErrMissingToken, got %v", err)
	}
	if called {
		t.Fatalf("next handler should not run")
	}
}

func TestAuth_MalformedHeader(t *testing.T) {
	tokens, repo, _ := authFixture()

	err, _ := runAuth(t, tokens, repo, "Token abc")
	if !errors.Is(err, domain.ErrMissingToken) {
		t.Fatalf("expected ErrMissingToken, got %v", err)
	}
}

func TestAuth_InvalidToken(t *testing.T) {
	tokens, repo, _ := authFixture()

	err, _ := runAuth(t, tokens, repo, "Bearer not-a-token")
	if !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestAuth_ExpiredToken(t *testing.T) {
	tokens, repo, user := authFixture()
	expired := token.NewService("secret", -time.Minute, time.Hour)
	pair, err := expired.Issue(user)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	verr, _ := runAuth(t, tokens, repo, "Bearer "+pair.AccessToken)
	if !errors.Is(verr, domain.ErrExpiredToken) {
		t.Fatalf("expected ErrExpiredToken, got %v", verr)
	}
}

func TestAuth_UnknownPrincipal(t *testing.T) {
	tokens, repo, user := authFixture()
	pair, err := tokens.Issue(user)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	delete(repo.users, user.ID)

	verr, _ := runAuth(t, tokens, repo, "Bearer "+pair.AccessToken)
	if !errors.Is(verr, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for unknown subject, got %v", verr)
	}
}
