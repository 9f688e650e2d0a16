package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/zoo-arcadia/arcadia-api/internal/core/domain"
	"github.com/zoo-arcadia/arcadia-api/internal/core/ports"
	"github.com/zoo-arcadia/arcadia-api/internal/core/token"
	"github.com/zoo-arcadia/arcadia-api/internal/pkg/hash"
)

// AuthService implements login and token refresh.
type AuthService struct {
	users  ports.UserRepository
	tokens *token.Service
	hasher *hash.Hasher
	log    zerolog.Logger
}

func NewAuthService(users ports.UserRepository, tokens *token.Service, hasher *hash.Hasher, log zerolog.Logger) *AuthService {
	return &AuthService{users: users, tokens: tokens, hasher: hasher, log: log}
}

// Login checks the email/password pair and issues a token pair. A missing
// user and a wrong password both come back as ErrInvalidCredentials so the
// response cannot be used to probe which emails have accounts.
func (s *AuthService) Login(ctx context.Context, email, password string) (domain.TokenPair, *domain.User, error) {
	if email == "" || password == "" {
		return domain.TokenPair{}, nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.TokenPair{}, nil, domain.ErrInvalidCredentials
		}
		return domain.TokenPair{}, nil, err
	}

	if err := s.hasher.Compare(ctx, user.PasswordHash, password); err != nil {
		return domain.TokenPair{}, nil, err
	}

	pair, err := s.tokens.Issue(user)
	if err != nil {
		return domain.TokenPair{}, nil, err
	}

	s.log.Info().Str("user_id", user.ID).Str("role", user.Role.Name).Msg("login succeeded")
	return pair, user, nil
}

// Refresh verifies the presented refresh token and issues a fresh pair for
// the current state of the principal (role or email may have changed since
// the token was minted). The old refresh token stays valid until its own
// expiry; there is no rotation.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (domain.TokenPair, *domain.User, error) {
	claims, err := s.tokens.Verify(refreshToken)
	if err != nil {
		return domain.TokenPair{}, nil, err
	}

	user, err := s.users.FindByID(ctx, claims.Subject)
	if err != nil {
		return domain.TokenPair{}, nil, err
	}

	pair, err := s.tokens.Issue(user)
	if err != nil {
		return domain.TokenPair{}, nil, err
	}
	return pair, user, nil
}
