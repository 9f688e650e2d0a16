package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/rs/zerolog"

	"github.com/zoo-arcadia/arcadia-api/internal/core/domain"
	"github.com/zoo-arcadia/arcadia-api/internal/core/ports"
	"github.com/zoo-arcadia/arcadia-api/internal/pkg/hash"
)

const (
	tempPasswordLen     = 12
	tempPasswordCharset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%&*"

	resetCodeLen     = 6
	resetCodeCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

	// DefaultResetTTL is how long a reset code stays usable after issuance.
	DefaultResetTTL = 15 * time.Minute
)

// PasswordService manages temporary passwords, password changes, and the
// reset-code issue/verify/consume protocol.
//
// Reset-code lifecycle: absent → issued (initiate, replacing any prior code)
// → consumed on a successful reset, or discarded the first time it is seen
// past its TTL. Verification alone never consumes a code.
type PasswordService struct {
	users  ports.UserRepository
	codes  ports.ResetCodeStore
	mailer ports.Mailer
	hasher *hash.Hasher
	ttl    time.Duration
	now    func() time.Time
	log    zerolog.Logger
}

func NewPasswordService(
	users ports.UserRepository,
	codes ports.ResetCodeStore,
	mailer ports.Mailer,
	hasher *hash.Hasher,
	ttl time.Duration,
	log zerolog.Logger,
) *PasswordService {
	if ttl <= 0 {
		ttl = DefaultResetTTL
	}
	return &PasswordService{
		users:  users,
		codes:  codes,
		mailer: mailer,
		hasher: hasher,
		ttl:    ttl,
		now:    time.Now,
		log:    log,
	}
}

// ProvisionUser creates an account with a generated temporary password. Only
// the hash is persisted; the plaintext goes out once in the welcome email and
// the account must change it at first login.
func (s *PasswordService) ProvisionUser(ctx context.Context, email, name, roleName string) (*domain.User, error) {
	tempPassword, err := randomString(tempPasswordCharset, tempPasswordLen)
	if err != nil {
		return nil, err
	}

	hashed, err := s.hasher.Hash(ctx, tempPassword)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	user := &domain.User{
		Email:              email,
		Name:               name,
		PasswordHash:       hashed,
		Role:               domain.Role{Name: roleName},
		MustChangePassword: true,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	if err := s.mailer.SendWelcome(ctx, created, tempPassword); err != nil {
		return nil, fmt.Errorf("send welcome mail: %w", err)
	}

	s.log.Info().Str("user_id", created.ID).Str("role", roleName).Msg("user provisioned")
	return created, nil
}

// UpdatePassword verifies currentPassword against the stored hash, then
// hashes and persists newPassword and sends a confirmation email.
// A wrong current password fails with ErrWrongPassword.
func (s *PasswordService) UpdatePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	if err := s.hasher.Compare(ctx, user.PasswordHash, currentPassword); err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			return domain.ErrWrongPassword
		}
		return err
	}

	return s.setPassword(ctx, user, newPassword)
}

// InitiateReset issues a fresh reset code for email and mails it. When no
// account exists for email it returns nil without any side effect, so the
// endpoint cannot be used to enumerate accounts.
func (s *PasswordService) InitiateReset(ctx context.Context, email string) error {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil
		}
		return err
	}

	code, err := randomString(resetCodeCharset, resetCodeLen)
	if err != nil {
		return err
	}

	entry := domain.ResetCode{Email: email, Code: code, IssuedAt: s.now().UTC()}
	// Physical retention is twice the logical TTL so an expired entry is
	// still found (and reported as expired) for a while before vanishing.
	if err := s.codes.Put(ctx, email, entry, 2*s.ttl); err != nil {
		return err
	}

	if err := s.mailer.SendResetCode(ctx, user, code); err != nil {
		return fmt.Errorf("send reset code mail: %w", err)
	}

	s.log.Info().Str("user_id", user.ID).Msg("password reset initiated")
	return nil
}

// VerifyResetCode reports whether the code for email is currently usable.
// The entry is not consumed, so callers may verify repeatedly before the
// actual reset. An entry past its TTL is deleted and reported expired; later
// calls see it as absent.
func (s *PasswordService) VerifyResetCode(ctx context.Context, email, code string) error {
	entry, err := s.codes.Get(ctx, email)
	if err != nil {
		return err
	}

	if s.now().UTC().Sub(entry.IssuedAt) > s.ttl {
		if err := s.codes.Delete(ctx, email); err != nil {
			s.log.Warn().Err(err).Str("email", email).Msg("failed to drop expired reset code")
		}
		return domain.ErrResetCodeExpired
	}

	if entry.Code != code {
		return domain.ErrResetCodeInvalid
	}
	return nil
}

// ResetPassword verifies the code, replaces the account password without a
// current-password check, and consumes the code entry.
func (s *PasswordService) ResetPassword(ctx context.Context, email, code, newPassword string) error {
	if err := s.VerifyResetCode(ctx, email, code); err != nil {
		return err
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return err
	}

	if err := s.setPassword(ctx, user, newPassword); err != nil {
		return err
	}

	if err := s.codes.Delete(ctx, email); err != nil {
		s.log.Warn().Err(err).Str("email", email).Msg("failed to consume reset code")
	}
	return nil
}

// setPassword hashes and persists a new password and notifies the account.
// It is the only path that skips current-password verification; it is never
// reachable from a handler except through ResetPassword.
func (s *PasswordService) setPassword(ctx context.Context, user *domain.User, newPassword string) error {
	hashed, err := s.hasher.Hash(ctx, newPassword)
	if err != nil {
		return err
	}

	if err := s.users.UpdatePasswordHash(ctx, user.ID, hashed, false); err != nil {
		return err
	}

	if err := s.mailer.SendPasswordChanged(ctx, user); err != nil {
		return fmt.Errorf("send password changed mail: %w", err)
	}

	s.log.Info().Str("user_id", user.ID).Msg("password updated")
	return nil
}

// randomString draws n characters uniformly from charset using crypto/rand.
func randomString(charset string, n int) (string, error) {
	out := make([]byte, n)
	max := big.NewInt(int64(len(charset)))
	for i := range out {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		out[i] = charset[idx.Int64()]
	}
	return string(out), nil
}
