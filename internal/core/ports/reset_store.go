package ports

import (
	"context"
	"time"

	"github.com/zoo-arcadia/arcadia-api/internal/core/domain"
)

// ResetCodeStore holds the live password-reset entries, keyed by email, one
// entry per email. The backing store must be shared and TTL-capable so the
// service stays correct across restarts and multiple instances.
type ResetCodeStore interface {
	// Put stores entry under email, replacing any previous entry. ttl bounds
	// how long the store keeps the entry at all; the logical 15-minute expiry
	// is enforced by the caller from entry.IssuedAt.
	Put(ctx context.Context, email string, entry domain.ResetCode, ttl time.Duration) error
	// Get returns the live entry for email, or domain.ErrResetCodeNotFound.
	Get(ctx context.Context, email string) (*domain.ResetCode, error)
	Delete(ctx context.Context, email string) error
}
