// Package hash wraps bcrypt behind a bounded concurrency gate. Hashing is
// the only CPU-heavy operation in the service; the gate keeps a burst of
// login or reset traffic from starving unrelated requests.
package hash

import (
	"context"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/zoo-arcadia/arcadia-api/internal/api/metrics"
	"github.com/zoo-arcadia/arcadia-api/internal/core/domain"
)

const (
	defaultSlots = 8
	// Cost matches the stored hashes; changing it only affects new hashes.
	cost = bcrypt.DefaultCost
)

// Hasher runs bcrypt operations with at most a fixed number in flight.
type Hasher struct {
	slots chan struct{}
}

// New creates a Hasher with the given concurrency limit.
// If slots <= 0, defaultSlots is used.
func New(slots int) *Hasher {
	if slots <= 0 {
		slots = defaultSlots
	}
	return &Hasher{slots: make(chan struct{}, slots)}
}

// Hash derives a bcrypt hash of password. Blocks while all slots are busy;
// returns the context error if ctx ends first.
func (h *Hasher) Hash(ctx context.Context, password string) (string, error) {
	start := time.Now()
	defer func() { metrics.HashDuration.WithLabelValues("hash").Observe(time.Since(start).Seconds()) }()

	if err := h.acquire(ctx); err != nil {
		return "", err
	}
	defer h.release()

	out, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// Compare checks password against hashed in constant time (bcrypt's own
// comparison). Returns domain.ErrInvalidCredentials on mismatch so callers
// cannot distinguish a bad hash from a bad password.
func (h *Hasher) Compare(ctx context.Context, hashed, password string) error {
	start := time.Now()
	defer func() { metrics.HashDuration.WithLabelValues("compare").Observe(time.Since(start).Seconds()) }()

	if err := h.acquire(ctx); err != nil {
		return err
	}
	defer h.release()

	if bcrypt.CompareHashAndPassword([]byte(hashed), []byte(password)) != nil {
		return domain.ErrInvalidCredentials
	}
	return nil
}

func (h *Hasher) acquire(ctx context.Context) error {
	select {
	case h.slots <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (h *Hasher) release() { <-h.slots }
