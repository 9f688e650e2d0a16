package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/zoo-arcadia/arcadia-api/internal/core/domain"
)

const resetKeyPrefix = "pwdreset:"

// ResetCodeStore keeps live password-reset entries in Redis so the reset
// protocol survives restarts and works across multiple service instances.
// Key format: pwdreset:<email>, one entry per email; a new Put replaces the
// previous entry. Redis expiry bounds physical retention; the logical
// 15-minute window is enforced by the service from the entry's issue time.
type ResetCodeStore struct {
	client *redis.Client
}

// NewResetCodeStore creates a ResetCodeStore wrapping the given Redis client.
func NewResetCodeStore(client *redis.Client) *ResetCodeStore {
	return &ResetCodeStore{client: client}
}

func (s *ResetCodeStore) Put(ctx context.Context, email string, entry domain.ResetCode, ttl time.Duration) error {
	raw, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("encode reset code: %w", err)
	}
	if err := s.client.Set(ctx, s.key(email), raw, ttl).Err(); err != nil {
		return fmt.Errorf("store reset code: %w", err)
	}
	return nil
}

func (s *ResetCodeStore) Get(ctx context.Context, email string) (*domain.ResetCode, error) {
	raw, err := s.client.Get(ctx, s.key(email)).Bytes()
	if err == redis.Nil {
		return nil, domain.ErrResetCodeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load reset code: %w", err)
	}

	var entry domain.ResetCode
	if err := json.Unmarshal(raw, &entry); err != nil {
		return nil, fmt.Errorf("decode reset code: %w", err)
	}
	return &entry, nil
}

func (s *ResetCodeStore) Delete(ctx context.Context, email string) error {
	if err := s.client.Del(ctx, s.key(email)).Err(); err != nil {
		return fmt.Errorf("delete reset code: %w", err)
	}
	return nil
}

func (s *ResetCodeStore) key(email string) string {
	return resetKeyPrefix + email
}
