package hash

import (
	"context"
	"errors"
	"testing"

	"github.com/zoo-arcadia/arcadia-api/internal/core/domain"
)

func TestHashAndCompare(t *testing.T) {
	h := New(2)
	ctx := context.Background()

	hashed, err := h.Hash(ctx, "s3cret")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hashed == "s3cret" || hashed == "" {
		t.Fatalf("expected a bcrypt hash, got %q", hashed)
	}

	if err := h.Compare(ctx, hashed, "s3cret"); err != nil {
		t.Fatalf("compare: %v", err)
	}
	if err := h.Compare(ctx, hashed, "wrong"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestCompare_GarbageHash(t *testing.T) {
	h := New(0)

	err := h.Compare(context.Background(), "not-a-hash", "anything")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestHash_CancelledContext(t *testing.T) {
	// Fill the single slot so the next call has to wait, then cancel.
	h := New(1)
	h.slots <- struct{}{}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := h.Hash(ctx, "pwd"); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
