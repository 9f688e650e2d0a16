package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"

	"github.com/zoo-arcadia/arcadia-api/internal/core/domain"
)

func newTestStore(t *testing.T) (*ResetCodeStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewResetCodeStore(client), mr
}

func TestResetCodeStore_PutGetDelete(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	issued := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	entry := domain.ResetCode{Email: "a@b.com", Code: "AB12CD", IssuedAt: issued}

	if err := store.Put(ctx, "a@b.com", entry, 30*time.Minute); err != nil {
		t.Fatalf("put: %v", err)
	}

	got, err := store.Get(ctx, "a@b.com")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Code != "AB12CD" || !got.IssuedAt.Equal(issued) {
		t.Fatalf("round-trip mismatch: %+v", got)
	}

	if err := store.Delete(ctx, "a@b.com"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := store.Get(ctx, "a@b.com"); !errors.Is(err, domain.ErrResetCodeNotFound) {
		t.Fatalf("expected ErrResetCodeNotFound, got %v", err)
	}
}

func TestResetCodeStore_Missing(t *testing.T) {
	store, _ := newTestStore(t)

	if _, err := store.Get(context.Background(), "nobody@x.com"); !errors.Is(err, domain.ErrResetCodeNotFound) {
		t.Fatalf("expected ErrResetCodeNotFound, got %v", err)
	}
	// Deleting an absent entry is not an error.
	if err := store.Delete(context.Background(), "nobody@x.com"); err != nil {
		t.Fatalf("delete absent: %v", err)
	}
}

func TestResetCodeStore_Overwrite(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	first := domain.ResetCode{Email: "a@b.com", Code: "AAAAAA", IssuedAt: time.Now().UTC()}
	second := domain.ResetCode{Email: "a@b.com", Code: "BBBBBB", IssuedAt: time.Now().UTC()}

	if err := store.Put(ctx, "a@b.com", first, time.Minute); err != nil {
		t.Fatalf("put first: %v", err)
	}
	if err := store.Put(ctx, "a@b.com", second, time.Minute); err != nil {
		t.Fatalf("put second: %v", err)
	}

	got, err := store.Get(ctx, "a@b.com")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Code != "BBBBBB" {
		t.Fatalf("expected overwrite, got code %s", got.Code)
	}
}

func TestResetCodeStore_PhysicalExpiry(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	entry := domain.ResetCode{Email: "a@b.com", Code: "AB12CD", IssuedAt: time.Now().UTC()}
	if err := store.Put(ctx, "a@b.com", entry, 30*time.Minute); err != nil {
		t.Fatalf("put: %v", err)
	}

	mr.FastForward(31 * time.Minute)

	if _, err := store.Get(ctx, "a@b.com"); !errors.Is(err, domain.ErrResetCodeNotFound) {
		t.Fatalf("expected ErrResetCodeNotFound after expiry, got %v", err)
	}
}
