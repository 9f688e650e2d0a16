package ports

import (
	"context"

	"github.com/zoo-arcadia/arcadia-api/internal/core/domain"
)

// UserRepository defines the interface for user persistence. The auth core
// reads users and writes password hashes; all other user CRUD lives outside
// this subsystem.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	// UpdatePasswordHash persists a new hash and the must-change flag for id.
	UpdatePasswordHash(ctx context.Context, id, hash string, mustChange bool) error
}
