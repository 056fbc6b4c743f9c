package users

import (
	"context"
	"errors"

	"github.com/bissquit/task-garden/internal/domain"
)

// ErrUserNotFound is returned when no user matches a lookup.
var ErrUserNotFound = errors.New("user not found")

// Repository defines the interface for user lookups. The user collection is
// seed data; there are no write operations.
type Repository interface {
	// List returns the whole user collection in stored order.
	List(ctx context.Context) ([]domain.User, error)
	// GetByEmail looks up a user by case-insensitive email match. Returns
	// ErrUserNotFound when no user matches.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}
