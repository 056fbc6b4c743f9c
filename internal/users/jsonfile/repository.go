// Package jsonfile implements the user repository over a flat JSON file.
package jsonfile

import (
	"context"
	"strings"

	"github.com/bissquit/task-garden/internal/domain"
	"github.com/bissquit/task-garden/internal/pkg/jsonstore"
	"github.com/bissquit/task-garden/internal/pkg/metrics"
	"github.com/bissquit/task-garden/internal/users"
)

// Repository reads users from a single JSON array file. The collection is
// seed data: a missing file is a deployment error, not an empty collection,
// so it surfaces as-is.
type Repository struct {
	store *jsonstore.Store[domain.User]
}

// NewRepository creates a user repository backed by the file at path.
func NewRepository(path string) *Repository {
	return &Repository{store: jsonstore.New[domain.User](path)}
}

// List returns the whole user collection.
func (r *Repository) List(ctx context.Context) ([]domain.User, error) {
	records, err := r.store.Load(ctx)
	if err != nil {
		return nil, err
	}

	metrics.StoreRecords.WithLabelValues("users").Set(float64(len(records)))
	return records, nil
}

// GetByEmail looks up a user by case-insensitive email match.
func (r *Repository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	records, err := r.List(ctx)
	if err != nil {
		return nil, err
	}

	for i := range records {
		if strings.EqualFold(records[i].UserEmail, email) {
			u := records[i]
			return &u, nil
		}
	}
	return nil, users.ErrUserNotFound
}
