// Package jsonfile implements the task repository over a flat JSON file.
package jsonfile

import (
	"context"
	"errors"
	"io/fs"

	"github.com/bissquit/task-garden/internal/domain"
	"github.com/bissquit/task-garden/internal/pkg/jsonstore"
	"github.com/bissquit/task-garden/internal/pkg/metrics"
)

// Repository persists tasks as a single JSON array file.
type Repository struct {
	store *jsonstore.Store[domain.Task]
}

// NewRepository creates a task repository backed by the file at path.
func NewRepository(path string) *Repository {
	return &Repository{store: jsonstore.New[domain.Task](path)}
}

// List returns the whole task collection. A missing file means no task has
// been created yet and reads as an empty collection.
func (r *Repository) List(ctx context.Context) ([]domain.Task, error) {
	records, err := r.store.Load(ctx)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []domain.Task{}, nil
		}
		return nil, err
	}

	metrics.StoreRecords.WithLabelValues("tasks").Set(float64(len(records)))
	return records, nil
}

// Append adds a task to the collection, rewriting the whole file.
func (r *Repository) Append(ctx context.Context, task domain.Task) (domain.Task, error) {
	records, err := r.store.Update(ctx, func(records []domain.Task) ([]domain.Task, error) {
		return append(records, task), nil
	})
	if err != nil {
		return domain.Task{}, err
	}

	metrics.StoreRecords.WithLabelValues("tasks").Set(float64(len(records)))
	return task, nil
}
