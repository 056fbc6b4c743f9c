package tasks

import (
	"context"

	"github.com/bissquit/task-garden/internal/domain"
)

// Repository defines the interface for task persistence.
type Repository interface {
	// List returns the whole task collection in stored order.
	List(ctx context.Context) ([]domain.Task, error)
	// Append adds a task to the collection and returns the stored record.
	Append(ctx context.Context, task domain.Task) (domain.Task, error)
}
