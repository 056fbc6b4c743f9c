// Package tasks provides HTTP handlers and business logic for the task
// collection.
package tasks

import (
	"context"
	"fmt"
	"time"

	"github.com/bissquit/task-garden/internal/domain"
	"github.com/bissquit/task-garden/internal/policy"
	"github.com/bissquit/task-garden/internal/query"
)

// UserDirectory is the subset of the user repository the task service needs
// to resolve assignable users.
type UserDirectory interface {
	List(ctx context.Context) ([]domain.User, error)
}

// Service implements task business logic.
type Service struct {
	repo  Repository
	users UserDirectory
	now   func() time.Time
}

// NewService creates a new task service.
func NewService(repo Repository, users UserDirectory) *Service {
	return &Service{
		repo:  repo,
		users: users,
		now:   time.Now,
	}
}

// ListInput carries the user-chosen filter and sort state for a task list.
// The zero SortColumn means unsorted.
type ListInput struct {
	Filter     query.TaskFilter
	SortColumn query.TaskSortColumn
	SortDir    query.Direction
}

// List returns the viewer's visible tasks with the user-chosen filters and
// sort applied. Visibility scopes the collection first; the filter then
// operates on the role-scoped subset.
func (s *Service) List(ctx context.Context, viewer *domain.User, input ListInput) ([]domain.Task, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}

	visible := policy.VisibleTasks(all, viewer)
	filtered := query.FilterTasks(visible, input.Filter)
	if input.SortColumn == "" {
		return filtered, nil
	}
	return query.SortTasks(filtered, input.SortColumn, input.SortDir), nil
}

// Create validates and persists a new task on behalf of the viewer. The
// reporter, status, createdAt, and completedAt fields are stamped by the
// service regardless of what the payload carried. The assignee must be one
// of the viewer's assignable users.
func (s *Service) Create(ctx context.Context, viewer *domain.User, task domain.Task) (domain.Task, error) {
	if !policy.CanCreateTask(viewer) {
		return domain.Task{}, ErrPermissionDenied
	}

	task.Reporter = viewer.UserName
	task.Status = domain.TaskStatusCreated
	task.CreatedAt = s.now().UTC().Format(time.RFC3339)
	task.CompletedAt = nil
	if task.TaskDescription == "" {
		task.TaskDescription = fmt.Sprintf("[%s] %s", task.TaskType, task.TaskName)
	}

	fieldErrs := task.Validate()
	if task.Assignee != "" {
		ok, err := s.assignable(ctx, viewer, task.Assignee)
		if err != nil {
			return domain.Task{}, err
		}
		if !ok {
			fieldErrs = append(fieldErrs, domain.FieldError{
				Field:   "assignee",
				Message: "assignee is not assignable by this user",
			})
		}
	}
	if len(fieldErrs) > 0 {
		return domain.Task{}, &ValidationError{Fields: fieldErrs}
	}

	created, err := s.repo.Append(ctx, task)
	if err != nil {
		return domain.Task{}, fmt.Errorf("append task: %w", err)
	}
	return created, nil
}

func (s *Service) assignable(ctx context.Context, viewer *domain.User, assignee string) (bool, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return false, fmt.Errorf("list users: %w", err)
	}
	for _, u := range policy.AssignableUsers(users, viewer) {
		if u.UserName == assignee {
			return true, nil
		}
	}
	return false, nil
}
