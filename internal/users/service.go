// Package users provides HTTP handlers and business logic for the user
// collection.
package users

import (
	"context"
	"fmt"

	"github.com/bissquit/task-garden/internal/domain"
	"github.com/bissquit/task-garden/internal/policy"
	"github.com/bissquit/task-garden/internal/query"
)

// Service implements user business logic.
type Service struct {
	repo Repository
}

// NewService creates a new user service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// List returns the viewer's visible users with the user-chosen filters
// applied. Visibility scopes the collection first; for a Viewer the result
// is always empty.
func (s *Service) List(ctx context.Context, viewer *domain.User, filter query.UserFilter) ([]domain.User, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	visible := policy.VisibleUsers(all, viewer)
	return query.FilterUsers(visible, filter), nil
}

// Assignable returns the users the viewer may assign tasks to.
func (s *Service) Assignable(ctx context.Context, viewer *domain.User) ([]domain.User, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return policy.AssignableUsers(all, viewer), nil
}
