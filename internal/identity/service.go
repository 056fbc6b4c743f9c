// Package identity provides login, logout, and session resolution.
//
// Login matches an email against the user collection with no password
// check, a deliberate property of this system rather than an oversight.
// Sessions wrap the user snapshot taken at login and are never revalidated
// against the collection, so later role edits do not affect live sessions.
package identity

import (
	"context"
	"errors"
	"fmt"

	"github.com/bissquit/task-garden/internal/domain"
	"github.com/bissquit/task-garden/internal/users"
)

// Service errors.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// UserFinder is the subset of the user repository the identity service
// needs.
type UserFinder interface {
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

// Service implements authentication business logic.
type Service struct {
	users    UserFinder
	sessions *SessionStore
}

// NewService creates a new identity service.
func NewService(userFinder UserFinder, sessions *SessionStore) *Service {
	return &Service{
		users:    userFinder,
		sessions: sessions,
	}
}

// Login authenticates an email by case-insensitive lookup and issues a
// session. An unknown email maps to ErrInvalidCredentials so the response
// does not reveal whether the address exists.
func (s *Service) Login(ctx context.Context, email string) (*domain.Session, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, users.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("look up user: %w", err)
	}

	return s.sessions.Create(*user), nil
}

// Resolve returns the user snapshot for a session token, or nil when the
// token is absent, unknown, or expired.
func (s *Service) Resolve(token string) *domain.User {
	if token == "" {
		return nil
	}
	session := s.sessions.Get(token)
	if session == nil {
		return nil
	}

	user := session.User
	return &user
}

// Logout destroys the session for a token.
func (s *Service) Logout(token string) {
	if token == "" {
		return
	}
	s.sessions.Delete(token)
}
