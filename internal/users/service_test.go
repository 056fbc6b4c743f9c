package users

import (
	"context"
	"testing"

	"github.com/bissquit/task-garden/internal/domain"
	"github.com/bissquit/task-garden/internal/query"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingRepository struct{}

func (failingRepository) List(ctx context.Context) ([]domain.User, error) {
	return nil, assert.AnError
}

func (failingRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return nil, assert.AnError
}

func allUsersFilter() query.UserFilter {
	return query.UserFilter{Roles: domain.AllRoles}
}

func TestService_List_ScopesBeforeFiltering(t *testing.T) {
	repo := &mockRepository{users: []domain.User{testAdmin, testPrime, testRegular, testViewer}}
	svc := NewService(repo)

	// The role filter matches Admin, but a RegularUser only ever sees
	// themselves, so the scoped collection has no Admin to match.
	filter := query.UserFilter{Roles: []domain.Role{domain.RoleAdmin}}
	got, err := svc.List(context.Background(), &testRegular, filter)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestService_List_RepositoryError(t *testing.T) {
	svc := NewService(failingRepository{})

	_, err := svc.List(context.Background(), &testAdmin, allUsersFilter())
	assert.ErrorIs(t, err, assert.AnError)
}

func TestService_Assignable_RepositoryError(t *testing.T) {
	svc := NewService(failingRepository{})

	_, err := svc.Assignable(context.Background(), &testAdmin)
	assert.ErrorIs(t, err, assert.AnError)
}
