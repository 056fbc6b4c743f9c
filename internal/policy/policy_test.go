package policy

import (
	"testing"

	"github.com/bissquit/task-garden/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	admin   = domain.User{UserName: "Megan Lewis", UserEmail: "meganlewis@example.com", UserRole: domain.RoleAdmin}
	prime   = domain.User{UserName: "Emma Park", UserEmail: "emma78@example.net", UserRole: domain.RolePrimeUser}
	regular = domain.User{UserName: "Julie Johnson", UserEmail: "morrislucas@example.org", UserRole: domain.RoleRegularUser}
	viewer  = domain.User{UserName: "James Hanson", UserEmail: "nlynch@example.org", UserRole: domain.RoleViewer}

	allUsers = []domain.User{admin, prime, regular, viewer}

	testTasks = []domain.Task{
		{TaskName: "reported by julie", Reporter: "Julie Johnson", Assignee: "Emma Park"},
		{TaskName: "assigned to julie", Reporter: "Megan Lewis", Assignee: "Julie Johnson"},
		{TaskName: "assigned to james", Reporter: "Emma Park", Assignee: "James Hanson"},
		{TaskName: "unrelated", Reporter: "Megan Lewis", Assignee: "Emma Park"},
	}
)

func names(tasks []domain.Task) []string {
	out := make([]string, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, t.TaskName)
	}
	return out
}

func emails(users []domain.User) []string {
	out := make([]string, 0, len(users))
	for _, u := range users {
		out = append(out, u.UserEmail)
	}
	return out
}

func TestVisibleTasks_AdminAndPrimeSeeAll(t *testing.T) {
	assert.Len(t, VisibleTasks(testTasks, &admin), len(testTasks))
	assert.Len(t, VisibleTasks(testTasks, &prime), len(testTasks))
}

func TestVisibleTasks_RegularUserSeesReportedOnly(t *testing.T) {
	got := names(VisibleTasks(testTasks, &regular))
	assert.Equal(t, []string{"reported by julie"}, got)
}

func TestVisibleTasks_ViewerSeesAssignedOnly(t *testing.T) {
	got := names(VisibleTasks(testTasks, &viewer))
	assert.Equal(t, []string{"assigned to james"}, got)
}

func TestVisibleTasks_FailsClosed(t *testing.T) {
	got := VisibleTasks(testTasks, nil)
	require.NotNil(t, got)
	assert.Empty(t, got)

	unknown := domain.User{UserName: "X", UserRole: "Superuser"}
	assert.Empty(t, VisibleTasks(testTasks, &unknown))
}

func TestVisibleUsers_AdminAndPrimeSeeAll(t *testing.T) {
	assert.Len(t, VisibleUsers(allUsers, &admin), len(allUsers))
	// PrimeUser's Admin restriction is assignment-only; visibility is full.
	assert.Len(t, VisibleUsers(allUsers, &prime), len(allUsers))
}

func TestVisibleUsers_RegularUserSeesSelfOnly(t *testing.T) {
	got := emails(VisibleUsers(allUsers, &regular))
	assert.Equal(t, []string{"morrislucas@example.org"}, got)
}

func TestVisibleUsers_ViewerSeesNone(t *testing.T) {
	got := VisibleUsers(allUsers, &viewer)
	require.NotNil(t, got)
	assert.Empty(t, got)
}

func TestCanCreateTask(t *testing.T) {
	assert.True(t, CanCreateTask(&admin))
	assert.True(t, CanCreateTask(&prime))
	assert.True(t, CanCreateTask(&regular))
	assert.False(t, CanCreateTask(&viewer))
	assert.False(t, CanCreateTask(nil))
}

func TestAssignableUsers_AdminAssignsAnyone(t *testing.T) {
	assert.Len(t, AssignableUsers(allUsers, &admin), len(allUsers))
}

func TestAssignableUsers_PrimeUserExcludesAdmins(t *testing.T) {
	got := emails(AssignableUsers(allUsers, &prime))
	assert.NotContains(t, got, "meganlewis@example.com")
	assert.Contains(t, got, "morrislucas@example.org")
	assert.Contains(t, got, "nlynch@example.org")
}

func TestAssignableUsers_RegularUserSelfOnly(t *testing.T) {
	got := emails(AssignableUsers(allUsers, &regular))
	assert.Equal(t, []string{"morrislucas@example.org"}, got)
}

func TestAssignableUsers_ViewerNone(t *testing.T) {
	assert.Empty(t, AssignableUsers(allUsers, &viewer))
	assert.Empty(t, AssignableUsers(allUsers, nil))
}
