// Package query implements the filtering and sorting engine for task and
// user collections. Every function is a pure function of its inputs, so the
// HTTP layer and any UI state layer share one implementation.
//
// Filters apply in a fixed order: set filters first, then the free-text
// search. Role-based visibility is applied by the caller before the
// collection reaches this package, so user-chosen filters always operate on
// an already role-scoped collection.
package query

import (
	"fmt"
	"strings"

	"github.com/bissquit/task-garden/internal/domain"
	"golang.org/x/text/cases"
)

// TaskSearchField identifies the task field a free-text search runs over.
type TaskSearchField string

// Searchable task fields.
const (
	TaskSearchName        TaskSearchField = "taskName"
	TaskSearchReporter    TaskSearchField = "reporter"
	TaskSearchDescription TaskSearchField = "taskDescription"
	TaskSearchAssignee    TaskSearchField = "assignee"
)

// ParseTaskSearchField validates a task search field name. An empty string
// parses to the default field, taskName.
func ParseTaskSearchField(s string) (TaskSearchField, error) {
	switch TaskSearchField(s) {
	case TaskSearchName, TaskSearchReporter, TaskSearchDescription, TaskSearchAssignee:
		return TaskSearchField(s), nil
	case "":
		return TaskSearchName, nil
	}
	return "", fmt.Errorf("unknown task search field %q", s)
}

// TaskFilter is the user-chosen filter state for a task collection.
// Statuses and Types are always-active set filters: a record passes only if
// its value is a member of the set, and an empty set therefore matches
// nothing. "Nothing checked" deliberately means "show nothing", never
// "ignore the filter".
type TaskFilter struct {
	Statuses    []domain.TaskStatus
	Types       []domain.TaskType
	SearchTerm  string
	SearchField TaskSearchField
}

// FilterTasks applies the filter state to tasks, in set-filter then search
// order, and returns the matching subset in input order.
func FilterTasks(tasks []domain.Task, f TaskFilter) []domain.Task {
	out := make([]domain.Task, 0, len(tasks))
	if len(f.Statuses) == 0 || len(f.Types) == 0 {
		return out
	}

	statuses := make(map[domain.TaskStatus]bool, len(f.Statuses))
	for _, s := range f.Statuses {
		statuses[s] = true
	}
	types := make(map[domain.TaskType]bool, len(f.Types))
	for _, t := range f.Types {
		types[t] = true
	}

	term := fold(f.SearchTerm)
	for _, t := range tasks {
		if !statuses[t.Status] || !types[t.TaskType] {
			continue
		}
		if term != "" && !strings.Contains(fold(taskSearchValue(t, f.SearchField)), term) {
			continue
		}
		out = append(out, t)
	}
	return out
}

func taskSearchValue(t domain.Task, field TaskSearchField) string {
	switch field {
	case TaskSearchName:
		return t.TaskName
	case TaskSearchReporter:
		return t.Reporter
	case TaskSearchDescription:
		return t.TaskDescription
	case TaskSearchAssignee:
		return t.Assignee
	case "":
		return t.TaskName
	}
	// Fields are validated by ParseTaskSearchField; reaching here is a
	// programmer error, not bad user input.
	panic(fmt.Sprintf("query: unknown task search field %q", field))
}

// UserSearchField identifies the user field a free-text search runs over.
type UserSearchField string

// Searchable user fields.
const (
	UserSearchName  UserSearchField = "userName"
	UserSearchEmail UserSearchField = "userEmail"
	UserSearchPhone UserSearchField = "userPhone"
)

// ParseUserSearchField validates a user search field name. An empty string
// parses to the default field, userName.
func ParseUserSearchField(s string) (UserSearchField, error) {
	switch UserSearchField(s) {
	case UserSearchName, UserSearchEmail, UserSearchPhone:
		return UserSearchField(s), nil
	case "":
		return UserSearchName, nil
	}
	return "", fmt.Errorf("unknown user search field %q", s)
}

// UserFilter is the user-chosen filter state for a user collection. Roles
// follows the same empty-set-matches-nothing rule as TaskFilter's sets.
type UserFilter struct {
	Roles       []domain.Role
	SearchTerm  string
	SearchField UserSearchField
}

// FilterUsers applies the filter state to users, in set-filter then search
// order, and returns the matching subset in input order.
func FilterUsers(users []domain.User, f UserFilter) []domain.User {
	out := make([]domain.User, 0, len(users))
	if len(f.Roles) == 0 {
		return out
	}

	roles := make(map[domain.Role]bool, len(f.Roles))
	for _, r := range f.Roles {
		roles[r] = true
	}

	term := fold(f.SearchTerm)
	for _, u := range users {
		if !roles[u.UserRole] {
			continue
		}
		if term != "" && !strings.Contains(fold(userSearchValue(u, f.SearchField)), term) {
			continue
		}
		out = append(out, u)
	}
	return out
}

func userSearchValue(u domain.User, field UserSearchField) string {
	switch field {
	case UserSearchName:
		return u.UserName
	case UserSearchEmail:
		return u.UserEmail
	case UserSearchPhone:
		return u.UserPhone
	case "":
		return u.UserName
	}
	panic(fmt.Sprintf("query: unknown user search field %q", field))
}

// fold lowercases s using Unicode case folding, so the substring match is
// case-insensitive beyond ASCII. A Caser is stateful and not safe for
// concurrent use, so one is created per call.
func fold(s string) string {
	return cases.Fold().String(s)
}
