// Package policy implements the role-based visibility rules for tasks and
// users. All functions are pure: they depend only on their arguments and
// fail closed, returning an empty collection when the viewer is absent or
// carries an unknown role.
package policy

import "github.com/bissquit/task-garden/internal/domain"

// VisibleTasks returns the subset of tasks the viewer may see.
// Admin and PrimeUser see everything; RegularUser sees tasks they reported;
// Viewer sees tasks assigned to them.
func VisibleTasks(tasks []domain.Task, viewer *domain.User) []domain.Task {
	out := make([]domain.Task, 0, len(tasks))
	if viewer == nil {
		return out
	}

	switch viewer.UserRole {
	case domain.RoleAdmin, domain.RolePrimeUser:
		return append(out, tasks...)
	case domain.RoleRegularUser:
		for _, t := range tasks {
			if t.Reporter == viewer.UserName {
				out = append(out, t)
			}
		}
	case domain.RoleViewer:
		for _, t := range tasks {
			if t.Assignee == viewer.UserName {
				out = append(out, t)
			}
		}
	}
	return out
}

// VisibleUsers returns the subset of users the viewer may see. Admin and
// PrimeUser see all users (PrimeUser's Admin restriction applies only to
// assignment, not to visibility); RegularUser sees only their own record;
// Viewer sees none.
func VisibleUsers(users []domain.User, viewer *domain.User) []domain.User {
	out := make([]domain.User, 0, len(users))
	if viewer == nil {
		return out
	}

	switch viewer.UserRole {
	case domain.RoleAdmin, domain.RolePrimeUser:
		return append(out, users...)
	case domain.RoleRegularUser:
		for _, u := range users {
			if u.UserEmail == viewer.UserEmail {
				out = append(out, u)
			}
		}
	case domain.RoleViewer:
	}
	return out
}

// CanCreateTask reports whether the viewer may create tasks. Only Viewer
// (and an absent viewer) may not.
func CanCreateTask(viewer *domain.User) bool {
	if viewer == nil {
		return false
	}
	switch viewer.UserRole {
	case domain.RoleAdmin, domain.RolePrimeUser, domain.RoleRegularUser:
		return true
	}
	return false
}

// AssignableUsers returns the users the viewer may assign a task to.
// Admin may assign anyone; PrimeUser anyone except Admins; RegularUser only
// themselves; Viewer nobody (task creation is disabled for them anyway).
func AssignableUsers(users []domain.User, viewer *domain.User) []domain.User {
	out := make([]domain.User, 0, len(users))
	if viewer == nil {
		return out
	}

	switch viewer.UserRole {
	case domain.RoleAdmin:
		return append(out, users...)
	case domain.RolePrimeUser:
		for _, u := range users {
			if u.UserRole != domain.RoleAdmin {
				out = append(out, u)
			}
		}
	case domain.RoleRegularUser:
		for _, u := range users {
			if u.UserEmail == viewer.UserEmail {
				out = append(out, u)
			}
		}
	case domain.RoleViewer:
	}
	return out
}
