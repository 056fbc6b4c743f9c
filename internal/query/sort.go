package query

import (
	"fmt"
	"sort"

	"github.com/bissquit/task-garden/internal/domain"
)

// Direction represents a sort direction.
type Direction string

// Sort directions. DirectionNone leaves the input order untouched.
const (
	DirectionAsc  Direction = "asc"
	DirectionDesc Direction = "desc"
	DirectionNone Direction = "none"
)

// ParseDirection validates a sort direction string. An empty string parses
// to DirectionNone.
func ParseDirection(s string) (Direction, error) {
	switch Direction(s) {
	case DirectionAsc, DirectionDesc, DirectionNone:
		return Direction(s), nil
	case "":
		return DirectionNone, nil
	}
	return "", fmt.Errorf("unknown sort direction %q", s)
}

// SortState is the explicit three-state sort toggle a column header cycles
// through. The zero value means no column is sorted.
type SortState struct {
	Column    string
	Direction Direction
}

// Toggle advances the cycle for the given column: asc, desc, none, and back
// to asc. Toggling a different column restarts at asc.
func (s SortState) Toggle(column string) SortState {
	if s.Column != column {
		return SortState{Column: column, Direction: DirectionAsc}
	}
	switch s.Direction {
	case DirectionAsc:
		return SortState{Column: column, Direction: DirectionDesc}
	case DirectionDesc:
		return SortState{Column: column, Direction: DirectionNone}
	default:
		return SortState{Column: column, Direction: DirectionAsc}
	}
}

// SortBy returns a stably sorted copy of records, comparing the string keys
// extracted by key. Equal keys keep their relative input order. Dates are
// compared as strings, which orders ISO 8601 values chronologically.
func SortBy[T any](records []T, key func(T) string, dir Direction) []T {
	out := make([]T, len(records))
	copy(out, records)
	if dir == DirectionNone || dir == "" {
		return out
	}

	sort.SliceStable(out, func(i, j int) bool {
		if dir == DirectionAsc {
			return key(out[i]) < key(out[j])
		}
		return key(out[i]) > key(out[j])
	})
	return out
}

// TaskSortColumn identifies a sortable task field.
type TaskSortColumn string

// Sortable task columns.
const (
	TaskSortName        TaskSortColumn = "taskName"
	TaskSortType        TaskSortColumn = "taskType"
	TaskSortDescription TaskSortColumn = "taskDescription"
	TaskSortAssignee    TaskSortColumn = "assignee"
	TaskSortReporter    TaskSortColumn = "reporter"
	TaskSortStatus      TaskSortColumn = "status"
	TaskSortDueDate     TaskSortColumn = "dueDate"
	TaskSortCreatedAt   TaskSortColumn = "createdAt"
)

// ParseTaskSortColumn validates a task sort column name. Callers must reject
// the error at the boundary; the sort itself assumes a valid column.
func ParseTaskSortColumn(s string) (TaskSortColumn, error) {
	switch TaskSortColumn(s) {
	case TaskSortName, TaskSortType, TaskSortDescription, TaskSortAssignee,
		TaskSortReporter, TaskSortStatus, TaskSortDueDate, TaskSortCreatedAt:
		return TaskSortColumn(s), nil
	}
	return "", fmt.Errorf("unknown sort column %q", s)
}

// SortTasks stably sorts tasks by the given column and direction.
func SortTasks(tasks []domain.Task, column TaskSortColumn, dir Direction) []domain.Task {
	return SortBy(tasks, func(t domain.Task) string {
		return taskSortKey(t, column)
	}, dir)
}

func taskSortKey(t domain.Task, column TaskSortColumn) string {
	switch column {
	case TaskSortName:
		return t.TaskName
	case TaskSortType:
		return string(t.TaskType)
	case TaskSortDescription:
		return t.TaskDescription
	case TaskSortAssignee:
		return t.Assignee
	case TaskSortReporter:
		return t.Reporter
	case TaskSortStatus:
		return string(t.Status)
	case TaskSortDueDate:
		return t.DueDate
	case TaskSortCreatedAt:
		return t.CreatedAt
	}
	// Columns are validated by ParseTaskSortColumn; reaching here is a
	// programmer error, not bad user input.
	panic(fmt.Sprintf("query: unknown task sort column %q", column))
}
