package tasks

import (
	"errors"
	"fmt"

	"github.com/bissquit/task-garden/internal/domain"
)

// Service errors.
var (
	ErrPermissionDenied = errors.New("task creation not permitted")
)

// ValidationError reports the invalid fields of a rejected task payload.
type ValidationError struct {
	Fields []domain.FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 1 {
		return fmt.Sprintf("invalid task: %s: %s", e.Fields[0].Field, e.Fields[0].Message)
	}
	return fmt.Sprintf("invalid task: %d invalid fields", len(e.Fields))
}
