package domain

import (
	"encoding/json"
	"regexp"
)

// TaskStatus represents the lifecycle state of a task.
type TaskStatus string

// Task statuses.
const (
	TaskStatusCreated    TaskStatus = "Created"
	TaskStatusInProgress TaskStatus = "In Progress"
	TaskStatusDone       TaskStatus = "Done"
	TaskStatusDelayed    TaskStatus = "Delayed"
)

// AllTaskStatuses lists every task status.
var AllTaskStatuses = []TaskStatus{TaskStatusCreated, TaskStatusInProgress, TaskStatusDone, TaskStatusDelayed}

// IsValid checks if the task status is valid.
func (s TaskStatus) IsValid() bool {
	switch s {
	case TaskStatusCreated, TaskStatusInProgress, TaskStatusDone, TaskStatusDelayed:
		return true
	}
	return false
}

// TaskType discriminates which detail fields a task carries.
type TaskType string

// Task types. The values are the Korean labels used throughout the data
// files and the UI.
const (
	TaskTypePurchase TaskType = "물품구매"
	TaskTypeDelivery TaskType = "택배요청"
)

// AllTaskTypes lists every task type.
var AllTaskTypes = []TaskType{TaskTypePurchase, TaskTypeDelivery}

// IsValid checks if the task type is valid.
func (t TaskType) IsValid() bool {
	switch t {
	case TaskTypePurchase, TaskTypeDelivery:
		return true
	}
	return false
}

// PurchaseDetails holds the fields specific to purchase tasks.
type PurchaseDetails struct {
	ItemName string
	Quantity int
}

// DeliveryDetails holds the fields specific to delivery tasks.
type DeliveryDetails struct {
	RecipientName    string
	RecipientPhone   string
	RecipientAddress string
}

// Task represents a unit of work. The type-specific details form a tagged
// union keyed on TaskType: exactly one of Purchase or Delivery is set, and
// it must match the declared type. On the wire the detail fields are
// flattened into the task object.
type Task struct {
	TaskName        string
	TaskType        TaskType
	TaskDescription string
	Assignee        string
	Reporter        string
	Status          TaskStatus
	DueDate         string // YYYY-MM-DD
	CreatedAt       string // RFC 3339
	CompletedAt     *string
	Purchase        *PurchaseDetails
	Delivery        *DeliveryDetails
}

// taskJSON is the flat wire representation of a Task.
type taskJSON struct {
	TaskName         string     `json:"taskName"`
	TaskType         TaskType   `json:"taskType"`
	TaskDescription  string     `json:"taskDescription"`
	Assignee         string     `json:"assignee"`
	Reporter         string     `json:"reporter"`
	Status           TaskStatus `json:"status"`
	DueDate          string     `json:"dueDate"`
	CreatedAt        string     `json:"createdAt"`
	CompletedAt      *string    `json:"completedAt"`
	ItemName         *string    `json:"itemName,omitempty"`
	Quantity         *int       `json:"quantity,omitempty"`
	RecipientName    *string    `json:"recipientName,omitempty"`
	RecipientPhone   *string    `json:"recipientPhone,omitempty"`
	RecipientAddress *string    `json:"recipientAddress,omitempty"`
}

// MarshalJSON flattens the detail union into the wire shape.
func (t Task) MarshalJSON() ([]byte, error) {
	out := taskJSON{
		TaskName:        t.TaskName,
		TaskType:        t.TaskType,
		TaskDescription: t.TaskDescription,
		Assignee:        t.Assignee,
		Reporter:        t.Reporter,
		Status:          t.Status,
		DueDate:         t.DueDate,
		CreatedAt:       t.CreatedAt,
		CompletedAt:     t.CompletedAt,
	}
	if t.Purchase != nil {
		out.ItemName = &t.Purchase.ItemName
		out.Quantity = &t.Purchase.Quantity
	}
	if t.Delivery != nil {
		out.RecipientName = &t.Delivery.RecipientName
		out.RecipientPhone = &t.Delivery.RecipientPhone
		out.RecipientAddress = &t.Delivery.RecipientAddress
	}
	return json.Marshal(out)
}

// UnmarshalJSON rebuilds the detail union from the flat wire shape. It is
// lenient about missing or mixed detail fields; Validate enforces the
// discriminated schema.
func (t *Task) UnmarshalJSON(data []byte) error {
	var in taskJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}

	*t = Task{
		TaskName:        in.TaskName,
		TaskType:        in.TaskType,
		TaskDescription: in.TaskDescription,
		Assignee:        in.Assignee,
		Reporter:        in.Reporter,
		Status:          in.Status,
		DueDate:         in.DueDate,
		CreatedAt:       in.CreatedAt,
		CompletedAt:     in.CompletedAt,
	}

	if in.ItemName != nil || in.Quantity != nil {
		t.Purchase = &PurchaseDetails{}
		if in.ItemName != nil {
			t.Purchase.ItemName = *in.ItemName
		}
		if in.Quantity != nil {
			t.Purchase.Quantity = *in.Quantity
		}
	}
	if in.RecipientName != nil || in.RecipientPhone != nil || in.RecipientAddress != nil {
		t.Delivery = &DeliveryDetails{}
		if in.RecipientName != nil {
			t.Delivery.RecipientName = *in.RecipientName
		}
		if in.RecipientPhone != nil {
			t.Delivery.RecipientPhone = *in.RecipientPhone
		}
		if in.RecipientAddress != nil {
			t.Delivery.RecipientAddress = *in.RecipientAddress
		}
	}
	return nil
}

// FieldError identifies a single invalid field in a record.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

var (
	dueDatePattern        = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	recipientPhonePattern = regexp.MustCompile(`^\+82 010-\d{4}-\d{4}$`)
)

// Validate checks the task against the discriminated schema. It returns one
// entry per invalid field and nil for a valid task. A task must carry
// exactly the detail fields of its declared type.
func (t *Task) Validate() []FieldError {
	var errs []FieldError

	if t.TaskName == "" {
		errs = append(errs, FieldError{Field: "taskName", Message: "task name is required"})
	}
	if t.Assignee == "" {
		errs = append(errs, FieldError{Field: "assignee", Message: "assignee is required"})
	}
	if !t.Status.IsValid() {
		errs = append(errs, FieldError{Field: "status", Message: "invalid status"})
	}
	if !dueDatePattern.MatchString(t.DueDate) {
		errs = append(errs, FieldError{Field: "dueDate", Message: "invalid date format"})
	}

	switch t.TaskType {
	case TaskTypePurchase:
		if t.Delivery != nil {
			errs = append(errs, FieldError{Field: "taskType", Message: "purchase task carries delivery fields"})
		}
		if t.Purchase == nil {
			errs = append(errs,
				FieldError{Field: "itemName", Message: "item name is required"},
				FieldError{Field: "quantity", Message: "quantity must be at least 1"},
			)
			break
		}
		if t.Purchase.ItemName == "" {
			errs = append(errs, FieldError{Field: "itemName", Message: "item name is required"})
		}
		if t.Purchase.Quantity < 1 {
			errs = append(errs, FieldError{Field: "quantity", Message: "quantity must be at least 1"})
		}
	case TaskTypeDelivery:
		if t.Purchase != nil {
			errs = append(errs, FieldError{Field: "taskType", Message: "delivery task carries purchase fields"})
		}
		if t.Delivery == nil {
			errs = append(errs,
				FieldError{Field: "recipientName", Message: "recipient name is required"},
				FieldError{Field: "recipientPhone", Message: "invalid phone format"},
				FieldError{Field: "recipientAddress", Message: "address is required"},
			)
			break
		}
		if t.Delivery.RecipientName == "" {
			errs = append(errs, FieldError{Field: "recipientName", Message: "recipient name is required"})
		}
		if !recipientPhonePattern.MatchString(t.Delivery.RecipientPhone) {
			errs = append(errs, FieldError{Field: "recipientPhone", Message: "invalid phone format"})
		}
		if t.Delivery.RecipientAddress == "" {
			errs = append(errs, FieldError{Field: "recipientAddress", Message: "address is required"})
		}
	default:
		errs = append(errs, FieldError{Field: "taskType", Message: "unknown task type"})
	}

	return errs
}
