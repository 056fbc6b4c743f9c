package tasks

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/bissquit/task-garden/internal/domain"
	"github.com/bissquit/task-garden/internal/pkg/ctxlog"
	"github.com/bissquit/task-garden/internal/pkg/httputil"
	"github.com/bissquit/task-garden/internal/query"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

// Handler handles HTTP requests for the tasks module.
type Handler struct {
	service   *Service
	validator *validator.Validate
}

// NewHandler creates a new task handler.
func NewHandler(service *Service) *Handler {
	return &Handler{
		service:   service,
		validator: validator.New(),
	}
}

// RegisterRoutes registers task routes. All routes require a session.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/tasks", func(r chi.Router) {
		r.Get("/", h.ListTasks)
		r.Post("/", h.CreateTask)
	})
}

// ListTasks handles GET /tasks. Absent set-filter parameters select the
// full value set, matching the UI's everything-checked initial state; the
// engine itself still treats an explicitly empty set as "show nothing".
func (h *Handler) ListTasks(w http.ResponseWriter, r *http.Request) {
	viewer := httputil.GetUser(r.Context())
	q := r.URL.Query()

	filter := query.TaskFilter{
		Statuses:   domain.AllTaskStatuses,
		Types:      domain.AllTaskTypes,
		SearchTerm: q.Get("q"),
	}

	if raw, ok := q["status"]; ok {
		filter.Statuses = nil
		for _, s := range raw {
			status := domain.TaskStatus(s)
			if !status.IsValid() {
				httputil.Error(w, http.StatusBadRequest, "unknown status "+s)
				return
			}
			filter.Statuses = append(filter.Statuses, status)
		}
	}

	if raw, ok := q["type"]; ok {
		filter.Types = nil
		for _, s := range raw {
			taskType := domain.TaskType(s)
			if !taskType.IsValid() {
				httputil.Error(w, http.StatusBadRequest, "unknown task type "+s)
				return
			}
			filter.Types = append(filter.Types, taskType)
		}
	}

	field, err := query.ParseTaskSearchField(q.Get("field"))
	if err != nil {
		httputil.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	filter.SearchField = field

	input := ListInput{Filter: filter}
	if col := q.Get("sort"); col != "" {
		column, err := query.ParseTaskSortColumn(col)
		if err != nil {
			httputil.Error(w, http.StatusBadRequest, err.Error())
			return
		}
		dir, err := query.ParseDirection(q.Get("dir"))
		if err != nil {
			httputil.Error(w, http.StatusBadRequest, err.Error())
			return
		}
		if dir == query.DirectionNone && q.Get("dir") == "" {
			dir = query.DirectionAsc
		}
		input.SortColumn = column
		input.SortDir = dir
	}

	result, err := h.service.List(r.Context(), viewer, input)
	if err != nil {
		ctxlog.FromContext(r.Context()).Error("list tasks", "error", err)
		httputil.Error(w, http.StatusInternalServerError, "internal error")
		return
	}

	httputil.Success(w, http.StatusOK, result)
}

// CreateTaskRequest represents the request body for creating a task. The
// detail fields are optional on the wire; which ones are required follows
// from taskType.
type CreateTaskRequest struct {
	TaskName        string `json:"taskName" validate:"required"`
	TaskType        string `json:"taskType" validate:"required"`
	TaskDescription string `json:"taskDescription"`
	Assignee        string `json:"assignee" validate:"required"`
	DueDate         string `json:"dueDate" validate:"required,datetime=2006-01-02"`

	ItemName *string `json:"itemName"`
	Quantity *int    `json:"quantity"`

	RecipientName    *string `json:"recipientName"`
	RecipientPhone   *string `json:"recipientPhone"`
	RecipientAddress *string `json:"recipientAddress"`
}

// ToDomain converts the request to a domain task. Detail structs are built
// from whichever fields the payload carried; Validate enforces that they
// match the declared type.
func (r *CreateTaskRequest) ToDomain() domain.Task {
	task := domain.Task{
		TaskName:        r.TaskName,
		TaskType:        domain.TaskType(r.TaskType),
		TaskDescription: r.TaskDescription,
		Assignee:        r.Assignee,
		DueDate:         r.DueDate,
	}

	if r.ItemName != nil || r.Quantity != nil {
		task.Purchase = &domain.PurchaseDetails{}
		if r.ItemName != nil {
			task.Purchase.ItemName = *r.ItemName
		}
		if r.Quantity != nil {
			task.Purchase.Quantity = *r.Quantity
		}
	}
	if r.RecipientName != nil || r.RecipientPhone != nil || r.RecipientAddress != nil {
		task.Delivery = &domain.DeliveryDetails{}
		if r.RecipientName != nil {
			task.Delivery.RecipientName = *r.RecipientName
		}
		if r.RecipientPhone != nil {
			task.Delivery.RecipientPhone = *r.RecipientPhone
		}
		if r.RecipientAddress != nil {
			task.Delivery.RecipientAddress = *r.RecipientAddress
		}
	}
	return task
}

// CreateTask handles POST /tasks.
func (h *Handler) CreateTask(w http.ResponseWriter, r *http.Request) {
	viewer := httputil.GetUser(r.Context())

	var req CreateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid json")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		httputil.ValidationError(w, err)
		return
	}

	created, err := h.service.Create(r.Context(), viewer, req.ToDomain())
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	httputil.Success(w, http.StatusCreated, created)
}

func (h *Handler) handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var validationErr *ValidationError
	switch {
	case errors.Is(err, ErrPermissionDenied):
		httputil.Error(w, http.StatusForbidden, err.Error())
	case errors.As(err, &validationErr):
		httputil.FieldErrors(w, validationErr.Fields)
	default:
		ctxlog.FromContext(r.Context()).Error("internal error", "error", err)
		httputil.Error(w, http.StatusInternalServerError, "internal error")
	}
}
