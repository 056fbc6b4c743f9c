package users

import (
	"net/http"

	"github.com/bissquit/task-garden/internal/domain"
	"github.com/bissquit/task-garden/internal/pkg/ctxlog"
	"github.com/bissquit/task-garden/internal/pkg/httputil"
	"github.com/bissquit/task-garden/internal/query"
	"github.com/go-chi/chi/v5"
)

// Handler handles HTTP requests for the users module.
type Handler struct {
	service *Service
}

// NewHandler creates a new user handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers user routes. All routes require a session.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/users", func(r chi.Router) {
		r.Get("/", h.ListUsers)
		r.Get("/assignable", h.ListAssignable)
	})
}

// ListUsers handles GET /users. A Viewer gets an empty collection, not a
// 403: visibility fails closed rather than erroring.
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	viewer := httputil.GetUser(r.Context())
	q := r.URL.Query()

	filter := query.UserFilter{
		Roles:      domain.AllRoles,
		SearchTerm: q.Get("q"),
	}

	if raw, ok := q["role"]; ok {
		filter.Roles = nil
		for _, s := range raw {
			role := domain.Role(s)
			if !role.IsValid() {
				httputil.Error(w, http.StatusBadRequest, "unknown role "+s)
				return
			}
			filter.Roles = append(filter.Roles, role)
		}
	}

	field, err := query.ParseUserSearchField(q.Get("field"))
	if err != nil {
		httputil.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	filter.SearchField = field

	result, err := h.service.List(r.Context(), viewer, filter)
	if err != nil {
		ctxlog.FromContext(r.Context()).Error("list users", "error", err)
		httputil.Error(w, http.StatusInternalServerError, "internal error")
		return
	}

	httputil.Success(w, http.StatusOK, result)
}

// ListAssignable handles GET /users/assignable, feeding the task form's
// assignee picker.
func (h *Handler) ListAssignable(w http.ResponseWriter, r *http.Request) {
	viewer := httputil.GetUser(r.Context())

	result, err := h.service.Assignable(r.Context(), viewer)
	if err != nil {
		ctxlog.FromContext(r.Context()).Error("list assignable users", "error", err)
		httputil.Error(w, http.StatusInternalServerError, "internal error")
		return
	}

	httputil.Success(w, http.StatusOK, result)
}
