// Copyright (c) 2026 TaskFlow. All rights reserved.
// Author: carljohntruya.art@gmail.com

// HTTP delivery layer for task endpoints.
//
// Every route is mounted behind the authorization pipeline: handlers read the
// trusted identity from the request context and never see raw tokens.
package task

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/carljohntruya-art/TaskFlow2.0-server/internal/platform/request"
	"github.com/carljohntruya-art/TaskFlow2.0-server/internal/platform/respond"
	"github.com/carljohntruya-art/TaskFlow2.0-server/internal/platform/validate"
	"github.com/carljohntruya-art/TaskFlow2.0-server/pkg/pointer"
)

// dueDateLayout is the accepted wire format for due dates.
const dueDateLayout = "2006-01-02"

// Handler implements task-related HTTP endpoints.
type Handler struct {
	taskService *Service
	guard       func(http.Handler) http.Handler
}

// NewHandler constructs a new [Handler].
//
// guard is the authorization pipeline middleware applied to all routes.
func NewHandler(service *Service, guard func(http.Handler) http.Handler) *Handler {
	return &Handler{taskService: service, guard: guard}
}

// Routes returns a [chi.Router] with all task routes behind the guard.
//
// # Endpoints
//   - POST   /     : Creates a task owned by the caller.
//   - GET    /     : Lists the caller's tasks, most recent first.
//   - PATCH  /{id} : Partially updates an owned task.
//   - DELETE /{id} : Deletes an owned task.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(handler.guard)

	router.Post("/", handler.create)
	router.Get("/", handler.list)
	router.Patch("/{id}", handler.update)
	router.Delete("/{id}", handler.remove)

	return router
}

// # Request Payloads

type createTaskRequest struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Status      string  `json:"status"`
	Priority    string  `json:"priority"`
	DueDate     string  `json:"dueDate"`
}

type updateTaskRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
	Priority    *string `json:"priority"`
	DueDate     *string `json:"dueDate"`
}

/*
Create persists a new task for the authenticated caller.

POST /tasks

Request:
  - Body: createTaskRequest (Title required; Status/Priority default to
    "todo"/"medium"; DueDate as YYYY-MM-DD)

Response:
  - 201: Created task
  - 400: Validation failure
  - 401: Unauthenticated
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	identity, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input createTaskRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldTitle, input.Title).
		MaxLen(FieldTitle, input.Title, 255)
	if input.Status != "" {
		validator.OneOf(FieldStatus, input.Status,
			string(StatusTodo), string(StatusInProgress), string(StatusDone))
	}
	if input.Priority != "" {
		validator.OneOf(FieldPriority, input.Priority,
			string(PriorityLow), string(PriorityMedium), string(PriorityHigh))
	}
	if input.DueDate != "" {
		validator.Date(FieldDueDate, input.DueDate)
	}

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	created, err := handler.taskService.Create(request.Context(), identity, CreateInput{
		Title:       input.Title,
		Description: input.Description,
		Status:      Status(input.Status),
		Priority:    Priority(input.Priority),
		DueDate:     parseDueDate(input.DueDate),
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, "Task created successfully", created)
}

/*
List returns every task owned by the caller.

GET /tasks

Response:
  - 200: Tasks ordered by creation time, most recent first
  - 401: Unauthenticated
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	identity, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	tasks, err := handler.taskService.List(request.Context(), identity)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, "Tasks retrieved successfully", tasks)
}

/*
Update applies a partial update to an owned task.

PATCH /tasks/{id}

Request:
  - Body: updateTaskRequest — any subset of fields; omitted fields are preserved

Response:
  - 200: Updated task
  - 400: Validation failure
  - 401: Unauthenticated
  - 403: Task exists but belongs to another identity
  - 404: No such task
*/
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	identity, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	id := requestutil.ID(request, "id")

	var input updateTaskRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.UUID(FieldID, id)
	if input.Title != nil {
		validator.Required(FieldTitle, *input.Title).
			MaxLen(FieldTitle, *input.Title, 255)
	}
	if input.Status != nil {
		validator.OneOf(FieldStatus, *input.Status,
			string(StatusTodo), string(StatusInProgress), string(StatusDone))
	}
	if input.Priority != nil {
		validator.OneOf(FieldPriority, *input.Priority,
			string(PriorityLow), string(PriorityMedium), string(PriorityHigh))
	}
	if input.DueDate != nil {
		validator.Date(FieldDueDate, *input.DueDate)
	}

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	fields := UpdateFields{
		Title:       input.Title,
		Description: input.Description,
	}
	if input.Status != nil {
		fields.Status = pointer.To(Status(*input.Status))
	}
	if input.Priority != nil {
		fields.Priority = pointer.To(Priority(*input.Priority))
	}
	if input.DueDate != nil {
		fields.DueDate = parseDueDate(*input.DueDate)
	}

	updated, err := handler.taskService.Update(request.Context(), identity, id, fields)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, "Task updated successfully", updated)
}

/*
Remove deletes an owned task.

DELETE /tasks/{id}

Response:
  - 200: {id} of the deleted task
  - 401: Unauthenticated
  - 403: Task exists but belongs to another identity
  - 404: No such task
*/
func (handler *Handler) remove(writer http.ResponseWriter, request *http.Request) {
	identity, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	id := requestutil.ID(request, "id")

	validator := &validate.Validator{}
	if err := validator.UUID(FieldID, id).Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.taskService.Delete(request.Context(), identity, id); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, "Task deleted successfully", map[string]string{FieldID: id})
}

// parseDueDate converts a validated YYYY-MM-DD string to a *time.Time.
// Returns nil for the empty string.
func parseDueDate(value string) *time.Time {
	if value == "" {
		return nil
	}
	parsed, err := time.Parse(dueDateLayout, value)
	if err != nil {
		return nil
	}
	return &parsed
}
