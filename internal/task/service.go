// Copyright (c) 2026 TaskFlow. All rights reserved.
// Author: carljohntruya.art@gmail.com

package task

import (
	"context"
	"time"

	"github.com/carljohntruya-art/TaskFlow2.0-server/internal/platform/apperr"
	"github.com/carljohntruya-art/TaskFlow2.0-server/internal/platform/sec"
	"github.com/carljohntruya-art/TaskFlow2.0-server/pkg/uuid"
)

// Service implements task use cases on behalf of a trusted identity.
//
// Every method takes the [*sec.Identity] attached by the authorization
// pipeline — never a raw claim set — and applies the ownership discipline
// before any mutating store call.
type Service struct {
	repository Repository
}

// NewService constructs a new [Service].
func NewService(repository Repository) *Service {
	return &Service{repository: repository}
}

// # Creation

// CreateInput holds the data for a new task. Zero values for Status and
// Priority take the documented defaults.
type CreateInput struct {
	Title       string
	Description *string
	Status      Status
	Priority    Priority
	DueDate     *time.Time
}

/*
Create persists a new task owned by the calling identity.

Parameters:
  - context: context.Context
  - identity: *sec.Identity (the trusted caller, becomes the owner)
  - input: CreateInput

Returns:
  - *Task: Created entity with defaults applied
  - error: Persistence failures
*/
func (service *Service) Create(context context.Context, identity *sec.Identity, input CreateInput) (*Task, error) {
	status := input.Status
	if status == "" {
		status = StatusTodo
	}

	priority := input.Priority
	if priority == "" {
		priority = PriorityMedium
	}

	newTask := &Task{
		ID:          uuid.New(),
		UserID:      identity.ID,
		Title:       input.Title,
		Description: input.Description,
		Status:      status,
		Priority:    priority,
		DueDate:     input.DueDate,
	}

	if err := service.repository.Create(context, newTask); err != nil {
		return nil, err
	}

	return newTask, nil
}

// # Retrieval

// List returns every task owned by the calling identity, most recent first.
func (service *Service) List(context context.Context, identity *sec.Identity) ([]*Task, error) {
	return service.repository.ListByOwner(context, identity.ID)
}

// # Mutation

/*
Update applies a partial update to a task after enforcing ownership.

Description: Loads the resource, confirms it exists (404 otherwise), confirms
the caller owns it (403 otherwise), and only then reaches the write path.
Supplied fields overwrite; absent fields are preserved. A payload supplying
nothing returns the task unchanged without a store write.

Parameters:
  - context: context.Context
  - identity: *sec.Identity
  - id: string
  - fields: UpdateFields

Returns:
  - *Task: Updated entity
  - error: apperr.NotFound, apperr.Forbidden, or storage failures
*/
func (service *Service) Update(context context.Context, identity *sec.Identity, id string, fields UpdateFields) (*Task, error) {
	existing, err := service.repository.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	if err := authorizeOwner(existing.UserID, identity, "Unauthorized to update this task"); err != nil {
		return nil, err
	}

	// A payload with no fields is a no-op: skip the write so updated_at is
	// not bumped for nothing.
	if fields.Empty() {
		return existing, nil
	}

	return service.repository.Update(context, id, identity.ID, fields)
}

/*
Delete removes a task after enforcing ownership.

Parameters:
  - context: context.Context
  - identity: *sec.Identity
  - id: string

Returns:
  - error: apperr.NotFound, apperr.Forbidden, or storage failures
*/
func (service *Service) Delete(context context.Context, identity *sec.Identity, id string) error {
	existing, err := service.repository.FindByID(context, id)
	if err != nil {
		return err
	}

	if err := authorizeOwner(existing.UserID, identity, "Unauthorized to delete this task"); err != nil {
		return err
	}

	return service.repository.Delete(context, id, identity.ID)
}

// # Ownership Enforcement

// authorizeOwner allows the mutation iff the resource owner is the caller.
//
// Denial deliberately surfaces as 403, distinct from 404: the caller learns
// the task exists but belongs to someone else. Accepted tradeoff per the API
// contract. Admins get no bypass here: the role exists in the data model but
// ownership is the only policy any code path exercises.
func authorizeOwner(resourceOwner string, identity *sec.Identity, message string) error {
	if resourceOwner != identity.ID {
		return apperr.Forbidden(message)
	}
	return nil
}
