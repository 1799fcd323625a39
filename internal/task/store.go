// Copyright (c) 2026 TaskFlow. All rights reserved.
// Author: carljohntruya.art@gmail.com

package task

import (
	"context"
	"time"
)

// UpdateFields carries a partial update: nil pointers mean "leave unchanged".
//
// The semantics match COALESCE at the SQL layer — a supplied value overwrites,
// an absent one preserves the stored value. Clearing a field back to NULL is
// intentionally not expressible in the current scope.
type UpdateFields struct {
	Title       *string
	Description *string
	Status      *Status
	Priority    *Priority
	DueDate     *time.Time
}

// Empty reports whether no field was supplied at all.
func (fields UpdateFields) Empty() bool {
	return fields.Title == nil &&
		fields.Description == nil &&
		fields.Status == nil &&
		fields.Priority == nil &&
		fields.DueDate == nil
}

// # Task Data Access

// Repository defines the data access contract for tasks.
//
// Mutating operations are scoped by (id, ownerID) so the store itself never
// crosses an ownership boundary, even if a caller skips the service-level
// check.
type Repository interface {

	/*
		Create persists a new task.

		Parameters:
		  - context: context.Context
		  - task: *Task

		Returns:
		  - error: Persistence failures
	*/
	Create(context context.Context, task *Task) error

	/*
		ListByOwner returns every task owned by ownerID, most recent first.

		Parameters:
		  - context: context.Context
		  - ownerID: string

		Returns:
		  - []*Task: Tasks ordered by created_at DESC
		  - error: Retrieval failures
	*/
	ListByOwner(context context.Context, ownerID string) ([]*Task, error)

	/*
		FindByID returns the task with the given ID regardless of owner.

		The ownership decision belongs to the service layer: this lookup must
		distinguish "no such task" (404) from "someone else's task" (403).

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - *Task: Hydrated entity
		  - error: apperr.NotFound or retrieval failures
	*/
	FindByID(context context.Context, id string) (*Task, error)

	/*
		Update applies a partial update to the task owned by ownerID.

		Parameters:
		  - context: context.Context
		  - id: string
		  - ownerID: string
		  - fields: UpdateFields (nil members left unchanged)

		Returns:
		  - *Task: The updated row
		  - error: apperr.NotFound if no matching (id, owner) row, or failures
	*/
	Update(context context.Context, id, ownerID string, fields UpdateFields) (*Task, error)

	/*
		Delete removes the task owned by ownerID.

		Parameters:
		  - context: context.Context
		  - id: string
		  - ownerID: string

		Returns:
		  - error: apperr.NotFound if no matching (id, owner) row, or failures
	*/
	Delete(context context.Context, id, ownerID string) error
}
