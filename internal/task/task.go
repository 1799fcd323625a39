// Copyright (c) 2026 TaskFlow. All rights reserved.
// Author: carljohntruya.art@gmail.com

/*
Package task implements the owned-resource core of TaskFlow: tasks bound to
exactly one identity, with ownership enforced before every mutation.

# Architecture

  - Service: Orchestrates business logic and the ownership discipline.
  - Repository: Abstracted interface over PostgreSQL storage.
  - Handler: Thin HTTP delivery layer mounted behind the authorization pipeline.
*/
package task

import "time"

// # Enumerations

// Status is the workflow state of a task.
type Status string

const (
	StatusTodo       Status = "todo"
	StatusInProgress Status = "in_progress"
	StatusDone       Status = "done"
)

// Valid reports whether the status is a known member of the enumeration.
func (s Status) Valid() bool {
	return s == StatusTodo || s == StatusInProgress || s == StatusDone
}

// Priority is the urgency level of a task.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Valid reports whether the priority is a known member of the enumeration.
func (p Priority) Valid() bool {
	return p == PriorityLow || p == PriorityMedium || p == PriorityHigh
}

// # Domain Entities

// Task is a unit of work owned by a single identity.
//
// UserID is immutable after creation: ownership never transfers, and only the
// owner may update or delete the task.
type Task struct {
	ID          string     `json:"id"`
	UserID      string     `json:"userId"`
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	Status      Status     `json:"status"`
	Priority    Priority   `json:"priority"`
	DueDate     *time.Time `json:"dueDate"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// # Field Identifiers

const (
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldStatus      = "status"
	FieldPriority    = "priority"
	FieldDueDate     = "dueDate"
	FieldID          = "id"
)
