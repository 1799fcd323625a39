// Copyright (c) 2026 TaskFlow. All rights reserved.
// Author: carljohntruya.art@gmail.com

// PostgreSQL implementation of the task repository.
package task

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/carljohntruya-art/TaskFlow2.0-server/internal/platform/apperr"
	"github.com/carljohntruya-art/TaskFlow2.0-server/internal/platform/dberr"
)

// PostgresRepository implements the Repository interface using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new PostgreSQL implementation of the task Repository.
func NewRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

const taskColumns = `id, user_id, title, description, status, priority, due_date, created_at, updated_at`

/*
Create persists a new task row.

Parameters:
  - context: context.Context
  - task: *Task

Returns:
  - error: Database constraint violations or connectivity errors
*/
func (repository *PostgresRepository) Create(context context.Context, task *Task) error {
	const query = `
		INSERT INTO tasks (id, user_id, title, description, status, priority, due_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	now := time.Now()
	task.CreatedAt = now
	task.UpdatedAt = now

	_, err := repository.pool.Exec(context, query,
		task.ID,
		task.UserID,
		task.Title,
		task.Description,
		task.Status,
		task.Priority,
		task.DueDate,
		task.CreatedAt,
		task.UpdatedAt,
	)

	if err != nil {
		return dberr.Wrap(err, "Task")
	}

	return nil
}

/*
ListByOwner returns every task owned by ownerID, most recent first.

Parameters:
  - context: context.Context
  - ownerID: string

Returns:
  - []*Task: Ordered by created_at DESC
  - error: Retrieval failures
*/
func (repository *PostgresRepository) ListByOwner(context context.Context, ownerID string) ([]*Task, error) {
	const query = `
		SELECT ` + taskColumns + `
		FROM tasks
		WHERE user_id = $1
		ORDER BY created_at DESC`

	rows, err := repository.pool.Query(context, query, ownerID)
	if err != nil {
		return nil, dberr.Wrap(err, "Task")
	}
	defer rows.Close()

	tasks := make([]*Task, 0)
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "Task")
		}
		tasks = append(tasks, task)
	}

	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "Task")
	}

	return tasks, nil
}

/*
FindByID retrieves a task by primary key, regardless of owner.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - *Task: Hydrated entity
  - error: apperr.NotFound or execution errors
*/
func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Task, error) {
	const query = `
		SELECT ` + taskColumns + `
		FROM tasks
		WHERE id = $1`

	task, err := scanTask(repository.pool.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "Task")
	}

	return task, nil
}

/*
Update applies a COALESCE partial update scoped by (id, owner).

Description: Supplied fields overwrite, nil fields keep the stored value, and
updated_at always advances. The owner predicate makes the write path
ownership-safe even in isolation.

Parameters:
  - context: context.Context
  - id: string
  - ownerID: string
  - fields: UpdateFields

Returns:
  - *Task: The updated row
  - error: apperr.NotFound if no matching (id, owner) row
*/
func (repository *PostgresRepository) Update(context context.Context, id, ownerID string, fields UpdateFields) (*Task, error) {
	const query = `
		UPDATE tasks
		SET
			title = COALESCE($1, title),
			description = COALESCE($2, description),
			status = COALESCE($3, status),
			priority = COALESCE($4, priority),
			due_date = COALESCE($5, due_date),
			updated_at = NOW()
		WHERE id = $6 AND user_id = $7
		RETURNING ` + taskColumns

	task, err := scanTask(repository.pool.QueryRow(context, query,
		fields.Title,
		fields.Description,
		fields.Status,
		fields.Priority,
		fields.DueDate,
		id,
		ownerID,
	))

	if err != nil {
		return nil, dberr.Wrap(err, "Task")
	}

	return task, nil
}

/*
Delete removes the task scoped by (id, owner).

Parameters:
  - context: context.Context
  - id: string
  - ownerID: string

Returns:
  - error: apperr.NotFound if no matching (id, owner) row
*/
func (repository *PostgresRepository) Delete(context context.Context, id, ownerID string) error {
	const query = `DELETE FROM tasks WHERE id = $1 AND user_id = $2`

	tag, err := repository.pool.Exec(context, query, id, ownerID)
	if err != nil {
		return dberr.Wrap(err, "Task")
	}

	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Task")
	}

	return nil
}

// scanTask hydrates a Task from a single pgx row.
func scanTask(row pgx.Row) (*Task, error) {
	task := &Task{}
	err := row.Scan(
		&task.ID,
		&task.UserID,
		&task.Title,
		&task.Description,
		&task.Status,
		&task.Priority,
		&task.DueDate,
		&task.CreatedAt,
		&task.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return task, nil
}
