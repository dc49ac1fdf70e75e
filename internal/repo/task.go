package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/Leyinc1/manuelbest/internal/apperrors"
	"github.com/Leyinc1/manuelbest/internal/domain/models"
	"github.com/Leyinc1/manuelbest/internal/storage/postgresql"
)

const (
	taskColumns           = `id, content, status, project_id, assigned_to, description, tags`
	taskProjectConstraint = "tasks_project_id_fkey"
)

type TaskRepo struct {
	storage *sqlx.DB
}

func NewTaskRepo(storage *sqlx.DB) *TaskRepo {
	return &TaskRepo{storage: storage}
}

func (r *TaskRepo) TasksByProject(ctx context.Context, projectID string) ([]models.Task, error) {
	const op = "repo.task.TasksByProject"

	query := `SELECT ` + taskColumns + ` FROM tasks WHERE project_id = $1 ORDER BY id`

	tasks := make([]models.Task, 0)
	if err := r.storage.SelectContext(ctx, &tasks, query, projectID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return tasks, nil
}

func (r *TaskRepo) TaskByID(ctx context.Context, taskID int64) (models.Task, error) {
	const op = "repo.task.TaskByID"

	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = $1`

	var task models.Task
	if err := r.storage.GetContext(ctx, &task, query, taskID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Task{}, fmt.Errorf("%s: %w", op, apperrors.ErrTaskNotFound)
		}
		return models.Task{}, fmt.Errorf("%s: %w", op, err)
	}

	return task, nil
}

func (r *TaskRepo) CreateTask(ctx context.Context, in models.NewTask) (models.Task, error) {
	const op = "repo.task.CreateTask"

	query := `
		INSERT INTO tasks (content, status, project_id, assigned_to, description, tags)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + taskColumns

	var task models.Task
	err := r.storage.GetContext(ctx, &task, query,
		in.Content, in.Status, in.ProjectID, in.AssignedTo, in.Description, tagsValue(in.Tags))
	if err != nil {
		return models.Task{}, fmt.Errorf("%s: %w", op, mapTaskWriteError(err))
	}

	return task, nil
}

// UpdateTask applies only the fields present in patch. A task deleted
// between the caller's read and this write yields ErrTaskNotFound.
func (r *TaskRepo) UpdateTask(ctx context.Context, taskID int64, patch models.TaskPatch) (models.Task, error) {
	const op = "repo.task.UpdateTask"

	var (
		sets []string
		args []any
	)
	set := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if patch.Content.Set {
		set("content", patch.Content.Value)
	}
	if patch.Status.Set {
		set("status", patch.Status.Value)
	}
	if patch.AssignedTo.Set {
		set("assigned_to", patch.AssignedTo.Ptr())
	}
	if patch.Description.Set {
		set("description", patch.Description.Ptr())
	}
	if patch.Tags.Set {
		set("tags", tagsValue(patch.Tags.Value))
	}

	if len(sets) == 0 {
		return r.TaskByID(ctx, taskID)
	}

	args = append(args, taskID)
	query := fmt.Sprintf(`UPDATE tasks SET %s WHERE id = $%d RETURNING %s`,
		strings.Join(sets, ", "), len(args), taskColumns)

	var task models.Task
	if err := r.storage.GetContext(ctx, &task, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Task{}, fmt.Errorf("%s: %w", op, apperrors.ErrTaskNotFound)
		}
		return models.Task{}, fmt.Errorf("%s: %w", op, mapTaskWriteError(err))
	}

	return task, nil
}

func (r *TaskRepo) DeleteTask(ctx context.Context, taskID int64) error {
	const op = "repo.task.DeleteTask"

	res, err := r.storage.ExecContext(ctx, `DELETE FROM tasks WHERE id = $1`, taskID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", op, apperrors.ErrTaskNotFound)
	}

	return nil
}

// tagsValue stores an empty list as NULL.
func tagsValue(tags []string) pq.StringArray {
	if len(tags) == 0 {
		return nil
	}
	return pq.StringArray(tags)
}

func mapTaskWriteError(err error) error {
	if postgresql.IsForeignKeyViolation(err) {
		if postgresql.Constraint(err) == taskProjectConstraint {
			return apperrors.ErrProjectNotFound
		}
		return apperrors.ErrAssigneeNotFound
	}
	return err
}
