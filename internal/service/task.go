package service

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/Leyinc1/manuelbest/internal/apperrors"
	"github.com/Leyinc1/manuelbest/internal/domain/models"
	"github.com/Leyinc1/manuelbest/internal/lib/logger/sl"
)

type TaskService struct {
	log      *slog.Logger
	tasks    TaskProvider
	members  MembershipChecker
	statuses []string
}

type TaskProvider interface {
	TasksByProject(ctx context.Context, projectID string) ([]models.Task, error)
	TaskByID(ctx context.Context, taskID int64) (models.Task, error)
	CreateTask(ctx context.Context, in models.NewTask) (models.Task, error)
	UpdateTask(ctx context.Context, taskID int64, patch models.TaskPatch) (models.Task, error)
	DeleteTask(ctx context.Context, taskID int64) error
}

// NewTaskService takes the allowed task statuses in display order.
func NewTaskService(
	log *slog.Logger,
	tasks TaskProvider,
	members MembershipChecker,
	statuses []string) *TaskService {
	return &TaskService{
		log:      log,
		tasks:    tasks,
		members:  members,
		statuses: slices.Clone(statuses),
	}
}

func (s *TaskService) Statuses() []string {
	return slices.Clone(s.statuses)
}

func (s *TaskService) ListTasks(ctx context.Context, callerID, projectID string) ([]models.Task, error) {
	const op = "service.task.ListTasks"

	log := s.log.With(
		slog.String("op", op),
		slog.String("project_id", projectID),
		slog.String("caller_id", callerID),
	)

	if err := s.requireMember(ctx, projectID, callerID); err != nil {
		log.Warn("task list refused", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	tasks, err := s.tasks.TasksByProject(ctx, projectID)
	if err != nil {
		log.Error("failed to list tasks", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return tasks, nil
}

func (s *TaskService) CreateTask(ctx context.Context, callerID string, in models.NewTask) (models.Task, error) {
	const op = "service.task.CreateTask"

	log := s.log.With(
		slog.String("op", op),
		slog.String("project_id", in.ProjectID),
		slog.String("caller_id", callerID),
	)

	log.Info("creating task")

	if err := s.requireMember(ctx, in.ProjectID, callerID); err != nil {
		log.Warn("task create refused", sl.Err(err))
		return models.Task{}, fmt.Errorf("%s: %w", op, err)
	}

	in.Content = strings.TrimSpace(in.Content)
	in.Status = strings.TrimSpace(in.Status)
	if err := s.validateContent(in.Content); err != nil {
		return models.Task{}, fmt.Errorf("%s: %w", op, err)
	}
	if err := s.validateStatus(in.Status); err != nil {
		return models.Task{}, fmt.Errorf("%s: %w", op, err)
	}
	if in.AssignedTo != nil && *in.AssignedTo == "" {
		in.AssignedTo = nil
	}

	task, err := s.tasks.CreateTask(ctx, in)
	if err != nil {
		log.Error("failed to create task", sl.Err(err))
		return models.Task{}, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("task created", slog.Int64("task_id", task.ID))

	return task, nil
}

// UpdateTask applies a merge-patch. A missing task is reported before
// membership is considered.
func (s *TaskService) UpdateTask(ctx context.Context, callerID string, taskID int64, patch models.TaskPatch) (models.Task, error) {
	const op = "service.task.UpdateTask"

	log := s.log.With(
		slog.String("op", op),
		slog.Int64("task_id", taskID),
		slog.String("caller_id", callerID),
	)

	log.Info("updating task")

	task, err := s.tasks.TaskByID(ctx, taskID)
	if err != nil {
		log.Warn("failed to load task", sl.Err(err))
		return models.Task{}, fmt.Errorf("%s: %w", op, err)
	}

	if err := s.requireMember(ctx, task.ProjectID, callerID); err != nil {
		log.Warn("task update refused", sl.Err(err))
		return models.Task{}, fmt.Errorf("%s: %w", op, err)
	}

	if err := s.normalizePatch(&patch); err != nil {
		log.Warn("invalid patch", sl.Err(err))
		return models.Task{}, fmt.Errorf("%s: %w", op, err)
	}

	if patch.IsEmpty() {
		return task, nil
	}

	updated, err := s.tasks.UpdateTask(ctx, taskID, patch)
	if err != nil {
		log.Error("failed to update task", sl.Err(err))
		return models.Task{}, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("task updated")

	return updated, nil
}

func (s *TaskService) DeleteTask(ctx context.Context, callerID string, taskID int64) error {
	const op = "service.task.DeleteTask"

	log := s.log.With(
		slog.String("op", op),
		slog.Int64("task_id", taskID),
		slog.String("caller_id", callerID),
	)

	task, err := s.tasks.TaskByID(ctx, taskID)
	if err != nil {
		log.Warn("failed to load task", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.requireMember(ctx, task.ProjectID, callerID); err != nil {
		log.Warn("task delete refused", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.tasks.DeleteTask(ctx, taskID); err != nil {
		log.Error("failed to delete task", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	log.Info("task deleted")

	return nil
}

func (s *TaskService) requireMember(ctx context.Context, projectID, userID string) error {
	ok, err := s.members.IsMember(ctx, projectID, userID)
	if err != nil {
		return err
	}
	if !ok {
		return apperrors.ErrNotProjectMember
	}
	return nil
}

func (s *TaskService) normalizePatch(p *models.TaskPatch) error {
	if p.Content.Set {
		if p.Content.Null {
			return apperrors.ErrTaskContentRequired
		}
		p.Content.Value = strings.TrimSpace(p.Content.Value)
		if err := s.validateContent(p.Content.Value); err != nil {
			return err
		}
	}

	if p.Status.Set {
		if p.Status.Null {
			return apperrors.ErrTaskStatusInvalid
		}
		p.Status.Value = strings.TrimSpace(p.Status.Value)
		if err := s.validateStatus(p.Status.Value); err != nil {
			return err
		}
	}

	if p.AssignedTo.Set && !p.AssignedTo.Null && p.AssignedTo.Value == "" {
		p.AssignedTo.Null = true
	}

	return nil
}

func (s *TaskService) validateContent(content string) error {
	if content == "" {
		return apperrors.ErrTaskContentRequired
	}
	return nil
}

func (s *TaskService) validateStatus(status string) error {
	if !slices.Contains(s.statuses, status) {
		return fmt.Errorf("%w: %q (allowed: %s)", apperrors.ErrTaskStatusInvalid, status, strings.Join(s.statuses, ", "))
	}
	return nil
}
