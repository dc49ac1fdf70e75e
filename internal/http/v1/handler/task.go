package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/Leyinc1/manuelbest/internal/apperrors"
	"github.com/Leyinc1/manuelbest/internal/domain/models"
	"github.com/Leyinc1/manuelbest/internal/http/v1/response"
)

type Tasks interface {
	ListTasks(ctx context.Context, callerID, projectID string) ([]models.Task, error)
	CreateTask(ctx context.Context, callerID string, in models.NewTask) (models.Task, error)
	UpdateTask(ctx context.Context, callerID string, taskID int64, patch models.TaskPatch) (models.Task, error)
	DeleteTask(ctx context.Context, callerID string, taskID int64) error
	Statuses() []string
}

type TaskHandler struct {
	tasks Tasks
	log   *slog.Logger
}

func NewTaskHandler(tasks Tasks, log *slog.Logger) *TaskHandler {
	return &TaskHandler{
		tasks: tasks,
		log:   log,
	}
}

func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	const op = "handler.task.List"

	log := h.log.With(slog.String("op", op))

	ident, err := identity(r)
	if err != nil {
		response.ServiceError(w, log, err)
		return
	}

	projectID := r.URL.Query().Get("projectId")
	if projectID == "" {
		response.ServiceError(w, log, apperrors.Validation("projectId query parameter is required"))
		return
	}

	tasks, err := h.tasks.ListTasks(r.Context(), ident.UserID, projectID)
	if err != nil {
		response.ServiceError(w, log, err)
		return
	}

	response.JSON(w, log, http.StatusOK, tasks)
}

func (h *TaskHandler) Statuses(w http.ResponseWriter, r *http.Request) {
	const op = "handler.task.Statuses"

	log := h.log.With(slog.String("op", op))

	response.JSON(w, log, http.StatusOK, h.tasks.Statuses())
}

func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	const op = "handler.task.Create"

	log := h.log.With(slog.String("op", op))

	ident, err := identity(r)
	if err != nil {
		response.ServiceError(w, log, err)
		return
	}

	var req models.NewTask
	if err := decodeJSON(w, r, &req); err != nil {
		response.ServiceError(w, log, err)
		return
	}

	task, err := h.tasks.CreateTask(r.Context(), ident.UserID, req)
	if err != nil {
		response.ServiceError(w, log, err)
		return
	}

	response.JSON(w, log, http.StatusCreated, task)
}

// Update accepts a JSON merge-patch: omitted keys are left alone and null
// clears nullable fields.
func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	const op = "handler.task.Update"

	log := h.log.With(slog.String("op", op))

	ident, err := identity(r)
	if err != nil {
		response.ServiceError(w, log, err)
		return
	}

	taskID, err := taskIDParam(r)
	if err != nil {
		response.ServiceError(w, log, err)
		return
	}

	var patch models.TaskPatch
	if err := decodeJSON(w, r, &patch); err != nil {
		response.ServiceError(w, log, err)
		return
	}

	task, err := h.tasks.UpdateTask(r.Context(), ident.UserID, taskID, patch)
	if err != nil {
		response.ServiceError(w, log, err)
		return
	}

	response.JSON(w, log, http.StatusOK, task)
}

func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	const op = "handler.task.Delete"

	log := h.log.With(slog.String("op", op))

	ident, err := identity(r)
	if err != nil {
		response.ServiceError(w, log, err)
		return
	}

	taskID, err := taskIDParam(r)
	if err != nil {
		response.ServiceError(w, log, err)
		return
	}

	if err := h.tasks.DeleteTask(r.Context(), ident.UserID, taskID); err != nil {
		response.ServiceError(w, log, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// A non-numeric id cannot name a task.
func taskIDParam(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "taskID"), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.ErrTaskNotFound
	}
	return id, nil
}
