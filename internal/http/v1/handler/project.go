package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Leyinc1/manuelbest/internal/domain/models"
	"github.com/Leyinc1/manuelbest/internal/http/v1/response"
)

type (
	CreateProjectRequest struct {
		Name string `json:"name"`
	}

	AddMemberRequest struct {
		Email string `json:"email"`
	}
)

type Projects interface {
	CreateProject(ctx context.Context, ownerID, name string) (models.Project, error)
	ListProjects(ctx context.Context, userID string) ([]models.Project, error)
	DeleteProject(ctx context.Context, requesterID, projectID string) error
}

type Memberships interface {
	AddMember(ctx context.Context, projectID, inviterID, inviteeEmail string) error
}

type ProjectHandler struct {
	projects    Projects
	memberships Memberships
	log         *slog.Logger
}

func NewProjectHandler(projects Projects, memberships Memberships, log *slog.Logger) *ProjectHandler {
	return &ProjectHandler{
		projects:    projects,
		memberships: memberships,
		log:         log,
	}
}

func (h *ProjectHandler) List(w http.ResponseWriter, r *http.Request) {
	const op = "handler.project.List"

	log := h.log.With(slog.String("op", op))

	ident, err := identity(r)
	if err != nil {
		response.ServiceError(w, log, err)
		return
	}

	projects, err := h.projects.ListProjects(r.Context(), ident.UserID)
	if err != nil {
		response.ServiceError(w, log, err)
		return
	}

	response.JSON(w, log, http.StatusOK, projects)
}

func (h *ProjectHandler) Create(w http.ResponseWriter, r *http.Request) {
	const op = "handler.project.Create"

	log := h.log.With(slog.String("op", op))

	ident, err := identity(r)
	if err != nil {
		response.ServiceError(w, log, err)
		return
	}

	var req CreateProjectRequest
	if err := decodeJSON(w, r, &req); err != nil {
		response.ServiceError(w, log, err)
		return
	}

	project, err := h.projects.CreateProject(r.Context(), ident.UserID, req.Name)
	if err != nil {
		response.ServiceError(w, log, err)
		return
	}

	w.Header().Set("Location", "/api/v1/projects/"+project.ID)
	response.JSON(w, log, http.StatusCreated, project)
}

func (h *ProjectHandler) Delete(w http.ResponseWriter, r *http.Request) {
	const op = "handler.project.Delete"

	log := h.log.With(slog.String("op", op))

	ident, err := identity(r)
	if err != nil {
		response.ServiceError(w, log, err)
		return
	}

	if err := h.projects.DeleteProject(r.Context(), ident.UserID, chi.URLParam(r, "projectID")); err != nil {
		response.ServiceError(w, log, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *ProjectHandler) AddMember(w http.ResponseWriter, r *http.Request) {
	const op = "handler.project.AddMember"

	log := h.log.With(slog.String("op", op))

	ident, err := identity(r)
	if err != nil {
		response.ServiceError(w, log, err)
		return
	}

	var req AddMemberRequest
	if err := decodeJSON(w, r, &req); err != nil {
		response.ServiceError(w, log, err)
		return
	}

	if err := h.memberships.AddMember(r.Context(), chi.URLParam(r, "projectID"), ident.UserID, req.Email); err != nil {
		response.ServiceError(w, log, err)
		return
	}

	response.JSON(w, log, http.StatusOK, response.MessageResponse{Message: "member added"})
}
