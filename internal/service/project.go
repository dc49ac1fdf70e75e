package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/Leyinc1/manuelbest/internal/apperrors"
	"github.com/Leyinc1/manuelbest/internal/domain/models"
	"github.com/Leyinc1/manuelbest/internal/lib/logger/sl"
)

const maxProjectNameLength = 100

type ProjectService struct {
	log      *slog.Logger
	projects ProjectProvider
}

type ProjectProvider interface {
	CreateProjectWithOwner(ctx context.Context, project models.Project) error
	ProjectByID(ctx context.Context, projectID string) (models.Project, error)
	ProjectsForUser(ctx context.Context, userID string) ([]models.Project, error)
	DeleteProjectCascade(ctx context.Context, projectID string) error
}

func NewProjectService(
	log *slog.Logger,
	projects ProjectProvider) *ProjectService {
	return &ProjectService{
		log:      log,
		projects: projects,
	}
}

// CreateProject makes ownerID the owner and first member of a new project.
func (s *ProjectService) CreateProject(ctx context.Context, ownerID, name string) (models.Project, error) {
	const op = "service.project.CreateProject"

	name = strings.TrimSpace(name)

	log := s.log.With(
		slog.String("op", op),
		slog.String("owner_id", ownerID),
		slog.String("name", name),
	)

	log.Info("creating project")

	if n := utf8.RuneCountInString(name); n == 0 || n > maxProjectNameLength {
		log.Warn("invalid project name")
		return models.Project{}, fmt.Errorf("%s: %w", op, apperrors.ErrProjectNameInvalid)
	}

	project := models.Project{
		ID:      uuid.NewString(),
		Name:    name,
		OwnerID: ownerID,
	}

	if err := s.projects.CreateProjectWithOwner(ctx, project); err != nil {
		log.Error("failed to create project", sl.Err(err))
		return models.Project{}, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("project created", slog.String("project_id", project.ID))

	return project, nil
}

func (s *ProjectService) ListProjects(ctx context.Context, userID string) ([]models.Project, error) {
	const op = "service.project.ListProjects"

	projects, err := s.projects.ProjectsForUser(ctx, userID)
	if err != nil {
		s.log.Error("failed to list projects", slog.String("op", op), sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return projects, nil
}

// DeleteProject lets only the owner delete; tasks and memberships go with it.
func (s *ProjectService) DeleteProject(ctx context.Context, requesterID, projectID string) error {
	const op = "service.project.DeleteProject"

	log := s.log.With(
		slog.String("op", op),
		slog.String("project_id", projectID),
		slog.String("requester_id", requesterID),
	)

	log.Info("deleting project")

	if !isProjectID(projectID) {
		return fmt.Errorf("%s: %w", op, apperrors.ErrProjectNotFound)
	}

	project, err := s.projects.ProjectByID(ctx, projectID)
	if err != nil {
		log.Warn("failed to load project", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	if project.OwnerID != requesterID {
		log.Warn("requester is not the owner")
		return fmt.Errorf("%s: %w", op, apperrors.ErrNotProjectOwner)
	}

	if err := s.projects.DeleteProjectCascade(ctx, projectID); err != nil {
		log.Error("failed to delete project", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	log.Info("project deleted")

	return nil
}
