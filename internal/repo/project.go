package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/Leyinc1/manuelbest/internal/apperrors"
	"github.com/Leyinc1/manuelbest/internal/domain/models"
	"github.com/Leyinc1/manuelbest/internal/storage/postgresql"
)

type ProjectRepo struct {
	storage *sqlx.DB
}

func NewProjectRepo(storage *sqlx.DB) *ProjectRepo {
	return &ProjectRepo{storage: storage}
}

// CreateProjectWithOwner inserts the project and the owner's membership in
// one transaction.
func (r *ProjectRepo) CreateProjectWithOwner(ctx context.Context, project models.Project) error {
	const op = "repo.project.CreateProjectWithOwner"

	err := postgresql.WithTx(ctx, r.storage, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO projects (id, name, owner_id) VALUES ($1, $2, $3)`,
			project.ID, project.Name, project.OwnerID,
		); err != nil {
			return fmt.Errorf("insert project: %w", err)
		}

		if _, err := tx.ExecContext(ctx,
			`INSERT INTO project_members (project_id, user_id) VALUES ($1, $2)`,
			project.ID, project.OwnerID,
		); err != nil {
			return fmt.Errorf("insert owner membership: %w", err)
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (r *ProjectRepo) ProjectByID(ctx context.Context, projectID string) (models.Project, error) {
	const op = "repo.project.ProjectByID"

	query := `SELECT id, name, owner_id FROM projects WHERE id = $1`

	var project models.Project
	if err := r.storage.GetContext(ctx, &project, query, projectID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Project{}, fmt.Errorf("%s: %w", op, apperrors.ErrProjectNotFound)
		}
		return models.Project{}, fmt.Errorf("%s: %w", op, err)
	}

	return project, nil
}

func (r *ProjectRepo) ProjectsForUser(ctx context.Context, userID string) ([]models.Project, error) {
	const op = "repo.project.ProjectsForUser"

	query := `
		SELECT p.id, p.name, p.owner_id
		FROM projects p
		JOIN project_members pm ON pm.project_id = p.id
		WHERE pm.user_id = $1
		ORDER BY p.name, p.id
	`

	projects := make([]models.Project, 0)
	if err := r.storage.SelectContext(ctx, &projects, query, userID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return projects, nil
}

// DeleteProjectCascade removes tasks, then memberships, then the project,
// all in one transaction.
func (r *ProjectRepo) DeleteProjectCascade(ctx context.Context, projectID string) error {
	const op = "repo.project.DeleteProjectCascade"

	err := postgresql.WithTx(ctx, r.storage, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM tasks WHERE project_id = $1`, projectID); err != nil {
			return fmt.Errorf("delete tasks: %w", err)
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM project_members WHERE project_id = $1`, projectID); err != nil {
			return fmt.Errorf("delete memberships: %w", err)
		}

		res, err := tx.ExecContext(ctx, `DELETE FROM projects WHERE id = $1`, projectID)
		if err != nil {
			return fmt.Errorf("delete project: %w", err)
		}

		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			return apperrors.ErrProjectNotFound
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
