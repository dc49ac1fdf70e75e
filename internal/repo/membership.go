package repo

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/Leyinc1/manuelbest/internal/apperrors"
	"github.com/Leyinc1/manuelbest/internal/storage/postgresql"
)

type MembershipRepo struct {
	storage *sqlx.DB
}

func NewMembershipRepo(storage *sqlx.DB) *MembershipRepo {
	return &MembershipRepo{storage: storage}
}

func (r *MembershipRepo) IsMember(ctx context.Context, projectID, userID string) (bool, error) {
	const op = "repo.membership.IsMember"

	query := `SELECT EXISTS (SELECT 1 FROM project_members WHERE project_id = $1 AND user_id = $2)`

	var exists bool
	if err := r.storage.GetContext(ctx, &exists, query, projectID, userID); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	return exists, nil
}

// AddMember relies on the composite primary key to reject duplicates, so two
// concurrent invitations of the same user cannot both succeed.
func (r *MembershipRepo) AddMember(ctx context.Context, projectID, userID string) error {
	const op = "repo.membership.AddMember"

	query := `INSERT INTO project_members (project_id, user_id) VALUES ($1, $2)`

	if _, err := r.storage.ExecContext(ctx, query, projectID, userID); err != nil {
		switch {
		case postgresql.IsUniqueViolation(err):
			return fmt.Errorf("%s: %w", op, apperrors.ErrAlreadyMember)
		case postgresql.IsForeignKeyViolation(err):
			return fmt.Errorf("%s: %w", op, apperrors.ErrProjectNotFound)
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
