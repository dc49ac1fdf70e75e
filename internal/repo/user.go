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

type UserRepo struct {
	storage *sqlx.DB
}

func NewUserRepo(storage *sqlx.DB) *UserRepo {
	return &UserRepo{storage: storage}
}

func (r *UserRepo) CreateUser(ctx context.Context, user models.User) error {
	const op = "repo.user.CreateUser"

	query := `INSERT INTO users (id, email, password_hash) VALUES ($1, $2, $3)`

	_, err := r.storage.ExecContext(ctx, query, user.ID, user.Email, user.PasswordHash)
	if err != nil {
		if postgresql.IsUniqueViolation(err) {
			return fmt.Errorf("%s: %w", op, apperrors.ErrUserExists)
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// UserByEmail matches case-insensitively.
func (r *UserRepo) UserByEmail(ctx context.Context, email string) (models.User, error) {
	const op = "repo.user.UserByEmail"

	query := `SELECT id, email, password_hash FROM users WHERE lower(email) = lower($1)`

	var user models.User
	if err := r.storage.GetContext(ctx, &user, query, email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, fmt.Errorf("%s: %w", op, apperrors.ErrUserNotFound)
		}
		return models.User{}, fmt.Errorf("%s: %w", op, err)
	}

	return user, nil
}
