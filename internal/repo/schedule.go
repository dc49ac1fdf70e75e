package repo

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/Leyinc1/manuelbest/internal/domain/models"
	"github.com/Leyinc1/manuelbest/internal/storage/postgresql"
)

type ScheduleRepo struct {
	storage *sqlx.DB
}

func NewScheduleRepo(storage *sqlx.DB) *ScheduleRepo {
	return &ScheduleRepo{storage: storage}
}

func (r *ScheduleRepo) ItemsByUser(ctx context.Context, userID string) ([]models.ScheduleItem, error) {
	const op = "repo.schedule.ItemsByUser"

	query := `
		SELECT id, course_name, day, start_hour, duration, user_id
		FROM schedule_items
		WHERE user_id = $1
		ORDER BY day, start_hour, id
	`

	items := make([]models.ScheduleItem, 0)
	if err := r.storage.SelectContext(ctx, &items, query, userID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return items, nil
}

// ReplaceItems swaps the user's whole schedule in one transaction, so
// readers see either the old set or the new one.
func (r *ScheduleRepo) ReplaceItems(ctx context.Context, userID string, items []models.ScheduleItem) error {
	const op = "repo.schedule.ReplaceItems"

	err := postgresql.WithTx(ctx, r.storage, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM schedule_items WHERE user_id = $1`, userID); err != nil {
			return fmt.Errorf("delete items: %w", err)
		}

		for _, item := range items {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO schedule_items (course_name, day, start_hour, duration, user_id) VALUES ($1, $2, $3, $4, $5)`,
				item.CourseName, item.Day, item.StartHour, item.Duration, userID,
			); err != nil {
				return fmt.Errorf("insert item %q: %w", item.CourseName, err)
			}
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
