package repo

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/Leyinc1/manuelbest/internal/domain/models"
	"github.com/Leyinc1/manuelbest/internal/storage/postgresql"
)

type AttendanceRepo struct {
	storage *sqlx.DB
}

func NewAttendanceRepo(storage *sqlx.DB) *AttendanceRepo {
	return &AttendanceRepo{storage: storage}
}

func (r *AttendanceRepo) SaveRecords(ctx context.Context, salon string, records []models.AttendanceRecord, at time.Time) (int, error) {
	const op = "repo.attendance.SaveRecords"

	query := `
		INSERT INTO attendance (team_name, student_id, present, salon, recorded_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	err := postgresql.WithTx(ctx, r.storage, func(tx *sqlx.Tx) error {
		for _, rec := range records {
			present := 0
			if rec.Present {
				present = 1
			}

			if _, err := tx.ExecContext(ctx, query, rec.TeamName, rec.StudentID, present, salon, at); err != nil {
				return fmt.Errorf("insert record for %s: %w", rec.StudentID, err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return len(records), nil
}
