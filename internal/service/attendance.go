package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Leyinc1/manuelbest/internal/apperrors"
	"github.com/Leyinc1/manuelbest/internal/domain/models"
	"github.com/Leyinc1/manuelbest/internal/lib/logger/sl"
)

type AttendanceService struct {
	log     *slog.Logger
	records AttendanceProvider
	now     func() time.Time
}

type AttendanceProvider interface {
	SaveRecords(ctx context.Context, salon string, records []models.AttendanceRecord, at time.Time) (int, error)
}

func NewAttendanceService(log *slog.Logger, records AttendanceProvider) *AttendanceService {
	return &AttendanceService{
		log:     log,
		records: records,
		now:     time.Now,
	}
}

// SaveAttendance stores one row per record, stamped with the current UTC
// time and the sheet key as the room.
func (s *AttendanceService) SaveAttendance(ctx context.Context, sheet models.AttendanceSheet) (int, error) {
	const op = "service.attendance.SaveAttendance"

	log := s.log.With(
		slog.String("op", op),
		slog.String("type", sheet.Type),
		slog.String("key", sheet.Key),
	)

	if len(sheet.Records) == 0 {
		log.Warn("empty attendance sheet")
		return 0, fmt.Errorf("%s: %w", op, apperrors.ErrAttendanceRequired)
	}

	for i, rec := range sheet.Records {
		if strings.TrimSpace(rec.StudentID) == "" {
			return 0, fmt.Errorf("%s: %w", op, apperrors.Validation(fmt.Sprintf("record %d: student_id is required", i+1)))
		}
	}

	n, err := s.records.SaveRecords(ctx, sheet.Key, sheet.Records, s.now().UTC())
	if err != nil {
		log.Error("failed to save attendance", sl.Err(err))
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("attendance saved", slog.Int("saved", n))

	return n, nil
}
