package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/Leyinc1/manuelbest/internal/domain/models"
	"github.com/Leyinc1/manuelbest/internal/http/v1/response"
)

type Attendance interface {
	SaveAttendance(ctx context.Context, sheet models.AttendanceSheet) (int, error)
}

type AttendanceHandler struct {
	attendance Attendance
	log        *slog.Logger
}

func NewAttendanceHandler(attendance Attendance, log *slog.Logger) *AttendanceHandler {
	return &AttendanceHandler{
		attendance: attendance,
		log:        log,
	}
}

func (h *AttendanceHandler) Save(w http.ResponseWriter, r *http.Request) {
	const op = "handler.attendance.Save"

	log := h.log.With(slog.String("op", op))

	var sheet models.AttendanceSheet
	if err := decodeJSON(w, r, &sheet); err != nil {
		response.ServiceError(w, log, err)
		return
	}

	saved, err := h.attendance.SaveAttendance(r.Context(), sheet)
	if err != nil {
		response.ServiceError(w, log, err)
		return
	}

	response.JSON(w, log, http.StatusOK, SavedResponse{Message: "attendance saved", Saved: saved})
}
