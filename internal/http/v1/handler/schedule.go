package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/Leyinc1/manuelbest/internal/domain/models"
	"github.com/Leyinc1/manuelbest/internal/http/v1/response"
)

type (
	ScheduleResponse struct {
		Schedule []models.ScheduleEvent `json:"schedule"`
	}

	SavedResponse struct {
		Message string `json:"message"`
		Saved   int    `json:"saved"`
	}
)

type Schedules interface {
	LoadSchedule(ctx context.Context, userID string) ([]models.ScheduleEvent, error)
	SaveSchedule(ctx context.Context, userID string, events []models.RawScheduleEvent) (int, error)
}

type ScheduleHandler struct {
	schedules Schedules
	log       *slog.Logger
}

func NewScheduleHandler(schedules Schedules, log *slog.Logger) *ScheduleHandler {
	return &ScheduleHandler{
		schedules: schedules,
		log:       log,
	}
}

func (h *ScheduleHandler) Get(w http.ResponseWriter, r *http.Request) {
	const op = "handler.schedule.Get"

	log := h.log.With(slog.String("op", op))

	ident, err := identity(r)
	if err != nil {
		response.ServiceError(w, log, err)
		return
	}

	events, err := h.schedules.LoadSchedule(r.Context(), ident.UserID)
	if err != nil {
		response.ServiceError(w, log, err)
		return
	}
	if events == nil {
		events = []models.ScheduleEvent{}
	}

	response.JSON(w, log, http.StatusOK, ScheduleResponse{Schedule: events})
}

// Save replaces the caller's whole schedule with the posted list.
func (h *ScheduleHandler) Save(w http.ResponseWriter, r *http.Request) {
	const op = "handler.schedule.Save"

	log := h.log.With(slog.String("op", op))

	ident, err := identity(r)
	if err != nil {
		response.ServiceError(w, log, err)
		return
	}

	var events []models.RawScheduleEvent
	if err := decodeJSON(w, r, &events); err != nil {
		response.ServiceError(w, log, err)
		return
	}

	saved, err := h.schedules.SaveSchedule(r.Context(), ident.UserID, events)
	if err != nil {
		response.ServiceError(w, log, err)
		return
	}

	response.JSON(w, log, http.StatusOK, SavedResponse{Message: "schedule saved", Saved: saved})
}
