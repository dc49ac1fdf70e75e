package router

import (
	"log/slog"

	"github.com/go-chi/chi/v5"

	"github.com/Leyinc1/manuelbest/internal/http/v1/handler"
)

type AttendanceRouter struct {
	handler *handler.AttendanceHandler
}

func NewAttendanceRouter(attendance handler.Attendance, log *slog.Logger) *AttendanceRouter {
	return &AttendanceRouter{
		handler: handler.NewAttendanceHandler(attendance, log),
	}
}

func (ar *AttendanceRouter) SetupRoutes(r chi.Router) {
	r.Post("/attendance", ar.handler.Save)
}
