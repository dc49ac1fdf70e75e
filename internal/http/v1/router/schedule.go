package router

import (
	"log/slog"

	"github.com/go-chi/chi/v5"

	"github.com/Leyinc1/manuelbest/internal/http/v1/handler"
)

type ScheduleRouter struct {
	handler *handler.ScheduleHandler
	authMW  Middleware
}

func NewScheduleRouter(schedules handler.Schedules, authMW Middleware, log *slog.Logger) *ScheduleRouter {
	return &ScheduleRouter{
		handler: handler.NewScheduleHandler(schedules, log),
		authMW:  authMW,
	}
}

func (sr *ScheduleRouter) SetupRoutes(r chi.Router) {
	r.Route("/schedule", func(r chi.Router) {
		r.Use(sr.authMW)

		r.Get("/", sr.handler.Get)
		r.Post("/", sr.handler.Save)
	})
}
