package router

import (
	"log/slog"

	"github.com/go-chi/chi/v5"

	"github.com/Leyinc1/manuelbest/internal/http/v1/handler"
)

type TaskRouter struct {
	handler *handler.TaskHandler
	authMW  Middleware
}

func NewTaskRouter(tasks handler.Tasks, authMW Middleware, log *slog.Logger) *TaskRouter {
	return &TaskRouter{
		handler: handler.NewTaskHandler(tasks, log),
		authMW:  authMW,
	}
}

func (tr *TaskRouter) SetupRoutes(r chi.Router) {
	r.Route("/tasks", func(r chi.Router) {
		r.Use(tr.authMW)

		r.Get("/", tr.handler.List)
		r.Post("/", tr.handler.Create)
		r.Get("/statuses", tr.handler.Statuses)
		r.Patch("/{taskID}", tr.handler.Update)
		r.Put("/{taskID}", tr.handler.Update)
		r.Delete("/{taskID}", tr.handler.Delete)
	})
}
