package router

import (
	"log/slog"

	"github.com/go-chi/chi/v5"

	"github.com/Leyinc1/manuelbest/internal/http/v1/handler"
)

type ProjectRouter struct {
	handler *handler.ProjectHandler
	authMW  Middleware
}

func NewProjectRouter(projects handler.Projects, memberships handler.Memberships, authMW Middleware, log *slog.Logger) *ProjectRouter {
	return &ProjectRouter{
		handler: handler.NewProjectHandler(projects, memberships, log),
		authMW:  authMW,
	}
}

func (pr *ProjectRouter) SetupRoutes(r chi.Router) {
	r.Route("/projects", func(r chi.Router) {
		r.Use(pr.authMW)

		r.Get("/", pr.handler.List)
		r.Post("/", pr.handler.Create)
		r.Delete("/{projectID}", pr.handler.Delete)
		r.Post("/{projectID}/members", pr.handler.AddMember)
	})
}
