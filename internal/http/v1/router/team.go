package router

import (
	"log/slog"

	"github.com/go-chi/chi/v5"

	"github.com/Leyinc1/manuelbest/internal/http/v1/handler"
)

type TeamRouter struct {
	handler *handler.TeamHandler
}

func NewTeamRouter(teams handler.Teams, log *slog.Logger) *TeamRouter {
	return &TeamRouter{
		handler: handler.NewTeamHandler(teams, log),
	}
}

// Team registration is public, like the attendance sheet.
func (tr *TeamRouter) SetupRoutes(r chi.Router) {
	r.Route("/teams", func(r chi.Router) {
		r.Post("/", tr.handler.CreateTeam)
		r.Get("/", tr.handler.ListTeams)
		r.Get("/search", tr.handler.SearchTeams)
		r.Get("/{teamName}/members", tr.handler.GetMembers)
	})
}
