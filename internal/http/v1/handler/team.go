package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Leyinc1/manuelbest/internal/domain/models"
	"github.com/Leyinc1/manuelbest/internal/http/v1/response"
)

type (
	TeamListResponse struct {
		Teams []models.Team `json:"teams"`
	}

	TeamMembersResponse struct {
		Team    string          `json:"team"`
		Members []models.Member `json:"members"`
	}
)

type Teams interface {
	SubmitApplication(ctx context.Context, app models.TeamApplication) (models.Team, error)
	ListTeams(ctx context.Context) ([]models.Team, error)
	SearchTeams(ctx context.Context, query string) ([]models.Team, error)
	GetTeamMembers(ctx context.Context, teamName string) ([]models.Member, error)
}

type TeamHandler struct {
	teams Teams
	log   *slog.Logger
}

func NewTeamHandler(teams Teams, log *slog.Logger) *TeamHandler {
	return &TeamHandler{
		teams: teams,
		log:   log,
	}
}

func (h *TeamHandler) CreateTeam(w http.ResponseWriter, r *http.Request) {
	const op = "handler.team.CreateTeam"

	log := h.log.With(slog.String("op", op))

	var req models.TeamApplication
	if err := decodeJSON(w, r, &req); err != nil {
		response.ServiceError(w, log, err)
		return
	}

	team, err := h.teams.SubmitApplication(r.Context(), req)
	if err != nil {
		response.ServiceError(w, log, err)
		return
	}

	response.JSON(w, log, http.StatusCreated, team)
	log.Info("team registered", slog.String("team", team.Name), slog.Int("members", len(team.Members)))
}

func (h *TeamHandler) ListTeams(w http.ResponseWriter, r *http.Request) {
	const op = "handler.team.ListTeams"

	log := h.log.With(slog.String("op", op))

	teams, err := h.teams.ListTeams(r.Context())
	if err != nil {
		response.ServiceError(w, log, err)
		return
	}

	response.JSON(w, log, http.StatusOK, TeamListResponse{Teams: teams})
}

func (h *TeamHandler) SearchTeams(w http.ResponseWriter, r *http.Request) {
	const op = "handler.team.SearchTeams"

	log := h.log.With(slog.String("op", op))

	teams, err := h.teams.SearchTeams(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		response.ServiceError(w, log, err)
		return
	}

	response.JSON(w, log, http.StatusOK, TeamListResponse{Teams: teams})
}

func (h *TeamHandler) GetMembers(w http.ResponseWriter, r *http.Request) {
	const op = "handler.team.GetMembers"

	log := h.log.With(slog.String("op", op))

	teamName := chi.URLParam(r, "teamName")

	members, err := h.teams.GetTeamMembers(r.Context(), teamName)
	if err != nil {
		response.ServiceError(w, log, err)
		return
	}

	response.JSON(w, log, http.StatusOK, TeamMembersResponse{Team: teamName, Members: members})
}
