package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/hashicorp/go-multierror"

	"github.com/Leyinc1/manuelbest/internal/apperrors"
	"github.com/Leyinc1/manuelbest/internal/domain/models"
	"github.com/Leyinc1/manuelbest/internal/lib/logger/sl"
	"github.com/Leyinc1/manuelbest/internal/lib/validate"
)

const (
	minTeamMembers    = 2
	maxTeamMembers    = 3
	searchSampleLimit = 20
	searchResultLimit = 50

	cacheKeyAllTeams = "all"
)

type TeamService struct {
	log   *slog.Logger
	teams TeamProvider
	cache TeamCache
}

type TeamProvider interface {
	CreateTeamWithMembers(ctx context.Context, team models.Team) (models.Team, error)
	Teams(ctx context.Context) ([]models.Team, error)
	SearchTeams(ctx context.Context, query string, limit int) ([]models.Team, error)
	MembersByTeamName(ctx context.Context, teamName string) ([]models.Member, error)
}

// TeamCache holds read results keyed by query within a generation.
// Invalidate moves to a new generation. Failures are logged and otherwise
// ignored.
type TeamCache interface {
	Generation(ctx context.Context) (int64, error)
	Teams(ctx context.Context, gen int64, key string) ([]models.Team, bool, error)
	SetTeams(ctx context.Context, gen int64, key string, teams []models.Team) error
	Invalidate(ctx context.Context) error
}

// NewTeamService accepts a nil cache.
func NewTeamService(
	log *slog.Logger,
	teams TeamProvider,
	cache TeamCache) *TeamService {
	return &TeamService{
		log:   log,
		teams: teams,
		cache: cache,
	}
}

// SubmitApplication registers a team. The first member is the leader.
// Nothing is written unless the whole application is valid.
func (s *TeamService) SubmitApplication(ctx context.Context, app models.TeamApplication) (models.Team, error) {
	const op = "service.team.SubmitApplication"

	app.TeamName = strings.TrimSpace(app.TeamName)

	log := s.log.With(
		slog.String("op", op),
		slog.String("team_name", app.TeamName),
	)

	log.Info("submitting team application", slog.Int("member_count", len(app.Members)))

	if err := validateApplication(&app); err != nil {
		log.Warn("invalid team application", sl.Err(err))
		return models.Team{}, fmt.Errorf("%s: %w", op, err)
	}

	if app.Message != nil {
		if msg := strings.TrimSpace(*app.Message); msg == "" {
			app.Message = nil
		} else {
			app.Message = &msg
		}
	}

	team, err := s.teams.CreateTeamWithMembers(ctx, models.Team{
		Name:    app.TeamName,
		Message: app.Message,
		Members: app.Members,
	})
	if err != nil {
		log.Error("failed to register team", sl.Err(err))
		return models.Team{}, fmt.Errorf("%s: %w", op, err)
	}

	s.invalidateCache(ctx, log)

	log.Info("team registered", slog.Int64("team_id", team.ID))

	return team, nil
}

func (s *TeamService) ListTeams(ctx context.Context) ([]models.Team, error) {
	const op = "service.team.ListTeams"

	log := s.log.With(slog.String("op", op))

	teams, err := s.readThrough(ctx, log, cacheKeyAllTeams, s.teams.Teams)
	if err != nil {
		log.Error("failed to list teams", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return teams, nil
}

// SearchTeams returns up to 50 teams whose name contains query. A blank
// query returns an alphabetical sample of up to 20.
func (s *TeamService) SearchTeams(ctx context.Context, query string) ([]models.Team, error) {
	const op = "service.team.SearchTeams"

	query = strings.TrimSpace(query)

	log := s.log.With(
		slog.String("op", op),
		slog.String("query", query),
	)

	limit := searchResultLimit
	if query == "" {
		limit = searchSampleLimit
	}

	key := "search:" + strings.ToLower(query)
	teams, err := s.readThrough(ctx, log, key, func(ctx context.Context) ([]models.Team, error) {
		return s.teams.SearchTeams(ctx, query, limit)
	})
	if err != nil {
		log.Error("failed to search teams", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return teams, nil
}

// GetTeamMembers lists the leader first, then the rest by full name.
func (s *TeamService) GetTeamMembers(ctx context.Context, teamName string) ([]models.Member, error) {
	const op = "service.team.GetTeamMembers"

	log := s.log.With(
		slog.String("op", op),
		slog.String("team_name", teamName),
	)

	members, err := s.teams.MembersByTeamName(ctx, teamName)
	if err != nil {
		log.Error("failed to get team members", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if len(members) == 0 {
		log.Warn("team not found")
		return nil, fmt.Errorf("%s: %w", op, apperrors.ErrTeamNotFound)
	}

	return members, nil
}

// readThrough serves key from the cache or loads it. The generation is read
// before load, so a result loaded before a concurrent registration is stored
// under the generation that registration retires.
func (s *TeamService) readThrough(
	ctx context.Context,
	log *slog.Logger,
	key string,
	load func(ctx context.Context) ([]models.Team, error)) ([]models.Team, error) {
	if s.cache == nil {
		return load(ctx)
	}

	gen, err := s.cache.Generation(ctx)
	if err != nil {
		log.Warn("team cache unavailable", sl.Err(err))
		return load(ctx)
	}

	teams, ok, err := s.cache.Teams(ctx, gen, key)
	if err != nil {
		log.Warn("team cache read failed", sl.Err(err))
	} else if ok {
		return teams, nil
	}

	teams, err = load(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.cache.SetTeams(ctx, gen, key, teams); err != nil {
		log.Warn("team cache write failed", sl.Err(err))
	}

	return teams, nil
}

func (s *TeamService) invalidateCache(ctx context.Context, log *slog.Logger) {
	if s.cache == nil {
		return
	}

	if err := s.cache.Invalidate(ctx); err != nil {
		log.Warn("team cache invalidation failed", sl.Err(err))
	}
}

// validateApplication reports every problem at once.
func validateApplication(app *models.TeamApplication) error {
	var result *multierror.Error

	if app.TeamName == "" {
		result = multierror.Append(result, apperrors.ErrTeamNameRequired)
	}

	if n := len(app.Members); n < minTeamMembers || n > maxTeamMembers {
		result = multierror.Append(result, apperrors.ErrTeamMembersCount)
	}

	v := validate.Get()
	for i := range app.Members {
		m := &app.Members[i]
		m.StudentID = strings.TrimSpace(m.StudentID)
		m.FullName = strings.TrimSpace(m.FullName)
		m.Email = strings.TrimSpace(m.Email)

		if err := v.Struct(m); err != nil {
			var fieldErrs validator.ValidationErrors
			if !errors.As(err, &fieldErrs) {
				return err
			}
			for _, fe := range fieldErrs {
				result = multierror.Append(result,
					fmt.Errorf("member %d: %s failed %q", i+1, fe.Field(), fe.Tag()))
			}
		}
	}

	if err := result.ErrorOrNil(); err != nil {
		return fmt.Errorf("%w: %w", apperrors.ErrValidation, err)
	}

	return nil
}
