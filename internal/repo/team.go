package repo

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/Leyinc1/manuelbest/internal/domain/models"
	"github.com/Leyinc1/manuelbest/internal/storage/postgresql"
)

const memberColumns = `m.id, m.team_id, m.student_id, m.full_name, m.email, m.is_leader`

type TeamRepo struct {
	storage *sqlx.DB
}

func NewTeamRepo(storage *sqlx.DB) *TeamRepo {
	return &TeamRepo{storage: storage}
}

// CreateTeamWithMembers inserts the team and every member in one
// transaction. The first member becomes the leader.
func (r *TeamRepo) CreateTeamWithMembers(ctx context.Context, team models.Team) (models.Team, error) {
	const op = "repo.team.CreateTeamWithMembers"

	err := postgresql.WithTx(ctx, r.storage, func(tx *sqlx.Tx) error {
		if err := tx.GetContext(ctx, &team.ID,
			`INSERT INTO teams (name, message) VALUES ($1, $2) RETURNING id`,
			team.Name, team.Message,
		); err != nil {
			return fmt.Errorf("insert team: %w", err)
		}

		memberQuery := `
			INSERT INTO members (team_id, student_id, full_name, email, is_leader)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id
		`

		for i := range team.Members {
			m := &team.Members[i]
			m.TeamID = team.ID
			m.IsLeader = i == 0

			if err := tx.GetContext(ctx, &m.ID, memberQuery,
				m.TeamID, m.StudentID, m.FullName, m.Email, m.IsLeader,
			); err != nil {
				return fmt.Errorf("insert member %s: %w", m.StudentID, err)
			}
		}

		return nil
	})
	if err != nil {
		return models.Team{}, fmt.Errorf("%s: %w", op, err)
	}

	return team, nil
}

// Teams returns every team with its members, newest first.
func (r *TeamRepo) Teams(ctx context.Context) ([]models.Team, error) {
	const op = "repo.team.Teams"

	teams := make([]models.Team, 0)
	if err := r.storage.SelectContext(ctx, &teams,
		`SELECT id, name, message FROM teams ORDER BY id DESC`,
	); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := r.attachMembers(ctx, teams); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return teams, nil
}

// SearchTeams matches query as a literal, case-insensitive substring of the
// team name. An empty query returns the first teams alphabetically.
func (r *TeamRepo) SearchTeams(ctx context.Context, query string, limit int) ([]models.Team, error) {
	const op = "repo.team.SearchTeams"

	teams := make([]models.Team, 0)

	var err error
	if query == "" {
		err = r.storage.SelectContext(ctx, &teams,
			`SELECT id, name, message FROM teams ORDER BY name, id LIMIT $1`, limit)
	} else {
		err = r.storage.SelectContext(ctx, &teams,
			`SELECT id, name, message FROM teams WHERE strpos(lower(name), lower($1)) > 0 ORDER BY name, id LIMIT $2`,
			query, limit)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return teams, nil
}

// MembersByTeamName lists members of every team with that name, leader first.
func (r *TeamRepo) MembersByTeamName(ctx context.Context, teamName string) ([]models.Member, error) {
	const op = "repo.team.MembersByTeamName"

	query := `
		SELECT ` + memberColumns + `
		FROM members m
		JOIN teams t ON t.id = m.team_id
		WHERE t.name = $1
		ORDER BY m.is_leader DESC, m.full_name, m.id
	`

	members := make([]models.Member, 0)
	if err := r.storage.SelectContext(ctx, &members, query, teamName); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return members, nil
}

func (r *TeamRepo) attachMembers(ctx context.Context, teams []models.Team) error {
	if len(teams) == 0 {
		return nil
	}

	ids := make([]int64, len(teams))
	byID := make(map[int64]int, len(teams))
	for i, t := range teams {
		ids[i] = t.ID
		byID[t.ID] = i
	}

	var members []models.Member
	if err := r.storage.SelectContext(ctx, &members,
		`SELECT `+memberColumns+` FROM members m WHERE m.team_id = ANY($1) ORDER BY m.team_id, m.is_leader DESC, m.full_name, m.id`,
		pq.Array(ids),
	); err != nil {
		return fmt.Errorf("select members: %w", err)
	}

	for _, m := range members {
		if i, ok := byID[m.TeamID]; ok {
			teams[i].Members = append(teams[i].Members, m)
		}
	}

	return nil
}
