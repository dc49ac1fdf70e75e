package v1

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"

	"github.com/Leyinc1/manuelbest/internal/apperrors"
	"github.com/Leyinc1/manuelbest/internal/domain/models"
)

const (
	goodToken = "good"
	callerID  = "7d0a3e1c-0b7e-4c53-9d51-4f1f6f5b2a10"
)

type fakeIdentity struct {
	registered []string
}

func (f *fakeIdentity) Register(_ context.Context, email, password string) (string, error) {
	if len(password) < 6 {
		return "", apperrors.ErrPasswordTooShort
	}
	f.registered = append(f.registered, email)
	return "new-user-id", nil
}

func (f *fakeIdentity) Login(_ context.Context, email, password string) (models.Session, error) {
	if password != "secret1" {
		return models.Session{}, apperrors.ErrInvalidCredentials
	}
	return models.Session{Token: goodToken, User: models.Identity{UserID: callerID, Email: email}}, nil
}

func (f *fakeIdentity) VerifyToken(_ context.Context, token string) (models.Identity, error) {
	if token != goodToken {
		return models.Identity{}, apperrors.ErrInvalidToken
	}
	return models.Identity{UserID: callerID, Email: "ana@example.com"}, nil
}

type fakeProjects struct {
	deleted []string
}

func (f *fakeProjects) CreateProject(_ context.Context, ownerID, name string) (models.Project, error) {
	if strings.TrimSpace(name) == "" {
		return models.Project{}, apperrors.ErrProjectNameInvalid
	}
	return models.Project{ID: "p-1", Name: name, OwnerID: ownerID}, nil
}

func (f *fakeProjects) ListProjects(_ context.Context, userID string) ([]models.Project, error) {
	return []models.Project{{ID: "p-1", Name: "Thesis", OwnerID: userID}}, nil
}

func (f *fakeProjects) DeleteProject(_ context.Context, _, projectID string) error {
	if projectID == "someone-elses" {
		return apperrors.ErrNotProjectOwner
	}
	f.deleted = append(f.deleted, projectID)
	return nil
}

type fakeMemberships struct{}

func (fakeMemberships) AddMember(_ context.Context, _, _, email string) error {
	if email == "taken@example.com" {
		return apperrors.ErrAlreadyMember
	}
	return nil
}

type fakeTasks struct {
	lastPatch models.TaskPatch
	lastID    int64
}

func (f *fakeTasks) ListTasks(_ context.Context, _, projectID string) ([]models.Task, error) {
	if projectID == "foreign" {
		return nil, apperrors.ErrNotProjectMember
	}
	return []models.Task{{ID: 1, Content: "Write intro", Status: "todo", ProjectID: projectID}}, nil
}

func (f *fakeTasks) CreateTask(_ context.Context, _ string, in models.NewTask) (models.Task, error) {
	return models.Task{ID: 9, Content: in.Content, Status: in.Status, ProjectID: in.ProjectID}, nil
}

func (f *fakeTasks) UpdateTask(_ context.Context, _ string, taskID int64, patch models.TaskPatch) (models.Task, error) {
	f.lastID = taskID
	f.lastPatch = patch
	if taskID == 404 {
		return models.Task{}, apperrors.ErrTaskNotFound
	}
	return models.Task{ID: taskID, Content: "Write intro", Status: patch.Status.Value}, nil
}

func (f *fakeTasks) DeleteTask(_ context.Context, _ string, taskID int64) error {
	f.lastID = taskID
	return nil
}

func (f *fakeTasks) Statuses() []string {
	return []string{"todo", "done"}
}

type fakeSchedules struct {
	saved []models.RawScheduleEvent
}

func (f *fakeSchedules) LoadSchedule(context.Context, string) ([]models.ScheduleEvent, error) {
	return nil, nil
}

func (f *fakeSchedules) SaveSchedule(_ context.Context, _ string, events []models.RawScheduleEvent) (int, error) {
	f.saved = events
	return len(events), nil
}

type fakeTeams struct {
	query string
}

func (f *fakeTeams) SubmitApplication(_ context.Context, app models.TeamApplication) (models.Team, error) {
	if len(app.Members) < 2 {
		return models.Team{}, apperrors.ErrTeamMembersCount
	}
	return models.Team{ID: 1, Name: app.TeamName, Members: app.Members}, nil
}

func (f *fakeTeams) ListTeams(context.Context) ([]models.Team, error) {
	return []models.Team{{ID: 1, Name: "Alpha"}}, nil
}

func (f *fakeTeams) SearchTeams(_ context.Context, q string) ([]models.Team, error) {
	f.query = q
	return []models.Team{}, nil
}

func (f *fakeTeams) GetTeamMembers(_ context.Context, teamName string) ([]models.Member, error) {
	if teamName != "Alpha" {
		return nil, apperrors.ErrTeamNotFound
	}
	return []models.Member{{StudentID: "s1", FullName: "Ana", Email: "ana@example.com", IsLeader: true}}, nil
}

type fakeAttendance struct{}

func (fakeAttendance) SaveAttendance(_ context.Context, sheet models.AttendanceSheet) (int, error) {
	if len(sheet.Records) == 0 {
		return 0, apperrors.ErrAttendanceRequired
	}
	return len(sheet.Records), nil
}

type fakeFiles struct {
	stored map[string][]byte
}

func (f *fakeFiles) ListFiles(context.Context, string) ([]models.FileInfo, error) {
	files := make([]models.FileInfo, 0, len(f.stored))
	for name := range f.stored {
		files = append(files, models.FileInfo{Name: name})
	}
	return files, nil
}

func (f *fakeFiles) Upload(_ context.Context, _, name string, body io.Reader, _ int64) (models.FileInfo, error) {
	data, err := io.ReadAll(body)
	if err != nil {
		return models.FileInfo{}, err
	}
	f.stored[name] = data
	return models.FileInfo{Name: name}, nil
}

func (f *fakeFiles) Download(_ context.Context, _, name string) (io.ReadCloser, string, error) {
	data, ok := f.stored[name]
	if !ok {
		return nil, "", apperrors.ErrFileNotFound
	}
	return io.NopCloser(bytes.NewReader(data)), name, nil
}

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) Ping(ctx context.Context) error { return f(ctx) }

var errDown = errors.New("connection refused")
