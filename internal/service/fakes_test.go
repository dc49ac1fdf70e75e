package service

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/Leyinc1/manuelbest/internal/apperrors"
	"github.com/Leyinc1/manuelbest/internal/domain/models"
	"github.com/Leyinc1/manuelbest/internal/lib/logger"
)

var discard = logger.Discard()

type fakeUsers struct {
	mu      sync.Mutex
	byEmail map[string]models.User
	err     error
}

func newFakeUsers(users ...models.User) *fakeUsers {
	f := &fakeUsers{byEmail: map[string]models.User{}}
	for _, u := range users {
		f.byEmail[strings.ToLower(u.Email)] = u
	}
	return f
}

func (f *fakeUsers) CreateUser(_ context.Context, u models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	if _, ok := f.byEmail[strings.ToLower(u.Email)]; ok {
		return apperrors.ErrUserExists
	}
	f.byEmail[strings.ToLower(u.Email)] = u
	return nil
}

func (f *fakeUsers) UserByEmail(_ context.Context, email string) (models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return models.User{}, f.err
	}
	u, ok := f.byEmail[strings.ToLower(email)]
	if !ok {
		return models.User{}, apperrors.ErrUserNotFound
	}
	return u, nil
}

type fakeMembers struct {
	mu      sync.Mutex
	members map[[2]string]bool
	err     error
}

func newFakeMembers(pairs ...[2]string) *fakeMembers {
	f := &fakeMembers{members: map[[2]string]bool{}}
	for _, p := range pairs {
		f.members[p] = true
	}
	return f
}

func (f *fakeMembers) IsMember(_ context.Context, projectID, userID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return false, f.err
	}
	return f.members[[2]string{projectID, userID}], nil
}

func (f *fakeMembers) AddMember(_ context.Context, projectID, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := [2]string{projectID, userID}
	if f.members[key] {
		return apperrors.ErrAlreadyMember
	}
	f.members[key] = true
	return nil
}

type fakeProjects struct {
	projects map[string]models.Project
	members  *fakeMembers
	deleted  []string
	err      error
}

func (f *fakeProjects) CreateProjectWithOwner(_ context.Context, p models.Project) error {
	if f.err != nil {
		return f.err
	}
	f.projects[p.ID] = p
	f.members.members[[2]string{p.ID, p.OwnerID}] = true
	return nil
}

func (f *fakeProjects) ProjectByID(_ context.Context, id string) (models.Project, error) {
	p, ok := f.projects[id]
	if !ok {
		return models.Project{}, apperrors.ErrProjectNotFound
	}
	return p, nil
}

func (f *fakeProjects) ProjectsForUser(_ context.Context, userID string) ([]models.Project, error) {
	var out []models.Project
	for _, p := range f.projects {
		if f.members.members[[2]string{p.ID, userID}] {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeProjects) DeleteProjectCascade(_ context.Context, id string) error {
	f.deleted = append(f.deleted, id)
	delete(f.projects, id)
	return nil
}

type fakeTasks struct {
	tasks   map[int64]models.Task
	nextID  int64
	updates []models.TaskPatch
	deleted []int64
}

func newFakeTasks(tasks ...models.Task) *fakeTasks {
	f := &fakeTasks{tasks: map[int64]models.Task{}, nextID: 100}
	for _, t := range tasks {
		f.tasks[t.ID] = t
	}
	return f
}

func (f *fakeTasks) TasksByProject(_ context.Context, projectID string) ([]models.Task, error) {
	var out []models.Task
	for _, t := range f.tasks {
		if t.ProjectID == projectID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeTasks) TaskByID(_ context.Context, id int64) (models.Task, error) {
	t, ok := f.tasks[id]
	if !ok {
		return models.Task{}, apperrors.ErrTaskNotFound
	}
	return t, nil
}

func (f *fakeTasks) CreateTask(_ context.Context, in models.NewTask) (models.Task, error) {
	f.nextID++
	t := models.Task{
		ID: f.nextID, Content: in.Content, Status: in.Status, ProjectID: in.ProjectID,
		AssignedTo: in.AssignedTo, Description: in.Description, Tags: in.Tags,
	}
	f.tasks[t.ID] = t
	return t, nil
}

func (f *fakeTasks) UpdateTask(_ context.Context, id int64, p models.TaskPatch) (models.Task, error) {
	f.updates = append(f.updates, p)
	t, ok := f.tasks[id]
	if !ok {
		return models.Task{}, apperrors.ErrTaskNotFound
	}
	if p.Content.Set {
		t.Content = p.Content.Value
	}
	if p.Status.Set {
		t.Status = p.Status.Value
	}
	if p.AssignedTo.Set {
		t.AssignedTo = p.AssignedTo.Ptr()
	}
	if p.Description.Set {
		t.Description = p.Description.Ptr()
	}
	if p.Tags.Set {
		t.Tags = nil
		if len(p.Tags.Value) > 0 {
			t.Tags = p.Tags.Value
		}
	}
	f.tasks[id] = t
	return t, nil
}

func (f *fakeTasks) DeleteTask(_ context.Context, id int64) error {
	if _, ok := f.tasks[id]; !ok {
		return apperrors.ErrTaskNotFound
	}
	f.deleted = append(f.deleted, id)
	delete(f.tasks, id)
	return nil
}

type fakeSchedule struct {
	items    map[string][]models.ScheduleItem
	replaced int
	err      error
}

func (f *fakeSchedule) ItemsByUser(_ context.Context, userID string) ([]models.ScheduleItem, error) {
	return f.items[userID], nil
}

func (f *fakeSchedule) ReplaceItems(_ context.Context, userID string, items []models.ScheduleItem) error {
	if f.err != nil {
		return f.err
	}
	f.replaced++
	f.items[userID] = items
	return nil
}

type fakeTeams struct {
	created     []models.Team
	members     map[string][]models.Member
	searchCalls []int
	listCalls   int

	// afterSnapshot runs once inside Teams, after the result was read.
	afterSnapshot func()
}

func (f *fakeTeams) CreateTeamWithMembers(_ context.Context, t models.Team) (models.Team, error) {
	t.ID = int64(len(f.created) + 1)
	for i := range t.Members {
		t.Members[i].IsLeader = i == 0
		t.Members[i].TeamID = t.ID
	}
	f.created = append(f.created, t)
	return t, nil
}

func (f *fakeTeams) Teams(_ context.Context) ([]models.Team, error) {
	f.listCalls++
	snapshot := append([]models.Team(nil), f.created...)
	if hook := f.afterSnapshot; hook != nil {
		f.afterSnapshot = nil
		hook()
	}
	return snapshot, nil
}

func (f *fakeTeams) SearchTeams(_ context.Context, _ string, limit int) ([]models.Team, error) {
	f.searchCalls = append(f.searchCalls, limit)
	return []models.Team{}, nil
}

func (f *fakeTeams) MembersByTeamName(_ context.Context, name string) ([]models.Member, error) {
	return f.members[name], nil
}

type fakeCache struct {
	gen         int64
	entries     map[string][]models.Team
	invalidated int
}

func cacheEntry(gen int64, key string) string {
	return fmt.Sprintf("%d:%s", gen, key)
}

func (f *fakeCache) Generation(context.Context) (int64, error) {
	return f.gen, nil
}

func (f *fakeCache) Teams(_ context.Context, gen int64, key string) ([]models.Team, bool, error) {
	t, ok := f.entries[cacheEntry(gen, key)]
	return t, ok, nil
}

func (f *fakeCache) SetTeams(_ context.Context, gen int64, key string, teams []models.Team) error {
	f.entries[cacheEntry(gen, key)] = teams
	return nil
}

func (f *fakeCache) Invalidate(context.Context) error {
	f.invalidated++
	f.gen++
	return nil
}

type fakeAttendance struct {
	salon string
	at    time.Time
	saved []models.AttendanceRecord
}

func (f *fakeAttendance) SaveRecords(_ context.Context, salon string, recs []models.AttendanceRecord, at time.Time) (int, error) {
	f.salon, f.at, f.saved = salon, at, recs
	return len(recs), nil
}

type fakeStore struct {
	files map[string]string
}

func (f *fakeStore) List(_ context.Context, owner string) ([]string, error) {
	var out []string
	for k := range f.files {
		if o, n, _ := strings.Cut(k, "/"); o == owner {
			out = append(out, n)
		}
	}
	return out, nil
}

func (f *fakeStore) Save(_ context.Context, owner, name string, body io.Reader, _ int64) error {
	b, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	f.files[owner+"/"+name] = string(b)
	return nil
}

func (f *fakeStore) Open(_ context.Context, owner, name string) (io.ReadCloser, error) {
	b, ok := f.files[owner+"/"+name]
	if !ok {
		return nil, apperrors.ErrFileNotFound
	}
	return io.NopCloser(strings.NewReader(b)), nil
}
