package v1

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/suite"

	"github.com/Leyinc1/manuelbest/internal/http/v1/response"
	"github.com/Leyinc1/manuelbest/internal/lib/logger"
)

type RouterSuite struct {
	suite.Suite

	identity  *fakeIdentity
	projects  *fakeProjects
	tasks     *fakeTasks
	schedules *fakeSchedules
	teams     *fakeTeams
	files     *fakeFiles
	deps      *RouterDependencies
	handler   http.Handler
}

func TestRouterSuite(t *testing.T) {
	suite.Run(t, new(RouterSuite))
}

func (s *RouterSuite) SetupTest() {
	s.identity = &fakeIdentity{}
	s.projects = &fakeProjects{}
	s.tasks = &fakeTasks{}
	s.schedules = &fakeSchedules{}
	s.teams = &fakeTeams{}
	s.files = &fakeFiles{stored: map[string][]byte{}}

	s.deps = &RouterDependencies{
		IdentityService:   s.identity,
		TokenVerifier:     s.identity,
		ProjectService:    s.projects,
		MembershipService: fakeMemberships{},
		TaskService:       s.tasks,
		ScheduleService:   s.schedules,
		TeamService:       s.teams,
		AttendanceService: fakeAttendance{},
		FileService:       s.files,
		MaxUploadBytes:    1 << 10,
	}
	s.build()
}

func (s *RouterSuite) build() {
	r := chi.NewRouter()
	SetupRoutes(r, s.deps, logger.Discard())
	s.handler = r
}

func (s *RouterSuite) do(method, path, body string, authed bool) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if authed {
		req.Header.Set("Authorization", "Bearer "+goodToken)
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func (s *RouterSuite) decode(rec *httptest.ResponseRecorder, v any) {
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), v), rec.Body.String())
}

func (s *RouterSuite) errorCode(rec *httptest.ResponseRecorder) string {
	var body response.ErrorResponse
	s.decode(rec, &body)
	return body.Code
}

func (s *RouterSuite) TestHealth() {
	rec := s.do(http.MethodGet, "/api/v1/health", "", false)
	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), "API is running.")

	s.deps.DB = pingerFunc(func(context.Context) error { return errDown })
	s.build()

	rec = s.do(http.MethodGet, "/api/v1/health", "", false)
	s.Equal(http.StatusServiceUnavailable, rec.Code)
}

func (s *RouterSuite) TestUnknownRoute() {
	rec := s.do(http.MethodGet, "/api/v2/projects", "", true)
	s.Equal(http.StatusNotFound, rec.Code)
	s.Equal("NOT_FOUND", s.errorCode(rec))
}

func (s *RouterSuite) TestProtectedRoutesRequireToken() {
	paths := []struct{ method, path string }{
		{http.MethodGet, "/api/v1/auth/me"},
		{http.MethodGet, "/api/v1/projects"},
		{http.MethodPost, "/api/v1/projects"},
		{http.MethodGet, "/api/v1/tasks?projectId=p-1"},
		{http.MethodPatch, "/api/v1/tasks/1"},
		{http.MethodGet, "/api/v1/schedule"},
		{http.MethodGet, "/api/v1/files"},
	}

	for _, p := range paths {
		rec := s.do(p.method, p.path, "", false)
		s.Equal(http.StatusUnauthorized, rec.Code, p.path)
		s.Equal("UNAUTHENTICATED", s.errorCode(rec), p.path)
	}
}

func (s *RouterSuite) TestRegisterAndLogin() {
	rec := s.do(http.MethodPost, "/api/v1/auth/register", `{"email":"ana@example.com","password":"secret1"}`, false)
	s.Equal(http.StatusCreated, rec.Code)
	s.JSONEq(`{"id":"new-user-id"}`, rec.Body.String())

	rec = s.do(http.MethodPost, "/api/v1/auth/register", `{"email":"ana@example.com","password":"123"}`, false)
	s.Equal(http.StatusBadRequest, rec.Code)

	rec = s.do(http.MethodPost, "/api/v1/auth/login", `{"email":"ana@example.com","password":"wrong"}`, false)
	s.Equal(http.StatusUnauthorized, rec.Code)

	rec = s.do(http.MethodPost, "/api/v1/auth/login", `{"email":"ana@example.com","password":"secret1"}`, false)
	s.Require().Equal(http.StatusOK, rec.Code)
	s.JSONEq(`{"token":"good","user":{"id":"`+callerID+`","email":"ana@example.com"}}`, rec.Body.String())

	rec = s.do(http.MethodGet, "/api/v1/auth/me", "", true)
	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), callerID)
}

func (s *RouterSuite) TestMalformedBody() {
	rec := s.do(http.MethodPost, "/api/v1/auth/login", `{"email":`, false)
	s.Equal(http.StatusBadRequest, rec.Code)
	s.Equal("VALIDATION", s.errorCode(rec))

	rec = s.do(http.MethodPost, "/api/v1/projects", "", true)
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *RouterSuite) TestProjects() {
	rec := s.do(http.MethodPost, "/api/v1/projects", `{"name":"Thesis"}`, true)
	s.Require().Equal(http.StatusCreated, rec.Code)
	s.Equal("/api/v1/projects/p-1", rec.Header().Get("Location"))
	s.JSONEq(`{"id":"p-1","name":"Thesis","ownerId":"`+callerID+`"}`, rec.Body.String())

	rec = s.do(http.MethodGet, "/api/v1/projects", "", true)
	s.Equal(http.StatusOK, rec.Code)

	rec = s.do(http.MethodDelete, "/api/v1/projects/p-1", "", true)
	s.Equal(http.StatusNoContent, rec.Code)
	s.Equal([]string{"p-1"}, s.projects.deleted)

	rec = s.do(http.MethodDelete, "/api/v1/projects/someone-elses", "", true)
	s.Equal(http.StatusForbidden, rec.Code)

	rec = s.do(http.MethodPost, "/api/v1/projects/p-1/members", `{"email":"new@example.com"}`, true)
	s.Equal(http.StatusOK, rec.Code)

	rec = s.do(http.MethodPost, "/api/v1/projects/p-1/members", `{"email":"taken@example.com"}`, true)
	s.Equal(http.StatusConflict, rec.Code)
	s.Equal("CONFLICT", s.errorCode(rec))
}

func (s *RouterSuite) TestTaskListNeedsProject() {
	rec := s.do(http.MethodGet, "/api/v1/tasks", "", true)
	s.Equal(http.StatusBadRequest, rec.Code)

	rec = s.do(http.MethodGet, "/api/v1/tasks?projectId=foreign", "", true)
	s.Equal(http.StatusForbidden, rec.Code)

	rec = s.do(http.MethodGet, "/api/v1/tasks?projectId=p-1", "", true)
	s.Equal(http.StatusOK, rec.Code)
}

func (s *RouterSuite) TestTaskPatchKeepsPresence() {
	rec := s.do(http.MethodPatch, "/api/v1/tasks/12", `{"status":"done","description":null}`, true)
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())

	s.Equal(int64(12), s.tasks.lastID)
	s.True(s.tasks.lastPatch.Status.Set)
	s.Equal("done", s.tasks.lastPatch.Status.Value)
	s.True(s.tasks.lastPatch.Description.Set)
	s.True(s.tasks.lastPatch.Description.Null)
	s.False(s.tasks.lastPatch.Content.Set)

	rec = s.do(http.MethodPut, "/api/v1/tasks/12", `{}`, true)
	s.Equal(http.StatusOK, rec.Code)
	s.True(s.tasks.lastPatch.IsEmpty())
}

func (s *RouterSuite) TestTaskIDs() {
	rec := s.do(http.MethodPatch, "/api/v1/tasks/abc", `{}`, true)
	s.Equal(http.StatusNotFound, rec.Code)

	rec = s.do(http.MethodPatch, "/api/v1/tasks/404", `{"content":"x"}`, true)
	s.Equal(http.StatusNotFound, rec.Code)

	rec = s.do(http.MethodDelete, "/api/v1/tasks/3", "", true)
	s.Equal(http.StatusNoContent, rec.Code)
	s.Equal(int64(3), s.tasks.lastID)

	rec = s.do(http.MethodPost, "/api/v1/tasks", `{"projectId":"p-1","content":"Draft","status":"todo"}`, true)
	s.Equal(http.StatusCreated, rec.Code)
}

func (s *RouterSuite) TestSchedule() {
	rec := s.do(http.MethodGet, "/api/v1/schedule", "", true)
	s.Require().Equal(http.StatusOK, rec.Code)
	s.JSONEq(`{"schedule":[]}`, rec.Body.String())

	body := `[{"title":"Calculus","start":"2024-05-06T09:00:00","end":"2024-05-06T11:00:00"}]`
	rec = s.do(http.MethodPost, "/api/v1/schedule", body, true)
	s.Require().Equal(http.StatusOK, rec.Code)
	s.Require().Len(s.schedules.saved, 1)
	s.Equal("Calculus", s.schedules.saved[0].Title)

	var resp struct {
		Saved int `json:"saved"`
	}
	s.decode(rec, &resp)
	s.Equal(1, resp.Saved)
}

func (s *RouterSuite) TestTeams() {
	body := `{"teamName":"Alpha","members":[
		{"studentId":"s1","fullName":"Ana","email":"ana@example.com"},
		{"studentId":"s2","fullName":"Ben","email":"ben@example.com"}]}`
	rec := s.do(http.MethodPost, "/api/v1/teams", body, false)
	s.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())

	rec = s.do(http.MethodPost, "/api/v1/teams", `{"teamName":"Solo","members":[]}`, false)
	s.Equal(http.StatusBadRequest, rec.Code)

	rec = s.do(http.MethodGet, "/api/v1/teams/search?q=alp", "", false)
	s.Equal(http.StatusOK, rec.Code)
	s.Equal("alp", s.teams.query)

	rec = s.do(http.MethodGet, "/api/v1/teams/Alpha/members", "", false)
	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), `"isLeader":true`)

	rec = s.do(http.MethodGet, "/api/v1/teams/Nobody/members", "", false)
	s.Equal(http.StatusNotFound, rec.Code)
}

func (s *RouterSuite) TestAttendance() {
	rec := s.do(http.MethodPost, "/api/v1/attendance", `{"type":"salon","key":"A-101","records":[{"team":"Alpha","student_id":"s1","present":true}]}`, false)
	s.Equal(http.StatusOK, rec.Code)

	rec = s.do(http.MethodPost, "/api/v1/attendance", `{"type":"salon","key":"A-101","records":[]}`, false)
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *RouterSuite) upload(name string, content []byte) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", name)
	s.Require().NoError(err)
	_, err = part.Write(content)
	s.Require().NoError(err)
	s.Require().NoError(mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/files/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+goodToken)
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func (s *RouterSuite) TestFileRoundTrip() {
	rec := s.upload("notes.txt", []byte("hello"))
	s.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())
	s.JSONEq(`{"name":"notes.txt"}`, rec.Body.String())

	rec = s.do(http.MethodGet, "/api/v1/files/download/notes.txt", "", true)
	s.Require().Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Header().Get("Content-Type"), "text/plain")
	s.Equal(`attachment; filename=notes.txt`, rec.Header().Get("Content-Disposition"))
	body, err := io.ReadAll(rec.Body)
	s.Require().NoError(err)
	s.Equal("hello", string(body))

	rec = s.do(http.MethodGet, "/api/v1/files/download/missing.pdf", "", true)
	s.Equal(http.StatusNotFound, rec.Code)
}

func (s *RouterSuite) TestUploadTooLarge() {
	rec := s.upload("big.bin", bytes.Repeat([]byte("x"), 4<<10))
	s.Equal(http.StatusBadRequest, rec.Code)
	s.Empty(s.files.stored)
}
