package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"testing"
)

func setup(t *testing.T) *TestServer {
	t.Helper()

	if os.Getenv(EnvEnable) == "" {
		t.Skipf("set %s=1 to run against a live database", EnvEnable)
	}
	t.Setenv("AUTH_JWT_SECRET", "integration-secret")

	ts, err := NewTestServer(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to create test server: %v", err)
	}
	t.Cleanup(ts.Close)

	if err := ts.LoadFixtures(); err != nil {
		t.Fatalf("Failed to load fixtures: %v", err)
	}

	return ts
}

func TestProjectLifecycle(t *testing.T) {
	ts := setup(t)

	owner := registerAndLogin(t, ts, "owner@example.com")
	guest := registerAndLogin(t, ts, "guest@example.com")

	var project struct {
		ID      string `json:"id"`
		OwnerID string `json:"ownerId"`
	}
	resp := doJSON(t, ts, http.MethodPost, "/api/v1/projects", owner, `{"name":"Thesis"}`)
	expectStatus(t, resp, http.StatusCreated)
	decode(t, resp, &project)

	resp = doJSON(t, ts, http.MethodGet, "/api/v1/tasks?projectId="+project.ID, guest, "")
	expectStatus(t, resp, http.StatusForbidden)
	resp.Body.Close()

	resp = doJSON(t, ts, http.MethodPost, "/api/v1/projects/"+project.ID+"/members", owner, `{"email":"GUEST@example.com"}`)
	expectStatus(t, resp, http.StatusOK)
	resp.Body.Close()

	resp = doJSON(t, ts, http.MethodPost, "/api/v1/projects/"+project.ID+"/members", owner, `{"email":"guest@example.com"}`)
	expectStatus(t, resp, http.StatusConflict)
	resp.Body.Close()

	resp = doJSON(t, ts, http.MethodPost, "/api/v1/tasks", guest,
		fmt.Sprintf(`{"projectId":%q,"content":"Write intro","status":"not-a-status"}`, project.ID))
	expectStatus(t, resp, http.StatusBadRequest)
	resp.Body.Close()

	var task struct {
		ID     int64  `json:"id"`
		Status string `json:"status"`
	}
	resp = doJSON(t, ts, http.MethodPost, "/api/v1/tasks", guest,
		fmt.Sprintf(`{"projectId":%q,"content":"Write intro","status":"todo","tags":["draft"]}`, project.ID))
	expectStatus(t, resp, http.StatusCreated)
	decode(t, resp, &task)

	resp = doJSON(t, ts, http.MethodPatch, fmt.Sprintf("/api/v1/tasks/%d", task.ID), owner, `{"status":"done"}`)
	expectStatus(t, resp, http.StatusOK)
	decode(t, resp, &task)
	if task.Status != "done" {
		t.Fatalf("expected status done, got %s", task.Status)
	}

	resp = doJSON(t, ts, http.MethodDelete, "/api/v1/projects/"+project.ID, guest, "")
	expectStatus(t, resp, http.StatusForbidden)
	resp.Body.Close()

	resp = doJSON(t, ts, http.MethodDelete, "/api/v1/projects/"+project.ID, owner, "")
	expectStatus(t, resp, http.StatusNoContent)
	resp.Body.Close()

	var remaining int
	if err := ts.DB.Get(&remaining, "SELECT COUNT(*) FROM tasks"); err != nil {
		t.Fatalf("count tasks: %v", err)
	}
	if remaining != 0 {
		t.Fatalf("expected tasks to be removed with the project, %d left", remaining)
	}

	resp = doJSON(t, ts, http.MethodPatch, fmt.Sprintf("/api/v1/tasks/%d", task.ID), owner, `{"status":"todo"}`)
	expectStatus(t, resp, http.StatusNotFound)
	resp.Body.Close()
}

func TestDuplicateRegistration(t *testing.T) {
	ts := setup(t)

	registerAndLogin(t, ts, "ana@example.com")

	resp := doJSON(t, ts, http.MethodPost, "/api/v1/auth/register", "", `{"email":"Ana@Example.com","password":"secret1"}`)
	expectStatus(t, resp, http.StatusConflict)
	resp.Body.Close()
}

func TestTeamRegistration(t *testing.T) {
	ts := setup(t)

	body := `{
    "teamName": "Alpha",
    "members": [
        {"studentId": "s1", "fullName": "Ana", "email": "ana@example.com"},
        {"studentId": "s2", "fullName": "Ben", "email": "ben@example.com"}
    ]
}`
	resp := doJSON(t, ts, http.MethodPost, "/api/v1/teams", "", body)
	expectStatus(t, resp, http.StatusCreated)
	resp.Body.Close()

	resp = doJSON(t, ts, http.MethodPost, "/api/v1/teams", "",
		`{"teamName":"Beta","members":[{"studentId":"s3","fullName":"Cy","email":"cy@example.com"}]}`)
	expectStatus(t, resp, http.StatusBadRequest)
	resp.Body.Close()

	var teams int
	if err := ts.DB.Get(&teams, "SELECT COUNT(*) FROM teams"); err != nil {
		t.Fatalf("count teams: %v", err)
	}
	if teams != 1 {
		t.Fatalf("expected 1 team, got %d", teams)
	}

	var data struct {
		Members []struct {
			StudentID string `json:"studentId"`
			IsLeader  bool   `json:"isLeader"`
		} `json:"members"`
	}
	resp = doJSON(t, ts, http.MethodGet, "/api/v1/teams/Alpha/members", "", "")
	expectStatus(t, resp, http.StatusOK)
	decode(t, resp, &data)

	if len(data.Members) != 2 {
		t.Fatalf("expected 2 members, got %d", len(data.Members))
	}
	if data.Members[0].StudentID != "s1" || !data.Members[0].IsLeader {
		t.Fatalf("expected s1 to lead, got %+v", data.Members[0])
	}
}

func TestScheduleReplace(t *testing.T) {
	ts := setup(t)

	token := registerAndLogin(t, ts, "ana@example.com")

	first := `[
    {"title": "Calculus", "start": "2024-05-06T09:00:00", "end": "2024-05-06T11:00:00"},
    {"title": "Physics", "start": "2024-05-08T14:00:00", "end": "2024-05-08T15:00:00"}
]`
	resp := doJSON(t, ts, http.MethodPost, "/api/v1/schedule", token, first)
	expectStatus(t, resp, http.StatusOK)
	resp.Body.Close()

	resp = doJSON(t, ts, http.MethodPost, "/api/v1/schedule", token,
		`[{"title":"Chemistry","start":"2024-05-07T08:00:00","end":"2024-05-07T10:00:00"}]`)
	expectStatus(t, resp, http.StatusOK)
	resp.Body.Close()

	var data struct {
		Schedule []struct {
			Title string `json:"title"`
		} `json:"schedule"`
	}
	resp = doJSON(t, ts, http.MethodGet, "/api/v1/schedule", token, "")
	expectStatus(t, resp, http.StatusOK)
	decode(t, resp, &data)

	if len(data.Schedule) != 1 || data.Schedule[0].Title != "Chemistry" {
		t.Fatalf("expected only Chemistry after replace, got %+v", data.Schedule)
	}
}

func registerAndLogin(t *testing.T, ts *TestServer, email string) string {
	t.Helper()

	creds := fmt.Sprintf(`{"email":%q,"password":"secret1"}`, email)

	resp := doJSON(t, ts, http.MethodPost, "/api/v1/auth/register", "", creds)
	expectStatus(t, resp, http.StatusCreated)
	resp.Body.Close()

	var session struct {
		Token string `json:"token"`
	}
	resp = doJSON(t, ts, http.MethodPost, "/api/v1/auth/login", "", creds)
	expectStatus(t, resp, http.StatusOK)
	decode(t, resp, &session)

	return session.Token
}

func doJSON(t *testing.T, ts *TestServer, method, path, token, body string) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = bytes.NewBufferString(body)
	}

	req, err := http.NewRequest(method, ts.Server.URL+path, reader)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, path, err)
	}
	return resp
}

func expectStatus(t *testing.T, resp *http.Response, want int) {
	t.Helper()

	if resp.StatusCode != want {
		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		t.Fatalf("expected %d, got %d: %s", want, resp.StatusCode, string(body))
	}
}

func decode(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
}
