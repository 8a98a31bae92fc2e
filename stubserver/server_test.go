package stubserver

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/assert/v2"

	"github.com/jecortes2304/simple-todo/models"
)

func newTestServer(t *testing.T) (*httptest.Server, *Store) {
	t.Helper()
	store := NewStore()
	server := httptest.NewServer(New(store).Router())
	t.Cleanup(server.Close)
	return server, store
}

func getEnvelope(t *testing.T, url string) models.APIResponse {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s failed: %v", url, err)
	}
	defer resp.Body.Close()
	var env models.APIResponse
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		t.Fatalf("failed to decode envelope: %v", err)
	}
	return env
}

func TestListProjectsPaging(t *testing.T) {
	server, store := newTestServer(t)
	for i := 1; i <= 12; i++ {
		store.SeedProject(fmt.Sprintf("Project number %02d", i), "seeded project for paging")
	}

	env := getEnvelope(t, server.URL+"/api/v1/projects?limit=5&page=3")
	if !env.Ok {
		t.Fatalf("expected ok envelope, got status %d", env.StatusCode)
	}

	var page models.Pagination[models.Project]
	if err := json.Unmarshal(env.Result, &page); err != nil {
		t.Fatalf("failed to decode page: %v", err)
	}
	assert.Equal(t, 12, page.TotalItems)
	assert.Equal(t, 3, page.TotalPages)
	assert.Equal(t, 2, len(page.Items))
	assert.Equal(t, "Project number 11", page.Items[0].Name)
}

func TestListProjectsOutOfRangePageIsEmpty(t *testing.T) {
	server, store := newTestServer(t)
	store.SeedProject("Only project", "the single seeded project")

	env := getEnvelope(t, server.URL+"/api/v1/projects?limit=10&page=9")
	if !env.Ok {
		t.Fatalf("expected ok envelope, got status %d", env.StatusCode)
	}
	var page models.Pagination[models.Project]
	if err := json.Unmarshal(env.Result, &page); err != nil {
		t.Fatalf("failed to decode page: %v", err)
	}
	assert.Equal(t, 0, len(page.Items))
	assert.Equal(t, 1, page.TotalItems)
	assert.Equal(t, 1, page.TotalPages)
	assert.Equal(t, 9, page.Page)
}

func TestPagingParameterValidation(t *testing.T) {
	server, _ := newTestServer(t)

	tests := []struct {
		name  string
		query string
	}{
		{"limit outside allowed set", "?limit=7"},
		{"limit not a number", "?limit=ten"},
		{"page zero", "?page=0"},
		{"negative page", "?page=-2"},
		{"unknown sort order", "?sort=sideways"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := getEnvelope(t, server.URL+"/api/v1/projects"+tt.query)
			assert.Equal(t, http.StatusBadRequest, env.StatusCode)
			if env.Ok {
				t.Error("expected a failed envelope")
			}
			if len(env.Errors) == 0 {
				t.Error("expected an error message in the envelope")
			}
		})
	}
}

func TestBulkDeleteReportsMissingTasks(t *testing.T) {
	server, store := newTestServer(t)
	project := store.SeedProject("Cleanup sweep", "holds tasks for bulk delete")
	kept := store.SeedTask(project.ID, "Survivor task", "stays behind after the sweep", models.StatusPending)
	doomed := store.SeedTask(project.ID, "Doomed task", "goes away with the sweep", models.StatusPending)

	url := fmt.Sprintf("%s/api/v1/tasks?ids=%d,9999", server.URL, doomed.ID)
	req, _ := http.NewRequest(http.MethodDelete, url, nil)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("bulk delete request failed: %v", err)
	}
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// The existing task is still removed even though the call reported the
	// missing one.
	remaining := store.ListTasks(project.ID, models.SortAsc)
	assert.Equal(t, 1, len(remaining))
	assert.Equal(t, kept.ID, remaining[0].ID)
}

func TestRegisterConflict(t *testing.T) {
	server, store := newTestServer(t)
	store.SeedUser("taken", "taken@example.com", models.RoleUser)

	body, _ := json.Marshal(models.RegisterDto{
		Username: "taken2",
		Email:    "taken@example.com",
		Password: "pw",
	})
	resp, err := http.Post(server.URL+"/api/v1/auth/register", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("register request failed: %v", err)
	}
	defer resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestProfileRequiresToken(t *testing.T) {
	server, _ := newTestServer(t)

	env := getEnvelope(t, server.URL+"/api/v1/profile")
	assert.Equal(t, http.StatusUnauthorized, env.StatusCode)
}

func TestCreateProjectRejectsShortName(t *testing.T) {
	server, store := newTestServer(t)

	body, _ := json.Marshal(models.CreateProjectDto{
		Name:        "abc",
		Description: "long enough description text",
	})
	resp, err := http.Post(server.URL+"/api/v1/projects/project", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("create request failed: %v", err)
	}
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, 0, len(store.ListProjects(models.SortAsc)))
}
