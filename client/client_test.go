package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/go-playground/assert/v2"

	"github.com/jecortes2304/simple-todo/models"
)

func envelopeHandler(status int, result any, errs ...string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		env := models.APIResponse{
			Ok:            status == http.StatusOK || status == http.StatusCreated,
			StatusCode:    status,
			StatusMessage: http.StatusText(status),
			Errors:        models.ErrorList(errs),
		}
		if result != nil {
			raw, _ := json.Marshal(result)
			env.Result = raw
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(env)
	}
}

func TestGetDecodesSuccessfulEnvelope(t *testing.T) {
	server := httptest.NewServer(envelopeHandler(http.StatusOK, models.Project{ID: 7, Name: "Alpha board"}))
	defer server.Close()

	api := New(server.URL, nil)
	env := api.Get(context.Background(), "/projects/project/7", nil)

	if !env.Ok {
		t.Fatalf("expected ok envelope, got %+v", env)
	}
	project, err := Result[models.Project](env)
	if err != nil {
		t.Fatalf("Result() returned error: %v", err)
	}
	assert.Equal(t, 7, project.ID)
	assert.Equal(t, "Alpha board", project.Name)
}

func TestNon2xxIsNormalized(t *testing.T) {
	server := httptest.NewServer(envelopeHandler(http.StatusNotFound, nil, "project 9 not found"))
	defer server.Close()

	api := New(server.URL, nil)
	env := api.Get(context.Background(), "/projects/project/9", nil)

	assert.Equal(t, false, env.Ok)
	assert.Equal(t, http.StatusNotFound, env.StatusCode)
	assert.Equal(t, models.ErrorList{"project 9 not found"}, env.Errors)

	_, err := Result[models.Project](env)
	apiErr, ok := err.(*APIError)
	if !ok {
		t.Fatalf("expected *APIError, got %T", err)
	}
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
}

func TestNonEnvelopeBodyIsNormalized(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("<html>upstream exploded</html>"))
	}))
	defer server.Close()

	api := New(server.URL, nil)
	env := api.Get(context.Background(), "/projects", nil)

	assert.Equal(t, false, env.Ok)
	assert.Equal(t, http.StatusBadGateway, env.StatusCode)
	if len(env.Errors) == 0 {
		t.Error("expected synthesized errors for a non-envelope failure body")
	}
}

func TestNetworkErrorIsNormalized(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	server.Close() // connection refused from here on

	api := New(server.URL, nil)
	env := api.Get(context.Background(), "/projects", nil)

	assert.Equal(t, false, env.Ok)
	assert.Equal(t, http.StatusInternalServerError, env.StatusCode)
	if len(env.Errors) == 0 {
		t.Error("expected errors field for a network failure")
	}
}

func TestBearerTokenIsAttached(t *testing.T) {
	var gotAuth atomic.Value
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth.Store(r.Header.Get("Authorization"))
		envelopeHandler(http.StatusOK, nil)(w, r)
	}))
	defer server.Close()

	api := New(server.URL, StaticToken("token-abc"))
	api.Get(context.Background(), "/profile", nil)

	assert.Equal(t, "Bearer token-abc", gotAuth.Load().(string))
}

func TestNoAuthorizationHeaderWithoutToken(t *testing.T) {
	var gotAuth atomic.Value
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth.Store(r.Header.Get("Authorization"))
		envelopeHandler(http.StatusOK, nil)(w, r)
	}))
	defer server.Close()

	api := New(server.URL, NewTokenStore())
	api.Get(context.Background(), "/projects", nil)

	assert.Equal(t, "", gotAuth.Load().(string))
}

func TestBreakerOpensAfterConsecutiveServerFaults(t *testing.T) {
	var hits atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		envelopeHandler(http.StatusInternalServerError, nil, "boom")(w, r)
	}))
	defer server.Close()

	api := New(server.URL, nil)
	for i := 0; i < 10; i++ {
		env := api.Get(context.Background(), "/projects", nil)
		assert.Equal(t, false, env.Ok)
	}

	// The breaker trips after more than three consecutive failures, so the
	// later calls never reach the server.
	if got := hits.Load(); got > 5 {
		t.Errorf("expected the circuit breaker to stop traffic, server saw %d requests", got)
	}
}

func TestTokenStore(t *testing.T) {
	tokens := NewTokenStore()
	assert.Equal(t, "", tokens.Token())

	tokens.Set("abc")
	assert.Equal(t, "abc", tokens.Token())

	tokens.Clear()
	assert.Equal(t, "", tokens.Token())
}
