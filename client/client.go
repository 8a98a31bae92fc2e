// Package client is the HTTP transport layer of the taskboard backend API.
// Every call, whatever happens on the wire, resolves to the uniform response
// envelope: callers never see a raw transport error.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"

	"github.com/jecortes2304/simple-todo/logging"
	"github.com/jecortes2304/simple-todo/models"
)

const (
	apiPrefix = "/api/v1"

	// requestTimeout is the fixed transport-level timeout; a request that
	// exceeds it fails as a network error.
	requestTimeout = 1000 * time.Millisecond
)

type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
	breaker *gobreaker.CircuitBreaker
	log     *logrus.Logger
}

// New creates a transport client for the API rooted at baseURL. tokens may be
// nil, in which case requests are sent unauthenticated.
func New(baseURL string, tokens TokenSource) *Client {
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "BackendAPICB",
		MaxRequests: 1,
		Timeout:     2 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures > 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Logger.Infof("Event ID: CIRCUIT_BREAKER_STATE_CHANGE, Description: Circuit Breaker '%s' changed from '%s' to '%s'", name, from.String(), to.String())
		},
	})

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/") + apiPrefix,
		http:    &http.Client{Timeout: requestTimeout},
		tokens:  tokens,
		breaker: breaker,
		log:     logging.Logger,
	}
}

// Get issues a GET request to path with the given query parameters.
func (c *Client) Get(ctx context.Context, path string, query url.Values) *models.APIResponse {
	return c.do(ctx, http.MethodGet, path, query, nil)
}

// Post issues a POST request to path with a JSON-encoded body.
func (c *Client) Post(ctx context.Context, path string, body any) *models.APIResponse {
	return c.do(ctx, http.MethodPost, path, nil, body)
}

// Put issues a PUT request to path with a JSON-encoded body.
func (c *Client) Put(ctx context.Context, path string, body any) *models.APIResponse {
	return c.do(ctx, http.MethodPut, path, nil, body)
}

// Delete issues a DELETE request to path with the given query parameters.
func (c *Client) Delete(ctx context.Context, path string, query url.Values) *models.APIResponse {
	return c.do(ctx, http.MethodDelete, path, query, nil)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any) *models.APIResponse {
	req, err := c.newRequest(ctx, method, path, query, body)
	if err != nil {
		return networkFailure(err)
	}

	out, err := c.breaker.Execute(func() (any, error) {
		res, err := c.http.Do(req)
		if err != nil {
			return nil, err
		}
		defer res.Body.Close()

		env := decodeEnvelope(res)
		if res.StatusCode >= http.StatusInternalServerError {
			// Server faults feed the breaker; the envelope still
			// reaches the caller below.
			return env, &APIError{StatusCode: res.StatusCode, Messages: env.Errors}
		}
		return env, nil
	})

	if env, ok := out.(*models.APIResponse); ok {
		return env
	}
	c.log.Errorf("Event ID: REQUEST_FAILED, Description: %s %s failed: %v", method, path, err)
	return networkFailure(err)
}

func (c *Client) newRequest(ctx context.Context, method, path string, query url.Values, body any) (*http.Request, error) {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var payload io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		payload = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, payload)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}
	return req, nil
}

// decodeEnvelope reads a response body into the uniform envelope. The ok flag
// is always derived from the HTTP status, and a failed response without an
// errors field gets one synthesized from the status line.
func decodeEnvelope(res *http.Response) *models.APIResponse {
	var env models.APIResponse
	if err := json.NewDecoder(res.Body).Decode(&env); err != nil {
		env = models.APIResponse{}
	}

	env.Ok = res.StatusCode == http.StatusOK || res.StatusCode == http.StatusCreated
	if env.StatusCode == 0 {
		env.StatusCode = res.StatusCode
	}
	if env.StatusMessage == "" {
		env.StatusMessage = http.StatusText(res.StatusCode)
	}
	if !env.Ok && len(env.Errors) == 0 {
		env.Errors = models.ErrorList{http.StatusText(res.StatusCode)}
	}
	return &env
}

// networkFailure normalizes a transport error (connection refused, timeout,
// open circuit breaker) into the envelope shape.
func networkFailure(err error) *models.APIResponse {
	message := "Internal Server Error"
	if err != nil {
		message = err.Error()
	}
	return &models.APIResponse{
		Ok:            false,
		StatusCode:    http.StatusInternalServerError,
		StatusMessage: "Internal Server Error",
		Errors:        models.ErrorList{message},
	}
}
