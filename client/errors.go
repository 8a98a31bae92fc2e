package client

import (
	"fmt"
	"strings"

	"github.com/jecortes2304/simple-todo/models"
)

// APIError carries the failure information of a normalized response envelope.
type APIError struct {
	StatusCode int
	Messages   models.ErrorList
}

func (e *APIError) Error() string {
	if len(e.Messages) == 0 {
		return fmt.Sprintf("request failed with status %d", e.StatusCode)
	}
	return fmt.Sprintf("request failed with status %d: %s", e.StatusCode, strings.Join(e.Messages, "; "))
}

// EnvelopeError converts a failed envelope into an *APIError. It returns nil
// for a successful envelope.
func EnvelopeError(env *models.APIResponse) error {
	if env.Ok {
		return nil
	}
	return &APIError{StatusCode: env.StatusCode, Messages: env.Errors}
}
