package client

import (
	"encoding/json"
	"fmt"

	"github.com/jecortes2304/simple-todo/models"
)

// Result decodes the envelope's result into a single entity of type T.
func Result[T any](env *models.APIResponse) (*T, error) {
	if err := EnvelopeError(env); err != nil {
		return nil, err
	}
	if len(env.Result) == 0 {
		return nil, fmt.Errorf("response %d carries no result", env.StatusCode)
	}
	var out T
	if err := json.Unmarshal(env.Result, &out); err != nil {
		return nil, fmt.Errorf("failed to decode result: %w", err)
	}
	return &out, nil
}

// PageResult decodes the envelope's result into one page of entities.
func PageResult[T any](env *models.APIResponse) (*models.Pagination[T], error) {
	return Result[models.Pagination[T]](env)
}

// Accept decodes nothing and only converts a failed envelope into an error.
// Used by delete-style calls whose success carries no payload.
func Accept(env *models.APIResponse) error {
	return EnvelopeError(env)
}
