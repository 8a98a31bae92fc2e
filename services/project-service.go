// Package services exposes the typed API surface of the taskboard backend.
// Each service wraps the transport client for one entity family; every call
// validates its input, issues the request and decodes the response envelope.
package services

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/jecortes2304/simple-todo/client"
	"github.com/jecortes2304/simple-todo/models"
)

func pagingQuery(limit, page int, sort models.SortOrder) url.Values {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))
	q.Set("page", strconv.Itoa(page))
	q.Set("sort", string(sort))
	return q
}

type ProjectService struct {
	api *client.Client
}

func NewProjectService(api *client.Client) *ProjectService {
	return &ProjectService{api: api}
}

// GetUserProjects lists the authenticated user's projects, paged.
func (s *ProjectService) GetUserProjects(ctx context.Context, limit, page int, sort models.SortOrder) (*models.Pagination[models.Project], error) {
	env := s.api.Get(ctx, "/projects/user", pagingQuery(limit, page, sort))
	return client.PageResult[models.Project](env)
}

// GetAllProjects lists every project, paged. Admin only.
func (s *ProjectService) GetAllProjects(ctx context.Context, limit, page int, sort models.SortOrder) (*models.Pagination[models.Project], error) {
	env := s.api.Get(ctx, "/projects", pagingQuery(limit, page, sort))
	return client.PageResult[models.Project](env)
}

func (s *ProjectService) GetProjectByID(ctx context.Context, id int) (*models.Project, error) {
	env := s.api.Get(ctx, fmt.Sprintf("/projects/project/%d", id), nil)
	return client.Result[models.Project](env)
}

// CreateProject creates a project. An invalid payload is rejected before any
// request is sent.
func (s *ProjectService) CreateProject(ctx context.Context, dto models.CreateProjectDto) (*models.Project, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}
	env := s.api.Post(ctx, "/projects/project", dto)
	return client.Result[models.Project](env)
}

func (s *ProjectService) UpdateProject(ctx context.Context, id int, dto models.UpdateProjectDto) (*models.Project, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}
	env := s.api.Put(ctx, fmt.Sprintf("/projects/project/%d", id), dto)
	return client.Result[models.Project](env)
}

func (s *ProjectService) DeleteProject(ctx context.Context, id int) error {
	env := s.api.Delete(ctx, fmt.Sprintf("/projects/project/%d", id), nil)
	return client.Accept(env)
}
