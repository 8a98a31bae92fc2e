package services

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/jecortes2304/simple-todo/client"
	"github.com/jecortes2304/simple-todo/models"
)

type TaskService struct {
	api *client.Client
}

func NewTaskService(api *client.Client) *TaskService {
	return &TaskService{api: api}
}

// GetTasksByProject lists the tasks of one project, paged.
func (s *TaskService) GetTasksByProject(ctx context.Context, limit, page int, sort models.SortOrder, projectID int) (*models.Pagination[models.Task], error) {
	env := s.api.Get(ctx, fmt.Sprintf("/tasks/%d", projectID), pagingQuery(limit, page, sort))
	return client.PageResult[models.Task](env)
}

// CreateTask creates a task under the given project. An invalid payload is
// rejected before any request is sent.
func (s *TaskService) CreateTask(ctx context.Context, dto models.TaskCreateDto, projectID int) (*models.Task, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}
	env := s.api.Post(ctx, fmt.Sprintf("/tasks/task/%d", projectID), dto)
	return client.Result[models.Task](env)
}

func (s *TaskService) UpdateTask(ctx context.Context, dto models.TaskUpdateDto, taskID int) (*models.Task, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}
	env := s.api.Put(ctx, fmt.Sprintf("/tasks/task/%d", taskID), dto)
	return client.Result[models.Task](env)
}

func (s *TaskService) DeleteTask(ctx context.Context, taskID int) error {
	env := s.api.Delete(ctx, fmt.Sprintf("/tasks/task/%d", taskID), nil)
	return client.Accept(env)
}

// DeleteTasks deletes several tasks in one request, identified by a csv of
// their IDs.
func (s *TaskService) DeleteTasks(ctx context.Context, taskIDs []int) error {
	parts := make([]string, len(taskIDs))
	for i, id := range taskIDs {
		parts[i] = strconv.Itoa(id)
	}
	q := url.Values{}
	q.Set("ids", strings.Join(parts, ","))

	env := s.api.Delete(ctx, "/tasks", q)
	return client.Accept(env)
}
