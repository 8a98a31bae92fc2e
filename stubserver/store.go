// Package stubserver is an in-memory reference implementation of the
// taskboard backend contract. It backs local development and the service
// tests; it keeps no state beyond the process.
package stubserver

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/jecortes2304/simple-todo/models"
)

// Store holds the stub's entities. All access goes through its methods.
type Store struct {
	mu       sync.Mutex
	projects map[int]*models.Project
	tasks    map[int]*models.Task
	users    map[int]*models.User
	nextID   int
}

func NewStore() *Store {
	return &Store{
		projects: make(map[int]*models.Project),
		tasks:    make(map[int]*models.Task),
		users:    make(map[int]*models.User),
		nextID:   1,
	}
}

func (s *Store) allocID() int {
	id := s.nextID
	s.nextID++
	return id
}

// SeedProject inserts a project and returns it.
func (s *Store) SeedProject(name, description string) models.Project {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now().UTC()
	project := &models.Project{
		ID:          s.allocID(),
		Name:        name,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.projects[project.ID] = project
	return *project
}

// SeedTask inserts a task under an existing project and returns it.
func (s *Store) SeedTask(projectID int, title, description string, status models.TaskStatus) models.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now().UTC()
	task := &models.Task{
		ID:          s.allocID(),
		Title:       title,
		Description: description,
		Status:      status,
		StatusID:    status.ID(),
		ProjectID:   projectID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.tasks[task.ID] = task
	return *task
}

// SeedUser inserts a user and returns it.
func (s *Store) SeedUser(username, email string, role models.UserRole) models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	user := &models.User{
		ID:       s.allocID(),
		Username: username,
		Email:    email,
		Role:     role,
	}
	s.users[user.ID] = user
	return *user
}

// ListProjects returns every project ordered by ID, each carrying its tasks.
func (s *Store) ListProjects(order models.SortOrder) []models.Project {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Project, 0, len(s.projects))
	for _, project := range s.projects {
		p := *project
		p.Tasks = s.tasksOfLocked(p.ID)
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if order == models.SortDesc {
			return out[i].ID > out[j].ID
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func (s *Store) tasksOfLocked(projectID int) []models.Task {
	var out []models.Task
	for _, task := range s.tasks {
		if task.ProjectID == projectID {
			out = append(out, *task)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *Store) GetProject(id int) (models.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	project, ok := s.projects[id]
	if !ok {
		return models.Project{}, fmt.Errorf("project %d not found", id)
	}
	p := *project
	p.Tasks = s.tasksOfLocked(id)
	return p, nil
}

func (s *Store) CreateProject(dto models.CreateProjectDto) models.Project {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now().UTC()
	project := &models.Project{
		ID:          s.allocID(),
		Name:        dto.Name,
		Description: dto.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.projects[project.ID] = project
	return *project
}

func (s *Store) UpdateProject(id int, dto models.UpdateProjectDto) (models.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	project, ok := s.projects[id]
	if !ok {
		return models.Project{}, fmt.Errorf("project %d not found", id)
	}
	project.Name = dto.Name
	project.Description = dto.Description
	project.UpdatedAt = time.Now().UTC()
	return *project, nil
}

// DeleteProject removes a project and every task under it.
func (s *Store) DeleteProject(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.projects[id]; !ok {
		return fmt.Errorf("project %d not found", id)
	}
	delete(s.projects, id)
	for taskID, task := range s.tasks {
		if task.ProjectID == id {
			delete(s.tasks, taskID)
		}
	}
	return nil
}

// ListTasks returns the tasks of a project ordered by ID. An unknown project
// yields an empty list, matching the listing contract.
func (s *Store) ListTasks(projectID int, order models.SortOrder) []models.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.tasksOfLocked(projectID)
	if order == models.SortDesc {
		for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
			out[i], out[j] = out[j], out[i]
		}
	}
	return out
}

func (s *Store) CreateTask(projectID int, dto models.TaskCreateDto) (models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.projects[projectID]; !ok {
		return models.Task{}, fmt.Errorf("project %d not found", projectID)
	}
	now := time.Now().UTC()
	task := &models.Task{
		ID:          s.allocID(),
		Title:       dto.Title,
		Description: dto.Description,
		Status:      models.StatusPending,
		StatusID:    models.StatusPending.ID(),
		ProjectID:   projectID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.tasks[task.ID] = task
	return *task, nil
}

func (s *Store) UpdateTask(id int, dto models.TaskUpdateDto) (models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	task, ok := s.tasks[id]
	if !ok {
		return models.Task{}, fmt.Errorf("task %d not found", id)
	}
	task.Title = dto.Title
	task.Description = dto.Description
	task.Status = dto.Status
	task.StatusID = dto.Status.ID()
	task.UpdatedAt = time.Now().UTC()
	return *task, nil
}

// DeleteTasks removes every task in ids. IDs that do not exist are counted
// and reported; the rest are still removed.
func (s *Store) DeleteTasks(ids []int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	var missing int
	for _, id := range ids {
		if _, ok := s.tasks[id]; !ok {
			missing++
			continue
		}
		delete(s.tasks, id)
	}
	if missing > 0 {
		return fmt.Errorf("%d of %d tasks not found", missing, len(ids))
	}
	return nil
}

func (s *Store) ListUsers(order models.SortOrder) []models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.User, 0, len(s.users))
	for _, user := range s.users {
		out = append(out, *user)
	}
	sort.Slice(out, func(i, j int) bool {
		if order == models.SortDesc {
			return out[i].ID > out[j].ID
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func (s *Store) GetUser(id int) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[id]
	if !ok {
		return models.User{}, fmt.Errorf("user %d not found", id)
	}
	return *user, nil
}

// FindUserByEmail returns the user owning the given email.
func (s *Store) FindUserByEmail(email string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, user := range s.users {
		if user.Email == email {
			return *user, nil
		}
	}
	return models.User{}, fmt.Errorf("no user with email %s", email)
}

func (s *Store) UpdateUser(id int, dto models.UpdateUserDto) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[id]
	if !ok {
		return models.User{}, fmt.Errorf("user %d not found", id)
	}
	if dto.FirstName != nil {
		user.FirstName = *dto.FirstName
	}
	if dto.LastName != nil {
		user.LastName = *dto.LastName
	}
	if dto.Email != nil {
		user.Email = *dto.Email
	}
	if dto.Phone != nil {
		user.Phone = *dto.Phone
	}
	if dto.Image != nil {
		user.Image = *dto.Image
	}
	return *user, nil
}

func (s *Store) DeleteUser(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[id]; !ok {
		return fmt.Errorf("user %d not found", id)
	}
	delete(s.users, id)
	return nil
}

func (s *Store) CreateUser(dto models.RegisterDto) models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	user := &models.User{
		ID:        s.allocID(),
		Username:  dto.Username,
		Email:     dto.Email,
		FirstName: dto.FirstName,
		LastName:  dto.LastName,
		Phone:     dto.Phone,
		Role:      models.RoleUser,
		Address:   dto.Address,
	}
	s.users[user.ID] = user
	return *user
}
