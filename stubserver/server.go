package stubserver

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/jecortes2304/simple-todo/logging"
	"github.com/jecortes2304/simple-todo/models"
)

var stubSecret = []byte("stub-server-secret")

// Server serves the backend contract over an in-memory store.
type Server struct {
	store *Store
	log   *logrus.Logger
}

func New(store *Store) *Server {
	return &Server{store: store, log: logging.Logger}
}

// Router builds the mux router with every contract route under /api/v1.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	api := r.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/projects/user", s.listProjects).Methods(http.MethodGet)
	api.HandleFunc("/projects", s.listProjects).Methods(http.MethodGet)
	api.HandleFunc("/projects/project", s.createProject).Methods(http.MethodPost)
	api.HandleFunc("/projects/project/{id}", s.getProject).Methods(http.MethodGet)
	api.HandleFunc("/projects/project/{id}", s.updateProject).Methods(http.MethodPut)
	api.HandleFunc("/projects/project/{id}", s.deleteProject).Methods(http.MethodDelete)

	api.HandleFunc("/tasks", s.deleteTasks).Methods(http.MethodDelete)
	api.HandleFunc("/tasks/task/{id}", s.updateTask).Methods(http.MethodPut)
	api.HandleFunc("/tasks/task/{id}", s.deleteTask).Methods(http.MethodDelete)
	api.HandleFunc("/tasks/task/{projectId}", s.createTask).Methods(http.MethodPost)
	api.HandleFunc("/tasks/{projectId}", s.listTasks).Methods(http.MethodGet)

	api.HandleFunc("/users", s.listUsers).Methods(http.MethodGet)
	api.HandleFunc("/users/user/{id}", s.getUser).Methods(http.MethodGet)
	api.HandleFunc("/users/user/{id}", s.updateUser).Methods(http.MethodPut)
	api.HandleFunc("/users/user/{id}", s.deleteUser).Methods(http.MethodDelete)

	api.HandleFunc("/profile", s.getProfile).Methods(http.MethodGet)
	api.HandleFunc("/profile", s.updateProfile).Methods(http.MethodPut)

	api.HandleFunc("/auth/login", s.login).Methods(http.MethodPost)
	api.HandleFunc("/auth/register", s.register).Methods(http.MethodPost)
	api.HandleFunc("/auth/logout", s.logout).Methods(http.MethodDelete)

	return r
}

// paginate slices items into the requested page. A page past the end yields
// an empty items list while totalItems and totalPages stay truthful.
func paginate[T any](items []T, limit, page int, sort models.SortOrder) models.Pagination[T] {
	total := len(items)
	start := (page - 1) * limit
	end := start + limit
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}
	window := make([]T, end-start)
	copy(window, items[start:end])

	return models.Pagination[T]{
		Limit:      limit,
		Page:       page,
		Sort:       sort,
		TotalItems: total,
		TotalPages: models.TotalPages(total, limit),
		Items:      window,
	}
}

// parsePaging reads limit/page/sort query parameters, applying the defaults
// and rejecting values outside the contract.
func parsePaging(r *http.Request) (limit, page int, sort models.SortOrder, err *paramError) {
	limit, page, sort = 10, 1, models.SortAsc

	q := r.URL.Query()
	if v := q.Get("limit"); v != "" {
		n, convErr := strconv.Atoi(v)
		if convErr != nil || !models.IsAllowedLimit(n) {
			return 0, 0, "", &paramError{"limit " + v + " is not allowed"}
		}
		limit = n
	}
	if v := q.Get("page"); v != "" {
		n, convErr := strconv.Atoi(v)
		if convErr != nil || n < 1 {
			return 0, 0, "", &paramError{"page " + v + " is not a positive integer"}
		}
		page = n
	}
	if v := q.Get("sort"); v != "" {
		s := models.SortOrder(v)
		if !s.IsValid() {
			return 0, 0, "", &paramError{"sort " + v + " must be asc or desc"}
		}
		sort = s
	}
	return limit, page, sort, nil
}

type paramError struct{ msg string }

func (e *paramError) Error() string { return e.msg }

func writeEnvelope(w http.ResponseWriter, status int, result any, errs ...string) {
	env := models.APIResponse{
		Ok:            status == http.StatusOK || status == http.StatusCreated,
		StatusCode:    status,
		StatusMessage: http.StatusText(status),
		Errors:        models.ErrorList(errs),
	}
	if result != nil {
		raw, err := json.Marshal(result)
		if err != nil {
			writeEnvelope(w, http.StatusInternalServerError, nil, "failed to encode result")
			return
		}
		env.Result = raw
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(env)
}

func pathID(r *http.Request, name string) (int, bool) {
	id, err := strconv.Atoi(mux.Vars(r)[name])
	return id, err == nil
}

func (s *Server) listProjects(w http.ResponseWriter, r *http.Request) {
	limit, page, sortOrder, err := parsePaging(r)
	if err != nil {
		writeEnvelope(w, http.StatusBadRequest, nil, err.Error())
		return
	}
	result := paginate(s.store.ListProjects(sortOrder), limit, page, sortOrder)
	writeEnvelope(w, http.StatusOK, result)
}

func (s *Server) getProject(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeEnvelope(w, http.StatusBadRequest, nil, "invalid project id")
		return
	}
	project, err := s.store.GetProject(id)
	if err != nil {
		writeEnvelope(w, http.StatusNotFound, nil, err.Error())
		return
	}
	writeEnvelope(w, http.StatusOK, project)
}

func (s *Server) createProject(w http.ResponseWriter, r *http.Request) {
	var dto models.CreateProjectDto
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeEnvelope(w, http.StatusBadRequest, nil, "invalid request payload")
		return
	}
	if err := dto.Validate(); err != nil {
		writeEnvelope(w, http.StatusBadRequest, nil, err.Error())
		return
	}
	project := s.store.CreateProject(dto)
	s.log.Infof("Event ID: PROJECT_CREATED, Description: Project %d created", project.ID)
	writeEnvelope(w, http.StatusCreated, project)
}

func (s *Server) updateProject(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeEnvelope(w, http.StatusBadRequest, nil, "invalid project id")
		return
	}
	var dto models.UpdateProjectDto
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeEnvelope(w, http.StatusBadRequest, nil, "invalid request payload")
		return
	}
	if err := dto.Validate(); err != nil {
		writeEnvelope(w, http.StatusBadRequest, nil, err.Error())
		return
	}
	project, err := s.store.UpdateProject(id, dto)
	if err != nil {
		writeEnvelope(w, http.StatusNotFound, nil, err.Error())
		return
	}
	writeEnvelope(w, http.StatusOK, project)
}

func (s *Server) deleteProject(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeEnvelope(w, http.StatusBadRequest, nil, "invalid project id")
		return
	}
	if err := s.store.DeleteProject(id); err != nil {
		writeEnvelope(w, http.StatusNotFound, nil, err.Error())
		return
	}
	writeEnvelope(w, http.StatusOK, nil)
}

func (s *Server) listTasks(w http.ResponseWriter, r *http.Request) {
	projectID, ok := pathID(r, "projectId")
	if !ok {
		writeEnvelope(w, http.StatusBadRequest, nil, "invalid project id")
		return
	}
	limit, page, sortOrder, err := parsePaging(r)
	if err != nil {
		writeEnvelope(w, http.StatusBadRequest, nil, err.Error())
		return
	}
	result := paginate(s.store.ListTasks(projectID, sortOrder), limit, page, sortOrder)
	writeEnvelope(w, http.StatusOK, result)
}

func (s *Server) createTask(w http.ResponseWriter, r *http.Request) {
	projectID, ok := pathID(r, "projectId")
	if !ok {
		writeEnvelope(w, http.StatusBadRequest, nil, "invalid project id")
		return
	}
	var dto models.TaskCreateDto
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeEnvelope(w, http.StatusBadRequest, nil, "invalid request payload")
		return
	}
	if err := dto.Validate(); err != nil {
		writeEnvelope(w, http.StatusBadRequest, nil, err.Error())
		return
	}
	task, err := s.store.CreateTask(projectID, dto)
	if err != nil {
		writeEnvelope(w, http.StatusNotFound, nil, err.Error())
		return
	}
	s.log.Infof("Event ID: TASK_CREATED, Description: Task %d created in project %d", task.ID, projectID)
	writeEnvelope(w, http.StatusCreated, task)
}

func (s *Server) updateTask(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeEnvelope(w, http.StatusBadRequest, nil, "invalid task id")
		return
	}
	var dto models.TaskUpdateDto
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeEnvelope(w, http.StatusBadRequest, nil, "invalid request payload")
		return
	}
	if err := dto.Validate(); err != nil {
		writeEnvelope(w, http.StatusBadRequest, nil, err.Error())
		return
	}
	task, err := s.store.UpdateTask(id, dto)
	if err != nil {
		writeEnvelope(w, http.StatusNotFound, nil, err.Error())
		return
	}
	writeEnvelope(w, http.StatusOK, task)
}

func (s *Server) deleteTask(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeEnvelope(w, http.StatusBadRequest, nil, "invalid task id")
		return
	}
	if err := s.store.DeleteTasks([]int{id}); err != nil {
		writeEnvelope(w, http.StatusNotFound, nil, err.Error())
		return
	}
	writeEnvelope(w, http.StatusOK, nil)
}

// deleteTasks handles the bulk variant: DELETE /tasks?ids=1,2,3.
func (s *Server) deleteTasks(w http.ResponseWriter, r *http.Request) {
	csv := r.URL.Query().Get("ids")
	if csv == "" {
		writeEnvelope(w, http.StatusBadRequest, nil, "ids query parameter is required")
		return
	}
	var ids []int
	for _, part := range strings.Split(csv, ",") {
		id, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			writeEnvelope(w, http.StatusBadRequest, nil, "invalid task id "+part)
			return
		}
		ids = append(ids, id)
	}
	if err := s.store.DeleteTasks(ids); err != nil {
		writeEnvelope(w, http.StatusNotFound, nil, err.Error())
		return
	}
	s.log.Infof("Event ID: TASKS_DELETED, Description: Deleted %d tasks", len(ids))
	writeEnvelope(w, http.StatusOK, nil)
}

func (s *Server) listUsers(w http.ResponseWriter, r *http.Request) {
	limit, page, sortOrder, err := parsePaging(r)
	if err != nil {
		writeEnvelope(w, http.StatusBadRequest, nil, err.Error())
		return
	}
	result := paginate(s.store.ListUsers(sortOrder), limit, page, sortOrder)
	writeEnvelope(w, http.StatusOK, result)
}

func (s *Server) getUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeEnvelope(w, http.StatusBadRequest, nil, "invalid user id")
		return
	}
	user, err := s.store.GetUser(id)
	if err != nil {
		writeEnvelope(w, http.StatusNotFound, nil, err.Error())
		return
	}
	writeEnvelope(w, http.StatusOK, user)
}

func (s *Server) updateUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeEnvelope(w, http.StatusBadRequest, nil, "invalid user id")
		return
	}
	var dto models.UpdateUserDto
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeEnvelope(w, http.StatusBadRequest, nil, "invalid request payload")
		return
	}
	user, err := s.store.UpdateUser(id, dto)
	if err != nil {
		writeEnvelope(w, http.StatusNotFound, nil, err.Error())
		return
	}
	writeEnvelope(w, http.StatusOK, user)
}

func (s *Server) deleteUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeEnvelope(w, http.StatusBadRequest, nil, "invalid user id")
		return
	}
	if err := s.store.DeleteUser(id); err != nil {
		writeEnvelope(w, http.StatusNotFound, nil, err.Error())
		return
	}
	writeEnvelope(w, http.StatusOK, nil)
}

// requireUser resolves the bearer token of the request to a stored user.
func (s *Server) requireUser(r *http.Request) (models.User, bool) {
	header := r.Header.Get("Authorization")
	tokenStr := strings.TrimPrefix(header, "Bearer ")
	if tokenStr == "" || tokenStr == header {
		return models.User{}, false
	}
	claims := jwt.MapClaims{}
	if _, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (any, error) {
		return stubSecret, nil
	}); err != nil {
		return models.User{}, false
	}
	email, _ := claims["email"].(string)
	user, err := s.store.FindUserByEmail(email)
	return user, err == nil
}

func (s *Server) getProfile(w http.ResponseWriter, r *http.Request) {
	user, ok := s.requireUser(r)
	if !ok {
		writeEnvelope(w, http.StatusUnauthorized, nil, "authorization token required")
		return
	}
	writeEnvelope(w, http.StatusOK, user)
}

func (s *Server) updateProfile(w http.ResponseWriter, r *http.Request) {
	user, ok := s.requireUser(r)
	if !ok {
		writeEnvelope(w, http.StatusUnauthorized, nil, "authorization token required")
		return
	}
	var dto models.UpdateUserDto
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeEnvelope(w, http.StatusBadRequest, nil, "invalid request payload")
		return
	}
	updated, err := s.store.UpdateUser(user.ID, dto)
	if err != nil {
		writeEnvelope(w, http.StatusNotFound, nil, err.Error())
		return
	}
	writeEnvelope(w, http.StatusOK, updated)
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var dto models.LoginDto
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeEnvelope(w, http.StatusBadRequest, nil, "invalid request payload")
		return
	}
	user, err := s.store.FindUserByEmail(dto.Email)
	if err != nil || dto.Password == "" {
		writeEnvelope(w, http.StatusUnauthorized, nil, "invalid credentials")
		return
	}

	claims := jwt.MapClaims{
		"email": user.Email,
		"role":  string(user.Role),
		"exp":   time.Now().Add(2 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(stubSecret)
	if err != nil {
		writeEnvelope(w, http.StatusInternalServerError, nil, "failed to sign token")
		return
	}
	s.log.Infof("Event ID: USER_LOGGED_IN, Description: User %s logged in", user.Email)
	writeEnvelope(w, http.StatusOK, models.TokenResponse{Token: signed})
}

func (s *Server) register(w http.ResponseWriter, r *http.Request) {
	var dto models.RegisterDto
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeEnvelope(w, http.StatusBadRequest, nil, "invalid request payload")
		return
	}
	if dto.Email == "" || dto.Password == "" || dto.Username == "" {
		writeEnvelope(w, http.StatusBadRequest, nil, "username, email and password are required")
		return
	}
	if _, err := s.store.FindUserByEmail(dto.Email); err == nil {
		writeEnvelope(w, http.StatusConflict, nil, "user with the same email already exists")
		return
	}
	user := s.store.CreateUser(dto)
	writeEnvelope(w, http.StatusCreated, user)
}

func (s *Server) logout(w http.ResponseWriter, _ *http.Request) {
	writeEnvelope(w, http.StatusOK, nil)
}
