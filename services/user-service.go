package services

import (
	"context"
	"fmt"

	"github.com/jecortes2304/simple-todo/client"
	"github.com/jecortes2304/simple-todo/events"
	"github.com/jecortes2304/simple-todo/models"
)

type UserService struct {
	api *client.Client
	bus *events.Bus
}

// NewUserService creates the user/profile service. bus may be nil when no
// view cares about avatar invalidation.
func NewUserService(api *client.Client, bus *events.Bus) *UserService {
	return &UserService{api: api, bus: bus}
}

func (s *UserService) GetProfile(ctx context.Context) (*models.User, error) {
	env := s.api.Get(ctx, "/profile", nil)
	return client.Result[models.User](env)
}

// UpdateProfile updates the authenticated user's profile. When the update
// carries a new avatar image, the avatar-changed event is published so
// subscribed views drop their cached copy.
func (s *UserService) UpdateProfile(ctx context.Context, dto models.UpdateUserDto) (*models.User, error) {
	env := s.api.Put(ctx, "/profile", dto)
	user, err := client.Result[models.User](env)
	if err != nil {
		return nil, err
	}
	if dto.Image != nil && s.bus != nil {
		s.bus.Publish(events.TopicAvatarChanged)
	}
	return user, nil
}

// GetAllUsers lists every user, paged. Admin only.
func (s *UserService) GetAllUsers(ctx context.Context, limit, page int, sort models.SortOrder) (*models.Pagination[models.User], error) {
	env := s.api.Get(ctx, "/users", pagingQuery(limit, page, sort))
	return client.PageResult[models.User](env)
}

func (s *UserService) GetUserByID(ctx context.Context, id int) (*models.User, error) {
	env := s.api.Get(ctx, fmt.Sprintf("/users/user/%d", id), nil)
	return client.Result[models.User](env)
}

func (s *UserService) UpdateUser(ctx context.Context, id int, dto models.UpdateUserDto) (*models.User, error) {
	env := s.api.Put(ctx, fmt.Sprintf("/users/user/%d", id), dto)
	return client.Result[models.User](env)
}

func (s *UserService) DeleteUser(ctx context.Context, id int) error {
	env := s.api.Delete(ctx, fmt.Sprintf("/users/user/%d", id), nil)
	return client.Accept(env)
}
