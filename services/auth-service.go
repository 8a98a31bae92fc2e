package services

import (
	"context"

	"github.com/jecortes2304/simple-todo/client"
	"github.com/jecortes2304/simple-todo/models"
	"github.com/jecortes2304/simple-todo/utils"
)

type AuthService struct {
	api    *client.Client
	tokens *client.TokenStore
}

// NewAuthService creates the auth service. tokens is the store the transport
// client reads its bearer token from; a successful login fills it and logout
// clears it.
func NewAuthService(api *client.Client, tokens *client.TokenStore) *AuthService {
	return &AuthService{api: api, tokens: tokens}
}

// Login exchanges credentials for a bearer token and installs it.
func (s *AuthService) Login(ctx context.Context, dto models.LoginDto) (*models.TokenResponse, error) {
	env := s.api.Post(ctx, "/auth/login", dto)
	token, err := client.Result[models.TokenResponse](env)
	if err != nil {
		return nil, err
	}
	s.tokens.Set(token.Token)
	return token, nil
}

func (s *AuthService) Register(ctx context.Context, dto models.RegisterDto) (*models.User, error) {
	env := s.api.Post(ctx, "/auth/register", dto)
	return client.Result[models.User](env)
}

// Logout invalidates the session server-side and drops the local token even
// if the request fails.
func (s *AuthService) Logout(ctx context.Context) error {
	env := s.api.Delete(ctx, "/auth/logout", nil)
	s.tokens.Clear()
	return client.Accept(env)
}

// IsAuthenticated reports whether a usable, unexpired token is installed.
func (s *AuthService) IsAuthenticated() bool {
	token := s.tokens.Token()
	return token != "" && !utils.TokenExpired(token)
}
