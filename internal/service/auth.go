package service

import (
	"context"

	"github.com/nmoreaux/instalens-go/internal/api"
	"github.com/nmoreaux/instalens-go/internal/domain"
	"go.uber.org/zap"
)

// AuthService reads the account connection state. The OAuth dance itself
// (login/callback) lives in the backend; this client only polls status and
// asks for token refreshes.
type AuthService struct {
	client *api.Client
	logger *zap.Logger
}

func NewAuthService(client *api.Client, logger *zap.Logger) *AuthService {
	return &AuthService{client: client, logger: logger}
}

func (s *AuthService) GetStatus(ctx context.Context) (domain.AuthStatus, error) {
	return api.GetJSON[domain.AuthStatus](ctx, s.client, api.EndpointAuthStatus, nil)
}

func (s *AuthService) RefreshToken(ctx context.Context) error {
	type refreshResult struct {
		Success bool `json:"success"`
	}
	_, err := api.PostJSON[refreshResult](ctx, s.client, api.EndpointAuthRefresh, nil)
	return err
}

// LoginURL is where the UI sends the user to start the backend OAuth flow.
func (s *AuthService) LoginURL() string {
	return s.client.BaseURL() + api.EndpointAuthLogin
}
