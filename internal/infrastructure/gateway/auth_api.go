package gateway

import (
	"context"
	"net/http"

	"github.com/parkease/parking-console/internal/core/domain"
	"github.com/parkease/parking-console/internal/core/ports"
)

const authBase = "/api/auth"

// AuthAPI implements ports.AuthAPI over the gateway.
type AuthAPI struct {
	gw *Gateway
}

func NewAuthAPI(gw *Gateway) *AuthAPI {
	return &AuthAPI{gw: gw}
}

// authEnvelope is the backend's {success, message, user, token} shape. Some
// deployments send the token under "jwt"; both are accepted, "token" wins.
type authEnvelope struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	User    *domain.User `json:"user"`
	Token   string       `json:"token"`
	JWT     string       `json:"jwt"`
}

func (e *authEnvelope) token() string {
	if e.Token != "" {
		return e.Token
	}
	return e.JWT
}

func (a *AuthAPI) Login(ctx context.Context, creds ports.Credentials) (*ports.AuthResult, error) {
	payload := map[string]string{
		"username": creds.Username,
		"password": creds.Password,
	}
	var env authEnvelope
	if err := a.gw.post(ctx, authBase+"/login", payload, &env); err != nil {
		return nil, err
	}
	// The backend reports credential rejection as success=false in a 200.
	if !env.Success || env.User == nil {
		return nil, domain.NewStatusError(http.StatusUnauthorized, env.Message)
	}
	return &ports.AuthResult{User: *env.User, Token: env.token()}, nil
}

func (a *AuthAPI) Register(ctx context.Context, reg ports.Registration) (*ports.AuthResult, error) {
	var env authEnvelope
	if err := a.gw.post(ctx, authBase+"/register", reg, &env); err != nil {
		return nil, err
	}
	if !env.Success || env.User == nil {
		return nil, domain.NewStatusError(http.StatusConflict, env.Message)
	}
	return &ports.AuthResult{User: *env.User, Token: env.token()}, nil
}

func (a *AuthAPI) ListUsers(ctx context.Context) ([]domain.User, error) {
	var env struct {
		Success bool          `json:"success"`
		Users   []domain.User `json:"users"`
	}
	if err := a.gw.get(ctx, authBase+"/users", &env); err != nil {
		return nil, err
	}
	return env.Users, nil
}
