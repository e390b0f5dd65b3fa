// Package services contains the thin service wrappers between the UI layer
// and the REST gateway: request/response translation, token persistence,
// and log-and-rethrow error propagation. No business rules live here; the
// backend owns those.
package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/estatekeeper/internal/client/api"
	"github.com/dmitrijs2005/estatekeeper/internal/client/credstore"
	"github.com/dmitrijs2005/estatekeeper/internal/client/models"
	"github.com/dmitrijs2005/estatekeeper/internal/logging"
)

// UserPatch is a partial profile update; nil fields are left untouched.
type UserPatch struct {
	Name   *string `json:"name,omitempty"`
	Phone  *string `json:"phone,omitempty"`
	Avatar *string `json:"avatar,omitempty"`
}

// AuthService translates authentication operations into backend calls and
// keeps the persisted token in step with their outcomes.
//
// Contract:
//   - Login: authenticate; persist token and user id on success.
//   - Register: create an account; persist the returned token. The backend
//     returns no profile here, so none is persisted.
//   - Logout: best-effort server call; the stored token is deleted even
//     when the call fails.
//   - UpdateProfile: partial profile update, returns the fresh record.
//
// All methods honor context cancellation and return backend errors
// unchanged after logging them.
type AuthService interface {
	Login(ctx context.Context, email, password string) (string, *models.User, error)
	Register(ctx context.Context, email, password, name, phone string) (string, error)
	Logout(ctx context.Context) error
	UpdateProfile(ctx context.Context, userID string, patch UserPatch) (*models.User, error)
}

type authService struct {
	api   *api.Client
	store credstore.Store
	log   logging.Logger
}

// NewAuthService constructs an AuthService bound to the given gateway and
// credential store.
func NewAuthService(client *api.Client, store credstore.Store, log logging.Logger) AuthService {
	return &authService{api: client, store: store, log: log.With("service", "auth")}
}

func (a *authService) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	var resp struct {
		Token string       `json:"token"`
		User  *models.User `json:"user"`
	}

	body := map[string]string{"email": email, "password": password}
	if err := a.api.Post(ctx, "/auth/login", body, &resp); err != nil {
		a.log.Error(ctx, "login failed", "email", email, "error", err)
		return "", nil, err
	}

	if err := a.store.SetToken(ctx, resp.Token); err != nil {
		a.log.Error(ctx, "persisting token failed", "error", err)
		return "", nil, fmt.Errorf("persist token: %w", err)
	}
	if resp.User != nil {
		if err := a.store.SetUserID(ctx, resp.User.ID); err != nil {
			a.log.Warn(ctx, "persisting user id failed", "error", err)
		}
	}

	return resp.Token, resp.User, nil
}

func (a *authService) Register(ctx context.Context, email, password, name, phone string) (string, error) {
	body := map[string]string{"email": email, "password": password, "name": name, "phone": phone}

	// The register endpoint answers either {"token": "..."} or a bare
	// JSON string, depending on backend version.
	var raw json.RawMessage
	if err := a.api.Post(ctx, "/auth/register", body, &raw); err != nil {
		a.log.Error(ctx, "register failed", "email", email, "error", err)
		return "", err
	}

	token, err := decodeToken(raw)
	if err != nil {
		a.log.Error(ctx, "register response unreadable", "error", err)
		return "", err
	}

	if err := a.store.SetToken(ctx, token); err != nil {
		a.log.Error(ctx, "persisting token failed", "error", err)
		return "", fmt.Errorf("persist token: %w", err)
	}

	return token, nil
}

func decodeToken(raw json.RawMessage) (string, error) {
	var wrapped struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(raw, &wrapped); err == nil && wrapped.Token != "" {
		return wrapped.Token, nil
	}

	var bare string
	if err := json.Unmarshal(raw, &bare); err == nil && bare != "" {
		return bare, nil
	}

	return "", fmt.Errorf("no token in register response")
}

func (a *authService) Logout(ctx context.Context) error {
	err := a.api.Post(ctx, "/auth/logout", nil, nil)
	if err != nil {
		// Server-side invalidation is best-effort; the local token is
		// dropped regardless.
		a.log.Warn(ctx, "server logout failed", "error", err)
	}

	if derr := a.store.DeleteToken(ctx); derr != nil {
		a.log.Error(ctx, "deleting token failed", "error", derr)
		return derr
	}
	return err
}

func (a *authService) UpdateProfile(ctx context.Context, userID string, patch UserPatch) (*models.User, error) {
	var user models.User
	if err := a.api.Put(ctx, "/users/"+userID, patch, &user); err != nil {
		a.log.Error(ctx, "profile update failed", "userId", userID, "error", err)
		return nil, err
	}
	return &user, nil
}
