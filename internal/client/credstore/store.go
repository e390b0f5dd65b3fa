// Package credstore is the durable credential store: the session token,
// the cached profile, and the bare user id survive process restarts here.
// It plays the role a platform keychain plays for a mobile client.
package credstore

import (
	"context"

	"github.com/dmitrijs2005/estatekeeper/internal/client/models"
)

// Store is a small key-value surface over whatever durable storage backs
// the credentials. Absent values are reported as common.ErrorNotFound.
//
// The store is written only by explicit auth operations and read once at
// startup, so implementations do not need cross-process coordination.
type Store interface {
	SetToken(ctx context.Context, token string) error
	Token(ctx context.Context) (string, error)
	DeleteToken(ctx context.Context) error

	SetUser(ctx context.Context, u *models.User) error
	User(ctx context.Context) (*models.User, error)
	DeleteUser(ctx context.Context) error

	// The bare user id is cached separately from the profile because
	// register yields a token and an id but no profile to serialize.
	SetUserID(ctx context.Context, id string) error
	UserID(ctx context.Context) (string, error)

	// Clear wipes everything; used on sign-out.
	Clear(ctx context.Context) error
}
