// Package session holds the device-local login state: the auth token and a
// snapshot of the current user, persisted across process restarts.
package session

import (
	"context"

	"github.com/devpal/newbase/internal/models"
)

// Store is the session contract.
//
// Invariant: IsLoggedIn reporting true implies AuthToken and CurrentUser both
// succeed. Login is all-or-nothing; Logout is idempotent.
type Store interface {
	// Login atomically marks the session logged in and stores the token plus
	// a snapshot of user. The transient token field is stripped from the
	// stored snapshot.
	Login(ctx context.Context, token string, user *models.User) error

	// Logout atomically clears all session state. Calling it on a
	// logged-out session is a no-op.
	Logout(ctx context.Context) error

	IsLoggedIn(ctx context.Context) (bool, error)

	// AuthToken returns the stored token, or common.ErrNoSession when absent.
	AuthToken(ctx context.Context) (string, error)

	// CurrentUser returns the stored snapshot, or common.ErrNoSession.
	CurrentUser(ctx context.Context) (*models.User, error)

	// UpdateCurrentUser replaces the snapshot without touching login state.
	UpdateCurrentUser(ctx context.Context, user *models.User) error
}
