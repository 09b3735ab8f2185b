package repository

import (
	"context"
	"fmt"

	"github.com/devpal/newbase/internal/api"
	"github.com/devpal/newbase/internal/logging"
	"github.com/devpal/newbase/internal/models"
	"github.com/devpal/newbase/internal/repositories/users"
	"github.com/devpal/newbase/internal/session"
)

// UserRepository orchestrates authentication and profile operations.
type UserRepository struct {
	client  api.Client
	users   users.Repository
	session session.Store
	log     logging.Logger
}

func NewUserRepository(client api.Client, users users.Repository, sess session.Store, log logging.Logger) *UserRepository {
	return &UserRepository{
		client:  client,
		users:   users,
		session: sess,
		log:     log.With("component", "user_repository"),
	}
}

// Login authenticates against the server. On a success envelope with data it
// stores the session (token + user snapshot) and then warms the local cache
// with the user row. A failed remote login leaves session and cache untouched.
func (r *UserRepository) Login(ctx context.Context, email, password string) (*api.Envelope[models.User], error) {
	env, err := r.client.Login(ctx, api.LoginRequest{Email: email, Password: password})
	if err != nil {
		return nil, err
	}

	if env.IsSuccess() && env.Data != nil {
		user := *env.Data
		if err := r.session.Login(ctx, user.Token, &user); err != nil {
			return nil, api.LocalStore(fmt.Errorf("persist session: %w", err))
		}
		if err := r.users.Upsert(context.WithoutCancel(ctx), &user); err != nil {
			r.log.Warn(ctx, "write-through of user row failed", "user_id", user.ID, "err", err)
		}
	}
	return env, nil
}

// Register creates an account. No local side effects; the caller logs in
// afterwards.
func (r *UserRepository) Register(ctx context.Context, req api.RegisterRequest) (*api.Envelope[api.Empty], error) {
	return r.client.Register(ctx, req)
}

// ForgotPassword asks the server to start a password reset.
func (r *UserRepository) ForgotPassword(ctx context.Context, email string) (*api.Envelope[api.Empty], error) {
	return r.client.ForgotPassword(ctx, email)
}

// Logout is local-only: it clears the session and purges cached user rows.
// Cached notifications are left alone.
func (r *UserRepository) Logout(ctx context.Context) error {
	if err := r.session.Logout(ctx); err != nil {
		return api.LocalStore(fmt.Errorf("clear session: %w", err))
	}
	if err := r.users.DeleteAll(ctx); err != nil {
		return api.LocalStore(fmt.Errorf("purge cached users: %w", err))
	}
	return nil
}

// GetProfile fetches the current user's profile, writing it through to the
// cache on success and serving the cached row when the remote is unavailable.
func (r *UserRepository) GetProfile(ctx context.Context) (*api.Envelope[models.User], error) {
	return readWithFallback(ctx, r.log,
		r.client.GetProfile,
		func(ctx context.Context) (models.User, error) {
			current, err := r.session.CurrentUser(ctx)
			if err != nil {
				return models.User{}, err
			}
			cached, err := r.users.Get(ctx, current.ID)
			if err != nil {
				return models.User{}, err
			}
			return *cached, nil
		},
		func(ctx context.Context, u models.User) error {
			return r.users.Upsert(ctx, &u)
		},
	)
}

// UpdateProfile pushes the edited profile to the server; on success the cache
// row and the session snapshot are refreshed (best-effort).
func (r *UserRepository) UpdateProfile(ctx context.Context, user models.User) (*api.Envelope[api.Empty], error) {
	env, err := r.client.UpdateProfile(ctx, user)
	if err != nil {
		return nil, err
	}

	if env.IsSuccess() {
		wctx := context.WithoutCancel(ctx)
		if err := r.users.Upsert(wctx, &user); err != nil {
			r.log.Warn(ctx, "write-through of updated profile failed", "user_id", user.ID, "err", err)
		}
		if err := r.session.UpdateCurrentUser(wctx, &user); err != nil {
			r.log.Warn(ctx, "session snapshot refresh failed", "user_id", user.ID, "err", err)
		}
	}
	return env, nil
}

// LocalProfile reads the cached row for the current session user without
// touching the network.
func (r *UserRepository) LocalProfile(ctx context.Context) (*models.User, error) {
	current, err := r.session.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}
	return r.users.Get(ctx, current.ID)
}

// SaveProfileLocally stores a user row in the cache directly.
func (r *UserRepository) SaveProfileLocally(ctx context.Context, user *models.User) error {
	return r.users.Upsert(ctx, user)
}
