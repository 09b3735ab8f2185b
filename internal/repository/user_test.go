package repository

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devpal/newbase/internal/api"
	"github.com/devpal/newbase/internal/common"
	"github.com/devpal/newbase/internal/models"
)

func profile(id string) models.User {
	return models.User{
		ID:            id,
		Username:      "demo",
		Email:         "demo@devpal.app",
		FirstName:     "Demo",
		AccountStatus: "active",
	}
}

func TestLogin_Success(t *testing.T) {
	d := setupDeps(t)
	ctx := context.Background()

	user := profile("u1")
	user.Token = "jwt-abc"
	d.client.login = func(ctx context.Context, req api.LoginRequest) (*api.Envelope[models.User], error) {
		assert.Equal(t, "demo@devpal.app", req.Email)
		return api.Success(user, "login successful"), nil
	}

	r := NewUserRepository(d.client, d.users, d.session, d.log)
	env, err := r.Login(ctx, "demo@devpal.app", "secret")
	require.NoError(t, err)
	require.True(t, env.IsSuccess())

	token, err := d.session.AuthToken(ctx)
	require.NoError(t, err)
	assert.Equal(t, "jwt-abc", token)

	current, err := d.session.CurrentUser(ctx)
	require.NoError(t, err)
	assert.Equal(t, "u1", current.ID)
	assert.Empty(t, current.Token)

	cached, err := d.users.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "demo", cached.Username)
}

func TestLogin_BusinessErrorNoSideEffects(t *testing.T) {
	d := setupDeps(t)
	ctx := context.Background()

	d.client.login = func(ctx context.Context, req api.LoginRequest) (*api.Envelope[models.User], error) {
		return &api.Envelope[models.User]{Status: api.StatusError, Message: "invalid credentials"}, nil
	}

	r := NewUserRepository(d.client, d.users, d.session, d.log)
	env, err := r.Login(ctx, "demo@devpal.app", "wrong")
	require.NoError(t, err)
	require.False(t, env.IsSuccess())

	loggedIn, err := d.session.IsLoggedIn(ctx)
	require.NoError(t, err)
	assert.False(t, loggedIn)

	rows, err := d.users.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestLogin_TransportErrorNoSideEffects(t *testing.T) {
	d := setupDeps(t)
	ctx := context.Background()

	d.client.login = func(ctx context.Context, req api.LoginRequest) (*api.Envelope[models.User], error) {
		return nil, api.NoConnectivity()
	}

	r := NewUserRepository(d.client, d.users, d.session, d.log)
	_, err := r.Login(ctx, "demo@devpal.app", "secret")
	require.Error(t, err)
	assert.Equal(t, api.KindNoConnectivity, api.KindOf(err))

	loggedIn, err := d.session.IsLoggedIn(ctx)
	require.NoError(t, err)
	assert.False(t, loggedIn)
}

func TestGetProfile_SuccessWritesThrough(t *testing.T) {
	d := setupDeps(t)
	ctx := context.Background()

	d.client.getProfile = func(ctx context.Context) (*api.Envelope[models.User], error) {
		return api.Success(profile("u1"), "profile loaded"), nil
	}

	r := NewUserRepository(d.client, d.users, d.session, d.log)
	env, err := r.GetProfile(ctx)
	require.NoError(t, err)
	require.True(t, env.IsSuccess())

	cached, err := d.users.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "demo", cached.Username)
}

func TestGetProfile_FallsBackToCache(t *testing.T) {
	d := setupDeps(t)
	ctx := context.Background()

	u := profile("u1")
	require.NoError(t, d.session.Login(ctx, "tok", &u))
	require.NoError(t, d.users.Upsert(ctx, &u))

	d.client.getProfile = func(ctx context.Context) (*api.Envelope[models.User], error) {
		return nil, api.Timeout(context.DeadlineExceeded)
	}

	r := NewUserRepository(d.client, d.users, d.session, d.log)
	env, err := r.GetProfile(ctx)
	require.NoError(t, err)
	require.True(t, env.IsSuccess())
	require.NotNil(t, env.Data)
	assert.Equal(t, "u1", env.Data.ID)
}

func TestGetProfile_NoCachePropagatesRemoteError(t *testing.T) {
	d := setupDeps(t)
	ctx := context.Background()

	// A session exists but the cached row is gone.
	u := profile("u1")
	require.NoError(t, d.session.Login(ctx, "tok", &u))

	remoteErr := api.Server(502, []byte("bad gateway"))
	d.client.getProfile = func(ctx context.Context) (*api.Envelope[models.User], error) {
		return nil, remoteErr
	}

	r := NewUserRepository(d.client, d.users, d.session, d.log)
	_, err := r.GetProfile(ctx)
	require.Error(t, err)
	assert.Equal(t, api.KindServer, api.KindOf(err))

	var apiErr *api.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 502, apiErr.HTTPStatus)
}

func TestUpdateProfile_SuccessRefreshesCacheAndSession(t *testing.T) {
	d := setupDeps(t)
	ctx := context.Background()

	u := profile("u1")
	require.NoError(t, d.session.Login(ctx, "tok", &u))
	require.NoError(t, d.users.Upsert(ctx, &u))

	d.client.updateProfile = func(ctx context.Context, user models.User) (*api.Envelope[api.Empty], error) {
		return api.Success(api.Empty{}, "profile updated"), nil
	}

	edited := u
	edited.Bio = "new bio"

	r := NewUserRepository(d.client, d.users, d.session, d.log)
	env, err := r.UpdateProfile(ctx, edited)
	require.NoError(t, err)
	require.True(t, env.IsSuccess())

	cached, err := d.users.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "new bio", cached.Bio)

	current, err := d.session.CurrentUser(ctx)
	require.NoError(t, err)
	assert.Equal(t, "new bio", current.Bio)
}

func TestUpdateProfile_RemoteFailureNoSideEffects(t *testing.T) {
	d := setupDeps(t)
	ctx := context.Background()

	u := profile("u1")
	u.Bio = "original"
	require.NoError(t, d.session.Login(ctx, "tok", &u))
	require.NoError(t, d.users.Upsert(ctx, &u))

	d.client.updateProfile = func(ctx context.Context, user models.User) (*api.Envelope[api.Empty], error) {
		return nil, api.NoConnectivity()
	}

	edited := u
	edited.Bio = "never persisted"

	r := NewUserRepository(d.client, d.users, d.session, d.log)
	_, err := r.UpdateProfile(ctx, edited)
	require.Error(t, err)

	cached, err := d.users.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "original", cached.Bio)

	current, err := d.session.CurrentUser(ctx)
	require.NoError(t, err)
	assert.Equal(t, "original", current.Bio)
}

func TestLogout_ClearsSessionAndUsersOnly(t *testing.T) {
	d := setupDeps(t)
	ctx := context.Background()

	u := profile("u1")
	require.NoError(t, d.session.Login(ctx, "tok", &u))
	require.NoError(t, d.users.Upsert(ctx, &u))

	n := notification("n1", 100)
	require.NoError(t, d.notifications.Upsert(ctx, &n))

	r := NewUserRepository(d.client, d.users, d.session, d.log)
	require.NoError(t, r.Logout(ctx))

	loggedIn, err := d.session.IsLoggedIn(ctx)
	require.NoError(t, err)
	assert.False(t, loggedIn)

	rows, err := d.users.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, rows)

	// Notifications survive logout.
	ns, err := d.notifications.List(ctx)
	require.NoError(t, err)
	assert.Len(t, ns, 1)
}

func TestSaveProfileLocally_ConcurrentSameID(t *testing.T) {
	d := setupDeps(t)
	ctx := context.Background()

	candidates := make([]string, 8)
	for i := range candidates {
		candidates[i] = fmt.Sprintf("bio-%d", i)
	}

	r := NewUserRepository(d.client, d.users, d.session, d.log)

	var wg sync.WaitGroup
	errs := make([]error, len(candidates))
	for i, bio := range candidates {
		wg.Add(1)
		go func(i int, bio string) {
			defer wg.Done()
			u := profile("u1")
			u.Bio = bio
			errs[i] = r.SaveProfileLocally(ctx, &u)
		}(i, bio)
	}
	wg.Wait()

	for _, err := range errs {
		require.NoError(t, err)
	}

	// Exactly one intact row survives, carrying one of the written values.
	rows, err := d.users.List(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "u1", rows[0].ID)
	assert.Contains(t, candidates, rows[0].Bio)
}

func TestLocalProfile_NoSession(t *testing.T) {
	d := setupDeps(t)

	r := NewUserRepository(d.client, d.users, d.session, d.log)
	_, err := r.LocalProfile(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrNoSession))
}

func TestRegisterAndForgotPassword_Passthrough(t *testing.T) {
	d := setupDeps(t)
	ctx := context.Background()

	d.client.register = func(ctx context.Context, req api.RegisterRequest) (*api.Envelope[api.Empty], error) {
		return api.Success(api.Empty{}, "registration successful"), nil
	}
	d.client.forgotPassword = func(ctx context.Context, email string) (*api.Envelope[api.Empty], error) {
		assert.Equal(t, "demo@devpal.app", email)
		return api.Success(api.Empty{}, "reset email sent"), nil
	}

	r := NewUserRepository(d.client, d.users, d.session, d.log)

	env, err := r.Register(ctx, api.RegisterRequest{Username: "demo", Email: "demo@devpal.app", Password: "secret"})
	require.NoError(t, err)
	assert.True(t, env.IsSuccess())

	env, err = r.ForgotPassword(ctx, "demo@devpal.app")
	require.NoError(t, err)
	assert.True(t, env.IsSuccess())
}
