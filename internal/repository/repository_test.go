package repository

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"

	"github.com/devpal/newbase/internal/api"
	"github.com/devpal/newbase/internal/localdb"
	"github.com/devpal/newbase/internal/logging"
	"github.com/devpal/newbase/internal/models"
	"github.com/devpal/newbase/internal/repositories/notifications"
	"github.com/devpal/newbase/internal/repositories/users"
	"github.com/devpal/newbase/internal/session"
)

// fakeClient lets each test script the remote without a server. Unset
// methods fail loudly so a test cannot hit an endpoint it did not expect.
type fakeClient struct {
	login                func(ctx context.Context, req api.LoginRequest) (*api.Envelope[models.User], error)
	register             func(ctx context.Context, req api.RegisterRequest) (*api.Envelope[api.Empty], error)
	forgotPassword       func(ctx context.Context, email string) (*api.Envelope[api.Empty], error)
	getProfile           func(ctx context.Context) (*api.Envelope[models.User], error)
	updateProfile        func(ctx context.Context, user models.User) (*api.Envelope[api.Empty], error)
	listNotifications    func(ctx context.Context) (*api.Envelope[[]models.Notification], error)
	markNotificationRead func(ctx context.Context, id string) (*api.Envelope[api.Empty], error)
}

func (f *fakeClient) Login(ctx context.Context, req api.LoginRequest) (*api.Envelope[models.User], error) {
	if f.login == nil {
		panic("unexpected Login call")
	}
	return f.login(ctx, req)
}

func (f *fakeClient) Register(ctx context.Context, req api.RegisterRequest) (*api.Envelope[api.Empty], error) {
	if f.register == nil {
		panic("unexpected Register call")
	}
	return f.register(ctx, req)
}

func (f *fakeClient) ForgotPassword(ctx context.Context, email string) (*api.Envelope[api.Empty], error) {
	if f.forgotPassword == nil {
		panic("unexpected ForgotPassword call")
	}
	return f.forgotPassword(ctx, email)
}

func (f *fakeClient) GetProfile(ctx context.Context) (*api.Envelope[models.User], error) {
	if f.getProfile == nil {
		panic("unexpected GetProfile call")
	}
	return f.getProfile(ctx)
}

func (f *fakeClient) UpdateProfile(ctx context.Context, user models.User) (*api.Envelope[api.Empty], error) {
	if f.updateProfile == nil {
		panic("unexpected UpdateProfile call")
	}
	return f.updateProfile(ctx, user)
}

func (f *fakeClient) ListNotifications(ctx context.Context) (*api.Envelope[[]models.Notification], error) {
	if f.listNotifications == nil {
		panic("unexpected ListNotifications call")
	}
	return f.listNotifications(ctx)
}

func (f *fakeClient) MarkNotificationRead(ctx context.Context, id string) (*api.Envelope[api.Empty], error) {
	if f.markNotificationRead == nil {
		panic("unexpected MarkNotificationRead call")
	}
	return f.markNotificationRead(ctx, id)
}

// deps wires real sqlite-backed stores around the scripted client, so the
// tests observe actual persisted side effects.
type deps struct {
	db            *sql.DB
	client        *fakeClient
	users         users.Repository
	notifications notifications.Repository
	session       session.Store
	log           logging.Logger
}

func setupDeps(t *testing.T) *deps {
	t.Helper()
	db, err := localdb.Open(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return &deps{
		db:            db,
		client:        &fakeClient{},
		users:         users.NewSQLiteRepository(db),
		notifications: notifications.NewSQLiteRepository(db),
		session:       session.NewSQLiteStore(db),
		log:           logging.NewDefault(),
	}
}
