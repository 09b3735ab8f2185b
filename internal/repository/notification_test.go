package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devpal/newbase/internal/api"
	"github.com/devpal/newbase/internal/models"
)

func notification(id string, sentAt int64) models.Notification {
	return models.Notification{
		ID:         id,
		UserID:     "u1",
		Title:      "title " + id,
		ReadStatus: models.ReadStatusUnread,
		SentAt:     &sentAt,
	}
}

func TestNotificationList_SuccessWritesThrough(t *testing.T) {
	d := setupDeps(t)
	ctx := context.Background()

	remote := []models.Notification{notification("n1", 200), notification("n2", 100)}
	d.client.listNotifications = func(ctx context.Context) (*api.Envelope[[]models.Notification], error) {
		return api.Success(remote, "notifications loaded"), nil
	}

	r := NewNotificationRepository(d.client, d.notifications, d.log)
	env, err := r.List(ctx)
	require.NoError(t, err)
	require.True(t, env.IsSuccess())
	require.NotNil(t, env.Data)
	assert.Len(t, *env.Data, 2)

	cached, err := d.notifications.List(ctx)
	require.NoError(t, err)
	assert.Len(t, cached, 2, "successful remote read must warm the cache")
}

func TestNotificationList_WriteThroughSurvivesCancellation(t *testing.T) {
	d := setupDeps(t)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	remote := []models.Notification{notification("n1", 100)}
	d.client.listNotifications = func(ctx context.Context) (*api.Envelope[[]models.Notification], error) {
		// The caller gives up while the response is in flight.
		cancel()
		return api.Success(remote, "notifications loaded"), nil
	}

	r := NewNotificationRepository(d.client, d.notifications, d.log)
	env, err := r.List(ctx)
	require.NoError(t, err)
	require.True(t, env.IsSuccess())

	cached, err := d.notifications.List(context.Background())
	require.NoError(t, err)
	require.Len(t, cached, 1, "cache warm must complete even after the caller cancels")
	assert.Equal(t, "n1", cached[0].ID)
}

func TestNotificationList_FallsBackToCache(t *testing.T) {
	d := setupDeps(t)
	ctx := context.Background()

	n := notification("n1", 100)
	require.NoError(t, d.notifications.Upsert(ctx, &n))

	d.client.listNotifications = func(ctx context.Context) (*api.Envelope[[]models.Notification], error) {
		return nil, api.NoConnectivity()
	}

	r := NewNotificationRepository(d.client, d.notifications, d.log)
	env, err := r.List(ctx)
	require.NoError(t, err)
	require.True(t, env.IsSuccess())
	require.NotNil(t, env.Data)
	require.Len(t, *env.Data, 1)
	assert.Equal(t, "n1", (*env.Data)[0].ID)
}

func TestNotificationList_EmptyCachePropagatesRemoteError(t *testing.T) {
	d := setupDeps(t)

	d.client.listNotifications = func(ctx context.Context) (*api.Envelope[[]models.Notification], error) {
		return nil, api.Timeout(context.DeadlineExceeded)
	}

	r := NewNotificationRepository(d.client, d.notifications, d.log)
	_, err := r.List(context.Background())
	require.Error(t, err)

	// The caller sees the remote failure, not a cache miss.
	assert.Equal(t, api.KindTimeout, api.KindOf(err))
}

func TestNotificationList_BusinessErrorSkipsCache(t *testing.T) {
	d := setupDeps(t)
	ctx := context.Background()

	d.client.listNotifications = func(ctx context.Context) (*api.Envelope[[]models.Notification], error) {
		return &api.Envelope[[]models.Notification]{Status: api.StatusError, Message: "account suspended"}, nil
	}

	r := NewNotificationRepository(d.client, d.notifications, d.log)
	env, err := r.List(ctx)
	require.NoError(t, err)
	require.False(t, env.IsSuccess())
	assert.Equal(t, "account suspended", env.Message)

	cached, err := d.notifications.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, cached, "business failures must not touch the cache")
}

func TestNotificationMarkRead_FlipsCachedRow(t *testing.T) {
	d := setupDeps(t)
	ctx := context.Background()

	n := notification("n1", 100)
	require.NoError(t, d.notifications.Upsert(ctx, &n))

	d.client.markNotificationRead = func(ctx context.Context, id string) (*api.Envelope[api.Empty], error) {
		assert.Equal(t, "n1", id)
		return api.Success(api.Empty{}, "marked as read"), nil
	}

	r := NewNotificationRepository(d.client, d.notifications, d.log)
	env, err := r.MarkRead(ctx, "n1")
	require.NoError(t, err)
	require.True(t, env.IsSuccess())

	got, err := d.notifications.Get(ctx, "n1")
	require.NoError(t, err)
	assert.Equal(t, models.ReadStatusRead, got.ReadStatus)
}

func TestNotificationMarkRead_UncachedRowStillSucceeds(t *testing.T) {
	d := setupDeps(t)

	d.client.markNotificationRead = func(ctx context.Context, id string) (*api.Envelope[api.Empty], error) {
		return api.Success(api.Empty{}, "marked as read"), nil
	}

	r := NewNotificationRepository(d.client, d.notifications, d.log)
	env, err := r.MarkRead(context.Background(), "never-cached")
	require.NoError(t, err)
	assert.True(t, env.IsSuccess())
}

func TestNotificationMarkRead_RemoteFailureLeavesCacheAlone(t *testing.T) {
	d := setupDeps(t)
	ctx := context.Background()

	n := notification("n1", 100)
	require.NoError(t, d.notifications.Upsert(ctx, &n))

	d.client.markNotificationRead = func(ctx context.Context, id string) (*api.Envelope[api.Empty], error) {
		return nil, api.Server(500, []byte("boom"))
	}

	r := NewNotificationRepository(d.client, d.notifications, d.log)
	_, err := r.MarkRead(ctx, "n1")
	require.Error(t, err)
	assert.Equal(t, api.KindServer, api.KindOf(err))

	got, err := d.notifications.Get(ctx, "n1")
	require.NoError(t, err)
	assert.Equal(t, models.ReadStatusUnread, got.ReadStatus, "failed remote write must have no local side effects")
}

func TestNotificationLocalList(t *testing.T) {
	d := setupDeps(t)
	ctx := context.Background()

	require.NoError(t, d.notifications.UpsertAll(ctx, []models.Notification{
		notification("a", 100),
		notification("b", 200),
	}))

	r := NewNotificationRepository(d.client, d.notifications, d.log)
	got, err := r.LocalList(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "b", got[0].ID, "local list keeps sent_at descending order")
}
