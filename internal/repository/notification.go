package repository

import (
	"context"
	"errors"

	"github.com/devpal/newbase/internal/api"
	"github.com/devpal/newbase/internal/common"
	"github.com/devpal/newbase/internal/logging"
	"github.com/devpal/newbase/internal/models"
	"github.com/devpal/newbase/internal/repositories/notifications"
)

// NotificationRepository orchestrates notification reads and the mark-read
// write.
type NotificationRepository struct {
	client api.Client
	local  notifications.Repository
	log    logging.Logger
}

func NewNotificationRepository(client api.Client, local notifications.Repository, log logging.Logger) *NotificationRepository {
	return &NotificationRepository{
		client: client,
		local:  local,
		log:    log.With("component", "notification_repository"),
	}
}

// List fetches notifications from the server, writing them through to the
// cache on success. When the remote call fails at the transport level, the
// cached rows are served instead (sent_at descending). An empty cache counts
// as a miss, so the caller sees the original remote failure rather than a
// hollow success.
func (r *NotificationRepository) List(ctx context.Context) (*api.Envelope[[]models.Notification], error) {
	return readWithFallback(ctx, r.log,
		r.client.ListNotifications,
		func(ctx context.Context) ([]models.Notification, error) {
			cached, err := r.local.List(ctx)
			if err != nil {
				return nil, err
			}
			if len(cached) == 0 {
				return nil, common.ErrNotFound
			}
			return cached, nil
		},
		r.local.UpsertAll,
	)
}

// MarkRead marks a notification read on the server and, on success, flips the
// cached row's read status so the list stays consistent offline. The local
// update is best-effort; a row missing from the cache is not an error.
func (r *NotificationRepository) MarkRead(ctx context.Context, id string) (*api.Envelope[api.Empty], error) {
	env, err := r.client.MarkNotificationRead(ctx, id)
	if err != nil {
		return nil, err
	}

	if env.IsSuccess() {
		if err := r.local.MarkRead(context.WithoutCancel(ctx), id); err != nil && !errors.Is(err, common.ErrNotFound) {
			r.log.Warn(ctx, "local read-status update failed", "notification_id", id, "err", err)
		}
	}
	return env, nil
}

// LocalList returns the cached notifications without touching the network.
func (r *NotificationRepository) LocalList(ctx context.Context) ([]models.Notification, error) {
	return r.local.List(ctx)
}

// SaveLocally stores one notification in the cache directly.
func (r *NotificationRepository) SaveLocally(ctx context.Context, n *models.Notification) error {
	return r.local.Upsert(ctx, n)
}

// SaveAllLocally stores a batch of notifications in the cache directly.
func (r *NotificationRepository) SaveAllLocally(ctx context.Context, ns []models.Notification) error {
	return r.local.UpsertAll(ctx, ns)
}
