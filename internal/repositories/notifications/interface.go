package notifications

import (
	"context"

	"github.com/devpal/newbase/internal/models"
)

// Repository is the local cache contract for Notification rows.
type Repository interface {
	Upsert(ctx context.Context, n *models.Notification) error

	// UpsertAll writes the whole batch in one transaction; later elements
	// win per id. A failed element leaves none of the batch applied.
	UpsertAll(ctx context.Context, ns []models.Notification) error

	// Update rewrites an existing row or returns common.ErrNotFound.
	Update(ctx context.Context, n *models.Notification) error

	// MarkRead flips a row's read status or returns common.ErrNotFound.
	MarkRead(ctx context.Context, id string) error

	Delete(ctx context.Context, id string) error

	// Get returns the cached row or common.ErrNotFound.
	Get(ctx context.Context, id string) (*models.Notification, error)

	// List returns all cached notifications ordered by sent_at descending.
	List(ctx context.Context) ([]models.Notification, error)

	DeleteAll(ctx context.Context) error
}
