package users

import (
	"context"

	"github.com/devpal/newbase/internal/models"
)

// Repository is the local cache contract for User rows. All operations hit
// persisted storage and survive process restarts.
//
// Upsert is the write-through primitive (insert-or-replace by id); Update
// fails with common.ErrNotFound when the row is absent.
type Repository interface {
	Upsert(ctx context.Context, user *models.User) error
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id string) error

	// Get returns the cached row or common.ErrNotFound.
	Get(ctx context.Context, id string) (*models.User, error)

	// List returns all cached users. No ordering is guaranteed.
	List(ctx context.Context) ([]models.User, error)

	DeleteAll(ctx context.Context) error
}
