package notifications

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/devpal/newbase/internal/common"
	"github.com/devpal/newbase/internal/dbx"
	"github.com/devpal/newbase/internal/models"
)

const notificationColumns = `id, user_id, type, category, priority,
	delivery_channel, title, body, short_description, image_url, action_type,
	action_value, payload, read_status, sent_at, delivered_at, created_at,
	updated_at`

// SQLiteRepository implements Repository on the cache database handle. It
// owns a *sql.DB rather than a DBTX because the batch write opens its own
// transaction.
type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func notificationArgs(n *models.Notification) []any {
	return []any{
		n.ID, n.UserID, n.Type, n.Category, n.Priority,
		n.DeliveryChannel, n.Title, n.Body, n.ShortDescription, n.ImageURL,
		n.ActionType, n.ActionValue, n.Payload, n.ReadStatus, n.SentAt,
		n.DeliveredAt, n.CreatedAt, n.UpdatedAt,
	}
}

func scanNotification(row interface{ Scan(...any) error }) (*models.Notification, error) {
	n := &models.Notification{}
	err := row.Scan(
		&n.ID, &n.UserID, &n.Type, &n.Category, &n.Priority,
		&n.DeliveryChannel, &n.Title, &n.Body, &n.ShortDescription, &n.ImageURL,
		&n.ActionType, &n.ActionValue, &n.Payload, &n.ReadStatus, &n.SentAt,
		&n.DeliveredAt, &n.CreatedAt, &n.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return n, nil
}

func upsert(ctx context.Context, db dbx.DBTX, n *models.Notification) error {
	query := `INSERT OR REPLACE INTO notifications (` + notificationColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	if _, err := db.ExecContext(ctx, query, notificationArgs(n)...); err != nil {
		return fmt.Errorf("failed to upsert notification: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) Upsert(ctx context.Context, n *models.Notification) error {
	return upsert(ctx, r.db, n)
}

// UpsertAll writes the batch inside one transaction: a reader sees either the
// whole batch or none of it, and a failed element rolls the batch back.
func (r *SQLiteRepository) UpsertAll(ctx context.Context, ns []models.Notification) error {
	return dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		for i := range ns {
			if err := upsert(ctx, tx, &ns[i]); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *SQLiteRepository) Update(ctx context.Context, n *models.Notification) error {
	query := `UPDATE notifications SET user_id=?, type=?, category=?,
		priority=?, delivery_channel=?, title=?, body=?, short_description=?,
		image_url=?, action_type=?, action_value=?, payload=?, read_status=?,
		sent_at=?, delivered_at=?, created_at=?, updated_at=? WHERE id=?`
	args := append(notificationArgs(n)[1:], n.ID)
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update notification: %w", err)
	}
	ra, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if ra == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *SQLiteRepository) MarkRead(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE notifications SET read_status=? WHERE id=?`, models.ReadStatusRead, id)
	if err != nil {
		return fmt.Errorf("failed to mark notification read: %w", err)
	}
	ra, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if ra == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM notifications WHERE id=?`, id); err != nil {
		return fmt.Errorf("failed to delete notification: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) Get(ctx context.Context, id string) (*models.Notification, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+notificationColumns+` FROM notifications WHERE id=?`, id)
	n, err := scanNotification(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get notification: %w", err)
	}
	return n, nil
}

func (r *SQLiteRepository) List(ctx context.Context) ([]models.Notification, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+notificationColumns+` FROM notifications ORDER BY sent_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to select notifications: %w", err)
	}
	defer rows.Close()

	var result []models.Notification
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *n)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *SQLiteRepository) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM notifications`); err != nil {
		return fmt.Errorf("failed to delete notifications: %w", err)
	}
	return nil
}
