package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/devpal/newbase/internal/common"
	"github.com/devpal/newbase/internal/dbx"
	"github.com/devpal/newbase/internal/models"
)

const userColumns = `id, username, email, first_name, last_name, phone_number,
	profile_picture_url, bio, street_address, city, state_province,
	zip_postal_code, country, locale, role_id, account_status,
	is_email_verified, email_verified_at, is_phone_verified, phone_verified_at,
	two_factor_enabled, login_attempts, locked_until, last_login_at,
	last_activity_at, created_at, updated_at`

// SQLiteRepository implements Repository on a DBTX (either *sql.DB or *sql.Tx).
type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func userArgs(u *models.User) []any {
	return []any{
		u.ID, u.Username, u.Email, u.FirstName, u.LastName, u.PhoneNumber,
		u.ProfilePictureURL, u.Bio, u.StreetAddress, u.City, u.StateProvince,
		u.ZipPostalCode, u.Country, u.Locale, u.RoleID, u.AccountStatus,
		u.IsEmailVerified, u.EmailVerifiedAt, u.IsPhoneVerified, u.PhoneVerifiedAt,
		u.TwoFactorEnabled, u.LoginAttempts, u.LockedUntil, u.LastLoginAt,
		u.LastActivityAt, u.CreatedAt, u.UpdatedAt,
	}
}

func scanUser(row interface{ Scan(...any) error }) (*models.User, error) {
	u := &models.User{}
	err := row.Scan(
		&u.ID, &u.Username, &u.Email, &u.FirstName, &u.LastName, &u.PhoneNumber,
		&u.ProfilePictureURL, &u.Bio, &u.StreetAddress, &u.City, &u.StateProvince,
		&u.ZipPostalCode, &u.Country, &u.Locale, &u.RoleID, &u.AccountStatus,
		&u.IsEmailVerified, &u.EmailVerifiedAt, &u.IsPhoneVerified, &u.PhoneVerifiedAt,
		&u.TwoFactorEnabled, &u.LoginAttempts, &u.LockedUntil, &u.LastLoginAt,
		&u.LastActivityAt, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return u, nil
}

// Upsert inserts or replaces the row keyed by id. The transient token field
// is never stored.
func (r *SQLiteRepository) Upsert(ctx context.Context, u *models.User) error {
	query := `INSERT OR REPLACE INTO users (` + userColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	if _, err := r.db.ExecContext(ctx, query, userArgs(u)...); err != nil {
		return fmt.Errorf("failed to upsert user: %w", err)
	}
	return nil
}

// Update rewrites an existing row and reports common.ErrNotFound when no row
// with that id exists.
func (r *SQLiteRepository) Update(ctx context.Context, u *models.User) error {
	query := `UPDATE users SET username=?, email=?, first_name=?, last_name=?,
		phone_number=?, profile_picture_url=?, bio=?, street_address=?, city=?,
		state_province=?, zip_postal_code=?, country=?, locale=?, role_id=?,
		account_status=?, is_email_verified=?, email_verified_at=?,
		is_phone_verified=?, phone_verified_at=?, two_factor_enabled=?,
		login_attempts=?, locked_until=?, last_login_at=?, last_activity_at=?,
		created_at=?, updated_at=? WHERE id=?`
	args := append(userArgs(u)[1:], u.ID)
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
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
	if _, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id=?`, id); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) Get(ctx context.Context, id string) (*models.User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id=?`, id)
	u, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return u, nil
}

func (r *SQLiteRepository) List(ctx context.Context) ([]models.User, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+userColumns+` FROM users`)
	if err != nil {
		return nil, fmt.Errorf("failed to select users: %w", err)
	}
	defer rows.Close()

	var result []models.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *SQLiteRepository) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM users`); err != nil {
		return fmt.Errorf("failed to delete users: %w", err)
	}
	return nil
}
