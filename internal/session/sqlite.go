package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/devpal/newbase/internal/common"
	"github.com/devpal/newbase/internal/dbx"
	"github.com/devpal/newbase/internal/models"
)

// Session state lives in a key/value table in the cache database. Keeping it
// there (rather than a separate preferences file) gives login/logout real
// transactions, so readers never observe a half-written session.
const (
	keyIsLoggedIn = "is_logged_in"
	keyAuthToken  = "auth_token"
	keyUserData   = "user_data"
)

// SQLiteStore implements Store on the session table.
type SQLiteStore struct {
	db  *sql.DB
	now func() time.Time
}

func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db, now: time.Now}
}

func setValue(ctx context.Context, tx dbx.DBTX, key string, value []byte) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO session (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("failed to set session[%s]: %w", key, err)
	}
	return nil
}

func (s *SQLiteStore) getValue(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.db.QueryRowContext(ctx, `SELECT value FROM session WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNoSession
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session[%s]: %w", key, err)
	}
	return value, nil
}

func (s *SQLiteStore) Login(ctx context.Context, token string, user *models.User) error {
	snapshot := *user
	snapshot.Token = ""
	data, err := json.Marshal(&snapshot)
	if err != nil {
		return fmt.Errorf("failed to serialize user snapshot: %w", err)
	}

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := setValue(ctx, tx, keyIsLoggedIn, []byte("1")); err != nil {
			return err
		}
		if err := setValue(ctx, tx, keyAuthToken, []byte(token)); err != nil {
			return err
		}
		return setValue(ctx, tx, keyUserData, data)
	})
}

func (s *SQLiteStore) Logout(ctx context.Context) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM session`); err != nil {
			return fmt.Errorf("failed to clear session: %w", err)
		}
		return nil
	})
}

func (s *SQLiteStore) IsLoggedIn(ctx context.Context) (bool, error) {
	flag, err := s.getValue(ctx, keyIsLoggedIn)
	if errors.Is(err, common.ErrNoSession) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if string(flag) != "1" {
		return false, nil
	}

	token, err := s.AuthToken(ctx)
	if err != nil {
		if errors.Is(err, common.ErrNoSession) {
			return false, nil
		}
		return false, err
	}
	return !s.tokenExpired(token), nil
}

func (s *SQLiteStore) AuthToken(ctx context.Context) (string, error) {
	value, err := s.getValue(ctx, keyAuthToken)
	if err != nil {
		return "", err
	}
	if len(value) == 0 {
		return "", common.ErrNoSession
	}
	return string(value), nil
}

func (s *SQLiteStore) CurrentUser(ctx context.Context) (*models.User, error) {
	value, err := s.getValue(ctx, keyUserData)
	if err != nil {
		return nil, err
	}
	var user models.User
	if err := json.Unmarshal(value, &user); err != nil {
		return nil, fmt.Errorf("failed to decode user snapshot: %w", err)
	}
	return &user, nil
}

func (s *SQLiteStore) UpdateCurrentUser(ctx context.Context, user *models.User) error {
	snapshot := *user
	snapshot.Token = ""
	data, err := json.Marshal(&snapshot)
	if err != nil {
		return fmt.Errorf("failed to serialize user snapshot: %w", err)
	}
	return setValue(ctx, s.db, keyUserData, data)
}

// tokenExpired inspects the exp claim of a JWT without verifying its
// signature (the device does not hold the server key). Opaque tokens and
// tokens without exp never read as expired.
func (s *SQLiteStore) tokenExpired(token string) bool {
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return false
	}
	exp, err := parsed.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(s.now())
}
