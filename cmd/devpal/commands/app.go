package commands

import (
	"context"
	"database/sql"

	_ "modernc.org/sqlite"

	"github.com/devpal/newbase/internal/api"
	"github.com/devpal/newbase/internal/config"
	"github.com/devpal/newbase/internal/localdb"
	"github.com/devpal/newbase/internal/logging"
	"github.com/devpal/newbase/internal/netx"
	"github.com/devpal/newbase/internal/repositories/notifications"
	"github.com/devpal/newbase/internal/repositories/users"
	"github.com/devpal/newbase/internal/repository"
	"github.com/devpal/newbase/internal/session"
)

// app holds the wired dependency graph for one CLI invocation.
type app struct {
	cfg           *config.Config
	db            *sql.DB
	Session       session.Store
	Users         *repository.UserRepository
	Notifications *repository.NotificationRepository
}

// newApp resolves config (defaults, JSON file, flags), opens the cache
// database and wires the repositories.
func newApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, err
	}
	if flagAPI != "" {
		cfg.APIBaseURL = flagAPI
	}
	if flagDB != "" {
		cfg.DatabasePath = flagDB
	}

	db, err := localdb.Open(ctx, cfg.DatabasePath)
	if err != nil {
		return nil, err
	}

	log := logging.NewDefault()
	sess := session.NewSQLiteStore(db)

	checker, err := netx.NewDialChecker(cfg.APIBaseURL, cfg.ProbeTimeout)
	if err != nil {
		db.Close()
		return nil, err
	}

	client := api.NewHTTPClient(cfg.APIBaseURL, cfg.RequestTimeout, checker, sess, log)

	userRepo := repository.NewUserRepository(client, users.NewSQLiteRepository(db), sess, log)
	notifRepo := repository.NewNotificationRepository(client, notifications.NewSQLiteRepository(db), log)

	return &app{
		cfg:           cfg,
		db:            db,
		Session:       sess,
		Users:         userRepo,
		Notifications: notifRepo,
	}, nil
}

func (a *app) Close() error {
	return a.db.Close()
}
