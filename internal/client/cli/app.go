package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/cbuclub/internal/client/client"
	"github.com/dmitrijs2005/cbuclub/internal/client/config"
	"github.com/dmitrijs2005/cbuclub/internal/client/services"
	"github.com/dmitrijs2005/cbuclub/internal/client/session"
	"github.com/dmitrijs2005/cbuclub/internal/client/storage"
	"github.com/dmitrijs2005/cbuclub/internal/common"
	"github.com/dmitrijs2005/cbuclub/internal/logging"
)

type App struct {
	config          *config.Config
	db              *sql.DB
	store           *session.Store
	authService     services.AuthService
	mailService     services.MailService
	identityService services.IdentityService
	log             logging.Logger
	reader          *bufio.Reader
	out             io.Writer

	// authenticated is set by a successful login (or a session restored
	// from one) and cleared by logout. A session that signup filled in is
	// not a login.
	authenticated bool
}

// NewApp opens local storage, restores the persisted session and builds the
// services against the configured backend.
func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	db, err := storage.Open(ctx, c.StoragePath)
	if err != nil {
		return nil, fmt.Errorf("error initializing storage: %w", err)
	}
	st := storage.NewSQLiteStorage(db)

	store := session.New(st,
		session.WithLinkedKeys(common.AccessTokenStorageKey),
		session.WithLogger(log),
	)
	if err := store.Load(ctx); err != nil {
		log.Warn(ctx, "persisted session ignored", "error", err)
	}

	apiClient, err := client.NewHTTPClient(c.APIBaseURL,
		client.WithTimeout(c.RequestTimeout),
		client.WithLogger(log),
		client.WithTokenStore(st),
	)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return &App{
		config:          c,
		db:              db,
		store:           store,
		authService:     services.NewAuthService(apiClient, store, log),
		mailService:     services.NewMailService(apiClient, store, log),
		identityService: services.NewIdentityService(apiClient, store, log),
		log:             log,
		reader:          bufio.NewReader(os.Stdin),
		out:             os.Stdout,
		authenticated:   store.Snapshot().LoggedIn(),
	}, nil
}

// Run starts the REPL and releases local storage when it returns.
func (a *App) Run(ctx context.Context) {
	defer func() {
		if err := a.db.Close(); err != nil {
			a.log.Warn(ctx, "closing storage failed", "error", err)
		}
	}()
	a.Root(ctx)
}

func (a *App) isLoggedIn() bool {
	return a.authenticated && a.store.Snapshot().LoggedIn()
}

// say prints a user-facing line.
func (a *App) say(args ...any) {
	fmt.Fprintln(a.out, args...)
}

// fail prints the user-facing form of err and returns err.
func (a *App) fail(err error) error {
	a.say(services.UserMessage(err))
	return err
}
