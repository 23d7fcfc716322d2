// Package cli implements the interactive EduFolio console: a REPL over the
// session store and the portfolio services.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"

	"github.com/Rachitneema03/edufolio/internal/config"
	"github.com/Rachitneema03/edufolio/internal/logging"
	"github.com/Rachitneema03/edufolio/internal/portfolio"
	"github.com/Rachitneema03/edufolio/internal/session"
	"github.com/Rachitneema03/edufolio/internal/storage"
	"github.com/Rachitneema03/edufolio/internal/storage/boltkv"
	"github.com/Rachitneema03/edufolio/internal/storage/sqlitekv"

	_ "modernc.org/sqlite"
)

type App struct {
	config *config.Config
	log    logging.Logger
	store  *session.Store
	svc    portfolio.Service
	reader *bufio.Reader

	// closeFn releases the persistent backend, if any.
	closeFn func() error
}

// NewApp wires the configured storage backend, the session store, and the
// portfolio service into a ready-to-run console app.
func NewApp(cfg *config.Config, log logging.Logger) (*App, error) {
	ctx := context.Background()

	var backend storage.Backend
	var closeFn func() error

	switch cfg.Backend {
	case config.BackendMemory:
		backend = storage.NewMemoryBackend()
	case config.BackendSQLite:
		b, db, err := sqlitekv.Open(ctx, cfg.StoragePath)
		if err != nil {
			return nil, fmt.Errorf("failed to init sqlite backend: %w", err)
		}
		backend = b
		closeFn = db.Close
	case config.BackendBolt:
		b, err := boltkv.Open(cfg.StoragePath)
		if err != nil {
			return nil, fmt.Errorf("failed to init bolt backend: %w", err)
		}
		backend = b
		closeFn = b.Close
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}

	store := session.New(backend, log, cfg.SessionTTL, nil)

	return &App{
		config:  cfg,
		log:     log,
		store:   store,
		svc:     portfolio.NewService(store),
		reader:  bufio.NewReader(os.Stdin),
		closeFn: closeFn,
	}, nil
}

// Run drives the REPL until the user exits, then releases the backend.
func (a *App) Run(ctx context.Context) {
	defer a.Close()

	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner)
}

// Close releases the persistent backend, if any.
func (a *App) Close() {
	if a.closeFn != nil {
		if err := a.closeFn(); err != nil {
			a.log.Error(context.Background(), "failed to close backend", "error", err)
		}
	}
}

func (a *App) isLoggedIn() bool {
	return a.store.IsAuthenticated(context.Background())
}

func (a *App) getStatus() string {
	cur, err := a.store.CurrentSession(context.Background())
	if err != nil || cur == nil {
		return ""
	}
	return fmt.Sprintf("(%s)", cur.Identity)
}
