package cmd

import (
	"context"
	"fmt"
	"os"
	"os/user"

	"go.uber.org/zap"

	"github.com/ziadkadry99/portfolio/internal/audit"
	"github.com/ziadkadry99/portfolio/internal/config"
	"github.com/ziadkadry99/portfolio/internal/contact"
	"github.com/ziadkadry99/portfolio/internal/content"
	"github.com/ziadkadry99/portfolio/internal/db"
	"github.com/ziadkadry99/portfolio/internal/markdown"
)

// openDatabase opens the SQLite file under cfg.DataDir, creating the
// directory on first use.
func openDatabase(cfg *config.Config) (*db.DB, error) {
	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		return nil, fmt.Errorf("creating data dir %s: %w", cfg.DataDir, err)
	}
	database, err := db.Open(cfg.DatabasePath())
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	return database, nil
}

// loadContent reads cfg.ContentDir, or the embedded content when unset.
func loadContent(cfg *config.Config, md *markdown.Renderer) (*content.Library, error) {
	if cfg.ContentDir == "" {
		return content.Default(md)
	}
	lib, err := content.Load(os.DirFS(cfg.ContentDir), md)
	if err != nil {
		return nil, fmt.Errorf("loading content from %s: %w", cfg.ContentDir, err)
	}
	return lib, nil
}

// newSubmitter picks the contact backend for cfg.Submission.Mode.
func newSubmitter(cfg *config.Config, store *contact.Store, notifier contact.Notifier, logger *zap.Logger) contact.Submitter {
	if cfg.Submission.Mode == config.SubmissionSimulated {
		return contact.NewSimulatedSubmitter(cfg.Submission.Delay, logger)
	}
	return contact.NewStoreSubmitter(store, notifier, logger)
}

// recordCLIAction writes an audit entry for a command run from the shell.
// Failures are logged, never returned: the action itself already happened.
func recordCLIAction(ctx context.Context, store *audit.Store, action audit.Action, target, detail string) {
	err := store.Log(ctx, audit.Entry{
		ActorType: audit.ActorCLI,
		ActorID:   cliActor(),
		Action:    action,
		Target:    target,
		Detail:    detail,
	})
	if err != nil {
		logger.Warn("recording audit entry", zap.String("action", string(action)), zap.Error(err))
	}
}

func cliActor() string {
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	return os.Getenv("USER")
}
