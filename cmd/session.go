package cmd

import (
	"context"
	"fmt"
	"os"

	"realty-inventory/core/config"
	"realty-inventory/core/database"
	"realty-inventory/core/foldersync"
	"realty-inventory/core/history"
	"realty-inventory/core/logger"
	"realty-inventory/core/remote"
	"realty-inventory/core/storage"

	"go.uber.org/zap"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/drive/v3"
)

// session holds the components every command needs.
type session struct {
	cfg      *config.Config
	logger   *zap.Logger
	remote   *remote.Client
	recorder history.Recorder
	// history is nil when no database is reachable.
	history *history.GormRecorder
	engine  *foldersync.Engine
}

// newSession loads configuration and wires the remote client, the optional sync
// history and the sync engine.
func newSession(ctx context.Context) (*session, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.RequireFolders(); err != nil {
		return nil, err
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	provider, err := newProvider(ctx, cfg)
	if err != nil {
		return nil, err
	}
	logg.Info("Remote backend ready",
		zap.String("provider", provider.Name()),
		zap.Int("folders", len(cfg.Folders)))

	s := &session{
		cfg:      cfg,
		logger:   logg,
		remote:   remote.NewClient(provider, cfg.Remote, logg),
		recorder: history.Nop{},
	}

	// Sync history is optional
	if db, err := database.Connect(cfg.Database); err != nil {
		logg.Warn("Optional database connection failed, sync history disabled", zap.Error(err))
	} else {
		rec := history.NewGormRecorder(db)
		if err := rec.Migrate(ctx); err != nil {
			logg.Warn("Sync history disabled", zap.Error(err))
		} else {
			s.history = rec
			s.recorder = rec
			logg.Info("Connected to history database", zap.String("driver", cfg.Database.Driver))
		}
	}

	s.engine = foldersync.NewEngine(s.remote, cfg.Inventory.SyncConfig(), logg, foldersync.WithRecorder(s.recorder))
	return s, nil
}

// newProvider builds the configured remote backend.
func newProvider(ctx context.Context, cfg *config.Config) (remote.Provider, error) {
	switch cfg.Remote.Provider {
	case remote.ProviderDrive:
		data, err := os.ReadFile(cfg.Remote.DriveCredentialsFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read drive credentials: %w", err)
		}
		creds, err := google.CredentialsFromJSON(ctx, data, drive.DriveReadonlyScope)
		if err != nil {
			return nil, fmt.Errorf("failed to parse drive credentials: %w", err)
		}
		p, err := remote.NewDriveProviderFromTokenSource(ctx, creds.TokenSource)
		if err != nil {
			return nil, fmt.Errorf("failed to create drive client: %w", err)
		}
		return p, nil
	default:
		client, err := storage.NewClient(cfg.Storage)
		if err != nil {
			return nil, fmt.Errorf("failed to create storage client: %w", err)
		}
		return remote.NewStorageProvider(client, cfg.Storage.Bucket), nil
	}
}
