package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/readtrack/internal/cli"
	"github.com/at-ishikawa/readtrack/internal/config"
	"github.com/at-ishikawa/readtrack/internal/database"
	"github.com/at-ishikawa/readtrack/internal/readinglog"
	"github.com/at-ishikawa/readtrack/internal/reference"
)

func loadConfig() (*config.Config, error) {
	loader, err := config.NewConfigLoader(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to create config loader: %w", err)
	}
	return loader.Load()
}

// resolveUserID prefers the --user flag over the configured user
func resolveUserID(cfg *config.Config) string {
	if userID != "" {
		return userID
	}
	return cfg.User
}

// openRepository returns the repository of the configured storage backend and a function to release it
func openRepository(ctx context.Context, cfg *config.Config) (readinglog.Repository, func() error, error) {
	switch cfg.Storage.Backend {
	case config.StorageBackendMySQL:
		db, err := database.Connect(ctx, cfg.Database)
		if err != nil {
			return nil, nil, fmt.Errorf("database.Connect() > %w", err)
		}
		return readinglog.NewDBRepository(db), db.Close, nil
	default:
		return readinglog.NewYAMLRepository(cfg.Storage.Directory), func() error { return nil }, nil
	}
}

// newReportCLI wires the configured repository and reference table into a ReportCLI writing to the command output
func newReportCLI(cmd *cobra.Command, cfg *config.Config) (*cli.ReportCLI, func(), error) {
	repository, closeRepository, err := openRepository(cmd.Context(), cfg)
	if err != nil {
		return nil, nil, err
	}
	referenceLoader := reference.NewLoader(cfg.Comparison)

	closeAll := func() {
		_ = referenceLoader.Close()
		_ = closeRepository()
	}
	return cli.NewReportCLI(repository, referenceLoader, cmd.OutOrStdout()), closeAll, nil
}
