package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/readtrack/internal/config"
	"github.com/at-ishikawa/readtrack/internal/database"
	"github.com/at-ishikawa/readtrack/internal/datasync"
	"github.com/at-ishikawa/readtrack/internal/readinglog"
	"github.com/at-ishikawa/readtrack/schemas"
)

func newMigrateCommand() *cobra.Command {
	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema for the mysql storage backend",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if cfg.Storage.Backend != config.StorageBackendMySQL {
				return fmt.Errorf("migrate requires storage.backend %q, got %q", config.StorageBackendMySQL, cfg.Storage.Backend)
			}

			ctx := cmd.Context()
			db, err := database.Connect(ctx, cfg.Database)
			if err != nil {
				return fmt.Errorf("database.Connect() > %w", err)
			}
			defer func() {
				_ = db.Close()
			}()

			if err := database.Migrate(ctx, db, schemas.Migrations); err != nil {
				return fmt.Errorf("database.Migrate() > %w", err)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), "Migration complete!")
			return err
		},
	}

	migrateCmd.AddCommand(
		newSyncCommand("import-db", "Import the YAML reading log into the database", true),
		newSyncCommand("export-db", "Export the database reading log into YAML files", false),
	)
	return migrateCmd
}

func newSyncCommand(use string, short string, toDatabase bool) *cobra.Command {
	var dryRun bool
	var updateExisting bool

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			db, err := database.Connect(ctx, cfg.Database)
			if err != nil {
				return fmt.Errorf("database.Connect() > %w", err)
			}
			defer func() {
				_ = db.Close()
			}()

			var source, destination readinglog.Repository = readinglog.NewYAMLRepository(cfg.Storage.Directory), readinglog.NewDBRepository(db)
			if !toDatabase {
				source, destination = destination, source
			}
			return runSync(cmd, datasync.NewImporter(source, destination, cmd.OutOrStdout()), resolveUserID(cfg), datasync.ImportOptions{
				DryRun:         dryRun,
				UpdateExisting: updateExisting,
			})
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Preview changes without modifying the destination")
	cmd.Flags().BoolVar(&updateExisting, "update-existing", false, "Replace days that differ in the destination")
	return cmd
}

func runSync(cmd *cobra.Command, importer *datasync.Importer, userID string, opts datasync.ImportOptions) error {
	result, err := importer.Import(cmd.Context(), userID, opts)
	if err != nil {
		return fmt.Errorf("importer.Import() > %w", err)
	}

	output := cmd.OutOrStdout()
	_, _ = fmt.Fprintln(output, "\nImport Summary:")
	if opts.DryRun {
		_, _ = fmt.Fprintln(output, "  (dry-run mode, no changes made)")
	}
	_, err = fmt.Fprintf(output, "  Days: %d new, %d skipped, %d updated\n", result.EntriesNew, result.EntriesSkipped, result.EntriesUpdated)
	return err
}
