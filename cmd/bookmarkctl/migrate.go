package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/redmonkez12/bookmark-api/cmd/bookmarkctl/ui"
	"github.com/redmonkez12/bookmark-api/internal/config"
	"github.com/redmonkez12/bookmark-api/internal/database"
)

var errSQLiteNoMigrations = errors.New("sqlite schemas are created from the models; only 'migrate up' applies")

func newMigrateCmd() *cobra.Command {
	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}

	migrateCmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all pending migrations",
			RunE:  runMigrateUp,
		},
		&cobra.Command{
			Use:   "down",
			Short: "Roll back the last migration",
			RunE:  runMigrateDown,
		},
		&cobra.Command{
			Use:   "version",
			Short: "Print the current schema version",
			RunE:  runMigrateVersion,
		},
		&cobra.Command{
			Use:   "list",
			Short: "List the embedded migration files",
			RunE:  runMigrateList,
		},
	)

	return migrateCmd
}

// withMigrator opens the database and hands a migrator to fn. For SQLite
// fn receives nil since openDatabase has already created the schema.
func withMigrator(cmd *cobra.Command, fn func(*database.Migrator) error) error {
	cfg, db, err := openDatabase(cmd.Context())
	if err != nil {
		return err
	}
	defer db.Close()

	if cfg.Database.Driver == config.DriverSQLite {
		return fn(nil)
	}

	m, err := database.NewMigrator(db.DB)
	if err != nil {
		return err
	}
	return fn(m)
}

func runMigrateUp(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()
	return withMigrator(cmd, func(m *database.Migrator) error {
		if m == nil {
			ui.PrintSuccess(out, "SQLite schema is up to date")
			return nil
		}
		if err := m.Up(); err != nil {
			return err
		}
		version, _, err := m.Version()
		if err != nil {
			return err
		}
		ui.PrintSuccess(out, fmt.Sprintf("Migrated to version %d", version))
		return nil
	})
}

func runMigrateDown(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()
	return withMigrator(cmd, func(m *database.Migrator) error {
		if m == nil {
			return errSQLiteNoMigrations
		}
		if err := m.Down(); err != nil {
			return err
		}
		version, _, err := m.Version()
		if err != nil {
			return err
		}
		ui.PrintSuccess(out, fmt.Sprintf("Rolled back to version %d", version))
		return nil
	})
}

func runMigrateVersion(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()
	return withMigrator(cmd, func(m *database.Migrator) error {
		if m == nil {
			return errSQLiteNoMigrations
		}
		version, dirty, err := m.Version()
		if err != nil {
			return err
		}
		ui.PrintField(out, "version", version)
		ui.PrintField(out, "dirty", dirty)
		return nil
	})
}

func runMigrateList(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()

	files, err := database.MigrationFiles()
	if err != nil {
		return fmt.Errorf("failed to list migrations: %w", err)
	}

	ui.PrintTitle(out, "Embedded migrations")
	for _, f := range files {
		fmt.Fprintln(out, "  "+f)
	}
	return nil
}
