package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "bookmarkctl",
		Short:        "Operator tooling for the bookmark API",
		Long:         "Manage the bookmark API database: run migrations, create users and import bookmarks.",
		SilenceUsage: true,
	}

	rootCmd.AddCommand(
		newMigrateCmd(),
		newUserCmd(),
		newImportCmd(),
	)

	return rootCmd
}
