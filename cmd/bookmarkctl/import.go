package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/redmonkez12/bookmark-api/cmd/bookmarkctl/ui"
	"github.com/redmonkez12/bookmark-api/internal/bookmark"
	"github.com/redmonkez12/bookmark-api/internal/importer"
	"github.com/redmonkez12/bookmark-api/internal/user"
)

func newImportCmd() *cobra.Command {
	importCmd := &cobra.Command{
		Use:   "import",
		Short: "Import bookmarks from a Homepage bookmarks.yaml file",
		RunE:  runImport,
	}
	importCmd.Flags().String("email", "", "Owner of the imported bookmarks")
	importCmd.Flags().String("file", "", "Path to bookmarks.yaml")
	importCmd.Flags().Bool("dry-run", false, "Print what would be imported without writing")
	_ = importCmd.MarkFlagRequired("email")
	_ = importCmd.MarkFlagRequired("file")

	return importCmd
}

func runImport(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()

	email, _ := cmd.Flags().GetString("email")
	file, _ := cmd.Flags().GetString("file")
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	parsed, err := importer.LoadFile(file)
	if err != nil {
		return err
	}

	res := importer.Map(parsed)
	for _, s := range res.Skipped {
		ui.PrintWarning(out, "skipped "+s.String())
	}

	if dryRun {
		ui.PrintTitle(out, fmt.Sprintf("%d bookmarks would be imported", len(res.Requests)))
		for _, r := range res.Requests {
			fmt.Fprintf(out, "  %s  %s\n", r.Title, r.Link)
		}
		return nil
	}

	if len(res.Requests) == 0 {
		ui.PrintHint(out, "nothing to import")
		return nil
	}

	_, db, err := openDatabase(cmd.Context())
	if err != nil {
		return err
	}
	defer db.Close()

	owner, err := user.NewRepository(db).GetByEmail(cmd.Context(), user.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return fmt.Errorf("no user with email %q", email)
		}
		return err
	}

	stored, err := bookmark.NewService(bookmark.NewRepository(db)).Import(cmd.Context(), owner.ID, res.Requests)
	if err != nil {
		return err
	}

	ui.PrintSuccess(out, fmt.Sprintf("Imported %d bookmarks for %s", len(stored), owner.Email))
	if len(res.Skipped) > 0 {
		ui.PrintHint(out, fmt.Sprintf("%d entries skipped", len(res.Skipped)))
	}
	return nil
}
