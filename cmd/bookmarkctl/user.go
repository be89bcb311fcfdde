package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/redmonkez12/bookmark-api/cmd/bookmarkctl/ui"
	"github.com/redmonkez12/bookmark-api/internal/auth"
	"github.com/redmonkez12/bookmark-api/internal/user"
	"github.com/redmonkez12/bookmark-api/internal/validation"
)

func newUserCmd() *cobra.Command {
	userCmd := &cobra.Command{
		Use:   "user",
		Short: "Manage users",
	}

	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create a user",
		Long:  "Create a user. Missing --email or --password are asked for interactively unless --no-input is set.",
		RunE:  runUserCreate,
	}
	createCmd.Flags().String("email", "", "Email address")
	createCmd.Flags().String("password", "", "Password")
	createCmd.Flags().Bool("no-input", false, "Fail instead of prompting for missing fields")

	userCmd.AddCommand(createCmd)
	return userCmd
}

func runUserCreate(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()

	email, _ := cmd.Flags().GetString("email")
	password, _ := cmd.Flags().GetString("password")
	noInput, _ := cmd.Flags().GetBool("no-input")

	creds := ui.Credentials{Email: user.NormalizeEmail(email), Password: password}
	if !noInput {
		if err := ui.RunUserForm(&creds); err != nil {
			return fmt.Errorf("form cancelled: %w", err)
		}
		creds.Email = user.NormalizeEmail(creds.Email)
	}

	if err := validation.Struct(&creds); err != nil {
		ui.PrintError(out, err.Error())
		return err
	}

	_, db, err := openDatabase(cmd.Context())
	if err != nil {
		return err
	}
	defer db.Close()

	hash, err := auth.NewPasswordHasher(auth.DefaultArgon2Params).Hash(creds.Password)
	if err != nil {
		return err
	}

	created, err := user.NewRepository(db).Create(cmd.Context(), creds.Email, hash)
	if err != nil {
		if errors.Is(err, user.ErrDuplicateEmail) {
			ui.PrintError(out, "a user with this email already exists")
		}
		return err
	}

	ui.PrintSuccess(out, "User created")
	ui.PrintField(out, "id", created.ID)
	ui.PrintField(out, "email", created.Email)
	return nil
}
