package ui

import (
	"errors"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/redmonkez12/bookmark-api/internal/validation"
)

// Credentials is the result of the user creation form.
type Credentials struct {
	Email    string `json:"email" validate:"required,email,max=254"`
	Password string `json:"password" validate:"required"`
}

// RunUserForm asks for the fields of c that are still empty.
func RunUserForm(c *Credentials) error {
	var fields []huh.Field

	if c.Email == "" {
		fields = append(fields, huh.NewInput().
			Title("Email").
			Placeholder("you@example.com").
			Value(&c.Email).
			Validate(func(s string) error {
				return validation.Var(strings.TrimSpace(s), "required,email,max=254")
			}))
	}

	if c.Password == "" {
		var confirm string
		fields = append(fields,
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&c.Password).
				Validate(func(s string) error {
					if s == "" {
						return errors.New("password is required")
					}
					return nil
				}),
			huh.NewInput().
				Title("Confirm password").
				EchoMode(huh.EchoModePassword).
				Value(&confirm).
				Validate(func(s string) error {
					if s != c.Password {
						return errors.New("passwords do not match")
					}
					return nil
				}),
		)
	}

	if len(fields) == 0 {
		return nil
	}

	return huh.NewForm(huh.NewGroup(fields...)).
		WithTheme(huh.ThemeCatppuccin()).
		Run()
}
