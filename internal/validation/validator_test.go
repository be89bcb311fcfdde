package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type signupDTO struct {
	Email    string  `json:"email" validate:"required,email"`
	Password string  `json:"password" validate:"required"`
	Link     *string `json:"link,omitempty" validate:"omitempty,url"`
	Title    string  `json:"title" validate:"max=5"`
}

func TestStructReportsJSONFieldNames(t *testing.T) {
	bad := "not a url"
	err := Struct(signupDTO{Email: "nope", Link: &bad, Title: "too long title"})
	require.Error(t, err)

	var verrs Errors
	require.True(t, errors.As(err, &verrs))
	assert.Equal(t, "must be a valid email", verrs["email"])
	assert.Equal(t, "is required", verrs["password"])
	assert.Equal(t, "must be a valid URL", verrs["link"])
	assert.Equal(t, "must be at most 5 characters long", verrs["title"])
}

func TestStructPasses(t *testing.T) {
	assert.NoError(t, Struct(signupDTO{Email: "a@b.co", Password: "x"}))
}

func TestErrorsMessage(t *testing.T) {
	err := Errors{"email": "is required"}
	assert.Equal(t, "validation failed: email is required", err.Error())
}

func TestVar(t *testing.T) {
	assert.NoError(t, Var("test@gmail.com", "required,email"))

	err := Var("nope", "required,email")
	require.Error(t, err)
	assert.Equal(t, "must be a valid email", err.Error())

	err = Var("", "required")
	require.Error(t, err)
	assert.Equal(t, "is required", err.Error())
}
