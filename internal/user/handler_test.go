package user

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redmonkez12/bookmark-api/internal/database/dbtest"
	"github.com/redmonkez12/bookmark-api/internal/identity"
)

func newTestHandler(t *testing.T) (*Handler, *Repository) {
	t.Helper()
	repo := NewRepository(dbtest.New(t))
	return NewHandler(NewService(repo)), repo
}

func authed(req *http.Request, id uuid.UUID) *http.Request {
	return req.WithContext(identity.WithUser(req.Context(), id, "test@gmail.com"))
}

func TestHandlerGetMe(t *testing.T) {
	h, repo := newTestHandler(t)
	u, err := repo.Create(context.Background(), "test@gmail.com", "secret-hash")
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	h.GetMe(rec, authed(httptest.NewRequest(http.MethodGet, "/users/me", nil), u.ID))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "secret-hash")

	var got User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, u.ID, got.ID)
	assert.Equal(t, "test@gmail.com", got.Email)
}

func TestHandlerGetMeUnknownUser(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := httptest.NewRecorder()
	h.GetMe(rec, authed(httptest.NewRequest(http.MethodGet, "/users/me", nil), uuid.New()))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = httptest.NewRecorder()
	h.GetMe(rec, httptest.NewRequest(http.MethodGet, "/users/me", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestHandlerEdit(t *testing.T) {
	h, repo := newTestHandler(t)
	u, err := repo.Create(context.Background(), "test@gmail.com", "hash")
	require.NoError(t, err)

	body := `{"firstName":"Herpan","lastName":"Safari"}`
	rec := httptest.NewRecorder()
	h.Edit(rec, authed(httptest.NewRequest(http.MethodPatch, "/users", strings.NewReader(body)), u.ID))

	require.Equal(t, http.StatusOK, rec.Code)
	var got User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.NotNil(t, got.FirstName)
	require.NotNil(t, got.LastName)
	assert.Equal(t, "Herpan", *got.FirstName)
	assert.Equal(t, "Safari", *got.LastName)
	assert.Equal(t, "test@gmail.com", got.Email)
}

func TestHandlerEditValidation(t *testing.T) {
	h, repo := newTestHandler(t)
	u, err := repo.Create(context.Background(), "test@gmail.com", "hash")
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	h.Edit(rec, authed(httptest.NewRequest(http.MethodPatch, "/users", strings.NewReader(`{"email":"nope"}`)), u.ID))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandlerEditEmailTaken(t *testing.T) {
	h, repo := newTestHandler(t)
	ctx := context.Background()
	_, err := repo.Create(ctx, "taken@example.com", "hash")
	require.NoError(t, err)
	u, err := repo.Create(ctx, "test@gmail.com", "hash")
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	body := `{"email":"Taken@Example.com"}`
	h.Edit(rec, authed(httptest.NewRequest(http.MethodPatch, "/users", strings.NewReader(body)), u.ID))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
