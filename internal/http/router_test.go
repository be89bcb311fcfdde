package http

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"

	"github.com/redmonkez12/bookmark-api/internal/auth"
	"github.com/redmonkez12/bookmark-api/internal/bookmark"
	"github.com/redmonkez12/bookmark-api/internal/config"
	"github.com/redmonkez12/bookmark-api/internal/database/dbtest"
	"github.com/redmonkez12/bookmark-api/internal/logging"
	"github.com/redmonkez12/bookmark-api/internal/ratelimit"
	"github.com/redmonkez12/bookmark-api/internal/user"
)

type testAPI struct {
	t      *testing.T
	server *httptest.Server
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	return newTestAPIWithDB(t, dbtest.New(t))
}

func newTestAPIWithDB(t *testing.T, db *bun.DB) *testAPI {
	t.Helper()

	mr := miniredis.RunT(t)
	redisClient := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = redisClient.Close() })

	cfg := &config.Config{
		Server: config.ServerConfig{Env: "prod"},
	}

	tokens, err := auth.NewPasetoService([]byte("0123456789abcdef0123456789abcdef"))
	require.NoError(t, err)

	userRepo := user.NewRepository(db)
	hasher := auth.NewPasswordHasher(auth.Argon2Params{Time: 1, Memory: 1024, Threads: 1, KeyLen: 32, SaltLen: 16})
	authService, err := auth.NewService(userRepo, tokens, hasher, time.Minute)
	require.NoError(t, err)

	router := NewRouter(cfg, Handlers{
		Auth:           auth.NewHandler(authService, ratelimit.NewLimiter(redisClient, 100, time.Minute)),
		AuthMiddleware: auth.NewMiddleware(tokens),
		User:           user.NewHandler(user.NewService(userRepo)),
		Bookmark:       bookmark.NewHandler(bookmark.NewService(bookmark.NewRepository(db))),
		DB:             db,
	}, logging.NewNop())

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return &testAPI{t: t, server: server}
}

// do sends body (marshalled unless it is already a string) and returns the
// status and raw response.
func (a *testAPI) do(method, path, token string, body any) (int, []byte) {
	a.t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(a.t, err)
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, a.server.URL+path, reader)
	require.NoError(a.t, err)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := a.server.Client().Do(req)
	require.NoError(a.t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(a.t, err)
	return resp.StatusCode, raw
}

func (a *testAPI) signup(email, password string) string {
	a.t.Helper()
	status, raw := a.do(http.MethodPost, "/auth/signup", "", map[string]string{"email": email, "password": password})
	require.Equal(a.t, http.StatusCreated, status, string(raw))

	var resp auth.AuthResponse
	require.NoError(a.t, json.Unmarshal(raw, &resp))
	require.NotEmpty(a.t, resp.AccessToken)
	return resp.AccessToken
}

func TestAPIFlow(t *testing.T) {
	api := newTestAPI(t)
	creds := map[string]string{"email": "test@gmail.com", "password": "test"}

	// Auth
	for name, body := range map[string]any{
		"empty email":    map[string]string{"password": "test"},
		"empty password": map[string]string{"email": "test@gmail.com"},
		"no body":        nil,
	} {
		status, _ := api.do(http.MethodPost, "/auth/signup", "", body)
		assert.Equal(t, http.StatusBadRequest, status, "signup %s", name)

		status, _ = api.do(http.MethodPost, "/auth/signin", "", body)
		assert.Equal(t, http.StatusBadRequest, status, "signin %s", name)
	}

	api.signup("test@gmail.com", "test")

	status, _ := api.do(http.MethodPost, "/auth/signup", "", creds)
	assert.Equal(t, http.StatusForbidden, status)

	status, _ = api.do(http.MethodPost, "/auth/signin", "", map[string]string{"email": "test@gmail.com", "password": "false"})
	assert.Equal(t, http.StatusForbidden, status)

	status, raw := api.do(http.MethodPost, "/auth/signin", "", creds)
	require.Equal(t, http.StatusOK, status)
	var signin auth.AuthResponse
	require.NoError(t, json.Unmarshal(raw, &signin))
	token := signin.AccessToken

	// User
	status, raw = api.do(http.MethodGet, "/users/me", token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(raw), `"email":"test@gmail.com"`)
	assert.NotContains(t, string(raw), "password")

	status, raw = api.do(http.MethodPatch, "/users", token, map[string]string{"firstName": "Herpan", "email": "herpan@gmail.com"})
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(raw), "Herpan")
	assert.Contains(t, string(raw), "herpan@gmail.com")

	// Bookmarks
	status, raw = api.do(http.MethodGet, "/bookmarks", token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `[]`, string(raw))

	status, raw = api.do(http.MethodPost, "/bookmarks", token, map[string]string{
		"title": "First Bookmark",
		"link":  "https://www.youtube.com/watch?v=IdHc5z0fkfg",
	})
	require.Equal(t, http.StatusCreated, status)
	var created bookmark.Bookmark
	require.NoError(t, json.Unmarshal(raw, &created))

	status, raw = api.do(http.MethodGet, "/bookmarks", token, nil)
	require.Equal(t, http.StatusOK, status)
	var list []bookmark.Bookmark
	require.NoError(t, json.Unmarshal(raw, &list))
	require.Len(t, list, 1)

	path := "/bookmarks/" + created.ID.String()
	status, raw = api.do(http.MethodGet, path, token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(raw), created.ID.String())

	status, raw = api.do(http.MethodPatch, path, token, map[string]string{"description": "Golang tutorial"})
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(raw), "Golang tutorial")
	assert.Contains(t, string(raw), "First Bookmark")

	status, _ = api.do(http.MethodDelete, path, token, nil)
	assert.Equal(t, http.StatusNoContent, status)

	status, raw = api.do(http.MethodGet, "/bookmarks", token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `[]`, string(raw))
}

func TestAPICrossUserIsolation(t *testing.T) {
	api := newTestAPI(t)
	alice := api.signup("alice@example.com", "secret")
	bob := api.signup("bob@example.com", "secret")

	status, raw := api.do(http.MethodPost, "/bookmarks", alice, map[string]string{"title": "alice", "link": "https://alice.example.com"})
	require.Equal(t, http.StatusCreated, status)
	var b bookmark.Bookmark
	require.NoError(t, json.Unmarshal(raw, &b))
	path := "/bookmarks/" + b.ID.String()

	status, raw = api.do(http.MethodGet, "/bookmarks", bob, nil)
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `[]`, string(raw))

	status, raw = api.do(http.MethodGet, path, bob, nil)
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `null`, string(raw))

	status, _ = api.do(http.MethodPatch, path, bob, map[string]string{"title": "bob"})
	assert.Equal(t, http.StatusForbidden, status)

	status, _ = api.do(http.MethodDelete, path, bob, nil)
	assert.Equal(t, http.StatusForbidden, status)

	status, raw = api.do(http.MethodGet, path, alice, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(raw), `"title":"alice"`)
}

func TestAPIRequiresAuth(t *testing.T) {
	api := newTestAPI(t)

	for _, tc := range []struct{ method, path string }{
		{http.MethodGet, "/users/me"},
		{http.MethodPatch, "/users"},
		{http.MethodGet, "/bookmarks"},
		{http.MethodPost, "/bookmarks"},
		{http.MethodGet, "/bookmarks/00000000-0000-0000-0000-000000000000"},
		{http.MethodPatch, "/bookmarks/00000000-0000-0000-0000-000000000000"},
		{http.MethodDelete, "/bookmarks/00000000-0000-0000-0000-000000000000"},
	} {
		status, _ := api.do(tc.method, tc.path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, status, "%s %s", tc.method, tc.path)

		status, _ = api.do(tc.method, tc.path, "not-a-token", nil)
		assert.Equal(t, http.StatusUnauthorized, status, "%s %s", tc.method, tc.path)
	}
}

func TestAPIBadBookmarkID(t *testing.T) {
	api := newTestAPI(t)
	token := api.signup("test@gmail.com", "test")

	status, _ := api.do(http.MethodGet, "/bookmarks/1", token, nil)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestAPIHealth(t *testing.T) {
	api := newTestAPI(t)

	status, raw := api.do(http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(raw), "api is running")
}

func TestAPIHealthDatabaseDown(t *testing.T) {
	db := dbtest.New(t)
	api := newTestAPIWithDB(t, db)
	require.NoError(t, db.Close())

	status, _ := api.do(http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusServiceUnavailable, status)
}

func TestSecurityHeaders(t *testing.T) {
	api := newTestAPI(t)

	resp, err := api.server.Client().Get(api.server.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, "nosniff", resp.Header.Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", resp.Header.Get("X-Frame-Options"))
	assert.NotEmpty(t, resp.Header.Get("Strict-Transport-Security"))
}
