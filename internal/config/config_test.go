package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testPasetoKey = "0123456789abcdef0123456789abcdef"

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PASETO_KEY", testPasetoKey)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "3333", cfg.Server.Port)
	assert.True(t, cfg.Server.IsDevelopment())
	assert.Equal(t, DriverPostgres, cfg.Database.Driver)
	assert.Equal(t, TokenPaseto, cfg.Auth.TokenType)
	assert.Equal(t, 15*time.Minute, cfg.Auth.AccessTokenDuration)
	assert.Equal(t, "localhost:6379", cfg.Redis.Address())
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.Server.TrustedOrigins)
}

func TestLoadRejectsShortPasetoKey(t *testing.T) {
	t.Setenv("PASETO_KEY", "too-short")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PASETO_KEY")
}

func TestLoadJWTRequiresSecret(t *testing.T) {
	t.Setenv("AUTH_TOKEN_TYPE", "jwt")
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	require.Error(t, err)

	t.Setenv("JWT_SECRET", "super-secret")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, TokenJWT, cfg.Auth.TokenType)
}

func TestLoadRejectsUnknownDriver(t *testing.T) {
	t.Setenv("PASETO_KEY", testPasetoKey)
	t.Setenv("DB_DRIVER", "mongodb")

	_, err := Load()
	require.Error(t, err)
}

func TestGetDurationEnv(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  time.Duration
	}{
		{name: "unset", value: "", want: time.Minute},
		{name: "seconds", value: "30", want: 30 * time.Second},
		{name: "go duration", value: "2h", want: 2 * time.Hour},
		{name: "garbage", value: "soon", want: time.Minute},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TEST_DURATION", tt.value)
			assert.Equal(t, tt.want, getDurationEnv("TEST_DURATION", time.Minute))
		})
	}
}

func TestGetSliceEnv(t *testing.T) {
	t.Setenv("TEST_ORIGINS", " https://a.example , ,https://b.example")
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, getSliceEnv("TEST_ORIGINS", nil))

	t.Setenv("TEST_ORIGINS", " , ")
	assert.Equal(t, []string{"fallback"}, getSliceEnv("TEST_ORIGINS", []string{"fallback"}))
}

func TestDatabaseURL(t *testing.T) {
	c := DatabaseConfig{
		User: "u", Password: "p", Host: "db", Port: "5432", DBName: "bookmarks", SSLMode: "disable",
	}
	assert.Equal(t, "postgres://u:p@db:5432/bookmarks?sslmode=disable", c.URL())
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=bookmarks sslmode=disable", c.ConnectionString())
}
