// AngelaMos | 2026
// config_test.go

package config

import (
	"strings"
	"testing"
	"time"

	"github.com/knadh/koanf/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validTestConfig(t *testing.T) *Config {
	t.Helper()

	k := koanf.New(".")
	require.NoError(t, loadDefaults(k))

	c := &Config{}
	require.NoError(t, k.Unmarshal("", c))

	c.Database.URL = "postgres://localhost:5432/app"
	c.Redis.URL = "redis://localhost:6379/0"
	c.JWT.Secret = "0123456789abcdef0123456789abcdef"
	return c
}

func TestDefaults(t *testing.T) {
	c := validTestConfig(t)

	assert.Equal(t, "users", c.Database.UsersTable)
	assert.Equal(t, 8080, c.Server.Port)
	assert.Equal(t, 24*time.Hour, c.JWT.AccessTokenExpire)
	assert.Equal(t, "development", c.App.Environment)
	assert.Equal(t, "json", c.Log.Format)
	assert.True(t, c.IsDevelopment())
	assert.False(t, c.IsProduction())
}

func TestValidate_AcceptsCompleteConfig(t *testing.T) {
	assert.NoError(t, validate(validTestConfig(t)))
}

func TestValidate_RequiredValues(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "missing database url",
			mutate:  func(c *Config) { c.Database.URL = "" },
			wantErr: "DATABASE_URL",
		},
		{
			name:    "missing redis url",
			mutate:  func(c *Config) { c.Redis.URL = "" },
			wantErr: "REDIS_URL",
		},
		{
			name:    "missing jwt secret",
			mutate:  func(c *Config) { c.JWT.Secret = "" },
			wantErr: "JWT_SECRET",
		},
		{
			name:    "short jwt secret",
			mutate:  func(c *Config) { c.JWT.Secret = "too-short" },
			wantErr: "at least 32 bytes",
		},
		{
			name:    "non-positive token expiry",
			mutate:  func(c *Config) { c.JWT.AccessTokenExpire = 0 },
			wantErr: "access_token_expire",
		},
		{
			name:    "bad users table name",
			mutate:  func(c *Config) { c.Database.UsersTable = "users; DROP TABLE" },
			wantErr: "not a valid table name",
		},
		{
			name: "wildcard origin with credentials",
			mutate: func(c *Config) {
				c.CORS.AllowedOrigins = []string{"*"}
			},
			wantErr: "wildcard",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validTestConfig(t)
			tt.mutate(c)

			err := validate(c)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestIsValidIdentifier(t *testing.T) {
	valid := []string{"users", "app_users", "users2", "u", strings.Repeat("a", 63)}
	for _, s := range valid {
		assert.True(t, isValidIdentifier(s), s)
	}

	invalid := []string{
		"",
		"Users",
		"2users",
		"users-prod",
		"users users",
		`users"`,
		"users;",
		strings.Repeat("a", 64),
	}
	for _, s := range invalid {
		assert.False(t, isValidIdentifier(s), s)
	}
}

func TestEnvKeyReplacer(t *testing.T) {
	assert.Equal(t, "database.url", envKeyReplacer("DATABASE_URL"))
	assert.Equal(t, "database.users_table", envKeyReplacer("USERS_TABLE"))
	assert.Equal(t, "jwt.secret", envKeyReplacer("JWT_SECRET"))

	// Unmapped environment variables must be dropped, not imported
	// wholesale into the config tree.
	assert.Equal(t, "", envKeyReplacer("HOME"))
	assert.Equal(t, "", envKeyReplacer("PATH"))
}

func TestServerAddress(t *testing.T) {
	s := ServerConfig{Host: "127.0.0.1", Port: 9090}
	assert.Equal(t, "127.0.0.1:9090", s.Address())
}
