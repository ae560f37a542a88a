// AngelaMos | 2026
// config_test.go

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolateEnv(t *testing.T) {
	t.Helper()

	for key := range envKeyMap {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func requiredEnv(t *testing.T) {
	t.Helper()

	isolateEnv(t)
	t.Setenv("DATABASE_URL", "postgres://localhost/apartments")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
}

func TestLoad_Defaults(t *testing.T) {
	requiredEnv(t)

	c, err := load("")
	require.NoError(t, err)

	assert.Equal(t, 5555, c.Server.Port)
	assert.Equal(t, 24*time.Hour, c.JWT.AccessTokenExpire)
	assert.Equal(t, "manager", c.Seed.Role)
	assert.Equal(t, "/metrics", c.Metrics.Path)
	assert.Equal(t, "174379", c.Mpesa.ShortCode)
	assert.Equal(t, "apartment", c.Redis.KeyPrefix)
	assert.True(t, c.IsDevelopment())
	assert.Equal(t, "0.0.0.0:5555", c.Server.Address())
}

func TestLoad_FileThenEnv(t *testing.T) {
	requiredEnv(t)
	t.Setenv("PORT", "8080")

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: 7000
  read_timeout: 10s
mpesa:
  callback_url: https://example.com/api/mpesa/callback
`), 0o600))

	c, err := load(path)
	require.NoError(t, err)

	assert.Equal(t, 8080, c.Server.Port)
	assert.Equal(t, 10*time.Second, c.Server.ReadTimeout)
	assert.Equal(t, "https://example.com/api/mpesa/callback", c.Mpesa.CallbackURL)
}

func TestLoad_Validation(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{
			name: "missing database",
			env:  map[string]string{"REDIS_URL": "redis://x"},
			want: "DATABASE_URL is required",
		},
		{
			name: "bad seed role",
			env: map[string]string{
				"DATABASE_URL": "postgres://x",
				"REDIS_URL":    "redis://x",
				"SEED_ROLE":    "tenant",
			},
			want: "seed.role",
		},
		{
			name: "non-positive token ttl",
			env: map[string]string{
				"DATABASE_URL":            "postgres://x",
				"REDIS_URL":               "redis://x",
				"JWT_ACCESS_TOKEN_EXPIRE": "0s",
			},
			want: "access_token_expire",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolateEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := load("")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	requiredEnv(t)

	_, err := load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
