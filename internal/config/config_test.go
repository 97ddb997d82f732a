package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// unset borra las variables y las restaura al terminar el test.
func unset(t *testing.T, keys ...string) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
}

func TestLoad_Defaults(t *testing.T) {
	unset(t, "ENV", "AUTH_MODE", "PORT", "JWT_TTL", "AMQP_EXCHANGE", "DB_DSN", "BOOTSTRAP_ADMIN_EMAIL")

	c, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, ":8080", c.Addr())
	assert.Equal(t, AuthModeDev, c.AuthMode)
	assert.Equal(t, time.Hour, c.JWTTTL)
	assert.Equal(t, "vet-clinic.events", c.AMQPExchange)
	assert.Empty(t, c.DBDSN)
}

func TestLoad_EnvFileDoesNotOverrideEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("PORT=9000\nAUTH_MODE=jwt\nJWT_SECRET=from-file\n"), 0o600))
	t.Setenv("PORT", "7000")
	unset(t, "AUTH_MODE", "JWT_SECRET")

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":7000", c.Addr())
	assert.Equal(t, AuthModeJWT, c.AuthMode)
	assert.Equal(t, "from-file", c.JWTSecret)
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name string
		cfg  Config
		ok   bool
	}{
		{"dev", Config{Env: "dev", AuthMode: AuthModeDev}, true},
		{"dev en test", Config{Env: "test", AuthMode: AuthModeDev}, true},
		{"dev en prod", Config{Env: "prod", AuthMode: AuthModeDev}, false},
		{"dev sin ENV", Config{AuthMode: AuthModeDev}, false},
		{"jwt en prod", Config{Env: "prod", AuthMode: AuthModeJWT, JWTSecret: "s"}, true},
		{"jwt sin secreto", Config{AuthMode: AuthModeJWT}, false},
		{"jwt", Config{AuthMode: AuthModeJWT, JWTSecret: "s"}, true},
		{"remote sin url", Config{AuthMode: AuthModeRemote}, false},
		{"remote", Config{AuthMode: AuthModeRemote, AuthRemoteURL: "http://idp"}, true},
		{"desconocido", Config{AuthMode: "oauth"}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if tc.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestLoad_ProdRejectsDevAuth(t *testing.T) {
	unset(t, "AUTH_MODE", "BOOTSTRAP_ADMIN_EMAIL")
	t.Setenv("ENV", "production")

	_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "AUTH_MODE=dev")
}
