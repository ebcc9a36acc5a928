package pincho_test

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pincho "github.com/Pincho-App/pincho-go"
)

// unsetenv clears a variable for the test while keeping t.Setenv's
// restore-on-cleanup behavior.
func unsetenv(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	require.NoError(t, os.Unsetenv(key))
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("PINCHO_TOKEN", "env-token")
	t.Setenv("PINCHO_BASE_URL", "https://pincho.internal")
	t.Setenv("PINCHO_TIMEOUT", "3s")
	t.Setenv("PINCHO_MAX_RETRIES", "5")

	cfg, err := pincho.ConfigFromEnv()
	require.NoError(t, err)
	assert.Equal(t, "env-token", cfg.Token)
	assert.Equal(t, "https://pincho.internal", cfg.BaseURL)
	assert.Equal(t, 3*time.Second, cfg.Timeout)
	assert.Equal(t, 5, cfg.MaxRetries)
}

func TestConfigFromEnv_Defaults(t *testing.T) {
	t.Setenv("PINCHO_TOKEN", "env-token")
	unsetenv(t, "PINCHO_BASE_URL")
	unsetenv(t, "PINCHO_TIMEOUT")
	unsetenv(t, "PINCHO_MAX_RETRIES")

	cfg, err := pincho.ConfigFromEnv()
	require.NoError(t, err)
	assert.Equal(t, "https://api.pincho.app", cfg.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.Timeout)
	assert.Equal(t, 3, cfg.MaxRetries)
}

func TestConfigFromEnv_MissingToken(t *testing.T) {
	unsetenv(t, "PINCHO_TOKEN")

	_, err := pincho.ConfigFromEnv()
	assert.Error(t, err)
}

func TestNewFromEnv(t *testing.T) {
	t.Setenv("PINCHO_TOKEN", "env-token")
	unsetenv(t, "PINCHO_BASE_URL")
	unsetenv(t, "PINCHO_TIMEOUT")
	unsetenv(t, "PINCHO_MAX_RETRIES")

	client, err := pincho.NewFromEnv()
	require.NoError(t, err)
	assert.NotNil(t, client)
}
