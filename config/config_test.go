package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/veryfi/veryfi-go/config"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "veryfi.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	return path
}

func TestParse(t *testing.T) {
	path := writeConfig(t, `
url: https://api.example.com/api/
version: v8
timeout: 30s

credentials:
  client_id: my-client
  client_secret: my-secret
  username: my-user
  api_key: my-key

rate_limit: 5
telemetry: true
`)

	cfg, err := config.Parse(path)

	require.NoError(t, err)
	require.Equal(t, "https://api.example.com/api/", cfg.URL)
	require.Equal(t, "v8", cfg.Version)
	require.Equal(t, 30*time.Second, cfg.Timeout)
	require.Equal(t, "my-client", cfg.ClientID)
	require.Equal(t, "my-secret", cfg.ClientSecret)
	require.Equal(t, "my-user", cfg.Username)
	require.Equal(t, "my-key", cfg.APIKey)

	require.NotNil(t, cfg.Client())
}

func TestParseExpandsEnvironment(t *testing.T) {
	t.Setenv("VERYFI_CLIENT_ID", "env-client")
	t.Setenv("VERYFI_API_KEY", "env-key")

	path := writeConfig(t, `
credentials:
  client_id: ${VERYFI_CLIENT_ID}
  username: my-user
  api_key: ${VERYFI_API_KEY}
`)

	cfg, err := config.Parse(path)

	require.NoError(t, err)
	require.Equal(t, "env-client", cfg.ClientID)
	require.Equal(t, "env-key", cfg.APIKey)
}

func TestParseMissingCredentials(t *testing.T) {
	path := writeConfig(t, `
credentials:
  username: my-user
`)

	_, err := config.Parse(path)
	require.ErrorContains(t, err, "client_id")
}

func TestParseUnknownField(t *testing.T) {
	path := writeConfig(t, `
credentials:
  client_id: my-client
  username: my-user
  api_key: my-key

retries: 3
`)

	_, err := config.Parse(path)
	require.Error(t, err)
}

func TestParseInvalidTimeout(t *testing.T) {
	path := writeConfig(t, `
timeout: soon

credentials:
  client_id: my-client
  username: my-user
  api_key: my-key
`)

	_, err := config.Parse(path)
	require.Error(t, err)
}
