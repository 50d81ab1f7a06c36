package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenAIKeyFromEnv(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir()) // keep a developer's config.toml out of the test
	t.Setenv("HOME", t.TempDir())            // and their ~/.env
	t.Setenv("OPENAI_API_KEY", "sk-test-123")

	cfg, err := Load()
	require.NoError(t, err)

	key, err := cfg.OpenAIKey()
	require.NoError(t, err)
	assert.Equal(t, "sk-test-123", key)
}

func TestOpenAIKeyFromDotEnv(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir()) // keep a developer's ~/.env out of the test
	t.Setenv("OPENAI_API_KEY", "")
	os.Unsetenv("OPENAI_API_KEY")

	envFile := filepath.Join(t.TempDir(), ".env")
	content := "# flightdesk credentials\n\nOPENAI_API_KEY=sk-test-123\n"
	require.NoError(t, os.WriteFile(envFile, []byte(content), 0o600))

	cfg, err := Load(envFile)
	require.NoError(t, err)

	key, err := cfg.OpenAIKey()
	require.NoError(t, err)
	assert.Equal(t, "sk-test-123", key)
}

func TestOpenAIKeyMissing(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())
	t.Setenv("OPENAI_API_KEY", "")
	os.Unsetenv("OPENAI_API_KEY")

	cfg, err := Load()
	require.NoError(t, err)

	_, err = cfg.OpenAIKey()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingCredential))
}

func TestEnvWinsOverDotEnv(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())
	t.Setenv("OPENAI_API_KEY", "sk-from-env")

	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("OPENAI_API_KEY=sk-from-file\n"), 0o600))

	cfg, err := Load(envFile)
	require.NoError(t, err)

	key, err := cfg.OpenAIKey()
	require.NoError(t, err)
	assert.Equal(t, "sk-from-env", key)
}

func TestDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())
	cfg, err := Load()
	require.NoError(t, err)

	assert.NotEmpty(t, cfg.LLM.Model)
	assert.Equal(t, ":8686", cfg.Gateway.Addr)
	assert.Equal(t, "/v1/traces", cfg.Trace.URLPath)
	assert.NotEmpty(t, cfg.DB.Path)
}
