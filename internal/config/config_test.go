package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "SCRIPT_FAST_MODEL", "SPEECH_VOICE", "AUTHOR_NAME"} {
		t.Setenv(key, "")
	}

	cfg := LoadConfig()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, DefaultScriptFastModel, cfg.ScriptFastModel)
	assert.Equal(t, DefaultVoiceName, cfg.VoiceName)
	assert.Equal(t, DefaultAuthorName, cfg.AuthorName)
	assert.NotEmpty(t, cfg.CredentialFile)
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9999")
	t.Setenv("SCRIPT_PRO_MODEL", "custom-pro")
	t.Setenv("AUTHOR_NAME", "Somebody Else")

	cfg := LoadConfig()

	assert.Equal(t, "9999", cfg.Port)
	assert.Equal(t, "custom-pro", cfg.ScriptProModel)
	assert.Equal(t, "Somebody Else", cfg.AuthorName)
}

func TestResolveAPIKeyPrefersEnvValue(t *testing.T) {
	cfg := &Config{GeminiAPIKey: "env-key", CredentialFile: "/nonexistent"}

	key, err := cfg.ResolveAPIKey()
	require.NoError(t, err)
	assert.Equal(t, "env-key", key)
}

func TestResolveAPIKeyFallsBackToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credential")
	require.NoError(t, os.WriteFile(path, []byte("  file-key\n"), 0o600))

	cfg := &Config{CredentialFile: path}

	key, err := cfg.ResolveAPIKey()
	require.NoError(t, err)
	assert.Equal(t, "file-key", key, "stored credential is trimmed")
	assert.True(t, cfg.HasAPIKey())
}

func TestResolveAPIKeyMissingEverywhere(t *testing.T) {
	cfg := &Config{CredentialFile: filepath.Join(t.TempDir(), "missing")}

	_, err := cfg.ResolveAPIKey()
	assert.ErrorIs(t, err, ErrAPIKeyMissing)
	assert.False(t, cfg.HasAPIKey())
}

func TestResolveAPIKeyEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credential")
	require.NoError(t, os.WriteFile(path, []byte("   \n"), 0o600))

	cfg := &Config{CredentialFile: path}
	_, err := cfg.ResolveAPIKey()
	assert.ErrorIs(t, err, ErrAPIKeyMissing)
}

func TestValidateEssentialConfig(t *testing.T) {
	cfg := LoadConfig()
	assert.NoError(t, ValidateEssentialConfig(cfg))

	cfg.AuthorName = ""
	assert.Error(t, ValidateEssentialConfig(cfg))
}
