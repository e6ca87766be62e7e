package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	ResetConfig()

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)

	assert.Equal(t, DefaultDialect, cfg.Dialect)
	assert.Equal(t, DefaultOutput, cfg.OutputFormat)
	assert.Empty(t, cfg.Rules)
	assert.False(t, cfg.Unqualified)
	assert.False(t, cfg.Verbose)
}

func TestLoadConfigFromFile(t *testing.T) {
	ResetConfig()

	path := filepath.Join(t.TempDir(), "sqlremap.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
dialect: ansi
rules: /etc/sqlremap/rules.yaml
unqualified: true
`), 0o600))

	cfg, err := LoadConfig(path, nil)
	require.NoError(t, err)

	assert.Equal(t, "ansi", cfg.Dialect)
	assert.Equal(t, "/etc/sqlremap/rules.yaml", cfg.Rules)
	assert.True(t, cfg.Unqualified)
	assert.Equal(t, path, GetConfigFileUsed())
}

func TestLoadConfigFromEnv(t *testing.T) {
	ResetConfig()
	t.Setenv("SQLREMAP_DIALECT", "ansi")
	t.Setenv("SQLREMAP_VERBOSE", "true")

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)

	assert.Equal(t, "ansi", cfg.Dialect)
	assert.True(t, cfg.Verbose)
}

func TestLoadConfigFlagsWin(t *testing.T) {
	ResetConfig()
	t.Setenv("SQLREMAP_DIALECT", "ansi")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("dialect", "", "")
	flags.String("output", "", "")
	require.NoError(t, flags.Parse([]string{"--dialect", "spark"}))

	cfg, err := LoadConfig("", flags)
	require.NoError(t, err)

	// Explicitly set flag overrides the env var
	assert.Equal(t, "spark", cfg.Dialect)
	// Unset flag does not clobber the default
	assert.Equal(t, DefaultOutput, cfg.OutputFormat)
}

func TestGetCurrentConfig(t *testing.T) {
	ResetConfig()
	assert.Nil(t, GetCurrentConfig())

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)
	assert.Same(t, cfg, GetCurrentConfig())
}
