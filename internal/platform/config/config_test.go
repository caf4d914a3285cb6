package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lumen/internal/platform/config"
)

func TestNewUsesDefaultsWithoutFile(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	cfg, err := config.New(dir)
	require.NoError(t, err)
	assert.Equal(t, config.BackendSQLite, cfg.Backend)
	assert.Equal(t, filepath.Join(dir, "lumen.db"), cfg.DBPath)
	assert.Equal(t, "auto", cfg.Platform)
	assert.Equal(t, 0, cfg.DefaultMinutes)
}

func TestNewOverlaysYAML(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	body := "backend: file\nplatform: mac\ndefault_minutes: 25\nlog_level: debug\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, config.FileName), []byte(body), 0o644))

	cfg, err := config.New(dir)
	require.NoError(t, err)
	assert.Equal(t, config.BackendFile, cfg.Backend)
	assert.Equal(t, "mac", cfg.Platform)
	assert.Equal(t, 25, cfg.DefaultMinutes)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, dir, cfg.DataDir)
}

func TestNewRejectsInvalidValues(t *testing.T) {
	t.Parallel()
	_, err := config.New("")
	require.Error(t, err)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, config.FileName), []byte("default_minutes: 721\n"), 0o644))
	_, err = config.New(dir)
	require.Error(t, err)

	dir = t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, config.FileName), []byte("backend: redis\n"), 0o644))
	_, err = config.New(dir)
	require.Error(t, err)
}
