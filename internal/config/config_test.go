package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadOrCreateWritesDefaults(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "garden")
	path := filepath.Join(dir, DefaultConfigFileName)

	cfg, err := LoadOrCreate(path)
	require.NoError(t, err)
	assert.Equal(t, Default(dir), cfg)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "trend_days = 7")

	again, err := LoadOrCreate(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, again)
}

func TestLoadOrCreateReadsFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, DefaultConfigFileName)
	content := `
db_path = "data/wellbeing.db"
log_file = "/var/tmp/garden.log"
log_level = "debug"
trend_days = 14
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadOrCreate(path)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "data", "wellbeing.db"), cfg.DBPath)
	assert.Equal(t, "/var/tmp/garden.log", cfg.LogFile)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 14, cfg.TrendDays)
}

func TestLoadOrCreateFillsBlanks(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, DefaultConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte("trend_days = 0\n"), 0o644))

	cfg, err := LoadOrCreate(path)
	require.NoError(t, err)
	assert.Equal(t, Default(dir), cfg)
}

func TestLoadOrCreateRejectsBadTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte("db_path = [unterminated"), 0o644))

	_, err := LoadOrCreate(path)
	assert.Error(t, err)
}

func TestResolveConfigPath(t *testing.T) {
	path, err := ResolveConfigPath()
	if err != nil {
		t.Skipf("no user config dir: %v", err)
	}
	assert.Equal(t, DefaultConfigFileName, filepath.Base(path))
	assert.Equal(t, "garden", filepath.Base(filepath.Dir(path)))
}
