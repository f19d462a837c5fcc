package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func load(t *testing.T, args ...string) (*Config, error) {
	t.Helper()
	flags := pflag.NewFlagSet("nyx", pflag.ContinueOnError)
	RegisterFlags(flags)
	require.NoError(t, flags.Parse(args))
	return Load(flags)
}

func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	return home
}

func TestDefaults(t *testing.T) {
	home := isolate(t)

	cfg, err := load(t)
	require.NoError(t, err)

	data := filepath.Join(home, ".config", "nyx")
	assert.Equal(t, filepath.Join(data, "nyx.db"), cfg.DB)
	assert.Equal(t, filepath.Join(data, "posters"), cfg.Posters.Dir)
	assert.Equal(t, filepath.Join(data, "nyx_icon.jpg"), cfg.Posters.Placeholder)
	assert.Equal(t, 0, cfg.Posters.Crop)
	assert.Equal(t, filepath.Join(data, "session.yaml"), cfg.Session.File)
	assert.Equal(t, 10, cfg.Home.Window)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
}

func TestPrecedence(t *testing.T) {
	home := isolate(t)
	path := filepath.Join(home, "nyx.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
db: /from/file.db
home:
  window: 3
posters:
  dir: /from/file/posters
  crop: 150
log:
  level: debug
`), 0o600))

	t.Setenv("NYX_POSTERS_DIR", "/from/env/posters")
	t.Setenv("NYX_HOME_WINDOW", "5")

	cfg, err := load(t, "--config", path, "--home-window", "7")
	require.NoError(t, err)

	assert.Equal(t, "/from/file.db", cfg.DB, "file beats flag defaults")
	assert.Equal(t, "/from/env/posters", cfg.Posters.Dir, "env beats file")
	assert.Equal(t, 7, cfg.Home.Window, "explicit flags beat env")
	assert.Equal(t, 150, cfg.Posters.Crop)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestDataDirConfigFileIsPickedUp(t *testing.T) {
	home := isolate(t)
	dir := filepath.Join(home, ".config", "nyx")
	require.NoError(t, os.MkdirAll(dir, 0o700))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("log:\n  format: json\n"), 0o600))

	cfg, err := load(t)
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestExplicitMissingConfigFails(t *testing.T) {
	home := isolate(t)
	_, err := load(t, "--config", filepath.Join(home, "missing.yaml"))
	assert.Error(t, err)
}

func TestValidation(t *testing.T) {
	isolate(t)

	_, err := load(t, "--log-level", "loud")
	assert.Error(t, err)

	_, err = load(t, "--home-window", "0")
	assert.Error(t, err)

	_, err = load(t, "--posters-crop", "-1")
	assert.Error(t, err)
}

func TestLogger(t *testing.T) {
	cfg := &Config{Log: Log{Level: "warn", Format: "json"}}
	assert.NotNil(t, cfg.Logger())
}
