package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rileyhilliard/cfx/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points every lookup location at fresh temp dirs.
func isolate(t *testing.T) (home, xdgConfig string) {
	t.Helper()
	home = t.TempDir()
	xdgConfig = t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", xdgConfig)
	t.Setenv("XDG_STATE_HOME", filepath.Join(home, "state"))
	return home, xdgConfig
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestDefaultConfig(t *testing.T) {
	home, _ := isolate(t)
	cfg := DefaultConfig()

	assert.Equal(t, CurrentConfigVersion, cfg.Version)
	assert.Equal(t, "https://servers-frontend.fivem.net/api/servers", cfg.API.BaseURL)
	assert.Equal(t, "https://servers.fivem.net/servers/list", cfg.API.ListURL)
	assert.Empty(t, cfg.API.UserAgent)
	assert.Equal(t, 15*time.Second, cfg.API.RequestTimeout)
	assert.Equal(t, 10*time.Second, cfg.API.SearchTimeout)
	assert.Equal(t, 2.0, cfg.API.RateLimit)
	assert.Equal(t, 4, cfg.API.RateBurst)
	assert.Equal(t, 30*time.Second, cfg.Poll.Interval)
	assert.Equal(t, 24, cfg.Poll.ChartPoints)
	assert.Equal(t, 5, cfg.Lists.MaxRecent)
	assert.Equal(t, 10, cfg.Lists.MaxFavorites)
	assert.Equal(t, filepath.Join(home, "state", "cfx"), cfg.Storage.Dir)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Empty(t, cfg.Log.File)

	require.NoError(t, Validate(cfg))
}

func TestLogFile(t *testing.T) {
	cfg := &Config{Storage: StorageConfig{Dir: "/data/cfx"}}
	assert.Equal(t, "/data/cfx/cfx.log", cfg.LogFile())

	cfg.Log.File = "/var/log/cfx.log"
	assert.Equal(t, "/var/log/cfx.log", cfg.LogFile())
}

func TestLoad(t *testing.T) {
	home, _ := isolate(t)
	configPath := filepath.Join(t.TempDir(), "config.yaml")

	writeFile(t, configPath, `
version: 1
api:
  base_url: http://localhost:8080/api/servers
  search_timeout: 3s
  rate_limit: 0.5
poll:
  interval: 45s
lists:
  max_favorites: 20
storage:
  dir: ~/cfx-data
log:
  level: debug
`)

	cfg, err := Load(configPath)
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8080/api/servers", cfg.API.BaseURL)
	assert.Equal(t, 3*time.Second, cfg.API.SearchTimeout)
	assert.Equal(t, 0.5, cfg.API.RateLimit)
	assert.Equal(t, 45*time.Second, cfg.Poll.Interval)
	assert.Equal(t, 20, cfg.Lists.MaxFavorites)
	assert.Equal(t, filepath.Join(home, "cfx-data"), cfg.Storage.Dir)
	assert.Equal(t, "debug", cfg.Log.Level)

	// Unset keys keep their defaults
	assert.Equal(t, "https://servers.fivem.net/servers/list", cfg.API.ListURL)
	assert.Equal(t, 15*time.Second, cfg.API.RequestTimeout)
	assert.Equal(t, 24, cfg.Poll.ChartPoints)
	assert.Equal(t, 5, cfg.Lists.MaxRecent)
}

func TestLoad_EmptyPathUsesDefaults(t *testing.T) {
	isolate(t)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoad_EnvOverrides(t *testing.T) {
	isolate(t)
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, configPath, "poll:\n  interval: 45s\n")

	t.Setenv("CFX_POLL_INTERVAL", "1m")
	t.Setenv("CFX_LISTS_MAX_RECENT", "8")
	t.Setenv("CFX_API_USER_AGENT", "cfx-test/1.0")

	cfg, err := Load(configPath)
	require.NoError(t, err)

	assert.Equal(t, time.Minute, cfg.Poll.Interval)
	assert.Equal(t, 8, cfg.Lists.MaxRecent)
	assert.Equal(t, "cfx-test/1.0", cfg.API.UserAgent)
}

func TestLoad_DotEnv(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ".env"), "CFX_LISTS_MAX_FAVORITES=3\n")
	t.Chdir(dir)

	// Register the variable so it is restored, then unset it so .env can fill it.
	t.Setenv("CFX_LISTS_MAX_FAVORITES", "")
	require.NoError(t, os.Unsetenv("CFX_LISTS_MAX_FAVORITES"))

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Lists.MaxFavorites)
}

func TestLoad_DotEnvDoesNotOverrideEnvironment(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ".env"), "CFX_LISTS_MAX_FAVORITES=3\n")
	t.Chdir(dir)
	t.Setenv("CFX_LISTS_MAX_FAVORITES", "12")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 12, cfg.Lists.MaxFavorites)
}

func TestLoad_Errors(t *testing.T) {
	isolate(t)

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		require.Error(t, err)
		assert.True(t, errors.IsCode(err, errors.ErrConfig))
	})

	t.Run("invalid yaml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		writeFile(t, path, "poll: [unclosed\n")
		_, err := Load(path)
		require.Error(t, err)
		assert.True(t, errors.IsCode(err, errors.ErrConfig))
	})

	t.Run("bad duration", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		writeFile(t, path, "poll:\n  interval: soon\n")
		_, err := Load(path)
		require.Error(t, err)
		assert.True(t, errors.IsCode(err, errors.ErrConfig))
	})
}

func TestFind(t *testing.T) {
	t.Run("explicit path", func(t *testing.T) {
		isolate(t)
		path := filepath.Join(t.TempDir(), "custom.yaml")
		writeFile(t, path, "version: 1\n")

		found, err := Find(path)
		require.NoError(t, err)
		assert.Equal(t, path, found)
	})

	t.Run("explicit path missing", func(t *testing.T) {
		isolate(t)
		_, err := Find(filepath.Join(t.TempDir(), "missing.yaml"))
		require.Error(t, err)
		assert.True(t, errors.IsCode(err, errors.ErrConfig))
	})

	t.Run("xdg config home wins over home", func(t *testing.T) {
		home, xdg := isolate(t)
		xdgPath := filepath.Join(xdg, "cfx", "config.yaml")
		writeFile(t, xdgPath, "version: 1\n")
		writeFile(t, filepath.Join(home, ".config", "cfx", "config.yaml"), "version: 1\n")

		found, err := Find("")
		require.NoError(t, err)
		assert.Equal(t, xdgPath, found)
	})

	t.Run("home fallback", func(t *testing.T) {
		home, _ := isolate(t)
		homePath := filepath.Join(home, ".config", "cfx", "config.yaml")
		writeFile(t, homePath, "version: 1\n")

		found, err := Find("")
		require.NoError(t, err)
		assert.Equal(t, homePath, found)
	})

	t.Run("nothing found", func(t *testing.T) {
		isolate(t)
		found, err := Find("")
		require.NoError(t, err)
		assert.Empty(t, found)
	})
}

func TestLoadOrDefault(t *testing.T) {
	t.Run("no config returns defaults", func(t *testing.T) {
		isolate(t)
		cfg, err := LoadOrDefault("")
		require.NoError(t, err)
		assert.Equal(t, 30*time.Second, cfg.Poll.Interval)
	})

	t.Run("found config is loaded", func(t *testing.T) {
		_, xdg := isolate(t)
		writeFile(t, filepath.Join(xdg, "cfx", "config.yaml"), "poll:\n  chart_points: 48\n")

		cfg, err := LoadOrDefault("")
		require.NoError(t, err)
		assert.Equal(t, 48, cfg.Poll.ChartPoints)
	})

	t.Run("explicit missing is an error", func(t *testing.T) {
		isolate(t)
		_, err := LoadOrDefault("/does/not/exist.yaml")
		require.Error(t, err)
	})
}

func TestDefaultPath(t *testing.T) {
	_, xdg := isolate(t)
	assert.Equal(t, filepath.Join(xdg, "cfx", "config.yaml"), DefaultPath())

	t.Setenv("XDG_CONFIG_HOME", "")
	home, _ := os.UserHomeDir()
	assert.Equal(t, filepath.Join(home, ".config", "cfx", "config.yaml"), DefaultPath())
}
