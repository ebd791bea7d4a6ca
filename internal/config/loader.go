package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rileyhilliard/cfx/internal/errors"
	"github.com/spf13/viper"
)

const (
	// ConfigDirName is the directory under the user config dir.
	ConfigDirName = "cfx"
	// ConfigFileName is the config file name.
	ConfigFileName = "config.yaml"
	// EnvPrefix prefixes environment overrides, e.g. CFX_POLL_INTERVAL.
	EnvPrefix = "CFX"
	// DotEnvFile is loaded from the working directory before env binding.
	DotEnvFile = ".env"
)

// Load reads config from path layered over the defaults, then applies
// environment overrides. An empty path loads defaults and environment only.
func Load(path string) (*Config, error) {
	// A missing .env is the normal case.
	_ = godotenv.Load(DotEnvFile)

	v := viper.New()
	setDefaults(v, DefaultConfig())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			if os.IsNotExist(err) {
				return nil, errors.WrapWithCode(err, errors.ErrConfig,
					"Config file not found",
					"Run 'cfx config init' to create a config file, or specify one with --config")
			}
			return nil, errors.WrapWithCode(err, errors.ErrConfig,
				"Failed to read config file",
				"Check the file exists and is valid YAML")
		}
	}

	return parseConfig(v, path)
}

// Find locates the config file using the search order:
// 1. Explicit path (from --config flag)
// 2. $XDG_CONFIG_HOME/cfx/config.yaml
// 3. ~/.config/cfx/config.yaml
//
// Returns the path to the config file, or empty string if not found.
func Find(explicit string) (string, error) {
	if explicit != "" {
		explicit = ExpandTilde(explicit)
		if _, err := os.Stat(explicit); err != nil {
			if os.IsNotExist(err) {
				return "", errors.WrapWithCode(err, errors.ErrConfig,
					"Specified config file not found: "+explicit,
					"Check the path is correct")
			}
			return "", errors.WrapWithCode(err, errors.ErrConfig,
				"Cannot access config file: "+explicit,
				"Check file permissions")
		}
		return explicit, nil
	}

	for _, candidate := range searchPaths() {
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", nil
}

// LoadOrDefault finds the config file and loads it, or returns defaults with
// environment overrides if there is none.
func LoadOrDefault(explicit string) (*Config, error) {
	path, err := Find(explicit)
	if err != nil {
		return nil, err
	}
	return Load(path)
}

// DefaultPath is where 'cfx config init' writes the config file.
func DefaultPath() string {
	paths := searchPaths()
	if len(paths) == 0 {
		return filepath.Join(".", ConfigFileName)
	}
	return paths[0]
}

// searchPaths lists the implicit config locations in priority order.
func searchPaths() []string {
	var paths []string
	if base := os.Getenv("XDG_CONFIG_HOME"); base != "" {
		paths = append(paths, filepath.Join(base, ConfigDirName, ConfigFileName))
	}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", ConfigDirName, ConfigFileName))
	}
	return paths
}

// parseConfig converts viper config to our Config struct with defaults merged in.
func parseConfig(v *viper.Viper, path string) (*Config, error) {
	cfg := DefaultConfig()

	if err := v.Unmarshal(cfg); err != nil {
		source := "the environment overrides"
		if path != "" {
			source = path
		}
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Invalid config format",
			"Check the values in "+source)
	}

	cfg.Storage.Dir = ExpandPath(cfg.Storage.Dir)
	cfg.Log.File = ExpandPath(cfg.Log.File)

	return cfg, nil
}

// setDefaults registers every key with viper. AutomaticEnv only resolves
// keys viper already knows about.
func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("version", cfg.Version)

	v.SetDefault("api.base_url", cfg.API.BaseURL)
	v.SetDefault("api.list_url", cfg.API.ListURL)
	v.SetDefault("api.user_agent", cfg.API.UserAgent)
	v.SetDefault("api.request_timeout", cfg.API.RequestTimeout)
	v.SetDefault("api.search_timeout", cfg.API.SearchTimeout)
	v.SetDefault("api.rate_limit", cfg.API.RateLimit)
	v.SetDefault("api.rate_burst", cfg.API.RateBurst)

	v.SetDefault("poll.interval", cfg.Poll.Interval)
	v.SetDefault("poll.chart_points", cfg.Poll.ChartPoints)

	v.SetDefault("lists.max_recent", cfg.Lists.MaxRecent)
	v.SetDefault("lists.max_favorites", cfg.Lists.MaxFavorites)

	v.SetDefault("storage.dir", cfg.Storage.Dir)

	v.SetDefault("log.level", cfg.Log.Level)
	v.SetDefault("log.file", cfg.Log.File)
}
