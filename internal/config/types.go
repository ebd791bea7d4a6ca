package config

import (
	"path/filepath"
	"time"

	"github.com/rileyhilliard/cfx/internal/directory"
	"github.com/rileyhilliard/cfx/internal/store"
)

// CurrentConfigVersion is the schema version for the config file.
// Increment when making breaking changes to the config structure.
const CurrentConfigVersion = 1

// Config represents the complete cfx configuration file.
type Config struct {
	Version int           `yaml:"version" mapstructure:"version"`
	API     APIConfig     `yaml:"api" mapstructure:"api"`
	Poll    PollConfig    `yaml:"poll" mapstructure:"poll"`
	Lists   ListsConfig   `yaml:"lists" mapstructure:"lists"`
	Storage StorageConfig `yaml:"storage" mapstructure:"storage"`
	Log     LogConfig     `yaml:"log" mapstructure:"log"`
}

// APIConfig controls how the server directory is reached.
type APIConfig struct {
	// BaseURL serves single lookups (/single/<code>) and search (/search?q=).
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`

	// ListURL returns the full directory listing.
	ListURL string `yaml:"list_url" mapstructure:"list_url"`

	// UserAgent sent with every request. Empty means cfx/<version>.
	UserAgent string `yaml:"user_agent" mapstructure:"user_agent"`

	// RequestTimeout bounds single lookups and listings.
	RequestTimeout time.Duration `yaml:"request_timeout" mapstructure:"request_timeout"`

	// SearchTimeout bounds free-text searches.
	SearchTimeout time.Duration `yaml:"search_timeout" mapstructure:"search_timeout"`

	// RateLimit is the sustained request rate in requests per second.
	RateLimit float64 `yaml:"rate_limit" mapstructure:"rate_limit"`

	// RateBurst is how many requests may go out back to back.
	RateBurst int `yaml:"rate_burst" mapstructure:"rate_burst"`
}

// PollConfig controls watch sessions.
type PollConfig struct {
	// Interval between refreshes of the watched server.
	Interval time.Duration `yaml:"interval" mapstructure:"interval"`

	// ChartPoints is how many samples the player chart keeps per server.
	ChartPoints int `yaml:"chart_points" mapstructure:"chart_points"`
}

// ListsConfig bounds the persisted lists.
type ListsConfig struct {
	MaxRecent    int `yaml:"max_recent" mapstructure:"max_recent"`
	MaxFavorites int `yaml:"max_favorites" mapstructure:"max_favorites"`
}

// StorageConfig controls where favorites and recent searches live.
type StorageConfig struct {
	// Dir holds one JSON file per list. Supports ~ and ${HOME}.
	Dir string `yaml:"dir" mapstructure:"dir"`
}

// LogConfig controls the log file.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `yaml:"level" mapstructure:"level"`

	// File is the log path. Empty means <storage.dir>/cfx.log.
	File string `yaml:"file" mapstructure:"file"`
}

// Default values for settings without a directory-client counterpart.
const (
	DefaultInterval     = 30 * time.Second
	DefaultChartPoints  = 24
	DefaultMaxRecent    = 5
	DefaultMaxFavorites = 10
	DefaultLogLevel     = "info"
	LogFileName         = "cfx.log"
)

// MinInterval is the shortest allowed poll interval.
const MinInterval = 5 * time.Second

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Version: CurrentConfigVersion,
		API: APIConfig{
			BaseURL:        directory.DefaultBaseURL,
			ListURL:        directory.DefaultListURL,
			RequestTimeout: directory.DefaultRequestTimeout,
			SearchTimeout:  directory.DefaultSearchTimeout,
			RateLimit:      directory.DefaultRateLimit,
			RateBurst:      directory.DefaultRateBurst,
		},
		Poll: PollConfig{
			Interval:    DefaultInterval,
			ChartPoints: DefaultChartPoints,
		},
		Lists: ListsConfig{
			MaxRecent:    DefaultMaxRecent,
			MaxFavorites: DefaultMaxFavorites,
		},
		Storage: StorageConfig{
			Dir: store.DefaultDir(),
		},
		Log: LogConfig{
			Level: DefaultLogLevel,
		},
	}
}

// LogFile returns the configured log path, falling back to the storage dir.
func (c *Config) LogFile() string {
	if c.Log.File != "" {
		return c.Log.File
	}
	return filepath.Join(c.Storage.Dir, LogFileName)
}
