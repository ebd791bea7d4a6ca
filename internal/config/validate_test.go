package config

import (
	"testing"
	"time"

	"github.com/rileyhilliard/cfx/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name        string
		modify      func(*Config)
		wantErr     bool
		errContains string
	}{
		{
			name:   "defaults are valid",
			modify: func(*Config) {},
		},
		{
			name:        "future version",
			modify:      func(c *Config) { c.Version = CurrentConfigVersion + 1 },
			wantErr:     true,
			errContains: "from the future",
		},
		{
			name:   "http base url allowed",
			modify: func(c *Config) { c.API.BaseURL = "http://127.0.0.1:9000/api" },
		},
		{
			name:        "non-http base url",
			modify:      func(c *Config) { c.API.BaseURL = "ftp://servers.example.com" },
			wantErr:     true,
			errContains: "api.base_url",
		},
		{
			name:        "relative list url",
			modify:      func(c *Config) { c.API.ListURL = "/servers/list" },
			wantErr:     true,
			errContains: "api.list_url",
		},
		{
			name:        "zero request timeout",
			modify:      func(c *Config) { c.API.RequestTimeout = 0 },
			wantErr:     true,
			errContains: "api.request_timeout",
		},
		{
			name:        "negative search timeout",
			modify:      func(c *Config) { c.API.SearchTimeout = -time.Second },
			wantErr:     true,
			errContains: "api.search_timeout",
		},
		{
			name:        "zero rate limit",
			modify:      func(c *Config) { c.API.RateLimit = 0 },
			wantErr:     true,
			errContains: "api.rate_limit",
		},
		{
			name:        "zero burst",
			modify:      func(c *Config) { c.API.RateBurst = 0 },
			wantErr:     true,
			errContains: "api.rate_burst",
		},
		{
			name:        "zero interval",
			modify:      func(c *Config) { c.Poll.Interval = 0 },
			wantErr:     true,
			errContains: "must be positive",
		},
		{
			name:        "interval below minimum",
			modify:      func(c *Config) { c.Poll.Interval = 2 * time.Second },
			wantErr:     true,
			errContains: "too short",
		},
		{
			name:   "interval at minimum",
			modify: func(c *Config) { c.Poll.Interval = MinInterval },
		},
		{
			name:        "zero chart points",
			modify:      func(c *Config) { c.Poll.ChartPoints = 0 },
			wantErr:     true,
			errContains: "poll.chart_points",
		},
		{
			name:        "negative max recent",
			modify:      func(c *Config) { c.Lists.MaxRecent = -1 },
			wantErr:     true,
			errContains: "lists.max_recent",
		},
		{
			name:        "zero max favorites",
			modify:      func(c *Config) { c.Lists.MaxFavorites = 0 },
			wantErr:     true,
			errContains: "lists.max_favorites",
		},
		{
			name:        "empty storage dir",
			modify:      func(c *Config) { c.Storage.Dir = "  " },
			wantErr:     true,
			errContains: "storage.dir",
		},
		{
			name:        "unknown log level",
			modify:      func(c *Config) { c.Log.Level = "loud" },
			wantErr:     true,
			errContains: "log.level",
		},
		{
			name:   "log level is case insensitive",
			modify: func(c *Config) { c.Log.Level = "WARN" },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Storage.Dir = "/tmp/cfx"
			tt.modify(cfg)

			err := Validate(cfg)
			if !tt.wantErr {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.IsCode(err, errors.ErrConfig))
			assert.Contains(t, err.Error(), tt.errContains)
		})
	}
}
