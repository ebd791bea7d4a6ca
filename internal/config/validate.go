package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/rileyhilliard/cfx/internal/errors"
)

var validLogLevels = map[string]bool{"debug": true, "info": true, "warn": true, "warning": true, "error": true, "": true}

// Validate checks the config for errors and returns structured error messages.
func Validate(cfg *Config) error {
	if cfg.Version > CurrentConfigVersion {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("This config is from the future (version %d, but cfx only knows up to %d)", cfg.Version, CurrentConfigVersion),
			"Grab the latest cfx release")
	}

	if err := validateAPI(cfg.API); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig, err.Error(), "Check the 'api' section in your config.yaml.")
	}

	if err := validatePoll(cfg.Poll); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig, err.Error(), "Check the 'poll' section in your config.yaml.")
	}

	if err := validateLists(cfg.Lists); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig, err.Error(), "Check the 'lists' section in your config.yaml.")
	}

	if strings.TrimSpace(cfg.Storage.Dir) == "" {
		return errors.New(errors.ErrConfig,
			"storage.dir is empty",
			"Set storage.dir or remove it to use the default.")
	}

	if !validLogLevels[strings.ToLower(cfg.Log.Level)] {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("log.level '%s' isn't valid - use 'debug', 'info', 'warn', or 'error'", cfg.Log.Level),
			"Check the 'log' section in your config.yaml.")
	}

	return nil
}

// validateAPI checks directory endpoints, timeouts and pacing.
func validateAPI(api APIConfig) error {
	if err := validateURL("api.base_url", api.BaseURL); err != nil {
		return err
	}
	if err := validateURL("api.list_url", api.ListURL); err != nil {
		return err
	}
	if api.RequestTimeout <= 0 {
		return fmt.Errorf("api.request_timeout must be positive, got %v", api.RequestTimeout)
	}
	if api.SearchTimeout <= 0 {
		return fmt.Errorf("api.search_timeout must be positive, got %v", api.SearchTimeout)
	}
	if api.RateLimit <= 0 {
		return fmt.Errorf("api.rate_limit must be positive, got %v", api.RateLimit)
	}
	if api.RateBurst <= 0 {
		return fmt.Errorf("api.rate_burst must be positive, got %d", api.RateBurst)
	}
	return nil
}

// validatePoll checks watch session settings.
func validatePoll(poll PollConfig) error {
	if poll.Interval <= 0 {
		return fmt.Errorf("poll.interval must be positive, got %v", poll.Interval)
	}
	if poll.Interval < MinInterval {
		return fmt.Errorf("poll.interval %v is too short - the directory asks for at least %v between refreshes", poll.Interval, MinInterval)
	}
	if poll.ChartPoints <= 0 {
		return fmt.Errorf("poll.chart_points must be positive, got %d", poll.ChartPoints)
	}
	return nil
}

// validateLists checks the persisted list bounds.
func validateLists(lists ListsConfig) error {
	if lists.MaxRecent <= 0 {
		return fmt.Errorf("lists.max_recent must be positive, got %d", lists.MaxRecent)
	}
	if lists.MaxFavorites <= 0 {
		return fmt.Errorf("lists.max_favorites must be positive, got %d", lists.MaxFavorites)
	}
	return nil
}

// validateURL accepts absolute http and https URLs only.
func validateURL(field, raw string) error {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("%s '%s' isn't a valid http(s) URL", field, raw)
	}
	return nil
}
