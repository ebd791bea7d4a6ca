package cli

import (
	"os"

	"github.com/rileyhilliard/cfx/internal/app"
	"github.com/rileyhilliard/cfx/internal/config"
	"github.com/rileyhilliard/cfx/internal/directory"
	"github.com/rileyhilliard/cfx/internal/logger"
	"github.com/rileyhilliard/cfx/internal/monitor"
	"github.com/rileyhilliard/cfx/internal/store"
	"github.com/rileyhilliard/cfx/internal/ui"
	"golang.org/x/term"
)

// session is everything a command needs once the config is loaded.
type session struct {
	log logger.Logger
	app *app.App
}

// loadConfig finds, loads and validates the config named by --config.
func loadConfig() (*config.Config, string, error) {
	path, err := config.Find(configFlag)
	if err != nil {
		return nil, "", err
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, "", err
	}
	if err := config.Validate(cfg); err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

// newSession loads the config and wires the app, publishing to pub.
func newSession(pub monitor.Publisher) (*session, error) {
	cfg, path, err := loadConfig()
	if err != nil {
		return nil, err
	}

	log := openLogger(cfg)
	log.Debug("config loaded from %q", path)

	userAgent := cfg.API.UserAgent
	if userAgent == "" {
		userAgent = "cfx/" + version
	}

	dir := directory.New(directory.Options{
		BaseURL:        cfg.API.BaseURL,
		ListURL:        cfg.API.ListURL,
		UserAgent:      userAgent,
		RequestTimeout: cfg.API.RequestTimeout,
		SearchTimeout:  cfg.API.SearchTimeout,
		RateLimit:      cfg.API.RateLimit,
		RateBurst:      cfg.API.RateBurst,
		Logger:         log,
	})

	a := app.New(app.Options{
		Directory:    dir,
		Store:        store.NewFileStore(cfg.Storage.Dir),
		Publisher:    pub,
		Logger:       log,
		Interval:     cfg.Poll.Interval,
		ChartPoints:  cfg.Poll.ChartPoints,
		MaxRecent:    cfg.Lists.MaxRecent,
		MaxFavorites: cfg.Lists.MaxFavorites,
	})

	return &session{log: log, app: a}, nil
}

// Close stops any watch session.
func (s *session) Close() {
	s.app.Close()
}

// openLogger builds the file logger. A log file that cannot be opened is not
// fatal; the command runs without logging.
func openLogger(cfg *config.Config) logger.Logger {
	level := cfg.Log.Level
	if verboseFlag {
		level = "debug"
	}

	log, err := logger.New(logger.Config{Level: level, File: cfg.LogFile()}, "[cfx]")
	if err != nil {
		if !machineMode {
			ui.PrintWarning("logging disabled: " + err.Error())
		}
		log = logger.Noop()
	}
	logger.SetDefault(log)
	return log
}

// isTerminal reports whether f is attached to a terminal. Tests replace it.
var isTerminal = func(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// interactive reports whether a full-screen UI or prompt can be shown.
func interactive() bool {
	return !machineMode && isTerminal(os.Stdin) && isTerminal(os.Stdout)
}
