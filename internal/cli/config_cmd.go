package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/rileyhilliard/cfx/internal/config"
	"github.com/rileyhilliard/cfx/internal/ui"
)

// configInit writes a commented default config file.
func configInit(w io.Writer, path string, force bool) error {
	if path == "" {
		path = config.DefaultPath()
	}
	path = config.ExpandTilde(path)

	if err := config.WriteDefault(path, config.DefaultConfig(), force); err != nil {
		return err
	}

	if machineMode {
		return WriteJSONSuccess(w, map[string]string{"path": path})
	}
	fmt.Fprintf(w, "%s Wrote %s\n", ui.SymbolSuccess, path)
	fmt.Fprintln(w, ui.MutedStyle().Render("  Edit it directly, or use: cfx config set <key> <value>"))
	return nil
}

// configShow prints the effective settings after defaults, file and env.
func configShow(w io.Writer) error {
	cfg, path, err := loadConfig()
	if err != nil {
		return err
	}

	if machineMode {
		return WriteJSONSuccess(w, map[string]interface{}{"path": path, "config": settings(cfg)})
	}

	source := "defaults (no config file)"
	if path != "" {
		source = path
	}
	fmt.Fprint(w, ui.RenderHeader(ui.HeaderInfo{
		Version: formatVersion(version),
		Tagline: "Effective configuration",
		Detail:  source,
	}))
	fmt.Fprint(w, ui.RenderKeyValues(settingPairs(cfg)))
	return nil
}

// configSet updates one key in the config file in use, creating it if needed.
func configSet(w io.Writer, key, value string) error {
	path, err := config.Find(configFlag)
	if err != nil {
		return err
	}
	if path == "" {
		path = config.DefaultPath()
	}

	if err := config.Set(path, key, value); err != nil {
		return err
	}

	if machineMode {
		return WriteJSONSuccess(w, map[string]string{"path": path, "key": key, "value": value})
	}
	fmt.Fprintf(w, "%s Set %s = %s in %s\n", ui.SymbolSuccess, key, value, path)
	return nil
}

// configPath prints the config file in use, or where init would write one.
func configPath(w io.Writer) error {
	path, err := config.Find(configFlag)
	if err != nil {
		return err
	}
	exists := path != ""
	if !exists {
		path = config.DefaultPath()
	}

	if machineMode {
		return WriteJSONSuccess(w, map[string]interface{}{"path": path, "exists": exists})
	}
	fmt.Fprintln(w, path)
	if !exists {
		fmt.Fprintln(w, ui.MutedStyle().Render("(not created yet, run: cfx config init)"))
	}
	return nil
}

// settingPairs lists every key with its effective value, in file order.
func settingPairs(cfg *config.Config) [][2]string {
	return [][2]string{
		{"api.base_url", cfg.API.BaseURL},
		{"api.list_url", cfg.API.ListURL},
		{"api.user_agent", valueOr(cfg.API.UserAgent, "cfx/"+version)},
		{"api.request_timeout", cfg.API.RequestTimeout.String()},
		{"api.search_timeout", cfg.API.SearchTimeout.String()},
		{"api.rate_limit", strconv.FormatFloat(cfg.API.RateLimit, 'f', -1, 64)},
		{"api.rate_burst", strconv.Itoa(cfg.API.RateBurst)},
		{"poll.interval", cfg.Poll.Interval.String()},
		{"poll.chart_points", strconv.Itoa(cfg.Poll.ChartPoints)},
		{"lists.max_recent", strconv.Itoa(cfg.Lists.MaxRecent)},
		{"lists.max_favorites", strconv.Itoa(cfg.Lists.MaxFavorites)},
		{"storage.dir", cfg.Storage.Dir},
		{"log.level", cfg.Log.Level},
		{"log.file", cfg.LogFile()},
	}
}

// settings is the --json form of settingPairs.
func settings(cfg *config.Config) map[string]string {
	out := make(map[string]string)
	for _, p := range settingPairs(cfg) {
		out[p[0]] = p[1]
	}
	return out
}

func valueOr(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
