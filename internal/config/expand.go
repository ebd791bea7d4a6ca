package config

import (
	"os"
	"path/filepath"
	"strings"
)

// pathVars are the ${NAME} references a path setting may use.
var pathVars = map[string]func() string{
	"HOME":            homeDir,
	"USER":            userName,
	"XDG_STATE_HOME":  stateHome,
	"XDG_CONFIG_HOME": configHome,
}

// ExpandPath resolves ${NAME} references and a leading ~ in a path setting.
// References outside pathVars are kept as written.
func ExpandPath(p string) string {
	p = os.Expand(p, func(name string) string {
		if fn, ok := pathVars[name]; ok {
			return fn()
		}
		return "${" + name + "}"
	})
	return ExpandTilde(p)
}

// ExpandTilde resolves a leading ~ or ~/ to the current user's home.
// ~user forms are left alone.
func ExpandTilde(p string) string {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, p[1:])
}

func homeDir() string {
	if home, err := os.UserHomeDir(); err == nil {
		return home
	}
	return "~"
}

func userName() string {
	for _, key := range []string{"USER", "LOGNAME", "USERNAME"} {
		if v := os.Getenv(key); v != "" {
			return v
		}
	}
	return "user"
}

func stateHome() string {
	return xdgDir("XDG_STATE_HOME", ".local", "state")
}

func configHome() string {
	return xdgDir("XDG_CONFIG_HOME", ".config")
}

// xdgDir returns $key, or the home-relative default when it is unset.
func xdgDir(key string, fallback ...string) string {
	if dir := os.Getenv(key); dir != "" {
		return dir
	}
	return filepath.Join(append([]string{homeDir()}, fallback...)...)
}
