package cli

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/rileyhilliard/cfx/internal/monitor"
	"github.com/stretchr/testify/require"
)

func init() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

const singleBody = `{
	"EndPoint": "abc123",
	"Data": {
		"hostname": "Los Santos RP",
		"clients": 2,
		"sv_maxclients": 32,
		"players": [{"name": "alice", "id": 1}, {"name": "bob", "id": 2}],
		"gametype": "Roleplay",
		"mapname": "Los Santos",
		"server": "FXServer-b2944",
		"ping": 45
	}
}`

const searchBody = `{"data": [
	{"EndPoint": "abc123", "Data": {"hostname": "Los Santos RP", "clients": 2, "sv_maxclients": 32, "gametype": "Roleplay"}},
	{"EndPoint": "def456", "Data": {"hostname": "Santos Drift", "clients": 30, "sv_maxclients": 32, "gametype": "Drift"}}
]}`

const listBody = `{"servers": [
	{"endpoint": "abc123", "hostname": "Los Santos RP", "players": 2, "maxPlayers": 32, "gametype": "Roleplay"},
	{"endpoint": "def456", "hostname": "Santos Drift", "players": 30, "maxPlayers": 32, "gametype": "Drift"},
	{"endpoint": "ghi789", "hostname": "Freeroam Fun", "players": 0, "maxPlayers": "64", "gametype": "Freeroam"}
]}`

// upstream is a fake server directory.
type upstream struct {
	*httptest.Server
	hits atomic.Int32
}

func newUpstream(t *testing.T) *upstream {
	t.Helper()
	u := &upstream{}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/servers/single/", func(w http.ResponseWriter, r *http.Request) {
		u.hits.Add(1)
		if strings.TrimPrefix(r.URL.Path, "/api/servers/single/") != "abc123" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		writeBody(w, singleBody)
	})
	mux.HandleFunc("/api/servers/search", func(w http.ResponseWriter, r *http.Request) {
		u.hits.Add(1)
		if r.URL.Query().Get("q") == "nothing" {
			writeBody(w, `{"data": []}`)
			return
		}
		writeBody(w, searchBody)
	})
	mux.HandleFunc("/servers/list", func(w http.ResponseWriter, r *http.Request) {
		u.hits.Add(1)
		writeBody(w, listBody)
	})

	u.Server = httptest.NewServer(mux)
	t.Cleanup(u.Close)
	return u
}

func writeBody(w http.ResponseWriter, body string) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(body))
}

// setupCLI isolates config and state in temp dirs, points the directory
// client at a fake upstream and resets the global flags.
func setupCLI(t *testing.T) (*upstream, string) {
	t.Helper()

	home := t.TempDir()
	stateDir := filepath.Join(home, "state")
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, "config"))
	t.Setenv("XDG_STATE_HOME", stateDir)
	t.Setenv("NO_COLOR", "1")

	u := newUpstream(t)
	t.Setenv("CFX_API_BASE_URL", u.URL+"/api/servers")
	t.Setenv("CFX_API_LIST_URL", u.URL+"/servers/list")
	t.Setenv("CFX_API_RATE_LIMIT", "1000")
	t.Setenv("CFX_API_RATE_BURST", "100")

	resetFlags(t)
	return u, filepath.Join(stateDir, "cfx")
}

// resetFlags restores every global flag after the test and pretends no
// terminal is attached, so prompts and the dashboard never start.
func resetFlags(t *testing.T) {
	t.Helper()

	origIsTerminal := isTerminal
	isTerminal = func(*os.File) bool { return false }
	t.Cleanup(func() { isTerminal = origIsTerminal })

	saved := struct {
		machine, noColor, verbose, yes, force, short bool
		config, initPath                             string
		limit                                        int
	}{machineMode, noColorFlag, verboseFlag, yesFlag, initForceFlag, versionShort, configFlag, initPathFlag, limitFlag}

	machineMode, noColorFlag, verboseFlag, yesFlag, initForceFlag, versionShort = false, false, false, false, false, false
	configFlag, initPathFlag = "", ""
	limitFlag = defaultResults

	t.Cleanup(func() {
		machineMode, noColorFlag, verboseFlag = saved.machine, saved.noColor, saved.verbose
		yesFlag, initForceFlag, versionShort = saved.yes, saved.force, saved.short
		configFlag, initPathFlag = saved.config, saved.initPath
		limitFlag = saved.limit
	})
}

// openSession builds a session publishing to pub and closes it after the test.
func openSession(t *testing.T, pub monitor.Publisher) *session {
	t.Helper()
	if pub == nil {
		pub = monitor.NopPublisher{}
	}
	sess, err := newSession(pub)
	require.NoError(t, err)
	t.Cleanup(sess.Close)
	return sess
}
