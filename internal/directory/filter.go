package directory

import (
	"strings"

	"github.com/rileyhilliard/cfx/internal/server"
)

// Filter returns the servers whose name or game mode contains query,
// case-insensitively. An empty query returns the input unchanged.
func Filter(servers []server.Snapshot, query string) []server.Snapshot {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return servers
	}

	out := make([]server.Snapshot, 0, len(servers))
	for _, s := range servers {
		if strings.Contains(strings.ToLower(s.Name), q) ||
			strings.Contains(strings.ToLower(s.Details.GameMode), q) {
			out = append(out, s)
		}
	}
	return out
}
