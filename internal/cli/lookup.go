package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rileyhilliard/cfx/internal/app"
	"github.com/rileyhilliard/cfx/internal/monitor"
	"github.com/rileyhilliard/cfx/internal/server"
	"github.com/rileyhilliard/cfx/internal/ui"
)

// maxListedPlayers caps the player names printed by lookup.
const maxListedPlayers = 20

// lookupCommand fetches one server and prints it.
func lookupCommand(ctx context.Context, w io.Writer, a *app.App, input string) error {
	var spinner *ui.Spinner
	if !machineMode && isTerminal(os.Stderr) {
		spinner = ui.NewSpinner("Looking up " + strings.TrimSpace(input))
		spinner.Start()
	}

	snap, err := a.FetchOnce(ctx, input)
	if spinner != nil {
		if err != nil {
			spinner.Fail()
		} else {
			spinner.Success()
		}
	}
	if err != nil {
		return err
	}

	if machineMode {
		return WriteJSONSuccess(w, snap)
	}

	favorite := containsServer(a.Lists().Favorites, snap.ID)
	fmt.Fprint(w, renderServer(snap, favorite))
	return nil
}

// renderServer renders a snapshot as a titled key/value block.
func renderServer(snap server.Snapshot, favorite bool) string {
	title := lipgloss.NewStyle().Foreground(ui.ColorNeonPink).Bold(true).Render(snap.Name)
	if favorite {
		title = lipgloss.NewStyle().Foreground(ui.ColorWarning).Render(monitor.GlyphFavorite) + " " + title
	}

	players := fmt.Sprintf("%d/%d (%.0f%%)", snap.Players, snap.MaxPlayers, snap.Occupancy())
	pairs := [][2]string{
		{"id", snap.ID},
		{"players", lipgloss.NewStyle().Foreground(monitor.MetricColor(snap.Occupancy())).Render(players)},
		{"ping", fmt.Sprintf("%dms", snap.Ping)},
		{"mode", snap.Details.GameMode},
		{"map", snap.Details.MapName},
		{"version", snap.Details.Version},
		{"online", formatPlayers(snap.PlayerList)},
	}
	return title + "\n" + ui.RenderKeyValues(pairs)
}

// formatPlayers joins player names, truncated after maxListedPlayers.
func formatPlayers(names []string) string {
	if len(names) == 0 {
		return ui.MutedStyle().Render("none")
	}
	shown := names
	if len(shown) > maxListedPlayers {
		shown = shown[:maxListedPlayers]
	}
	out := strings.Join(shown, ", ")
	if extra := len(names) - len(shown); extra > 0 {
		out += ui.MutedStyle().Render(fmt.Sprintf(" +%d more", extra))
	}
	return out
}

func containsServer(list []server.Snapshot, id string) bool {
	for _, s := range list {
		if s.ID == id {
			return true
		}
	}
	return false
}
