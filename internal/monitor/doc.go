// Package monitor watches a single game server and renders its live stats.
//
// # Architecture
//
// The package splits into pure data components and the render surfaces they
// push to:
//
//	History     - Ring buffer of player-count samples per server id
//	Poller      - At most one repeating fetch for the watched server
//	Publisher   - Render surface interface (snapshot, notifications, lists, results)
//	Model       - The Bubble Tea dashboard, fed by a ChanPublisher
//
// # Poll Sessions
//
// Poller.Start cancels the previous session and waits for its goroutine to
// exit before issuing the new initial fetch, so only one ticker ever runs.
// Each tick fetches, records a sample under the key pinned at session start,
// and publishes. A failing tick is published as an error notification and
// the schedule continues.
//
// # Message Flow
//
// The dashboard never calls the Poller directly:
//
//  1. A key press runs a Controller operation in a tea.Cmd
//  2. The operation publishes to a ChanPublisher
//  3. waitForEvent() delivers each event as a tea.Msg
//  4. View() re-renders with the new snapshot, history or list
//
// # Keyboard Shortcuts
//
//	/           - Look up a server by code
//	s           - Search the directory
//	b           - Browse the full directory
//	f           - Toggle favorite for the shown server
//	F / R       - Show favorites / recent searches
//	r           - Refresh now
//	j/k, ↑/↓    - Navigate lists
//	Enter       - Open selected entry
//	Esc         - Back / close
//	?           - Toggle help overlay
//	q, Ctrl+C   - Quit
package monitor
