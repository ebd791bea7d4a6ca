// Package ui provides the terminal output pieces shared by cfx commands and
// the watch dashboard.
//
// # Components Overview
//
//	Spinner          - Animated status line for one-shot lookups and searches
//	Activity         - Bubble Tea spinner line shown while the dashboard waits
//	Sparkline        - Block-character chart of recent player counts
//	Table            - Static result tables and aligned key/value output
//	Header           - The cfx banner used by version and config show
//
// # Color Scheme
//
// The palette is hex-based and rendered through lipgloss, which downsamples
// to whatever the terminal supports:
//
//	ColorSuccess (neon green)  - Successful operations, quiet servers
//	ColorWarning (amber)       - Busy servers, warnings
//	ColorError   (red-pink)    - Failures, full servers
//	ColorInfo    (cyan)        - Informational messages
//	ColorMuted   (purple-gray) - Secondary text, timing info
//
// Use DisableColors to switch to plain output for --no-color or NO_COLOR.
//
// # Spinner Usage
//
//	s := ui.NewSpinner("Looking up abc123")
//	s.Start()
//	// ... fetch ...
//	s.Success() // or s.Fail()
//
// The spinner redraws in place, so callers only start it when stderr is a
// terminal.
package ui
