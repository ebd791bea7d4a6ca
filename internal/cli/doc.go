// Package cli implements the cfx command-line interface.
//
// Each Cobra command is a thin wrapper that opens a session (config, logger,
// directory client, on-disk lists and the app) and hands it to a plain
// function taking an io.Writer. Those functions hold the command logic and
// are what the tests call.
//
// # Commands
//
//	cfx lookup <code>          - Print one server's current state
//	cfx watch [code]           - Live dashboard, or one line per refresh when piped
//	cfx search <query>         - Free-text directory search
//	cfx browse [filter]        - Full directory listing, filtered by name or mode
//	cfx favorites [add|remove|clear]
//	cfx recent [clear]
//	cfx config [init|show|set|path]
//
// # Output
//
// Human output is styled with lipgloss and degrades to plain text when colors
// are disabled (--no-color, NO_COLOR, or --json). With --json every command
// writes a JSONEnvelope, and errors are mapped to stable machine codes by
// ErrorToJSON. watch --json writes one compact envelope per event.
//
// Prompts (favorite picker, clear confirmation) only appear when stdin and
// stdout are terminals. Otherwise the command fails with a hint to pass the
// argument or --yes.
package cli
