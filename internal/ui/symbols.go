package ui

// Status glyphs used in CLI output and the dashboard.
const (
	SymbolSuccess  = "◉"
	SymbolFail     = "✕"
	SymbolPending  = "◇"
	SymbolProgress = "◆"
	SymbolComplete = "●"
	SymbolSkipped  = "⊖"
	SymbolWarning  = "⚠"
)
