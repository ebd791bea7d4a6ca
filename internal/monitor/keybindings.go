package monitor

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// ViewMode defines which panel the dashboard shows.
type ViewMode int

const (
	ViewServer ViewMode = iota
	ViewResults
	ViewFavorites
	ViewRecent
)

// String returns a human-readable label for the view.
func (v ViewMode) String() string {
	switch v {
	case ViewResults:
		return "results"
	case ViewFavorites:
		return "favorites"
	case ViewRecent:
		return "recent"
	default:
		return "server"
	}
}

// InputMode defines what the text input is collecting.
type InputMode int

const (
	InputNone InputMode = iota
	InputLookup
	InputSearch
	InputFilter
)

// Prompt returns the input prompt for the mode.
func (i InputMode) Prompt() string {
	switch i {
	case InputLookup:
		return "Server code: "
	case InputSearch:
		return "Search: "
	case InputFilter:
		return "Filter directory: "
	default:
		return ""
	}
}

// Key bindings as constants for consistency.
const (
	KeyQuit          = "q"
	KeyQuitAlt       = "ctrl+c"
	KeyRefresh       = "r"
	KeyLookup        = "/"
	KeySearch        = "s"
	KeyBrowse        = "b"
	KeyToggleFav     = "f"
	KeyShowFavorites = "F"
	KeyShowRecent    = "R"
	KeySelectPrev    = "up"
	KeySelectPrevK   = "k"
	KeySelectNext    = "down"
	KeySelectNextJ   = "j"
	KeySelectFirst   = "home"
	KeySelectLast    = "end"
	KeyExpand        = "enter"
	KeyCollapse      = "esc"
	KeyToggleHelp    = "?"
)

// HandleKeyMsg processes keyboard input and returns updated model state and command.
// Returns true if the key was handled, false otherwise.
func (m *Model) HandleKeyMsg(msg tea.KeyMsg) (bool, tea.Cmd) {
	key := msg.String()

	if key == KeyQuitAlt {
		m.quit()
		return true, tea.Quit
	}

	// The text input swallows everything except submit and cancel.
	if m.inputMode != InputNone {
		return m.handleInputKey(msg)
	}

	// Help toggle takes priority
	if key == KeyToggleHelp {
		m.showHelp = !m.showHelp
		if m.showHelp {
			m.refreshHelp()
		}
		return true, nil
	}

	// If help is showing, Esc closes it and other keys scroll it
	if m.showHelp {
		if key == KeyCollapse {
			m.showHelp = false
			return true, nil
		}
		var cmd tea.Cmd
		m.helpView, cmd = m.helpView.Update(msg)
		return true, cmd
	}

	switch key {
	case KeyQuit:
		m.quit()
		return true, tea.Quit

	case KeyRefresh:
		if m.current == nil {
			return true, nil
		}
		return true, m.refreshCmd()

	case KeyLookup:
		return true, m.openInput(InputLookup)

	case KeySearch:
		return true, m.openInput(InputSearch)

	case KeyBrowse:
		return true, m.openInput(InputFilter)

	case KeyToggleFav:
		if m.current == nil {
			return true, nil
		}
		return true, m.toggleFavoriteCmd()

	case KeyShowFavorites:
		m.setView(ViewFavorites)
		return true, nil

	case KeyShowRecent:
		m.setView(ViewRecent)
		return true, nil

	case KeySelectPrev, KeySelectPrevK:
		if m.selected > 0 {
			m.selected--
		}
		return true, nil

	case KeySelectNext, KeySelectNextJ:
		if m.selected < m.listLen()-1 {
			m.selected++
		}
		return true, nil

	case KeySelectFirst:
		m.selected = 0
		return true, nil

	case KeySelectLast:
		if n := m.listLen(); n > 0 {
			m.selected = n - 1
		}
		return true, nil

	case KeyExpand:
		return true, m.selectCmd()

	case KeyCollapse:
		m.setView(ViewServer)
		return true, nil
	}

	return false, nil
}

// handleInputKey routes keys while the text input is open.
func (m *Model) handleInputKey(msg tea.KeyMsg) (bool, tea.Cmd) {
	switch msg.String() {
	case KeyCollapse:
		m.closeInput()
		return true, nil

	case KeyExpand:
		mode := m.inputMode
		value := strings.TrimSpace(m.input.Value())
		m.closeInput()
		return true, m.submitCmd(mode, value)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return true, cmd
}
