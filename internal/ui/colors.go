package ui

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Neon palette shared by the CLI output and the dashboard.
const (
	ColorNeonPink    lipgloss.Color = "#FF2E97"
	ColorNeonCyan    lipgloss.Color = "#00FFFF"
	ColorNeonPurple  lipgloss.Color = "#BF40FF"
	ColorNeonGreen   lipgloss.Color = "#39FF14"
	ColorNeonOrange  lipgloss.Color = "#FF6B35"
	ColorNeonAmber   lipgloss.Color = "#FFAA00"
	ColorDeepVoid    lipgloss.Color = "#0A0A0F"
	ColorDarkSurface lipgloss.Color = "#12121A"
	ColorGlassBorder lipgloss.Color = "#2A2A4A"
)

// Semantic colors
const (
	ColorSuccess lipgloss.Color = "#39FF14"
	ColorError   lipgloss.Color = "#FF0055"
	ColorWarning lipgloss.Color = "#FFAA00"
	ColorInfo    lipgloss.Color = "#00FFFF"
)

// Text colors
const (
	ColorPrimary   lipgloss.Color = "#FFFFFF"
	ColorSecondary lipgloss.Color = "#B4B4D0"
	ColorMuted     lipgloss.Color = "#6B6B8D"
)

// GradientColors is the spinner color cycle.
var GradientColors = []lipgloss.Color{
	ColorNeonPink,
	ColorNeonPurple,
	ColorNeonCyan,
	ColorNeonGreen,
}

func SuccessStyle() lipgloss.Style { return lipgloss.NewStyle().Foreground(ColorSuccess) }
func ErrorStyle() lipgloss.Style   { return lipgloss.NewStyle().Foreground(ColorError) }
func WarningStyle() lipgloss.Style { return lipgloss.NewStyle().Foreground(ColorWarning) }
func InfoStyle() lipgloss.Style    { return lipgloss.NewStyle().Foreground(ColorInfo) }
func MutedStyle() lipgloss.Style   { return lipgloss.NewStyle().Foreground(ColorMuted) }

// PrintWarning prints a warning line to stderr.
func PrintWarning(msg string) {
	fmt.Fprintln(os.Stderr, WarningStyle().Render(SymbolWarning+" "+msg))
}

// DisableColors switches lipgloss to plain output. Used for --no-color and
// when NO_COLOR is set.
func DisableColors() {
	lipgloss.SetColorProfile(termenv.Ascii)
}
