package ui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// sparkBlocks are the eight bar heights, shortest first.
var sparkBlocks = []rune("▁▂▃▄▅▆▇█")

// Occupancy percentages at which player counts turn amber and red.
const (
	OccupancyWarning  = 70.0
	OccupancyCritical = 90.0
)

// RenderSparkline draws the newest width occupancy percentages as a single
// row of block characters on a fixed 0-100 scale, so an idle server sits on
// the floor and a full one hits the top. The row takes the color of the
// latest sample.
func RenderSparkline(percent []float64, width int) string {
	if len(percent) == 0 || width <= 0 {
		return ""
	}
	if len(percent) > width {
		percent = percent[len(percent)-width:]
	}

	var sb strings.Builder
	for _, p := range percent {
		sb.WriteRune(sparkBlocks[sparkLevel(p)])
	}

	latest := percent[len(percent)-1]
	return lipgloss.NewStyle().Foreground(OccupancyColor(latest)).Render(sb.String())
}

// sparkLevel maps a percentage onto an index into sparkBlocks.
func sparkLevel(p float64) int {
	top := len(sparkBlocks) - 1
	level := int(math.Round(p / 100 * float64(top)))
	return max(0, min(level, top))
}

// OccupancyColor colors an occupancy percentage: green, then amber from
// OccupancyWarning, then red from OccupancyCritical.
func OccupancyColor(p float64) lipgloss.Color {
	switch {
	case p >= OccupancyCritical:
		return ColorError
	case p >= OccupancyWarning:
		return ColorWarning
	default:
		return ColorSuccess
	}
}
