package ui

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
)

func TestRenderSparkline(t *testing.T) {
	tests := []struct {
		name    string
		percent []float64
		width   int
		want    string
	}{
		{"nil", nil, 10, ""},
		{"zero width", []float64{50}, 0, ""},
		{"negative width", []float64{50}, -3, ""},
		{"floor and ceiling", []float64{0, 100}, 10, "▁█"},
		{"fixed scale", []float64{50, 50, 50}, 10, "▅▅▅"},
		{"ramp", []float64{0, 15, 29, 43, 58, 72, 86, 100}, 10, "▁▂▃▄▅▆▇█"},
		{"keeps newest", []float64{100, 100, 0, 0}, 2, "▁▁"},
		{"clamps out of range", []float64{-20, 250}, 10, "▁█"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, stripANSI(RenderSparkline(tt.percent, tt.width)))
		})
	}
}

func TestSparkLevel(t *testing.T) {
	assert.Equal(t, 0, sparkLevel(0))
	assert.Equal(t, 0, sparkLevel(7))
	assert.Equal(t, 1, sparkLevel(8))
	assert.Equal(t, 7, sparkLevel(100))
}

func TestRenderSparkline_ColorFollowsLatest(t *testing.T) {
	prev := lipgloss.ColorProfile()
	t.Cleanup(func() { lipgloss.SetColorProfile(prev) })
	lipgloss.SetColorProfile(termenv.TrueColor)

	tests := []struct {
		name   string
		latest float64
		color  lipgloss.Color
	}{
		{"healthy", 40, ColorSuccess},
		{"warning", OccupancyWarning, ColorWarning},
		{"critical", OccupancyCritical, ColorError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RenderSparkline([]float64{100, tt.latest}, 5)
			want := lipgloss.NewStyle().Foreground(tt.color).Render(stripANSI(got))
			assert.Equal(t, want, got)
			assert.Equal(t, tt.color, OccupancyColor(tt.latest))
		})
	}
}
