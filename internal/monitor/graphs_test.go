package monitor

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	// Force TrueColor output in tests so we can verify ANSI color codes
	lipgloss.SetColorProfile(termenv.TrueColor)
}

// RGB forms of the palette as they appear in TrueColor escape sequences.
const (
	ansiHealthy  = "38;2;57;255;20"
	ansiWarning  = "38;2;255;170;0"
	ansiCritical = "38;2;255;0;85"
)

func TestBarLevels(t *testing.T) {
	tests := []struct {
		name  string
		v     float64
		scale float64
		want  int
	}{
		{"empty server", 0, 100, 0},
		{"unknown scale", 10, 0, 0},
		{"tiny value still shows", 1, 100, 1},
		{"half", 50, 100, 8},
		{"full", 100, 100, 16},
		{"over scale is clamped", 150, 100, 16},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, barLevels(tt.v, tt.scale, 16))
		})
	}
}

func TestChartScale(t *testing.T) {
	assert.Equal(t, 100.0, chartScale([]float64{5, 10}, true))
	assert.Equal(t, 64.0, chartScale([]float64{16, 64, 32}, false))
	assert.Equal(t, 0.0, chartScale(nil, false))
}

func TestRenderPlayerChart_Empty(t *testing.T) {
	assert.Empty(t, RenderPlayerChart(nil, 10, 4, true))
	assert.Empty(t, RenderPlayerChart([]float64{50}, 0, 4, true))
	assert.Empty(t, RenderPlayerChart([]float64{50}, 10, 0, true))
}

func TestRenderPlayerChart_RowCount(t *testing.T) {
	result := RenderPlayerChart([]float64{25, 50, 75, 100}, 12, 3, true)
	assert.Len(t, strings.Split(result, "\n"), 3)
}

func TestRenderPlayerChart_Cells(t *testing.T) {
	lipgloss.SetColorProfile(termenv.Ascii)
	defer lipgloss.SetColorProfile(termenv.TrueColor)

	tests := []struct {
		name   string
		series []float64
		want   string
	}{
		{"full pair fills the cell", []float64{100, 100}, "\u28ff"},
		{"left column only", []float64{100, 0}, "\u2847"},
		{"right column only", []float64{0, 100}, "\u28b8"},
		{"bottom dots", []float64{25, 25}, "\u28c0"},
		{"nothing", []float64{0, 0}, "\u2800"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RenderPlayerChart(tt.series, 1, 1, true))
		})
	}
}

func TestRenderPlayerChart_RightAligned(t *testing.T) {
	lipgloss.SetColorProfile(termenv.Ascii)
	defer lipgloss.SetColorProfile(termenv.TrueColor)

	runes := []rune(RenderPlayerChart([]float64{100, 100}, 6, 1, true))
	require.Len(t, runes, 6)
	assert.Equal(t, brailleBlank, runes[0], "older slots are blank")
	assert.Equal(t, '\u28ff', runes[5], "newest samples are on the right")
}

func TestRenderPlayerChart_KeepsNewestWhenTooLong(t *testing.T) {
	lipgloss.SetColorProfile(termenv.Ascii)
	defer lipgloss.SetColorProfile(termenv.TrueColor)

	data := make([]float64, DefaultHistorySize)
	data[len(data)-1] = 100

	runes := []rune(RenderPlayerChart(data, 2, 1, true))
	require.Len(t, runes, 2)
	assert.Equal(t, brailleBlank, runes[0])
	assert.Equal(t, '\u28b8', runes[1])
}

func TestRenderPlayerChart_RawCountsScaleToPeak(t *testing.T) {
	lipgloss.SetColorProfile(termenv.Ascii)
	defer lipgloss.SetColorProfile(termenv.TrueColor)

	assert.Equal(t, "\u28ff", RenderPlayerChart([]float64{300, 300}, 1, 1, false))
}

func TestRenderPlayerChart_ColorsByOccupancy(t *testing.T) {
	tests := []struct {
		name    string
		data    []float64
		want    string
		notWant string
	}{
		{"quiet server is green", []float64{20, 25, 30, 20}, ansiHealthy, ansiCritical},
		{"busy server is amber", []float64{75, 80, 85, 75}, ansiWarning, ""},
		{"full server is red", []float64{92, 95, 98, 100}, ansiCritical, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := RenderPlayerChart(tt.data, 10, 2, true)
			assert.Contains(t, result, tt.want)
			if tt.notWant != "" {
				assert.NotContains(t, result, tt.notWant)
			}
		})
	}
}

func TestOccupancySeries(t *testing.T) {
	samples := []HistorySample{{Players: 16}, {Players: 32}, {Players: 64}}

	assert.Equal(t, []float64{25, 50, 100}, occupancySeries(samples, 64))
	assert.Equal(t, []float64{16, 32, 64}, occupancySeries(samples, 0), "raw counts when max is unknown")
	assert.Nil(t, occupancySeries(nil, 64))
}
