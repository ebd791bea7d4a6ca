package monitor

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// The dashboard chart is drawn with braille cells. Each cell holds two
// samples side by side and four height levels, so a chart of width w and
// height h plots 2w samples at 4h levels.

const brailleBlank = '\u2800'

// dotBit[level][side] is the braille bit for a dot, level 0 being the
// bottom of the cell and side 0 the left column.
var dotBit = [4][2]rune{
	{0x40, 0x80},
	{0x04, 0x20},
	{0x02, 0x10},
	{0x01, 0x08},
}

// RenderPlayerChart plots series (oldest first) as a braille bar chart.
// Occupancy series are scaled to 0-100 and each cell is colored by the
// busiest sample in it; raw player counts are scaled to their peak and drawn
// in ColorGraph. The newest sample sits at the right edge; samples that do
// not fit are dropped from the left.
func RenderPlayerChart(series []float64, width, height int, occupancy bool) string {
	if len(series) == 0 || width <= 0 || height <= 0 {
		return ""
	}

	slots := width * 2
	if len(series) > slots {
		series = series[len(series)-slots:]
	}
	offset := slots - len(series)
	scale := chartScale(series, occupancy)
	levels := height * 4

	cells := make([][]rune, height)
	for row := range cells {
		cells[row] = []rune(strings.Repeat(string(brailleBlank), width))
	}
	peaks := make([]float64, width)

	for i, v := range series {
		slot := offset + i
		col, side := slot/2, slot%2
		if v > peaks[col] {
			peaks[col] = v
		}
		for level := 0; level < barLevels(v, scale, levels); level++ {
			row := height - 1 - level/4
			cells[row][col] |= dotBit[level%4][side]
		}
	}

	rows := make([]string, height)
	for r, line := range cells {
		var b strings.Builder
		for col, ch := range line {
			color := ColorGraph
			if occupancy {
				color = MetricColor(peaks[col])
			}
			b.WriteString(lipgloss.NewStyle().Foreground(color).Background(ColorSurfaceBg).Render(string(ch)))
		}
		rows[r] = b.String()
	}
	return strings.Join(rows, "\n")
}

// chartScale is the value drawn at full height.
func chartScale(series []float64, occupancy bool) float64 {
	if occupancy {
		return 100
	}
	peak := 0.0
	for _, v := range series {
		if v > peak {
			peak = v
		}
	}
	return peak
}

// barLevels converts v to a bar height out of levels. Any non-zero value
// gets at least one dot so a nearly empty server still shows up.
func barLevels(v, scale float64, levels int) int {
	if v <= 0 || scale <= 0 {
		return 0
	}
	n := int(v/scale*float64(levels) + 0.5)
	if n < 1 {
		return 1
	}
	if n > levels {
		return levels
	}
	return n
}
