package monitor

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHelpMarkdown_ListsEveryBinding(t *testing.T) {
	md := helpMarkdown()

	assert.True(t, strings.HasPrefix(md, "# Keyboard shortcuts"))
	for _, b := range helpBindings {
		assert.Contains(t, md, "`"+b.Key+"`")
		assert.Contains(t, md, b.Desc)
	}
}

func TestRenderHelpMarkdown(t *testing.T) {
	out, err := renderHelpMarkdown(80)
	require.NoError(t, err)

	assert.Contains(t, out, "Keyboard")
	assert.Contains(t, out, "Quit")
}

func TestRenderHelpPlain(t *testing.T) {
	plainOutput(t)
	out := renderHelpPlain()

	lines := strings.Split(out, "\n")
	assert.Greater(t, len(lines), len(helpBindings))
	assert.Contains(t, out, "Search the directory")
}

func TestHelpSize(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		wantW, wantH  int
	}{
		{"unknown terminal", 0, 0, defaultWidth - 6, 24},
		{"normal", 100, 40, 94, 36},
		{"tiny", 10, 4, 20, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := Model{width: tt.width, height: tt.height}
			w, h := m.helpSize()
			assert.Equal(t, tt.wantW, w)
			assert.Equal(t, tt.wantH, h)
		})
	}
}
