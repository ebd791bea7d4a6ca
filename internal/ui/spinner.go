package ui

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/lipgloss"
)

// SpinnerFrames is the quarter-circle animation shared by the terminal
// spinner and the dashboard's Activity line.
var SpinnerFrames = spinner.Spinner{
	Frames: []string{"◐", "◓", "◑", "◒"},
	FPS:    time.Second / 10,
}

// Spinner animates a status line while a one-shot command waits on the
// network. It redraws in place with carriage returns, so only point it at a
// terminal.
type Spinner struct {
	out   io.Writer
	label string
	start time.Time

	mu    sync.Mutex
	width int // visible width of the frame on screen
	stop  chan struct{}
	done  chan struct{}
}

// NewSpinner creates a spinner that draws to stderr.
func NewSpinner(label string) *Spinner {
	return &Spinner{out: os.Stderr, label: label}
}

// SetOutput redirects the spinner. Call before Start.
func (s *Spinner) SetOutput(w io.Writer) {
	s.out = w
}

// Start draws the first frame and animates until Success or Fail.
// Starting a running spinner does nothing.
func (s *Spinner) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stop != nil {
		return
	}

	s.start = time.Now()
	s.stop = make(chan struct{})
	s.done = make(chan struct{})
	s.drawLocked(0)
	go s.loop(s.stop, s.done)
}

func (s *Spinner) loop(stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	ticker := time.NewTicker(SpinnerFrames.FPS)
	defer ticker.Stop()

	for frame := 1; ; frame++ {
		select {
		case <-stop:
			return
		case <-ticker.C:
			s.mu.Lock()
			s.drawLocked(frame)
			s.mu.Unlock()
		}
	}
}

// Success replaces the animation with a completed line and the elapsed time.
func (s *Spinner) Success() {
	s.finish(SymbolComplete, ColorSuccess)
}

// Fail replaces the animation with a failed line and the elapsed time.
func (s *Spinner) Fail() {
	s.finish(SymbolFail, ColorError)
}

func (s *Spinner) finish(symbol string, color lipgloss.Color) {
	s.mu.Lock()
	stop, done := s.stop, s.done
	s.stop = nil
	s.mu.Unlock()

	if stop == nil {
		return
	}
	close(stop)
	<-done

	s.mu.Lock()
	defer s.mu.Unlock()
	s.eraseLocked()
	fmt.Fprintf(s.out, "%s %s %s\n",
		lipgloss.NewStyle().Foreground(color).Render(symbol),
		s.label,
		MutedStyle().Render(formatDuration(time.Since(s.start))))
}

func (s *Spinner) drawLocked(frame int) {
	frames := SpinnerFrames.Frames
	color := GradientColors[(frame/2)%len(GradientColors)]
	line := lipgloss.NewStyle().Foreground(color).Render(frames[frame%len(frames)]) + " " + s.label + "..."

	s.eraseLocked()
	fmt.Fprint(s.out, line)
	s.width = lipgloss.Width(line)
}

func (s *Spinner) eraseLocked() {
	if s.width == 0 {
		return
	}
	fmt.Fprint(s.out, "\r"+strings.Repeat(" ", s.width)+"\r")
	s.width = 0
}

// formatDuration formats a duration like "0.05s" or "1.2s".
func formatDuration(d time.Duration) string {
	secs := d.Seconds()
	if secs < 0.1 {
		return fmt.Sprintf("%.2fs", secs)
	}
	return fmt.Sprintf("%.1fs", secs)
}
