package monitor

import (
	"time"

	"github.com/rileyhilliard/cfx/internal/server"
)

// HistorySample is one recorded player count.
type HistorySample struct {
	Timestamp time.Time `json:"timestamp"`
	Players   int       `json:"players"`
}

// Severity tags a notification for the render surface.
type Severity int

const (
	SeverityInfo Severity = iota
	SeveritySuccess
	SeverityError
)

// String returns the severity label.
func (s Severity) String() string {
	switch s {
	case SeveritySuccess:
		return "success"
	case SeverityError:
		return "error"
	default:
		return "info"
	}
}

// Notification is a transient message shown to the user.
type Notification struct {
	Message  string
	Severity Severity
	Time     time.Time
}

// Lists carries the current favorites and recent searches.
type Lists struct {
	Favorites []server.Snapshot
	Recent    []string
}
