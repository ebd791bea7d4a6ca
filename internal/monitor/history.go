package monitor

import (
	"sync"
	"time"
)

// DefaultHistorySize is the number of samples kept per server (CHART_POINTS).
const DefaultHistorySize = 24

// History keeps a bounded rolling series of player-count samples per server id
// using ring buffers. It provides thread-safe access for chart rendering.
// Eviction is purely by count: the oldest sample goes first once a buffer is full.
type History struct {
	mu      sync.RWMutex
	size    int
	servers map[string]*ringBuffer
}

// ringBuffer is a fixed-size circular buffer of samples.
type ringBuffer struct {
	data  []HistorySample
	head  int
	count int
	size  int
}

// NewHistory creates a new history tracker with the specified buffer size.
func NewHistory(size int) *History {
	if size <= 0 {
		size = DefaultHistorySize
	}
	return &History{
		size:    size,
		servers: make(map[string]*ringBuffer),
	}
}

// Size returns the per-server capacity.
func (h *History) Size() int {
	return h.size
}

// Record appends a sample to id's buffer, creating the buffer if absent.
func (h *History) Record(id string, players int, at time.Time) {
	h.mu.Lock()
	defer h.mu.Unlock()

	buf, ok := h.servers[id]
	if !ok {
		buf = newRingBuffer(h.size)
		h.servers[id] = buf
	}
	buf.push(HistorySample{Timestamp: at, Players: players})
}

// Get returns id's samples oldest first. Returns nil for an unknown id;
// reading never creates a buffer.
func (h *History) Get(id string) []HistorySample {
	h.mu.RLock()
	defer h.mu.RUnlock()

	buf, ok := h.servers[id]
	if !ok {
		return nil
	}
	return buf.getAll()
}

// Players returns id's player counts oldest first, for sparkline rendering.
func (h *History) Players(id string) []float64 {
	samples := h.Get(id)
	if len(samples) == 0 {
		return nil
	}
	out := make([]float64, len(samples))
	for i, s := range samples {
		out[i] = float64(s.Players)
	}
	return out
}

// Len returns the number of samples stored for id.
func (h *History) Len(id string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	buf, ok := h.servers[id]
	if !ok {
		return 0
	}
	return buf.count
}

// Clear removes all history for id.
func (h *History) Clear(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.servers, id)
}

// newRingBuffer creates a new ring buffer with the specified capacity.
func newRingBuffer(size int) *ringBuffer {
	return &ringBuffer{
		data: make([]HistorySample, size),
		size: size,
	}
}

// push adds a sample, overwriting the oldest one when full.
func (r *ringBuffer) push(s HistorySample) {
	r.data[r.head] = s
	r.head = (r.head + 1) % r.size
	if r.count < r.size {
		r.count++
	}
}

// getAll returns all stored samples in chronological order.
func (r *ringBuffer) getAll() []HistorySample {
	if r.count == 0 {
		return nil
	}

	result := make([]HistorySample, r.count)

	// head points to the next write position, so the oldest value is count
	// slots behind it.
	start := (r.head - r.count + r.size) % r.size
	for i := 0; i < r.count; i++ {
		result[i] = r.data[(start+i)%r.size]
	}
	return result
}
