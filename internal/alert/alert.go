package alert

import (
	"sync"
	"time"
)

// Type is the severity category of an alert
type Type string

const (
	TypeError   Type = "error"
	TypeWarning Type = "warning"
	TypeSuccess Type = "success"
	TypeInfo    Type = "info"
)

// DefaultDuration is used for auto-closing alerts that do not set one
const DefaultDuration = 3 * time.Second

// Alert is a transient notification for the UI
type Alert struct {
	Message   string
	Type      Type
	AutoClose bool
	Duration  time.Duration
}

// Helper holds at most one alert. Showing a new alert replaces the current one.
type Helper struct {
	mu      sync.Mutex
	current *Alert
	shownAt time.Time
	now     func() time.Time
}

// NewHelper creates an empty helper
func NewHelper() *Helper {
	return &Helper{now: time.Now}
}

// Show replaces the current alert
func (h *Helper) Show(a Alert) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.current = &a
	h.shownAt = h.clock()
}

// Error is shorthand for an auto-closing error alert
func (h *Helper) Error(msg string) {
	h.Show(Alert{Message: msg, Type: TypeError, AutoClose: true, Duration: 5 * time.Second})
}

// Success is shorthand for an auto-closing success alert
func (h *Helper) Success(msg string) {
	h.Show(Alert{Message: msg, Type: TypeSuccess, AutoClose: true})
}

// Clear removes the current alert
func (h *Helper) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.current = nil
}

// Current returns the alert being shown, if any
func (h *Helper) Current() (Alert, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.current == nil {
		return Alert{}, false
	}
	return *h.current, true
}

// Expired reports whether the current alert auto-closes and has outlived its duration
func (h *Helper) Expired(now time.Time) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.current == nil || !h.current.AutoClose {
		return false
	}
	d := h.current.Duration
	if d <= 0 {
		d = DefaultDuration
	}
	return now.Sub(h.shownAt) >= d
}

// ClearExpired clears the current alert if it has expired and reports whether it did
func (h *Helper) ClearExpired(now time.Time) bool {
	if !h.Expired(now) {
		return false
	}
	h.Clear()
	return true
}

func (h *Helper) clock() time.Time {
	if h.now == nil {
		return time.Now()
	}
	return h.now()
}
