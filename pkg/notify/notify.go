// Package notify delivers short severity-tagged messages to whatever is
// displaying them: a colored stderr line for one-shot commands or the
// status bar in the terminal UI.
package notify

import (
	"sync"
	"time"
)

// Severity tags a notification.
type Severity string

const (
	Success Severity = "success"
	Error   Severity = "error"
	Warning Severity = "warning"
	Info    Severity = "info"
)

const (
	// MaxVisible is how many notifications are kept for display at once.
	MaxVisible = 3
	// AutoHide is how long a notification stays visible.
	AutoHide = 3 * time.Second
)

// Notification is a single delivered message.
type Notification struct {
	ID       int
	Message  string
	Severity Severity
	At       time.Time
}

// Notifier is the narrow interface consumers depend on.
type Notifier interface {
	Notify(msg string, severity Severity)
}

// Sink receives every notification that survives de-duplication.
type Sink func(Notification)

// Center is the process notification hub. The zero value is not usable; use
// NewCenter.
type Center struct {
	mu      sync.Mutex
	now     func() time.Time
	nextID  int
	visible []Notification
	sinks   []Sink
}

// NewCenter creates an empty notification center.
func NewCenter() *Center {
	return &Center{now: time.Now}
}

// WithClock replaces the time source. Used by tests.
func (c *Center) WithClock(now func() time.Time) *Center {
	c.now = now
	return c
}

// Subscribe registers a sink. Sinks run synchronously on the notifying
// goroutine, outside the center's lock.
func (c *Center) Subscribe(s Sink) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sinks = append(c.sinks, s)
}

// Notify publishes msg. An empty severity means Success. A message identical
// to the most recent visible one (same text and severity) is dropped.
func (c *Center) Notify(msg string, severity Severity) {
	if severity == "" {
		severity = Success
	}

	c.mu.Lock()
	now := c.now()
	c.expire(now)
	if n := len(c.visible); n > 0 {
		last := c.visible[n-1]
		if last.Message == msg && last.Severity == severity {
			c.mu.Unlock()
			return
		}
	}

	c.nextID++
	note := Notification{ID: c.nextID, Message: msg, Severity: severity, At: now}
	c.visible = append(c.visible, note)
	if len(c.visible) > MaxVisible {
		c.visible = c.visible[len(c.visible)-MaxVisible:]
	}
	sinks := append([]Sink(nil), c.sinks...)
	c.mu.Unlock()

	for _, s := range sinks {
		s(note)
	}
}

// Visible returns the notifications still on screen, oldest first.
func (c *Center) Visible() []Notification {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.expire(c.now())
	return append([]Notification(nil), c.visible...)
}

// Dismiss removes a notification before it auto-hides.
func (c *Center) Dismiss(id int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, n := range c.visible {
		if n.ID == id {
			c.visible = append(c.visible[:i], c.visible[i+1:]...)
			return
		}
	}
}

func (c *Center) expire(now time.Time) {
	kept := c.visible[:0]
	for _, n := range c.visible {
		if now.Sub(n.At) < AutoHide {
			kept = append(kept, n)
		}
	}
	c.visible = kept
}
