// Package debounce coalesces bursts of work per key.
//
// A Map holds at most one scheduled task per key. Scheduling again under the
// same key cancels the earlier task and restarts the quiet period, so only
// the last task of a burst runs.
package debounce

import (
	"context"
	"sync"
	"time"
)

// Map is a per-key pending timer map.
type Map struct {
	delay time.Duration

	mu       sync.Mutex
	entries  map[string]*entry
	inflight int
	waiters  []chan struct{}
}

type entry struct {
	key   string
	timer *time.Timer
	fn    func()
}

// New returns a map that waits delay after the last Schedule before running.
func New(delay time.Duration) *Map {
	if delay < 0 {
		delay = 0
	}
	return &Map{
		delay:   delay,
		entries: make(map[string]*entry),
	}
}

// Delay returns the quiet period.
func (m *Map) Delay() time.Duration {
	return m.delay
}

// Schedule runs fn after the quiet period unless key is scheduled again first.
func (m *Map) Schedule(key string, fn func()) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if prev, ok := m.entries[key]; ok {
		m.stop(prev)
	}

	e := &entry{key: key, fn: fn}
	m.inflight++
	e.timer = time.AfterFunc(m.delay, func() { m.fire(e) })
	m.entries[key] = e
}

// Cancel drops the task scheduled under key, if any.
func (m *Map) Cancel(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if e, ok := m.entries[key]; ok {
		m.stop(e)
	}
}

// Pending reports how many keys have a task waiting.
func (m *Map) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

// Scheduled reports whether key has a task waiting.
func (m *Map) Scheduled(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.entries[key]
	return ok
}

// FireAll runs every waiting task now, each on its own goroutine, without
// waiting for them to finish.
func (m *Map) FireAll() {
	m.mu.Lock()
	var due []*entry
	for key, e := range m.entries {
		if e.timer.Stop() {
			delete(m.entries, key)
			due = append(due, e)
		}
		// Stop failed: the timer goroutine already owns e and will run it.
	}
	m.mu.Unlock()

	for _, e := range due {
		go func(e *entry) {
			defer m.done()
			e.fn()
		}(e)
	}
}

// Wait blocks until every scheduled or running task has finished.
func (m *Map) Wait(ctx context.Context) error {
	m.mu.Lock()
	if m.inflight == 0 {
		m.mu.Unlock()
		return nil
	}
	done := make(chan struct{})
	m.waiters = append(m.waiters, done)
	m.mu.Unlock()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Flush fires every waiting task and waits for all of them.
func (m *Map) Flush(ctx context.Context) error {
	m.FireAll()
	return m.Wait(ctx)
}

func (m *Map) fire(e *entry) {
	defer m.done()

	m.mu.Lock()
	if m.entries[e.key] != e {
		// Replaced or cancelled while this callback waited for the lock.
		m.mu.Unlock()
		return
	}
	delete(m.entries, e.key)
	m.mu.Unlock()

	e.fn()
}

// stop removes e. Caller holds m.mu.
func (m *Map) stop(e *entry) {
	delete(m.entries, e.key)
	if e.timer.Stop() {
		m.release()
	}
}

func (m *Map) done() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.release()
}

// release retires one task and wakes waiters once none remain. Caller holds m.mu.
func (m *Map) release() {
	m.inflight--
	if m.inflight > 0 {
		return
	}
	for _, ch := range m.waiters {
		close(ch)
	}
	m.waiters = nil
}
