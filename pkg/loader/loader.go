// Package loader implements the busy indicator shared by every view.
//
// It is reference counted: overlapping operations each Show and Hide, and
// the indicator stays on until the last one finishes.
package loader

import "sync"

// Loader is a reference-counted busy flag. The zero value is ready to use.
type Loader struct {
	mu       sync.Mutex
	count    int
	onChange []func(busy bool)

	// emit serializes delivery so listeners see edges in order and the
	// last value delivered matches Busy.
	emit sync.Mutex
	sent bool
}

// New returns an idle loader.
func New() *Loader {
	return &Loader{}
}

// OnChange registers fn to be called whenever Busy flips. fn must not call
// back into the loader.
func (l *Loader) OnChange(fn func(busy bool)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.onChange = append(l.onChange, fn)
}

// Show marks one more operation as outstanding.
func (l *Loader) Show() {
	l.mu.Lock()
	l.count++
	l.mu.Unlock()
	l.notify()
}

// Hide marks one operation as finished. The count never drops below zero.
func (l *Loader) Hide() {
	l.mu.Lock()
	if l.count == 0 {
		l.mu.Unlock()
		return
	}
	l.count--
	l.mu.Unlock()
	l.notify()
}

// Busy reports whether any operation is outstanding.
func (l *Loader) Busy() bool {
	return l.Count() > 0
}

// Count returns the number of outstanding operations.
func (l *Loader) Count() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.count
}

// Track brackets fn with Show and Hide.
func (l *Loader) Track(fn func() error) error {
	l.Show()
	defer l.Hide()
	return fn()
}

// notify delivers the current state if it differs from the last one sent.
// A goroutine that loses the race to a later flip delivers nothing.
func (l *Loader) notify() {
	l.emit.Lock()
	defer l.emit.Unlock()

	l.mu.Lock()
	busy := l.count > 0
	if busy == l.sent {
		l.mu.Unlock()
		return
	}
	l.sent = busy
	fns := append(([]func(bool))(nil), l.onChange...)
	l.mu.Unlock()

	for _, fn := range fns {
		fn(busy)
	}
}
