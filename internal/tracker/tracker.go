// Package tracker keeps the client-side model of the habit tracker in sync
// with the backend.
//
// The Tracker fetches headings and steps, groups them, seeds a pending value
// for every tracked step, and applies edits optimistically. Each edit
// schedules a debounced write keyed by step, so a burst of clicks produces a
// single request carrying the final value. Failed writes are reported but
// not rolled back; the step is flagged until the next Refresh reconciles it
// with the server.
package tracker

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/VisheshVGR/do-i-deserve-it-website/pkg/api"
	"github.com/VisheshVGR/do-i-deserve-it-website/pkg/debounce"
	"github.com/VisheshVGR/do-i-deserve-it-website/pkg/logger"
	"github.com/VisheshVGR/do-i-deserve-it-website/pkg/notify"
)

// DefaultDebounce is the quiet period before an edit is written.
const DefaultDebounce = 500 * time.Millisecond

var (
	ErrClosed         = errors.New("tracker is closed")
	ErrUnknownStep    = errors.New("unknown step")
	ErrUnknownHeading = errors.New("unknown heading")
	ErrNotTracked     = errors.New("step does not take daily input")
	ErrNotBool        = errors.New("only bool steps can be toggled")
)

// StepAPI is the subset of the backend the tracker needs.
type StepAPI interface {
	ListHeadings(ctx context.Context) ([]api.Heading, error)
	ListSteps(ctx context.Context) ([]api.Step, error)
	RecordStepData(ctx context.Context, id string, req api.StepDataRequest) error
	ToggleHeading(ctx context.Context, id string, expanded bool) error
}

// Busy is the loader interface.
type Busy interface {
	Show()
	Hide()
}

type nopBusy struct{}

func (nopBusy) Show() {}
func (nopBusy) Hide() {}

type nopNotifier struct{}

func (nopNotifier) Notify(string, notify.Severity) {}

// Option configures a Tracker.
type Option func(*Tracker)

// WithDebounce sets the write quiet period.
func WithDebounce(d time.Duration) Option {
	return func(t *Tracker) { t.delay = d }
}

// WithClock sets the time source used for today's date and weekday.
func WithClock(now func() time.Time) Option {
	return func(t *Tracker) { t.now = now }
}

// WithLoader brackets every network call with Show and Hide.
func WithLoader(b Busy) Option {
	return func(t *Tracker) { t.loader = b }
}

// WithNotifier reports failures.
func WithNotifier(n notify.Notifier) Option {
	return func(t *Tracker) { t.notifier = n }
}

// WithWriteTimeout bounds each write request.
func WithWriteTimeout(d time.Duration) Option {
	return func(t *Tracker) { t.writeTimeout = d }
}

type stepState struct {
	step     api.Step
	tracked  bool
	pending  int
	synced   int
	writeErr bool
}

type groupState struct {
	heading api.Heading
	others  bool
	stepIDs []string
}

// Tracker owns the grouped view model and all pending values.
type Tracker struct {
	api          StepAPI
	loader       Busy
	notifier     notify.Notifier
	now          func() time.Time
	delay        time.Duration
	writeTimeout time.Duration
	writes       *debounce.Map

	alive atomic.Bool

	mu         sync.Mutex
	generation int
	loaded     bool
	groups     []groupState
	steps      map[string]*stepState
	expanded   map[string]bool
	inflight   map[string]int
	listeners  []func()
}

// New creates a tracker. Call Load to populate it and Close when the view
// goes away.
func New(stepAPI StepAPI, opts ...Option) *Tracker {
	t := &Tracker{
		api:          stepAPI,
		loader:       nopBusy{},
		notifier:     nopNotifier{},
		now:          time.Now,
		delay:        DefaultDebounce,
		writeTimeout: 30 * time.Second,
		steps:        map[string]*stepState{},
		expanded:     map[string]bool{},
		inflight:     map[string]int{},
	}
	for _, opt := range opts {
		opt(t)
	}
	t.writes = debounce.New(t.delay)
	t.alive.Store(true)
	return t
}

// OnChange registers fn to run after every state change.
func (t *Tracker) OnChange(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.listeners = append(t.listeners, fn)
}

func (t *Tracker) changed() {
	if !t.alive.Load() {
		return
	}
	t.mu.Lock()
	fns := append([]func(){}, t.listeners...)
	t.mu.Unlock()
	for _, fn := range fns {
		fn()
	}
}

// Today returns the local calendar date in the backend's format.
func (t *Tracker) Today() string {
	return t.now().Format(api.DateLayout)
}

// Weekday returns today's weekday code.
func (t *Tracker) Weekday() api.Weekday {
	return api.WeekdayOf(t.now())
}

// Load fetches headings and steps concurrently and rebuilds the model.
// Results that arrive after Close, or after a newer Load started, are
// discarded.
func (t *Tracker) Load(ctx context.Context) error {
	if !t.alive.Load() {
		return ErrClosed
	}

	t.mu.Lock()
	t.generation++
	gen := t.generation
	t.mu.Unlock()

	var headings []api.Heading
	var steps []api.Step

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		t.loader.Show()
		defer t.loader.Hide()
		var err error
		headings, err = t.api.ListHeadings(gctx)
		return err
	})
	g.Go(func() error {
		t.loader.Show()
		defer t.loader.Hide()
		var err error
		steps, err = t.api.ListSteps(gctx)
		return err
	})
	err := g.Wait()

	t.mu.Lock()
	if !t.alive.Load() {
		t.mu.Unlock()
		logger.Debug("Discarding fetch after close")
		return ErrClosed
	}
	if gen != t.generation {
		t.mu.Unlock()
		logger.Debug("Discarding stale fetch", "generation", gen)
		return nil
	}
	if err != nil {
		t.groups = nil
		t.steps = map[string]*stepState{}
		t.loaded = true
		t.mu.Unlock()

		logger.Error("Failed to load targets", "error", err)
		if !api.IsUnauthorized(err) {
			t.notifier.Notify(api.Message(err, "Failed to load targets"), notify.Error)
		}
		t.changed()
		return err
	}
	t.rebuild(headings, steps)
	t.loaded = true
	t.mu.Unlock()

	logger.Debug("Targets loaded", "headings", len(headings), "steps", len(steps))
	t.changed()
	return nil
}

// Refresh refetches and reconciles optimistic values with the server.
func (t *Tracker) Refresh(ctx context.Context) error {
	return t.Load(ctx)
}

// rebuild replaces the model. Steps with a write scheduled or in flight keep
// their pending value, since the fetch may predate that write; everything
// else is reseeded from the server. Caller holds t.mu.
func (t *Tracker) rebuild(headings []api.Heading, steps []api.Step) {
	groups := GroupSteps(headings, steps)

	next := make(map[string]*stepState, len(steps))
	t.groups = make([]groupState, 0, len(groups))
	for _, g := range groups {
		gs := groupState{heading: g.Heading, others: g.Others}

		if g.Others {
			if _, ok := t.expanded[OthersID]; !ok {
				t.expanded[OthersID] = true
			}
		} else if !t.writes.Scheduled(headingKey(g.Heading.ID)) {
			t.expanded[g.Heading.ID] = g.Heading.Expanded()
		}

		for _, s := range g.Steps {
			seed := Seed(s)
			st := &stepState{step: s, tracked: Tracked(s), pending: seed, synced: seed}
			if prev, ok := t.steps[s.ID]; ok && st.tracked && (t.writes.Scheduled(s.ID) || t.inflight[s.ID] > 0) {
				st.pending = prev.pending
			}
			next[s.ID] = st
			gs.stepIDs = append(gs.stepIDs, s.ID)
		}
		t.groups = append(t.groups, gs)
	}
	t.steps = next
}

// SetValue sets a step's pending value and schedules its write. Values are
// clamped at zero; bool steps clamp to 0 or 1.
func (t *Tracker) SetValue(stepID string, v int) error {
	return t.mutate(stepID, func(*stepState) int { return v })
}

// Increment adds one to a step's pending value.
func (t *Tracker) Increment(stepID string) error {
	return t.mutate(stepID, func(s *stepState) int { return s.pending + 1 })
}

// Decrement subtracts one, stopping at zero.
func (t *Tracker) Decrement(stepID string) error {
	return t.mutate(stepID, func(s *stepState) int { return s.pending - 1 })
}

// Toggle flips a bool step between 0 and 1.
func (t *Tracker) Toggle(stepID string) error {
	t.mu.Lock()
	s, ok := t.steps[stepID]
	isBool := ok && s.step.Type == api.StepBool
	t.mu.Unlock()
	if ok && !isBool {
		return ErrNotBool
	}
	return t.mutate(stepID, func(s *stepState) int { return 1 - s.pending })
}

func (t *Tracker) mutate(stepID string, next func(*stepState) int) error {
	if !t.alive.Load() {
		return ErrClosed
	}

	t.mu.Lock()
	s, ok := t.steps[stepID]
	if !ok {
		t.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrUnknownStep, stepID)
	}
	if !s.tracked {
		t.mu.Unlock()
		return fmt.Errorf("%w: %s is %s", ErrNotTracked, s.step.Title, s.step.Status)
	}
	s.pending = clamp(s.step.Type, next(s))
	t.mu.Unlock()

	t.writes.Schedule(stepID, func() { _ = t.write(context.Background(), stepID, true) })
	t.changed()
	return nil
}

func clamp(typ api.StepType, v int) int {
	if v < 0 {
		return 0
	}
	if typ == api.StepBool && v > 1 {
		return 1
	}
	return v
}

// write sends a step's pending value as read at call time.
func (t *Tracker) write(parent context.Context, stepID string, report bool) error {
	t.mu.Lock()
	s, ok := t.steps[stepID]
	if !ok {
		t.mu.Unlock()
		return nil
	}
	value := clamp(s.step.Type, s.pending)
	title := s.step.Title
	t.inflight[stepID]++
	t.mu.Unlock()

	req := api.StepDataRequest{Date: t.Today(), Count: value}

	ctx, cancel := context.WithTimeout(parent, t.writeTimeout)
	defer cancel()

	t.loader.Show()
	err := t.api.RecordStepData(ctx, stepID, req)
	t.loader.Hide()

	t.mu.Lock()
	t.inflight[stepID]--
	if t.inflight[stepID] <= 0 {
		delete(t.inflight, stepID)
	}
	if s, ok := t.steps[stepID]; ok {
		if err != nil {
			s.writeErr = true
		} else {
			s.writeErr = false
			s.synced = value
		}
	}
	t.mu.Unlock()

	if err != nil {
		logger.Error("Failed to record step data", "step", stepID, "count", value, "error", err)
		if report && !api.IsUnauthorized(err) {
			t.notifier.Notify(api.Message(err, fmt.Sprintf("Failed to save %s", title)), notify.Error)
		}
	} else {
		logger.Debug("Recorded step data", "step", stepID, "date", req.Date, "count", value)
	}
	t.changed()
	return err
}

// ToggleHeading flips a group's expansion. Real headings persist the new
// state after the quiet period; Others stays client-side.
func (t *Tracker) ToggleHeading(headingID string) error {
	if !t.alive.Load() {
		return ErrClosed
	}

	t.mu.Lock()
	found := false
	for _, g := range t.groups {
		if g.heading.ID == headingID {
			found = true
			break
		}
	}
	if !found {
		t.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrUnknownHeading, headingID)
	}
	t.expanded[headingID] = !t.expanded[headingID]
	t.mu.Unlock()

	if headingID != OthersID {
		t.writes.Schedule(headingKey(headingID), func() { t.persistHeading(headingID) })
	}
	t.changed()
	return nil
}

func (t *Tracker) persistHeading(headingID string) {
	t.mu.Lock()
	expanded := t.expanded[headingID]
	t.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), t.writeTimeout)
	defer cancel()

	t.loader.Show()
	err := t.api.ToggleHeading(ctx, headingID, expanded)
	t.loader.Hide()

	if err != nil {
		logger.Error("Failed to persist heading state", "heading", headingID, "error", err)
		if !api.IsUnauthorized(err) {
			t.notifier.Notify(api.Message(err, "Failed to update heading"), notify.Error)
		}
	}
}

func headingKey(id string) string {
	return "heading:" + id
}

// SaveAll writes every step whose pending value differs from the server
// now, instead of waiting for the quiet period.
func (t *Tracker) SaveAll(ctx context.Context) error {
	t.mu.Lock()
	var dirty []string
	for id, s := range t.steps {
		if s.tracked && s.pending != s.synced {
			dirty = append(dirty, id)
		}
	}
	t.mu.Unlock()

	if len(dirty) == 0 {
		return nil
	}

	var g errgroup.Group
	for _, id := range dirty {
		t.writes.Cancel(id)
		g.Go(func() error { return t.write(ctx, id, false) })
	}
	if err := g.Wait(); err != nil {
		if !api.IsUnauthorized(err) {
			t.notifier.Notify("Failed to save changes", notify.Error)
		}
		return err
	}
	t.notifier.Notify("All changes saved!", notify.Success)
	return nil
}

// Flush fires every scheduled write now and waits for all writes to finish.
func (t *Tracker) Flush(ctx context.Context) error {
	return t.writes.Flush(ctx)
}

// Wait blocks until scheduled and in-flight writes are done.
func (t *Tracker) Wait(ctx context.Context) error {
	return t.writes.Wait(ctx)
}

// Close detaches the tracker from its view. Scheduled writes fire
// immediately rather than being dropped, and writes already in flight are
// left to finish. Fetches that complete afterwards are ignored.
func (t *Tracker) Close() {
	if !t.alive.CompareAndSwap(true, false) {
		return
	}
	t.writes.FireAll()
}

// Alive reports whether Close has not been called.
func (t *Tracker) Alive() bool {
	return t.alive.Load()
}

// HasUnsaved reports whether any step differs from its last synced value.
func (t *Tracker) HasUnsaved() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, s := range t.steps {
		if s.tracked && s.pending != s.synced {
			return true
		}
	}
	return false
}

// Pending returns a step's pending value.
func (t *Tracker) Pending(stepID string) (int, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	s, ok := t.steps[stepID]
	if !ok {
		return 0, false
	}
	return s.pending, true
}

// Expanded reports a group's expansion state.
func (t *Tracker) Expanded(headingID string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.expanded[headingID]
}

// FindStep resolves a step by id, by case-insensitive title, or by a
// case-insensitive part of the title. A whole-title match wins over partial
// ones; either kind must be unique.
func (t *Tracker) FindStep(ref string) (string, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.steps[ref]; ok {
		return ref, nil
	}
	needle := strings.ToLower(strings.TrimSpace(ref))
	if needle == "" {
		return "", fmt.Errorf("%w: %q", ErrUnknownStep, ref)
	}
	var exact, partial []string
	for id, s := range t.steps {
		title := strings.ToLower(s.step.Title)
		switch {
		case title == needle:
			exact = append(exact, id)
		case strings.Contains(title, needle):
			partial = append(partial, id)
		}
	}
	matches := exact
	if len(matches) == 0 {
		matches = partial
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("%w: %s", ErrUnknownStep, ref)
	case 1:
		return matches[0], nil
	}
	return "", fmt.Errorf("%q matches %d steps; use the step id", ref, len(matches))
}

// FindHeading resolves a heading by id or case-insensitive name.
func (t *Tracker) FindHeading(ref string) (string, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	var matches []string
	for _, g := range t.groups {
		if g.heading.ID == ref {
			return ref, nil
		}
		if strings.EqualFold(g.heading.Name, strings.TrimSpace(ref)) {
			matches = append(matches, g.heading.ID)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("%w: %s", ErrUnknownHeading, ref)
	case 1:
		return matches[0], nil
	}
	return "", fmt.Errorf("%q matches %d headings; use the heading id", ref, len(matches))
}
