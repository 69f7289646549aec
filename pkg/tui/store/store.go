// Package store holds the client-side snapshot of engine state: calendars,
// tags, the current task projection, the default-calendar pointer, and the
// loading/error slots the UI renders from. It mirrors the informer-style
// discipline used elsewhere in this codebase: state lives here, mutations
// arrive only through completion handlers, and readers get cloned snapshots.
package store

import (
	"context"
	"sync"

	"tableflip.dev/tasque/pkg/engine"
)

// Snapshot is a read-only copy of the store contents.
type Snapshot struct {
	Calendars           []engine.Calendar
	Tags                []engine.Tag
	Tasks               []engine.Task
	DefaultCalendarHref string
	Loading             bool
	Err                 error
}

// Store is the single mutable shared resource of the client.
type Store struct {
	mu sync.RWMutex

	calendars           []engine.Calendar
	tags                []engine.Tag
	tasks               []engine.Task
	defaultCalendarHref string
	loading             bool
	lastErr             error
}

// New creates an empty store.
func New() *Store {
	return &Store{}
}

// RefreshCommon re-queries calendars, tags, and configuration as a unit.
// Either all three slots are replaced, or, if any query fails, none are and
// the error is recorded. The returned error is the recorded one.
func (s *Store) RefreshCommon(ctx context.Context, gw engine.Gateway) error {
	calendars, err := gw.Calendars(ctx)
	if err != nil {
		s.RecordError(err)
		return err
	}
	tags, err := gw.Tags(ctx)
	if err != nil {
		s.RecordError(err)
		return err
	}
	cfg, err := gw.Config(ctx)
	if err != nil {
		s.RecordError(err)
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.calendars = cloneCalendars(calendars)
	s.tags = cloneTags(tags)
	s.defaultCalendarHref = cfg.DefaultCalendar
	s.lastErr = nil
	return nil
}

// SetTasks replaces the task projection.
func (s *Store) SetTasks(tasks []engine.Task) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks = cloneTasks(tasks)
	s.lastErr = nil
}

// SetLoading toggles the global loading flag. Only coarse operations
// (initial connect, explicit global refresh) flip this; per-filter task
// refetches do not, to avoid flicker.
func (s *Store) SetLoading(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = v
}

// RecordError stores the last failure without touching data slots.
func (s *Store) RecordError(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastErr = err
}

// Snapshot returns a cloned copy of the current state. Callers must treat
// the contents as immutable.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{
		Calendars:           cloneCalendars(s.calendars),
		Tags:                cloneTags(s.tags),
		Tasks:               cloneTasks(s.tasks),
		DefaultCalendarHref: s.defaultCalendarHref,
		Loading:             s.loading,
		Err:                 s.lastErr,
	}
}

// TaskByUID finds a task in the current projection.
func (s *Store) TaskByUID(uid string) (engine.Task, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, t := range s.tasks {
		if t.UID == uid {
			return t, true
		}
	}
	return engine.Task{}, false
}

func cloneCalendars(in []engine.Calendar) []engine.Calendar {
	if len(in) == 0 {
		return nil
	}
	return append([]engine.Calendar(nil), in...)
}

func cloneTags(in []engine.Tag) []engine.Tag {
	if len(in) == 0 {
		return nil
	}
	return append([]engine.Tag(nil), in...)
}

func cloneTasks(in []engine.Task) []engine.Task {
	if len(in) == 0 {
		return nil
	}
	out := make([]engine.Task, len(in))
	for i := range in {
		out[i] = in[i]
		out[i].Categories = append([]string(nil), in[i].Categories...)
	}
	return out
}
