package store

import (
	"context"
	"testing"

	"tableflip.dev/tasque/pkg/engine"
)

// fakeGateway serves canned common data and can fail any one of the three
// queries. Only the query methods are implemented.
type fakeGateway struct {
	engine.Gateway

	calendars []engine.Calendar
	tags      []engine.Tag
	cfg       engine.Config

	failCalendars error
	failTags      error
	failConfig    error

	calendarCalls int
	tagCalls      int
	configCalls   int
}

func (f *fakeGateway) Calendars(ctx context.Context) ([]engine.Calendar, error) {
	f.calendarCalls++
	if f.failCalendars != nil {
		return nil, f.failCalendars
	}
	return f.calendars, nil
}

func (f *fakeGateway) Tags(ctx context.Context) ([]engine.Tag, error) {
	f.tagCalls++
	if f.failTags != nil {
		return nil, f.failTags
	}
	return f.tags, nil
}

func (f *fakeGateway) Config(ctx context.Context) (engine.Config, error) {
	f.configCalls++
	if f.failConfig != nil {
		return engine.Config{}, f.failConfig
	}
	return f.cfg, nil
}

func seededGateway() *fakeGateway {
	return &fakeGateway{
		calendars: []engine.Calendar{
			{Href: "/cal/personal/", Name: "Personal", Visible: true},
			{Href: "/cal/work/", Name: "Work", Visible: true},
		},
		tags: []engine.Tag{
			{Name: "work", Count: 3},
			{Uncategorized: true, Count: 1},
		},
		cfg: engine.Config{DefaultCalendar: "/cal/personal/"},
	}
}

func TestRefreshCommonReplacesAllThree(t *testing.T) {
	s := New()
	gw := seededGateway()

	if err := s.RefreshCommon(context.Background(), gw); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	snap := s.Snapshot()
	if len(snap.Calendars) != 2 || len(snap.Tags) != 2 {
		t.Fatalf("unexpected snapshot: %#v", snap)
	}
	if snap.DefaultCalendarHref != "/cal/personal/" {
		t.Fatalf("unexpected default calendar %q", snap.DefaultCalendarHref)
	}
	if snap.Err != nil {
		t.Fatalf("successful refresh must clear the error, got %v", snap.Err)
	}
}

func TestRefreshCommonFailureLeavesDataIntact(t *testing.T) {
	s := New()
	gw := seededGateway()

	if err := s.RefreshCommon(context.Background(), gw); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Second refresh fails on tags; the snapshot from the first must
	// survive untouched, including calendars fetched before the failure.
	gw.calendars = []engine.Calendar{{Href: "/cal/new/", Name: "New"}}
	gw.failTags = engine.Errorf(engine.KindTransient, "tags exploded")

	if err := s.RefreshCommon(context.Background(), gw); err == nil {
		t.Fatalf("expected refresh to fail")
	}

	snap := s.Snapshot()
	if len(snap.Calendars) != 2 || snap.Calendars[0].Href != "/cal/personal/" {
		t.Fatalf("failed refresh must not partially apply: %#v", snap.Calendars)
	}
	if snap.Err == nil {
		t.Fatalf("failure must be recorded")
	}
}

func TestRefreshCommonStopsAtFirstFailure(t *testing.T) {
	s := New()
	gw := seededGateway()
	gw.failCalendars = engine.Errorf(engine.KindConnection, "down")

	if err := s.RefreshCommon(context.Background(), gw); err == nil {
		t.Fatalf("expected refresh to fail")
	}
	if gw.tagCalls != 0 || gw.configCalls != 0 {
		t.Fatalf("later queries must not run after a failure: tags=%d config=%d", gw.tagCalls, gw.configCalls)
	}
}

func TestSetTasksClearsRecordedError(t *testing.T) {
	s := New()
	s.RecordError(engine.Errorf(engine.KindTransient, "boom"))

	s.SetTasks([]engine.Task{{UID: "uid-1", Summary: "Buy milk"}})

	snap := s.Snapshot()
	if snap.Err != nil {
		t.Fatalf("successful task load must clear the error, got %v", snap.Err)
	}
	if len(snap.Tasks) != 1 || snap.Tasks[0].UID != "uid-1" {
		t.Fatalf("unexpected tasks: %#v", snap.Tasks)
	}
}

func TestSnapshotIsIsolated(t *testing.T) {
	s := New()
	s.SetTasks([]engine.Task{{UID: "uid-1", Summary: "Buy milk", Categories: []string{"errands"}}})

	snap := s.Snapshot()
	snap.Tasks[0].Summary = "mutated"
	snap.Tasks[0].Categories[0] = "mutated"

	again := s.Snapshot()
	if again.Tasks[0].Summary != "Buy milk" {
		t.Fatalf("snapshot mutation leaked into the store")
	}
	if again.Tasks[0].Categories[0] != "errands" {
		t.Fatalf("category mutation leaked into the store")
	}
}

func TestTaskByUID(t *testing.T) {
	s := New()
	s.SetTasks([]engine.Task{
		{UID: "uid-1", Summary: "Buy milk"},
		{UID: "uid-2", Summary: "Ship it"},
	})

	got, ok := s.TaskByUID("uid-2")
	if !ok || got.Summary != "Ship it" {
		t.Fatalf("unexpected lookup result: %#v ok=%v", got, ok)
	}
	if _, ok := s.TaskByUID("uid-9"); ok {
		t.Fatalf("unknown uid must miss")
	}
}

func TestLoadingFlag(t *testing.T) {
	s := New()
	s.SetLoading(true)
	if !s.Snapshot().Loading {
		t.Fatalf("expected loading")
	}
	s.SetLoading(false)
	if s.Snapshot().Loading {
		t.Fatalf("expected not loading")
	}
}
