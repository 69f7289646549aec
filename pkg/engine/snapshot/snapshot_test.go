package snapshot

import (
	"context"
	"testing"

	"tableflip.dev/tasque/pkg/engine"
)

// flakyGateway serves data until broken, then fails with the given error.
type flakyGateway struct {
	engine.Gateway

	calendars []engine.Calendar
	tasks     []engine.Task
	broken    error
}

func (f *flakyGateway) Calendars(ctx context.Context) ([]engine.Calendar, error) {
	if f.broken != nil {
		return nil, f.broken
	}
	return f.calendars, nil
}

func (f *flakyGateway) Tasks(ctx context.Context, sel *engine.TagSelector, query string) ([]engine.Task, error) {
	if f.broken != nil {
		return nil, f.broken
	}
	return f.tasks, nil
}

func TestServesCachedCalendarsWhenEngineUnreachable(t *testing.T) {
	inner := &flakyGateway{
		calendars: []engine.Calendar{{Href: "/cal/personal/", Name: "Personal", Visible: true}},
	}
	gw := New(inner, t.TempDir())
	ctx := context.Background()

	// Prime the cache with a successful query.
	if _, err := gw.Calendars(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	inner.broken = engine.Errorf(engine.KindConnection, "engine unreachable")

	cached, err := gw.Calendars(ctx)
	if err != nil {
		t.Fatalf("expected cached calendars, got %v", err)
	}
	if len(cached) != 1 || cached[0].Href != "/cal/personal/" {
		t.Fatalf("unexpected cached calendars: %#v", cached)
	}
}

func TestColdCachePropagatesFailure(t *testing.T) {
	inner := &flakyGateway{broken: engine.Errorf(engine.KindConnection, "engine unreachable")}
	gw := New(inner, t.TempDir())

	if _, err := gw.Calendars(context.Background()); err == nil {
		t.Fatalf("cold cache must not invent data")
	}
}

func TestRealAnswersAreNotMasked(t *testing.T) {
	inner := &flakyGateway{
		calendars: []engine.Calendar{{Href: "/cal/personal/"}},
	}
	gw := New(inner, t.TempDir())
	ctx := context.Background()

	if _, err := gw.Calendars(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// A validation failure is a real answer; stale data must not hide it.
	inner.broken = engine.Errorf(engine.KindValidation, "bad request")
	if _, err := gw.Calendars(ctx); err == nil {
		t.Fatalf("validation errors must propagate")
	}
}

func TestOnlyUnfilteredProjectionIsCached(t *testing.T) {
	inner := &flakyGateway{
		tasks: []engine.Task{{UID: "uid-1", Summary: "Buy milk"}},
	}
	gw := New(inner, t.TempDir())
	ctx := context.Background()

	// Prime with a filtered query only.
	if _, err := gw.Tasks(ctx, &engine.TagSelector{Name: "work"}, ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	inner.broken = engine.Errorf(engine.KindConnection, "engine unreachable")

	// The unfiltered projection was never cached.
	if _, err := gw.Tasks(ctx, nil, ""); err == nil {
		t.Fatalf("filtered results must not satisfy the unfiltered projection")
	}
	// Filtered queries are never served from cache.
	if _, err := gw.Tasks(ctx, &engine.TagSelector{Name: "work"}, ""); err == nil {
		t.Fatalf("filtered queries must not be cached")
	}

	inner.broken = nil
	if _, err := gw.Tasks(ctx, nil, ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	inner.broken = engine.Errorf(engine.KindConnection, "engine unreachable")

	cached, err := gw.Tasks(ctx, nil, "")
	if err != nil {
		t.Fatalf("expected cached projection, got %v", err)
	}
	if len(cached) != 1 || cached[0].UID != "uid-1" {
		t.Fatalf("unexpected cached tasks: %#v", cached)
	}
}
