package drawer

import (
	"testing"

	"tableflip.dev/tasque/pkg/engine"
	"tableflip.dev/tasque/pkg/tui/filter"
)

func seeded() Model {
	m := New()
	m.SetData(
		[]engine.Calendar{
			{Href: "/cal/personal/", Name: "Personal", Visible: true},
			{Href: "/cal/work/", Name: "Work", Visible: false},
		},
		[]engine.Tag{
			{Name: "work", Count: 2},
			{Uncategorized: true, Count: 1},
		},
		"/cal/personal/",
	)
	return m
}

func TestSelectedTagMapsVariants(t *testing.T) {
	m := seeded()
	m.TogglePane()
	if m.Pane() != PaneTags {
		t.Fatalf("expected tags pane")
	}

	// Row 0 is the synthetic (all) entry.
	sel, ok := m.SelectedTag()
	if !ok || sel.Kind != filter.All {
		t.Fatalf("expected all-tags selection, got %#v ok=%v", sel, ok)
	}

	m.CursorDown()
	sel, ok = m.SelectedTag()
	if !ok || sel.Kind != filter.Tag || sel.Tag != "work" {
		t.Fatalf("expected #work selection, got %#v", sel)
	}

	m.CursorDown()
	sel, ok = m.SelectedTag()
	if !ok || sel.Kind != filter.Uncategorized {
		t.Fatalf("expected uncategorized selection, got %#v", sel)
	}
}

func TestSelectedCalendarOnlyOnCalendarsPane(t *testing.T) {
	m := seeded()

	cal, ok := m.SelectedCalendar()
	if !ok || cal.Href != "/cal/personal/" {
		t.Fatalf("expected personal calendar, got %#v ok=%v", cal, ok)
	}

	m.TogglePane()
	if _, ok := m.SelectedCalendar(); ok {
		t.Fatalf("tags pane must not yield a calendar")
	}
	if _, ok := m.SelectedTag(); !ok {
		t.Fatalf("tags pane must yield a tag selection")
	}
}

func TestCalendarRowMarkers(t *testing.T) {
	it := calendarItem{cal: engine.Calendar{Name: "Work", Visible: false}}
	if got := it.Title(); got != "· Work" {
		t.Fatalf("hidden calendar must carry the hidden marker, got %q", got)
	}
	it = calendarItem{cal: engine.Calendar{Name: "Personal", Visible: true}, isDefault: true}
	if got := it.Title(); got != "  Personal *" {
		t.Fatalf("default calendar must carry the star, got %q", got)
	}
}

func TestTagRowLabels(t *testing.T) {
	it := tagItem{tag: engine.Tag{Name: "work", Count: 2}}
	if got := it.Title(); got != "#work 2" {
		t.Fatalf("unexpected tag label %q", got)
	}
	it = tagItem{tag: engine.Tag{Uncategorized: true, Count: 1}}
	if got := it.Title(); got != "(uncategorized) 1" {
		t.Fatalf("unexpected bucket label %q", got)
	}
}
