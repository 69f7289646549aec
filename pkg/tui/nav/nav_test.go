package nav

import "testing"

func TestZeroValueStartsOnList(t *testing.T) {
	var c Controller
	if c.Screen() != ScreenList {
		t.Fatalf("expected list screen, got %v", c.Screen())
	}
}

func TestOpenDetailOnlyFromList(t *testing.T) {
	var c Controller

	ob, ok := c.OpenDetail("uid-1")
	if !ok {
		t.Fatalf("expected list -> detail to succeed")
	}
	if !ob.FetchDetail {
		t.Fatalf("entering detail must demand a detail fetch")
	}
	if c.DetailUID() != "uid-1" {
		t.Fatalf("unexpected detail uid %q", c.DetailUID())
	}

	// Already on detail; another open is refused.
	if _, ok := c.OpenDetail("uid-2"); ok {
		t.Fatalf("detail -> detail must be refused")
	}
	if c.DetailUID() != "uid-1" {
		t.Fatalf("refused transition must not change state")
	}
}

func TestOpenDetailRequiresUID(t *testing.T) {
	var c Controller
	if _, ok := c.OpenDetail(""); ok {
		t.Fatalf("empty uid must be refused")
	}
	if c.Screen() != ScreenList {
		t.Fatalf("refused transition must stay on list")
	}
}

func TestBackCarriesRefreshObligations(t *testing.T) {
	var c Controller

	for _, open := range []func() bool{
		func() bool { _, ok := c.OpenDetail("uid-1"); return ok },
		func() bool { _, ok := c.OpenSettings(); return ok },
	} {
		if !open() {
			t.Fatalf("expected transition to succeed")
		}
		ob, ok := c.Back()
		if !ok {
			t.Fatalf("expected back to succeed")
		}
		if !ob.RefreshCommon || !ob.RefetchTasks {
			t.Fatalf("back must owe one common refresh and one task refetch, got %#v", ob)
		}
		if c.Screen() != ScreenList {
			t.Fatalf("back must land on the list")
		}
		if c.DetailUID() != "" {
			t.Fatalf("back must clear the detail uid")
		}
	}
}

func TestBackFromListIsRefused(t *testing.T) {
	var c Controller
	if _, ok := c.Back(); ok {
		t.Fatalf("back from list must be refused")
	}
}

func TestSettingsOnlyFromList(t *testing.T) {
	var c Controller
	if _, ok := c.OpenDetail("uid-1"); !ok {
		t.Fatalf("expected detail transition")
	}
	if _, ok := c.OpenSettings(); ok {
		t.Fatalf("detail -> settings must be refused")
	}
}
