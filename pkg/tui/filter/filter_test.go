package filter

import "testing"

func TestSelectionChangesBumpGeneration(t *testing.T) {
	c := New()

	_, gen0 := c.Current()

	params, gen1, changed := c.SetSelection(SelectTag("work"))
	if !changed {
		t.Fatalf("expected selection change")
	}
	if gen1 != gen0+1 {
		t.Fatalf("expected generation %d, got %d", gen0+1, gen1)
	}
	if params.Selection.Kind != Tag || params.Selection.Tag != "work" {
		t.Fatalf("unexpected params: %#v", params)
	}

	// Re-selecting the same tag is a no-op.
	_, gen2, changed := c.SetSelection(SelectTag("work"))
	if changed {
		t.Fatalf("unchanged selection should not report a change")
	}
	if gen2 != gen1 {
		t.Fatalf("unchanged selection must not bump generation: %d != %d", gen2, gen1)
	}
}

func TestStaleResponseIsRejected(t *testing.T) {
	c := New()

	// First intent: tag "work", no query.
	_, genA, _ := c.SetSelection(SelectTag("work"))

	// Second intent lands before the first response arrives.
	_, genB, _ := c.SetQuery("is:done")

	if c.Accept(genA) {
		t.Fatalf("response for superseded intent must be rejected")
	}
	if !c.Accept(genB) {
		t.Fatalf("response for the latest intent must be accepted")
	}
}

func TestInvalidateSupersedesInFlight(t *testing.T) {
	c := New()
	_, inflight, _ := c.SetQuery("groceries")

	params, gen := c.Invalidate()
	if gen == inflight {
		t.Fatalf("invalidate must bump the generation")
	}
	if params.Query != "groceries" {
		t.Fatalf("invalidate must keep the current pair, got %q", params.Query)
	}
	if c.Accept(inflight) {
		t.Fatalf("in-flight response must be stale after invalidate")
	}
	if !c.Accept(gen) {
		t.Fatalf("refetch generation must be accepted")
	}
}

func TestTagSelectorVariants(t *testing.T) {
	if sel := SelectAll().TagSelector(); sel != nil {
		t.Fatalf("all-tags selection must map to nil selector, got %#v", sel)
	}

	sel := SelectUncategorized().TagSelector()
	if sel == nil || !sel.Uncategorized || sel.Name != "" {
		t.Fatalf("unexpected uncategorized selector: %#v", sel)
	}

	sel = SelectTag("home").TagSelector()
	if sel == nil || sel.Uncategorized || sel.Name != "home" {
		t.Fatalf("unexpected tag selector: %#v", sel)
	}
}
