// Package filter owns the two task-projection inputs: the selected tag
// bucket and the free-text query. Each change bumps a generation counter so
// completion handlers can recognize and drop responses to superseded
// requests (last-writer-by-intent, not last-writer-by-completion).
package filter

import "tableflip.dev/tasque/pkg/engine"

// Kind discriminates the tag selection variants.
type Kind int

const (
	// All shows every visible task, no tag filter.
	All Kind = iota
	// Uncategorized selects the synthetic "no tags" bucket.
	Uncategorized
	// Tag selects a literal tag name.
	Tag
)

// Selection is the drawer's tag choice, as an explicit variant rather than
// a raw string with sentinel values.
type Selection struct {
	Kind Kind
	Tag  string
}

// SelectAll clears the tag filter.
func SelectAll() Selection { return Selection{Kind: All} }

// SelectUncategorized picks the synthetic bucket.
func SelectUncategorized() Selection { return Selection{Kind: Uncategorized} }

// SelectTag picks a literal tag name.
func SelectTag(name string) Selection { return Selection{Kind: Tag, Tag: name} }

// TagSelector converts the variant into the gateway's wire form.
func (s Selection) TagSelector() *engine.TagSelector {
	switch s.Kind {
	case Uncategorized:
		return &engine.TagSelector{Uncategorized: true}
	case Tag:
		return &engine.TagSelector{Name: s.Tag}
	default:
		return nil
	}
}

// Params is one (selection, query) pair, passed to the gateway verbatim.
type Params struct {
	Selection Selection
	Query     string
}

// Controller tracks the current pair and the generation of the latest
// intent. It is used from the single UI goroutine; no locking needed beyond
// the generation discipline.
type Controller struct {
	sel   Selection
	query string
	gen   uint64
}

// New starts with no tag filter and an empty query.
func New() *Controller {
	return &Controller{sel: SelectAll()}
}

// SetSelection records a new tag selection. It returns the parameters to
// fetch with, the generation tagging that fetch, and whether anything
// actually changed (unchanged selections schedule no refetch).
func (c *Controller) SetSelection(sel Selection) (Params, uint64, bool) {
	if c.sel == sel {
		return c.params(), c.gen, false
	}
	c.sel = sel
	c.gen++
	return c.params(), c.gen, true
}

// SetQuery records a new free-text query.
func (c *Controller) SetQuery(query string) (Params, uint64, bool) {
	if c.query == query {
		return c.params(), c.gen, false
	}
	c.query = query
	c.gen++
	return c.params(), c.gen, true
}

// Invalidate bumps the generation without changing the pair. Used after
// mutations and global refreshes, when the same parameters must be
// re-evaluated and any in-flight response is stale by definition.
func (c *Controller) Invalidate() (Params, uint64) {
	c.gen++
	return c.params(), c.gen
}

// Current returns the live pair and its generation.
func (c *Controller) Current() (Params, uint64) {
	return c.params(), c.gen
}

// Accept reports whether a completion tagged with gen is still the latest
// intent. Stale completions must be discarded by the caller.
func (c *Controller) Accept(gen uint64) bool {
	return gen == c.gen
}

func (c *Controller) params() Params {
	return Params{Selection: c.sel, Query: c.query}
}
