// Package drawer renders the navigation sidebar: a calendars pane and a
// tags pane behind an explicit pane variant, never a raw tab index.
package drawer

import (
	"fmt"

	"github.com/charmbracelet/bubbles/v2/list"
	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/tasque/pkg/engine"
	"tableflip.dev/tasque/pkg/tui/filter"
)

// Pane selects which drawer list is showing.
type Pane int

const (
	PaneCalendars Pane = iota
	PaneTags
)

func (p Pane) String() string {
	if p == PaneTags {
		return "Tags"
	}
	return "Calendars"
}

type calendarItem struct {
	cal       engine.Calendar
	isDefault bool
}

func (c calendarItem) Title() string {
	marker := " "
	if !c.cal.Visible {
		marker = "·"
	}
	name := c.cal.Name
	if c.isDefault {
		name += " *"
	}
	return fmt.Sprintf("%s %s", marker, name)
}
func (c calendarItem) Description() string { return "" }
func (c calendarItem) FilterValue() string { return c.cal.Name }

type tagItem struct {
	tag engine.Tag
}

func (t tagItem) Title() string {
	if t.tag.Uncategorized {
		return fmt.Sprintf("(uncategorized) %d", t.tag.Count)
	}
	return fmt.Sprintf("#%s %d", t.tag.Name, t.tag.Count)
}
func (t tagItem) Description() string { return "" }
func (t tagItem) FilterValue() string { return t.tag.Name }

// allTagsItem clears the tag filter.
type allTagsItem struct{}

func (allTagsItem) Title() string       { return "(all)" }
func (allTagsItem) Description() string { return "" }
func (allTagsItem) FilterValue() string { return "all" }

// Model is the drawer state.
type Model struct {
	pane    Pane
	calList list.Model
	tagList list.Model
}

// New creates an empty drawer.
func New() Model {
	d := list.NewDefaultDelegate()
	d.ShowDescription = false
	d.SetSpacing(0)

	cl := list.New([]list.Item{}, d, 28, 20)
	cl.Title = "Calendars"
	cl.SetShowHelp(false)
	cl.SetShowStatusBar(false)

	tl := list.New([]list.Item{}, d, 28, 20)
	tl.Title = "Tags"
	tl.SetShowHelp(false)
	tl.SetShowStatusBar(false)

	return Model{calList: cl, tagList: tl}
}

// Pane returns the showing pane.
func (m Model) Pane() Pane { return m.pane }

// TogglePane flips between calendars and tags.
func (m *Model) TogglePane() {
	if m.pane == PaneCalendars {
		m.pane = PaneTags
	} else {
		m.pane = PaneCalendars
	}
}

// SetData replaces the drawer contents from a store snapshot.
func (m *Model) SetData(calendars []engine.Calendar, tags []engine.Tag, defaultHref string) {
	calItems := make([]list.Item, 0, len(calendars))
	for _, c := range calendars {
		calItems = append(calItems, calendarItem{cal: c, isDefault: c.Href == defaultHref})
	}
	m.calList.SetItems(calItems)

	tagItems := make([]list.Item, 0, len(tags)+1)
	tagItems = append(tagItems, allTagsItem{})
	for _, t := range tags {
		tagItems = append(tagItems, tagItem{tag: t})
	}
	m.tagList.SetItems(tagItems)
}

// SelectedCalendar returns the highlighted calendar, if the calendars pane
// has one.
func (m Model) SelectedCalendar() (engine.Calendar, bool) {
	if m.pane != PaneCalendars {
		return engine.Calendar{}, false
	}
	sel := m.calList.SelectedItem()
	ci, ok := sel.(calendarItem)
	if !ok {
		return engine.Calendar{}, false
	}
	return ci.cal, true
}

// SelectedTag maps the highlighted tags-pane row to a filter selection.
func (m Model) SelectedTag() (filter.Selection, bool) {
	if m.pane != PaneTags {
		return filter.Selection{}, false
	}
	switch it := m.tagList.SelectedItem().(type) {
	case allTagsItem:
		return filter.SelectAll(), true
	case tagItem:
		if it.tag.Uncategorized {
			return filter.SelectUncategorized(), true
		}
		return filter.SelectTag(it.tag.Name), true
	default:
		return filter.Selection{}, false
	}
}

// SetSize resizes both pane lists.
func (m *Model) SetSize(w, h int) {
	m.calList.SetSize(w, h)
	m.tagList.SetSize(w, h)
}

// CursorUp moves the active pane's cursor.
func (m *Model) CursorUp() {
	if m.pane == PaneCalendars {
		m.calList.CursorUp()
	} else {
		m.tagList.CursorUp()
	}
}

// CursorDown moves the active pane's cursor.
func (m *Model) CursorDown() {
	if m.pane == PaneCalendars {
		m.calList.CursorDown()
	} else {
		m.tagList.CursorDown()
	}
}

// Update routes messages to the active pane list.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	if m.pane == PaneCalendars {
		m.calList, cmd = m.calList.Update(msg)
	} else {
		m.tagList, cmd = m.tagList.Update(msg)
	}
	return m, cmd
}

// View renders the active pane.
func (m Model) View() string {
	if m.pane == PaneCalendars {
		return m.calList.View()
	}
	return m.tagList.View()
}
