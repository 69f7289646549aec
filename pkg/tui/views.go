package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss/v2"

	"tableflip.dev/tasque/pkg/engine"
	"tableflip.dev/tasque/pkg/tui/filter"
	"tableflip.dev/tasque/pkg/tui/nav"
)

// taskItem renders one projection row. Hierarchy comes entirely from the
// engine-computed depth; the client only indents.
type taskItem struct {
	t engine.Task
}

func (it taskItem) Title() string {
	t := it.t
	box := "[ ]"
	if t.Done {
		box = "[x]"
	}
	var b strings.Builder
	b.WriteString(strings.Repeat("  ", t.Depth))
	b.WriteString(box)
	if t.Priority > 0 {
		fmt.Fprintf(&b, " !%d", t.Priority)
	}
	b.WriteString(" " + t.Summary)
	if t.DueDateISO != "" {
		fmt.Fprintf(&b, " (%s)", shortDate(t.DueDateISO))
	}
	if t.Recurring {
		b.WriteString(" ↻")
	}
	if t.Blocked {
		b.WriteString(" ⊘")
	}
	return b.String()
}
func (it taskItem) Description() string { return "" }
func (it taskItem) FilterValue() string { return it.t.Summary }

// moveTargetItem is a destination calendar row in the move dialog.
type moveTargetItem struct {
	cal engine.Calendar
}

func (it moveTargetItem) Title() string       { return it.cal.Name }
func (it moveTargetItem) Description() string { return "" }
func (it moveTargetItem) FilterValue() string { return it.cal.Name }

// shortDate trims an ISO-8601 date/time down to its date part.
func shortDate(iso string) string {
	if idx := strings.IndexByte(iso, 'T'); idx > 0 {
		return iso[:idx]
	}
	return iso
}

func taskCountStatus(n int) string {
	return fmt.Sprintf("Tasks: %d", n)
}

// View renders the current screen.
func (m *Model) View() string {
	switch m.nav.Screen() {
	case nav.ScreenSettings:
		return m.settings.View() + "\n" + m.statusLine()
	case nav.ScreenDetail:
		return m.viewDetail()
	default:
		return m.viewList()
	}
}

func (m *Model) viewList() string {
	m.taskList.Title = m.taskListTitle()

	left := m.drawer.View()
	right := m.taskList.View()
	gap := lipgloss.NewStyle().Padding(0, 1).Render(" ")
	body := lipgloss.JoinHorizontal(lipgloss.Top, left, gap, right)

	if m.moveOpen {
		panel := lipgloss.NewStyle().Border(lipgloss.NormalBorder()).Padding(1, 2)
		body += "\n\n" + panel.Render(m.moveList.View())
	}
	if m.action == actionAdd {
		body += "\n\nAdd: " + m.input.View()
	}
	if m.action == actionSearch {
		body += "\n\nSearch: " + m.input.View()
	}
	return body + "\n\n" + m.statusLine()
}

func (m *Model) taskListTitle() string {
	params, _ := m.filters.Current()
	title := "Tasks"
	switch params.Selection.Kind {
	case filter.Uncategorized:
		title = "(uncategorized)"
	case filter.Tag:
		title = "#" + params.Selection.Tag
	}
	if params.Query != "" {
		title += " / " + params.Query
	}
	if m.st.Snapshot().Loading {
		title += " (Loading...)"
	}
	return title
}

func (m *Model) viewDetail() string {
	label := lipgloss.NewStyle().Bold(true).Render
	faint := lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Render

	var b strings.Builder
	b.WriteString(label("Task") + "\n\n")
	switch {
	case m.detailLoading:
		b.WriteString("Loading...\n")
	case !m.detailFound:
		// The task may have been deleted underneath us; render calmly and
		// let the back transition reconcile.
		b.WriteString("Task not found. It may have been deleted.\n")
	default:
		t := m.detailTask
		state := "open"
		if t.Done {
			state = "done"
		}
		fmt.Fprintf(&b, "%s\n\n", t.Summary)
		fmt.Fprintf(&b, "%s %s\n", faint("state    "), state)
		if t.Priority > 0 {
			fmt.Fprintf(&b, "%s !%d\n", faint("priority "), t.Priority)
		}
		if t.DueDateISO != "" {
			fmt.Fprintf(&b, "%s %s\n", faint("due      "), t.DueDateISO)
		}
		if len(t.Categories) > 0 {
			fmt.Fprintf(&b, "%s #%s\n", faint("tags     "), strings.Join(t.Categories, " #"))
		}
		if t.Recurring {
			fmt.Fprintf(&b, "%s yes\n", faint("repeats  "))
		}
		if t.Blocked {
			fmt.Fprintf(&b, "%s yes\n", faint("blocked  "))
		}
		fmt.Fprintf(&b, "%s %s\n", faint("text     "), t.SmartString)
		if t.Description != "" {
			b.WriteString("\n" + t.Description + "\n")
		}
		b.WriteString("\n" + faint("e edit text · i edit description · space toggle · esc back") + "\n")
	}

	switch m.action {
	case actionEditText:
		b.WriteString("\nEdit: " + m.input.View())
	case actionEditDesc:
		b.WriteString("\nDescription: " + m.input.View())
	}
	return b.String() + "\n" + m.statusLine()
}

func (m *Model) statusLine() string {
	style := lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	if strings.Contains(m.status, "Error") {
		style = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	}
	return style.Render(m.status)
}

// applySizes recalculates widget sizes from the terminal size.
func (m *Model) applySizes() {
	if m.termWidth == 0 || m.termHeight == 0 {
		return
	}
	left := m.termWidth / 3
	if left < 24 {
		left = 24
	}
	if left > 40 {
		left = 40
	}
	right := m.termWidth - left - 4
	if right < 20 {
		right = 20
	}
	height := m.termHeight - 4
	if height < 5 {
		height = 5
	}
	m.drawer.SetSize(left, height)
	m.taskList.SetSize(right, height)
}
