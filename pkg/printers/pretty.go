// Package printers renders engine entities for the command line.
package printers

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/tasque/pkg/engine"
)

type PrettyPrint struct {
	ShowID bool
}

var (
	spacing = strings.Repeat(" ", len("171dff69f8b99dca  "))
)

func (pp *PrettyPrint) NewLine() {
	_, _ = fmt.Fprintln(color.Output, "")
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)

	if pp.ShowID {
		_, _ = t.Print(spacing)
	}
	_, _ = t.Fprintln(color.Output, title)
}

func (pp *PrettyPrint) TitleWithCount(title string, count int) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	if pp.ShowID {
		_, _ = t.Print(spacing)
	}
	_, _ = t.Fprint(color.Output, title)
	_, _ = c.Fprintf(color.Output, " - %d", count)

	switch count {
	case 1:
		_, _ = c.Fprintln(color.Output, " task")
	default:
		_, _ = c.Fprintln(color.Output, " tasks")
	}
}

// Tasks prints the projection in engine order, indented by depth.
func (pp *PrettyPrint) Tasks(tasks ...engine.Task) {
	if len(tasks) == 0 {
		f := color.New(color.Faint, color.Italic)
		if pp.ShowID {
			_, _ = f.Print(spacing)
		}
		_, _ = f.Fprint(color.Output, " none\n\n")
		return
	}

	y := color.New(color.FgHiYellow, color.Italic, color.Faint)

	tbl := uitable.New()
	tbl.Separator = " "

	for _, t := range tasks {
		box := "[ ]"
		if t.Done {
			box = "[x]"
		}
		prio := ""
		if t.Priority > 0 {
			prio = fmt.Sprintf("!%d", t.Priority)
		}
		summary := strings.Repeat("  ", t.Depth) + t.Summary
		tags := ""
		if len(t.Categories) > 0 {
			tags = "#" + strings.Join(t.Categories, " #")
		}
		if pp.ShowID {
			tbl.AddRow(y.Sprint(t.UID), box, prio, summary, t.DueDateISO, tags)
		} else {
			tbl.AddRow(box, prio, summary, t.DueDateISO, tags)
		}
	}
	_, _ = fmt.Fprintln(color.Output, tbl)
	_, _ = fmt.Fprintln(color.Output, "")
}

// Tags prints the tag index with counts.
func (pp *PrettyPrint) Tags(tags ...engine.Tag) {
	if len(tags) == 0 {
		f := color.New(color.Faint, color.Italic)
		_, _ = f.Fprint(color.Output, " none\n\n")
		return
	}

	tbl := uitable.New()
	tbl.Separator = "  "
	for _, t := range tags {
		name := "#" + t.Name
		if t.Uncategorized {
			name = "(uncategorized)"
		}
		tbl.AddRow(name, t.Count)
	}
	tbl.RightAlign(1)
	_, _ = fmt.Fprintln(color.Output, tbl)
	_, _ = fmt.Fprintln(color.Output, "")
}

// Calendars prints the calendar list; the default calendar gets a star and
// hidden calendars render faint.
func (pp *PrettyPrint) Calendars(defaultHref string, calendars ...engine.Calendar) {
	if len(calendars) == 0 {
		f := color.New(color.Faint, color.Italic)
		_, _ = f.Fprint(color.Output, " none\n\n")
		return
	}

	faint := color.New(color.Faint)
	tbl := uitable.New()
	tbl.Separator = "  "
	for _, c := range calendars {
		marker := " "
		if c.Href == defaultHref {
			marker = "*"
		}
		name := c.Name
		if !c.Visible {
			name = faint.Sprintf("%s (hidden)", name)
		}
		if pp.ShowID {
			tbl.AddRow(marker, name, faint.Sprint(c.Href))
		} else {
			tbl.AddRow(marker, name)
		}
	}
	_, _ = fmt.Fprintln(color.Output, tbl)
	_, _ = fmt.Fprintln(color.Output, "")
}
