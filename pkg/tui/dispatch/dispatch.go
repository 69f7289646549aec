// Package dispatch wraps every state-changing user action in the same
// two-phase protocol: issue the gateway command, then (whether it succeeded
// or the engine rejected it) let the caller refetch the task projection and
// refresh the common data so client state reconciles with reality. Input
// normalization lives here too, so screens stay dumb.
package dispatch

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"tableflip.dev/tasque/pkg/engine"
)

// Result reports one dispatched action. Dispatched is false when the action
// was rejected client-side before any gateway call; no refresh is owed then.
// Status carries the success message for the status line.
type Result struct {
	Op         string
	Err        error
	Dispatched bool
	Status     string
}

// OK reports whether the action completed without error.
func (r Result) OK() bool { return r.Err == nil }

// Dispatcher issues gateway commands on behalf of the UI.
type Dispatcher struct {
	gw engine.Gateway
}

// New creates a dispatcher over the gateway.
func New(gw engine.Gateway) *Dispatcher {
	return &Dispatcher{gw: gw}
}

// Toggle flips a task's completion state. Concurrent toggles on the same
// uid are not deduplicated; two in flight may double-flip.
func (d *Dispatcher) Toggle(ctx context.Context, uid string) Result {
	err := d.gw.ToggleTask(ctx, uid)
	return Result{Op: "toggle", Err: err, Dispatched: true, Status: "Synced."}
}

// Delete removes a task. A vanished uid is an engine-reported error, not a
// client-side precondition.
func (d *Dispatcher) Delete(ctx context.Context, uid string) Result {
	err := d.gw.DeleteTask(ctx, uid)
	return Result{Op: "delete", Err: err, Dispatched: true, Status: "Deleted."}
}

// Add creates a task from smart-syntax text. Blank input never reaches the
// engine.
func (d *Dispatcher) Add(ctx context.Context, smart string) Result {
	if strings.TrimSpace(smart) == "" {
		return Result{Op: "add", Err: engine.Errorf(engine.KindValidation, "nothing to add")}
	}
	err := d.gw.AddTask(ctx, smart)
	return Result{Op: "add", Err: err, Dispatched: true, Status: "Created."}
}

// UpdateText replaces a task's smart-syntax text.
func (d *Dispatcher) UpdateText(ctx context.Context, uid, smart string) Result {
	if strings.TrimSpace(smart) == "" {
		return Result{Op: "edit", Err: engine.Errorf(engine.KindValidation, "empty task text")}
	}
	err := d.gw.UpdateTaskText(ctx, uid, smart)
	return Result{Op: "edit", Err: err, Dispatched: true, Status: "Synced."}
}

// UpdateDescription replaces a task's long-form body.
func (d *Dispatcher) UpdateDescription(ctx context.Context, uid, text string) Result {
	err := d.gw.UpdateTaskDescription(ctx, uid, text)
	return Result{Op: "describe", Err: err, Dispatched: true, Status: "Synced."}
}

// Move sends a task to another calendar. The destination must be non-empty
// and different from the task's current calendar; the move dialog never
// offers the current calendar, but the guard holds regardless.
func (d *Dispatcher) Move(ctx context.Context, uid, currentHref, destHref string) Result {
	if strings.TrimSpace(destHref) == "" {
		return Result{Op: "move", Err: engine.Errorf(engine.KindValidation, "no destination calendar")}
	}
	if destHref == currentHref {
		return Result{Op: "move", Err: engine.Errorf(engine.KindValidation, "task is already on that calendar")}
	}
	err := d.gw.MoveTask(ctx, uid, destHref)
	return Result{Op: "move", Err: err, Dispatched: true, Status: "Moved."}
}

// SetVisibility shows or hides a calendar in the default projection.
func (d *Dispatcher) SetVisibility(ctx context.Context, href string, visible bool) Result {
	err := d.gw.SetCalendarVisibility(ctx, href, visible)
	return Result{Op: "visibility", Err: err, Dispatched: true, Status: "Updated."}
}

// SetDefaultCalendar changes the default-calendar pointer.
func (d *Dispatcher) SetDefaultCalendar(ctx context.Context, href string) Result {
	err := d.gw.SetDefaultCalendar(ctx, href)
	return Result{Op: "default-calendar", Err: err, Dispatched: true, Status: "Updated."}
}

// SaveAndConnect saves the configuration unconditionally, then immediately
// attempts to connect. The connect result (status or error text) is shown
// verbatim.
func (d *Dispatcher) SaveAndConnect(ctx context.Context, cfg engine.ConnectionConfig) Result {
	if err := d.gw.SaveConfig(ctx, cfg); err != nil {
		return Result{Op: "save-config", Err: err, Dispatched: true}
	}
	status, err := d.gw.Connect(ctx, cfg)
	return Result{Op: "connect", Err: err, Dispatched: true, Status: status}
}

// AddAlias normalizes the alias key and tags text, then registers the
// alias. Tags text is split on commas; each entry is trimmed and stripped
// of one leading '#'; empties are discarded.
func (d *Dispatcher) AddAlias(ctx context.Context, key, tagsText string) Result {
	key = strings.TrimSpace(key)
	tags := ParseAliasTags(tagsText)
	if key == "" || len(tags) == 0 {
		return Result{Op: "alias-add", Err: engine.Errorf(engine.KindValidation, "alias needs a name and at least one tag")}
	}
	err := d.gw.AddAlias(ctx, key, tags)
	return Result{Op: "alias-add", Err: err, Dispatched: true, Status: "Alias added."}
}

// RemoveAlias drops an alias by key.
func (d *Dispatcher) RemoveAlias(ctx context.Context, key string) Result {
	key = strings.TrimSpace(key)
	if key == "" {
		return Result{Op: "alias-remove", Err: engine.Errorf(engine.KindValidation, "alias name required")}
	}
	err := d.gw.RemoveAlias(ctx, key)
	return Result{Op: "alias-remove", Err: err, Dispatched: true, Status: "Alias removed."}
}

// ParseAliasTags normalizes free-form alias tags input.
func ParseAliasTags(text string) []string {
	parts := strings.Split(text, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(p), "#"))
		if p == "" {
			continue
		}
		tags = append(tags, p)
	}
	return tags
}

var priorityToken = regexp.MustCompile(`\s*![0-9]\b`)

// CyclePriority bumps the task's priority one step (delta > 0 raises
// urgency: 0→9→5→1; delta < 0 lowers it: 1→5→9→0) by rewriting the !N
// marker on the canonical smart string and dispatching an edit. The engine
// still owns parsing; this only rewrites the marker it previously emitted.
func (d *Dispatcher) CyclePriority(ctx context.Context, task engine.Task, delta int) Result {
	next := nextPriority(task.Priority, delta)
	if next == task.Priority {
		return Result{Op: "priority"}
	}
	smart := priorityToken.ReplaceAllString(task.SmartString, "")
	if next > 0 {
		smart = strings.TrimSpace(smart) + fmt.Sprintf(" !%d", next)
	} else {
		smart = strings.TrimSpace(smart)
	}
	err := d.gw.UpdateTaskText(ctx, task.UID, smart)
	return Result{Op: "priority", Err: err, Dispatched: true, Status: "Updated."}
}

func nextPriority(current, delta int) int {
	if delta > 0 {
		switch current {
		case 0:
			return 9
		case 9:
			return 5
		case 5, 1:
			return 1
		default:
			return 5
		}
	}
	switch current {
	case 1:
		return 5
	case 5:
		return 9
	case 9, 0:
		return 0
	default:
		return 0
	}
}
