package tui

import (
	"tableflip.dev/tasque/pkg/engine"
	"tableflip.dev/tasque/pkg/tui/dispatch"
	"tableflip.dev/tasque/pkg/tui/filter"
	"tableflip.dev/tasque/pkg/tui/nav"
)

// bootedMsg reports the initial connectAndLoad outcome.
type bootedMsg struct {
	err error
}

// commonRefreshedMsg reports a completed refreshCommon. The store has
// already been updated (or left intact on failure) by the time it arrives.
// global marks refreshes that toggled the global loading flag.
type commonRefreshedMsg struct {
	global bool
	err    error
}

// tasksLoadedMsg carries one task-projection response, tagged with the
// generation of the intent that requested it. Stale generations are
// discarded on arrival.
type tasksLoadedMsg struct {
	gen    uint64
	params filter.Params
	tasks  []engine.Task
	err    error
}

// detailLoadedMsg carries the unfiltered projection fetched when entering
// the detail screen.
type detailLoadedMsg struct {
	uid   string
	tasks []engine.Task
	err   error
}

// configLoadedMsg seeds the settings form on entry.
type configLoadedMsg struct {
	cfg engine.Config
	err error
}

// mutationMsg reports one dispatched action and the screen that initiated
// it, so its error lands on the right status line.
type mutationMsg struct {
	res    dispatch.Result
	origin nav.Screen
}
