// Package nav is the three-screen state machine. Backward transitions into
// the list carry refresh obligations because both the detail and settings
// screens can mutate calendars, tags, or configuration behind the list's
// back.
package nav

// Screen enumerates the navigation states.
type Screen int

const (
	ScreenList Screen = iota
	ScreenDetail
	ScreenSettings
)

func (s Screen) String() string {
	switch s {
	case ScreenDetail:
		return "detail"
	case ScreenSettings:
		return "settings"
	default:
		return "list"
	}
}

// Obligations are the fetches a transition demands. The caller executes
// them; relative completion order is unconstrained.
type Obligations struct {
	RefreshCommon bool
	RefetchTasks  bool
	FetchDetail   bool
}

// Controller tracks the current screen. Zero value starts on the list.
type Controller struct {
	screen    Screen
	detailUID string
}

// Screen returns the current screen.
func (c *Controller) Screen() Screen { return c.screen }

// DetailUID returns the task the detail screen is showing, if any.
func (c *Controller) DetailUID() string { return c.detailUID }

// OpenDetail moves List → Detail(uid). Entering detail demands a fresh
// unfiltered projection so the task is located by uid, not by list index.
func (c *Controller) OpenDetail(uid string) (Obligations, bool) {
	if c.screen != ScreenList || uid == "" {
		return Obligations{}, false
	}
	c.screen = ScreenDetail
	c.detailUID = uid
	return Obligations{FetchDetail: true}, true
}

// OpenSettings moves List → Settings.
func (c *Controller) OpenSettings() (Obligations, bool) {
	if c.screen != ScreenList {
		return Obligations{}, false
	}
	c.screen = ScreenSettings
	return Obligations{}, true
}

// Back returns to the list from either detail or settings. Every backward
// transition owes one refreshCommon and one task refetch.
func (c *Controller) Back() (Obligations, bool) {
	if c.screen == ScreenList {
		return Obligations{}, false
	}
	c.screen = ScreenList
	c.detailUID = ""
	return Obligations{RefreshCommon: true, RefetchTasks: true}, true
}
