// Package tui is the terminal client: a bubbletea program over the engine
// gateway. The reactive core lives in the store, filter, dispatch, and nav
// subpackages; this package wires user intent into them and renders the
// result.
package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/v2/list"
	"github.com/charmbracelet/bubbles/v2/textinput"
	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/tasque/pkg/engine"
	"tableflip.dev/tasque/pkg/tui/components/drawer"
	"tableflip.dev/tasque/pkg/tui/components/settings"
	"tableflip.dev/tasque/pkg/tui/dispatch"
	"tableflip.dev/tasque/pkg/tui/filter"
	"tableflip.dev/tasque/pkg/tui/nav"
	"tableflip.dev/tasque/pkg/tui/store"
)

type action int

const (
	actionNone action = iota
	actionAdd
	actionSearch
	actionEditText
	actionEditDesc
)

// Model contains all UI state.
type Model struct {
	gw  engine.Gateway
	ctx context.Context

	st      *store.Store
	filters *filter.Controller
	disp    *dispatch.Dispatcher
	nav     *nav.Controller

	taskList list.Model
	drawer   drawer.Model
	settings settings.Model

	input  textinput.Model
	action action

	moveOpen bool
	moveList list.Model
	moveUID  string
	moveFrom string

	focus  int // 0: drawer, 1: tasks
	status string

	detailTask    engine.Task
	detailFound   bool
	detailLoading bool

	termWidth  int
	termHeight int
}

// New creates the UI model backed by the gateway.
func New(gw engine.Gateway) *Model {
	d := list.NewDefaultDelegate()
	d.ShowDescription = false
	d.SetSpacing(0)

	tl := list.New([]list.Item{}, d, 80, 20)
	tl.Title = "Tasks"
	tl.SetShowHelp(false)
	tl.SetShowStatusBar(false)

	ml := list.New([]list.Item{}, d, 40, 10)
	ml.Title = "Move to calendar"
	ml.SetShowHelp(false)
	ml.SetShowStatusBar(false)

	ti := textinput.New()
	ti.Placeholder = "Type here"
	ti.CharLimit = 512
	ti.Prompt = ""

	return &Model{
		gw:       gw,
		ctx:      context.Background(),
		st:       store.New(),
		filters:  filter.New(),
		disp:     dispatch.New(gw),
		nav:      &nav.Controller{},
		taskList: tl,
		drawer:   drawer.New(),
		settings: settings.New(),
		input:    ti,
		moveList: ml,
		focus:    1,
		status:   "Connecting...",
	}
}

// Init connects to the engine and loads the first snapshot.
func (m *Model) Init() tea.Cmd {
	m.st.SetLoading(true)
	return m.boot()
}

func (m *Model) boot() tea.Cmd {
	return func() tea.Msg {
		return bootedMsg{err: m.gw.ConnectAndLoad(m.ctx)}
	}
}

// refreshCommon re-queries calendars, tags, and config as a unit. The store
// applies all-or-nothing semantics internally.
func (m *Model) refreshCommon(global bool) tea.Cmd {
	return func() tea.Msg {
		err := m.st.RefreshCommon(m.ctx, m.gw)
		return commonRefreshedMsg{global: global, err: err}
	}
}

// fetchTasks queries the projection for the given intent generation.
func (m *Model) fetchTasks(params filter.Params, gen uint64) tea.Cmd {
	return func() tea.Msg {
		tasks, err := m.gw.Tasks(m.ctx, params.Selection.TagSelector(), params.Query)
		return tasksLoadedMsg{gen: gen, params: params, tasks: tasks, err: err}
	}
}

// refetchTasks invalidates the current intent and refetches with it.
func (m *Model) refetchTasks() tea.Cmd {
	params, gen := m.filters.Invalidate()
	return m.fetchTasks(params, gen)
}

// fetchDetail loads the unfiltered projection so the detail screen can
// locate its task by uid.
func (m *Model) fetchDetail(uid string) tea.Cmd {
	return func() tea.Msg {
		tasks, err := m.gw.Tasks(m.ctx, nil, "")
		return detailLoadedMsg{uid: uid, tasks: tasks, err: err}
	}
}

func (m *Model) fetchConfig() tea.Cmd {
	return func() tea.Msg {
		cfg, err := m.gw.Config(m.ctx)
		return configLoadedMsg{cfg: cfg, err: err}
	}
}

// mutate runs one dispatcher action off the UI goroutine and reports the
// result together with the screen that initiated it.
func (m *Model) mutate(origin nav.Screen, run func() dispatch.Result) tea.Cmd {
	return func() tea.Msg {
		return mutationMsg{res: run(), origin: origin}
	}
}

// Update handles messages and keybindings.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.termWidth = msg.Width
		m.termHeight = msg.Height
		m.applySizes()

	case bootedMsg:
		if msg.err != nil {
			m.st.SetLoading(false)
			m.st.RecordError(msg.err)
			m.status = "Error: " + msg.err.Error()
			m.settings.SetStatus("Error: " + msg.err.Error())
			return m, nil
		}
		m.status = "Fetching tasks..."
		cmds = append(cmds, m.refreshCommon(true))

	case commonRefreshedMsg:
		if msg.err != nil {
			m.status = "Error: " + msg.err.Error()
		} else {
			snap := m.st.Snapshot()
			m.drawer.SetData(snap.Calendars, snap.Tags, snap.DefaultCalendarHref)
		}
		if msg.global {
			// The loading flag transition may have changed what the current
			// filter sees, so the projection is refetched either way.
			m.st.SetLoading(false)
			cmds = append(cmds, m.refetchTasks())
		}

	case tasksLoadedMsg:
		if !m.filters.Accept(msg.gen) {
			break // superseded request, drop the response
		}
		if msg.err != nil {
			m.st.RecordError(msg.err)
			m.status = "Error: " + msg.err.Error()
			break
		}
		m.st.SetTasks(msg.tasks)
		m.setTaskItems(msg.tasks)
		m.status = taskCountStatus(len(msg.tasks))

	case detailLoadedMsg:
		if m.nav.Screen() != nav.ScreenDetail || msg.uid != m.nav.DetailUID() {
			break
		}
		m.detailLoading = false
		if msg.err != nil {
			m.detailFound = false
			m.status = "Error: " + msg.err.Error()
			break
		}
		m.detailFound = false
		for _, t := range msg.tasks {
			if t.UID == msg.uid {
				m.detailTask = t
				m.detailFound = true
				break
			}
		}

	case configLoadedMsg:
		if msg.err != nil {
			m.settings.SetStatus("Error: " + msg.err.Error())
			break
		}
		m.settings.SetConfig(msg.cfg)

	case mutationMsg:
		cmds = append(cmds, m.applyMutation(msg)...)

	case settings.SaveMsg:
		m.settings.SetStatus("Connecting...")
		cfg := msg.Config
		cmds = append(cmds, m.mutate(nav.ScreenSettings, func() dispatch.Result {
			return m.disp.SaveAndConnect(m.ctx, cfg)
		}))

	case settings.AddAliasMsg:
		key, tags := msg.Key, msg.Tags
		cmds = append(cmds, m.mutate(nav.ScreenSettings, func() dispatch.Result {
			return m.disp.AddAlias(m.ctx, key, tags)
		}))

	case settings.RemoveAliasMsg:
		key := msg.Key
		cmds = append(cmds, m.mutate(nav.ScreenSettings, func() dispatch.Result {
			return m.disp.RemoveAlias(m.ctx, key)
		}))

	case settings.BackMsg:
		cmds = append(cmds, m.goBack()...)

	case tea.KeyPressMsg:
		return m.handleKey(msg)

	default:
		// Route everything else (paste, mouse wheel, blink ticks) to the
		// widget that currently holds focus.
		var cmd tea.Cmd
		switch {
		case m.action != actionNone:
			m.input, cmd = m.input.Update(msg)
		case m.moveOpen:
			m.moveList, cmd = m.moveList.Update(msg)
		case m.nav.Screen() == nav.ScreenList:
			if m.focus == 0 {
				m.drawer, cmd = m.drawer.Update(msg)
			} else {
				m.taskList, cmd = m.taskList.Update(msg)
			}
		}
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// applyMutation implements phase two of the dispatch protocol: surface the
// outcome where the action started, then reconcile with the engine.
func (m *Model) applyMutation(msg mutationMsg) []tea.Cmd {
	var cmds []tea.Cmd
	res := msg.res

	text := res.Status
	if res.Err != nil {
		text = "Error: " + res.Err.Error()
	}
	if msg.origin == nav.ScreenSettings {
		if text != "" {
			m.settings.SetStatus(text)
		}
	} else if text != "" {
		m.status = text
	}

	if res.Err == nil && res.Op == "move" {
		m.moveOpen = false
		m.moveUID = ""
		m.moveFrom = ""
	}
	// A failed move keeps the dialog open so nothing partially applies.

	if !res.Dispatched {
		return cmds
	}
	cmds = append(cmds, m.refetchTasks(), m.refreshCommon(false))
	if m.nav.Screen() == nav.ScreenDetail {
		cmds = append(cmds, m.fetchDetail(m.nav.DetailUID()))
	}
	return cmds
}

func (m *Model) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch m.nav.Screen() {
	case nav.ScreenSettings:
		var cmd tea.Cmd
		m.settings, cmd = m.settings.Update(msg)
		return m, cmd
	case nav.ScreenDetail:
		return m.handleDetailKey(msg)
	default:
		return m.handleListKey(msg)
	}
}

func (m *Model) handleListKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	if m.moveOpen {
		switch msg.String() {
		case "esc", "q":
			m.moveOpen = false
			m.status = "Move cancelled"
		case "enter":
			if it, ok := m.moveList.SelectedItem().(moveTargetItem); ok {
				uid, from, dest := m.moveUID, m.moveFrom, it.cal.Href
				m.status = "Syncing..."
				cmds = append(cmds, m.mutate(nav.ScreenList, func() dispatch.Result {
					return m.disp.Move(m.ctx, uid, from, dest)
				}))
			}
		default:
			var cmd tea.Cmd
			m.moveList, cmd = m.moveList.Update(msg)
			cmds = append(cmds, cmd)
		}
		return m, tea.Batch(cmds...)
	}

	if m.action != actionNone {
		return m.handleInputKey(msg)
	}

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	// pane focus
	case "h", "left":
		m.focus = 0
	case "l", "right":
		m.focus = 1
	case "tab":
		if m.focus == 0 {
			m.drawer.TogglePane()
		} else {
			m.focus = 0
		}

	// movement
	case "j", "down":
		if m.focus == 0 {
			m.drawer.CursorDown()
		} else {
			m.taskList.CursorDown()
		}
	case "k", "up":
		if m.focus == 0 {
			m.drawer.CursorUp()
		} else {
			m.taskList.CursorUp()
		}

	case "enter":
		if m.focus == 0 {
			if sel, ok := m.drawer.SelectedTag(); ok {
				if params, gen, changed := m.filters.SetSelection(sel); changed {
					cmds = append(cmds, m.fetchTasks(params, gen))
				}
			}
		} else if it := m.currentTask(); it != nil {
			if _, ok := m.nav.OpenDetail(it.t.UID); ok {
				m.detailLoading = true
				m.detailFound = false
				cmds = append(cmds, m.fetchDetail(it.t.UID))
			}
		}

	// add
	case "a", "o":
		m.enterInput(actionAdd, "Buy milk @tomorrow !1 #errands ~30m", "", &cmds)

	// search
	case "/":
		params, _ := m.filters.Current()
		m.enterInput(actionSearch, `is:done #work`, params.Query, &cmds)

	// mutations on the selected task
	case "space", "x":
		if it := m.currentTask(); it != nil {
			uid := it.t.UID
			m.status = "Syncing..."
			cmds = append(cmds, m.mutate(nav.ScreenList, func() dispatch.Result {
				return m.disp.Toggle(m.ctx, uid)
			}))
		}
	case "d":
		if it := m.currentTask(); it != nil {
			uid := it.t.UID
			m.status = "Deleting..."
			cmds = append(cmds, m.mutate(nav.ScreenList, func() dispatch.Result {
				return m.disp.Delete(m.ctx, uid)
			}))
		}
	case "+", "-":
		if it := m.currentTask(); it != nil {
			delta := 1
			if msg.String() == "-" {
				delta = -1
			}
			task := it.t
			m.status = "Updating Prio..."
			cmds = append(cmds, m.mutate(nav.ScreenList, func() dispatch.Result {
				return m.disp.CyclePriority(m.ctx, task, delta)
			}))
		}
	case "m":
		if it := m.currentTask(); it != nil {
			m.openMoveDialog(it.t)
		}

	// drawer actions
	case "v":
		if cal, ok := m.drawer.SelectedCalendar(); ok {
			href, visible := cal.Href, !cal.Visible
			cmds = append(cmds, m.mutate(nav.ScreenList, func() dispatch.Result {
				return m.disp.SetVisibility(m.ctx, href, visible)
			}))
		}
	case "D":
		if cal, ok := m.drawer.SelectedCalendar(); ok {
			href := cal.Href
			cmds = append(cmds, m.mutate(nav.ScreenList, func() dispatch.Result {
				return m.disp.SetDefaultCalendar(m.ctx, href)
			}))
		}

	case "s":
		if _, ok := m.nav.OpenSettings(); ok {
			cmds = append(cmds, m.fetchConfig())
		}

	case "r":
		m.st.SetLoading(true)
		m.status = "Refreshing..."
		cmds = append(cmds, m.refreshCommon(true))
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) handleInputKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	switch msg.String() {
	case "enter":
		value := m.input.Value()
		act := m.action
		m.leaveInput()
		switch act {
		case actionAdd:
			if strings.TrimSpace(value) != "" {
				m.status = "Creating..."
				cmds = append(cmds, m.mutate(nav.ScreenList, func() dispatch.Result {
					return m.disp.Add(m.ctx, value)
				}))
			}
		case actionSearch:
			// value already applied live; nothing left to do
		case actionEditText:
			uid := m.detailTask.UID
			m.status = "Syncing..."
			cmds = append(cmds, m.mutate(nav.ScreenDetail, func() dispatch.Result {
				return m.disp.UpdateText(m.ctx, uid, value)
			}))
		case actionEditDesc:
			uid := m.detailTask.UID
			m.status = "Syncing..."
			cmds = append(cmds, m.mutate(nav.ScreenDetail, func() dispatch.Result {
				return m.disp.UpdateDescription(m.ctx, uid, value)
			}))
		}
	case "esc":
		act := m.action
		m.leaveInput()
		if act == actionSearch {
			if params, gen, changed := m.filters.SetQuery(""); changed {
				cmds = append(cmds, m.fetchTasks(params, gen))
			}
		}
		m.status = "Cancelled"
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		cmds = append(cmds, cmd)
		if m.action == actionSearch {
			if params, gen, changed := m.filters.SetQuery(m.input.Value()); changed {
				cmds = append(cmds, m.fetchTasks(params, gen))
			}
		}
	}
	return m, tea.Batch(cmds...)
}

func (m *Model) handleDetailKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	if m.action != actionNone {
		return m.handleInputKey(msg)
	}

	switch msg.String() {
	case "esc", "q":
		cmds = append(cmds, m.goBack()...)
	case "e":
		if m.detailFound {
			m.enterInput(actionEditText, "task text", m.detailTask.SmartString, &cmds)
		}
	case "i":
		if m.detailFound {
			m.enterInput(actionEditDesc, "description", m.detailTask.Description, &cmds)
		}
	case "space", "x":
		if m.detailFound {
			uid := m.detailTask.UID
			m.status = "Syncing..."
			cmds = append(cmds, m.mutate(nav.ScreenDetail, func() dispatch.Result {
				return m.disp.Toggle(m.ctx, uid)
			}))
		}
	}
	return m, tea.Batch(cmds...)
}

// goBack executes a backward transition plus the refresh obligations it
// carries.
func (m *Model) goBack() []tea.Cmd {
	obligations, ok := m.nav.Back()
	if !ok {
		return nil
	}
	var cmds []tea.Cmd
	if obligations.RefreshCommon {
		cmds = append(cmds, m.refreshCommon(false))
	}
	if obligations.RefetchTasks {
		cmds = append(cmds, m.refetchTasks())
	}
	return cmds
}

func (m *Model) enterInput(act action, placeholder, seed string, cmds *[]tea.Cmd) {
	m.action = act
	m.input.Placeholder = placeholder
	m.input.SetValue(seed)
	m.input.CursorEnd()
	if cmd := m.input.Focus(); cmd != nil {
		*cmds = append(*cmds, cmd)
	}
	*cmds = append(*cmds, textinput.Blink)
}

func (m *Model) leaveInput() {
	m.action = actionNone
	m.input.Reset()
	m.input.Blur()
}

func (m *Model) openMoveDialog(t engine.Task) {
	snap := m.st.Snapshot()
	items := make([]list.Item, 0, len(snap.Calendars))
	for _, c := range snap.Calendars {
		if c.Href == t.CalendarHref {
			continue // the current calendar is never offered
		}
		items = append(items, moveTargetItem{cal: c})
	}
	if len(items) == 0 {
		m.status = "No other calendar to move to"
		return
	}
	m.moveList.SetItems(items)
	m.moveList.Select(0)
	m.moveOpen = true
	m.moveUID = t.UID
	m.moveFrom = t.CalendarHref
}

func (m *Model) currentTask() *taskItem {
	if len(m.taskList.Items()) == 0 {
		return nil
	}
	sel := m.taskList.SelectedItem()
	if sel == nil {
		return nil
	}
	it, ok := sel.(taskItem)
	if !ok {
		return nil
	}
	return &it
}

func (m *Model) setTaskItems(tasks []engine.Task) {
	items := make([]list.Item, 0, len(tasks))
	for _, t := range tasks {
		items = append(items, taskItem{t: t})
	}
	m.taskList.SetItems(items)
	if len(items) > 0 && m.taskList.Index() < 0 {
		m.taskList.Select(0)
	}
}

// Run starts the program.
func Run(gw engine.Gateway) error {
	p := tea.NewProgram(New(gw), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
