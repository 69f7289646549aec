// Package settings is the connection/configuration form. It owns draft
// field state only; saving always goes through the dispatcher, and the
// engine remains the source of truth for persisted values.
package settings

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/v2/textinput"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"

	"tableflip.dev/tasque/pkg/engine"
)

// Field identifies the focusable rows of the form.
type field int

const (
	fieldURL field = iota
	fieldUsername
	fieldPassword
	fieldInsecure
	fieldHideCompleted
	fieldAliasKey
	fieldAliasTags
	fieldCount
)

// SaveMsg asks the app to save the form and reconnect.
type SaveMsg struct {
	Config engine.ConnectionConfig
}

// AddAliasMsg asks the app to register a tag alias. Tags is the raw comma
// text; normalization happens in the dispatcher.
type AddAliasMsg struct {
	Key  string
	Tags string
}

// RemoveAliasMsg asks the app to drop an alias.
type RemoveAliasMsg struct {
	Key string
}

// BackMsg asks the app to leave the settings screen.
type BackMsg struct{}

// Model is the settings screen state.
type Model struct {
	url      textinput.Model
	username textinput.Model
	password textinput.Model
	aliasKey textinput.Model
	aliasTag textinput.Model

	allowInsecure bool
	hideCompleted bool

	aliases map[string][]string

	focus  field
	status string
}

// New creates the form with empty drafts.
func New() Model {
	mk := func(placeholder string) textinput.Model {
		ti := textinput.New()
		ti.Placeholder = placeholder
		ti.CharLimit = 256
		ti.Prompt = ""
		return ti
	}
	pw := mk("password")
	pw.EchoMode = textinput.EchoPassword

	m := Model{
		url:      mk("https://dav.example.com/user/"),
		username: mk("username"),
		password: pw,
		aliasKey: mk("alias"),
		aliasTag: mk("#tag, other"),
	}
	m.applyFocus()
	return m
}

// SetConfig seeds the drafts from the engine's persisted configuration.
// The password draft is never seeded; it is write-only.
func (m *Model) SetConfig(cfg engine.Config) {
	m.url.SetValue(cfg.URL)
	m.username.SetValue(cfg.Username)
	m.allowInsecure = cfg.AllowInsecure
	m.hideCompleted = cfg.HideCompleted
	m.aliases = cfg.TagAliases
}

// SetStatus places text on the form's status line. Errors arrive here as
// "Error: <message>" and persist until the next action.
func (m *Model) SetStatus(s string) { m.status = s }

// Status returns the current status line.
func (m Model) Status() string { return m.status }

// Form snapshots the current drafts.
func (m Model) Form() engine.ConnectionConfig {
	return engine.ConnectionConfig{
		URL:           strings.TrimSpace(m.url.Value()),
		Username:      strings.TrimSpace(m.username.Value()),
		Password:      m.password.Value(),
		AllowInsecure: m.allowInsecure,
		HideCompleted: m.hideCompleted,
	}
}

// Update handles form navigation and edits.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	key, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return m.routeInput(msg)
	}

	switch key.String() {
	case "esc":
		return m, func() tea.Msg { return BackMsg{} }
	case "tab", "down":
		m.focus = (m.focus + 1) % fieldCount
		m.applyFocus()
		return m, nil
	case "shift+tab", "up":
		m.focus = (m.focus + fieldCount - 1) % fieldCount
		m.applyFocus()
		return m, nil
	case "enter":
		return m.submit()
	case "space":
		switch m.focus {
		case fieldInsecure:
			m.allowInsecure = !m.allowInsecure
			return m, nil
		case fieldHideCompleted:
			m.hideCompleted = !m.hideCompleted
			return m, nil
		}
	case "ctrl+d":
		if m.focus == fieldAliasKey {
			key := strings.TrimSpace(m.aliasKey.Value())
			if key != "" {
				return m, func() tea.Msg { return RemoveAliasMsg{Key: key} }
			}
			return m, nil
		}
	}
	return m.routeInput(msg)
}

func (m Model) submit() (Model, tea.Cmd) {
	switch m.focus {
	case fieldAliasKey, fieldAliasTags:
		msg := AddAliasMsg{Key: m.aliasKey.Value(), Tags: m.aliasTag.Value()}
		return m, func() tea.Msg { return msg }
	default:
		msg := SaveMsg{Config: m.Form()}
		return m, func() tea.Msg { return msg }
	}
}

func (m Model) routeInput(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.focus {
	case fieldURL:
		m.url, cmd = m.url.Update(msg)
	case fieldUsername:
		m.username, cmd = m.username.Update(msg)
	case fieldPassword:
		m.password, cmd = m.password.Update(msg)
	case fieldAliasKey:
		m.aliasKey, cmd = m.aliasKey.Update(msg)
	case fieldAliasTags:
		m.aliasTag, cmd = m.aliasTag.Update(msg)
	}
	return m, cmd
}

func (m *Model) applyFocus() {
	inputs := []*textinput.Model{&m.url, &m.username, &m.password, &m.aliasKey, &m.aliasTag}
	focused := map[field]*textinput.Model{
		fieldURL:       &m.url,
		fieldUsername:  &m.username,
		fieldPassword:  &m.password,
		fieldAliasKey:  &m.aliasKey,
		fieldAliasTags: &m.aliasTag,
	}[m.focus]
	for _, ti := range inputs {
		if ti == focused {
			ti.Focus()
		} else {
			ti.Blur()
		}
	}
}

// View renders the form.
func (m Model) View() string {
	label := lipgloss.NewStyle().Bold(true).Render
	faint := lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Render
	check := func(on bool) string {
		if on {
			return "[x]"
		}
		return "[ ]"
	}
	cursor := func(f field) string {
		if m.focus == f {
			return "» "
		}
		return "  "
	}

	var b strings.Builder
	b.WriteString(label("Settings") + "\n\n")
	fmt.Fprintf(&b, "%sServer URL  %s\n", cursor(fieldURL), m.url.View())
	fmt.Fprintf(&b, "%sUsername    %s\n", cursor(fieldUsername), m.username.View())
	fmt.Fprintf(&b, "%sPassword    %s\n", cursor(fieldPassword), m.password.View())
	fmt.Fprintf(&b, "%s%s allow insecure TLS\n", cursor(fieldInsecure), check(m.allowInsecure))
	fmt.Fprintf(&b, "%s%s hide completed tasks\n", cursor(fieldHideCompleted), check(m.hideCompleted))
	b.WriteString("\n" + label("Tag aliases") + "\n")
	for _, line := range m.aliasLines() {
		b.WriteString(faint(line) + "\n")
	}
	fmt.Fprintf(&b, "%sAlias       %s\n", cursor(fieldAliasKey), m.aliasKey.View())
	fmt.Fprintf(&b, "%sTags        %s\n", cursor(fieldAliasTags), m.aliasTag.View())
	b.WriteString("\n" + faint("enter save+connect · enter on alias rows adds · ctrl+d removes · esc back") + "\n")
	if m.status != "" {
		b.WriteString("\n" + m.status + "\n")
	}
	return b.String()
}

func (m Model) aliasLines() []string {
	if len(m.aliases) == 0 {
		return []string{"  none"}
	}
	keys := make([]string, 0, len(m.aliases))
	for k := range m.aliases {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	lines := make([]string, 0, len(keys))
	for _, k := range keys {
		lines = append(lines, fmt.Sprintf("  %s → #%s", k, strings.Join(m.aliases[k], ", #")))
	}
	return lines
}
