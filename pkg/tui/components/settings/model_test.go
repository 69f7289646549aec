package settings

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/muesli/reflow/ansi"

	"tableflip.dev/tasque/pkg/engine"
)

func stripANSIString(s string) string {
	var b strings.Builder
	ansiSeq := false
	for _, r := range s {
		if r == ansi.Marker {
			ansiSeq = true
			continue
		}
		if ansiSeq {
			if ansi.IsTerminator(r) {
				ansiSeq = false
			}
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func collect(m Model, keys ...tea.KeyPressMsg) (Model, []tea.Msg) {
	var out []tea.Msg
	for _, k := range keys {
		var cmd tea.Cmd
		m, cmd = m.Update(k)
		if cmd != nil {
			if msg := cmd(); msg != nil {
				out = append(out, msg)
			}
		}
	}
	return m, out
}

func TestSetConfigNeverSeedsPassword(t *testing.T) {
	m := New()
	m.SetConfig(engine.Config{
		URL:           "https://dav.example.com/",
		Username:      "carol",
		AllowInsecure: true,
	})

	form := m.Form()
	if form.URL != "https://dav.example.com/" || form.Username != "carol" {
		t.Fatalf("unexpected form: %#v", form)
	}
	if form.Password != "" {
		t.Fatalf("password draft must stay empty after SetConfig")
	}
	if !form.AllowInsecure {
		t.Fatalf("insecure flag must seed")
	}
}

func TestEnterOnConnectionFieldsEmitsSave(t *testing.T) {
	m := New()
	m.SetConfig(engine.Config{URL: "https://dav.example.com/"})

	_, msgs := collect(m, tea.KeyPressMsg{Code: tea.KeyEnter})
	if len(msgs) != 1 {
		t.Fatalf("expected one message, got %d", len(msgs))
	}
	save, ok := msgs[0].(SaveMsg)
	if !ok {
		t.Fatalf("expected SaveMsg, got %T", msgs[0])
	}
	if save.Config.URL != "https://dav.example.com/" {
		t.Fatalf("unexpected save payload: %#v", save.Config)
	}
}

func TestSpaceTogglesBooleans(t *testing.T) {
	m := New()

	// tab to the insecure checkbox (field index 3).
	m, _ = collect(m,
		tea.KeyPressMsg{Code: tea.KeyTab},
		tea.KeyPressMsg{Code: tea.KeyTab},
		tea.KeyPressMsg{Code: tea.KeyTab},
		tea.KeyPressMsg{Code: tea.KeySpace, Text: " "},
	)
	if !m.Form().AllowInsecure {
		t.Fatalf("expected insecure toggle")
	}
}

func TestAliasRowsEmitAliasMessages(t *testing.T) {
	m := New()
	m.aliasKey.SetValue("wrk")
	m.aliasTag.SetValue("#work, home")
	m.focus = fieldAliasTags
	m.applyFocus()

	_, msgs := collect(m, tea.KeyPressMsg{Code: tea.KeyEnter})
	if len(msgs) != 1 {
		t.Fatalf("expected one message, got %d", len(msgs))
	}
	add, ok := msgs[0].(AddAliasMsg)
	if !ok {
		t.Fatalf("expected AddAliasMsg, got %T", msgs[0])
	}
	if add.Key != "wrk" || add.Tags != "#work, home" {
		t.Fatalf("unexpected alias payload: %#v", add)
	}

	m.focus = fieldAliasKey
	m.applyFocus()
	_, msgs = collect(m, tea.KeyPressMsg{Code: 'd', Mod: tea.ModCtrl})
	if len(msgs) != 1 {
		t.Fatalf("expected one message, got %d", len(msgs))
	}
	if rm, ok := msgs[0].(RemoveAliasMsg); !ok || rm.Key != "wrk" {
		t.Fatalf("expected RemoveAliasMsg for wrk, got %#v", msgs[0])
	}
}

func TestEscapeEmitsBack(t *testing.T) {
	m := New()
	_, msgs := collect(m, tea.KeyPressMsg{Code: tea.KeyEscape})
	if len(msgs) != 1 {
		t.Fatalf("expected one message, got %d", len(msgs))
	}
	if _, ok := msgs[0].(BackMsg); !ok {
		t.Fatalf("expected BackMsg, got %T", msgs[0])
	}
}

func TestViewListsAliases(t *testing.T) {
	m := New()
	m.SetConfig(engine.Config{
		TagAliases: map[string][]string{"wrk": {"work", "deep work"}},
	})
	m.SetStatus("Connected.")

	view := stripANSIString(m.View())
	for _, want := range []string{"Settings", "wrk", "#work", "Connected."} {
		if !strings.Contains(view, want) {
			t.Fatalf("view missing %q:\n%s", want, view)
		}
	}
}
