package teaview

import (
	"io"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/go-cmp/cmp"

	"tvx"
	"tvx/screen"
)

func newModel(t *testing.T, root tvx.View, cols, rows int) *Model {
	t.Helper()
	m, err := New(root, cols, rows, WithRenderer(lipgloss.NewRenderer(io.Discard)))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return m
}

func update(t *testing.T, m *Model, msg tea.Msg) tea.Cmd {
	t.Helper()
	next, cmd := m.Update(msg)
	if next != tea.Model(m) {
		t.Fatalf("Update returned a different model")
	}
	return cmd
}

func TestViewRenders(t *testing.T) {
	m := newModel(t, tvx.NewBorder(tvx.Text("hi")), 6, 3)
	want := "┌────┐\n│hi  │\n└────┘"
	if got := m.View(); got != want {
		t.Errorf("View =\n%s\nwant\n%s", got, want)
	}
}

func TestWindowSize(t *testing.T) {
	m := newModel(t, tvx.NewBorder(nil), 4, 2)
	if cmd := update(t, m, tea.WindowSizeMsg{Width: 3, Height: 3}); cmd != nil {
		t.Errorf("resize returned a command")
	}
	if diff := cmp.Diff([]string{"┌─┐", "│ │", "└─┘"}, strings.Split(m.View(), "\n")); diff != "" {
		t.Errorf("view mismatch (-want +got):\n%s", diff)
	}
}

func TestKeysReachTheTree(t *testing.T) {
	box := tvx.NewCheckBox("x")
	ok := tvx.NewButton("OK", nil)
	m := newModel(t, tvx.VStack(box, ok), 8, 2)

	update(t, m, tea.KeyMsg{Type: tea.KeySpace})
	if !box.Checked() {
		t.Errorf("space did not toggle the focused checkbox")
	}
	update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if !ok.Focused() {
		t.Errorf("tab did not move focus")
	}
	if got := strings.Split(m.View(), "\n")[0]; got != "[x] x   " {
		t.Errorf("row 0 = %q", got)
	}
}

func TestQuitOn(t *testing.T) {
	var seen []string
	m := newModel(t, tvx.Text("q"), 4, 1).QuitOn("ctrl+c")
	m.App().Handle("a", func() { seen = append(seen, "a") })

	if cmd := update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("a")}); cmd != nil {
		t.Errorf("plain key returned a command")
	}
	cmd := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatal("ctrl+c returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Errorf("ctrl+c did not quit")
	}
	if diff := cmp.Diff([]string{"a"}, seen); diff != "" {
		t.Errorf("bindings mismatch (-want +got):\n%s", diff)
	}
}

func TestKeyEvents(t *testing.T) {
	tests := []struct {
		name string
		msg  tea.KeyMsg
		want []string
	}{
		{"runes", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("ab")}, []string{"a", "b"}},
		{"alt rune", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x"), Alt: true}, []string{"alt+x"}},
		{"space", tea.KeyMsg{Type: tea.KeySpace}, []string{"space"}},
		{"enter", tea.KeyMsg{Type: tea.KeyEnter}, []string{"enter"}},
		{"tab", tea.KeyMsg{Type: tea.KeyTab}, []string{"tab"}},
		{"shift tab", tea.KeyMsg{Type: tea.KeyShiftTab}, []string{"backtab"}},
		{"ctrl letter", tea.KeyMsg{Type: tea.KeyCtrlQ}, []string{"ctrl+q"}},
		{"function", tea.KeyMsg{Type: tea.KeyF5}, []string{"f5"}},
		{"unmapped", tea.KeyMsg{Type: tea.KeyCtrlBackslash}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []string
			for _, ev := range KeyEvents(tt.msg) {
				got = append(got, ev.Name())
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("names mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestStyleRuns(t *testing.T) {
	red := screen.DefaultStyle().Foreground(screen.Red).Bold()
	m := newModel(t, tvx.HStack(tvx.Text("ab").Style(red), tvx.Text("cd")), 4, 1)
	if got := m.View(); got != "abcd" {
		t.Errorf("View = %q", got)
	}
	if c, ok := color(screen.RGB(1, 2, 255)); !ok || c != "#0102ff" {
		t.Errorf("rgb color = %q", c)
	}
	if c, ok := color(screen.PaletteColor(200)); !ok || c != "200" {
		t.Errorf("palette color = %q", c)
	}
	if _, ok := color(screen.DefaultColor()); ok {
		t.Errorf("default color converted")
	}
}
