// Package teaview hosts a tvx view tree inside a Bubble Tea program.
//
// The tree renders into a headless screen; View turns the screen into
// lipgloss-styled lines, so a tvx tree can be embedded wherever a
// tea.Model is expected:
//
//	m, err := teaview.New(root, 80, 24)
//	...
//	_, err = tea.NewProgram(m.QuitOn("ctrl+c"), tea.WithAltScreen()).Run()
package teaview

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"tvx"
	"tvx/geom"
	"tvx/internal/logutil"
	"tvx/screen"
)

var logger = logutil.GetLogger("[teaview] ")

// Model is a tea.Model driving a tvx.App.
type Model struct {
	app      *tvx.App
	mem      *screen.MemDriver
	scr      *screen.Screen
	renderer *lipgloss.Renderer
	quitKeys []string
	err      error
}

// Option configures a Model.
type Option func(*Model)

// WithRenderer sets the lipgloss renderer used by View.
func WithRenderer(r *lipgloss.Renderer) Option {
	return func(m *Model) {
		m.renderer = r
	}
}

// New creates a model showing root at the given initial size. The size
// follows tea.WindowSizeMsg afterwards.
func New(root tvx.View, cols, rows int, opts ...Option) (*Model, error) {
	m := &Model{
		mem:      screen.NewMemDriver(cols, rows),
		renderer: lipgloss.DefaultRenderer(),
	}
	for _, opt := range opts {
		opt(m)
	}
	scr, err := screen.New(m.mem)
	if err != nil {
		return nil, fmt.Errorf("teaview: %w", err)
	}
	m.scr = scr
	m.app = tvx.NewApp(scr)
	m.app.SetRoot(root)
	m.sync()
	return m, nil
}

// App returns the hosted app, for bindings and focus control.
func (m *Model) App() *tvx.App {
	return m.app
}

// QuitOn makes the named keys end the program instead of reaching the
// tree.
func (m *Model) QuitOn(names ...string) *Model {
	m.quitKeys = append(m.quitKeys, names...)
	return m
}

// Err returns the error that stopped the model, if any.
func (m *Model) Err() error {
	return m.err
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.mem.Resize(msg.Width, msg.Height)
	case tea.KeyMsg:
		evs := KeyEvents(msg)
		for _, ev := range evs {
			if slices.Contains(m.quitKeys, ev.Name()) {
				return m, tea.Quit
			}
			m.mem.Post(ev)
		}
	default:
		return m, nil
	}
	if !m.sync() {
		return m, tea.Quit
	}
	return m, nil
}

// sync feeds queued events to the app until the screen is current.
func (m *Model) sync() bool {
	for range 64 {
		ev, err := m.app.Step(false)
		if err != nil {
			logger.Printf("step: %v", err)
			m.err = err
			m.scr.Close()
			return false
		}
		if ev.Type == screen.EventNone {
			return true
		}
	}
	return true
}

// View implements tea.Model.
func (m *Model) View() string {
	size := m.scr.Size()
	cursor, showCursor := m.mem.Cursor()
	var b strings.Builder
	for y := range int(size.Y) {
		if y > 0 {
			b.WriteByte('\n')
		}
		var run strings.Builder
		var runStyle screen.Style
		flush := func() {
			if run.Len() > 0 {
				b.WriteString(m.style(runStyle).Render(run.String()))
				run.Reset()
			}
		}
		for x := range int(size.X) {
			c := m.mem.CellAt(x, y)
			if c.IsContinuation() {
				continue
			}
			st := c.Style
			if showCursor && cursor == (geom.Point{X: int16(x), Y: int16(y)}) {
				st = st.Inverse()
			}
			if st != runStyle {
				flush()
				runStyle = st
			}
			run.WriteString(c.Text)
		}
		flush()
	}
	return b.String()
}

func (m *Model) style(st screen.Style) lipgloss.Style {
	ls := m.renderer.NewStyle()
	if c, ok := color(st.FG); ok {
		ls = ls.Foreground(c)
	}
	if c, ok := color(st.BG); ok {
		ls = ls.Background(c)
	}
	a := st.Attr
	return ls.
		Bold(a.Has(screen.AttrBold)).
		Faint(a.Has(screen.AttrDim)).
		Italic(a.Has(screen.AttrItalic)).
		Underline(a.Has(screen.AttrUnderline)).
		Blink(a.Has(screen.AttrBlink)).
		Reverse(a.Has(screen.AttrInverse)).
		Strikethrough(a.Has(screen.AttrStrikethrough))
}

func color(c screen.Color) (lipgloss.Color, bool) {
	switch c.Mode {
	case screen.Color16, screen.Color256:
		return lipgloss.Color(strconv.Itoa(int(c.Index))), true
	case screen.ColorRGB:
		return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)), true
	}
	return "", false
}
