package tvx

import (
	"fmt"
	"strings"
	"weak"

	"tvx/geom"
	"tvx/grapheme"
	"tvx/registry"
	"tvx/screen"
)

// TrimmingMarker is the text shown at the end of a line that had to be cut.
// Several StaticText views can share one marker; changing it re-measures all
// of them.
type TrimmingMarker struct {
	text      string
	listeners registry.Registry[markerListener]
}

type markerListener struct {
	handle registry.Handle
	text   weak.Pointer[StaticText]
}

// NewTrimmingMarker creates a marker.
func NewTrimmingMarker(text string) *TrimmingMarker {
	return &TrimmingMarker{text: text}
}

// Text returns the marker text.
func (m *TrimmingMarker) Text() string {
	return m.text
}

// SetText changes the marker and notifies every live listener. Listeners
// whose view has been collected are dropped.
func (m *TrimmingMarker) SetText(text string) {
	if text == m.text {
		return
	}
	m.text = text
	var dead []registry.Handle
	for _, l := range m.listeners.All() {
		if t := l.text.Value(); t != nil {
			t.markerChanged()
		} else {
			dead = append(dead, l.handle)
		}
	}
	for _, h := range dead {
		m.listeners.Remove(h)
	}
}

// Listeners returns the number of registered views.
func (m *TrimmingMarker) Listeners() int {
	return m.listeners.Len()
}

func (m *TrimmingMarker) listen(t *StaticText) registry.Handle {
	return m.listeners.Insert(func(h registry.Handle) markerListener {
		return markerListener{handle: h, text: weak.Make(t)}
	})
}

// unlisten panics if h was already removed.
func (m *TrimmingMarker) unlisten(h registry.Handle) {
	m.listeners.Remove(h)
}

// StaticText displays one or more lines of text. Lines wider than the
// arranged width are cut; with a trimming marker the cut is shown.
type StaticText struct {
	ViewBase
	text  string
	lines []string
	style screen.Style

	marker       *TrimmingMarker
	markerHandle registry.Handle
}

// Text creates a text view.
func Text(s string) *StaticText {
	t := &StaticText{style: screen.DefaultStyle()}
	t.Init(t)
	t.setText(s)
	return t
}

// Textf creates a text view with printf-style formatting.
func Textf(format string, args ...any) *StaticText {
	return Text(fmt.Sprintf(format, args...))
}

func (t *StaticText) setText(s string) {
	t.text = s
	t.lines = nil
	if s != "" {
		t.lines = strings.Split(s, "\n")
	}
}

// SetText updates the text content.
func (t *StaticText) SetText(s string) *StaticText {
	if s == t.text {
		return t
	}
	t.setText(s)
	t.InvalidateMeasure()
	t.InvalidateRender()
	return t
}

// GetText returns the text content.
func (t *StaticText) GetText() string {
	return t.text
}

// Trim shows m at the end of lines that do not fit. A nil marker turns
// trimming off.
func (t *StaticText) Trim(m *TrimmingMarker) *StaticText {
	if t.marker != nil {
		t.marker.unlisten(t.markerHandle)
	}
	t.marker = m
	if m != nil {
		t.markerHandle = m.listen(t)
	}
	t.InvalidateMeasure()
	return t
}

// Marker returns the trimming marker, or nil.
func (t *StaticText) Marker() *TrimmingMarker {
	return t.marker
}

func (t *StaticText) markerChanged() {
	t.InvalidateMeasure()
	t.InvalidateRender()
}

// MeasureOverride asks for the widest line by the number of lines. A
// trimming text accepts any narrower width.
func (t *StaticText) MeasureOverride(w, h int16) geom.Vector {
	var width int
	for _, line := range t.lines {
		width = max(width, grapheme.Width(line))
	}
	size := geom.Vector{X: int16(min(width, 1<<15-1)), Y: int16(min(len(t.lines), 1<<15-1))}
	if t.marker != nil && w != Unconstrained {
		size.X = min(size.X, w)
	}
	return size
}

// ArrangeOverride takes the given size.
func (t *StaticText) ArrangeOverride(size geom.Vector) geom.Vector {
	return size
}

// Render clears the area and draws each line; lines past the arranged
// height are not drawn.
func (t *StaticText) Render(rp *RenderPort) {
	rp.FillBg(t.style)
	size := t.ContentBounds().Size
	for i, line := range t.lines {
		if i >= int(size.Y) {
			break
		}
		if t.marker != nil {
			line, _ = grapheme.Trim(line, int(size.X), t.marker.text)
		}
		rp.Text(geom.Point{Y: int16(i)}, t.style, line)
	}
}

// --- Fluent API for styling ---

func (t *StaticText) restyle(s screen.Style) *StaticText {
	t.style = s
	t.InvalidateRender()
	return t
}

// Bold makes the text bold.
func (t *StaticText) Bold() *StaticText {
	return t.restyle(t.style.Bold())
}

// Dim makes the text dim.
func (t *StaticText) Dim() *StaticText {
	return t.restyle(t.style.Dim())
}

// Italic makes the text italic.
func (t *StaticText) Italic() *StaticText {
	return t.restyle(t.style.Italic())
}

// Underline makes the text underlined.
func (t *StaticText) Underline() *StaticText {
	return t.restyle(t.style.Underline())
}

// Strikethrough makes the text struck through.
func (t *StaticText) Strikethrough() *StaticText {
	return t.restyle(t.style.Strikethrough())
}

// Inverse makes the text inverse (swap fg/bg).
func (t *StaticText) Inverse() *StaticText {
	return t.restyle(t.style.Inverse())
}

// Fg sets the foreground color.
func (t *StaticText) Fg(c screen.Color) *StaticText {
	return t.restyle(t.style.Foreground(c))
}

// Bg sets the background color.
func (t *StaticText) Bg(c screen.Color) *StaticText {
	return t.restyle(t.style.Background(c))
}

// Style sets the complete style.
func (t *StaticText) Style(s screen.Style) *StaticText {
	return t.restyle(s)
}

// GetStyle returns the text style.
func (t *StaticText) GetStyle() screen.Style {
	return t.style
}

// Ref stores a reference to this view in the provided pointer.
// Useful for later updates.
func (t *StaticText) Ref(ref **StaticText) *StaticText {
	*ref = t
	return t
}
