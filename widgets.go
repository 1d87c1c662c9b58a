package tvx

import (
	"unicode"

	"tvx/geom"
	"tvx/screen"
)

// Focusable is implemented by views that can take keyboard focus.
type Focusable interface {
	View
	SetFocused(focused bool)
	Focused() bool
}

// Activator is implemented by views with a hotkey. Pressing Alt and the
// hotkey anywhere in the tree activates the view.
type Activator interface {
	View
	Hotkey() rune
	Activate()
}

func matchHotkey(ev screen.Event, hotkey rune) bool {
	return hotkey != 0 && ev.Type == screen.EventKey && ev.Key == screen.KeyRune &&
		ev.Mod == screen.ModAlt && unicode.ToLower(ev.Rune) == unicode.ToLower(hotkey)
}

func isPress(ev screen.Event) bool {
	return ev.Type == screen.EventKey && ev.Mod == 0 &&
		(ev.Key == screen.KeyEnter || (ev.Key == screen.KeyRune && ev.Rune == ' '))
}

// Label is one line of text with an optional "~h~otkey" marker. A label can
// point at another view; its hotkey then focuses and activates that view.
type Label struct {
	ViewBase
	text  string
	theme Theme
	link  View
}

// NewLabel creates a label.
func NewLabel(text string) *Label {
	l := &Label{text: text, theme: DefaultTheme}
	l.Init(l)
	return l
}

// SetText updates the label.
func (l *Label) SetText(text string) *Label {
	l.text = text
	l.InvalidateMeasure()
	l.InvalidateRender()
	return l
}

// GetText returns the label text, markers included.
func (l *Label) GetText() string {
	return l.text
}

// For links the label to v.
func (l *Label) For(v View) *Label {
	l.link = v
	return l
}

// Theme sets the styles the label draws with.
func (l *Label) Theme(th Theme) *Label {
	l.theme = th
	l.InvalidateRender()
	return l
}

// Hotkey returns the marked character, or 0.
func (l *Label) Hotkey() rune {
	return LabelHotkey(l.text)
}

// Link returns the view the label points at, or nil.
func (l *Label) Link() View {
	return l.link
}

// Activate activates the linked view.
func (l *Label) Activate() {
	if a, ok := l.link.(Activator); ok {
		a.Activate()
	}
}

// MeasureOverride returns the label width by one line.
func (l *Label) MeasureOverride(w, h int16) geom.Vector {
	return geom.Vector{X: int16(min(LabelWidth(l.text), 1<<15-1)), Y: 1}
}

// ArrangeOverride takes the given size.
func (l *Label) ArrangeOverride(size geom.Vector) geom.Vector {
	return size
}

// Render draws the text with its hotkey highlighted.
func (l *Label) Render(rp *RenderPort) {
	rp.FillBg(l.theme.Base)
	rp.Label(geom.Point{}, l.theme.Base, l.theme.Hotkey, l.text)
}

// Button is a push button drawn as "[ text ]". Enter or space presses it
// when focused; its hotkey presses it from anywhere.
type Button struct {
	ViewBase
	text    string
	theme   Theme
	focused bool
	onClick func()
}

// NewButton creates a button.
func NewButton(text string, onClick func()) *Button {
	b := &Button{text: text, theme: DefaultTheme, onClick: onClick}
	b.Init(b)
	return b
}

// OnClick sets the press handler.
func (b *Button) OnClick(fn func()) *Button {
	b.onClick = fn
	return b
}

// Theme sets the styles the button draws with.
func (b *Button) Theme(th Theme) *Button {
	b.theme = th
	b.InvalidateRender()
	return b
}

// GetText returns the caption.
func (b *Button) GetText() string {
	return b.text
}

// SetFocused implements Focusable.
func (b *Button) SetFocused(focused bool) {
	if b.focused != focused {
		b.focused = focused
		b.InvalidateRender()
	}
}

// Focused implements Focusable.
func (b *Button) Focused() bool {
	return b.focused
}

// Hotkey implements Activator.
func (b *Button) Hotkey() rune {
	return LabelHotkey(b.text)
}

// Activate presses the button.
func (b *Button) Activate() {
	if b.onClick != nil {
		b.onClick()
	}
}

// HandleKey presses the button on Enter or space.
func (b *Button) HandleKey(ev screen.Event) bool {
	if !isPress(ev) {
		return false
	}
	b.Activate()
	return true
}

// MeasureOverride returns the caption width plus the brackets.
func (b *Button) MeasureOverride(w, h int16) geom.Vector {
	return geom.Vector{X: int16(min(LabelWidth(b.text)+4, 1<<15-1)), Y: 1}
}

// ArrangeOverride takes the given size.
func (b *Button) ArrangeOverride(size geom.Vector) geom.Vector {
	return size
}

// Render draws the button, centered in its width.
func (b *Button) Render(rp *RenderPort) {
	style := b.theme.Base
	if b.focused {
		style = b.theme.Focus
	}
	rp.FillBg(b.theme.Base)
	width := b.ContentBounds().Size.X
	pad := max(width-int16(LabelWidth(b.text))-4, 0) / 2
	rp.Text(geom.Point{X: pad}, style, "[ ")
	rp.Label(geom.Point{X: pad + 2}, style, b.theme.Hotkey.Background(style.BG), b.text)
	rp.Text(geom.Point{X: pad + 2 + int16(LabelWidth(b.text))}, style, " ]")
}

// CheckBox is a toggle drawn as "[x] text".
type CheckBox struct {
	ViewBase
	text     string
	theme    Theme
	checked  bool
	focused  bool
	onChange func(checked bool)
}

// NewCheckBox creates an unchecked box.
func NewCheckBox(text string) *CheckBox {
	c := &CheckBox{text: text, theme: DefaultTheme}
	c.Init(c)
	return c
}

// OnChange sets a callback that fires when the box is toggled.
func (c *CheckBox) OnChange(fn func(checked bool)) *CheckBox {
	c.onChange = fn
	return c
}

// Theme sets the styles the box draws with.
func (c *CheckBox) Theme(th Theme) *CheckBox {
	c.theme = th
	c.InvalidateRender()
	return c
}

// Checked reports the state.
func (c *CheckBox) Checked() bool {
	return c.checked
}

// SetChecked sets the state without firing OnChange.
func (c *CheckBox) SetChecked(checked bool) *CheckBox {
	if c.checked != checked {
		c.checked = checked
		c.InvalidateRender()
	}
	return c
}

// Toggle flips the state and fires OnChange.
func (c *CheckBox) Toggle() {
	c.SetChecked(!c.checked)
	if c.onChange != nil {
		c.onChange(c.checked)
	}
}

// SetFocused implements Focusable.
func (c *CheckBox) SetFocused(focused bool) {
	if c.focused != focused {
		c.focused = focused
		c.InvalidateRender()
	}
}

// Focused implements Focusable.
func (c *CheckBox) Focused() bool {
	return c.focused
}

// Hotkey implements Activator.
func (c *CheckBox) Hotkey() rune {
	return LabelHotkey(c.text)
}

// Activate toggles the box.
func (c *CheckBox) Activate() {
	c.Toggle()
}

// HandleKey toggles on Enter or space.
func (c *CheckBox) HandleKey(ev screen.Event) bool {
	if !isPress(ev) {
		return false
	}
	c.Toggle()
	return true
}

// MeasureOverride returns the box plus the text width.
func (c *CheckBox) MeasureOverride(w, h int16) geom.Vector {
	return geom.Vector{X: int16(min(LabelWidth(c.text)+4, 1<<15-1)), Y: 1}
}

// ArrangeOverride takes the given size.
func (c *CheckBox) ArrangeOverride(size geom.Vector) geom.Vector {
	return size
}

// Render draws the box and text. A focused box puts the cursor on its mark.
func (c *CheckBox) Render(rp *RenderPort) {
	style := c.theme.Base
	if c.focused {
		style = c.theme.Focus
	}
	rp.FillBg(c.theme.Base)
	mark := "[ ] "
	if c.checked {
		mark = "[x] "
	}
	rp.Text(geom.Point{}, style, mark)
	rp.Label(geom.Point{X: 4}, style, c.theme.Hotkey.Background(style.BG), c.text)
	if c.focused {
		rp.Cursor(geom.Point{X: 1})
	}
}
