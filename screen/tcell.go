package screen

import (
	"errors"

	"github.com/gdamore/tcell/v2"

	"tvx/geom"
)

// TcellDriver paints through a tcell.Screen, leaving terminfo handling and
// input decoding to tcell.
type TcellDriver struct {
	screen tcell.Screen
	mouse  bool
}

// NewTcellDriver wraps s. A nil s opens the real terminal on Init.
func NewTcellDriver(s tcell.Screen, mouse bool) *TcellDriver {
	return &TcellDriver{screen: s, mouse: mouse}
}

func (d *TcellDriver) Init() error {
	if d.screen == nil {
		s, err := tcell.NewScreen()
		if err != nil {
			return err
		}
		d.screen = s
	}
	if err := d.screen.Init(); err != nil {
		return err
	}
	if d.mouse {
		d.screen.EnableMouse()
	}
	d.screen.Clear()
	return nil
}

func (d *TcellDriver) Fini() error {
	if d.screen != nil {
		d.screen.Fini()
	}
	return nil
}

func (d *TcellDriver) Size() (int, int, error) {
	w, h := d.screen.Size()
	return w, h, nil
}

func (d *TcellDriver) WriteLine(y int, cells []Cell) error {
	for x, c := range cells {
		if c.IsContinuation() {
			continue
		}
		runes := []rune(c.Text)
		d.screen.SetContent(x, y, runes[0], runes[1:], tcellStyle(c.Style))
	}
	return nil
}

func (d *TcellDriver) SetCursor(p geom.Point, visible bool) error {
	if visible {
		d.screen.ShowCursor(int(p.X), int(p.Y))
	} else {
		d.screen.HideCursor()
	}
	return nil
}

func (d *TcellDriver) Flush() error {
	d.screen.Show()
	return nil
}

func (d *TcellDriver) PollEvent(wait bool) (Event, error) {
	for {
		if !wait && !d.screen.HasPendingEvent() {
			return Event{}, nil
		}
		tev := d.screen.PollEvent()
		if tev == nil {
			return Event{}, errors.New("terminal closed")
		}
		if ev, ok := translateTcell(tev); ok {
			return ev, nil
		}
	}
}

func tcellStyle(s Style) tcell.Style {
	return tcell.StyleDefault.
		Foreground(tcellColor(s.FG)).
		Background(tcellColor(s.BG)).
		Bold(s.Attr.Has(AttrBold)).
		Dim(s.Attr.Has(AttrDim)).
		Italic(s.Attr.Has(AttrItalic)).
		Underline(s.Attr.Has(AttrUnderline)).
		Blink(s.Attr.Has(AttrBlink)).
		Reverse(s.Attr.Has(AttrInverse)).
		StrikeThrough(s.Attr.Has(AttrStrikethrough))
}

func tcellColor(c Color) tcell.Color {
	switch c.Mode {
	case Color16, Color256:
		return tcell.PaletteColor(int(c.Index))
	case ColorRGB:
		return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
	}
	return tcell.ColorDefault
}

var tcellKeys = map[tcell.Key]Key{
	tcell.KeyEnter:      KeyEnter,
	tcell.KeyTab:        KeyTab,
	tcell.KeyBacktab:    KeyBacktab,
	tcell.KeyBackspace:  KeyBackspace,
	tcell.KeyBackspace2: KeyBackspace,
	tcell.KeyEscape:     KeyEscape,
	tcell.KeyDelete:     KeyDelete,
	tcell.KeyInsert:     KeyInsert,
	tcell.KeyUp:         KeyUp,
	tcell.KeyDown:       KeyDown,
	tcell.KeyLeft:       KeyLeft,
	tcell.KeyRight:      KeyRight,
	tcell.KeyHome:       KeyHome,
	tcell.KeyEnd:        KeyEnd,
	tcell.KeyPgUp:       KeyPageUp,
	tcell.KeyPgDn:       KeyPageDown,
	tcell.KeyF1:         KeyF1,
	tcell.KeyF2:         KeyF2,
	tcell.KeyF3:         KeyF3,
	tcell.KeyF4:         KeyF4,
	tcell.KeyF5:         KeyF5,
	tcell.KeyF6:         KeyF6,
	tcell.KeyF7:         KeyF7,
	tcell.KeyF8:         KeyF8,
	tcell.KeyF9:         KeyF9,
	tcell.KeyF10:        KeyF10,
	tcell.KeyF11:        KeyF11,
	tcell.KeyF12:        KeyF12,
}

func translateTcell(tev tcell.Event) (Event, bool) {
	switch tev := tev.(type) {
	case *tcell.EventKey:
		ev := Event{Type: EventKey, Mod: tcellMod(tev.Modifiers())}
		k := tev.Key()
		switch {
		case k == tcell.KeyRune:
			ev.Key, ev.Rune = KeyRune, tev.Rune()
		case tcellKeys[k] != KeyNone:
			ev.Key = tcellKeys[k]
		case k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ:
			ev.Key, ev.Rune = KeyRune, rune('a'+(k-tcell.KeyCtrlA))
			ev.Mod |= ModCtrl
		case k == tcell.KeyCtrlSpace:
			ev.Key, ev.Rune = KeyRune, ' '
			ev.Mod |= ModCtrl
		default:
			return Event{}, false
		}
		return ev, true
	case *tcell.EventResize:
		w, h := tev.Size()
		return Event{Type: EventResize, Size: geom.Vector{X: int16(w), Y: int16(h)}}, true
	case *tcell.EventMouse:
		x, y := tev.Position()
		ev := Event{Type: EventMouse, Pos: geom.Point{X: int16(x), Y: int16(y)}, Mod: tcellMod(tev.Modifiers())}
		b := tev.Buttons()
		switch {
		case b&tcell.WheelUp != 0:
			ev.Button = MouseWheelUp
		case b&tcell.WheelDown != 0:
			ev.Button = MouseWheelDown
		case b&tcell.ButtonPrimary != 0:
			ev.Button = MouseLeft
		case b&tcell.ButtonMiddle != 0:
			ev.Button = MouseMiddle
		case b&tcell.ButtonSecondary != 0:
			ev.Button = MouseRight
		default:
			ev.Action = MouseRelease
		}
		return ev, true
	}
	return Event{}, false
}

func tcellMod(m tcell.ModMask) Mod {
	var mod Mod
	if m&tcell.ModShift != 0 {
		mod |= ModShift
	}
	if m&tcell.ModAlt != 0 {
		mod |= ModAlt
	}
	if m&tcell.ModCtrl != 0 {
		mod |= ModCtrl
	}
	return mod
}
