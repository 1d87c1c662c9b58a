package screen

import (
	"fmt"
	"strings"

	"tvx/geom"
)

// EventType says which fields of an Event are meaningful.
type EventType uint8

const (
	EventNone EventType = iota
	EventKey
	EventResize
	EventMouse
)

// Key identifies a non-character key. Printable input arrives as KeyRune.
type Key uint16

const (
	KeyNone Key = iota
	KeyRune
	KeyEscape
	KeyEnter
	KeyTab
	KeyBacktab
	KeyBackspace
	KeyDelete
	KeyInsert
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
)

var keyNames = map[Key]string{
	KeyNone:      "None",
	KeyRune:      "Rune",
	KeyEscape:    "Escape",
	KeyEnter:     "Enter",
	KeyTab:       "Tab",
	KeyBacktab:   "Backtab",
	KeyBackspace: "Backspace",
	KeyDelete:    "Delete",
	KeyInsert:    "Insert",
	KeyUp:        "Up",
	KeyDown:      "Down",
	KeyLeft:      "Left",
	KeyRight:     "Right",
	KeyHome:      "Home",
	KeyEnd:       "End",
	KeyPageUp:    "PageUp",
	KeyPageDown:  "PageDown",
}

func (k Key) String() string {
	if n, ok := keyNames[k]; ok {
		return n
	}
	if k >= KeyF1 && k <= KeyF12 {
		return fmt.Sprintf("F%d", k-KeyF1+1)
	}
	return fmt.Sprintf("Key(%d)", uint16(k))
}

// Mod is a set of keyboard modifiers.
type Mod uint8

const (
	ModShift Mod = 1 << iota
	ModAlt
	ModCtrl
)

// MouseButton identifies the button of a mouse event.
type MouseButton uint8

const (
	MouseNone MouseButton = iota
	MouseLeft
	MouseMiddle
	MouseRight
	MouseWheelUp
	MouseWheelDown
)

// MouseAction says what happened to the button.
type MouseAction uint8

const (
	MousePress MouseAction = iota
	MouseRelease
	MouseMotion
)

// Event is one input or terminal notification returned by Screen.Update.
type Event struct {
	Type EventType

	// EventKey. Control letters arrive as KeyRune with ModCtrl and a
	// lower-case Rune.
	Key  Key
	Rune rune
	Mod  Mod

	// EventResize: the new screen size.
	Size geom.Vector

	// EventMouse
	Pos    geom.Point
	Button MouseButton
	Action MouseAction
}

// Name renders a key event the way bindings are written: "ctrl+c",
// "alt+x", "enter", "a". Other event types return "".
func (e Event) Name() string {
	if e.Type != EventKey {
		return ""
	}
	var b strings.Builder
	if e.Mod&ModCtrl != 0 {
		b.WriteString("ctrl+")
	}
	if e.Mod&ModAlt != 0 {
		b.WriteString("alt+")
	}
	if e.Key == KeyRune {
		if e.Rune == ' ' {
			b.WriteString("space")
		} else {
			b.WriteRune(e.Rune)
		}
		return b.String()
	}
	if e.Mod&ModShift != 0 {
		b.WriteString("shift+")
	}
	b.WriteString(strings.ToLower(e.Key.String()))
	return b.String()
}
