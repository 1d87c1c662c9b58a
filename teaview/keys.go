package teaview

import (
	tea "github.com/charmbracelet/bubbletea"

	"tvx/screen"
)

var teaKeys = map[tea.KeyType]screen.Key{
	tea.KeyEnter:     screen.KeyEnter,
	tea.KeyTab:       screen.KeyTab,
	tea.KeyShiftTab:  screen.KeyBacktab,
	tea.KeyBackspace: screen.KeyBackspace,
	tea.KeyDelete:    screen.KeyDelete,
	tea.KeyInsert:    screen.KeyInsert,
	tea.KeyEsc:       screen.KeyEscape,
	tea.KeyUp:        screen.KeyUp,
	tea.KeyDown:      screen.KeyDown,
	tea.KeyLeft:      screen.KeyLeft,
	tea.KeyRight:     screen.KeyRight,
	tea.KeyHome:      screen.KeyHome,
	tea.KeyEnd:       screen.KeyEnd,
	tea.KeyPgUp:      screen.KeyPageUp,
	tea.KeyPgDown:    screen.KeyPageDown,
	tea.KeyF1:        screen.KeyF1,
	tea.KeyF2:        screen.KeyF2,
	tea.KeyF3:        screen.KeyF3,
	tea.KeyF4:        screen.KeyF4,
	tea.KeyF5:        screen.KeyF5,
	tea.KeyF6:        screen.KeyF6,
	tea.KeyF7:        screen.KeyF7,
	tea.KeyF8:        screen.KeyF8,
	tea.KeyF9:        screen.KeyF9,
	tea.KeyF10:       screen.KeyF10,
	tea.KeyF11:       screen.KeyF11,
	tea.KeyF12:       screen.KeyF12,
}

// KeyEvents translates a Bubble Tea key message. Pasted or batched runes
// become one event each; keys with no tvx equivalent yield nothing.
func KeyEvents(msg tea.KeyMsg) []screen.Event {
	var mod screen.Mod
	if msg.Alt {
		mod |= screen.ModAlt
	}
	key := func(k screen.Key, r rune, m screen.Mod) []screen.Event {
		return []screen.Event{{Type: screen.EventKey, Key: k, Rune: r, Mod: m}}
	}
	switch t := msg.Type; {
	case t == tea.KeyRunes:
		evs := make([]screen.Event, 0, len(msg.Runes))
		for _, r := range msg.Runes {
			evs = append(evs, screen.Event{Type: screen.EventKey, Key: screen.KeyRune, Rune: r, Mod: mod})
		}
		return evs
	case t == tea.KeySpace:
		return key(screen.KeyRune, ' ', mod)
	case teaKeys[t] != screen.KeyNone:
		return key(teaKeys[t], 0, mod)
	case t >= tea.KeyCtrlA && t <= tea.KeyCtrlZ:
		return key(screen.KeyRune, 'a'+rune(t-tea.KeyCtrlA), mod|screen.ModCtrl)
	}
	return nil
}
