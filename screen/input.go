package screen

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"tvx/geom"
)

var ss3Keys = map[byte]Key{
	'A': KeyUp,
	'B': KeyDown,
	'C': KeyRight,
	'D': KeyLeft,
	'H': KeyHome,
	'F': KeyEnd,
	'P': KeyF1,
	'Q': KeyF2,
	'R': KeyF3,
	'S': KeyF4,
}

var csiKeys = map[byte]Key{
	'A': KeyUp,
	'B': KeyDown,
	'C': KeyRight,
	'D': KeyLeft,
	'H': KeyHome,
	'F': KeyEnd,
	'Z': KeyBacktab,
	'P': KeyF1,
	'Q': KeyF2,
	'R': KeyF3,
	'S': KeyF4,
}

var tildeKeys = map[int]Key{
	1:  KeyHome,
	2:  KeyInsert,
	3:  KeyDelete,
	4:  KeyEnd,
	5:  KeyPageUp,
	6:  KeyPageDown,
	7:  KeyHome,
	8:  KeyEnd,
	11: KeyF1,
	12: KeyF2,
	13: KeyF3,
	14: KeyF4,
	15: KeyF5,
	17: KeyF6,
	18: KeyF7,
	19: KeyF8,
	20: KeyF9,
	21: KeyF10,
	23: KeyF11,
	24: KeyF12,
}

// parseInput decodes terminal input bytes into events. Bytes of a sequence
// that is not complete yet are returned for the next call. Unknown escape
// sequences are consumed and dropped.
func parseInput(b []byte) ([]Event, []byte) {
	var evs []Event
	for len(b) > 0 {
		ev, n := parseOne(b)
		if n == 0 {
			break
		}
		if ev.Type != EventNone {
			evs = append(evs, ev)
		}
		b = b[n:]
	}
	return evs, b
}

func keyEvent(k Key) Event {
	return Event{Type: EventKey, Key: k}
}

func runeEvent(r rune, mod Mod) Event {
	return Event{Type: EventKey, Key: KeyRune, Rune: r, Mod: mod}
}

func parseOne(b []byte) (Event, int) {
	c := b[0]
	switch {
	case c == 0x1b:
		if len(b) == 1 {
			return keyEvent(KeyEscape), 1
		}
		switch b[1] {
		case '[':
			if len(b) == 2 {
				// a read ending in "ESC [" is Alt+[, like a lone ESC is Escape
				return runeEvent('[', ModAlt), 2
			}
			return parseCSI(b)
		case 'O':
			if len(b) < 3 {
				return runeEvent('O', ModAlt), 2
			}
			if k, ok := ss3Keys[b[2]]; ok {
				return keyEvent(k), 3
			}
			return Event{}, 3
		case 0x1b:
			return keyEvent(KeyEscape), 1
		}
		ev, n := parseOne(b[1:])
		if n == 0 {
			return Event{}, 0
		}
		ev.Mod |= ModAlt
		return ev, n + 1
	case c == '\r' || c == '\n':
		return keyEvent(KeyEnter), 1
	case c == '\t':
		return keyEvent(KeyTab), 1
	case c == 0x7f || c == 0x08:
		return keyEvent(KeyBackspace), 1
	case c == 0:
		return runeEvent(' ', ModCtrl), 1
	case c <= 0x1a:
		return runeEvent(rune('a'+c-1), ModCtrl), 1
	case c < 0x20:
		return runeEvent(rune(c+0x40), ModCtrl), 1
	}
	if !utf8.FullRune(b) {
		return Event{}, 0
	}
	r, n := utf8.DecodeRune(b)
	return runeEvent(r, 0), n
}

// parseCSI decodes "ESC [ params final".
func parseCSI(b []byte) (Event, int) {
	i := 2
	for i < len(b) && b[i] >= 0x20 && b[i] <= 0x3f {
		i++
	}
	if i >= len(b) {
		return Event{}, 0
	}
	final := b[i]
	params := string(b[2:i])
	n := i + 1

	if strings.HasPrefix(params, "<") && (final == 'M' || final == 'm') {
		return parseSGRMouse(params[1:], final == 'm'), n
	}

	nums := csiParams(params)
	var mod Mod
	if len(nums) >= 2 && nums[1] > 1 {
		mod = xtermMod(nums[1] - 1)
	}
	if final == '~' {
		if len(nums) == 0 {
			return Event{}, n
		}
		if k, ok := tildeKeys[nums[0]]; ok {
			return Event{Type: EventKey, Key: k, Mod: mod}, n
		}
		return Event{}, n
	}
	if k, ok := csiKeys[final]; ok {
		return Event{Type: EventKey, Key: k, Mod: mod}, n
	}
	return Event{}, n
}

func csiParams(s string) []int {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ";")
	nums := make([]int, len(parts))
	for i, p := range parts {
		nums[i], _ = strconv.Atoi(p)
	}
	return nums
}

func xtermMod(m int) Mod {
	var mod Mod
	if m&1 != 0 {
		mod |= ModShift
	}
	if m&2 != 0 {
		mod |= ModAlt
	}
	if m&4 != 0 {
		mod |= ModCtrl
	}
	return mod
}

// parseSGRMouse decodes the "b;x;y" part of an SGR (1006) mouse report.
func parseSGRMouse(params string, release bool) Event {
	nums := csiParams(params)
	if len(nums) != 3 {
		return Event{}
	}
	code := nums[0]
	ev := Event{
		Type: EventMouse,
		Pos:  geom.Point{X: int16(nums[1] - 1), Y: int16(nums[2] - 1)},
	}
	if code&4 != 0 {
		ev.Mod |= ModShift
	}
	if code&8 != 0 {
		ev.Mod |= ModAlt
	}
	if code&16 != 0 {
		ev.Mod |= ModCtrl
	}
	switch {
	case code&64 != 0:
		if code&1 != 0 {
			ev.Button = MouseWheelDown
		} else {
			ev.Button = MouseWheelUp
		}
		return ev
	case code&3 == 0:
		ev.Button = MouseLeft
	case code&3 == 1:
		ev.Button = MouseMiddle
	case code&3 == 2:
		ev.Button = MouseRight
	}
	switch {
	case release || code&3 == 3:
		ev.Action = MouseRelease
	case code&32 != 0:
		ev.Action = MouseMotion
	}
	return ev
}
