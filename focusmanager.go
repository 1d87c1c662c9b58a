package tvx

import "tvx/screen"

// FocusManager coordinates keyboard focus across the focusable views of a
// tree. Tab and Shift-Tab cycle focus; the App routes keystrokes to the
// focused view first.
//
// usage:
//
//	fm := NewFocusManager()
//	fm.Register(ok).Register(cancel)
//	fm.OnChange(func(i int) { status.SetText(fmt.Sprint("field ", i)) })
type FocusManager struct {
	items   []Focusable
	current int

	nextKey  string
	prevKey  string
	onChange func(index int) // called when focus changes
}

// NewFocusManager creates a new focus manager with default Tab/Shift-Tab bindings.
func NewFocusManager() *FocusManager {
	return &FocusManager{
		current: -1,
		nextKey: "tab",
		prevKey: "backtab",
	}
}

// Register adds a focusable view to the manager.
// The first registered view receives initial focus.
func (fm *FocusManager) Register(f Focusable) *FocusManager {
	fm.items = append(fm.items, f)
	if len(fm.items) == 1 {
		fm.current = 0
		f.SetFocused(true)
	}
	return fm
}

// Collect replaces the registered views with the focusable views under root,
// in paint order. A view that had focus and is still present keeps it.
func (fm *FocusManager) Collect(root View) *FocusManager {
	prev := fm.Focused()
	fm.items = fm.items[:0]
	fm.current = -1
	var walk func(v View)
	walk = func(v View) {
		if f, ok := v.(Focusable); ok {
			fm.items = append(fm.items, f)
		}
		for c := range v.VisualChildren() {
			walk(c)
		}
	}
	if root != nil {
		walk(root)
	}
	for i, f := range fm.items {
		if f == prev {
			fm.current = i
		}
	}
	if fm.current < 0 && prev != nil {
		prev.SetFocused(false)
	}
	if fm.current < 0 && len(fm.items) > 0 {
		fm.current = 0
		fm.items[0].SetFocused(true)
	}
	return fm
}

// NextKey sets the key name for moving to the next focusable (default: "tab").
func (fm *FocusManager) NextKey(key string) *FocusManager {
	fm.nextKey = key
	return fm
}

// PrevKey sets the key name for moving to the previous focusable (default:
// "backtab", which Shift-Tab also matches).
func (fm *FocusManager) PrevKey(key string) *FocusManager {
	fm.prevKey = key
	return fm
}

// OnChange sets a callback that fires when focus changes.
func (fm *FocusManager) OnChange(fn func(index int)) *FocusManager {
	fm.onChange = fn
	return fm
}

// Next moves focus to the next view.
func (fm *FocusManager) Next() {
	fm.moveFocus(1)
}

// Prev moves focus to the previous view.
func (fm *FocusManager) Prev() {
	fm.moveFocus(-1)
}

func (fm *FocusManager) moveFocus(delta int) {
	if len(fm.items) <= 1 {
		return
	}
	fm.Focus((fm.current + len(fm.items) + delta) % len(fm.items))
}

// Focus sets focus to a specific index.
func (fm *FocusManager) Focus(index int) {
	if index < 0 || index >= len(fm.items) {
		return
	}
	if fm.current == index {
		return
	}
	if fm.current >= 0 {
		fm.items[fm.current].SetFocused(false)
	}
	fm.current = index
	fm.items[fm.current].SetFocused(true)
	logger.Printf("focus %d/%d", index, len(fm.items))
	if fm.onChange != nil {
		fm.onChange(fm.current)
	}
}

// FocusView focuses v if it is registered.
func (fm *FocusManager) FocusView(v View) bool {
	for i, f := range fm.items {
		if View(f) == v {
			fm.Focus(i)
			return true
		}
	}
	return false
}

// Current returns the currently focused index, or -1.
func (fm *FocusManager) Current() int {
	return fm.current
}

// Focused returns the focused view, or nil.
func (fm *FocusManager) Focused() Focusable {
	if fm.current < 0 || fm.current >= len(fm.items) {
		return nil
	}
	return fm.items[fm.current]
}

// Len returns the number of registered views.
func (fm *FocusManager) Len() int {
	return len(fm.items)
}

// HandleKey moves focus on the next and previous keys.
func (fm *FocusManager) HandleKey(ev screen.Event) bool {
	name := ev.Name()
	if name == "shift+tab" {
		name = "backtab"
	}
	switch name {
	case "":
		return false
	case fm.nextKey:
		fm.Next()
		return true
	case fm.prevKey:
		fm.Prev()
		return true
	}
	return false
}
