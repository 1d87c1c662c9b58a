package tvx

import (
	"fmt"
	"slices"

	"tvx/geom"
	"tvx/internal/logutil"
	"tvx/screen"
)

var logger = logutil.GetLogger("[tvx] ")

// App drives a view tree on a Screen: it lays the tree out, repaints the
// regions that were invalidated, flushes the screen and routes input.
type App struct {
	screen *screen.Screen
	root   View
	focus  *FocusManager

	dirty       []geom.Rect
	layoutDirty bool
	cursor      *geom.Point

	bindings map[string]func()
	running  bool
}

// NewApp creates an application on s.
func NewApp(s *screen.Screen) *App {
	return &App{
		screen:   s,
		focus:    NewFocusManager(),
		bindings: make(map[string]func()),
	}
}

// Screen returns the screen.
func (a *App) Screen() *screen.Screen {
	return a.screen
}

// Root returns the root view, or nil.
func (a *App) Root() View {
	return a.root
}

// Focus returns the focus manager.
func (a *App) Focus() *FocusManager {
	return a.focus
}

// SetRoot makes v the root of the tree. The focusable views under v are
// collected and the whole screen is repainted on the next pass.
func (a *App) SetRoot(v View) *App {
	if a.root != nil {
		a.root.Base().setHost(nil)
	}
	a.root = v
	if v != nil {
		v.Base().setHost(a)
	}
	a.focus.Collect(v)
	a.layoutDirty = true
	a.cursor = nil
	a.dirty = a.dirty[:0]
	a.InvalidateRender(a.screen.Bounds())
	return a
}

// Refocus recollects focusable views after the tree changed shape.
func (a *App) Refocus() {
	a.focus.Collect(a.root)
}

// Handle registers a key binding by event name, such as "ctrl+c" or "f1".
// Bindings run when neither the focused view, its ancestors nor focus
// cycling consumed the key.
func (a *App) Handle(name string, fn func()) *App {
	a.bindings[name] = fn
	return a
}

// InvalidateRender queues r, in screen coordinates, for repainting.
// Overlapping regions are merged.
func (a *App) InvalidateRender(r geom.Rect) {
	r = r.Intersect(a.screen.Bounds())
	if r.IsEmpty() {
		return
	}
	for {
		i := slices.IndexFunc(a.dirty, func(d geom.Rect) bool {
			return !d.Intersect(r).IsEmpty()
		})
		if i < 0 {
			break
		}
		r = r.Union(a.dirty[i])
		a.dirty = slices.Delete(a.dirty, i, i+1)
	}
	a.dirty = append(a.dirty, r)
}

// InvalidateLayout schedules a measure and arrange of the root.
func (a *App) InvalidateLayout() {
	a.layoutDirty = true
}

// Dirty returns the regions waiting to be repainted.
func (a *App) Dirty() []geom.Rect {
	return slices.Clone(a.dirty)
}

// Pass lays the tree out against the screen size and repaints the dirty
// regions into the screen buffer. Nothing is sent to the terminal.
func (a *App) Pass() {
	if a.root == nil {
		a.dirty = a.dirty[:0]
		return
	}
	b := a.root.Base()
	if a.layoutDirty || !b.IsMeasureValid() || !b.IsArrangeValid() {
		size := a.screen.Size()
		b.Measure(size.X, size.Y)
		b.Arrange(geom.Rect{Size: size})
		a.layoutDirty = false
	}
	if len(a.dirty) == 0 {
		return
	}
	logger.Printf("pass: %d regions", len(a.dirty))
	for _, r := range a.dirty {
		if a.cursor != nil && r.Contains(*a.cursor) {
			a.cursor = nil
		}
		rp := RenderRoot(a.screen, a.root, r)
		if c, ok := rp.CursorPos(); ok {
			a.cursor = &c
		}
	}
	a.dirty = a.dirty[:0]
}

// Cursor returns where the terminal cursor will be shown, if anywhere.
func (a *App) Cursor() (geom.Point, bool) {
	if a.cursor == nil {
		return geom.Point{}, false
	}
	return *a.cursor, true
}

// Step runs a pass, flushes the screen and handles one event. With wait
// false it returns an EventNone event when no input is pending.
func (a *App) Step(wait bool) (screen.Event, error) {
	a.Pass()
	ev, err := a.screen.Update(a.cursor, wait)
	if err != nil {
		return ev, fmt.Errorf("update: %w", err)
	}
	switch ev.Type {
	case screen.EventResize:
		logger.Printf("resize %dx%d", ev.Size.X, ev.Size.Y)
		a.layoutDirty = true
		a.cursor = nil
		a.dirty = a.dirty[:0]
		a.InvalidateRender(a.screen.Bounds())
	case screen.EventKey:
		a.Dispatch(ev)
	}
	return ev, nil
}

// Run processes events until Quit is called or the screen fails.
func (a *App) Run() error {
	a.running = true
	defer func() { a.running = false }()
	for a.running {
		if _, err := a.Step(true); err != nil {
			return err
		}
	}
	// flush what the last handler changed
	a.Pass()
	if err := a.screen.Flush(a.cursor); err != nil {
		return fmt.Errorf("flush: %w", err)
	}
	return nil
}

// Quit makes Run return after the current event.
func (a *App) Quit() {
	a.running = false
}

// Running reports whether Run is active.
func (a *App) Running() bool {
	return a.running
}

// Dispatch routes a key event. The focused view gets it first, then each of
// its layout ancestors; then focus cycling, Alt hotkeys and finally the
// bindings registered with Handle. It reports whether anything consumed
// the key.
func (a *App) Dispatch(ev screen.Event) bool {
	if ev.Type != screen.EventKey {
		return false
	}
	if f := a.focus.Focused(); f != nil && !a.attached(f) {
		a.focus.Collect(a.root)
	}
	var v View
	if f := a.focus.Focused(); f != nil {
		v = f
	} else {
		v = a.root
	}
	for ; v != nil; v = v.Base().LayoutParent() {
		if v.HandleKey(ev) {
			return true
		}
	}
	if a.focus.HandleKey(ev) {
		return true
	}
	if ev.Mod == screen.ModAlt && a.root != nil {
		if act := findHotkey(a.root, ev); act != nil {
			a.activate(act)
			return true
		}
	}
	if fn, ok := a.bindings[ev.Name()]; ok {
		fn()
		return true
	}
	return false
}

// attached reports whether v is still part of the tree under the root.
func (a *App) attached(v View) bool {
	for ; v != nil; v = v.Base().VisualParent() {
		if v == a.root {
			return true
		}
	}
	return false
}

func (a *App) activate(act Activator) {
	target := View(act)
	if l, ok := act.(*Label); ok && l.Link() != nil {
		target = l.Link()
	}
	a.focus.FocusView(target)
	act.Activate()
}

func findHotkey(v View, ev screen.Event) Activator {
	if act, ok := v.(Activator); ok && matchHotkey(ev, act.Hotkey()) {
		return act
	}
	for c := range v.VisualChildren() {
		if act := findHotkey(c, ev); act != nil {
			return act
		}
	}
	return nil
}
