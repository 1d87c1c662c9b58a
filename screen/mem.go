package screen

import (
	"errors"
	"strings"

	"tvx/geom"
)

// MemDriver is a headless terminal. It records what was written and replays
// events queued with Post, which makes it the driver of choice for tests and
// for hosts that paint the buffer themselves.
type MemDriver struct {
	cols, rows int
	lines      [][]Cell
	cursor     geom.Point
	visible    bool
	events     []Event
	open       bool

	// Writes counts WriteLine calls; Flushes counts Flush calls.
	Writes  int
	Flushes int
}

// NewMemDriver returns a driver reporting the given size.
func NewMemDriver(cols, rows int) *MemDriver {
	return &MemDriver{cols: cols, rows: rows}
}

func (d *MemDriver) Init() error {
	if d.open {
		return errors.New("already initialized")
	}
	d.open = true
	return nil
}

func (d *MemDriver) Fini() error {
	d.open = false
	return nil
}

func (d *MemDriver) Size() (int, int, error) {
	return d.cols, d.rows, nil
}

func (d *MemDriver) WriteLine(y int, cells []Cell) error {
	if !d.open {
		return errors.New("write on closed driver")
	}
	for len(d.lines) <= y {
		d.lines = append(d.lines, nil)
	}
	d.lines[y] = append(d.lines[y][:0], cells...)
	d.Writes++
	return nil
}

func (d *MemDriver) SetCursor(p geom.Point, visible bool) error {
	d.cursor, d.visible = p, visible
	return nil
}

func (d *MemDriver) Flush() error {
	d.Flushes++
	return nil
}

// PollEvent pops the oldest queued event. It never blocks: with an empty
// queue it returns EventNone whatever wait says.
func (d *MemDriver) PollEvent(wait bool) (Event, error) {
	if len(d.events) == 0 {
		return Event{}, nil
	}
	ev := d.events[0]
	d.events = d.events[1:]
	return ev, nil
}

// Post queues an event for PollEvent.
func (d *MemDriver) Post(ev Event) {
	d.events = append(d.events, ev)
}

// PostKey queues a key event.
func (d *MemDriver) PostKey(k Key, r rune, mod Mod) {
	d.Post(Event{Type: EventKey, Key: k, Rune: r, Mod: mod})
}

// Resize changes the reported size and queues the matching resize event.
func (d *MemDriver) Resize(cols, rows int) {
	d.cols, d.rows = cols, rows
	d.lines = nil
	d.Post(Event{Type: EventResize, Size: geom.Vector{X: int16(cols), Y: int16(rows)}})
}

// Line returns the text last written to row y.
func (d *MemDriver) Line(y int) string {
	if y >= len(d.lines) {
		return ""
	}
	var b strings.Builder
	for _, c := range d.lines[y] {
		b.WriteString(c.Text)
	}
	return b.String()
}

// CellAt returns the cell last written at (x, y).
func (d *MemDriver) CellAt(x, y int) Cell {
	if y >= len(d.lines) || x >= len(d.lines[y]) {
		return Cell{}
	}
	return d.lines[y][x]
}

// Cursor returns the last cursor position and visibility.
func (d *MemDriver) Cursor() (geom.Point, bool) {
	return d.cursor, d.visible
}
