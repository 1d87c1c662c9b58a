// Package screen is the cell buffer between views and the terminal.
//
// Views write clipped text into the buffer with Out; Update pushes the rows
// that changed through a Driver and waits for the next input event.
package screen

import (
	"log"

	"tvx/geom"
	"tvx/grapheme"
	"tvx/internal/logutil"
)

var logger = logutil.GetLogger("[screen] ")

// MaxCells bounds the cell buffer. Larger terminals fail with ErrOutOfMemory
// rather than allocating without limit.
const MaxCells = 1 << 22

// Screen holds one row of cells per terminal line and tracks which rows
// changed since the last Update.
type Screen struct {
	driver  Driver
	maxSize geom.Vector
	size    geom.Vector
	cells   []Cell
	dirty   []bool
	logger  *log.Logger
}

// Option configures a Screen.
type Option func(*Screen)

// MaxSize caps the buffer at the given size. A zero component leaves that
// axis uncapped.
func MaxSize(v geom.Vector) Option {
	return func(s *Screen) {
		s.maxSize = v
	}
}

// New initializes the driver and allocates a buffer of the terminal's size.
// On failure the driver is released again.
func New(d Driver, opts ...Option) (*Screen, error) {
	s := &Screen{driver: d, logger: logger}
	for _, opt := range opts {
		opt(s)
	}
	if err := d.Init(); err != nil {
		d.Fini()
		return nil, wrap("init", err)
	}
	cols, rows, err := d.Size()
	if err != nil {
		d.Fini()
		return nil, wrap("size", err)
	}
	if err := s.resize(cols, rows); err != nil {
		d.Fini()
		return nil, err
	}
	return s, nil
}

// Close releases the terminal.
func (s *Screen) Close() error {
	return wrap("fini", s.driver.Fini())
}

// Size returns the buffer size.
func (s *Screen) Size() geom.Vector {
	return s.size
}

// Bounds returns the buffer as a rect at the origin.
func (s *Screen) Bounds() geom.Rect {
	return geom.Rect{Size: s.size}
}

// Cell returns the cell at p. Points outside the buffer read as blank.
func (s *Screen) Cell(p geom.Point) Cell {
	if !s.Bounds().Contains(p) {
		return BlankCell(DefaultStyle())
	}
	return s.row(int(p.Y))[p.X]
}

// Line returns the text of row y, skipping continuation cells.
func (s *Screen) Line(y int) string {
	if y < 0 || y >= int(s.size.Y) {
		return ""
	}
	var b []byte
	for _, c := range s.row(y) {
		b = append(b, c.Text...)
	}
	return string(b)
}

// Row returns the cells of row y. The slice aliases the buffer.
func (s *Screen) Row(y int) []Cell {
	if y < 0 || y >= int(s.size.Y) {
		return nil
	}
	return s.row(y)
}

// Dirty reports whether row y changed since the last Update.
func (s *Screen) Dirty(y int) bool {
	return y >= 0 && y < len(s.dirty) && s.dirty[y]
}

// Invalidate marks every row dirty so the next Update repaints the terminal.
func (s *Screen) Invalidate() {
	for y := range s.dirty {
		s.dirty[y] = true
	}
}

func (s *Screen) row(y int) []Cell {
	w := int(s.size.X)
	return s.cells[y*w : (y+1)*w]
}

func (s *Screen) resize(cols, rows int) error {
	if s.maxSize.X > 0 {
		cols = min(cols, int(s.maxSize.X))
	}
	if s.maxSize.Y > 0 {
		rows = min(rows, int(s.maxSize.Y))
	}
	cols = max(0, min(cols, 1<<15-1))
	rows = max(0, min(rows, 1<<15-1))
	if cols*rows > MaxCells {
		return ErrOutOfMemory
	}
	cells := make([]Cell, cols*rows)
	for i := range cells {
		cells[i] = BlankCell(DefaultStyle())
	}
	s.cells = cells
	s.dirty = make([]bool, rows)
	s.size = geom.Vector{X: int16(cols), Y: int16(rows)}
	s.Invalidate()
	s.logger.Printf("resized to %dx%d", cols, rows)
	return nil
}

// Out writes text at p and returns the columns it touched.
//
// Clusters entirely left of soft.Start are skipped and output stops at
// soft.End. A cluster that crosses a hard clip edge is replaced by spaces on
// the visible side; a cluster that only crosses a soft edge is drawn whole,
// so the result may extend past soft but never past hard. A wide cluster
// partly overwritten by the new text is blanked so no continuation cell is
// left without its leading cell; the blanked columns are part of the result.
func (s *Screen) Out(p geom.Point, style Style, text string, hard, soft geom.Range) geom.Range {
	if p.Y < 0 || p.Y >= s.size.Y {
		return geom.Range{}
	}
	hard = hard.Intersect(geom.Range{End: s.size.X})
	soft = soft.Intersect(hard)
	if soft.IsEmpty() {
		return geom.Range{}
	}
	row := s.row(int(p.Y))
	hs, he := int(hard.Start), int(hard.End)
	ss, se := int(soft.Start), int(soft.End)

	var written geom.Range
	x := int(p.X)
	for c := range grapheme.All(text) {
		if c.Width == 0 {
			continue
		}
		start, end := x, x+c.Width
		x = end
		if end <= ss {
			continue
		}
		if start >= se {
			break
		}
		if start < hs || end > he {
			for i := max(start, hs); i < min(end, he); i++ {
				written = written.Union(put(row, i, " ", 1, style))
			}
			continue
		}
		written = written.Union(put(row, start, c.Text, c.Width, style))
	}
	if !written.IsEmpty() {
		s.dirty[p.Y] = true
	}
	return written
}

// put stores a cluster of width w at column x, blanking any wide cluster it
// cuts into on either side.
func put(row []Cell, x int, text string, w int, style Style) geom.Range {
	lo := x
	if row[x].IsContinuation() {
		lo = x - 1
		for lo > 0 && row[lo].IsContinuation() {
			lo--
		}
		for i := lo; i < x; i++ {
			row[i] = BlankCell(row[i].Style)
		}
	}
	end := x + w
	hi := end
	for hi < len(row) && row[hi].IsContinuation() {
		row[hi] = BlankCell(row[hi].Style)
		hi++
	}
	row[x] = Cell{Text: text, Style: style}
	for i := x + 1; i < end; i++ {
		row[i] = Cell{Style: style}
	}
	return geom.Range{Start: int16(lo), End: int16(hi)}
}

// Flush sends the dirty rows to the driver and places the cursor. The
// cursor is shown only when it lies inside the buffer; otherwise it is
// parked hidden on the first row.
func (s *Screen) Flush(cursor *geom.Point) error {
	rows := 0
	for y, d := range s.dirty {
		if !d {
			continue
		}
		if err := s.driver.WriteLine(y, s.row(y)); err != nil {
			return wrap("write", err)
		}
		s.dirty[y] = false
		rows++
	}
	var err error
	if cursor != nil && s.Bounds().Contains(*cursor) {
		err = s.driver.SetCursor(*cursor, true)
	} else {
		err = s.driver.SetCursor(geom.Point{}, false)
	}
	if err != nil {
		return wrap("cursor", err)
	}
	if err := s.driver.Flush(); err != nil {
		return wrap("flush", err)
	}
	if rows > 0 {
		s.logger.Printf("flushed %d rows", rows)
	}
	return nil
}

// Update flushes like Flush and returns the next event.
//
// With wait false an EventNone event is returned when no input is pending.
// On a resize event the buffer is reallocated blank and every row is dirty;
// the returned event carries the new, possibly capped, size.
func (s *Screen) Update(cursor *geom.Point, wait bool) (Event, error) {
	if err := s.Flush(cursor); err != nil {
		return Event{}, err
	}
	ev, err := s.driver.PollEvent(wait)
	if err != nil {
		return Event{}, wrap("poll", err)
	}
	if ev.Type == EventResize {
		if err := s.resize(int(ev.Size.X), int(ev.Size.Y)); err != nil {
			return Event{}, err
		}
		ev.Size = s.size
	}
	return ev, nil
}
