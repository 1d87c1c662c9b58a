package screen

import "tvx/geom"

// Driver is the terminal the Screen paints on. The Screen owns the cell
// buffer and decides which rows to send; a driver only has to put rows on
// the glass and report input.
type Driver interface {
	// Init acquires the terminal. Fini releases it and must be safe to call
	// after a failed Init.
	Init() error
	Fini() error

	Size() (cols, rows int, err error)

	// WriteLine replaces row y. Continuation cells carry no text and are
	// covered by the wide cluster to their left.
	WriteLine(y int, cells []Cell) error
	SetCursor(p geom.Point, visible bool) error
	Flush() error

	// PollEvent returns the next pending event. With wait false it returns
	// an EventNone event when nothing is pending.
	PollEvent(wait bool) (Event, error)
}
