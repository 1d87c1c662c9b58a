package screen

import (
	"bytes"
	"io"
	"os"
	"strconv"

	"github.com/mattn/go-runewidth"
	"golang.org/x/term"

	"tvx/geom"
)

// ANSIDriver talks to a terminal directly with ANSI escape sequences.
// It keeps a copy of what the terminal shows and only emits the cells that
// differ, batching each frame into a single write on Flush.
type ANSIDriver struct {
	in    *os.File
	tty   *os.File
	out   io.Writer
	mouse bool

	state   *term.State
	sig     chan os.Signal
	pending []byte
	events  []Event

	front  [][]Cell
	buf    bytes.Buffer
	last   Style
	styled bool
	cx, cy int
}

// NewANSIDriver returns a driver reading keys from in and painting on out.
// Both are normally the same terminal.
func NewANSIDriver(in, out *os.File, mouse bool) *ANSIDriver {
	return &ANSIDriver{in: in, tty: out, out: out, mouse: mouse, cx: -1, cy: -1}
}

func (d *ANSIDriver) WriteLine(y int, cells []Cell) error {
	for len(d.front) <= y {
		d.front = append(d.front, nil)
	}
	front := d.front[y]
	if len(front) != len(cells) {
		front = make([]Cell, len(cells))
		d.front[y] = front
	}
	for x, c := range cells {
		if c == front[x] {
			continue
		}
		front[x] = c
		if c.IsContinuation() {
			continue
		}
		if d.cx != x || d.cy != y {
			d.moveTo(x, y)
		}
		if !d.styled || c.Style != d.last {
			d.writeStyle(c.Style)
			d.last, d.styled = c.Style, true
		}
		d.buf.WriteString(c.Text)

		span := 1
		for x+span < len(cells) && cells[x+span].IsContinuation() {
			span++
		}
		if runewidth.StringWidth(c.Text) == span {
			d.cx, d.cy = x+span, y
		} else {
			// the terminal may disagree about the width; reposition next time
			d.cx, d.cy = -1, -1
		}
	}
	return nil
}

func (d *ANSIDriver) SetCursor(p geom.Point, visible bool) error {
	d.moveTo(int(p.X), int(p.Y))
	if visible {
		d.buf.WriteString("\x1b[?25h")
	} else {
		d.buf.WriteString("\x1b[?25l")
	}
	return nil
}

// Flush writes the buffered frame in one call.
func (d *ANSIDriver) Flush() error {
	if d.styled {
		d.buf.WriteString("\x1b[0m")
		d.styled = false
	}
	if d.buf.Len() == 0 {
		return nil
	}
	_, err := d.out.Write(d.buf.Bytes())
	d.buf.Reset()
	return err
}

// forget drops the copy of the terminal contents so the next frame is
// painted in full.
func (d *ANSIDriver) forget() {
	d.front = nil
	d.cx, d.cy = -1, -1
	d.buf.WriteString("\x1b[0m\x1b[2J")
}

func (d *ANSIDriver) moveTo(x, y int) {
	d.buf.WriteString("\x1b[")
	d.buf.WriteString(strconv.Itoa(y + 1))
	d.buf.WriteByte(';')
	d.buf.WriteString(strconv.Itoa(x + 1))
	d.buf.WriteByte('H')
	d.cx, d.cy = x, y
}

// writeStyle emits SGR codes for style, resetting first so attributes of
// the previous style never leak.
func (d *ANSIDriver) writeStyle(style Style) {
	b := &d.buf
	b.WriteString("\x1b[0")
	for _, a := range []struct {
		attr Attribute
		code string
	}{
		{AttrBold, ";1"},
		{AttrDim, ";2"},
		{AttrItalic, ";3"},
		{AttrUnderline, ";4"},
		{AttrBlink, ";5"},
		{AttrInverse, ";7"},
		{AttrStrikethrough, ";9"},
	} {
		if style.Attr.Has(a.attr) {
			b.WriteString(a.code)
		}
	}
	d.writeColor(style.FG, true)
	d.writeColor(style.BG, false)
	b.WriteByte('m')
}

func (d *ANSIDriver) writeColor(c Color, fg bool) {
	b := &d.buf
	switch c.Mode {
	case ColorDefault:
		if fg {
			b.WriteString(";39")
		} else {
			b.WriteString(";49")
		}
	case Color16:
		base := 30
		if !fg {
			base = 40
		}
		idx := int(c.Index)
		if idx >= 8 {
			base += 60
			idx -= 8
		}
		b.WriteByte(';')
		b.WriteString(strconv.Itoa(base + idx))
	case Color256:
		if fg {
			b.WriteString(";38;5;")
		} else {
			b.WriteString(";48;5;")
		}
		b.WriteString(strconv.Itoa(int(c.Index)))
	case ColorRGB:
		if fg {
			b.WriteString(";38;2;")
		} else {
			b.WriteString(";48;2;")
		}
		b.WriteString(strconv.Itoa(int(c.R)))
		b.WriteByte(';')
		b.WriteString(strconv.Itoa(int(c.G)))
		b.WriteByte(';')
		b.WriteString(strconv.Itoa(int(c.B)))
	}
}
