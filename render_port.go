package tvx

import (
	"iter"
	"strings"

	"tvx/geom"
	"tvx/grapheme"
	"tvx/screen"
)

// Surface is the cell grid a RenderPort draws on. *screen.Screen is the
// usual implementation.
type Surface interface {
	Size() geom.Vector
	Out(p geom.Point, style screen.Style, text string, hard, soft geom.Range) geom.Range
}

// RenderPort is the clipped drawing surface a view receives in Render.
//
// Points passed to its methods are local to the view's content area. Output
// is clipped hard to the port bounds and softly to the invalidated rect:
// anything outside the invalidated rect is skipped because it does not need
// repainting, and the invalidated rect grows to cover what was actually
// written.
type RenderPort struct {
	surface     Surface
	offset      geom.Vector
	bounds      geom.Rect
	invalidated geom.Rect
	cursor      *geom.Point
}

// NewRenderPort returns a port covering the whole surface that repaints the
// given screen rect.
func NewRenderPort(s Surface, invalidated geom.Rect) *RenderPort {
	full := geom.Rect{Size: s.Size()}
	return &RenderPort{
		surface:     s,
		bounds:      full,
		invalidated: invalidated.Intersect(full),
	}
}

func (rp *RenderPort) screenRect() geom.Rect {
	return geom.Rect{Size: rp.surface.Size()}
}

// Bounds returns the drawable area in local coordinates.
func (rp *RenderPort) Bounds() geom.Rect {
	return rp.bounds.Offset(rp.offset.Neg())
}

// Invalidated returns the area being repainted, in local coordinates.
func (rp *RenderPort) Invalidated() geom.Rect {
	return rp.invalidated.Offset(rp.offset.Neg())
}

// CursorPos returns the pending cursor request in screen coordinates.
func (rp *RenderPort) CursorPos() (geom.Point, bool) {
	if rp.cursor == nil {
		return geom.Point{}, false
	}
	return *rp.cursor, true
}

// sub returns a port for a child whose content occupies r, given in this
// port's local coordinates.
func (rp *RenderPort) sub(r geom.Rect) *RenderPort {
	abs := r.Offset(rp.offset)
	bounds := rp.bounds.Intersect(abs)
	return &RenderPort{
		surface:     rp.surface,
		offset:      geom.Vector(abs.TL),
		bounds:      bounds,
		invalidated: rp.invalidated.Intersect(bounds),
		cursor:      rp.cursor,
	}
}

// join takes back what a child port wrote and its cursor decision.
func (rp *RenderPort) join(child *RenderPort) {
	rp.invalidated = rp.invalidated.Union(child.invalidated)
	rp.cursor = child.cursor
}

// Text draws s at p. Rows outside the clip are skipped. When the written
// columns cover a pending cursor request the request is dropped.
func (rp *RenderPort) Text(p geom.Point, style screen.Style, s string) {
	abs := p.Offset(rp.offset)
	if !rp.bounds.VRange().Contains(abs.Y) || !rp.invalidated.VRange().Contains(abs.Y) {
		return
	}
	if abs.X >= rp.bounds.Right() {
		return
	}
	hard := rp.bounds.HRange()
	soft := rp.invalidated.HRange().Intersect(hard)
	written := rp.surface.Out(abs, style, s, hard, soft)
	if written.IsEmpty() {
		return
	}
	row := geom.Range{Start: abs.Y, End: abs.Y + 1}
	rp.invalidated = rp.invalidated.Union(geom.RectFromRanges(written, row)).Intersect(rp.screenRect())
	if rp.cursor != nil && rp.cursor.Y == abs.Y && written.Contains(rp.cursor.X) {
		rp.cursor = nil
	}
}

// Cursor asks for the terminal cursor at p. The request is ignored outside
// the port bounds or the invalidated rect.
func (rp *RenderPort) Cursor(p geom.Point) {
	abs := p.Offset(rp.offset)
	if rp.bounds.Contains(abs) && rp.invalidated.Contains(abs) {
		rp.cursor = &abs
	}
}

// Fill calls f for every local point that is both drawable and invalidated.
func (rp *RenderPort) Fill(f func(rp *RenderPort, p geom.Point)) {
	area := rp.bounds.Intersect(rp.invalidated)
	neg := rp.offset.Neg()
	for p := range area.Points {
		f(rp, p.Offset(neg))
	}
}

// FillBg paints every invalidated cell with a space in style.
func (rp *RenderPort) FillBg(style screen.Style) {
	area := rp.bounds.Intersect(rp.invalidated)
	if area.IsEmpty() {
		return
	}
	blank := strings.Repeat(" ", int(area.Size.X))
	neg := rp.offset.Neg()
	for y := area.Top(); y < area.Bottom(); y++ {
		rp.Text(geom.Point{X: area.Left(), Y: y}.Offset(neg), style, blank)
	}
}

// Label draws text in which "~" toggles between style and hotkey. A doubled
// "~~" is a literal tilde.
func (rp *RenderPort) Label(p geom.Point, style, hotkey screen.Style, text string) {
	for seg := range labelSegments(text) {
		st := style
		if seg.hot {
			st = hotkey
		}
		rp.Text(p, st, seg.text)
		p.X = geom.AddSat(p.X, int16(grapheme.Width(seg.text)))
	}
}

type labelSegment struct {
	text string
	hot  bool
}

func labelSegments(text string) iter.Seq[labelSegment] {
	return func(yield func(labelSegment) bool) {
		var b strings.Builder
		hot := false
		flush := func() bool {
			if b.Len() == 0 {
				return true
			}
			seg := labelSegment{text: b.String(), hot: hot}
			b.Reset()
			return yield(seg)
		}
		for i := 0; i < len(text); i++ {
			if text[i] != '~' {
				b.WriteByte(text[i])
				continue
			}
			if i+1 < len(text) && text[i+1] == '~' {
				b.WriteByte('~')
				i++
				continue
			}
			if !flush() {
				return
			}
			hot = !hot
		}
		flush()
	}
}

// LabelWidth returns the columns a Label text occupies, markers excluded.
func LabelWidth(text string) int {
	w := 0
	for seg := range labelSegments(text) {
		w += grapheme.Width(seg.text)
	}
	return w
}

// LabelHotkey returns the first character of the first hotkey segment, or 0.
func LabelHotkey(text string) rune {
	for seg := range labelSegments(text) {
		if seg.hot {
			for _, r := range seg.text {
				return r
			}
		}
	}
	return 0
}

// Box drawing characters, single and double line.
const (
	BoxHorizontal        = "─"
	BoxVertical          = "│"
	BoxTopLeft           = "┌"
	BoxTopRight          = "┐"
	BoxBottomLeft        = "└"
	BoxBottomRight       = "┘"
	BoxDoubleHorizontal  = "═"
	BoxDoubleVertical    = "║"
	BoxDoubleTopLeft     = "╔"
	BoxDoubleTopRight    = "╗"
	BoxDoubleBottomLeft  = "╚"
	BoxDoubleBottomRight = "╝"
)

func boxChar(double bool, single, dbl string) string {
	if double {
		return dbl
	}
	return single
}

// HLine draws a horizontal line of n cells starting at p.
func (rp *RenderPort) HLine(p geom.Point, n int16, double bool, style screen.Style) {
	if n <= 0 {
		return
	}
	rp.Text(p, style, strings.Repeat(boxChar(double, BoxHorizontal, BoxDoubleHorizontal), int(n)))
}

// VLine draws a vertical line of n cells starting at p.
func (rp *RenderPort) VLine(p geom.Point, n int16, double bool, style screen.Style) {
	ch := boxChar(double, BoxVertical, BoxDoubleVertical)
	for i := int16(0); i < n; i++ {
		rp.Text(geom.Point{X: p.X, Y: geom.AddSat(p.Y, i)}, style, ch)
	}
}

// TopLeft draws a top-left corner at p.
func (rp *RenderPort) TopLeft(p geom.Point, double bool, style screen.Style) {
	rp.Text(p, style, boxChar(double, BoxTopLeft, BoxDoubleTopLeft))
}

// TopRight draws a top-right corner at p.
func (rp *RenderPort) TopRight(p geom.Point, double bool, style screen.Style) {
	rp.Text(p, style, boxChar(double, BoxTopRight, BoxDoubleTopRight))
}

// BottomLeft draws a bottom-left corner at p.
func (rp *RenderPort) BottomLeft(p geom.Point, double bool, style screen.Style) {
	rp.Text(p, style, boxChar(double, BoxBottomLeft, BoxDoubleBottomLeft))
}

// BottomRight draws a bottom-right corner at p.
func (rp *RenderPort) BottomRight(p geom.Point, double bool, style screen.Style) {
	rp.Text(p, style, boxChar(double, BoxBottomRight, BoxDoubleBottomRight))
}

// Box frames r with lines and corners. Rects smaller than 2x2 draw nothing.
func (rp *RenderPort) Box(r geom.Rect, double bool, style screen.Style) {
	if r.Size.X < 2 || r.Size.Y < 2 {
		return
	}
	right, bottom := r.Right()-1, r.Bottom()-1
	rp.TopLeft(r.TL, double, style)
	rp.TopRight(geom.Point{X: right, Y: r.Top()}, double, style)
	rp.BottomLeft(geom.Point{X: r.Left(), Y: bottom}, double, style)
	rp.BottomRight(geom.Point{X: right, Y: bottom}, double, style)
	rp.HLine(geom.Point{X: r.Left() + 1, Y: r.Top()}, r.Size.X-2, double, style)
	rp.HLine(geom.Point{X: r.Left() + 1, Y: bottom}, r.Size.X-2, double, style)
	rp.VLine(geom.Point{X: r.Left(), Y: r.Top() + 1}, r.Size.Y-2, double, style)
	rp.VLine(geom.Point{X: right, Y: r.Top() + 1}, r.Size.Y-2, double, style)
}

// renderTree paints v and then its visual children, each through a port
// scoped to the child's content bounds.
func renderTree(v View, rp *RenderPort) {
	v.Render(rp)
	for child := range v.VisualChildren() {
		sub := rp.sub(child.Base().ContentBounds())
		if sub.bounds.IsEmpty() || sub.invalidated.IsEmpty() {
			continue
		}
		renderTree(child, sub)
		rp.join(sub)
	}
}

// RenderRoot repaints the screen rect dirty of the tree rooted at root and
// returns the port used, which holds the written area and the cursor
// request. The rect is blanked first so cells no view covers any more do
// not keep what was drawn there before.
func RenderRoot(s Surface, root View, dirty geom.Rect) *RenderPort {
	rp := NewRenderPort(s, dirty)
	rp.FillBg(screen.DefaultStyle())
	sub := rp.sub(root.Base().ContentBounds())
	if !sub.bounds.IsEmpty() && !sub.invalidated.IsEmpty() {
		renderTree(root, sub)
		rp.join(sub)
	}
	return rp
}
