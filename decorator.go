package tvx

import (
	"iter"

	"tvx/geom"
	"tvx/screen"
)

// Decorator is the base of views that wrap a single child and fit it to
// their own size.
type Decorator struct {
	ViewBase
	child ViewVec[View]
}

// Init binds the decorator to the view embedding it.
func (d *Decorator) Init(self View) {
	d.ViewBase.Init(self)
	d.child.Init(self, true, true)
	d.child.OnChanged = d.InvalidateMeasure
}

// Child returns the wrapped view, or nil.
func (d *Decorator) Child() View {
	if d.child.Len() == 0 {
		return nil
	}
	return d.child.At(0)
}

// SetChild replaces the wrapped view; nil leaves the decorator empty.
func (d *Decorator) SetChild(v View) {
	switch {
	case v == nil:
		d.child.Clear()
	case d.child.Len() == 0:
		d.child.Push(v)
	default:
		d.child.Replace(0, v)
	}
}

// MeasureOverride returns the child's desired size.
func (d *Decorator) MeasureOverride(w, h int16) geom.Vector {
	if c := d.Child(); c != nil {
		return c.Base().Measure(w, h)
	}
	return geom.Vector{}
}

// ArrangeOverride gives the child the whole area.
func (d *Decorator) ArrangeOverride(size geom.Vector) geom.Vector {
	if c := d.Child(); c != nil {
		c.Base().Arrange(geom.Rect{Size: size})
	}
	return size
}

// VisualChildren yields the child.
func (d *Decorator) VisualChildren() iter.Seq[View] {
	return d.child.Values()
}

// Background fills its area before its child paints.
type Background struct {
	Decorator
	style screen.Style
}

// NewBackground wraps child in a fill of style.
func NewBackground(style screen.Style, child View) *Background {
	b := &Background{style: style}
	b.Init(b)
	if child != nil {
		b.SetChild(child)
	}
	return b
}

// SetStyle changes the fill.
func (b *Background) SetStyle(s screen.Style) {
	b.style = s
	b.InvalidateRender()
}

// Render fills the area.
func (b *Background) Render(rp *RenderPort) {
	rp.FillBg(b.style)
}

// Border frames its child with a single or double line box. An optional
// header view sits on the top edge.
type Border struct {
	Decorator
	double bool
	style  screen.Style
	header ViewVec[View]
}

// NewBorder frames child.
func NewBorder(child View) *Border {
	b := &Border{style: DefaultTheme.Border}
	b.Init(b)
	if child != nil {
		b.SetChild(child)
	}
	return b
}

// Init binds the border to the view embedding it.
func (b *Border) Init(self View) {
	b.Decorator.Init(self)
	// The header is laid out by the border but painted as one of its
	// visual children, after the frame.
	b.header.Init(self, true, false)
	b.header.OnAttach = func(i int) {
		b.header.DefaultAttach(i)
		b.header.At(i).Base().SetVisualParent(self)
	}
	b.header.OnDetach = func(i int) {
		b.header.DefaultDetach(i)
		b.header.At(i).Base().SetVisualParent(nil)
	}
	b.header.OnChanged = b.InvalidateMeasure
}

// Double switches to double lines.
func (b *Border) Double() *Border {
	b.double = true
	b.InvalidateRender()
	return b
}

// Style sets the frame style.
func (b *Border) Style(s screen.Style) *Border {
	b.style = s
	b.InvalidateRender()
	return b
}

// Header returns the header view, or nil.
func (b *Border) Header() View {
	if b.header.Len() == 0 {
		return nil
	}
	return b.header.At(0)
}

// SetHeader places v on the top edge; nil removes the header.
func (b *Border) SetHeader(v View) *Border {
	switch {
	case v == nil:
		b.header.Clear()
	case b.header.Len() == 0:
		b.header.Push(v)
	default:
		b.header.Replace(0, v)
	}
	return b
}

// Title sets a text header.
func (b *Border) Title(s string) *Border {
	return b.SetHeader(Text(s))
}

// MeasureOverride adds the frame around the child. The border is at least
// wide enough to show the header.
func (b *Border) MeasureOverride(w, h int16) geom.Vector {
	frame := geom.Uniform(1)
	size := frame.ExpandSize(b.Decorator.MeasureOverride(remaining(w, 2), remaining(h, 2)))
	if hd := b.Header(); hd != nil {
		hs := hd.Base().Measure(remaining(w, 2), 1)
		size.X = max(size.X, geom.AddSat(hs.X, 2))
	}
	return size
}

// ArrangeOverride places the child inside the frame and the header on the
// top line.
func (b *Border) ArrangeOverride(size geom.Vector) geom.Vector {
	inner := geom.Uniform(1).ShrinkRect(geom.Rect{Size: size})
	if c := b.Child(); c != nil {
		c.Base().Arrange(inner)
	}
	if hd := b.Header(); hd != nil {
		hb := hd.Base()
		w := min(hb.DesiredSize().X, inner.Size.X)
		hb.Arrange(geom.NewRect(1, 0, w, min(size.Y, 1)))
	}
	return size
}

// Render draws the frame.
func (b *Border) Render(rp *RenderPort) {
	rp.Box(geom.Rect{Size: b.ContentBounds().Size}, b.double, b.style)
}

// VisualChildren yields the child, then the header.
func (b *Border) VisualChildren() iter.Seq[View] {
	return func(yield func(View) bool) {
		for v := range b.child.Values() {
			if !yield(v) {
				return
			}
		}
		for v := range b.header.Values() {
			if !yield(v) {
				return
			}
		}
	}
}
