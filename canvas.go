package tvx

import "tvx/geom"

// CanvasLayout is the layout annotation read by Canvas.
type CanvasLayout struct {
	TL geom.Point
}

// Canvas places each child at the point given by its CanvasLayout, or the
// origin, at the child's desired size.
type Canvas struct {
	Panel
}

// NewCanvas creates a canvas with the given children.
func NewCanvas(children ...View) *Canvas {
	c := &Canvas{}
	c.Init(c)
	c.Add(children...)
	return c
}

// At annotates v with a canvas position and returns it.
func At(v View, x, y int16) View {
	v.Base().SetLayout(CanvasLayout{TL: geom.Point{X: x, Y: y}})
	return v
}

// MeasureOverride measures children unconstrained and asks for the whole
// constraint, or a single cell on an open axis.
func (c *Canvas) MeasureOverride(w, h int16) geom.Vector {
	for _, child := range c.children.All() {
		child.Base().Measure(Unconstrained, Unconstrained)
	}
	return geom.Vector{X: max(w, 1), Y: max(h, 1)}
}

// ArrangeOverride places every child at its annotated point.
func (c *Canvas) ArrangeOverride(size geom.Vector) geom.Vector {
	for _, child := range c.children.All() {
		b := child.Base()
		var tl geom.Point
		if l, ok := b.Layout().(CanvasLayout); ok {
			tl = l.TL
		}
		b.Arrange(geom.Rect{TL: tl, Size: b.DesiredSize()})
	}
	return size
}
