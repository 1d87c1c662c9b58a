package tvx

import "tvx/geom"

// PilePanel stacks its children on top of each other, all in the same
// bounds. Later children paint over earlier ones.
type PilePanel struct {
	Panel
}

// NewPilePanel creates a pile with the given children.
func NewPilePanel(children ...View) *PilePanel {
	p := &PilePanel{}
	p.Init(p)
	p.Add(children...)
	return p
}

// MeasureOverride returns the largest child size.
func (p *PilePanel) MeasureOverride(w, h int16) geom.Vector {
	var size geom.Vector
	for _, c := range p.children.All() {
		size = size.Max(c.Base().Measure(w, h))
	}
	return size
}

// ArrangeOverride gives every child the full area.
func (p *PilePanel) ArrangeOverride(size geom.Vector) geom.Vector {
	for _, c := range p.children.All() {
		c.Base().Arrange(geom.Rect{Size: size})
	}
	return size
}

// AdornersPanel lays out its first child normally and fits every other
// child, the adornments, exactly over it.
type AdornersPanel struct {
	Panel
}

// NewAdornersPanel creates an adorners panel; the first child is the
// adorned view.
func NewAdornersPanel(children ...View) *AdornersPanel {
	a := &AdornersPanel{}
	a.Init(a)
	a.Add(children...)
	return a
}

// MeasureOverride measures the adorned child and constrains the
// adornments to its size.
func (a *AdornersPanel) MeasureOverride(w, h int16) geom.Vector {
	if a.children.Len() == 0 {
		return geom.Vector{}
	}
	size := a.children.At(0).Base().Measure(w, h)
	for i, c := range a.children.All() {
		if i > 0 {
			c.Base().Measure(size.X, size.Y)
		}
	}
	return size
}

// ArrangeOverride arranges the adorned child and gives the adornments its
// render bounds.
func (a *AdornersPanel) ArrangeOverride(size geom.Vector) geom.Vector {
	if a.children.Len() == 0 {
		return size
	}
	first := a.children.At(0).Base()
	first.Arrange(geom.Rect{Size: size})
	for i, c := range a.children.All() {
		if i > 0 {
			c.Base().Arrange(first.RenderBounds())
		}
	}
	return size
}
