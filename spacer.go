package tvx

import "tvx/geom"

// Spacer is empty space. It asks for its minimum size and paints nothing,
// so the area shows whatever its parent painted underneath.
type Spacer struct {
	ViewBase
}

// NewSpacer creates a spacer that takes whatever space it's given.
func NewSpacer() *Spacer {
	s := &Spacer{}
	s.Init(s)
	return s
}

// FixedSpacer creates a spacer with a fixed size.
func FixedSpacer(w, h int16) *Spacer {
	s := NewSpacer()
	s.SetMinSize(geom.Vector{X: w, Y: h})
	s.SetMaxSize(geom.Vector{X: w, Y: h})
	return s
}

// ArrangeOverride takes the given size.
func (s *Spacer) ArrangeOverride(size geom.Vector) geom.Vector {
	return size
}

// --- Fluent API ---

// MinWidth sets the minimum width.
func (s *Spacer) MinWidth(w int16) *Spacer {
	s.SetMinSize(geom.Vector{X: w, Y: s.MinSize().Y})
	return s
}

// MinHeight sets the minimum height.
func (s *Spacer) MinHeight(h int16) *Spacer {
	s.SetMinSize(geom.Vector{X: s.MinSize().X, Y: h})
	return s
}
