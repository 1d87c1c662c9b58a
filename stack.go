package tvx

import "tvx/geom"

// Orientation is the axis a StackPanel lines its children up on.
type Orientation uint8

const (
	Vertical Orientation = iota
	Horizontal
)

// StackPanel arranges children one after another along its orientation and
// stretches them across the other axis.
type StackPanel struct {
	Panel
	orientation Orientation
}

// NewStackPanel creates a stack with the given children.
func NewStackPanel(o Orientation, children ...View) *StackPanel {
	s := &StackPanel{orientation: o}
	s.Init(s)
	s.Add(children...)
	return s
}

// VStack creates a vertical stack.
func VStack(children ...View) *StackPanel {
	return NewStackPanel(Vertical, children...)
}

// HStack creates a horizontal stack.
func HStack(children ...View) *StackPanel {
	return NewStackPanel(Horizontal, children...)
}

// Orientation returns the stacking axis.
func (s *StackPanel) Orientation() Orientation {
	return s.orientation
}

// SetOrientation changes the stacking axis.
func (s *StackPanel) SetOrientation(o Orientation) {
	s.orientation = o
	s.InvalidateMeasure()
}

// MeasureOverride measures every child open along the stack axis. The
// result sums the stack axis and takes the largest child across it.
func (s *StackPanel) MeasureOverride(w, h int16) geom.Vector {
	var size geom.Vector
	for _, c := range s.children.All() {
		if s.orientation == Vertical {
			d := c.Base().Measure(w, Unconstrained)
			size.X = max(size.X, d.X)
			size.Y = geom.AddSat(size.Y, d.Y)
		} else {
			d := c.Base().Measure(Unconstrained, h)
			size.X = geom.AddSat(size.X, d.X)
			size.Y = max(size.Y, d.Y)
		}
	}
	return size
}

// ArrangeOverride gives each child its desired extent along the stack axis
// and the full extent across it.
func (s *StackPanel) ArrangeOverride(size geom.Vector) geom.Vector {
	var pos int16
	for _, c := range s.children.All() {
		b := c.Base()
		d := b.DesiredSize()
		if s.orientation == Vertical {
			b.Arrange(geom.NewRect(0, pos, size.X, d.Y))
			pos = geom.AddSat(pos, d.Y)
		} else {
			b.Arrange(geom.NewRect(pos, 0, d.X, size.Y))
			pos = geom.AddSat(pos, d.X)
		}
	}
	return size
}
