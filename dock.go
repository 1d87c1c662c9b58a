package tvx

import "tvx/geom"

// Dock names the edge of a DockPanel a child is attached to.
type Dock uint8

const (
	DockLeft Dock = iota
	DockTop
	DockRight
	DockBottom
)

// DockLayout is the layout annotation read by DockPanel.
type DockLayout struct {
	Dock Dock
}

func dockOf(v View) (Dock, bool) {
	l, ok := v.Base().Layout().(DockLayout)
	return l.Dock, ok
}

// DockPanel attaches children to its edges. Docked children are laid out in
// list order, each taking a strip off the space its earlier siblings left;
// children without a DockLayout share whatever remains.
type DockPanel struct {
	Panel
}

// NewDockPanel creates a dock panel with the given children.
func NewDockPanel(children ...View) *DockPanel {
	d := &DockPanel{}
	d.Init(d)
	d.Add(children...)
	return d
}

// Docked annotates v with dock and returns it.
func Docked(v View, dock Dock) View {
	v.Base().SetLayout(DockLayout{Dock: dock})
	return v
}

func remaining(avail, used int16) int16 {
	if avail == Unconstrained {
		return Unconstrained
	}
	return max(geom.SubSat(avail, used), 0)
}

// MeasureOverride measures docked children against the space left by their
// predecessors, then the undocked ones against what remains. The result is
// the docked strips wrapped around the largest undocked child, widened to
// whatever a docked child needs across its strip.
func (d *DockPanel) MeasureOverride(w, h int16) geom.Vector {
	var used geom.Thickness
	var need geom.Vector
	for _, c := range d.children.All() {
		dock, ok := dockOf(c)
		if !ok {
			continue
		}
		ds := c.Base().Measure(remaining(w, used.Width()), remaining(h, used.Height()))
		switch dock {
		case DockLeft, DockRight:
			need.Y = max(need.Y, geom.AddSat(used.Height(), ds.Y))
			if dock == DockLeft {
				used.Left = geom.AddSat(used.Left, ds.X)
			} else {
				used.Right = geom.AddSat(used.Right, ds.X)
			}
		case DockTop, DockBottom:
			need.X = max(need.X, geom.AddSat(used.Width(), ds.X))
			if dock == DockTop {
				used.Top = geom.AddSat(used.Top, ds.Y)
			} else {
				used.Bottom = geom.AddSat(used.Bottom, ds.Y)
			}
		}
	}

	var content geom.Vector
	cw, ch := remaining(w, used.Width()), remaining(h, used.Height())
	for _, c := range d.children.All() {
		if _, ok := dockOf(c); ok {
			continue
		}
		content = content.Max(c.Base().Measure(cw, ch))
	}
	return used.ExpandSize(content).Max(need)
}

// ArrangeOverride cuts a strip per docked child and gives undocked children
// the rest.
func (d *DockPanel) ArrangeOverride(size geom.Vector) geom.Vector {
	rest := geom.Rect{Size: size}
	for _, c := range d.children.All() {
		dock, ok := dockOf(c)
		if !ok {
			continue
		}
		b := c.Base()
		ds := b.DesiredSize()
		switch dock {
		case DockLeft:
			w := min(ds.X, rest.Size.X)
			b.Arrange(geom.Rect{TL: rest.TL, Size: geom.Vector{X: w, Y: rest.Size.Y}})
			rest.TL.X = geom.AddSat(rest.TL.X, w)
			rest.Size.X -= w
		case DockRight:
			w := min(ds.X, rest.Size.X)
			b.Arrange(geom.NewRect(rest.Right()-w, rest.Top(), w, rest.Size.Y))
			rest.Size.X -= w
		case DockTop:
			h := min(ds.Y, rest.Size.Y)
			b.Arrange(geom.Rect{TL: rest.TL, Size: geom.Vector{X: rest.Size.X, Y: h}})
			rest.TL.Y = geom.AddSat(rest.TL.Y, h)
			rest.Size.Y -= h
		case DockBottom:
			h := min(ds.Y, rest.Size.Y)
			b.Arrange(geom.NewRect(rest.Left(), rest.Bottom()-h, rest.Size.X, h))
			rest.Size.Y -= h
		}
	}
	for _, c := range d.children.All() {
		if _, ok := dockOf(c); !ok {
			c.Base().Arrange(rest)
		}
	}
	return size
}
