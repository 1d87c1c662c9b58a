package tvx

import "iter"

// Panel is the base of views that lay out a list of children. Children are
// both layout and visual children of the panel; any change to the list
// invalidates the panel's measure.
type Panel struct {
	ViewBase
	children ViewVec[View]
}

// Init binds the panel to the view embedding it.
func (p *Panel) Init(self View) {
	p.ViewBase.Init(self)
	p.children.Init(self, true, true)
	p.children.OnChanged = p.InvalidateMeasure
}

// Children returns the child list for direct manipulation.
func (p *Panel) Children() *ViewVec[View] {
	return &p.children
}

// Add appends children.
func (p *Panel) Add(children ...View) {
	for _, c := range children {
		p.children.Push(c)
	}
}

// VisualChildren yields the children in paint order.
func (p *Panel) VisualChildren() iter.Seq[View] {
	return p.children.Values()
}
