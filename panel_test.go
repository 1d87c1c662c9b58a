package tvx

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"tvx/geom"
)

func layout(v View, w, h int16) {
	v.Base().Measure(w, h)
	v.Base().Arrange(geom.NewRect(0, 0, w, h))
}

func bounds(vs ...View) []geom.Rect {
	var out []geom.Rect
	for _, v := range vs {
		out = append(out, v.Base().RenderBounds())
	}
	return out
}

func TestStackPanel(t *testing.T) {
	t.Run("vertical", func(t *testing.T) {
		a, b, c := newProbe(4, 2), newProbe(7, 3), newProbe(1, 1)
		s := VStack(a, b, c)
		if got, want := s.Measure(10, Unconstrained), (geom.Vector{X: 7, Y: 6}); got != want {
			t.Errorf("desired = %v, want %v", got, want)
		}
		s.Arrange(geom.NewRect(0, 0, 10, 20))
		want := []geom.Rect{
			geom.NewRect(0, 0, 10, 2),
			geom.NewRect(0, 2, 10, 3),
			geom.NewRect(0, 5, 10, 1),
		}
		if diff := cmp.Diff(want, bounds(a, b, c)); diff != "" {
			t.Errorf("bounds mismatch (-want +got):\n%s", diff)
		}
		if a.constraint.Y != Unconstrained || a.constraint.X != 10 {
			t.Errorf("child constraint = %v", a.constraint)
		}
	})

	t.Run("horizontal", func(t *testing.T) {
		a, b := newProbe(3, 1), newProbe(2, 4)
		s := HStack(a, b)
		if got, want := s.Measure(Unconstrained, 5), (geom.Vector{X: 5, Y: 4}); got != want {
			t.Errorf("desired = %v, want %v", got, want)
		}
		s.Arrange(geom.NewRect(0, 0, 20, 5))
		want := []geom.Rect{geom.NewRect(0, 0, 3, 5), geom.NewRect(3, 0, 2, 5)}
		if diff := cmp.Diff(want, bounds(a, b)); diff != "" {
			t.Errorf("bounds mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("orientation change remeasures", func(t *testing.T) {
		s := VStack(newProbe(3, 1), newProbe(3, 1))
		s.Measure(10, 10)
		s.SetOrientation(Horizontal)
		if got, want := s.Measure(10, 10), (geom.Vector{X: 6, Y: 1}); got != want {
			t.Errorf("desired = %v, want %v", got, want)
		}
	})
}

func TestDockPanel(t *testing.T) {
	t.Run("edges are consumed in order", func(t *testing.T) {
		left, top, fill := newProbe(2, 1), newProbe(3, 1), newProbe(1, 1)
		d := NewDockPanel(Docked(left, DockLeft), Docked(top, DockTop), fill)
		if got, want := d.Measure(10, 10), (geom.Vector{X: 5, Y: 2}); got != want {
			t.Errorf("desired = %v, want %v", got, want)
		}
		d.Arrange(geom.NewRect(0, 0, 10, 10))
		want := []geom.Rect{
			geom.NewRect(0, 0, 2, 10),
			geom.NewRect(2, 0, 8, 1),
			geom.NewRect(2, 1, 8, 9),
		}
		if diff := cmp.Diff(want, bounds(left, top, fill)); diff != "" {
			t.Errorf("bounds mismatch (-want +got):\n%s", diff)
		}
		if top.constraint != (geom.Vector{X: 8, Y: 10}) {
			t.Errorf("top child measured against %v", top.constraint)
		}
	})

	t.Run("right and bottom", func(t *testing.T) {
		right, bottom, fill := newProbe(3, 1), newProbe(1, 2), newProbe(1, 1)
		d := NewDockPanel(Docked(right, DockRight), Docked(bottom, DockBottom), fill)
		layout(d, 10, 6)
		want := []geom.Rect{
			geom.NewRect(7, 0, 3, 6),
			geom.NewRect(0, 4, 7, 2),
			geom.NewRect(0, 0, 7, 4),
		}
		if diff := cmp.Diff(want, bounds(right, bottom, fill)); diff != "" {
			t.Errorf("bounds mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("docks larger than the panel are cut", func(t *testing.T) {
		a, b := newProbe(8, 1), newProbe(8, 1)
		d := NewDockPanel(Docked(a, DockLeft), Docked(b, DockLeft))
		layout(d, 10, 1)
		want := []geom.Rect{geom.NewRect(0, 0, 8, 1), geom.NewRect(8, 0, 2, 1)}
		if diff := cmp.Diff(want, bounds(a, b)); diff != "" {
			t.Errorf("bounds mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("accumulation saturates", func(t *testing.T) {
		a, b := newProbe(30000, 1), newProbe(30000, 1)
		d := NewDockPanel(Docked(a, DockLeft), Docked(b, DockRight))
		got := d.Measure(Unconstrained, Unconstrained)
		if got.X != 1<<15-1 {
			t.Errorf("width = %d, want saturation", got.X)
		}
	})

	t.Run("changing the dock remeasures", func(t *testing.T) {
		a := newProbe(2, 1)
		d := NewDockPanel(Docked(a, DockLeft))
		d.Measure(10, 10)
		a.SetLayout(DockLayout{Dock: DockTop})
		if d.IsMeasureValid() {
			t.Errorf("panel measure still valid")
		}
	})
}

func TestCanvas(t *testing.T) {
	a, b := newProbe(3, 2), newProbe(1, 1)
	c := NewCanvas(At(a, 4, 1), b)
	if got, want := c.Measure(Unconstrained, Unconstrained), (geom.Vector{X: 1, Y: 1}); got != want {
		t.Errorf("unconstrained desired = %v, want %v", got, want)
	}
	if got, want := c.Measure(20, 10), (geom.Vector{X: 20, Y: 10}); got != want {
		t.Errorf("constrained desired = %v, want %v", got, want)
	}
	if a.constraint != (geom.Vector{X: Unconstrained, Y: Unconstrained}) {
		t.Errorf("child measured against %v", a.constraint)
	}
	c.Arrange(geom.NewRect(0, 0, 20, 10))
	want := []geom.Rect{geom.NewRect(4, 1, 3, 2), geom.NewRect(0, 0, 1, 1)}
	if diff := cmp.Diff(want, bounds(a, b)); diff != "" {
		t.Errorf("bounds mismatch (-want +got):\n%s", diff)
	}
}

func TestPilePanel(t *testing.T) {
	a, b := newProbe(3, 1), newProbe(1, 4)
	p := NewPilePanel(a, b)
	if got, want := p.Measure(10, 10), (geom.Vector{X: 3, Y: 4}); got != want {
		t.Errorf("desired = %v, want %v", got, want)
	}
	p.Arrange(geom.NewRect(0, 0, 6, 5))
	want := []geom.Rect{geom.NewRect(0, 0, 6, 5), geom.NewRect(0, 0, 6, 5)}
	if diff := cmp.Diff(want, bounds(a, b)); diff != "" {
		t.Errorf("bounds mismatch (-want +got):\n%s", diff)
	}
}

func TestAdornersPanel(t *testing.T) {
	main, badge := newProbe(4, 2), newProbe(9, 9)
	main.SetHAlign(HLeft)
	main.SetVAlign(VTop)
	a := NewAdornersPanel(main, badge)
	if got, want := a.Measure(10, 10), (geom.Vector{X: 4, Y: 2}); got != want {
		t.Errorf("desired = %v, want %v", got, want)
	}
	if badge.constraint != (geom.Vector{X: 4, Y: 2}) {
		t.Errorf("adornment measured against %v", badge.constraint)
	}
	a.Arrange(geom.NewRect(0, 0, 10, 10))
	if got, want := badge.RenderBounds(), main.RenderBounds(); got != want {
		t.Errorf("adornment at %v, adorned at %v", got, want)
	}
}

func TestEmptyPanels(t *testing.T) {
	for _, v := range []View{VStack(), NewDockPanel(), NewPilePanel(), NewAdornersPanel()} {
		if got := v.Base().Measure(10, 10); got != (geom.Vector{}) {
			t.Errorf("%T desired = %v, want zero", v, got)
		}
	}
}

func TestPanelChildrenChangeRemeasures(t *testing.T) {
	s := VStack(newProbe(1, 1))
	s.Measure(10, 10)
	s.Add(newProbe(1, 1))
	if s.IsMeasureValid() {
		t.Errorf("measure still valid after Add")
	}
	if got, want := s.Measure(10, 10), (geom.Vector{X: 1, Y: 2}); got != want {
		t.Errorf("desired = %v, want %v", got, want)
	}
}

func TestViewVec(t *testing.T) {
	owner := newProbe(0, 0)
	var vec ViewVec[*probe]
	mustPanic(t, "use before Init", func() { vec.Push(newProbe(1, 1)) })

	vec.Init(owner, true, true)
	mustPanic(t, "Init twice", func() { vec.Init(owner, true, true) })

	var events []string
	vec.OnAttach = func(i int) {
		// storage already holds the child
		if vec.At(i).LayoutParent() != nil {
			t.Errorf("attach: child %d already linked", i)
		}
		events = append(events, "attach")
		vec.DefaultAttach(i)
	}
	vec.OnDetach = func(i int) {
		if vec.At(i).LayoutParent() != View(owner) {
			t.Errorf("detach: child %d not linked", i)
		}
		events = append(events, "detach")
		vec.DefaultDetach(i)
	}
	vec.OnChanged = func() { events = append(events, "changed") }

	a, b, c := newProbe(1, 1), newProbe(1, 1), newProbe(1, 1)
	vec.Push(a)
	vec.Push(c)
	vec.Insert(1, b)
	if got := []*probe{vec.At(0), vec.At(1), vec.At(2)}; got[0] != a || got[1] != b || got[2] != c {
		t.Errorf("order wrong")
	}
	for _, p := range []*probe{a, b, c} {
		if p.LayoutParent() != View(owner) || p.VisualParent() != View(owner) {
			t.Errorf("child not linked to owner")
		}
	}
	if i := vec.Index(c); i != 2 {
		t.Errorf("Index = %d, want 2", i)
	}

	var back []*probe
	for _, p := range vec.Backward() {
		back = append(back, p)
	}
	if len(back) != 3 || back[0] != c || back[2] != a {
		t.Errorf("Backward yielded wrong order")
	}

	if got := vec.Remove(1); got != b {
		t.Errorf("Remove returned wrong child")
	}
	if b.LayoutParent() != nil || b.VisualParent() != nil {
		t.Errorf("removed child still linked")
	}

	d := newProbe(1, 1)
	if old := vec.Replace(0, d); old != a || a.LayoutParent() != nil || d.LayoutParent() != View(owner) {
		t.Errorf("Replace did not swap links")
	}

	if p, ok := vec.Pop(); !ok || p != c {
		t.Errorf("Pop = %v, %v", p, ok)
	}
	vec.Clear()
	if vec.Len() != 0 || d.LayoutParent() != nil {
		t.Errorf("Clear left %d children", vec.Len())
	}
	if _, ok := vec.Pop(); ok {
		t.Errorf("Pop on empty list succeeded")
	}

	want := []string{
		"attach", "changed", // Push a
		"attach", "changed", // Push c
		"attach", "changed", // Insert b
		"detach", "changed", // Remove b
		"detach", "attach", "changed", // Replace a with d
		"detach", "changed", // Pop c
		"detach", "changed", // Clear
	}
	if diff := cmp.Diff(want, events); diff != "" {
		t.Errorf("hook order mismatch (-want +got):\n%s", diff)
	}
}

func TestViewVecLayoutOnly(t *testing.T) {
	owner := newProbe(0, 0)
	var vec ViewVec[View]
	vec.Init(owner, true, false)
	child := newProbe(1, 1)
	vec.Push(child)
	if child.LayoutParent() != View(owner) {
		t.Errorf("layout parent not set")
	}
	if child.VisualParent() != nil {
		t.Errorf("visual parent set by a layout-only list")
	}
}

func TestAttachToSecondParentPanics(t *testing.T) {
	child := newProbe(1, 1)
	first := VStack(child)
	second := VStack()
	mustPanic(t, "second parent", func() { second.Add(child) })
	if child.LayoutParent() != View(first) {
		t.Errorf("layout parent changed")
	}
}
