package tvx

import (
	"iter"
	"slices"
)

// ViewVec is an ordered list of child views that keeps the children's parent
// links in step with membership.
//
// Every mutation detaches before storage shrinks, attaches after storage
// grows, and then calls OnChanged. The default attach links the child to
// the owner as layout parent and/or visual parent, depending on the flags
// given to Init; OnAttach and OnDetach replace that behavior and may call
// DefaultAttach and DefaultDetach themselves.
type ViewVec[T View] struct {
	items         []T
	owner         View
	affectsLayout bool
	affectsVisual bool

	OnAttach  func(i int)
	OnDetach  func(i int)
	OnChanged func()
}

// Init sets the owner and the links membership maintains. It must be called
// once, before the first mutation.
func (v *ViewVec[T]) Init(owner View, affectsLayout, affectsVisual bool) {
	if v.owner != nil {
		panic("tvx: ViewVec initialized twice")
	}
	v.owner = owner
	v.affectsLayout = affectsLayout
	v.affectsVisual = affectsVisual
}

func (v *ViewVec[T]) mustOwner() View {
	if v.owner == nil {
		panic("tvx: ViewVec used before Init")
	}
	return v.owner
}

// Len returns the number of children.
func (v *ViewVec[T]) Len() int { return len(v.items) }

// At returns the i-th child.
func (v *ViewVec[T]) At(i int) T { return v.items[i] }

// Index returns the position of child, or -1.
func (v *ViewVec[T]) Index(child T) int {
	for i, c := range v.items {
		if View(c) == View(child) {
			return i
		}
	}
	return -1
}

// All iterates over the children in order.
func (v *ViewVec[T]) All() iter.Seq2[int, T] {
	return slices.All(v.items)
}

// Backward iterates over the children from last to first.
func (v *ViewVec[T]) Backward() iter.Seq2[int, T] {
	return slices.Backward(v.items)
}

// Values iterates over the children as views, in order.
func (v *ViewVec[T]) Values() iter.Seq[View] {
	return func(yield func(View) bool) {
		for _, c := range v.items {
			if !yield(c) {
				return
			}
		}
	}
}

// Insert puts child at position i.
func (v *ViewVec[T]) Insert(i int, child T) {
	v.mustOwner()
	v.items = slices.Insert(v.items, i, child)
	v.attach(i)
	v.changed()
}

// Push appends child.
func (v *ViewVec[T]) Push(child T) {
	v.Insert(len(v.items), child)
}

// Remove takes out the i-th child and returns it.
func (v *ViewVec[T]) Remove(i int) T {
	v.mustOwner()
	child := v.items[i]
	v.detach(i)
	v.items = slices.Delete(v.items, i, i+1)
	v.changed()
	return child
}

// Pop removes the last child. It reports false when the list is empty.
func (v *ViewVec[T]) Pop() (T, bool) {
	if len(v.items) == 0 {
		var zero T
		return zero, false
	}
	return v.Remove(len(v.items) - 1), true
}

// Replace swaps the i-th child for child and returns the old one.
func (v *ViewVec[T]) Replace(i int, child T) T {
	v.mustOwner()
	old := v.items[i]
	v.detach(i)
	v.items[i] = child
	v.attach(i)
	v.changed()
	return old
}

// Clear removes every child.
func (v *ViewVec[T]) Clear() {
	if len(v.items) == 0 {
		return
	}
	v.mustOwner()
	for i := len(v.items) - 1; i >= 0; i-- {
		v.detach(i)
	}
	clear(v.items)
	v.items = v.items[:0]
	v.changed()
}

func (v *ViewVec[T]) attach(i int) {
	if v.OnAttach != nil {
		v.OnAttach(i)
		return
	}
	v.DefaultAttach(i)
}

func (v *ViewVec[T]) detach(i int) {
	if v.OnDetach != nil {
		v.OnDetach(i)
		return
	}
	v.DefaultDetach(i)
}

func (v *ViewVec[T]) changed() {
	if v.OnChanged != nil {
		v.OnChanged()
	}
}

// DefaultAttach links the i-th child to the owner.
func (v *ViewVec[T]) DefaultAttach(i int) {
	b := v.items[i].Base()
	if v.affectsLayout {
		b.SetLayoutParent(v.owner)
	}
	if v.affectsVisual {
		b.SetVisualParent(v.owner)
	}
}

// DefaultDetach repaints the area the i-th child covered and unlinks it from
// the owner.
func (v *ViewVec[T]) DefaultDetach(i int) {
	b := v.items[i].Base()
	b.InvalidateRender()
	if v.affectsVisual {
		b.SetVisualParent(nil)
	}
	if v.affectsLayout {
		b.SetLayoutParent(nil)
	}
	b.resetArrange()
}
