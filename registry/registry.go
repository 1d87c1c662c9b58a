// Package registry provides a slot arena: values live in a slice and are
// addressed by small integer handles, with O(1) insert and remove.
//
// Freed slots are chained into a free list and reused by later inserts, so a
// handle is only meaningful between its Insert and the matching Remove.
package registry

import (
	"fmt"
	"iter"
)

// Handle addresses one occupied slot of a Registry.
type Handle int

type slot[T any] struct {
	value    T
	occupied bool
	nextFree int // index of the next free slot, -1 terminates the list
}

// Registry is a slot arena of T values.
// The zero value is ready to use.
type Registry[T any] struct {
	slots    []slot[T]
	freeHead int // index+1 of the first free slot, 0 when the list is empty
	count    int
}

// Insert stores the value built by f. f receives the handle the value is
// about to occupy, so a value can record its own handle.
func (r *Registry[T]) Insert(f func(h Handle) T) Handle {
	return InsertWith(r, func(h Handle) (T, Handle) { return f(h), h })
}

// Add stores v and returns its handle.
func (r *Registry[T]) Add(v T) Handle {
	return r.Insert(func(Handle) T { return v })
}

// InsertWith is Insert for builders that also return an extra result to the
// caller.
func InsertWith[T, R any](r *Registry[T], f func(h Handle) (T, R)) R {
	var idx int
	if r.freeHead != 0 {
		idx = r.freeHead - 1
	} else {
		idx = len(r.slots)
	}
	v, res := f(Handle(idx))
	if r.freeHead != 0 {
		r.freeHead = r.slots[idx].nextFree + 1
		r.slots[idx] = slot[T]{value: v, occupied: true}
	} else {
		r.slots = append(r.slots, slot[T]{value: v, occupied: true})
	}
	r.count++
	return res
}

// Remove takes the value out of its slot and frees the slot for reuse.
// Removing a handle that is not live panics.
func (r *Registry[T]) Remove(h Handle) T {
	s := r.live(h, "Remove")
	v := s.value
	*s = slot[T]{nextFree: r.freeHead - 1}
	r.freeHead = int(h) + 1
	r.count--
	return v
}

// Get returns the value stored under h. A handle that is not live panics.
func (r *Registry[T]) Get(h Handle) T {
	return r.live(h, "Get").value
}

// Set replaces the value stored under h.
func (r *Registry[T]) Set(h Handle, v T) {
	r.live(h, "Set").value = v
}

// Contains reports whether h addresses an occupied slot.
func (r *Registry[T]) Contains(h Handle) bool {
	return h >= 0 && int(h) < len(r.slots) && r.slots[h].occupied
}

// Len returns the number of stored values.
func (r *Registry[T]) Len() int {
	return r.count
}

// All iterates over the stored values in ascending slot order.
func (r *Registry[T]) All() iter.Seq2[Handle, T] {
	return func(yield func(Handle, T) bool) {
		for i := range r.slots {
			if !r.slots[i].occupied {
				continue
			}
			if !yield(Handle(i), r.slots[i].value) {
				return
			}
		}
	}
}

func (r *Registry[T]) live(h Handle, op string) *slot[T] {
	if !r.Contains(h) {
		panic(fmt.Sprintf("registry: %s of dead handle %d", op, h))
	}
	return &r.slots[h]
}
