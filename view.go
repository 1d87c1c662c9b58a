// Package tvx is a retained-mode terminal UI toolkit.
//
// A UI is a tree of views. Each pass the App measures the root against the
// screen size, arranges it, renders the regions that were invalidated since
// the last pass and flushes the changed rows to the terminal.
//
// Concrete views embed ViewBase (or Panel, Decorator) and call Init with a
// pointer to themselves so the base can dispatch to their overrides:
//
//	type Meter struct {
//		tvx.ViewBase
//		value int
//	}
//
//	func NewMeter() *Meter {
//		m := &Meter{}
//		m.Init(m)
//		return m
//	}
package tvx

import (
	"iter"

	"tvx/geom"
	"tvx/screen"
)

// Unconstrained marks a measure axis with no limit.
const Unconstrained int16 = -1

// HAlign positions a view horizontally inside the space it is given.
// The zero value stretches.
type HAlign uint8

const (
	HStretch HAlign = iota
	HLeft
	HCenter
	HRight
)

// VAlign positions a view vertically inside the space it is given.
// The zero value stretches.
type VAlign uint8

const (
	VStretch VAlign = iota
	VTop
	VCenter
	VBottom
)

// View is a node of the layout and visual trees.
//
// MeasureOverride receives the content constraint (Unconstrained on an
// open axis) and returns the content size it wants. ArrangeOverride
// receives the content size it was given and returns the size it used.
// Render paints the view's content; coordinates are relative to the
// view's content origin. Visual children are painted after Render, on top.
type View interface {
	Base() *ViewBase
	MeasureOverride(w, h int16) geom.Vector
	ArrangeOverride(size geom.Vector) geom.Vector
	Render(rp *RenderPort)
	VisualChildren() iter.Seq[View]
	HandleKey(ev screen.Event) bool
}

// RenderHost receives repaint and relayout requests from the root of a view
// tree. Rects are in screen coordinates.
type RenderHost interface {
	InvalidateRender(r geom.Rect)
	InvalidateLayout()
}

// ViewBase holds the layout state every view shares and implements the
// measure/arrange protocol on top of the overrides of the embedding view.
type ViewBase struct {
	self View

	layoutParent View
	visualParent View
	host         RenderHost
	layout       any
	name         string

	minSize geom.Vector
	maxSize geom.Vector
	hAlign  HAlign
	vAlign  VAlign
	margin  geom.Thickness

	measured           bool
	measureW, measureH int16
	desiredSize        geom.Vector

	arranged     bool
	arrangeSize  geom.Vector
	renderSize   geom.Vector
	renderBounds geom.Rect
}

// Init binds the base to the view embedding it. It must be called once,
// before the view is used.
func (b *ViewBase) Init(self View) {
	if b.self != nil {
		panic("tvx: view initialized twice")
	}
	if self.Base() != b {
		panic("tvx: Init called with a view that does not embed this base")
	}
	b.self = self
	b.maxSize = geom.Vector{X: -1, Y: -1}
}

func (b *ViewBase) view() View {
	if b.self == nil {
		panic("tvx: view used before Init")
	}
	return b.self
}

// Base returns b; it lets every type embedding ViewBase satisfy View.
func (b *ViewBase) Base() *ViewBase { return b }

// MeasureOverride reports no content.
func (b *ViewBase) MeasureOverride(w, h int16) geom.Vector { return geom.Vector{} }

// ArrangeOverride uses no space.
func (b *ViewBase) ArrangeOverride(size geom.Vector) geom.Vector { return geom.Vector{} }

// Render paints nothing.
func (b *ViewBase) Render(rp *RenderPort) {}

// VisualChildren yields nothing.
func (b *ViewBase) VisualChildren() iter.Seq[View] {
	return func(func(View) bool) {}
}

// HandleKey ignores the key.
func (b *ViewBase) HandleKey(ev screen.Event) bool { return false }

// Name returns the name the view was registered under, if any.
func (b *ViewBase) Name() string { return b.name }

// SetName names the view for lookups.
func (b *ViewBase) SetName(name string) { b.name = name }

// --- size constraints ---

// MinSize returns the minimum size. The margin is not included.
func (b *ViewBase) MinSize() geom.Vector { return b.minSize }

// SetMinSize sets the minimum size.
func (b *ViewBase) SetMinSize(v geom.Vector) {
	b.minSize = v
	b.InvalidateMeasure()
}

// MaxSize returns the maximum size; a negative component is unbounded.
func (b *ViewBase) MaxSize() geom.Vector { return b.maxSize }

// SetMaxSize sets the maximum size; a negative component is unbounded.
func (b *ViewBase) SetMaxSize(v geom.Vector) {
	b.maxSize = v
	b.InvalidateMeasure()
}

// Margin returns the space kept free around the view.
func (b *ViewBase) Margin() geom.Thickness { return b.margin }

// SetMargin sets the space kept free around the view.
func (b *ViewBase) SetMargin(t geom.Thickness) {
	b.margin = t
	b.InvalidateMeasure()
}

// HAlign returns the horizontal alignment.
func (b *ViewBase) HAlign() HAlign { return b.hAlign }

// SetHAlign sets the horizontal alignment.
func (b *ViewBase) SetHAlign(a HAlign) {
	b.hAlign = a
	b.InvalidateMeasure()
}

// VAlign returns the vertical alignment.
func (b *ViewBase) VAlign() VAlign { return b.vAlign }

// SetVAlign sets the vertical alignment.
func (b *ViewBase) SetVAlign(a VAlign) {
	b.vAlign = a
	b.InvalidateMeasure()
}

// Layout returns the annotation the layout parent reads, such as DockLayout
// or CanvasLayout.
func (b *ViewBase) Layout() any { return b.layout }

// SetLayout attaches an annotation for the layout parent.
func (b *ViewBase) SetLayout(l any) {
	b.layout = l
	if b.layoutParent != nil {
		b.layoutParent.Base().InvalidateMeasure()
	}
}

// --- tree links ---

// LayoutParent returns the view that sizes this one, or nil.
func (b *ViewBase) LayoutParent() View { return b.layoutParent }

// VisualParent returns the view that paints this one, or nil.
func (b *ViewBase) VisualParent() View { return b.visualParent }

// SetLayoutParent links the view to the parent that sizes it; nil unlinks.
// Linking a view that already has a layout parent panics.
func (b *ViewBase) SetLayoutParent(p View) {
	if p != nil && b.layoutParent != nil {
		panic("tvx: view already has a layout parent")
	}
	b.layoutParent = p
}

// SetVisualParent links the view to the parent that paints it; nil unlinks.
// Linking a view that already has a visual parent panics.
func (b *ViewBase) SetVisualParent(p View) {
	if p != nil && b.visualParent != nil {
		panic("tvx: view already has a visual parent")
	}
	b.visualParent = p
}

// setHost makes the view a root whose invalidations go to h.
func (b *ViewBase) setHost(h RenderHost) {
	b.host = h
}

// --- measure ---

// DesiredSize returns the result of the last Measure, margin included.
func (b *ViewBase) DesiredSize() geom.Vector { return b.desiredSize }

// IsMeasureValid reports whether the measure cache is current.
func (b *ViewBase) IsMeasureValid() bool { return b.measured }

// IsArrangeValid reports whether the arrange cache is current.
func (b *ViewBase) IsArrangeValid() bool { return b.arranged }

// InvalidateMeasure drops the measure and arrange caches of the view and of
// every layout ancestor.
func (b *ViewBase) InvalidateMeasure() {
	for cur := b; ; {
		cur.measured = false
		cur.arranged = false
		if cur.host != nil {
			cur.host.InvalidateLayout()
		}
		if cur.layoutParent == nil {
			return
		}
		cur = cur.layoutParent.Base()
	}
}

// InvalidateArrange drops the arrange cache of the view and of every layout
// ancestor.
func (b *ViewBase) InvalidateArrange() {
	for cur := b; ; {
		cur.arranged = false
		if cur.host != nil {
			cur.host.InvalidateLayout()
		}
		if cur.layoutParent == nil {
			return
		}
		cur = cur.layoutParent.Base()
	}
}

// Measure computes the desired size for the constraint (w, h), where
// Unconstrained leaves an axis open. Repeated calls with the same
// constraint return the cached result.
//
// An axis with a non-stretch alignment is measured unconstrained: an
// aligned view sizes to its content.
func (b *ViewBase) Measure(w, h int16) geom.Vector {
	if w < 0 {
		w = Unconstrained
	}
	if h < 0 {
		h = Unconstrained
	}
	if b.measured && b.measureW == w && b.measureH == h {
		return b.desiredSize
	}
	v := b.view()

	cw, ch := w, h
	if b.hAlign != HStretch {
		cw = Unconstrained
	}
	if b.vAlign != VStretch {
		ch = Unconstrained
	}
	avail := geom.Vector{X: max(cw, 0), Y: max(ch, 0)}
	avail = b.margin.ShrinkSize(avail).Clamp(b.minSize, b.maxSize)
	if cw != Unconstrained {
		cw = avail.X
	}
	if ch != Unconstrained {
		ch = avail.Y
	}

	content := v.MeasureOverride(cw, ch).Clamp(b.minSize, b.maxSize)
	b.desiredSize = b.margin.ExpandSize(content)
	b.measureW, b.measureH = w, h
	b.measured = true
	b.arranged = false
	return b.desiredSize
}

// --- arrange ---

// RenderBounds returns the rect the view occupies inside its parent's
// content area, margin included.
func (b *ViewBase) RenderBounds() geom.Rect { return b.renderBounds }

// ContentBounds returns RenderBounds without the margin: the area the view
// paints, in its parent's content coordinates.
func (b *ViewBase) ContentBounds() geom.Rect {
	return b.margin.ShrinkRect(b.renderBounds)
}

// Arrange places the view inside bounds, given in the parent's content
// coordinates. When the size of bounds matches the previous call only the
// alignment is recomputed.
func (b *ViewBase) Arrange(bounds geom.Rect) {
	if !b.arranged || b.arrangeSize != bounds.Size {
		size := b.margin.ShrinkSize(bounds.Size)
		content := b.margin.ShrinkSize(b.desiredSize)
		if b.hAlign != HStretch {
			size.X = min(size.X, content.X)
		}
		if b.vAlign != VStretch {
			size.Y = min(size.Y, content.Y)
		}
		size = size.Clamp(b.minSize, b.maxSize)
		used := b.view().ArrangeOverride(size).Clamp(b.minSize, b.maxSize)
		b.renderSize = b.margin.ExpandSize(used)
		b.arrangeSize = bounds.Size
		b.arranged = true
	}

	rb := geom.Rect{
		TL: geom.Point{
			X: geom.AddSat(bounds.TL.X, alignOffset(b.hAlign == HCenter, b.hAlign == HRight, bounds.Size.X, b.renderSize.X)),
			Y: geom.AddSat(bounds.TL.Y, alignOffset(b.vAlign == VCenter, b.vAlign == VBottom, bounds.Size.Y, b.renderSize.Y)),
		},
		Size: b.renderSize,
	}
	if rb != b.renderBounds {
		b.InvalidateRender()
		b.renderBounds = rb
		b.InvalidateRender()
	}
}

// alignOffset places an extent of size inside avail. Stretch and leading
// alignments sit at the start; centering rounds toward the start.
func alignOffset(center, end bool, avail, size int16) int16 {
	free := geom.SubSat(avail, size)
	switch {
	case free <= 0:
		return 0
	case center:
		return free / 2
	case end:
		return free
	}
	return 0
}

// resetArrange forgets the placement of a view leaving the tree.
func (b *ViewBase) resetArrange() {
	b.arranged = false
	b.renderBounds = geom.Rect{}
}

// --- render invalidation ---

// InvalidateRender schedules a repaint of the area the view occupies.
func (b *ViewBase) InvalidateRender() {
	b.InvalidateRect(b.renderBounds)
}

// InvalidateRect schedules a repaint of r, given in the coordinates of the
// view's parent content area. The rect is translated up the visual tree to
// the root; a view that is not connected to a root is ignored.
func (b *ViewBase) InvalidateRect(r geom.Rect) {
	if r.IsEmpty() {
		return
	}
	for cur := b; ; {
		if cur.host != nil {
			cur.host.InvalidateRender(r)
			return
		}
		if cur.visualParent == nil {
			return
		}
		cur = cur.visualParent.Base()
		r = r.Offset(geom.Vector(cur.ContentBounds().TL))
	}
}
