// Package geom provides the integer geometry shared by the screen backend and
// the view tree: points, sizes, rectangles, ranges and thicknesses.
//
// Coordinates are int16, matching the size of any real terminal. Size
// arithmetic saturates at the int16 bounds instead of wrapping, so layout code
// never has to guard against overflow at the edges of the coordinate space.
package geom

import "math"

// AddSat returns a+b clamped to the int16 range.
func AddSat(a, b int16) int16 {
	return clamp32(int32(a) + int32(b))
}

// SubSat returns a-b clamped to the int16 range.
func SubSat(a, b int16) int16 {
	return clamp32(int32(a) - int32(b))
}

func clamp32(v int32) int16 {
	if v > math.MaxInt16 {
		return math.MaxInt16
	}
	if v < math.MinInt16 {
		return math.MinInt16
	}
	return int16(v)
}

func min16(a, b int16) int16 {
	if a < b {
		return a
	}
	return b
}

func max16(a, b int16) int16 {
	if a > b {
		return a
	}
	return b
}

// Point is a position on the character grid.
type Point struct {
	X, Y int16
}

// Offset returns p moved by v.
func (p Point) Offset(v Vector) Point {
	return Point{AddSat(p.X, v.X), AddSat(p.Y, v.Y)}
}

// Sub returns the vector from o to p.
func (p Point) Sub(o Point) Vector {
	return Vector{SubSat(p.X, o.X), SubSat(p.Y, o.Y)}
}

// Vector is a two dimensional extent. It doubles as a size.
type Vector struct {
	X, Y int16
}

// IsZero reports whether both components are zero.
func (v Vector) IsZero() bool {
	return v.X == 0 && v.Y == 0
}

// Neg returns -v.
func (v Vector) Neg() Vector {
	return Vector{SubSat(0, v.X), SubSat(0, v.Y)}
}

// Add returns v+o, saturating.
func (v Vector) Add(o Vector) Vector {
	return Vector{AddSat(v.X, o.X), AddSat(v.Y, o.Y)}
}

// Min returns the componentwise minimum.
func (v Vector) Min(o Vector) Vector {
	return Vector{min16(v.X, o.X), min16(v.Y, o.Y)}
}

// Max returns the componentwise maximum.
func (v Vector) Max(o Vector) Vector {
	return Vector{max16(v.X, o.X), max16(v.Y, o.Y)}
}

// Clamp limits v to [lo, hi] componentwise, applying hi first and lo last so
// that lo wins when the bounds cross. A negative component of hi means that
// axis has no upper bound.
func (v Vector) Clamp(lo, hi Vector) Vector {
	if hi.X >= 0 {
		v.X = min16(v.X, hi.X)
	}
	if hi.Y >= 0 {
		v.Y = min16(v.Y, hi.Y)
	}
	return v.Max(lo)
}

// Range is the half-open interval [Start, End) on one axis.
type Range struct {
	Start, End int16
}

// Len returns the number of cells in the range, or zero when it is empty.
func (r Range) Len() int16 {
	if r.End <= r.Start {
		return 0
	}
	return SubSat(r.End, r.Start)
}

// IsEmpty reports whether the range covers no cells.
func (r Range) IsEmpty() bool {
	return r.End <= r.Start
}

// Contains reports whether x lies inside the range.
func (r Range) Contains(x int16) bool {
	return x >= r.Start && x < r.End
}

// Intersect returns the overlap of r and o. The result may be empty.
func (r Range) Intersect(o Range) Range {
	return Range{max16(r.Start, o.Start), min16(r.End, o.End)}
}

// Union returns the smallest range covering both. Empty ranges are ignored.
func (r Range) Union(o Range) Range {
	if r.IsEmpty() {
		return o
	}
	if o.IsEmpty() {
		return r
	}
	return Range{min16(r.Start, o.Start), max16(r.End, o.End)}
}

// Rect is an axis aligned rectangle given by its top-left corner and size.
type Rect struct {
	TL   Point
	Size Vector
}

// NewRect builds a rect from its components.
func NewRect(x, y, w, h int16) Rect {
	return Rect{TL: Point{x, y}, Size: Vector{w, h}}
}

// RectFromRanges builds a rect spanning the two ranges.
func RectFromRanges(h, v Range) Rect {
	return Rect{TL: Point{h.Start, v.Start}, Size: Vector{h.Len(), v.Len()}}
}

// Left returns the leftmost column.
func (r Rect) Left() int16 { return r.TL.X }

// Top returns the topmost row.
func (r Rect) Top() int16 { return r.TL.Y }

// Right returns the column just past the right edge.
func (r Rect) Right() int16 { return AddSat(r.TL.X, r.Size.X) }

// Bottom returns the row just past the bottom edge.
func (r Rect) Bottom() int16 { return AddSat(r.TL.Y, r.Size.Y) }

// HRange returns the horizontal extent.
func (r Rect) HRange() Range { return Range{r.Left(), r.Right()} }

// VRange returns the vertical extent.
func (r Rect) VRange() Range { return Range{r.Top(), r.Bottom()} }

// IsEmpty reports whether the rect covers no cells.
func (r Rect) IsEmpty() bool {
	return r.Size.X <= 0 || r.Size.Y <= 0
}

// Area returns the number of covered cells.
func (r Rect) Area() int {
	if r.IsEmpty() {
		return 0
	}
	return int(r.Size.X) * int(r.Size.Y)
}

// Contains reports whether p lies inside r.
func (r Rect) Contains(p Point) bool {
	return r.HRange().Contains(p.X) && r.VRange().Contains(p.Y)
}

// Offset returns r moved by v.
func (r Rect) Offset(v Vector) Rect {
	return Rect{TL: r.TL.Offset(v), Size: r.Size}
}

// Intersect returns the overlap of r and o. An empty result has zero size.
func (r Rect) Intersect(o Rect) Rect {
	res := RectFromRanges(r.HRange().Intersect(o.HRange()), r.VRange().Intersect(o.VRange()))
	if res.IsEmpty() {
		return Rect{TL: res.TL}
	}
	return res
}

// Union returns the bounding box of r and o. Empty rects are ignored.
func (r Rect) Union(o Rect) Rect {
	if r.IsEmpty() {
		return o
	}
	if o.IsEmpty() {
		return r
	}
	return RectFromRanges(r.HRange().Union(o.HRange()), r.VRange().Union(o.VRange()))
}

// Points calls yield for every cell of r, row by row.
func (r Rect) Points(yield func(Point) bool) {
	if r.IsEmpty() {
		return
	}
	for y := int32(r.Top()); y < int32(r.Bottom()); y++ {
		for x := int32(r.Left()); x < int32(r.Right()); x++ {
			if !yield(Point{int16(x), int16(y)}) {
				return
			}
		}
	}
}

// Thickness is a four sided border width, used for margins.
type Thickness struct {
	Left, Top, Right, Bottom int16
}

// Uniform returns a thickness of n on every side.
func Uniform(n int16) Thickness {
	return Thickness{n, n, n, n}
}

// IsZero reports whether all sides are zero.
func (t Thickness) IsZero() bool {
	return t == Thickness{}
}

// Add returns the sidewise sum, saturating.
func (t Thickness) Add(o Thickness) Thickness {
	return Thickness{
		AddSat(t.Left, o.Left),
		AddSat(t.Top, o.Top),
		AddSat(t.Right, o.Right),
		AddSat(t.Bottom, o.Bottom),
	}
}

// Width returns left plus right.
func (t Thickness) Width() int16 { return AddSat(t.Left, t.Right) }

// Height returns top plus bottom.
func (t Thickness) Height() int16 { return AddSat(t.Top, t.Bottom) }

// ShrinkSize removes the thickness from a size, never going below zero.
func (t Thickness) ShrinkSize(v Vector) Vector {
	return Vector{
		max16(0, SubSat(v.X, t.Width())),
		max16(0, SubSat(v.Y, t.Height())),
	}
}

// ExpandSize adds the thickness to a size.
func (t Thickness) ExpandSize(v Vector) Vector {
	return Vector{
		max16(0, AddSat(v.X, t.Width())),
		max16(0, AddSat(v.Y, t.Height())),
	}
}

// ShrinkRect returns the inner rect left after removing the thickness.
func (t Thickness) ShrinkRect(r Rect) Rect {
	return Rect{
		TL:   Point{AddSat(r.TL.X, t.Left), AddSat(r.TL.Y, t.Top)},
		Size: t.ShrinkSize(r.Size),
	}
}

// ExpandRect returns the outer rect obtained by adding the thickness.
func (t Thickness) ExpandRect(r Rect) Rect {
	return Rect{
		TL:   Point{SubSat(r.TL.X, t.Left), SubSat(r.TL.Y, t.Top)},
		Size: t.ExpandSize(r.Size),
	}
}
