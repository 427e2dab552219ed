// Package overlay provides floating surfaces drawn over a rendered terminal
// frame: placement strategies connected to an anchor, scroll handling, and
// handles for attaching content.
package overlay

// Point is a cell coordinate; X is the column and Y the row, both zero-based.
type Point struct {
	X, Y int
}

// Size is a width/height pair in cells.
type Size struct {
	Width, Height int
}

// Rect is an axis-aligned cell rectangle.
type Rect struct {
	X, Y          int
	Width, Height int
}

// Contains reports whether p lies inside r. Empty rectangles contain nothing.
func (r Rect) Contains(p Point) bool {
	if r.Width <= 0 || r.Height <= 0 {
		return false
	}
	return p.X >= r.X && p.X < r.X+r.Width && p.Y >= r.Y && p.Y < r.Y+r.Height
}

// Size returns the dimensions of r.
func (r Rect) Size() Size {
	return Size{Width: r.Width, Height: r.Height}
}

// Origin returns the top-left corner of r.
func (r Rect) Origin() Point {
	return Point{X: r.X, Y: r.Y}
}

// Bounds lets a plain Rect act as an Element.
func (r Rect) Bounds() Rect {
	return r
}

// Element is anything occupying a rectangle of the frame: an anchor, an
// overlay pane, a container.
type Element interface {
	Bounds() Rect
}
