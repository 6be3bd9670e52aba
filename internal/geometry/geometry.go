// Package geometry provides the primitive point and rectangle types and
// the display-to-image coordinate transform.
package geometry

// Point is a position in image space, measured in whole pixels from the
// top-left corner. X increases rightward, Y increases downward.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// DisplayPoint is a position in display (canvas) space. Display
// coordinates are continuous because zoom factors are fractional.
type DisplayPoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Rect is an axis-aligned rectangle in image space. Width and Height
// may be zero; a Rect is never stored denormalized (negative sizes).
type Rect struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// RectFromCorners builds the normalized rectangle spanning two arbitrary
// corner points: the origin is the component-wise minimum and the sizes
// are absolute differences.
func RectFromCorners(a, b Point) Rect {
	x1, x2 := a.X, b.X
	if x2 < x1 {
		x1, x2 = x2, x1
	}
	y1, y2 := a.Y, b.Y
	if y2 < y1 {
		y1, y2 = y2, y1
	}
	return Rect{X: x1, Y: y1, Width: x2 - x1, Height: y2 - y1}
}

// Clamp restricts the rectangle to the region [0,width) x [0,height).
// The returned rectangle may have zero or negative sizes when the input
// lies entirely outside the region; callers decide whether such a result
// is dropped or an error.
func (r Rect) Clamp(width, height int) Rect {
	x1 := max(0, r.X)
	y1 := max(0, r.Y)
	x2 := min(width, r.X+r.Width)
	y2 := min(height, r.Y+r.Height)
	return Rect{X: x1, Y: y1, Width: x2 - x1, Height: y2 - y1}
}

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}
