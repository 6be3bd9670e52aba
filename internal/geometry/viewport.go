package geometry

// Viewport describes how the image is currently presented on a display
// surface: a zoom factor, a pan offset applied after scaling, and the
// scroll position of the surface itself.
//
// The two transforms are inverses of each other as long as Zoom is
// positive and the scroll offsets are zero:
//
//	display = image*zoom + pan
//	image   = trunc((display + scroll - pan) / zoom)
//
// Image coordinates are whole pixels, so ToImage truncates toward zero
// after the division. ToDisplay keeps the fractional result; rounding a
// display position would break the round trip at non-integer zoom.
type Viewport struct {
	Zoom    float64 `json:"zoom"`
	PanX    float64 `json:"pan_x"`
	PanY    float64 `json:"pan_y"`
	ScrollX float64 `json:"scroll_x"`
	ScrollY float64 `json:"scroll_y"`
}

// DefaultViewport is the identity view: 1:1 zoom, no pan, no scroll.
func DefaultViewport() Viewport {
	return Viewport{Zoom: 1.0}
}

// ToDisplay converts an image-space point to display coordinates.
// Zoom must be positive; the caller validates it.
func (v Viewport) ToDisplay(p Point) DisplayPoint {
	return DisplayPoint{
		X: float64(p.X)*v.Zoom + v.PanX,
		Y: float64(p.Y)*v.Zoom + v.PanY,
	}
}

// ToImage converts a display-space point to image pixel coordinates,
// accounting for the scroll position of the display surface. The result
// is truncated to whole pixels.
func (v Viewport) ToImage(p DisplayPoint) Point {
	return Point{
		X: int((p.X + v.ScrollX - v.PanX) / v.Zoom),
		Y: int((p.Y + v.ScrollY - v.PanY) / v.Zoom),
	}
}
