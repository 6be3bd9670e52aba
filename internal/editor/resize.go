package editor

import (
	"fmt"

	"github.com/ironsheep/icon-cropper-mcp/internal/geometry"
)

// Handle identifies one of the eight resize handles around a rectangle:
// four corners and four edge midpoints.
type Handle string

const (
	HandleTopLeft     Handle = "corner_tl"
	HandleTopRight    Handle = "corner_tr"
	HandleBottomLeft  Handle = "corner_bl"
	HandleBottomRight Handle = "corner_br"
	HandleLeft        Handle = "edge_left"
	HandleRight       Handle = "edge_right"
	HandleTop         Handle = "edge_top"
	HandleBottom      Handle = "edge_bottom"
)

// ParseHandle maps a wire string to a Handle.
func ParseHandle(s string) (Handle, error) {
	switch h := Handle(s); h {
	case HandleTopLeft, HandleTopRight, HandleBottomLeft, HandleBottomRight,
		HandleLeft, HandleRight, HandleTop, HandleBottom:
		return h, nil
	}
	return "", fmt.Errorf("unknown resize handle %q", s)
}

// IsCorner reports whether the handle affects both axes.
func (h Handle) IsCorner() bool {
	switch h {
	case HandleTopLeft, HandleTopRight, HandleBottomLeft, HandleBottomRight:
		return true
	}
	return false
}

// Modifier selects the resize policy held during a drag.
type Modifier string

const (
	// ModNone resizes with the opposite corner or edge fixed.
	ModNone Modifier = ""
	// ModShift scales both dimensions proportionally from the dominant
	// drag axis. It only applies to corner handles; on edges it behaves
	// exactly like ModNone.
	ModShift Modifier = "shift"
	// ModCtrl resizes symmetrically around the rectangle's center.
	ModCtrl Modifier = "ctrl"
)

// ParseModifier maps a wire string to a Modifier.
func ParseModifier(s string) (Modifier, error) {
	switch m := Modifier(s); m {
	case ModNone, ModShift, ModCtrl:
		return m, nil
	case "none":
		return ModNone, nil
	}
	return "", fmt.Errorf("unknown resize modifier %q", s)
}

// Resize computes the rectangle that results from dragging one handle
// of orig by (dx, dy) image pixels under the given modifier. Both
// dimensions of the result are clamped to minSize; the input rectangle
// is never mutated.
//
// Policies:
//   - ModNone: the opposite corner (corners) or opposite edge (edges)
//     stays fixed and only the dragged dimensions change.
//   - ModShift, corner handles only: one scale factor is derived from
//     whichever axis of the drag is proportionally larger, then applied
//     to both dimensions with the opposite corner fixed. On edge
//     handles shift is ignored and ModNone applies.
//   - ModCtrl: the center stays fixed; each affected dimension changes
//     by twice the drag and the origin shifts against it.
func Resize(orig geometry.Rect, h Handle, mod Modifier, dx, dy, minSize int) geometry.Rect {
	if minSize < 1 {
		minSize = 1
	}
	if h.IsCorner() {
		switch mod {
		case ModShift:
			return resizeCornerAspect(orig, h, dx, dy, minSize)
		case ModCtrl:
			return resizeCornerCenter(orig, h, dx, dy, minSize)
		default:
			return resizeCornerDefault(orig, h, dx, dy, minSize)
		}
	}
	if mod == ModCtrl {
		return resizeEdgeCenter(orig, h, dx, dy, minSize)
	}
	return resizeEdgeDefault(orig, h, dx, dy, minSize)
}

func resizeEdgeDefault(r geometry.Rect, h Handle, dx, dy, minSize int) geometry.Rect {
	out := r
	switch h {
	case HandleLeft:
		out.X = r.X + dx
		out.Width = max(minSize, r.Width-dx)
	case HandleRight:
		out.Width = max(minSize, r.Width+dx)
	case HandleTop:
		out.Y = r.Y + dy
		out.Height = max(minSize, r.Height-dy)
	case HandleBottom:
		out.Height = max(minSize, r.Height+dy)
	}
	return out
}

func resizeEdgeCenter(r geometry.Rect, h Handle, dx, dy, minSize int) geometry.Rect {
	out := r
	switch h {
	case HandleLeft, HandleRight:
		out.X = r.X - dx
		out.Width = max(minSize, r.Width+2*dx)
	case HandleTop, HandleBottom:
		out.Y = r.Y - dy
		out.Height = max(minSize, r.Height+2*dy)
	}
	return out
}

func resizeCornerDefault(r geometry.Rect, h Handle, dx, dy, minSize int) geometry.Rect {
	out := r
	switch h {
	case HandleBottomRight:
		out.Width = max(minSize, r.Width+dx)
		out.Height = max(minSize, r.Height+dy)
	case HandleTopLeft:
		out.Width = max(minSize, r.Width-dx)
		out.Height = max(minSize, r.Height-dy)
		out.X = r.X + r.Width - out.Width
		out.Y = r.Y + r.Height - out.Height
	case HandleTopRight:
		out.Width = max(minSize, r.Width+dx)
		out.Height = max(minSize, r.Height-dy)
		out.Y = r.Y + r.Height - out.Height
	case HandleBottomLeft:
		out.Width = max(minSize, r.Width-dx)
		out.Height = max(minSize, r.Height+dy)
		out.X = r.X + r.Width - out.Width
	}
	return out
}

// cornerSigns gives the outward drag direction per axis: +1 where
// dragging toward positive coordinates grows the rectangle.
func cornerSigns(h Handle) (sx, sy int) {
	switch h {
	case HandleTopLeft:
		return -1, -1
	case HandleTopRight:
		return 1, -1
	case HandleBottomLeft:
		return -1, 1
	default: // bottom-right
		return 1, 1
	}
}

func resizeCornerAspect(r geometry.Rect, h Handle, dx, dy, minSize int) geometry.Rect {
	sx, sy := cornerSigns(h)
	w := max(r.Width, 1)
	hh := max(r.Height, 1)

	// One factor for both axes, taken from whichever axis the drag
	// moved proportionally farther outward.
	scale := float64(sx*dx) / float64(w)
	if sv := float64(sy*dy) / float64(hh); sv > scale {
		scale = sv
	}

	out := r
	out.Width = max(minSize, int(float64(r.Width)+scale*float64(r.Width)))
	out.Height = max(minSize, int(float64(r.Height)+scale*float64(r.Height)))
	if sx < 0 {
		out.X = r.X + r.Width - out.Width
	}
	if sy < 0 {
		out.Y = r.Y + r.Height - out.Height
	}
	return out
}

func resizeCornerCenter(r geometry.Rect, h Handle, dx, dy, minSize int) geometry.Rect {
	sx, sy := cornerSigns(h)
	out := r
	out.X = r.X - sx*dx
	out.Y = r.Y - sy*dy
	out.Width = max(minSize, r.Width+2*sx*dx)
	out.Height = max(minSize, r.Height+2*sy*dy)
	return out
}

