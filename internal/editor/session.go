package editor

import (
	"fmt"

	"github.com/ironsheep/icon-cropper-mcp/internal/geometry"
	"github.com/ironsheep/icon-cropper-mcp/internal/overlay"
)

// Mode is the single tagged value describing what the editor is doing.
// Exactly one variant is active at a time; a drawing gesture and a
// resize can never coexist.
type Mode interface {
	ModeName() string
}

// Idle means no interaction is in progress.
type Idle struct{}

func (Idle) ModeName() string { return "idle" }

// DrawingGrid wraps an in-progress grid gesture.
type DrawingGrid struct{ Draw *GridDraw }

func (DrawingGrid) ModeName() string { return "drawing_grid" }

// DrawingOCR wraps an in-progress OCR region gesture.
type DrawingOCR struct{ Draw *OCRDraw }

func (DrawingOCR) ModeName() string { return "drawing_ocr" }

// Resizing wraps an in-progress resize drag.
type Resizing struct{ Op *ResizeOp }

func (Resizing) ModeName() string { return "resizing" }

// ResizeOp is one resize drag: the handle grabbed, the modifier held,
// the pointer origin, and a snapshot of the rectangle when the drag
// began. Each Drag recomputes from the snapshot, so intermediate motion
// never accumulates rounding.
type ResizeOp struct {
	OverlayID string
	handle    Handle
	mod       Modifier
	origin    geometry.Point
	orig      geometry.Rect
	minSize   int
	current   geometry.Rect
}

// NewResizeOp snapshots a rectangle for resizing. minSize is the floor
// for both result dimensions: 1 for grid cells, overlay.MinOCRSize for
// OCR regions.
func NewResizeOp(overlayID string, rect geometry.Rect, h Handle, mod Modifier, origin geometry.Point, minSize int) *ResizeOp {
	return &ResizeOp{
		OverlayID: overlayID,
		handle:    h,
		mod:       mod,
		origin:    origin,
		orig:      rect,
		minSize:   minSize,
		current:   rect,
	}
}

// Drag recomputes the rectangle for the pointer now being at p.
func (op *ResizeOp) Drag(p geometry.Point) geometry.Rect {
	dx := p.X - op.origin.X
	dy := p.Y - op.origin.Y
	op.current = Resize(op.orig, op.handle, op.mod, dx, dy, op.minSize)
	return op.current
}

// Result returns the rectangle as of the latest drag.
func (op *ResizeOp) Result() geometry.Rect {
	return op.current
}

// Session owns the editor interaction mode. Begin methods refuse to
// start a second interaction while one is active; Finish or Cancel
// returns to idle.
type Session struct {
	mode Mode
}

// NewSession returns an idle session.
func NewSession() *Session {
	return &Session{mode: Idle{}}
}

// Mode returns the current mode variant.
func (s *Session) Mode() Mode { return s.mode }

// BeginGridDraw starts a grid drawing gesture from the default config.
func (s *Session) BeginGridDraw() (*GridDraw, error) {
	if _, ok := s.mode.(Idle); !ok {
		return nil, fmt.Errorf("editor busy: %s", s.mode.ModeName())
	}
	d := NewGridDraw()
	s.mode = DrawingGrid{Draw: d}
	return d, nil
}

// BeginOCRDraw starts an OCR region gesture.
func (s *Session) BeginOCRDraw() (*OCRDraw, error) {
	if _, ok := s.mode.(Idle); !ok {
		return nil, fmt.Errorf("editor busy: %s", s.mode.ModeName())
	}
	d := NewOCRDraw()
	s.mode = DrawingOCR{Draw: d}
	return d, nil
}

// BeginResize starts a resize drag against an overlay's rectangle: the
// single cell rect for grids, the region rect for OCR overlays. Locked
// overlays cannot be resized.
func (s *Session) BeginResize(o *overlay.Overlay, h Handle, mod Modifier, origin geometry.Point) (*ResizeOp, error) {
	if _, ok := s.mode.(Idle); !ok {
		return nil, fmt.Errorf("editor busy: %s", s.mode.ModeName())
	}
	if o.Locked {
		return nil, &overlay.LockedError{ID: o.ID}
	}

	var rect geometry.Rect
	minSize := 1
	switch o.Type {
	case overlay.TypeGrid:
		rect = geometry.Rect{X: o.Grid.StartX, Y: o.Grid.StartY, Width: o.Grid.CellWidth, Height: o.Grid.CellHeight}
	case overlay.TypeOCR:
		rect = geometry.Rect{X: o.OCR.X, Y: o.OCR.Y, Width: o.OCR.Width, Height: o.OCR.Height}
		minSize = overlay.MinOCRSize
	default:
		return nil, fmt.Errorf("overlay %q has unknown type %q", o.ID, o.Type)
	}

	op := NewResizeOp(o.ID, rect, h, mod, origin, minSize)
	s.mode = Resizing{Op: op}
	return op, nil
}

// Finish ends the active interaction and returns to idle.
func (s *Session) Finish() {
	s.mode = Idle{}
}

// Cancel discards the active interaction and returns to idle.
func (s *Session) Cancel() {
	s.mode = Idle{}
}

// ApplyResize writes a resize result back into the overlay's config.
func ApplyResize(o *overlay.Overlay, r geometry.Rect) error {
	switch o.Type {
	case overlay.TypeGrid:
		o.Grid.StartX = r.X
		o.Grid.StartY = r.Y
		o.Grid.CellWidth = r.Width
		o.Grid.CellHeight = r.Height
	case overlay.TypeOCR:
		o.OCR.X = r.X
		o.OCR.Y = r.Y
		o.OCR.Width = r.Width
		o.OCR.Height = r.Height
	default:
		return fmt.Errorf("overlay %q has unknown type %q", o.ID, o.Type)
	}
	return nil
}
