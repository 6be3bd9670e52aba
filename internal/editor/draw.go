package editor

import (
	"fmt"

	"github.com/ironsheep/icon-cropper-mcp/internal/geometry"
	"github.com/ironsheep/icon-cropper-mcp/internal/overlay"
)

// GridStep is the stage a grid drawing gesture is in.
type GridStep string

const (
	// GridStepSetStart waits for the click that places the grid origin.
	GridStepSetStart GridStep = "set_start"
	// GridStepSetCell waits for the drag that sizes the first cell.
	GridStepSetCell GridStep = "set_cell"
	// GridStepAdjust is terminal: the gesture produced a config and
	// further changes go through the resize engine or direct edits.
	GridStepAdjust GridStep = "adjust"
)

// GridDraw runs the three-step grid drawing gesture. All points are in
// image coordinates; the caller converts from display space first.
//
// A new draw always starts from the default configuration. It never
// edits an existing overlay in place; the finished config is installed
// as a new overlay by the caller.
type GridDraw struct {
	step    GridStep
	cfg     overlay.GridConfig
	start   geometry.Point
	current geometry.Point
}

// NewGridDraw begins a gesture in the set-start step.
func NewGridDraw() *GridDraw {
	return &GridDraw{step: GridStepSetStart, cfg: overlay.DefaultGridConfig()}
}

// Step returns the current gesture stage.
func (d *GridDraw) Step() GridStep { return d.step }

// PointerDown places the grid origin. Valid only in the set-start step.
func (d *GridDraw) PointerDown(p geometry.Point) error {
	if d.step != GridStepSetStart {
		return fmt.Errorf("grid draw: pointer down in step %s", d.step)
	}
	d.start = p
	d.current = p
	d.cfg.StartX = p.X
	d.cfg.StartY = p.Y
	d.step = GridStepSetCell
	return nil
}

// PointerMove tracks the drag that sizes the first cell. Moves outside
// the set-cell step are ignored.
func (d *GridDraw) PointerMove(p geometry.Point) {
	if d.step == GridStepSetCell {
		d.current = p
	}
}

// PointerUp commits the cell dimensions from the drag span and moves to
// the adjust step. The cell is at least one pixel per axis so a click
// without movement still yields a valid config.
func (d *GridDraw) PointerUp(p geometry.Point) error {
	if d.step != GridStepSetCell {
		return fmt.Errorf("grid draw: pointer up in step %s", d.step)
	}
	d.current = p
	d.cfg.CellWidth = max(1, abs(p.X-d.start.X))
	d.cfg.CellHeight = max(1, abs(p.Y-d.start.Y))
	d.step = GridStepAdjust
	return nil
}

// Preview returns the rectangle spanned so far, for rendering while the
// gesture is in progress.
func (d *GridDraw) Preview() geometry.Rect {
	return geometry.RectFromCorners(d.start, d.current)
}

// Config returns the finished grid configuration. It is only available
// once the gesture reached the adjust step.
func (d *GridDraw) Config() (overlay.GridConfig, error) {
	if d.step != GridStepAdjust {
		return overlay.GridConfig{}, fmt.Errorf("grid draw: config requested in step %s", d.step)
	}
	return d.cfg, nil
}

// OCRStep is the stage an OCR region drawing gesture is in.
type OCRStep string

const (
	// OCRStepDefine waits for the press-drag-release that spans the region.
	OCRStepDefine OCRStep = "define"
	// OCRStepAdjust is terminal.
	OCRStepAdjust OCRStep = "adjust"
)

// OCRDraw runs the two-step OCR region gesture: one drag defines the
// region, then the gesture is done. Points are image coordinates.
type OCRDraw struct {
	step    OCRStep
	origin  geometry.Point
	current geometry.Point
	pressed bool
	cfg     overlay.OCRConfig
}

// NewOCRDraw begins a gesture in the define step.
func NewOCRDraw() *OCRDraw {
	return &OCRDraw{step: OCRStepDefine}
}

// Step returns the current gesture stage.
func (d *OCRDraw) Step() OCRStep { return d.step }

// PointerDown records the drag origin.
func (d *OCRDraw) PointerDown(p geometry.Point) error {
	if d.step != OCRStepDefine {
		return fmt.Errorf("ocr draw: pointer down in step %s", d.step)
	}
	d.origin = p
	d.current = p
	d.pressed = true
	return nil
}

// PointerMove tracks the drag for preview rendering.
func (d *OCRDraw) PointerMove(p geometry.Point) {
	if d.pressed {
		d.current = p
	}
}

// PointerUp normalizes the dragged span to a min-corner rectangle with
// absolute sizes and moves to the adjust step.
func (d *OCRDraw) PointerUp(p geometry.Point) error {
	if d.step != OCRStepDefine || !d.pressed {
		return fmt.Errorf("ocr draw: pointer up without a press")
	}
	d.current = p
	r := geometry.RectFromCorners(d.origin, p)
	d.cfg = overlay.OCRConfig{X: r.X, Y: r.Y, Width: r.Width, Height: r.Height}
	d.pressed = false
	d.step = OCRStepAdjust
	return nil
}

// Preview returns the rectangle spanned so far.
func (d *OCRDraw) Preview() geometry.Rect {
	return geometry.RectFromCorners(d.origin, d.current)
}

// Config returns the finished region. Only available in the adjust step.
func (d *OCRDraw) Config() (overlay.OCRConfig, error) {
	if d.step != OCRStepAdjust {
		return overlay.OCRConfig{}, fmt.Errorf("ocr draw: config requested in step %s", d.step)
	}
	return d.cfg, nil
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
