// Package crop implements grid-based icon extraction: enumerating the
// padded cell rectangles of a grid overlay, cropping them out of a
// screenshot, and running that over every screenshot/overlay binding of
// a workspace.
package crop

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"

	"github.com/ironsheep/icon-cropper-mcp/internal/geometry"
	"github.com/ironsheep/icon-cropper-mcp/internal/overlay"
)

// CellRects enumerates the crop rectangle of every grid cell in
// row-major order (left-to-right, then top-to-bottom). Each cell starts
// at start + index*(cell+spacing), is shrunk by the crop padding on all
// sides, and is clamped to the image. Cells whose clamped area
// collapses to nothing are dropped; the caller sees only the rectangles
// that produce pixels, in order.
func CellRects(cfg overlay.GridConfig, imgWidth, imgHeight int) []geometry.Rect {
	rects := make([]geometry.Rect, 0, cfg.Rows*cfg.Columns)

	for row := 0; row < cfg.Rows; row++ {
		for col := 0; col < cfg.Columns; col++ {
			x := cfg.StartX + col*(cfg.CellWidth+cfg.SpacingX)
			y := cfg.StartY + row*(cfg.CellHeight+cfg.SpacingY)

			padded := geometry.Rect{
				X:      x + cfg.CropPadding,
				Y:      y + cfg.CropPadding,
				Width:  cfg.CellWidth - 2*cfg.CropPadding,
				Height: cfg.CellHeight - 2*cfg.CropPadding,
			}
			clamped := padded.Clamp(imgWidth, imgHeight)
			if clamped.Empty() {
				continue
			}
			rects = append(rects, clamped)
		}
	}
	return rects
}

// Extract crops every grid cell out of the image, in the order
// CellRects yields them. Cells clipped by the image edge come back
// smaller than the configured cell size; fully collapsed cells are
// absent.
func Extract(img image.Image, cfg overlay.GridConfig) []image.Image {
	b := img.Bounds()
	rects := CellRects(cfg, b.Dx(), b.Dy())

	out := make([]image.Image, 0, len(rects))
	for _, r := range rects {
		cell := imaging.Crop(img, image.Rect(b.Min.X+r.X, b.Min.Y+r.Y, b.Min.X+r.X+r.Width, b.Min.Y+r.Y+r.Height))
		out = append(out, cell)
	}
	return out
}

// GridFor resolves an overlay id to its grid config for extraction.
// Unknown ids report the available ids; non-grid overlays cannot be
// cropped.
func GridFor(overlays map[string]*overlay.Overlay, id string, available []string) (overlay.GridConfig, error) {
	o, ok := overlays[id]
	if !ok {
		return overlay.GridConfig{}, &UnknownOverlayError{ID: id, Available: available}
	}
	if o.Type != overlay.TypeGrid {
		return overlay.GridConfig{}, fmt.Errorf("overlay %q has type %q, expected grid: only grid overlays can be cropped", id, o.Type)
	}
	return *o.Grid, nil
}

// UnknownOverlayError reports an extraction request naming an overlay
// the workspace does not define.
type UnknownOverlayError struct {
	ID        string
	Available []string
}

func (e *UnknownOverlayError) Error() string {
	return fmt.Sprintf("overlay %q not found in workspace (available overlays: %v)", e.ID, e.Available)
}
