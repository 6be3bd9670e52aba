package overlay

import "fmt"

// Type discriminates the two overlay kinds.
type Type string

const (
	TypeGrid Type = "grid"
	TypeOCR  Type = "ocr"
)

// Valid reports whether t is a known overlay type.
func (t Type) Valid() bool {
	return t == TypeGrid || t == TypeOCR
}

// FieldError describes a single invalid field: which field and why.
// Validation reports every problem it finds, not just the first.
type FieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// GridConfig defines a grid layout for icon cropping: a start position,
// uniform cell dimensions, inter-cell spacing, and a count of columns
// and rows. CropPadding is shaved off every side of each cell at
// extraction time.
type GridConfig struct {
	StartX      int `json:"start_x"`
	StartY      int `json:"start_y"`
	CellWidth   int `json:"cell_width"`
	CellHeight  int `json:"cell_height"`
	SpacingX    int `json:"spacing_x"`
	SpacingY    int `json:"spacing_y"`
	Columns     int `json:"columns"`
	Rows        int `json:"rows"`
	CropPadding int `json:"crop_padding"`
}

// DefaultGridConfig returns the seed configuration for a fresh grid
// drawing session. Start position and cell dimensions are placeholders
// the drawing gesture overwrites.
func DefaultGridConfig() GridConfig {
	return GridConfig{
		CellWidth:   80,
		CellHeight:  80,
		SpacingX:    10,
		SpacingY:    10,
		Columns:     5,
		Rows:        4,
		CropPadding: 2,
	}
}

// Validate checks every field constraint and returns all violations.
//
// Rules: start and spacing are non-negative; cell dimensions are
// positive; columns and rows are in [1,100]; crop padding is
// non-negative and twice the padding must stay below both cell
// dimensions, otherwise padding would consume the entire cell.
func (c GridConfig) Validate() []FieldError {
	var errs []FieldError
	if c.StartX < 0 {
		errs = append(errs, FieldError{"start_x", "must be >= 0"})
	}
	if c.StartY < 0 {
		errs = append(errs, FieldError{"start_y", "must be >= 0"})
	}
	if c.CellWidth <= 0 {
		errs = append(errs, FieldError{"cell_width", "must be > 0"})
	}
	if c.CellHeight <= 0 {
		errs = append(errs, FieldError{"cell_height", "must be > 0"})
	}
	if c.SpacingX < 0 {
		errs = append(errs, FieldError{"spacing_x", "must be >= 0"})
	}
	if c.SpacingY < 0 {
		errs = append(errs, FieldError{"spacing_y", "must be >= 0"})
	}
	if c.Columns <= 0 || c.Columns > 100 {
		errs = append(errs, FieldError{"columns", "must be in range 1-100"})
	}
	if c.Rows <= 0 || c.Rows > 100 {
		errs = append(errs, FieldError{"rows", "must be in range 1-100"})
	}
	if c.CropPadding < 0 {
		errs = append(errs, FieldError{"crop_padding", "must be >= 0"})
	}
	if c.CropPadding >= 0 && c.CellWidth > 0 && c.CellHeight > 0 {
		if c.CropPadding*2 >= c.CellWidth || c.CropPadding*2 >= c.CellHeight {
			errs = append(errs, FieldError{"crop_padding",
				fmt.Sprintf("padding %d is too large for cell %dx%d", c.CropPadding, c.CellWidth, c.CellHeight)})
		}
	}
	return errs
}

// Extent returns the total width and height the grid spans on the
// image, from the start position to the far edge of the last cell.
func (c GridConfig) Extent() (width, height int) {
	width = c.Columns*c.CellWidth + (c.Columns-1)*c.SpacingX
	height = c.Rows*c.CellHeight + (c.Rows-1)*c.SpacingY
	return width, height
}

// OCRConfig defines a rectangular text-detection region. A zero-size
// region (both width and height zero) means "not yet placed"; a region
// with exactly one zero dimension is invalid.
type OCRConfig struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// MinOCRSize is the smallest width or height an OCR region can be
// resized to. Regions smaller than this produce no usable text.
const MinOCRSize = 10

// Validate checks field constraints and returns all violations.
func (c OCRConfig) Validate() []FieldError {
	var errs []FieldError
	if c.X < 0 {
		errs = append(errs, FieldError{"x", "must be >= 0"})
	}
	if c.Y < 0 {
		errs = append(errs, FieldError{"y", "must be >= 0"})
	}
	if c.Width < 0 {
		errs = append(errs, FieldError{"width", "must be >= 0"})
	}
	if c.Height < 0 {
		errs = append(errs, FieldError{"height", "must be >= 0"})
	}
	if (c.Width > 0 && c.Height == 0) || (c.Width == 0 && c.Height > 0) {
		errs = append(errs, FieldError{"width",
			"region must have both width and height > 0, or both = 0"})
	}
	return errs
}

// Placed reports whether the region has been given a size.
func (c OCRConfig) Placed() bool {
	return c.Width > 0 && c.Height > 0
}
