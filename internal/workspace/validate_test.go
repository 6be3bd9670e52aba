package workspace

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/ironsheep/icon-cropper-mcp/internal/overlay"
)

// validDocument builds a document with one grid overlay bound to one
// screenshot. Tests mutate it to provoke specific failures.
func validDocument(t *testing.T) *Document {
	t.Helper()
	doc := NewDocument("character_select", time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC))
	doc.Overlays["grid_1"] = overlay.NewGrid("grid_1", "Grid 1", overlay.GridConfig{
		StartX: 100, StartY: 200,
		CellWidth: 80, CellHeight: 80,
		SpacingX: 10, SpacingY: 10,
		Columns: 5, Rows: 4,
		CropPadding: 2,
	})
	doc.Screenshots = []*Screenshot{{
		Filename:        "001.png",
		CapturedAt:      "2026-08-01T10:30:00",
		Resolution:      [2]int{1920, 1080},
		OverlayBindings: []string{"grid_1"},
	}}
	doc.Select("001.png")
	return doc
}

func TestValidate_ValidDocument(t *testing.T) {
	doc := validDocument(t)
	if err := Validate(doc); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	// Validation is read-only: running it twice gives the same answer.
	if err := Validate(doc); err != nil {
		t.Fatalf("second Validate: %v", err)
	}
}

func TestValidate_SchemaVersionGate(t *testing.T) {
	doc := validDocument(t)
	doc.SchemaVersion = 1

	err := Validate(doc)
	var sve *SchemaVersionError
	if !errors.As(err, &sve) {
		t.Fatalf("expected *SchemaVersionError, got %v", err)
	}
	if sve.Got != 1 {
		t.Errorf("Got = %d", sve.Got)
	}

	doc.SchemaVersion = 3
	if err := Validate(doc); err == nil {
		t.Error("version 3 must be rejected: no migration path exists")
	}
}

func TestValidate_FieldErrors(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*Document)
		wantField string
	}{
		{"empty workspace name", func(d *Document) { d.WorkspaceName = "" }, "workspace_name"},
		{"bad created_at", func(d *Document) { d.CreatedAt = "yesterday" }, "created_at"},
		{"overlay config error", func(d *Document) { d.Overlays["grid_1"].Grid.CellWidth = 0 }, "overlays.grid_1.config.cell_width"},
		{"filename without png", func(d *Document) { d.Screenshots[0].Filename = "001.jpg"; d.Select("001.jpg") }, "screenshots[0].filename"},
		{"filename with separator", func(d *Document) { d.Screenshots[0].Filename = "a/001.png"; d.Select("a/001.png") }, "screenshots[0].filename"},
		{"bad captured_at", func(d *Document) { d.Screenshots[0].CapturedAt = "not-a-time" }, "screenshots[0].captured_at"},
		{"zero resolution", func(d *Document) { d.Screenshots[0].Resolution = [2]int{1920, 0} }, "screenshots[0].resolution"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := validDocument(t)
			tt.mutate(doc)

			err := Validate(doc)
			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("expected *ValidationError, got %v", err)
			}
			for _, fe := range ve.Errors {
				if fe.Field == tt.wantField {
					return
				}
			}
			t.Errorf("expected error on %s, got %v", tt.wantField, ve.Errors)
		})
	}
}

func TestValidate_DanglingBinding(t *testing.T) {
	doc := validDocument(t)
	doc.Screenshots[0].OverlayBindings = append(doc.Screenshots[0].OverlayBindings, "grid_9")

	err := Validate(doc)
	var re *ReferentialError
	if !errors.As(err, &re) {
		t.Fatalf("expected *ReferentialError, got %v", err)
	}
	if re.Missing != "grid_9" {
		t.Errorf("Missing = %q, want grid_9", re.Missing)
	}
	if len(re.Available) != 1 || re.Available[0] != "grid_1" {
		t.Errorf("Available = %v", re.Available)
	}
	if !strings.Contains(re.Error(), "grid_9") || !strings.Contains(re.Error(), "grid_1") {
		t.Errorf("message should name the missing id and the available ids: %s", re.Error())
	}
}

func TestValidate_SelectedScreenshotMustExist(t *testing.T) {
	doc := validDocument(t)
	doc.Select("099.png")

	err := Validate(doc)
	var re *ReferentialError
	if !errors.As(err, &re) {
		t.Fatalf("expected *ReferentialError, got %v", err)
	}
	if re.Missing != "099.png" {
		t.Errorf("Missing = %q", re.Missing)
	}

	// No selection at all is fine.
	doc.Select("")
	if err := Validate(doc); err != nil {
		t.Errorf("cleared selection: %v", err)
	}
}

func TestValidate_MapKeyMustMatchID(t *testing.T) {
	doc := validDocument(t)
	o := doc.Overlays["grid_1"]
	delete(doc.Overlays, "grid_1")
	doc.Overlays["grid_2"] = o
	doc.Screenshots[0].OverlayBindings = []string{"grid_2"}

	err := Validate(doc)
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected *ValidationError, got %v", err)
	}
	if !strings.Contains(ve.Error(), "grid_2") {
		t.Errorf("message: %s", ve.Error())
	}
}

func TestValidateForSave_GridBounds(t *testing.T) {
	doc := validDocument(t)
	// Grid extent: 100 + 5*80 + 4*10 = 540 wide, fits in 1920x1080.
	if err := ValidateForSave(doc); err != nil {
		t.Fatalf("ValidateForSave: %v", err)
	}

	// Shrink the screenshot: the same grid no longer fits.
	doc.Screenshots[0].Resolution = [2]int{500, 1080}
	err := ValidateForSave(doc)
	var be *BoundsError
	if !errors.As(err, &be) {
		t.Fatalf("expected *BoundsError, got %v", err)
	}
	if be.OverlayID != "grid_1" || be.Screenshot != "001.png" || be.Axis != "width" {
		t.Errorf("bounds detail: %+v", be)
	}
	if be.Extent != 540 || be.Limit != 500 {
		t.Errorf("extent/limit: %d/%d", be.Extent, be.Limit)
	}

	// Load-time validation does not apply the bounds check.
	if verr := Validate(doc); verr != nil {
		t.Errorf("Validate should pass where only bounds fail: %v", verr)
	}
}

func TestValidateForSave_OCRBounds(t *testing.T) {
	doc := validDocument(t)
	doc.Overlays["ocr_1"] = overlay.NewOCR("ocr_1", "OCR Region 1", overlay.OCRConfig{
		X: 1800, Y: 100, Width: 200, Height: 50,
	})
	doc.Screenshots[0].OverlayBindings = append(doc.Screenshots[0].OverlayBindings, "ocr_1")

	err := ValidateForSave(doc)
	var be *BoundsError
	if !errors.As(err, &be) {
		t.Fatalf("expected *BoundsError, got %v", err)
	}
	if be.OverlayID != "ocr_1" {
		t.Errorf("OverlayID = %q", be.OverlayID)
	}

	// An unbound overlay is not measured against any screenshot.
	doc.Screenshots[0].OverlayBindings = []string{"grid_1"}
	if err := ValidateForSave(doc); err != nil {
		t.Errorf("unbound overlay must not trip bounds: %v", err)
	}
}

func TestValidate_TimestampForms(t *testing.T) {
	for _, ts := range []string{
		"2026-08-01T10:30:00",
		"2026-08-01T10:30:00.123456",
		"2026-08-01T10:30:00Z",
		"2026-08-01T10:30:00+02:00",
	} {
		doc := validDocument(t)
		doc.Screenshots[0].CapturedAt = ts
		if err := Validate(doc); err != nil {
			t.Errorf("timestamp %q rejected: %v", ts, err)
		}
	}
}
