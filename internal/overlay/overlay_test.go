package overlay

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestOverlay_JSONRoundTrip_Grid(t *testing.T) {
	o := NewGrid("grid_1", "Grid 1", GridConfig{
		StartX: 100, StartY: 200,
		CellWidth: 80, CellHeight: 80,
		SpacingX: 10, SpacingY: 10,
		Columns: 5, Rows: 4,
		CropPadding: 2,
	})

	data, err := json.Marshal(o)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var decoded Overlay
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if decoded.ID != "grid_1" || decoded.Type != TypeGrid {
		t.Errorf("identity: got %s/%s", decoded.ID, decoded.Type)
	}
	if decoded.Grid == nil {
		t.Fatal("grid config missing after round trip")
	}
	if *decoded.Grid != *o.Grid {
		t.Errorf("config: got %+v, want %+v", *decoded.Grid, *o.Grid)
	}
	if !decoded.Visible || decoded.Locked {
		t.Errorf("flags: visible=%v locked=%v", decoded.Visible, decoded.Locked)
	}
}

func TestOverlay_JSONRoundTrip_OCR(t *testing.T) {
	o := NewOCR("ocr_1", "OCR Region 1", OCRConfig{X: 50, Y: 60, Width: 200, Height: 100})
	o.Locked = true

	data, err := json.Marshal(o)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var decoded Overlay
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if decoded.OCR == nil {
		t.Fatal("ocr config missing after round trip")
	}
	if *decoded.OCR != *o.OCR {
		t.Errorf("config: got %+v, want %+v", *decoded.OCR, *o.OCR)
	}
	if !decoded.Locked {
		t.Error("locked flag lost")
	}
}

func TestOverlay_Unmarshal_ConfigTypeMismatch(t *testing.T) {
	// Grid type carrying an OCR-shaped config must be rejected.
	raw := `{
		"id": "grid_1",
		"type": "grid",
		"name": "Grid 1",
		"config": {"x": 10, "y": 10, "width": 100, "height": 100},
		"locked": false,
		"visible": true
	}`

	var o Overlay
	err := json.Unmarshal([]byte(raw), &o)
	if err == nil {
		t.Fatal("expected error for config/type mismatch")
	}
	if !strings.Contains(err.Error(), "does not match type grid") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestOverlay_Unmarshal_UnknownType(t *testing.T) {
	raw := `{"id":"x_1","type":"circle","name":"X","config":{},"locked":false,"visible":true}`
	var o Overlay
	if err := json.Unmarshal([]byte(raw), &o); err == nil {
		t.Fatal("expected error for unknown type")
	}
}

func TestOverlay_Validate(t *testing.T) {
	tests := []struct {
		name      string
		overlay   *Overlay
		wantField string
	}{
		{
			"valid grid",
			NewGrid("grid_1", "Grid 1", GridConfig{CellWidth: 80, CellHeight: 80, Columns: 5, Rows: 4, CropPadding: 2}),
			"",
		},
		{
			"bad id characters",
			NewGrid("grid 1!", "Grid 1", GridConfig{CellWidth: 80, CellHeight: 80, Columns: 5, Rows: 4}),
			"id",
		},
		{
			"empty name",
			NewOCR("ocr_1", "", OCRConfig{Width: 100, Height: 100}),
			"name",
		},
		{
			"config error gets config prefix",
			NewGrid("grid_1", "Grid 1", GridConfig{CellWidth: 0, CellHeight: 80, Columns: 5, Rows: 4}),
			"config.cell_width",
		},
		{
			"missing config",
			&Overlay{ID: "grid_1", Type: TypeGrid, Name: "Grid 1", Visible: true},
			"config",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := tt.overlay.Validate()
			if tt.wantField == "" {
				if len(errs) != 0 {
					t.Fatalf("expected no errors, got %v", errs)
				}
				return
			}
			for _, fe := range errs {
				if fe.Field == tt.wantField {
					return
				}
			}
			t.Errorf("expected error on %s, got %v", tt.wantField, errs)
		})
	}
}
