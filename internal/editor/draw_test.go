package editor

import (
	"testing"

	"github.com/ironsheep/icon-cropper-mcp/internal/geometry"
	"github.com/ironsheep/icon-cropper-mcp/internal/overlay"
)

func TestGridDraw_FullGesture(t *testing.T) {
	d := NewGridDraw()
	if d.Step() != GridStepSetStart {
		t.Fatalf("initial step: %s", d.Step())
	}

	if err := d.PointerDown(geometry.Point{X: 100, Y: 200}); err != nil {
		t.Fatalf("PointerDown: %v", err)
	}
	if d.Step() != GridStepSetCell {
		t.Fatalf("after down: %s", d.Step())
	}

	d.PointerMove(geometry.Point{X: 150, Y: 250})
	if got := d.Preview(); got != (geometry.Rect{X: 100, Y: 200, Width: 50, Height: 50}) {
		t.Errorf("preview: %v", got)
	}

	if err := d.PointerUp(geometry.Point{X: 180, Y: 260}); err != nil {
		t.Fatalf("PointerUp: %v", err)
	}
	if d.Step() != GridStepAdjust {
		t.Fatalf("after up: %s", d.Step())
	}

	cfg, err := d.Config()
	if err != nil {
		t.Fatalf("Config: %v", err)
	}
	if cfg.StartX != 100 || cfg.StartY != 200 {
		t.Errorf("start: (%d,%d)", cfg.StartX, cfg.StartY)
	}
	if cfg.CellWidth != 80 || cfg.CellHeight != 60 {
		t.Errorf("cell: %dx%d, want 80x60", cfg.CellWidth, cfg.CellHeight)
	}
	// Defaults survive the gesture untouched.
	if cfg.Columns != 5 || cfg.Rows != 4 || cfg.CropPadding != 2 {
		t.Errorf("defaults: %+v", cfg)
	}
}

func TestGridDraw_DragUpLeft_KeepsClickAsStart(t *testing.T) {
	d := NewGridDraw()
	d.PointerDown(geometry.Point{X: 100, Y: 100})
	d.PointerUp(geometry.Point{X: 60, Y: 70})

	cfg, _ := d.Config()
	if cfg.StartX != 100 || cfg.StartY != 100 {
		t.Errorf("start moved: (%d,%d)", cfg.StartX, cfg.StartY)
	}
	if cfg.CellWidth != 40 || cfg.CellHeight != 30 {
		t.Errorf("cell: %dx%d", cfg.CellWidth, cfg.CellHeight)
	}
}

func TestGridDraw_ClickWithoutDrag_YieldsMinimumCell(t *testing.T) {
	d := NewGridDraw()
	d.PointerDown(geometry.Point{X: 10, Y: 10})
	d.PointerUp(geometry.Point{X: 10, Y: 10})

	cfg, _ := d.Config()
	if cfg.CellWidth != 1 || cfg.CellHeight != 1 {
		t.Errorf("cell: %dx%d, want 1x1", cfg.CellWidth, cfg.CellHeight)
	}
}

func TestGridDraw_OutOfOrderEvents(t *testing.T) {
	d := NewGridDraw()
	if err := d.PointerUp(geometry.Point{}); err == nil {
		t.Error("PointerUp before PointerDown should fail")
	}

	d.PointerDown(geometry.Point{X: 1, Y: 1})
	if err := d.PointerDown(geometry.Point{X: 2, Y: 2}); err == nil {
		t.Error("second PointerDown should fail")
	}
	if _, err := d.Config(); err == nil {
		t.Error("Config before the gesture completes should fail")
	}
}

func TestOCRDraw_FullGesture(t *testing.T) {
	d := NewOCRDraw()
	if d.Step() != OCRStepDefine {
		t.Fatalf("initial step: %s", d.Step())
	}

	if err := d.PointerDown(geometry.Point{X: 300, Y: 100}); err != nil {
		t.Fatalf("PointerDown: %v", err)
	}
	// Drag up and to the left: the result is normalized.
	if err := d.PointerUp(geometry.Point{X: 100, Y: 50}); err != nil {
		t.Fatalf("PointerUp: %v", err)
	}
	if d.Step() != OCRStepAdjust {
		t.Fatalf("after up: %s", d.Step())
	}

	cfg, err := d.Config()
	if err != nil {
		t.Fatalf("Config: %v", err)
	}
	want := overlay.OCRConfig{X: 100, Y: 50, Width: 200, Height: 50}
	if cfg != want {
		t.Errorf("got %+v, want %+v", cfg, want)
	}
}

func TestOCRDraw_UpWithoutDown(t *testing.T) {
	d := NewOCRDraw()
	if err := d.PointerUp(geometry.Point{}); err == nil {
		t.Error("PointerUp without press should fail")
	}
}

func TestSession_Exclusivity(t *testing.T) {
	s := NewSession()
	if _, ok := s.Mode().(Idle); !ok {
		t.Fatalf("new session mode: %s", s.Mode().ModeName())
	}

	if _, err := s.BeginGridDraw(); err != nil {
		t.Fatalf("BeginGridDraw: %v", err)
	}
	if _, ok := s.Mode().(DrawingGrid); !ok {
		t.Fatalf("mode: %s", s.Mode().ModeName())
	}

	if _, err := s.BeginOCRDraw(); err == nil {
		t.Error("starting a second gesture should fail")
	}

	s.Finish()
	if _, ok := s.Mode().(Idle); !ok {
		t.Fatalf("after Finish: %s", s.Mode().ModeName())
	}
	if _, err := s.BeginOCRDraw(); err != nil {
		t.Errorf("BeginOCRDraw after Finish: %v", err)
	}

	// Cancel discards the gesture the same way.
	s.Cancel()
	if _, ok := s.Mode().(Idle); !ok {
		t.Fatalf("after Cancel: %s", s.Mode().ModeName())
	}
}

func TestSession_BeginResize_Grid(t *testing.T) {
	s := NewSession()
	o := overlay.NewGrid("grid_1", "Grid 1", overlay.GridConfig{
		StartX: 50, StartY: 40, CellWidth: 100, CellHeight: 100,
		Columns: 5, Rows: 4, CropPadding: 2,
	})

	op, err := s.BeginResize(o, HandleBottomRight, ModNone, geometry.Point{X: 150, Y: 140})
	if err != nil {
		t.Fatalf("BeginResize: %v", err)
	}

	got := op.Drag(geometry.Point{X: 170, Y: 130}) // delta (+20, -10)
	want := geometry.Rect{X: 50, Y: 40, Width: 120, Height: 90}
	if got != want {
		t.Errorf("drag result: %v, want %v", got, want)
	}

	if err := ApplyResize(o, op.Result()); err != nil {
		t.Fatalf("ApplyResize: %v", err)
	}
	if o.Grid.CellWidth != 120 || o.Grid.CellHeight != 90 {
		t.Errorf("config after apply: %+v", *o.Grid)
	}
	s.Finish()
}

func TestSession_BeginResize_OCRMinimum(t *testing.T) {
	s := NewSession()
	o := overlay.NewOCR("ocr_1", "OCR Region 1", overlay.OCRConfig{X: 10, Y: 10, Width: 50, Height: 50})

	op, err := s.BeginResize(o, HandleBottomRight, ModNone, geometry.Point{X: 60, Y: 60})
	if err != nil {
		t.Fatalf("BeginResize: %v", err)
	}

	got := op.Drag(geometry.Point{X: 0, Y: 0}) // collapse past the minimum
	if got.Width != overlay.MinOCRSize || got.Height != overlay.MinOCRSize {
		t.Errorf("got %dx%d, want %dx%d", got.Width, got.Height, overlay.MinOCRSize, overlay.MinOCRSize)
	}
}

func TestSession_BeginResize_LockedOverlay(t *testing.T) {
	s := NewSession()
	o := overlay.NewGrid("grid_1", "Grid 1", overlay.GridConfig{CellWidth: 10, CellHeight: 10, Columns: 1, Rows: 1})
	o.Locked = true

	if _, err := s.BeginResize(o, HandleRight, ModNone, geometry.Point{}); err == nil {
		t.Fatal("resizing a locked overlay should fail")
	}
	if _, ok := s.Mode().(Idle); !ok {
		t.Error("failed begin must leave the session idle")
	}
}
