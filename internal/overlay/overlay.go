package overlay

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Overlay is a named, reusable region definition that screenshots bind
// to by id. Exactly one of Grid or OCR is set, matching Type; the pair
// marshals to a single polymorphic "config" object on the wire.
type Overlay struct {
	ID      string
	Type    Type
	Name    string
	Grid    *GridConfig
	OCR     *OCRConfig
	Locked  bool
	Visible bool
}

// NewGrid builds a visible, unlocked grid overlay.
func NewGrid(id, name string, cfg GridConfig) *Overlay {
	return &Overlay{ID: id, Type: TypeGrid, Name: name, Grid: &cfg, Visible: true}
}

// NewOCR builds a visible, unlocked OCR overlay.
func NewOCR(id, name string, cfg OCRConfig) *Overlay {
	return &Overlay{ID: id, Type: TypeOCR, Name: name, OCR: &cfg, Visible: true}
}

type overlayWire struct {
	ID      string          `json:"id"`
	Type    Type            `json:"type"`
	Name    string          `json:"name"`
	Config  json.RawMessage `json:"config"`
	Locked  bool            `json:"locked"`
	Visible bool            `json:"visible"`
}

// MarshalJSON emits the on-disk form with the type-specific config
// under the "config" key.
func (o *Overlay) MarshalJSON() ([]byte, error) {
	var cfg any
	switch o.Type {
	case TypeGrid:
		if o.Grid == nil {
			return nil, fmt.Errorf("grid overlay %q has no grid config", o.ID)
		}
		cfg = o.Grid
	case TypeOCR:
		if o.OCR == nil {
			return nil, fmt.Errorf("ocr overlay %q has no ocr config", o.ID)
		}
		cfg = o.OCR
	default:
		return nil, fmt.Errorf("overlay %q has unknown type %q", o.ID, o.Type)
	}

	raw, err := json.Marshal(cfg)
	if err != nil {
		return nil, err
	}
	return json.Marshal(overlayWire{
		ID:      o.ID,
		Type:    o.Type,
		Name:    o.Name,
		Config:  raw,
		Locked:  o.Locked,
		Visible: o.Visible,
	})
}

// UnmarshalJSON decodes the on-disk form. The config object is decoded
// strictly against the variant named by "type", so a grid overlay
// carrying an OCR-shaped config (or vice versa) fails here rather than
// surviving until use.
func (o *Overlay) UnmarshalJSON(data []byte) error {
	var w overlayWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	o.ID = w.ID
	o.Name = w.Name
	o.Type = w.Type
	o.Locked = w.Locked
	o.Visible = w.Visible
	o.Grid = nil
	o.OCR = nil

	if len(w.Config) == 0 {
		return fmt.Errorf("overlay %q has no config", w.ID)
	}

	switch w.Type {
	case TypeGrid:
		var cfg GridConfig
		if err := strictUnmarshal(w.Config, &cfg); err != nil {
			return fmt.Errorf("overlay %q: config does not match type grid: %w", w.ID, err)
		}
		o.Grid = &cfg
	case TypeOCR:
		var cfg OCRConfig
		if err := strictUnmarshal(w.Config, &cfg); err != nil {
			return fmt.Errorf("overlay %q: config does not match type ocr: %w", w.ID, err)
		}
		o.OCR = &cfg
	default:
		return fmt.Errorf("overlay %q has unknown type %q", w.ID, w.Type)
	}
	return nil
}

func strictUnmarshal(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// Validate checks the overlay's own fields plus its config and returns
// all violations. The returned field paths are relative to the overlay.
func (o *Overlay) Validate() []FieldError {
	var errs []FieldError
	if o.ID == "" {
		errs = append(errs, FieldError{"id", "must not be empty"})
	} else if !validIdentifier(o.ID) {
		errs = append(errs, FieldError{"id",
			fmt.Sprintf("%q contains invalid characters (only alphanumeric, _, - allowed)", o.ID)})
	}
	if o.Name == "" {
		errs = append(errs, FieldError{"name", "must not be empty"})
	}

	switch o.Type {
	case TypeGrid:
		if o.Grid == nil {
			errs = append(errs, FieldError{"config", "grid overlay must carry a grid config"})
			break
		}
		for _, fe := range o.Grid.Validate() {
			errs = append(errs, FieldError{"config." + fe.Field, fe.Reason})
		}
	case TypeOCR:
		if o.OCR == nil {
			errs = append(errs, FieldError{"config", "ocr overlay must carry an ocr config"})
			break
		}
		for _, fe := range o.OCR.Validate() {
			errs = append(errs, FieldError{"config." + fe.Field, fe.Reason})
		}
	default:
		errs = append(errs, FieldError{"type", fmt.Sprintf("unknown overlay type %q", o.Type)})
	}
	return errs
}

func validIdentifier(s string) bool {
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		case r == '_' || r == '-':
		default:
			return false
		}
	}
	return s != ""
}
