package workspace

import (
	"fmt"
	"sort"
	"time"

	"github.com/ironsheep/icon-cropper-mcp/internal/overlay"
)

// Validate checks a document in four ordered steps and returns the
// first category of failure it hits:
//
//  1. per-entity field checks (workspace fields, every overlay and its
//     config, every screenshot) — all problems in this step are
//     collected into one ValidationError;
//  2. every overlay binding resolves to a defined overlay
//     (*ReferentialError);
//  3. selected_screenshot, when set, resolves to a screenshot entry
//     (*ReferentialError);
//  4. every overlay map key equals the overlay's own id
//     (*ValidationError).
//
// The schema version gate runs before everything: a document with any
// other version is rejected as *SchemaVersionError without further
// inspection. Validation never mutates the document, so validating the
// same document twice gives the same answer.
func Validate(d *Document) error {
	if d.SchemaVersion != SchemaVersion {
		return &SchemaVersionError{Got: d.SchemaVersion}
	}

	if errs := fieldChecks(d); len(errs) > 0 {
		return &ValidationError{Workspace: d.WorkspaceName, Errors: errs}
	}

	overlayIDs := make([]string, 0, len(d.Overlays))
	for id := range d.Overlays {
		overlayIDs = append(overlayIDs, id)
	}
	sort.Strings(overlayIDs)

	for _, s := range d.Screenshots {
		for _, id := range s.OverlayBindings {
			if _, ok := d.Overlays[id]; !ok {
				return &ReferentialError{
					Referrer:  fmt.Sprintf("screenshot %q", s.Filename),
					Missing:   id,
					Available: overlayIDs,
				}
			}
		}
	}

	if sel := d.Selected(); sel != "" {
		if _, ok := d.Screenshot(sel); !ok {
			names := make([]string, 0, len(d.Screenshots))
			for _, s := range d.Screenshots {
				names = append(names, s.Filename)
			}
			sort.Strings(names)
			return &ReferentialError{
				Referrer:  "selected_screenshot",
				Missing:   sel,
				Available: names,
			}
		}
	}

	for key, o := range d.Overlays {
		if key != o.ID {
			return &ValidationError{
				Workspace: d.WorkspaceName,
				Errors: []FieldError{{
					Field:  "overlays." + key,
					Reason: fmt.Sprintf("map key does not match overlay id %q", o.ID),
				}},
			}
		}
	}

	return nil
}

// ValidateForSave runs Validate and then the save-only geometry check:
// any overlay bound to a screenshot must fit inside that screenshot's
// recorded resolution. Grids are measured over their full extent, OCR
// regions over their rectangle.
func ValidateForSave(d *Document) error {
	if err := Validate(d); err != nil {
		return err
	}

	for _, s := range d.Screenshots {
		for _, id := range s.OverlayBindings {
			o := d.Overlays[id]
			if err := checkBounds(s, o); err != nil {
				return err
			}
		}
	}
	return nil
}

func checkBounds(s *Screenshot, o *overlay.Overlay) error {
	var right, bottom int
	switch o.Type {
	case overlay.TypeGrid:
		w, h := o.Grid.Extent()
		right = o.Grid.StartX + w
		bottom = o.Grid.StartY + h
	case overlay.TypeOCR:
		if !o.OCR.Placed() {
			return nil
		}
		right = o.OCR.X + o.OCR.Width
		bottom = o.OCR.Y + o.OCR.Height
	default:
		return nil
	}

	if right > s.Width() {
		return &BoundsError{Screenshot: s.Filename, OverlayID: o.ID, Axis: "width", Extent: right, Limit: s.Width()}
	}
	if bottom > s.Height() {
		return &BoundsError{Screenshot: s.Filename, OverlayID: o.ID, Axis: "height", Extent: bottom, Limit: s.Height()}
	}
	return nil
}

func fieldChecks(d *Document) []FieldError {
	var errs []FieldError

	if d.WorkspaceName == "" {
		errs = append(errs, FieldError{Field: "workspace_name", Reason: "must not be empty"})
	}
	if !validTimestamp(d.CreatedAt) {
		errs = append(errs, FieldError{Field: "created_at", Reason: fmt.Sprintf("%q is not an ISO-8601 timestamp", d.CreatedAt)})
	}

	ids := make([]string, 0, len(d.Overlays))
	for id := range d.Overlays {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		for _, fe := range d.Overlays[id].Validate() {
			errs = append(errs, FieldError{
				Field:  fmt.Sprintf("overlays.%s.%s", id, fe.Field),
				Reason: fe.Reason,
			})
		}
	}

	for i, s := range d.Screenshots {
		prefix := fmt.Sprintf("screenshots[%d]", i)
		errs = append(errs, screenshotChecks(prefix, s)...)
	}
	return errs
}

func screenshotChecks(prefix string, s *Screenshot) []FieldError {
	var errs []FieldError
	switch {
	case s.Filename == "":
		errs = append(errs, FieldError{Field: prefix + ".filename", Reason: "must not be empty"})
	case !hasSuffixPNG(s.Filename):
		errs = append(errs, FieldError{Field: prefix + ".filename", Reason: fmt.Sprintf("%q must end with .png", s.Filename)})
	case containsSeparator(s.Filename):
		errs = append(errs, FieldError{Field: prefix + ".filename", Reason: fmt.Sprintf("%q must not contain path separators", s.Filename)})
	}
	if !validTimestamp(s.CapturedAt) {
		errs = append(errs, FieldError{Field: prefix + ".captured_at", Reason: fmt.Sprintf("%q is not an ISO-8601 timestamp", s.CapturedAt)})
	}
	if s.Resolution[0] <= 0 || s.Resolution[1] <= 0 {
		errs = append(errs, FieldError{Field: prefix + ".resolution", Reason: fmt.Sprintf("dimensions must be positive, got %v", s.Resolution)})
	}
	return errs
}

func hasSuffixPNG(name string) bool {
	return len(name) > 4 && name[len(name)-4:] == ".png"
}

func containsSeparator(name string) bool {
	for _, r := range name {
		if r == '/' || r == '\\' {
			return true
		}
	}
	return false
}

// validTimestamp accepts ISO-8601 with or without a zone or fractional
// seconds, matching what earlier versions of this tool wrote.
func validTimestamp(ts string) bool {
	layouts := []string{
		timestampLayout,
		"2006-01-02T15:04:05.999999999",
		time.RFC3339,
		time.RFC3339Nano,
	}
	for _, l := range layouts {
		if _, err := time.Parse(l, ts); err == nil {
			return true
		}
	}
	return false
}
