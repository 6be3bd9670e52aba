package workspace

import (
	"fmt"
	"strings"

	"github.com/ironsheep/icon-cropper-mcp/internal/overlay"
)

// FieldError pairs a field path with the reason it is invalid. Paths
// are JSON-ish: "overlays.grid_1.config.cell_width",
// "screenshots[0].filename".
type FieldError = overlay.FieldError

// ValidationError aggregates every field-level problem found in a
// document. It is returned before any write happens, so an invalid
// document never reaches disk.
type ValidationError struct {
	Workspace string
	Errors    []FieldError
}

func (e *ValidationError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "workspace %q failed validation:", e.Workspace)
	for _, fe := range e.Errors {
		fmt.Fprintf(&b, "\n  %s: %s", fe.Field, fe.Reason)
	}
	return b.String()
}

// SchemaVersionError reports a workspace.json carrying a schema version
// this tool does not handle. Nothing else in the file is inspected.
type SchemaVersionError struct {
	Got int
}

func (e *SchemaVersionError) Error() string {
	return fmt.Sprintf("unsupported schema version %d (this tool reads version %d only)", e.Got, SchemaVersion)
}

// ReferentialError reports a reference that does not resolve: an
// overlay binding naming a missing overlay id, or a selected screenshot
// naming a missing file. Available lists what could have been
// referenced, sorted, so the failure is actionable.
type ReferentialError struct {
	Referrer  string
	Missing   string
	Available []string
}

func (e *ReferentialError) Error() string {
	return fmt.Sprintf("%s references non-existent %q (available: %s)",
		e.Referrer, e.Missing, strings.Join(e.Available, ", "))
}

// BoundsError reports overlay geometry that extends past the resolution
// of a screenshot it is bound to. It is raised at save time only;
// interactive extraction clips to the image instead.
type BoundsError struct {
	Screenshot string
	OverlayID  string
	Axis       string
	Extent     int
	Limit      int
}

func (e *BoundsError) Error() string {
	return fmt.Sprintf("overlay %q extends beyond %s of screenshot %q (%d > %d)",
		e.OverlayID, e.Axis, e.Screenshot, e.Extent, e.Limit)
}
