package workspace

import (
	"time"

	"github.com/ironsheep/icon-cropper-mcp/internal/overlay"
)

// SchemaVersion is the only workspace.json schema this tool reads or
// writes. Files carrying any other version are rejected outright; there
// is no migration path.
const SchemaVersion = 2

// Screenshot records one imported screenshot file and the overlay ids
// bound to it. The file itself lives under the workspace's screenshots
// directory; Filename is its bare name, never a path.
type Screenshot struct {
	Filename        string   `json:"filename"`
	CapturedAt      string   `json:"captured_at"`
	Resolution      [2]int   `json:"resolution"`
	Notes           string   `json:"notes"`
	OverlayBindings []string `json:"overlay_bindings"`
}

// Width returns the recorded horizontal resolution.
func (s *Screenshot) Width() int { return s.Resolution[0] }

// Height returns the recorded vertical resolution.
func (s *Screenshot) Height() int { return s.Resolution[1] }

// Document is the root of workspace.json: workspace-level overlay
// definitions plus per-screenshot bindings referencing them by id.
type Document struct {
	WorkspaceName      string                      `json:"workspace_name"`
	SchemaVersion      int                         `json:"schema_version"`
	CreatedAt          string                      `json:"created_at"`
	SelectedScreenshot *string                     `json:"selected_screenshot"`
	Overlays           map[string]*overlay.Overlay `json:"overlays"`
	Screenshots        []*Screenshot               `json:"screenshots"`
}

// NewDocument returns an empty, valid workspace document.
func NewDocument(name string, now time.Time) *Document {
	return &Document{
		WorkspaceName: name,
		SchemaVersion: SchemaVersion,
		CreatedAt:     now.Format(timestampLayout),
		Overlays:      make(map[string]*overlay.Overlay),
		Screenshots:   make([]*Screenshot, 0),
	}
}

// timestampLayout is ISO-8601 without a zone, matching the stored form
// of captured_at and created_at.
const timestampLayout = "2006-01-02T15:04:05"

// Screenshot returns the entry with the given filename.
func (d *Document) Screenshot(filename string) (*Screenshot, bool) {
	for _, s := range d.Screenshots {
		if s.Filename == filename {
			return s, true
		}
	}
	return nil, false
}

// Manager returns an overlay manager over this document's overlay map.
// Changes made through the manager are visible in the document.
func (d *Document) Manager() *overlay.Manager {
	if d.Overlays == nil {
		d.Overlays = make(map[string]*overlay.Overlay)
	}
	return overlay.ManagerFromMap(d.Overlays)
}

// Select marks a screenshot as selected. An empty filename clears the
// selection.
func (d *Document) Select(filename string) {
	if filename == "" {
		d.SelectedScreenshot = nil
		return
	}
	d.SelectedScreenshot = &filename
}

// Selected returns the selected screenshot filename, or "" when none.
func (d *Document) Selected() string {
	if d.SelectedScreenshot == nil {
		return ""
	}
	return *d.SelectedScreenshot
}
