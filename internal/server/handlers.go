package server

import (
	"encoding/json"
	"fmt"

	"github.com/ironsheep/icon-cropper-mcp/internal/crop"
	"github.com/ironsheep/icon-cropper-mcp/internal/editor"
	"github.com/ironsheep/icon-cropper-mcp/internal/geometry"
	"github.com/ironsheep/icon-cropper-mcp/internal/imaging"
	"github.com/ironsheep/icon-cropper-mcp/internal/overlay"
	"github.com/ironsheep/icon-cropper-mcp/internal/workspace"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "workspace_create", "batch_crop").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
//
// Each tool handler:
//  1. Unmarshals arguments from JSON
//  2. Loads the workspace document from disk
//  3. Runs the operation through the core packages
//  4. Saves the document when the operation mutated it
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Workspace lifecycle
	case "workspace_create":
		return s.handleWorkspaceCreate(args)
	case "workspace_list":
		return s.handleWorkspaceList(args)
	case "workspace_validate":
		return s.handleWorkspaceValidate(args)

	// Screenshot lifecycle
	case "screenshot_import":
		return s.handleScreenshotImport(args)
	case "screenshot_delete":
		return s.handleScreenshotDelete(args)
	case "screenshot_select":
		return s.handleScreenshotSelect(args)

	// Overlay editing
	case "overlay_draw_grid":
		return s.handleOverlayDrawGrid(args)
	case "overlay_draw_ocr":
		return s.handleOverlayDrawOCR(args)
	case "overlay_resize":
		return s.handleOverlayResize(args)
	case "overlay_delete":
		return s.handleOverlayDelete(args)
	case "overlay_toggle_lock":
		return s.handleOverlayToggleLock(args)
	case "overlay_toggle_visibility":
		return s.handleOverlayToggleVisibility(args)
	case "overlay_list":
		return s.handleOverlayList(args)

	// Bindings
	case "bindings_set":
		return s.handleBindingsSet(args)

	// Cropping
	case "crop_preview":
		return s.handleCropPreview(args)
	case "crop_stats":
		return s.handleCropStats(args)
	case "batch_crop":
		return s.handleBatchCrop(args)

	// Page detection
	case "page_detect":
		return s.handlePageDetect(args)

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// Panics are suppressed; on marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// viewportArgs carries the display-to-image mapping for tools that take
// pointer coordinates. A nil or zero-zoom viewport means identity.
type viewportArgs struct {
	Zoom    float64 `json:"zoom"`
	PanX    float64 `json:"pan_x"`
	PanY    float64 `json:"pan_y"`
	ScrollX float64 `json:"scroll_x"`
	ScrollY float64 `json:"scroll_y"`
}

func (v *viewportArgs) viewport() geometry.Viewport {
	if v == nil || v.Zoom == 0 {
		return geometry.DefaultViewport()
	}
	return geometry.Viewport{
		Zoom:    v.Zoom,
		PanX:    v.PanX,
		PanY:    v.PanY,
		ScrollX: v.ScrollX,
		ScrollY: v.ScrollY,
	}
}

// screenshotFor resolves an explicit filename or falls back to the
// workspace's selected screenshot.
func screenshotFor(doc *workspace.Document, filename string) (*workspace.Screenshot, error) {
	if filename == "" {
		filename = doc.Selected()
	}
	if filename == "" {
		return nil, fmt.Errorf("no screenshot selected and none named")
	}
	shot, ok := doc.Screenshot(filename)
	if !ok {
		return nil, fmt.Errorf("screenshot %q not found in workspace", filename)
	}
	return shot, nil
}

// overlaySummary is the wire shape tools use when reporting an overlay.
type overlaySummary struct {
	ID      string              `json:"id"`
	Type    overlay.Type        `json:"type"`
	Name    string              `json:"name"`
	Grid    *overlay.GridConfig `json:"grid,omitempty"`
	OCR     *overlay.OCRConfig  `json:"ocr,omitempty"`
	Locked  bool                `json:"locked"`
	Visible bool                `json:"visible"`
}

func summarize(o *overlay.Overlay) overlaySummary {
	return overlaySummary{
		ID:      o.ID,
		Type:    o.Type,
		Name:    o.Name,
		Grid:    o.Grid,
		OCR:     o.OCR,
		Locked:  o.Locked,
		Visible: o.Visible,
	}
}

// === Workspace Handlers ===

type workspaceCreateArgs struct {
	Name string `json:"name"`
}

func (s *Server) handleWorkspaceCreate(args json.RawMessage) (interface{}, error) {
	var a workspaceCreateArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	doc, err := s.store.Create(a.Name)
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{
		"workspace_name": doc.WorkspaceName,
		"schema_version": doc.SchemaVersion,
		"created_at":     doc.CreatedAt,
		"path":           s.store.Dir(a.Name),
	}, nil
}

func (s *Server) handleWorkspaceList(args json.RawMessage) (interface{}, error) {
	names, err := s.store.List()
	if err != nil {
		return nil, err
	}
	if names == nil {
		names = []string{}
	}
	return map[string]interface{}{
		"workspaces": names,
		"count":      len(names),
	}, nil
}

type workspaceArgs struct {
	Workspace string `json:"workspace"`
}

func (s *Server) handleWorkspaceValidate(args json.RawMessage) (interface{}, error) {
	var a workspaceArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if !s.store.Exists(a.Workspace) {
		return nil, fmt.Errorf("workspace %q does not exist", a.Workspace)
	}
	doc, err := s.store.Load(a.Workspace)
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{
		"valid":       true,
		"overlays":    len(doc.Overlays),
		"screenshots": len(doc.Screenshots),
		"selected":    doc.Selected(),
	}, nil
}

// === Screenshot Handlers ===

type screenshotImportArgs struct {
	Workspace string `json:"workspace"`
	Path      string `json:"path"`
}

func (s *Server) handleScreenshotImport(args json.RawMessage) (interface{}, error) {
	var a screenshotImportArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	doc, filename, err := s.store.ImportScreenshot(a.Workspace, a.Path)
	if err != nil {
		return nil, err
	}
	shot, _ := doc.Screenshot(filename)
	return map[string]interface{}{
		"filename":   filename,
		"resolution": shot.Resolution,
		"selected":   doc.Selected(),
	}, nil
}

type screenshotArgs struct {
	Workspace string `json:"workspace"`
	Filename  string `json:"filename"`
}

func (s *Server) handleScreenshotDelete(args json.RawMessage) (interface{}, error) {
	var a screenshotArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	doc, err := s.store.DeleteScreenshot(a.Workspace, a.Filename)
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{
		"deleted":  a.Filename,
		"selected": doc.Selected(),
	}, nil
}

func (s *Server) handleScreenshotSelect(args json.RawMessage) (interface{}, error) {
	var a screenshotArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	doc, err := s.store.SetSelected(a.Workspace, a.Filename)
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{
		"selected": doc.Selected(),
	}, nil
}

// === Overlay Handlers ===

type overlayDrawArgs struct {
	Workspace string        `json:"workspace"`
	PressX    float64       `json:"press_x"`
	PressY    float64       `json:"press_y"`
	ReleaseX  float64       `json:"release_x"`
	ReleaseY  float64       `json:"release_y"`
	Viewport  *viewportArgs `json:"viewport,omitempty"`
}

func (s *Server) handleOverlayDrawGrid(args json.RawMessage) (interface{}, error) {
	var a overlayDrawArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	doc, err := s.store.Load(a.Workspace)
	if err != nil {
		return nil, err
	}

	vp := a.Viewport.viewport()
	press := vp.ToImage(geometry.DisplayPoint{X: a.PressX, Y: a.PressY})
	release := vp.ToImage(geometry.DisplayPoint{X: a.ReleaseX, Y: a.ReleaseY})

	session := editor.NewSession()
	draw, err := session.BeginGridDraw()
	if err != nil {
		return nil, err
	}
	if err := draw.PointerDown(press); err != nil {
		return nil, err
	}
	draw.PointerMove(release)
	if err := draw.PointerUp(release); err != nil {
		return nil, err
	}
	cfg, err := draw.Config()
	if err != nil {
		return nil, err
	}
	session.Finish()

	mgr := doc.Manager()
	o := overlay.NewGrid(mgr.GenerateID(overlay.TypeGrid), mgr.GenerateName(overlay.TypeGrid), cfg)
	if err := mgr.Add(o); err != nil {
		return nil, err
	}
	if err := s.store.Save(a.Workspace, doc); err != nil {
		return nil, err
	}
	return summarize(o), nil
}

func (s *Server) handleOverlayDrawOCR(args json.RawMessage) (interface{}, error) {
	var a overlayDrawArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	doc, err := s.store.Load(a.Workspace)
	if err != nil {
		return nil, err
	}

	vp := a.Viewport.viewport()
	press := vp.ToImage(geometry.DisplayPoint{X: a.PressX, Y: a.PressY})
	release := vp.ToImage(geometry.DisplayPoint{X: a.ReleaseX, Y: a.ReleaseY})

	session := editor.NewSession()
	draw, err := session.BeginOCRDraw()
	if err != nil {
		return nil, err
	}
	if err := draw.PointerDown(press); err != nil {
		return nil, err
	}
	draw.PointerMove(release)
	if err := draw.PointerUp(release); err != nil {
		return nil, err
	}
	cfg, err := draw.Config()
	if err != nil {
		return nil, err
	}
	session.Finish()

	mgr := doc.Manager()
	o := overlay.NewOCR(mgr.GenerateID(overlay.TypeOCR), mgr.GenerateName(overlay.TypeOCR), cfg)
	if err := mgr.Add(o); err != nil {
		return nil, err
	}
	if err := s.store.Save(a.Workspace, doc); err != nil {
		return nil, err
	}
	return summarize(o), nil
}

type overlayResizeArgs struct {
	Workspace string        `json:"workspace"`
	OverlayID string        `json:"overlay_id"`
	Handle    string        `json:"handle"`
	Modifier  string        `json:"modifier"`
	DX        float64       `json:"dx"`
	DY        float64       `json:"dy"`
	Viewport  *viewportArgs `json:"viewport,omitempty"`
}

func (s *Server) handleOverlayResize(args json.RawMessage) (interface{}, error) {
	var a overlayResizeArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	handle, err := editor.ParseHandle(a.Handle)
	if err != nil {
		return nil, err
	}
	mod, err := editor.ParseModifier(a.Modifier)
	if err != nil {
		return nil, err
	}

	doc, err := s.store.Load(a.Workspace)
	if err != nil {
		return nil, err
	}
	o, ok := doc.Manager().Get(a.OverlayID)
	if !ok {
		return nil, &overlay.NotFoundError{ID: a.OverlayID}
	}

	// Drag deltas arrive in display pixels; pan and scroll cancel out
	// of a delta, so only the zoom factor applies.
	vp := a.Viewport.viewport()
	dx := int(a.DX / vp.Zoom)
	dy := int(a.DY / vp.Zoom)

	session := editor.NewSession()
	op, err := session.BeginResize(o, handle, mod, geometry.Point{})
	if err != nil {
		return nil, err
	}
	rect := op.Drag(geometry.Point{X: dx, Y: dy})
	if err := editor.ApplyResize(o, rect); err != nil {
		return nil, err
	}
	session.Finish()

	if err := s.store.Save(a.Workspace, doc); err != nil {
		return nil, err
	}
	return summarize(o), nil
}

type overlayArgs struct {
	Workspace string `json:"workspace"`
	OverlayID string `json:"overlay_id"`
}

func (s *Server) handleOverlayDelete(args json.RawMessage) (interface{}, error) {
	var a overlayArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	doc, err := s.store.Load(a.Workspace)
	if err != nil {
		return nil, err
	}
	if err := doc.Manager().Remove(a.OverlayID); err != nil {
		return nil, err
	}

	// Drop bindings that pointed at the removed overlay so the
	// document still validates.
	for _, shot := range doc.Screenshots {
		kept := shot.OverlayBindings[:0]
		for _, id := range shot.OverlayBindings {
			if id != a.OverlayID {
				kept = append(kept, id)
			}
		}
		shot.OverlayBindings = kept
	}

	if err := s.store.Save(a.Workspace, doc); err != nil {
		return nil, err
	}
	return map[string]interface{}{
		"deleted": a.OverlayID,
	}, nil
}

func (s *Server) handleOverlayToggleLock(args json.RawMessage) (interface{}, error) {
	var a overlayArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	doc, err := s.store.Load(a.Workspace)
	if err != nil {
		return nil, err
	}
	locked, err := doc.Manager().ToggleLock(a.OverlayID)
	if err != nil {
		return nil, err
	}
	if err := s.store.Save(a.Workspace, doc); err != nil {
		return nil, err
	}
	return map[string]interface{}{
		"overlay_id": a.OverlayID,
		"locked":     locked,
	}, nil
}

func (s *Server) handleOverlayToggleVisibility(args json.RawMessage) (interface{}, error) {
	var a overlayArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	doc, err := s.store.Load(a.Workspace)
	if err != nil {
		return nil, err
	}
	visible, err := doc.Manager().ToggleVisibility(a.OverlayID)
	if err != nil {
		return nil, err
	}
	if err := s.store.Save(a.Workspace, doc); err != nil {
		return nil, err
	}
	return map[string]interface{}{
		"overlay_id": a.OverlayID,
		"visible":    visible,
	}, nil
}

func (s *Server) handleOverlayList(args json.RawMessage) (interface{}, error) {
	var a workspaceArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	doc, err := s.store.Load(a.Workspace)
	if err != nil {
		return nil, err
	}

	all := doc.Manager().All()
	summaries := make([]overlaySummary, len(all))
	for i, o := range all {
		summaries[i] = summarize(o)
	}
	return map[string]interface{}{
		"overlays": summaries,
		"count":    len(summaries),
	}, nil
}

// === Binding Handlers ===

type bindingsSetArgs struct {
	Workspace  string   `json:"workspace"`
	Filename   string   `json:"filename"`
	OverlayIDs []string `json:"overlay_ids"`
}

func (s *Server) handleBindingsSet(args json.RawMessage) (interface{}, error) {
	var a bindingsSetArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	doc, err := s.store.SetBindings(a.Workspace, a.Filename, a.OverlayIDs)
	if err != nil {
		return nil, err
	}
	shot, _ := doc.Screenshot(a.Filename)
	return map[string]interface{}{
		"filename": a.Filename,
		"bindings": shot.OverlayBindings,
	}, nil
}

// === Crop Handlers ===

type cropPreviewArgs struct {
	Workspace string `json:"workspace"`
	OverlayID string `json:"overlay_id"`
	Filename  string `json:"filename,omitempty"`
}

func (s *Server) handleCropPreview(args json.RawMessage) (interface{}, error) {
	var a cropPreviewArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	doc, err := s.store.Load(a.Workspace)
	if err != nil {
		return nil, err
	}
	shot, err := screenshotFor(doc, a.Filename)
	if err != nil {
		return nil, err
	}
	cfg, err := crop.GridFor(doc.Overlays, a.OverlayID, crop.AvailableOverlayIDs(doc))
	if err != nil {
		return nil, err
	}

	img, err := s.cache.Load(s.store.ScreenshotPath(a.Workspace, shot.Filename))
	if err != nil {
		return nil, err
	}

	cells := crop.Extract(img, cfg)
	images := make([]string, len(cells))
	stats := make([]crop.CellStat, len(cells))
	for i, cell := range cells {
		encoded, err := imaging.EncodePNGBase64(cell)
		if err != nil {
			return nil, err
		}
		images[i] = encoded
		stats[i] = crop.Analyze(i+1, cell)
	}

	return map[string]interface{}{
		"screenshot": shot.Filename,
		"overlay_id": a.OverlayID,
		"count":      len(cells),
		"cells":      stats,
		"images":     images,
	}, nil
}

func (s *Server) handleCropStats(args json.RawMessage) (interface{}, error) {
	var a workspaceArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	doc, err := s.store.Load(a.Workspace)
	if err != nil {
		return nil, err
	}
	return crop.BatchStats(doc), nil
}

func (s *Server) handleBatchCrop(args json.RawMessage) (interface{}, error) {
	var a workspaceArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	doc, err := s.store.Load(a.Workspace)
	if err != nil {
		return nil, err
	}
	return crop.BatchExtract(s.store, s.cache, doc)
}

// === Page Detection Handlers ===

type pageDetectArgs struct {
	Workspace string `json:"workspace"`
	OverlayID string `json:"overlay_id"`
	Filename  string `json:"filename,omitempty"`
}

func (s *Server) handlePageDetect(args json.RawMessage) (interface{}, error) {
	var a pageDetectArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	doc, err := s.store.Load(a.Workspace)
	if err != nil {
		return nil, err
	}
	shot, err := screenshotFor(doc, a.Filename)
	if err != nil {
		return nil, err
	}
	o, ok := doc.Manager().Get(a.OverlayID)
	if !ok {
		return nil, &overlay.NotFoundError{ID: a.OverlayID}
	}
	if o.Type != overlay.TypeOCR {
		return nil, fmt.Errorf("overlay %q is not an OCR region", a.OverlayID)
	}

	img, err := s.cache.Load(s.store.ScreenshotPath(a.Workspace, shot.Filename))
	if err != nil {
		return nil, err
	}
	return s.det.DetectPage(img, *o.OCR)
}
