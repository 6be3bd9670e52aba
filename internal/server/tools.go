package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// Common schema fragments shared across tool definitions.
func workspaceProp() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Workspace name",
	}
}

func viewportProp() map[string]interface{} {
	return map[string]interface{}{
		"type":        "object",
		"description": "Display-to-image mapping. Omit for identity (zoom 1.0, no pan or scroll).",
		"properties": map[string]interface{}{
			"zoom":     map[string]interface{}{"type": "number", "description": "Zoom factor, > 0"},
			"pan_x":    map[string]interface{}{"type": "number"},
			"pan_y":    map[string]interface{}{"type": "number"},
			"scroll_x": map[string]interface{}{"type": "number"},
			"scroll_y": map[string]interface{}{"type": "number"},
		},
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Workspace lifecycle
		{
			Name:        "workspace_create",
			Description: "Create a workspace (or open it if it already exists). A workspace holds screenshots, overlays, and crop output for one page of the source application.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"name": map[string]interface{}{
						"type":        "string",
						"description": "Workspace name. Used as a directory name, so no path separators.",
					},
				},
				"required": []string{"name"},
			},
		},
		{
			Name:        "workspace_list",
			Description: "List the names of all workspaces under the configured root.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
			},
		},
		{
			Name:        "workspace_validate",
			Description: "Load a workspace and run full validation: field checks, referential integrity, selected-screenshot existence, and schema version.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"workspace": workspaceProp(),
				},
				"required": []string{"workspace"},
			},
		},

		// Screenshot lifecycle
		{
			Name:        "screenshot_import",
			Description: "Copy a PNG file into a workspace as the next numbered screenshot (001.png, 002.png, ...) and select it.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"workspace": workspaceProp(),
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the PNG file to import",
					},
				},
				"required": []string{"workspace", "path"},
			},
		},
		{
			Name:        "screenshot_delete",
			Description: "Delete a screenshot from a workspace. If it was selected, selection falls back to the last remaining screenshot.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"workspace": workspaceProp(),
					"filename": map[string]interface{}{
						"type":        "string",
						"description": "Screenshot filename within the workspace, e.g. 001.png",
					},
				},
				"required": []string{"workspace", "filename"},
			},
		},
		{
			Name:        "screenshot_select",
			Description: "Set the workspace's selected screenshot.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"workspace": workspaceProp(),
					"filename": map[string]interface{}{
						"type":        "string",
						"description": "Screenshot filename to select",
					},
				},
				"required": []string{"workspace", "filename"},
			},
		},

		// Overlay editing
		{
			Name:        "overlay_draw_grid",
			Description: "Create a grid overlay from a press-drag-release gesture. The press point becomes the grid origin; the drag span sizes the first cell. Coordinates are display pixels mapped through the viewport.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"workspace": workspaceProp(),
					"press_x":   map[string]interface{}{"type": "number", "description": "Pointer-down X in display pixels"},
					"press_y":   map[string]interface{}{"type": "number", "description": "Pointer-down Y in display pixels"},
					"release_x": map[string]interface{}{"type": "number", "description": "Pointer-up X in display pixels"},
					"release_y": map[string]interface{}{"type": "number", "description": "Pointer-up Y in display pixels"},
					"viewport":  viewportProp(),
				},
				"required": []string{"workspace", "press_x", "press_y", "release_x", "release_y"},
			},
		},
		{
			Name:        "overlay_draw_ocr",
			Description: "Create an OCR region overlay from a press-drag-release gesture. The dragged span becomes the region; it is normalized so the stored origin is the top-left corner.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"workspace": workspaceProp(),
					"press_x":   map[string]interface{}{"type": "number"},
					"press_y":   map[string]interface{}{"type": "number"},
					"release_x": map[string]interface{}{"type": "number"},
					"release_y": map[string]interface{}{"type": "number"},
					"viewport":  viewportProp(),
				},
				"required": []string{"workspace", "press_x", "press_y", "release_x", "release_y"},
			},
		},
		{
			Name:        "overlay_resize",
			Description: "Resize an overlay by dragging one of its eight handles. For grids this resizes the first cell; for OCR overlays the region (minimum 10px per side). Ctrl keeps the center fixed; Shift on a corner preserves aspect ratio.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"workspace":  workspaceProp(),
					"overlay_id": map[string]interface{}{"type": "string"},
					"handle": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"corner_tl", "corner_tr", "corner_bl", "corner_br", "edge_left", "edge_right", "edge_top", "edge_bottom"},
						"description": "Which handle was grabbed",
					},
					"modifier": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"none", "shift", "ctrl"},
						"description": "Modifier key held during the drag. Default none.",
					},
					"dx":       map[string]interface{}{"type": "number", "description": "Drag delta X in display pixels"},
					"dy":       map[string]interface{}{"type": "number", "description": "Drag delta Y in display pixels"},
					"viewport": viewportProp(),
				},
				"required": []string{"workspace", "overlay_id", "handle", "dx", "dy"},
			},
		},
		{
			Name:        "overlay_delete",
			Description: "Delete an overlay and remove its bindings. Locked overlays cannot be deleted; unlock first.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"workspace":  workspaceProp(),
					"overlay_id": map[string]interface{}{"type": "string"},
				},
				"required": []string{"workspace", "overlay_id"},
			},
		},
		{
			Name:        "overlay_toggle_lock",
			Description: "Toggle an overlay's locked flag and return the new state.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"workspace":  workspaceProp(),
					"overlay_id": map[string]interface{}{"type": "string"},
				},
				"required": []string{"workspace", "overlay_id"},
			},
		},
		{
			Name:        "overlay_toggle_visibility",
			Description: "Toggle an overlay's visible flag and return the new state.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"workspace":  workspaceProp(),
					"overlay_id": map[string]interface{}{"type": "string"},
				},
				"required": []string{"workspace", "overlay_id"},
			},
		},
		{
			Name:        "overlay_list",
			Description: "List all overlays in a workspace, sorted by id.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"workspace": workspaceProp(),
				},
				"required": []string{"workspace"},
			},
		},

		// Bindings
		{
			Name:        "bindings_set",
			Description: "Replace the overlay bindings of a screenshot. Every id must name an existing overlay.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"workspace": workspaceProp(),
					"filename":  map[string]interface{}{"type": "string"},
					"overlay_ids": map[string]interface{}{
						"type":        "array",
						"items":       map[string]interface{}{"type": "string"},
						"description": "Overlay ids to bind. An empty array clears all bindings.",
					},
				},
				"required": []string{"workspace", "filename", "overlay_ids"},
			},
		},

		// Cropping
		{
			Name:        "crop_preview",
			Description: "Extract the cells of one grid overlay from one screenshot without writing files. Returns each cell as base64 PNG plus per-cell statistics (mean color, uniformity, blank detection).",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"workspace":  workspaceProp(),
					"overlay_id": map[string]interface{}{"type": "string", "description": "Grid overlay to preview"},
					"filename": map[string]interface{}{
						"type":        "string",
						"description": "Screenshot filename. Defaults to the selected screenshot.",
					},
				},
				"required": []string{"workspace", "overlay_id"},
			},
		},
		{
			Name:        "crop_stats",
			Description: "Dry-run statistics for a batch crop: how many icons each (screenshot, grid overlay) pair would produce. Nothing is read from or written to disk.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"workspace": workspaceProp(),
				},
				"required": []string{"workspace"},
			},
		},
		{
			Name:        "batch_crop",
			Description: "Extract every bound (screenshot, grid overlay) pair to numbered PNG files under the workspace's cropped/ directory. Unusable pairs are skipped and reported, never fatal.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"workspace": workspaceProp(),
				},
				"required": []string{"workspace"},
			},
		},

		// Page detection
		{
			Name:        "page_detect",
			Description: "OCR the area of an OCR overlay on a screenshot and match the text against the configured page types. Requires Tesseract to be installed.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"workspace":  workspaceProp(),
					"overlay_id": map[string]interface{}{"type": "string", "description": "OCR overlay whose region to read"},
					"filename": map[string]interface{}{
						"type":        "string",
						"description": "Screenshot filename. Defaults to the selected screenshot.",
					},
				},
				"required": []string{"workspace", "overlay_id"},
			},
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
