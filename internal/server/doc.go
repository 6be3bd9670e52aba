// Package server implements the MCP (Model Context Protocol) server for
// the icon cropper.
//
// This package provides a JSON-RPC 2.0 server that exposes the workspace,
// overlay, and cropping operations through the MCP protocol, so any
// MCP-compatible client can drive icon extraction.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// Workspace lifecycle:
//   - workspace_create: Create or open a workspace
//   - workspace_list: List workspaces under the configured root
//   - workspace_validate: Load and fully validate a workspace
//
// Screenshot lifecycle:
//   - screenshot_import: Copy a PNG in as the next numbered screenshot
//   - screenshot_delete: Remove a screenshot, reselecting as needed
//   - screenshot_select: Change the selected screenshot
//
// Overlay editing:
//   - overlay_draw_grid: Create a grid overlay from a drag gesture
//   - overlay_draw_ocr: Create an OCR region overlay from a drag gesture
//   - overlay_resize: Drag one of the eight resize handles
//   - overlay_delete, overlay_toggle_lock, overlay_toggle_visibility
//   - overlay_list: Enumerate overlays
//
// Bindings and cropping:
//   - bindings_set: Bind overlays to a screenshot
//   - crop_preview: Extract one pair in memory, returned as base64 PNGs
//   - crop_stats: Dry-run batch statistics
//   - batch_crop: Write every bound pair to numbered files
//
// Page detection:
//   - page_detect: OCR an overlay region and match it to a page type
//
// # State
//
// Tools are stateless between calls: each call loads the named workspace
// document from disk, applies the operation, and saves it back (with a
// timestamped backup of the previous file). The only in-process state is
// the image cache, which avoids re-decoding screenshots across calls.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: Additional error details (typically the Go error string)
//
// # Usage
//
// The server is typically started by an MCP client:
//
//	cfg, _ := config.Load("config.yaml")
//	srv := server.New(cfg)
//	if err := srv.Run(); err != nil {
//	    log.Fatal(err)
//	}
package server
