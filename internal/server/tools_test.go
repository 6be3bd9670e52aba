package server

import (
	"testing"
)

func TestGetToolDefinitions(t *testing.T) {
	tools := GetToolDefinitions()

	if len(tools) != 18 {
		t.Errorf("tool count: %d, want 18", len(tools))
	}

	seen := map[string]bool{}
	for _, tool := range tools {
		if tool.Name == "" {
			t.Error("tool with empty name")
		}
		if seen[tool.Name] {
			t.Errorf("duplicate tool name: %s", tool.Name)
		}
		seen[tool.Name] = true

		if tool.Description == "" {
			t.Errorf("%s: empty description", tool.Name)
		}
		if tool.InputSchema["type"] != "object" {
			t.Errorf("%s: schema type %v, want object", tool.Name, tool.InputSchema["type"])
		}

		props, ok := tool.InputSchema["properties"].(map[string]interface{})
		if !ok {
			t.Errorf("%s: schema has no properties object", tool.Name)
			continue
		}

		// Every required field must be defined in properties.
		if required, ok := tool.InputSchema["required"].([]string); ok {
			for _, field := range required {
				if _, ok := props[field]; !ok {
					t.Errorf("%s: required field %q not in properties", tool.Name, field)
				}
			}
		}
	}

	for _, name := range []string{
		"workspace_create", "screenshot_import", "overlay_draw_grid",
		"overlay_resize", "bindings_set", "batch_crop", "page_detect",
	} {
		if !seen[name] {
			t.Errorf("missing tool: %s", name)
		}
	}
}

func TestHandleToolsList(t *testing.T) {
	s := testServer(t)
	req := &MCPRequest{JSONRPC: "2.0", ID: 1, Method: "tools/list"}

	resp := s.handleToolsList(req)
	if resp == nil {
		t.Fatal("handleToolsList returned nil")
	}
	if resp.Error != nil {
		t.Fatalf("Unexpected error: %v", resp.Error)
	}

	result, ok := resp.Result.(map[string]interface{})
	if !ok {
		t.Fatal("Result should be a map")
	}
	tools, ok := result["tools"].([]Tool)
	if !ok {
		t.Fatal("tools should be a slice of Tool")
	}
	if len(tools) != len(GetToolDefinitions()) {
		t.Errorf("tools/list returned %d tools", len(tools))
	}
}
