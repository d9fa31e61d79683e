package server

import (
	"testing"
)

func toolsByName() map[string]Tool {
	toolMap := make(map[string]Tool)
	for _, tool := range GetToolDefinitions() {
		toolMap[tool.Name] = tool
	}
	return toolMap
}

func TestGetToolDefinitions(t *testing.T) {
	expectedTools := []string{
		"image_load",
		"image_cache_clear",
		"color_palette",
		"color_dominant",
		"color_nearest",
	}

	tools := GetToolDefinitions()
	if len(tools) != len(expectedTools) {
		t.Errorf("got %d tools, want %d", len(tools), len(expectedTools))
	}

	toolMap := toolsByName()
	for _, name := range expectedTools {
		if _, ok := toolMap[name]; !ok {
			t.Errorf("Expected tool %s not found", name)
		}
	}
}

func TestToolDefinitions_Structure(t *testing.T) {
	for _, tool := range GetToolDefinitions() {
		t.Run(tool.Name, func(t *testing.T) {
			if tool.Description == "" {
				t.Error("Tool description is empty")
			}

			if tool.InputSchema["type"] != "object" {
				t.Errorf("InputSchema type: got %v, want 'object'", tool.InputSchema["type"])
			}

			props, ok := tool.InputSchema["properties"].(map[string]interface{})
			if !ok || props == nil {
				t.Fatal("InputSchema properties missing")
			}
			if _, ok := props["source"]; !ok {
				t.Error("every tool should accept a source")
			}

			// Every required parameter must be a declared property
			required, _ := tool.InputSchema["required"].([]string)
			for _, r := range required {
				if _, ok := props[r]; !ok {
					t.Errorf("required parameter %s is not a property", r)
				}
			}
		})
	}
}

func TestToolDefinitions_RequiredSource(t *testing.T) {
	toolMap := toolsByName()

	for _, name := range []string{"image_load", "color_palette", "color_dominant", "color_nearest"} {
		t.Run(name, func(t *testing.T) {
			required, ok := toolMap[name].InputSchema["required"].([]string)
			if !ok {
				t.Fatal("'required' should be a string slice")
			}
			hasSource := false
			for _, r := range required {
				if r == "source" {
					hasSource = true
				}
			}
			if !hasSource {
				t.Error("source should be required")
			}
		})
	}

	if _, ok := toolMap["image_cache_clear"].InputSchema["required"]; ok {
		t.Error("image_cache_clear should not require any parameter")
	}
}

func TestToolDefinitions_ColorDefaults(t *testing.T) {
	props := toolsByName()["color_palette"].InputSchema["properties"].(map[string]interface{})

	tests := []struct {
		param string
		want  interface{}
	}{
		{"color_count", 10},
		{"quality", 10},
		{"ignore_white", false},
		{"width", 0},
		{"height", 0},
	}

	for _, tt := range tests {
		prop, ok := props[tt.param].(map[string]interface{})
		if !ok {
			t.Errorf("%s: property missing", tt.param)
			continue
		}
		if prop["default"] != tt.want {
			t.Errorf("%s default: got %v, want %v", tt.param, prop["default"], tt.want)
		}
	}

	count := props["color_count"].(map[string]interface{})
	if count["minimum"] != 2 || count["maximum"] != 256 {
		t.Errorf("color_count range: got [%v, %v], want [2, 256]", count["minimum"], count["maximum"])
	}
}

func TestToolDefinitions_DominantHasNoColorCount(t *testing.T) {
	props := toolsByName()["color_dominant"].InputSchema["properties"].(map[string]interface{})
	if _, ok := props["color_count"]; ok {
		t.Error("color_dominant should not expose color_count")
	}
}

func TestToolDefinitions_NearestRequiresColor(t *testing.T) {
	required := toolsByName()["color_nearest"].InputSchema["required"].([]string)
	found := false
	for _, r := range required {
		if r == "color" {
			found = true
		}
	}
	if !found {
		t.Error("color_nearest should require color")
	}
}
