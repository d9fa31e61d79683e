package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

func sourceProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Image to read: an absolute file path, an http(s) URL, or a data:image/...;base64 URI",
	}
}

func cropProperties(props map[string]interface{}) map[string]interface{} {
	props["width"] = map[string]interface{}{
		"type":        "integer",
		"description": "Keep only this many columns from the left edge. 0 means the full width",
		"default":     0,
		"minimum":     0,
	}
	props["height"] = map[string]interface{}{
		"type":        "integer",
		"description": "Keep only this many rows from the top edge. 0 means the full height",
		"default":     0,
		"minimum":     0,
	}
	return props
}

// samplingProperties returns the properties shared by the color tools.
func samplingProperties() map[string]interface{} {
	return cropProperties(map[string]interface{}{
		"source": sourceProperty(),
		"quality": map[string]interface{}{
			"type":        "integer",
			"description": "Sampling stride: 1 reads every pixel, 10 every tenth. Higher is faster but may miss colors",
			"default":     10,
			"minimum":     1,
		},
		"ignore_white": map[string]interface{}{
			"type":        "boolean",
			"description": "Skip near-white pixels (all channels above 250)",
			"default":     false,
		},
	})
}

func colorCountProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "integer",
		"description": "Maximum number of palette colors. The palette may be shorter when the image has fewer distinct colors",
		"default":     10,
		"minimum":     2,
		"maximum":     256,
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	paletteProps := samplingProperties()
	paletteProps["color_count"] = colorCountProperty()

	nearestProps := samplingProperties()
	nearestProps["color_count"] = colorCountProperty()
	nearestProps["color"] = map[string]interface{}{
		"type":        "string",
		"description": "Target color as #RRGGBB or #RGB",
	}

	return []Tool{
		// Image Information
		{
			Name:        "image_load",
			Description: "Load an image and return its dimensions, format and alpha presence. The image is cached for subsequent color operations.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": cropProperties(map[string]interface{}{
					"source": sourceProperty(),
				}),
				"required": []string{"source"},
			},
		},
		{
			Name:        "image_cache_clear",
			Description: "Drop a cached image, or every cached image when no source is given.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"source": sourceProperty(),
				},
			},
		},

		// Color Operations
		{
			Name:        "color_palette",
			Description: "Extract a palette of representative colors using median cut quantization. Colors are ordered from most to least dominant, each with hex, RGB, HSL, pixel population and percentage. Returns found=false when no pixels remain after filtering.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": paletteProps,
				"required":   []string{"source"},
			},
		},
		{
			Name:        "color_dominant",
			Description: "Get the single most dominant color of an image. When the image has no usable pixels the result is found=false, or the configured fallback color with fallback=true.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": samplingProperties(),
				"required":   []string{"source"},
			},
		},
		{
			Name:        "color_nearest",
			Description: "Extract the palette of an image and return the palette color closest to a target color.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": nearestProps,
				"required":   []string{"source", "color"},
			},
		},
	}
}
