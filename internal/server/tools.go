package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

func pathProperty(description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": description,
	}
}

// withOutput adds the output_path, mime_type and jpeg_quality properties
// shared by every tool that produces an image.
func withOutput(props map[string]interface{}) map[string]interface{} {
	props["output_path"] = map[string]interface{}{
		"type":        "string",
		"description": "Optional file to write the result to. When omitted the image is returned as base64",
	}
	props["mime_type"] = map[string]interface{}{
		"type":        "string",
		"enum":        []string{"image/jpeg", "image/png", "image/bmp"},
		"description": "Output encoding. Default image/jpeg (configurable)",
	}
	props["jpeg_quality"] = map[string]interface{}{
		"type":        "integer",
		"description": "JPEG quality 1-100. Default 85 (configurable)",
		"minimum":     1,
		"maximum":     100,
	}
	return props
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Basic Image Information
		{
			Name:        "image_load",
			Description: "Load an image file and return its dimensions, format and whether it has transparency.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty("Absolute path to the image file"),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_dimensions",
			Description: "Get the width and height of an image file.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty("Absolute path to the image file"),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_sample_color",
			Description: "Get the exact color value at a specific pixel coordinate. Useful for picking a watermark key color.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty("Absolute path to the image file"),
					"x": map[string]interface{}{
						"type":        "integer",
						"description": "X coordinate (0-based, from left)",
					},
					"y": map[string]interface{}{
						"type":        "integer",
						"description": "Y coordinate (0-based, from top)",
					},
				},
				"required": []string{"path", "x", "y"},
			},
		},

		// Derivation
		{
			Name:        "image_resize",
			Description: "Scale an image down into a width x height box. Images already smaller than the box on both axes are returned unchanged, never upscaled.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": withOutput(map[string]interface{}{
					"path": pathProperty("Absolute path to the source image"),
					"width": map[string]interface{}{
						"type":        "integer",
						"description": "Requested width in pixels",
						"minimum":     1,
					},
					"height": map[string]interface{}{
						"type":        "integer",
						"description": "Requested height in pixels",
						"minimum":     1,
					},
					"lock_ratio": map[string]interface{}{
						"type":        "boolean",
						"description": "Keep the aspect ratio by shrinking one side of the box. Default true",
						"default":     true,
					},
				}),
				"required": []string{"path", "width", "height"},
			},
		},
		{
			Name:        "image_crop_square",
			Description: "Cut the largest centered square from an image and scale it to a size x size opaque thumbnail.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": withOutput(map[string]interface{}{
					"path": pathProperty("Absolute path to the source image"),
					"size": map[string]interface{}{
						"type":        "integer",
						"description": "Side length of the thumbnail in pixels",
						"minimum":     1,
					},
				}),
				"required": []string{"path", "size"},
			},
		},
		{
			Name:        "image_watermark",
			Description: "Composite a watermark over an image. Watermark pixels matching the key color (default pure green #00FF00) become transparent; the rest are blended at the configured opacity (default 30%).",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": withOutput(map[string]interface{}{
					"path":           pathProperty("Absolute path to the base image"),
					"watermark_path": pathProperty("Absolute path to the watermark image"),
					"anchor": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"center", "top-left", "top-right", "bottom-left", "bottom-right"},
						"description": "Where to place the watermark. Default center",
						"default":     "center",
					},
					"margin_h": map[string]interface{}{
						"type":        "integer",
						"description": "Distance from the top or bottom edge (moves the mark vertically). Ignored for center",
						"minimum":     0,
					},
					"margin_v": map[string]interface{}{
						"type":        "integer",
						"description": "Distance from the left or right edge (moves the mark horizontally). Ignored for center",
						"minimum":     0,
					},
				}),
				"required": []string{"path", "watermark_path"},
			},
		},
		{
			Name:        "image_overlay_text",
			Description: "Draw word-wrapped text into a rectangle on an image.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": withOutput(map[string]interface{}{
					"path": pathProperty("Absolute path to the source image"),
					"text": map[string]interface{}{
						"type":        "string",
						"description": "Text to draw. Newlines start new lines",
					},
					"font": map[string]interface{}{
						"type":        "string",
						"description": "Built-in font (Go Regular, Go Bold, Go Italic, Go Bold Italic, Go Mono) or path to a .ttf/.otf file. Unknown names fall back to Go Regular",
					},
					"size": map[string]interface{}{
						"type":        "number",
						"description": "Font size in pixels. Default 12 (configurable)",
					},
					"color": map[string]interface{}{
						"type":        "string",
						"description": "Text color as #RRGGBB or #RRGGBBAA. Default #FFFFFF (configurable)",
					},
					"x": map[string]interface{}{
						"type":        "integer",
						"description": "Left edge of the text box",
					},
					"y": map[string]interface{}{
						"type":        "integer",
						"description": "Top edge of the text box",
					},
					"width": map[string]interface{}{
						"type":        "integer",
						"description": "Width of the text box. Default: to the right edge of the image",
					},
					"height": map[string]interface{}{
						"type":        "integer",
						"description": "Height of the text box. Default: to the bottom edge of the image",
					},
					"align": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"near", "center", "far"},
						"description": "Horizontal alignment within the box. Default near",
						"default":     "near",
					},
				}),
				"required": []string{"path", "text"},
			},
		},
		{
			Name:        "image_merge",
			Description: "Merge two images: the back image is drawn unscaled at an offset, then the fore image on top. The result has the fore image's size, so the back image only shows where the fore image is transparent.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": withOutput(map[string]interface{}{
					"back_path": pathProperty("Absolute path to the back image"),
					"fore_path": pathProperty("Absolute path to the fore image"),
					"x": map[string]interface{}{
						"type":        "integer",
						"description": "X offset of the back image",
					},
					"y": map[string]interface{}{
						"type":        "integer",
						"description": "Y offset of the back image",
					},
					"width": map[string]interface{}{
						"type":        "integer",
						"description": "Width of back image to draw. Default: all of it",
					},
					"height": map[string]interface{}{
						"type":        "integer",
						"description": "Height of back image to draw. Default: all of it",
					},
				}),
				"required": []string{"back_path", "fore_path"},
			},
		},

		// Housekeeping
		{
			Name:        "image_cache_clear",
			Description: "Drop every decoded image held in memory. Later calls re-read their files from disk.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
				"required":   []string{},
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
