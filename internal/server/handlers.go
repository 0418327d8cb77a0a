package server

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ironsheep/image-derive-mcp/internal/derive"
	"github.com/ironsheep/image-derive-mcp/internal/imaging"
	"github.com/ironsheep/image-derive-mcp/internal/placement"
	"github.com/ironsheep/image-derive-mcp/internal/textrender"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_load", "image_resize").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// errInvalidArguments marks argument problems found before any image work;
// they are reported as -32602 rather than a tool failure.
var errInvalidArguments = errors.New("invalid arguments")

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Malformed arguments return -32602; tool execution errors return -32000.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		s.logger.Warn("tool failed", "tool", params.Name, "err", err)
		if errors.Is(err, errInvalidArguments) {
			return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
		}
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
//  2. Applies configured defaults for optional parameters
//  3. Loads source images through the cache
//  4. Runs the derive operation
//  5. Saves or base64-encodes the result
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Basic Image Information
	case "image_load":
		return s.handleImageLoad(args)
	case "image_dimensions":
		return s.handleImageDimensions(args)
	case "image_sample_color":
		return s.handleImageSampleColor(args)

	// Derivation
	case "image_resize":
		return s.handleImageResize(args)
	case "image_crop_square":
		return s.handleImageCropSquare(args)
	case "image_watermark":
		return s.handleImageWatermark(args)
	case "image_overlay_text":
		return s.handleImageOverlayText(args)
	case "image_merge":
		return s.handleImageMerge(args)

	// Housekeeping
	case "image_cache_clear":
		return s.handleImageCacheClear(args)

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

func decodeArgs(args json.RawMessage, v interface{}) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: missing arguments", errInvalidArguments)
	}
	if err := json.Unmarshal(args, v); err != nil {
		return fmt.Errorf("%w: %w", errInvalidArguments, err)
	}
	return nil
}

func requirePath(name, value string) error {
	if value == "" {
		return fmt.Errorf("%w: %s is required", errInvalidArguments, name)
	}
	return nil
}

// === Basic Image Information Handlers ===

type imageLoadArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if err := requirePath("path", a.Path); err != nil {
		return nil, err
	}
	return imaging.LoadImageInfo(s.cache, a.Path)
}

func (s *Server) handleImageDimensions(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if err := requirePath("path", a.Path); err != nil {
		return nil, err
	}
	return imaging.GetDimensions(s.cache, a.Path)
}

type imageSampleColorArgs struct {
	Path string `json:"path"`
	X    int    `json:"x"`
	Y    int    `json:"y"`
}

func (s *Server) handleImageSampleColor(args json.RawMessage) (interface{}, error) {
	var a imageSampleColorArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if err := requirePath("path", a.Path); err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return imaging.SampleColor(img, a.X, a.Y)
}

// === Derivation Handlers ===

// outputArgs are shared by every tool that produces an image.
type outputArgs struct {
	OutputPath  string `json:"output_path"`
	MimeType    string `json:"mime_type"`
	JPEGQuality int    `json:"jpeg_quality"`
}

// DeriveResult is returned by every derivation tool.
type DeriveResult struct {
	Width       int                `json:"width"`
	Height      int                `json:"height"`
	MimeType    string             `json:"mime_type"`
	Unchanged   bool               `json:"unchanged"`
	OutputPath  string             `json:"output_path,omitempty"`
	ImageBase64 string             `json:"image_base64,omitempty"`
	Placement   interface{}        `json:"placement,omitempty"`
	Text        *textrender.Result `json:"text,omitempty"`
}

func (s *Server) outputOptions(o outputArgs) derive.OutputOptions {
	opts := s.cfg.OutputOptions(o.OutputPath)
	if o.MimeType != "" {
		opts.MimeType = o.MimeType
	}
	if o.JPEGQuality != 0 {
		opts.JPEGQuality = o.JPEGQuality
	}
	return opts
}

// finish saves res when an output path was given and base64-encodes it
// otherwise.
func (s *Server) finish(res *derive.Result, o outputArgs) (*DeriveResult, error) {
	opts := s.outputOptions(o)
	size := res.Surface.Dimensions()
	out := &DeriveResult{
		Width:     size.Width,
		Height:    size.Height,
		MimeType:  opts.MimeType,
		Unchanged: res.Unchanged,
		Placement: res.Placement,
		Text:      res.Text,
	}

	if opts.Path != "" {
		if err := res.Save(opts); err != nil {
			return nil, err
		}
		s.cache.Evict(opts.Path)
		out.OutputPath = opts.Path
		s.logger.Info("saved", "path", opts.Path, "size", size, "mime_type", opts.MimeType)
		return out, nil
	}

	encoded, err := res.EncodeBase64(opts)
	if err != nil {
		return nil, err
	}
	out.ImageBase64 = encoded
	return out, nil
}

func (s *Server) open(path string) (*derive.Processor, error) {
	if err := requirePath("path", path); err != nil {
		return nil, err
	}
	return derive.Open(s.cache, path, s.cfg.DeriveOptions(s.logger, s.renderer))
}

type imageResizeArgs struct {
	Path      string `json:"path"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	LockRatio *bool  `json:"lock_ratio"`
	outputArgs
}

func (s *Server) handleImageResize(args json.RawMessage) (interface{}, error) {
	var a imageResizeArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	lock := true
	if a.LockRatio != nil {
		lock = *a.LockRatio
	}
	p, err := s.open(a.Path)
	if err != nil {
		return nil, err
	}
	res, err := p.Resize(a.Width, a.Height, lock)
	if err != nil {
		return nil, err
	}
	return s.finish(res, a.outputArgs)
}

type imageCropSquareArgs struct {
	Path string `json:"path"`
	Size int    `json:"size"`
	outputArgs
}

func (s *Server) handleImageCropSquare(args json.RawMessage) (interface{}, error) {
	var a imageCropSquareArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	p, err := s.open(a.Path)
	if err != nil {
		return nil, err
	}
	res, err := p.CropSquare(a.Size)
	if err != nil {
		return nil, err
	}
	return s.finish(res, a.outputArgs)
}

type imageWatermarkArgs struct {
	Path          string `json:"path"`
	WatermarkPath string `json:"watermark_path"`
	Anchor        string `json:"anchor"`
	MarginH       int    `json:"margin_h"`
	MarginV       int    `json:"margin_v"`
	outputArgs
}

func (s *Server) handleImageWatermark(args json.RawMessage) (interface{}, error) {
	var a imageWatermarkArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if err := requirePath("watermark_path", a.WatermarkPath); err != nil {
		return nil, err
	}
	anchor, err := placement.ParseAnchor(a.Anchor)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errInvalidArguments, err)
	}

	p, err := s.open(a.Path)
	if err != nil {
		return nil, err
	}
	mark, err := s.cache.Load(a.WatermarkPath)
	if err != nil {
		return nil, err
	}
	res, err := p.Watermark(mark, anchor, a.MarginH, a.MarginV)
	if err != nil {
		return nil, err
	}
	return s.finish(res, a.outputArgs)
}

type imageOverlayTextArgs struct {
	Path   string  `json:"path"`
	Text   string  `json:"text"`
	Font   string  `json:"font"`
	Size   float64 `json:"size"`
	Color  string  `json:"color"`
	X      int     `json:"x"`
	Y      int     `json:"y"`
	Width  int     `json:"width"`
	Height int     `json:"height"`
	Align  string  `json:"align"`
	outputArgs
}

func (s *Server) handleImageOverlayText(args json.RawMessage) (interface{}, error) {
	var a imageOverlayTextArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	align, err := placement.ParseAlignment(a.Align)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errInvalidArguments, err)
	}
	textColor := s.cfg.TextColor()
	if a.Color != "" {
		if textColor, err = imaging.ParseColor(a.Color); err != nil {
			return nil, fmt.Errorf("%w: %w", errInvalidArguments, err)
		}
	}
	if a.Font == "" {
		a.Font = s.cfg.Text.Font
	}
	if a.Size == 0 {
		a.Size = s.cfg.Text.Size
	}

	p, err := s.open(a.Path)
	if err != nil {
		return nil, err
	}
	bounds := placement.Rectangle{X: a.X, Y: a.Y, Width: a.Width, Height: a.Height}
	size := p.Dimensions()
	if bounds.Width == 0 {
		bounds.Width = size.Width - a.X
	}
	if bounds.Height == 0 {
		bounds.Height = size.Height - a.Y
	}

	res, err := p.OverlayText(derive.TextOptions{
		Text:   a.Text,
		Font:   a.Font,
		Size:   a.Size,
		Color:  textColor,
		Bounds: bounds,
		Align:  align,
	})
	if err != nil {
		return nil, err
	}
	return s.finish(res, a.outputArgs)
}

type imageMergeArgs struct {
	BackPath string `json:"back_path"`
	ForePath string `json:"fore_path"`
	X        int    `json:"x"`
	Y        int    `json:"y"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	outputArgs
}

func (s *Server) handleImageMerge(args json.RawMessage) (interface{}, error) {
	var a imageMergeArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if err := requirePath("back_path", a.BackPath); err != nil {
		return nil, err
	}
	if err := requirePath("fore_path", a.ForePath); err != nil {
		return nil, err
	}

	p, err := s.open(a.BackPath)
	if err != nil {
		return nil, err
	}
	fore, err := s.cache.Load(a.ForePath)
	if err != nil {
		return nil, err
	}
	offset := placement.Rectangle{X: a.X, Y: a.Y, Width: a.Width, Height: a.Height}
	back := p.Dimensions()
	if offset.Width == 0 {
		offset.Width = back.Width
	}
	if offset.Height == 0 {
		offset.Height = back.Height
	}

	res, err := p.Merge(fore, offset)
	if err != nil {
		return nil, err
	}
	return s.finish(res, a.outputArgs)
}

// CacheClearResult reports how many decoded images were dropped.
type CacheClearResult struct {
	Cleared int `json:"cleared"`
}

func (s *Server) handleImageCacheClear(json.RawMessage) (interface{}, error) {
	n := s.cache.Clear()
	s.logger.Info("image cache cleared", "images", n)
	return &CacheClearResult{Cleared: n}, nil
}
