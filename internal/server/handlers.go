package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"image"

	"github.com/ironsheep/colorthief-mcp/internal/colorthief"
	"github.com/ironsheep/colorthief-mcp/internal/imaging"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_load", "color_palette").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// errMissingSource is returned when a tool call omits its image source.
var errMissingSource = errors.New("source is required")

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Invalid arguments return a JSON-RPC error response with code -32000. An
// image that cannot be acquired is not an error: the color tools report it
// as an absent result with a reason.
func (s *Server) handleToolsCall(ctx context.Context, req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(ctx, params.Name, params.Arguments)
	if err != nil {
		s.debugf("tool %s failed: %v", params.Name, err)
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
// Each color handler:
//  1. Unmarshals arguments from JSON and applies defaults
//  2. Validates every argument before touching the image
//  3. Acquires and crops the image
//  4. Calls the colorthief operation and formats its result
func (s *Server) executeTool(ctx context.Context, name string, args json.RawMessage) (interface{}, error) {
	switch name {
	case "image_load":
		return s.handleImageLoad(ctx, args)
	case "image_cache_clear":
		return s.handleImageCacheClear(args)
	case "color_palette":
		return s.handleColorPalette(ctx, args)
	case "color_dominant":
		return s.handleColorDominant(ctx, args)
	case "color_nearest":
		return s.handleColorNearest(ctx, args)
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
// On marshal failure it returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

func unmarshalArgs(args json.RawMessage, v interface{}) error {
	if len(args) == 0 {
		return errMissingSource
	}
	if err := json.Unmarshal(args, v); err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}
	return nil
}

// === Image Handlers ===

type imageLoadArgs struct {
	Source string `json:"source"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

func (s *Server) handleImageLoad(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	if a.Source == "" {
		return nil, errMissingSource
	}
	return imaging.LoadImageInfo(ctx, s.cache, a.Source, a.Width, a.Height)
}

type imageCacheClearArgs struct {
	Source string `json:"source"`
}

// CacheClearResult reports what image_cache_clear removed.
type CacheClearResult struct {
	Cleared   string `json:"cleared"`
	Remaining int    `json:"remaining"`
}

func (s *Server) handleImageCacheClear(args json.RawMessage) (interface{}, error) {
	var a imageCacheClearArgs
	if len(args) > 0 {
		if err := json.Unmarshal(args, &a); err != nil {
			return nil, fmt.Errorf("invalid arguments: %w", err)
		}
	}

	if a.Source == "" {
		s.cache.Clear()
		return &CacheClearResult{Cleared: "all", Remaining: 0}, nil
	}
	s.cache.Evict(a.Source)
	return &CacheClearResult{Cleared: a.Source, Remaining: s.cache.Len()}, nil
}

// === Color Handlers ===

// colorArgs are the arguments shared by every color tool. Pointer fields
// distinguish an omitted value from an explicit zero.
type colorArgs struct {
	Source      string `json:"source"`
	ColorCount  *int   `json:"color_count"`
	Quality     *int   `json:"quality"`
	IgnoreWhite bool   `json:"ignore_white"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
}

// options validates the arguments and converts them to colorthief options.
func (a colorArgs) options() (colorthief.Options, error) {
	if a.Source == "" {
		return colorthief.Options{}, errMissingSource
	}
	if a.Width < 0 || a.Height < 0 {
		return colorthief.Options{}, fmt.Errorf("%w: %dx%d", imaging.ErrInvalidCrop, a.Width, a.Height)
	}

	opts := colorthief.DefaultOptions()
	if a.ColorCount != nil {
		opts.ColorCount = *a.ColorCount
	}
	if a.Quality != nil {
		opts.Quality = *a.Quality
	}
	opts.IgnoreWhite = a.IgnoreWhite

	if err := opts.Validate(); err != nil {
		return colorthief.Options{}, err
	}
	return opts, nil
}

// acquire loads and crops the image named by the arguments. A non-empty
// reason means the image is unavailable.
func (s *Server) acquire(ctx context.Context, a colorArgs) (image.Image, string) {
	img, err := s.cache.Load(ctx, a.Source)
	if err != nil {
		s.debugf("acquire %s: %v", a.Source, err)
		return nil, err.Error()
	}
	cropped, err := imaging.CropToSize(img, a.Width, a.Height)
	if err != nil {
		return nil, err.Error()
	}
	return cropped, ""
}

// PaletteResult is the color_palette response.
type PaletteResult struct {
	Found  bool                   `json:"found"`
	Colors []imaging.SwatchResult `json:"colors"`
	Reason string                 `json:"reason,omitempty"`
}

func (s *Server) handleColorPalette(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a colorArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	opts, err := a.options()
	if err != nil {
		return nil, err
	}

	img, reason := s.acquire(ctx, a)
	if reason != "" {
		return &PaletteResult{Reason: reason}, nil
	}

	palette, ok, err := colorthief.GetPalette(img, opts)
	if err != nil {
		return nil, err
	}
	if !ok {
		return &PaletteResult{Reason: "no pixels left after sampling"}, nil
	}

	return &PaletteResult{
		Found:  true,
		Colors: imaging.FormatSwatches(palette),
	}, nil
}

// DominantResult is the color_dominant response. Fallback is true when
// Color is the configured fallback color rather than one found in the image.
type DominantResult struct {
	Found      bool                 `json:"found"`
	Fallback   bool                 `json:"fallback"`
	Color      *imaging.ColorResult `json:"color"`
	Population int                  `json:"population,omitempty"`
	Reason     string               `json:"reason,omitempty"`
}

func (s *Server) handleColorDominant(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a colorArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	// color_count does not apply; the dominant color comes from a fixed palette size
	a.ColorCount = nil
	opts, err := a.options()
	if err != nil {
		return nil, err
	}

	img, reason := s.acquire(ctx, a)
	if reason != "" {
		return s.absentDominant(reason), nil
	}

	dominant, ok, err := colorthief.GetColor(img, opts)
	if err != nil {
		return nil, err
	}
	if !ok {
		return s.absentDominant("no pixels left after sampling"), nil
	}

	color := imaging.FormatColor(dominant.Color)
	return &DominantResult{
		Found:      true,
		Color:      &color,
		Population: dominant.Population,
	}, nil
}

func (s *Server) absentDominant(reason string) *DominantResult {
	res := &DominantResult{Reason: reason}
	if s.config.FallbackColor != nil {
		color := imaging.FormatColor(*s.config.FallbackColor)
		res.Fallback = true
		res.Color = &color
	}
	return res
}

type colorNearestArgs struct {
	colorArgs
	Color string `json:"color"`
}

// NearestResult is the color_nearest response.
type NearestResult struct {
	Found  bool                 `json:"found"`
	Target imaging.ColorResult  `json:"target"`
	Color  *imaging.ColorResult `json:"color"`
	Reason string               `json:"reason,omitempty"`
}

func (s *Server) handleColorNearest(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a colorNearestArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	opts, err := a.options()
	if err != nil {
		return nil, err
	}
	target, err := imaging.ParseHexColor(a.Color)
	if err != nil {
		return nil, err
	}

	res := &NearestResult{Target: imaging.FormatColor(target)}

	img, reason := s.acquire(ctx, a.colorArgs)
	if reason != "" {
		res.Reason = reason
		return res, nil
	}

	cmap, ok, err := colorthief.GetColorMap(img, opts)
	if err != nil {
		return nil, err
	}
	if !ok {
		res.Reason = "no pixels left after sampling"
		return res, nil
	}

	nearest, ok := cmap.Nearest(target)
	if !ok {
		res.Reason = "empty palette"
		return res, nil
	}
	color := imaging.FormatColor(nearest)
	res.Found = true
	res.Color = &color
	return res, nil
}
