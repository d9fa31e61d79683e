// Package server implements the MCP (Model Context Protocol) server for color
// extraction tools.
//
// This package provides a JSON-RPC 2.0 server that exposes palette and
// dominant color extraction through the MCP protocol.
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
// Image Information:
//   - image_load: Acquire an image and report its metadata
//   - image_cache_clear: Drop cached images
//
// Color Operations:
//   - color_palette: Median cut palette, most dominant first
//   - color_dominant: The most dominant color
//   - color_nearest: Palette entry closest to a target color
//
// Every color tool accepts a source (file path, http(s) URL or base64 data
// URI), an optional width/height crop anchored at the top-left corner, a
// sampling quality and the ignore_white filter.
//
// # Image Caching
//
// Images read from files and URLs are cached by source string for the
// lifetime of the process. Data URIs are decoded on every call. Extraction
// results are never cached.
//
// # Error Handling
//
// Invalid arguments (color_count outside [2, 256], quality below 1, a
// negative crop, a malformed target color) are returned as JSON-RPC errors
// with code -32000. An image that cannot be fetched or decoded, or that has
// no pixels left after filtering, is not an error: the tool result carries
// found=false and a reason.
//
// # Usage
//
//	cfg, err := server.ConfigFromEnv(os.Getenv)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	srv := server.New(cfg)
//	if err := srv.Run(context.Background()); err != nil {
//	    log.Fatal(err)
//	}
package server
