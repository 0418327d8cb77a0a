// Package server implements the MCP (Model Context Protocol) server for image derivation tools.
//
// This package provides a JSON-RPC 2.0 server that exposes thumbnailing, cropping,
// watermarking, text overlay and merging through the MCP protocol, so that MCP
// clients can produce derived images from files on disk.
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
// Basic Image Information:
//   - image_load: Load image and get metadata
//   - image_dimensions: Get width and height
//   - image_sample_color: Get color at pixel
//
// Derivation:
//   - image_resize: Scale into a box, optionally keeping the aspect ratio
//   - image_crop_square: Centered square thumbnail
//   - image_watermark: Color-keyed, semi-transparent watermark at an anchor
//   - image_overlay_text: Word-wrapped text in a rectangle
//   - image_merge: Back image at an offset under a fore image
//
// Housekeeping:
//   - image_cache_clear: Drop all cached decoded images
//
// Every derivation tool accepts output_path, mime_type and jpeg_quality. With
// output_path the result is written to disk; without it the encoded image is
// returned as image_base64. Either way the result reports the output size and
// the placement that was executed.
//
// # Image Caching
//
// The server maintains an in-memory cache of decoded images keyed by path.
// Files the server writes are evicted so a later call reads the new contents;
// image_cache_clear drops everything, for files changed by other programs.
//
// # Error Handling
//
// Errors are returned as JSON-RPC error responses with:
//   - code: -32602 (malformed or missing arguments), -32000 (tool execution
//     failure) or other standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: The Go error string
//
// # Usage
//
//	srv := server.New(server.Options{Config: cfg, Logger: logger})
//	if err := srv.Run(ctx); err != nil {
//	    logger.Fatal("server error", "err", err)
//	}
package server
