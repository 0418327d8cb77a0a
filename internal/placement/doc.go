// Package placement computes the geometry and color transforms behind every
// derived image this server produces.
//
// Each operation (resize, square crop, watermark, merge, text overlay) is a
// pure function from source dimensions and request parameters to a Placement:
// the canvas to allocate, the source region to sample, the destination region
// to fill, and the per-pixel ColorTransform applied while drawing. Nothing in
// this package touches pixels, files, or codecs; the imaging package executes
// placements against real surfaces.
//
// # Coordinate System
//
// Rectangles use the same convention as the rest of the server: (X, Y) is the
// top-left corner, Width and Height extend right and down. All arithmetic is
// integer arithmetic with Go's truncating division.
//
// # Errors
//
// Inputs that would divide by zero or place a region outside its canvas are
// rejected with ErrInvalidDimension or ErrOutOfBounds instead of producing a
// degenerate placement. Callers test with errors.Is.
//
// # Thread Safety
//
// Every function is stateless and safe for concurrent use.
package placement
