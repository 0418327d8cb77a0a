// Package derive produces derived images from a single source image.
//
// A Processor wraps one source surface, opened from a path through the shared
// imaging.ImageCache or built from a surface already in memory. Each operation
// plans its geometry with the placement package, executes the plan with the
// imaging package, and returns a Result holding the derived surface and the
// plan that produced it. Results are persisted with Save or turned into bytes
// with Encode; both take OutputOptions, whose zero value means JPEG at
// quality 85.
//
// # Operations
//
//   - Resize: scale to a requested box, optionally keeping the aspect ratio.
//     Sources already smaller than the box on both axes are returned unchanged.
//   - CropSquare: centered square crop scaled to an opaque size x size thumbnail.
//   - Watermark: base image plus a color-keyed, semi-transparent mark at an anchor.
//   - OverlayText: word-wrapped text drawn onto the source itself.
//   - Merge: a back layer drawn at an offset under a fore layer, on a canvas the
//     size of the fore layer.
//
// OverlayText is the only operation that mutates the source; every later
// operation on the same Processor sees the text.
package derive
