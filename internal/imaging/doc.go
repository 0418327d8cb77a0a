// Package imaging is the raster surface behind every derived image: it loads
// source images, allocates canvases, executes placements computed by the
// placement package, and encodes results.
//
// # Surfaces
//
// A Surface is an in-memory, non-premultiplied RGBA pixel buffer with a pixel
// format. Surfaces created with placement.FormatRGB24 start opaque black and
// stay opaque no matter what is drawn onto them; default surfaces start fully
// transparent.
//
// # Drawing
//
// DrawScaled crops the placement's source region, resamples it to the
// destination size with the requested filter, runs every pixel through the
// placement's color transform, and alpha-composites the result onto the
// destination. DrawUnscaled composites without resampling. Resampling is done
// by github.com/disintegration/imaging; edge sampling clamps to the border
// pixels.
//
// # Encoding
//
// Encoders are looked up by MIME type with EncoderFor, which reports a missing
// encoder instead of failing so callers can check before writing anything.
// Supported types are image/jpeg, image/png and image/bmp.
//
// # Thread Safety
//
// The ImageCache type is safe for concurrent use and hands out private clones,
// so callers may draw on a loaded surface without affecting other callers.
// A single Surface is not safe for concurrent mutation.
package imaging
