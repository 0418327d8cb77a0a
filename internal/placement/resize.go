package placement

import "fmt"

// ComputeResize plans a scale-to-fit of source into requestedWidth x requestedHeight.
//
// The second result is false when no resize should happen and the caller must
// reuse the source unchanged. That is the case when the source is already
// smaller than the request on both axes; images are never upscaled.
//
// Without lockRatio the canvas is exactly the requested size and the image may
// stretch. With lockRatio the width/height ratios of source and request are
// compared using integer division. If the source ratio is greater or equal,
// the requested width is kept and the height recomputed; otherwise the
// requested height is kept and the width recomputed. Because the comparison
// truncates, near-square ratios such as 4:3 and 1:1 compare equal.
//
// Non-positive requests, an empty source, or a recomputed side that truncates
// to zero return ErrInvalidDimension.
func ComputeResize(source Dimensions, requestedWidth, requestedHeight int, lockRatio bool) (Placement, bool, error) {
	if requestedWidth <= 0 || requestedHeight <= 0 {
		return Placement{}, false, fmt.Errorf("%w: requested size %dx%d", ErrInvalidDimension, requestedWidth, requestedHeight)
	}
	if source.Empty() {
		return Placement{}, false, fmt.Errorf("%w: source size %s", ErrInvalidDimension, source)
	}

	if source.Width < requestedWidth && source.Height < requestedHeight {
		return Placement{}, false, nil
	}

	width, height := requestedWidth, requestedHeight
	if lockRatio {
		if source.Width/source.Height >= requestedWidth/requestedHeight {
			height = requestedWidth * source.Height / source.Width
		} else {
			width = requestedHeight * source.Width / source.Height
		}
		if width <= 0 || height <= 0 {
			return Placement{}, false, fmt.Errorf("%w: %s scaled to %dx%d", ErrInvalidDimension, source, width, height)
		}
	}

	return fullExtent(source, Dimensions{Width: width, Height: height}, FormatDefault), true, nil
}
