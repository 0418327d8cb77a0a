package placement

import "fmt"

// ComputeCrop plans a square thumbnail: the largest centered square of source
// scaled onto an outputSize x outputSize opaque canvas.
//
// When one side is longer, the square is centered along that axis using
// truncating division, so an odd excess leaves the extra pixel on the far edge.
func ComputeCrop(source Dimensions, outputSize int) (Placement, error) {
	if outputSize <= 0 {
		return Placement{}, fmt.Errorf("%w: output size %d", ErrInvalidDimension, outputSize)
	}
	if source.Empty() {
		return Placement{}, fmt.Errorf("%w: source size %s", ErrInvalidDimension, source)
	}

	square := min(source.Width, source.Height)
	var x, y int
	switch {
	case source.Width > source.Height:
		x = (source.Width - source.Height) / 2
	case source.Height > source.Width:
		y = (source.Height - source.Width) / 2
	}

	canvas := Dimensions{Width: outputSize, Height: outputSize}
	return Placement{
		Canvas:        canvas,
		Format:        FormatRGB24,
		Dest:          canvas.Full(),
		Source:        Rectangle{X: x, Y: y, Width: square, Height: square},
		Transform:     Identity{},
		Interpolation: Bicubic,
		Wrap:          WrapTileFlipXY,
	}, nil
}
