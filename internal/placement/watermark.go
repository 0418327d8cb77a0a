package placement

import (
	"fmt"
	"image/color"
)

// DefaultWatermarkOpacity is the alpha factor applied to every watermark pixel
// that survives color keying.
const DefaultWatermarkOpacity = 0.3

// DefaultWatermarkKey is the green-screen color that becomes fully transparent
// when a watermark is composited.
var DefaultWatermarkKey = color.NRGBA{R: 0, G: 255, B: 0, A: 255}

// WatermarkTransform keys out the exact color key and then scales the alpha of
// what remains by opacity. The key must be matched before the alpha scale runs,
// since scaling first would change the key pixels' alpha and stop them matching.
func WatermarkTransform(key color.NRGBA, opacity float64) ColorTransform {
	return Chain{
		ChannelRemap{Old: key, New: color.NRGBA{}},
		NewAlphaScale(opacity),
	}
}

// BaseLayer is the first pass of a watermark composite: an unscaled copy of the
// base image onto an opaque canvas of the same size.
func BaseLayer(base Dimensions) (Placement, error) {
	if base.Empty() {
		return Placement{}, fmt.Errorf("%w: base size %s", ErrInvalidDimension, base)
	}
	p := fullExtent(base, base, FormatRGB24)
	p.Wrap = WrapClamp
	return p, nil
}

// ComputeWatermark plans the second pass of a watermark composite: the mark
// drawn unscaled at the position named by anchor, through the default
// green-key and 30% opacity transform.
//
// The margins keep the names of the edges they are measured against, which
// means marginH (distance to the horizontal top or bottom edge) moves the mark
// vertically and marginV (distance to the vertical left or right edge) moves it
// horizontally. Center ignores both margins.
//
// A mark larger than the base, or margins that push it off the canvas, return
// ErrOutOfBounds.
func ComputeWatermark(base, mark Dimensions, anchor AnchorPosition, marginH, marginV int) (Placement, error) {
	if base.Empty() {
		return Placement{}, fmt.Errorf("%w: base size %s", ErrInvalidDimension, base)
	}
	if mark.Empty() {
		return Placement{}, fmt.Errorf("%w: watermark size %s", ErrInvalidDimension, mark)
	}
	if marginH < 0 || marginV < 0 {
		return Placement{}, fmt.Errorf("%w: margins %d,%d", ErrInvalidDimension, marginH, marginV)
	}

	var x, y int
	switch anchor {
	case Center:
		x = (base.Width - mark.Width) / 2
		y = (base.Height - mark.Height) / 2
	case TopLeft:
		x = marginV
		y = marginH
	case TopRight:
		x = base.Width - mark.Width - marginV
		y = marginH
	case BottomLeft:
		x = marginV
		y = base.Height - mark.Height - marginH
	case BottomRight:
		x = base.Width - mark.Width - marginV
		y = base.Height - mark.Height - marginH
	default:
		return Placement{}, fmt.Errorf("%w: %d", ErrUnknownAnchor, int(anchor))
	}

	dest := Rectangle{X: x, Y: y, Width: mark.Width, Height: mark.Height}
	if !dest.Within(base) {
		return Placement{}, fmt.Errorf("%w: watermark %s at %s on %s canvas", ErrOutOfBounds, mark, anchor, base)
	}

	return Placement{
		Canvas:        base,
		Format:        FormatRGB24,
		Dest:          dest,
		Source:        mark.Full(),
		Transform:     WatermarkTransform(DefaultWatermarkKey, DefaultWatermarkOpacity),
		Interpolation: Bicubic,
		Wrap:          WrapClamp,
	}, nil
}
