package imaging

import (
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"

	"github.com/ironsheep/image-derive-mcp/internal/placement"
)

// Surface is an allocated pixel buffer with a pixel format.
type Surface struct {
	img    *image.NRGBA
	format placement.PixelFormat
}

// Create allocates a width x height canvas. RGB24 canvases start opaque black,
// default canvases start transparent.
func Create(width, height int, format placement.PixelFormat) (*Surface, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: canvas %dx%d", placement.ErrInvalidDimension, width, height)
	}
	fill := color.NRGBA{}
	if format == placement.FormatRGB24 {
		fill = color.NRGBA{A: 255}
	}
	return &Surface{img: imaging.New(width, height, fill), format: format}, nil
}

// FromImage copies img into a new default-format surface anchored at the origin.
func FromImage(img image.Image) *Surface {
	return &Surface{img: imaging.Clone(img), format: placement.FormatDefault}
}

// Dimensions returns the surface size.
func (s *Surface) Dimensions() placement.Dimensions {
	return placement.DimensionsOf(s.img.Bounds())
}

// Format returns the pixel format the surface was allocated with.
func (s *Surface) Format() placement.PixelFormat {
	return s.format
}

// Image exposes the underlying pixels. The returned image aliases the
// surface; drawing on it draws on the surface.
func (s *Surface) Image() *image.NRGBA {
	return s.img
}

// Clone returns an independent copy of s.
func (s *Surface) Clone() *Surface {
	return &Surface{img: imaging.Clone(s.img), format: s.format}
}

// At returns the non-premultiplied color at (x, y).
func (s *Surface) At(x, y int) color.NRGBA {
	return s.img.NRGBAAt(x, y)
}

// HasAlpha reports whether any pixel is not fully opaque.
func (s *Surface) HasAlpha() bool {
	if s.format == placement.FormatRGB24 {
		return false
	}
	return !s.img.Opaque()
}
