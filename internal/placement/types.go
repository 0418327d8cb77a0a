package placement

import (
	"errors"
	"fmt"
	"image"
	"strings"
)

var (
	// ErrInvalidDimension reports a zero or negative size where a positive one is required.
	ErrInvalidDimension = errors.New("invalid dimension")

	// ErrOutOfBounds reports a region that would fall outside its source or canvas.
	ErrOutOfBounds = errors.New("region out of bounds")

	// ErrUnknownAnchor reports an anchor name that does not match any AnchorPosition.
	ErrUnknownAnchor = errors.New("unknown anchor position")

	// ErrUnknownAlignment reports an alignment name that does not match any Alignment.
	ErrUnknownAlignment = errors.New("unknown text alignment")
)

// Dimensions is the width and height of an image or canvas in pixels.
type Dimensions struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// DimensionsOf returns the size of b.
func DimensionsOf(b image.Rectangle) Dimensions {
	return Dimensions{Width: b.Dx(), Height: b.Dy()}
}

// Empty reports whether either side is zero or negative.
func (d Dimensions) Empty() bool {
	return d.Width <= 0 || d.Height <= 0
}

// Full returns the rectangle covering the whole extent, anchored at the origin.
func (d Dimensions) Full() Rectangle {
	return Rectangle{Width: d.Width, Height: d.Height}
}

func (d Dimensions) String() string {
	return fmt.Sprintf("%dx%d", d.Width, d.Height)
}

// Rectangle is an axis-aligned pixel region.
type Rectangle struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Bounds converts r to the standard library's half-open rectangle.
func (r Rectangle) Bounds() image.Rectangle {
	return image.Rect(r.X, r.Y, r.X+r.Width, r.Y+r.Height)
}

// Size returns the width and height of r.
func (r Rectangle) Size() Dimensions {
	return Dimensions{Width: r.Width, Height: r.Height}
}

// Negative reports whether any field of r is below zero.
func (r Rectangle) Negative() bool {
	return r.X < 0 || r.Y < 0 || r.Width < 0 || r.Height < 0
}

// Within reports whether r lies entirely inside an extent of size d anchored at the origin.
func (r Rectangle) Within(d Dimensions) bool {
	return !r.Negative() && r.X+r.Width <= d.Width && r.Y+r.Height <= d.Height
}

// Clip returns the part of r that lies inside d. The result may be empty.
func (r Rectangle) Clip(d Dimensions) Rectangle {
	c := r.Bounds().Intersect(image.Rect(0, 0, d.Width, d.Height))
	return Rectangle{X: c.Min.X, Y: c.Min.Y, Width: c.Dx(), Height: c.Dy()}
}

func (r Rectangle) String() string {
	return fmt.Sprintf("(%d,%d %dx%d)", r.X, r.Y, r.Width, r.Height)
}

// Interpolation selects the resampling filter used when source and destination sizes differ.
type Interpolation int

const (
	// Bicubic is the high-quality filter every placement in this package requests.
	Bicubic Interpolation = iota
	Bilinear
	NearestNeighbor
	Lanczos
)

func (i Interpolation) String() string {
	switch i {
	case Bicubic:
		return "bicubic"
	case Bilinear:
		return "bilinear"
	case NearestNeighbor:
		return "nearest-neighbor"
	case Lanczos:
		return "lanczos"
	}
	return fmt.Sprintf("interpolation(%d)", int(i))
}

// MarshalText renders the interpolation by name in JSON results.
func (i Interpolation) MarshalText() ([]byte, error) {
	return []byte(i.String()), nil
}

// PixelFormat is the channel layout a canvas is allocated with.
type PixelFormat int

const (
	// FormatDefault keeps an alpha channel and lets the encoder decide what to store.
	FormatDefault PixelFormat = iota

	// FormatRGB24 is an opaque canvas; transparency in anything drawn onto it is
	// flattened against black.
	FormatRGB24
)

func (f PixelFormat) String() string {
	if f == FormatRGB24 {
		return "rgb24"
	}
	return "default"
}

// MarshalText renders the pixel format by name in JSON results.
func (f PixelFormat) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

// WrapMode is the sampling policy at the edges of a source region.
type WrapMode int

const (
	WrapClamp WrapMode = iota
	WrapTileFlipXY
)

func (w WrapMode) String() string {
	if w == WrapTileFlipXY {
		return "tile-flip-xy"
	}
	return "clamp"
}

// MarshalText renders the wrap mode by name in JSON results.
func (w WrapMode) MarshalText() ([]byte, error) {
	return []byte(w.String()), nil
}

// AnchorPosition is one of the five places a watermark can be pinned to.
type AnchorPosition int

const (
	Center AnchorPosition = iota
	TopLeft
	TopRight
	BottomLeft
	BottomRight
)

var anchorNames = map[string]AnchorPosition{
	"center":       Center,
	"centre":       Center,
	"top-left":     TopLeft,
	"upper-left":   TopLeft,
	"top-right":    TopRight,
	"upper-right":  TopRight,
	"bottom-left":  BottomLeft,
	"lower-left":   BottomLeft,
	"bottom-right": BottomRight,
	"lower-right":  BottomRight,
}

// ParseAnchor converts a name such as "top-right" to an AnchorPosition.
// Matching is case-insensitive and accepts underscores in place of hyphens.
// An empty name selects Center.
func ParseAnchor(name string) (AnchorPosition, error) {
	key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "_", "-")
	if key == "" {
		return Center, nil
	}
	if a, ok := anchorNames[key]; ok {
		return a, nil
	}
	return Center, fmt.Errorf("%w: %q", ErrUnknownAnchor, name)
}

func (a AnchorPosition) String() string {
	switch a {
	case Center:
		return "center"
	case TopLeft:
		return "top-left"
	case TopRight:
		return "top-right"
	case BottomLeft:
		return "bottom-left"
	case BottomRight:
		return "bottom-right"
	}
	return fmt.Sprintf("anchor(%d)", int(a))
}

// Placement is the complete instruction set for one draw call: allocate Canvas
// in Format, sample Source from the source image, and fill Dest after running
// every sampled pixel through Transform.
type Placement struct {
	Canvas        Dimensions     `json:"canvas"`
	Format        PixelFormat    `json:"format"`
	Dest          Rectangle      `json:"dest"`
	Source        Rectangle      `json:"source"`
	Transform     ColorTransform `json:"transform"`
	Interpolation Interpolation  `json:"interpolation"`
	Wrap          WrapMode       `json:"wrap"`
}

// Scaled reports whether drawing p resamples the source.
func (p Placement) Scaled() bool {
	return p.Source.Size() != p.Dest.Size()
}

// fullExtent maps all of src onto all of canvas.
func fullExtent(src, canvas Dimensions, format PixelFormat) Placement {
	return Placement{
		Canvas:        canvas,
		Format:        format,
		Dest:          canvas.Full(),
		Source:        src.Full(),
		Transform:     Identity{},
		Interpolation: Bicubic,
		Wrap:          WrapTileFlipXY,
	}
}
