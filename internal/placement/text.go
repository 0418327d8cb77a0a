package placement

import (
	"fmt"
	"strings"
)

// Alignment is the horizontal alignment of text within its bounding rectangle.
type Alignment int

const (
	// Near aligns text to the left edge.
	Near Alignment = iota
	Middle
	// Far aligns text to the right edge.
	Far
)

// ParseAlignment converts "near", "center" or "far" (or "left", "right") to an
// Alignment. An empty name selects Near.
func ParseAlignment(name string) (Alignment, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "near", "left":
		return Near, nil
	case "center", "centre", "middle":
		return Middle, nil
	case "far", "right":
		return Far, nil
	}
	return Near, fmt.Errorf("%w: %q", ErrUnknownAlignment, name)
}

func (a Alignment) String() string {
	switch a {
	case Near:
		return "near"
	case Middle:
		return "center"
	case Far:
		return "far"
	}
	return fmt.Sprintf("alignment(%d)", int(a))
}

// MarshalText renders the alignment by name in JSON results.
func (a Alignment) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// TextPlacement is the validated target for a text overlay.
type TextPlacement struct {
	Canvas Dimensions `json:"canvas"`
	Bounds Rectangle  `json:"bounds"`
	Align  Alignment  `json:"align"`
}

// ComputeText validates a caller-supplied text box. Text overlays draw onto
// the source canvas itself, so canvas is the source's size; the box is clipped
// to it and must keep a non-zero area.
func ComputeText(canvas Dimensions, bounds Rectangle, align Alignment) (TextPlacement, error) {
	if canvas.Empty() {
		return TextPlacement{}, fmt.Errorf("%w: canvas size %s", ErrInvalidDimension, canvas)
	}
	if bounds.Negative() || bounds.Width == 0 || bounds.Height == 0 {
		return TextPlacement{}, fmt.Errorf("%w: text bounds %s", ErrInvalidDimension, bounds)
	}
	if align < Near || align > Far {
		return TextPlacement{}, fmt.Errorf("%w: %d", ErrUnknownAlignment, int(align))
	}

	clipped := bounds.Clip(canvas)
	if clipped.Width == 0 || clipped.Height == 0 {
		return TextPlacement{}, fmt.Errorf("%w: text bounds %s outside %s canvas", ErrOutOfBounds, bounds, canvas)
	}
	return TextPlacement{Canvas: canvas, Bounds: clipped, Align: align}, nil
}
