package placement

import "fmt"

// MergePlan describes a two-layer merge. Canvas starts as a copy of the fore
// image; Back is drawn onto it first and Fore on top, both unscaled.
type MergePlan struct {
	Canvas Dimensions `json:"canvas"`
	Back   Placement  `json:"back"`
	Fore   Placement  `json:"fore"`
}

// ComputeMerge plans drawing back at backOffset and then fore at the origin,
// on a canvas the size of fore.
//
// The fore image is the starting canvas as well as the top layer, so back is
// only visible where fore is transparent. backOffset's width and height bound how
// much of back is drawn; the region is clipped to both back's size and the
// canvas and may end up empty.
func ComputeMerge(back, fore Dimensions, backOffset Rectangle) (MergePlan, error) {
	if back.Empty() {
		return MergePlan{}, fmt.Errorf("%w: back size %s", ErrInvalidDimension, back)
	}
	if fore.Empty() {
		return MergePlan{}, fmt.Errorf("%w: fore size %s", ErrInvalidDimension, fore)
	}
	if backOffset.Negative() {
		return MergePlan{}, fmt.Errorf("%w: back offset %s", ErrInvalidDimension, backOffset)
	}

	// Clamp the drawn size to what back actually has, then to the canvas.
	dest := Rectangle{
		X:      backOffset.X,
		Y:      backOffset.Y,
		Width:  min(backOffset.Width, back.Width),
		Height: min(backOffset.Height, back.Height),
	}.Clip(fore)
	if dest.Width == 0 || dest.Height == 0 {
		dest = Rectangle{X: min(backOffset.X, fore.Width), Y: min(backOffset.Y, fore.Height)}
	}

	return MergePlan{
		Canvas: fore,
		Back: Placement{
			Canvas:        fore,
			Format:        FormatDefault,
			Dest:          dest,
			Source:        Rectangle{Width: dest.Width, Height: dest.Height},
			Transform:     Identity{},
			Interpolation: NearestNeighbor,
			Wrap:          WrapClamp,
		},
		Fore: Placement{
			Canvas:        fore,
			Format:        FormatDefault,
			Dest:          fore.Full(),
			Source:        fore.Full(),
			Transform:     Identity{},
			Interpolation: NearestNeighbor,
			Wrap:          WrapClamp,
		},
	}, nil
}
