package imaging

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"

	"github.com/ironsheep/image-derive-mcp/internal/placement"
)

// DrawScaled executes p: the p.Source region of src is resampled to the size
// of p.Dest, passed through p.Transform, and composited onto dst at p.Dest.
//
// Both regions must lie inside their surfaces; otherwise the error wraps
// placement.ErrOutOfBounds and dst is left untouched.
func DrawScaled(dst *Surface, p placement.Placement, src *Surface) error {
	if !p.Source.Within(src.Dimensions()) {
		return fmt.Errorf("%w: source region %s outside %s image", placement.ErrOutOfBounds, p.Source, src.Dimensions())
	}
	if !p.Dest.Within(dst.Dimensions()) {
		return fmt.Errorf("%w: destination region %s outside %s canvas", placement.ErrOutOfBounds, p.Dest, dst.Dimensions())
	}
	if p.Dest.Width == 0 || p.Dest.Height == 0 || p.Source.Width == 0 || p.Source.Height == 0 {
		return nil
	}

	patch := imaging.Crop(src.img, p.Source.Bounds())
	if p.Scaled() {
		patch = imaging.Resize(patch, p.Dest.Width, p.Dest.Height, resampleFilter(p.Interpolation))
	}
	applyTransform(patch, p.Transform)

	dst.composite(patch, p.Dest.Bounds().Min)
	return nil
}

// DrawUnscaled composites the top-left dest.Width x dest.Height pixels of src
// onto dst at (dest.X, dest.Y) without resampling. The region is clipped to
// src and dst.
func DrawUnscaled(dst *Surface, dest placement.Rectangle, src *Surface) error {
	if dest.Negative() {
		return fmt.Errorf("%w: destination region %s", placement.ErrInvalidDimension, dest)
	}
	size := dest.Size()
	region := placement.Rectangle{Width: size.Width, Height: size.Height}.Clip(src.Dimensions())
	if region.Width == 0 || region.Height == 0 {
		return nil
	}

	patch := imaging.Crop(src.img, region.Bounds())
	dst.composite(patch, image.Pt(dest.X, dest.Y))
	return nil
}

// composite alpha-blends patch over s at pos. Opaque canvases stay opaque
// because blending over an alpha of 255 always yields 255.
func (s *Surface) composite(patch image.Image, pos image.Point) {
	s.img = imaging.Overlay(s.img, patch, pos, 1.0)
}

// applyTransform rewrites every pixel of img in place.
func applyTransform(img *image.NRGBA, t placement.ColorTransform) {
	if placement.IsIdentity(t) {
		return
	}
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			img.SetNRGBA(x, y, t.Apply(img.NRGBAAt(x, y)))
		}
	}
}

func resampleFilter(i placement.Interpolation) imaging.ResampleFilter {
	switch i {
	case placement.Bilinear:
		return imaging.Linear
	case placement.NearestNeighbor:
		return imaging.NearestNeighbor
	case placement.Lanczos:
		return imaging.Lanczos
	default:
		return imaging.CatmullRom
	}
}
