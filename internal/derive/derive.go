package derive

import (
	"fmt"
	"image/color"

	"github.com/charmbracelet/log"

	"github.com/ironsheep/image-derive-mcp/internal/imaging"
	"github.com/ironsheep/image-derive-mcp/internal/placement"
	"github.com/ironsheep/image-derive-mcp/internal/textrender"
)

// Options configures a Processor. The zero value is usable.
type Options struct {
	// Logger receives debug output for each operation. Nil means log.Default().
	Logger *log.Logger

	// Renderer draws text overlays. Nil allocates a private renderer.
	Renderer *textrender.Renderer

	// WatermarkKey is the color keyed out of watermarks. Nil selects
	// placement.DefaultWatermarkKey; any other value, transparent black
	// included, is used as given.
	WatermarkKey *color.NRGBA

	// WatermarkOpacity scales the alpha of watermark pixels. Nil selects
	// placement.DefaultWatermarkOpacity.
	WatermarkOpacity *float64
}

// Processor derives images from one source surface.
type Processor struct {
	src      *imaging.Surface
	path     string
	logger   *log.Logger
	renderer *textrender.Renderer
	key      color.NRGBA
	opacity  float64
}

// Result is one derived image together with the plan that produced it.
type Result struct {
	Surface *imaging.Surface

	// Placement is the executed plan: a placement.Placement,
	// placement.MergePlan or placement.TextPlacement. It is nil for an
	// unchanged resize.
	Placement any

	// Unchanged is set when Resize returned the source as-is.
	Unchanged bool

	// Text is set by OverlayText.
	Text *textrender.Result
}

// TextOptions describes a text overlay.
type TextOptions struct {
	Text   string
	Font   string
	Size   float64
	Color  color.NRGBA
	Bounds placement.Rectangle
	Align  placement.Alignment
}

// Open loads path through cache and returns a Processor for it.
func Open(cache *imaging.ImageCache, path string, opts Options) (*Processor, error) {
	src, err := cache.Load(path)
	if err != nil {
		return nil, err
	}
	p := New(src, opts)
	p.path = path
	return p, nil
}

// New returns a Processor that derives images from src. src is used directly,
// not copied.
func New(src *imaging.Surface, opts Options) *Processor {
	p := &Processor{
		src:      src,
		logger:   opts.Logger,
		renderer: opts.Renderer,
		key:      placement.DefaultWatermarkKey,
		opacity:  placement.DefaultWatermarkOpacity,
	}
	if p.logger == nil {
		p.logger = log.Default()
	}
	if p.renderer == nil {
		p.renderer = textrender.New()
	}
	if opts.WatermarkKey != nil {
		p.key = *opts.WatermarkKey
	}
	if opts.WatermarkOpacity != nil {
		p.opacity = *opts.WatermarkOpacity
	}
	return p
}

// Dimensions returns the source size.
func (p *Processor) Dimensions() placement.Dimensions {
	return p.src.Dimensions()
}

// Resize scales the source into a width x height box. With lockRatio the
// aspect ratio is kept and one side of the box is shrunk to fit. A source
// smaller than the box on both axes is returned unchanged, never upscaled.
func (p *Processor) Resize(width, height int, lockRatio bool) (*Result, error) {
	plan, ok, err := placement.ComputeResize(p.src.Dimensions(), width, height, lockRatio)
	if err != nil {
		return nil, err
	}
	if !ok {
		p.logger.Debug("resize skipped", "source", p.name(), "size", p.src.Dimensions(), "box", placement.Dimensions{Width: width, Height: height})
		return &Result{Surface: p.src, Unchanged: true}, nil
	}

	out, err := p.execute(plan, p.src)
	if err != nil {
		return nil, err
	}
	p.logger.Debug("resized", "source", p.name(), "from", p.src.Dimensions(), "to", plan.Canvas)
	return &Result{Surface: out, Placement: plan}, nil
}

// CropSquare cuts the largest centered square out of the source and scales it
// to a size x size opaque thumbnail.
func (p *Processor) CropSquare(size int) (*Result, error) {
	plan, err := placement.ComputeCrop(p.src.Dimensions(), size)
	if err != nil {
		return nil, err
	}
	out, err := p.execute(plan, p.src)
	if err != nil {
		return nil, err
	}
	p.logger.Debug("cropped", "source", p.name(), "region", plan.Source, "size", size)
	return &Result{Surface: out, Placement: plan}, nil
}

// Watermark composites mark over the source at anchor. Pixels of mark that
// exactly match the watermark key become transparent and the rest are drawn
// at the configured opacity.
func (p *Processor) Watermark(mark *imaging.Surface, anchor placement.AnchorPosition, marginH, marginV int) (*Result, error) {
	base, err := placement.BaseLayer(p.src.Dimensions())
	if err != nil {
		return nil, err
	}
	plan, err := placement.ComputeWatermark(p.src.Dimensions(), mark.Dimensions(), anchor, marginH, marginV)
	if err != nil {
		return nil, err
	}
	plan.Transform = placement.WatermarkTransform(p.key, p.opacity)

	out, err := p.execute(base, p.src)
	if err != nil {
		return nil, err
	}
	if err := imaging.DrawScaled(out, plan, mark); err != nil {
		return nil, fmt.Errorf("failed to draw watermark: %w", err)
	}
	p.logger.Debug("watermarked", "source", p.name(), "anchor", anchor, "at", plan.Dest, "opacity", p.opacity)
	return &Result{Surface: out, Placement: plan}, nil
}

// OverlayText draws text onto the source surface itself and returns it. The
// text stays on the source for every later operation.
func (p *Processor) OverlayText(opts TextOptions) (*Result, error) {
	plan, err := placement.ComputeText(p.src.Dimensions(), opts.Bounds, opts.Align)
	if err != nil {
		return nil, err
	}
	res, err := p.renderer.DrawText(p.src.Image(), textrender.Layout{
		Text:   opts.Text,
		Font:   opts.Font,
		Size:   opts.Size,
		Color:  opts.Color,
		Bounds: plan.Bounds,
		Align:  plan.Align,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to draw text: %w", err)
	}
	if res.Fallback {
		p.logger.Warn("font not found, using default", "font", opts.Font, "default", res.Font)
	}
	p.logger.Debug("text drawn", "source", p.name(), "bounds", plan.Bounds, "lines", res.Lines)
	return &Result{Surface: p.src, Placement: plan, Text: res}, nil
}

// Merge draws the source as the back layer at backOffset and fore over it at
// the origin. The output has fore's size.
func (p *Processor) Merge(fore *imaging.Surface, backOffset placement.Rectangle) (*Result, error) {
	res, err := Merge(p.src, fore, backOffset)
	if err != nil {
		return nil, err
	}
	p.logger.Debug("merged", "back", p.name(), "offset", backOffset, "canvas", res.Surface.Dimensions())
	return res, nil
}

// Merge composites back and fore onto a copy of fore: back is copied
// unscaled into backOffset, then fore is copied unscaled over the whole
// canvas again. Where fore is opaque it hides the back layer entirely; where
// it is translucent fore ends up blended over itself. fore is not modified.
func Merge(back, fore *imaging.Surface, backOffset placement.Rectangle) (*Result, error) {
	plan, err := placement.ComputeMerge(back.Dimensions(), fore.Dimensions(), backOffset)
	if err != nil {
		return nil, err
	}
	canvas := fore.Clone()
	if err := imaging.DrawUnscaled(canvas, plan.Back.Dest, back); err != nil {
		return nil, fmt.Errorf("failed to draw back layer: %w", err)
	}
	if err := imaging.DrawUnscaled(canvas, plan.Fore.Dest, fore); err != nil {
		return nil, fmt.Errorf("failed to draw fore layer: %w", err)
	}
	return &Result{Surface: canvas, Placement: plan}, nil
}

// execute allocates plan's canvas and draws src onto it.
func (p *Processor) execute(plan placement.Placement, src *imaging.Surface) (*imaging.Surface, error) {
	canvas, err := imaging.Create(plan.Canvas.Width, plan.Canvas.Height, plan.Format)
	if err != nil {
		return nil, err
	}
	if err := imaging.DrawScaled(canvas, plan, src); err != nil {
		return nil, fmt.Errorf("failed to draw %s: %w", p.name(), err)
	}
	return canvas, nil
}

func (p *Processor) name() string {
	if p.path != "" {
		return p.path
	}
	return "<memory>"
}
