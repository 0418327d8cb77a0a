package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ironsheep/image-derive-mcp/internal/derive"
	"github.com/ironsheep/image-derive-mcp/internal/imaging"
	"github.com/ironsheep/image-derive-mcp/internal/placement"
	"github.com/ironsheep/image-derive-mcp/internal/textrender"
)

// outputFlags are shared by every derivation subcommand.
type outputFlags struct {
	path     string
	mimeType string
	quality  int
}

func (o *outputFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.path, "output", "o", "", "output file (required)")
	cmd.Flags().StringVar(&o.mimeType, "mime-type", "", "output encoding: image/jpeg, image/png or image/bmp (default from config)")
	cmd.Flags().IntVarP(&o.quality, "quality", "q", 0, "JPEG quality 1-100 (default from config)")
	_ = cmd.MarkFlagRequired("output")
}

// openSource opens path with the configured watermark settings.
func openSource(ctx context.Context, cache *imaging.ImageCache, path string) (*derive.Processor, error) {
	cfg := configFromContext(ctx)
	return derive.Open(cache, path, cfg.DeriveOptions(loggerFromContext(ctx), textrender.New()))
}

// save writes res using the flags, falling back to configured defaults.
func (o *outputFlags) save(ctx context.Context, res *derive.Result, start time.Time) error {
	opts := configFromContext(ctx).OutputOptions(o.path)
	if o.mimeType != "" {
		opts.MimeType = o.mimeType
	}
	if o.quality != 0 {
		opts.JPEGQuality = o.quality
	}
	if err := res.Save(opts); err != nil {
		return err
	}

	logger := loggerFromContext(ctx)
	if res.Unchanged {
		logger.Info("source already fits, written unchanged", "path", o.path)
	}
	logger.Infof("Wrote %s %s (%s)", o.path, res.Surface.Dimensions(), time.Since(start).Round(time.Millisecond))
	return nil
}

func newResizeCmd() *cobra.Command {
	var (
		out     outputFlags
		width   int
		height  int
		stretch bool
	)
	cmd := &cobra.Command{
		Use:   "resize <source>",
		Short: "Scale an image down into a width x height box",
		Long: `Scale an image down into a width x height box.

By default the aspect ratio is kept by shrinking one side of the box; --stretch
fills the box exactly. A source already smaller than the box on both axes is
written unchanged.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			start := time.Now()
			p, err := openSource(cmd.Context(), imaging.NewImageCache(), args[0])
			if err != nil {
				return err
			}
			res, err := p.Resize(width, height, !stretch)
			if err != nil {
				return err
			}
			return out.save(cmd.Context(), res, start)
		},
	}
	cmd.Flags().IntVarP(&width, "width", "W", 0, "box width in pixels (required)")
	cmd.Flags().IntVarP(&height, "height", "H", 0, "box height in pixels (required)")
	cmd.Flags().BoolVar(&stretch, "stretch", false, "ignore the aspect ratio")
	_ = cmd.MarkFlagRequired("width")
	_ = cmd.MarkFlagRequired("height")
	out.register(cmd)
	return cmd
}

func newCropCmd() *cobra.Command {
	var (
		out  outputFlags
		size int
	)
	cmd := &cobra.Command{
		Use:   "crop <source>",
		Short: "Make a centered square thumbnail",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			start := time.Now()
			p, err := openSource(cmd.Context(), imaging.NewImageCache(), args[0])
			if err != nil {
				return err
			}
			res, err := p.CropSquare(size)
			if err != nil {
				return err
			}
			return out.save(cmd.Context(), res, start)
		},
	}
	cmd.Flags().IntVarP(&size, "size", "s", 0, "thumbnail side length in pixels (required)")
	_ = cmd.MarkFlagRequired("size")
	out.register(cmd)
	return cmd
}

func newWatermarkCmd() *cobra.Command {
	var (
		out     outputFlags
		anchor  string
		marginH int
		marginV int
	)
	cmd := &cobra.Command{
		Use:   "watermark <source> <watermark>",
		Short: "Composite a color-keyed watermark over an image",
		Long: `Composite a watermark over an image.

Watermark pixels matching the key color (watermark.key_color, default #00FF00)
become transparent and the rest are blended at watermark.opacity (default 0.3).
--margin-h is the distance from the top or bottom edge and --margin-v the
distance from the left or right edge; both are ignored for center.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			start := time.Now()
			pos, err := placement.ParseAnchor(anchor)
			if err != nil {
				return err
			}
			cache := imaging.NewImageCache()
			p, err := openSource(cmd.Context(), cache, args[0])
			if err != nil {
				return err
			}
			mark, err := cache.Load(args[1])
			if err != nil {
				return err
			}
			res, err := p.Watermark(mark, pos, marginH, marginV)
			if err != nil {
				return err
			}
			return out.save(cmd.Context(), res, start)
		},
	}
	cmd.Flags().StringVarP(&anchor, "anchor", "a", "center", "center, top-left, top-right, bottom-left or bottom-right")
	cmd.Flags().IntVar(&marginH, "margin-h", 0, "margin from the horizontal (top/bottom) edge")
	cmd.Flags().IntVar(&marginV, "margin-v", 0, "margin from the vertical (left/right) edge")
	out.register(cmd)
	return cmd
}

func newTextCmd() *cobra.Command {
	var (
		out    outputFlags
		font   string
		size   float64
		color  string
		align  string
		bounds []int
	)
	cmd := &cobra.Command{
		Use:   "text <source> <text>",
		Short: "Draw word-wrapped text onto an image",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			start := time.Now()
			cfg := configFromContext(cmd.Context())

			al, err := placement.ParseAlignment(align)
			if err != nil {
				return err
			}
			textColor := cfg.TextColor()
			if color != "" {
				if textColor, err = imaging.ParseColor(color); err != nil {
					return err
				}
			}
			if font == "" {
				font = cfg.Text.Font
			}
			if size == 0 {
				size = cfg.Text.Size
			}

			p, err := openSource(cmd.Context(), imaging.NewImageCache(), args[0])
			if err != nil {
				return err
			}
			rect, err := textBounds(bounds, p.Dimensions())
			if err != nil {
				return err
			}
			res, err := p.OverlayText(derive.TextOptions{
				Text:   args[1],
				Font:   font,
				Size:   size,
				Color:  textColor,
				Bounds: rect,
				Align:  al,
			})
			if err != nil {
				return err
			}
			return out.save(cmd.Context(), res, start)
		},
	}
	cmd.Flags().StringVar(&font, "font", "", "built-in font name or .ttf/.otf path (default from config)")
	cmd.Flags().Float64Var(&size, "size", 0, "font size in pixels (default from config)")
	cmd.Flags().StringVar(&color, "color", "", "text color #RRGGBB[AA] (default from config)")
	cmd.Flags().StringVar(&align, "align", "near", "near, center or far")
	cmd.Flags().IntSliceVar(&bounds, "bounds", nil, "text box as x,y,width,height (default: whole image)")
	out.register(cmd)
	return cmd
}

// textBounds converts --bounds into a rectangle; no value means the whole image.
func textBounds(values []int, size placement.Dimensions) (placement.Rectangle, error) {
	switch len(values) {
	case 0:
		return size.Full(), nil
	case 4:
		return placement.Rectangle{X: values[0], Y: values[1], Width: values[2], Height: values[3]}, nil
	}
	return placement.Rectangle{}, fmt.Errorf("--bounds needs x,y,width,height, got %d values", len(values))
}

func newMergeCmd() *cobra.Command {
	var (
		out    outputFlags
		x, y   int
		width  int
		height int
	)
	cmd := &cobra.Command{
		Use:   "merge <back> <fore>",
		Short: "Draw a back image at an offset under a fore image",
		Long: `Draw the back image unscaled at (--x, --y), then the fore image over it.

The output has the fore image's size; the back image only shows where the fore
image is transparent. --width and --height limit how much of the back image is
drawn and default to all of it.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			start := time.Now()
			cache := imaging.NewImageCache()
			p, err := openSource(cmd.Context(), cache, args[0])
			if err != nil {
				return err
			}
			fore, err := cache.Load(args[1])
			if err != nil {
				return err
			}
			offset := placement.Rectangle{X: x, Y: y, Width: width, Height: height}
			if offset.Width == 0 {
				offset.Width = p.Dimensions().Width
			}
			if offset.Height == 0 {
				offset.Height = p.Dimensions().Height
			}
			res, err := p.Merge(fore, offset)
			if err != nil {
				return err
			}
			return out.save(cmd.Context(), res, start)
		},
	}
	cmd.Flags().IntVar(&x, "x", 0, "back image x offset")
	cmd.Flags().IntVar(&y, "y", 0, "back image y offset")
	cmd.Flags().IntVar(&width, "width", 0, "width of back image to draw (default: all)")
	cmd.Flags().IntVar(&height, "height", 0, "height of back image to draw (default: all)")
	out.register(cmd)
	return cmd
}
