package textrender

import (
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"github.com/ironsheep/image-derive-mcp/internal/placement"
)

// DefaultFont is used when a Layout names no font or an unknown one.
const DefaultFont = "Go Regular"

// dpi makes a font size of N render N pixels tall.
const dpi = 72

var builtinFonts = map[string][]byte{
	"go":             goregular.TTF,
	"go regular":     goregular.TTF,
	"go bold":        gobold.TTF,
	"go italic":      goitalic.TTF,
	"go bold italic": gobolditalic.TTF,
	"go mono":        gomono.TTF,
}

// Layout describes one text overlay.
type Layout struct {
	Text   string
	Font   string  // built-in font name or path to a .ttf/.otf file
	Size   float64 // pixels
	Color  color.NRGBA
	Bounds placement.Rectangle
	Align  placement.Alignment
}

// Result reports what DrawText actually rendered.
type Result struct {
	Font     string `json:"font"`
	Fallback bool   `json:"fallback"` // true when the requested font was not found
	Lines    int    `json:"lines"`
}

// Renderer draws text with parsed fonts cached by name. It is safe for
// concurrent use on different destination images.
type Renderer struct {
	mu    sync.Mutex
	fonts map[string]*sfnt.Font
}

// New returns a Renderer with an empty font cache.
func New() *Renderer {
	return &Renderer{fonts: make(map[string]*sfnt.Font)}
}

// DrawText renders layout.Text onto dst inside layout.Bounds, mutating dst.
func (r *Renderer) DrawText(dst *image.NRGBA, layout Layout) (*Result, error) {
	if layout.Size <= 0 {
		return nil, fmt.Errorf("%w: font size %v", placement.ErrInvalidDimension, layout.Size)
	}

	f, name, fallback, err := r.resolve(layout.Font)
	if err != nil {
		return nil, err
	}

	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    layout.Size,
		DPI:     dpi,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create font face: %w", err)
	}
	defer face.Close()

	box := layout.Bounds.Bounds().Intersect(dst.Bounds())
	if box.Empty() {
		return &Result{Font: name, Fallback: fallback}, nil
	}
	clip, ok := dst.SubImage(box).(*image.NRGBA)
	if !ok {
		return nil, fmt.Errorf("unexpected sub-image type %T", dst.SubImage(box))
	}

	lines := wrap(face, layout.Text, layout.Bounds.Width)
	metrics := face.Metrics()
	ascent := metrics.Ascent.Ceil()
	lineHeight := metrics.Height.Ceil()

	d := &font.Drawer{
		Dst:  clip,
		Src:  image.NewUniform(layout.Color),
		Face: face,
	}

	drawn := 0
	top := layout.Bounds.Y
	bottom := layout.Bounds.Y + layout.Bounds.Height
	for _, line := range lines {
		if top >= bottom {
			break
		}
		width := font.MeasureString(face, line).Ceil()
		d.Dot = fixed.P(alignX(layout.Bounds, width, layout.Align), top+ascent)
		d.DrawString(line)
		drawn++
		top += lineHeight
	}

	return &Result{Font: name, Fallback: fallback, Lines: drawn}, nil
}

func alignX(bounds placement.Rectangle, width int, align placement.Alignment) int {
	switch align {
	case placement.Middle:
		return bounds.X + (bounds.Width-width)/2
	case placement.Far:
		return bounds.X + bounds.Width - width
	}
	return bounds.X
}

// wrap splits text into lines no wider than maxWidth, breaking on spaces.
// Explicit newlines are kept; a single word wider than maxWidth gets a line of
// its own and is clipped when drawn.
func wrap(face font.Face, text string, maxWidth int) []string {
	var lines []string
	for _, para := range strings.Split(text, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}
		line := words[0]
		for _, w := range words[1:] {
			candidate := line + " " + w
			if font.MeasureString(face, candidate).Ceil() <= maxWidth {
				line = candidate
				continue
			}
			lines = append(lines, line)
			line = w
		}
		lines = append(lines, line)
	}
	return lines
}

// resolve returns the parsed font for name along with its canonical name and
// whether the default was substituted.
func (r *Renderer) resolve(name string) (*sfnt.Font, string, bool, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	fallback := false

	var load func() ([]byte, error)
	switch ext := strings.ToLower(filepath.Ext(key)); {
	case ext == ".ttf" || ext == ".otf":
		key = strings.TrimSpace(name)
		load = func() ([]byte, error) { return os.ReadFile(key) }
	default:
		data, ok := builtinFonts[key]
		if !ok {
			fallback = key != ""
			key = strings.ToLower(DefaultFont)
			data = goregular.TTF
		}
		load = func() ([]byte, error) { return data, nil }
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if f, ok := r.fonts[key]; ok {
		return f, key, fallback, nil
	}

	data, err := load()
	if err != nil {
		return nil, "", false, fmt.Errorf("failed to read font: %w", err)
	}
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, "", false, fmt.Errorf("failed to parse font %s: %w", key, err)
	}
	r.fonts[key] = f
	return f, key, fallback, nil
}
