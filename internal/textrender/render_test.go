package textrender

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/gomono"

	"github.com/ironsheep/image-derive-mcp/internal/placement"
)

var (
	black = color.NRGBA{0, 0, 0, 255}
	white = color.NRGBA{255, 255, 255, 255}
)

func blankImage(width, height int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetNRGBA(x, y, black)
		}
	}
	return img
}

// inkBounds returns the smallest rectangle containing every non-black pixel.
func inkBounds(img *image.NRGBA) image.Rectangle {
	var r image.Rectangle
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if img.NRGBAAt(x, y) != black {
				r = r.Union(image.Rect(x, y, x+1, y+1))
			}
		}
	}
	return r
}

func TestDrawText_InkStaysInBounds(t *testing.T) {
	img := blankImage(200, 100)
	bounds := placement.Rectangle{X: 20, Y: 10, Width: 120, Height: 40}

	res, err := New().DrawText(img, Layout{
		Text:   "Hello, derived images",
		Size:   16,
		Color:  white,
		Bounds: bounds,
	})
	require.NoError(t, err)
	assert.Equal(t, "go regular", res.Font)
	assert.False(t, res.Fallback)
	assert.Positive(t, res.Lines)

	ink := inkBounds(img)
	require.False(t, ink.Empty(), "expected some text pixels")
	assert.True(t, ink.In(bounds.Bounds()), "ink %v escapes %v", ink, bounds.Bounds())
}

func TestDrawText_Wraps(t *testing.T) {
	img := blankImage(300, 200)
	res, err := New().DrawText(img, Layout{
		Text:   "one two three four five six seven eight",
		Size:   14,
		Color:  white,
		Bounds: placement.Rectangle{X: 0, Y: 0, Width: 80, Height: 200},
	})
	require.NoError(t, err)
	assert.Greater(t, res.Lines, 1)
}

func TestDrawText_ClipsVertically(t *testing.T) {
	img := blankImage(100, 100)
	res, err := New().DrawText(img, Layout{
		Text:   "a\nb\nc\nd\ne\nf\ng\nh",
		Size:   20,
		Color:  white,
		Bounds: placement.Rectangle{X: 0, Y: 0, Width: 100, Height: 30},
	})
	require.NoError(t, err)
	assert.Less(t, res.Lines, 8)
	assert.True(t, inkBounds(img).In(image.Rect(0, 0, 100, 30)))
}

func TestDrawText_Alignment(t *testing.T) {
	bounds := placement.Rectangle{X: 0, Y: 0, Width: 300, Height: 40}
	left := map[placement.Alignment]int{}

	for _, align := range []placement.Alignment{placement.Near, placement.Middle, placement.Far} {
		img := blankImage(300, 40)
		_, err := New().DrawText(img, Layout{Text: "MMM", Size: 20, Color: white, Bounds: bounds, Align: align})
		require.NoError(t, err)
		left[align] = inkBounds(img).Min.X
	}

	assert.Less(t, left[placement.Near], left[placement.Middle])
	assert.Less(t, left[placement.Middle], left[placement.Far])
	assert.Less(t, left[placement.Near], 10)
	assert.Greater(t, left[placement.Far], 200)
}

func TestDrawText_UnknownFontFallsBack(t *testing.T) {
	img := blankImage(100, 40)
	res, err := New().DrawText(img, Layout{
		Text:   "x",
		Font:   "Comic Sans MS",
		Size:   12,
		Color:  white,
		Bounds: placement.Rectangle{Width: 100, Height: 40},
	})
	require.NoError(t, err)
	assert.True(t, res.Fallback)
	assert.Equal(t, "go regular", res.Font)
}

func TestDrawText_FontFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mono.ttf")
	require.NoError(t, os.WriteFile(path, gomono.TTF, 0o644))

	r := New()
	img := blankImage(100, 40)
	res, err := r.DrawText(img, Layout{Text: "mono", Font: path, Size: 12, Color: white, Bounds: placement.Rectangle{Width: 100, Height: 40}})
	require.NoError(t, err)
	assert.Equal(t, path, res.Font)
	assert.False(t, res.Fallback)

	_, err = r.DrawText(img, Layout{Text: "x", Font: "/nonexistent/font.ttf", Size: 12, Color: white, Bounds: placement.Rectangle{Width: 10, Height: 10}})
	assert.Error(t, err)
}

func TestDrawText_InvalidSize(t *testing.T) {
	_, err := New().DrawText(blankImage(10, 10), Layout{Text: "x", Size: 0, Bounds: placement.Rectangle{Width: 10, Height: 10}})
	assert.ErrorIs(t, err, placement.ErrInvalidDimension)
}

func TestResolve_CachesFonts(t *testing.T) {
	r := New()
	a, _, _, err := r.resolve("Go Bold")
	require.NoError(t, err)
	b, _, _, err := r.resolve("go bold")
	require.NoError(t, err)
	assert.Same(t, a, b)
	assert.Len(t, r.fonts, 1)
}
