package cli

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironsheep/image-derive-mcp/internal/imaging"
	"github.com/ironsheep/image-derive-mcp/internal/placement"
)

func writePNG(t *testing.T, name string, width, height int, c color.NRGBA) string {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	path := filepath.Join(t.TempDir(), name)
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
	return path
}

// run executes the root command with args and returns stdout and stderr.
func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	root := NewRootCommand(&stderr)
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func dimensionsOf(t *testing.T, path string) placement.Dimensions {
	t.Helper()
	d, err := imaging.GetDimensions(imaging.NewImageCache(), path)
	require.NoError(t, err)
	return *d
}

func TestSetVersion(t *testing.T) {
	SetVersion("1.2.3", "abc123", "2026-01-01")
	defer SetVersion("dev", "unknown", "unknown")

	assert.Equal(t, "1.2.3", version)
	assert.Equal(t, "abc123", commit)
	assert.Equal(t, "2026-01-01", date)

	stdout, _, err := run(t, "--version")
	require.NoError(t, err)
	assert.Contains(t, stdout, "image-derive-mcp 1.2.3")
	assert.Contains(t, stdout, "commit: abc123")
}

func TestResizeCommand(t *testing.T) {
	src := writePNG(t, "src.png", 400, 200, color.NRGBA{0, 0, 255, 255})
	out := filepath.Join(t.TempDir(), "thumb.png")

	_, stderr, err := run(t, "resize", src, "-W", "100", "-H", "100", "-o", out, "--mime-type", "image/png")
	require.NoError(t, err, stderr)
	assert.Equal(t, placement.Dimensions{Width: 100, Height: 50}, dimensionsOf(t, out))
	assert.Contains(t, stderr, "Wrote")

	stretched := filepath.Join(t.TempDir(), "stretched.jpg")
	_, _, err = run(t, "resize", src, "-W", "100", "-H", "100", "--stretch", "-o", stretched)
	require.NoError(t, err)
	assert.Equal(t, placement.Dimensions{Width: 100, Height: 100}, dimensionsOf(t, stretched))
}

func TestCropCommand(t *testing.T) {
	src := writePNG(t, "src.png", 300, 120, color.NRGBA{10, 200, 10, 255})
	out := filepath.Join(t.TempDir(), "square.jpg")

	_, _, err := run(t, "crop", src, "--size", "48", "-o", out, "-q", "90")
	require.NoError(t, err)
	assert.Equal(t, placement.Dimensions{Width: 48, Height: 48}, dimensionsOf(t, out))
}

func TestWatermarkCommand(t *testing.T) {
	base := writePNG(t, "base.png", 100, 80, color.NRGBA{0, 0, 255, 255})
	mark := writePNG(t, "mark.png", 20, 20, color.NRGBA{255, 0, 0, 255})
	out := filepath.Join(t.TempDir(), "marked.png")

	_, _, err := run(t, "watermark", base, mark, "-a", "top-right", "--margin-h", "5", "--margin-v", "5", "-o", out, "--mime-type", "image/png")
	require.NoError(t, err)

	s, err := imaging.NewImageCache().Load(out)
	require.NoError(t, err)
	assert.Equal(t, placement.Dimensions{Width: 100, Height: 80}, s.Dimensions())
	// Blended red appears inside the mark, pure blue outside.
	assert.Greater(t, s.At(85, 15).R, uint8(50))
	assert.Equal(t, color.NRGBA{0, 0, 255, 255}, s.At(10, 60))

	_, _, err = run(t, "watermark", base, mark, "-a", "sideways", "-o", out)
	assert.ErrorIs(t, err, placement.ErrUnknownAnchor)
}

func TestTextCommand(t *testing.T) {
	src := writePNG(t, "src.png", 120, 60, color.NRGBA{0, 0, 0, 255})
	out := filepath.Join(t.TempDir(), "text.png")

	_, _, err := run(t, "text", src, "Hello", "--bounds", "10,10,100,40", "--size", "18", "--color", "#FF0000", "-o", out, "--mime-type", "image/png")
	require.NoError(t, err)

	s, err := imaging.NewImageCache().Load(out)
	require.NoError(t, err)
	red := 0
	for y := 0; y < 60; y++ {
		for x := 0; x < 120; x++ {
			if s.At(x, y).R > 0 {
				red++
			}
		}
	}
	assert.Positive(t, red)

	_, _, err = run(t, "text", src, "Hello", "--bounds", "1,2,3", "-o", out)
	assert.Error(t, err)
}

func TestMergeCommand(t *testing.T) {
	back := writePNG(t, "back.png", 50, 50, color.NRGBA{255, 0, 0, 255})
	fore := writePNG(t, "fore.png", 30, 20, color.NRGBA{})
	out := filepath.Join(t.TempDir(), "merged.png")

	_, _, err := run(t, "merge", back, fore, "--x", "5", "-o", out, "--mime-type", "image/png")
	require.NoError(t, err)

	s, err := imaging.NewImageCache().Load(out)
	require.NoError(t, err)
	assert.Equal(t, placement.Dimensions{Width: 30, Height: 20}, s.Dimensions())
	assert.Equal(t, uint8(0), s.At(2, 10).A)
	assert.Equal(t, color.NRGBA{255, 0, 0, 255}, s.At(10, 10))
}

func TestCommandErrors(t *testing.T) {
	src := writePNG(t, "src.png", 10, 10, color.NRGBA{A: 255})

	tests := []struct {
		name string
		args []string
	}{
		{"missing output", []string{"crop", src, "--size", "5"}},
		{"missing source", []string{"crop", filepath.Join(t.TempDir(), "nope.png"), "--size", "5", "-o", filepath.Join(t.TempDir(), "x.jpg")}},
		{"unsupported mime", []string{"crop", src, "--size", "5", "-o", filepath.Join(t.TempDir(), "x.webp"), "--mime-type", "image/webp"}},
		{"missing config", []string{"--config", filepath.Join(t.TempDir(), "none.yaml"), "crop", src, "--size", "5", "-o", "x.jpg"}},
		{"extra args", []string{"resize", src, src, "-W", "1", "-H", "1", "-o", "x.jpg"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := run(t, tt.args...)
			assert.Error(t, err)
		})
	}
}

func TestCommandErrors_NotPrinted(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope.png")

	_, stderr, err := run(t, "crop", missing, "--size", "5", "-o", filepath.Join(t.TempDir(), "x.jpg"))
	require.Error(t, err)
	// main prints the returned error once; cobra must not print it first.
	assert.NotContains(t, stderr, "Error:")
	assert.NotContains(t, stderr, err.Error())
}

func TestTextBounds(t *testing.T) {
	size := placement.Dimensions{Width: 40, Height: 30}

	r, err := textBounds(nil, size)
	require.NoError(t, err)
	assert.Equal(t, size.Full(), r)

	r, err = textBounds([]int{1, 2, 3, 4}, size)
	require.NoError(t, err)
	assert.Equal(t, placement.Rectangle{X: 1, Y: 2, Width: 3, Height: 4}, r)

	_, err = textBounds([]int{1}, size)
	assert.Error(t, err)
}

func TestContextDefaults(t *testing.T) {
	ctx := context.Background()
	assert.NotNil(t, loggerFromContext(ctx))
	assert.Equal(t, "image/jpeg", configFromContext(ctx).Output.MimeType)
}
