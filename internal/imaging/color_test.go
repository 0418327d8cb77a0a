package imaging

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSampleColor_KnownColors(t *testing.T) {
	s := quadrantSurface(t, 100, 100)

	tests := []struct {
		name    string
		x, y    int
		wantHex string
		wantH   int
	}{
		{"red", 10, 10, "#ff0000", 0},
		{"green", 90, 10, "#00ff00", 120},
		{"blue", 10, 90, "#0000ff", 240},
		{"white", 90, 90, "#ffffff", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := SampleColor(s, tt.x, tt.y)
			require.NoError(t, err)
			assert.Equal(t, tt.wantHex, result.Hex)
			assert.Equal(t, tt.wantH, result.HSL.H)
			assert.Equal(t, uint8(255), result.RGBA.A)
			assert.Equal(t, tt.x, result.X)
		})
	}
}

func TestSampleColor_OutOfBounds(t *testing.T) {
	s := solidSurface(t, 10, 10, color.NRGBA{A: 255})

	for _, pt := range [][2]int{{-1, 0}, {0, -1}, {10, 0}, {0, 10}} {
		_, err := SampleColor(s, pt[0], pt[1])
		assert.Error(t, err, "(%d,%d)", pt[0], pt[1])
	}

	_, err := SampleColor(s, 9, 9)
	assert.NoError(t, err)
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want color.NRGBA
	}{
		{"#00FF00", color.NRGBA{0, 255, 0, 255}},
		{"00ff00", color.NRGBA{0, 255, 0, 255}},
		{"#fff", color.NRGBA{255, 255, 255, 255}},
		{"#FF000080", color.NRGBA{255, 0, 0, 128}},
		{" #102030 ", color.NRGBA{16, 32, 48, 255}},
	}
	for _, tt := range tests {
		got, err := ParseColor(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	for _, bad := range []string{"", "#12", "#GGGGGG", "#FF0000ZZ"} {
		_, err := ParseColor(bad)
		assert.Error(t, err, bad)
	}
}

func TestFormatColor(t *testing.T) {
	assert.Equal(t, "#00FF00FF", FormatColor(color.NRGBA{0, 255, 0, 255}))
	c, err := ParseColor(FormatColor(color.NRGBA{1, 2, 3, 4}))
	require.NoError(t, err)
	assert.Equal(t, color.NRGBA{1, 2, 3, 4}, c)
}
