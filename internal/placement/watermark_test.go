package placement

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeWatermark_Anchors(t *testing.T) {
	base := Dimensions{200, 100}
	mark := Dimensions{20, 20}

	tests := []struct {
		anchor AnchorPosition
		wantX  int
		wantY  int
	}{
		{Center, 90, 40},
		{TopLeft, 10, 5},
		{TopRight, 170, 5},
		{BottomLeft, 10, 75},
		{BottomRight, 170, 75},
	}

	for _, tt := range tests {
		t.Run(tt.anchor.String(), func(t *testing.T) {
			p, err := ComputeWatermark(base, mark, tt.anchor, 5, 10)
			require.NoError(t, err)

			assert.Equal(t, Rectangle{tt.wantX, tt.wantY, 20, 20}, p.Dest)
			assert.Equal(t, Rectangle{0, 0, 20, 20}, p.Source)
			assert.Equal(t, base, p.Canvas)
			assert.Equal(t, FormatRGB24, p.Format)
			assert.True(t, p.Dest.Within(p.Canvas))
		})
	}
}

func TestComputeWatermark_CenterIgnoresMargins(t *testing.T) {
	a, err := ComputeWatermark(Dimensions{200, 100}, Dimensions{20, 20}, Center, 0, 0)
	require.NoError(t, err)
	b, err := ComputeWatermark(Dimensions{200, 100}, Dimensions{20, 20}, Center, 30, 40)
	require.NoError(t, err)
	assert.Equal(t, a.Dest, b.Dest)
}

func TestComputeWatermark_Transform(t *testing.T) {
	p, err := ComputeWatermark(Dimensions{50, 50}, Dimensions{10, 10}, TopLeft, 0, 0)
	require.NoError(t, err)

	keyed := p.Transform.Apply(color.NRGBA{0, 255, 0, 255})
	assert.Equal(t, color.NRGBA{}, keyed, "green key should become fully transparent")

	red := p.Transform.Apply(color.NRGBA{255, 0, 0, 255})
	assert.Equal(t, color.NRGBA{255, 0, 0, 77}, red, "other pixels keep RGB at 30% alpha")

	// Near-green is not the key.
	near := p.Transform.Apply(color.NRGBA{0, 254, 0, 255})
	assert.Equal(t, uint8(254), near.G)
	assert.Equal(t, uint8(77), near.A)
}

func TestComputeWatermark_Errors(t *testing.T) {
	tests := []struct {
		name    string
		base    Dimensions
		mark    Dimensions
		anchor  AnchorPosition
		mh, mv  int
		wantErr error
	}{
		{"empty base", Dimensions{0, 10}, Dimensions{5, 5}, Center, 0, 0, ErrInvalidDimension},
		{"empty mark", Dimensions{10, 10}, Dimensions{0, 5}, Center, 0, 0, ErrInvalidDimension},
		{"negative margin", Dimensions{10, 10}, Dimensions{5, 5}, TopLeft, -1, 0, ErrInvalidDimension},
		{"mark larger than base", Dimensions{10, 10}, Dimensions{20, 5}, Center, 0, 0, ErrOutOfBounds},
		{"margin pushes off canvas", Dimensions{100, 100}, Dimensions{20, 20}, TopRight, 0, 90, ErrOutOfBounds},
		{"unknown anchor", Dimensions{100, 100}, Dimensions{20, 20}, AnchorPosition(42), 0, 0, ErrUnknownAnchor},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ComputeWatermark(tt.base, tt.mark, tt.anchor, tt.mh, tt.mv)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestBaseLayer(t *testing.T) {
	p, err := BaseLayer(Dimensions{64, 32})
	require.NoError(t, err)
	assert.Equal(t, Rectangle{0, 0, 64, 32}, p.Dest)
	assert.Equal(t, p.Dest, p.Source)
	assert.Equal(t, FormatRGB24, p.Format)
	assert.False(t, p.Scaled())
	assert.True(t, IsIdentity(p.Transform))

	_, err = BaseLayer(Dimensions{})
	assert.ErrorIs(t, err, ErrInvalidDimension)
}

func TestParseAnchor(t *testing.T) {
	tests := []struct {
		in   string
		want AnchorPosition
	}{
		{"", Center},
		{"center", Center},
		{"Centre", Center},
		{"top-left", TopLeft},
		{"TOP_RIGHT", TopRight},
		{"lower-left", BottomLeft},
		{" bottom-right ", BottomRight},
	}
	for _, tt := range tests {
		got, err := ParseAnchor(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := ParseAnchor("middle-ish")
	assert.ErrorIs(t, err, ErrUnknownAnchor)
}
