package placement

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeText(t *testing.T) {
	canvas := Dimensions{200, 100}

	p, err := ComputeText(canvas, Rectangle{10, 20, 100, 30}, Far)
	require.NoError(t, err)
	assert.Equal(t, Rectangle{10, 20, 100, 30}, p.Bounds)
	assert.Equal(t, Far, p.Align)
	assert.Equal(t, canvas, p.Canvas)

	p, err = ComputeText(canvas, Rectangle{150, 80, 100, 100}, Near)
	require.NoError(t, err)
	assert.Equal(t, Rectangle{150, 80, 50, 20}, p.Bounds, "bounds are clipped to the canvas")
}

func TestComputeText_Errors(t *testing.T) {
	tests := []struct {
		name    string
		canvas  Dimensions
		bounds  Rectangle
		align   Alignment
		wantErr error
	}{
		{"empty canvas", Dimensions{}, Rectangle{0, 0, 10, 10}, Near, ErrInvalidDimension},
		{"negative", Dimensions{50, 50}, Rectangle{-1, 0, 10, 10}, Near, ErrInvalidDimension},
		{"zero area", Dimensions{50, 50}, Rectangle{0, 0, 0, 10}, Near, ErrInvalidDimension},
		{"outside", Dimensions{50, 50}, Rectangle{60, 0, 10, 10}, Near, ErrOutOfBounds},
		{"bad alignment", Dimensions{50, 50}, Rectangle{0, 0, 10, 10}, Alignment(9), ErrUnknownAlignment},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ComputeText(tt.canvas, tt.bounds, tt.align)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestParseAlignment(t *testing.T) {
	for in, want := range map[string]Alignment{
		"":       Near,
		"near":   Near,
		"Left":   Near,
		"center": Middle,
		"far":    Far,
		"RIGHT":  Far,
	} {
		got, err := ParseAlignment(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseAlignment("justify")
	assert.ErrorIs(t, err, ErrUnknownAlignment)
}
