package placement

import (
	"encoding/json"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChannelRemap(t *testing.T) {
	m := ChannelRemap{Old: color.NRGBA{1, 2, 3, 255}, New: color.NRGBA{9, 9, 9, 9}}

	assert.Equal(t, color.NRGBA{9, 9, 9, 9}, m.Apply(color.NRGBA{1, 2, 3, 255}))
	// Alpha is part of the key.
	assert.Equal(t, color.NRGBA{1, 2, 3, 254}, m.Apply(color.NRGBA{1, 2, 3, 254}))
}

func TestAlphaScale(t *testing.T) {
	tests := []struct {
		factor float64
		in     uint8
		want   uint8
	}{
		{1, 200, 200},
		{0, 200, 0},
		{0.5, 200, 100},
		// Out-of-range factors are clamped.
		{2, 200, 200},
		{-1, 200, 0},
		{0.3, 0, 0},
	}
	for _, tt := range tests {
		got := NewAlphaScale(tt.factor).Apply(color.NRGBA{10, 20, 30, tt.in})
		assert.Equal(t, color.NRGBA{10, 20, 30, tt.want}, got, "factor %v", tt.factor)
	}
}

func TestChain_Order(t *testing.T) {
	key := color.NRGBA{0, 255, 0, 255}
	keyFirst := WatermarkTransform(key, 0.5)
	scaleFirst := Chain{NewAlphaScale(0.5), ChannelRemap{Old: key}}

	assert.Equal(t, color.NRGBA{}, keyFirst.Apply(key))
	// Scaling first changes the key pixel's alpha, so the remap never matches.
	assert.NotEqual(t, color.NRGBA{}, scaleFirst.Apply(key))
}

func TestIsIdentity(t *testing.T) {
	assert.True(t, IsIdentity(nil))
	assert.True(t, IsIdentity(Identity{}))
	assert.True(t, IsIdentity(AlphaScale{Factor: 1}))
	assert.True(t, IsIdentity(Chain{Identity{}, AlphaScale{Factor: 1}}))
	assert.False(t, IsIdentity(AlphaScale{Factor: 0.3}))
	assert.False(t, IsIdentity(WatermarkTransform(DefaultWatermarkKey, 1)))
}

func TestPlacement_JSON(t *testing.T) {
	p, err := ComputeWatermark(Dimensions{100, 100}, Dimensions{10, 10}, BottomRight, 2, 3)
	require.NoError(t, err)

	b, err := json.Marshal(p)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(b, &decoded))

	assert.Equal(t, "bicubic", decoded["interpolation"])
	assert.Equal(t, "rgb24", decoded["format"])

	transform := decoded["transform"].(map[string]interface{})
	assert.Equal(t, "chain", transform["kind"])
	steps := transform["steps"].([]interface{})
	require.Len(t, steps, 2)
	assert.Equal(t, "#00FF00FF", steps[0].(map[string]interface{})["old"])
	assert.Equal(t, 0.3, steps[1].(map[string]interface{})["factor"])
}
