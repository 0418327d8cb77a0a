package placement

import (
	"encoding/json"
	"fmt"
	"image/color"
	"math"
)

// ColorTransform rewrites a single non-premultiplied pixel during a draw.
type ColorTransform interface {
	Apply(c color.NRGBA) color.NRGBA
}

// Identity leaves every pixel unchanged.
type Identity struct{}

func (Identity) Apply(c color.NRGBA) color.NRGBA { return c }

func (Identity) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Kind string `json:"kind"`
	}{"identity"})
}

// ChannelRemap replaces pixels that exactly equal Old with New. Every channel,
// alpha included, must match for the substitution to happen.
type ChannelRemap struct {
	Old color.NRGBA
	New color.NRGBA
}

func (m ChannelRemap) Apply(c color.NRGBA) color.NRGBA {
	if c == m.Old {
		return m.New
	}
	return c
}

func (m ChannelRemap) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Kind string `json:"kind"`
		Old  string `json:"old"`
		New  string `json:"new"`
	}{"channel-remap", hexNRGBA(m.Old), hexNRGBA(m.New)})
}

// AlphaScale multiplies the alpha channel by Factor and leaves RGB alone.
type AlphaScale struct {
	Factor float64
}

// NewAlphaScale returns an AlphaScale with factor clamped to [0, 1].
func NewAlphaScale(factor float64) AlphaScale {
	return AlphaScale{Factor: math.Max(0, math.Min(1, factor))}
}

func (s AlphaScale) Apply(c color.NRGBA) color.NRGBA {
	c.A = uint8(math.Round(float64(c.A) * s.Factor))
	return c
}

func (s AlphaScale) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Kind   string  `json:"kind"`
		Factor float64 `json:"factor"`
	}{"alpha-scale", s.Factor})
}

// Chain applies its transforms in order, each seeing the previous one's output.
type Chain []ColorTransform

func (ch Chain) Apply(c color.NRGBA) color.NRGBA {
	for _, t := range ch {
		c = t.Apply(c)
	}
	return c
}

func (ch Chain) MarshalJSON() ([]byte, error) {
	steps := []ColorTransform(ch)
	if steps == nil {
		steps = []ColorTransform{}
	}
	return json.Marshal(struct {
		Kind  string           `json:"kind"`
		Steps []ColorTransform `json:"steps"`
	}{"chain", steps})
}

// IsIdentity reports whether t cannot change any pixel, so a draw may skip
// the per-pixel pass.
func IsIdentity(t ColorTransform) bool {
	switch v := t.(type) {
	case nil, Identity:
		return true
	case AlphaScale:
		return v.Factor == 1
	case ChannelRemap:
		return v.Old == v.New
	case Chain:
		for _, step := range v {
			if !IsIdentity(step) {
				return false
			}
		}
		return true
	}
	return false
}

func hexNRGBA(c color.NRGBA) string {
	return fmt.Sprintf("#%02X%02X%02X%02X", c.R, c.G, c.B, c.A)
}
