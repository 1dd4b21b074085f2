package field

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// RGB is an 8-bit per channel colour.
type RGB struct {
	R, G, B uint8
}

func (c RGB) colorful() colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

// Floats returns the channels scaled to 0..1, the form GPU buffers expect.
func (c RGB) Floats() (r, g, b float32) {
	return float32(c.R) / 255, float32(c.G) / 255, float32(c.B) / 255
}

// channel floors a 0..1 channel back to 8 bits. The epsilon keeps exact
// endpoints (34/255*255) from truncating one step low.
func channel(v float64) uint8 {
	return uint8(clampF(math.Floor(v*255+1e-9), 0, 255))
}

// mixRGB blends a toward b in linear sRGB space, t in [0, 1].
func mixRGB(a, b RGB, t float64) RGB {
	c := a.colorful().BlendRgb(b.colorful(), clampF(t, 0, 1))
	return RGB{R: channel(c.R), G: channel(c.G), B: channel(c.B)}
}

var Palette = struct {
	Cyan     RGB // cyan-400
	Blush    RGB // far end of the particle fill ramp
	Teal     RGB // teal-500
	White    RGB
	PageDark RGB // gray-900 page background
}{
	Cyan:     RGB{R: 34, G: 211, B: 238},
	Blush:    RGB{R: 220, G: 184, B: 166},
	Teal:     RGB{R: 20, G: 184, B: 166},
	White:    RGB{R: 255, G: 255, B: 255},
	PageDark: RGB{R: 17, G: 24, B: 39},
}
