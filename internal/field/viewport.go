package field

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Viewport is the logical size of a surface plus its device pixel ratio.
type Viewport struct {
	Width, Height float64
	PixelRatio    float64
}

// CapPixelRatio treats a missing ratio as 1 and bounds it to MaxPixelRatio.
func CapPixelRatio(dpr float64) float64 {
	if dpr <= 0 || math.IsNaN(dpr) {
		return 1
	}
	if dpr > MaxPixelRatio {
		return MaxPixelRatio
	}
	return dpr
}

// BackingSize is the physical buffer size: logical size times ratio.
func (v Viewport) BackingSize() (int, int) {
	return int(v.Width * v.PixelRatio), int(v.Height * v.PixelRatio)
}

// Transform maps logical coordinates to backing-buffer pixels.
func (v Viewport) Transform() mgl32.Mat4 {
	r := float32(v.PixelRatio)
	return mgl32.Scale3D(r, r, 1)
}

func (v Viewport) Area() float64 {
	return v.Width * v.Height
}

// Rect is a surface bounding box in client (window) coordinates.
type Rect struct {
	Left, Top     float64
	Width, Height float64
}

// Local translates client coordinates into surface-local ones.
func (r Rect) Local(clientX, clientY float64) (float64, float64) {
	return clientX - r.Left, clientY - r.Top
}
