package field

import (
	"errors"

	"particlefield/internal/host"
)

// ErrNoSurface is returned by hosts whose drawing surface or context is
// not available. Renderers treat it as "draw nothing".
var ErrNoSurface = errors.New("drawing surface unavailable")

// Surface is a 2D drawing target addressed in logical pixels. Configure
// sizes the backing buffer (logical size times pixel ratio) and installs
// the matching scale transform.
type Surface interface {
	Configure(v Viewport)
	Clear()
	FillCircle(x, y, r float64, col RGB, alpha float64)
	StrokeLine(x0, y0, x1, y1, width float64, col RGB, alpha float64)
	Glow(x, y, radius float64, col RGB, alpha float64)
}

// Host is the platform a Renderer is mounted into: its surface, a
// per-frame scheduler and the resize/pointer notification sources.
type Host interface {
	Surface() (Surface, error)
	// Viewport returns the current container size and raw device pixel ratio.
	Viewport() Viewport
	// Bounds returns the surface rectangle in client coordinates.
	Bounds() Rect

	RequestFrame(fn host.FrameFunc) host.FrameID
	CancelFrame(id host.FrameID)
	Subscribe(t host.EventType, fn host.EventHandler) func()
}
