package field

// Radial gradients are centred 30% into the blob box. They fade out at
// Blob.Reach of the box diameter, DefaultBlobReach when unset.
const (
	blobCentre       = 0.3
	DefaultBlobReach = 0.7
)

// drawBackdrop paints the grid overlay and the two corner glows. Both are
// derived from the viewport alone, so they never move between frames.
func drawBackdrop(s Surface, b Backdrop, v Viewport) {
	if b.GridSpacing > 0 && b.GridAlpha > 0 {
		for x := 0.0; x < v.Width; x += b.GridSpacing {
			s.StrokeLine(x, 0, x, v.Height, 1, b.GridCol, b.GridAlpha)
		}
		for y := 0.0; y < v.Height; y += b.GridSpacing {
			s.StrokeLine(0, y, v.Width, y, 1, b.GridCol, b.GridAlpha)
		}
	}

	if tl := b.TopLeft; tl.Diameter > 0 && tl.Alpha > 0 {
		x, y := topLeftCentre(tl)
		s.Glow(x, y, tl.radius(), tl.Col, tl.Alpha)
	}
	if br := b.BottomRight; br.Diameter > 0 && br.Alpha > 0 {
		x, y := bottomRightCentre(br, v)
		s.Glow(x, y, br.radius(), br.Col, br.Alpha)
	}
}

func topLeftCentre(b Blob) (float64, float64) {
	return -b.OffsetX + b.Diameter*blobCentre, -b.OffsetY + b.Diameter*blobCentre
}

func bottomRightCentre(b Blob, v Viewport) (float64, float64) {
	return v.Width + b.OffsetX - b.Diameter*blobCentre, v.Height + b.OffsetY - b.Diameter*blobCentre
}

func (b Blob) radius() float64 {
	reach := b.Reach
	if reach <= 0 {
		reach = DefaultBlobReach
	}
	return b.Diameter * reach
}
