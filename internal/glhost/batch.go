package glhost

import (
	"github.com/go-gl/mathgl/mgl32"

	"particlefield/internal/field"
)

const (
	circleStride = 7 // x, y, diameter, r, g, b, a
	quadStride   = 8 // x, y, u, v, r, g, b, a
	quadVerts    = 6

	// Per-frame caps. 200 particles give 19900 pairs plus pointer and
	// grid lines, which fits under maxQuads.
	maxCircles = 1024
	maxQuads   = 20480
)

// batch collects one frame of draw calls in logical coordinates, grouped
// by program. The field emits every circle before its first line and every
// glow last, so grouping preserves painter order.
type batch struct {
	circles []float32
	lines   []float32
	glows   []float32
}

func (b *batch) reset() {
	b.circles = b.circles[:0]
	b.lines = b.lines[:0]
	b.glows = b.glows[:0]
}

func (b *batch) circle(x, y, r float64, col field.RGB, alpha float64) {
	cr, cg, cb := col.Floats()
	b.circles = append(b.circles, float32(x), float32(y), float32(2*r), cr, cg, cb, float32(alpha))
}

// line expands a stroked segment into two triangles of the given width.
func (b *batch) line(x0, y0, x1, y1, width float64, col field.RGB, alpha float64) {
	p0 := mgl32.Vec2{float32(x0), float32(y0)}
	p1 := mgl32.Vec2{float32(x1), float32(y1)}
	dir := p1.Sub(p0)
	if dir.Len() == 0 {
		return
	}
	n := mgl32.Vec2{-dir[1], dir[0]}.Normalize().Mul(float32(width) / 2)

	b.lines = appendQuad(b.lines, [4]mgl32.Vec2{p0.Add(n), p0.Sub(n), p1.Add(n), p1.Sub(n)}, col, alpha)
}

// glow covers the radius with a square whose UVs drive the radial falloff.
func (b *batch) glow(x, y, radius float64, col field.RGB, alpha float64) {
	c := mgl32.Vec2{float32(x), float32(y)}
	r := float32(radius)
	b.glows = appendQuad(b.glows, [4]mgl32.Vec2{
		c.Add(mgl32.Vec2{-r, -r}),
		c.Add(mgl32.Vec2{-r, r}),
		c.Add(mgl32.Vec2{r, -r}),
		c.Add(mgl32.Vec2{r, r}),
	}, col, alpha)
}

// appendQuad writes corners a, b, c, d (a-b one edge, c-d the opposite
// edge) as triangles a b c and c b d.
func appendQuad(buf []float32, q [4]mgl32.Vec2, col field.RGB, alpha float64) []float32 {
	uv := [4]mgl32.Vec2{{0, 0}, {0, 1}, {1, 0}, {1, 1}}
	cr, cg, cb := col.Floats()
	for _, i := range [quadVerts]int{0, 1, 2, 2, 1, 3} {
		buf = append(buf, q[i][0], q[i][1], uv[i][0], uv[i][1], cr, cg, cb, float32(alpha))
	}
	return buf
}

// projection maps logical coordinates to clip space: the viewport's pixel
// ratio scale into the backing buffer, then a y-down ortho over it.
func projection(v field.Viewport) mgl32.Mat4 {
	bw, bh := v.BackingSize()
	return mgl32.Ortho2D(0, float32(bw), float32(bh), 0).Mul4(v.Transform())
}
