package glhost

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"particlefield/internal/field"
)

// glOffset converts a byte offset to unsafe.Pointer for OpenGL VBO offset params.
func glOffset(n int) unsafe.Pointer { return unsafe.Pointer(uintptr(n)) }

// Surface is a field.Surface backed by three GL programs. Draw calls are
// batched in logical pixels and submitted by Flush once per frame.
type Surface struct {
	circleProg uint32
	lineProg   uint32
	glowProg   uint32

	circleVAO, circleVBO uint32
	quadVAO, quadVBO     uint32

	circleUProj  int32
	circleUScale int32
	lineUProj    int32
	glowUProj    int32

	view  field.Viewport
	proj  mgl32.Mat4
	batch batch
}

func NewSurface() (*Surface, error) {
	circleProg, err := linkProgram(circleVertSrc, circleFragSrc)
	if err != nil {
		return nil, fmt.Errorf("circle program: %w", err)
	}
	lineProg, err := linkProgram(quadVertSrc, lineFragSrc)
	if err != nil {
		gl.DeleteProgram(circleProg)
		return nil, fmt.Errorf("line program: %w", err)
	}
	glowProg, err := linkProgram(quadVertSrc, glowFragSrc)
	if err != nil {
		gl.DeleteProgram(circleProg)
		gl.DeleteProgram(lineProg)
		return nil, fmt.Errorf("glow program: %w", err)
	}

	s := &Surface{
		circleProg: circleProg,
		lineProg:   lineProg,
		glowProg:   glowProg,
		proj:       mgl32.Ident4(),
	}

	// Circle VAO/VBO: streaming buffer for point sprites.
	gl.GenVertexArrays(1, &s.circleVAO)
	gl.GenBuffers(1, &s.circleVBO)
	gl.BindVertexArray(s.circleVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, s.circleVBO)

	stride := int32(circleStride * 4)
	gl.BufferData(gl.ARRAY_BUFFER, maxCircles*int(stride), nil, gl.STREAM_DRAW)
	// aPos (vec2)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, stride, glOffset(0))
	// aSize (float)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 1, gl.FLOAT, false, stride, glOffset(2*4))
	// aColor (vec4)
	gl.EnableVertexAttribArray(2)
	gl.VertexAttribPointer(2, 4, gl.FLOAT, false, stride, glOffset(3*4))

	// Quad VAO/VBO: triangles for lines and glows.
	gl.GenVertexArrays(1, &s.quadVAO)
	gl.GenBuffers(1, &s.quadVBO)
	gl.BindVertexArray(s.quadVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, s.quadVBO)

	stride = int32(quadStride * 4)
	gl.BufferData(gl.ARRAY_BUFFER, maxQuads*quadVerts*int(stride), nil, gl.STREAM_DRAW)
	// aPos (vec2)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, stride, glOffset(0))
	// aUV (vec2)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 2, gl.FLOAT, false, stride, glOffset(2*4))
	// aColor (vec4)
	gl.EnableVertexAttribArray(2)
	gl.VertexAttribPointer(2, 4, gl.FLOAT, false, stride, glOffset(4*4))

	s.circleUProj = gl.GetUniformLocation(circleProg, gl.Str("uProj\x00"))
	s.circleUScale = gl.GetUniformLocation(circleProg, gl.Str("uScale\x00"))
	s.lineUProj = gl.GetUniformLocation(lineProg, gl.Str("uProj\x00"))
	s.glowUProj = gl.GetUniformLocation(glowProg, gl.Str("uProj\x00"))

	gl.BindVertexArray(0)
	return s, nil
}

func (s *Surface) Destroy() {
	for _, id := range []uint32{s.circleVBO, s.quadVBO} {
		if id != 0 {
			gl.DeleteBuffers(1, &id)
		}
	}
	for _, id := range []uint32{s.circleVAO, s.quadVAO} {
		if id != 0 {
			gl.DeleteVertexArrays(1, &id)
		}
	}
	for _, id := range []uint32{s.circleProg, s.lineProg, s.glowProg} {
		if id != 0 {
			gl.DeleteProgram(id)
		}
	}
}

func (s *Surface) Configure(v field.Viewport) {
	s.view = v
	s.proj = projection(v)
}

func (s *Surface) Clear() { s.batch.reset() }

func (s *Surface) FillCircle(x, y, r float64, col field.RGB, alpha float64) {
	s.batch.circle(x, y, r, col, alpha)
}

func (s *Surface) StrokeLine(x0, y0, x1, y1, width float64, col field.RGB, alpha float64) {
	s.batch.line(x0, y0, x1, y1, width, col, alpha)
}

func (s *Surface) Glow(x, y, radius float64, col field.RGB, alpha float64) {
	s.batch.glow(x, y, radius, col, alpha)
}

// Flush draws the last completed frame. scale is framebuffer pixels per
// logical pixel; the surface is pinned to the top of a framebuffer of
// height fbH and may extend past its bottom edge.
func (s *Surface) Flush(fbH int, scale float64) {
	if s.view.Width <= 0 || s.view.Height <= 0 {
		return
	}
	w := int32(s.view.Width * scale)
	h := int32(s.view.Height * scale)
	gl.Viewport(0, int32(fbH)-h, w, h)

	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	if n := min(len(s.batch.circles)/circleStride, maxCircles); n > 0 {
		gl.UseProgram(s.circleProg)
		gl.UniformMatrix4fv(s.circleUProj, 1, false, &s.proj[0])
		gl.Uniform1f(s.circleUScale, float32(scale))
		gl.BindVertexArray(s.circleVAO)
		gl.BindBuffer(gl.ARRAY_BUFFER, s.circleVBO)
		gl.BufferData(gl.ARRAY_BUFFER, n*circleStride*4, gl.Ptr(s.batch.circles), gl.STREAM_DRAW)
		gl.DrawArrays(gl.POINTS, 0, int32(n))
	}

	s.drawQuads(s.lineProg, s.lineUProj, s.batch.lines)

	// Glows lighten what is underneath.
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE)
	s.drawQuads(s.glowProg, s.glowUProj, s.batch.glows)

	gl.Disable(gl.BLEND)
	gl.BindVertexArray(0)
}

func (s *Surface) drawQuads(prog uint32, uProj int32, buf []float32) {
	n := min(len(buf)/(quadStride*quadVerts), maxQuads) * quadVerts
	if n == 0 {
		return
	}
	gl.UseProgram(prog)
	gl.UniformMatrix4fv(uProj, 1, false, &s.proj[0])
	gl.BindVertexArray(s.quadVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, s.quadVBO)
	gl.BufferData(gl.ARRAY_BUFFER, n*quadStride*4, gl.Ptr(buf), gl.STREAM_DRAW)
	gl.DrawArrays(gl.TRIANGLES, 0, int32(n))
}
