package termhost

import (
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"

	"particlefield/internal/field"
)

// A terminal cell stands in for CellW x CellH logical pixels and carries a
// 2x4 braille dot matrix, so one dot covers DotW x DotH logical pixels.
const (
	CellW = 8.0
	CellH = 16.0
	DotW  = CellW / 2
	DotH  = CellH / 4

	// litAlpha is the accumulated alpha at which a dot is drawn.
	litAlpha = 0.1
)

// dotBits maps a dot's (column, row) inside a cell to its braille bit.
var dotBits = [2][4]rune{
	{0x01, 0x02, 0x04, 0x40},
	{0x08, 0x10, 0x20, 0x80},
}

type cell struct {
	ink  colorful.Color // alpha-weighted sum of dot colours
	ink0 float64        // total weight in ink
	peak float64
	bg   colorful.Color
}

// Surface rasterizes field drawing onto a tcell screen as braille dots.
// Lines and circles set dots; glows tint cell backgrounds.
type Surface struct {
	screen tcell.Screen
	view   field.Viewport
	base   colorful.Color

	cols, rows int
	dots       []float64 // cols*2 by rows*4, accumulated alpha
	cells      []cell
}

func NewSurface(screen tcell.Screen) *Surface {
	r, g, b := field.Palette.PageDark.Floats()
	return &Surface{
		screen: screen,
		base:   colorful.Color{R: float64(r), G: float64(g), B: float64(b)},
	}
}

// Configure sizes the dot grid to the viewport, clipped to the screen.
func (s *Surface) Configure(v field.Viewport) {
	s.view = v
	sw, sh := s.screen.Size()
	s.cols = min(int(math.Ceil(v.Width/CellW)), sw)
	s.rows = min(int(math.Ceil(v.Height/CellH)), sh)
	s.cols, s.rows = max(s.cols, 0), max(s.rows, 0)
	s.dots = make([]float64, s.cols*2*s.rows*4)
	s.cells = make([]cell, s.cols*s.rows)
	s.Clear()
}

func (s *Surface) Clear() {
	clear(s.dots)
	for i := range s.cells {
		s.cells[i] = cell{bg: s.base}
	}
}

func (s *Surface) plot(dx, dy int, col field.RGB, alpha float64) {
	if dx < 0 || dy < 0 || dx >= s.cols*2 || dy >= s.rows*4 || alpha <= 0 {
		return
	}
	s.dots[dy*s.cols*2+dx] += alpha

	c := &s.cells[(dy/4)*s.cols+dx/2]
	r, g, b := col.Floats()
	c.ink.R += float64(r) * alpha
	c.ink.G += float64(g) * alpha
	c.ink.B += float64(b) * alpha
	c.ink0 += alpha
	c.peak = max(c.peak, alpha)
}

func (s *Surface) FillCircle(x, y, r float64, col field.RGB, alpha float64) {
	cx, cy := int(math.Floor(x/DotW)), int(math.Floor(y/DotH))
	s.plot(cx, cy, col, alpha)
	// Radii below a dot only mark the centre dot.
	if r < DotW {
		return
	}
	rx, ry := int(r/DotW), int(r/DotH)
	for dy := -ry; dy <= ry; dy++ {
		for dx := -rx; dx <= rx; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			px := (float64(cx+dx) + 0.5) * DotW
			py := (float64(cy+dy) + 0.5) * DotH
			if math.Hypot(px-x, py-y) <= r {
				s.plot(cx+dx, cy+dy, col, alpha)
			}
		}
	}
}

// StrokeLine walks the segment in dot steps. Width is ignored; a dot is
// already wider than any stroke the field draws.
func (s *Surface) StrokeLine(x0, y0, x1, y1, width float64, col field.RGB, alpha float64) {
	ax, ay := x0/DotW, y0/DotH
	bx, by := x1/DotW, y1/DotH
	steps := int(math.Ceil(math.Max(math.Abs(bx-ax), math.Abs(by-ay))))
	if steps == 0 {
		s.plot(int(math.Floor(ax)), int(math.Floor(ay)), col, alpha)
		return
	}
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		s.plot(int(math.Floor(ax+(bx-ax)*t)), int(math.Floor(ay+(by-ay)*t)), col, alpha)
	}
}

// Glow blends col into the background of every cell whose centre lies
// inside radius, with quadratic falloff.
func (s *Surface) Glow(x, y, radius float64, col field.RGB, alpha float64) {
	if radius <= 0 {
		return
	}
	r, g, b := col.Floats()
	tint := colorful.Color{R: float64(r), G: float64(g), B: float64(b)}

	c0 := max(int((x-radius)/CellW), 0)
	c1 := min(int((x+radius)/CellW), s.cols-1)
	r0 := max(int((y-radius)/CellH), 0)
	r1 := min(int((y+radius)/CellH), s.rows-1)
	for cy := r0; cy <= r1; cy++ {
		for cx := c0; cx <= c1; cx++ {
			d := math.Hypot((float64(cx)+0.5)*CellW-x, (float64(cy)+0.5)*CellH-y)
			f := 1 - d/radius
			if f <= 0 {
				continue
			}
			c := &s.cells[cy*s.cols+cx]
			c.bg = c.bg.BlendRgb(tint, f*f*alpha)
		}
	}
}

// Present writes the rasterized frame to the screen. The caller shows it.
func (s *Surface) Present() {
	for row := 0; row < s.rows; row++ {
		for col := 0; col < s.cols; col++ {
			c := &s.cells[row*s.cols+col]
			mask := rune(0)
			for i := 0; i < 2; i++ {
				for j := 0; j < 4; j++ {
					if s.dots[(row*4+j)*s.cols*2+col*2+i] >= litAlpha {
						mask |= dotBits[i][j]
					}
				}
			}

			style := tcell.StyleDefault.Background(toTcell(c.bg))
			ch := ' '
			if mask != 0 {
				ch = 0x2800 + mask
				ink := colorful.Color{R: c.ink.R / c.ink0, G: c.ink.G / c.ink0, B: c.ink.B / c.ink0}
				style = style.Foreground(toTcell(c.bg.BlendRgb(ink, math.Min(0.4+c.peak, 1))))
			}
			s.screen.SetContent(col, row, ch, nil, style)
		}
	}
}

func toTcell(c colorful.Color) tcell.Color {
	r, g, b := c.Clamped().RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}
