package field

import "math"

type Particle struct {
	X, Y   float64
	VX, VY float64
	R      float64
	Seed   float64 // phase offset in [0, 2π)
}

type Pointer struct {
	X, Y float64
}

// Field is the simulation state of one particle background. It is owned by
// a single Renderer and only touched from that renderer's frame callback
// and event handlers.
type Field struct {
	cfg       Config
	rng       *Rand
	view      Viewport
	particles []Particle
	pointer   Pointer
}

func NewField(cfg Config, seed uint64) *Field {
	return &Field{
		cfg:     cfg,
		rng:     NewRand(seed),
		pointer: Pointer{X: PointerOffside, Y: PointerOffside},
	}
}

// ParticleCount applies the density formula clamp(floor(area/k), min, max).
func ParticleCount(cfg Config, area float64) int {
	n := 0
	if cfg.DensityDivisor > 0 {
		n = int(math.Floor(area / cfg.DensityDivisor))
	}
	return clamp(n, cfg.MinCount, cfg.MaxCount)
}

// Resize adopts a new viewport and regenerates every particle. The old
// slice is never reused.
func (f *Field) Resize(v Viewport) {
	f.view = v
	n := ParticleCount(f.cfg, v.Area())
	ps := make([]Particle, n)
	half := f.cfg.SpeedRange / 2
	for i := range ps {
		ps[i] = Particle{
			X:    f.rng.RangeF(0, v.Width),
			Y:    f.rng.RangeF(0, v.Height),
			VX:   f.rng.RangeF(-half, half),
			VY:   f.rng.RangeF(-half, half),
			R:    f.rng.RangeF(f.cfg.RadiusMin, f.cfg.RadiusMin+f.cfg.RadiusRange),
			Seed: f.rng.RangeF(0, 2*math.Pi),
		}
	}
	f.particles = ps
}

func (f *Field) Particles() []Particle { return f.particles }

func (f *Field) Pointer() Pointer { return f.pointer }

func (f *Field) Viewport() Viewport { return f.view }

// MovePointer records a pointer position given in client coordinates.
func (f *Field) MovePointer(clientX, clientY float64, bounds Rect) {
	f.pointer.X, f.pointer.Y = bounds.Local(clientX, clientY)
}

// advance applies pointer attraction, one Euler step and the toroidal wrap.
// The pull is an undamped velocity change; MaxSpeed, when set, bounds the
// speed of every particle before it moves.
func (f *Field) advance(p *Particle) {
	dx := f.pointer.X - p.X
	dy := f.pointer.Y - p.Y
	d := math.Hypot(dx, dy)
	if d > 0 && d < f.cfg.AttractionRadius {
		p.VX += dx / d * f.cfg.AttractionStrength
		p.VY += dy / d * f.cfg.AttractionStrength
	}
	if limit := f.cfg.MaxSpeed; limit > 0 {
		if sp := math.Hypot(p.VX, p.VY); sp > limit {
			p.VX *= limit / sp
			p.VY *= limit / sp
		}
	}

	p.X += p.VX
	p.Y += p.VY

	w, h := f.view.Width, f.view.Height
	if p.X < -WrapMargin {
		p.X = w + WrapMargin
	}
	if p.X > w+WrapMargin {
		p.X = -WrapMargin
	}
	if p.Y < -WrapMargin {
		p.Y = h + WrapMargin
	}
	if p.Y > h+WrapMargin {
		p.Y = -WrapMargin
	}
}

// twinkle returns the 0..1 brightness oscillation at time t (ms).
func (f *Field) twinkle(p *Particle, t float64) float64 {
	return 0.5 + 0.5*math.Sin(t/f.cfg.TwinklePeriod+p.Seed)
}

// fill returns the particle colour and alpha at time t.
func (f *Field) fill(p *Particle, t float64) (RGB, float64) {
	mix := math.Sin(t/f.cfg.ColorPeriod+p.Seed*2)*0.5 + 0.5
	col := mixRGB(f.cfg.ColorStops[0], f.cfg.ColorStops[1], mix)
	a := f.cfg.FillAlphaBase + f.twinkle(p, t)*f.cfg.FillAlphaSwing
	return col, a * f.cfg.Opacity
}

// linkAlpha is the linear falloff 1 - d/max, clamped to [0, 1].
func linkAlpha(d, maxDist float64) float64 {
	if maxDist <= 0 {
		return 0
	}
	return clampF(1-d/maxDist, 0, 1)
}

// Step advances the simulation one frame and draws it. t is the frame
// timestamp in milliseconds.
func (f *Field) Step(s Surface, t float64) {
	s.Clear()

	for i := range f.particles {
		p := &f.particles[i]
		f.advance(p)
		col, a := f.fill(p, t)
		s.FillCircle(p.X, p.Y, p.R, col, a)
	}

	// Proximity graph, every unique pair.
	maxD := f.cfg.LinkDistance
	for i := 0; i < len(f.particles); i++ {
		a := &f.particles[i]
		for j := i + 1; j < len(f.particles); j++ {
			b := &f.particles[j]
			d := math.Hypot(a.X-b.X, a.Y-b.Y)
			if d < maxD {
				alpha := linkAlpha(d, maxD) * f.cfg.LinkAlpha * f.cfg.Opacity
				s.StrokeLine(a.X, a.Y, b.X, b.Y, f.cfg.LinkWidth, f.cfg.LinkCol, alpha)
			}
		}
	}

	maxP := f.cfg.PointerLinkDistance
	for i := range f.particles {
		p := &f.particles[i]
		d := math.Hypot(p.X-f.pointer.X, p.Y-f.pointer.Y)
		if d < maxP {
			alpha := linkAlpha(d, maxP) * f.cfg.PointerAlpha * f.cfg.Opacity
			s.StrokeLine(p.X, p.Y, f.pointer.X, f.pointer.Y, f.cfg.PointerWidth, f.cfg.PointerCol, alpha)
		}
	}

	drawBackdrop(s, f.cfg.Backdrop, f.view)
}
