package field

import "particlefield/internal/host"

type State int

const (
	Inactive State = iota
	Running
)

func (s State) String() string {
	switch s {
	case Inactive:
		return "inactive"
	case Running:
		return "running"
	}
	return "unknown"
}

// Renderer mounts one Field into a Host. It exposes nothing but its
// lifecycle; the particles are only observable through the surface.
type Renderer struct {
	cfg  Config
	host Host
	seed uint64

	state   State
	mount   uint64 // bumped on every Activate
	surface Surface
	field   *Field
	frame   host.FrameID

	offResize  func()
	offPointer func()
}

func NewRenderer(cfg Config, h Host, seed uint64) *Renderer {
	return &Renderer{cfg: cfg, host: h, seed: seed}
}

func (r *Renderer) State() State { return r.state }

// Activate transitions Inactive -> Running: it sizes the surface, allocates
// particles, subscribes to resize and pointer events and schedules the first
// frame. Without a surface it does nothing.
func (r *Renderer) Activate() {
	if r.state == Running {
		return
	}
	s, err := r.host.Surface()
	if err != nil || s == nil {
		return
	}
	r.surface = s
	r.field = NewField(r.cfg, r.seed)
	r.resize()

	r.offResize = r.host.Subscribe(host.EventResize, func(host.Event) { r.resize() })
	r.offPointer = r.host.Subscribe(host.EventPointerMove, func(e host.Event) {
		r.field.MovePointer(e.X, e.Y, r.host.Bounds())
	})
	r.state = Running
	r.mount++
	r.schedule()
}

// Deactivate transitions Running -> Inactive, cancelling the pending frame
// and removing both listeners. Safe to call repeatedly.
func (r *Renderer) Deactivate() {
	if r.state != Running {
		return
	}
	r.host.CancelFrame(r.frame)
	r.frame = 0
	r.offResize()
	r.offPointer()
	r.offResize, r.offPointer = nil, nil
	r.field = nil
	r.surface = nil
	r.state = Inactive
}

func (r *Renderer) resize() {
	v := r.host.Viewport()
	v.Width, v.Height = r.cfg.Fit(v.Width, v.Height)
	v.PixelRatio = CapPixelRatio(v.PixelRatio)
	r.surface.Configure(v)
	r.field.Resize(v)
}

func (r *Renderer) schedule() {
	mount := r.mount
	r.frame = r.host.RequestFrame(func(t float64) { r.step(mount, t) })
}

func (r *Renderer) step(mount uint64, t float64) {
	// A callback can outlive its mount if the host fires it after cancel.
	if r.state != Running || mount != r.mount {
		return
	}
	r.field.Step(r.surface, t)
	r.schedule()
}
