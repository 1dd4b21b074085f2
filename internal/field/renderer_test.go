package field

import (
	"testing"

	"particlefield/internal/host"
)

type fakeHost struct {
	*host.Loop
	surface Surface
	err     error
	view    Viewport
	bounds  Rect
}

func newFakeHost(s Surface) *fakeHost {
	return &fakeHost{
		Loop:    host.NewLoop(),
		surface: s,
		view:    Viewport{Width: 800, Height: 600, PixelRatio: 1},
	}
}

func (h *fakeHost) Surface() (Surface, error) {
	if h.err != nil {
		return nil, h.err
	}
	return h.surface, nil
}

func (h *fakeHost) Viewport() Viewport { return h.view }
func (h *fakeHost) Bounds() Rect       { return h.bounds }

func TestRendererLifecycle(t *testing.T) {
	s := &recordingSurface{}
	h := newFakeHost(s)
	r := NewRenderer(About, h, 1)

	if r.State() != Inactive {
		t.Fatalf("new renderer state = %v", r.State())
	}
	r.Activate()
	if r.State() != Running {
		t.Fatalf("state after Activate = %v", r.State())
	}
	if h.Pending() != 1 || h.Count(host.EventResize) != 1 || h.Count(host.EventPointerMove) != 1 {
		t.Fatalf("pending=%d resize=%d pointer=%d", h.Pending(), h.Count(host.EventResize), h.Count(host.EventPointerMove))
	}
	if len(s.configured) != 1 || len(r.field.Particles()) != 50 {
		t.Fatalf("configured=%d particles=%d", len(s.configured), len(r.field.Particles()))
	}

	// Activating twice must not double-register anything.
	r.Activate()
	if h.Pending() != 1 || h.Count(host.EventResize) != 1 {
		t.Fatal("second Activate re-registered")
	}

	for i := 0; i < 3; i++ {
		if n := h.RunFrame(float64(i) * 16); n != 1 {
			t.Fatalf("frame %d ran %d callbacks", i, n)
		}
	}
	if s.clears != 3 || s.count("circle") != 50 {
		t.Errorf("clears=%d circles=%d", s.clears, s.count("circle"))
	}

	r.Deactivate()
	r.Deactivate()
	if r.State() != Inactive {
		t.Fatalf("state after Deactivate = %v", r.State())
	}
	if h.Pending() != 0 || h.Count(host.EventResize) != 0 || h.Count(host.EventPointerMove) != 0 {
		t.Errorf("leaked: pending=%d resize=%d pointer=%d", h.Pending(), h.Count(host.EventResize), h.Count(host.EventPointerMove))
	}
	if n := h.RunFrame(100); n != 0 {
		t.Errorf("%d frames ran after teardown", n)
	}
}

func TestRendererTeardownBeforeActivate(t *testing.T) {
	h := newFakeHost(&recordingSurface{})
	r := NewRenderer(Hero, h, 1)
	r.Deactivate()
	r.Deactivate()
	if r.State() != Inactive || h.Pending() != 0 {
		t.Error("teardown of an inactive renderer changed state")
	}
}

func TestRendererWithoutSurfaceIsNoop(t *testing.T) {
	h := newFakeHost(nil)
	h.err = ErrNoSurface
	r := NewRenderer(Hero, h, 1)
	r.Activate()

	if r.State() != Inactive {
		t.Errorf("state = %v, want inactive", r.State())
	}
	if h.Pending() != 0 || h.Count(host.EventResize) != 0 || h.Count(host.EventPointerMove) != 0 {
		t.Error("renderer without a surface registered callbacks")
	}
	r.Deactivate()
}

func TestRendererResizeEvent(t *testing.T) {
	s := &recordingSurface{}
	h := newFakeHost(s)
	r := NewRenderer(Hero, h, 1)
	r.Activate()
	before := r.field.Particles()

	h.view = Viewport{Width: 2000, Height: 1500, PixelRatio: 3}
	h.Emit(host.Event{Type: host.EventResize})

	after := r.field.Particles()
	if len(after) != ParticleCount(Hero, 2000*1500) {
		t.Errorf("after resize %d particles, want %d", len(after), ParticleCount(Hero, 2000*1500))
	}
	if &after[0] == &before[0] {
		t.Error("resize kept the old particle slice")
	}
	last := s.configured[len(s.configured)-1]
	if last.PixelRatio != MaxPixelRatio || last.Width != 2000 || last.Height != 1500 {
		t.Errorf("surface configured with %+v", last)
	}
	r.Deactivate()
}

func TestRendererFitsContactHeight(t *testing.T) {
	s := &recordingSurface{}
	h := newFakeHost(s)
	h.view = Viewport{Width: 1200, Height: 500}
	r := NewRenderer(Contact, h, 1)
	r.Activate()
	defer r.Deactivate()

	v := s.configured[0]
	if v.Height != 600 || v.PixelRatio != 1 {
		t.Errorf("configured viewport = %+v", v)
	}
}

func TestRendererPointerEvent(t *testing.T) {
	h := newFakeHost(&recordingSurface{})
	h.bounds = Rect{Left: 20, Top: 200, Width: 800, Height: 600}
	r := NewRenderer(About, h, 1)
	r.Activate()
	defer r.Deactivate()

	if p := r.field.Pointer(); p.X != PointerOffside || p.Y != PointerOffside {
		t.Fatalf("initial pointer = %+v", p)
	}
	h.Emit(host.Event{Type: host.EventPointerMove, X: 120, Y: 250})
	if p := r.field.Pointer(); p.X != 100 || p.Y != 50 {
		t.Errorf("pointer = %+v, want (100, 50)", p)
	}
}

func TestRendererRemountIgnoresStaleFrame(t *testing.T) {
	h := newFakeHost(&recordingSurface{})
	r := NewRenderer(About, h, 1)

	r.Activate()
	r.Deactivate()
	r.Activate()
	if h.Pending() != 1 {
		t.Fatalf("pending after remount = %d", h.Pending())
	}

	// A stale callback from the first mount must not start a second loop.
	r.step(r.mount-1, 0)
	if h.Pending() != 1 {
		t.Errorf("stale frame scheduled another callback, pending=%d", h.Pending())
	}
	r.Deactivate()
}

func TestIndependentRenderers(t *testing.T) {
	h := newFakeHost(&recordingSurface{})
	a := NewRenderer(Hero, h, 1)
	b := NewRenderer(About, h, 2)
	a.Activate()
	b.Activate()
	if h.Pending() != 2 {
		t.Fatalf("pending = %d, want 2", h.Pending())
	}

	a.Deactivate()
	if b.State() != Running || h.Pending() != 1 || h.Count(host.EventResize) != 1 {
		t.Error("tearing down one renderer disturbed the other")
	}
	h.RunFrame(16)
	if h.Pending() != 1 {
		t.Errorf("remaining renderer did not reschedule, pending=%d", h.Pending())
	}
	b.Deactivate()
}

func TestStateString(t *testing.T) {
	if Inactive.String() != "inactive" || Running.String() != "running" || State(9).String() != "unknown" {
		t.Error("unexpected state names")
	}
}
