package termhost

import (
	"testing"

	"github.com/gdamore/tcell/v2"

	"particlefield/internal/field"
	"particlefield/internal/host"
)

func newScreen(t *testing.T, cols, rows int) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("init: %v", err)
	}
	screen.SetSize(cols, rows)
	t.Cleanup(screen.Fini)
	return screen
}

func runeAt(s tcell.Screen, x, y int) rune {
	r, _, _, _ := s.GetContent(x, y)
	return r
}

func TestSurfaceDotBits(t *testing.T) {
	screen := newScreen(t, 4, 2)
	s := NewSurface(screen)
	s.Configure(field.Viewport{Width: 4 * CellW, Height: 2 * CellH, PixelRatio: 1})

	// Dot (1, 1) of cell (0, 0) and dot (0, 3) of cell (1, 1).
	s.FillCircle(DotW+1, DotH+1, 1, field.Palette.White, 0.5)
	s.FillCircle(CellW+1, CellH+3*DotH+1, 1, field.Palette.White, 0.5)
	s.Present()

	if got := runeAt(screen, 0, 0); got != 0x2810 {
		t.Errorf("cell (0,0) = %U, want U+2810", got)
	}
	if got := runeAt(screen, 1, 1); got != 0x2840 {
		t.Errorf("cell (1,1) = %U, want U+2840", got)
	}
	if got := runeAt(screen, 3, 0); got != ' ' {
		t.Errorf("empty cell = %q", got)
	}
}

func TestSurfaceFaintDotsStayDark(t *testing.T) {
	screen := newScreen(t, 2, 1)
	s := NewSurface(screen)
	s.Configure(field.Viewport{Width: 2 * CellW, Height: CellH, PixelRatio: 1})

	s.FillCircle(1, 1, 1, field.Palette.White, litAlpha/2)
	s.Present()
	if got := runeAt(screen, 0, 0); got != ' ' {
		t.Errorf("faint dot drawn as %U", got)
	}

	// Accumulated alpha crosses the threshold.
	s.FillCircle(1, 1, 1, field.Palette.White, litAlpha/2)
	s.Present()
	if got := runeAt(screen, 0, 0); got != 0x2801 {
		t.Errorf("accumulated dot = %U, want U+2801", got)
	}
}

func TestSurfaceHorizontalLine(t *testing.T) {
	screen := newScreen(t, 3, 1)
	s := NewSurface(screen)
	s.Configure(field.Viewport{Width: 3 * CellW, Height: CellH, PixelRatio: 1})

	// Top dot row across all three cells.
	s.StrokeLine(0, 1, 3*CellW-1, 1, 1, field.Palette.Cyan, 1)
	s.Present()
	for x := 0; x < 3; x++ {
		if got := runeAt(screen, x, 0); got != 0x2809 {
			t.Errorf("cell %d = %U, want U+2809", x, got)
		}
	}
}

func TestSurfaceClearAndClip(t *testing.T) {
	screen := newScreen(t, 2, 2)
	s := NewSurface(screen)
	// Taller than the screen: rows beyond it are clipped.
	s.Configure(field.Viewport{Width: 2 * CellW, Height: 10 * CellH, PixelRatio: 1})
	if s.rows != 2 || s.cols != 2 {
		t.Fatalf("grid = %dx%d, want 2x2", s.cols, s.rows)
	}

	s.FillCircle(1, 1, 1, field.Palette.White, 1)
	s.FillCircle(1, 9*CellH, 1, field.Palette.White, 1)
	s.Clear()
	s.Present()
	if got := runeAt(screen, 0, 0); got != ' ' {
		t.Errorf("cell after Clear = %U", got)
	}
}

func TestSurfaceGlowTintsBackground(t *testing.T) {
	screen := newScreen(t, 10, 4)
	s := NewSurface(screen)
	s.Configure(field.Viewport{Width: 10 * CellW, Height: 4 * CellH, PixelRatio: 1})

	s.Glow(CellW/2, CellH/2, 3*CellW, field.Palette.Cyan, 1)
	s.Present()

	_, _, near, _ := screen.GetContent(0, 0)
	_, _, far, _ := screen.GetContent(9, 3)
	_, nearBg, _ := near.Decompose()
	_, farBg, _ := far.Decompose()
	_, ng, _ := nearBg.RGB()
	_, fg, _ := farBg.RGB()
	if ng <= fg {
		t.Errorf("glow did not brighten its centre: near g=%d far g=%d", ng, fg)
	}
	if want := int32(field.Palette.PageDark.G); fg != want {
		t.Errorf("cell outside the glow g=%d, want page %d", fg, want)
	}
}

func TestHostViewportAndBounds(t *testing.T) {
	h := New(newScreen(t, 80, 24))
	v := h.Viewport()
	if v.Width != 640 || v.Height != 384 || v.PixelRatio != 1 {
		t.Errorf("viewport = %+v", v)
	}
	if b := h.Bounds(); b.Left != 0 || b.Top != 0 || b.Width != 640 || b.Height != 384 {
		t.Errorf("bounds = %+v", b)
	}
	if s, err := h.Surface(); err != nil || s == nil {
		t.Errorf("Surface() = %v, %v", s, err)
	}
}

func TestHostEvents(t *testing.T) {
	h := New(newScreen(t, 20, 10))
	var got []host.Event
	record := func(e host.Event) { got = append(got, e) }
	h.Subscribe(host.EventPointerMove, record)
	h.Subscribe(host.EventKey, record)
	h.Subscribe(host.EventResize, record)

	if !h.handle(tcell.NewEventMouse(3, 2, tcell.ButtonNone, tcell.ModNone)) {
		t.Fatal("mouse event ended the loop")
	}
	h.handle(tcell.NewEventKey(tcell.KeyRune, '4', tcell.ModNone))
	h.handle(tcell.NewEventKey(tcell.KeyTab, 0, tcell.ModNone))
	h.handle(tcell.NewEventResize(30, 12))

	if len(got) != 4 {
		t.Fatalf("got %d events, want 4", len(got))
	}
	if p := got[0]; p.Type != host.EventPointerMove || p.X != 28 || p.Y != 40 {
		t.Errorf("pointer event = %+v, want centre of cell (3,2)", p)
	}
	if got[1].Key != '4' || got[2].Key != '\t' || got[3].Type != host.EventResize {
		t.Errorf("events = %+v", got[1:])
	}
}

func TestHostQuitKeys(t *testing.T) {
	h := New(newScreen(t, 20, 10))
	for _, ev := range []*tcell.EventKey{
		tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone),
		tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl),
		tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone),
	} {
		if h.handle(ev) {
			t.Errorf("key %v did not quit", ev.Name())
		}
	}
}

func TestHostFrameDrawsRenderer(t *testing.T) {
	screen := newScreen(t, 40, 12)
	h := New(screen)
	r := field.NewRenderer(field.About, h, 3)
	r.Activate()
	defer r.Deactivate()

	h.frame(16)
	lit := 0
	for y := 0; y < 12; y++ {
		for x := 0; x < 40; x++ {
			if c := runeAt(screen, x, y); c >= 0x2800 && c <= 0x28FF {
				lit++
			}
		}
	}
	if lit == 0 {
		t.Error("no particles reached the screen")
	}
	if h.Pending() != 1 {
		t.Errorf("renderer did not reschedule, pending=%d", h.Pending())
	}
}
