// Package termhost runs particle fields in a terminal, one braille cell per
// 8x16 logical pixels.
package termhost

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"

	"particlefield/internal/field"
	"particlefield/internal/host"
)

const frameInterval = 16 * time.Millisecond // ~60 FPS

type Host struct {
	*host.Loop

	screen  tcell.Screen
	surface *Surface
}

// Open initializes the terminal and enables mouse motion reporting.
func Open() (*Host, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("new screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("init screen: %w", err)
	}
	screen.EnableMouse(tcell.MouseMotionEvents)
	screen.HideCursor()
	return New(screen), nil
}

// New wraps an initialized screen.
func New(screen tcell.Screen) *Host {
	return &Host{
		Loop:    host.NewLoop(),
		screen:  screen,
		surface: NewSurface(screen),
	}
}

func (h *Host) Close() { h.screen.Fini() }

func (h *Host) Surface() (field.Surface, error) { return h.surface, nil }

func (h *Host) Viewport() field.Viewport {
	cols, rows := h.screen.Size()
	return field.Viewport{Width: float64(cols) * CellW, Height: float64(rows) * CellH, PixelRatio: 1}
}

func (h *Host) Bounds() field.Rect {
	v := h.Viewport()
	return field.Rect{Width: v.Width, Height: v.Height}
}

// handle translates one terminal event onto the bus. It returns false
// when the user asked to quit.
func (h *Host) handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyTab:
			h.Emit(host.Event{Type: host.EventKey, Key: '\t'})
		case tcell.KeyRune:
			if ev.Rune() == 'q' {
				return false
			}
			h.Emit(host.Event{Type: host.EventKey, Key: ev.Rune()})
		}

	case *tcell.EventMouse:
		// Point at the centre of the hovered cell.
		x, y := ev.Position()
		h.Emit(host.Event{
			Type: host.EventPointerMove,
			X:    (float64(x) + 0.5) * CellW,
			Y:    (float64(y) + 0.5) * CellH,
		})

	case *tcell.EventResize:
		h.screen.Sync()
		h.Emit(host.Event{Type: host.EventResize})
	}
	return true
}

// frame runs the callbacks due at t (ms) and puts the result on screen.
func (h *Host) frame(t float64) {
	h.RunFrame(t)
	h.surface.Present()
	h.screen.Show()
}

// Run reads events on a separate goroutine and drives frames from a
// ticker until the user quits. Field state is only touched here.
func (h *Host) Run() {
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := h.screen.PollEvent()
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	}()

	start := time.Now()
	for {
		select {
		case ev := <-eventChan:
			if !h.handle(ev) {
				return
			}
		case now := <-ticker.C:
			h.frame(float64(now.Sub(start)) / float64(time.Millisecond))
		}
	}
}
