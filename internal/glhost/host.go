// Package glhost runs particle fields in a glfw window drawn with OpenGL.
package glhost

import (
	"fmt"
	"log"
	"runtime"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"particlefield/internal/field"
	"particlefield/internal/host"
)

// Host owns the window, its GL context and the frame loop. All methods
// must be called from the goroutine that called Open.
type Host struct {
	*host.Loop

	window  *glfw.Window
	surface *Surface // nil when the GL programs failed to build
}

// glfw must run on the main thread; package init runs there.
func init() { runtime.LockOSThread() }

// Open creates the window and GL context. Call it from the main goroutine.
func Open(title string, width, height int) (*Host, error) {
	window, err := initWindow(title, width, height)
	if err != nil {
		return nil, err
	}
	if err := gl.Init(); err != nil {
		window.Destroy()
		glfw.Terminate()
		return nil, fmt.Errorf("gl init: %w", err)
	}

	gl.Disable(gl.DEPTH_TEST)
	gl.Disable(gl.CULL_FACE)
	gl.Enable(gl.PROGRAM_POINT_SIZE)
	r, g, b := field.Palette.PageDark.Floats()
	gl.ClearColor(r, g, b, 1.0)

	h := &Host{Loop: host.NewLoop(), window: window}

	// Without a surface every renderer stays inactive; the window still runs.
	if s, err := NewSurface(); err != nil {
		log.Printf("gl surface unavailable (continuing without particles): %v", err)
	} else {
		h.surface = s
	}

	resize := func() { h.Emit(host.Event{Type: host.EventResize}) }
	window.SetSizeCallback(func(*glfw.Window, int, int) { resize() })
	window.SetFramebufferSizeCallback(func(*glfw.Window, int, int) { resize() })
	window.SetContentScaleCallback(func(*glfw.Window, float32, float32) { resize() })
	window.SetCursorPosCallback(func(_ *glfw.Window, x, y float64) {
		h.Emit(host.Event{Type: host.EventPointerMove, X: x, Y: y})
	})
	window.SetCharCallback(func(w *glfw.Window, c rune) {
		if c == 'q' {
			w.SetShouldClose(true)
			return
		}
		h.Emit(host.Event{Type: host.EventKey, Key: c})
	})
	window.SetKeyCallback(func(w *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		if action != glfw.Press {
			return
		}
		switch key {
		case glfw.KeyEscape:
			w.SetShouldClose(true)
		case glfw.KeyTab:
			h.Emit(host.Event{Type: host.EventKey, Key: '\t'})
		}
	})

	return h, nil
}

func (h *Host) Close() {
	if h.surface != nil {
		h.surface.Destroy()
	}
	h.window.Destroy()
	glfw.Terminate()
}

func (h *Host) SetTitle(title string) { h.window.SetTitle(title) }

func (h *Host) Surface() (field.Surface, error) {
	if h.surface == nil {
		return nil, field.ErrNoSurface
	}
	return h.surface, nil
}

// Viewport reports the window size in screen coordinates and the ratio of
// framebuffer pixels to them.
func (h *Host) Viewport() field.Viewport {
	w, ht := h.window.GetSize()
	return field.Viewport{Width: float64(w), Height: float64(ht), PixelRatio: h.scale()}
}

// Bounds is the whole client area; the surface is pinned to its origin.
func (h *Host) Bounds() field.Rect {
	w, ht := h.window.GetSize()
	return field.Rect{Width: float64(w), Height: float64(ht)}
}

func (h *Host) scale() float64 {
	w, _ := h.window.GetSize()
	fbW, _ := h.window.GetFramebufferSize()
	if w <= 0 {
		return 1
	}
	return float64(fbW) / float64(w)
}

// Run drives frames until the window is closed. Frame timestamps are
// milliseconds since Run started.
func (h *Host) Run() {
	start := glfw.GetTime()
	for !h.window.ShouldClose() {
		glfw.PollEvents()

		fbW, fbH := h.window.GetFramebufferSize()
		if fbW <= 0 || fbH <= 0 {
			// Minimized; keep the callbacks queued until we can draw.
			glfw.WaitEvents()
			continue
		}

		gl.Viewport(0, 0, int32(fbW), int32(fbH))
		gl.Clear(gl.COLOR_BUFFER_BIT)

		h.RunFrame((glfw.GetTime() - start) * 1000)
		if h.surface != nil {
			h.surface.Flush(fbH, h.scale())
		}
		h.window.SwapBuffers()
	}
}
