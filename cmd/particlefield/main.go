// Command particlefield shows the portfolio section backgrounds in a
// window or a terminal. Keys 1-5 switch section, n cycles, Esc quits.
package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"particlefield/internal/ambience"
	"particlefield/internal/config"
	"particlefield/internal/field"
	"particlefield/internal/glhost"
	"particlefield/internal/host"
	"particlefield/internal/stage"
	"particlefield/internal/termhost"
)

// loopHost is a field.Host that also owns its frame loop.
type loopHost interface {
	field.Host
	Run()
	Close()
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "particlefield: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	sections := make([]field.Config, len(field.Sections))
	for i, c := range field.Sections {
		c.MaxSpeed = cfg.MaxSpeed
		sections[i] = c
	}
	start, err := stage.IndexOf(sections, cfg.Section)
	if err != nil {
		return err
	}

	var h loopHost
	switch cfg.Backend {
	case config.BackendTerm:
		th, err := termhost.Open()
		if err != nil {
			return err
		}
		// The screen owns the terminal now.
		log.SetOutput(io.Discard)
		h = th
	default:
		gh, err := glhost.Open("particlefield", cfg.Width, cfg.Height)
		if err != nil {
			return err
		}
		h = gh
	}
	defer h.Close()

	if cfg.Audio {
		pad, err := ambience.Start()
		if err != nil {
			log.Printf("audio init failed (continuing without sound): %v", err)
		} else {
			defer pad.Close()
			h.Subscribe(host.EventPointerMove, pad.Pointer)
		}
	}

	st := stage.New(h, sections, cfg.Seed)
	if err := st.Start(start); err != nil {
		return err
	}
	defer st.Stop()

	if gh, ok := h.(*glhost.Host); ok {
		setTitle := func() {
			if c, ok := st.Current(); ok {
				gh.SetTitle("particlefield - " + c.Name)
			}
		}
		setTitle()
		h.Subscribe(host.EventKey, func(host.Event) { setTitle() })
	}

	h.Run()
	return nil
}
