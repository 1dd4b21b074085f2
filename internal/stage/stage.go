// Package stage keeps one section background mounted on a host at a time
// and switches between sections on key presses.
package stage

import (
	"errors"
	"fmt"
	"log"

	"particlefield/internal/field"
	"particlefield/internal/host"
)

var ErrNoSection = errors.New("no such section")

type Stage struct {
	host     field.Host
	sections []field.Config
	seed     uint64

	current  int // -1 when nothing is mounted
	renderer *field.Renderer
	offKeys  func()
}

func New(h field.Host, sections []field.Config, seed uint64) *Stage {
	return &Stage{host: h, sections: sections, seed: seed, current: -1}
}

// Start mounts section i and begins listening for switch keys.
func (s *Stage) Start(i int) error {
	if err := s.Show(i); err != nil {
		return err
	}
	if s.offKeys == nil {
		s.offKeys = s.host.Subscribe(host.EventKey, s.onKey)
	}
	return nil
}

// Stop unmounts the current section and stops listening for keys.
func (s *Stage) Stop() {
	if s.offKeys != nil {
		s.offKeys()
		s.offKeys = nil
	}
	s.unmount()
}

// Show replaces the mounted renderer with a fresh one for section i.
// Showing the section that is already mounted does nothing.
func (s *Stage) Show(i int) error {
	if i < 0 || i >= len(s.sections) {
		return fmt.Errorf("%w: %d", ErrNoSection, i)
	}
	if i == s.current {
		return nil
	}
	s.unmount()

	cfg := s.sections[i]
	s.renderer = field.NewRenderer(cfg, s.host, sectionSeed(s.seed, i))
	s.renderer.Activate()
	s.current = i
	log.Printf("section %s: %s", cfg.Name, s.renderer.State())
	return nil
}

// Next advances to the following section, wrapping around.
func (s *Stage) Next() error {
	if len(s.sections) == 0 {
		return ErrNoSection
	}
	return s.Show((s.current + 1) % len(s.sections))
}

// Current returns the mounted section, if any.
func (s *Stage) Current() (field.Config, bool) {
	if s.current < 0 {
		return field.Config{}, false
	}
	return s.sections[s.current], true
}

// Renderer returns the mounted renderer or nil.
func (s *Stage) Renderer() *field.Renderer { return s.renderer }

func (s *Stage) unmount() {
	if s.renderer != nil {
		s.renderer.Deactivate()
		s.renderer = nil
	}
	s.current = -1
}

func (s *Stage) onKey(e host.Event) {
	var err error
	switch {
	case e.Key >= '1' && e.Key <= '9':
		err = s.Show(int(e.Key - '1'))
	case e.Key == 'n' || e.Key == '\t':
		err = s.Next()
	default:
		return
	}
	if err != nil {
		log.Printf("switch section: %v", err)
	}
}

// sectionSeed mixes the run seed with the section index so every section
// draws a different but reproducible field.
func sectionSeed(seed uint64, i int) uint64 {
	return seed ^ uint64(i+1)*0x9E3779B185EBCA87
}

// IndexOf finds a section by name.
func IndexOf(sections []field.Config, name string) (int, error) {
	for i, c := range sections {
		if c.Name == name {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", field.ErrUnknownPreset, name)
}
