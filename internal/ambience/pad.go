// Package ambience plays a quiet generative pad that swells while the
// pointer moves across the field.
package ambience

import (
	"fmt"
	"math"
	"sync/atomic"
	"time"

	"github.com/hajimehoshi/oto/v2"

	"particlefield/internal/host"
)

const (
	SampleRate   = 44100
	ChannelCount = 2
	BitDepth     = 0 // 32-bit float (oto.FormatFloat32LE)

	chordSeconds = 8.0
	restGain     = 0.25 // pad level with a still pointer
	volume       = 0.12

	// Pointer speed (logical px/s) that drives the pad to full level.
	fullSpeed = 1500.0

	boostDecay     = 0.99997 // per sample, ~0.75 s to halve
	levelSmoothing = 0.0005  // per sample
)

var padChords = [][]float64{
	{130.8, 196.0, 246.9, 329.6}, // Cmaj7
	{110.0, 164.8, 196.0, 261.6}, // Am7
	{87.3, 130.8, 174.6, 220.0},  // Fmaj7
	{98.0, 146.8, 196.0, 246.9},  // G
}

// padReader is the oto stream. Read runs on the audio goroutine; nudge may
// be called from any goroutine.
type padReader struct {
	pending atomic.Uint64 // float64 bits of the latest nudge, 0 when consumed

	t     float64 // seconds
	boost float64
	level float64
}

func (r *padReader) nudge(v float64) {
	r.pending.Store(math.Float64bits(clamp01(v)))
}

func (r *padReader) Read(p []byte) (int, error) {
	samples := len(p) / 8
	if samples == 0 {
		return 0, nil
	}
	if v := math.Float64frombits(r.pending.Swap(0)); v > r.boost {
		r.boost = v
	}
	for i := 0; i < samples; i++ {
		r.boost *= boostDecay
		r.level += (r.boost - r.level) * levelSmoothing

		chord := padChords[int(r.t/chordSeconds)%len(padChords)]
		gain := restGain + (1-restGain)*r.level
		putStereoF32(p, i, fmPad(r.t, chord, r.level)*gain)
		r.t += 1.0 / SampleRate
	}
	return samples * 8, nil
}

// Pad owns the audio context and converts pointer motion into pad level.
// Pointer must be called from the host loop goroutine.
type Pad struct {
	ctx    *oto.Context
	player oto.Player
	reader *padReader

	now      func() time.Time
	lastAt   time.Time
	lastX    float64
	lastY    float64
	tracking bool
}

func newPad() *Pad {
	return &Pad{reader: &padReader{}, now: time.Now}
}

// Start opens the audio device and begins playback. It blocks until the
// device is ready.
func Start() (*Pad, error) {
	ctx, ready, err := oto.NewContext(SampleRate, ChannelCount, BitDepth)
	if err != nil {
		return nil, fmt.Errorf("audio context: %w", err)
	}
	<-ready

	p := newPad()
	p.ctx = ctx
	p.player = ctx.NewPlayer(p.reader)
	p.player.SetVolume(volume)
	p.player.Play()
	return p, nil
}

// Pointer is an event handler for host.EventPointerMove.
func (p *Pad) Pointer(e host.Event) {
	at := p.now()
	if p.tracking {
		dt := at.Sub(p.lastAt).Seconds()
		if dt > 0 {
			speed := math.Hypot(e.X-p.lastX, e.Y-p.lastY) / dt
			p.reader.nudge(speed / fullSpeed)
		}
	}
	p.lastX, p.lastY, p.lastAt = e.X, e.Y, at
	p.tracking = true
}

func (p *Pad) Close() error {
	if p.player == nil {
		return nil
	}
	err := p.player.Close()
	p.player = nil
	return err
}

func clamp01(v float64) float64 {
	if v < 0 || math.IsNaN(v) {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
