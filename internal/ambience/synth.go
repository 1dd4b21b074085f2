package ambience

import "math"

// putStereoF32 writes a [-1,1] sample as float32 LE to both stereo channels at frame i.
func putStereoF32(buf []byte, i int, sample float64) {
	v := math.Float32bits(float32(sample))
	buf[i*8] = byte(v)
	buf[i*8+1] = byte(v >> 8)
	buf[i*8+2] = byte(v >> 16)
	buf[i*8+3] = byte(v >> 24)
	buf[i*8+4] = byte(v)
	buf[i*8+5] = byte(v >> 8)
	buf[i*8+6] = byte(v >> 16)
	buf[i*8+7] = byte(v >> 24)
}

// softSat applies gentle tanh-like saturation.
func softSat(x float64) float64 {
	if x > 1.0 {
		return 1.0 - 0.5/x
	}
	if x < -1.0 {
		return -1.0 + 0.5/(-x)
	}
	return x - x*x*x/3.0
}

// fm returns an FM-synthesized sample.
// carrier: base frequency, modRatio: modulator/carrier ratio, modIdx: modulation depth.
func fm(t, carrier, modRatio, modIdx float64) float64 {
	mod := math.Sin(2 * math.Pi * carrier * modRatio * t)
	return math.Sin(2*math.Pi*carrier*t + modIdx*mod)
}

// fmPad sums slightly detuned FM voices per chord note. brightness in
// [0,1] opens the modulation index.
func fmPad(t float64, chord []float64, brightness float64) float64 {
	s := 0.0
	detunes := [3]float64{-0.003, 0.0, 0.004}
	for _, freq := range chord {
		for _, d := range detunes {
			f := freq * (1 + d)
			vib := 1 + 0.002*math.Sin(2*math.Pi*(0.17+f*0.0005)*t)
			s += fm(t, f*vib, 1.5, 0.3+0.9*brightness) * 0.06
		}
	}
	return softSat(s)
}
