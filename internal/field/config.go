package field

import (
	"errors"
	"fmt"
)

// Simulation constants shared by every section.
const (
	WrapMargin     = 50.0
	MaxPixelRatio  = 2.0
	PointerOffside = -9999.0
)

var ErrUnknownPreset = errors.New("unknown preset")

// Blob is a soft radial glow anchored to a corner of the surface.
// Offset is measured from the anchor corner toward the outside, so a
// positive value pushes the blob past the edge.
type Blob struct {
	OffsetX, OffsetY float64
	Diameter         float64
	Reach            float64 // falloff radius as a fraction of Diameter, 0 = DefaultBlobReach
	Col              RGB
	Alpha            float64
}

// Backdrop describes the static decoration layered over the particle canvas.
type Backdrop struct {
	GridSpacing float64 // 0 disables the grid
	GridCol     RGB
	GridAlpha   float64

	TopLeft     Blob
	BottomRight Blob
}

// Config parameterizes one particle field. Every page section runs the
// same algorithm with its own Config.
type Config struct {
	Name string

	DensityDivisor float64
	MinCount       int
	MaxCount       int

	SpeedRange  float64 // initial velocity per axis is (rand-0.5)*SpeedRange
	RadiusMin   float64
	RadiusRange float64

	AttractionRadius   float64
	AttractionStrength float64
	MaxSpeed           float64 // 0 = uncapped

	TwinklePeriod float64 // ms
	ColorPeriod   float64 // ms
	ColorStops    [2]RGB

	FillAlphaBase  float64
	FillAlphaSwing float64

	LinkDistance float64
	LinkCol      RGB
	LinkAlpha    float64
	LinkWidth    float64

	PointerLinkDistance float64
	PointerCol          RGB
	PointerAlpha        float64
	PointerWidth        float64

	Opacity float64 // canvas layer opacity, folded into every particle and line alpha

	HeightScale float64 // surface height = max(h*HeightScale, MinHeight)
	MinHeight   float64

	Backdrop Backdrop
}

// Fit maps the host container size to the surface size for this config.
func (c Config) Fit(w, h float64) (float64, float64) {
	scale := c.HeightScale
	if scale <= 0 {
		scale = 1
	}
	h *= scale
	if h < c.MinHeight {
		h = c.MinHeight
	}
	return w, h
}

var sectionBackdrop = Backdrop{
	GridSpacing: 60,
	GridCol:     Palette.Teal,
	GridAlpha:   0.1 * 0.08,
	TopLeft:     Blob{OffsetX: 96, OffsetY: 96, Diameter: 448, Reach: DefaultBlobReach, Col: Palette.Cyan, Alpha: 0.4 * 0.3},
	BottomRight: Blob{OffsetX: 96, OffsetY: 128, Diameter: 576, Reach: DefaultBlobReach, Col: Palette.Teal, Alpha: 0.35 * 0.25},
}

// Hero is the landing banner: densest field, strongest pull.
var Hero = Config{
	Name:                "hero",
	DensityDivisor:      20000,
	MinCount:            70,
	MaxCount:            200,
	SpeedRange:          0.45,
	RadiusMin:           0.6,
	RadiusRange:         1.8,
	AttractionRadius:    180,
	AttractionStrength:  0.005,
	TwinklePeriod:       600,
	ColorPeriod:         800,
	ColorStops:          [2]RGB{Palette.Cyan, Palette.Blush},
	FillAlphaBase:       0.4,
	FillAlphaSwing:      0.4,
	LinkDistance:        120,
	LinkCol:             Palette.Cyan,
	LinkAlpha:           0.3,
	LinkWidth:           1,
	PointerLinkDistance: 160,
	PointerCol:          Palette.Teal,
	PointerAlpha:        0.5,
	PointerWidth:        1.5,
	Opacity:             0.6,
	HeightScale:         1,
	Backdrop:            sectionBackdrop,
}

// About, Skills and Projects share the calmer content-section field.
var About = Config{
	Name:                "about",
	DensityDivisor:      25000,
	MinCount:            50,
	MaxCount:            150,
	SpeedRange:          0.3,
	RadiusMin:           0.5,
	RadiusRange:         1.5,
	AttractionRadius:    120,
	AttractionStrength:  0.003,
	TwinklePeriod:       800,
	ColorPeriod:         1000,
	ColorStops:          [2]RGB{Palette.Cyan, Palette.Blush},
	FillAlphaBase:       0.3,
	FillAlphaSwing:      0.3,
	LinkDistance:        100,
	LinkCol:             Palette.Cyan,
	LinkAlpha:           0.2,
	LinkWidth:           1,
	PointerLinkDistance: 140,
	PointerCol:          Palette.Teal,
	PointerAlpha:        0.4,
	PointerWidth:        1.5,
	Opacity:             0.6,
	HeightScale:         1,
	Backdrop:            sectionBackdrop,
}

var Skills = named(About, "skills")

var Projects = named(About, "projects")

// Contact uses the shared monochrome background: white particles on a
// surface at least 600px tall.
var Contact = Config{
	Name:                "contact",
	DensityDivisor:      24000,
	MinCount:            60,
	MaxCount:            160,
	SpeedRange:          0.45,
	RadiusMin:           0.6,
	RadiusRange:         1.8,
	AttractionRadius:    180,
	AttractionStrength:  0.005,
	TwinklePeriod:       600,
	ColorPeriod:         800,
	ColorStops:          [2]RGB{Palette.White, Palette.White},
	FillAlphaBase:       0.35,
	FillAlphaSwing:      0.35,
	LinkDistance:        120,
	LinkCol:             Palette.White,
	LinkAlpha:           0.25,
	LinkWidth:           1,
	PointerLinkDistance: 160,
	PointerCol:          Palette.Teal,
	PointerAlpha:        0.35,
	PointerWidth:        1,
	Opacity:             0.35,
	HeightScale:         0.8,
	MinHeight:           600,
	Backdrop: Backdrop{
		GridSpacing: 60,
		GridCol:     Palette.White,
		GridAlpha:   0.06 * 0.1,
		TopLeft:     Blob{OffsetX: 96, OffsetY: 96, Diameter: 448, Reach: 0.6, Col: Palette.Cyan, Alpha: 0.35},
		BottomRight: Blob{OffsetX: 96, OffsetY: 128, Diameter: 576, Reach: 0.6, Col: Palette.Teal, Alpha: 0.25},
	},
}

func named(c Config, name string) Config {
	c.Name = name
	return c
}

// Sections lists the presets in page order.
var Sections = []Config{Hero, About, Skills, Projects, Contact}

func PresetByName(name string) (Config, error) {
	for _, c := range Sections {
		if c.Name == name {
			return c, nil
		}
	}
	return Config{}, fmt.Errorf("%w: %q", ErrUnknownPreset, name)
}
