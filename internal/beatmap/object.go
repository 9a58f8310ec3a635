package beatmap

import (
	"github.com/go-gl/mathgl/mgl64"
)

// Playfield dimensions in osu! pixels.
const (
	PlayfieldWidth  = 512.0
	PlayfieldHeight = 384.0
)

// FadeOutTime is how long an object stays visible past its nominal time, in ms.
const FadeOutTime = 300.0

type Kind uint8

const (
	KindCircle Kind = iota
	KindSlider
	KindSpinner
)

type CurveKind uint8

const (
	CurveLinear CurveKind = iota
	CurveBezier
	CurveCatmull
	CurvePerfect
)

// HitObject is the closed set of playable objects. Concrete types are
// *Circle, *Slider and *Spinner. An object's identity is its start time;
// beatmaps do not place two hittable objects on the same timestamp.
type HitObject interface {
	Kind() Kind
	StartTime() float64
	Position() mgl64.Vec2
	HitSound() int

	flipY()
}

type Base struct {
	Pos   mgl64.Vec2
	Time  float64
	Sound int
}

func (b *Base) StartTime() float64   { return b.Time }
func (b *Base) Position() mgl64.Vec2 { return b.Pos }
func (b *Base) HitSound() int        { return b.Sound }

func (b *Base) flipY() {
	b.Pos[1] = PlayfieldHeight - b.Pos[1]
}

type Circle struct {
	Base
}

func (*Circle) Kind() Kind { return KindCircle }

type Slider struct {
	Base
	CurveKind CurveKind
	// ControlPoints includes the slider head as its first element.
	ControlPoints []mgl64.Vec2
	Repeats       int
	PixelLength   float64
	// Duration of all repeats in ms, derived from the timing points
	// active at the slider's start time. Set once at load.
	Duration float64
}

func (*Slider) Kind() Kind { return KindSlider }

func (s *Slider) EndTime() float64 { return s.Time + s.Duration }

func (s *Slider) flipY() {
	s.Base.flipY()
	for i := range s.ControlPoints {
		s.ControlPoints[i][1] = PlayfieldHeight - s.ControlPoints[i][1]
	}
}

type Spinner struct {
	Base
	EndTime float64
}

func (*Spinner) Kind() Kind { return KindSpinner }
