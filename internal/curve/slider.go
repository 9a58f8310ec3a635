package curve

import (
	"github.com/go-gl/mathgl/mgl64"

	"git.lost.host/meutraa/otr/internal/beatmap"
)

// Cache holds sampled slider paths, built on first access and keyed by the
// object's start time. Populated from a single goroutine; the frame loop
// does not race on it.
type Cache struct {
	paths map[float64][]mgl64.Vec2
}

func NewCache() *Cache {
	return &Cache{paths: map[float64][]mgl64.Vec2{}}
}

func (c *Cache) Path(s *beatmap.Slider) []mgl64.Vec2 {
	if p, ok := c.paths[s.Time]; ok {
		return p
	}
	p := SamplePath(GeneratePath(s.CurveKind, s.ControlPoints), PathSamples)
	c.paths[s.Time] = p
	return p
}

// BallPosition returns where the slider ball sits at time t. Odd repeats
// traverse the path in the reverse parametric direction, producing the
// back-and-forth motion.
func BallPosition(path []mgl64.Vec2, s *beatmap.Slider, t float64) mgl64.Vec2 {
	if len(path) == 0 {
		return s.Pos
	}
	frac := 1.0
	if s.Duration > 0 {
		frac = (t - s.Time) / s.Duration
	}
	if frac < 0 {
		frac = 0
	} else if frac > 1 {
		frac = 1
	}

	repeats := s.Repeats
	if repeats < 1 {
		repeats = 1
	}
	pathProgress := frac * float64(repeats)
	loop := int(pathProgress)
	progress := pathProgress - float64(loop)
	if loop >= repeats {
		loop = repeats - 1
		progress = 1
	}
	if loop%2 == 1 {
		progress = 1 - progress
	}
	return PositionAt(path, progress)
}

// Tick is an intermediate checkpoint along an active slider's path.
type Tick struct {
	Time      float64
	Pos       mgl64.Vec2
	Hit       bool
	Processed bool
}

// Ticks places checkpoints at multiples of the tick distance along every
// repeat of the slider, in time order. The tick distance derives from the
// timing state at the slider's start.
func Ticks(path []mgl64.Vec2, s *beatmap.Slider, beatLength, tickRate, multiplier, velocity float64) []Tick {
	if tickRate <= 0 || s.PixelLength <= 0 || len(path) == 0 {
		return nil
	}
	tickDistance := (beatLength / tickRate) * multiplier * velocity
	if tickDistance <= 0 {
		return nil
	}

	repeats := s.Repeats
	if repeats < 1 {
		repeats = 1
	}
	perRepeat := s.Duration / float64(repeats)

	var ticks []Tick
	for r := 0; r < repeats; r++ {
		for d := tickDistance; d < s.PixelLength; d += tickDistance {
			p := d / s.PixelLength
			timeProgress := p
			if r%2 == 1 {
				timeProgress = 1 - p
			}
			ticks = append(ticks, Tick{
				Time: s.Time + perRepeat*(float64(r)+timeProgress),
				Pos:  PositionAt(path, p),
			})
		}
	}

	// Odd repeats emit their ticks in reverse time order; restore ordering.
	for i := 1; i < len(ticks); i++ {
		for j := i; j > 0 && ticks[j].Time < ticks[j-1].Time; j-- {
			ticks[j], ticks[j-1] = ticks[j-1], ticks[j]
		}
	}
	return ticks
}
