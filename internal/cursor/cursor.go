package cursor

import (
	"github.com/go-gl/mathgl/mgl64"
)

// Key bitmask values, matching the replay frame encoding: pressing a
// keyboard key also sets the paired mouse bit.
const (
	KeyM1 = 1 << iota
	KeyM2
	KeyK1
	KeyK2
)

const keyTap = KeyK1 | KeyM1

// Event is one keyed cursor position. A trajectory is a sequence of events
// with non-decreasing times, produced either by a synthesizer or by
// decoding replay frames.
type Event struct {
	Time float64
	Pos  mgl64.Vec2
	Keys int
}

// State is the sampled cursor at some query time.
type State struct {
	Pos  mgl64.Vec2
	Keys int
}

// Sample interpolates the cursor state at time t. Key state is a step
// function attributed to the upcoming event, never interpolated. Outside the
// event span the nearest end event is returned verbatim. The sequence must
// not be empty; callers guard that.
func Sample(events []Event, t float64, smoothing bool) State {
	if t <= events[0].Time {
		return State{Pos: events[0].Pos, Keys: events[0].Keys}
	}
	for i := 0; i+1 < len(events); i++ {
		a, b := events[i], events[i+1]
		if a.Time <= t && t <= b.Time {
			f := 0.0
			if b.Time > a.Time {
				f = (t - a.Time) / (b.Time - a.Time)
			}
			p := a.Pos.Add(b.Pos.Sub(a.Pos).Mul(f))
			if smoothing {
				// A 3-tap box filter over the bracketing events,
				// applied identically every query for reproducibility.
				p = mgl64.Vec2{
					(a.Pos[0] + p[0] + b.Pos[0]) / 3,
					(a.Pos[1] + p[1] + b.Pos[1]) / 3,
				}
			}
			return State{Pos: p, Keys: b.Keys}
		}
	}
	last := events[len(events)-1]
	return State{Pos: last.Pos, Keys: last.Keys}
}
