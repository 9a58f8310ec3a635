package cursor

import (
	"fmt"

	"git.lost.host/meutraa/otr/internal/beatmap"
	"git.lost.host/meutraa/otr/internal/curve"
)

// Playstyle selects the procedural trajectory used when no replay is given.
type Playstyle string

const (
	// Auto arrives at each object just in time, with minimal movement.
	Auto Playstyle = "auto"
	// Dancer glides between objects along curved swings.
	Dancer Playstyle = "dancer"
)

// Options tune the Dancer playstyle. Degree scales the perpendicular curve
// offset; Alternate toggles the swing side on every object. Short segments
// and near-reversals force a toggle regardless.
type Options struct {
	Degree    float64
	Alternate bool
}

// Synthesize builds the cursor trajectory for a playstyle. An unknown
// playstyle is a configuration error surfaced before the loop starts. An
// empty beatmap yields an empty trajectory, not an error.
func Synthesize(b *beatmap.Beatmap, cache *curve.Cache, style Playstyle, opts Options) ([]Event, error) {
	switch style {
	case Auto:
		return autoTrajectory(b, cache), nil
	case Dancer:
		return dancerTrajectory(b, cache, opts), nil
	}
	return nil, fmt.Errorf("unknown playstyle %q", style)
}

// Events lead each object by this much, the time a press takes to register.
const pressLead = 36.0

// Slider follows emit a point this often in Auto.
const autoSliderInterval = 10.0

func autoTrajectory(b *beatmap.Beatmap, cache *curve.Cache) []Event {
	var events []Event
	for _, obj := range b.Objects {
		switch o := obj.(type) {
		case *beatmap.Circle:
			events = append(events, Event{
				Time: o.Time - pressLead,
				Pos:  o.Pos,
				Keys: keyTap,
			})
		case *beatmap.Slider:
			path := cache.Path(o)
			n := int(o.Duration / autoSliderInterval)
			if n < 1 {
				n = 1
			}
			for i := 0; i <= n; i++ {
				t := o.Time + float64(i)/float64(n)*o.Duration
				events = append(events, Event{
					Time: t,
					Pos:  curve.BallPosition(path, o, t),
					Keys: keyTap,
				})
			}
		case *beatmap.Spinner:
			events = append(events, Event{
				Time: o.Time - pressLead,
				Pos:  playfieldCenter(),
				Keys: keyTap,
			})
		}
	}
	return events
}
