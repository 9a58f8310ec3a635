package cursor

import (
	"github.com/go-gl/mathgl/mgl64"

	"git.lost.host/meutraa/otr/internal/beatmap"
)

// Frame is one already-parsed replay frame: a time delta in ms relative to
// the previous frame, the cursor position, and the key bitmask.
type Frame struct {
	Delta float64
	X, Y  float64
	Keys  int
}

// FromFrames accumulates replay frames into an absolute-time trajectory.
// Frames with a non-positive delta are dropped outright; their delta is not
// accumulated. Malformed replays rely on this lenient skip. The Hard Rock
// flip is applied here since replay frames store unflipped coordinates.
// Aligning the result to the audio clock is the host's offset concern.
func FromFrames(frames []Frame, hardRock bool) []Event {
	var events []Event
	total := 0.0
	for _, f := range frames {
		if f.Delta <= 0 {
			continue
		}
		total += f.Delta
		y := f.Y
		if hardRock {
			y = beatmap.PlayfieldHeight - y
		}
		events = append(events, Event{
			Time: total,
			Pos:  mgl64.Vec2{f.X, y},
			Keys: f.Keys,
		})
	}
	return events
}
