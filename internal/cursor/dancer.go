package cursor

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"git.lost.host/meutraa/otr/internal/beatmap"
	"git.lost.host/meutraa/otr/internal/curve"
)

const (
	// Glide points are emitted this often between objects.
	danceInterval = 5.0
	// The key stays down this long after a circle.
	keyHold = 10.0
	// Sliders keep the key held a little past their end.
	sliderHoldTail = 50.0
	// The idle approach to the first object starts this early.
	idleApproach = 1000.0
)

func playfieldCenter() mgl64.Vec2 {
	return mgl64.Vec2{beatmap.PlayfieldWidth / 2, beatmap.PlayfieldHeight / 2}
}

// dancerTrajectory glides between objects along cubic Bézier swings. The
// two control points sit at the thirds of the straight line, pushed
// perpendicular by degree·segment-length, with the side flipping according
// to the alternation policy. Emitted times are non-decreasing: hold tails
// back off when the next object starts inside them.
func dancerTrajectory(b *beatmap.Beatmap, cache *curve.Cache, opts Options) []Event {
	var events []Event
	if len(b.Objects) == 0 {
		return events
	}

	push := func(e Event) {
		if n := len(events); n > 0 && e.Time < events[n-1].Time {
			e.Time = events[n-1].Time
		}
		events = append(events, e)
	}

	first := b.Objects[0]
	prevTime := first.StartTime() - idleApproach
	prevPos := first.Position()
	// Position the cursor travelled from before arriving at prevPos.
	var cameFrom *mgl64.Vec2
	direction := 1.0

	push(Event{Time: prevTime, Pos: prevPos})

	for i, obj := range b.Objects {
		target := obj.Position()
		start := prevPos

		timeDiff := obj.StartTime() - prevTime
		if timeDiff <= 0 {
			timeDiff = 1
		}
		n := int(timeDiff / danceInterval)
		if n < 1 {
			n = 1
		}

		// Turn sharpness between the incoming travel direction and the
		// outgoing chord.
		angleDiff := 0.0
		if nil != cameFrom && !start.ApproxEqual(*cameFrom) {
			incoming := math.Atan2(start[1]-(*cameFrom)[1], start[0]-(*cameFrom)[0])
			outgoing := math.Atan2(target[1]-start[1], target[0]-start[0])
			angleDiff = math.Abs(incoming - outgoing)
		}

		// Swing side: toggled every object when alternation is on, and
		// forced to toggle for rushed or sharply back-angled segments.
		if opts.Alternate || timeDiff < 100 || angleDiff > math.Pi {
			direction = -direction
		} else {
			direction = 1
		}

		chord := target.Sub(start)
		perp := mgl64.Vec2{target[1] - start[1], start[0] - target[0]}
		length := perp.Len()
		if length > 0 {
			perp = perp.Mul(1 / length)
		}
		offset := opts.Degree * length * direction

		c1 := start.Add(chord.Mul(1.0 / 3.0)).Add(perp.Mul(offset))
		c2 := start.Add(chord.Mul(2.0 / 3.0)).Add(perp.Mul(offset))

		for j := 0; j < n; j++ {
			t := float64(j) / float64(n)
			push(Event{
				Time: prevTime + t*timeDiff,
				Pos:  cubicPoint(start, c1, c2, target, t),
			})
		}

		switch o := obj.(type) {
		case *beatmap.Slider:
			path := cache.Path(o)
			m := int(o.Duration / danceInterval)
			if m < 1 {
				m = 1
			}
			var end mgl64.Vec2
			for j := 0; j <= m; j++ {
				at := o.Time + float64(j)/float64(m)*o.Duration
				end = curve.BallPosition(path, o, at)
				push(Event{Time: at, Pos: end, Keys: keyTap})
			}

			release := o.Time + o.Duration + sliderHoldTail
			if i+1 < len(b.Objects) {
				if next := b.Objects[i+1].StartTime() - danceInterval; next < release {
					release = next
				}
			}
			if release < o.Time+o.Duration {
				release = o.Time + o.Duration
			}
			push(Event{Time: release, Pos: end})

			from := curve.BallPosition(path, o, o.Time+float64(m-1)/float64(m)*o.Duration)
			cameFrom = &from
			prevTime = release
			prevPos = end

		default:
			// Circles and spinners: hold briefly at the target, release.
			hold := obj.StartTime() + keyHold
			if i+1 < len(b.Objects) {
				if next := b.Objects[i+1].StartTime() - danceInterval; next < hold {
					hold = next
				}
			}
			if hold < obj.StartTime() {
				hold = obj.StartTime()
			}
			push(Event{Time: obj.StartTime(), Pos: target, Keys: keyTap})
			push(Event{Time: hold, Pos: target})
			from := start
			cameFrom = &from
			prevTime = hold
			prevPos = target
		}
	}
	return events
}

func cubicPoint(p0, p1, p2, p3 mgl64.Vec2, t float64) mgl64.Vec2 {
	u := 1 - t
	return p0.Mul(u * u * u).
		Add(p1.Mul(3 * u * u * t)).
		Add(p2.Mul(3 * u * t * t)).
		Add(p3.Mul(t * t * t))
}
