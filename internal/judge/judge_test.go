package judge

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"git.lost.host/meutraa/otr/internal/beatmap"
	"git.lost.host/meutraa/otr/internal/cursor"
	"git.lost.host/meutraa/otr/internal/curve"
)

// OD 8: windows 31.5 / 75.5 / 119.5. CS 4: radius 36.48.
func judgeBeatmap(objects ...beatmap.HitObject) *beatmap.Beatmap {
	return &beatmap.Beatmap{
		Difficulty: beatmap.Difficulty{
			CircleSize:        4,
			OverallDifficulty: 8,
			SliderMultiplier:  1,
			SliderTickRate:    20,
		},
		TimingPoints: []beatmap.TimingPoint{
			{Time: 0, BeatLength: 500, Uninherited: true},
		},
		Objects: objects,
	}
}

func circleAt(x, y, time float64) *beatmap.Circle {
	return &beatmap.Circle{Base: beatmap.Base{Pos: mgl64.Vec2{x, y}, Time: time}}
}

func sliderAt(time float64) *beatmap.Slider {
	return &beatmap.Slider{
		Base:          beatmap.Base{Pos: mgl64.Vec2{0, 0}, Time: time},
		CurveKind:     beatmap.CurveLinear,
		ControlPoints: []mgl64.Vec2{{0, 0}, {100, 0}},
		Repeats:       1,
		PixelLength:   100,
		Duration:      500,
	}
}

func pressAt(x, y float64) cursor.State {
	return cursor.State{Pos: mgl64.Vec2{x, y}, Keys: cursor.KeyK1 | cursor.KeyM1}
}

func idleAt(x, y float64) cursor.State {
	return cursor.State{Pos: mgl64.Vec2{x, y}}
}

var circleTierTests = map[float64]int{
	0:   Tier300,
	-20: Tier300,
	50:  Tier100,
	-60: Tier100,
	100: Tier50,
}

func TestCircleTiers(t *testing.T) {
	for timeDiff, expected := range circleTierTests {
		b := judgeBeatmap(circleAt(100, 100, 1000))
		e := NewEngine(b, curve.NewCache(), Hooks{})
		e.Step(1000+timeDiff, pressAt(100, 100))

		s := e.Score()
		if s.Counts[expected] != 1 || s.TotalHits != 1 {
			t.Log("timeDiff", timeDiff, "counts", s.Counts)
			t.Fail()
		}
		if s.Score != expected || s.Combo != 1 {
			t.Log("timeDiff", timeDiff, "score", s.Score, "combo", s.Combo)
			t.Fail()
		}
	}
}

func TestStepIdempotent(t *testing.T) {
	b := judgeBeatmap(circleAt(100, 100, 1000))
	e := NewEngine(b, curve.NewCache(), Hooks{})
	e.Step(1000, pressAt(100, 100))
	e.Step(1000, pressAt(100, 100))
	e.Step(1001, pressAt(100, 100))

	s := e.Score()
	if s.TotalHits != 1 || s.Counts[Tier300] != 1 {
		t.Log("score after repeat steps", s)
		t.Fail()
	}
}

func TestCircleExpiry(t *testing.T) {
	b := judgeBeatmap(circleAt(100, 100, 1000))
	e := NewEngine(b, curve.NewCache(), Hooks{})

	// A press elsewhere does not judge the circle.
	e.Step(1000, pressAt(300, 300))
	if s := e.Score(); s.TotalHits != 0 || s.Counts[TierMiss] != 0 {
		t.Log("judged early", s)
		t.Fail()
	}

	// Past the 50-window it misses without any press.
	e.Step(1120, idleAt(300, 300))
	s := e.Score()
	if s.Counts[TierMiss] != 1 || s.Combo != 0 {
		t.Log("no expiry miss", s)
		t.Fail()
	}

	// And stays missed.
	e.Step(1200, pressAt(100, 100))
	if s := e.Score(); s.Counts[TierMiss] != 1 || s.TotalHits != 0 {
		t.Log("missed circle judged again", s)
		t.Fail()
	}
}

func TestComboAccumulates(t *testing.T) {
	b := judgeBeatmap(circleAt(100, 100, 1000), circleAt(200, 200, 2000), circleAt(300, 100, 3000))
	e := NewEngine(b, curve.NewCache(), Hooks{})
	e.Step(1000, pressAt(100, 100))
	e.Step(1500, idleAt(150, 150))
	e.Step(2000, pressAt(200, 200))
	// Let the third expire.
	e.Step(3500, idleAt(200, 200))

	s := e.Score()
	if s.MaxCombo != 2 || s.Combo != 0 {
		t.Log("combo", s.Combo, "max", s.MaxCombo)
		t.Fail()
	}
	if s.Counts[Tier300] != 2 || s.Counts[TierMiss] != 1 {
		t.Log("counts", s.Counts)
		t.Fail()
	}
}

func TestOnePressOneObject(t *testing.T) {
	b := judgeBeatmap(circleAt(100, 100, 1000), circleAt(100, 100, 1010))
	e := NewEngine(b, curve.NewCache(), Hooks{})
	e.Step(1005, pressAt(100, 100))

	if s := e.Score(); s.TotalHits != 1 {
		t.Log("one press hit several objects", s)
		t.Fail()
	}
}

func TestSliderFullFollow(t *testing.T) {
	heads := 0
	b := judgeBeatmap(sliderAt(1000))
	e := NewEngine(b, curve.NewCache(), Hooks{
		OnSliderHead: func(*beatmap.Slider) { heads++ },
	})

	// Tick rate 20 on a 500ms beat is a 25px tick distance: ticks at 25,
	// 50 and 75px, i.e. 1125, 1250 and 1375ms on this slider.
	e.Step(1000, pressAt(0, 0))
	if heads != 1 {
		t.Fatal("head not activated")
	}
	for _, at := range []float64{1125, 1250, 1375} {
		ball := (at - 1000) / 500 * 100
		e.Step(at, pressAt(ball, 0))
	}
	e.Step(1500, pressAt(100, 0))

	s := e.Score()
	if s.Counts[Tier300] != 1 || s.Combo != 1 {
		t.Log("full follow", s)
		t.Fail()
	}
}

func TestSliderBreak(t *testing.T) {
	misses := 0
	b := judgeBeatmap(sliderAt(1000))
	e := NewEngine(b, curve.NewCache(), Hooks{
		OnMiss: func(beatmap.HitObject) { misses++ },
	})

	e.Step(1000, pressAt(0, 0))
	// Wander off: the ball escapes the 2x radius follow margin and the
	// first tick is missed, the remaining two are followed again.
	e.Step(1125, pressAt(300, 300))
	e.Step(1250, pressAt(50, 0))
	e.Step(1375, pressAt(75, 0))
	e.Step(1500, pressAt(100, 0))

	s := e.Score()
	if misses != 1 {
		t.Log("break notifications", misses)
		t.Fail()
	}
	if s.Counts[Tier100] != 1 {
		t.Log("broken slider tier", s.Counts)
		t.Fail()
	}
}

func TestSliderHeadMiss(t *testing.T) {
	b := judgeBeatmap(sliderAt(1000))
	e := NewEngine(b, curve.NewCache(), Hooks{})

	// Pressing far from the head misses the whole slider at once.
	e.Step(1000, pressAt(300, 300))
	s := e.Score()
	if s.Counts[TierMiss] != 1 || s.Combo != 0 {
		t.Log("head miss", s)
		t.Fail()
	}
	if len(e.ActiveSliders()) != 0 {
		t.Log("missed slider went active")
		t.Fail()
	}
}

func TestSliderAllTicksMissed(t *testing.T) {
	b := judgeBeatmap(sliderAt(1000))
	e := NewEngine(b, curve.NewCache(), Hooks{})

	e.Step(1000, pressAt(0, 0))
	// Release and leave: every tick unheld.
	for _, at := range []float64{1125, 1250, 1375, 1500} {
		e.Step(at, idleAt(300, 300))
	}

	s := e.Score()
	if s.Counts[TierMiss] != 1 || s.TotalHits != 0 {
		t.Log("all ticks missed", s)
		t.Fail()
	}
}

func TestSpinnerRetiresSilently(t *testing.T) {
	b := judgeBeatmap(
		&beatmap.Spinner{Base: beatmap.Base{Pos: mgl64.Vec2{256, 192}, Time: 1000}, EndTime: 2000},
		circleAt(100, 100, 2500),
	)
	e := NewEngine(b, curve.NewCache(), Hooks{})

	// A press during the spinner must not be eaten by it.
	e.Step(1500, pressAt(256, 192))
	if s := e.Score(); s.TotalHits != 0 || s.Counts[TierMiss] != 0 {
		t.Log("spinner judged", s)
		t.Fail()
	}

	e.Step(2100, idleAt(256, 192))
	e.Step(2500, pressAt(100, 100))
	s := e.Score()
	if s.Counts[Tier300] != 1 || s.Counts[TierMiss] != 0 {
		t.Log("after spinner", s)
		t.Fail()
	}
}
