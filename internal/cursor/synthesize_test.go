package cursor

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"git.lost.host/meutraa/otr/internal/beatmap"
	"git.lost.host/meutraa/otr/internal/curve"
)

func synthBeatmap() *beatmap.Beatmap {
	return &beatmap.Beatmap{
		Difficulty: beatmap.Difficulty{SliderMultiplier: 1, SliderTickRate: 1},
		TimingPoints: []beatmap.TimingPoint{
			{Time: 0, BeatLength: 500, Uninherited: true},
		},
		Objects: []beatmap.HitObject{
			&beatmap.Circle{Base: beatmap.Base{Pos: mgl64.Vec2{64, 64}, Time: 1000}},
			&beatmap.Slider{
				Base:          beatmap.Base{Pos: mgl64.Vec2{256, 192}, Time: 2000},
				CurveKind:     beatmap.CurveLinear,
				ControlPoints: []mgl64.Vec2{{256, 192}, {356, 192}},
				Repeats:       1,
				PixelLength:   100,
				Duration:      500,
			},
			&beatmap.Circle{Base: beatmap.Base{Pos: mgl64.Vec2{448, 320}, Time: 3000}},
		},
	}
}

func TestSynthesizeUnknownStyle(t *testing.T) {
	_, err := Synthesize(synthBeatmap(), curve.NewCache(), "mouse-only", Options{})
	if nil == err {
		t.Log("expected an error for an unknown playstyle")
		t.Fail()
	}
}

func TestSynthesizeEmptyBeatmap(t *testing.T) {
	empty := &beatmap.Beatmap{}
	for _, style := range []Playstyle{Auto, Dancer} {
		events, err := Synthesize(empty, curve.NewCache(), style, Options{})
		if nil != err || len(events) != 0 {
			t.Log("style", style, "events", events, "err", err)
			t.Fail()
		}
	}
}

func TestAutoTrajectory(t *testing.T) {
	b := synthBeatmap()
	events, err := Synthesize(b, curve.NewCache(), Auto, Options{})
	if nil != err {
		t.Fatal(err)
	}

	// The first circle gets a single keyed event just ahead of its time.
	first := events[0]
	if first.Time != 1000-pressLead || first.Keys != keyTap {
		t.Log("first event", first)
		t.Fail()
	}
	if !first.Pos.ApproxEqual(mgl64.Vec2{64, 64}) {
		t.Log("first position", first.Pos)
		t.Fail()
	}

	// Events in the slider span track the ball from head to tail.
	onHead, onTail := false, false
	for _, e := range events {
		if e.Time == 2000 && e.Pos.ApproxEqual(mgl64.Vec2{256, 192}) {
			onHead = true
		}
		if e.Time == 2500 && e.Pos.ApproxEqual(mgl64.Vec2{356, 192}) {
			onTail = true
		}
	}
	if !onHead || !onTail {
		t.Log("slider follow incomplete", onHead, onTail)
		t.Fail()
	}
}

func TestDancerTrajectory(t *testing.T) {
	b := synthBeatmap()
	events, err := Synthesize(b, curve.NewCache(), Dancer, Options{Degree: 0.35})
	if nil != err {
		t.Fatal(err)
	}
	if len(events) == 0 {
		t.Fatal("no events")
	}

	// The approach run-up starts well before the first object, unkeyed.
	if events[0].Time > 0 || events[0].Keys != 0 {
		t.Log("approach event", events[0])
		t.Fail()
	}

	assertOrdered(t, events)

	// Each circle is keyed at its exact time and released shortly after.
	keyed := map[float64]bool{}
	for _, e := range events {
		if e.Keys != 0 {
			keyed[e.Time] = true
		}
	}
	if !keyed[1000] || !keyed[3000] {
		t.Log("circles not keyed", keyed)
		t.Fail()
	}
}

func assertOrdered(t *testing.T, events []Event) {
	t.Helper()
	for i := 1; i < len(events); i++ {
		if events[i].Time < events[i-1].Time {
			t.Log("time went backwards at", i, events[i-1].Time, events[i].Time)
			t.Fail()
			return
		}
	}
}

func TestDancerTightSliderGap(t *testing.T) {
	// The circle starts 30ms after the slider ends, inside the slider's
	// 50ms hold tail: the release must back off so the sequence stays
	// ordered and the circle press stays reachable.
	b := &beatmap.Beatmap{
		Difficulty: beatmap.Difficulty{SliderMultiplier: 1, SliderTickRate: 1},
		TimingPoints: []beatmap.TimingPoint{
			{Time: 0, BeatLength: 500, Uninherited: true},
		},
		Objects: []beatmap.HitObject{
			&beatmap.Slider{
				Base:          beatmap.Base{Pos: mgl64.Vec2{0, 0}, Time: 1000},
				CurveKind:     beatmap.CurveLinear,
				ControlPoints: []mgl64.Vec2{{0, 0}, {100, 0}},
				Repeats:       1,
				PixelLength:   100,
				Duration:      500,
			},
			&beatmap.Circle{Base: beatmap.Base{Pos: mgl64.Vec2{150, 50}, Time: 1530}},
		},
	}
	events, err := Synthesize(b, curve.NewCache(), Dancer, Options{Degree: 0.35})
	if nil != err {
		t.Fatal(err)
	}
	assertOrdered(t, events)

	press := -1
	for i, e := range events {
		if e.Time == 1530 && e.Keys != 0 {
			press = i
		}
	}
	if press < 1 {
		t.Fatal("circle press missing", events)
	}
	// A press is only sampleable if something unkeyed precedes it.
	if events[press-1].Time >= 1530 {
		t.Log("press window collapsed", events[press-1])
		t.Fail()
	}
}

func TestDancerBackAngleFlipsSwingSide(t *testing.T) {
	// The third circle sends the cursor back almost the way it came; the
	// glide must swing to the opposite side of the chord (positive y).
	b := &beatmap.Beatmap{
		Difficulty: beatmap.Difficulty{SliderMultiplier: 1, SliderTickRate: 1},
		Objects: []beatmap.HitObject{
			&beatmap.Circle{Base: beatmap.Base{Pos: mgl64.Vec2{100, 100}, Time: 1000}},
			&beatmap.Circle{Base: beatmap.Base{Pos: mgl64.Vec2{0, 100}, Time: 2000}},
			&beatmap.Circle{Base: beatmap.Base{Pos: mgl64.Vec2{100, 99}, Time: 3000}},
		},
	}
	events, err := Synthesize(b, curve.NewCache(), Dancer, Options{Degree: 0.35})
	if nil != err {
		t.Fatal(err)
	}
	assertOrdered(t, events)

	swung := false
	for _, e := range events {
		if e.Time > 2400 && e.Time < 2600 && e.Pos[1] > 110 {
			swung = true
		}
	}
	if !swung {
		t.Log("glide did not flip to the far side of the chord")
		t.Fail()
	}
}
