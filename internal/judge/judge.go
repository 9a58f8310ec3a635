package judge

import (
	"git.lost.host/meutraa/otr/internal/beatmap"
	"git.lost.host/meutraa/otr/internal/cursor"
	"git.lost.host/meutraa/otr/internal/curve"
)

// Judgement tiers. Miss is zero so a tier doubles as its score value.
const (
	TierMiss = 0
	Tier50   = 50
	Tier100  = 100
	Tier300  = 300
)

// Score holds the monotonic run counters. Combo resets to zero on any miss.
type Score struct {
	TotalHits int
	Score     int
	Combo     int
	MaxCombo  int
	Counts    map[int]int
}

// Hooks receive hit and miss notifications for presentation and audio cues.
// The engine never waits on them.
type Hooks struct {
	OnHit        func(obj beatmap.HitObject, tier int)
	OnMiss       func(obj beatmap.HitObject)
	OnSliderHead func(obj *beatmap.Slider)
}

type activeSlider struct {
	obj         *beatmap.Slider
	end         float64
	ticks       []curve.Tick
	missedTicks int
	broken      bool
}

// Engine replays the judgement state machine against a moving current time.
// Each object goes Pending → Hit(tier) | Missed exactly once; per-object
// runtime state lives here, keyed by start time, never on the beatmap.
type Engine struct {
	bm    *beatmap.Beatmap
	cache *curve.Cache
	hooks Hooks

	radius          float64
	w300, w100, w50 float64

	judged   map[float64]bool
	active   map[float64]*activeSlider
	prevKeys int
	score    Score
}

func NewEngine(b *beatmap.Beatmap, cache *curve.Cache, hooks Hooks) *Engine {
	w300, w100, w50 := beatmap.HitWindows(b.Difficulty.OverallDifficulty)
	return &Engine{
		bm:     b,
		cache:  cache,
		hooks:  hooks,
		radius: beatmap.Radius(b.Difficulty.CircleSize),
		w300:   w300,
		w100:   w100,
		w50:    w50,
		judged: map[float64]bool{},
		active: map[float64]*activeSlider{},
		score:  Score{Counts: map[int]int{}},
	}
}

func (e *Engine) Score() Score { return e.score }

// ActiveSliders reports the sliders currently being tracked, for the
// presentation layer's slider ball.
func (e *Engine) ActiveSliders() []*beatmap.Slider {
	var out []*beatmap.Slider
	for _, a := range e.active {
		out = append(out, a.obj)
	}
	return out
}

// Step advances the state machine one frame. Calling it again with the same
// time and key state is a no-op: edges are consumed, judged objects stay
// judged, and ticks process exactly once.
func (e *Engine) Step(t float64, cur cursor.State) {
	newEdge := cur.Keys &^ e.prevKeys
	held := cur.Keys != 0

	e.advanceSliders(t, cur, held)
	e.retireSpinners(t)

	if obj := e.nextEligible(t); nil != obj {
		e.judgeObject(t, cur, newEdge, obj)
	}

	e.prevKeys = cur.Keys
}

func (e *Engine) advanceSliders(t float64, cur cursor.State, held bool) {
	for key, a := range e.active {
		if t >= a.end {
			e.finishSlider(a)
			delete(e.active, key)
			continue
		}

		path := e.cache.Path(a.obj)

		// Follow check: losing the ball breaks combo once, with a 2x
		// radius margin around the ball.
		if !a.broken {
			ball := curve.BallPosition(path, a.obj, t)
			if cur.Pos.Sub(ball).Len() > e.radius*2 {
				a.broken = true
				e.score.Combo = 0
				if nil != e.hooks.OnMiss {
					e.hooks.OnMiss(a.obj)
				}
			}
		}

		for i := range a.ticks {
			tick := &a.ticks[i]
			if tick.Processed || t < tick.Time {
				continue
			}
			if held && cur.Pos.Sub(tick.Pos).Len() <= e.radius {
				tick.Hit = true
			} else {
				a.missedTicks++
			}
			tick.Processed = true
		}
	}
}

// finishSlider settles a slider's body outcome from its tick record.
func (e *Engine) finishSlider(a *activeSlider) {
	switch {
	case a.missedTicks == 0 && !a.broken:
		e.successHit(a.obj, Tier300)
	case a.missedTicks < len(a.ticks):
		e.successHit(a.obj, Tier100)
	default:
		e.miss(a.obj)
	}
}

// Spinner scoring is intentionally unimplemented; a spinner only occupies
// its time span and then retires without touching score or combo.
func (e *Engine) retireSpinners(t float64) {
	for _, obj := range e.bm.Objects {
		s, ok := obj.(*beatmap.Spinner)
		if !ok || e.judged[s.Time] {
			continue
		}
		if t >= s.EndTime {
			e.judged[s.Time] = true
		}
	}
}

// nextEligible finds the earliest unjudged hittable object whose 50-window
// has opened. Only one object is judged per frame, matching single-press
// granularity.
func (e *Engine) nextEligible(t float64) beatmap.HitObject {
	for _, obj := range e.bm.Objects {
		if obj.Kind() == beatmap.KindSpinner {
			continue
		}
		if e.judged[obj.StartTime()] {
			continue
		}
		if obj.StartTime()-e.w50 <= t {
			return obj
		}
		break
	}
	return nil
}

func (e *Engine) judgeObject(t float64, cur cursor.State, newEdge int, obj beatmap.HitObject) {
	// Expired without a press.
	if t-obj.StartTime() > e.w50 {
		e.judged[obj.StartTime()] = true
		e.miss(obj)
		return
	}
	if newEdge == 0 {
		return
	}

	distance := cur.Pos.Sub(obj.Position()).Len()
	timeDiff := abs(t - obj.StartTime())

	switch o := obj.(type) {
	case *beatmap.Circle:
		if distance > e.radius {
			// Pressed elsewhere; the circle waits for another press
			// or for its window to expire.
			return
		}
		e.judged[o.Time] = true
		switch {
		case timeDiff <= e.w300:
			e.successHit(o, Tier300)
		case timeDiff <= e.w100:
			e.successHit(o, Tier100)
		default:
			e.successHit(o, Tier50)
		}

	case *beatmap.Slider:
		e.judged[o.Time] = true
		if distance > e.radius {
			e.miss(o)
			return
		}
		if timeDiff > e.w50 {
			e.miss(o)
			return
		}
		e.activateSlider(o)
		if nil != e.hooks.OnSliderHead {
			e.hooks.OnSliderHead(o)
		}
	}
}

// activateSlider starts body tracking, building the tick list on first
// encounter from the timing state at the slider's start.
func (e *Engine) activateSlider(s *beatmap.Slider) {
	path := e.cache.Path(s)
	ticks := curve.Ticks(path, s,
		e.bm.BeatLengthAt(s.Time),
		e.bm.Difficulty.SliderTickRate,
		e.bm.Difficulty.SliderMultiplier,
		e.bm.VelocityAt(s.Time),
	)
	e.active[s.Time] = &activeSlider{
		obj:   s,
		end:   s.EndTime(),
		ticks: ticks,
	}
}

func (e *Engine) successHit(obj beatmap.HitObject, tier int) {
	e.score.TotalHits++
	e.score.Score += tier
	e.score.Combo++
	if e.score.Combo > e.score.MaxCombo {
		e.score.MaxCombo = e.score.Combo
	}
	e.score.Counts[tier]++
	if nil != e.hooks.OnHit {
		e.hooks.OnHit(obj, tier)
	}
}

func (e *Engine) miss(obj beatmap.HitObject) {
	e.score.Combo = 0
	e.score.Counts[TierMiss]++
	if nil != e.hooks.OnMiss {
		e.hooks.OnMiss(obj)
	}
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
