package beatmap

import (
	"math"
)

type General struct {
	AudioFilename string
}

type Metadata struct {
	Title   string
	Artist  string
	Creator string
	Version string
}

// TimingPoint is either an uninherited point carrying a positive beat length
// in ms, or an inherited point whose negative BeatLength encodes a slider
// velocity multiplier of 100/-BeatLength.
type TimingPoint struct {
	Time        float64
	BeatLength  float64
	Uninherited bool
}

func (t TimingPoint) Velocity() float64 {
	if t.Uninherited || t.BeatLength >= 0 {
		return 1.0
	}
	return 100.0 / -t.BeatLength
}

type Beatmap struct {
	General      General
	Metadata     Metadata
	Difficulty   Difficulty
	TimingPoints []TimingPoint
	Objects      []HitObject
}

const defaultBeatLength = 500.0

// BeatLengthAt returns the beat length of the last uninherited timing point
// at or before t. Inherited points never reset the beat length.
func (b *Beatmap) BeatLengthAt(t float64) float64 {
	bl := defaultBeatLength
	found := false
	for _, tp := range b.TimingPoints {
		if !tp.Uninherited {
			continue
		}
		if tp.Time > t && found {
			break
		}
		bl = tp.BeatLength
		found = true
	}
	return bl
}

// VelocityAt returns the slider velocity multiplier of the last inherited
// timing point at or before t, tracked independently of beat length.
func (b *Beatmap) VelocityAt(t float64) float64 {
	sv := 1.0
	for _, tp := range b.TimingPoints {
		if tp.Uninherited {
			continue
		}
		if tp.Time > t {
			break
		}
		sv = tp.Velocity()
	}
	return sv
}

const minSliderDuration = 1.0

// SliderDuration computes the full duration in ms of all of a slider's
// repeats from the timing state active at its start time.
func (b *Beatmap) SliderDuration(s *Slider) float64 {
	bl := b.BeatLengthAt(s.Time)
	sv := b.VelocityAt(s.Time)
	mult := b.Difficulty.SliderMultiplier
	if mult == 0 {
		mult = 1
	}
	d := (s.PixelLength * bl * float64(s.Repeats)) / (mult * sv * 100)
	if !(d > minSliderDuration) || math.IsInf(d, 0) {
		return minSliderDuration
	}
	return d
}

// DeriveDurations fills in the duration of every slider. Called once after
// parsing, before any geometry is built.
func (b *Beatmap) DeriveDurations() {
	for _, obj := range b.Objects {
		if s, ok := obj.(*Slider); ok {
			s.Duration = b.SliderDuration(s)
		}
	}
}

// ApplyHardRock rescales the difficulty stats by 1.4 capped at 10 and
// mirrors every object vertically about the playfield midline. Must run
// before any slider geometry is sampled, since path caches key on the
// object and are not invalidated.
func (b *Beatmap) ApplyHardRock() {
	scale := func(v float64) float64 { return math.Min(v*1.4, 10) }
	b.Difficulty.CircleSize = scale(b.Difficulty.CircleSize)
	b.Difficulty.ApproachRate = scale(b.Difficulty.ApproachRate)
	b.Difficulty.OverallDifficulty = scale(b.Difficulty.OverallDifficulty)
	b.Difficulty.HPDrainRate = scale(b.Difficulty.HPDrainRate)
	for _, obj := range b.Objects {
		obj.flipY()
	}
}

func endTime(obj HitObject) float64 {
	switch o := obj.(type) {
	case *Slider:
		return o.EndTime()
	case *Spinner:
		return o.EndTime
	}
	return obj.StartTime()
}

// Visible returns the objects to present at time t: everything between
// preempt before its start and the fade-out window after its end.
func (b *Beatmap) Visible(t, preempt float64) []HitObject {
	var out []HitObject
	for _, obj := range b.Objects {
		if obj.StartTime()-preempt <= t && t <= endTime(obj)+FadeOutTime {
			out = append(out, obj)
		}
	}
	return out
}

// ApproachScale shrinks from 1 at preempt start to 0 at the object's time.
func ApproachScale(obj HitObject, t, preempt float64) float64 {
	return 1.0 - (t-(obj.StartTime()-preempt))/preempt
}
