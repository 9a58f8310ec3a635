package beatmap

type Difficulty struct {
	HPDrainRate       float64
	CircleSize        float64
	OverallDifficulty float64
	ApproachRate      float64
	SliderMultiplier  float64
	SliderTickRate    float64
}

// Radius converts circle size to the object radius in osu! pixels.
// Values outside [0,10] extrapolate linearly, matching the stable client.
func Radius(cs float64) float64 {
	return 54.4 - 4.48*cs
}

// Preempt converts approach rate to the time in ms an object is visible
// before its nominal time.
func Preempt(ar float64) float64 {
	if ar < 5 {
		return 1200 + 600*(5-ar)/5
	}
	return 1200 - 750*(ar-5)/5
}

// HitWindows returns the symmetric time tolerances in ms for the
// 300, 100 and 50 judgement tiers.
func HitWindows(od float64) (w300, w100, w50 float64) {
	return 79.5 - 6*od, 139.5 - 8*od, 199.5 - 10*od
}
