package curve

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"git.lost.host/meutraa/otr/internal/beatmap"
)

const (
	// PathSamples is the target density of a fully sampled slider path.
	PathSamples = 1000
	// SegmentSamples is the density of a single curve segment.
	SegmentSamples = 100

	bezierDegree = 3
)

// GeneratePath builds the raw polyline for one full traversal of a slider
// path from its control points, head included. Repeats do not lengthen the
// path; they re-parameterize progress over it.
func GeneratePath(kind beatmap.CurveKind, points []mgl64.Vec2) []mgl64.Vec2 {
	switch kind {
	case beatmap.CurveBezier:
		return bezierPath(points)
	case beatmap.CurveCatmull:
		return catmullPath(points)
	case beatmap.CurvePerfect:
		return perfectPath(points)
	default:
		return linearPath(points)
	}
}

func linearPath(points []mgl64.Vec2) []mgl64.Vec2 {
	return points
}

// bezierPath chops the control points into consecutive non-overlapping
// cubic segments. A leftover tail of fewer than four points becomes a
// straight segment. This chunking differs from fitting one global curve;
// it is the convention the object positions depend on.
func bezierPath(points []mgl64.Vec2) []mgl64.Vec2 {
	if len(points) < bezierDegree+1 {
		return linearPath(points)
	}

	var path []mgl64.Vec2
	i := 0
	for i+bezierDegree <= len(points)-1 {
		path = append(path, sampleCubic(points[i:i+bezierDegree+1], SegmentSamples)...)
		i += bezierDegree
	}
	if i < len(points)-1 {
		path = append(path, lerpSegment(points[i], points[len(points)-1], SegmentSamples)...)
	}
	return path
}

// sampleCubic evaluates the closed-form Bernstein polynomial of a cubic
// segment at n parameters in [0,1].
func sampleCubic(cp []mgl64.Vec2, n int) []mgl64.Vec2 {
	out := make([]mgl64.Vec2, 0, n)
	for s := 0; s < n; s++ {
		t := float64(s) / float64(n-1)
		u := 1 - t
		p := cp[0].Mul(u * u * u).
			Add(cp[1].Mul(3 * u * u * t)).
			Add(cp[2].Mul(3 * u * t * t)).
			Add(cp[3].Mul(t * t * t))
		out = append(out, p)
	}
	return out
}

func catmullPath(points []mgl64.Vec2) []mgl64.Vec2 {
	if len(points) < 4 {
		return linearPath(points)
	}
	var path []mgl64.Vec2
	for i := 0; i+3 < len(points); i++ {
		path = append(path, sampleCatmull(points[i], points[i+1], points[i+2], points[i+3], SegmentSamples)...)
	}
	return path
}

func sampleCatmull(p0, p1, p2, p3 mgl64.Vec2, n int) []mgl64.Vec2 {
	out := make([]mgl64.Vec2, 0, n)
	for s := 0; s < n; s++ {
		t := float64(s) / float64(n-1)
		t2 := t * t
		t3 := t2 * t
		p := p1.Mul(2).
			Add(p2.Sub(p0).Mul(t)).
			Add(p0.Mul(2).Sub(p1.Mul(5)).Add(p2.Mul(4)).Sub(p3).Mul(t2)).
			Add(p1.Mul(3).Sub(p0).Sub(p2.Mul(3)).Add(p3).Mul(t3)).
			Mul(0.5)
		out = append(out, p)
	}
	return out
}

func perfectPath(points []mgl64.Vec2) []mgl64.Vec2 {
	if len(points) < 3 {
		return linearPath(points)
	}
	var path []mgl64.Vec2
	for i := 0; i+2 < len(points); i += 2 {
		path = append(path, sampleArc(points[i], points[i+1], points[i+2], SegmentSamples)...)
	}
	return path
}

// sampleArc fits a circle through three points and samples the arc from the
// first to the last, sweeping in the direction the middle point dictates.
// Colinear points degrade to a straight segment.
func sampleArc(p0, p1, p2 mgl64.Vec2, n int) []mgl64.Vec2 {
	center, ok := circleCenter(p0, p1, p2)
	if !ok {
		return lerpSegment(p0, p2, n)
	}
	radius := p0.Sub(center).Len()

	start := math.Atan2(p0[1]-center[1], p0[0]-center[0])
	end := math.Atan2(p2[1]-center[1], p2[0]-center[0])

	// Cross of the chord vectors resolves the traversal direction.
	ccw := cross(p1.Sub(p0), p2.Sub(p0)) > 0

	diff := end - start
	if ccw && diff <= 0 {
		diff += 2 * math.Pi
	} else if !ccw && diff >= 0 {
		diff -= 2 * math.Pi
	}

	out := make([]mgl64.Vec2, 0, n)
	for s := 0; s < n; s++ {
		a := start + diff*float64(s)/float64(n-1)
		out = append(out, mgl64.Vec2{
			center[0] + radius*math.Cos(a),
			center[1] + radius*math.Sin(a),
		})
	}
	return out
}

// circleCenter intersects the perpendicular bisectors of p0p1 and p1p2.
// Returns false when the bisectors are parallel (colinear input).
func circleCenter(p0, p1, p2 mgl64.Vec2) (mgl64.Vec2, bool) {
	d := 2 * (p0[0]*(p1[1]-p2[1]) + p1[0]*(p2[1]-p0[1]) + p2[0]*(p0[1]-p1[1]))
	if math.Abs(d) < 1e-6 {
		return mgl64.Vec2{}, false
	}
	a2 := p0.Dot(p0)
	b2 := p1.Dot(p1)
	c2 := p2.Dot(p2)
	return mgl64.Vec2{
		(a2*(p1[1]-p2[1]) + b2*(p2[1]-p0[1]) + c2*(p0[1]-p1[1])) / d,
		(a2*(p2[0]-p1[0]) + b2*(p0[0]-p2[0]) + c2*(p1[0]-p0[0])) / d,
	}, true
}

func cross(a, b mgl64.Vec2) float64 {
	return a[0]*b[1] - a[1]*b[0]
}

func lerpSegment(a, b mgl64.Vec2, n int) []mgl64.Vec2 {
	out := make([]mgl64.Vec2, 0, n)
	for s := 0; s < n; s++ {
		t := float64(s) / float64(n-1)
		out = append(out, a.Add(b.Sub(a).Mul(t)))
	}
	return out
}

// SamplePath densifies a generated path to roughly n points. Paths already
// at or above the target density are kept as-is.
func SamplePath(path []mgl64.Vec2, n int) []mgl64.Vec2 {
	if len(path) >= n || len(path) < 2 {
		return path
	}
	perSegment := n / (len(path) - 1)
	if perSegment < 1 {
		perSegment = 1
	}
	var out []mgl64.Vec2
	for i := 0; i+1 < len(path); i++ {
		out = append(out, lerpSegment(path[i], path[i+1], perSegment)...)
	}
	return out
}

// PositionAt maps progress in [0,1] onto the sampled polyline, treating the
// samples as uniform in parameter rather than arc length. Dense sampling
// keeps the distortion below visual tolerance.
func PositionAt(path []mgl64.Vec2, progress float64) mgl64.Vec2 {
	if len(path) == 0 {
		return mgl64.Vec2{}
	}
	if len(path) == 1 {
		return path[0]
	}
	if progress < 0 {
		progress = 0
	} else if progress > 1 {
		progress = 1
	}
	scaled := progress * float64(len(path)-1)
	i := int(scaled)
	if i > len(path)-2 {
		i = len(path) - 2
	}
	local := scaled - float64(i)
	return path[i].Add(path[i+1].Sub(path[i]).Mul(local))
}
