package parser

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl64"

	"git.lost.host/meutraa/otr/internal/beatmap"
)

// Object type flags of the .osu hit object line.
const (
	typeCircle  = 1
	typeSlider  = 2
	typeSpinner = 8
)

type DefaultParser struct{}

func (p *DefaultParser) Parse(file string) (*beatmap.Beatmap, error) {
	f, err := os.Open(file)
	if nil != err {
		return nil, err
	}
	defer f.Close()
	return p.Decode(f)
}

// Decode reads the .osu text format. Malformed object or timing point lines
// are a hard error; a partial beatmap is never returned.
func (p *DefaultParser) Decode(r io.Reader) (*beatmap.Beatmap, error) {
	b := &beatmap.Beatmap{
		Difficulty: beatmap.Difficulty{
			CircleSize:        5,
			OverallDifficulty: 5,
			ApproachRate:      -1,
			SliderMultiplier:  1,
			SliderTickRate:    1,
		},
	}

	section := ""
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "//") {
			continue
		}
		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			section = strings.Trim(line, "[]")
			continue
		}

		var err error
		switch section {
		case "General":
			k, v := splitKeyValue(line)
			if k == "AudioFilename" {
				b.General.AudioFilename = v
			}
		case "Metadata":
			k, v := splitKeyValue(line)
			switch k {
			case "Title":
				b.Metadata.Title = v
			case "Artist":
				b.Metadata.Artist = v
			case "Creator":
				b.Metadata.Creator = v
			case "Version":
				b.Metadata.Version = v
			}
		case "Difficulty":
			err = parseDifficulty(&b.Difficulty, line)
		case "TimingPoints":
			err = parseTimingPoint(b, line)
		case "HitObjects":
			err = parseHitObject(b, line)
		}
		if nil != err {
			return nil, err
		}
	}
	if err := sc.Err(); nil != err {
		return nil, err
	}

	// Old beatmaps omit AR; it mirrors OD then.
	if b.Difficulty.ApproachRate < 0 {
		b.Difficulty.ApproachRate = b.Difficulty.OverallDifficulty
	}

	warnDuplicateTimes(b)
	b.DeriveDurations()
	return b, nil
}

func splitKeyValue(line string) (string, string) {
	i := strings.Index(line, ":")
	if i < 0 {
		return strings.TrimSpace(line), ""
	}
	return strings.TrimSpace(line[:i]), strings.TrimSpace(line[i+1:])
}

func parseDifficulty(d *beatmap.Difficulty, line string) error {
	k, v := splitKeyValue(line)
	value, err := strconv.ParseFloat(v, 64)
	if nil != err {
		return fmt.Errorf("difficulty %q: %w", line, err)
	}
	switch k {
	case "HPDrainRate":
		d.HPDrainRate = value
	case "CircleSize":
		d.CircleSize = value
	case "OverallDifficulty":
		d.OverallDifficulty = value
	case "ApproachRate":
		d.ApproachRate = value
	case "SliderMultiplier":
		d.SliderMultiplier = value
	case "SliderTickRate":
		d.SliderTickRate = value
	}
	return nil
}

func parseTimingPoint(b *beatmap.Beatmap, line string) error {
	parts := strings.Split(line, ",")
	if len(parts) < 2 {
		return fmt.Errorf("timing point %q: too few fields", line)
	}
	t, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if nil != err {
		return fmt.Errorf("timing point %q: %w", line, err)
	}
	bl, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if nil != err {
		return fmt.Errorf("timing point %q: %w", line, err)
	}
	uninherited := true
	if len(parts) > 6 {
		uninherited = strings.TrimSpace(parts[6]) == "1"
	} else if bl < 0 {
		uninherited = false
	}
	b.TimingPoints = append(b.TimingPoints, beatmap.TimingPoint{
		Time:        t,
		BeatLength:  bl,
		Uninherited: uninherited,
	})
	return nil
}

// parseHitObject decodes "x,y,time,type,hitSound,extras...". Slider extras
// are "curveTypeAndPoints,repeatCount,pixelLength"; the spinner extra is its
// end time.
func parseHitObject(b *beatmap.Beatmap, line string) error {
	parts := strings.Split(line, ",")
	if len(parts) < 5 {
		return fmt.Errorf("hit object %q: too few fields", line)
	}
	fields := make([]float64, 5)
	for i := 0; i < 5; i++ {
		v, err := strconv.ParseFloat(strings.TrimSpace(parts[i]), 64)
		if nil != err {
			return fmt.Errorf("hit object %q: %w", line, err)
		}
		fields[i] = v
	}
	base := beatmap.Base{
		Pos:   mgl64.Vec2{fields[0], fields[1]},
		Time:  fields[2],
		Sound: int(fields[4]),
	}
	objType := int(fields[3])

	switch {
	case objType&typeSlider != 0:
		if len(parts) < 8 {
			return fmt.Errorf("slider %q: too few fields", line)
		}
		kind, control, err := parseCurve(base.Pos, parts[5])
		if nil != err {
			return fmt.Errorf("slider %q: %w", line, err)
		}
		repeats, err := strconv.Atoi(strings.TrimSpace(parts[6]))
		if nil != err {
			return fmt.Errorf("slider %q: %w", line, err)
		}
		length, err := strconv.ParseFloat(strings.TrimSpace(parts[7]), 64)
		if nil != err {
			return fmt.Errorf("slider %q: %w", line, err)
		}
		if repeats < 1 {
			repeats = 1
		}
		b.Objects = append(b.Objects, &beatmap.Slider{
			Base:          base,
			CurveKind:     kind,
			ControlPoints: control,
			Repeats:       repeats,
			PixelLength:   length,
		})

	case objType&typeSpinner != 0:
		if len(parts) < 6 {
			return fmt.Errorf("spinner %q: missing end time", line)
		}
		end, err := strconv.ParseFloat(strings.TrimSpace(parts[5]), 64)
		if nil != err {
			return fmt.Errorf("spinner %q: %w", line, err)
		}
		b.Objects = append(b.Objects, &beatmap.Spinner{Base: base, EndTime: end})

	case objType&typeCircle != 0:
		b.Objects = append(b.Objects, &beatmap.Circle{Base: base})

	default:
		return fmt.Errorf("hit object %q: unknown type %d", line, objType)
	}
	return nil
}

// parseCurve decodes "B|x1:y1|x2:y2|...". The slider head is prepended as
// the first control point.
func parseCurve(head mgl64.Vec2, spec string) (beatmap.CurveKind, []mgl64.Vec2, error) {
	tokens := strings.Split(spec, "|")
	if len(tokens) < 2 {
		return 0, nil, fmt.Errorf("curve %q: no control points", spec)
	}

	var kind beatmap.CurveKind
	switch strings.ToUpper(strings.TrimSpace(tokens[0])) {
	case "L":
		kind = beatmap.CurveLinear
	case "B":
		kind = beatmap.CurveBezier
	case "C":
		kind = beatmap.CurveCatmull
	case "P":
		kind = beatmap.CurvePerfect
	default:
		return 0, nil, fmt.Errorf("curve %q: unknown kind", spec)
	}

	points := []mgl64.Vec2{head}
	for _, tok := range tokens[1:] {
		xy := strings.Split(strings.TrimSpace(tok), ":")
		if len(xy) != 2 {
			return 0, nil, fmt.Errorf("curve point %q: want x:y", tok)
		}
		x, err := strconv.ParseFloat(xy[0], 64)
		if nil != err {
			return 0, nil, fmt.Errorf("curve point %q: %w", tok, err)
		}
		y, err := strconv.ParseFloat(xy[1], 64)
		if nil != err {
			return 0, nil, fmt.Errorf("curve point %q: %w", tok, err)
		}
		points = append(points, mgl64.Vec2{x, y})
	}
	return kind, points, nil
}

// Judged objects are keyed by start time, so two objects on one timestamp
// would conflate. Such beatmaps are malformed; keep both objects but say so.
func warnDuplicateTimes(b *beatmap.Beatmap) {
	seen := make(map[float64]bool, len(b.Objects))
	for _, obj := range b.Objects {
		if seen[obj.StartTime()] {
			log.Printf("beatmap has two objects at %vms; judgement will conflate them", obj.StartTime())
		}
		seen[obj.StartTime()] = true
	}
}
