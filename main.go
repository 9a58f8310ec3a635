package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"time"

	"github.com/eiannone/keyboard"
	"github.com/faiface/beep"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/vorbis"
	"github.com/go-gl/mathgl/mgl64"

	"git.lost.host/meutraa/otr/internal/beatmap"
	"git.lost.host/meutraa/otr/internal/config"
	"git.lost.host/meutraa/otr/internal/cursor"
	"git.lost.host/meutraa/otr/internal/curve"
	"git.lost.host/meutraa/otr/internal/judge"
	"git.lost.host/meutraa/otr/internal/parser"
	"git.lost.host/meutraa/otr/internal/render"
	"git.lost.host/meutraa/otr/internal/score"
	"git.lost.host/meutraa/otr/internal/theme"
)

func main() {
	if err := run(); nil != err {
		log.Fatalln(err)
	}
}

func endOfMap(b *beatmap.Beatmap) float64 {
	end := 0.0
	for _, obj := range b.Objects {
		t := obj.StartTime()
		switch o := obj.(type) {
		case *beatmap.Slider:
			t = o.EndTime()
		case *beatmap.Spinner:
			t = o.EndTime
		}
		if t > end {
			end = t
		}
	}
	return end
}

func findFiles(dir string) (maps []string, mp3File, oggFile string, err error) {
	err = filepath.Walk(dir, func(p string, info os.FileInfo, err error) error {
		if nil != err {
			return err
		}
		switch path.Ext(info.Name()) {
		case ".osu":
			maps = append(maps, p)
		case ".mp3":
			mp3File = p
		case ".ogg":
			oggFile = p
		}
		return nil
	})
	return maps, mp3File, oggFile, err
}

func selectBeatmap(maps []string, psr parser.Parser, keyChannel <-chan keyboard.KeyEvent) (string, *beatmap.Beatmap, error) {
	if len(maps) == 1 {
		b, err := psr.Parse(maps[0])
		return maps[0], b, err
	}
	parsed := make([]*beatmap.Beatmap, len(maps))
	for i, m := range maps {
		b, err := psr.Parse(m)
		if nil != err {
			return "", nil, err
		}
		parsed[i] = b
		fmt.Printf("%2v) %-24v  %4v objects  (CS%.1f AR%.1f OD%.1f)\n",
			i, b.Metadata.Version, len(b.Objects),
			b.Difficulty.CircleSize, b.Difficulty.ApproachRate, b.Difficulty.OverallDifficulty)
	}
	key := <-keyChannel
	index, err := strconv.ParseInt(string(key.Rune), 10, 64)
	if nil != err || index > int64(len(maps)-1) {
		return "", nil, errors.New("invalid difficulty selection")
	}
	return maps[index], parsed[index], nil
}

func openAudio(dir, audioFilename, mp3File, oggFile string) (beep.StreamSeekCloser, beep.Format, error) {
	audioFile := ""
	if audioFilename != "" {
		p := path.Join(dir, audioFilename)
		if _, err := os.Stat(p); nil == err {
			audioFile = p
		}
	}
	if audioFile == "" {
		audioFile = oggFile
	}
	if audioFile == "" {
		audioFile = mp3File
	}
	if audioFile == "" {
		return nil, beep.Format{}, errors.New("no audio file referenced by the beatmap or present in the directory")
	}

	f, err := os.Open(audioFile)
	if nil != err {
		return nil, beep.Format{}, err
	}
	if path.Ext(audioFile) == ".ogg" {
		return vorbis.Decode(f)
	}
	return mp3.Decode(f)
}

func run() error {
	var r render.Renderer = &render.DefaultRenderer{}
	var th theme.Theme = &theme.DefaultTheme{}
	var psr parser.Parser = &parser.DefaultParser{}
	var scr score.Scorer = &score.DefaultScorer{}

	keyChannel, err := keyboard.GetKeys(128)
	if nil != err {
		return fmt.Errorf("unable to open keyboard: %w", err)
	}
	defer func() {
		if err := keyboard.Close(); nil != err {
			log.Println("unable to close keyboard", err)
		}
	}()

	maps, mp3File, oggFile, err := findFiles(*config.Directory)
	if nil != err {
		return fmt.Errorf("unable to walk song directory: %w", err)
	}
	if len(maps) == 0 {
		return errors.New("unable to find a .osu file in given directory")
	}

	mapFile, bm, err := selectBeatmap(maps, psr, keyChannel)
	if nil != err {
		return err
	}

	if *config.HardRock {
		bm.ApplyHardRock()
	}

	// Geometry is cached per object from here on; the Hard Rock flip above
	// must already have happened.
	cache := curve.NewCache()
	events, err := cursor.Synthesize(bm, cache, cursor.Playstyle(*config.Style), cursor.Options{
		Degree:    *config.Degree,
		Alternate: *config.Alternate,
	})
	if nil != err {
		return err
	}

	streamer, format, err := openAudio(path.Dir(mapFile), bm.General.AudioFilename, mp3File, oggFile)
	if nil != err {
		return err
	}
	defer streamer.Close()

	if err := speaker.Init(format.SampleRate, format.SampleRate.N(time.Second/60)); nil != err {
		return err
	}
	go func() {
		time.Sleep(*config.Delay)
		speaker.Play(streamer)
	}()

	if err := scr.Init(); nil != err {
		return fmt.Errorf("unable to open results database: %w", err)
	}
	defer scr.Deinit()

	if err := r.Init(); nil != err {
		return err
	}
	defer func() {
		if err := r.Deinit(); nil != err {
			log.Println("unable to restore terminal", err)
		}
	}()

	engine := judge.NewEngine(bm, cache, judge.Hooks{
		OnHit: func(obj beatmap.HitObject, tier int) {
			row, col := r.Project(obj.Position())
			r.AddDecoration(row, col, th.RenderTier(tier), 45)
		},
		OnMiss: func(obj beatmap.HitObject) {
			row, col := r.Project(obj.Position())
			r.AddDecoration(row, col, th.RenderTier(judge.TierMiss), 45)
		},
		OnSliderHead: func(obj *beatmap.Slider) {
			row, col := r.Project(obj.Pos)
			r.AddDecoration(row, col, th.RenderSliderBall(), 10)
		},
	})

	preempt := beatmap.Preempt(bm.Difficulty.ApproachRate)
	endTime := endOfMap(bm) + 3000
	var trail []mgl64.Vec2
	userOffset := int64(0)

	r.RenderLoop(*config.Delay, *config.FramePeriod, func(now time.Time, duration time.Duration) bool {
		// User offset changes apply atomically for the whole tick.
		for i := 0; i < len(keyChannel); i++ {
			key := <-keyChannel
			switch key.Key {
			case keyboard.KeyEsc:
				return false
			case keyboard.KeyArrowUp:
				userOffset += 10
			case keyboard.KeyArrowDown:
				userOffset -= 10
			}
		}

		t := float64((duration + *config.Offset).Milliseconds() + userOffset)
		if t > endTime {
			return false
		}

		var st cursor.State
		if len(events) > 0 {
			st = cursor.Sample(events, t, *config.Smoothing)
			engine.Step(t, st)
		}

		for _, obj := range bm.Visible(t, preempt) {
			row, col := r.Project(obj.Position())
			switch o := obj.(type) {
			case *beatmap.Circle:
				r.Fill(row, col, th.RenderObject(beatmap.ApproachScale(o, t, preempt)))
			case *beatmap.Slider:
				drawSlider(r, th, cache, o, t, preempt)
			case *beatmap.Spinner:
				r.Fill(row, col, th.RenderSpinner())
			}
		}

		trail = append(trail, st.Pos)
		if len(trail) > int(*config.TrailLength) {
			trail = trail[len(trail)-int(*config.TrailLength):]
		}
		for _, p := range trail[:max(len(trail)-1, 0)] {
			row, col := r.Project(p)
			r.Fill(row, col, th.RenderTrail())
		}
		row, col := r.Project(st.Pos)
		r.Fill(row, col, th.RenderCursor(st.Keys))

		drawSidebar(r, th, engine.Score(), userOffset)
		return true
	})

	sum, err := score.HashBeatmap(mapFile)
	if nil != err {
		log.Println("unable to hash beatmap", err)
		return nil
	}
	scr.Save(sum, *config.Style, engine.Score())
	for _, prev := range scr.Load(sum) {
		log.Printf("previous %v: score %v combo %v\n", prev.Style, prev.Score, prev.MaxCombo)
	}
	return nil
}

// drawSlider draws a sparse sampling of the path, the head circle, and the
// ball once the slider is running.
func drawSlider(r render.Renderer, th theme.Theme, cache *curve.Cache, s *beatmap.Slider, t, preempt float64) {
	path := cache.Path(s)
	step := len(path) / 24
	if step < 1 {
		step = 1
	}
	for i := 0; i < len(path); i += step {
		row, col := r.Project(path[i])
		r.Fill(row, col, th.RenderSliderPath())
	}

	row, col := r.Project(s.Pos)
	r.Fill(row, col, th.RenderObject(beatmap.ApproachScale(s, t, preempt)))

	if t >= s.Time && t <= s.EndTime() {
		row, col := r.Project(curve.BallPosition(path, s, t))
		r.Fill(row, col, th.RenderSliderBall())
	}
}

func drawSidebar(r render.Renderer, th theme.Theme, s judge.Score, userOffset int64) {
	r.Fill(2, 2, fmt.Sprintf("    Score:  %7v", s.Score))
	r.Fill(3, 2, fmt.Sprintf("    Combo:  %7v", s.Combo))
	r.Fill(4, 2, fmt.Sprintf("Max Combo:  %7v", s.MaxCombo))
	r.Fill(5, 2, fmt.Sprintf("     Hits:  %7v", s.TotalHits))
	for i, tier := range []int{judge.Tier300, judge.Tier100, judge.Tier50, judge.TierMiss} {
		r.Fill(7+i, 2, fmt.Sprintf("%v:  %6v", th.RenderTier(tier), s.Counts[tier]))
	}
	r.Fill(12, 2, fmt.Sprintf("   Offset:  %5vms", userOffset))
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
