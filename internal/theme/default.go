package theme

import (
	"fmt"
)

type DefaultTheme struct{}

type color struct {
	R, G, B uint8
}

const (
	objectSym     = "⬤"
	sliderPathSym = "·"
	sliderBallSym = "●"
	spinnerSym    = "◌"
	cursorSym     = "✛"
	trailSym      = "•"
)

var (
	approachColors = [...]color{
		{236, 30, 0},   // just about to be hit
		{236, 195, 0},  // closing in
		{0, 118, 236},  // freshly visible
	}
	tierColors = map[int]color{
		300: {173, 236, 236},
		100: {0, 236, 128},
		50:  {236, 195, 0},
		0:   {236, 30, 0},
	}
	white = color{255, 255, 255}
)

func paint(c color, s string) string {
	return fmt.Sprintf("\033[38;2;%v;%v;%vm%v\033[0m", c.R, c.G, c.B, s)
}

func (t *DefaultTheme) RenderObject(approachScale float64) string {
	i := int(approachScale * float64(len(approachColors)))
	if i < 0 {
		i = 0
	}
	if i >= len(approachColors) {
		i = len(approachColors) - 1
	}
	return paint(approachColors[i], objectSym)
}

func (t *DefaultTheme) RenderSliderPath() string {
	return paint(color{106, 106, 106}, sliderPathSym)
}

func (t *DefaultTheme) RenderSliderBall() string {
	return paint(color{236, 128, 0}, sliderBallSym)
}

func (t *DefaultTheme) RenderSpinner() string {
	return paint(color{106, 0, 236}, spinnerSym)
}

func (t *DefaultTheme) RenderCursor(keys int) string {
	if keys != 0 {
		return paint(color{236, 0, 106}, cursorSym)
	}
	return paint(white, cursorSym)
}

func (t *DefaultTheme) RenderTrail() string {
	return paint(color{106, 106, 106}, trailSym)
}

func (t *DefaultTheme) RenderTier(tier int) string {
	c, ok := tierColors[tier]
	if !ok {
		c = white
	}
	label := fmt.Sprintf("%v", tier)
	if tier == 0 {
		label = "✗"
	}
	return paint(c, label)
}
