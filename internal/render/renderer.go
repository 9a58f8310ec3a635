package render

import (
	"time"

	"github.com/go-gl/mathgl/mgl64"
)

type Renderer interface {
	Init() error
	Deinit() error
	// Project maps a playfield position to a terminal row and column.
	Project(pos mgl64.Vec2) (row, col int)
	Fill(row, col int, message string)
	AddDecoration(row, col int, content string, frames int)
	RenderLoop(delay, period time.Duration, render func(now time.Time, duration time.Duration) bool)
}
