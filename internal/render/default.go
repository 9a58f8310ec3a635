package render

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"golang.org/x/term"

	"git.lost.host/meutraa/otr/internal/beatmap"
)

type DefaultRenderer struct {
	buffer       strings.Builder
	restoreState *term.State
	decorations  []*decoration

	rows, cols int
	// Terminal cells are roughly twice as tall as wide; the playfield is
	// scaled into the window leaving a margin for the sidebar.
	scaleX, scaleY float64
	originRow      int
	originCol      int
}

type decoration struct {
	Row, Col int
	Content  string
	Frames   int // remaining frames until removed
}

const sidebarWidth = 28

func (r *DefaultRenderer) Init() error {
	cols, rows, err := term.GetSize(int(os.Stdout.Fd()))
	if nil != err {
		return fmt.Errorf("unable to get terminal size: %w", err)
	}
	r.rows, r.cols = rows, cols

	field := float64(cols - sidebarWidth - 2)
	if field < 32 {
		field = 32
	}
	r.scaleX = field / beatmap.PlayfieldWidth
	r.scaleY = float64(rows-2) / beatmap.PlayfieldHeight
	r.originRow = 1
	r.originCol = sidebarWidth + 1

	state, err := term.MakeRaw(int(os.Stdout.Fd()))
	if nil != err {
		return err
	}
	r.restoreState = state

	fmt.Printf("%s%s%s",
		"\033[?1049h", // Enable alternate buffer
		"\033[?25l",   // Make the cursor invisible
		"\033[J",      // Clear the screen
	)
	return nil
}

func (r *DefaultRenderer) Deinit() error {
	fmt.Printf("%s%s",
		"\033[?1049l", // Disable alternate buffer
		"\033[?25h",   // Make the cursor visible
	)
	if nil == r.restoreState {
		return nil
	}
	return term.Restore(int(os.Stdout.Fd()), r.restoreState)
}

func (r *DefaultRenderer) Project(pos mgl64.Vec2) (int, int) {
	row := r.originRow + int(pos[1]*r.scaleY)
	col := r.originCol + int(pos[0]*r.scaleX)
	if row < 1 {
		row = 1
	}
	if row > r.rows {
		row = r.rows
	}
	if col < 1 {
		col = 1
	}
	if col > r.cols {
		col = r.cols
	}
	return row, col
}

func (r *DefaultRenderer) AddDecoration(row, col int, content string, frames int) {
	r.decorations = append(r.decorations, &decoration{
		Row:     row,
		Col:     col,
		Content: content,
		Frames:  frames,
	})
	r.Fill(row, col, content)
}

func (r *DefaultRenderer) tickDecorations() {
	nd := make([]*decoration, 0, len(r.decorations))
	for _, d := range r.decorations {
		if d.Frames == 0 {
			r.Fill(d.Row, d.Col, " ")
			continue
		}
		r.Fill(d.Row, d.Col, d.Content)
		nd = append(nd, d)
		d.Frames--
	}
	r.decorations = nd
}

// RenderLoop drives one render callback per frame period until the
// callback returns false. The duration handed to the callback is the time
// since the delayed start.
func (r *DefaultRenderer) RenderLoop(
	delay, period time.Duration,
	render func(now time.Time, duration time.Duration) bool,
) {
	cont := true
	startTime := time.Now().Add(delay)
	for cont {
		now := time.Now()
		deadline := now.Add(period)

		r.buffer.WriteString("\033[2J")
		cont = render(now, now.Sub(startTime))

		r.tickDecorations()
		r.flush()

		time.Sleep(time.Until(deadline))
	}
}

func (r *DefaultRenderer) Fill(row, col int, message string) {
	r.buffer.WriteString("\033[")
	r.buffer.WriteString(strconv.Itoa(row))
	r.buffer.WriteString(";")
	r.buffer.WriteString(strconv.Itoa(col))
	r.buffer.WriteString("H")
	r.buffer.WriteString(message)
}

func (r *DefaultRenderer) flush() {
	os.Stdout.WriteString(r.buffer.String())
	r.buffer.Reset()
}
