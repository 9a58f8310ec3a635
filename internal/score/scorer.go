package score

import (
	"git.lost.host/meutraa/otr/internal/judge"
)

type Scorer interface {
	Init() error
	Deinit()

	// Save the outcome of this run
	Save(sum string, style string, result judge.Score)

	// Load up previous results for the beatmap
	Load(sum string) []Result
}

type Result struct {
	Sum      string
	Style    string
	Score    int
	MaxCombo int
	Counts   map[int]int
}
