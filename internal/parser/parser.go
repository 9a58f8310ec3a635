package parser

import (
	"io"

	"git.lost.host/meutraa/otr/internal/beatmap"
)

type Parser interface {
	Parse(file string) (*beatmap.Beatmap, error)
	Decode(r io.Reader) (*beatmap.Beatmap, error)
}
