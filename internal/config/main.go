package config

import (
	"gopkg.in/alecthomas/kingpin.v2"
)

var (
	Directory   = kingpin.Arg("directory", "Song/beatmap directory").Required().ExistingDir()
	Style       = kingpin.Flag("style", "Playstyle: auto or dancer").Default("dancer").Short('s').String()
	Degree      = kingpin.Flag("degree", "Dancing degree (0.0 to 1.0)").Default("0.35").Short('g').Float64()
	Alternate   = kingpin.Flag("alternate", "Alternate the dance curve side every object").Short('a').Bool()
	Smoothing   = kingpin.Flag("smoothing", "Smooth the sampled cursor").Default("true").Bool()
	HardRock    = kingpin.Flag("hardrock", "Apply the Hard Rock mod").Short('H').Bool()
	Offset      = kingpin.Flag("offset", "Global audio offset").Default("0ms").Short('o').Duration()
	Delay       = kingpin.Flag("delay", "Start delay").Default("1.5s").Short('d').Duration()
	FramePeriod = kingpin.Flag("frame-period", "Render frame period").Default("4ms").Short('p').Duration()
	TrailLength = kingpin.Flag("trail", "Cursor trail length in frames").Default("12").Uint()
)

func init() {
	kingpin.Version("0.1.0")
	kingpin.Parse()
}
