package testdata

// Osu is a minimal beatmap covering every object kind: circles, a linear,
// a perfect-arc and a bezier slider, and a spinner. The inherited timing
// point at 4000ms doubles slider velocity without resetting beat length.
const Osu = `osu file format v14

[General]
AudioFilename: audio.mp3

[Metadata]
Title:Fixture
Artist:Nobody
Creator:test
Version:Normal

[Difficulty]
HPDrainRate:5
CircleSize:4
OverallDifficulty:8
ApproachRate:9
SliderMultiplier:1
SliderTickRate:1

[TimingPoints]
0,500,4,2,0,100,1,0
4000,-50,4,2,0,100,0,0

[HitObjects]
64,64,1000,1,0
192,128,1500,1,0
256,192,2000,2,0,L|356:192,1,100
100,100,3000,2,0,P|150:50|200:100,1,160
300,200,4500,2,0,B|340:240|380:200|420:240,2,120
256,192,5000,12,0,6000
448,320,6500,1,0
`

// MalformedObject fails the typed hit object parse.
const MalformedObject = `osu file format v14

[Difficulty]
CircleSize:4

[HitObjects]
64,sixty,1000,1,0
`
