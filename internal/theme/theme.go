package theme

// Theme renders the playfield glyphs. Implementations return complete ANSI
// sequences ready for the renderer buffer.
type Theme interface {
	RenderObject(approachScale float64) string
	RenderSliderPath() string
	RenderSliderBall() string
	RenderSpinner() string
	RenderCursor(keys int) string
	RenderTrail() string
	RenderTier(tier int) string
}
