package vortex

import "math"

// Particle is a single glyph orbiting on one ring.
type Particle struct {
	Glyph      rune
	Angle      float64
	Speed      float64
	BaseRadius float64
	Ring       int
	Countdown  int
	FontSize   float64
}

// Opacity gives particles near the vertical extremes of their ellipse the
// highest alpha. The result is always in [0.4, 1.0].
func Opacity(angle float64) float64 {
	return 0.4 + math.Abs(math.Sin(angle))*0.6
}

// Position projects a particle onto the tilted ring around (cx, cy).
func Position(cx, cy, angle, radius, squash float64) (x, y float64) {
	return cx + math.Cos(angle)*radius, cy + math.Sin(angle)*radius*squash
}
