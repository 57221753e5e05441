package vortex

import (
	"errors"
	"fmt"
	"image/color"
)

// DefaultGlyphs is the alphabet the vortex samples from.
const DefaultGlyphs = "0a1αb2βcγ3dδεe4ζfη5gθιh6κiλ7jμνk8ξlπ9ρmστnυφoχψpωqΣΦrΨΩt★s☆u"

var ErrInvalidConfig = errors.New("invalid vortex config")

// Config holds the fixed parameters of a field. It is copied into the field
// on construction and never changes afterwards.
type Config struct {
	RingCount        int
	ParticlesPerRing int
	Glyphs           string

	// Angular increment of the innermost ring, divided by ring+1 for the others
	BaseSpeed float64

	RingRadiusBase float64
	RingRadiusStep float64

	// Applied to the sine component so rings render as tilted ellipses
	VerticalSquash float64

	GlowColor color.NRGBA
	GlowBlur  float64

	FontSizeBase float64
	FontSizeStep float64
	MinFontSize  float64

	// Countdown reset is CountdownBase + [0, CountdownJitter)
	CountdownBase   int
	CountdownJitter int

	FrameDelta float64
}

func DefaultConfig() Config {
	return Config{
		RingCount:        12,
		ParticlesPerRing: 50,
		Glyphs:           DefaultGlyphs,
		BaseSpeed:        0.015,
		RingRadiusBase:   60,
		RingRadiusStep:   40,
		VerticalSquash:   0.3,
		GlowColor:        color.NRGBA{R: 0x00, G: 0xd4, B: 0x66, A: 0xff},
		GlowBlur:         5,
		FontSizeBase:     16,
		FontSizeStep:     2,
		MinFontSize:      4,
		CountdownBase:    25,
		CountdownJitter:  50,
		FrameDelta:       0.016,
	}
}

// Validate reports the first parameter that would break the field's invariants.
func (c Config) Validate() error {
	switch {
	case c.RingCount < 1:
		return fmt.Errorf("%w: ring count %d must be at least 1", ErrInvalidConfig, c.RingCount)
	case c.ParticlesPerRing < 1:
		return fmt.Errorf("%w: particles per ring %d must be at least 1", ErrInvalidConfig, c.ParticlesPerRing)
	case len([]rune(c.Glyphs)) == 0:
		return fmt.Errorf("%w: glyph alphabet is empty", ErrInvalidConfig)
	case c.BaseSpeed <= 0:
		return fmt.Errorf("%w: base speed %g must be positive", ErrInvalidConfig, c.BaseSpeed)
	case c.RingRadiusBase < 0 || c.RingRadiusStep < 0:
		return fmt.Errorf("%w: ring radii must not be negative", ErrInvalidConfig)
	case c.VerticalSquash <= 0 || c.VerticalSquash > 1:
		return fmt.Errorf("%w: vertical squash %g must be in (0, 1]", ErrInvalidConfig, c.VerticalSquash)
	case c.GlowBlur < 0:
		return fmt.Errorf("%w: glow blur %g must not be negative", ErrInvalidConfig, c.GlowBlur)
	case c.MinFontSize <= 0:
		return fmt.Errorf("%w: minimum font size %g must be positive", ErrInvalidConfig, c.MinFontSize)
	case c.CountdownBase < 1:
		return fmt.Errorf("%w: countdown base %d must be at least 1", ErrInvalidConfig, c.CountdownBase)
	case c.CountdownJitter < 0:
		return fmt.Errorf("%w: countdown jitter %d must not be negative", ErrInvalidConfig, c.CountdownJitter)
	case c.FrameDelta < 0:
		return fmt.Errorf("%w: frame delta %g must not be negative", ErrInvalidConfig, c.FrameDelta)
	}
	return nil
}

// FontSizeFor returns the font size of a ring, floored to MinFontSize.
func (c Config) FontSizeFor(ring int) float64 {
	size := c.FontSizeBase - float64(ring)*c.FontSizeStep
	if size < c.MinFontSize {
		return c.MinFontSize
	}
	return size
}

func (c Config) SpeedFor(ring int) float64 {
	return c.BaseSpeed / float64(ring+1)
}

func (c Config) RadiusFor(ring int) float64 {
	return c.RingRadiusBase + float64(ring)*c.RingRadiusStep
}
