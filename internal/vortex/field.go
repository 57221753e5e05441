// Package vortex is the glyph particle engine: rings of characters orbiting a
// center on tilted ellipses, redrawn once per frame onto a Surface.
package vortex

import (
	"errors"
	"image/color"
	"math"
	"math/rand"
	"reflect"
	"time"
)

var (
	ErrNoSurface   = errors.New("vortex: no drawing surface")
	ErrNotAttached = errors.New("vortex: field is not attached to a surface")
)

// ParticleField owns a fixed set of glyph particles arranged in concentric
// rings and renders them to a Surface once per scheduled frame.
//
// A field is not safe for concurrent use; the host drives it from its frame
// loop and delivers resize notifications on the same goroutine.
type ParticleField struct {
	cfg    Config
	glyphs []rune
	rng    Rand

	particles []Particle
	built     bool

	surface Surface
	cancel  func()

	width, height    float64
	centerX, centerY float64
	elapsed          float64

	glowColor color.NRGBA
	glowBlur  float64
}

// New validates cfg and returns an unattached field. A nil rng selects a
// time-seeded source.
func New(cfg Config, rng Rand) (*ParticleField, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &ParticleField{
		cfg:       cfg,
		glyphs:    []rune(cfg.Glyphs),
		rng:       rng,
		glowColor: cfg.GlowColor,
		glowBlur:  cfg.GlowBlur,
	}, nil
}

// Attach binds the field to s, measures it and builds the particle set on the
// first call. Attaching again rebinds without rebuilding particles.
func (f *ParticleField) Attach(s Surface) error {
	if isNil(s) {
		return ErrNoSurface
	}
	f.surface = s
	f.HandleResize()
	if !f.built {
		f.build()
	}
	return nil
}

// isNil also catches a nil pointer stored in a non-nil interface.
func isNil(s Surface) bool {
	if s == nil {
		return true
	}
	v := reflect.ValueOf(s)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return v.IsNil()
	}
	return false
}

// Detach stops the frame subscription and releases the surface.
func (f *ParticleField) Detach() {
	f.Stop()
	f.surface = nil
}

func (f *ParticleField) build() {
	n := f.cfg.RingCount * f.cfg.ParticlesPerRing
	f.particles = make([]Particle, 0, n)

	for ring := 0; ring < f.cfg.RingCount; ring++ {
		radius := f.cfg.RadiusFor(ring)
		speed := f.cfg.SpeedFor(ring)
		size := f.cfg.FontSizeFor(ring)

		for i := 0; i < f.cfg.ParticlesPerRing; i++ {
			f.particles = append(f.particles, Particle{
				Glyph:      f.randomGlyph(),
				Angle:      float64(i) / float64(f.cfg.ParticlesPerRing) * 2 * math.Pi,
				Speed:      speed,
				BaseRadius: radius,
				Ring:       ring,
				Countdown:  f.intn(f.cfg.CountdownJitter),
				FontSize:   size,
			})
		}
	}
	f.built = true
}

// HandleResize re-reads the surface size and recomputes the center. The host
// calls it on every layout change; the field never polls.
func (f *ParticleField) HandleResize() {
	if f.surface == nil {
		return
	}
	w, h := f.surface.Size()
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	f.width, f.height = w, h
	f.centerX, f.centerY = w/2, h/2
}

// RenderFrame advances every particle by one step and draws it. It is a no-op
// while detached.
func (f *ParticleField) RenderFrame() {
	s := f.surface
	if s == nil {
		return
	}

	s.ClearRect(0, 0, f.width, f.height)
	s.SetTextAlign(AlignCenter)
	s.SetTextBaseline(BaselineMiddle)
	s.SetShadow(f.glowBlur, f.glowColor)

	fill := f.glowColor
	for i := range f.particles {
		p := &f.particles[i]
		p.Angle += p.Speed

		p.Countdown--
		if p.Countdown <= 0 {
			p.Glyph = f.randomGlyph()
			p.Countdown = f.cfg.CountdownBase + f.intn(f.cfg.CountdownJitter)
		}

		x, y := Position(f.centerX, f.centerY, p.Angle, p.BaseRadius, f.cfg.VerticalSquash)
		fill.A = uint8(math.Round(Opacity(p.Angle) * 255))

		s.SetFont(p.FontSize)
		s.SetFillStyle(fill)
		s.FillText(string(p.Glyph), x, y)
	}

	f.elapsed += f.cfg.FrameDelta
}

// Run subscribes RenderFrame to sched. Calling Run on a running field is a no-op.
func (f *ParticleField) Run(sched Scheduler) error {
	if f.surface == nil {
		return ErrNotAttached
	}
	if f.cancel != nil {
		return nil
	}
	f.cancel = sched.Subscribe(f.RenderFrame)
	return nil
}

// Stop cancels the frame subscription. A frame already in progress completes.
func (f *ParticleField) Stop() {
	if f.cancel == nil {
		return
	}
	f.cancel()
	f.cancel = nil
}

func (f *ParticleField) Running() bool {
	return f.cancel != nil
}

// SetGlow replaces the glow color and blur used by subsequent frames. The
// alpha of c is ignored; per-particle opacity replaces it.
func (f *ParticleField) SetGlow(c color.NRGBA, blur float64) {
	if blur < 0 {
		blur = 0
	}
	f.glowColor = c
	f.glowBlur = blur
}

func (f *ParticleField) Glow() (color.NRGBA, float64) {
	return f.glowColor, f.glowBlur
}

// Particles returns a copy of the particle set in ring-major order.
func (f *ParticleField) Particles() []Particle {
	return append([]Particle(nil), f.particles...)
}

func (f *ParticleField) Len() int {
	return len(f.particles)
}

func (f *ParticleField) Center() (x, y float64) {
	return f.centerX, f.centerY
}

func (f *ParticleField) Size() (width, height float64) {
	return f.width, f.height
}

// Elapsed is the frame-count based clock, advanced by FrameDelta per frame.
func (f *ParticleField) Elapsed() float64 {
	return f.elapsed
}

func (f *ParticleField) Config() Config {
	return f.cfg
}

func (f *ParticleField) randomGlyph() rune {
	return f.glyphs[f.rng.Intn(len(f.glyphs))]
}

func (f *ParticleField) intn(n int) int {
	if n <= 0 {
		return 0
	}
	return f.rng.Intn(n)
}
