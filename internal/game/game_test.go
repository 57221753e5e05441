package game

import (
	"image/color"
	"math/rand"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/iburimskiy/cyber-vortex/internal/config"
	"github.com/iburimskiy/cyber-vortex/internal/input"
	"github.com/iburimskiy/cyber-vortex/internal/palette"
	"github.com/iburimskiy/cyber-vortex/internal/vortex"
)

var konamiKeys = []ebiten.Key{
	ebiten.KeyArrowUp, ebiten.KeyArrowUp, ebiten.KeyArrowDown, ebiten.KeyArrowDown,
	ebiten.KeyArrowLeft, ebiten.KeyArrowRight, ebiten.KeyArrowLeft, ebiten.KeyArrowRight,
	ebiten.KeyB, ebiten.KeyA,
}

func newGame(t *testing.T) *Game {
	t.Helper()
	cfg := vortex.DefaultConfig()
	cfg.RingCount = 2
	cfg.ParticlesPerRing = 4
	field, err := vortex.New(cfg, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatal(err)
	}
	g, err := New(field, color.NRGBA{A: 0xff})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(g.field.Detach)
	return g
}

func TestKonamiKey(t *testing.T) {
	seq := input.NewKonami()

	matched := false
	for _, k := range konamiKeys {
		matched = seq.Push(konamiKey(k))
	}
	if !matched {
		t.Error("arrow keys followed by B A did not complete the sequence")
	}

	if konamiKey(ebiten.KeySpace) != input.KeyOther {
		t.Error("space mapped to a sequence key")
	}
}

func TestApplyGlow(t *testing.T) {
	g := newGame(t)
	base, blur := g.baseGlow, g.baseBlur
	rotated := palette.RotateHue(base, config.EasterEggHue)

	tests := []struct {
		name     string
		level    float64
		eggTicks int
		wantGlow color.NRGBA
		wantBlur float64
	}{
		{"silent", 0, 0, base, blur},
		{"half level", 0.5, 0, base, blur * 2},
		{"full level", 1, 0, base, blur * 3},
		{"level clamped", 4, 0, base, blur * 3},
		{"easter egg", 0, 10, rotated, blur},
		{"easter egg with level", 1, 1, rotated, blur * 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g.level = tt.level
			g.eggTicks = tt.eggTicks
			g.applyGlow()

			glow, gotBlur := g.field.Glow()
			if glow != tt.wantGlow {
				t.Errorf("glow = %+v, want %+v", glow, tt.wantGlow)
			}
			if gotBlur != tt.wantBlur {
				t.Errorf("blur = %g, want %g", gotBlur, tt.wantBlur)
			}
		})
	}
}

func TestEasterEggExpires(t *testing.T) {
	g := newGame(t)
	base := g.baseGlow

	g.pushKeys(konamiKeys)
	if g.eggTicks == 0 {
		t.Fatal("easter egg not activated")
	}
	g.applyGlow()
	if glow, _ := g.field.Glow(); glow == base {
		t.Fatal("glow unchanged while the easter egg is active")
	}

	ticks := 1
	for g.eggTicks > 0 {
		g.pushKeys(nil)
		ticks++
	}
	if want := config.EasterEggSeconds * ebiten.TPS(); ticks != want {
		t.Errorf("easter egg lasted %d ticks, want %d", ticks, want)
	}

	g.applyGlow()
	if glow, _ := g.field.Glow(); glow != base {
		t.Errorf("glow %+v not restored to %+v", glow, base)
	}
}

func TestTogglePause(t *testing.T) {
	g := newGame(t)
	if !g.field.Running() {
		t.Fatal("field not running after New")
	}

	g.togglePause()
	if g.field.Running() {
		t.Error("togglePause did not stop the field")
	}
	if n := g.loop.Tick(); n != 0 {
		t.Errorf("paused loop ran %d callbacks", n)
	}

	g.togglePause()
	if !g.field.Running() {
		t.Error("togglePause did not resume the field")
	}
	if g.lastErr != nil {
		t.Errorf("lastErr = %v", g.lastErr)
	}
	if n := g.loop.Tick(); n != 1 {
		t.Errorf("resumed loop ran %d callbacks, want 1", n)
	}
}
