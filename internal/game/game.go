package game

import (
	"fmt"
	"image/color"

	"github.com/faiface/beep"
	"github.com/faiface/beep/speaker"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/iburimskiy/cyber-vortex/internal/config"
	"github.com/iburimskiy/cyber-vortex/internal/input"
	"github.com/iburimskiy/cyber-vortex/internal/palette"
	"github.com/iburimskiy/cyber-vortex/internal/vortex"
)

// Game hosts a particle field in an ebiten window. Layout is the field's
// resize notification and Draw is its display refresh.
type Game struct {
	field      *vortex.ParticleField
	canvas     *canvas
	loop       *vortex.FrameLoop
	background color.NRGBA

	// glow before soundtrack and easter egg modulation
	baseGlow color.NRGBA
	baseBlur float64

	// soundtrack
	track        *soundtrack
	speakerReady bool
	speakerRate  beep.SampleRate
	level        float64

	// easter egg
	konami   *input.Sequence[input.Konami]
	eggTicks int

	keys    []ebiten.Key
	showHUD bool
	lastErr error
}

// New attaches field to the window canvas and starts it. The canvas has no
// size until the first Layout call.
func New(field *vortex.ParticleField, background color.NRGBA) (*Game, error) {
	c, err := newCanvas()
	if err != nil {
		return nil, fmt.Errorf("load font: %w", err)
	}
	if err := field.Attach(c); err != nil {
		return nil, err
	}

	g := &Game{
		field:      field,
		canvas:     c,
		loop:       vortex.NewFrameLoop(),
		background: background,
		konami:     input.NewKonami(),
		showHUD:    true,
	}
	g.baseGlow, g.baseBlur = field.Glow()

	if err := field.Run(g.loop); err != nil {
		return nil, err
	}
	return g, nil
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.togglePause()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		g.showHUD = !g.showHUD
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyO) {
		if err := g.openSoundtrackDialog(); err != nil {
			g.lastErr = err
		}
	}

	g.keys = inpututil.AppendJustPressedKeys(g.keys[:0])
	g.pushKeys(g.keys)

	g.updateLevel()
	g.applyGlow()
	return nil
}

// pushKeys feeds one tick's fresh key presses to the easter egg detector and
// counts down an active egg.
func (g *Game) pushKeys(keys []ebiten.Key) {
	for _, k := range keys {
		if g.konami.Push(konamiKey(k)) {
			g.eggTicks = config.EasterEggSeconds * ebiten.TPS()
		}
	}
	if g.eggTicks > 0 {
		g.eggTicks--
	}
}

// applyGlow derives the current glow from the base style, the soundtrack
// level and the easter egg.
func (g *Game) applyGlow() {
	glow := g.baseGlow
	if g.eggTicks > 0 {
		glow = palette.RotateHue(glow, config.EasterEggHue)
	}
	blur := g.baseBlur * (1 + config.LevelGlowGain*palette.Clamp01(g.level))
	g.field.SetGlow(glow, blur)
}

func (g *Game) togglePause() {
	if g.field.Running() {
		g.field.Stop()
		g.pauseSoundtrack(true)
		return
	}
	if err := g.field.Run(g.loop); err != nil {
		g.lastErr = err
		return
	}
	g.pauseSoundtrack(false)
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.loop.Tick()

	screen.Fill(g.background)
	if g.canvas.layer != nil {
		screen.DrawImage(g.canvas.layer, nil)
	}

	if g.showHUD {
		ebitenutil.DebugPrintAt(screen, g.status(), 12, 12)
	}
}

func (g *Game) status() string {
	status := "Space: pause | O: soundtrack | H: hide | Esc/Q: quit"
	if !g.field.Running() {
		status = "Paused - " + status
	}
	status += " | " + formatDuration(frameClock(g.field.Elapsed()))
	if g.track != nil {
		status += fmt.Sprintf(" | %s (level %.2f)", g.track.name, g.level)
	}
	if g.lastErr != nil {
		status += " | Error: " + g.lastErr.Error()
	}
	return status
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if g.canvas.resize(outsideWidth, outsideHeight) {
		g.field.HandleResize()
	}
	return outsideWidth, outsideHeight
}

// Close stops the field and releases the soundtrack.
func (g *Game) Close() {
	g.field.Detach()
	g.stopSoundtrack()
	if g.speakerReady {
		speaker.Close()
	}
}

func konamiKey(k ebiten.Key) input.Konami {
	switch k {
	case ebiten.KeyArrowUp:
		return input.KeyUp
	case ebiten.KeyArrowDown:
		return input.KeyDown
	case ebiten.KeyArrowLeft:
		return input.KeyLeft
	case ebiten.KeyArrowRight:
		return input.KeyRight
	case ebiten.KeyB:
		return input.KeyB
	case ebiten.KeyA:
		return input.KeyA
	}
	return input.KeyOther
}
