package term

import (
	"context"
	"errors"
	"image/color"
	"math/rand"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/iburimskiy/cyber-vortex/internal/vortex"
)

var black = color.NRGBA{A: 0xff}

func newScreen(t *testing.T, cols, rows int) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("Failed to init screen: %v", err)
	}
	screen.SetSize(cols, rows)
	t.Cleanup(screen.Fini)
	return screen
}

func newField(t *testing.T, rings, perRing int) *vortex.ParticleField {
	t.Helper()
	cfg := vortex.DefaultConfig()
	cfg.RingCount = rings
	cfg.ParticlesPerRing = perRing
	f, err := vortex.New(cfg, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatal(err)
	}
	return f
}

func TestCanvasSize(t *testing.T) {
	screen := newScreen(t, 80, 24)
	c := NewCanvas(screen, black)
	if w, h := c.Size(); w != 640 || h != 384 {
		t.Errorf("size = %gx%g, want 640x384", w, h)
	}
}

func TestCanvasFillText(t *testing.T) {
	screen := newScreen(t, 20, 10)
	c := NewCanvas(screen, black)

	c.SetFont(16)
	c.SetFillStyle(color.NRGBA{R: 0, G: 200, B: 100, A: 0xff})
	c.FillText("β", 20, 40) // cell (2, 2)

	mainc, _, style, _ := screen.GetContent(2, 2)
	if mainc != 'β' {
		t.Fatalf("cell (2, 2) = %q, want 'β'", mainc)
	}
	fg, bg, attr := style.Decompose()
	if fg != tcell.NewRGBColor(0, 200, 100) {
		t.Errorf("foreground = %v", fg)
	}
	if bg != tcell.NewRGBColor(0, 0, 0) {
		t.Errorf("background = %v", bg)
	}
	if attr&tcell.AttrBold == 0 {
		t.Error("16px glyph not bold")
	}

	// half alpha is blended toward the background
	c.SetFont(8)
	c.SetFillStyle(color.NRGBA{R: 0, G: 200, B: 100, A: 0x80})
	c.FillText("x", 0, 0)
	_, _, style, _ = screen.GetContent(0, 0)
	fg, _, attr = style.Decompose()
	if fg != tcell.NewRGBColor(0, 100, 50) {
		t.Errorf("blended foreground = %v, want (0, 100, 50)", fg)
	}
	if attr&tcell.AttrBold != 0 {
		t.Error("8px glyph drawn bold")
	}

	// off-screen anchors are dropped
	c.FillText("z", -5, 5)
	c.FillText("z", 1000, 5)
}

func TestCanvasClearRect(t *testing.T) {
	screen := newScreen(t, 10, 5)
	c := NewCanvas(screen, black)
	c.FillText("a", 8, 16)

	c.ClearRect(0, 0, 80, 80)
	mainc, _, _, _ := screen.GetContent(1, 1)
	if mainc != ' ' {
		t.Errorf("cell not cleared: %q", mainc)
	}
}

func TestHostRendersAndResizes(t *testing.T) {
	screen := newScreen(t, 80, 24)
	field := newField(t, 2, 8)

	h, err := NewHost(screen, field, black, 120)
	if err != nil {
		t.Fatal(err)
	}
	if x, y := field.Center(); x != 320 || y != 192 {
		t.Errorf("center = (%g, %g), want (320, 192)", x, y)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 150*time.Millisecond)
	defer cancel()
	if err := h.Run(ctx); err != nil {
		t.Fatal(err)
	}

	if field.Elapsed() == 0 {
		t.Fatal("no frames rendered")
	}
	if field.Running() {
		t.Error("field still subscribed after Run returned")
	}

	glyphs := 0
	for row := 0; row < 24; row++ {
		for col := 0; col < 80; col++ {
			if mainc, _, _, _ := screen.GetContent(col, row); mainc != ' ' && mainc != 0 {
				glyphs++
			}
		}
	}
	if glyphs == 0 {
		t.Error("no glyphs on screen")
	}

	screen.SetSize(40, 12)
	h.handleEvent(tcell.NewEventResize(40, 12))
	if x, y := field.Center(); x != 160 || y != 96 {
		t.Errorf("center after resize = (%g, %g), want (160, 96)", x, y)
	}
}

func TestHostKeys(t *testing.T) {
	screen := newScreen(t, 40, 12)
	field := newField(t, 1, 4)
	h, err := NewHost(screen, field, black, 60)
	if err != nil {
		t.Fatal(err)
	}
	if err := field.Run(h.loop); err != nil {
		t.Fatal(err)
	}

	if !h.handleKey(tcell.KeyRune, ' ') || field.Running() {
		t.Error("space should pause")
	}
	if !h.handleKey(tcell.KeyRune, ' ') || !field.Running() {
		t.Error("space should resume")
	}
	if h.handleKey(tcell.KeyEscape, 0) {
		t.Error("escape should quit")
	}
	if h.handleKey(tcell.KeyRune, 'q') {
		t.Error("q should quit")
	}
}

func TestHostEasterEgg(t *testing.T) {
	screen := newScreen(t, 40, 12)
	field := newField(t, 1, 4)
	h, err := NewHost(screen, field, black, 60)
	if err != nil {
		t.Fatal(err)
	}
	now := time.Unix(1000, 0)
	h.now = func() time.Time { return now }

	base, _ := field.Glow()
	keys := []tcell.Key{tcell.KeyUp, tcell.KeyUp, tcell.KeyDown, tcell.KeyDown,
		tcell.KeyLeft, tcell.KeyRight, tcell.KeyLeft, tcell.KeyRight}
	for _, k := range keys {
		h.handleKey(k, 0)
	}
	h.handleKey(tcell.KeyRune, 'b')
	h.handleKey(tcell.KeyRune, 'a')

	glow, _ := field.Glow()
	if glow == base {
		t.Fatal("glow unchanged after the key sequence")
	}

	now = now.Add(6 * time.Second)
	h.tick()
	if glow, _ := field.Glow(); glow != base {
		t.Errorf("glow %+v not restored to %+v", glow, base)
	}
}

func TestHostResizeWhilePaused(t *testing.T) {
	screen := newScreen(t, 40, 12)
	field := newField(t, 2, 8)
	h, err := NewHost(screen, field, black, 60)
	if err != nil {
		t.Fatal(err)
	}
	if err := field.Run(h.loop); err != nil {
		t.Fatal(err)
	}
	h.tick()
	h.togglePause()

	screen.SetSize(20, 6)
	h.handleEvent(tcell.NewEventResize(20, 6))

	for row := 0; row < 6; row++ {
		for col := 0; col < 20; col++ {
			if mainc, _, _, _ := screen.GetContent(col, row); mainc != ' ' && mainc != 0 {
				t.Fatalf("stale glyph %q at (%d, %d) after resize while paused", mainc, col, row)
			}
		}
	}
	if x, y := field.Center(); x != 80 || y != 48 {
		t.Errorf("center after resize = (%g, %g), want (80, 48)", x, y)
	}
	if h.lastErr != nil {
		t.Errorf("lastErr = %v", h.lastErr)
	}
}

func TestHostRecordsResumeError(t *testing.T) {
	screen := newScreen(t, 40, 12)
	field := newField(t, 1, 4)
	h, err := NewHost(screen, field, black, 60)
	if err != nil {
		t.Fatal(err)
	}

	field.Detach()
	h.togglePause()
	if !errors.Is(h.lastErr, vortex.ErrNotAttached) {
		t.Errorf("lastErr = %v, want ErrNotAttached", h.lastErr)
	}
}
