package term

import (
	"context"
	"image/color"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/iburimskiy/cyber-vortex/internal/config"
	"github.com/iburimskiy/cyber-vortex/internal/input"
	"github.com/iburimskiy/cyber-vortex/internal/palette"
	"github.com/iburimskiy/cyber-vortex/internal/vortex"
)

// Host drives a field on a tcell screen: a ticker at the configured rate ticks
// the frame loop while key and resize events arrive on the same goroutine.
type Host struct {
	screen tcell.Screen
	canvas *Canvas
	field  *vortex.ParticleField
	loop   *vortex.FrameLoop
	frame  time.Duration

	konami   *input.Sequence[input.Konami]
	baseGlow color.NRGBA
	eggUntil time.Time
	now      func() time.Time

	lastErr error
}

// NewHost attaches field to an already initialised screen.
func NewHost(screen tcell.Screen, field *vortex.ParticleField, background color.NRGBA, fps int) (*Host, error) {
	if fps < 1 {
		fps = config.DefaultFPS
	}
	canvas := NewCanvas(screen, background)
	if err := field.Attach(canvas); err != nil {
		return nil, err
	}
	glow, _ := field.Glow()
	return &Host{
		screen:   screen,
		canvas:   canvas,
		field:    field,
		loop:     vortex.NewFrameLoop(),
		frame:    time.Second / time.Duration(fps),
		konami:   input.NewKonami(),
		baseGlow: glow,
		now:      time.Now,
	}, nil
}

// Run renders until ctx is cancelled or the user quits. The screen is not
// finalised; the caller owns it.
func (h *Host) Run(ctx context.Context) error {
	if err := h.field.Run(h.loop); err != nil {
		return err
	}
	defer h.field.Stop()

	ticker := time.NewTicker(h.frame)
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := h.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev := <-events:
			if !h.handleEvent(ev) {
				return nil
			}
			if h.lastErr != nil {
				return h.lastErr
			}

		case <-ticker.C:
			h.tick()
		}
	}
}

func (h *Host) tick() {
	if !h.eggUntil.IsZero() && h.now().After(h.eggUntil) {
		_, blur := h.field.Glow()
		h.field.SetGlow(h.baseGlow, blur)
		h.eggUntil = time.Time{}
	}
	h.loop.Tick()
	h.screen.Show()
}

func (h *Host) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return h.handleKey(ev.Key(), ev.Rune())

	case *tcell.EventResize:
		h.screen.Sync()
		h.field.HandleResize()
		if !h.field.Running() {
			// a paused field draws nothing, so drop glyphs placed for the old size
			w, hgt := h.field.Size()
			h.canvas.ClearRect(0, 0, w, hgt)
			h.screen.Show()
		}
	}
	return true
}

// handleKey reports false when the user asked to quit.
func (h *Host) handleKey(key tcell.Key, r rune) bool {
	switch {
	case key == tcell.KeyEscape || key == tcell.KeyCtrlC:
		return false
	case key == tcell.KeyRune && r == 'q':
		return false
	case key == tcell.KeyRune && r == ' ':
		h.togglePause()
	}

	if h.konami.Push(konamiKey(key, r)) {
		h.activateEasterEgg()
	}
	return true
}

func (h *Host) togglePause() {
	if h.field.Running() {
		h.field.Stop()
		return
	}
	if err := h.field.Run(h.loop); err != nil {
		h.lastErr = err
	}
}

func (h *Host) activateEasterEgg() {
	_, blur := h.field.Glow()
	h.field.SetGlow(palette.RotateHue(h.baseGlow, config.EasterEggHue), blur)
	h.eggUntil = h.now().Add(config.EasterEggSeconds * time.Second)
}

func konamiKey(key tcell.Key, r rune) input.Konami {
	switch key {
	case tcell.KeyUp:
		return input.KeyUp
	case tcell.KeyDown:
		return input.KeyDown
	case tcell.KeyLeft:
		return input.KeyLeft
	case tcell.KeyRight:
		return input.KeyRight
	case tcell.KeyRune:
		switch r {
		case 'b', 'B':
			return input.KeyB
		case 'a', 'A':
			return input.KeyA
		}
	}
	return input.KeyOther
}
