package game

import (
	"errors"
	"log"
	"path/filepath"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/speaker"
	"github.com/ncruces/zenity"

	"github.com/iburimskiy/cyber-vortex/internal/audio"
	"github.com/iburimskiy/cyber-vortex/internal/config"
)

// soundtrack is a looping audio file whose loudness feeds the glow.
type soundtrack struct {
	name     string
	streamer beep.StreamSeekCloser
	format   beep.Format
	ctrl     *beep.Ctrl
	tap      *audio.Tap
}

func (g *Game) openSoundtrackDialog() error {
	filename, err := zenity.SelectFile(
		zenity.Title("Open Soundtrack"),
		zenity.FileFilters{{
			Name:     "Audio",
			Patterns: audio.Patterns,
		}},
	)
	if err != nil {
		if errors.Is(err, zenity.ErrCanceled) {
			return nil
		}
		return err
	}
	return g.LoadSoundtrack(filename)
}

// LoadSoundtrack replaces the current soundtrack with path, looping forever.
func (g *Game) LoadSoundtrack(path string) error {
	streamer, format, err := audio.Decode(path)
	if err != nil {
		return err
	}

	tap := audio.NewTap(beep.Loop(-1, streamer), config.VisualRingSize)
	ctrl := &beep.Ctrl{Streamer: tap, Paused: !g.field.Running()}

	// (Re)initialize speaker if needed
	bufferSize := format.SampleRate.N(time.Second / 20)
	switch {
	case !g.speakerReady:
		if err := speaker.Init(format.SampleRate, bufferSize); err != nil {
			_ = streamer.Close()
			return err
		}
		g.speakerReady = true
	case g.speakerRate != format.SampleRate:
		g.stopSoundtrack()
		if err := speaker.Init(format.SampleRate, bufferSize); err != nil {
			_ = streamer.Close()
			return err
		}
	default:
		g.stopSoundtrack()
	}
	g.speakerRate = format.SampleRate

	g.track = &soundtrack{
		name:     filepath.Base(path),
		streamer: streamer,
		format:   format,
		ctrl:     ctrl,
		tap:      tap,
	}
	g.level = 0
	speaker.Play(ctrl)

	log.Printf("Playing soundtrack %s", path)
	return nil
}

func (g *Game) stopSoundtrack() {
	if g.track == nil {
		return
	}
	speaker.Lock()
	speaker.Clear()
	speaker.Unlock()
	_ = g.track.streamer.Close()
	g.track = nil
	g.level = 0
}

func (g *Game) pauseSoundtrack(paused bool) {
	if g.track == nil {
		return
	}
	speaker.Lock()
	g.track.ctrl.Paused = paused
	speaker.Unlock()
}

// updateLevel smooths the soundtrack loudness into g.level.
func (g *Game) updateLevel() {
	if g.track == nil {
		return
	}
	speaker.Lock()
	paused := g.track.ctrl.Paused
	speaker.Unlock()
	if paused {
		return
	}
	g.level = audio.Smooth(g.level, g.track.tap.Level(config.LevelWindow), config.SmoothingFactor)
}
