package cmd

import (
	"errors"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"

	"github.com/iburimskiy/cyber-vortex/internal/config"
	"github.com/iburimskiy/cyber-vortex/internal/game"
	"github.com/iburimskiy/cyber-vortex/internal/palette"
)

var soundtrackPath string

var windowCmd = &cobra.Command{
	Use:   "window",
	Short: "Open the vortex in a desktop window",
	RunE:  runWindow,
}

func init() {
	rootCmd.AddCommand(windowCmd)

	for _, c := range []*cobra.Command{rootCmd, windowCmd} {
		c.Flags().StringVar(&soundtrackPath, "soundtrack", "", "audio file (wav, mp3, flac) looped behind the vortex")
	}
}

func runWindow(cmd *cobra.Command, args []string) error {
	settings, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	field, err := newField(settings)
	if err != nil {
		return err
	}
	bg, err := palette.ParseHex(settings.Background)
	if err != nil {
		return err
	}

	g, err := game.New(field, bg)
	if err != nil {
		return err
	}
	defer g.Close()

	track := settings.Soundtrack
	if cmd.Flags().Changed("soundtrack") {
		track = soundtrackPath
	}
	if track != "" {
		if err := g.LoadSoundtrack(track); err != nil {
			log.Printf("Failed to load soundtrack: %v", err)
		}
	}

	ebiten.SetWindowSize(config.WindowWidth, config.WindowHeight)
	ebiten.SetWindowTitle("Cyber Vortex - Space: pause, O: soundtrack, Esc/Q: quit")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}
