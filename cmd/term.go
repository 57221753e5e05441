package cmd

import (
	"os"
	"os/signal"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"github.com/iburimskiy/cyber-vortex/internal/palette"
	"github.com/iburimskiy/cyber-vortex/internal/term"
)

var termCmd = &cobra.Command{
	Use:   "term",
	Short: "Render the vortex in the terminal",
	RunE:  runTerm,
}

func init() {
	rootCmd.AddCommand(termCmd)
}

func runTerm(cmd *cobra.Command, args []string) error {
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

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()
	screen.HideCursor()

	host, err := term.NewHost(screen, field, bg, settings.FPS)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()
	return host.Run(ctx)
}
