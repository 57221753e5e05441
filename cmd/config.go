package cmd

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/iburimskiy/cyber-vortex/internal/config"
)

var writeConfig string

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the resolved settings",
	RunE:  showConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)

	configCmd.Flags().StringVar(&writeConfig, "write", "", "also write the resolved settings to this file")
}

var (
	keyStyle   = lipgloss.NewStyle().Bold(true).Width(20).Foreground(lipgloss.Color("#00d466"))
	valueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#c0c0c0"))
	titleStyle = lipgloss.NewStyle().Bold(true).Underline(true).MarginBottom(1)
)

func showConfig(cmd *cobra.Command, args []string) error {
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	if _, err := s.VortexConfig(); err != nil {
		return err
	}

	swatch := func(hex string) string {
		return lipgloss.NewStyle().Background(lipgloss.Color(hex)).Render("  ") + " " + valueStyle.Render(hex)
	}
	seedText := "clock"
	if s.Seed != 0 {
		seedText = fmt.Sprint(s.Seed)
	}
	soundtrack := s.Soundtrack
	if soundtrack == "" {
		soundtrack = "none"
	}

	rows := [][2]string{
		{"rings", valueStyle.Render(fmt.Sprint(s.Rings))},
		{"particles per ring", valueStyle.Render(fmt.Sprint(s.ParticlesPerRing))},
		{"glyphs", valueStyle.Render(s.Glyphs)},
		{"base speed", valueStyle.Render(fmt.Sprint(s.BaseSpeed))},
		{"ring radius", valueStyle.Render(fmt.Sprintf("%g + ring*%g", s.RingRadiusBase, s.RingRadiusStep))},
		{"vertical squash", valueStyle.Render(fmt.Sprint(s.VerticalSquash))},
		{"glow", swatch(s.GlowColor) + valueStyle.Render(fmt.Sprintf(" blur %g", s.GlowBlur))},
		{"background", swatch(s.Background)},
		{"min font size", valueStyle.Render(fmt.Sprint(s.MinFontSize))},
		{"terminal fps", valueStyle.Render(fmt.Sprint(s.FPS))},
		{"seed", valueStyle.Render(seedText)},
		{"soundtrack", valueStyle.Render(soundtrack)},
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, titleStyle.Render("cyber-vortex settings"))
	for _, r := range rows {
		fmt.Fprintln(out, keyStyle.Render(r[0])+r[1])
	}

	if writeConfig != "" {
		if err := config.WriteSettings(writeConfig, s); err != nil {
			return err
		}
		fmt.Fprintln(out, "\nWrote "+writeConfig)
	}
	return nil
}
