package cmd

import (
	"math/rand"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/iburimskiy/cyber-vortex/internal/config"
	"github.com/iburimskiy/cyber-vortex/internal/vortex"
)

var (
	configPath string
	seed       int64
	rings      int
	perRing    int
	fps        int
)

var rootCmd = &cobra.Command{
	Use:   "cyber-vortex",
	Short: "Rings of glyphs spinning around a center",
	Long: `cyber-vortex renders concentric rings of glyphs that orbit a center,
swap characters and glow. Without a subcommand it opens a window.`,
	RunE:         runWindow,
	SilenceUsage: true,
}

// Execute runs the root command and exits non-zero on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "settings file (default ~/.config/cyber-vortex/settings.json)")
	rootCmd.PersistentFlags().Int64Var(&seed, "seed", 0, "random seed, 0 picks one from the clock")
	rootCmd.PersistentFlags().IntVar(&rings, "rings", 0, "number of rings")
	rootCmd.PersistentFlags().IntVar(&perRing, "per-ring", 0, "glyphs per ring")
	rootCmd.PersistentFlags().IntVar(&fps, "fps", 0, "terminal frame rate")
}

// loadSettings reads the settings file and applies flags the user set.
func loadSettings(cmd *cobra.Command) (*config.Settings, error) {
	var (
		s   *config.Settings
		err error
	)
	if configPath != "" {
		s, err = config.LoadSettingsFrom(configPath)
	} else {
		s, err = config.LoadSettings()
	}
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("seed") {
		s.Seed = seed
	}
	if flags.Changed("rings") {
		s.Rings = rings
	}
	if flags.Changed("per-ring") {
		s.ParticlesPerRing = perRing
	}
	if flags.Changed("fps") {
		s.FPS = fps
	}
	return s, nil
}

func newField(s *config.Settings) (*vortex.ParticleField, error) {
	cfg, err := s.VortexConfig()
	if err != nil {
		return nil, err
	}
	src := s.Seed
	if src == 0 {
		src = time.Now().UnixNano()
	}
	return vortex.New(cfg, rand.New(rand.NewSource(src)))
}
