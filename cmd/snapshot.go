package cmd

import (
	"fmt"
	"image"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/iburimskiy/cyber-vortex/internal/config"
	"github.com/iburimskiy/cyber-vortex/internal/palette"
	"github.com/iburimskiy/cyber-vortex/internal/raster"
)

var (
	snapshotWidth  int
	snapshotHeight int
	snapshotFrames int
	snapshotOut    string
)

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Render frames offscreen and write the last one as PNG",
	RunE:  runSnapshot,
}

func init() {
	rootCmd.AddCommand(snapshotCmd)

	snapshotCmd.Flags().IntVar(&snapshotWidth, "width", config.WindowWidth, "image width in pixels")
	snapshotCmd.Flags().IntVar(&snapshotHeight, "height", config.WindowHeight, "image height in pixels")
	snapshotCmd.Flags().IntVar(&snapshotFrames, "frames", 60, "frames to render before capturing")
	snapshotCmd.Flags().StringVarP(&snapshotOut, "out", "o", "vortex.png", "output file")
}

func runSnapshot(cmd *cobra.Command, args []string) error {
	if snapshotWidth <= 0 || snapshotHeight <= 0 {
		return fmt.Errorf("invalid size %dx%d", snapshotWidth, snapshotHeight)
	}
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

	img, err := raster.Snapshot(field, snapshotWidth, snapshotHeight, snapshotFrames, bg)
	if err != nil {
		return err
	}

	if err := writeSnapshot(snapshotOut, img); err != nil {
		return err
	}

	log.Printf("Wrote %s (%dx%d, %d frames, %d glyphs)", snapshotOut, snapshotWidth, snapshotHeight, snapshotFrames, field.Len())
	return nil
}

// writeSnapshot encodes img to path and removes the file if encoding fails.
func writeSnapshot(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := raster.WritePNG(f, img); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}
