package raster

import (
	"image"
	"image/color"
	"image/png"
	"io"

	"github.com/iburimskiy/cyber-vortex/internal/vortex"
)

// Snapshot attaches field to a new width x height canvas, renders frames
// frames through a frame loop and returns the result over bg.
func Snapshot(field *vortex.ParticleField, width, height, frames int, bg color.Color) (*image.RGBA, error) {
	c, err := New(width, height)
	if err != nil {
		return nil, err
	}
	if err := field.Attach(c); err != nil {
		return nil, err
	}
	defer field.Detach()

	loop := vortex.NewFrameLoop()
	if err := field.Run(loop); err != nil {
		return nil, err
	}
	for i := 0; i < frames; i++ {
		loop.Tick()
	}
	return c.Composite(bg), nil
}

func WritePNG(w io.Writer, img image.Image) error {
	return png.Encode(w, img)
}
