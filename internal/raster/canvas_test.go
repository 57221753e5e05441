package raster

import (
	"image"
	"image/color"
	"math/rand"
	"testing"

	"github.com/iburimskiy/cyber-vortex/internal/vortex"
)

func inked(img *image.RGBA) (image.Rectangle, int) {
	var box image.Rectangle
	n := 0
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if img.RGBAAt(x, y).A == 0 {
				continue
			}
			n++
			p := image.Rect(x, y, x+1, y+1)
			if box.Empty() {
				box = p
			} else {
				box = box.Union(p)
			}
		}
	}
	return box, n
}

func TestCenteredText(t *testing.T) {
	c, err := New(100, 100)
	if err != nil {
		t.Fatal(err)
	}
	c.SetTextAlign(vortex.AlignCenter)
	c.SetTextBaseline(vortex.BaselineMiddle)
	c.SetFont(32)
	c.SetFillStyle(color.NRGBA{0, 212, 102, 255})
	c.FillText("H", 50, 50)

	box, n := inked(c.Image())
	if n == 0 {
		t.Fatal("nothing drawn")
	}
	cx := (box.Min.X + box.Max.X) / 2
	cy := (box.Min.Y + box.Max.Y) / 2
	if cx < 46 || cx > 54 || cy < 44 || cy > 56 {
		t.Errorf("glyph box %v centered at (%d, %d), want near (50, 50)", box, cx, cy)
	}
}

func TestClearRect(t *testing.T) {
	c, err := New(40, 40)
	if err != nil {
		t.Fatal(err)
	}
	c.SetFont(20)
	c.SetFillStyle(color.White)
	c.FillText("W", 5, 30)
	if _, n := inked(c.Image()); n == 0 {
		t.Fatal("nothing drawn")
	}

	c.ClearRect(0, 0, 40, 40)
	if _, n := inked(c.Image()); n != 0 {
		t.Errorf("%d pixels left after ClearRect", n)
	}

	// out of bounds is clipped, not a panic
	c.ClearRect(-10, -10, 100, 100)
}

func TestRenderField(t *testing.T) {
	cfg := vortex.DefaultConfig()
	cfg.RingCount = 3
	cfg.ParticlesPerRing = 12

	c, err := New(400, 200)
	if err != nil {
		t.Fatal(err)
	}
	f, err := vortex.New(cfg, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatal(err)
	}
	if err := f.Attach(c); err != nil {
		t.Fatal(err)
	}

	loop := vortex.NewFrameLoop()
	if err := f.Run(loop); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 5; i++ {
		loop.Tick()
	}

	box, n := inked(c.Image())
	if n == 0 {
		t.Fatal("field drew nothing")
	}
	// outermost ring spans 140px horizontally and 42px vertically around (200, 100)
	if box.Min.X < 40 || box.Max.X > 360 || box.Min.Y < 40 || box.Max.Y > 160 {
		t.Errorf("ink box %v outside the ring area", box)
	}

	out := c.Composite(color.Black)
	if out.RGBAAt(0, 0) != (color.RGBA{0, 0, 0, 255}) {
		t.Errorf("background not composited: %v", out.RGBAAt(0, 0))
	}
}

func TestResize(t *testing.T) {
	c, err := New(0, 0)
	if err != nil {
		t.Fatal(err)
	}
	if w, h := c.Size(); w != 0 || h != 0 {
		t.Fatalf("size = %gx%g", w, h)
	}
	c.Resize(64, 32)
	if w, h := c.Size(); w != 64 || h != 32 {
		t.Errorf("size after resize = %gx%g", w, h)
	}
	if _, err := New(-1, 5); err == nil {
		t.Error("negative size accepted")
	}
}
