// Package raster draws a field into an in-memory RGBA image.
package raster

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/iburimskiy/cyber-vortex/internal/vortex"
)

// glowTaps are the unit offsets the glow is stamped at, scaled by blur/2.
var glowTaps = [][2]float64{
	{-1, 0}, {1, 0}, {0, -1}, {0, 1},
	{-0.7, -0.7}, {0.7, -0.7}, {-0.7, 0.7}, {0.7, 0.7},
}

// Canvas is a vortex.Surface backed by an *image.RGBA. The image starts
// transparent; ClearRect resets pixels to transparent.
type Canvas struct {
	img  *image.RGBA
	font *opentype.Font

	faces map[float64]font.Face

	align      vortex.TextAlign
	baseline   vortex.TextBaseline
	shadowBlur float64
	shadow     color.NRGBA
	fontSize   float64
	fill       color.Color
}

func New(width, height int) (*Canvas, error) {
	if width < 0 || height < 0 {
		return nil, fmt.Errorf("raster: invalid size %dx%d", width, height)
	}
	f, err := opentype.Parse(gomono.TTF)
	if err != nil {
		return nil, fmt.Errorf("raster: parse font: %w", err)
	}
	return &Canvas{
		img:      image.NewRGBA(image.Rect(0, 0, width, height)),
		font:     f,
		faces:    make(map[float64]font.Face),
		fontSize: 10,
		fill:     color.Black,
	}, nil
}

func (c *Canvas) Image() *image.RGBA { return c.img }

func (c *Canvas) Size() (float64, float64) {
	b := c.img.Bounds()
	return float64(b.Dx()), float64(b.Dy())
}

// Resize replaces the backing image. The caller notifies the field afterwards.
func (c *Canvas) Resize(width, height int) {
	c.img = image.NewRGBA(image.Rect(0, 0, max(width, 0), max(height, 0)))
}

func (c *Canvas) ClearRect(x, y, w, h float64) {
	r := image.Rect(int(math.Floor(x)), int(math.Floor(y)), int(math.Ceil(x+w)), int(math.Ceil(y+h)))
	draw.Draw(c.img, r.Intersect(c.img.Bounds()), image.Transparent, image.Point{}, draw.Src)
}

func (c *Canvas) SetTextAlign(a vortex.TextAlign) { c.align = a }

func (c *Canvas) SetTextBaseline(b vortex.TextBaseline) { c.baseline = b }

func (c *Canvas) SetShadow(blur float64, clr color.Color) {
	c.shadowBlur = blur
	c.shadow = color.NRGBAModel.Convert(clr).(color.NRGBA)
}

func (c *Canvas) SetFont(size float64) {
	if size > 0 {
		c.fontSize = size
	}
}

func (c *Canvas) SetFillStyle(clr color.Color) { c.fill = clr }

func (c *Canvas) FillText(s string, x, y float64) {
	face, err := c.face(c.fontSize)
	if err != nil {
		return
	}
	dot := c.origin(face, s, x, y)

	if c.shadowBlur > 0 {
		_, _, _, a := c.fill.RGBA()
		glow := c.shadow
		glow.A = uint8(float64(a>>8) * 0.15)
		for _, tap := range glowTaps {
			off := fixed.P(int(math.Round(tap[0]*c.shadowBlur/2)), int(math.Round(tap[1]*c.shadowBlur/2)))
			c.drawString(face, glow, dot.Add(off), s)
		}
	}
	c.drawString(face, c.fill, dot, s)
}

func (c *Canvas) drawString(face font.Face, clr color.Color, dot fixed.Point26_6, s string) {
	d := font.Drawer{
		Dst:  c.img,
		Src:  image.NewUniform(clr),
		Face: face,
		Dot:  dot,
	}
	d.DrawString(s)
}

// origin converts an anchor point into the pen position for the current
// alignment and baseline.
func (c *Canvas) origin(face font.Face, s string, x, y float64) fixed.Point26_6 {
	adv := font.MeasureString(face, s)
	m := face.Metrics()

	px := fixed.Int26_6(math.Round(x * 64))
	switch c.align {
	case vortex.AlignCenter:
		px -= adv / 2
	case vortex.AlignEnd:
		px -= adv
	}

	py := fixed.Int26_6(math.Round(y * 64))
	switch c.baseline {
	case vortex.BaselineMiddle:
		py += (m.Ascent - m.Descent) / 2
	case vortex.BaselineTop:
		py += m.Ascent
	case vortex.BaselineBottom:
		py -= m.Descent
	}
	return fixed.Point26_6{X: px, Y: py}
}

func (c *Canvas) face(size float64) (font.Face, error) {
	if f, ok := c.faces[size]; ok {
		return f, nil
	}
	f, err := opentype.NewFace(c.font, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, err
	}
	c.faces[size] = f
	return f, nil
}

// Composite returns the canvas drawn over an opaque background.
func (c *Canvas) Composite(bg color.Color) *image.RGBA {
	out := image.NewRGBA(c.img.Bounds())
	draw.Draw(out, out.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)
	draw.Draw(out, out.Bounds(), c.img, c.img.Bounds().Min, draw.Over)
	return out
}
