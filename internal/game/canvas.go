package game

import (
	"bytes"
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/gomono"

	"github.com/iburimskiy/cyber-vortex/internal/vortex"
)

// glowTaps are the unit offsets the glow is stamped at, scaled by blur/2.
var glowTaps = [][2]float64{
	{-1, 0}, {1, 0}, {0, -1}, {0, 1},
	{-0.7, -0.7}, {0.7, -0.7}, {-0.7, 0.7}, {0.7, 0.7},
}

// canvas is the vortex.Surface of the window. The field draws into an
// offscreen layer so a paused field keeps its last frame on screen.
type canvas struct {
	layer         *ebiten.Image
	width, height int

	source *text.GoTextFaceSource
	faces  map[float64]*text.GoTextFace

	align      vortex.TextAlign
	baseline   vortex.TextBaseline
	shadowBlur float64
	shadow     color.NRGBA
	fontSize   float64
	fill       color.NRGBA
}

func newCanvas() (*canvas, error) {
	src, err := text.NewGoTextFaceSource(bytes.NewReader(gomono.TTF))
	if err != nil {
		return nil, err
	}
	return &canvas{
		source:   src,
		faces:    make(map[float64]*text.GoTextFace),
		fontSize: 10,
		fill:     color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff},
	}, nil
}

// resize reallocates the layer. It reports whether the size changed.
func (c *canvas) resize(width, height int) bool {
	if width == c.width && height == c.height && c.layer != nil {
		return false
	}
	if c.layer != nil {
		c.layer.Deallocate()
		c.layer = nil
	}
	c.width, c.height = width, height
	if width > 0 && height > 0 {
		c.layer = ebiten.NewImage(width, height)
	}
	return true
}

func (c *canvas) Size() (float64, float64) {
	return float64(c.width), float64(c.height)
}

func (c *canvas) ClearRect(x, y, w, h float64) {
	if c.layer == nil {
		return
	}
	r := image.Rect(int(math.Floor(x)), int(math.Floor(y)), int(math.Ceil(x+w)), int(math.Ceil(y+h)))
	if c.layer.Bounds().In(r) {
		c.layer.Clear()
		return
	}
	r = r.Intersect(c.layer.Bounds())
	if r.Empty() {
		return
	}
	c.layer.SubImage(r).(*ebiten.Image).Clear()
}

func (c *canvas) SetTextAlign(a vortex.TextAlign) { c.align = a }

func (c *canvas) SetTextBaseline(b vortex.TextBaseline) { c.baseline = b }

func (c *canvas) SetShadow(blur float64, clr color.Color) {
	c.shadowBlur = blur
	c.shadow = color.NRGBAModel.Convert(clr).(color.NRGBA)
}

func (c *canvas) SetFont(size float64) {
	if size > 0 {
		c.fontSize = size
	}
}

func (c *canvas) SetFillStyle(clr color.Color) {
	c.fill = color.NRGBAModel.Convert(clr).(color.NRGBA)
}

func (c *canvas) FillText(s string, x, y float64) {
	if c.layer == nil {
		return
	}
	face := c.face(c.fontSize)

	if c.shadowBlur > 0 {
		glow := c.shadow
		glow.A = uint8(float64(c.fill.A) * 0.15)
		for _, tap := range glowTaps {
			c.draw(face, s, x+tap[0]*c.shadowBlur/2, y+tap[1]*c.shadowBlur/2, glow)
		}
	}
	c.draw(face, s, x, y, c.fill)
}

func (c *canvas) draw(face *text.GoTextFace, s string, x, y float64, clr color.NRGBA) {
	op := &text.DrawOptions{}

	switch c.align {
	case vortex.AlignCenter:
		op.PrimaryAlign = text.AlignCenter
	case vortex.AlignEnd:
		op.PrimaryAlign = text.AlignEnd
	default:
		op.PrimaryAlign = text.AlignStart
	}

	switch c.baseline {
	case vortex.BaselineMiddle:
		op.SecondaryAlign = text.AlignCenter
	case vortex.BaselineBottom:
		op.SecondaryAlign = text.AlignEnd
	case vortex.BaselineTop:
		op.SecondaryAlign = text.AlignStart
	default:
		// text/v2 has no alphabetic baseline; lift the line top by the ascent
		op.SecondaryAlign = text.AlignStart
		y -= face.Metrics().HAscent
	}

	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(c.layer, s, face, op)
}

func (c *canvas) face(size float64) *text.GoTextFace {
	if f, ok := c.faces[size]; ok {
		return f
	}
	f := &text.GoTextFace{Source: c.source, Size: size}
	c.faces[size] = f
	return f
}
