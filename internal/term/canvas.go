// Package term renders a field into terminal cells through tcell.
package term

import (
	"image/color"
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/iburimskiy/cyber-vortex/internal/config"
	"github.com/iburimskiy/cyber-vortex/internal/palette"
	"github.com/iburimskiy/cyber-vortex/internal/vortex"
)

// boldFrom is the smallest font size drawn bold, so inner rings stand out.
const boldFrom = 12

// Canvas maps field pixels onto cells of config.CellWidth x config.CellHeight.
// A glyph lands in the cell containing its anchor point; alpha is resolved by
// blending the fill over the background since terminals have no transparency.
// Shadows and alignment have no cell-level equivalent and are recorded only.
type Canvas struct {
	screen     tcell.Screen
	background color.NRGBA
	bgStyle    tcell.Style

	align      vortex.TextAlign
	baseline   vortex.TextBaseline
	shadowBlur float64
	fontSize   float64
	fill       color.NRGBA
}

func NewCanvas(screen tcell.Screen, background color.NRGBA) *Canvas {
	return &Canvas{
		screen:     screen,
		background: background,
		bgStyle:    tcell.StyleDefault.Background(rgb(background)),
		fontSize:   boldFrom,
		fill:       color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff},
	}
}

func (c *Canvas) Size() (float64, float64) {
	cols, rows := c.screen.Size()
	return float64(cols * config.CellWidth), float64(rows * config.CellHeight)
}

func (c *Canvas) ClearRect(x, y, w, h float64) {
	cols, rows := c.screen.Size()
	x0 := clampInt(int(math.Floor(x/config.CellWidth)), 0, cols)
	y0 := clampInt(int(math.Floor(y/config.CellHeight)), 0, rows)
	x1 := clampInt(int(math.Ceil((x+w)/config.CellWidth)), 0, cols)
	y1 := clampInt(int(math.Ceil((y+h)/config.CellHeight)), 0, rows)

	for row := y0; row < y1; row++ {
		for col := x0; col < x1; col++ {
			c.screen.SetContent(col, row, ' ', nil, c.bgStyle)
		}
	}
}

func (c *Canvas) SetTextAlign(a vortex.TextAlign) { c.align = a }

func (c *Canvas) SetTextBaseline(b vortex.TextBaseline) { c.baseline = b }

func (c *Canvas) SetShadow(blur float64, _ color.Color) { c.shadowBlur = blur }

func (c *Canvas) SetFont(size float64) { c.fontSize = size }

func (c *Canvas) SetFillStyle(clr color.Color) {
	c.fill = color.NRGBAModel.Convert(clr).(color.NRGBA)
}

func (c *Canvas) FillText(s string, x, y float64) {
	if s == "" || math.IsNaN(x) || math.IsNaN(y) {
		return
	}
	cols, rows := c.screen.Size()
	col := int(math.Floor(x / config.CellWidth))
	row := int(math.Floor(y / config.CellHeight))
	if col < 0 || row < 0 || col >= cols || row >= rows {
		return
	}

	fg := palette.Blend(c.fill, c.background, float64(c.fill.A)/255)
	style := c.bgStyle.Foreground(rgb(fg))
	if c.fontSize >= boldFrom {
		style = style.Bold(true)
	}
	c.screen.SetContent(col, row, []rune(s)[0], nil, style)
}

func rgb(c color.NRGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
