package vortex

import "image/color"

type TextAlign int

const (
	AlignStart TextAlign = iota
	AlignCenter
	AlignEnd
)

type TextBaseline int

const (
	BaselineAlphabetic TextBaseline = iota
	BaselineMiddle
	BaselineTop
	BaselineBottom
)

// Context is the immediate-mode 2D drawing state a field renders through.
// Style setters stay in effect until changed.
type Context interface {
	ClearRect(x, y, w, h float64)
	SetTextAlign(align TextAlign)
	SetTextBaseline(baseline TextBaseline)
	SetShadow(blur float64, c color.Color)
	SetFont(size float64)
	SetFillStyle(c color.Color)
	FillText(s string, x, y float64)
}

// Surface is a drawing target with a displayed size in pixels.
type Surface interface {
	Context
	Size() (width, height float64)
}

// Scheduler invokes subscribed callbacks once per display refresh until the
// returned cancel func is called.
type Scheduler interface {
	Subscribe(fn func()) (cancel func())
}

// Rand is the random capability a field samples glyphs and countdowns from.
// *math/rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
}
