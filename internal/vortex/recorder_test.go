package vortex

import "image/color"

type drawCall struct {
	glyph string
	x, y  float64
	size  float64
	fill  color.NRGBA
}

// recorder is a Surface that keeps the calls of the most recent frame.
type recorder struct {
	w, h float64

	clears   int
	align    TextAlign
	baseline TextBaseline
	blur     float64
	shadow   color.Color
	size     float64
	fill     color.NRGBA
	draws    []drawCall
}

func (r *recorder) Size() (float64, float64) { return r.w, r.h }

func (r *recorder) ClearRect(x, y, w, h float64) {
	r.clears++
	r.draws = r.draws[:0]
}

func (r *recorder) SetTextAlign(a TextAlign) { r.align = a }

func (r *recorder) SetTextBaseline(b TextBaseline) { r.baseline = b }

func (r *recorder) SetShadow(blur float64, c color.Color) { r.blur, r.shadow = blur, c }

func (r *recorder) SetFont(size float64) { r.size = size }

func (r *recorder) SetFillStyle(c color.Color) {
	r.fill = color.NRGBAModel.Convert(c).(color.NRGBA)
}

func (r *recorder) FillText(s string, x, y float64) {
	r.draws = append(r.draws, drawCall{glyph: s, x: x, y: y, size: r.size, fill: r.fill})
}

// scriptedRand returns its values in order, cycling, reduced modulo n.
type scriptedRand struct {
	values []int
	next   int
	calls  int
}

func (s *scriptedRand) Intn(n int) int {
	s.calls++
	v := s.values[s.next%len(s.values)]
	s.next++
	return v % n
}

// fixedRand always returns v modulo n.
type fixedRand int

func (f fixedRand) Intn(n int) int { return int(f) % n }
