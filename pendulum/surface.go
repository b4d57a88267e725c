package pendulum

import "image/color"

// Surface is the drawing context segments and trail markers are drawn on.
// *gg.Context satisfies it.
type Surface interface {
	Push()
	Pop()
	SetColor(c color.Color)
	SetLineWidth(w float64)
	MoveTo(x, y float64)
	LineTo(x, y float64)
	Stroke()
	DrawCircle(x, y, r float64)
	Fill()
}
