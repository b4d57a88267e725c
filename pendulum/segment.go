package pendulum

import (
	"image/color"
	"math"
)

const (
	DefaultLineWidth  = 2.0
	DefaultBallRadius = 4.0
)

var (
	DefaultLineColor = color.RGBA{R: 0xdd, G: 0xdd, B: 0xdd, A: 0xff}
	DefaultBallColor = color.RGBA{R: 0xff, G: 0x5f, B: 0x87, A: 0xff}
)

// Segment is one rotating link. Its base is pinned to the end of the
// segment before it in the chain, or to the chain anchor for the head.
type Segment struct {
	BaseX, BaseY float64
	Length       float64
	Angle        float64 // radians, never normalized
	Velocity     float64 // speed units; one unit turns TickScale radians per tick

	LineColor  color.RGBA
	BallColor  color.RGBA
	LineWidth  float64
	BallRadius float64
}

// NewSegment accepts every input as-is. Clamping is up to the caller.
func NewSegment(baseX, baseY, length, velocity, angle float64) Segment {
	return Segment{
		BaseX:      baseX,
		BaseY:      baseY,
		Length:     length,
		Angle:      angle,
		Velocity:   velocity,
		LineColor:  DefaultLineColor,
		BallColor:  DefaultBallColor,
		LineWidth:  DefaultLineWidth,
		BallRadius: DefaultBallRadius,
	}
}

func (s Segment) End() (x, y float64) {
	return s.BaseX + math.Cos(s.Angle)*s.Length, s.BaseY + math.Sin(s.Angle)*s.Length
}

func (s *Segment) advance(scale float64) {
	s.Angle += s.Velocity * scale
}

// Draw strokes the link and fills the ball at its end. Style changes stay
// inside a Push/Pop pair.
func (s Segment) Draw(dst Surface) {
	ex, ey := s.End()

	dst.Push()
	dst.SetColor(s.LineColor)
	dst.SetLineWidth(s.LineWidth)
	dst.MoveTo(s.BaseX, s.BaseY)
	dst.LineTo(ex, ey)
	dst.Stroke()
	dst.Pop()

	dst.Push()
	dst.SetColor(s.BallColor)
	dst.DrawCircle(ex, ey, s.BallRadius)
	dst.Fill()
	dst.Pop()
}
