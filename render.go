package main

import (
	"image"
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fogleman/gg"
)

// canvasPixels is the drawing area in half-block pixels: one column per
// cell, two rows per cell.
func (m *model) canvasPixels() (int, int) {
	cols, rows := m.canvasCells()
	return cols, rows * 2
}

func (m *model) canvasCells() (int, int) {
	cols := m.width - panelWidth
	rows := m.height - 1 // status line
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	return cols, rows
}

// renderFrame draws background, trail and chain into a fresh w x h context
// using view. With mark set the selected segment's ball gets a ring.
func (m *model) renderFrame(w, h int, view viewport, mark bool) *gg.Context {
	dc := gg.NewContext(w, h)
	dc.SetColor(m.config.Background)
	dc.Clear()

	view.apply(dc, w, h)
	m.chain.Draw(dc)
	if s, ok := m.chain.Segment(m.selected); ok && mark {
		ex, ey := s.End()
		dc.Push()
		dc.SetColor(blend(m.config.Background, s.BallColor, 0.6))
		dc.SetLineWidth(1)
		dc.DrawCircle(ex, ey, s.BallRadius+2/view.zoom)
		dc.Stroke()
		dc.Pop()
	}
	dc.Identity()
	return dc
}

// halfBlocks turns an image with an even height into terminal rows, each
// cell showing the upper pixel as foreground and the lower as background.
// Runs of equal cells share one style.
func halfBlocks(img image.Image) []string {
	b := img.Bounds()
	rows := make([]string, 0, b.Dy()/2)
	for y := b.Min.Y; y+1 < b.Max.Y; y += 2 {
		var line strings.Builder
		runFg, runBg, run := "", "", 0
		flush := func() {
			if run == 0 {
				return
			}
			style := lipgloss.NewStyle().
				Foreground(lipgloss.Color(runFg)).
				Background(lipgloss.Color(runBg))
			line.WriteString(style.Render(strings.Repeat("▀", run)))
			run = 0
		}
		for x := b.Min.X; x < b.Max.X; x++ {
			fg := hexColor(toRGBA(img.At(x, y)))
			bg := hexColor(toRGBA(img.At(x, y+1)))
			if fg != runFg || bg != runBg {
				flush()
				runFg, runBg = fg, bg
			}
			run++
		}
		flush()
		rows = append(rows, line.String())
	}
	return rows
}

// braille packs 2x4 pixel blocks into braille glyphs, setting a dot for
// every pixel that differs from bg.
func braille(img image.Image, bg color.RGBA) []string {
	// dot bit for pixel (dx, dy) inside a cell
	bits := [4][2]rune{
		{0x01, 0x08},
		{0x02, 0x10},
		{0x04, 0x20},
		{0x40, 0x80},
	}
	b := img.Bounds()
	var rows []string
	for y := b.Min.Y; y < b.Max.Y; y += 4 {
		var line strings.Builder
		for x := b.Min.X; x < b.Max.X; x += 2 {
			r := rune(0x2800)
			for dy := 0; dy < 4; dy++ {
				for dx := 0; dx < 2; dx++ {
					px, py := x+dx, y+dy
					if px >= b.Max.X || py >= b.Max.Y {
						continue
					}
					if toRGBA(img.At(px, py)) != bg {
						r |= bits[dy][dx]
					}
				}
			}
			line.WriteRune(r)
		}
		rows = append(rows, strings.TrimRight(line.String(), "⠀"))
	}
	return rows
}

func toRGBA(c color.Color) color.RGBA {
	r, g, b, a := c.RGBA()
	return color.RGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: uint8(a >> 8)}
}
