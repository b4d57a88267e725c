package main

import (
	"fmt"
	"math"
	"os"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
)

// exportView frames the whole chain and trail, independent of the
// on-screen pan and zoom. It returns the image size and the view to use.
// The scale shrinks so neither side exceeds maxExportSide.
func (m *model) exportView(scale float64) (int, int, viewport) {
	minX, minY, maxX, maxY := m.chain.Bounds()
	if span := math.Max(maxX-minX, maxY-minY); span > 0 {
		scale = math.Min(scale, (maxExportSide-2*exportMargin-1)/span)
	}
	width := int(math.Ceil((maxX-minX)*scale + 2*exportMargin))
	height := int(math.Ceil((maxY-minY)*scale + 2*exportMargin))
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	width, height = min(width, maxExportSide), min(height, maxExportSide)
	// put the bounding box center on the image center
	cx, cy := (minX+maxX)/2, (minY+maxY)/2
	return width, height, viewport{panX: -cx * scale, panY: -cy * scale, zoom: scale}
}

func (m *model) exportPNG(filename string) error {
	if m.chain.Len() == 0 {
		return fmt.Errorf("nothing to export")
	}

	scale := exportScale * m.view.zoom
	width, height, view := m.exportView(scale)
	const captionHeight = 20
	dc := gg.NewContext(width, height+captionHeight)
	dc.SetColor(m.config.Background)
	dc.Clear()

	frame := m.renderFrame(width, height, view, false)
	dc.DrawImage(frame.Image(), 0, 0)

	ttfFont, err := truetype.Parse(gomono.TTF)
	if err != nil {
		return fmt.Errorf("failed to parse font: %v", err)
	}
	face := truetype.NewFace(ttfFont, &truetype.Options{
		Size:    12,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	dc.SetFontFace(face)
	dc.SetColor(m.config.LineColor)
	caption := fmt.Sprintf("%d segments  tick %d  trail %d", m.chain.Len(), m.chain.Ticks(), len(m.chain.Trail()))
	dc.DrawStringAnchored(caption, 6, float64(height)+captionHeight/2, 0, 0.5)

	return dc.SavePNG(filename)
}

// exportVisualTXT writes the current view as braille text, two pixels wide
// and four tall per character.
func (m *model) exportVisualTXT(filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	cols, rows := m.canvasCells()
	view := m.view
	view.zoom *= 2
	view.panX *= 2
	view.panY *= 2
	frame := m.renderFrame(cols*2, rows*4, view, false)

	for _, line := range braille(frame.Image(), m.config.Background) {
		fmt.Fprintln(file, line)
	}
	return nil
}
