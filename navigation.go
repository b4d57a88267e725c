package main

import (
	"math"

	"github.com/fogleman/gg"

	"pendula/pendulum"
)

// apply maps world coordinates onto a w x h pixel surface: the anchor sits
// at the center plus the pan offset, scaled by zoom. Callers reset with
// dc.Identity once the frame is drawn.
func (v viewport) apply(dc *gg.Context, w, h int) {
	dc.Identity()
	dc.Translate(float64(w)/2+v.panX, float64(h)/2+v.panY)
	dc.Scale(v.zoom, v.zoom)
}

// toScreen is the same mapping as apply, for a single point.
func (v viewport) toScreen(x, y float64, w, h int) (float64, float64) {
	return float64(w)/2 + v.panX + x*v.zoom, float64(h)/2 + v.panY + y*v.zoom
}

func (v *viewport) setZoom(z float64) {
	v.zoom = math.Max(minZoom, math.Min(maxZoom, z))
}

// fit picks a zoom at which the fully stretched chain fits in w x h.
func (v *viewport) fit(c *pendulum.Chain, w, h int) {
	reach := 0.0
	for _, s := range c.Segments() {
		reach += math.Abs(s.Length)
	}
	if reach == 0 || w <= 0 || h <= 0 {
		v.setZoom(1)
		return
	}
	v.panX, v.panY = 0, 0
	v.setZoom(0.9 * float64(min(w, h)) / (2 * reach))
}

func (m *model) handlePan(key string) {
	switch key {
	case "left", "h":
		m.view.panX += panStep
	case "right", "l":
		m.view.panX -= panStep
	case "up", "k":
		m.view.panY += panStep
	case "down", "j":
		m.view.panY -= panStep
	}
}

func (m *model) handleZoom(key string) {
	switch key {
	case "z":
		m.view.setZoom(m.view.zoom * zoomFactor)
	case "Z":
		m.view.setZoom(m.view.zoom / zoomFactor)
	case "f":
		w, h := m.canvasPixels()
		m.view.fit(m.chain, w, h)
	}
}

// cycleSelection moves the selection dir steps along the chain, wrapping.
func (m *model) cycleSelection(dir int) {
	ids := m.chain.IDs()
	if len(ids) == 0 {
		m.selected = 0
		return
	}
	idx := -1
	for i, id := range ids {
		if id == m.selected {
			idx = i
			break
		}
	}
	if idx < 0 {
		m.selected = ids[0]
		return
	}
	m.selected = ids[((idx+dir)%len(ids)+len(ids))%len(ids)]
}

// ensureSelection points the selection at a live segment, preferring the tail.
func (m *model) ensureSelection() {
	if _, ok := m.chain.Segment(m.selected); ok {
		return
	}
	if id, ok := m.chain.Tail(); ok {
		m.selected = id
		return
	}
	m.selected = 0
}
