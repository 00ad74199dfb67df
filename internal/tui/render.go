package tui

import (
	"atlas/internal/canvas"
)

// renderMap rasterizes the active chart into a w×h cell braille canvas.
func (m Model) renderMap(w, h int) string {
	cv := canvas.New(w, h, m.ctl.BackgroundColor())
	m.ctl.Draw(cv)
	return cv.String()
}

// cellToMicro maps a terminal cell to the micro-pixel at its center, relative
// to the map viewport. ok is false outside the map.
func (lo layout) cellToMicro(cx, cy int) (x, y float64, ok bool) {
	cx -= lo.mapX
	cy -= lo.mapY
	if cx < 0 || cy < 0 || cx >= lo.mapW || cy >= lo.mapH {
		return 0, 0, false
	}
	return float64(cx*2 + 1), float64(cy*4 + 2), true
}

// resize fits the active chart to the map viewport.
func (m *Model) resize() {
	if m.ctl == nil || m.width == 0 || m.height == 0 {
		return
	}
	lo := m.layout()
	w, h := m.ctl.Size()
	if w == float64(lo.mapW*2) && h == float64(lo.mapH*4) {
		return
	}
	m.ctl.Resize(float64(lo.mapW*2), float64(lo.mapH*4))
}
