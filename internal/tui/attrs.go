package tui

import (
	"fmt"

	table "github.com/charmbracelet/bubbles/table"

	"atlas/internal/chart"
)

const maxColW = 24

// refreshAttrsFromCurrent rebuilds the table columns/rows from the active chart.
func (m *Model) refreshAttrsFromCurrent() {
	var tab chart.Tabular
	if m.ctl != nil {
		tab, _ = m.ctl.Chart().(chart.Tabular)
	}
	if tab == nil {
		m.showAttrs = false
		m.status = "no attributes for current chart"
		return
	}
	layer, cols, rows := tab.Table()
	if len(cols) == 0 || len(rows) == 0 {
		// Do not touch table internals here to avoid re-render during SetColumns
		m.showAttrs = false
		m.status = "no attributes for current chart"
		return
	}
	widths := make([]int, len(cols))
	for i, c := range cols {
		widths[i] = len(c) + 2
	}
	for _, r := range rows {
		for i := 0; i < len(r) && i < len(widths); i++ {
			widths[i] = max(widths[i], len([]rune(r[i]))+2)
		}
	}
	tcols := make([]table.Column, 0, len(cols)+1)
	tcols = append(tcols, table.Column{Title: "#", Width: 5})
	for i, c := range cols {
		tcols = append(tcols, table.Column{Title: c, Width: min(widths[i], maxColW)})
	}
	colCount := len(tcols)
	trows := make([]table.Row, 0, len(rows))
	for i, r := range rows {
		cells := make([]string, colCount)
		cells[0] = fmt.Sprintf("%d", i+1)
		copy(cells[1:], r)
		trows = append(trows, table.Row(cells))
	}
	// Avoid transient mismatch: clear rows, set columns, then set rows
	m.tbl.SetRows(nil)
	m.tbl.SetColumns(tcols)
	m.tbl.SetRows(trows)
	m.tblLayer = layer
	m.syncAttrsCursor()
}

// syncAttrsCursor moves the table cursor to the hovered record.
func (m *Model) syncAttrsCursor() {
	if !m.showAttrs || m.ctl == nil {
		return
	}
	s := m.ctl.Hovered()
	if s == nil || s.Layer != m.tblLayer || s.Record >= len(m.tbl.Rows()) {
		return
	}
	m.tbl.SetCursor(s.Record)
}
