package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"atlas/internal/charts"
)

const (
	sidebarWidth = 28
	headerHeight = 1
	footerHeight = 2
)

// layout is the screen split shared by View and the mouse handler.
type layout struct {
	sidebarW   int
	contentW   int
	contentH   int
	mapX, mapY int
	mapW, mapH int
}

func (m Model) layout() layout {
	var lo layout
	if m.showSidebar {
		lo.sidebarW = sidebarWidth
	}
	lo.contentH = max(4, m.height-headerHeight-footerHeight)
	lo.contentW = max(10, m.width)
	lo.mapW = max(10, lo.contentW-lo.sidebarW-1)
	lo.mapH = lo.contentH
	if m.showSidebar {
		lo.mapX = lo.sidebarW + 1
	}
	lo.mapY = headerHeight
	return lo
}

func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	lo := m.layout()

	// Header
	title := " atlas ─ terminal maps "
	if info, ok := charts.Lookup(m.active); ok {
		title = " atlas ─ " + info.Title + " "
	}
	header := titleStyle.Render(title)
	if m.loading != "" {
		header += " " + m.spin.View()
	}
	header = lipgloss.NewStyle().Width(lo.contentW).Render(header)

	// Sidebar
	var sidebar string
	if m.showSidebar {
		sidebar = lipgloss.NewStyle().Width(lo.sidebarW).Render(m.l.View())
	}

	// Map viewport
	var mapView string
	switch {
	case m.showAttrs && m.ctl != nil:
		colW := 0
		for _, c := range m.tbl.Columns() {
			colW += c.Width + 3
		}
		if colW == 0 {
			colW = min(60, lo.contentW-6)
		}
		maxW := min(lo.mapW, max(32, colW))
		m.tbl.SetWidth(maxW - 4)
		m.tbl.SetHeight(min(lo.mapH-2, 20))
		attrsBox := boxStyle.Width(maxW).Render(m.tbl.View())
		mapView = lipgloss.Place(lo.mapW, lo.mapH, lipgloss.Center, lipgloss.Center, attrsBox)
	case m.ctl != nil:
		mapView = lipgloss.NewStyle().Width(lo.mapW).Height(lo.mapH).Render(m.renderMap(lo.mapW, lo.mapH))
	default:
		msg := dimStyle.Render(m.status)
		if m.loading != "" {
			msg = m.spin.View() + " " + msg
		} else if m.failed {
			msg = errorStyle.Render(m.status)
		}
		mapView = lipgloss.Place(lo.mapW, lo.mapH, lipgloss.Center, lipgloss.Center, msg)
	}

	// Body row
	var body string
	if m.showSidebar {
		body = lipgloss.JoinHorizontal(lipgloss.Top, sidebar, " ", mapView)
	} else {
		body = mapView
	}

	// Footer / help
	var prompt string
	if m.searching {
		prompt = " " + m.ti.View()
	} else if m.failed {
		prompt = errorStyle.Render(" " + m.status + " ")
	} else {
		prompt = dimStyle.Render(" " + m.status + " ")
	}
	left := lipgloss.JoinHorizontal(lipgloss.Bottom, prompt, m.renderHelp())
	right := m.renderHover()
	spacerW := max(0, lo.contentW-lipgloss.Width(left)-lipgloss.Width(right))
	rightCol := lipgloss.Place(spacerW+lipgloss.Width(right), 1, lipgloss.Right, lipgloss.Center, right)
	footer := lipgloss.NewStyle().Width(lo.contentW).Render(lipgloss.JoinHorizontal(lipgloss.Bottom, left, rightCol))

	ui := lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
	return appStyle.Width(lo.contentW).Height(m.height).Render(ui)
}

func (m Model) renderHelp() string {
	if !m.helpVisible {
		return ""
	}
	return "  " + m.help.View(m.keys)
}

// renderHover names the hovered shape and the zoom level, bottom-right.
func (m Model) renderHover() string {
	if m.ctl == nil {
		return ""
	}
	s := fmt.Sprintf("%.2fx", m.ctl.View().K)
	if h := m.ctl.Hovered(); h != nil && h.Name != "" {
		s = h.Name + "  " + s
	}
	return dimStyle.Render("  " + s + "  ")
}
