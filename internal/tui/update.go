package tui

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	list "github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"atlas/internal/chart"
	"atlas/internal/charts"
)

const (
	zoomStep = 1.2
	panX     = 4 // micro-pixels, two cells
	panY     = 4
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.l.SetSize(sidebarWidth-2, m.layout().contentH-2)
		m.resize()
	case loadedMsg:
		if msg.id != m.loading {
			// superseded by another open; keep it for later
			m.ctls[msg.id] = msg.ctl
			return m, nil
		}
		m.loading = ""
		m.mount(msg.id, msg.ctl)
	case loadErrMsg:
		if msg.id != m.loading {
			return m, nil
		}
		log.Printf("failed on %s: %v", msg.id, msg.err)
		m.loading = ""
		if m.ctl != nil {
			m.ctl.PointerOut()
		}
		m.ctl, m.active = nil, ""
		m.showAttrs = false
		m.status = msg.err.Error()
		m.failed = true
	case spinner.TickMsg:
		if m.loading == "" {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	case frameMsg:
		m.ticking = false
		if m.ctl != nil {
			m.ctl.Tick(time.Time(msg))
		}
		cmd := m.animate()
		return m, cmd
	case tea.KeyMsg:
		return m.updateKey(msg)
	case tea.MouseMsg:
		return m.updateMouse(msg)
	}
	return m, nil
}

func (m Model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// If list is visible and filtering, send keys to list and ignore global commands
	if m.showSidebar && m.l.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.l, cmd = m.l.Update(msg)
		return m, cmd
	}
	if m.searching {
		switch msg.String() {
		case "esc":
			m.searching = false
			m.ti.Blur()
			return m, nil
		case "enter":
			m.searching = false
			m.ti.Blur()
			cmd := m.search(m.ti.Value())
			return m, cmd
		}
		var cmd tea.Cmd
		m.ti, cmd = m.ti.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Sidebar):
		m.showSidebar = !m.showSidebar
		if m.ctl != nil {
			m.ctl.PointerOut()
		}
		m.resize()
		return m, nil
	case key.Matches(msg, m.keys.Help):
		m.helpVisible = !m.helpVisible
		return m, nil
	case key.Matches(msg, m.keys.Attrs):
		m.showAttrs = !m.showAttrs
		if m.showAttrs {
			m.refreshAttrsFromCurrent()
		}
		return m, nil
	case key.Matches(msg, m.keys.Charts):
		all := charts.All()
		if i := int(msg.Runes[0] - '1'); i < len(all) {
			cmd := m.open(all[i].ID)
			return m, cmd
		}
		return m, nil
	case key.Matches(msg, m.keys.Search):
		if m.ctl == nil {
			return m, nil
		}
		m.searching = true
		m.ti.SetValue("")
		cmd := m.ti.Focus()
		return m, cmd
	case key.Matches(msg, m.keys.Open):
		if m.showSidebar {
			if it, ok := m.l.SelectedItem().(chartItem); ok {
				cmd := m.open(it.id)
				return m, cmd
			}
		}
		return m, nil
	}

	// The sidebar and the table own the arrow keys while they are shown
	if m.showSidebar {
		var cmd tea.Cmd
		m.l, cmd = m.l.Update(msg)
		return m, cmd
	}
	if m.showAttrs {
		if msg.String() == "esc" {
			m.showAttrs = false
			return m, nil
		}
		var cmd tea.Cmd
		m.tbl, cmd = m.tbl.Update(msg)
		return m, cmd
	}
	if m.ctl == nil {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.ZoomIn):
		m.ctl.ZoomBy(zoomStep)
		m.status = fmt.Sprintf("zoom: %.2fx", m.ctl.View().K)
	case key.Matches(msg, m.keys.ZoomOut):
		m.ctl.ZoomBy(1 / zoomStep)
		m.status = fmt.Sprintf("zoom: %.2fx", m.ctl.View().K)
	case key.Matches(msg, m.keys.Reset):
		m.ctl.Reset()
	case key.Matches(msg, m.keys.Up):
		m.ctl.Pan(0, -panY)
	case key.Matches(msg, m.keys.Down):
		m.ctl.Pan(0, panY)
	case key.Matches(msg, m.keys.Left):
		m.ctl.Pan(-panX, 0)
	case key.Matches(msg, m.keys.Right):
		m.ctl.Pan(panX, 0)
	default:
		if kh, ok := m.ctl.Chart().(chart.KeyHandler); ok {
			if status, handled := kh.HandleKey(m.ctl, msg.String()); handled {
				m.status = status
			}
		}
	}
	cmd := m.animate()
	return m, cmd
}

func (m Model) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.ctl == nil || m.showAttrs || m.searching {
		return m, nil
	}
	// mouse cell within map?
	x, y, ok := m.layout().cellToMicro(msg.X, msg.Y)
	if !ok {
		m.ctl.PointerOut()
		return m, nil
	}
	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		m.ctl.ZoomBy(zoomStep)
	case msg.Button == tea.MouseButtonWheelDown:
		m.ctl.ZoomBy(1 / zoomStep)
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		m.ctl.PointerMove(x, y)
		m.ctl.Press(x, y, m.now())
	case msg.Action == tea.MouseActionMotion:
		m.ctl.PointerMove(x, y)
	}
	cmd := m.animate()
	return m, cmd
}

// search hovers and selects the first region whose name matches q.
func (m *Model) search(q string) tea.Cmd {
	q = strings.TrimSpace(q)
	if q == "" || m.ctl == nil {
		m.status = "search: empty"
		return nil
	}
	s := m.ctl.Search(q)
	if s == nil {
		m.status = "no match for " + q
		return nil
	}
	m.status = "found " + s.Name
	m.syncAttrsCursor()
	return m.animate()
}

// animate schedules the next frame while a transition runs.
func (m *Model) animate() tea.Cmd {
	if m.ctl == nil || !m.ctl.Animating() || m.ticking {
		return nil
	}
	m.ticking = true
	return tea.Tick(m.frame, func(t time.Time) tea.Msg { return frameMsg(t) })
}
