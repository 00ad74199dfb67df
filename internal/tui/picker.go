package tui

import (
	"context"
	"log"
	"time"

	list "github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"atlas/internal/chart"
	"atlas/internal/charts"
)

type chartItem struct {
	id, title, desc string
}

func (c chartItem) Title() string       { return c.title }
func (c chartItem) Description() string { return c.desc }
func (c chartItem) FilterValue() string { return c.title }

func chartItems(infos []charts.Info) []list.Item {
	items := make([]list.Item, len(infos))
	for i, s := range infos {
		items[i] = chartItem{id: s.ID, title: s.Title, desc: s.Description}
	}
	return items
}

// loadedMsg carries a built chart back to the event loop.
type loadedMsg struct {
	id  string
	ctl *chart.Controller
}

type loadErrMsg struct {
	id  string
	err error
}

type frameMsg time.Time

// load fetches a chart's sources and builds it off the event loop.
func (m Model) load(id string) tea.Cmd {
	info, _ := charts.Lookup(id)
	sources := info.Sources(m.cfg.Sources)
	ld := m.loader
	return func() tea.Msg {
		start := time.Now()
		p, err := ld.Load(context.Background(), sources...)
		if err != nil {
			return loadErrMsg{id: id, err: err}
		}
		c, err := info.New(p)
		if err != nil {
			return loadErrMsg{id: id, err: err}
		}
		log.Printf("loaded %s in %s", id, time.Since(start).Round(time.Millisecond))
		return loadedMsg{id: id, ctl: chart.NewController(c)}
	}
}

// open shows chart id, loading it first if it has not been built yet.
func (m *Model) open(id string) tea.Cmd {
	info, ok := charts.Lookup(id)
	if !ok {
		m.status = "unknown chart: " + id
		m.failed = true
		return nil
	}
	if ctl, ok := m.ctls[id]; ok {
		// a load still in flight is kept when it lands, not shown
		m.loading = ""
		m.mount(id, ctl)
		return nil
	}
	if m.loading == id {
		return nil
	}
	m.loading = id
	m.failed = false
	m.status = "loading " + info.Title
	return tea.Batch(m.spin.Tick, m.load(id))
}

// mount makes ctl the visible chart and sizes it to the map viewport.
func (m *Model) mount(id string, ctl *chart.Controller) {
	if m.ctl != nil {
		m.ctl.PointerOut()
	}
	m.ctls[id] = ctl
	m.active = id
	m.ctl = ctl
	m.failed = false
	info, _ := charts.Lookup(id)
	m.status = info.Title
	m.resize()
	if m.showAttrs {
		m.refreshAttrsFromCurrent()
	}
}
