package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	list "github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	table "github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"atlas/internal/chart"
	"atlas/internal/charts"
	"atlas/internal/config"
	"atlas/internal/loader"
)

type Model struct {
	width  int
	height int

	showSidebar bool
	helpVisible bool

	status string
	failed bool

	cfg    *config.Config
	loader *loader.Loader
	frame  time.Duration
	now    func() time.Time

	// Chart picker
	l list.Model

	// Charts are built once and kept for the session
	ctls    map[string]*chart.Controller
	active  string
	ctl     *chart.Controller
	loading string
	spin    spinner.Model
	ticking bool

	// search prompt
	searching bool
	ti        textinput.Model

	// attributes table
	showAttrs bool
	tbl       table.Model
	tblLayer  string

	keys keyMap
	help help.Model
}

// New builds the model for cfg. Input files are read through ld.
func New(cfg *config.Config, ld *loader.Loader) Model {
	m := Model{
		showSidebar: false,
		helpVisible: true,
		status:      "atlas ready",
		cfg:         cfg,
		loader:      ld,
		frame:       time.Duration(cfg.FrameMS) * time.Millisecond,
		now:         time.Now,
		ctls:        map[string]*chart.Controller{},
		keys:        newKeyMap(),
		help:        help.New(),
	}
	// list setup
	d := list.NewDefaultDelegate()
	m.l = list.New(chartItems(charts.All()), d, 0, 0)
	m.l.Title = "Charts"
	m.l.SetShowHelp(false)
	m.l.SetShowStatusBar(false)
	m.l.SetFilteringEnabled(true)

	m.spin = spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(spinnerStyle))

	m.ti = textinput.New()
	m.ti.Prompt = "/"
	m.ti.Placeholder = "region name"
	m.ti.CharLimit = 64

	m.tbl = table.New(table.WithFocused(true), table.WithStyles(tableStyles()))
	m.tbl.SetHeight(12)

	if info, ok := charts.Lookup(cfg.DefaultChart); ok {
		m.loading = info.ID
		m.status = "loading " + info.Title
	} else {
		m.status = "unknown chart: " + cfg.DefaultChart
		m.failed = true
	}
	return m
}

func (m Model) Init() tea.Cmd {
	if m.loading == "" {
		return nil
	}
	return tea.Batch(m.spin.Tick, m.load(m.loading))
}
