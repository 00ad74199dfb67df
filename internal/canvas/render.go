package canvas

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Lines renders the canvas as styled terminal lines, one per cell row. Runs
// of cells sharing colors are rendered with a single style.
func (c *Canvas) Lines() []string {
	out := make([]string, c.h)
	for y := 0; y < c.h; y++ {
		var b strings.Builder
		var run []rune
		var fg, bg string
		flush := func() {
			if len(run) == 0 {
				return
			}
			st := lipgloss.NewStyle().Background(lipgloss.Color(bg))
			if fg != "" {
				st = st.Foreground(lipgloss.Color(fg))
			}
			b.WriteString(st.Render(string(run)))
			run = run[:0]
		}
		for x := 0; x < c.w; x++ {
			cell := c.cells[y][x]
			cfg, cbg := cell.Fg, c.cellBg(&cell)
			if cell.Dots == 0 && cell.Text == 0 {
				cfg = ""
			}
			if len(run) > 0 && (cfg != fg || cbg != bg) {
				flush()
			}
			fg, bg = cfg, cbg
			run = append(run, cell.Rune())
		}
		flush()
		out[y] = b.String()
	}
	return out
}

// String joins Lines with newlines.
func (c *Canvas) String() string {
	return strings.Join(c.Lines(), "\n")
}

// Plain renders the canvas without colors, for tests and logs.
func (c *Canvas) Plain() string {
	rows := make([]string, c.h)
	for y := 0; y < c.h; y++ {
		r := make([]rune, c.w)
		for x := 0; x < c.w; x++ {
			r[x] = c.cells[y][x].Rune()
		}
		rows[y] = string(r)
	}
	return strings.Join(rows, "\n")
}
