// Package canvas rasterizes screen geometry onto terminal cells. Each cell
// holds a 2x4 braille dot grid (micro-pixels) with one foreground color, a
// background fill color and optionally a text rune that replaces the dots.
package canvas

import (
	"math"
	"sort"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/paulmach/orb"
)

// Cell is the visible state of one terminal cell.
type Cell struct {
	Dots uint8 // braille bit mask
	Fg   string
	Bg   string // "" means the canvas background
	Text rune
}

// Rune is what the cell displays.
func (c Cell) Rune() rune {
	if c.Text != 0 {
		return c.Text
	}
	if c.Dots == 0 {
		return ' '
	}
	return rune(0x2800 + int(c.Dots))
}

type Canvas struct {
	w, h  int // in cells
	bg    string
	cells [][]Cell
}

// New returns a w×h cell canvas, i.e. 2w×4h micro-pixels.
func New(w, h int, background string) *Canvas {
	w, h = max(w, 0), max(h, 0)
	cells := make([][]Cell, h)
	for i := range cells {
		cells[i] = make([]Cell, w)
	}
	return &Canvas{w: w, h: h, bg: background, cells: cells}
}

func (c *Canvas) Size() (w, h int) { return c.w, c.h }

// MicroSize is the size in micro-pixels.
func (c *Canvas) MicroSize() (w, h int) { return c.w * 2, c.h * 4 }

func (c *Canvas) Background() string { return c.bg }

// Cell returns the cell at (x, y); out of range yields the zero Cell.
func (c *Canvas) Cell(x, y int) Cell {
	if x < 0 || y < 0 || x >= c.w || y >= c.h {
		return Cell{}
	}
	return c.cells[y][x]
}

func (c *Canvas) cellBg(cell *Cell) string {
	if cell.Bg != "" {
		return cell.Bg
	}
	return c.bg
}

// Set turns on one micro-pixel.
func (c *Canvas) Set(mx, my int, color string, alpha float64) {
	if mx < 0 || my < 0 {
		return
	}
	cx, rx := mx/2, mx%2
	cy, ry := my/4, my%4
	if cy >= c.h || cx >= c.w || alpha <= 0 {
		return
	}
	var bit uint8
	if rx == 0 {
		switch ry {
		case 0:
			bit = 0x01
		case 1:
			bit = 0x02
		case 2:
			bit = 0x04
		case 3:
			bit = 0x40
		}
	} else {
		switch ry {
		case 0:
			bit = 0x08
		case 1:
			bit = 0x10
		case 2:
			bit = 0x20
		case 3:
			bit = 0x80
		}
	}
	cell := &c.cells[cy][cx]
	cell.Dots |= bit
	cell.Fg = Blend(color, c.cellBg(cell), alpha)
}

// Line draws a micro-pixel line with Bresenham's algorithm.
func (c *Canvas) Line(x0, y0, x1, y1 int, color string, alpha float64) {
	dx := abs(x1 - x0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := -abs(y1 - y0)
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	// guard against lines thrown far off screen by a deep zoom
	if dx > 8*(c.w*2+c.h*4)+64 || -dy > 8*(c.w*2+c.h*4)+64 {
		if !c.clipLine(&x0, &y0, &x1, &y1) {
			return
		}
		c.Line(x0, y0, x1, y1, color, alpha)
		return
	}
	err := dx + dy
	for {
		c.Set(x0, y0, color, alpha)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// clipLine trims a segment to the micro-pixel area (Liang-Barsky).
func (c *Canvas) clipLine(x0, y0, x1, y1 *int) bool {
	mw, mh := c.MicroSize()
	fx0, fy0 := float64(*x0), float64(*y0)
	dx, dy := float64(*x1)-fx0, float64(*y1)-fy0
	t0, t1 := 0.0, 1.0
	edges := [4][2]float64{
		{-dx, fx0},
		{dx, float64(mw-1) - fx0},
		{-dy, fy0},
		{dy, float64(mh-1) - fy0},
	}
	for _, e := range edges {
		p, q := e[0], e[1]
		if p == 0 {
			if q < 0 {
				return false
			}
			continue
		}
		r := q / p
		if p < 0 {
			t0 = math.Max(t0, r)
		} else {
			t1 = math.Min(t1, r)
		}
	}
	if t0 > t1 {
		return false
	}
	*x0, *y0 = int(math.Round(fx0+t0*dx)), int(math.Round(fy0+t0*dy))
	*x1, *y1 = int(math.Round(fx0+t1*dx)), int(math.Round(fy0+t1*dy))
	return true
}

// Polyline strokes consecutive points.
func (c *Canvas) Polyline(pts []orb.Point, color string, alpha float64) {
	for i := 0; i+1 < len(pts); i++ {
		a, b := pts[i], pts[i+1]
		c.Line(round(a[0]), round(a[1]), round(b[0]), round(b[1]), color, alpha)
	}
}

// StrokePolygon strokes every ring of p.
func (c *Canvas) StrokePolygon(p orb.Polygon, color string, alpha float64) {
	for _, r := range p {
		c.Polyline(r, color, alpha)
	}
}

// FillPolygon paints the background of every cell whose center lies inside p
// (even-odd rule, so holes stay empty).
func (c *Canvas) FillPolygon(p orb.Polygon, color string, alpha float64) {
	if alpha <= 0 || len(p) == 0 {
		return
	}
	b := p.Bound()
	y0 := max(0, int(math.Floor(b.Min[1]/4)))
	y1 := min(c.h-1, int(math.Ceil(b.Max[1]/4)))
	var xs []float64
	for cy := y0; cy <= y1; cy++ {
		sy := float64(cy*4) + 2
		xs = xs[:0]
		for _, r := range p {
			n := len(r)
			for i := 0; i < n; i++ {
				a, e := r[i], r[(i+1)%n]
				if a[1] == e[1] {
					continue
				}
				if (sy >= a[1] && sy < e[1]) || (sy >= e[1] && sy < a[1]) {
					t := (sy - a[1]) / (e[1] - a[1])
					xs = append(xs, a[0]+t*(e[0]-a[0]))
				}
			}
		}
		sort.Float64s(xs)
		for i := 0; i+1 < len(xs); i += 2 {
			from := max(0, int(math.Ceil((xs[i]-1)/2)))
			to := min(c.w-1, int(math.Ceil((xs[i+1]-1)/2))-1)
			for cx := from; cx <= to; cx++ {
				cell := &c.cells[cy][cx]
				cell.Bg = Blend(color, c.cellBg(cell), alpha)
			}
		}
	}
}

// Disc draws a filled circle of micro-pixel radius r. Radii under one dot
// still set the center dot.
func (c *Canvas) Disc(center orb.Point, r float64, color string, alpha float64) {
	cx, cy := round(center[0]), round(center[1])
	if r < 1 {
		c.Set(cx, cy, color, alpha)
		return
	}
	ri := int(math.Ceil(r))
	for dy := -ri; dy <= ri; dy++ {
		for dx := -ri; dx <= ri; dx++ {
			if float64(dx*dx+dy*dy) <= r*r {
				c.Set(cx+dx, cy+dy, color, alpha)
			}
		}
	}
}

// Ring draws a circle outline.
func (c *Canvas) Ring(center orb.Point, r float64, color string, alpha float64) {
	steps := max(8, int(2*math.Pi*r))
	pts := make([]orb.Point, 0, steps+1)
	for i := 0; i <= steps; i++ {
		a := 2 * math.Pi * float64(i) / float64(steps)
		pts = append(pts, orb.Point{center[0] + r*math.Cos(a), center[1] + r*math.Sin(a)})
	}
	c.Polyline(pts, color, alpha)
}

// Text writes s starting at cell (x, y). Cells keep their fill.
func (c *Canvas) Text(x, y int, s string, color string) {
	if y < 0 || y >= c.h {
		return
	}
	for _, r := range s {
		if x >= c.w {
			return
		}
		if x >= 0 {
			cell := &c.cells[y][x]
			cell.Text = r
			cell.Fg = color
		}
		x++
	}
}

// FillCells paints the background of the cell rectangle [x0,x1)×[y0,y1).
func (c *Canvas) FillCells(x0, y0, x1, y1 int, color string) {
	for y := max(0, y0); y < min(c.h, y1); y++ {
		for x := max(0, x0); x < min(c.w, x1); x++ {
			c.cells[y][x].Bg = color
		}
	}
}

// Label writes s centered on a micro-pixel position.
func (c *Canvas) Label(at orb.Point, s string, color string) {
	n := len([]rune(s))
	c.Text(int(math.Floor(at[0]/2))-n/2, int(math.Floor(at[1]/4)), s, color)
}

// Blend composites color over bg with the given opacity and returns hex.
// Unparsable colors are returned unchanged.
func Blend(color, bg string, alpha float64) string {
	if alpha >= 1 {
		return color
	}
	fg, err := colorful.Hex(color)
	if err != nil {
		return color
	}
	base, err := colorful.Hex(bg)
	if err != nil {
		return color
	}
	return base.BlendRgb(fg, math.Max(0, alpha)).Hex()
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func round(v float64) int {
	if math.IsNaN(v) {
		return math.MinInt32
	}
	return int(math.Round(v))
}
