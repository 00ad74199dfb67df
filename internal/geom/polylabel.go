package geom

import (
	"container/heap"
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// PoleOfInaccessibility returns the interior point farthest from the polygon
// outline (within precision) and its distance to the outline. Unlike the
// centroid, the result lies inside non-convex shapes.
func PoleOfInaccessibility(p orb.Polygon, precision float64) (orb.Point, float64) {
	if len(p) == 0 || len(p[0]) == 0 {
		return orb.Point{}, 0
	}
	b := p[0].Bound()
	w, h := b.Max[0]-b.Min[0], b.Max[1]-b.Min[1]
	size := math.Min(w, h)
	if size == 0 {
		return b.Min, 0
	}
	half := size / 2

	q := &cellQueue{}
	for x := b.Min[0]; x < b.Max[0]; x += size {
		for y := b.Min[1]; y < b.Max[1]; y += size {
			heap.Push(q, newCell(orb.Point{x + half, y + half}, half, p))
		}
	}

	best := centroidCell(p)
	if c := newCell(b.Center(), 0, p); c.d > best.d {
		best = c
	}

	for q.Len() > 0 {
		c := heap.Pop(q).(cell)
		if c.d > best.d {
			best = c
		}
		if c.max-best.d <= precision {
			continue
		}
		h := c.h / 2
		heap.Push(q, newCell(orb.Point{c.c[0] - h, c.c[1] - h}, h, p))
		heap.Push(q, newCell(orb.Point{c.c[0] + h, c.c[1] - h}, h, p))
		heap.Push(q, newCell(orb.Point{c.c[0] - h, c.c[1] + h}, h, p))
		heap.Push(q, newCell(orb.Point{c.c[0] + h, c.c[1] + h}, h, p))
	}
	return best.c, best.d
}

type cell struct {
	c   orb.Point
	h   float64 // half size
	d   float64 // signed distance from center to outline
	max float64 // best possible distance within the cell
}

func newCell(c orb.Point, h float64, p orb.Polygon) cell {
	d := signedDistance(c, p)
	return cell{c: c, h: h, d: d, max: d + h*math.Sqrt2}
}

func centroidCell(p orb.Polygon) cell {
	c, area := planar.CentroidArea(p)
	if area == 0 {
		c = p[0][0]
	}
	return newCell(c, 0, p)
}

// signedDistance is positive inside the polygon and negative outside.
func signedDistance(pt orb.Point, p orb.Polygon) float64 {
	inside := planar.PolygonContains(p, pt)
	minSq := math.Inf(1)
	for _, r := range p {
		for i := 0; i+1 < len(r); i++ {
			if d := segDistSq(pt, r[i], r[i+1]); d < minSq {
				minSq = d
			}
		}
	}
	d := math.Sqrt(minSq)
	if !inside {
		return -d
	}
	return d
}

func segDistSq(p, a, b orb.Point) float64 {
	x, y := a[0], a[1]
	dx, dy := b[0]-x, b[1]-y
	if dx != 0 || dy != 0 {
		t := ((p[0]-x)*dx + (p[1]-y)*dy) / (dx*dx + dy*dy)
		if t > 1 {
			x, y = b[0], b[1]
		} else if t > 0 {
			x += dx * t
			y += dy * t
		}
	}
	dx, dy = p[0]-x, p[1]-y
	return dx*dx + dy*dy
}

// cellQueue is a max-heap on cell.max.
type cellQueue []cell

func (q cellQueue) Len() int           { return len(q) }
func (q cellQueue) Less(i, j int) bool { return q[i].max > q[j].max }
func (q cellQueue) Swap(i, j int)      { q[i], q[j] = q[j], q[i] }
func (q *cellQueue) Push(x any)        { *q = append(*q, x.(cell)) }
func (q *cellQueue) Pop() any {
	old := *q
	n := len(old)
	c := old[n-1]
	*q = old[:n-1]
	return c
}
