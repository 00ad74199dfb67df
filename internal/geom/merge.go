package geom

import (
	"fmt"
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// snapTolerance is the distance under which two cell vertices are the same
// vertex. Exported images round coordinates, so shared corners rarely match
// bit for bit.
const snapTolerance = 0.05

type edgeKey struct{ a, b int }

// MergeCells unions edge-adjacent cells into one outline. Edges shared by two
// cells cancel; the remaining boundary edges are chained into rings. The
// result is a single polygon (outer ring plus optional holes). Disjoint cells,
// cells touching at a single corner, and edges shared by more than two cells
// are reported as ErrMalformedRegion.
func MergeCells(cells []orb.Ring) (orb.Polygon, error) {
	if len(cells) == 0 {
		return nil, fmt.Errorf("%w: no cells", ErrMalformedRegion)
	}

	var verts []orb.Point
	vertex := func(p orb.Point) int {
		for i, v := range verts {
			if math.Abs(v[0]-p[0]) <= snapTolerance && math.Abs(v[1]-p[1]) <= snapTolerance {
				return i
			}
		}
		verts = append(verts, p)
		return len(verts) - 1
	}

	count := map[edgeKey]int{}
	var directed []edgeKey
	for ci, cell := range cells {
		open := openRing(cell)
		if len(open) < 3 {
			return nil, fmt.Errorf("%w: cell %d has fewer than 3 vertices", ErrMalformedRegion, ci)
		}
		// all cells counter-clockwise so shared edges run in opposite directions
		if orb.Ring(append(open.Clone(), open[0])).Orientation() == orb.CW {
			open = reversed(open)
		}
		idx := make([]int, len(open))
		for i, p := range open {
			idx[i] = vertex(p)
		}
		for i := range idx {
			a, b := idx[i], idx[(i+1)%len(idx)]
			if a == b {
				continue
			}
			k := edgeKey{min(a, b), max(a, b)}
			count[k]++
			if count[k] > 2 {
				return nil, fmt.Errorf("%w: edge shared by more than two cells", ErrMalformedRegion)
			}
			directed = append(directed, edgeKey{a, b})
		}
	}

	next := map[int]int{}
	for _, e := range directed {
		if count[edgeKey{min(e.a, e.b), max(e.a, e.b)}] != 1 {
			continue
		}
		if _, dup := next[e.a]; dup {
			return nil, fmt.Errorf("%w: cells touch at a single vertex", ErrMalformedRegion)
		}
		next[e.a] = e.b
	}
	if len(next) == 0 {
		return nil, fmt.Errorf("%w: no boundary", ErrMalformedRegion)
	}

	var rings []orb.Ring
	used := map[int]bool{}
	for _, e := range directed {
		start := e.a
		if _, boundary := next[start]; !boundary || used[start] {
			continue
		}
		var r orb.Ring
		cur := start
		for {
			if used[cur] {
				return nil, fmt.Errorf("%w: open boundary", ErrMalformedRegion)
			}
			used[cur] = true
			r = append(r, verts[cur])
			nxt, ok := next[cur]
			if !ok {
				return nil, fmt.Errorf("%w: open boundary", ErrMalformedRegion)
			}
			cur = nxt
			if cur == start {
				break
			}
		}
		r = dropCollinear(r)
		r = append(r, r[0])
		rings = append(rings, r)
	}

	outer := 0
	for i, r := range rings {
		if math.Abs(planar.Area(r)) > math.Abs(planar.Area(rings[outer])) {
			outer = i
		}
	}
	poly := orb.Polygon{rings[outer]}
	for i, r := range rings {
		if i == outer {
			continue
		}
		if !planar.RingContains(rings[outer], r[0]) {
			return nil, fmt.Errorf("%w: %d disjoint parts", ErrMalformedRegion, len(rings))
		}
		poly = append(poly, r)
	}
	return poly, nil
}

func openRing(r orb.Ring) orb.Ring {
	if len(r) > 1 && r[0].Equal(r[len(r)-1]) {
		return r[:len(r)-1]
	}
	return r
}

func reversed(r orb.Ring) orb.Ring {
	out := make(orb.Ring, len(r))
	for i, p := range r {
		out[len(r)-1-i] = p
	}
	return out
}

// dropCollinear removes vertices lying on the straight line through their
// neighbours, left behind where two cells met along a straight side.
func dropCollinear(r orb.Ring) orb.Ring {
	if len(r) < 4 {
		return r
	}
	out := make(orb.Ring, 0, len(r))
	n := len(r)
	for i := 0; i < n; i++ {
		a, b, c := r[(i+n-1)%n], r[i], r[(i+1)%n]
		cross := (b[0]-a[0])*(c[1]-b[1]) - (b[1]-a[1])*(c[0]-b[0])
		if math.Abs(cross) <= 1e-9 {
			continue
		}
		out = append(out, b)
	}
	if len(out) < 3 {
		return r
	}
	return out
}
