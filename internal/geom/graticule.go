package geom

import "github.com/paulmach/orb"

// Graticule returns meridians and parallels every step degrees, densified
// every 2.5 degrees so curved projections draw them smoothly. Parallels stop
// at ±80 like the usual web map graticule; meridians on multiples of 90
// reach the poles.
func Graticule(step float64) orb.MultiLineString {
	const precision = 2.5
	var out orb.MultiLineString
	for lon := -180.0; lon <= 180; lon += step {
		lo, hi := -80.0, 80.0
		if int(lon)%90 == 0 {
			lo, hi = -90, 90
		}
		var ls orb.LineString
		for lat := lo; lat < hi; lat += precision {
			ls = append(ls, orb.Point{lon, lat})
		}
		ls = append(ls, orb.Point{lon, hi})
		out = append(out, ls)
	}
	for lat := -80.0; lat <= 80; lat += step {
		var ls orb.LineString
		for lon := -180.0; lon < 180; lon += precision {
			ls = append(ls, orb.Point{lon, lat})
		}
		ls = append(ls, orb.Point{180, lat})
		out = append(out, ls)
	}
	return out
}
