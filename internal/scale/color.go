package scale

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Interpolator maps t in [0, 1] to a color. Values outside are clamped.
type Interpolator func(t float64) colorful.Color

// Ramp interpolates linearly in RGB between evenly spaced color stops.
func Ramp(stops ...string) Interpolator {
	cs := make([]colorful.Color, len(stops))
	for i, s := range stops {
		cs[i] = mustHex(s)
	}
	return func(t float64) colorful.Color {
		if len(cs) == 1 || math.IsNaN(t) {
			return cs[0]
		}
		t = clamp01(t) * float64(len(cs)-1)
		i := int(t)
		if i >= len(cs)-1 {
			return cs[len(cs)-1]
		}
		return cs[i].BlendRgb(cs[i+1], t-float64(i))
	}
}

func mustHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic("scale: bad color " + s)
	}
	return c
}

var (
	Inferno = Ramp("#000004", "#160b39", "#420a68", "#6a176e", "#932667", "#bc3754",
		"#dd513a", "#f37819", "#fca50a", "#f6d746", "#fcffa4")
	YlGnBu = Ramp("#ffffd9", "#edf8b1", "#c7e9b4", "#7fcdbb", "#41b6c4", "#1d91c0",
		"#225ea8", "#253494", "#081d58")
	PiYG = Ramp("#8e0152", "#c51b7d", "#de77ae", "#f1b6da", "#fde0ef", "#f7f7f7",
		"#e6f5d0", "#b8e186", "#7fbc41", "#4d9221", "#276419")
)

// Sequential maps a numeric domain onto an interpolator. Outside the domain
// the interpolator's own clamping applies, so Clamp only matters for
// interpolators that extrapolate.
type Sequential struct {
	Domain [2]float64
	Interp Interpolator
	Clamp  bool
}

func (s Sequential) Color(v float64) colorful.Color {
	t, ok := normalize(s.Domain, v, s.Clamp)
	if !ok {
		return s.Interp(0)
	}
	return s.Interp(t)
}

// Map returns the color as "#rrggbb".
func (s Sequential) Map(v float64) string { return s.Color(v).Hex() }

// SchemeSet3 is the ColorBrewer Set3 qualitative scheme.
var SchemeSet3 = []string{
	"#8dd3c7", "#ffffb3", "#bebada", "#fb8072", "#80b1d3", "#fdb462",
	"#b3de69", "#fccde5", "#d9d9d9", "#bc80bd", "#ccebc5", "#ffed6f",
}

// Ordinal assigns scheme colors to keys in first-seen order, cycling when
// the scheme runs out. Use NewOrdinal; the zero value has no scheme.
type Ordinal struct {
	scheme []string
	index  map[string]int
	keys   []string
}

func NewOrdinal(scheme []string) *Ordinal {
	return &Ordinal{scheme: scheme, index: map[string]int{}}
}

// Map returns the color for key, assigning the next scheme color to new keys.
func (o *Ordinal) Map(key string) string {
	i, ok := o.index[key]
	if !ok {
		i = len(o.keys)
		o.index[key] = i
		o.keys = append(o.keys, key)
	}
	if len(o.scheme) == 0 {
		return ""
	}
	return o.scheme[i%len(o.scheme)]
}

// Domain lists the keys seen so far, in first-seen order.
func (o *Ordinal) Domain() []string {
	return append([]string(nil), o.keys...)
}
