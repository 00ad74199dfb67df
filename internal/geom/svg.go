package geom

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
)

// HexImage is the cell geometry extracted from a pre-rendered hex-grid SVG.
// Cells are grouped by the id of their nearest enclosing <g>.
type HexImage struct {
	ViewBox orb.Bound
	Groups  map[string][]orb.Ring
	Order   []string // group ids in document order
}

// DecodeHexImage collects every <polygon points="..."> of the image. Polygons
// outside an identified group are ignored.
func DecodeHexImage(r io.Reader) (*HexImage, error) {
	dec := xml.NewDecoder(r)
	img := &HexImage{Groups: map[string][]orb.Ring{}}
	var stack []string // group ids, "" for anonymous groups
	var width, height float64
	haveViewBox := false
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		switch el := tok.(type) {
		case xml.StartElement:
			switch el.Name.Local {
			case "svg":
				if vb := attr(el, "viewBox"); vb != "" {
					nums := parseNumbers(vb)
					if len(nums) == 4 {
						img.ViewBox = orb.Bound{
							Min: orb.Point{nums[0], nums[1]},
							Max: orb.Point{nums[0] + nums[2], nums[1] + nums[3]},
						}
						haveViewBox = true
					}
				}
				width, _ = strconv.ParseFloat(strings.TrimSuffix(attr(el, "width"), "px"), 64)
				height, _ = strconv.ParseFloat(strings.TrimSuffix(attr(el, "height"), "px"), 64)
			case "g":
				stack = append(stack, attr(el, "id"))
			case "polygon":
				id := nearestID(stack)
				if id == "" {
					continue
				}
				cell, err := parsePoints(attr(el, "points"))
				if err != nil {
					return nil, fmt.Errorf("svg: group %s: %w", id, err)
				}
				if _, seen := img.Groups[id]; !seen {
					img.Order = append(img.Order, id)
				}
				img.Groups[id] = append(img.Groups[id], cell)
			}
		case xml.EndElement:
			if el.Name.Local == "g" && len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
		}
	}
	if len(img.Groups) == 0 {
		return nil, errors.New("svg: no grouped polygons found")
	}
	if !haveViewBox {
		if width > 0 && height > 0 {
			img.ViewBox = orb.Bound{Max: orb.Point{width, height}}
		} else {
			img.ViewBox = img.Bound()
		}
	}
	return img, nil
}

// Bound returns the bounds of all cells.
func (img *HexImage) Bound() orb.Bound {
	first := true
	var b orb.Bound
	for _, id := range img.Order {
		for _, c := range img.Groups[id] {
			if first {
				b = c.Bound()
				first = false
				continue
			}
			b = b.Union(c.Bound())
		}
	}
	return b
}

func attr(el xml.StartElement, name string) string {
	for _, a := range el.Attr {
		if a.Name.Local == name {
			return a.Value
		}
	}
	return ""
}

func nearestID(stack []string) string {
	for i := len(stack) - 1; i >= 0; i-- {
		if stack[i] != "" {
			return stack[i]
		}
	}
	return ""
}

// parsePoints reads an SVG points list ("x1,y1 x2,y2 ..." or "x1 y1 x2 y2 ...")
// into a closed ring.
func parsePoints(s string) (orb.Ring, error) {
	nums := parseNumbers(s)
	if len(nums)%2 != 0 {
		return nil, errors.New("odd number of coordinates")
	}
	if len(nums) < 6 {
		return nil, errors.New("polygon needs at least 3 points")
	}
	r := make(orb.Ring, 0, len(nums)/2+1)
	for i := 0; i+1 < len(nums); i += 2 {
		r = append(r, orb.Point{nums[i], nums[i+1]})
	}
	if !r[0].Equal(r[len(r)-1]) {
		r = append(r, r[0])
	}
	return r, nil
}

func parseNumbers(s string) []float64 {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
	out := make([]float64, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			continue
		}
		out = append(out, v)
	}
	return out
}
