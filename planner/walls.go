package planner

import (
	"fmt"
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/orb/planar"
)

// CellRect is an inclusive rectangle of cells.
type CellRect struct {
	Min Cell `json:"min"`
	Max Cell `json:"max"`
}

// Polygon returns the rectangle outline in the coordinates used by CellCenter.
func (r CellRect) Polygon() orb.Polygon {
	x0, y0 := float64(r.Min.Col), float64(r.Min.Row)
	x1, y1 := float64(r.Max.Col+1), float64(r.Max.Row+1)
	return orb.Polygon{orb.Ring{{x0, y0}, {x1, y0}, {x1, y1}, {x0, y1}, {x0, y0}}}
}

// WallRects merges the grid's walls into disjoint rectangles: horizontal
// runs first, then identical runs on consecutive rows are stacked.
func WallRects(g *Grid) []CellRect {
	var rects []CellRect
	open := make(map[[2]int]int) // column run -> index into rects

	for r := 0; r < g.Rows(); r++ {
		next := make(map[[2]int]int)
		for c := 0; c < g.Cols(); {
			if g.State(Cell{Row: r, Col: c}) != Blocked {
				c++
				continue
			}
			c0 := c
			for c < g.Cols() && g.State(Cell{Row: r, Col: c}) == Blocked {
				c++
			}
			run := [2]int{c0, c - 1}
			if i, ok := open[run]; ok {
				rects[i].Max.Row = r
				next[run] = i
			} else {
				rects = append(rects, CellRect{Min: Cell{Row: r, Col: c0}, Max: Cell{Row: r, Col: c - 1}})
				next[run] = len(rects) - 1
			}
		}
		open = next
	}
	return rects
}

// WallsFeatureCollection exports the walls as GeoJSON polygons, one per
// merged rectangle.
func WallsFeatureCollection(g *Grid) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, rect := range WallRects(g) {
		f := geojson.NewFeature(rect.Polygon())
		f.Properties["cells"] = (rect.Max.Row - rect.Min.Row + 1) * (rect.Max.Col - rect.Min.Col + 1)
		fc.Append(f)
	}
	return fc
}

// LoadWallsGeoJSON blocks every cell whose centre lies inside a Polygon or
// MultiPolygon of the given FeatureCollection. Start and goal are left
// alone. It returns how many cells became walls.
func LoadWallsGeoJSON(g *Grid, data []byte) (int, error) {
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return 0, fmt.Errorf("failed to parse wall GeoJSON: %w", err)
	}

	blocked := 0
	for _, feature := range fc.Features {
		switch geometry := feature.Geometry.(type) {
		case orb.Polygon:
			blocked += rasterize(g, geometry.Bound(), func(p orb.Point) bool {
				return planar.PolygonContains(geometry, p)
			})
		case orb.MultiPolygon:
			blocked += rasterize(g, geometry.Bound(), func(p orb.Point) bool {
				return planar.MultiPolygonContains(geometry, p)
			})
		}
	}
	return blocked, nil
}

func rasterize(g *Grid, bound orb.Bound, contains func(orb.Point) bool) int {
	r0 := max(int(math.Floor(bound.Min[1])), 0)
	r1 := min(int(math.Ceil(bound.Max[1])), g.Rows()-1)
	c0 := max(int(math.Floor(bound.Min[0])), 0)
	c1 := min(int(math.Ceil(bound.Max[0])), g.Cols()-1)

	changed := 0
	for r := r0; r <= r1; r++ {
		for c := c0; c <= c1; c++ {
			cell := Cell{Row: r, Col: c}
			if cell == g.Start() || cell == g.Goal() {
				continue
			}
			if contains(CellCenter(cell)) && g.setWall(cell, true) {
				changed++
			}
		}
	}
	return changed
}
