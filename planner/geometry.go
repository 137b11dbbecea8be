package planner

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/orb/simplify"
)

// PathLength returns the number of steps in a path returned by Search.
func PathLength(path []Cell) int {
	return len(path)
}

// CellCenter maps a cell to planar coordinates: x is the column, y the row,
// both at the centre of the cell.
func CellCenter(c Cell) orb.Point {
	return orb.Point{float64(c.Col) + 0.5, float64(c.Row) + 0.5}
}

// LineString converts a search path into a line through cell centres,
// starting at start.
func LineString(start Cell, path []Cell) orb.LineString {
	ls := make(orb.LineString, 0, len(path)+1)
	ls = append(ls, CellCenter(start))
	for _, c := range path {
		ls = append(ls, CellCenter(c))
	}
	return ls
}

// Waypoints reduces a route to the cells where it changes direction,
// including start and the final cell.
func Waypoints(start Cell, path []Cell) []Cell {
	line := SimplifiedLine(start, path, 0)
	points := make([]Cell, 0, len(line))
	for _, p := range line {
		points = append(points, cellAt(p))
	}
	return points
}

// cellAt is the inverse of CellCenter for any point inside a cell.
func cellAt(p orb.Point) Cell {
	return Cell{Row: int(math.Floor(p.Y())), Col: int(math.Floor(p.X()))}
}

// SimplifiedLine returns the route line thinned with Douglas-Peucker. An
// epsilon of 0 only drops points that lie on a straight run.
func SimplifiedLine(start Cell, path []Cell, epsilon float64) orb.LineString {
	ls := LineString(start, path)
	if len(ls) <= 2 {
		return ls
	}
	return simplify.DouglasPeucker(epsilon).LineString(ls)
}

// PathFeature wraps a search result as a GeoJSON LineString feature. A
// failed search produces a feature with the start point only.
func PathFeature(start Cell, res Result, epsilon float64) *geojson.Feature {
	var geometry orb.Geometry
	if res.Found && len(res.Path) > 0 {
		geometry = SimplifiedLine(start, res.Path, epsilon)
	} else {
		geometry = CellCenter(start)
	}
	feature := geojson.NewFeature(geometry)
	feature.Properties["found"] = res.Found
	feature.Properties["steps"] = PathLength(res.Path)
	feature.Properties["expanded"] = res.Expanded
	return feature
}
