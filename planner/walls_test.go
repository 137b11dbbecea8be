package planner

import (
	"errors"
	"reflect"
	"testing"
)

func TestWallRects(t *testing.T) {
	g := mustLayout(t, `
S.....
.##.#.
.##.#.
.##...
.....G`)

	want := []CellRect{
		{Min: Cell{1, 1}, Max: Cell{3, 2}},
		{Min: Cell{1, 4}, Max: Cell{2, 4}},
	}
	if got := WallRects(g); !reflect.DeepEqual(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

func TestWallRects_CoversEveryWall(t *testing.T) {
	g := mustLayout(t, `
S#.#..
##.###
..#..#
####.#
.#..#G`)

	covered := make(map[Cell]int)
	for _, rect := range WallRects(g) {
		for r := rect.Min.Row; r <= rect.Max.Row; r++ {
			for c := rect.Min.Col; c <= rect.Max.Col; c++ {
				covered[Cell{r, c}]++
			}
		}
	}
	for _, w := range g.BlockedCells() {
		if covered[w] != 1 {
			t.Errorf("Expected wall %v covered once, got %d", w, covered[w])
		}
	}
	if len(covered) != g.WallCount() {
		t.Errorf("Expected %d covered cells, got %d", g.WallCount(), len(covered))
	}
}

func TestWallsGeoJSON_RoundTrip(t *testing.T) {
	src := mustLayout(t, `
S.....
.##.#.
.##.#.
.....G`)

	data, err := WallsFeatureCollection(src).MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON failed: %v", err)
	}

	dst := mustGrid(t, src.Rows(), src.Cols(), src.Start(), src.Goal())
	blocked, err := LoadWallsGeoJSON(dst, data)
	if err != nil {
		t.Fatalf("LoadWallsGeoJSON failed: %v", err)
	}
	if blocked != src.WallCount() {
		t.Errorf("Expected %d blocked cells, got %d", src.WallCount(), blocked)
	}
	if !reflect.DeepEqual(dst.BlockedCells(), src.BlockedCells()) {
		t.Errorf("Expected walls %v, got %v", src.BlockedCells(), dst.BlockedCells())
	}
}

func TestLoadWallsGeoJSON(t *testing.T) {
	g := mustGrid(t, 5, 5, Cell{0, 0}, Cell{4, 4})
	// A square over columns 0-2 and rows 0-1, plus a polygon sticking out of the grid.
	data := []byte(`{
		"type": "FeatureCollection",
		"features": [
			{"type": "Feature", "properties": {}, "geometry": {"type": "Polygon",
				"coordinates": [[[0,0],[3,0],[3,2],[0,2],[0,0]]]}},
			{"type": "Feature", "properties": {}, "geometry": {"type": "MultiPolygon",
				"coordinates": [[[[4,3],[9,3],[9,9],[4,9],[4,3]]]]}},
			{"type": "Feature", "properties": {}, "geometry": {"type": "Point", "coordinates": [2.5, 2.5]}}
		]
	}`)

	blocked, err := LoadWallsGeoJSON(g, data)
	if err != nil {
		t.Fatalf("LoadWallsGeoJSON failed: %v", err)
	}
	// 6 cells in the square minus the start, plus (3,4); the goal is skipped.
	if blocked != 6 {
		t.Errorf("Expected 6 blocked cells, got %d: %v", blocked, g.BlockedCells())
	}
	if g.State(Cell{0, 0}) != Start || g.State(Cell{4, 4}) != Goal {
		t.Error("Expected endpoints to stay unblocked")
	}
	if g.State(Cell{3, 4}) != Blocked {
		t.Errorf("Expected (3,4) blocked, got %v", g.State(Cell{3, 4}))
	}

	if _, err := LoadWallsGeoJSON(g, []byte(`{"type": "FeatureCollection", "features": [`)); err == nil {
		t.Error("Expected error for malformed GeoJSON")
	} else if errors.Is(err, ErrInvalidConfiguration) {
		t.Errorf("Expected a parse error, got %v", err)
	}
}
