package main

import (
	"testing"

	"grid-planner/planner"
)

func newTestEditor(t *testing.T, layout string) *editor {
	t.Helper()
	grid, err := planner.ParseLayout(layout)
	if err != nil {
		t.Fatal(err)
	}
	return newEditor(grid)
}

func TestEditor_PaintSkipsEndpoints(t *testing.T) {
	e := newTestEditor(t, `
S..
...
..G`)

	e.paint(planner.Cell{Row: 0, Col: 0}, true)
	e.paint(planner.Cell{Row: 2, Col: 2}, true)
	e.paint(planner.Cell{Row: 5, Col: 1}, true)
	if e.grid.WallCount() != 0 {
		t.Errorf("Expected no walls, got %v", e.grid.BlockedCells())
	}

	e.paint(planner.Cell{Row: 1, Col: 1}, true)
	if e.grid.State(planner.Cell{Row: 1, Col: 1}) != planner.Blocked {
		t.Error("Expected (1,1) to become a wall")
	}
	e.paint(planner.Cell{Row: 1, Col: 1}, false)
	if e.grid.WallCount() != 0 {
		t.Error("Expected right click to erase the wall")
	}
}

func TestEditor_SearchAndInvalidate(t *testing.T) {
	e := newTestEditor(t, `
S...
.##.
...G`)

	e.search()
	if e.result == nil || !e.result.Found {
		t.Fatalf("Expected a path, status %q", e.status)
	}
	kinds := e.kinds()
	for _, c := range e.result.Path[:len(e.result.Path)-1] {
		if kinds[c] != kindPath {
			t.Errorf("Expected %v drawn as path, got %v", c, kinds[c])
		}
	}
	if kinds[e.grid.Goal()] != kindGoal || kinds[e.grid.Start()] != kindStart {
		t.Error("Expected endpoints drawn over the path")
	}

	e.paint(planner.Cell{Row: 0, Col: 1}, true)
	if e.result != nil {
		t.Error("Expected edits to drop the stale path")
	}
	e.paint(planner.Cell{Row: 1, Col: 0}, true)
	e.search()
	if e.result == nil || e.result.Found || e.status != "no path found" {
		t.Errorf("Expected no path, got status %q", e.status)
	}

	e.clear()
	if e.grid.WallCount() != 0 || e.result != nil {
		t.Error("Expected clear to remove walls and path")
	}
}

func TestEditor_VisitedToggle(t *testing.T) {
	e := newTestEditor(t, `
S....
.....
....G`)
	e.search()

	countVisited := func() int {
		n := 0
		for _, k := range e.kinds() {
			if k == kindVisited {
				n++
			}
		}
		return n
	}
	if countVisited() != 0 {
		t.Error("Expected visited cells hidden by default")
	}
	e.showVisited = true
	if len(e.result.Visited) > len(e.result.Path)+1 && countVisited() == 0 {
		t.Error("Expected visited cells once toggled on")
	}
}
