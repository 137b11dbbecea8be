// Package planner is a grid shortest-path engine.
//
// A Grid stores which cells are traversable and where the start and goal
// sit. Search runs A* over a Grid with 4-directional unit-cost moves and
// returns the optimal path, or reports that the goal cannot be reached.
//
// The package performs no I/O and no logging; it is meant to be driven by
// an editor or a service that owns the Grid.
package planner

import "fmt"

// Cell is a (row, column) position on a grid, 0-indexed.
type Cell struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Add returns the cell offset by (dr, dc).
func (c Cell) Add(dr, dc int) Cell {
	return Cell{Row: c.Row + dr, Col: c.Col + dc}
}

func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

// CellState is what a grid cell currently holds.
type CellState uint8

const (
	Empty CellState = iota
	Blocked
	Start
	Goal
)

func (s CellState) String() string {
	switch s {
	case Empty:
		return "empty"
	case Blocked:
		return "blocked"
	case Start:
		return "start"
	case Goal:
		return "goal"
	}
	return fmt.Sprintf("CellState(%d)", uint8(s))
}

// neighborOffsets lists the orthogonal moves in expansion order.
var neighborOffsets = [4][2]int{{0, 1}, {1, 0}, {0, -1}, {-1, 0}}
