package main

import (
	"fmt"

	"grid-planner/planner"
)

// editor holds the interactive state independent of the terminal.
type editor struct {
	grid        *planner.Grid
	result      *planner.Result
	showVisited bool
	status      string
}

func newEditor(grid *planner.Grid) *editor {
	return &editor{grid: grid, status: helpLine}
}

const helpLine = "left click: wall  right click: erase  space: search  v: visited  c: clear  q: quit"

// paint places (blocked=true) or erases a wall. Clicks on the start, the
// goal or outside the grid are ignored.
func (e *editor) paint(c planner.Cell, blocked bool) {
	if !e.grid.InBounds(c) || c == e.grid.Start() || c == e.grid.Goal() {
		return
	}
	if (e.grid.State(c) == planner.Blocked) == blocked {
		return
	}
	if err := e.grid.SetBlocked(c, blocked); err != nil {
		e.status = err.Error()
		return
	}
	// The drawn route is stale once the grid changes.
	e.result = nil
	e.status = helpLine
}

// search runs A* once per grid state.
func (e *editor) search() {
	if e.result != nil {
		return
	}
	res, err := planner.Search(e.grid, e.grid.Start(), e.grid.Goal(), planner.WithVisited())
	if err != nil {
		e.status = err.Error()
		return
	}
	e.result = &res
	if !res.Found {
		e.status = "no path found"
		return
	}
	e.status = fmt.Sprintf("path: %d steps, %d cells expanded", planner.PathLength(res.Path), res.Expanded)
}

func (e *editor) clear() {
	e.grid.ClearWalls()
	e.result = nil
	e.status = helpLine
}

// cellKind is what the view should draw at c.
type cellKind int

const (
	kindEmpty cellKind = iota
	kindWall
	kindStart
	kindGoal
	kindPath
	kindVisited
)

func (e *editor) kinds() map[planner.Cell]cellKind {
	out := make(map[planner.Cell]cellKind)
	for _, w := range e.grid.BlockedCells() {
		out[w] = kindWall
	}
	if e.result != nil {
		if e.showVisited {
			for _, c := range e.result.Visited {
				out[c] = kindVisited
			}
		}
		for _, c := range e.result.Path {
			out[c] = kindPath
		}
	}
	out[e.grid.Start()] = kindStart
	out[e.grid.Goal()] = kindGoal
	return out
}
