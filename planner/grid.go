package planner

import "fmt"

// Grid is a fixed-size R x C board of cells with exactly one start and one
// goal. It only stores state; keeping the start and goal clear of walls is
// enforced by rejecting such edits.
//
// A Grid is not safe for concurrent use. Callers that edit and search from
// different goroutines must synchronise, or search on a Clone.
type Grid struct {
	rows, cols int
	cells      []CellState
	start      Cell
	goal       Cell
	walls      *wallIndex
}

// NewGrid creates a rows x cols grid where every cell is empty except start
// and goal.
func NewGrid(rows, cols int, start, goal Cell) (*Grid, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("%w: grid size %dx%d", ErrInvalidConfiguration, rows, cols)
	}
	g := &Grid{
		rows:  rows,
		cols:  cols,
		cells: make([]CellState, rows*cols),
		start: start,
		goal:  goal,
		walls: newWallIndex(),
	}
	if !g.InBounds(start) {
		return nil, fmt.Errorf("%w: start %v outside %dx%d grid", ErrInvalidConfiguration, start, rows, cols)
	}
	if !g.InBounds(goal) {
		return nil, fmt.Errorf("%w: goal %v outside %dx%d grid", ErrInvalidConfiguration, goal, rows, cols)
	}
	if start == goal {
		return nil, fmt.Errorf("%w: start and goal are both %v", ErrInvalidConfiguration, start)
	}
	g.cells[g.index(start)] = Start
	g.cells[g.index(goal)] = Goal
	return g, nil
}

func (g *Grid) Rows() int   { return g.rows }
func (g *Grid) Cols() int   { return g.cols }
func (g *Grid) Start() Cell { return g.start }
func (g *Grid) Goal() Cell  { return g.goal }

func (g *Grid) index(c Cell) int { return c.Row*g.cols + c.Col }

// InBounds reports whether c lies inside the grid.
func (g *Grid) InBounds(c Cell) bool {
	return c.Row >= 0 && c.Row < g.rows && c.Col >= 0 && c.Col < g.cols
}

// State returns the state of c. Out-of-bounds cells report Blocked.
func (g *Grid) State(c Cell) CellState {
	if !g.InBounds(c) {
		return Blocked
	}
	return g.cells[g.index(c)]
}

// IsTraversable reports whether c is in bounds and not a wall.
func (g *Grid) IsTraversable(c Cell) bool {
	return g.InBounds(c) && g.cells[g.index(c)] != Blocked
}

// Neighbors returns the in-bounds orthogonal neighbours of c in the order
// right, down, left, up. Walls are not filtered out.
func (g *Grid) Neighbors(c Cell) []Cell {
	out := make([]Cell, 0, len(neighborOffsets))
	for _, off := range neighborOffsets {
		n := c.Add(off[0], off[1])
		if g.InBounds(n) {
			out = append(out, n)
		}
	}
	return out
}

// SetBlocked turns c into a wall or back into an empty cell.
func (g *Grid) SetBlocked(c Cell, blocked bool) error {
	if !g.InBounds(c) {
		return fmt.Errorf("%w: %v", ErrOutOfBounds, c)
	}
	if c == g.start || c == g.goal {
		return fmt.Errorf("%w: %v", ErrProtectedCell, c)
	}
	g.setWall(c, blocked)
	return nil
}

// setWall updates a non-endpoint, in-bounds cell and reports whether it changed.
func (g *Grid) setWall(c Cell, blocked bool) bool {
	i := g.index(c)
	wasBlocked := g.cells[i] == Blocked
	if wasBlocked == blocked {
		return false
	}
	if blocked {
		g.cells[i] = Blocked
		g.walls.insert(c)
	} else {
		g.cells[i] = Empty
		g.walls.remove(c)
	}
	return true
}

// BlockRegion sets every cell of the rectangle spanned by a and b (inclusive,
// clipped to the grid) to blocked or empty. Start and goal are skipped. It
// returns how many cells changed.
func (g *Grid) BlockRegion(a, b Cell, blocked bool) int {
	lo, hi := normalizeRect(a, b)
	lo.Row, lo.Col = max(lo.Row, 0), max(lo.Col, 0)
	hi.Row, hi.Col = min(hi.Row, g.rows-1), min(hi.Col, g.cols-1)

	changed := 0
	for r := lo.Row; r <= hi.Row; r++ {
		for c := lo.Col; c <= hi.Col; c++ {
			cell := Cell{Row: r, Col: c}
			if cell == g.start || cell == g.goal {
				continue
			}
			if g.setWall(cell, blocked) {
				changed++
			}
		}
	}
	return changed
}

// ClearWalls removes every wall.
func (g *Grid) ClearWalls() {
	for _, c := range g.BlockedCells() {
		g.setWall(c, false)
	}
}

// SetStart moves the start to c. The target must be in bounds, not a wall,
// and not the goal.
func (g *Grid) SetStart(c Cell) error {
	if err := g.checkEndpoint(c, g.goal); err != nil {
		return fmt.Errorf("start: %w", err)
	}
	g.cells[g.index(g.start)] = Empty
	g.start = c
	g.cells[g.index(c)] = Start
	return nil
}

// SetGoal moves the goal to c, with the same rules as SetStart.
func (g *Grid) SetGoal(c Cell) error {
	if err := g.checkEndpoint(c, g.start); err != nil {
		return fmt.Errorf("goal: %w", err)
	}
	g.cells[g.index(g.goal)] = Empty
	g.goal = c
	g.cells[g.index(c)] = Goal
	return nil
}

// SetEndpoints moves start and goal together. Both targets are checked
// against each other before either is applied, so the endpoints can be
// swapped in one call and a rejected call leaves the grid unchanged.
func (g *Grid) SetEndpoints(start, goal Cell) error {
	if err := g.checkEndpoint(start, goal); err != nil {
		return fmt.Errorf("start: %w", err)
	}
	if err := g.checkEndpoint(goal, start); err != nil {
		return fmt.Errorf("goal: %w", err)
	}
	g.cells[g.index(g.start)] = Empty
	g.cells[g.index(g.goal)] = Empty
	g.start, g.goal = start, goal
	g.cells[g.index(start)] = Start
	g.cells[g.index(goal)] = Goal
	return nil
}

func (g *Grid) checkEndpoint(c, other Cell) error {
	switch {
	case !g.InBounds(c):
		return fmt.Errorf("%w: %v outside %dx%d grid", ErrInvalidConfiguration, c, g.rows, g.cols)
	case c == other:
		return fmt.Errorf("%w: %v is the other endpoint", ErrInvalidConfiguration, c)
	case g.cells[g.index(c)] == Blocked:
		return fmt.Errorf("%w: %v is blocked", ErrInvalidConfiguration, c)
	}
	return nil
}

// BlockedCells lists all walls in row-major order.
func (g *Grid) BlockedCells() []Cell {
	var out []Cell
	for i, s := range g.cells {
		if s == Blocked {
			out = append(out, Cell{Row: i / g.cols, Col: i % g.cols})
		}
	}
	return out
}

// BlockedInRegion lists the walls inside the rectangle spanned by a and b
// (inclusive), in row-major order.
func (g *Grid) BlockedInRegion(a, b Cell) []Cell {
	return g.walls.queryRegion(a, b)
}

// WallCount returns the number of blocked cells.
func (g *Grid) WallCount() int {
	return g.walls.size()
}

// Clone returns an independent deep copy of g.
func (g *Grid) Clone() *Grid {
	c := &Grid{
		rows:  g.rows,
		cols:  g.cols,
		cells: make([]CellState, len(g.cells)),
		start: g.start,
		goal:  g.goal,
		walls: newWallIndex(),
	}
	copy(c.cells, g.cells)
	for _, w := range g.BlockedCells() {
		c.walls.insert(w)
	}
	return c
}

// Snapshot is the serialisable form of a Grid.
type Snapshot struct {
	Rows  int    `json:"rows"`
	Cols  int    `json:"cols"`
	Start Cell   `json:"start"`
	Goal  Cell   `json:"goal"`
	Walls []Cell `json:"walls"`
}

// Snapshot captures the grid's current state.
func (g *Grid) Snapshot() Snapshot {
	walls := g.BlockedCells()
	if walls == nil {
		walls = []Cell{}
	}
	return Snapshot{Rows: g.rows, Cols: g.cols, Start: g.start, Goal: g.goal, Walls: walls}
}

// FromSnapshot rebuilds a Grid, validating it the same way NewGrid does.
// Walls on the start or goal, or outside the grid, are rejected.
func FromSnapshot(s Snapshot) (*Grid, error) {
	g, err := NewGrid(s.Rows, s.Cols, s.Start, s.Goal)
	if err != nil {
		return nil, err
	}
	for _, w := range s.Walls {
		if err := g.SetBlocked(w, true); err != nil {
			return nil, fmt.Errorf("%w: wall %v: %v", ErrInvalidConfiguration, w, err)
		}
	}
	return g, nil
}

func normalizeRect(a, b Cell) (lo, hi Cell) {
	lo = Cell{Row: min(a.Row, b.Row), Col: min(a.Col, b.Col)}
	hi = Cell{Row: max(a.Row, b.Row), Col: max(a.Col, b.Col)}
	return lo, hi
}
