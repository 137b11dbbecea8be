package planner

import (
	"fmt"
	"strings"
)

// Layout characters.
const (
	layoutEmpty   = '.'
	layoutBlocked = '#'
	layoutStart   = 'S'
	layoutGoal    = 'G'
	layoutPath    = '*'
)

// ParseLayout builds a Grid from an ASCII map where '.' is empty, '#' is a
// wall, 'S' the start and 'G' the goal. Blank lines around the map are
// ignored.
func ParseLayout(text string) (*Grid, error) {
	lines := strings.Split(strings.TrimSpace(text), "\n")
	for i := range lines {
		lines[i] = strings.TrimSpace(lines[i])
	}
	if len(lines) == 0 || lines[0] == "" {
		return nil, fmt.Errorf("%w: empty layout", ErrInvalidConfiguration)
	}

	cols := len(lines[0])
	var starts, goals []Cell
	var walls []Cell
	for r, line := range lines {
		if len(line) != cols {
			return nil, fmt.Errorf("%w: layout row %d has width %d, want %d", ErrInvalidConfiguration, r, len(line), cols)
		}
		for c, ch := range line {
			cell := Cell{Row: r, Col: c}
			switch ch {
			case layoutEmpty, layoutPath:
			case layoutBlocked:
				walls = append(walls, cell)
			case layoutStart:
				starts = append(starts, cell)
			case layoutGoal:
				goals = append(goals, cell)
			default:
				return nil, fmt.Errorf("%w: unexpected %q at %v", ErrInvalidConfiguration, ch, cell)
			}
		}
	}
	if len(starts) != 1 || len(goals) != 1 {
		return nil, fmt.Errorf("%w: layout needs exactly one S and one G, found %d and %d",
			ErrInvalidConfiguration, len(starts), len(goals))
	}

	g, err := NewGrid(len(lines), cols, starts[0], goals[0])
	if err != nil {
		return nil, err
	}
	for _, w := range walls {
		g.setWall(w, true)
	}
	return g, nil
}

// FormatLayout renders g in the ParseLayout format, marking the cells of
// path (other than the endpoints) with '*'.
func FormatLayout(g *Grid, path []Cell) string {
	onPath := make(map[Cell]bool, len(path))
	for _, c := range path {
		onPath[c] = true
	}

	var b strings.Builder
	b.Grow(g.Rows() * (g.Cols() + 1))
	for r := 0; r < g.Rows(); r++ {
		for c := 0; c < g.Cols(); c++ {
			cell := Cell{Row: r, Col: c}
			switch g.State(cell) {
			case Blocked:
				b.WriteByte(layoutBlocked)
			case Start:
				b.WriteByte(layoutStart)
			case Goal:
				b.WriteByte(layoutGoal)
			default:
				if onPath[cell] {
					b.WriteByte(layoutPath)
				} else {
					b.WriteByte(layoutEmpty)
				}
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}
