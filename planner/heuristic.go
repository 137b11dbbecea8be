package planner

import "math"

// Heuristic estimates the remaining cost from a cell to the goal. Search is
// only guaranteed optimal when the estimate never exceeds the true cost.
type Heuristic func(from, to Cell) float64

// Euclidean is the straight-line distance between cell indices. It never
// exceeds the Manhattan distance, so it stays admissible for unit-cost
// orthogonal moves.
func Euclidean(from, to Cell) float64 {
	dr := float64(from.Row - to.Row)
	dc := float64(from.Col - to.Col)
	return math.Sqrt(dr*dr + dc*dc)
}

// Manhattan is the exact step count on an empty 4-connected grid.
func Manhattan(from, to Cell) float64 {
	return float64(abs(from.Row-to.Row) + abs(from.Col-to.Col))
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
