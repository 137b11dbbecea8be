package planner

import "errors"

var (
	// ErrInvalidConfiguration is returned for malformed grid dimensions,
	// out-of-bounds or coincident endpoints, and searches whose start or
	// goal is blocked.
	ErrInvalidConfiguration = errors.New("invalid configuration")

	// ErrOutOfBounds is returned when editing a cell outside the grid.
	ErrOutOfBounds = errors.New("cell out of bounds")

	// ErrProtectedCell is returned when trying to block the start or goal.
	ErrProtectedCell = errors.New("start and goal cells cannot be blocked")

	// ErrExpansionLimit is returned when a search exceeds its configured
	// maximum number of expansions.
	ErrExpansionLimit = errors.New("expansion limit reached")
)
