package planner

import (
	"container/heap"
	"context"
	"fmt"

	"github.com/zyedidia/generic/mapset"
)

// frontierItem is a cell waiting in the open set together with the cost it
// was pushed with.
type frontierItem struct {
	cell Cell
	g    int     // Steps from start when pushed
	f    float64 // g + heuristic estimate to goal
}

// priorityQueue implements heap.Interface ordered by f only. A cell may be
// queued more than once; older entries go stale once a cheaper one is pushed.
type priorityQueue []*frontierItem

func (pq priorityQueue) Len() int { return len(pq) }

func (pq priorityQueue) Less(i, j int) bool {
	return pq[i].f < pq[j].f
}

func (pq priorityQueue) Swap(i, j int) {
	pq[i], pq[j] = pq[j], pq[i]
}

func (pq *priorityQueue) Push(x any) {
	*pq = append(*pq, x.(*frontierItem))
}

func (pq *priorityQueue) Pop() any {
	old := *pq
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*pq = old[0 : n-1]
	return item
}

// Result is the outcome of a search. Found is false when the goal cannot be
// reached; that is a normal outcome, not an error.
type Result struct {
	// Path holds every cell stepped through after start, ending with the
	// goal. The start cell itself is not included.
	Path     []Cell `json:"path"`
	Found    bool   `json:"found"`
	Expanded int    `json:"expanded"`
	// Visited lists expanded cells in order of first expansion. Only filled
	// when WithVisited is set. A heuristic that overestimates can expand a
	// cell twice; Expanded counts both, Visited lists the cell once.
	Visited []Cell `json:"visited,omitempty"`
}

// Options control a single search.
type Options struct {
	Context       context.Context
	Heuristic     Heuristic
	RecordVisited bool
	MaxExpansions int
}

// Option is a function that modifies Options.
type Option func(*Options)

// WithContext makes the search check ctx once per frontier pop and abort
// with ctx.Err() when it is done.
func WithContext(ctx context.Context) Option {
	return func(o *Options) { o.Context = ctx }
}

// WithHeuristic replaces the default Euclidean heuristic.
func WithHeuristic(h Heuristic) Option {
	return func(o *Options) { o.Heuristic = h }
}

// WithVisited records the expanded cells in Result.Visited.
func WithVisited() Option {
	return func(o *Options) { o.RecordVisited = true }
}

// WithMaxExpansions aborts the search with ErrExpansionLimit after n
// expansions. Zero means no limit.
func WithMaxExpansions(n int) Option {
	return func(o *Options) { o.MaxExpansions = n }
}

// Search runs A* on g from start to goal using 4-directional unit-cost
// moves. The grid is only read.
func Search(g *Grid, start, goal Cell, options ...Option) (Result, error) {
	if g == nil {
		return Result{}, fmt.Errorf("%w: nil grid", ErrInvalidConfiguration)
	}
	if err := checkSearchEndpoint(g, "start", start); err != nil {
		return Result{}, err
	}
	if err := checkSearchEndpoint(g, "goal", goal); err != nil {
		return Result{}, err
	}

	opts := Options{Heuristic: Euclidean}
	for _, option := range options {
		option(&opts)
	}
	h := opts.Heuristic
	if h == nil {
		h = Euclidean
	}

	openSet := &priorityQueue{}
	heap.Init(openSet)
	heap.Push(openSet, &frontierItem{cell: start, g: 0, f: h(start, goal)})

	cameFrom := make(map[Cell]Cell)
	gScore := map[Cell]int{start: 0}

	var visited mapset.Set[Cell]
	var order []Cell
	if opts.RecordVisited {
		visited = mapset.New[Cell]()
	}

	expanded := 0
	for openSet.Len() > 0 {
		if opts.Context != nil {
			if err := opts.Context.Err(); err != nil {
				return Result{}, err
			}
		}

		current := heap.Pop(openSet).(*frontierItem)
		// A cheaper entry for this cell was pushed after this one.
		if current.g > gScore[current.cell] {
			continue
		}

		expanded++
		if opts.MaxExpansions > 0 && expanded > opts.MaxExpansions {
			return Result{}, fmt.Errorf("%w: %d expansions", ErrExpansionLimit, opts.MaxExpansions)
		}
		if opts.RecordVisited && !visited.Has(current.cell) {
			visited.Put(current.cell)
			order = append(order, current.cell)
		}

		if current.cell == goal {
			return Result{
				Path:     reconstructPath(cameFrom, goal),
				Found:    true,
				Expanded: expanded,
				Visited:  order,
			}, nil
		}

		for _, neighbor := range g.Neighbors(current.cell) {
			if !g.IsTraversable(neighbor) {
				continue
			}
			tentativeG := gScore[current.cell] + 1
			if best, ok := gScore[neighbor]; !ok || tentativeG < best {
				cameFrom[neighbor] = current.cell
				gScore[neighbor] = tentativeG
				heap.Push(openSet, &frontierItem{
					cell: neighbor,
					g:    tentativeG,
					f:    float64(tentativeG) + h(neighbor, goal),
				})
			}
		}
	}

	return Result{Found: false, Expanded: expanded, Visited: order}, nil
}

func checkSearchEndpoint(g *Grid, name string, c Cell) error {
	if !g.InBounds(c) {
		return fmt.Errorf("%w: %s %v outside %dx%d grid", ErrInvalidConfiguration, name, c, g.Rows(), g.Cols())
	}
	if !g.IsTraversable(c) {
		return fmt.Errorf("%w: %s %v is blocked", ErrInvalidConfiguration, name, c)
	}
	return nil
}

// reconstructPath walks cameFrom back from goal. The start has no entry, so
// it is left out of the returned path.
func reconstructPath(cameFrom map[Cell]Cell, goal Cell) []Cell {
	path := []Cell{}
	for current := goal; ; {
		prev, ok := cameFrom[current]
		if !ok {
			break
		}
		path = append(path, current)
		current = prev
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
