package planner

import (
	"slices"

	"github.com/dhconnelly/rtreego"
)

// wallEntry wraps a blocked cell for R-tree storage. The box is inset from
// the cell edges so neighbouring walls never touch.
type wallEntry struct {
	cell Cell
	bbox rtreego.Rect
}

// Bounds implements rtreego.Spatial interface
func (w *wallEntry) Bounds() rtreego.Rect {
	return w.bbox
}

// wallIndex keeps the blocked cells of a grid in an R-tree for region queries.
type wallIndex struct {
	tree    *rtreego.Rtree
	entries map[Cell]*wallEntry
}

func newWallIndex() *wallIndex {
	return &wallIndex{
		tree:    rtreego.NewTree(2, 25, 50), // 2D, min 25, max 50 entries per node
		entries: make(map[Cell]*wallEntry),
	}
}

func (wi *wallIndex) insert(c Cell) {
	if _, ok := wi.entries[c]; ok {
		return
	}
	bbox, err := rtreego.NewRect(
		rtreego.Point{float64(c.Row) + 0.1, float64(c.Col) + 0.1},
		[]float64{0.8, 0.8},
	)
	if err != nil {
		return
	}
	entry := &wallEntry{cell: c, bbox: bbox}
	wi.entries[c] = entry
	wi.tree.Insert(entry)
}

func (wi *wallIndex) remove(c Cell) {
	entry, ok := wi.entries[c]
	if !ok {
		return
	}
	wi.tree.Delete(entry)
	delete(wi.entries, c)
}

func (wi *wallIndex) size() int {
	return len(wi.entries)
}

// queryRegion returns the walls whose cells fall inside the inclusive
// rectangle spanned by a and b.
func (wi *wallIndex) queryRegion(a, b Cell) []Cell {
	lo, hi := normalizeRect(a, b)
	bbox, err := rtreego.NewRect(
		rtreego.Point{float64(lo.Row), float64(lo.Col)},
		[]float64{float64(hi.Row-lo.Row) + 1, float64(hi.Col-lo.Col) + 1},
	)
	if err != nil {
		return []Cell{}
	}

	results := wi.tree.SearchIntersect(bbox)
	cells := make([]Cell, 0, len(results))
	for _, item := range results {
		cells = append(cells, item.(*wallEntry).cell)
	}
	slices.SortFunc(cells, compareCells)
	return cells
}

func compareCells(a, b Cell) int {
	if a.Row != b.Row {
		return a.Row - b.Row
	}
	return a.Col - b.Col
}
