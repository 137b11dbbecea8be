package render

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"grid-planner/planner"
)

func colorAt(img image.Image, c planner.Cell, cellSize int) color.RGBA {
	x := c.Col*cellSize + cellSize/2
	y := c.Row*cellSize + cellSize/2
	r, g, b, a := img.At(x, y).RGBA()
	return color.RGBA{uint8(r >> 8), uint8(g >> 8), uint8(b >> 8), uint8(a >> 8)}
}

func TestDraw(t *testing.T) {
	grid, err := planner.ParseLayout(`
S...
.##.
...G`)
	if err != nil {
		t.Fatal(err)
	}
	res, err := planner.Search(grid, grid.Start(), grid.Goal(), planner.WithVisited())
	if err != nil {
		t.Fatal(err)
	}

	const cellSize = 10
	img := Draw(grid, &res, cellSize)
	if b := img.Bounds(); b.Dx() != 40 || b.Dy() != 30 {
		t.Fatalf("Expected 40x30 image, got %dx%d", b.Dx(), b.Dy())
	}

	checks := map[planner.Cell]color.RGBA{
		grid.Start():              ColorStart,
		grid.Goal():               ColorGoal,
		{Row: 1, Col: 1}:          ColorWall,
		{Row: 1, Col: 2}:          ColorWall,
		res.Path[0]:               ColorPath,
		res.Path[len(res.Path)-2]: ColorPath,
	}
	for cell, want := range checks {
		if got := colorAt(img, cell, cellSize); got != want {
			t.Errorf("Cell %v: expected %v, got %v", cell, want, got)
		}
	}

	onPath := make(map[planner.Cell]bool)
	for _, c := range res.Path {
		onPath[c] = true
	}
	for _, c := range res.Visited {
		if onPath[c] || c == grid.Start() || c == grid.Goal() {
			continue
		}
		if got := colorAt(img, c, cellSize); got != ColorVisited {
			t.Errorf("Visited cell %v: expected %v, got %v", c, ColorVisited, got)
		}
	}
}

func TestDraw_NoResult(t *testing.T) {
	grid, err := planner.NewGrid(2, 3, planner.Cell{Row: 0, Col: 0}, planner.Cell{Row: 1, Col: 2})
	if err != nil {
		t.Fatal(err)
	}

	img := Draw(grid, nil, 0)
	if b := img.Bounds(); b.Dx() != 3*DefaultCellSize || b.Dy() != 2*DefaultCellSize {
		t.Fatalf("Expected default cell size, got %dx%d", b.Dx(), b.Dy())
	}
	if got := colorAt(img, planner.Cell{Row: 0, Col: 1}, DefaultCellSize); got != ColorEmpty {
		t.Errorf("Expected empty cell to be white, got %v", got)
	}
}

func TestWritePNG(t *testing.T) {
	grid, err := planner.NewGrid(3, 3, planner.Cell{Row: 0, Col: 0}, planner.Cell{Row: 2, Col: 2})
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := WritePNG(&buf, grid, nil, 8); err != nil {
		t.Fatalf("WritePNG failed: %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("Expected a valid PNG, got %v", err)
	}
	if got := colorAt(img, planner.Cell{Row: 2, Col: 2}, 8); got != ColorGoal {
		t.Errorf("Expected goal colour, got %v", got)
	}
}
