// Package render draws a planner grid and its search result as an image.
package render

import (
	"image"
	"image/color"
	"io"

	"github.com/fogleman/gg"

	"grid-planner/planner"
)

// DefaultCellSize is the edge length in pixels used when none is given.
const DefaultCellSize = 20

// Colours match the interactive visualiser.
var (
	ColorEmpty   = color.RGBA{255, 255, 255, 255}
	ColorWall    = color.RGBA{0, 0, 0, 255}
	ColorStart   = color.RGBA{0, 255, 0, 255}
	ColorGoal    = color.RGBA{255, 0, 0, 255}
	ColorPath    = color.RGBA{0, 0, 255, 255}
	ColorVisited = color.RGBA{255, 255, 0, 255}
)

// Draw paints g with walls, endpoints and, when res is not nil, the visited
// cells and the path. Endpoints are always painted last.
func Draw(g *planner.Grid, res *planner.Result, cellSize int) image.Image {
	return draw(g, res, cellSize).Image()
}

// WritePNG encodes the Draw output as PNG.
func WritePNG(w io.Writer, g *planner.Grid, res *planner.Result, cellSize int) error {
	return draw(g, res, cellSize).EncodePNG(w)
}

func draw(g *planner.Grid, res *planner.Result, cellSize int) *gg.Context {
	if cellSize <= 0 {
		cellSize = DefaultCellSize
	}
	size := float64(cellSize)
	dc := gg.NewContext(g.Cols()*cellSize, g.Rows()*cellSize)
	dc.SetColor(ColorEmpty)
	dc.Clear()

	fillCell := func(c planner.Cell, col color.Color) {
		dc.SetColor(col)
		dc.DrawRectangle(float64(c.Col)*size, float64(c.Row)*size, size, size)
		dc.Fill()
	}

	dc.SetColor(ColorWall)
	for _, rect := range planner.WallRects(g) {
		w := float64(rect.Max.Col-rect.Min.Col+1) * size
		h := float64(rect.Max.Row-rect.Min.Row+1) * size
		dc.DrawRectangle(float64(rect.Min.Col)*size, float64(rect.Min.Row)*size, w, h)
	}
	dc.Fill()

	if res != nil {
		for _, c := range res.Visited {
			fillCell(c, ColorVisited)
		}
		for _, c := range res.Path {
			fillCell(c, ColorPath)
		}
	}

	fillCell(g.Start(), ColorStart)
	fillCell(g.Goal(), ColorGoal)
	return dc
}
