// Command gridviz is a terminal editor for drawing walls on a grid and
// watching A* route around them.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/gdamore/tcell/v2"

	"grid-planner/planner"
)

var kindStyles = map[cellKind]tcell.Style{
	kindEmpty:   tcell.StyleDefault.Background(tcell.ColorWhite),
	kindWall:    tcell.StyleDefault.Background(tcell.ColorBlack),
	kindStart:   tcell.StyleDefault.Background(tcell.ColorGreen),
	kindGoal:    tcell.StyleDefault.Background(tcell.ColorRed),
	kindPath:    tcell.StyleDefault.Background(tcell.ColorBlue),
	kindVisited: tcell.StyleDefault.Background(tcell.ColorYellow),
}

func main() {
	rows := flag.Int("rows", 20, "grid rows")
	cols := flag.Int("cols", 20, "grid columns")
	layout := flag.String("layout", "", "ASCII layout file ('.', '#', 'S', 'G') overriding -rows/-cols")
	flag.Parse()

	grid, err := loadGrid(*rows, *cols, *layout)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := run(newEditor(grid)); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadGrid(rows, cols int, layoutPath string) (*planner.Grid, error) {
	if layoutPath != "" {
		data, err := os.ReadFile(layoutPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read layout: %w", err)
		}
		return planner.ParseLayout(string(data))
	}
	return planner.NewGrid(rows, cols, planner.Cell{Row: 0, Col: 0}, planner.Cell{Row: rows - 1, Col: cols - 1})
}

func run(e *editor) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()
	screen.EnableMouse()

	for {
		draw(screen, e)

		switch ev := screen.PollEvent().(type) {
		case *tcell.EventResize:
			screen.Sync()
		case *tcell.EventKey:
			switch {
			case ev.Key() == tcell.KeyEscape, ev.Key() == tcell.KeyCtrlC, ev.Key() == tcell.KeyRune && ev.Rune() == 'q':
				return nil
			case ev.Key() == tcell.KeyRune && ev.Rune() == ' ':
				e.search()
			case ev.Key() == tcell.KeyRune && ev.Rune() == 'v':
				e.showVisited = !e.showVisited
			case ev.Key() == tcell.KeyRune && ev.Rune() == 'c':
				e.clear()
			}
		case *tcell.EventMouse:
			x, y := ev.Position()
			cell := planner.Cell{Row: y, Col: x / 2}
			switch {
			case ev.Buttons()&tcell.Button1 != 0:
				e.paint(cell, true)
			case ev.Buttons()&tcell.Button2 != 0:
				e.paint(cell, false)
			}
		}
	}
}

// draw renders each cell two columns wide so the board looks square.
func draw(screen tcell.Screen, e *editor) {
	screen.Clear()
	kinds := e.kinds()
	for r := 0; r < e.grid.Rows(); r++ {
		for c := 0; c < e.grid.Cols(); c++ {
			style := kindStyles[kinds[planner.Cell{Row: r, Col: c}]]
			screen.SetContent(2*c, r, ' ', nil, style)
			screen.SetContent(2*c+1, r, ' ', nil, style)
		}
	}
	for i, ch := range e.status {
		screen.SetContent(i, e.grid.Rows()+1, ch, nil, tcell.StyleDefault)
	}
	screen.Show()
}
