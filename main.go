package main

import (
	"errors"
	"flag"
	"log"
	"os"

	"grid-planner/planner"
)

// maxCellSize bounds the pixel size accepted by /render.png.
const maxCellSize = 100

type config struct {
	addr      string
	statePath string
	rows      int
	cols      int
}

func parseConfig(args []string) (config, error) {
	var cfg config
	fs := flag.NewFlagSet("grid-planner", flag.ContinueOnError)
	fs.StringVar(&cfg.addr, "addr", ":8080", "listen address")
	fs.StringVar(&cfg.statePath, "state", "grid_state.json", "grid state file loaded on startup and written by /grid/save")
	fs.IntVar(&cfg.rows, "rows", 20, "rows of the default grid")
	fs.IntVar(&cfg.cols, "cols", 20, "columns of the default grid")
	if err := fs.Parse(args); err != nil {
		return config{}, err
	}
	if port := os.Getenv("PORT"); port != "" {
		cfg.addr = ":" + port
	}
	return cfg, nil
}

// initialGrid loads the saved grid, or builds the default one with the
// start in the top-left corner and the goal in the bottom-right.
func initialGrid(cfg config) (*planner.Grid, error) {
	grid, err := LoadGrid(cfg.statePath)
	if err == nil {
		return grid, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		log.Printf("⚠️  Ignoring state file: %v\n", err)
	} else {
		log.Println("ℹ️  No existing grid found (this is normal on first run)")
	}
	return planner.NewGrid(cfg.rows, cfg.cols,
		planner.Cell{Row: 0, Col: 0},
		planner.Cell{Row: cfg.rows - 1, Col: cfg.cols - 1})
}

func main() {
	log.Println("========================================")
	log.Println("🚀 Grid Path Planner Server (A*)")
	log.Println("========================================")

	cfg, err := parseConfig(os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}

	log.Println("Checking for existing grid file...")
	grid, err := initialGrid(cfg)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("   Grid: %dx%d, start %v, goal %v, %d walls\n",
		grid.Rows(), grid.Cols(), grid.Start(), grid.Goal(), grid.WallCount())
	log.Println("")

	srv := newServer(grid, cfg.statePath)
	router := srv.routes()

	log.Printf("Server starting on %s\n", cfg.addr)
	log.Println("")
	log.Println("Endpoints:")
	log.Println("  GET    /health           - Check server status")
	log.Println("  GET    /grid             - Current grid and ASCII layout")
	log.Println("  POST   /grid             - Replace the grid")
	log.Println("  POST   /grid/endpoints   - Move start and/or goal")
	log.Println("  POST   /grid/save        - Persist the grid")
	log.Println("  GET    /walls            - List walls (optional region)")
	log.Println("  POST   /walls            - Place or remove walls")
	log.Println("  POST   /walls/region     - Fill or clear a rectangle")
	log.Println("  DELETE /walls            - Remove all walls")
	log.Println("  GET    /walls.geojson    - Walls as polygons")
	log.Println("  POST   /walls.geojson    - Import walls from polygons")
	log.Println("  POST   /search           - Run A* from start to goal")
	log.Println("  GET    /search.geojson   - Route as a LineString")
	log.Println("  GET    /render.png       - Grid and route as PNG")
	log.Println("")
	log.Println("CORS enabled for all origins")
	log.Println("========================================")
	log.Println("")

	if err := router.Run(cfg.addr); err != nil {
		log.Fatal(err)
	}
}
