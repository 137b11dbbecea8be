package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/andybalholm/brotli"
	"github.com/gin-gonic/gin"

	"grid-planner/planner"
	"grid-planner/render"
)

// server owns the single grid edited and searched over HTTP. Edits take
// the write lock; searches run on a clone taken under the read lock, so a
// search never observes a half-applied edit.
type server struct {
	mu        sync.RWMutex
	grid      *planner.Grid
	statePath string
}

func newServer(grid *planner.Grid, statePath string) *server {
	return &server{grid: grid, statePath: statePath}
}

func (s *server) routes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery(), corsMiddleware(), brotliMiddleware(brotli.DefaultCompression))

	router.GET("/health", s.healthHandler)
	router.GET("/grid", s.getGridHandler)
	router.POST("/grid", s.createGridHandler)
	router.POST("/grid/endpoints", s.moveEndpointsHandler)
	router.POST("/grid/save", s.saveGridHandler)
	router.GET("/walls", s.listWallsHandler)
	router.POST("/walls", s.setWallsHandler)
	router.DELETE("/walls", s.clearWallsHandler)
	router.POST("/walls/region", s.setRegionHandler)
	router.GET("/walls.geojson", s.exportWallsHandler)
	router.POST("/walls.geojson", s.importWallsHandler)
	router.POST("/search", s.searchHandler)
	router.GET("/search.geojson", s.searchGeoJSONHandler)
	router.GET("/render.png", s.renderHandler)
	return router
}

// snapshot returns a private copy of the grid for searching or rendering.
func (s *server) snapshot() *planner.Grid {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.grid.Clone()
}

// statusFor maps planner errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, planner.ErrInvalidConfiguration),
		errors.Is(err, planner.ErrOutOfBounds),
		errors.Is(err, planner.ErrProtectedCell):
		return http.StatusBadRequest
	case errors.Is(err, planner.ErrExpansionLimit):
		return http.StatusUnprocessableEntity
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return http.StatusGatewayTimeout
	}
	return http.StatusInternalServerError
}

func abortWithError(c *gin.Context, err error) {
	log.Printf("❌ %s %s: %v\n", c.Request.Method, c.Request.URL.Path, err)
	c.AbortWithStatusJSON(statusFor(err), gin.H{"success": false, "error": err.Error()})
}

// GET /health - Health check endpoint
func (s *server) healthHandler(c *gin.Context) {
	s.mu.RLock()
	rows, cols, walls := s.grid.Rows(), s.grid.Cols(), s.grid.WallCount()
	s.mu.RUnlock()

	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
		"rows":   rows,
		"cols":   cols,
		"walls":  walls,
	})
}

type gridResponse struct {
	planner.Snapshot
	Layout string `json:"layout"`
}

// GET /grid - Current grid with an ASCII rendering
func (s *server) getGridHandler(c *gin.Context) {
	s.mu.RLock()
	resp := gridResponse{Snapshot: s.grid.Snapshot(), Layout: planner.FormatLayout(s.grid, nil)}
	s.mu.RUnlock()

	c.JSON(http.StatusOK, resp)
}

type createGridRequest struct {
	Rows   int          `json:"rows"`
	Cols   int          `json:"cols"`
	Start  planner.Cell `json:"start"`
	Goal   planner.Cell `json:"goal"`
	Layout string       `json:"layout,omitempty"`
}

// POST /grid - Replace the grid, either from dimensions or from a layout
func (s *server) createGridHandler(c *gin.Context) {
	log.Println("========================================")
	log.Println("🗺️  Create grid request received")

	var req createGridRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, fmt.Errorf("%w: invalid request body: %v", planner.ErrInvalidConfiguration, err))
		return
	}

	var grid *planner.Grid
	var err error
	if req.Layout != "" {
		grid, err = planner.ParseLayout(req.Layout)
	} else {
		grid, err = planner.NewGrid(req.Rows, req.Cols, req.Start, req.Goal)
	}
	if err != nil {
		abortWithError(c, err)
		return
	}

	s.mu.Lock()
	s.grid = grid
	s.mu.Unlock()

	log.Printf("✅ Grid %dx%d created, start %v, goal %v, %d walls\n",
		grid.Rows(), grid.Cols(), grid.Start(), grid.Goal(), grid.WallCount())
	log.Println("========================================")

	c.JSON(http.StatusOK, gridResponse{Snapshot: grid.Snapshot(), Layout: planner.FormatLayout(grid, nil)})
}

type endpointsRequest struct {
	Start *planner.Cell `json:"start,omitempty"`
	Goal  *planner.Cell `json:"goal,omitempty"`
}

// POST /grid/endpoints - Move the start and/or goal
func (s *server) moveEndpointsHandler(c *gin.Context) {
	var req endpointsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, fmt.Errorf("%w: invalid request body: %v", planner.ErrInvalidConfiguration, err))
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	start, goal := s.grid.Start(), s.grid.Goal()
	if req.Start != nil {
		start = *req.Start
	}
	if req.Goal != nil {
		goal = *req.Goal
	}
	if err := s.grid.SetEndpoints(start, goal); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "start": s.grid.Start(), "goal": s.grid.Goal()})
}

// POST /grid/save - Persist the grid to the state file
func (s *server) saveGridHandler(c *gin.Context) {
	grid := s.snapshot()
	if err := SaveGrid(grid, s.statePath); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "file": s.statePath})
}

// GET /walls - List walls, optionally limited to a region
func (s *server) listWallsHandler(c *gin.Context) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	lo := planner.Cell{Row: 0, Col: 0}
	hi := planner.Cell{Row: s.grid.Rows() - 1, Col: s.grid.Cols() - 1}
	var err error
	if lo.Row, err = queryInt(c, "minRow", lo.Row); err != nil {
		abortWithError(c, err)
		return
	}
	if lo.Col, err = queryInt(c, "minCol", lo.Col); err != nil {
		abortWithError(c, err)
		return
	}
	if hi.Row, err = queryInt(c, "maxRow", hi.Row); err != nil {
		abortWithError(c, err)
		return
	}
	if hi.Col, err = queryInt(c, "maxCol", hi.Col); err != nil {
		abortWithError(c, err)
		return
	}

	walls := s.grid.BlockedInRegion(lo, hi)
	c.JSON(http.StatusOK, wallsResponse{Walls: walls, Count: len(walls)})
}

func queryInt(c *gin.Context, name string, fallback int) (int, error) {
	raw, ok := c.GetQuery(name)
	if !ok || raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s=%q is not an integer", planner.ErrInvalidConfiguration, name, raw)
	}
	return v, nil
}

type setWallsRequest struct {
	Cells   []planner.Cell `json:"cells"`
	Blocked bool           `json:"blocked"`
}

type rejectedCell struct {
	Cell  planner.Cell `json:"cell"`
	Error string       `json:"error"`
}

type setWallsResponse struct {
	Changed  int            `json:"changed"`
	Rejected []rejectedCell `json:"rejected"`
	Walls    int            `json:"walls"`
}

type wallsResponse struct {
	Walls []planner.Cell `json:"walls"`
	Count int            `json:"count"`
}

// POST /walls - Place or remove walls cell by cell
func (s *server) setWallsHandler(c *gin.Context) {
	var req setWallsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, fmt.Errorf("%w: invalid request body: %v", planner.ErrInvalidConfiguration, err))
		return
	}

	changed := 0
	rejected := []rejectedCell{}

	s.mu.Lock()
	for _, cell := range req.Cells {
		before := s.grid.State(cell)
		if err := s.grid.SetBlocked(cell, req.Blocked); err != nil {
			rejected = append(rejected, rejectedCell{Cell: cell, Error: err.Error()})
			continue
		}
		if s.grid.State(cell) != before {
			changed++
		}
	}
	walls := s.grid.WallCount()
	s.mu.Unlock()

	c.JSON(http.StatusOK, setWallsResponse{Changed: changed, Rejected: rejected, Walls: walls})
}

type regionRequest struct {
	Min     planner.Cell `json:"min"`
	Max     planner.Cell `json:"max"`
	Blocked bool         `json:"blocked"`
}

// POST /walls/region - Fill or clear a rectangle
func (s *server) setRegionHandler(c *gin.Context) {
	var req regionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, fmt.Errorf("%w: invalid request body: %v", planner.ErrInvalidConfiguration, err))
		return
	}

	s.mu.Lock()
	changed := s.grid.BlockRegion(req.Min, req.Max, req.Blocked)
	walls := s.grid.WallCount()
	s.mu.Unlock()

	c.JSON(http.StatusOK, gin.H{"changed": changed, "walls": walls})
}

// DELETE /walls - Remove every wall
func (s *server) clearWallsHandler(c *gin.Context) {
	s.mu.Lock()
	s.grid.ClearWalls()
	s.mu.Unlock()

	c.JSON(http.StatusOK, gin.H{"success": true, "walls": 0})
}

// GET /walls.geojson - Walls as merged polygons for visualization
func (s *server) exportWallsHandler(c *gin.Context) {
	grid := s.snapshot()
	c.JSON(http.StatusOK, planner.WallsFeatureCollection(grid))
}

// POST /walls.geojson - Block every cell covered by the posted polygons
func (s *server) importWallsHandler(c *gin.Context) {
	log.Println("========================================")
	log.Println("🧱 Wall import request received")

	data, err := c.GetRawData()
	if err != nil {
		abortWithError(c, err)
		return
	}

	s.mu.Lock()
	blocked, err := planner.LoadWallsGeoJSON(s.grid, data)
	walls := s.grid.WallCount()
	s.mu.Unlock()
	if err != nil {
		abortWithError(c, fmt.Errorf("%w: %v", planner.ErrInvalidConfiguration, err))
		return
	}

	log.Printf("   ✅ Blocked %d cells (%d walls total)\n", blocked, walls)
	log.Println("========================================")
	c.JSON(http.StatusOK, gin.H{"success": true, "blocked": blocked, "walls": walls})
}

type searchRequest struct {
	Heuristic string `json:"heuristic,omitempty"`
	Visited   bool   `json:"visited,omitempty"`
	TimeoutMs int    `json:"timeoutMs,omitempty"`
}

type searchResponse struct {
	Found       bool           `json:"found"`
	Path        []planner.Cell `json:"path"`
	Steps       int            `json:"steps"`
	Waypoints   []planner.Cell `json:"waypoints,omitempty"`
	Expanded    int            `json:"expanded"`
	Visited     []planner.Cell `json:"visited,omitempty"`
	TimeTakenMs float64        `json:"timeTakenMs"`
	Message     string         `json:"message,omitempty"`
}

func parseHeuristic(name string) (planner.Heuristic, error) {
	switch name {
	case "", "euclidean":
		return planner.Euclidean, nil
	case "manhattan":
		return planner.Manhattan, nil
	}
	return nil, fmt.Errorf("%w: unknown heuristic %q", planner.ErrInvalidConfiguration, name)
}

// POST /search - Run A* from the grid's start to its goal
func (s *server) searchHandler(c *gin.Context) {
	log.Println("========================================")
	log.Println("📍 Search request received")

	var req searchRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		abortWithError(c, fmt.Errorf("%w: invalid request body: %v", planner.ErrInvalidConfiguration, err))
		return
	}
	heuristic, err := parseHeuristic(req.Heuristic)
	if err != nil {
		abortWithError(c, err)
		return
	}

	ctx := c.Request.Context()
	if req.TimeoutMs > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(req.TimeoutMs)*time.Millisecond)
		defer cancel()
	}
	opts := []planner.Option{planner.WithContext(ctx), planner.WithHeuristic(heuristic)}
	if req.Visited {
		opts = append(opts, planner.WithVisited())
	}

	grid := s.snapshot()
	log.Printf("   Start: %v\n", grid.Start())
	log.Printf("   Goal:  %v\n", grid.Goal())

	log.Println("🔍 Running A* on grid...")
	startTime := time.Now()
	res, err := planner.Search(grid, grid.Start(), grid.Goal(), opts...)
	elapsed := time.Since(startTime)
	if err != nil {
		abortWithError(c, err)
		log.Println("========================================")
		return
	}

	response := searchResponse{
		Found:       res.Found,
		Path:        res.Path,
		Steps:       planner.PathLength(res.Path),
		Expanded:    res.Expanded,
		Visited:     res.Visited,
		TimeTakenMs: float64(elapsed.Microseconds()) / 1000,
	}
	if response.Path == nil {
		response.Path = []planner.Cell{}
	}

	if !res.Found {
		log.Println("❌ No path found")
		response.Message = "No path found"
	} else {
		response.Waypoints = planner.Waypoints(grid.Start(), res.Path)
		log.Printf("✅ Path found with %d steps (%d expanded)\n", response.Steps, res.Expanded)
		log.Printf("   Waypoints: %v\n", response.Waypoints)
	}
	log.Println("========================================")

	c.JSON(http.StatusOK, response)
}

// GET /search.geojson - Current route as a GeoJSON LineString
func (s *server) searchGeoJSONHandler(c *gin.Context) {
	epsilon, err := strconv.ParseFloat(c.DefaultQuery("simplify", "0"), 64)
	if err != nil || epsilon < 0 {
		abortWithError(c, fmt.Errorf("%w: simplify must be a non-negative number", planner.ErrInvalidConfiguration))
		return
	}

	grid := s.snapshot()
	res, err := planner.Search(grid, grid.Start(), grid.Goal(), planner.WithContext(c.Request.Context()))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, planner.PathFeature(grid.Start(), res, epsilon))
}

// GET /render.png - Grid and route as an image
func (s *server) renderHandler(c *gin.Context) {
	cellSize, err := queryInt(c, "cellSize", render.DefaultCellSize)
	if err != nil {
		abortWithError(c, err)
		return
	}
	if cellSize < 1 || cellSize > maxCellSize {
		abortWithError(c, fmt.Errorf("%w: cellSize must be between 1 and %d", planner.ErrInvalidConfiguration, maxCellSize))
		return
	}

	grid := s.snapshot()
	var res *planner.Result
	if c.DefaultQuery("path", "true") != "false" {
		opts := []planner.Option{planner.WithContext(c.Request.Context())}
		if c.Query("visited") == "true" {
			opts = append(opts, planner.WithVisited())
		}
		r, err := planner.Search(grid, grid.Start(), grid.Goal(), opts...)
		if err != nil {
			abortWithError(c, err)
			return
		}
		res = &r
	}

	var buf bytes.Buffer
	if err := render.WritePNG(&buf, grid, res, cellSize); err != nil {
		abortWithError(c, err)
		return
	}
	c.Data(http.StatusOK, "image/png", buf.Bytes())
}
