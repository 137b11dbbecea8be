package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"grid-planner/planner"
)

// SaveGrid serializes the grid snapshot and saves it to a JSON file
func SaveGrid(grid *planner.Grid, filename string) error {
	log.Printf("💾 Saving grid to %s...\n", filename)

	data, err := json.MarshalIndent(grid.Snapshot(), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal grid: %w", err)
	}

	err = os.WriteFile(filename, data, 0644)
	if err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	log.Printf("   ✅ Grid saved (%d bytes)\n", len(data))
	return nil
}

// LoadGrid deserializes a grid snapshot from a JSON file and validates it
func LoadGrid(filename string) (*planner.Grid, error) {
	log.Printf("📂 Loading grid from %s...\n", filename)

	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var snapshot planner.Snapshot
	err = json.Unmarshal(data, &snapshot)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal grid: %w", err)
	}

	grid, err := planner.FromSnapshot(snapshot)
	if err != nil {
		return nil, fmt.Errorf("invalid grid file: %w", err)
	}

	log.Printf("   ✅ Grid loaded: %dx%d, %d walls\n", grid.Rows(), grid.Cols(), grid.WallCount())
	return grid, nil
}
