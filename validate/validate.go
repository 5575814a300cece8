// Command validate checks every puzzle definition under a levels directory
// (default ../levels). It checks:
//   - JSON structure and coordinate encoding
//   - Definition invariants (crates, goals and worker on terrain)
//   - Lint findings: missing goals, goal/crate mismatch, duplicate terrain, already solved
//   - Connectivity: every crate and goal lies in the worker's region
package main

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/wricardo/hexoban/game/engine"
	"github.com/wricardo/hexoban/game/hex"
)

// ValidationResult captures the outcome of validating a single file.
// If Valid is true, Errors contains informational messages; otherwise it
// accumulates the validation errors that were found.
type ValidationResult struct {
	File   string
	Valid  bool
	Errors []string
}

func (r *ValidationResult) fail(format string, args ...interface{}) {
	r.Valid = false
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

// validatePuzzle loads and validates a single definition file.
func validatePuzzle(filePath string) ValidationResult {
	result := ValidationResult{
		File:   filepath.Base(filePath),
		Valid:  true,
		Errors: []string{},
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		result.fail("Failed to read file: %v", err)
		return result
	}

	def, err := engine.Decode(data)
	if err != nil {
		result.fail("Invalid definition: %v", err)
		return result
	}

	for _, issue := range engine.Lint(def) {
		result.fail("Lint: %s", issue)
	}

	if result.Valid {
		connectivity := validateConnectivity(def)
		if !connectivity.Valid {
			result.Valid = false
		}
		result.Errors = append(result.Errors, connectivity.Errors...)
	}

	if result.Valid {
		stats := engine.Stats(def)
		name := def.Name
		if name == "" {
			name = def.ID
		}
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Name: %s", name))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Cells: %d (%d walls)", stats.Cells, stats.Walls))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Crates: %d, goals: %d", stats.Crates, stats.Goals))
	}

	return result
}

// validateConnectivity flood-fills the terrain from the worker start,
// ignoring crates, and reports crates and goals outside that region.
func validateConnectivity(def *engine.Definition) ValidationResult {
	result := ValidationResult{
		Valid:  true,
		Errors: []string{},
	}

	terrain := make(map[hex.Coord]bool, len(def.Terrain))
	for _, c := range def.Terrain {
		terrain[c] = true
	}

	start := def.Init.WorkerStart()
	visited := map[hex.Coord]bool{start: true}
	queue := []hex.Coord{start}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, d := range hex.Directions {
			next := current.Step(d)
			if terrain[next] && !visited[next] {
				visited[next] = true
				queue = append(queue, next)
			}
		}
	}

	var unreachable []string
	for _, c := range def.Init.Crates {
		if !visited[c] {
			unreachable = append(unreachable, fmt.Sprintf("Crate at %v", c))
		}
	}
	for _, c := range def.Init.Goals {
		if !visited[c] {
			unreachable = append(unreachable, fmt.Sprintf("Goal at %v", c))
		}
	}

	if len(unreachable) > 0 {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Connectivity failure: %d cells unreachable from the worker", len(unreachable)))
		for _, u := range unreachable {
			result.Errors = append(result.Errors, fmt.Sprintf("Unreachable: %s", u))
		}
	} else {
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Connectivity: %d of %d cells reachable", len(visited), len(terrain)))
	}

	return result
}

// findPuzzles returns every .json file below dir.
func findPuzzles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.EqualFold(filepath.Ext(path), ".json") {
			files = append(files, path)
		}
		return nil
	})
	return files, err
}

// main validates each puzzle, printing a concise report and exiting with
// non-zero status if any are invalid.
func main() {
	levelsDir := "../levels"
	if len(os.Args) > 1 {
		levelsDir = os.Args[1]
	}

	files, err := findPuzzles(levelsDir)
	if err != nil {
		fmt.Printf("Error finding puzzle files: %v\n", err)
		os.Exit(1)
	}

	allValid := true
	for _, file := range files {
		result := validatePuzzle(file)
		if rel, err := filepath.Rel(levelsDir, file); err == nil {
			result.File = rel
		}

		fmt.Printf("\n%s %s\n", strings.Repeat("=", 20), result.File)

		if result.Valid {
			fmt.Println("✅ VALID")
			for _, info := range result.Errors {
				fmt.Println("  " + info)
			}
		} else {
			fmt.Println("❌ INVALID")
			allValid = false
			for _, err := range result.Errors {
				if !strings.HasPrefix(err, "✓") {
					fmt.Println("  ❌ " + err)
				}
			}
		}
	}

	fmt.Printf("\n%s\n", strings.Repeat("=", 40))
	if allValid {
		fmt.Printf("✅ All %d puzzles are valid!\n", len(files))
	} else {
		fmt.Println("❌ Some puzzles have errors")
		os.Exit(1)
	}
}
