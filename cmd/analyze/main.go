// Command analyze prints quick, human-readable heuristics about the puzzles
// in a levels directory. It summarizes terrain size, crate and goal counts,
// how far crates start from goals, and highlights dead cells: cells from
// which no sequence of pushes can bring a crate onto a goal.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/wricardo/hexoban/game/engine"
	"github.com/wricardo/hexoban/game/hex"
	"github.com/wricardo/hexoban/game/levels"
)

// Analysis holds the heuristics computed for one puzzle.
type Analysis struct {
	ID    string
	Name  string
	Stats engine.DefinitionStats

	// WorkerToCrate is the distance from the worker start to the nearest
	// crate, or -1 without crates.
	WorkerToCrate int
	DeadCells     []hex.Coord
	DeadCrates    []hex.Coord
}

func main() {
	levelsDir := "levels"
	if len(os.Args) > 1 {
		levelsDir = os.Args[1]
	}

	lib, err := levels.NewManager(levelsDir)
	if err != nil {
		fmt.Printf("Error opening levels: %v\n", err)
		os.Exit(1)
	}

	if err := analyzeLibrary(os.Stdout, lib); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

func analyzeLibrary(w io.Writer, lib *levels.Manager) error {
	infos, err := lib.ListPuzzles()
	if err != nil {
		return err
	}
	for _, info := range infos {
		fmt.Fprintf(w, "\n=== Analyzing %s ===\n", info.ID)
		def, err := lib.LoadPuzzle(info.ID)
		if err != nil {
			fmt.Fprintf(w, "Error loading puzzle: %v\n", err)
			continue
		}
		report(w, analyze(def))
	}
	return nil
}

func analyze(def *engine.Definition) Analysis {
	a := Analysis{
		ID:            def.ID,
		Name:          def.Name,
		Stats:         engine.Stats(def),
		WorkerToCrate: -1,
	}

	start := def.Init.WorkerStart()
	for _, c := range def.Init.Crates {
		if d := engine.Distance(start, c); a.WorkerToCrate == -1 || d < a.WorkerToCrate {
			a.WorkerToCrate = d
		}
	}

	live := liveCells(def)
	for _, c := range def.Terrain {
		if !live[c] {
			a.DeadCells = append(a.DeadCells, c)
		}
	}
	for _, c := range def.Init.Crates {
		if !live[c] {
			a.DeadCrates = append(a.DeadCrates, c)
		}
	}
	return a
}

// liveCells walks pushes backwards from the goals. A crate on cell p can be
// pushed in direction d onto p+d when the worker can stand on p-d, so p is
// live whenever p+d is live and both p and p-d are terrain.
func liveCells(def *engine.Definition) map[hex.Coord]bool {
	terrain := make(map[hex.Coord]bool, len(def.Terrain))
	for _, c := range def.Terrain {
		terrain[c] = true
	}

	live := make(map[hex.Coord]bool)
	queue := make([]hex.Coord, 0, len(def.Init.Goals))
	for _, g := range def.Init.Goals {
		if !live[g] {
			live[g] = true
			queue = append(queue, g)
		}
	}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, d := range hex.Directions {
			back := d.Opposite()
			from := current.Step(back)
			worker := from.Step(back)
			if terrain[from] && terrain[worker] && !live[from] {
				live[from] = true
				queue = append(queue, from)
			}
		}
	}
	return live
}

func report(w io.Writer, a Analysis) {
	if a.Name != "" {
		fmt.Fprintf(w, "Name: %s\n", a.Name)
	}
	fmt.Fprintf(w, "Cells: %d (%d walls)\n", a.Stats.Cells, a.Stats.Walls)
	fmt.Fprintf(w, "Crates: %d, goals: %d, already on goal: %d\n", a.Stats.Crates, a.Stats.Goals, a.Stats.CratesOnGoal)
	fmt.Fprintf(w, "Spread: %d\n", a.Stats.Spread)
	if a.WorkerToCrate >= 0 {
		fmt.Fprintf(w, "Worker to nearest crate: %d\n", a.WorkerToCrate)
	}

	if len(a.DeadCrates) > 0 {
		fmt.Fprintf(w, "⚠️  CRITICAL: %d crates start on dead cells!\n", len(a.DeadCrates))
		for _, c := range a.DeadCrates {
			fmt.Fprintf(w, "   Dead crate: %v\n", c)
		}
	} else {
		fmt.Fprintf(w, "✅ Every crate can reach a goal\n")
	}

	if len(a.DeadCells) > 0 {
		fmt.Fprintf(w, "⚠️  %d dead cells\n", len(a.DeadCells))
		for i, c := range a.DeadCells {
			if i < 5 {
				fmt.Fprintf(w, "   Dead: %v\n", c)
			}
		}
		if len(a.DeadCells) > 5 {
			fmt.Fprintf(w, "   ... and %d more\n", len(a.DeadCells)-5)
		}
	}
}
