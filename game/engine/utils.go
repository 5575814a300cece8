package engine

import "github.com/wricardo/hexoban/game/hex"

// Distance is the number of single-cell steps between two coordinates.
func Distance(from, to hex.Coord) int {
	di := to.I - from.I
	dj := to.J - from.J
	// Forward and Backward move both axes at once, so same-sign deltas
	// share steps.
	if (di >= 0) == (dj >= 0) {
		return max(abs(di), abs(dj))
	}
	return abs(di) + abs(dj)
}

// Walls returns the non-terrain neighbors of the terrain, ordered by first
// discovery while walking the terrain in definition order.
func Walls(def *Definition) []hex.Coord {
	terrain := make(map[hex.Coord]bool, len(def.Terrain))
	for _, c := range def.Terrain {
		terrain[c] = true
	}

	seen := make(map[hex.Coord]bool)
	var walls []hex.Coord
	for _, c := range def.Terrain {
		for _, d := range hex.Directions {
			n := c.Step(d)
			if terrain[n] || seen[n] {
				continue
			}
			seen[n] = true
			walls = append(walls, n)
		}
	}
	return walls
}

// Stats summarizes def. Spread is the largest distance from a crate to its
// nearest goal.
func Stats(def *Definition) DefinitionStats {
	cells := make(map[hex.Coord]bool, len(def.Terrain))
	for _, c := range def.Terrain {
		cells[c] = true
	}
	goals := make(map[hex.Coord]bool, len(def.Init.Goals))
	for _, c := range def.Init.Goals {
		goals[c] = true
	}

	st := DefinitionStats{
		Cells:  len(cells),
		Walls:  len(Walls(def)),
		Goals:  len(def.Init.Goals),
		Crates: len(def.Init.Crates),
	}
	for _, crate := range def.Init.Crates {
		if goals[crate] {
			st.CratesOnGoal++
		}
		nearest := -1
		for _, g := range def.Init.Goals {
			if d := Distance(crate, g); nearest == -1 || d < nearest {
				nearest = d
			}
		}
		if nearest > st.Spread {
			st.Spread = nearest
		}
	}
	return st
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
