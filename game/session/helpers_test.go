package session

import (
	"testing"

	"github.com/wricardo/hexoban/game/engine"
	"github.com/wricardo/hexoban/game/hex"
	"github.com/wricardo/hexoban/game/levels"
)

// createTestPuzzle is a corridor with one side cell: worker at [0, 0], a
// crate at [0, 1] and the goal at [0, 3].
func createTestPuzzle() *engine.Definition {
	return &engine.Definition{
		ID:   "corridor",
		Name: "Corridor",
		Terrain: []hex.Coord{
			hex.C(0, 0), hex.C(0, 1), hex.C(0, 2), hex.C(0, 3), hex.C(1, 1),
		},
		Init: engine.Init{
			Goals:  []hex.Coord{hex.C(0, 3)},
			Crates: []hex.Coord{hex.C(0, 1)},
		},
	}
}

func createTestLibrary(t *testing.T) *levels.Manager {
	t.Helper()
	lib, err := levels.NewManager(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to create puzzle library: %v", err)
	}
	if err := lib.Save("", createTestPuzzle()); err != nil {
		t.Fatalf("Failed to save test puzzle: %v", err)
	}
	return lib
}
