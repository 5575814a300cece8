// Package hex provides the axial coordinate system and topology registry for
// the Hexoban puzzle.
//
// Coordinates:
//
// Coord is an axial (i, j) pair where i grows downward and j grows
// rightward. Every coordinate has six neighbors, one per Direction:
//
//	Up       (i-1, j)      Down     (i+1, j)
//	Left     (i, j-1)      Right    (i, j+1)
//	Backward (i-1, j-1)    Forward  (i+1, j+1)
//
// Grid:
//
// Grid maps coordinates to dense positive indices and back. Index zero means
// "absent", so callers can probe with Grid.Index and compare against None
// without a second return value. Grid.Register is the only way to allocate an
// index and it is idempotent.
//
// Usage:
//
//	grid := hex.NewGrid()
//	a := grid.Register(hex.C(0, 0))
//	b := grid.Register(hex.C(0, 1))
//	n := grid.Neighbors(hex.C(0, 0))
//	// n[hex.Right] == b
package hex
