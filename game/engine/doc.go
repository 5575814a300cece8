// Package engine provides the core puzzle logic for Hexoban, Sokoban on a
// hexagonal grid.
//
// The engine package implements:
//   - Definitions: the durable JSON puzzle record and its validation
//   - State: goals, crates and the worker as indices into a hex.Grid
//   - Push semantics: worker-relative pushes, crate-identified pushes, walks
//   - Replay of a push history against a definition
//
// Core Types:
//
// Definition is what gets stored and shared. State is built from a
// Definition and mutated by pushes; a failed push leaves it untouched.
// GameEngine wraps both for the session layer and keeps a human readable
// message describing the last action.
//
// Usage:
//
//	def, err := engine.LoadDefinition("levels/tutorial/first.json")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	gameEngine, err := engine.NewEngine(def)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	if err := gameEngine.Move("right"); err != nil {
//		log.Println(err)
//	}
//	solved := gameEngine.IsSolved()
//
// Puzzle Rules:
//
// The worker can walk onto free terrain and push a single crate one cell in
// any of the six directions, provided the cell beyond it is terrain without
// another crate. Crates cannot be pulled. The puzzle is solved when the set
// of crate cells equals the set of goal cells.
package engine
