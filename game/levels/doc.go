// Package levels is the on-disk puzzle library.
//
// Puzzles are Definition records stored as JSON files under a root
// directory, optionally grouped into collection subdirectories:
//
//	levels/
//	  tutorial/first-steps.json
//	  tutorial/two-crates.json
//	  classic/...
//
// A puzzle's id is its "id" field, or the file name without ".json" when
// the field is empty. Files that fail to decode are logged and skipped.
//
// Usage:
//
//	lib, err := levels.NewManager("levels")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	def, err := lib.LoadPuzzle("first-steps")
//	infos, err := lib.ListPuzzles()
//	err = lib.Save("imported", def)
package levels
