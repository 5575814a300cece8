package engine

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/wricardo/hexoban/game/hex"
)

// ErrInvalidDefinition wraps every structural problem found while decoding or
// validating a Definition.
var ErrInvalidDefinition = errors.New("invalid puzzle definition")

func invalid(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidDefinition, fmt.Sprintf(format, args...))
}

// Decode parses a definition record and validates it. No partial definition
// is returned on error.
func Decode(data []byte) (*Definition, error) {
	var def Definition
	if err := json.Unmarshal(data, &def); err != nil {
		return nil, invalid("%v", err)
	}
	if err := ValidateDefinition(&def); err != nil {
		return nil, err
	}
	return &def, nil
}

// Encode writes def as an indented definition record.
func Encode(def *Definition) ([]byte, error) {
	if def == nil {
		return nil, invalid("definition is nil")
	}
	return json.MarshalIndent(def, "", "  ")
}

// EncodeState writes the current placement of s as a definition record. The
// push history is not part of the output.
func EncodeState(s *State, meta *Definition) ([]byte, error) {
	return Encode(DefinitionFromState(s, meta))
}

// DefinitionFromState re-derives a definition from the state's grid and its
// current crates, goals and worker. Metadata is copied from meta when given.
func DefinitionFromState(s *State, meta *Definition) *Definition {
	def := &Definition{}
	if meta != nil {
		def.ID = meta.ID
		def.Name = meta.Name
		def.Author = meta.Author
		def.Source = meta.Source
		def.Difficulty = meta.Difficulty
	}

	g := s.Grid()
	def.Terrain = g.Coords()
	def.Init.Goals = coordsOf(g, s.Goals())
	def.Init.Crates = coordsOf(g, s.Crates())
	if c, ok := g.Coord(s.Worker()); ok {
		def.Init.Worker = &c
	}
	return def
}

func coordsOf(g *hex.Grid, ks []hex.Index) []hex.Coord {
	out := make([]hex.Coord, 0, len(ks))
	for _, k := range ks {
		if c, ok := g.Coord(k); ok {
			out = append(out, c)
		}
	}
	return out
}

// ValidateDefinition checks a definition for structural correctness.
func ValidateDefinition(def *Definition) error {
	if def == nil {
		return invalid("definition is nil")
	}
	if len(def.Terrain) > MaxTerrain {
		return invalid("terrain has %d cells, max is %d", len(def.Terrain), MaxTerrain)
	}
	if def.Difficulty < 0 || def.Difficulty > MaxDifficulty {
		return invalid("difficulty must be between 0 and %d, got %d", MaxDifficulty, def.Difficulty)
	}

	terrain := make(map[hex.Coord]bool, len(def.Terrain))
	for _, c := range def.Terrain {
		terrain[c] = true
	}

	goals := make(map[hex.Coord]bool, len(def.Init.Goals))
	for _, c := range def.Init.Goals {
		if !terrain[c] {
			return invalid("goal %v is not on terrain", c)
		}
		if goals[c] {
			return invalid("duplicate goal %v", c)
		}
		goals[c] = true
	}

	crates := make(map[hex.Coord]bool, len(def.Init.Crates))
	for _, c := range def.Init.Crates {
		if !terrain[c] {
			return invalid("crate %v is not on terrain", c)
		}
		if crates[c] {
			return invalid("duplicate crate %v", c)
		}
		crates[c] = true
	}

	if w := def.Init.Worker; w != nil {
		if !terrain[*w] {
			return invalid("worker %v is not on terrain", *w)
		}
		if crates[*w] {
			return invalid("worker %v is on a crate", *w)
		}
	}
	return nil
}

// Lint reports problems that do not make a definition unloadable but usually
// make it unplayable.
func Lint(def *Definition) []string {
	var issues []string
	if len(def.Terrain) == 0 {
		issues = append(issues, "no terrain")
	}
	seen := make(map[hex.Coord]bool, len(def.Terrain))
	dups := 0
	for _, c := range def.Terrain {
		if seen[c] {
			dups++
		}
		seen[c] = true
	}
	if dups > 0 {
		issues = append(issues, fmt.Sprintf("%d duplicate terrain cells", dups))
	}
	if len(def.Init.Goals) == 0 {
		issues = append(issues, "no goals")
	}
	if len(def.Init.Goals) != len(def.Init.Crates) {
		issues = append(issues, fmt.Sprintf("%d goals but %d crates", len(def.Init.Goals), len(def.Init.Crates)))
	}
	w := def.Init.WorkerStart()
	if !seen[w] {
		issues = append(issues, fmt.Sprintf("worker start %v is not on terrain", w))
	} else if def.Init.Worker == nil {
		for _, c := range def.Init.Crates {
			if c == w {
				issues = append(issues, "default worker start is covered by a crate")
				break
			}
		}
	}
	if len(def.Init.Goals) > 0 && len(def.Init.Goals) == len(def.Init.Crates) {
		onGoal := 0
		goals := make(map[hex.Coord]bool, len(def.Init.Goals))
		for _, c := range def.Init.Goals {
			goals[c] = true
		}
		for _, c := range def.Init.Crates {
			if goals[c] {
				onGoal++
			}
		}
		if onGoal == len(def.Init.Crates) {
			issues = append(issues, "already solved")
		}
	}
	return issues
}

// LoadDefinition reads and decodes a definition file. When LEVELS_DIR is set,
// paths under "levels/" are resolved against it.
func LoadDefinition(filename string) (*Definition, error) {
	path := filename
	if dir := os.Getenv("LEVELS_DIR"); dir != "" && strings.HasPrefix(filename, "levels/") {
		path = filepath.Join(dir, strings.TrimPrefix(filename, "levels/"))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	def, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return def, nil
}

// String returns a short description such as "Tiny (3 cells, 1 crate)".
func (d *Definition) String() string {
	name := d.Name
	if name == "" {
		name = d.ID
	}
	noun := "crates"
	if len(d.Init.Crates) == 1 {
		noun = "crate"
	}
	return fmt.Sprintf("%s (%d cells, %d %s)", name, len(d.Terrain), len(d.Init.Crates), noun)
}
