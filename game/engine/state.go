package engine

import (
	"errors"
	"fmt"
	"sort"

	"github.com/wricardo/hexoban/game/hex"
)

var (
	ErrNotTerrain    = errors.New("cell is not terrain")
	ErrCellOccupied  = errors.New("cell already holds a crate")
	ErrWorkerOnCrate = errors.New("worker cannot share a cell with a crate")
)

// State is the mutable runtime form of a puzzle. It owns its Grid; every
// index it stores refers into that Grid.
//
// State is not safe for concurrent use.
type State struct {
	grid   *hex.Grid
	goals  map[hex.Index]struct{}
	crates []hex.Index
	// slot maps an occupied cell to its position in crates.
	slot   map[hex.Index]int
	worker hex.Index
	pushes []Push
	walks  int
}

// NewState creates an empty state over grid, for editing. The worker starts
// unplaced.
func NewState(grid *hex.Grid) *State {
	if grid == nil {
		grid = hex.NewGrid()
	}
	return &State{
		grid:  grid,
		goals: make(map[hex.Index]struct{}),
		slot:  make(map[hex.Index]int),
	}
}

// NewStateFromDefinition validates def and builds its initial state. Terrain
// is registered in definition order, so indices are stable for a given
// definition.
func NewStateFromDefinition(def *Definition) (*State, error) {
	if err := ValidateDefinition(def); err != nil {
		return nil, err
	}

	s := NewState(hex.NewGrid())
	for _, c := range def.Terrain {
		s.grid.Register(c)
	}
	for _, c := range def.Init.Goals {
		if err := s.AddGoal(s.grid.Index(c)); err != nil {
			return nil, fmt.Errorf("goal %v: %w", c, err)
		}
	}
	for _, c := range def.Init.Crates {
		if err := s.AddCrate(s.grid.Index(c)); err != nil {
			return nil, fmt.Errorf("crate %v: %w", c, err)
		}
	}
	// An omitted worker defaults to the origin, which may not be terrain.
	if k := s.grid.Index(def.Init.WorkerStart()); k != hex.None && !s.HasCrate(k) {
		s.worker = k
	}
	return s, nil
}

// Grid returns the topology the state's indices refer to.
func (s *State) Grid() *hex.Grid {
	return s.grid
}

// AddGoal marks a registered cell as a goal.
func (s *State) AddGoal(k hex.Index) error {
	if _, ok := s.grid.Coord(k); !ok {
		return ErrNotTerrain
	}
	s.goals[k] = struct{}{}
	return nil
}

// AddCrate places a crate on a registered, empty cell.
func (s *State) AddCrate(k hex.Index) error {
	if _, ok := s.grid.Coord(k); !ok {
		return ErrNotTerrain
	}
	if s.HasCrate(k) {
		return ErrCellOccupied
	}
	if k == s.worker {
		return ErrWorkerOnCrate
	}
	s.slot[k] = len(s.crates)
	s.crates = append(s.crates, k)
	return nil
}

// SetWorker places the worker on a registered cell without a crate.
func (s *State) SetWorker(k hex.Index) error {
	if _, ok := s.grid.Coord(k); !ok {
		return ErrNotTerrain
	}
	if s.HasCrate(k) {
		return ErrWorkerOnCrate
	}
	s.worker = k
	return nil
}

// RemoveCell drops c from the terrain along with any goal, crate or worker on
// it. It returns the freed index, or hex.None if c was not terrain.
func (s *State) RemoveCell(c hex.Coord) hex.Index {
	k := s.grid.Index(c)
	if k == hex.None {
		return hex.None
	}
	delete(s.goals, k)
	if pos, ok := s.slot[k]; ok {
		last := len(s.crates) - 1
		moved := s.crates[last]
		s.crates[pos] = moved
		s.slot[moved] = pos
		s.crates = s.crates[:last]
		delete(s.slot, k)
	}
	if s.worker == k {
		s.worker = hex.None
	}
	return s.grid.Remove(c)
}

// HasCrate reports whether a crate sits on k.
func (s *State) HasCrate(k hex.Index) bool {
	_, ok := s.slot[k]
	return ok
}

// IsGoal reports whether k is a goal cell.
func (s *State) IsGoal(k hex.Index) bool {
	_, ok := s.goals[k]
	return ok
}

// Goals returns the goal indices in ascending order.
func (s *State) Goals() []hex.Index {
	out := make([]hex.Index, 0, len(s.goals))
	for k := range s.goals {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Crates returns the crate indices in placement order.
func (s *State) Crates() []hex.Index {
	return append([]hex.Index(nil), s.crates...)
}

// Worker returns the worker's cell, or hex.None if unplaced.
func (s *State) Worker() hex.Index {
	return s.worker
}

// Pushes returns the committed pushes, oldest first.
func (s *State) Pushes() []Push {
	return append([]Push(nil), s.pushes...)
}

// PushRecords returns the push history with crates named by coordinate.
func (s *State) PushRecords() []PushRecord {
	out := make([]PushRecord, 0, len(s.pushes))
	for _, p := range s.pushes {
		// Pushed-from cells stay terrain unless removed while editing.
		c, _ := s.grid.Coord(p.Crate)
		out = append(out, PushRecord{From: c, Direction: p.Direction})
	}
	return out
}

// Steps is the number of worker moves, pushes included.
func (s *State) Steps() int {
	return s.walks + len(s.pushes)
}

// SetSteps restores the step counter of a saved state. Pushes already count
// as steps, so n below the push count leaves no walks.
func (s *State) SetSteps(n int) {
	s.walks = max(n-len(s.pushes), 0)
}

// Solved reports whether the crates cover exactly the goals.
func (s *State) Solved() bool {
	if len(s.crates) != len(s.goals) {
		return false
	}
	for _, k := range s.crates {
		if !s.IsGoal(k) {
			return false
		}
	}
	return true
}

// CratesOnGoals counts crates currently sitting on a goal.
func (s *State) CratesOnGoals() int {
	n := 0
	for _, k := range s.crates {
		if s.IsGoal(k) {
			n++
		}
	}
	return n
}

// Snapshot builds a read-only view of the state.
func (s *State) Snapshot() *StateView {
	view := &StateView{
		Cells:     make([]Cell, 0, s.grid.Len()),
		Goals:     s.Goals(),
		Crates:    s.Crates(),
		Worker:    s.worker,
		Pushes:    s.PushRecords(),
		PushCount: len(s.pushes),
		StepCount: s.Steps(),
		Solved:    s.Solved(),
	}
	for _, k := range s.grid.Indices() {
		c, _ := s.grid.Coord(k)
		view.Cells = append(view.Cells, Cell{Index: k, Coord: c})
	}
	if c, ok := s.grid.Coord(s.worker); ok {
		view.WorkerCoord = &c
	}
	return view
}
