package engine

import (
	"fmt"

	"github.com/wricardo/hexoban/game/hex"
)

// Engine provides the main interface for game operations
type Engine interface {
	// Game state management
	GetState() *State
	Snapshot() *StateView
	Reset() *StateView
	IsSolved() bool
	GetWorkerPosition() (hex.Coord, bool)

	// Movement operations
	Move(direction string) error
	PushCrate(crate hex.Coord, direction string) error
	CanMove(direction string) bool
	GetPossibleMoves() []string

	// Puzzle
	GetDefinition() *Definition
	SetDefinition(def *Definition) error

	// History
	GetPushHistory() []PushRecord
	GetLastPush() *PushRecord
	GetResets() int
	GetMessage() string
}

// GameEngine implements the Engine interface
type GameEngine struct {
	def     *Definition
	state   *State
	message string
	resets  int
}

// NewEngine creates a new game engine for the given puzzle
func NewEngine(def *Definition) (*GameEngine, error) {
	state, err := NewStateFromDefinition(def)
	if err != nil {
		return nil, err
	}

	return &GameEngine{
		def:     def,
		state:   state,
		message: fmt.Sprintf("Puzzle %q loaded. Push every crate onto a goal.", def.Name),
	}, nil
}

// RestoreEngine rebuilds an engine by replaying a push history against def.
func RestoreEngine(def *Definition, pushes []PushRecord) (*GameEngine, error) {
	state, err := Replay(def, pushes)
	if err != nil {
		return nil, err
	}
	e := &GameEngine{def: def, state: state}
	e.updateMessage()
	return e, nil
}

// GetState returns the underlying puzzle state
func (e *GameEngine) GetState() *State {
	return e.state
}

// Snapshot returns a view of the current state decorated with puzzle metadata
func (e *GameEngine) Snapshot() *StateView {
	view := e.state.Snapshot()
	view.PuzzleID = e.def.ID
	view.PuzzleName = e.def.Name
	view.Message = e.message
	return view
}

// Reset restores the puzzle's initial placement. The reset counter survives.
func (e *GameEngine) Reset() *StateView {
	// The definition was validated when the engine was built.
	state, _ := NewStateFromDefinition(e.def)
	e.state = state
	e.resets++
	e.message = "Puzzle reset."
	return e.Snapshot()
}

// IsSolved returns whether every crate is on a goal
func (e *GameEngine) IsSolved() bool {
	return e.state.Solved()
}

// GetWorkerPosition returns the worker's coordinate, if placed
func (e *GameEngine) GetWorkerPosition() (hex.Coord, bool) {
	return e.state.Grid().Coord(e.state.Worker())
}

// Move walks or pushes in the named direction
func (e *GameEngine) Move(direction string) error {
	d, err := hex.ParseDirection(direction)
	if err != nil {
		e.message = err.Error()
		return fmt.Errorf("%w: %q", ErrInvalidDirection, direction)
	}

	pushed, err := e.state.Move(d)
	if err != nil {
		e.message = fmt.Sprintf("Cannot move %s: %v", d, err)
		return err
	}

	if pushed {
		e.message = fmt.Sprintf("Pushed crate %s.", d)
	} else {
		e.message = fmt.Sprintf("Moved %s.", d)
	}
	e.updateMessage()
	return nil
}

// PushCrate pushes the crate at the given coordinate
func (e *GameEngine) PushCrate(crate hex.Coord, direction string) error {
	d, err := hex.ParseDirection(direction)
	if err != nil {
		e.message = err.Error()
		return fmt.Errorf("%w: %q", ErrInvalidDirection, direction)
	}

	k := e.state.Grid().Index(crate)
	if k == hex.None {
		e.message = fmt.Sprintf("No terrain at %v.", crate)
		return ErrNoCrate
	}
	if err := e.state.PushCrate(k, d); err != nil {
		e.message = fmt.Sprintf("Cannot push crate at %v %s: %v", crate, d, err)
		return err
	}

	e.message = fmt.Sprintf("Pushed crate at %v %s.", crate, d)
	e.updateMessage()
	return nil
}

func (e *GameEngine) updateMessage() {
	if e.state.Solved() {
		e.message = fmt.Sprintf("Solved in %d pushes!", len(e.state.pushes))
		return
	}
	if e.message == "" {
		e.message = fmt.Sprintf("%d of %d crates on goals.", e.state.CratesOnGoals(), len(e.state.crates))
	}
}

// CanMove checks if the worker can move in the specified direction
func (e *GameEngine) CanMove(direction string) bool {
	d, err := hex.ParseDirection(direction)
	if err != nil {
		return false
	}
	return e.state.CanMove(d)
}

// GetPossibleMoves returns all directions the worker can move in
func (e *GameEngine) GetPossibleMoves() []string {
	var possible []string
	for _, d := range hex.Directions {
		if e.state.CanMove(d) {
			possible = append(possible, d.String())
		}
	}
	return possible
}

// GetDefinition returns the puzzle being played
func (e *GameEngine) GetDefinition() *Definition {
	return e.def
}

// SetDefinition switches to a new puzzle and starts it from scratch
func (e *GameEngine) SetDefinition(def *Definition) error {
	state, err := NewStateFromDefinition(def)
	if err != nil {
		return err
	}

	e.def = def
	e.state = state
	e.resets = 0
	e.message = fmt.Sprintf("Puzzle %q loaded.", def.Name)
	return nil
}

// GetPushHistory returns the pushes made since the last reset
func (e *GameEngine) GetPushHistory() []PushRecord {
	return e.state.PushRecords()
}

// GetLastPush returns the last push made, or nil if none
func (e *GameEngine) GetLastPush() *PushRecord {
	h := e.state.PushRecords()
	if len(h) == 0 {
		return nil
	}
	return &h[len(h)-1]
}

// GetResets returns how many times the puzzle was reset
func (e *GameEngine) GetResets() int {
	return e.resets
}

// PlaceWorker moves the worker to c without counting a step. Used when
// restoring a saved session.
func (e *GameEngine) PlaceWorker(c hex.Coord) error {
	return e.state.SetWorker(e.state.Grid().Index(c))
}

// SetSteps overrides the step counter of a restored session
func (e *GameEngine) SetSteps(n int) {
	e.state.SetSteps(n)
}

// SetResets overrides the reset counter of a restored session
func (e *GameEngine) SetResets(n int) {
	e.resets = n
}

// GetMessage returns the message describing the last action
func (e *GameEngine) GetMessage() string {
	return e.message
}

// BulkMoveResult reports the outcome of one move in a bulk request.
type BulkMoveResult struct {
	Direction string `json:"direction"`
	Success   bool   `json:"success"`
	Error     string `json:"error,omitempty"`
}

// BulkMove executes moves in sequence, stopping at the first failure or once
// the puzzle is solved.
func (e *GameEngine) BulkMove(moves []string) []BulkMoveResult {
	results := make([]BulkMoveResult, 0, len(moves))

	for _, direction := range moves {
		if e.IsSolved() {
			break
		}

		r := BulkMoveResult{Direction: direction, Success: true}
		if err := e.Move(direction); err != nil {
			r.Success = false
			r.Error = err.Error()
			results = append(results, r)
			break
		}
		results = append(results, r)
	}

	return results
}
