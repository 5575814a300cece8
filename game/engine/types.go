package engine

import "github.com/wricardo/hexoban/game/hex"

const (
	// Validation constants
	MaxTerrain    = 4096
	MaxDifficulty = 10
	MaxBulkMoves  = 50
)

// Definition is the durable description of a puzzle: its metadata, the set of
// terrain cells, and the initial placement of goals, crates and the worker.
type Definition struct {
	ID         string      `json:"id"`
	Name       string      `json:"name"`
	Author     string      `json:"author"`
	Source     string      `json:"source"`
	Difficulty int         `json:"difficulty,omitempty"`
	Terrain    []hex.Coord `json:"terrain"`
	Init       Init        `json:"init"`
}

// Init holds the starting placement. All goals and crates need to be on
// coordinates where terrain exists.
type Init struct {
	Goals  []hex.Coord `json:"goals"`
	Crates []hex.Coord `json:"crates"`

	// Worker defaults to (0, 0) when omitted.
	Worker *hex.Coord `json:"worker,omitempty"`
}

// WorkerStart returns the worker's starting coordinate.
func (i Init) WorkerStart() hex.Coord {
	if i.Worker == nil {
		return hex.Coord{}
	}
	return *i.Worker
}

// Push is a committed crate push. Crate is the cell index the crate occupied
// before the push.
type Push struct {
	Crate     hex.Index
	Direction hex.Direction
}

// PushRecord is the portable form of a Push, naming the crate by the
// coordinate it was pushed from.
type PushRecord struct {
	From      hex.Coord     `json:"from"`
	Direction hex.Direction `json:"direction"`
}

// Cell is a registered terrain cell as exposed to renderers.
type Cell struct {
	Index hex.Index `json:"index"`
	Coord hex.Coord `json:"coord"`
}

// StateView is a read-only snapshot of a puzzle state for transports and
// renderers.
type StateView struct {
	PuzzleID    string       `json:"puzzle_id"`
	PuzzleName  string       `json:"puzzle_name"`
	Cells       []Cell       `json:"cells"`
	Goals       []hex.Index  `json:"goals"`
	Crates      []hex.Index  `json:"crates"`
	Worker      hex.Index    `json:"worker"`
	WorkerCoord *hex.Coord   `json:"worker_coord,omitempty"`
	Pushes      []PushRecord `json:"pushes"`
	PushCount   int          `json:"push_count"`
	StepCount   int          `json:"step_count"`
	Solved      bool         `json:"solved"`
	Message     string       `json:"message"`
}

// CoordOf resolves an index through the snapshot's cell list.
func (v *StateView) CoordOf(k hex.Index) (hex.Coord, bool) {
	for _, c := range v.Cells {
		if c.Index == k {
			return c.Coord, true
		}
	}
	return hex.Coord{}, false
}

// DefinitionStats summarizes a definition.
type DefinitionStats struct {
	Cells        int `json:"cells"`
	Walls        int `json:"walls"`
	Goals        int `json:"goals"`
	Crates       int `json:"crates"`
	CratesOnGoal int `json:"crates_on_goal"`
	Spread       int `json:"spread"`
}
