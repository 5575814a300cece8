package service

import (
	"time"

	"github.com/wricardo/hexoban/game/engine"
	"github.com/wricardo/hexoban/game/hex"
)

// SessionInfo provides information about a game session
type SessionInfo struct {
	ID             string             `json:"id"`
	PuzzleID       string             `json:"puzzle_id"`
	PuzzleName     string             `json:"puzzle_name"`
	CreatedAt      time.Time          `json:"created_at"`
	LastAccessedAt time.Time          `json:"last_accessed_at"`
	Resets         int                `json:"resets"`
	State          *engine.StateView  `json:"state"`
	Puzzle         *engine.Definition `json:"puzzle,omitempty"`
}

// MoveResult contains the result of a move or push operation
type MoveResult struct {
	Success     bool              `json:"success"`
	Pushed      bool              `json:"pushed"`
	State       *engine.StateView `json:"state"`
	Message     string            `json:"message"`
	Events      []GameEvent       `json:"events,omitempty"`
	Step        *StepInfo         `json:"step,omitempty"`
	AttemptedTo *AttemptInfo      `json:"attempted_to,omitempty"`
	Board       string            `json:"board,omitempty"`
}

// BulkMoveResult contains the result of multiple moves
type BulkMoveResult struct {
	// Summary
	MovesExecuted  int               `json:"moves_executed"`
	RequestedMoves int               `json:"requested_moves"`
	PushesMade     int               `json:"pushes_made"`
	Success        bool              `json:"success"`
	State          *engine.StateView `json:"state"`
	Events         []GameEvent       `json:"events"`
	StoppedReason  string            `json:"stopped_reason,omitempty"`   // Human-readable reason
	StopReasonCode string            `json:"stop_reason_code,omitempty"` // invalid_direction|off_terrain|blocked_crate|no_worker|solved
	StoppedOnMove  int               `json:"stopped_on_move,omitempty"`  // 1-based index of the move that caused stop
	Truncated      bool              `json:"truncated,omitempty"`
	Limit          int               `json:"limit,omitempty"`

	// Start/end snapshot
	StartPos *hex.Coord `json:"start_pos,omitempty"`
	EndPos   *hex.Coord `json:"end_pos,omitempty"`

	// Per-step compact trace (only for this call)
	Steps []StepInfo `json:"steps,omitempty"`

	// Failure diagnostics
	AttemptedTo *AttemptInfo `json:"attempted_to,omitempty"`

	// Final status aids
	Solved        bool     `json:"solved"`
	Message       string   `json:"message,omitempty"`
	PossibleMoves []string `json:"possible_moves,omitempty"`
	Board         string   `json:"board,omitempty"`
}

// StepInfo is a compact record for each executed move
type StepInfo struct {
	Idx     int        `json:"idx"`
	Dir     string     `json:"dir"`
	From    hex.Coord  `json:"from"`
	To      hex.Coord  `json:"to"`
	Pushed  bool       `json:"pushed,omitempty"`
	CrateTo *hex.Coord `json:"crate_to,omitempty"`
	Success bool       `json:"success"`
	Solved  bool       `json:"solved,omitempty"`
}

// AttemptInfo details the cell a failed move tried to enter
type AttemptInfo struct {
	Coord   hex.Coord `json:"coord"`
	Terrain bool      `json:"terrain"`
	Crate   bool      `json:"crate"`
	Reason  string    `json:"reason"`
}

// GameEvent represents an event that occurred during gameplay
type GameEvent struct {
	Type      string     `json:"type"` // "move", "push", "solved", "reset"
	Message   string     `json:"message"`
	Timestamp time.Time  `json:"timestamp"`
	Position  *hex.Coord `json:"position,omitempty"`
}

// HistoryOptions configures push history retrieval
type HistoryOptions struct {
	Page  int    `json:"page"`
	Limit int    `json:"limit"`
	Order string `json:"order"` // "asc" or "desc"
}

// HistoryResponse contains paginated push history
type HistoryResponse struct {
	Pushes      []engine.PushRecord `json:"pushes"`
	TotalPushes int                 `json:"total_pushes"`
	Page        int                 `json:"page"`
	PageSize    int                 `json:"page_size"`
	TotalPages  int                 `json:"total_pages"`
	HasNext     bool                `json:"has_next"`
	HasPrevious bool                `json:"has_previous"`
}

// PuzzleInfo provides information about a stored puzzle
type PuzzleInfo struct {
	ID         string `json:"id"` // The identifier to use for session creation
	Filename   string `json:"filename"`
	Collection string `json:"collection,omitempty"`
	Name       string `json:"name"`
	Author     string `json:"author,omitempty"`
	Source     string `json:"source,omitempty"`
	Difficulty int    `json:"difficulty,omitempty"`
	Cells      int    `json:"cells"`
	Crates     int    `json:"crates"`
}
