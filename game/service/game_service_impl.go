package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/wricardo/hexoban/game/engine"
	"github.com/wricardo/hexoban/game/hex"
	"github.com/wricardo/hexoban/game/textfmt"
)

var (
	ErrPuzzleNotFound = errors.New("puzzle not found")
	ErrInvalidPuzzle  = errors.New("invalid puzzle")
)

// gameServiceImpl implements the GameService interface
type gameServiceImpl struct {
	sessions SessionManager
	puzzles  PuzzleManager
	mu       sync.RWMutex
}

// NewGameService creates a new game service instance
func NewGameService(sessions SessionManager, puzzles PuzzleManager) GameService {
	return &gameServiceImpl{
		sessions: sessions,
		puzzles:  puzzles,
	}
}

func sessionInfo(sess *Session) *SessionInfo {
	return &SessionInfo{
		ID:             sess.ID,
		PuzzleID:       sess.Puzzle.ID,
		PuzzleName:     sess.Puzzle.Name,
		CreatedAt:      sess.CreatedAt,
		LastAccessedAt: sess.LastAccessedAt,
		Resets:         sess.Engine.GetResets(),
		State:          sess.Engine.Snapshot(),
		Puzzle:         sess.Puzzle,
	}
}

// CreateSession creates a new game session
func (s *gameServiceImpl) CreateSession(ctx context.Context, puzzleID string) (*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var def *engine.Definition
	if puzzleID != "" {
		var err error
		def, err = s.puzzles.LoadPuzzle(puzzleID)
		if err != nil {
			// Provide helpful error message with available options
			if errors.Is(err, ErrPuzzleNotFound) {
				available, listErr := s.puzzles.ListPuzzles()
				if listErr == nil && len(available) > 0 {
					var ids []string
					for _, p := range available {
						ids = append(ids, p.ID)
					}
					return nil, fmt.Errorf("puzzle '%s' not found. Available puzzles: %v: %w", puzzleID, ids, err)
				}
				return nil, fmt.Errorf("puzzle '%s' not found. Use /api/puzzles to list available puzzles: %w", puzzleID, err)
			}
			return nil, fmt.Errorf("failed to load puzzle %s: %w", puzzleID, err)
		}
	} else {
		def = s.puzzles.GetDefault()
	}

	// Let session manager generate a proper 4-character ID
	sess, err := s.sessions.Create("", def)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return sessionInfo(sess), nil
}

// GetSession retrieves session information and marks it accessed
func (s *gameServiceImpl) GetSession(ctx context.Context, sessionID string) (*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(sessionID)
	return sessionInfo(sess), nil
}

// ListSessions returns all active sessions
func (s *gameServiceImpl) ListSessions(ctx context.Context) ([]*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sessions := s.sessions.List()
	result := make([]*SessionInfo, 0, len(sessions))
	for _, sess := range sessions {
		result = append(result, sessionInfo(sess))
	}

	return result, nil
}

// DeleteSession removes a session
func (s *gameServiceImpl) DeleteSession(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.sessions.Delete(sessionID)
}

// Move walks or pushes once for a session
func (s *gameServiceImpl) Move(ctx context.Context, sessionID, direction string, reset bool) (*MoveResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}
	s.sessions.UpdateLastAccessed(sessionID)

	events := []GameEvent{}
	if reset {
		sess.Engine.Reset()
		events = append(events, resetEvent())
	}

	from, _ := sess.Engine.GetWorkerPosition()
	pushesBefore := len(sess.Engine.GetPushHistory())
	moveErr := sess.Engine.Move(direction)

	view := sess.Engine.Snapshot()
	result := &MoveResult{
		Success: moveErr == nil,
		State:   view,
		Message: view.Message,
		Events:  events,
		Board:   board(sess),
	}

	if moveErr == nil {
		step := buildStep(sess, 1, direction, from, pushesBefore)
		result.Pushed = step.Pushed
		result.Step = &step
		result.Events = append(result.Events, stepEvents(step)...)
	} else {
		result.AttemptedTo = attemptFor(sess, from, direction, moveErr)
	}

	// Auto-save session after move
	if err := s.sessions.Save(sessionID); err != nil {
		log.Printf("Warning: Failed to persist session %s after move: %v", sessionID, err)
	}

	return result, nil
}

// BulkMove executes moves in sequence until one fails or the puzzle is solved
func (s *gameServiceImpl) BulkMove(ctx context.Context, sessionID string, moves []string, reset bool) (*BulkMoveResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}
	s.sessions.UpdateLastAccessed(sessionID)

	result := &BulkMoveResult{
		RequestedMoves: len(moves),
		Events:         make([]GameEvent, 0),
		Success:        true,
	}

	if reset {
		sess.Engine.Reset()
		result.Events = append(result.Events, resetEvent())
	}
	if start, ok := sess.Engine.GetWorkerPosition(); ok {
		result.StartPos = &start
	}

	// Limit moves to prevent abuse
	if len(moves) > engine.MaxBulkMoves {
		result.Truncated = true
		result.Limit = engine.MaxBulkMoves
		moves = moves[:engine.MaxBulkMoves]
	}

	for i, move := range moves {
		if sess.Engine.IsSolved() {
			result.StoppedReason = "puzzle already solved"
			result.StopReasonCode = "solved"
			result.StoppedOnMove = i + 1
			break
		}

		from, _ := sess.Engine.GetWorkerPosition()
		pushesBefore := len(sess.Engine.GetPushHistory())
		if err := sess.Engine.Move(move); err != nil {
			result.Success = false
			result.StoppedReason = fmt.Sprintf("move %d blocked: %s: %v", i+1, move, err)
			result.StopReasonCode = reasonCode(err)
			result.StoppedOnMove = i + 1
			result.AttemptedTo = attemptFor(sess, from, move, err)
			break
		}

		result.MovesExecuted++
		step := buildStep(sess, i+1, move, from, pushesBefore)
		if step.Pushed {
			result.PushesMade++
		}
		result.Steps = append(result.Steps, step)
		result.Events = append(result.Events, stepEvents(step)...)
	}

	view := sess.Engine.Snapshot()
	result.State = view
	result.Solved = view.Solved
	result.Message = view.Message
	result.EndPos = view.WorkerCoord
	if result.Solved && result.StopReasonCode == "" {
		result.StopReasonCode = "solved"
	}
	result.PossibleMoves = sess.Engine.GetPossibleMoves()
	result.Board = board(sess)

	// Auto-save session after bulk moves
	if err := s.sessions.Save(sessionID); err != nil {
		log.Printf("Warning: Failed to persist session %s after bulk moves: %v", sessionID, err)
	}

	return result, nil
}

// PushCrate pushes a crate named by its coordinate
func (s *gameServiceImpl) PushCrate(ctx context.Context, sessionID string, crate hex.Coord, direction string) (*MoveResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}
	s.sessions.UpdateLastAccessed(sessionID)

	from, _ := sess.Engine.GetWorkerPosition()
	pushErr := sess.Engine.PushCrate(crate, direction)

	view := sess.Engine.Snapshot()
	result := &MoveResult{
		Success: pushErr == nil,
		Pushed:  pushErr == nil,
		State:   view,
		Message: view.Message,
		Events:  []GameEvent{},
		Board:   board(sess),
	}

	if pushErr == nil {
		d, _ := hex.ParseDirection(direction)
		dest := crate.Step(d)
		step := StepInfo{
			Idx:     1,
			Dir:     d.String(),
			From:    from,
			To:      crate,
			Pushed:  true,
			CrateTo: &dest,
			Success: true,
			Solved:  view.Solved,
		}
		result.Step = &step
		result.Events = append(result.Events, stepEvents(step)...)
	} else {
		state := sess.Engine.GetState()
		k := state.Grid().Index(crate)
		result.AttemptedTo = &AttemptInfo{
			Coord:   crate,
			Terrain: k != hex.None,
			Crate:   state.HasCrate(k),
			Reason:  reasonCode(pushErr),
		}
	}

	if err := s.sessions.Save(sessionID); err != nil {
		log.Printf("Warning: Failed to persist session %s after push: %v", sessionID, err)
	}

	return result, nil
}

// Reset resets a game session to the puzzle's initial placement
func (s *gameServiceImpl) Reset(ctx context.Context, sessionID string) (*engine.StateView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(sessionID)
	view := sess.Engine.Reset()

	// Auto-save session after reset
	if err := s.sessions.Save(sessionID); err != nil {
		log.Printf("Warning: Failed to persist session %s after reset: %v", sessionID, err)
	}

	return view, nil
}

// GetGameState retrieves the current game state
func (s *gameServiceImpl) GetGameState(ctx context.Context, sessionID string) (*engine.StateView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(sessionID)
	return sess.Engine.Snapshot(), nil
}

// GetPushHistory returns paginated push history
func (s *gameServiceImpl) GetPushHistory(ctx context.Context, sessionID string, opts HistoryOptions) (*HistoryResponse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	history := sess.Engine.GetPushHistory()
	total := len(history)

	// Apply defaults
	if opts.Page < 1 {
		opts.Page = 1
	}
	if opts.Limit <= 0 {
		opts.Limit = 20
	}
	if opts.Limit > 100 {
		opts.Limit = 100
	}
	if opts.Order == "" {
		opts.Order = "desc"
	}

	totalPages := (total + opts.Limit - 1) / opts.Limit
	if totalPages == 0 {
		totalPages = 1
	}

	start := (opts.Page - 1) * opts.Limit
	end := start + opts.Limit
	if end > total {
		end = total
	}

	pushes := []engine.PushRecord{}
	if start < total {
		if opts.Order == "desc" {
			// Most recent first
			for i := total - 1 - start; i >= total-end; i-- {
				pushes = append(pushes, history[i])
			}
		} else {
			pushes = append(pushes, history[start:end]...)
		}
	}

	return &HistoryResponse{
		Pushes:      pushes,
		TotalPushes: total,
		Page:        opts.Page,
		PageSize:    opts.Limit,
		TotalPages:  totalPages,
		HasNext:     opts.Page < totalPages,
		HasPrevious: opts.Page > 1,
	}, nil
}

// ListPuzzles returns available puzzles
func (s *gameServiceImpl) ListPuzzles(ctx context.Context) ([]*PuzzleInfo, error) {
	return s.puzzles.ListPuzzles()
}

// LoadPuzzle loads a specific puzzle
func (s *gameServiceImpl) LoadPuzzle(ctx context.Context, puzzleID string) (*engine.Definition, error) {
	return s.puzzles.LoadPuzzle(puzzleID)
}

// SavePuzzle validates and stores a puzzle
func (s *gameServiceImpl) SavePuzzle(ctx context.Context, def *engine.Definition) error {
	if err := engine.ValidateDefinition(def); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPuzzle, err)
	}
	return s.puzzles.SavePuzzle(def)
}

func resetEvent() GameEvent {
	return GameEvent{
		Type:      "reset",
		Message:   "Puzzle reset to initial placement",
		Timestamp: time.Now(),
	}
}

// buildStep describes a move that already succeeded.
func buildStep(sess *Session, idx int, direction string, from hex.Coord, pushesBefore int) StepInfo {
	d, _ := hex.ParseDirection(direction)
	to, _ := sess.Engine.GetWorkerPosition()
	step := StepInfo{
		Idx:     idx,
		Dir:     d.String(),
		From:    from,
		To:      to,
		Success: true,
		Solved:  sess.Engine.IsSolved(),
	}
	if len(sess.Engine.GetPushHistory()) > pushesBefore {
		crate := to.Step(d)
		step.Pushed = true
		step.CrateTo = &crate
	}
	return step
}

func stepEvents(step StepInfo) []GameEvent {
	now := time.Now()
	to := step.To
	events := []GameEvent{{
		Type:      "move",
		Message:   fmt.Sprintf("Moved %s to %v", step.Dir, step.To),
		Timestamp: now,
		Position:  &to,
	}}
	if step.Pushed {
		events = append(events, GameEvent{
			Type:      "push",
			Message:   fmt.Sprintf("Crate pushed %s to %v", step.Dir, *step.CrateTo),
			Timestamp: now,
			Position:  step.CrateTo,
		})
	}
	if step.Solved {
		events = append(events, GameEvent{
			Type:      "solved",
			Message:   "Every crate is on a goal!",
			Timestamp: now,
		})
	}
	return events
}

func attemptFor(sess *Session, from hex.Coord, direction string, err error) *AttemptInfo {
	d, perr := hex.ParseDirection(direction)
	if perr != nil {
		return &AttemptInfo{Coord: from, Reason: reasonCode(err)}
	}
	target := from.Step(d)
	state := sess.Engine.GetState()
	k := state.Grid().Index(target)
	return &AttemptInfo{
		Coord:   target,
		Terrain: k != hex.None,
		Crate:   state.HasCrate(k),
		Reason:  reasonCode(err),
	}
}

// reasonCode maps engine errors to machine-friendly stop codes.
func reasonCode(err error) string {
	switch {
	case errors.Is(err, engine.ErrInvalidDirection):
		return "invalid_direction"
	case errors.Is(err, engine.ErrNoWorker):
		return "no_worker"
	case errors.Is(err, engine.ErrOffTerrain):
		return "off_terrain"
	case errors.Is(err, engine.ErrBlocked):
		return "blocked_crate"
	case errors.Is(err, engine.ErrNoCrate):
		return "no_crate"
	case errors.Is(err, engine.ErrNoFooting):
		return "no_footing"
	default:
		return "error"
	}
}

func board(sess *Session) string {
	return string(textfmt.FormatState(sess.Engine.GetState()))
}
