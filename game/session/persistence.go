package session

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/wricardo/hexoban/game/engine"
	"github.com/wricardo/hexoban/game/hex"
	"github.com/wricardo/hexoban/game/service"
)

// SessionPersistence defines the interface for persisting sessions
type SessionPersistence interface {
	// Save persists a session to storage
	Save(session *service.Session) error

	// Load retrieves a session from storage by ID
	Load(id string) (*service.Session, error)

	// Delete removes a session from storage
	Delete(id string) error

	// ListAll returns all persisted session IDs
	ListAll() ([]string, error)

	// Exists checks if a session exists in storage
	Exists(id string) bool
}

// PersistedSessionData is the stored form of a session. The board is not
// stored; it is rebuilt by replaying Pushes against the puzzle.
type PersistedSessionData struct {
	ID             string              `json:"id"`
	PuzzleID       string              `json:"puzzle_id"`
	CreatedAt      time.Time           `json:"created_at"`
	LastAccessedAt time.Time           `json:"last_accessed_at"`
	Resets         int                 `json:"resets,omitempty"`
	Steps          int                 `json:"steps,omitempty"`
	Pushes         []engine.PushRecord `json:"pushes"`
	Worker         *hex.Coord          `json:"worker,omitempty"`
}

func encodeSession(session *service.Session) ([]byte, error) {
	if session == nil {
		return nil, fmt.Errorf("session cannot be nil")
	}

	data := PersistedSessionData{
		ID:             session.ID,
		PuzzleID:       session.Puzzle.ID,
		CreatedAt:      session.CreatedAt,
		LastAccessedAt: session.LastAccessedAt,
		Resets:         session.Engine.GetResets(),
		Steps:          session.Engine.GetState().Steps(),
		Pushes:         session.Engine.GetPushHistory(),
	}
	if pos, ok := session.Engine.GetWorkerPosition(); ok {
		data.Worker = &pos
	}
	if data.Pushes == nil {
		data.Pushes = []engine.PushRecord{}
	}

	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal session data: %w", err)
	}
	return jsonData, nil
}

func decodeSession(jsonData []byte, puzzles service.PuzzleManager) (*service.Session, error) {
	var data PersistedSessionData
	if err := json.Unmarshal(jsonData, &data); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session data: %w", err)
	}

	def, err := puzzles.LoadPuzzle(data.PuzzleID)
	if err != nil {
		return nil, fmt.Errorf("failed to load puzzle '%s': %w", data.PuzzleID, err)
	}

	eng, err := engine.RestoreEngine(def, data.Pushes)
	if err != nil {
		return nil, fmt.Errorf("failed to replay session %s: %w", data.ID, err)
	}
	if data.Worker != nil {
		if err := eng.PlaceWorker(*data.Worker); err != nil {
			return nil, fmt.Errorf("failed to place worker at %v: %w", *data.Worker, err)
		}
	}
	eng.SetResets(data.Resets)
	eng.SetSteps(data.Steps)

	return &service.Session{
		ID:             data.ID,
		Engine:         eng,
		Puzzle:         def,
		CreatedAt:      data.CreatedAt,
		LastAccessedAt: data.LastAccessedAt,
	}, nil
}
