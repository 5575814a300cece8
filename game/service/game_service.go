package service

import (
	"context"
	"time"

	"github.com/wricardo/hexoban/game/engine"
	"github.com/wricardo/hexoban/game/hex"
)

// GameService defines all game-related operations
type GameService interface {
	// Session Management
	CreateSession(ctx context.Context, puzzleID string) (*SessionInfo, error)
	GetSession(ctx context.Context, sessionID string) (*SessionInfo, error)
	ListSessions(ctx context.Context) ([]*SessionInfo, error)
	DeleteSession(ctx context.Context, sessionID string) error

	// Game Operations
	Move(ctx context.Context, sessionID, direction string, reset bool) (*MoveResult, error)
	BulkMove(ctx context.Context, sessionID string, moves []string, reset bool) (*BulkMoveResult, error)
	PushCrate(ctx context.Context, sessionID string, crate hex.Coord, direction string) (*MoveResult, error)
	Reset(ctx context.Context, sessionID string) (*engine.StateView, error)

	// Game State
	GetGameState(ctx context.Context, sessionID string) (*engine.StateView, error)
	GetPushHistory(ctx context.Context, sessionID string, opts HistoryOptions) (*HistoryResponse, error)

	// Puzzles
	ListPuzzles(ctx context.Context) ([]*PuzzleInfo, error)
	LoadPuzzle(ctx context.Context, puzzleID string) (*engine.Definition, error)
	SavePuzzle(ctx context.Context, def *engine.Definition) error
}

// SessionManager defines session storage operations
type SessionManager interface {
	Create(id string, def *engine.Definition) (*Session, error)
	Get(id string) (*Session, error)
	GetOrCreate(id string, def *engine.Definition) (*Session, error)
	List() []*Session
	Delete(id string) error
	UpdateLastAccessed(id string) error
	Save(id string) error
}

// PuzzleManager handles puzzle loading
type PuzzleManager interface {
	LoadPuzzle(id string) (*engine.Definition, error)
	ListPuzzles() ([]*PuzzleInfo, error)
	GetDefault() *engine.Definition
	SavePuzzle(def *engine.Definition) error
}

// Session represents an active game session
type Session struct {
	ID             string
	Engine         *engine.GameEngine
	Puzzle         *engine.Definition
	CreatedAt      time.Time
	LastAccessedAt time.Time
}
