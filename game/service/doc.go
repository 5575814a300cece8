// Package service is the business layer between the transports (HTTP,
// WebSocket, MCP) and the Hexoban engine.
//
// GameService exposes session lifecycle, moves, crate pushes, resets, paged
// push history and the puzzle library. It depends on two interfaces:
// SessionManager for session storage and PuzzleManager for puzzle lookup.
// Each session owns an independent engine.GameEngine.
//
// Move and BulkMove results carry a compact per-step trace, the events the
// step produced, the cell a failed move tried to enter and a text board of
// the current state.
//
// Usage:
//
//	sessions := session.NewManager()
//	library, err := levels.NewManager("levels")
//	svc := service.NewGameService(sessions, library)
//
//	info, err := svc.CreateSession(ctx, "first-steps")
//	result, err := svc.Move(ctx, info.ID, "right", false)
//
// Bulk moves stop at the first failed move or once the puzzle is solved,
// and are capped at engine.MaxBulkMoves.
package service
