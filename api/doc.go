// Package api provides the HTTP REST API for Hexoban.
//
// Endpoints:
//
// Session Management:
//   - POST /api/sessions - Create new session ({"puzzle_id": "..."}, empty for the default puzzle)
//   - GET /api/sessions - List sessions (?sort=created|accessed&order=asc|desc&limit=N)
//   - GET /api/sessions/unified - Several sessions at once (?sessionIds=a,b or ?puzzleId=x)
//   - GET /api/sessions/{id} - Get specific session
//   - DELETE /api/sessions/{id} - Delete session
//
// Game Operations:
//   - GET /api/sessions/{id}/state - Current state
//   - POST /api/sessions/{id}/move - Walk or push one step ({"direction": "forward", "reset": false})
//   - POST /api/sessions/{id}/bulk-move - Several steps ({"moves": ["up", "right"]})
//   - POST /api/sessions/{id}/push - Push a named crate ({"crate": [i, j], "direction": "left"})
//   - POST /api/sessions/{id}/reset - Restore the starting placement
//   - GET /api/sessions/{id}/history - Push history (?page=1&limit=20&order=desc)
//
// Puzzles:
//   - GET /api/puzzles - List stored puzzles (?collection=name)
//   - GET /api/puzzles/{id} - Definition as JSON, or the text board with ?format=text
//   - POST /api/puzzles - Store a definition; text/plain bodies are parsed as a text board
//   - GET /api/schema - JSON Schema of the definition record
//
// Other:
//   - GET /health
//   - GET /ws?session={id} - WebSocket state updates
//
// Directions are the six hex neighbors: up, backward, left, down, forward
// and right. Coordinates are axial [i, j] arrays.
//
// Errors are returned as JSON with an HTTP status derived from the
// underlying error:
//
//	{"error": "session not found"}
//
// A move that is blocked is not an error: the response has success=false
// and attempted_to describes the cell that could not be entered.
package api
