// Package mcp exposes Hexoban to AI agents over the Model Context Protocol.
//
// The Client registers MCP tools and answers each one by calling the REST
// API, so an agent plays the same sessions that browsers watch over the
// WebSocket hub.
//
// MCP Tools:
//   - create_session, list_sessions, get_session
//   - game_state: header plus the text board
//   - move, bulk_move: step the worker in one of the six directions
//   - push_crate: push a crate by coordinate
//   - reset_game, push_history
//   - list_puzzles, show_puzzle
//   - game_instructions
//
// Tool arguments are coerced with spf13/cast, so numbers sent as strings
// and booleans sent as "true" are accepted.
//
// Usage:
//
//	client := mcp.NewClient("http://localhost:8080")
//	server.ServeStdio(client.GetMCPServer())
package mcp
