package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cast"

	"github.com/wricardo/hexoban/game/engine"
	"github.com/wricardo/hexoban/game/hex"
	"github.com/wricardo/hexoban/game/service"
	"github.com/wricardo/hexoban/game/textfmt"
)

// Client is a thin MCP client that proxies to the REST API
type Client struct {
	baseURL    string
	httpClient *http.Client
	mcpServer  *server.MCPServer
}

// NewClient creates a new MCP client that calls the REST API
func NewClient(baseURL string) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}

	c.initMCPServer()
	return c
}

var directionNames = func() []string {
	names := make([]string, 0, hex.NumDirections)
	for _, d := range hex.Directions {
		names = append(names, d.String())
	}
	return names
}()

func (c *Client) initMCPServer() {
	c.mcpServer = server.NewMCPServer(
		"Hexoban",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(`Hexoban - MCP Interface

This is a thin client that proxies all requests to the REST API server.

GAME OBJECTIVE:
Push every crate ($) onto a goal (.) on a hexagonal board. The worker (@)
walks to any of six neighbors and pushes a crate by walking into it.

AVAILABLE TOOLS:
- create_session: Start a session on a puzzle
- list_sessions / get_session: Inspect sessions
- game_state: Current board
- move: One step (up/backward/left/down/forward/right) - requires intent explanation
- bulk_move: Several steps at once - requires intent explanation
- push_crate: Push a named crate from wherever the worker stands
- reset_game: Restore the starting placement
- push_history: Pushes made so far
- list_puzzles / show_puzzle: Browse the puzzle library
- game_instructions: Rules and board legend

NOTE: The 'intent' parameter on move/bulk_move tools serves as rubber duck debugging - explain your reasoning!`),
	)

	c.registerTools()
}

func sessionProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Session ID",
	}
}

func (c *Client) registerTools() {
	// Session management
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "create_session",
		Description: "Create a new game session, optionally on a specific puzzle",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"puzzle_id": map[string]interface{}{
					"type":        "string",
					"description": "Puzzle to play (optional, see list_puzzles)",
				},
			},
		},
	}, c.handleCreateSession)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_sessions",
		Description: "List all active game sessions",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListSessions)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "get_session",
		Description: "Get details of a specific session",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{"session_id": sessionProperty()},
			Required:   []string{"session_id"},
		},
	}, c.handleGetSession)

	// Game operations
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "game_state",
		Description: "Get the current board of a session",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{"session_id": sessionProperty()},
			Required:   []string{"session_id"},
		},
	}, c.handleGameState)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "move",
		Description: "Move the worker one cell, pushing a crate if one is in the way",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionProperty(),
				"direction": map[string]interface{}{
					"type":        "string",
					"enum":        directionNames,
					"description": "Direction to move",
				},
				"intent": map[string]interface{}{
					"type":        "string",
					"description": "Brief explanation of the intent behind this move (serves as a rubber duck to help explain your reasoning)",
				},
				"reset": map[string]interface{}{
					"type":        "boolean",
					"description": "Reset before moving",
				},
			},
			Required: []string{"session_id", "direction"},
		},
	}, c.handleMove)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "bulk_move",
		Description: "Execute multiple moves in sequence, stopping at the first one that fails",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionProperty(),
				"moves": map[string]interface{}{
					"type": "array",
					"items": map[string]interface{}{
						"type": "string",
						"enum": directionNames,
					},
					"description": "Array of moves",
				},
				"intent": map[string]interface{}{
					"type":        "string",
					"description": "Brief explanation of the intent behind this sequence of moves (serves as a rubber duck to help explain your reasoning)",
				},
				"reset": map[string]interface{}{
					"type":        "boolean",
					"description": "Reset before moving",
				},
			},
			Required: []string{"session_id", "moves"},
		},
	}, c.handleBulkMove)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "push_crate",
		Description: "Push the crate at a coordinate one cell in a direction. The worker ends up where the crate was.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionProperty(),
				"crate": map[string]interface{}{
					"type":        "array",
					"items":       map[string]interface{}{"type": "integer"},
					"minItems":    2,
					"maxItems":    2,
					"description": "Crate coordinate [i, j]",
				},
				"direction": map[string]interface{}{
					"type":        "string",
					"enum":        directionNames,
					"description": "Direction to push",
				},
			},
			Required: []string{"session_id", "crate", "direction"},
		},
	}, c.handlePushCrate)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "reset_game",
		Description: "Reset the puzzle to its starting placement",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{"session_id": sessionProperty()},
			Required:   []string{"session_id"},
		},
	}, c.handleReset)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "push_history",
		Description: "Get the push history for a session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionProperty(),
				"page": map[string]interface{}{
					"type":        "integer",
					"description": "Page number",
				},
				"limit": map[string]interface{}{
					"type":        "integer",
					"description": "Items per page",
				},
				"order": map[string]interface{}{
					"type":        "string",
					"enum":        []string{"asc", "desc"},
					"description": "Oldest or newest first",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handlePushHistory)

	// Puzzles
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_puzzles",
		Description: "List available puzzles",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"collection": map[string]interface{}{
					"type":        "string",
					"description": "Only list puzzles of this collection (optional)",
				},
			},
		},
	}, c.handleListPuzzles)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "show_puzzle",
		Description: "Show the starting board of a puzzle",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"puzzle_id": map[string]interface{}{
					"type":        "string",
					"description": "Puzzle ID",
				},
			},
			Required: []string{"puzzle_id"},
		},
	}, c.handleShowPuzzle)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "game_instructions",
		Description: "Get game instructions, rules and the board legend",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleGameInstructions)
}

// GetMCPServer returns the underlying MCP server for serving
func (c *Client) GetMCPServer() *server.MCPServer {
	return c.mcpServer
}

// Helper methods for API calls

func (c *Client) do(ctx context.Context, method, path string, body interface{}) (*http.Response, error) {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reqBody = bytes.NewBuffer(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode >= 400 {
		defer resp.Body.Close()
		var errResp map[string]string
		json.NewDecoder(resp.Body).Decode(&errResp)
		if msg, ok := errResp["error"]; ok {
			return nil, fmt.Errorf("%s", msg)
		}
		return nil, fmt.Errorf("API error: %d", resp.StatusCode)
	}
	return resp, nil
}

func (c *Client) apiCall(ctx context.Context, method, path string, body interface{}, result interface{}) error {
	resp, err := c.do(ctx, method, path, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if result != nil {
		return json.NewDecoder(resp.Body).Decode(result)
	}
	return nil
}

func (c *Client) apiText(ctx context.Context, path string) (string, error) {
	resp, err := c.do(ctx, "GET", path, nil)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	return string(data), err
}

func sessionPath(sessionID string, parts ...string) string {
	p := "/api/sessions/" + url.PathEscape(sessionID)
	for _, part := range parts {
		p += "/" + part
	}
	return p
}

// Tool handlers

func (c *Client) handleCreateSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	body := map[string]string{}
	if puzzleID := cast.ToString(args["puzzle_id"]); puzzleID != "" {
		body["puzzle_id"] = puzzleID
	}

	var session service.SessionInfo
	if err := c.apiCall(ctx, "POST", "/api/sessions", body, &session); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Created session: %s\n%s", session.ID, formatSessionInfo(&session))), nil
}

func (c *Client) handleListSessions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var response struct {
		Count    int                   `json:"count"`
		Sessions []service.SessionInfo `json:"sessions"`
	}

	if err := c.apiCall(ctx, "GET", "/api/sessions", nil, &response); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Active Sessions (%d):\n\n", response.Count)
	for _, s := range response.Sessions {
		solved := ""
		if s.State != nil && s.State.Solved {
			solved = " SOLVED"
		}
		fmt.Fprintf(&b, "- %s (Puzzle: %s, Created: %s)%s\n",
			s.ID, s.PuzzleID, s.CreatedAt.Format("15:04:05"), solved)
	}

	return mcp.NewToolResultText(b.String()), nil
}

func (c *Client) handleGetSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID := cast.ToString(request.GetArguments()["session_id"])

	var session service.SessionInfo
	if err := c.apiCall(ctx, "GET", sessionPath(sessionID), nil, &session); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatSessionInfo(&session)), nil
}

func (c *Client) handleGameState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID := cast.ToString(request.GetArguments()["session_id"])

	var state engine.StateView
	if err := c.apiCall(ctx, "GET", sessionPath(sessionID, "state"), nil, &state); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatState(&state, "")), nil
}

func (c *Client) handleMove(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	sessionID := cast.ToString(args["session_id"])

	// intent is only there for the caller's benefit
	body := map[string]interface{}{
		"direction": cast.ToString(args["direction"]),
		"reset":     cast.ToBool(args["reset"]),
	}

	var result service.MoveResult
	if err := c.apiCall(ctx, "POST", sessionPath(sessionID, "move"), body, &result); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatMoveResult(&result)), nil
}

func (c *Client) handleBulkMove(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	sessionID := cast.ToString(args["session_id"])

	var moves []string
	if s, ok := args["moves"].(string); ok {
		// "up,right,right"
		moves = strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ' ' })
	} else {
		moves = cast.ToStringSlice(args["moves"])
	}

	body := map[string]interface{}{
		"moves": moves,
		"reset": cast.ToBool(args["reset"]),
	}

	var result service.BulkMoveResult
	if err := c.apiCall(ctx, "POST", sessionPath(sessionID, "bulk-move"), body, &result); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatBulkMoveResult(sessionID, &result)), nil
}

func (c *Client) handlePushCrate(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	sessionID := cast.ToString(args["session_id"])

	pair, err := cast.ToIntSliceE(args["crate"])
	if err != nil || len(pair) != 2 {
		return mcp.NewToolResultError("crate must be a coordinate [i, j]"), nil
	}

	body := map[string]interface{}{
		"crate":     hex.C(pair[0], pair[1]),
		"direction": cast.ToString(args["direction"]),
	}

	var result service.MoveResult
	if err := c.apiCall(ctx, "POST", sessionPath(sessionID, "push"), body, &result); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatMoveResult(&result)), nil
}

func (c *Client) handleReset(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID := cast.ToString(request.GetArguments()["session_id"])

	var response struct {
		Message string            `json:"message"`
		State   *engine.StateView `json:"state"`
	}
	if err := c.apiCall(ctx, "POST", sessionPath(sessionID, "reset"), nil, &response); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("%s\n\n%s", response.Message, formatState(response.State, ""))), nil
}

func (c *Client) handlePushHistory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	sessionID := cast.ToString(args["session_id"])

	params := url.Values{}
	if page := cast.ToInt(args["page"]); page > 0 {
		params.Set("page", cast.ToString(page))
	}
	if limit := cast.ToInt(args["limit"]); limit > 0 {
		params.Set("limit", cast.ToString(limit))
	}
	if order := cast.ToString(args["order"]); order != "" {
		params.Set("order", order)
	}

	path := sessionPath(sessionID, "history")
	if len(params) > 0 {
		path += "?" + params.Encode()
	}

	var history service.HistoryResponse
	if err := c.apiCall(ctx, "GET", path, nil, &history); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatHistory(&history)), nil
}

func (c *Client) handleListPuzzles(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path := "/api/puzzles"
	if collection := cast.ToString(request.GetArguments()["collection"]); collection != "" {
		path += "?collection=" + url.QueryEscape(collection)
	}

	var puzzles []service.PuzzleInfo
	if err := c.apiCall(ctx, "GET", path, nil, &puzzles); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var b strings.Builder
	b.WriteString("Available Puzzles:\n\n")
	for _, p := range puzzles {
		name := p.Name
		if name == "" {
			name = p.ID
		}
		fmt.Fprintf(&b, "• %s (%s)\n  Cells: %d, Crates: %d", p.ID, name, p.Cells, p.Crates)
		if p.Collection != "" {
			fmt.Fprintf(&b, ", Collection: %s", p.Collection)
		}
		if p.Difficulty > 0 {
			fmt.Fprintf(&b, ", Difficulty: %d", p.Difficulty)
		}
		b.WriteString("\n\n")
	}

	return mcp.NewToolResultText(b.String()), nil
}

func (c *Client) handleShowPuzzle(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	puzzleID := cast.ToString(request.GetArguments()["puzzle_id"])
	if puzzleID == "" {
		return mcp.NewToolResultError("puzzle_id is required"), nil
	}

	board, err := c.apiText(ctx, "/api/puzzles/"+puzzleID+"?format=text")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Puzzle: %s\n\n%s", puzzleID, board)), nil
}

func (c *Client) handleGameInstructions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	instructions := `Hexoban - Instructions

GAME OBJECTIVE:
Push every crate onto a goal. The puzzle is solved when each goal holds a crate.

THE BOARD:
Cells are hexagons addressed by axial coordinates [i, j]. In the text board
every other column is shifted half a row, so each cell has six neighbors:

    up        [i-1, j  ]
    backward  [i-1, j-1]
    left      [i,   j-1]
    down      [i+1, j  ]
    forward   [i+1, j+1]
    right     [i,   j+1]

LEGEND:
• @ - Worker
• + - Worker standing on a goal
• $ - Crate
• * - Crate on a goal
• . - Goal
• - - Floor
• # - Wall (everything outside the terrain)

RULES:
• Moving into an empty floor cell just walks there.
• Moving into a crate pushes it one cell further in the same direction.
• A crate cannot be pushed off the terrain or into another crate.
• Crates can only be pushed, never pulled. A crate pushed into a corner may be stuck for good.
• push_crate pushes a crate directly; the worker is teleported onto the cell the crate left.

STRATEGY:
• Use reset_game when a crate is stuck rather than trying to recover.
• Use bulk_move for walks; it stops at the first blocked step and reports why.
• Check push_history to review what you changed since the last reset.`

	return mcp.NewToolResultText(instructions), nil
}

// Formatting helpers

func formatSessionInfo(session *service.SessionInfo) string {
	return fmt.Sprintf("Session: %s\nPuzzle: %s\nCreated: %s\nResets: %d\n\n%s",
		session.ID, session.PuzzleID,
		session.CreatedAt.Format("2006-01-02 15:04:05"),
		session.Resets,
		formatState(session.State, ""))
}

// boardOf renders a snapshot with the text level format.
func boardOf(state *engine.StateView) string {
	def := &engine.Definition{
		Terrain: make([]hex.Coord, 0, len(state.Cells)),
	}
	for _, c := range state.Cells {
		def.Terrain = append(def.Terrain, c.Coord)
	}
	for _, k := range state.Goals {
		if c, ok := state.CoordOf(k); ok {
			def.Init.Goals = append(def.Init.Goals, c)
		}
	}
	for _, k := range state.Crates {
		if c, ok := state.CoordOf(k); ok {
			def.Init.Crates = append(def.Init.Crates, c)
		}
	}
	def.Init.Worker = state.WorkerCoord
	return string(textfmt.Format(def))
}

func cratesOnGoals(state *engine.StateView) int {
	goals := make(map[hex.Index]bool, len(state.Goals))
	for _, k := range state.Goals {
		goals[k] = true
	}
	n := 0
	for _, k := range state.Crates {
		if goals[k] {
			n++
		}
	}
	return n
}

// formatState prints a header and the board. A non-empty board is used as
// given instead of being rendered from the snapshot.
func formatState(state *engine.StateView, board string) string {
	if state == nil {
		return "No game state available"
	}

	var b strings.Builder

	worker := "none"
	if state.WorkerCoord != nil {
		worker = state.WorkerCoord.String()
	}
	name := state.PuzzleName
	if name == "" {
		name = state.PuzzleID
	}
	fmt.Fprintf(&b, "Puzzle: %s | Worker: %s | Pushes: %d | Steps: %d | On goal: %d/%d\n\n",
		name, worker, state.PushCount, state.StepCount, cratesOnGoals(state), len(state.Goals))

	if board == "" {
		board = boardOf(state)
	}
	b.WriteString(board)
	if !strings.HasSuffix(board, "\n") {
		b.WriteString("\n")
	}

	if state.Solved {
		b.WriteString("\nSOLVED!")
	}
	if state.Message != "" {
		fmt.Fprintf(&b, "\nMessage: %s", state.Message)
	}

	return b.String()
}

func formatStep(s *service.StepInfo) string {
	status := "✗"
	if s.Success {
		status = "✓"
	}
	line := fmt.Sprintf("%s %v→%v", s.Dir, s.From, s.To)
	if s.Pushed && s.CrateTo != nil {
		line += fmt.Sprintf(" pushed crate to %v", *s.CrateTo)
	}
	if s.Solved {
		line += " solved"
	}
	return line + " " + status
}

func formatAttempt(a *service.AttemptInfo) string {
	return fmt.Sprintf("attempted %v terrain=%t crate=%t (%s)", a.Coord, a.Terrain, a.Crate, a.Reason)
}

func formatMoveResult(result *service.MoveResult) string {
	var b strings.Builder
	switch {
	case result.Success && result.Pushed:
		b.WriteString("✓ Crate pushed\n")
	case result.Success:
		b.WriteString("✓ Move successful\n")
	default:
		b.WriteString("✗ Move failed\n")
	}

	if result.Step != nil {
		fmt.Fprintf(&b, "Step: %s\n", formatStep(result.Step))
	}
	if result.AttemptedTo != nil {
		fmt.Fprintf(&b, "Blocked: %s\n", formatAttempt(result.AttemptedTo))
	}

	if len(result.Events) > 0 {
		b.WriteString("Events:\n")
		for _, event := range result.Events {
			fmt.Fprintf(&b, "- %s: %s\n", event.Type, event.Message)
		}
	}

	b.WriteString("\n")
	b.WriteString(formatState(result.State, result.Board))
	return b.String()
}

func formatBulkMoveResult(sessionID string, result *service.BulkMoveResult) string {
	var b strings.Builder

	puzzleID := ""
	if result.State != nil {
		puzzleID = result.State.PuzzleID
	}
	fmt.Fprintf(&b, "Session: %s • Puzzle: %s\n", sessionID, puzzleID)
	fmt.Fprintf(&b, "Executed %d/%d moves, %d pushes\n", result.MovesExecuted, result.RequestedMoves, result.PushesMade)
	if result.Truncated {
		fmt.Fprintf(&b, "Truncated to the first %d moves\n", result.Limit)
	}
	if result.StoppedReason != "" {
		fmt.Fprintf(&b, "Stopped on move %d: %s (%s)\n", result.StoppedOnMove, result.StoppedReason, result.StopReasonCode)
	}
	if result.AttemptedTo != nil {
		fmt.Fprintf(&b, "Blocked: %s\n", formatAttempt(result.AttemptedTo))
	}

	if len(result.Steps) > 0 {
		b.WriteString("\nSteps (this call):\n")
		for i := range result.Steps {
			fmt.Fprintf(&b, "%d. %s\n", result.Steps[i].Idx, formatStep(&result.Steps[i]))
		}
	}

	if len(result.PossibleMoves) > 0 {
		fmt.Fprintf(&b, "\nPossible moves: %s\n", strings.Join(result.PossibleMoves, ","))
	}

	b.WriteString("\n")
	b.WriteString(formatState(result.State, result.Board))
	return b.String()
}

func formatHistory(history *service.HistoryResponse) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Push History (Page %d/%d) | Total: %d\n\n",
		history.Page, history.TotalPages, history.TotalPushes)

	if len(history.Pushes) == 0 {
		b.WriteString("(no pushes since the last reset)\n")
		return b.String()
	}
	for i, push := range history.Pushes {
		num := (history.Page-1)*history.PageSize + i + 1
		fmt.Fprintf(&b, "%d. crate %v pushed %s\n", num, push.From, push.Direction)
	}
	return b.String()
}
