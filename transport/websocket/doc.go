// Package websocket pushes live Hexoban state to browsers.
//
// A Hub keeps the connected clients grouped by session ID. Clients connect
// to /ws?session=<id>; the connection receives the current StateView right
// away and a fresh one after every move, push or reset on that session.
//
// Outgoing messages are JSON:
//
//	{"session_id": "ab12", "event": "state_update", "state": {...}}
//
// Incoming frames are read only to keep the connection alive.
//
// Usage:
//
//	hub := websocket.NewHub()
//	go hub.Run()
//
//	hub.ServeWS(w, r, sessionID, state)
//	hub.BroadcastToSession(sessionID, state)
//
// All map mutation happens on the Run goroutine. Broadcasts are queued and
// dropped with a log line when the queue is full; a client whose send buffer
// is full is disconnected.
package websocket
