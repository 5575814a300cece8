// Package session keeps the live Hexoban sessions.
//
// Manager is a thread-safe map of case-insensitive session IDs to
// service.Session values, each holding its own engine.GameEngine. IDs are
// caller chosen or a generated 4-character hex string.
//
// Persistence:
//
// A Manager may be backed by a SessionPersistence. Three are provided:
//   - FilePersistence writes <dir>/<id>.json
//   - RedisPersistence writes <prefix><id> keys with an optional TTL
//   - PostgresPersistence upserts JSONB rows into one table
//
// All of them store the puzzle id, the push history and the worker position, and
// restore a session by replaying the pushes against the puzzle. A session
// missing from memory is loaded on first Get.
//
// Usage:
//
//	store, err := session.NewFilePersistence("sessions", library)
//	manager := session.NewManagerWithPersistence(store)
//	go manager.RunCleanup(ctx, time.Minute, 2*time.Hour)
//
//	sess, err := manager.Create("", def)
package session
