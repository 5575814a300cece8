package session

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/wricardo/hexoban/game/hex"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return mr, client
}

func TestRedisPersistence(t *testing.T) {
	mr, client := newTestRedis(t)
	lib := createTestLibrary(t)
	def, _ := lib.LoadPuzzle("corridor")

	persistence := NewRedisPersistence(client, "", time.Hour, lib)
	if err := persistence.Ping(context.Background()); err != nil {
		t.Fatalf("Ping failed: %v", err)
	}

	session := newTestSession(t, "Redis1", def)
	session.Engine.Move("right")

	t.Run("save and load", func(t *testing.T) {
		if err := persistence.Save(session); err != nil {
			t.Fatalf("Save failed: %v", err)
		}
		if !mr.Exists(DefaultRedisPrefix + "redis1") {
			t.Error("Expected lower-cased key in redis")
		}
		if ttl := mr.TTL(DefaultRedisPrefix + "redis1"); ttl != time.Hour {
			t.Errorf("ttl = %v, want 1h", ttl)
		}

		loaded, err := persistence.Load("REDIS1")
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if loaded.ID != "Redis1" {
			t.Errorf("ID = %q, want Redis1", loaded.ID)
		}
		if pos, _ := loaded.Engine.GetWorkerPosition(); pos != hex.C(0, 1) {
			t.Errorf("worker = %v, want [0, 1]", pos)
		}
		if len(loaded.Engine.GetPushHistory()) != 1 {
			t.Errorf("Expected 1 push, got %d", len(loaded.Engine.GetPushHistory()))
		}
	})

	t.Run("exists and list", func(t *testing.T) {
		persistence.Save(newTestSession(t, "redis2", def))
		mr.Set("unrelated", "x")

		if !persistence.Exists("redis2") || persistence.Exists("nope") {
			t.Error("Exists reported wrong result")
		}
		ids, err := persistence.ListAll()
		if err != nil {
			t.Fatalf("ListAll failed: %v", err)
		}
		sort.Strings(ids)
		if len(ids) != 2 || ids[0] != "redis1" || ids[1] != "redis2" {
			t.Errorf("ids = %v", ids)
		}
	})

	t.Run("delete", func(t *testing.T) {
		if err := persistence.Delete("redis2"); err != nil {
			t.Fatalf("Delete failed: %v", err)
		}
		if err := persistence.Delete("redis2"); !errors.Is(err, ErrSessionNotFound) {
			t.Errorf("Expected ErrSessionNotFound, got %v", err)
		}
		if _, err := persistence.Load("redis2"); !errors.Is(err, ErrSessionNotFound) {
			t.Errorf("Expected ErrSessionNotFound, got %v", err)
		}
	})

	t.Run("expiry", func(t *testing.T) {
		mr.FastForward(2 * time.Hour)
		if persistence.Exists("redis1") {
			t.Error("Expected key to expire")
		}
	})
}

func TestRedisPersistence_WithManager(t *testing.T) {
	_, client := newTestRedis(t)
	lib := createTestLibrary(t)
	def, _ := lib.LoadPuzzle("corridor")

	persistence := NewRedisPersistence(client, "test:", 0, lib)
	manager := NewManagerWithPersistence(persistence)
	if _, err := manager.Create("shared", def); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	other := NewManagerWithPersistence(persistence)
	session, err := other.Get("shared")
	if err != nil {
		t.Fatalf("Expected session from redis, got %v", err)
	}
	if session.Puzzle.ID != "corridor" {
		t.Errorf("puzzle = %q", session.Puzzle.ID)
	}
}
