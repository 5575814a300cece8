package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/wricardo/hexoban/game/hex"
)

func TestManager_Create(t *testing.T) {
	manager := NewManager()
	puzzle := createTestPuzzle()

	t.Run("create with custom ID", func(t *testing.T) {
		session, err := manager.Create("test-session", puzzle)
		if err != nil {
			t.Fatalf("Failed to create session: %v", err)
		}
		if session.ID != "test-session" {
			t.Errorf("Expected session ID 'test-session', got '%s'", session.ID)
		}
		if session.Engine == nil {
			t.Error("Expected engine to be initialized")
		}
		if session.Puzzle != puzzle {
			t.Error("Expected session to keep its puzzle")
		}
	})

	t.Run("create with auto-generated ID", func(t *testing.T) {
		session, err := manager.Create("", puzzle)
		if err != nil {
			t.Fatalf("Failed to create session: %v", err)
		}
		if len(session.ID) != 4 {
			t.Errorf("Expected 4-character session ID, got %q", session.ID)
		}
	})

	t.Run("duplicate session ID", func(t *testing.T) {
		_, err := manager.Create("test-session", puzzle)
		if !errors.Is(err, ErrSessionAlreadyExists) {
			t.Errorf("Expected ErrSessionAlreadyExists, got %v", err)
		}
	})

	t.Run("case-insensitive duplicate check", func(t *testing.T) {
		_, err := manager.Create("TEST-SESSION", puzzle)
		if !errors.Is(err, ErrSessionAlreadyExists) {
			t.Errorf("Expected ErrSessionAlreadyExists for case variant, got %v", err)
		}
	})

	t.Run("invalid session ID", func(t *testing.T) {
		for _, id := range []string{"../escape", "has space", "a/b"} {
			if _, err := manager.Create(id, puzzle); !errors.Is(err, ErrInvalidSessionID) {
				t.Errorf("Create(%q) = %v, want ErrInvalidSessionID", id, err)
			}
		}
	})

	t.Run("invalid puzzle", func(t *testing.T) {
		bad := createTestPuzzle()
		bad.Init.Crates = []hex.Coord{hex.C(7, 7)}
		if _, err := manager.Create("invalid-test", bad); err == nil {
			t.Error("Expected error for invalid puzzle")
		}
	})
}

func TestManager_Get(t *testing.T) {
	manager := NewManager()
	created, _ := manager.Create("get-test", createTestPuzzle())

	t.Run("get existing session", func(t *testing.T) {
		session, err := manager.Get("get-test")
		if err != nil {
			t.Fatalf("Failed to get session: %v", err)
		}
		if session != created {
			t.Error("Expected the created session")
		}
	})

	t.Run("case-insensitive get", func(t *testing.T) {
		session, err := manager.Get("GET-TEST")
		if err != nil {
			t.Fatalf("Failed to get session with different case: %v", err)
		}
		if session != created {
			t.Error("Expected same session regardless of case")
		}
	})

	t.Run("get non-existent session", func(t *testing.T) {
		_, err := manager.Get("non-existent")
		if !errors.Is(err, ErrSessionNotFound) {
			t.Errorf("Expected ErrSessionNotFound, got %v", err)
		}
	})
}

func TestManager_GetOrCreate(t *testing.T) {
	manager := NewManager()
	puzzle := createTestPuzzle()

	first, err := manager.GetOrCreate("new-session", puzzle)
	if err != nil {
		t.Fatalf("Failed to get or create session: %v", err)
	}
	second, err := manager.GetOrCreate("new-session", puzzle)
	if err != nil {
		t.Fatalf("Failed to get existing session: %v", err)
	}
	if first != second {
		t.Error("Expected the same session on the second call")
	}
	if manager.Count() != 1 {
		t.Errorf("Expected 1 session, got %d", manager.Count())
	}
}

func TestManager_Delete(t *testing.T) {
	manager := NewManager()
	puzzle := createTestPuzzle()
	manager.Create("delete-test", puzzle)

	t.Run("delete existing session", func(t *testing.T) {
		if err := manager.Delete("delete-test"); err != nil {
			t.Fatalf("Failed to delete session: %v", err)
		}
		if _, err := manager.Get("delete-test"); !errors.Is(err, ErrSessionNotFound) {
			t.Error("Expected session to be deleted")
		}
	})

	t.Run("delete non-existent session", func(t *testing.T) {
		if err := manager.Delete("non-existent"); !errors.Is(err, ErrSessionNotFound) {
			t.Errorf("Expected ErrSessionNotFound, got %v", err)
		}
	})

	t.Run("case-insensitive delete", func(t *testing.T) {
		manager.Create("case-test", puzzle)
		if err := manager.Delete("CASE-TEST"); err != nil {
			t.Fatalf("Failed to delete with different case: %v", err)
		}
		if _, err := manager.Get("case-test"); !errors.Is(err, ErrSessionNotFound) {
			t.Error("Expected session to be deleted regardless of case")
		}
	})
}

func TestManager_List(t *testing.T) {
	manager := NewManager()
	puzzle := createTestPuzzle()

	ids := []string{"list-1", "list-2", "list-3"}
	for _, id := range ids {
		if _, err := manager.Create(id, puzzle); err != nil {
			t.Fatal(err)
		}
	}

	found := make(map[string]bool)
	for _, s := range manager.List() {
		found[s.ID] = true
	}
	for _, id := range ids {
		if !found[id] {
			t.Errorf("Session %s not found in list", id)
		}
	}
}

func TestManager_CleanupExpired(t *testing.T) {
	manager := NewManager()
	puzzle := createTestPuzzle()

	active, _ := manager.Create("active", puzzle)
	expired, _ := manager.Create("expired", puzzle)
	expired.LastAccessedAt = time.Now().Add(-2 * time.Hour)
	active.LastAccessedAt = time.Now()

	if deleted := manager.CleanupExpiredSessions(time.Hour); deleted != 1 {
		t.Errorf("Expected 1 session to be deleted, got %d", deleted)
	}
	if _, err := manager.Get("expired"); !errors.Is(err, ErrSessionNotFound) {
		t.Error("Expected expired session to be deleted")
	}
	if _, err := manager.Get("active"); err != nil {
		t.Error("Expected active session to still exist")
	}
}

func TestManager_RunCleanup(t *testing.T) {
	manager := NewManager()
	stale, _ := manager.Create("stale", createTestPuzzle())
	stale.LastAccessedAt = time.Now().Add(-time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		manager.RunCleanup(ctx, 5*time.Millisecond, time.Minute)
		close(done)
	}()

	deadline := time.Now().Add(2 * time.Second)
	for manager.Count() != 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	cancel()
	<-done

	if manager.Count() != 0 {
		t.Errorf("Expected stale session to be evicted, %d left", manager.Count())
	}
}

func TestManager_UpdateLastAccessed(t *testing.T) {
	manager := NewManager()
	session, _ := manager.Create("access-test", createTestPuzzle())
	session.LastAccessedAt = time.Now().Add(-time.Minute)
	originalTime := session.LastAccessedAt

	if err := manager.UpdateLastAccessed("access-test"); err != nil {
		t.Fatalf("Failed to update last accessed: %v", err)
	}
	if !session.LastAccessedAt.After(originalTime) {
		t.Error("Expected LastAccessedAt to be updated")
	}
	if err := manager.UpdateLastAccessed("missing"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Expected ErrSessionNotFound, got %v", err)
	}
}

func TestManager_ConcurrentAccess(t *testing.T) {
	manager := NewManager()
	puzzle := createTestPuzzle()

	var wg sync.WaitGroup
	errs := make(chan error, 100)
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			id := fmt.Sprintf("worker-%d", n%20)
			if _, err := manager.GetOrCreate(id, puzzle); err != nil && !errors.Is(err, ErrSessionAlreadyExists) {
				errs <- err
			}
			manager.List()
		}(i)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("Unexpected error during concurrent access: %v", err)
	}
	if manager.Count() != 20 {
		t.Errorf("Expected 20 sessions, got %d", manager.Count())
	}
}

func TestManager_SessionIsolation(t *testing.T) {
	manager := NewManager()
	puzzle := createTestPuzzle()

	session1, _ := manager.Create("iso-1", puzzle)
	session2, _ := manager.Create("iso-2", puzzle)

	if err := session1.Engine.Move("right"); err != nil {
		t.Fatalf("Move failed: %v", err)
	}

	pos1, _ := session1.Engine.GetWorkerPosition()
	pos2, _ := session2.Engine.GetWorkerPosition()
	if pos2 != hex.C(0, 0) {
		t.Errorf("Session 2 should not be affected by session 1 moves, worker at %v", pos2)
	}
	if pos1 == pos2 {
		t.Error("Sessions should have independent game state")
	}
}

func TestManager_SessionIDGeneration(t *testing.T) {
	manager := NewManager()
	puzzle := createTestPuzzle()

	generated := make(map[string]bool)
	for i := 0; i < 50; i++ {
		session, err := manager.Create("", puzzle)
		if err != nil {
			t.Fatalf("Failed to create session: %v", err)
		}
		if generated[session.ID] {
			t.Errorf("Duplicate session ID generated: %s", session.ID)
		}
		generated[session.ID] = true
		if len(session.ID) != 4 {
			t.Errorf("Expected 4-character ID, got %q", session.ID)
		}
	}
}
