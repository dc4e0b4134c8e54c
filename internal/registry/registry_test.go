package registry

import (
	"log/slog"
	"os"
	"sync"
	"testing"

	"github.com/google/uuid"

	"github.com/hollowbrook/village-echoes/pkg/quest"
	"github.com/hollowbrook/village-echoes/pkg/roster"
	"github.com/hollowbrook/village-echoes/pkg/state"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelError,
	}))
}

func newSession() *state.GameSession {
	return state.NewGameSession(quest.DifficultyMedium, []roster.Villager{
		{Name: "Old Mara", Title: "A gruff woman by the river"},
	})
}

func TestRegistry_AddGetRemove(t *testing.T) {
	r := New(testLogger())

	gs := newSession()
	r.Add(gs)

	if got := r.Get(gs.ID); got != gs {
		t.Fatal("Get did not return the registered session")
	}
	if r.Len() != 1 {
		t.Errorf("Len() = %d, want 1", r.Len())
	}

	if got := r.Get(uuid.New()); got != nil {
		t.Error("unknown id should resolve to nil")
	}

	r.Remove(gs.ID)
	if got := r.Get(gs.ID); got != nil {
		t.Error("removed session still resolvable")
	}
	if r.Len() != 0 {
		t.Errorf("Len() after remove = %d, want 0", r.Len())
	}

	// Removing an absent id is a no-op.
	r.Remove(gs.ID)
}

func TestRegistry_ConcurrentAccess(t *testing.T) {
	r := New(testLogger())

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			gs := newSession()
			r.Add(gs)
			if r.Get(gs.ID) == nil {
				t.Error("session not visible after Add")
			}
			r.Remove(gs.ID)
		}()
	}

	// Concurrent readers against the churn above.
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_ = r.Len()
				_ = r.Get(uuid.New())
			}
		}()
	}

	wg.Wait()
	if r.Len() != 0 {
		t.Errorf("Len() = %d after balanced add/remove, want 0", r.Len())
	}
}
