// Package registry keeps the live sessions for this process. Sessions are
// volatile: nothing here survives a restart.
package registry

import (
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/hollowbrook/village-echoes/pkg/state"
)

// Registry is a concurrency-safe id-to-session map. Insertion happens once
// at creation, removal once at termination, lookups throughout; all three
// are safe under concurrent access from independent sessions. Per-session
// exclusion during a turn is the session's own lock, not the registry's.
type Registry struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*state.GameSession
	logger   *slog.Logger
}

func New(logger *slog.Logger) *Registry {
	return &Registry{
		sessions: make(map[uuid.UUID]*state.GameSession),
		logger:   logger,
	}
}

// Add registers a session under its id.
func (r *Registry) Add(gs *state.GameSession) {
	r.mu.Lock()
	r.sessions[gs.ID] = gs
	r.mu.Unlock()
	r.logger.Debug("Session registered", "id", gs.ID.String())
}

// Get returns the session for id, or nil if it isn't registered.
func (r *Registry) Get(id uuid.UUID) *state.GameSession {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sessions[id]
}

// Remove drops a session from the registry. Removing an absent id is a no-op.
func (r *Registry) Remove(id uuid.UUID) {
	r.mu.Lock()
	delete(r.sessions, id)
	r.mu.Unlock()
	r.logger.Debug("Session removed", "id", id.String())
}

// Len returns the number of live sessions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
