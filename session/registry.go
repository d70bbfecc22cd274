package session

import (
	"sync"
)

// DefaultSessionID is used when a consumer sends no X-Session-ID header, so a
// single-user setup works with no session plumbing at all.
const DefaultSessionID = "default"

// Registry owns every live session's filter state. The dataset itself is
// shared read-only; each session id maps to one independent FilterState.
type Registry struct {
	mu       sync.Mutex
	mgr      *Manager
	sessions map[string]FilterState
}

// NewRegistry builds an empty registry backed by one manager.
func NewRegistry(mgr *Manager) *Registry {
	return &Registry{
		mgr:      mgr,
		sessions: make(map[string]FilterState),
	}
}

// Manager returns the validating manager behind the registry.
func (r *Registry) Manager() *Manager {
	return r.mgr
}

// Snapshot returns the session's current filter state, creating the session
// with defaults on first use.
func (r *Registry) Snapshot(id string) FilterState {
	if id == "" {
		id = DefaultSessionID
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	if !ok {
		s = r.mgr.Default()
		r.sessions[id] = s
	}
	return s
}

// Update applies one edit to the session's filter state. When fn fails the
// stored state is untouched, so a rejected edit leaves the previous
// consistent selection in place.
func (r *Registry) Update(id string, fn func(FilterState) (FilterState, error)) (FilterState, error) {
	if id == "" {
		id = DefaultSessionID
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	if !ok {
		s = r.mgr.Default()
	}
	next, err := fn(s)
	if err != nil {
		r.sessions[id] = s
		return s, err
	}
	r.sessions[id] = next
	return next, nil
}

// Drop destroys a session; the next use of its id starts from defaults.
func (r *Registry) Drop(id string) {
	if id == "" {
		id = DefaultSessionID
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
}
