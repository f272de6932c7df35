package session

import (
	"errors"
	"sort"
	"sync"
	"time"
)

// ErrFull is returned by Registry.Register when the session limit is reached.
var ErrFull = errors.New("session: too many active sessions")

// ID uniquely identifies a connected session (e.g., an SSH connection).
type ID string

// Info describes a connected session.
type Info struct {
	ID      ID
	User    string
	Remote  string
	Started time.Time
}

// Registry tracks connected sessions.
// Thread-safe for concurrent access.
type Registry struct {
	mu       sync.RWMutex
	limit    int
	sessions map[ID]Info
}

// NewRegistry creates a registry admitting at most limit sessions.
// A limit of zero or less means no limit.
func NewRegistry(limit int) *Registry {
	return &Registry{
		limit:    limit,
		sessions: make(map[ID]Info),
	}
}

// Register adds a session. Registering an ID twice replaces its info.
func (r *Registry) Register(info Info) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[info.ID]; !ok && r.limit > 0 && len(r.sessions) >= r.limit {
		return ErrFull
	}
	r.sessions[info.ID] = info
	return nil
}

// Unregister removes a session. Unknown IDs are ignored.
func (r *Registry) Unregister(id ID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
}

// Get retrieves a session by ID.
func (r *Registry) Get(id ID) (Info, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[id]
	return s, ok
}

// Count returns the number of registered sessions.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// List returns the registered sessions, oldest first.
func (r *Registry) List() []Info {
	r.mu.RLock()
	out := make([]Info, 0, len(r.sessions))
	for _, s := range r.sessions {
		out = append(out, s)
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].Started.Equal(out[j].Started) {
			return out[i].ID < out[j].ID
		}
		return out[i].Started.Before(out[j].Started)
	})
	return out
}
