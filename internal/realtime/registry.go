// Package realtime tracks which users hold an open push connection and
// delivers workflow events to them.
package realtime

import (
	"sort"
	"sync"

	"github.com/google/uuid"
)

// Presence describes a connected user.
type Presence struct {
	UserID      uuid.UUID `json:"user_id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"displayName"`
	SessionID   uuid.UUID `json:"session_id"`
}

type entry struct {
	presence Presence
	session  *Session
}

// Registry maps each online user to the first session they opened.
type Registry struct {
	mu      sync.RWMutex
	entries map[uuid.UUID]entry
}

func NewRegistry() *Registry {
	return &Registry{entries: make(map[uuid.UUID]entry)}
}

// Add registers the session for its user. If the user already has a session
// the registry is left unchanged and Add reports false.
func (r *Registry) Add(email, displayName string, session *Session) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.entries[session.UserID]; exists {
		return false
	}
	r.entries[session.UserID] = entry{
		presence: Presence{
			UserID:      session.UserID,
			Email:       email,
			DisplayName: displayName,
			SessionID:   session.ID,
		},
		session: session,
	}
	return true
}

// Remove drops the entry owned by sessionID, if any.
func (r *Registry) Remove(sessionID uuid.UUID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	for userID, e := range r.entries {
		if e.session.ID == sessionID {
			delete(r.entries, userID)
			return true
		}
	}
	return false
}

func (r *Registry) Lookup(userID uuid.UUID) (*Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.entries[userID]
	if !ok {
		return nil, false
	}
	return e.session, true
}

// Online lists connected users ordered by e-mail.
func (r *Registry) Online() []Presence {
	r.mu.RLock()
	online := make([]Presence, 0, len(r.entries))
	for _, e := range r.entries {
		online = append(online, e.presence)
	}
	r.mu.RUnlock()

	sort.Slice(online, func(i, j int) bool { return online[i].Email < online[j].Email })
	return online
}
