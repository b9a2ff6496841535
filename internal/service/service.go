// Package service holds the board collaboration rules: membership checks,
// task ordering, and the invitation and assignment workflows.
package service

import (
	"sync"

	"taskboard/internal/auth"

	"github.com/google/uuid"
)

// Notifier pushes an event to a user if they are connected.
type Notifier interface {
	Notify(userID uuid.UUID, event string, payload any) bool
}

type TokenIssuer interface {
	GenerateToken(userID uuid.UUID, email string) (string, error)
	ParseToken(token string) (*auth.Claims, error)
}

// keyedMutex serializes callers per key and forgets keys nobody holds.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[uuid.UUID]*refLock
}

type refLock struct {
	sync.Mutex
	refs int
}

func newKeyedMutex() *keyedMutex {
	return &keyedMutex{locks: make(map[uuid.UUID]*refLock)}
}

// lock blocks until key is free and returns the matching unlock.
func (k *keyedMutex) lock(key uuid.UUID) func() {
	k.mu.Lock()
	l, ok := k.locks[key]
	if !ok {
		l = &refLock{}
		k.locks[key] = l
	}
	l.refs++
	k.mu.Unlock()

	l.Lock()
	return func() {
		l.Unlock()
		k.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(k.locks, key)
		}
		k.mu.Unlock()
	}
}
