package service

import (
	"sync"

	"github.com/google/uuid"
)

// SessionLocker serializes mutations per session. Locks for idle sessions are
// released once nobody holds or waits on them.
type SessionLocker struct {
	mu    sync.Mutex
	locks map[uuid.UUID]*sessionLock
}

type sessionLock struct {
	mu   sync.Mutex
	refs int
}

// NewSessionLocker creates an empty locker
func NewSessionLocker() *SessionLocker {
	return &SessionLocker{locks: make(map[uuid.UUID]*sessionLock)}
}

// Lock blocks until the session's lock is held and returns its release func
func (l *SessionLocker) Lock(sessionID uuid.UUID) func() {
	l.mu.Lock()
	lock, ok := l.locks[sessionID]
	if !ok {
		lock = &sessionLock{}
		l.locks[sessionID] = lock
	}
	lock.refs++
	l.mu.Unlock()

	lock.mu.Lock()

	return func() {
		lock.mu.Unlock()

		l.mu.Lock()
		lock.refs--
		if lock.refs == 0 {
			delete(l.locks, sessionID)
		}
		l.mu.Unlock()
	}
}

func (l *SessionLocker) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}
