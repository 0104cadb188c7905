package application

import (
	"sync"

	"github.com/google/uuid"
)

// roomLocks serializes conflict-check-then-write sequences per room so two
// concurrent bookings for overlapping dates cannot both pass the check.
// Entries are reference-counted and dropped once uncontended.
type roomLocks struct {
	mu    sync.Mutex
	locks map[uuid.UUID]*roomLock
}

type roomLock struct {
	mu   sync.Mutex
	refs int
}

func newRoomLocks() *roomLocks {
	return &roomLocks{locks: make(map[uuid.UUID]*roomLock)}
}

// Lock acquires the mutex for roomID and returns its release function.
func (l *roomLocks) Lock(roomID uuid.UUID) func() {
	l.mu.Lock()
	entry, ok := l.locks[roomID]
	if !ok {
		entry = &roomLock{}
		l.locks[roomID] = entry
	}
	entry.refs++
	l.mu.Unlock()

	entry.mu.Lock()
	return func() {
		entry.mu.Unlock()
		l.mu.Lock()
		entry.refs--
		if entry.refs == 0 {
			delete(l.locks, roomID)
		}
		l.mu.Unlock()
	}
}
