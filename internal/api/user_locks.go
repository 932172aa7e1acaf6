package api

import "sync"

// userLocks serializes state writes per user so concurrent requests cannot
// drop each other's appends.
type userLocks struct {
	mu    sync.Mutex
	locks map[uint]*sync.Mutex
}

func newUserLocks() *userLocks {
	return &userLocks{locks: make(map[uint]*sync.Mutex)}
}

func (locks *userLocks) lock(userID uint) func() {
	locks.mu.Lock()
	userLock, ok := locks.locks[userID]
	if !ok {
		userLock = &sync.Mutex{}
		locks.locks[userID] = userLock
	}
	locks.mu.Unlock()

	userLock.Lock()
	return userLock.Unlock
}
