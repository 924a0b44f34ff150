package service

import (
	"errors"
	"sync"
)

// ErrSyncInProgress is returned when a delta sync is requested for an
// instance that already has one running. Two overlapping syncs would race
// on the same cursor row and lose one of the two advances.
var ErrSyncInProgress = errors.New("a sync is already running for this instance")

// instanceLocks is an in-process advisory lock keyed by instance id.
type instanceLocks struct {
	mu   sync.Mutex
	busy map[string]bool
}

func (l *instanceLocks) tryAcquire(instanceID string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.busy == nil {
		l.busy = make(map[string]bool)
	}
	if l.busy[instanceID] {
		return false
	}
	l.busy[instanceID] = true
	return true
}

func (l *instanceLocks) release(instanceID string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.busy, instanceID)
}
