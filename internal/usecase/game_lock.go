package usecase

import "sync"

// gameLocks serialises writers per game inside one process. Writers in other
// processes are caught by the repository revision check.
type gameLocks struct {
	mu    sync.Mutex
	locks map[string]*gameLock
}

type gameLock struct {
	mu   sync.Mutex
	refs int
}

func (l *gameLocks) lock(gameID string) func() {
	l.mu.Lock()
	if l.locks == nil {
		l.locks = make(map[string]*gameLock)
	}
	entry, ok := l.locks[gameID]
	if !ok {
		entry = &gameLock{}
		l.locks[gameID] = entry
	}
	entry.refs++
	l.mu.Unlock()

	entry.mu.Lock()
	return func() {
		entry.mu.Unlock()

		l.mu.Lock()
		entry.refs--
		if entry.refs == 0 {
			delete(l.locks, gameID)
		}
		l.mu.Unlock()
	}
}
