package httpapi

import "sync"

// attemptLocks не даёт одновременно сохранять и завершать одну попытку теста.
// Запись удаляется, когда её никто не держит.
type attemptLocks struct {
	mu   sync.Mutex
	byID map[string]*attemptLock
}

type attemptLock struct {
	mu   sync.Mutex
	refs int
}

func newAttemptLocks() *attemptLocks {
	return &attemptLocks{byID: make(map[string]*attemptLock)}
}

func (l *attemptLocks) lock(attemptID string) func() {
	l.mu.Lock()
	m, ok := l.byID[attemptID]
	if !ok {
		m = &attemptLock{}
		l.byID[attemptID] = m
	}
	m.refs++
	l.mu.Unlock()

	m.mu.Lock()
	return func() {
		m.mu.Unlock()
		l.mu.Lock()
		m.refs--
		if m.refs == 0 {
			delete(l.byID, attemptID)
		}
		l.mu.Unlock()
	}
}

func (l *attemptLocks) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.byID)
}
