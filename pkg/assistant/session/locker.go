package session

import "sync"

// Locker serializes message handling per session. One inbound message
// must finish its read-decide-write sequence against the context store
// before the next one for the same session starts, otherwise a
// duplicated webhook delivery can race the state machine.
type Locker struct {
	mu    sync.Mutex
	locks map[string]*sessionLock
}

type sessionLock struct {
	mu   sync.Mutex
	refs int
}

func NewLocker() *Locker {
	return &Locker{
		locks: make(map[string]*sessionLock),
	}
}

// Lock acquires the session's mutex, creating it on first use. The
// returned function releases it and frees the entry once no other
// goroutine is waiting.
func (l *Locker) Lock(sessionID string) func() {
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
