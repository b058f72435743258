package session

import (
	"sync"
	"testing"
)

func TestLockerSerializesSameSession(t *testing.T) {
	l := NewLocker()

	var counter int
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := l.Lock("s1")
			defer unlock()
			counter++
		}()
	}
	wg.Wait()

	if counter != 50 {
		t.Errorf("counter = %d, want 50", counter)
	}
}

func TestLockerReleasesEntries(t *testing.T) {
	l := NewLocker()

	unlock := l.Lock("s1")
	unlock()

	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.locks) != 0 {
		t.Errorf("expected lock table to be empty, has %d entries", len(l.locks))
	}
}

func TestLockerIndependentSessions(t *testing.T) {
	l := NewLocker()

	unlockA := l.Lock("a")
	// Locking a different session must not block.
	done := make(chan struct{})
	go func() {
		unlockB := l.Lock("b")
		unlockB()
		close(done)
	}()
	<-done
	unlockA()
}
