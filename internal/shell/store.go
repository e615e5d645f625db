package shell

import (
	"sync"
	"time"
)

// Store maps session ids to their shells.
type Store struct {
	src Sources

	mu     sync.Mutex
	shells map[string]*Shell
}

func NewStore(src Sources) *Store {
	return &Store{src: src, shells: make(map[string]*Shell)}
}

// Get returns the session's shell, creating and mounting one on first use.
func (st *Store) Get(sid string) *Shell {
	st.mu.Lock()
	defer st.mu.Unlock()
	s, ok := st.shells[sid]
	if !ok {
		s = New(st.src)
		st.shells[sid] = s
	}
	return s
}

func (st *Store) Len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.shells)
}

// Sweep drops shells idle for longer than maxIdle and reports how many went.
func (st *Store) Sweep(maxIdle time.Duration) int {
	now := time.Now()
	st.mu.Lock()
	defer st.mu.Unlock()
	n := 0
	for sid, s := range st.shells {
		if s.idleSince(now) > maxIdle {
			delete(st.shells, sid)
			n++
		}
	}
	return n
}

// RunSweeper sweeps every interval until stop is closed.
func (st *Store) RunSweeper(interval, maxIdle time.Duration, stop <-chan struct{}) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-t.C:
			st.Sweep(maxIdle)
		case <-stop:
			return
		}
	}
}
