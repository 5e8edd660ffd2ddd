package state

import "sync"

type memoryManager struct {
	mu      sync.RWMutex
	initial State
	states  map[int64]State
}

// NewMemoryManager returns a mutex-guarded in-memory Manager.
// Users without a stored state are reported as initial.
func NewMemoryManager(initial State) Manager {
	return &memoryManager{
		initial: initial,
		states:  make(map[int64]State),
	}
}

func (m *memoryManager) GetState(userID int64) State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if st, ok := m.states[userID]; ok {
		return st
	}
	return m.initial
}

// SetState stores st. Storing the initial state drops the entry instead.
func (m *memoryManager) SetState(userID int64, st State) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if st == m.initial {
		delete(m.states, userID)
		return
	}
	m.states[userID] = st
}

func (m *memoryManager) Clear(userID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.states, userID)
}
