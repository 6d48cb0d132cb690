package mirror

import "sync"

// InMemoryMirror is a Mirror backed by a plain map, guarded by a mutex so
// it is safe to share across goroutines even though the engine itself is
// not. Useful for tests and for embedding the engine in a process that
// wants mirror semantics (load/apply/close bookkeeping) without real
// durability.
type InMemoryMirror struct {
	mu     sync.Mutex
	rows   map[string]string
	closed bool
}

// NewInMemoryMirror constructs an empty InMemoryMirror.
func NewInMemoryMirror() *InMemoryMirror {
	return &InMemoryMirror{rows: make(map[string]string)}
}

// LoadAll returns a copy of every currently stored row.
func (m *InMemoryMirror) LoadAll() (map[string]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make(map[string]string, len(m.rows))
	for k, v := range m.rows {
		out[k] = v
	}
	return out, nil
}

// Apply upserts and deletes rows. A no-op once Close has been called, per
// the Mirror contract.
func (m *InMemoryMirror) Apply(upserts map[string]string, deletions map[string]struct{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil
	}
	for k, v := range upserts {
		m.rows[k] = v
	}
	for k := range deletions {
		delete(m.rows, k)
	}
	return nil
}

// Close marks the mirror closed; subsequent Apply calls are no-ops.
func (m *InMemoryMirror) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}
