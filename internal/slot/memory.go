package slot

import "sync"

// MemorySlot keeps the document in process memory. Nothing survives a restart.
type MemorySlot struct {
	mu      sync.Mutex
	name    string
	data    []byte
	written bool
	writes  int
}

// NewMemorySlot returns an empty in-memory slot.
func NewMemorySlot(name string) *MemorySlot {
	return &MemorySlot{name: name}
}

// Name returns the slot name.
func (m *MemorySlot) Name() string { return m.name }

// Read returns a copy of the last written document.
func (m *MemorySlot) Read() ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.written {
		return nil, ErrAbsent
	}
	return append([]byte(nil), m.data...), nil
}

// Write stores a copy of data.
func (m *MemorySlot) Write(data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = append([]byte(nil), data...)
	m.written = true
	m.writes++
	return nil
}

// Writes reports how many successful writes the slot has seen.
func (m *MemorySlot) Writes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes
}

// Close is a no-op.
func (m *MemorySlot) Close() error { return nil }
