package prefs

import "sync"

// Backend is a process-wide key/value store that survives restarts.
// Lookups report ok=false when the key was never written.
type Backend interface {
	Strings(key string) (values []string, ok bool, err error)
	Bool(key string) (value bool, ok bool, err error)
	SetStrings(key string, values []string) error
	SetBool(key string, value bool) error
}

// MemoryBackend keeps values in memory only.
type MemoryBackend struct {
	mu     sync.Mutex
	values map[string]any
}

// NewMemoryBackend returns an empty in-memory backend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{values: make(map[string]any)}
}

// Strings returns the list stored under key.
func (m *MemoryBackend) Strings(key string) ([]string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return stringsValue(m.values, key)
}

// Bool returns the flag stored under key.
func (m *MemoryBackend) Bool(key string) (bool, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return boolValue(m.values, key)
}

// SetStrings replaces the list stored under key.
func (m *MemoryBackend) SetStrings(key string, values []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = append([]string(nil), values...)
	return nil
}

// SetBool replaces the flag stored under key.
func (m *MemoryBackend) SetBool(key string, value bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}
