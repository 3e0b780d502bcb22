package progress

import (
	"maps"
	"sync"
)

// Backend stores string values by key.
// Get reports ok=false for a key that was never set.
type Backend interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
	Delete(key string) error
}

// MemoryBackend keeps values in a map. Safe for concurrent use.
type MemoryBackend struct {
	mu     sync.Mutex
	values map[string]string
}

// NewMemoryBackend creates an empty in-memory backend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{values: make(map[string]string)}
}

func (m *MemoryBackend) Get(key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *MemoryBackend) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

func (m *MemoryBackend) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}

// Snapshot returns a copy of all stored values.
func (m *MemoryBackend) Snapshot() map[string]string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return maps.Clone(m.values)
}

type prefixed struct {
	prefix string
	next   Backend
}

// Prefixed namespaces every key of next under profile, so several players
// can share one backend. An empty profile returns next unchanged.
func Prefixed(profile string, next Backend) Backend {
	if profile == "" {
		return next
	}
	return &prefixed{prefix: profile + ":", next: next}
}

func (p *prefixed) Get(key string) (string, bool, error) {
	return p.next.Get(p.prefix + key)
}

func (p *prefixed) Set(key, value string) error {
	return p.next.Set(p.prefix+key, value)
}

func (p *prefixed) Delete(key string) error {
	return p.next.Delete(p.prefix + key)
}
