package localstore

import "sync"

// MemoryStore keeps blobs in memory; used by tests and as the fallback when
// no durable backend is configured.
type MemoryStore struct {
	blobs sync.Map
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Get(key string) ([]byte, bool, error) {
	if value, ok := m.blobs.Load(key); ok {
		return value.([]byte), true, nil
	}
	return nil, false, nil
}

func (m *MemoryStore) Set(key string, value []byte) error {
	buf := make([]byte, len(value))
	copy(buf, value)
	m.blobs.Store(key, buf)
	return nil
}

func (m *MemoryStore) Delete(key string) error {
	m.blobs.Delete(key)
	return nil
}

func (m *MemoryStore) Close() error { return nil }
