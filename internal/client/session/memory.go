package session

import (
	"bytes"
	"context"
	"sync"
)

// MemoryStorage keeps the record in process memory only.
type MemoryStorage struct {
	mu  sync.Mutex
	rec Record
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{}
}

func (m *MemoryStorage) Load(context.Context) (Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return Record{Token: bytes.Clone(m.rec.Token), User: bytes.Clone(m.rec.User)}, nil
}

func (m *MemoryStorage) Save(_ context.Context, rec Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rec = Record{Token: bytes.Clone(rec.Token), User: bytes.Clone(rec.User)}
	return nil
}

func (m *MemoryStorage) Remove(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rec = Record{}
	return nil
}
