package db

import (
	"context"
	"sync"
)

// Mem is a KV kept in process memory.
type Mem struct {
	mu     sync.RWMutex
	data   map[string]string
	closed bool
}

func NewMem() *Mem {
	return &Mem{data: make(map[string]string)}
}

func (m *Mem) Get(ctx context.Context, key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return "", ErrClosed
	}
	v, ok := m.data[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

func (m *Mem) Set(ctx context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}
	m.data[key] = value
	return nil
}

func (m *Mem) Close() error {
	m.mu.Lock()
	m.closed = true
	m.mu.Unlock()
	return nil
}
