package memory

import (
	"context"
	"sync"

	"github.com/whitesvil1-lab/JustCani/internal/repository"
)

// Store реализует repository.Store в памяти процесса
// Используется в тестах и при CART_STORE=memory (корзина живёт до выхода из программы)
type Store struct {
	mu     sync.RWMutex
	values map[string][]byte
}

// NewStore создаёт пустое in-memory хранилище
func NewStore() *Store {
	return &Store{
		values: make(map[string][]byte),
	}
}

// Get возвращает копию значения, чтобы вызывающий не мог изменить хранилище
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, exists := s.values[key]
	if !exists {
		return nil, repository.ErrNotFound
	}

	out := make([]byte, len(value))
	copy(out, value)
	return out, nil
}

// Set сохраняет копию значения
func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := make([]byte, len(value))
	copy(stored, value)
	s.values[key] = stored
	return nil
}

// Remove удаляет ключ
func (s *Store) Remove(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.values, key)
	return nil
}
