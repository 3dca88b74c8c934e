package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/Emirhan-Denizyol/llm-memory-assistant/internal/domain"
	"github.com/Emirhan-Denizyol/llm-memory-assistant/internal/ports"
)

// Store is a process-local KeyValueStore. Nothing survives the process.
type Store struct {
	mu     sync.RWMutex
	values map[string]string
}

var _ ports.KeyValueStore = (*Store)(nil)

func NewStore() *Store {
	return &Store{values: map[string]string{}}
}

func (s *Store) Get(ctx context.Context, key string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.values[key]
	if !ok {
		return "", fmt.Errorf("%w: %s", domain.ErrKeyNotFound, key)
	}
	return value, nil
}

func (s *Store) Set(ctx context.Context, key string, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.values[key] = value
	return nil
}
