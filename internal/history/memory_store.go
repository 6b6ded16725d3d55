package history

import (
	"context"
	"sync"
)

// MemoryStore хранит историю в памяти процесса, потокобезопасное.
// Данные хранятся в сериализованном виде, как в настоящих бэкендах.
type MemoryStore struct {
	mu   sync.RWMutex
	data []byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Load(ctx context.Context) ([]Message, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.data == nil {
		return nil, false, nil
	}
	messages, err := Decode(s.data)
	if err != nil {
		return nil, true, err
	}
	return messages, true, nil
}

func (s *MemoryStore) Save(ctx context.Context, messages []Message) error {
	data, err := Encode(messages)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = data
	return nil
}

func (s *MemoryStore) Remove(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = nil
	return nil
}
