package store

import (
	"context"
	"errors"
	"sync"

	"deck-of-cards-go/internal/deck"
	"deck-of-cards-go/internal/models"

	"go.uber.org/zap"
)

// MemoryStore keeps encoded records in a map. It backs tests and the
// terminal client's -memory mode.
type MemoryStore struct {
	mu      sync.Mutex
	key     string
	records map[string][]byte
	logger  *zap.Logger
}

func NewMemoryStore(key string, logger *zap.Logger) *MemoryStore {
	if key == "" {
		key = DefaultKey
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MemoryStore{key: key, records: map[string][]byte{}, logger: logger}
}

func (m *MemoryStore) Save(_ context.Context, s deck.Snapshot) error {
	b, err := Encode(s)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[m.key] = b
	return nil
}

func (m *MemoryStore) Load(_ context.Context) (deck.Snapshot, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.records[m.key]
	if !ok || len(b) == 0 {
		return deck.Snapshot{}, false, nil
	}
	s, err := Decode(b)
	if errors.Is(err, models.ErrCorruptState) {
		m.logger.Warn("discarding corrupt deck state", zap.String("key", m.key), zap.Error(err))
		delete(m.records, m.key)
		return deck.Snapshot{}, false, nil
	}
	if err != nil {
		return deck.Snapshot{}, false, err
	}
	return s, true, nil
}

// Raw returns the stored bytes for the store's key.
func (m *MemoryStore) Raw() ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.records[m.key]
	return b, ok
}

// Put overwrites the stored bytes, bypassing the codec.
func (m *MemoryStore) Put(b []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[m.key] = b
}
