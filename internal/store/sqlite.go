package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"deck-of-cards-go/internal/deck"
	"deck-of-cards-go/internal/models"

	"go.uber.org/zap"
)

// SQLStore persists the deck record in the deck_states table.
type SQLStore struct {
	db     *sql.DB
	key    string
	logger *zap.Logger
}

func NewSQLStore(db *sql.DB, key string, logger *zap.Logger) *SQLStore {
	if key == "" {
		key = DefaultKey
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SQLStore{db: db, key: key, logger: logger}
}

func (s *SQLStore) Save(ctx context.Context, snap deck.Snapshot) error {
	b, err := Encode(snap)
	if err != nil {
		return fmt.Errorf("encode deck state: %w", err)
	}
	if err := models.UpsertDeckStateJSON(ctx, s.db, s.key, string(b)); err != nil {
		return fmt.Errorf("save deck state: %w", err)
	}
	return nil
}

func (s *SQLStore) Load(ctx context.Context) (deck.Snapshot, bool, error) {
	raw, ok, err := models.GetDeckStateJSON(ctx, s.db, s.key)
	if err != nil {
		return deck.Snapshot{}, false, fmt.Errorf("load deck state: %w", err)
	}
	if !ok {
		return deck.Snapshot{}, false, nil
	}
	snap, err := Decode([]byte(raw))
	if errors.Is(err, models.ErrCorruptState) {
		s.logger.Warn("discarding corrupt deck state", zap.String("key", s.key), zap.Error(err))
		if derr := models.DeleteDeckState(ctx, s.db, s.key); derr != nil {
			s.logger.Error("delete corrupt deck state failed", zap.String("key", s.key), zap.Error(derr))
		}
		return deck.Snapshot{}, false, nil
	}
	if err != nil {
		return deck.Snapshot{}, false, err
	}
	return snap, true, nil
}
