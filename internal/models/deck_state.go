package models

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"
)

// DeckState is one persisted deck record.
type DeckState struct {
	Key       string    `json:"key"`
	StateJSON string    `json:"state_json"`
	UpdatedAt time.Time `json:"updated_at"`
}

// GetDeckStateJSON returns the stored JSON for key. ok=false when no row exists
// or the stored text is blank.
func GetDeckStateJSON(ctx context.Context, db *sql.DB, key string) (stateJSON string, ok bool, err error) {
	var s sql.NullString
	err = db.QueryRowContext(ctx, `SELECT state_json FROM deck_states WHERE key = ?`, key).Scan(&s)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	if !s.Valid || strings.TrimSpace(s.String) == "" {
		return "", false, nil
	}
	return s.String, true, nil
}

// GetDeckState loads the full row for key.
func GetDeckState(ctx context.Context, db *sql.DB, key string) (*DeckState, error) {
	var st DeckState
	err := db.QueryRowContext(ctx,
		`SELECT key, state_json, updated_at FROM deck_states WHERE key = ?`, key,
	).Scan(&st.Key, &st.StateJSON, &st.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &st, nil
}

func UpsertDeckStateJSON(ctx context.Context, db *sql.DB, key, stateJSON string) error {
	_, err := db.ExecContext(ctx,
		`INSERT INTO deck_states(key, state_json, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(key) DO UPDATE SET state_json = excluded.state_json, updated_at = CURRENT_TIMESTAMP`,
		key, stateJSON,
	)
	return err
}

func DeleteDeckState(ctx context.Context, db *sql.DB, key string) error {
	_, err := db.ExecContext(ctx, `DELETE FROM deck_states WHERE key = ?`, key)
	return err
}
