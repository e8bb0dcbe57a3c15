package store

import (
	"context"
	"testing"

	"deck-of-cards-go/internal/deck"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ deck.Store = (*MemoryStore)(nil)

func newEngine(t *testing.T, st deck.Store) *deck.Engine {
	t.Helper()
	e, err := deck.New(context.Background(), st)
	require.NoError(t, err)
	t.Cleanup(e.Close)
	return e
}

func TestMemoryStoreEmpty(t *testing.T) {
	m := NewMemoryStore("", nil)
	_, ok, err := m.Load(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore("k", nil)
	require.NoError(t, m.Save(ctx, sampleSnapshot()))

	got, ok, err := m.Load(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, sampleSnapshot(), got)
}

func TestMemoryStoreDiscardsCorruptRecord(t *testing.T) {
	m := NewMemoryStore("", nil)
	m.Put([]byte(`{"remaining": [`))

	_, ok, err := m.Load(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)

	_, present := m.Raw()
	assert.False(t, present)
}

func TestEngineRestartThroughMemoryStore(t *testing.T) {
	m := NewMemoryStore("", nil)

	first := deck.NewService(newEngine(t, m))
	first.Reset(1)
	first.Shuffle()
	first.Draw(5)
	want := first.State()
	first.Close()

	second := deck.NewService(newEngine(t, m))
	got := second.State()
	assert.Equal(t, want.Remaining, got.Remaining)
	assert.Equal(t, want.Drawn, got.Drawn)
	assert.Len(t, got.Drawn, 5)
	assert.Len(t, got.Remaining, 52-5+1)
	// history does not survive a restart
	assert.False(t, got.CanUndo)
}

func TestEngineStartsFreshAfterCorruptRecord(t *testing.T) {
	m := NewMemoryStore("", nil)
	m.Put([]byte(`garbage`))

	e := newEngine(t, m)
	assert.Len(t, e.Remaining(), 52)
	e.Flush()

	raw, ok := m.Raw()
	require.True(t, ok)
	snap, err := Decode(raw)
	require.NoError(t, err)
	assert.Len(t, snap.Remaining, 52)
}
