package deck

import (
	"sync"
	"testing"

	"deck-of-cards-go/internal/cards"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T, opts ...Option) *Service {
	t.Helper()
	return NewService(mustNew(t, nil, opts...))
}

func TestServiceView(t *testing.T) {
	s := newTestService(t)
	v := s.State()
	assert.Len(t, v.Remaining, 52)
	assert.Empty(t, v.Drawn)
	assert.True(t, v.CanDraw)
	assert.False(t, v.CanUndo)
	assert.False(t, v.CanRedo)

	v = s.Draw(2)
	assert.Equal(t, cards.Points(v.Drawn), v.Points)
	assert.True(t, v.CanUndo)
	assert.Equal(t, 1, v.UndoDepth)

	v = s.Draw(100)
	assert.False(t, v.CanDraw)
	assert.Len(t, v.Drawn, 52)
}

func TestServiceUndoRedoFlow(t *testing.T) {
	s := newTestService(t)
	s.Reset(0)
	start := s.State()

	s.Draw(2)
	v := s.Undo()
	assert.Empty(t, v.Drawn)
	assert.Equal(t, start.Remaining, v.Remaining)
	assert.True(t, v.CanRedo)

	v = s.Redo()
	assert.Len(t, v.Drawn, 2)
	assert.Equal(t, start.Remaining[:2], v.Drawn)

	s.Undo()
	v = s.Shuffle()
	assert.False(t, v.CanRedo)
	assert.Equal(t, v, s.Redo())
}

func TestServiceDrawNonPositiveRecordsNothing(t *testing.T) {
	s := newTestService(t)
	v := s.Draw(0)
	assert.False(t, v.CanUndo)
	entries, redo := s.History()
	assert.Empty(t, entries)
	assert.Zero(t, redo)
}

func TestServiceResetIsNotUndoable(t *testing.T) {
	s := newTestService(t)
	s.Draw(3)
	s.SortDrawn()
	v := s.Reset(2)
	assert.False(t, v.CanUndo)
	assert.Len(t, v.Remaining, 54)

	v = s.Undo()
	assert.Len(t, v.Remaining, 54)
}

func TestServiceHistoryLabels(t *testing.T) {
	s := newTestService(t)
	s.Shuffle()
	s.Draw(4)
	s.SortDrawn()
	s.Undo()

	entries, redo := s.History()
	require.Len(t, entries, 2)
	assert.Equal(t, "shuffle", entries[0].Label)
	assert.Equal(t, "draw 4", entries[1].Label)
	assert.Equal(t, 1, redo)
}

func TestServiceConcurrentCallers(t *testing.T) {
	s := newTestService(t, seeded(3, 3))
	s.Reset(2)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 25; j++ {
				switch (i + j) % 4 {
				case 0:
					s.Draw(1)
				case 1:
					s.Shuffle()
				case 2:
					s.Undo()
				case 3:
					s.SortDrawn()
				}
			}
		}(i)
	}
	wg.Wait()

	v := s.State()
	assert.Equal(t, 54, len(v.Remaining)+len(v.Drawn))
}

func TestServiceSubscribe(t *testing.T) {
	s := newTestService(t)
	var piles []Pile
	detach := s.Subscribe(func(ev Event) { piles = append(piles, ev.Pile) })
	s.Draw(1)
	detach()
	s.Draw(1)
	assert.Equal(t, []Pile{PileRemaining, PileDrawn}, piles)
}
