package deck

import (
	"context"
	"fmt"
	"time"

	"deck-of-cards-go/internal/cards"

	"go.uber.org/zap"
)

const saveTimeout = 5 * time.Second

// Engine owns the remaining and drawn piles.
//
// Engine is not safe for concurrent use; Service serializes callers. Every
// mutation publishes the piles it changed before returning. A mutation
// started from inside an observer callback is deferred until the current
// one has finished notifying.
type Engine struct {
	remaining []cards.Card
	drawn     []cards.Card

	observers registry
	history   *History
	writer    *writer
	rng       cards.RandSource
	logger    *zap.Logger

	dispatching bool
	deferred    []func()
}

type Option func(*Engine)

// WithRand replaces the shuffle random source.
func WithRand(src cards.RandSource) Option {
	return func(e *Engine) { e.rng = src }
}

func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithHistoryLimit caps the undo stack; n <= 0 keeps it unbounded.
func WithHistoryLimit(n int) Option {
	return func(e *Engine) { e.history.limit = n }
}

// New builds an engine backed by store (which may be nil). A non-empty
// stored record is adopted as the initial state; an absent or empty one
// starts a fresh 52-card deck. A failed load is returned as an error so
// the stored record is never overwritten by a deck the user did not make.
// Every published change is handed to a background writer; call Close to
// flush it.
func New(ctx context.Context, store Store, opts ...Option) (*Engine, error) {
	e := &Engine{
		remaining: []cards.Card{},
		drawn:     []cards.Card{},
		rng:       cards.CryptoSource{},
		logger:    zap.NewNop(),
	}
	e.history = newHistory(e)
	for _, opt := range opts {
		opt(e)
	}

	loaded := false
	if store != nil {
		snap, ok, err := store.Load(ctx)
		if err != nil {
			return nil, fmt.Errorf("deck startup: %w", err)
		}
		if ok && snap.Len() > 0 {
			e.remaining = cloneCards(snap.Remaining)
			e.drawn = cloneCards(snap.Drawn)
			loaded = true
			e.logger.Info("deck state restored",
				zap.Int("remaining", len(e.remaining)),
				zap.Int("drawn", len(e.drawn)),
			)
		}
		e.writer = newWriter(store, e.logger)
		e.observers.add(e.persist)
	}
	if !loaded {
		e.Reset(0)
	}
	return e, nil
}

// Flush blocks until every change published so far has been saved.
func (e *Engine) Flush() {
	if e.writer != nil {
		e.writer.flush()
	}
}

// Close saves the latest state and stops the background writer. Changes
// made after Close are not persisted.
func (e *Engine) Close() {
	if e.writer != nil {
		e.writer.close()
	}
}

// Subscribe registers fn for every pile change and returns its detach func.
func (e *Engine) Subscribe(fn Observer) func() {
	return e.observers.add(fn)
}

func (e *Engine) History() *History { return e.history }

// Reset replaces the piles with a fresh deck plus jokers and clears the
// history. Reset is not undoable.
func (e *Engine) Reset(jokers int) {
	e.run(func() {
		e.history.Clear()
		e.remaining = cards.NewDeck(jokers)
		e.drawn = []cards.Card{}
		e.logger.Debug("deck reset", zap.Int("jokers", jokers))
		e.publish(PileRemaining, PileDrawn)
	})
}

func (e *Engine) Shuffle() {
	e.run(func() {
		cards.Shuffle(e.remaining, e.rng)
		e.publish(PileRemaining)
	})
}

// Draw moves up to count cards from the front of remaining to the end of
// drawn. count <= 0 does nothing.
func (e *Engine) Draw(count int) {
	if count <= 0 {
		return
	}
	e.run(func() {
		n := min(count, len(e.remaining))
		e.drawn = append(cloneCards(e.drawn), e.remaining[:n]...)
		e.remaining = cloneCards(e.remaining[n:])
		e.publish(PileRemaining, PileDrawn)
	})
}

func (e *Engine) SortDrawn() {
	e.run(func() {
		e.drawn = cards.Sorted(e.drawn)
		e.publish(PileDrawn)
	})
}

// Restore replaces both piles with copies of s and publishes them.
func (e *Engine) Restore(s Snapshot) {
	s = s.Clone()
	e.run(func() {
		e.remaining = s.Remaining
		e.drawn = s.Drawn
		e.publish(PileRemaining, PileDrawn)
	})
}

// Snapshot returns a copy of the current piles.
func (e *Engine) Snapshot() Snapshot {
	return Snapshot{Remaining: cloneCards(e.remaining), Drawn: cloneCards(e.drawn)}
}

func (e *Engine) Remaining() []cards.Card { return cloneCards(e.remaining) }
func (e *Engine) Drawn() []cards.Card     { return cloneCards(e.drawn) }

// DrawnPoints sums the drawn standard cards; jokers count 0.
func (e *Engine) DrawnPoints() int { return cards.Points(e.drawn) }

func (e *Engine) run(fn func()) {
	if e.dispatching {
		e.deferred = append(e.deferred, fn)
		return
	}
	fn()
	for len(e.deferred) > 0 {
		next := e.deferred[0]
		e.deferred = e.deferred[1:]
		next()
	}
}

func (e *Engine) publish(piles ...Pile) {
	e.dispatching = true
	defer func() { e.dispatching = false }()
	for _, p := range piles {
		switch p {
		case PileRemaining:
			e.observers.publish(p, e.remaining)
		case PileDrawn:
			e.observers.publish(p, e.drawn)
		}
	}
}

// persist queues the full state for the writer; the mutation does not wait
// for the save.
func (e *Engine) persist(Event) {
	e.writer.submit(e.Snapshot())
}
