package deck

import (
	"sync"
	"sync/atomic"

	"deck-of-cards-go/internal/cards"
)

type Pile string

const (
	PileRemaining Pile = "remaining"
	PileDrawn     Pile = "drawn"
)

// Event carries the new contents of one pile. Cards is a private copy per observer.
type Event struct {
	Pile  Pile
	Cards []cards.Card
}

// Observer is called synchronously, in subscription order, for every pile
// change. Once its detach func returns it is not called again, even for the
// remainder of an event already being delivered.
type Observer func(Event)

type subscription struct {
	id       int
	fn       Observer
	detached atomic.Bool
}

type registry struct {
	mu     sync.Mutex
	nextID int
	subs   []*subscription
}

func (r *registry) add(fn Observer) func() {
	r.mu.Lock()
	id := r.nextID
	r.nextID++
	sub := &subscription{id: id, fn: fn}
	r.subs = append(r.subs, sub)
	r.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			sub.detached.Store(true)
			r.mu.Lock()
			defer r.mu.Unlock()
			for i, s := range r.subs {
				if s.id == id {
					r.subs = append(r.subs[:i:i], r.subs[i+1:]...)
					return
				}
			}
		})
	}
}

func (r *registry) publish(pile Pile, cs []cards.Card) {
	r.mu.Lock()
	subs := append([]*subscription(nil), r.subs...)
	r.mu.Unlock()

	for _, s := range subs {
		// detached by an earlier observer in this round
		if s.detached.Load() {
			continue
		}
		s.fn(Event{Pile: pile, Cards: cloneCards(cs)})
	}
}

func (r *registry) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.subs)
}
