package deck

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// writer saves snapshots on its own goroutine. Only the newest pending
// snapshot is kept, so a burst of changes costs at most one extra save.
type writer struct {
	store  Store
	logger *zap.Logger

	mu      sync.Mutex
	cond    *sync.Cond
	pending *Snapshot
	busy    bool
	closed  bool

	closeOnce sync.Once
	done      chan struct{}
}

func newWriter(store Store, logger *zap.Logger) *writer {
	w := &writer{store: store, logger: logger, done: make(chan struct{})}
	w.cond = sync.NewCond(&w.mu)
	go w.loop()
	return w
}

// submit replaces any pending snapshot with s. It never blocks on I/O.
func (w *writer) submit(s Snapshot) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	w.pending = &s
	w.cond.Broadcast()
}

// flush waits until every submitted snapshot has been written.
func (w *writer) flush() {
	w.mu.Lock()
	defer w.mu.Unlock()
	for w.pending != nil || w.busy {
		w.cond.Wait()
	}
}

// close writes the pending snapshot, if any, and stops the goroutine.
func (w *writer) close() {
	w.closeOnce.Do(func() {
		w.mu.Lock()
		w.closed = true
		w.cond.Broadcast()
		w.mu.Unlock()
		<-w.done
	})
}

func (w *writer) loop() {
	defer close(w.done)
	w.mu.Lock()
	for {
		for w.pending == nil && !w.closed {
			w.cond.Wait()
		}
		if w.pending == nil {
			w.mu.Unlock()
			return
		}
		s := *w.pending
		w.pending = nil
		w.busy = true
		w.mu.Unlock()

		w.save(s)

		w.mu.Lock()
		w.busy = false
		w.cond.Broadcast()
	}
}

// save is fire-and-forget: a failed save is logged and the in-memory state stands.
func (w *writer) save(s Snapshot) {
	ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
	defer cancel()
	if err := w.store.Save(ctx, s); err != nil {
		w.logger.Error("save deck state failed", zap.Error(err))
	}
}
