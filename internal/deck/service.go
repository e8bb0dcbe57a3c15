package deck

import (
	"strconv"
	"sync"

	"deck-of-cards-go/internal/cards"
)

// View is what a renderer needs to draw the table.
type View struct {
	Remaining []cards.Card `json:"remaining"`
	Drawn     []cards.Card `json:"drawn"`
	Points    int          `json:"points"`
	CanUndo   bool         `json:"can_undo"`
	CanRedo   bool         `json:"can_redo"`
	CanDraw   bool         `json:"can_draw"`
	UndoDepth int          `json:"undo_depth"`
	RedoDepth int          `json:"redo_depth"`
}

// Service serializes access to one Engine and records shuffle, draw and
// sort as undoable commands. Observers run while the service lock is held
// and must not call back into the Service.
type Service struct {
	mu     sync.Mutex
	engine *Engine
}

func NewService(e *Engine) *Service {
	return &Service{engine: e}
}

// Subscribe attaches fn to the engine's change stream.
func (s *Service) Subscribe(fn Observer) func() {
	return s.engine.Subscribe(fn)
}

func (s *Service) Reset(jokers int) View {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.engine.Reset(jokers)
	return s.viewLocked()
}

func (s *Service) Shuffle() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.engine.history.Run("shuffle", s.engine.Shuffle)
	return s.viewLocked()
}

// Draw is a no-op for count <= 0 and records nothing in that case.
func (s *Service) Draw(count int) View {
	s.mu.Lock()
	defer s.mu.Unlock()
	if count > 0 {
		s.engine.history.Run("draw "+strconv.Itoa(count), func() { s.engine.Draw(count) })
	}
	return s.viewLocked()
}

func (s *Service) SortDrawn() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.engine.history.Run("sort", s.engine.SortDrawn)
	return s.viewLocked()
}

func (s *Service) Undo() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.engine.history.Undo()
	return s.viewLocked()
}

func (s *Service) Redo() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.engine.history.Redo()
	return s.viewLocked()
}

func (s *Service) State() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.viewLocked()
}

// History returns the undo entries (oldest first) and the redo depth.
func (s *Service) History() ([]Entry, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.history.Entries(), s.engine.history.RedoDepth()
}

// Flush blocks until every change so far has reached the store.
func (s *Service) Flush() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.engine.Flush()
}

// Close flushes pending saves and stops persistence.
func (s *Service) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.engine.Close()
}

func (s *Service) viewLocked() View {
	e := s.engine
	return View{
		Remaining: e.Remaining(),
		Drawn:     e.Drawn(),
		Points:    e.DrawnPoints(),
		CanUndo:   e.history.CanUndo(),
		CanRedo:   e.history.CanRedo(),
		CanDraw:   len(e.remaining) > 0,
		UndoDepth: e.history.UndoDepth(),
		RedoDepth: e.history.RedoDepth(),
	}
}
