package deck

import (
	"time"

	"github.com/google/uuid"
)

// Command is one reversible transition.
type Command interface {
	Apply()
	Undo()
	Info() Entry
}

// Entry describes a recorded command.
type Entry struct {
	ID    uuid.UUID `json:"id"`
	Label string    `json:"label"`
	At    time.Time `json:"at"`
}

// snapshotCommand restores whole-state snapshots taken around one action.
type snapshotCommand struct {
	entry  Entry
	target *Engine
	before Snapshot
	after  Snapshot
}

func (c *snapshotCommand) Apply()      { c.target.Restore(c.after) }
func (c *snapshotCommand) Undo()       { c.target.Restore(c.before) }
func (c *snapshotCommand) Info() Entry { return c.entry }

// History is an undo/redo stack pair. Most recent commands are last.
type History struct {
	engine *Engine
	undo   []Command
	redo   []Command
	limit  int
}

func newHistory(e *Engine) *History {
	return &History{engine: e}
}

// Run captures the engine state, invokes action (one engine mutation),
// captures the state again and records the pair as an undoable command.
func (h *History) Run(label string, action func()) {
	if h.engine.dispatching {
		h.engine.deferred = append(h.engine.deferred, func() { h.Run(label, action) })
		return
	}
	before := h.engine.Snapshot()
	action()
	after := h.engine.Snapshot()
	h.Push(&snapshotCommand{
		entry:  Entry{ID: uuid.New(), Label: label, At: time.Now().UTC()},
		target: h.engine,
		before: before,
		after:  after,
	})
}

// Push records an already-applied command and drops the redo stack.
func (h *History) Push(cmd Command) {
	h.undo = append(h.undo, cmd)
	if h.limit > 0 && len(h.undo) > h.limit {
		h.undo = append([]Command(nil), h.undo[len(h.undo)-h.limit:]...)
	}
	h.redo = nil
}

// Undo reverts the most recent command. It reports false when there is none.
func (h *History) Undo() bool {
	if len(h.undo) == 0 {
		return false
	}
	cmd := h.undo[len(h.undo)-1]
	h.undo = h.undo[:len(h.undo)-1]
	cmd.Undo()
	h.redo = append(h.redo, cmd)
	return true
}

// Redo re-applies the most recently undone command. It reports false when there is none.
func (h *History) Redo() bool {
	if len(h.redo) == 0 {
		return false
	}
	cmd := h.redo[len(h.redo)-1]
	h.redo = h.redo[:len(h.redo)-1]
	cmd.Apply()
	h.undo = append(h.undo, cmd)
	return true
}

func (h *History) CanUndo() bool { return len(h.undo) > 0 }
func (h *History) CanRedo() bool { return len(h.redo) > 0 }

func (h *History) UndoDepth() int { return len(h.undo) }
func (h *History) RedoDepth() int { return len(h.redo) }

func (h *History) Clear() {
	h.undo = nil
	h.redo = nil
}

// Entries lists the undo stack, oldest first.
func (h *History) Entries() []Entry {
	out := make([]Entry, 0, len(h.undo))
	for _, c := range h.undo {
		out = append(out, c.Info())
	}
	return out
}
