package draft

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/scribedb/scribe/pkg/core"
	"github.com/scribedb/scribe/pkg/store"
)

// ErrDiscarded is returned when an operation targets a draft whose
// instance was already discarded. Start a fresh draft instead.
var ErrDiscarded = errors.New("draft was discarded")

// Coordinator owns the edit flows that span more than one engine call.
// It is solely responsible for user-visible failure messaging; engine
// errors pass through it unchanged.
type Coordinator struct {
	engine *store.Engine
	logger *slog.Logger

	mu        sync.Mutex
	dismissed map[int64]bool // ids already deleted via gesture this session
}

// NewCoordinator creates a coordinator bound to one store engine.
func NewCoordinator(engine *store.Engine, logger *slog.Logger) *Coordinator {
	return &Coordinator{
		engine:    engine,
		logger:    logger,
		dismissed: make(map[int64]bool),
	}
}

// NewDraft starts a blank draft for a note that does not exist yet.
// The ID stays unset until the first successful save.
func (c *Coordinator) NewDraft() *Draft {
	return newDraft(core.NewNote(""), StateNew)
}

// Open loads an existing note into a draft for editing.
func (c *Coordinator) Open(ctx context.Context, id int64) (*Draft, error) {
	n, err := c.engine.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return newDraft(n, StateEditing), nil
}

// Save validates the draft, merges any pending attachment, and persists
// it. A draft that already carries an ID updates in place; otherwise
// this is a creation and the stored ID lands back on the draft.
func (c *Coordinator) Save(ctx context.Context, d *Draft) (core.Note, error) {
	d.mu.Lock()
	if d.state == StateDiscarded {
		d.mu.Unlock()
		return core.Note{}, ErrDiscarded
	}

	n := d.note
	n.Normalize()
	if n.Title == "" {
		d.mu.Unlock()
		return core.Note{}, &core.ValidationError{Field: "title", Reason: "must not be empty"}
	}

	if d.pending != nil {
		n.Drawing = d.pending
	}
	gen := d.gen
	d.mu.Unlock()

	stored, err := c.engine.Put(ctx, n)
	if err != nil {
		if c.logger != nil {
			c.logger.Error("save failed", "draft", d.Token(), "error", err)
		}
		return core.Note{}, err
	}

	d.mu.Lock()
	if d.gen == gen {
		d.note = stored
		d.pending = nil
		d.dirty = false
		d.state = StateSaved
	} else {
		// An edit or attachment landed while the write was in flight.
		// What got persisted is the pre-edit snapshot; keep the newer
		// state live and dirty so the exit guard still fires and the
		// next save carries it. Only the assigned ID is adopted.
		d.note.ID = stored.ID
	}
	d.mu.Unlock()

	if c.logger != nil {
		c.logger.Debug("draft saved", "draft", d.Token(), "id", stored.ID)
	}
	return stored, nil
}

// AttachDrawing merges an attachment produced asynchronously by a side
// flow into the live draft. Last writer wins on the draft snapshot: the
// caller's in-progress title and content are carried forward untouched,
// only the attachment is added. The merge is applied at save time so a
// later attachment from the same session replaces an earlier one.
func (c *Coordinator) AttachDrawing(d *Draft, payload string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.state == StateDiscarded {
		return ErrDiscarded
	}
	d.pending = &payload
	d.gen++
	d.dirty = true
	d.state = StateEditing
	return nil
}

// RequestExit implements the unsaved-changes guard: it reports whether
// leaving the editor needs a confirmation step. A clean draft exits
// freely.
func (c *Coordinator) RequestExit(d *Draft) (needsConfirm bool) {
	return d.Dirty()
}

// ConfirmDiscard abandons the draft. The in-memory changes are dropped
// and the draft instance is terminal; starting again requires NewDraft
// or Open.
func (c *Coordinator) ConfirmDiscard(d *Draft) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.state = StateDiscarded
	d.pending = nil

	if c.logger != nil {
		c.logger.Debug("draft discarded", "draft", d.token)
	}
}

// CancelExit resumes editing after a declined confirmation. No state is
// lost; it exists so call sites read as the two halves of the guard.
func (c *Coordinator) CancelExit(d *Draft) {}

// Dismiss deletes a note in response to a dismiss gesture. Gestures can
// fire several dismiss events for the same item, so deletion is
// idempotent by ID for the duration of the visible session: only the
// first call reaches the engine. Returns whether this call deleted.
func (c *Coordinator) Dismiss(ctx context.Context, id int64) (bool, error) {
	c.mu.Lock()
	if c.dismissed[id] {
		c.mu.Unlock()
		return false, nil
	}
	c.dismissed[id] = true
	c.mu.Unlock()

	if err := c.engine.Delete(ctx, id); err != nil {
		// Let a retry through; the delete never committed. A duplicate
		// gesture racing this failure has already been answered
		// (false, nil). Gesture events for one row arrive sequentially
		// on the UI thread, so that answer stands; the un-mark here
		// means the next gesture retries for real.
		c.mu.Lock()
		delete(c.dismissed, id)
		c.mu.Unlock()
		return false, err
	}

	if c.logger != nil {
		c.logger.Debug("note dismissed", "id", id)
	}
	return true, nil
}

// ResetSession clears the dismissed-id set when a new visible session
// starts (e.g. the list screen regains focus).
func (c *Coordinator) ResetSession() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dismissed = make(map[int64]bool)
}
