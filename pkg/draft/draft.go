// Package draft sequences multi-step edits against the store engine so
// intermediate state is never lost or double-applied: the save flow, the
// asynchronous attachment hand-off from a side screen, the
// unsaved-changes exit guard, and the dismiss-gesture delete.
package draft

import (
	"sync"

	"github.com/google/uuid"

	"github.com/scribedb/scribe/pkg/core"
)

// State tracks a draft through its lifecycle:
// New -> Editing -> (Saved | Discarded). A Saved note re-enters Editing
// when reopened; Discarded is terminal for that draft instance.
type State string

const (
	StateNew       State = "NEW"
	StateEditing   State = "EDITING"
	StateSaved     State = "SAVED"
	StateDiscarded State = "DISCARDED"
)

// Draft is an in-memory, not-yet-persisted copy of a note being edited.
// A side flow (drawing screen, voice recorder) may touch it concurrently
// with the editor, so all access goes through its lock.
type Draft struct {
	mu      sync.Mutex
	token   string
	note    core.Note
	state   State
	dirty   bool
	pending *string // attachment produced by a side flow, merged at save

	// gen counts edits. Save snapshots it before the backend write and
	// commits its post-write bookkeeping only if no edit landed while
	// the write was in flight.
	gen uint64
}

func newDraft(n core.Note, state State) *Draft {
	return &Draft{
		token: uuid.NewString(),
		note:  n,
		state: state,
	}
}

// Token identifies this draft instance, e.g. in logs. A discarded draft
// is never resurrected; starting over creates a new token.
func (d *Draft) Token() string {
	return d.token
}

// Note returns a snapshot of the draft's current content.
func (d *Draft) Note() core.Note {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.note
}

// State returns the draft's lifecycle state.
func (d *Draft) State() State {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

// Dirty reports whether any field changed since the draft was opened or
// last saved. The exit guard keys off this.
func (d *Draft) Dirty() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.dirty
}

// SetTitle updates the draft title.
func (d *Draft) SetTitle(title string) {
	d.edit(func(n *core.Note) { n.Title = title })
}

// SetContent replaces the draft body.
func (d *Draft) SetContent(content string) {
	d.edit(func(n *core.Note) { n.Content = content })
}

// SetCategory reassigns the draft's category.
func (d *Draft) SetCategory(category string) {
	d.edit(func(n *core.Note) { n.Category = category })
}

// AppendTranscript adds dictated text to the body, separated by a space
// from what is already there. Appends never overwrite existing content.
func (d *Draft) AppendTranscript(text string) {
	d.edit(func(n *core.Note) { n.AppendContent(text) })
}

// ClearDrawing removes the attachment, both stored and pending.
func (d *Draft) ClearDrawing() {
	d.edit(func(n *core.Note) { n.ClearDrawing() })
	d.mu.Lock()
	d.pending = nil
	d.mu.Unlock()
}

// edit applies fn unless the draft is already discarded or saved-and-
// closed. Editing a fresh or saved draft moves it to Editing.
func (d *Draft) edit(fn func(*core.Note)) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.state == StateDiscarded {
		return
	}
	fn(&d.note)
	d.gen++
	d.dirty = true
	d.state = StateEditing
}
