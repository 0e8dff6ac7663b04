package draft

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scribedb/scribe/pkg/adapters/memory"
	"github.com/scribedb/scribe/pkg/core"
	"github.com/scribedb/scribe/pkg/store"
)

func newTestCoordinator(t *testing.T) (*Coordinator, *store.Engine) {
	t.Helper()
	engine := store.NewEngine(memory.New())
	t.Cleanup(func() { _ = engine.Close() })
	return NewCoordinator(engine, nil), engine
}

func TestSave_CreatesAndAssignsID(t *testing.T) {
	c, engine := newTestCoordinator(t)
	ctx := context.Background()

	d := c.NewDraft()
	d.SetTitle("  Buy milk  ")
	d.SetContent("2 liters")

	stored, err := c.Save(ctx, d)
	require.NoError(t, err)

	assert.NotZero(t, stored.ID)
	assert.Equal(t, "Buy milk", stored.Title, "title trimmed at the save boundary")
	assert.Equal(t, StateSaved, d.State())
	assert.False(t, d.Dirty())

	got, err := engine.Get(ctx, stored.ID)
	require.NoError(t, err)
	assert.Equal(t, stored, got)
}

func TestSave_EmptyTitleRejectedWithoutStoreChange(t *testing.T) {
	c, engine := newTestCoordinator(t)
	ctx := context.Background()

	d := c.NewDraft()
	d.SetTitle("   ")
	d.SetContent("orphan body")

	_, err := c.Save(ctx, d)

	var verr *core.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "title", verr.Field)

	notes, err := engine.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, notes, "failed validation must not alter the collection")
}

func TestSave_UpdateInPlace(t *testing.T) {
	c, engine := newTestCoordinator(t)
	ctx := context.Background()

	d := c.NewDraft()
	d.SetTitle("v1")
	stored, err := c.Save(ctx, d)
	require.NoError(t, err)

	reopened, err := c.Open(ctx, stored.ID)
	require.NoError(t, err)
	assert.Equal(t, StateEditing, reopened.State())

	reopened.SetContent("updated body")
	again, err := c.Save(ctx, reopened)
	require.NoError(t, err)
	assert.Equal(t, stored.ID, again.ID)

	notes, err := engine.List(ctx)
	require.NoError(t, err)
	assert.Len(t, notes, 1)
}

func TestAttachDrawing_LastWriterWinsOnDraftSnapshot(t *testing.T) {
	c, _ := newTestCoordinator(t)
	ctx := context.Background()

	d := c.NewDraft()
	d.SetTitle("sketchy")

	// The drawing screen finishes while the user keeps typing.
	require.NoError(t, c.AttachDrawing(d, "data:image/png;base64,FIRST"))
	d.SetContent("typed after the drawing started")
	require.NoError(t, c.AttachDrawing(d, "data:image/png;base64,SECOND"))

	stored, err := c.Save(ctx, d)
	require.NoError(t, err)

	require.NotNil(t, stored.Drawing)
	assert.Equal(t, "data:image/png;base64,SECOND", *stored.Drawing)
	assert.Equal(t, "typed after the drawing started", stored.Content)
}

// gatedBackend blocks the first notes write until released, holding a
// save suspended mid-flight.
type gatedBackend struct {
	*memory.Backend
	entered chan struct{}
	release chan struct{}
	once    sync.Once
}

func (g *gatedBackend) Store(ctx context.Context, key string, data []byte) error {
	if key == core.KeyNotes {
		g.once.Do(func() {
			close(g.entered)
			<-g.release
		})
	}
	return g.Backend.Store(ctx, key, data)
}

func TestSave_KeepsEditsLandedDuringWrite(t *testing.T) {
	backend := &gatedBackend{
		Backend: memory.New(),
		entered: make(chan struct{}),
		release: make(chan struct{}),
	}
	engine := store.NewEngine(backend)
	t.Cleanup(func() { _ = engine.Close() })
	c := NewCoordinator(engine, nil)
	ctx := context.Background()

	d := c.NewDraft()
	d.SetTitle("sketch")

	var stored core.Note
	var saveErr error
	done := make(chan struct{})
	go func() {
		stored, saveErr = c.Save(ctx, d)
		close(done)
	}()

	// The drawing screen delivers its result while the save is stuck in
	// the backend write.
	<-backend.entered
	require.NoError(t, c.AttachDrawing(d, "data:image/png;base64,LATE"))
	close(backend.release)
	<-done
	require.NoError(t, saveErr)

	// The attachment arrived too late for this write; it must survive
	// on the draft, and the exit guard must still fire.
	assert.True(t, d.Dirty(), "late attachment keeps the draft dirty")
	assert.Equal(t, StateEditing, d.State())
	assert.True(t, c.RequestExit(d), "leaving now must ask for confirmation")

	// The next save persists it against the same record.
	again, err := c.Save(ctx, d)
	require.NoError(t, err)
	assert.Equal(t, stored.ID, again.ID)
	require.NotNil(t, again.Drawing)
	assert.Equal(t, "data:image/png;base64,LATE", *again.Drawing)
	assert.False(t, d.Dirty())
	assert.Equal(t, StateSaved, d.State())
}

func TestAppendTranscript_NeverOverwrites(t *testing.T) {
	c, _ := newTestCoordinator(t)

	d := c.NewDraft()
	d.SetContent("existing text")
	d.AppendTranscript("dictated words")

	assert.Equal(t, "existing text dictated words", d.Note().Content)
}

func TestExitGuard(t *testing.T) {
	c, _ := newTestCoordinator(t)

	d := c.NewDraft()
	assert.False(t, c.RequestExit(d), "clean draft exits freely")

	d.SetTitle("something")
	assert.True(t, c.RequestExit(d), "any modified field intercepts exit")

	// Cancelling resumes editing with no state loss.
	c.CancelExit(d)
	assert.Equal(t, "something", d.Note().Title)
	assert.Equal(t, StateEditing, d.State())

	// Confirming discards: terminal for this instance.
	c.ConfirmDiscard(d)
	assert.Equal(t, StateDiscarded, d.State())

	_, err := c.Save(context.Background(), d)
	assert.ErrorIs(t, err, ErrDiscarded)

	// Edits after discard are dropped.
	d.SetTitle("zombie")
	assert.Equal(t, "something", d.Note().Title)
}

func TestDismiss_IdempotentPerSession(t *testing.T) {
	c, engine := newTestCoordinator(t)
	ctx := context.Background()

	d := c.NewDraft()
	d.SetTitle("swipe me")
	stored, err := c.Save(ctx, d)
	require.NoError(t, err)

	// The gesture fires several dismiss events for the same row.
	deleted, err := c.Dismiss(ctx, stored.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = c.Dismiss(ctx, stored.ID)
	require.NoError(t, err)
	assert.False(t, deleted)

	notes, err := engine.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, notes)

	// A new session forgets the dedup set; the delete stays a no-op.
	c.ResetSession()
	deleted, err = c.Dismiss(ctx, stored.ID)
	require.NoError(t, err)
	assert.True(t, deleted)
}

func TestOpen_MissingNote(t *testing.T) {
	c, _ := newTestCoordinator(t)

	_, err := c.Open(context.Background(), 404)
	assert.ErrorIs(t, err, core.ErrNotFound)
}
