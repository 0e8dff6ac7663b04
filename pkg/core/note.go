package core

import (
	"strings"
	"time"
)

// Category sentinels. CategoryNone marks a note the user never categorized;
// CategoryAll is only meaningful as a filter value and never stored on a note.
const (
	CategoryNone = "none selected"
	CategoryAll  = "all"
)

// DateLayout is the display format stamped on a note at creation.
const DateLayout = "02/01/2006"

// Note is the central entity of the domain.
// It is the sole persisted record: a short text note with an optional
// sketch attachment, partitioned by a user-defined category.
type Note struct {
	ID       int64   `json:"id"`
	Title    string  `json:"title"`
	Content  string  `json:"content"`
	Category string  `json:"category"`
	Date     string  `json:"date"`
	Favorite bool    `json:"pref"`
	Drawing  *string `json:"drawing"`
}

// NewNote builds an unsaved note with the creation date stamped.
// The ID stays zero until the store assigns one on first Put.
func NewNote(title string) Note {
	return Note{
		Title:    title,
		Category: CategoryNone,
		Date:     FormatDate(time.Now()),
	}
}

// FormatDate renders t in the display layout used for Note.Date.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// IsNew reports whether the note has not been persisted yet.
func (n Note) IsNew() bool {
	return n.ID == 0
}

// Normalize trims title and content whitespace and fills in the
// category sentinel. Called at the save boundary, never in storage.
func (n *Note) Normalize() {
	n.Title = strings.TrimSpace(n.Title)
	n.Content = strings.TrimSpace(n.Content)
	if n.Category == "" {
		n.Category = CategoryNone
	}
}

// AppendContent adds dictated or pasted text to the body without
// destroying what is already there. A single space separates the
// existing content from the appended text.
func (n *Note) AppendContent(text string) {
	if text == "" {
		return
	}
	if n.Content != "" {
		n.Content += " "
	}
	n.Content += text
}

// Attach replaces the drawing payload (a rendered sketch data URI).
func (n *Note) Attach(drawing string) {
	n.Drawing = &drawing
}

// ClearDrawing removes the drawing payload.
func (n *Note) ClearDrawing() {
	n.Drawing = nil
}
