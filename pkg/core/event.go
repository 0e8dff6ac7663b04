package core

// EventType represents the type of change in the collection.
type EventType string

const (
	EventCreate EventType = "CREATE"
	EventModify EventType = "MODIFY"
	EventDelete EventType = "DELETE"
)

// Event represents a committed mutation. Consumers (query re-evaluation,
// widget snapshot publishing) observe the collection through these.
type Event struct {
	Type      EventType
	ID        int64
	Category  string
	Timestamp int64 // Unix timestamp
}
