package domain

import "time"

// Wire-level event names pushed to realtime subscribers.
const (
	EventTypeCreated = "created"
	EventTypeUpdated = "updated"
	EventTypeDeleted = "deleted"
)

// Event is an immutable record of a catalog mutation. Exactly one event is
// published per successful mutation; it drives both the realtime broadcast
// and the cache invalidation.
type Event interface {
	EventType() string
	EntryID() string
}

// EntrySnapshot is the full entry projection carried by created/updated
// events and returned by the HTTP API.
type EntrySnapshot struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Images      []string  `json:"images"`
	Category    string    `json:"category"`
	Store       string    `json:"store"`
	Link        string    `json:"link"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// EntryCreatedEvent is published after a new entry is persisted.
type EntryCreatedEvent struct {
	Entry *EntrySnapshot `json:"entry"`
}

func (e *EntryCreatedEvent) EventType() string { return EventTypeCreated }
func (e *EntryCreatedEvent) EntryID() string   { return e.Entry.ID }

// EntryUpdatedEvent is published after an existing entry is persisted.
type EntryUpdatedEvent struct {
	Entry *EntrySnapshot `json:"entry"`
}

func (e *EntryUpdatedEvent) EventType() string { return EventTypeUpdated }
func (e *EntryUpdatedEvent) EntryID() string   { return e.Entry.ID }

// EntryDeletedEvent is published after an entry row is removed. It carries
// only the id; subscribers drop the entry from their local state.
type EntryDeletedEvent struct {
	ID string `json:"id"`
}

func (e *EntryDeletedEvent) EventType() string { return EventTypeDeleted }
func (e *EntryDeletedEvent) EntryID() string   { return e.ID }
