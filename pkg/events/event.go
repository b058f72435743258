package events

import "time"

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "cart.updated").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// BaseEvent is the plain implementation most publishers use.
type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// Event type codes emitted by the assistant.
const (
	TypeCartUpdated     = "cart.updated"
	TypeSearchPerformed = "search.performed"
)

// NewCartUpdated builds the event published after a successful cart
// mutation.
func NewCartUpdated(sessionID string, itemID int64, quantity int) Event {
	return BaseEvent{
		Type: TypeCartUpdated,
		Data: map[string]interface{}{
			"session_id": sessionID,
			"item_id":    itemID,
			"quantity":   quantity,
		},
		OccurredAt: time.Now(),
	}
}

// NewSearchPerformed builds the event published after a search turn.
func NewSearchPerformed(sessionID, query, status string, products int) Event {
	return BaseEvent{
		Type: TypeSearchPerformed,
		Data: map[string]interface{}{
			"session_id": sessionID,
			"query":      query,
			"status":     status,
			"products":   products,
		},
		OccurredAt: time.Now(),
	}
}
