package itemstore

import "time"

// EventType indicates what kind of change occurred in the store
type EventType string

const (
	EventReplaced EventType = "items_replaced"
	EventPatched  EventType = "item_patched"
	EventRestored EventType = "items_restored"
	EventStale    EventType = "items_stale"
)

// Event is a change notification sent to subscribers
type Event struct {
	Type       EventType
	ItemID     int       // Set for EventPatched
	Timestamp  time.Time // When the change happened
	SequenceID uint64    // Store version after the change
}
