package booking

import "github.com/google/uuid"

// EventKind classifies an audit event the way the change feed exposes it.
type EventKind string

const (
	EventAdd    EventKind = "ADD"
	EventModify EventKind = "MODIFY"
	EventDelete EventKind = "DELETE"
)

// ChangeEvent is one entry of the booking audit feed. Every mutation and
// every auto-correction emits one; none is ever discarded.
type ChangeEvent struct {
	Kind      EventKind
	BookingID uuid.UUID
	Message   string
}
