package domain

import "github.com/google/uuid"

// OrderPointer is the ephemeral record correlating an in-flight settlement
// dispatch with the order and the parties it belongs to. One pointer exists
// for every dispatched settlement and is removed when the settlement
// resolves, with success or failure.
type OrderPointer struct {
	// CorrelationId is minted per dispatch and is the only payload carried
	// by a failure notification.
	CorrelationId uuid.UUID
	OrderId       uint64
	Maker         string
	Taker         string
}
