package domain

import (
	"context"

	"github.com/google/uuid"
)

// PointerRepository is the abstraction for any kind of database intended to
// persist OrderPointers, keyed by the correlation id minted at dispatch time.
type PointerRepository interface {
	// AddPointer persists the given pointer under its correlation id.
	AddPointer(ctx context.Context, pointer OrderPointer) error
	// GetPointer returns the pointer stored under the given correlation id,
	// or ErrPointerNotFound.
	GetPointer(ctx context.Context, correlationId uuid.UUID) (*OrderPointer, error)
	// GetPointerForOrder returns the pointer referencing the given order id,
	// or ErrPointerNotFound.
	GetPointerForOrder(ctx context.Context, orderId uint64) (*OrderPointer, error)
	// RemovePointer deletes the pointer stored under the given correlation
	// id.
	RemovePointer(ctx context.Context, correlationId uuid.UUID) error
}
