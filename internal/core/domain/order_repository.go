package domain

import "context"

// OrderRepository is the abstraction for any kind of database intended to
// persist SwapOrders. It is the sole owner of the order id counter.
type OrderRepository interface {
	// AddOrder assigns the next order id to the given order and persists it.
	// Ids come from a single monotonic counter shared across all makers.
	AddOrder(ctx context.Context, order *SwapOrder) (uint64, error)
	// GetOrder returns the order stored under (maker, orderId), or
	// ErrOrderNotFound.
	GetOrder(ctx context.Context, maker string, orderId uint64) (*SwapOrder, error)
	// UpdateOrder allows to commit multiple changes to the same order in a
	// transactional way.
	UpdateOrder(
		ctx context.Context, maker string, orderId uint64,
		updateFn func(order *SwapOrder) (*SwapOrder, error),
	) error
	// GetActiveOrders returns all the orders whose expiration time has not
	// passed at the given time.
	GetActiveOrders(ctx context.Context, now uint64) ([]SwapOrder, error)
	// GetActiveOrdersForMaker returns the non-expired orders created by the
	// given maker.
	GetActiveOrdersForMaker(
		ctx context.Context, maker string, now uint64,
	) ([]SwapOrder, error)
}
