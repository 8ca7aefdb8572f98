package domain

// OrderStatus represents the different statuses that a swap order can assume.
type OrderStatus int

const (
	// OrderStatusOpen is the initial status of a created order.
	OrderStatusOpen OrderStatus = iota
	// OrderStatusAccepted means a taker matched the order and the settlement
	// leg is in flight.
	OrderStatusAccepted
	// OrderStatusConfirmed is the terminal status of a fully settled order.
	OrderStatusConfirmed
	// OrderStatusFailed is the terminal status of an order whose settlement
	// failed and whose taker has been refunded.
	OrderStatusFailed
)

func (s OrderStatus) String() string {
	switch s {
	case OrderStatusOpen:
		return "open"
	case OrderStatusAccepted:
		return "accepted"
	case OrderStatusConfirmed:
		return "confirmed"
	case OrderStatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// SwapOrder is the entity driving a peer-to-peer swap through its lifecycle.
type SwapOrder struct {
	Id    uint64
	Maker string
	// CoinIn is the coin the maker offers, handed over only at confirmation.
	CoinIn Coin
	// CoinOut is the coin the maker wants, attached by the taker at
	// acceptance.
	CoinOut Coin
	// Taker is empty for open orders. When set at creation it restricts who
	// can accept the order; once accepted it holds the matched counterparty
	// and is never reassigned.
	Taker string
	// Timeout is the unix time in seconds after which the order expires.
	Timeout uint64
	Status  OrderStatus
}

// NewSwapOrder returns an open order expiring timeoutSeconds after now.
func NewSwapOrder(
	maker string, coinIn, coinOut Coin, taker string,
	now, timeoutSeconds uint64,
) *SwapOrder {
	return &SwapOrder{
		Maker:   maker,
		CoinIn:  coinIn,
		CoinOut: coinOut,
		Taker:   taker,
		Timeout: now + timeoutSeconds,
		Status:  OrderStatusOpen,
	}
}

// Accept brings an open, non-expired order to the Accepted status, binding
// it to the given taker. The maker cannot accept its own order and a
// restricted order can be accepted only by its designated taker.
func (o *SwapOrder) Accept(taker string, now uint64) error {
	if taker == o.Maker {
		return ErrSenderIsMaker
	}
	if err := ValidateStatusAndExpiration(o, OrderStatusOpen, now); err != nil {
		return err
	}
	if o.Taker != "" && o.Taker != taker {
		return ErrUnauthorized
	}

	o.Taker = taker
	o.Status = OrderStatusAccepted
	return nil
}

// Confirm brings an accepted, non-expired order to the terminal Confirmed
// status.
func (o *SwapOrder) Confirm(now uint64) error {
	if err := ValidateStatusAndExpiration(o, OrderStatusAccepted, now); err != nil {
		return err
	}

	o.Status = OrderStatusConfirmed
	return nil
}

// Fail brings an accepted order to the terminal Failed status. It is invoked
// only by the settlement compensation path.
func (o *SwapOrder) Fail() error {
	if o.Status != OrderStatusAccepted {
		return OrderUnavailableError{Status: o.Status, Expiration: o.Timeout}
	}

	o.Status = OrderStatusFailed
	return nil
}

// IsOpen returns whether the order is in Open status.
func (o *SwapOrder) IsOpen() bool {
	return o.Status == OrderStatusOpen
}

// IsAccepted returns whether the order is in Accepted status.
func (o *SwapOrder) IsAccepted() bool {
	return o.Status == OrderStatusAccepted
}

// IsConfirmed returns whether the order is in Confirmed status.
func (o *SwapOrder) IsConfirmed() bool {
	return o.Status == OrderStatusConfirmed
}

// IsFailed returns whether the order is in Failed status.
func (o *SwapOrder) IsFailed() bool {
	return o.Status == OrderStatusFailed
}

// IsExpired returns whether the order expiration time has passed at the
// given time.
func (o *SwapOrder) IsExpired(now uint64) bool {
	return o.Timeout < now
}
