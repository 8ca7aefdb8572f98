package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	// ErrUnauthorized is returned when the sender of a request is not the
	// party required by the order lifecycle.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrSenderIsMaker is returned when a maker tries to accept its own order.
	ErrSenderIsMaker = errors.New("maker cannot accept its own order")
	// ErrOrderNotFound ...
	ErrOrderNotFound = errors.New("swap order not found")
	// ErrPointerNotFound is returned when no pointer record exists for a
	// settlement notification. It flags a violated protocol invariant, not a
	// user input error.
	ErrPointerNotFound = errors.New("order pointer not found")
	// ErrConfigNotInitialized ...
	ErrConfigNotInitialized = errors.New("config is not initialized")
	// ErrConfigAlreadyInitialized ...
	ErrConfigAlreadyInitialized = errors.New("config is already initialized")
)

// InvalidDenomError is returned when an asset identifier does not follow the
// host ledger denom rules.
type InvalidDenomError struct {
	Denom  string
	Reason string
}

func (e InvalidDenomError) Error() string {
	return fmt.Sprintf("invalid denom %s: %s", e.Denom, e.Reason)
}

// InvalidAddressError is returned when an identity does not resolve to a
// valid ledger address.
type InvalidAddressError struct {
	Address string
	Reason  string
}

func (e InvalidAddressError) Error() string {
	return fmt.Sprintf("invalid address %s: %s", e.Address, e.Reason)
}

// InvalidAmountError is returned when a coin carries a null or negative
// amount.
type InvalidAmountError struct {
	Amount decimal.Decimal
}

func (e InvalidAmountError) Error() string {
	return fmt.Sprintf("invalid coin amount %s: must be positive", e.Amount)
}

// SameDenomError is returned when the two legs of a swap share the same
// denom.
type SameDenomError struct {
	Denom string
}

func (e SameDenomError) Error() string {
	return fmt.Sprintf("first denom is equal to second denom: %s", e.Denom)
}

// FundsCountError is returned when the number of coins attached to a request
// differs from the one accepted by the handler.
type FundsCountError struct {
	Accepted int
	Received int
}

func (e FundsCountError) Error() string {
	return fmt.Sprintf(
		"wrong number of coins: accepted %d, received %d", e.Accepted, e.Received,
	)
}

// OrderUnavailableError is returned when an order is not in the status
// required by a transition, or its expiration time has passed. The two
// conditions collapse into this single kind, carrying the actual status and
// expiration for diagnostics.
type OrderUnavailableError struct {
	Status     OrderStatus
	Expiration uint64
}

func (e OrderUnavailableError) Error() string {
	return fmt.Sprintf(
		"swap order not available: status %s, expiration block time %d",
		e.Status, e.Expiration,
	)
}

// WrongCoinError is returned when the attached coin differs from the expected
// one in denom or amount.
type WrongCoinError struct {
	Sent     Coin
	Expected Coin
}

func (e WrongCoinError) Error() string {
	return fmt.Sprintf("sent wrong coins %s, expected %s", e.Sent, e.Expected)
}
