// Package ledger provides an in-process implementation of the host ledger
// collaborators: the funds custody primitive and the delegated-execution
// authorization subsystem. It backs the standalone daemon and the end-to-end
// tests.
package ledger

import (
	"context"
	"fmt"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/atomicswap-network/swapd/internal/core/domain"
)

// InsufficientFundsError is returned by Transfer when the source account
// does not hold the required balance.
type InsufficientFundsError struct {
	Account string
	Coin    domain.Coin
}

func (e InsufficientFundsError) Error() string {
	return fmt.Sprintf(
		"account %s does not hold %s", e.Account, e.Coin,
	)
}

// Bank keeps per-account balances and implements ports.BankService.
type Bank struct {
	locker   *sync.Mutex
	balances map[string]map[string]decimal.Decimal
}

// NewBank returns a Bank with no balances.
func NewBank() *Bank {
	return &Bank{
		locker:   &sync.Mutex{},
		balances: make(map[string]map[string]decimal.Decimal),
	}
}

// Mint credits the given coins to an account.
func (b *Bank) Mint(account string, coins []domain.Coin) {
	b.locker.Lock()
	defer b.locker.Unlock()

	for _, coin := range coins {
		b.credit(account, coin)
	}
}

// Balance returns the amount of denom held by an account.
func (b *Bank) Balance(account, denom string) decimal.Decimal {
	b.locker.Lock()
	defer b.locker.Unlock()

	return b.balances[account][denom]
}

// Transfer moves the given coins between two accounts. The whole transfer
// fails upfront if the source account misses any of the required balances.
func (b *Bank) Transfer(
	_ context.Context, from, to string, coins []domain.Coin,
) error {
	b.locker.Lock()
	defer b.locker.Unlock()

	for _, coin := range coins {
		if b.balances[from][coin.Denom].LessThan(coin.Amount) {
			return InsufficientFundsError{Account: from, Coin: coin}
		}
	}

	for _, coin := range coins {
		b.balances[from][coin.Denom] = b.balances[from][coin.Denom].Sub(coin.Amount)
		b.credit(to, coin)
	}
	return nil
}

func (b *Bank) credit(account string, coin domain.Coin) {
	if b.balances[account] == nil {
		b.balances[account] = make(map[string]decimal.Decimal)
	}
	b.balances[account][coin.Denom] = b.balances[account][coin.Denom].Add(coin.Amount)
}
