package ports

import (
	"context"

	"github.com/atomicswap-network/swapd/internal/core/domain"
)

// BankService is the host ledger custody primitive. Transfers issued within
// a handler invocation are applied atomically with the rest of the handler
// effects by the host.
type BankService interface {
	// Transfer moves the given coins between two ledger accounts. It fails
	// if the source account does not hold the required balance.
	Transfer(ctx context.Context, from, to string, coins []domain.Coin) error
}
