package domain

import (
	"github.com/shopspring/decimal"
)

// Coin is a fungible amount of a ledger asset, identified by its
// denomination.
type Coin struct {
	Denom  string
	Amount decimal.Decimal
}

// NewCoin returns a coin with the given denom and an integer amount.
func NewCoin(denom string, amount int64) Coin {
	return Coin{Denom: denom, Amount: decimal.NewFromInt(amount)}
}

// Equal returns whether the two coins match in both denom and amount.
func (c Coin) Equal(other Coin) bool {
	return c.Denom == other.Denom && c.Amount.Equal(other.Amount)
}

func (c Coin) String() string {
	return c.Amount.String() + c.Denom
}
