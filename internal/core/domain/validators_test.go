package domain_test

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/atomicswap-network/swapd/internal/core/domain"
)

func TestValidateDenom(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		denom string
	}{
		{"short", "uxy"},
		{"with_separators", "ibc/27394FB092D2ECCD56123C74F36E4C1F"},
		{"with_dots_and_dashes", "gamm.pool-1"},
		{"with_colon_and_underscore", "factory:osmo1_foo"},
		{"max_length", "u" + strings.Repeat("a", 127)},
	}
	for i := range tests {
		tt := tests[i]
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, domain.ValidateDenom(tt.denom))
		})
	}
}

func TestFailingValidateDenom(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		denom string
	}{
		{"too_short", "ab"},
		{"too_long", "u" + strings.Repeat("a", 128)},
		{"empty", ""},
		{"leading_digit", "1abc"},
		{"leading_separator", "/abc"},
		{"invalid_character", "uat@m"},
		{"whitespace", "u atom"},
	}
	for i := range tests {
		tt := tests[i]
		t.Run(tt.name, func(t *testing.T) {
			err := domain.ValidateDenom(tt.denom)
			require.Error(t, err)
			require.IsType(t, domain.InvalidDenomError{}, err)
		})
	}
}

func TestValidateAddress(t *testing.T) {
	t.Parallel()

	require.NoError(t, domain.ValidateAddress("maker1"))
	require.NoError(t, domain.ValidateAddress("osmo1xyzabc"))

	tests := []struct {
		name    string
		address string
	}{
		{"empty", ""},
		{"too_short", "ab"},
		{"too_long", "a" + strings.Repeat("b", 90)},
		{"uppercase", "Maker"},
		{"leading_digit", "1maker"},
		{"with_symbol", "maker-1"},
	}
	for i := range tests {
		tt := tests[i]
		t.Run(tt.name, func(t *testing.T) {
			err := domain.ValidateAddress(tt.address)
			require.Error(t, err)
			require.IsType(t, domain.InvalidAddressError{}, err)
		})
	}
}

func TestValidateDistinctDenoms(t *testing.T) {
	t.Parallel()

	require.NoError(t, domain.ValidateDistinctDenoms("uatom", "uosmo"))

	err := domain.ValidateDistinctDenoms("uatom", "uatom")
	require.Error(t, err)
	require.Equal(t, domain.SameDenomError{Denom: "uatom"}, err)
}

func TestValidateFundsCount(t *testing.T) {
	t.Parallel()

	funds := []domain.Coin{domain.NewCoin("uatom", 100)}

	require.NoError(t, domain.ValidateFundsCount(nil, 0))
	require.NoError(t, domain.ValidateFundsCount(funds, 1))

	err := domain.ValidateFundsCount(funds, 0)
	require.Error(t, err)
	require.Equal(t, domain.FundsCountError{Accepted: 0, Received: 1}, err)

	err = domain.ValidateFundsCount(nil, 1)
	require.Error(t, err)
	require.Equal(t, domain.FundsCountError{Accepted: 1, Received: 0}, err)
}

func TestValidateCoin(t *testing.T) {
	t.Parallel()

	require.NoError(t, domain.ValidateCoin(domain.NewCoin("uatom", 100)))

	err := domain.ValidateCoin(domain.NewCoin("uatom", 0))
	require.Error(t, err)
	require.IsType(t, domain.InvalidAmountError{}, err)

	err = domain.ValidateCoin(domain.NewCoin("uatom", -10))
	require.Error(t, err)
	require.IsType(t, domain.InvalidAmountError{}, err)

	err = domain.ValidateCoin(domain.NewCoin("u@", 100))
	require.Error(t, err)
	require.IsType(t, domain.InvalidDenomError{}, err)
}

func TestValidateStatusAndExpiration(t *testing.T) {
	t.Parallel()

	now := uint64(1000)
	order := &domain.SwapOrder{
		Status:  domain.OrderStatusOpen,
		Timeout: now + 100,
	}

	require.NoError(
		t, domain.ValidateStatusAndExpiration(order, domain.OrderStatusOpen, now),
	)

	t.Run("wrong_status", func(t *testing.T) {
		err := domain.ValidateStatusAndExpiration(
			order, domain.OrderStatusAccepted, now,
		)
		require.Error(t, err)
		require.Equal(t, domain.OrderUnavailableError{
			Status:     domain.OrderStatusOpen,
			Expiration: now + 100,
		}, err)
	})

	t.Run("expired", func(t *testing.T) {
		expiredOrder := &domain.SwapOrder{
			Status:  domain.OrderStatusOpen,
			Timeout: now - 1,
		}
		err := domain.ValidateStatusAndExpiration(
			expiredOrder, domain.OrderStatusOpen, now,
		)
		require.Error(t, err)
		require.Equal(t, domain.OrderUnavailableError{
			Status:     domain.OrderStatusOpen,
			Expiration: now - 1,
		}, err)
	})

	t.Run("not_expired_at_exact_timeout", func(t *testing.T) {
		boundaryOrder := &domain.SwapOrder{
			Status:  domain.OrderStatusOpen,
			Timeout: now,
		}
		require.NoError(t, domain.ValidateStatusAndExpiration(
			boundaryOrder, domain.OrderStatusOpen, now,
		))
	})
}

func TestCheckCoinsMatch(t *testing.T) {
	t.Parallel()

	expected := domain.NewCoin("uatom", 1000)

	require.NoError(t, domain.CheckCoinsMatch(domain.NewCoin("uatom", 1000), expected))

	tests := []struct {
		name string
		sent domain.Coin
	}{
		{"wrong_denom", domain.NewCoin("uosmo", 1000)},
		{"lower_amount", domain.NewCoin("uatom", 999)},
		{"higher_amount", domain.NewCoin("uatom", 1001)},
		{"fractional_amount", domain.Coin{
			Denom:  "uatom",
			Amount: decimal.RequireFromString("1000.5"),
		}},
	}
	for i := range tests {
		tt := tests[i]
		t.Run(tt.name, func(t *testing.T) {
			err := domain.CheckCoinsMatch(tt.sent, expected)
			require.Error(t, err)
			require.Equal(t, domain.WrongCoinError{
				Sent:     tt.sent,
				Expected: expected,
			}, err)
		})
	}
}
