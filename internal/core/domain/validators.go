package domain

// ValidateDenom follows the host ledger validation logic where a denom can
// be 3 - 128 characters long and starts with a letter, followed by either a
// letter, a number, or a separator ( '/' , ':' , '.' , '_' , or '-' ).
func ValidateDenom(denom string) error {
	if len(denom) < 3 || len(denom) > 128 {
		return InvalidDenomError{Denom: denom, Reason: "length must be in [3,128]"}
	}

	if !isASCIILetter(denom[0]) {
		return InvalidDenomError{
			Denom: denom, Reason: "first character is not an ASCII letter",
		}
	}

	for i := 1; i < len(denom); i++ {
		if !isASCIILetter(denom[i]) && !isASCIIDigit(denom[i]) &&
			!isDenomSeparator(denom[i]) {
			return InvalidDenomError{
				Denom:  denom,
				Reason: "characters must be ASCII alphanumerics or one of / : . _ -",
			}
		}
	}

	return nil
}

// ValidateAddress checks that an identity resolves to a well-formed ledger
// address: 3 - 90 lowercase ASCII alphanumerics, starting with a letter.
func ValidateAddress(address string) error {
	if len(address) < 3 || len(address) > 90 {
		return InvalidAddressError{
			Address: address, Reason: "length must be in [3,90]",
		}
	}
	if !isLowerASCIILetter(address[0]) {
		return InvalidAddressError{
			Address: address, Reason: "first character is not a lowercase ASCII letter",
		}
	}
	for i := 1; i < len(address); i++ {
		if !isLowerASCIILetter(address[i]) && !isASCIIDigit(address[i]) {
			return InvalidAddressError{
				Address: address,
				Reason:  "characters must be lowercase ASCII alphanumerics",
			}
		}
	}
	return nil
}

// ValidateCoin checks the coin denom syntax and that its amount is strictly
// positive.
func ValidateCoin(coin Coin) error {
	if err := ValidateDenom(coin.Denom); err != nil {
		return err
	}
	if !coin.Amount.IsPositive() {
		return InvalidAmountError{Amount: coin.Amount}
	}
	return nil
}

// ValidateDistinctDenoms checks that the two denoms of a swap differ.
func ValidateDistinctDenoms(denomIn, denomOut string) error {
	if denomIn == denomOut {
		return SameDenomError{Denom: denomIn}
	}
	return nil
}

// ValidateFundsCount checks that exactly the accepted number of coins has
// been attached to a request.
func ValidateFundsCount(funds []Coin, accepted int) error {
	if len(funds) != accepted {
		return FundsCountError{Accepted: accepted, Received: len(funds)}
	}
	return nil
}

// ValidateStatusAndExpiration checks that the order has the required status
// and is not expired at the given time.
func ValidateStatusAndExpiration(
	order *SwapOrder, status OrderStatus, now uint64,
) error {
	if order.Status != status || order.Timeout < now {
		return OrderUnavailableError{
			Status:     order.Status,
			Expiration: order.Timeout,
		}
	}
	return nil
}

// CheckCoinsMatch checks that the sent coin equals the expected one in both
// denom and amount.
func CheckCoinsMatch(sent, expected Coin) error {
	if !sent.Equal(expected) {
		return WrongCoinError{Sent: sent, Expected: expected}
	}
	return nil
}

func isASCIILetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isLowerASCIILetter(c byte) bool {
	return c >= 'a' && c <= 'z'
}

func isASCIIDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isDenomSeparator(c byte) bool {
	switch c {
	case '/', ':', '.', '_', '-':
		return true
	default:
		return false
	}
}
