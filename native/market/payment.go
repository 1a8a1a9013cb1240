package market

import (
	"fmt"
	"math/big"
)

// RequireAtLeast succeeds when some attached fund entry matches the required
// denom with an amount greater than or equal to the required amount. A zero
// or nil required amount is a no-op.
func RequireAtLeast(sent []Coin, required Coin) error {
	if required.Amount == nil || required.Amount.Sign() <= 0 {
		return nil
	}
	for _, coin := range sent {
		if coin.Denom == required.Denom && coin.Amount != nil && coin.Amount.Cmp(required.Amount) >= 0 {
			return nil
		}
	}
	return fmt.Errorf("%w: need %s %s", ErrInsufficientFunds, required.Amount, required.Denom)
}

// RequireExact succeeds only when some attached fund entry matches the
// required denom with exactly the required amount. It serves hosts where
// overpayment must be rejected outright rather than forwarded.
func RequireExact(sent []Coin, required Coin) error {
	if required.Amount == nil || required.Amount.Sign() <= 0 {
		return nil
	}
	for _, coin := range sent {
		if coin.Denom == required.Denom && coin.Amount != nil && coin.Amount.Cmp(required.Amount) == 0 {
			return nil
		}
	}
	return fmt.Errorf("%w: need exactly %s %s", ErrExactFundsMismatch, required.Amount, required.Denom)
}

// SentAmount returns the amount of the first attached fund entry matching the
// denom, or nil when none matches.
func SentAmount(sent []Coin, denom string) *big.Int {
	for _, coin := range sent {
		if coin.Denom == denom && coin.Amount != nil {
			return new(big.Int).Set(coin.Amount)
		}
	}
	return nil
}
