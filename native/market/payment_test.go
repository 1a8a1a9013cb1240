package market

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func coins(denom string, amount int64) []Coin {
	return []Coin{{Denom: denom, Amount: big.NewInt(amount)}}
}

func TestRequireAtLeast(t *testing.T) {
	required := Coin{Denom: "uarch", Amount: big.NewInt(100)}

	require.NoError(t, RequireAtLeast(coins("uarch", 100), required))
	require.NoError(t, RequireAtLeast(coins("uarch", 150), required))
	require.ErrorIs(t, RequireAtLeast(coins("uarch", 99), required), ErrInsufficientFunds)
	require.ErrorIs(t, RequireAtLeast(coins("uother", 100), required), ErrInsufficientFunds)
	require.ErrorIs(t, RequireAtLeast(nil, required), ErrInsufficientFunds)

	// A zero requirement is a no-op.
	require.NoError(t, RequireAtLeast(nil, Coin{Denom: "uarch", Amount: big.NewInt(0)}))
	require.NoError(t, RequireAtLeast(nil, Coin{Denom: "uarch"}))
}

func TestRequireExact(t *testing.T) {
	required := Coin{Denom: "uarch", Amount: big.NewInt(100)}

	require.NoError(t, RequireExact(coins("uarch", 100), required))
	require.ErrorIs(t, RequireExact(coins("uarch", 150), required), ErrExactFundsMismatch)
	require.ErrorIs(t, RequireExact(coins("uarch", 99), required), ErrExactFundsMismatch)
	require.ErrorIs(t, RequireExact(coins("uother", 100), required), ErrExactFundsMismatch)
	require.NoError(t, RequireExact(nil, Coin{Denom: "uarch"}))
}

func TestSentAmount(t *testing.T) {
	sent := []Coin{
		{Denom: "uother", Amount: big.NewInt(7)},
		{Denom: "uarch", Amount: big.NewInt(11)},
		{Denom: "uarch", Amount: big.NewInt(13)},
	}
	amount := SentAmount(sent, "uarch")
	require.NotNil(t, amount)
	require.Equal(t, "11", amount.String())
	require.Nil(t, SentAmount(sent, "missing"))
}
