package market

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSplitFeeVector(t *testing.T) {
	split, err := SplitFee(big.NewInt(123456), 35)
	require.NoError(t, err)
	require.Equal(t, "43209", split.Marketplace.String())
	require.Equal(t, "80247", split.Seller.String())
}

func TestSplitFeeConservation(t *testing.T) {
	maxU128 := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 128), big.NewInt(1))
	amounts := []*big.Int{
		big.NewInt(1),
		big.NewInt(99),
		big.NewInt(1_000_000),
		new(big.Int).Sub(maxU128, big.NewInt(1)),
		maxU128,
	}
	percents := []uint64{1, 5, 13, 30, 50, 99}

	for _, amount := range amounts {
		for _, percent := range percents {
			split, err := SplitFee(amount, percent)
			require.NoErrorf(t, err, "amount=%s percent=%d", amount, percent)
			sum := new(big.Int).Add(split.Marketplace, split.Seller)
			require.Zerof(t, sum.Cmp(amount), "shares must sum to the principal (amount=%s percent=%d)", amount, percent)
			require.Truef(t, split.Marketplace.Cmp(amount) <= 0, "marketplace share exceeds principal (amount=%s percent=%d)", amount, percent)
		}
	}
}

func TestSplitFeeRejections(t *testing.T) {
	// A full-percent split consumes the principal.
	_, err := SplitFee(big.NewInt(1000), 100)
	require.ErrorIs(t, err, ErrInvalidInput)

	// Zero principal: any share reaches the principal.
	_, err = SplitFee(big.NewInt(0), 5)
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = SplitFee(big.NewInt(1000), 101)
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = SplitFee(big.NewInt(-5), 5)
	require.ErrorIs(t, err, ErrInvalidInput)

	over := new(big.Int).Lsh(big.NewInt(1), 129)
	_, err = SplitFee(over, 5)
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestSplitFeeZeroPercent(t *testing.T) {
	split, err := SplitFee(big.NewInt(777), 0)
	require.NoError(t, err)
	require.Zero(t, split.Marketplace.Sign())
	require.Equal(t, "777", split.Seller.String())
}

func TestOnlySeller(t *testing.T) {
	split := OnlySeller(big.NewInt(42))
	require.Zero(t, split.Marketplace.Sign())
	require.Equal(t, "42", split.Seller.String())

	split = OnlySeller(nil)
	require.Zero(t, split.Seller.Sign())
}
