package market

import (
	"fmt"
	"math/big"

	"github.com/holiman/uint256"
)

// FeeSplit divides a swap's proceeds between the marketplace operator and the
// seller.
type FeeSplit struct {
	Marketplace *big.Int
	Seller      *big.Int
}

// OnlySeller returns a split forwarding the whole amount to the seller. It is
// the documented fallback whenever SplitFee rejects the computation.
func OnlySeller(amount *big.Int) FeeSplit {
	seller := big.NewInt(0)
	if amount != nil {
		seller = new(big.Int).Set(amount)
	}
	return FeeSplit{Marketplace: big.NewInt(0), Seller: seller}
}

// SplitFee computes marketplace = floor(amount * feePercent / 100) and
// seller = amount - marketplace. The amount must fit in 128 bits; the product
// is taken at 256-bit width so the numeric extremes cannot overflow. A split
// whose marketplace share would reach or exceed the principal is rejected
// with ErrInvalidInput, leaving the caller to fall back to OnlySeller.
func SplitFee(amount *big.Int, feePercent uint64) (FeeSplit, error) {
	if amount == nil || amount.Sign() < 0 {
		return FeeSplit{}, fmt.Errorf("%w: split amount must be non-negative", ErrInvalidInput)
	}
	if amount.BitLen() > 128 {
		return FeeSplit{}, fmt.Errorf("%w: split amount exceeds 128 bits", ErrInvalidInput)
	}
	if feePercent > 100 {
		return FeeSplit{}, fmt.Errorf("%w: fee percent %d out of range", ErrInvalidInput, feePercent)
	}
	principal, overflow := uint256.FromBig(amount)
	if overflow {
		return FeeSplit{}, fmt.Errorf("%w: split amount exceeds 256 bits", ErrInvalidInput)
	}
	product := new(uint256.Int).Mul(principal, uint256.NewInt(feePercent))
	marketplace := new(uint256.Int).Div(product, uint256.NewInt(100))
	if marketplace.Cmp(principal) >= 0 {
		return FeeSplit{}, fmt.Errorf("%w: marketplace share consumes the principal", ErrInvalidInput)
	}
	seller := new(uint256.Int).Sub(principal, marketplace)
	return FeeSplit{
		Marketplace: marketplace.ToBig(),
		Seller:      seller.ToBig(),
	}, nil
}
