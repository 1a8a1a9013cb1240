package market

import (
	"fmt"
	"math/big"
	"strings"
)

// Side distinguishes seller-initiated sales from buyer-initiated offers. The
// side decides transfer direction and the authorization rules at creation.
type Side uint8

const (
	SideSale Side = iota
	SideOffer
)

// Valid reports whether the side value is supported.
func (s Side) Valid() bool {
	switch s {
	case SideSale, SideOffer:
		return true
	default:
		return false
	}
}

func (s Side) String() string {
	switch s {
	case SideSale:
		return "sale"
	case SideOffer:
		return "offer"
	default:
		return fmt.Sprintf("side(%d)", uint8(s))
	}
}

// ParseSide converts the wire representation back into a Side.
func ParseSide(raw string) (Side, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "sale":
		return SideSale, nil
	case "offer":
		return SideOffer, nil
	default:
		return 0, fmt.Errorf("%w: unknown side %q", ErrInvalidInput, raw)
	}
}

// PaymentKind tags the payment denomination variant.
type PaymentKind uint8

const (
	PaymentNative PaymentKind = iota
	PaymentFungible
)

// PaymentDenom is the tagged payment denomination of a swap: either the
// chain's native currency or a fungible token tracked by an external ledger.
// Modelling the choice as a tagged value keeps denom handling exhaustive at
// every site that processes a swap.
type PaymentDenom struct {
	Kind  PaymentKind
	Token string
}

// NativePayment returns the native-currency denomination.
func NativePayment() PaymentDenom {
	return PaymentDenom{Kind: PaymentNative}
}

// FungiblePayment returns a fungible-token denomination for the given token
// ledger identifier.
func FungiblePayment(token string) PaymentDenom {
	return PaymentDenom{Kind: PaymentFungible, Token: strings.TrimSpace(token)}
}

// IsFungible reports whether the denom refers to a fungible token ledger.
func (d PaymentDenom) IsFungible() bool { return d.Kind == PaymentFungible }

// Valid reports whether the denom is structurally sound.
func (d PaymentDenom) Valid() bool {
	switch d.Kind {
	case PaymentNative:
		return d.Token == ""
	case PaymentFungible:
		return strings.TrimSpace(d.Token) != ""
	default:
		return false
	}
}

func (d PaymentDenom) String() string {
	if d.IsFungible() {
		return d.Token
	}
	return "native"
}

// BlockInfo captures the execution context used for expiration checks.
type BlockInfo struct {
	Height uint64
	Time   int64
}

// Expiration bounds the validity of a swap by block height, timestamp, or
// both. Zero values leave the corresponding bound open; the zero Expiration
// never expires.
type Expiration struct {
	Height uint64
	Time   int64
}

// IsExpired reports whether the expiration has elapsed at the given block.
func (e Expiration) IsExpired(block BlockInfo) bool {
	if e.Height > 0 && block.Height >= e.Height {
		return true
	}
	if e.Time > 0 && block.Time >= e.Time {
		return true
	}
	return false
}

// Coin is an amount of a native denomination attached to a call.
type Coin struct {
	Denom  string
	Amount *big.Int
}

// SwapRecord is the persisted definition of a swap. Identity fields are
// frozen at creation; only Price and Expires may change afterwards.
type SwapRecord struct {
	ID         string
	Creator    string
	Collection string
	AssetID    string
	Payment    PaymentDenom
	Price      *big.Int
	Expires    Expiration
	Side       Side
}

// Clone returns a deep copy so callers can mutate the result without
// affecting the stored instance.
func (r *SwapRecord) Clone() *SwapRecord {
	if r == nil {
		return nil
	}
	clone := *r
	if r.Price != nil {
		clone.Price = new(big.Int).Set(r.Price)
	} else {
		clone.Price = big.NewInt(0)
	}
	return &clone
}

// IsExpired reports whether the record has expired at the given block.
func (r *SwapRecord) IsExpired(block BlockInfo) bool {
	if r == nil {
		return false
	}
	return r.Expires.IsExpired(block)
}

// SameAsset reports whether the other record references the same asset.
func (r *SwapRecord) SameAsset(other *SwapRecord) bool {
	if r == nil || other == nil {
		return false
	}
	return r.Collection == other.Collection && r.AssetID == other.AssetID
}

// SanitizeRecord validates and normalises a swap definition, returning a
// cloned instance with trimmed identifiers and a non-nil price. The original
// value is not mutated.
func SanitizeRecord(r *SwapRecord) (*SwapRecord, error) {
	if r == nil {
		return nil, fmt.Errorf("%w: nil swap record", ErrInvalidInput)
	}
	clone := r.Clone()
	clone.ID = strings.TrimSpace(clone.ID)
	clone.Creator = strings.TrimSpace(clone.Creator)
	clone.Collection = strings.TrimSpace(clone.Collection)
	clone.AssetID = strings.TrimSpace(clone.AssetID)
	if clone.ID == "" {
		return nil, fmt.Errorf("%w: swap id required", ErrInvalidInput)
	}
	if clone.Creator == "" {
		return nil, fmt.Errorf("%w: creator required", ErrInvalidInput)
	}
	if clone.Collection == "" {
		return nil, fmt.Errorf("%w: asset collection required", ErrInvalidInput)
	}
	if clone.AssetID == "" {
		return nil, fmt.Errorf("%w: asset id required", ErrInvalidInput)
	}
	if !clone.Side.Valid() {
		return nil, fmt.Errorf("%w: invalid side %d", ErrInvalidInput, clone.Side)
	}
	if !clone.Payment.Valid() {
		return nil, fmt.Errorf("%w: malformed payment denom", ErrInvalidInput)
	}
	if clone.Price.Sign() < 0 {
		return nil, fmt.Errorf("%w: price must be non-negative", ErrInvalidInput)
	}
	if clone.Price.BitLen() > 128 {
		return nil, fmt.Errorf("%w: price exceeds 128 bits", ErrInvalidInput)
	}
	if clone.Expires.Time < 0 {
		return nil, fmt.Errorf("%w: negative expiration time", ErrInvalidInput)
	}
	return clone, nil
}
