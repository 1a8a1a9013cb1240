package market

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/rlp"
)

// storedSwapRecord is the RLP form persisted in the key-value store. Signed
// fields are widened to unsigned types because RLP only encodes unsigned
// integers.
type storedSwapRecord struct {
	ID            string
	Creator       string
	Collection    string
	AssetID       string
	PaymentKind   uint8
	PaymentToken  string
	Price         *big.Int
	ExpiresHeight uint64
	ExpiresTime   uint64
	Side          uint8
}

func encodeSwapRecord(record *SwapRecord) ([]byte, error) {
	if record == nil {
		return nil, fmt.Errorf("%w: nil swap record", ErrInvalidInput)
	}
	price := record.Price
	if price == nil {
		price = big.NewInt(0)
	}
	var expiresTime uint64
	if record.Expires.Time > 0 {
		expiresTime = uint64(record.Expires.Time)
	}
	stored := storedSwapRecord{
		ID:            record.ID,
		Creator:       record.Creator,
		Collection:    record.Collection,
		AssetID:       record.AssetID,
		PaymentKind:   uint8(record.Payment.Kind),
		PaymentToken:  record.Payment.Token,
		Price:         price,
		ExpiresHeight: record.Expires.Height,
		ExpiresTime:   expiresTime,
		Side:          uint8(record.Side),
	}
	return rlp.EncodeToBytes(&stored)
}

func decodeSwapRecord(raw []byte) (*SwapRecord, error) {
	var stored storedSwapRecord
	if err := rlp.DecodeBytes(raw, &stored); err != nil {
		return nil, fmt.Errorf("market: decode swap record: %w", err)
	}
	record := &SwapRecord{
		ID:         stored.ID,
		Creator:    stored.Creator,
		Collection: stored.Collection,
		AssetID:    stored.AssetID,
		Payment:    PaymentDenom{Kind: PaymentKind(stored.PaymentKind), Token: stored.PaymentToken},
		Price:      stored.Price,
		Expires:    Expiration{Height: stored.ExpiresHeight, Time: int64(stored.ExpiresTime)},
		Side:       Side(stored.Side),
	}
	if record.Price == nil {
		record.Price = big.NewInt(0)
	}
	return record, nil
}

type storedConfig struct {
	Admin       string
	Denom       string
	FeePercent  uint64
	Collections []string
}

func encodeConfig(cfg Config) ([]byte, error) {
	stored := storedConfig{
		Admin:       cfg.Admin,
		Denom:       cfg.Denom,
		FeePercent:  cfg.FeePercent,
		Collections: cfg.Collections,
	}
	return rlp.EncodeToBytes(&stored)
}

func decodeConfig(raw []byte) (Config, error) {
	var stored storedConfig
	if err := rlp.DecodeBytes(raw, &stored); err != nil {
		return Config{}, fmt.Errorf("market: decode config: %w", err)
	}
	return Config{
		Admin:       stored.Admin,
		Denom:       stored.Denom,
		FeePercent:  stored.FeePercent,
		Collections: stored.Collections,
	}, nil
}
