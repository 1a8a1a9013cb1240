package main

import (
	"errors"
	"fmt"
	"math/big"

	"swapmarket/storage"
)

const (
	ownerPrefix     = "state/owner/"
	allowancePrefix = "state/allowance/"
	balancePrefix   = "state/balance/"
)

// ChainState is the gateway's persisted view of asset ownership, fungible
// token allowances, and native balances. Operators sync it through the
// /v1/state endpoints; the engine reads it during authorization checks.
type ChainState struct {
	db storage.Database
}

func NewChainState(db storage.Database) *ChainState {
	return &ChainState{db: db}
}

func ownerKey(collection, assetID string) []byte {
	return []byte(ownerPrefix + collection + "/" + assetID)
}

func allowanceKey(token, owner, spender string) []byte {
	return []byte(allowancePrefix + token + "/" + owner + "/" + spender)
}

func balanceKey(account, denom string) []byte {
	return []byte(balancePrefix + account + "/" + denom)
}

func (s *ChainState) OwnerOf(collection, assetID string) (string, error) {
	raw, err := s.db.Get(ownerKey(collection, assetID))
	if err != nil {
		if errors.Is(err, storage.ErrKeyNotFound) {
			return "", fmt.Errorf("asset %s/%s not registered", collection, assetID)
		}
		return "", err
	}
	return string(raw), nil
}

func (s *ChainState) SetOwner(collection, assetID, owner string) error {
	return s.db.Put(ownerKey(collection, assetID), []byte(owner))
}

// Allowance reports the approved spend; an unknown triple reads as zero.
func (s *ChainState) Allowance(token, owner, spender string) (*big.Int, error) {
	raw, err := s.db.Get(allowanceKey(token, owner, spender))
	if err != nil {
		if errors.Is(err, storage.ErrKeyNotFound) {
			return big.NewInt(0), nil
		}
		return nil, err
	}
	return new(big.Int).SetBytes(raw), nil
}

func (s *ChainState) SetAllowance(token, owner, spender string, amount *big.Int) error {
	if amount == nil || amount.Sign() < 0 {
		return fmt.Errorf("allowance must be non-negative")
	}
	return s.db.Put(allowanceKey(token, owner, spender), amount.Bytes())
}

// BalanceOf reports the tracked native balance; an unknown pair reads as zero.
func (s *ChainState) BalanceOf(account, denom string) (*big.Int, error) {
	raw, err := s.db.Get(balanceKey(account, denom))
	if err != nil {
		if errors.Is(err, storage.ErrKeyNotFound) {
			return big.NewInt(0), nil
		}
		return nil, err
	}
	return new(big.Int).SetBytes(raw), nil
}

func (s *ChainState) SetBalance(account, denom string, amount *big.Int) error {
	if amount == nil || amount.Sign() < 0 {
		return fmt.Errorf("balance must be non-negative")
	}
	return s.db.Put(balanceKey(account, denom), amount.Bytes())
}
