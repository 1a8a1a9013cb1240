package market

import "math/big"

// AssetRegistry is the external ownership registry for non-fungible assets.
// The engine only ever reads from it; ownership changes happen when the host
// executes the returned transfer intents.
type AssetRegistry interface {
	OwnerOf(collection, assetID string) (string, error)
}

// TokenLedger exposes the fungible-token allowance view the engine consults
// before authorizing a transfer-from intent. Allowance accounting itself is
// enforced entirely by that ledger.
type TokenLedger interface {
	Allowance(token, owner, spender string) (*big.Int, error)
}

// BankLedger exposes native-currency balances, used for contract-balance
// checks when withdrawing accumulated fees.
type BankLedger interface {
	BalanceOf(account, denom string) (*big.Int, error)
}
