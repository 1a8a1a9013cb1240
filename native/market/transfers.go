package market

import "math/big"

// TransferIntent describes an asset or payment movement the core authorizes
// but never executes. The host's dispatch layer carries intents out
// atomically on the success path.
type TransferIntent interface {
	IntentKind() string
}

// AssetTransferIntent moves the non-fungible asset to the recipient.
type AssetTransferIntent struct {
	Collection string
	AssetID    string
	Recipient  string
}

func (AssetTransferIntent) IntentKind() string { return "asset_transfer" }

// NativeSendIntent sends native-currency funds from the contract account to
// the recipient.
type NativeSendIntent struct {
	Recipient string
	Funds     []Coin
}

func (NativeSendIntent) IntentKind() string { return "native_send" }

// TokenTransferFromIntent instructs the fungible-token ledger to move tokens
// from the owner's allowance-approved balance to the recipient.
type TokenTransferFromIntent struct {
	Token     string
	Owner     string
	Recipient string
	Amount    *big.Int
}

func (TokenTransferFromIntent) IntentKind() string { return "token_transfer_from" }

// TokenTransferIntent instructs the fungible-token ledger to move tokens held
// by the contract account to the recipient.
type TokenTransferIntent struct {
	Token     string
	Recipient string
	Amount    *big.Int
}

func (TokenTransferIntent) IntentKind() string { return "token_transfer" }

// ComposeSwapTransfers builds the ordered transfer intents settling a swap:
// the asset moves from assetSender to assetRecipient, the seller share of the
// payment flows back from assetRecipient to assetSender, and a nonzero
// marketplace share of a fungible payment flows to the contract account. A
// native marketplace share needs no intent: the full native payment already
// sits on the contract account before the seller share is forwarded.
func ComposeSwapTransfers(record *SwapRecord, assetSender, assetRecipient string, split FeeSplit, nativeDenom, marketAccount string) []TransferIntent {
	intents := make([]TransferIntent, 0, 3)
	intents = append(intents, AssetTransferIntent{
		Collection: record.Collection,
		AssetID:    record.AssetID,
		Recipient:  assetRecipient,
	})
	if record.Payment.IsFungible() {
		intents = append(intents, TokenTransferFromIntent{
			Token:     record.Payment.Token,
			Owner:     assetRecipient,
			Recipient: assetSender,
			Amount:    cloneAmount(split.Seller),
		})
		if split.Marketplace != nil && split.Marketplace.Sign() > 0 {
			intents = append(intents, TokenTransferFromIntent{
				Token:     record.Payment.Token,
				Owner:     assetRecipient,
				Recipient: marketAccount,
				Amount:    cloneAmount(split.Marketplace),
			})
		}
	} else {
		intents = append(intents, NativeSendIntent{
			Recipient: assetSender,
			Funds:     []Coin{{Denom: nativeDenom, Amount: cloneAmount(split.Seller)}},
		})
	}
	return intents
}

func cloneAmount(v *big.Int) *big.Int {
	if v == nil {
		return big.NewInt(0)
	}
	return new(big.Int).Set(v)
}
