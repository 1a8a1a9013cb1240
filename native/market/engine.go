package market

import (
	"errors"
	"fmt"
	"math/big"
	"strings"
	"sync"
	"time"

	"swapmarket/core/events"
	"swapmarket/storage"
)

// CreateMsg carries the caller-supplied definition of a new swap.
type CreateMsg struct {
	ID         string
	Collection string
	AssetID    string
	Payment    PaymentDenom
	Price      *big.Int
	Expires    Expiration
	Side       Side
}

// Engine orchestrates the swap lifecycle over the ledger, the payment
// checks, the fee split, and the transfer composer. It is the single logical
// owner of the ledger. Mutating operations serialize on an internal mutex so
// a record can never be validated and consumed by two callers at once, even
// under a concurrent host.
type Engine struct {
	mu            sync.Mutex
	db            storage.Database
	ledger        *Ledger
	registry      AssetRegistry
	tokens        TokenLedger
	bank          BankLedger
	emitter       events.Emitter
	blockFn       func() BlockInfo
	marketAccount string
}

// NewEngine constructs an engine bound to the provided storage backend with a
// no-op emitter. Callers wire collaborators via the SetX methods.
func NewEngine(db storage.Database) *Engine {
	return &Engine{
		db:      db,
		ledger:  NewLedger(db),
		emitter: events.NoopEmitter{},
		blockFn: func() BlockInfo { return BlockInfo{Time: time.Now().Unix()} },
	}
}

// SetRegistry configures the external asset-ownership registry.
func (e *Engine) SetRegistry(registry AssetRegistry) { e.registry = registry }

// SetTokenLedger configures the external fungible-token ledger view.
func (e *Engine) SetTokenLedger(tokens TokenLedger) { e.tokens = tokens }

// SetBank configures the external native-currency ledger view.
func (e *Engine) SetBank(bank BankLedger) { e.bank = bank }

// SetMarketAccount configures the contract's own account, the recipient of
// marketplace fee shares.
func (e *Engine) SetMarketAccount(account string) {
	e.marketAccount = strings.TrimSpace(account)
}

// SetEmitter configures the event emitter used by the engine. Passing nil
// resets the emitter to a no-op implementation.
func (e *Engine) SetEmitter(emitter events.Emitter) {
	if emitter == nil {
		e.emitter = events.NoopEmitter{}
		return
	}
	e.emitter = emitter
}

// SetBlockFunc overrides the block context source, primarily used in tests to
// provide deterministic heights and timestamps.
func (e *Engine) SetBlockFunc(blockFn func() BlockInfo) {
	if blockFn == nil {
		e.blockFn = func() BlockInfo { return BlockInfo{Time: time.Now().Unix()} }
		return
	}
	e.blockFn = blockFn
}

// Ledger exposes the underlying swap ledger, primarily for the query engine.
func (e *Engine) Ledger() *Ledger { return e.ledger }

func (e *Engine) emit(evt events.Event) {
	if e == nil || e.emitter == nil || evt == nil {
		return
	}
	e.emitter.Emit(evt)
}

func (e *Engine) block() BlockInfo {
	if e == nil || e.blockFn == nil {
		return BlockInfo{Time: time.Now().Unix()}
	}
	return e.blockFn()
}

// Initialize persists the marketplace config. A fee percentage above
// MaxFeePercent clamps to zero rather than failing instantiation.
func (e *Engine) Initialize(cfg Config) error {
	if e == nil || e.db == nil {
		return errNilState
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	sanitized, err := sanitizeConfig(cfg)
	if err != nil {
		return err
	}
	if sanitized.FeePercent > MaxFeePercent {
		sanitized.FeePercent = 0
	}
	encoded, err := encodeConfig(sanitized)
	if err != nil {
		return err
	}
	return e.db.Put(configKey, encoded)
}

// Config loads the persisted marketplace config.
func (e *Engine) Config() (Config, error) {
	if e == nil || e.db == nil {
		return Config{}, errNilState
	}
	raw, err := e.db.Get(configKey)
	if err != nil {
		if errors.Is(err, storage.ErrKeyNotFound) {
			return Config{}, errNoConfig
		}
		return Config{}, err
	}
	return decodeConfig(raw)
}

// Create opens a new swap record after authorization and expiration checks.
func (e *Engine) Create(caller string, msg CreateMsg) (*SwapRecord, error) {
	if e == nil || e.db == nil {
		return nil, errNilState
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	cfg, err := e.Config()
	if err != nil {
		return nil, err
	}
	record, err := SanitizeRecord(&SwapRecord{
		ID:         msg.ID,
		Creator:    caller,
		Collection: msg.Collection,
		AssetID:    msg.AssetID,
		Payment:    msg.Payment,
		Price:      msg.Price,
		Expires:    msg.Expires,
		Side:       msg.Side,
	})
	if err != nil {
		return nil, err
	}
	if record.Expires.IsExpired(e.block()) {
		return nil, ErrExpired
	}
	if !cfg.CollectionAllowed(record.Collection) {
		return nil, fmt.Errorf("%w: collection %s not accepted", ErrUnauthorized, record.Collection)
	}
	switch record.Side {
	case SideSale:
		if e.registry == nil {
			return nil, errNilRegistry
		}
		owner, err := e.registry.OwnerOf(record.Collection, record.AssetID)
		if err != nil {
			return nil, err
		}
		if owner != record.Creator {
			return nil, fmt.Errorf("%w: caller does not own asset %s", ErrUnauthorized, record.AssetID)
		}
	case SideOffer:
		if !record.Payment.IsFungible() {
			return nil, fmt.Errorf("%w: offers require a fungible payment token", ErrInvalidPaymentToken)
		}
	}
	if err := e.ledger.Insert(record); err != nil {
		return nil, err
	}
	e.emit(newSwapEvent(EventTypeSwapCreated, record))
	return record.Clone(), nil
}

// Update replaces the price and expiration of an existing swap. Every other
// field stays frozen so a creator cannot silently change what they committed
// to.
func (e *Engine) Update(caller, id string, price *big.Int, expires Expiration) (*SwapRecord, error) {
	if e == nil || e.db == nil {
		return nil, errNilState
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	record, err := e.ledger.Get(id)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(caller) != record.Creator {
		return nil, fmt.Errorf("%w: only the creator may update", ErrUnauthorized)
	}
	mutated := record.Clone()
	mutated.Price = price
	mutated.Expires = expires
	updated, err := SanitizeRecord(mutated)
	if err != nil {
		return nil, err
	}
	if err := e.ledger.Replace(updated); err != nil {
		return nil, err
	}
	e.emit(newSwapEvent(EventTypeSwapUpdated, updated))
	return updated.Clone(), nil
}

// Cancel removes an active swap. Only the creator may cancel.
func (e *Engine) Cancel(caller, id string) error {
	if e == nil || e.db == nil {
		return errNilState
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	record, err := e.ledger.Get(id)
	if err != nil {
		return err
	}
	if strings.TrimSpace(caller) != record.Creator {
		return fmt.Errorf("%w: only the creator may cancel", ErrUnauthorized)
	}
	if err := e.ledger.Delete(record.ID); err != nil {
		return err
	}
	e.emit(newSwapEvent(EventTypeSwapCancelled, record))
	return nil
}

// Finish settles an active swap. On success it returns the composed transfer
// intents and removes every record referencing the settled asset, since the
// ownership change invalidates them all.
func (e *Engine) Finish(caller, id string, funds []Coin) ([]TransferIntent, error) {
	if e == nil || e.db == nil {
		return nil, errNilState
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	cfg, err := e.Config()
	if err != nil {
		return nil, err
	}
	record, err := e.ledger.Get(id)
	if err != nil {
		return nil, err
	}
	caller = strings.TrimSpace(caller)
	if caller == "" {
		return nil, fmt.Errorf("%w: caller required", ErrInvalidInput)
	}
	if record.IsExpired(e.block()) {
		return nil, ErrExpired
	}
	if !cfg.CollectionAllowed(record.Collection) {
		return nil, fmt.Errorf("%w: collection %s not accepted", ErrUnauthorized, record.Collection)
	}

	var split FeeSplit
	if record.Payment.IsFungible() {
		payer := caller
		if record.Side == SideOffer {
			// The offerer pays; the caller surrenders the asset.
			payer = record.Creator
			if e.registry == nil {
				return nil, errNilRegistry
			}
			owner, err := e.registry.OwnerOf(record.Collection, record.AssetID)
			if err != nil {
				return nil, err
			}
			if owner != caller {
				return nil, fmt.Errorf("%w: caller does not own asset %s", ErrUnauthorized, record.AssetID)
			}
		}
		if e.tokens != nil {
			allowance, err := e.tokens.Allowance(record.Payment.Token, payer, e.marketAccount)
			if err != nil {
				return nil, err
			}
			if allowance == nil || allowance.Cmp(record.Price) < 0 {
				return nil, fmt.Errorf("%w: allowance below price", ErrInsufficientFunds)
			}
		}
		split, err = SplitFee(record.Price, cfg.FeePercent)
		if err != nil {
			split = OnlySeller(record.Price)
		}
	} else {
		if record.Side == SideOffer {
			// Native offers are rejected by policy.
			return nil, fmt.Errorf("%w: native-currency offers are not accepted", ErrInvalidInput)
		}
		if err := RequireAtLeast(funds, Coin{Denom: cfg.Denom, Amount: record.Price}); err != nil {
			return nil, err
		}
		// The split runs over the amount actually sent, so an overpayment
		// is forwarded to the seller rather than returned as change.
		sent := SentAmount(funds, cfg.Denom)
		if sent == nil {
			sent = cloneAmount(record.Price)
		}
		split, err = SplitFee(sent, cfg.FeePercent)
		if err != nil {
			split = OnlySeller(sent)
		}
	}

	var intents []TransferIntent
	switch record.Side {
	case SideSale:
		intents = ComposeSwapTransfers(record, record.Creator, caller, split, cfg.Denom, e.marketAccount)
	case SideOffer:
		intents = ComposeSwapTransfers(record, caller, record.Creator, split, cfg.Denom, e.marketAccount)
	}

	if err := e.removeSwapsForAsset(record); err != nil {
		return nil, err
	}
	e.emit(newSwapEvent(EventTypeSwapFinished, record))
	return intents, nil
}

// removeSwapsForAsset deletes every record referencing the settled asset,
// regardless of side: the owner changed, so they are all meaningless now.
// The settled record goes last, so a storage failure mid-cleanup leaves the
// swap itself intact and the settlement retryable.
func (e *Engine) removeSwapsForAsset(settled *SwapRecord) error {
	var stale []string
	err := e.ledger.Scan(func(id string, record *SwapRecord) (bool, error) {
		if id != settled.ID && record.SameAsset(settled) {
			stale = append(stale, id)
		}
		return true, nil
	})
	if err != nil {
		return err
	}
	for _, id := range stale {
		if err := e.ledger.Delete(id); err != nil {
			return err
		}
	}
	return e.ledger.Delete(settled.ID)
}

// UpdateConfig replaces the marketplace config. Admin only.
func (e *Engine) UpdateConfig(caller string, cfg Config) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	current, err := e.Config()
	if err != nil {
		return err
	}
	if strings.TrimSpace(caller) != current.Admin {
		return fmt.Errorf("%w: only the admin may update config", ErrUnauthorized)
	}
	sanitized, err := sanitizeConfig(cfg)
	if err != nil {
		return err
	}
	encoded, err := encodeConfig(sanitized)
	if err != nil {
		return err
	}
	if err := e.db.Put(configKey, encoded); err != nil {
		return err
	}
	e.emit(newConfigEvent(sanitized))
	return nil
}

// AddCollection appends a collection to the allow-list. Admin only; adding a
// collection already present is a no-op.
func (e *Engine) AddCollection(caller, collection string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	cfg, err := e.Config()
	if err != nil {
		return err
	}
	if strings.TrimSpace(caller) != cfg.Admin {
		return fmt.Errorf("%w: only the admin may manage collections", ErrUnauthorized)
	}
	collection = strings.TrimSpace(collection)
	if collection == "" {
		return fmt.Errorf("%w: collection required", ErrInvalidInput)
	}
	for _, existing := range cfg.Collections {
		if existing == collection {
			return nil
		}
	}
	cfg.Collections = append(cfg.Collections, collection)
	encoded, err := encodeConfig(cfg)
	if err != nil {
		return err
	}
	if err := e.db.Put(configKey, encoded); err != nil {
		return err
	}
	e.emit(newConfigEvent(cfg))
	return nil
}

// RemoveCollection drops a collection from the allow-list. Admin only.
func (e *Engine) RemoveCollection(caller, collection string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	cfg, err := e.Config()
	if err != nil {
		return err
	}
	if strings.TrimSpace(caller) != cfg.Admin {
		return fmt.Errorf("%w: only the admin may manage collections", ErrUnauthorized)
	}
	collection = strings.TrimSpace(collection)
	filtered := cfg.Collections[:0]
	for _, existing := range cfg.Collections {
		if existing != collection {
			filtered = append(filtered, existing)
		}
	}
	cfg.Collections = filtered
	encoded, err := encodeConfig(cfg)
	if err != nil {
		return err
	}
	if err := e.db.Put(configKey, encoded); err != nil {
		return err
	}
	e.emit(newConfigEvent(cfg))
	return nil
}

// WithdrawFees pays accumulated marketplace fees out to the admin. The native
// path verifies the contract account actually holds the requested amount; the
// fungible path emits a direct token transfer intent from the contract's own
// balance.
func (e *Engine) WithdrawFees(caller string, amount *big.Int, denom, paymentToken string) ([]TransferIntent, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	cfg, err := e.Config()
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(caller) != cfg.Admin {
		return nil, fmt.Errorf("%w: only the admin may withdraw fees", ErrUnauthorized)
	}
	if amount == nil || amount.Sign() <= 0 {
		return nil, fmt.Errorf("%w: withdrawal amount must be positive", ErrInvalidInput)
	}
	paymentToken = strings.TrimSpace(paymentToken)
	var intent TransferIntent
	if paymentToken == "" {
		if denom != cfg.Denom {
			return nil, fmt.Errorf("%w: unknown denom %s", ErrInsufficientBalance, denom)
		}
		if e.bank != nil {
			balance, err := e.bank.BalanceOf(e.marketAccount, cfg.Denom)
			if err != nil {
				return nil, err
			}
			if balance == nil || balance.Cmp(amount) < 0 {
				return nil, fmt.Errorf("%w: held balance below %s", ErrInsufficientBalance, amount)
			}
		}
		intent = NativeSendIntent{
			Recipient: cfg.Admin,
			Funds:     []Coin{{Denom: denom, Amount: new(big.Int).Set(amount)}},
		}
	} else {
		intent = TokenTransferIntent{
			Token:     paymentToken,
			Recipient: cfg.Admin,
			Amount:    new(big.Int).Set(amount),
		}
	}
	e.emit(newWithdrawEvent(amount.String(), denom))
	return []TransferIntent{intent}, nil
}
