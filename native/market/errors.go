package market

import "errors"

// Error taxonomy shared across the marketplace core. Every failure aborts the
// whole call; the host applies no partial state changes.
var (
	ErrExpired             = errors.New("market: swap expired")
	ErrUnauthorized        = errors.New("market: unauthorized")
	ErrAlreadyExists       = errors.New("market: swap already exists")
	ErrNotFound            = errors.New("market: swap not found")
	ErrInvalidInput        = errors.New("market: invalid input")
	ErrInvalidPaymentToken = errors.New("market: invalid payment token")
	ErrInsufficientFunds   = errors.New("market: insufficient funds")
	ErrExactFundsMismatch  = errors.New("market: must send exactly the required funds")
	ErrInsufficientBalance = errors.New("market: insufficient contract balance")
)

var (
	errNilState    = errors.New("market engine: state not configured")
	errNilRegistry = errors.New("market engine: asset registry not configured")
	errNoConfig    = errors.New("market engine: config not initialised")
)
