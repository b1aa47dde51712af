package stocksim

import "errors"

// Failures reported by the ledger and the session. They are all recoverable:
// the rejected operation leaves the state unchanged.
var (
	ErrInvalidShareCount  = errors.New("invalid share count")
	ErrInvalidPrice       = errors.New("invalid price")
	ErrInsufficientFunds  = errors.New("insufficient funds")
	ErrNoSuchHolding      = errors.New("no such holding")
	ErrInsufficientShares = errors.New("insufficient shares")
	ErrUnknownAction      = errors.New("unknown trade action")
	ErrUnknownSymbol      = errors.New("unknown symbol")
	ErrDuplicateSymbol    = errors.New("duplicate symbol")
	ErrUnknownTab         = errors.New("unknown tab")
	ErrUnknownView        = errors.New("unknown portfolio view")
)

// TradeError is a rejected trade. Message is meant for the trader, Kind is one
// of the sentinel errors above and is what errors.Is matches.
type TradeError struct {
	Kind    error
	Message string
}

func (e *TradeError) Error() string { return e.Message }
func (e *TradeError) Unwrap() error { return e.Kind }

// ErrorCode returns a stable snake_case code for err, or "internal" for unknown errors.
func ErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrInvalidShareCount):
		return "invalid_share_count"
	case errors.Is(err, ErrInvalidPrice):
		return "invalid_price"
	case errors.Is(err, ErrInsufficientFunds):
		return "insufficient_funds"
	case errors.Is(err, ErrNoSuchHolding):
		return "no_such_holding"
	case errors.Is(err, ErrInsufficientShares):
		return "insufficient_shares"
	case errors.Is(err, ErrUnknownAction):
		return "unknown_action"
	case errors.Is(err, ErrUnknownSymbol):
		return "unknown_symbol"
	case errors.Is(err, ErrDuplicateSymbol):
		return "duplicate_symbol"
	case errors.Is(err, ErrUnknownTab):
		return "unknown_tab"
	case errors.Is(err, ErrUnknownView):
		return "unknown_view"
	default:
		return "internal"
	}
}
