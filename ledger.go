package stocksim

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Action is the side of a trade.
type Action string

const (
	Buy  Action = "BUY"
	Sell Action = "SELL"
)

// ParseAction parses "buy" or "sell", in any case.
func ParseAction(s string) (Action, error) {
	switch a := Action(strings.ToUpper(strings.TrimSpace(s))); a {
	case Buy, Sell:
		return a, nil
	default:
		return "", fmt.Errorf("%w %q, want BUY or SELL", ErrUnknownAction, s)
	}
}

// Holding is a portfolio's position in one stock.
type Holding struct {
	Symbol          string `json:"symbol"`
	Shares          int    `json:"shares"`
	AverageBuyPrice Money  `json:"averageBuyPrice"`
	TotalInvested   Money  `json:"totalInvested"` // cost basis of the shares currently held
}

// TradeAction is an executed trade. It is never modified once recorded.
type TradeAction struct {
	ID        string    `json:"id"`
	Type      Action    `json:"type"`
	Symbol    string    `json:"symbol"`
	Shares    int       `json:"shares"`
	Price     Money     `json:"price"`
	Timestamp time.Time `json:"timestamp"`
}

// Portfolio is the simulated account: cash, holdings and trade history.
type Portfolio struct {
	CashBalance  Money         `json:"cashBalance"`
	Holdings     []Holding     `json:"holdings"`     // at most one per symbol
	TotalValue   Money         `json:"totalValue"`   // derived: cash + holdings at market price
	TradeHistory []TradeAction `json:"tradeHistory"` // newest first
}

// NewPortfolio returns an empty portfolio funded with cash.
func NewPortfolio(cash Money) Portfolio {
	return Portfolio{
		CashBalance:  cash,
		Holdings:     []Holding{},
		TotalValue:   cash.Round(),
		TradeHistory: []TradeAction{},
	}
}

// Holding returns the position in symbol, if any.
func (p Portfolio) Holding(symbol string) (Holding, bool) {
	i := p.holdingIndex(symbol)
	if i < 0 {
		return Holding{}, false
	}
	return p.Holdings[i], true
}

func (p Portfolio) holdingIndex(symbol string) int {
	return slices.IndexFunc(p.Holdings, func(h Holding) bool { return h.Symbol == symbol })
}

// Clone returns a copy of p that shares no slice with it.
func (p Portfolio) Clone() Portfolio {
	p.Holdings = slices.Clone(p.Holdings)
	p.TradeHistory = slices.Clone(p.TradeHistory)
	if p.Holdings == nil {
		p.Holdings = []Holding{}
	}
	if p.TradeHistory == nil {
		p.TradeHistory = []TradeAction{}
	}
	return p
}

// Revalue returns p with its total value recomputed against m.
func (p Portfolio) Revalue(m *Market) Portfolio {
	p.TotalValue = PortfolioValue(p.Holdings, p.CashBalance, m)
	return p
}

// PortfolioValue returns cash plus every holding valued at its current market price,
// rounded to cents. Holdings whose stock is not listed in m count for nothing.
func PortfolioValue(holdings []Holding, cash Money, m *Market) Money {
	total := cash
	for _, h := range holdings {
		if price, ok := m.Price(h.Symbol); ok {
			total = total.Add(price.Times(h.Shares))
		}
	}
	return total.Round()
}

// TradeRequest is a trade ticket: what to trade and at which price.
type TradeRequest struct {
	Action Action
	Symbol string
	Shares int
	Price  Money // the current market price of Symbol
}

// TradeResult is the outcome of ExecuteTrade.
//
// On failure Portfolio is the input portfolio, Message explains why to the
// trader and Err is a *TradeError.
type TradeResult struct {
	Success   bool
	Portfolio Portfolio
	Trade     TradeAction // the recorded trade, on success
	Message   string
	Err       error
}

func reject(p Portfolio, kind error, format string, args ...any) TradeResult {
	msg := fmt.Sprintf(format, args...)
	return TradeResult{Portfolio: p, Message: msg, Err: &TradeError{Kind: kind, Message: msg}}
}

// tradeNamespace scopes trade identifiers.
var tradeNamespace = uuid.MustParse("6f1c8f3e-6f0a-4d59-9a53-3f7f0b1e2c41")

// tradeID derives the trade identifier from its content and its rank in the history,
// so that executing the same trade on the same portfolio always yields the same id.
func tradeID(rank int, req TradeRequest, now time.Time) string {
	key := fmt.Sprintf("%d|%s|%s|%d|%s|%s", rank, req.Action, req.Symbol, req.Shares, req.Price.Decimal(), now.UTC().Format(time.RFC3339Nano))
	return uuid.NewSHA1(tradeNamespace, []byte(key)).String()
}

// ExecuteTrade applies req to p and returns the resulting portfolio.
//
// It is a pure function: p is never modified and the returned portfolio shares
// no slice with it. The total value is recomputed against m, which must hold
// the live quotes and list req.Symbol.
func ExecuteTrade(p Portfolio, req TradeRequest, m *Market, now time.Time) TradeResult {
	if req.Shares <= 0 {
		return reject(p, ErrInvalidShareCount, "Please enter a valid number of shares.")
	}
	if !req.Price.IsPositive() {
		return reject(p, ErrInvalidPrice, "Price must be positive, got %s.", req.Price)
	}
	if !m.Has(req.Symbol) {
		return reject(p, ErrUnknownSymbol, "%s is not listed on the market.", req.Symbol)
	}

	next := p.Clone()
	switch req.Action {
	case Buy:
		cost := req.Price.Times(req.Shares)
		if cost.GreaterThan(next.CashBalance) {
			return reject(p, ErrInsufficientFunds, "Insufficient cash balance for this purchase.")
		}
		next.CashBalance = next.CashBalance.Sub(cost)

		if i := next.holdingIndex(req.Symbol); i >= 0 {
			h := next.Holdings[i]
			shares := h.Shares + req.Shares
			invested := h.TotalInvested.Add(cost)
			h.Shares = shares
			h.AverageBuyPrice = invested.Per(shares).Round()
			h.TotalInvested = invested.Round()
			next.Holdings[i] = h
		} else {
			next.Holdings = append(next.Holdings, Holding{
				Symbol:          req.Symbol,
				Shares:          req.Shares,
				AverageBuyPrice: req.Price,
				TotalInvested:   cost,
			})
		}

	case Sell:
		i := next.holdingIndex(req.Symbol)
		if i < 0 {
			return reject(p, ErrNoSuchHolding, "You don't own any shares of %s.", req.Symbol)
		}
		h := next.Holdings[i]
		if req.Shares > h.Shares {
			return reject(p, ErrInsufficientShares, "You only have %d shares to sell.", h.Shares)
		}
		next.CashBalance = next.CashBalance.Add(req.Price.Times(req.Shares))

		remaining := h.Shares - req.Shares
		if remaining == 0 {
			next.Holdings = slices.Delete(next.Holdings, i, i+1)
		} else {
			// the cost basis shrinks by the fraction of shares sold.
			sold := h.TotalInvested.Scale(decimal.NewFromInt(int64(req.Shares)).Div(decimal.NewFromInt(int64(h.Shares))))
			h.Shares = remaining
			h.TotalInvested = h.TotalInvested.Sub(sold).Round()
			next.Holdings[i] = h
		}

	default:
		return reject(p, ErrUnknownAction, "Unknown trade action %q.", req.Action)
	}

	trade := TradeAction{
		ID:        tradeID(len(p.TradeHistory), req, now),
		Type:      req.Action,
		Symbol:    req.Symbol,
		Shares:    req.Shares,
		Price:     req.Price,
		Timestamp: now,
	}
	next.TradeHistory = append([]TradeAction{trade}, next.TradeHistory...)
	next = next.Revalue(m)

	return TradeResult{Success: true, Portfolio: next, Trade: trade}
}
