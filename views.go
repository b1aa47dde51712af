package stocksim

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/etnz/stocksim/date"
)

// MarketOverview summarizes the whole market.
type MarketOverview struct {
	Gainers             []*Stock `json:"gainers"`      // best change percent first
	Losers              []*Stock `json:"losers"`       // worst change percent first
	MarketValue         Money    `json:"marketValue"`  // sum of all prices
	MarketChange        Money    `json:"marketChange"` // sum of all changes
	MarketChangePercent Percent  `json:"marketChangePercent"`
}

// topMovers is the number of gainers and losers in an overview.
const topMovers = 3

// NewMarketOverview computes the overview of m.
func NewMarketOverview(m *Market) MarketOverview {
	o := MarketOverview{MarketValue: USD(0), MarketChange: USD(0)}
	stocks := m.Stocks()
	for _, s := range stocks {
		o.MarketValue = o.MarketValue.Add(s.Price)
		o.MarketChange = o.MarketChange.Add(s.Change)
	}
	o.MarketChangePercent = o.MarketChange.Ratio(o.MarketValue.Sub(o.MarketChange))

	// stable sorts: ties keep the listing order.
	n := min(topMovers, len(stocks))
	slices.SortStableFunc(stocks, func(a, b *Stock) int { return cmp.Compare(b.ChangePercent, a.ChangePercent) })
	o.Gainers = slices.Clone(stocks[:n])
	stocks = m.Stocks()
	slices.SortStableFunc(stocks, func(a, b *Stock) int { return cmp.Compare(a.ChangePercent, b.ChangePercent) })
	o.Losers = slices.Clone(stocks[:n])
	return o
}

// SortColumn is the column a stock list is sorted by.
type SortColumn string

const (
	SortBySymbol SortColumn = "symbol"
	SortByPrice  SortColumn = "price"
	SortByChange SortColumn = "change"
)

// ParseSortColumn parses a column name; "" is SortBySymbol.
func ParseSortColumn(s string) (SortColumn, error) {
	switch c := SortColumn(strings.ToLower(s)); c {
	case "":
		return SortBySymbol, nil
	case SortBySymbol, SortByPrice, SortByChange:
		return c, nil
	default:
		return "", fmt.Errorf("unknown sort column %q, want symbol, price or change", s)
	}
}

// StockFilter is the search and sort state of a stock list.
type StockFilter struct {
	Query      string
	SortBy     SortColumn
	Descending bool
}

// ParseStockFilter builds a filter from its textual form, as found in query strings.
// dir is "asc" or "desc"; empty values select the defaults.
func ParseStockFilter(query, sortBy, dir string) (StockFilter, error) {
	col, err := ParseSortColumn(sortBy)
	if err != nil {
		return StockFilter{}, err
	}
	f := StockFilter{Query: query, SortBy: col}
	switch strings.ToLower(dir) {
	case "", "asc":
	case "desc":
		f.Descending = true
	default:
		return StockFilter{}, fmt.Errorf("unknown sort direction %q, want asc or desc", dir)
	}
	return f, nil
}

// Direction returns "asc" or "desc".
func (f StockFilter) Direction() string {
	if f.Descending {
		return "desc"
	}
	return "asc"
}

// ToggleSort returns the filter after clicking on column: the same column flips
// the direction, another column sorts ascending on it.
func (f StockFilter) ToggleSort(column SortColumn) StockFilter {
	if f.SortBy == column || (f.SortBy == "" && column == SortBySymbol) {
		f.Descending = !f.Descending
		f.SortBy = column
		return f
	}
	f.SortBy, f.Descending = column, false
	return f
}

// Apply returns the stocks whose symbol or company name contains the query,
// case-insensitively, in the filter's order.
func (f StockFilter) Apply(stocks []*Stock) []*Stock {
	q := strings.ToLower(strings.TrimSpace(f.Query))
	out := make([]*Stock, 0, len(stocks))
	for _, s := range stocks {
		if strings.Contains(strings.ToLower(s.Symbol), q) || strings.Contains(strings.ToLower(s.CompanyName), q) {
			out = append(out, s)
		}
	}

	compare := func(a, b *Stock) int { return strings.Compare(a.Symbol, b.Symbol) }
	switch f.SortBy {
	case SortByPrice:
		compare = func(a, b *Stock) int { return a.Price.Decimal().Cmp(b.Price.Decimal()) }
	case SortByChange:
		compare = func(a, b *Stock) int { return cmp.Compare(a.ChangePercent, b.ChangePercent) }
	}
	slices.SortStableFunc(out, func(a, b *Stock) int {
		if f.Descending {
			return -compare(a, b)
		}
		return compare(a, b)
	})
	return out
}

// PeriodDays is the window of the high and low shown on a stock's detail.
const PeriodDays = 365

// StockDetail is the detailed view of one stock for a portfolio.
type StockDetail struct {
	Stock    *Stock   `json:"stock"`
	High     Money    `json:"high"` // over the last PeriodDays
	Low      Money    `json:"low"`
	Position *Holding `json:"position,omitempty"` // nil when the stock is not held
}

// NewStockDetail computes the detail of s as seen from p.
func NewStockDetail(s *Stock, p Portfolio) StockDetail {
	d := StockDetail{Stock: s, High: s.Price, Low: s.Price}
	end := date.Of(s.LastUpdated.UTC())
	if last, _ := s.History.Latest(); last.After(end) {
		end = last
	}
	if low, high, ok := s.Range(date.LastDays(end, PeriodDays)); ok {
		d.Low, d.High = low, high
	}
	if h, ok := p.Holding(s.Symbol); ok {
		d.Position = &h
	}
	return d
}

// TradeTicket bounds what can be traded on one stock.
type TradeTicket struct {
	Symbol  string `json:"symbol"`
	Price   Money  `json:"price"`
	Cash    Money  `json:"cash"`
	MaxBuy  int    `json:"maxBuy"`  // whole shares affordable with the cash balance
	MaxSell int    `json:"maxSell"` // shares held
}

// NewTradeTicket returns the ticket to trade s from p.
func NewTradeTicket(s *Stock, p Portfolio) TradeTicket {
	t := TradeTicket{
		Symbol: s.Symbol,
		Price:  s.Price,
		Cash:   p.CashBalance,
		MaxBuy: p.CashBalance.Shares(s.Price),
	}
	if h, ok := p.Holding(s.Symbol); ok {
		t.MaxSell = h.Shares
	}
	return t
}

// CanSell reports whether any share can be sold.
func (t TradeTicket) CanSell() bool { return t.MaxSell > 0 }

// Max returns the largest tradable quantity for a.
func (t TradeTicket) Max(a Action) int {
	if a == Sell {
		return t.MaxSell
	}
	return t.MaxBuy
}

// Clamp returns shares bounded to [0, Max(a)].
func (t TradeTicket) Clamp(a Action, shares int) int {
	return max(0, min(shares, t.Max(a)))
}

// EstimatedCost returns the amount paid or received for shares.
func (t TradeTicket) EstimatedCost(shares int) Money { return t.Price.Times(shares) }

// Request returns the trade request for shares at the ticket's price.
func (t TradeTicket) Request(a Action, shares int) TradeRequest {
	return TradeRequest{Action: a, Symbol: t.Symbol, Shares: shares, Price: t.Price}
}

// HoldingRow is a holding valued at market price.
type HoldingRow struct {
	Holding
	CompanyName     string  `json:"companyName"`
	Price           Money   `json:"price"`
	CurrentValue    Money   `json:"currentValue"`
	GainLoss        Money   `json:"gainLoss"`
	GainLossPercent Percent `json:"gainLossPercent"`
}

// IsGain reports whether the holding is not at a loss.
func (r HoldingRow) IsGain() bool { return !r.GainLoss.IsNegative() }

// HoldingRows values every holding of p whose stock is listed in m.
func HoldingRows(p Portfolio, m *Market) []HoldingRow {
	rows := make([]HoldingRow, 0, len(p.Holdings))
	for _, h := range p.Holdings {
		s := m.Get(h.Symbol)
		if s == nil {
			continue
		}
		value := s.Price.Times(h.Shares)
		gain := value.Sub(h.TotalInvested)
		rows = append(rows, HoldingRow{
			Holding:         h,
			CompanyName:     s.CompanyName,
			Price:           s.Price,
			CurrentValue:    value,
			GainLoss:        gain,
			GainLossPercent: gain.Ratio(h.TotalInvested),
		})
	}
	return rows
}

// Performance is the unrealized gain of a portfolio.
type Performance struct {
	GainLoss Money   `json:"gainLoss"`
	Invested Money   `json:"invested"`
	Percent  Percent `json:"percent"` // 0 when nothing is invested
}

// IsPositive reports whether the portfolio is not at a loss.
func (p Performance) IsPositive() bool { return !p.GainLoss.IsNegative() }

// NewPerformance computes the unrealized gain of p at m's prices.
func NewPerformance(p Portfolio, m *Market) Performance {
	perf := Performance{GainLoss: USD(0), Invested: USD(0)}
	for _, r := range HoldingRows(p, m) {
		perf.GainLoss = perf.GainLoss.Add(r.GainLoss)
		perf.Invested = perf.Invested.Add(r.TotalInvested)
	}
	perf.Percent = perf.GainLoss.Ratio(perf.Invested)
	return perf
}
