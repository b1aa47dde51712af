package stocksim

import "fmt"

// Market holds the live quotes of a set of stocks, in listing order.
type Market struct {
	stocks []*Stock
	index  map[string]*Stock
}

// NewMarket returns a market listing stocks. Symbols must be unique.
func NewMarket(stocks ...*Stock) (*Market, error) {
	m := &Market{
		stocks: make([]*Stock, 0, len(stocks)),
		index:  make(map[string]*Stock, len(stocks)),
	}
	for _, s := range stocks {
		if err := m.Add(s); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Add lists a new stock.
func (m *Market) Add(s *Stock) error {
	if _, exists := m.index[s.Symbol]; exists {
		return fmt.Errorf("cannot list %q: %w", s.Symbol, ErrDuplicateSymbol)
	}
	m.stocks = append(m.stocks, s)
	m.index[s.Symbol] = s
	return nil
}

func (m *Market) Has(symbol string) bool {
	if m == nil {
		return false
	}
	_, ok := m.index[symbol]
	return ok
}

// Get returns the stock listed as symbol or nil.
func (m *Market) Get(symbol string) *Stock {
	if m == nil {
		return nil
	}
	return m.index[symbol]
}

// Price returns the current price of symbol.
func (m *Market) Price(symbol string) (Money, bool) {
	s := m.Get(symbol)
	if s == nil {
		return Money{}, false
	}
	return s.Price, true
}

// Stocks returns the listed stocks in listing order. The slice is a copy, the stocks are not.
func (m *Market) Stocks() []*Stock {
	if m == nil {
		return nil
	}
	return append([]*Stock(nil), m.stocks...)
}

// Len returns the number of listed stocks.
func (m *Market) Len() int {
	if m == nil {
		return 0
	}
	return len(m.stocks)
}

// Clone returns a deep copy of m.
func (m *Market) Clone() *Market {
	c := &Market{
		stocks: make([]*Stock, 0, m.Len()),
		index:  make(map[string]*Stock, m.Len()),
	}
	for _, s := range m.Stocks() {
		s = s.Clone()
		c.stocks = append(c.stocks, s)
		c.index[s.Symbol] = s
	}
	return c
}
