package stocksim

import (
	"errors"
	"testing"
)

func TestMarket(t *testing.T) {
	m := newTestMarket(t, quote("AAPL", 182.52, 0, 0), quote("MSFT", 415.26, 0, 0))

	if m.Len() != 2 || !m.Has("AAPL") || m.Has("GOOGL") {
		t.Errorf("market = %+v, want AAPL and MSFT", m.Stocks())
	}
	if p, ok := m.Price("MSFT"); !ok || !p.Equal(USD(415.26)) {
		t.Errorf("Price(MSFT) = %v, %v, want $415.26", p, ok)
	}
	if _, ok := m.Price("GOOGL"); ok {
		t.Error("Price(GOOGL) found a price")
	}
	if got := m.Stocks(); got[0].Symbol != "AAPL" || got[1].Symbol != "MSFT" {
		t.Errorf("Stocks() = %v, want listing order", got)
	}

	err := m.Add(quote("AAPL", 1, 0, 0))
	if !errors.Is(err, ErrDuplicateSymbol) {
		t.Errorf("Add(AAPL) error = %v, want %v", err, ErrDuplicateSymbol)
	}
}

func TestMarketClone(t *testing.T) {
	m := newTestMarket(t, SeedStocks[0].NewStock(NewSimulator(newRand()), 5, day0))
	c := m.Clone()

	c.Get("AAPL").Price = USD(1)
	c.Get("AAPL").History.Clear()
	if s := m.Get("AAPL"); !s.Price.Equal(USD(182.52)) || s.History.Len() != 6 {
		t.Errorf("clone shares memory with the original: %v, %d points", s.Price, s.History.Len())
	}
}

func TestNilMarket(t *testing.T) {
	var m *Market
	if m.Has("AAPL") || m.Get("AAPL") != nil || m.Len() != 0 || m.Stocks() != nil {
		t.Error("nil market is not empty")
	}
	if v := PortfolioValue([]Holding{{Symbol: "AAPL", Shares: 1}}, USD(10), m); !v.Equal(USD(10)) {
		t.Errorf("PortfolioValue() = %v, want $10.00", v)
	}
}
