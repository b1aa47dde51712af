package stocksim

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"testing"
	"time"
)

func TestNewSession(t *testing.T) {
	s := newTestSession(t)
	st := s.Snapshot()

	if st.Market.Len() != len(SeedStocks) {
		t.Errorf("market lists %d stocks, want %d", st.Market.Len(), len(SeedStocks))
	}
	if st.Tab != TabMarket || st.PortfolioView != ViewHoldings {
		t.Errorf("tab, view = %s, %s, want market, holdings", st.Tab, st.PortfolioView)
	}
	if st.Selected == nil || st.Selected.Symbol != "AAPL" {
		t.Errorf("selected = %v, want AAPL", st.Selected)
	}
	if !st.Portfolio.CashBalance.Equal(USD(100000)) || !st.Portfolio.TotalValue.Equal(USD(100000)) {
		t.Errorf("portfolio = %+v, want $100,000.00 cash", st.Portfolio)
	}
	for _, stock := range st.Market.Stocks() {
		if stock.History.Len() != DefaultHistoryDays+1 {
			t.Errorf("%s has %d points of history, want %d", stock.Symbol, stock.History.Len(), DefaultHistoryDays+1)
		}
	}
}

func TestNewSessionErrors(t *testing.T) {
	testCases := []struct {
		name    string
		stocks  []StockSeed
		wantErr error
	}{
		{"duplicate", []StockSeed{{Symbol: "A", Price: 1}, {Symbol: "A", Price: 2}}, ErrDuplicateSymbol},
		{"invalid", []StockSeed{{Symbol: "A"}}, nil},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewSession(SessionConfig{Stocks: tc.stocks, Rand: newRand(), Logger: quietLogger()})
			if err == nil {
				t.Fatal("NewSession() succeeded, want an error")
			}
			if tc.wantErr != nil && !errors.Is(err, tc.wantErr) {
				t.Errorf("NewSession() error = %v, want %v", err, tc.wantErr)
			}
		})
	}
}

func TestSessionNavigation(t *testing.T) {
	s := newTestSession(t)

	if err := s.SelectStock("TSLA"); err != nil {
		t.Fatal(err)
	}
	if st := s.Snapshot(); st.Selected.Symbol != "TSLA" || st.Tab != TabStocks {
		t.Errorf("after SelectStock: selected %s on tab %s, want TSLA on stocks", st.Selected.Symbol, st.Tab)
	}
	if err := s.SelectStock("NOPE"); !errors.Is(err, ErrUnknownSymbol) {
		t.Errorf("SelectStock(NOPE) error = %v, want %v", err, ErrUnknownSymbol)
	}
	if err := s.SetTab("Portfolio"); err != nil {
		t.Fatal(err)
	}
	if err := s.SetTab("settings"); !errors.Is(err, ErrUnknownTab) {
		t.Errorf("SetTab(settings) error = %v, want %v", err, ErrUnknownTab)
	}
	if err := s.SetPortfolioView(ViewHistory); err != nil {
		t.Fatal(err)
	}
	if err := s.SetPortfolioView("chart"); !errors.Is(err, ErrUnknownView) {
		t.Errorf("SetPortfolioView(chart) error = %v, want %v", err, ErrUnknownView)
	}

	st := s.Snapshot()
	if st.Tab != TabPortfolio || st.PortfolioView != ViewHistory || st.Selected.Symbol != "TSLA" {
		t.Errorf("state = %s %s %s, want portfolio history TSLA", st.Tab, st.PortfolioView, st.Selected.Symbol)
	}
}

func TestSessionTrade(t *testing.T) {
	s := newTestSession(t)
	price, _ := s.Snapshot().Market.Price("AAPL")

	res, err := s.Trade(Buy, "AAPL", 10)
	if err != nil {
		t.Fatal(err)
	}
	if !res.Success {
		t.Fatalf("BUY rejected: %s", res.Message)
	}
	if !res.Trade.Price.Equal(price) || !res.Trade.Timestamp.Equal(day0) {
		t.Errorf("trade = %+v, want at %v on %v", res.Trade, price, day0)
	}
	st := s.Snapshot()
	if want := USD(100000).Sub(price.Times(10)); !st.Portfolio.CashBalance.Equal(want) {
		t.Errorf("cash = %v, want %v", st.Portfolio.CashBalance, want)
	}

	// a rejected trade leaves the session unchanged.
	res, err = s.Trade(Sell, "AAPL", 11)
	if err != nil {
		t.Fatal(err)
	}
	if res.Success || !errors.Is(res.Err, ErrInsufficientShares) {
		t.Errorf("SELL 11 = %+v, want insufficient shares", res)
	}
	if !samePortfolio(s.Snapshot().Portfolio, st.Portfolio) {
		t.Error("rejected trade changed the portfolio")
	}

	if _, err := s.Trade(Buy, "NOPE", 1); !errors.Is(err, ErrUnknownSymbol) {
		t.Errorf("Trade(NOPE) error = %v, want %v", err, ErrUnknownSymbol)
	}
}

func TestSessionTick(t *testing.T) {
	s := newTestSession(t)
	if _, err := s.Trade(Buy, "AAPL", 100); err != nil {
		t.Fatal(err)
	}
	if err := s.SelectStock("NFLX"); err != nil {
		t.Fatal(err)
	}

	later := day0.Add(DefaultTickInterval)
	s.Tick(later)

	st := s.Snapshot()
	if st.Selected.Symbol != "NFLX" || !st.Selected.LastUpdated.Equal(later) {
		t.Errorf("selected = %s updated %v, want NFLX updated %v", st.Selected.Symbol, st.Selected.LastUpdated, later)
	}
	if want := PortfolioValue(st.Portfolio.Holdings, st.Portfolio.CashBalance, st.Market); !st.Portfolio.TotalValue.Equal(want) {
		t.Errorf("total value = %v, want %v", st.Portfolio.TotalValue, want)
	}
}

func TestSessionSnapshotIsolation(t *testing.T) {
	s := newTestSession(t)
	st := s.Snapshot()
	st.Selected.Price = USD(1)
	st.Portfolio.Holdings = append(st.Portfolio.Holdings, Holding{Symbol: "AAPL", Shares: 1})

	again := s.Snapshot()
	if again.Selected.Price.Equal(USD(1)) || len(again.Portfolio.Holdings) != 0 {
		t.Error("snapshot shares memory with the session")
	}
}

func TestSessionRun(t *testing.T) {
	var mu sync.Mutex
	ticks := 0
	s, err := NewSession(SessionConfig{
		Rand:   rand.New(rand.NewSource(9)),
		Logger: quietLogger(),
		Now: func() time.Time {
			mu.Lock()
			defer mu.Unlock()
			ticks++
			return day0.Add(time.Duration(ticks) * time.Second)
		},
	})
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	done := make(chan error)
	go func() { done <- s.Run(ctx, time.Millisecond) }()

	// trades are served while the market runs.
	for range 10 {
		if _, err := s.Trade(Buy, "JPM", 1); err != nil {
			t.Error(err)
		}
	}
	if err := <-done; !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Run() error = %v, want %v", err, context.DeadlineExceeded)
	}
	if st := s.Snapshot(); !st.Selected.LastUpdated.After(day0.Add(time.Second)) {
		t.Errorf("market did not tick: last updated %v", st.Selected.LastUpdated)
	}
	if err := s.Run(context.Background(), 0); err == nil {
		t.Error("Run() accepted a zero interval")
	}
}
