package stocksim

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// Tab is the main area of the application being shown.
type Tab string

const (
	TabMarket    Tab = "market"
	TabStocks    Tab = "stocks"
	TabPortfolio Tab = "portfolio"
)

// ParseTab parses a tab name, in any case.
func ParseTab(s string) (Tab, error) {
	switch t := Tab(strings.ToLower(strings.TrimSpace(s))); t {
	case TabMarket, TabStocks, TabPortfolio:
		return t, nil
	default:
		return "", fmt.Errorf("%w %q, want market, stocks or portfolio", ErrUnknownTab, s)
	}
}

// PortfolioView is the sub-tab of the portfolio tab.
type PortfolioView string

const (
	ViewHoldings PortfolioView = "holdings"
	ViewHistory  PortfolioView = "history"
)

// ParsePortfolioView parses a portfolio view name; "" is ViewHoldings.
func ParsePortfolioView(s string) (PortfolioView, error) {
	switch v := PortfolioView(strings.ToLower(strings.TrimSpace(s))); v {
	case "":
		return ViewHoldings, nil
	case ViewHoldings, ViewHistory:
		return v, nil
	default:
		return "", fmt.Errorf("%w %q, want holdings or history", ErrUnknownView, s)
	}
}

const (
	// DefaultCash is the starting cash balance.
	DefaultCash = 100_000
	// DefaultHistoryDays is the number of days of generated history before today.
	DefaultHistoryDays = 30
	// DefaultTickInterval is the period of the market simulation.
	DefaultTickInterval = 5 * time.Second
)

// SessionConfig configures a new Session. The zero value is a valid configuration.
type SessionConfig struct {
	Stocks      []StockSeed        // default SeedStocks
	Cash        Money              // default DefaultCash
	Rand        *rand.Rand         // default seeded from the clock
	Volatility  map[string]float64 // default DefaultVolatility
	HistoryDays int                // default DefaultHistoryDays
	Now         func() time.Time   // default time.Now
	Logger      logrus.FieldLogger // default discards everything
}

// State is a copy of a session's state, safe to read without locking.
type State struct {
	Market        *Market
	Selected      *Stock // belongs to Market, nil only if the market is empty
	Portfolio     Portfolio
	Tab           Tab
	PortfolioView PortfolioView
}

// Session owns the market, the portfolio and the navigation state of one trader.
//
// All methods are safe for concurrent use: the ticker goroutine started by Run
// and request handlers share the same session.
type Session struct {
	mu sync.Mutex

	sim       *Simulator
	market    *Market
	selected  string
	portfolio Portfolio
	tab       Tab
	view      PortfolioView

	now func() time.Time
	log logrus.FieldLogger
}

// NewSession lists the configured stocks with a fresh history and opens a portfolio.
func NewSession(cfg SessionConfig) (*Session, error) {
	if cfg.Stocks == nil {
		cfg.Stocks = SeedStocks
	}
	if cfg.Cash.IsZero() {
		cfg.Cash = USD(DefaultCash)
	}
	if cfg.Rand == nil {
		cfg.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if cfg.HistoryDays <= 0 {
		cfg.HistoryDays = DefaultHistoryDays
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.Logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		cfg.Logger = l
	}

	sim := NewSimulator(cfg.Rand)
	if cfg.Volatility != nil {
		sim.Volatility = cfg.Volatility
	}

	now := cfg.Now()
	m, err := NewMarket()
	if err != nil {
		return nil, err
	}
	for _, seed := range cfg.Stocks {
		if err := seed.Validate(); err != nil {
			return nil, err
		}
		if err := m.Add(seed.NewStock(sim, cfg.HistoryDays, now)); err != nil {
			return nil, err
		}
	}

	s := &Session{
		sim:       sim,
		market:    m,
		portfolio: NewPortfolio(cfg.Cash).Revalue(m),
		tab:       TabMarket,
		view:      ViewHoldings,
		now:       cfg.Now,
		log:       cfg.Logger,
	}
	if stocks := m.Stocks(); len(stocks) > 0 {
		s.selected = stocks[0].Symbol
	}
	s.log.WithField("stocks", m.Len()).Info("session opened")
	return s, nil
}

// Snapshot returns a deep copy of the current state.
func (s *Session) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	m := s.market.Clone()
	return State{
		Market:        m,
		Selected:      m.Get(s.selected),
		Portfolio:     s.portfolio.Clone(),
		Tab:           s.tab,
		PortfolioView: s.view,
	}
}

// SelectStock selects symbol and shows the stocks tab.
func (s *Session) SelectStock(symbol string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.market.Has(symbol) {
		return fmt.Errorf("cannot select %q: %w", symbol, ErrUnknownSymbol)
	}
	s.selected = symbol
	s.tab = TabStocks
	return nil
}

// SetTab shows tab.
func (s *Session) SetTab(tab Tab) error {
	t, err := ParseTab(string(tab))
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tab = t
	return nil
}

// SetPortfolioView shows view in the portfolio tab.
func (s *Session) SetPortfolioView(view PortfolioView) error {
	v, err := ParsePortfolioView(string(view))
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.view = v
	return nil
}

// Trade executes a trade of shares of symbol at its live price.
//
// A trade rejected by the ledger is not an error: the result tells why and the
// portfolio is unchanged. The error is only set when the trade could not be
// attempted at all.
func (s *Session) Trade(action Action, symbol string, shares int) (TradeResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	price, ok := s.market.Price(symbol)
	if !ok {
		return TradeResult{}, fmt.Errorf("cannot trade %q: %w", symbol, ErrUnknownSymbol)
	}
	req := TradeRequest{Action: action, Symbol: symbol, Shares: shares, Price: price}
	res := ExecuteTrade(s.portfolio, req, s.market, s.now())

	log := s.log.WithFields(logrus.Fields{
		"action": action,
		"symbol": symbol,
		"shares": shares,
		"price":  price.String(),
	})
	if !res.Success {
		log.WithError(res.Err).Warn("trade rejected")
		res.Portfolio = res.Portfolio.Clone()
		return res, nil
	}
	s.portfolio = res.Portfolio
	res.Portfolio = res.Portfolio.Clone()
	log.WithField("cash", s.portfolio.CashBalance.String()).Info("trade executed")
	return res, nil
}

// Tick moves the market once and revalues the portfolio.
func (s *Session) Tick(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sim.Tick(s.market, now)
	s.portfolio = s.portfolio.Revalue(s.market)
	s.log.WithField("total", s.portfolio.TotalValue.String()).Debug("market ticked")
}

// Run ticks the market every interval until ctx is done. Ticks missed while
// the session is busy are dropped.
func (s *Session) Run(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		return fmt.Errorf("tick interval must be positive, got %v", interval)
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	s.log.WithField("interval", interval).Info("market simulation started")
	for {
		select {
		case <-ctx.Done():
			s.log.Info("market simulation stopped")
			return ctx.Err()
		case <-ticker.C:
			s.Tick(s.now())
		}
	}
}

// Now returns the session's clock.
func (s *Session) Now() time.Time { return s.now() }
