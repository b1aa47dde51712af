package stocksim

import (
	"errors"
	"fmt"
	"io"
	"time"

	"gopkg.in/yaml.v3"
)

// Band is the price band used to generate a stock's initial history.
type Band struct {
	Centre float64 `yaml:"centre"`
	Min    float64 `yaml:"min"`
	Max    float64 `yaml:"max"`
}

// StockSeed describes a stock listed when a session starts.
type StockSeed struct {
	Symbol        string  `yaml:"symbol"`
	CompanyName   string  `yaml:"company"`
	Sector        string  `yaml:"sector"`
	Price         float64 `yaml:"price"`
	Change        float64 `yaml:"change"`
	ChangePercent float64 `yaml:"change_percent"`
	History       Band    `yaml:"history"`
}

// SeedStocks is the default universe.
var SeedStocks = []StockSeed{
	{"AAPL", "Apple Inc.", "Technology", 182.52, 3.26, 1.82, Band{180, 150, 190}},
	{"MSFT", "Microsoft Corporation", "Technology", 415.26, -2.34, -0.56, Band{420, 380, 430}},
	{"GOOGL", "Alphabet Inc.", "Technology", 146.68, 1.42, 0.98, Band{145, 130, 155}},
	{"AMZN", "Amazon.com Inc.", "Consumer Cyclical", 178.75, 2.18, 1.23, Band{175, 160, 190}},
	{"TSLA", "Tesla, Inc.", "Automotive", 175.34, -4.12, -2.30, Band{180, 150, 200}},
	{"META", "Meta Platforms, Inc.", "Technology", 485.39, 5.28, 1.10, Band{470, 430, 500}},
	{"NFLX", "Netflix, Inc.", "Entertainment", 609.25, 12.43, 2.08, Band{590, 550, 620}},
	{"JPM", "JPMorgan Chase & Co.", "Financial Services", 198.47, -0.76, -0.38, Band{200, 190, 210}},
}

// Validate checks the seed and fills a default history band (±20% around the price) when none is given.
func (s *StockSeed) Validate() error {
	if s.Symbol == "" {
		return errors.New("stock symbol is missing")
	}
	if s.Price <= 0 {
		return fmt.Errorf("stock %s: price must be positive, got %v", s.Symbol, s.Price)
	}
	if s.History == (Band{}) {
		s.History = Band{Centre: s.Price, Min: s.Price * 0.8, Max: s.Price * 1.2}
	}
	if s.History.Min > s.History.Max {
		return fmt.Errorf("stock %s: history band min %v is above max %v", s.Symbol, s.History.Min, s.History.Max)
	}
	return nil
}

// NewStock lists the seed as a stock with a freshly generated history of days+1 points ending on now's day.
func (s StockSeed) NewStock(sim *Simulator, days int, now time.Time) *Stock {
	return &Stock{
		Symbol:        s.Symbol,
		CompanyName:   s.CompanyName,
		Sector:        s.Sector,
		Price:         USD(s.Price),
		Change:        USD(s.Change),
		ChangePercent: Percent(s.ChangePercent),
		LastUpdated:   now,
		History:       sim.GenerateHistory(s.History, days, now),
	}
}

// universeFile is the YAML layout of a universe file.
type universeFile struct {
	Stocks []StockSeed `yaml:"stocks"`
}

// LoadUniverse decodes a YAML universe file:
//
//	stocks:
//	  - symbol: AAPL
//	    company: Apple Inc.
//	    sector: Technology
//	    price: 182.52
//	    history: {centre: 180, min: 150, max: 190}
func LoadUniverse(r io.Reader) ([]StockSeed, error) {
	var f universeFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("could not decode universe: %w", err)
	}
	if len(f.Stocks) == 0 {
		return nil, errors.New("universe lists no stock")
	}

	var errs error
	seen := make(map[string]bool, len(f.Stocks))
	for i := range f.Stocks {
		s := &f.Stocks[i]
		if err := s.Validate(); err != nil {
			errs = errors.Join(errs, err)
			continue
		}
		if seen[s.Symbol] {
			errs = errors.Join(errs, fmt.Errorf("stock %s: %w", s.Symbol, ErrDuplicateSymbol))
		}
		seen[s.Symbol] = true
	}
	if errs != nil {
		return nil, errs
	}
	return f.Stocks, nil
}
