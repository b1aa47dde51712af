package stocksim

import (
	"errors"
	"strings"
	"testing"
)

func TestLoadUniverse(t *testing.T) {
	const universe = `
stocks:
  - symbol: AAPL
    company: Apple Inc.
    sector: Technology
    price: 182.52
    change: 3.26
    change_percent: 1.82
    history: {centre: 180, min: 150, max: 190}
  - symbol: ACME
    company: Acme Corp.
    sector: Industrials
    price: 50
`
	seeds, err := LoadUniverse(strings.NewReader(universe))
	if err != nil {
		t.Fatalf("LoadUniverse() error = %v", err)
	}
	if len(seeds) != 2 {
		t.Fatalf("LoadUniverse() returned %d stocks, want 2", len(seeds))
	}
	if got, want := seeds[0], SeedStocks[0]; got != want {
		t.Errorf("AAPL = %+v, want %+v", got, want)
	}
	if got, want := seeds[1].History, (Band{Centre: 50, Min: 40, Max: 60}); got != want {
		t.Errorf("default band = %+v, want %+v", got, want)
	}
}

func TestLoadUniverseErrors(t *testing.T) {
	testCases := []struct {
		name     string
		universe string
		wantErr  string
	}{
		{"empty", "stocks: []", "no stock"},
		{"unknown field", "stocks:\n  - symbol: A\n    price: 1\n    colour: red\n", "colour"},
		{"missing symbol", "stocks:\n  - price: 10\n", "symbol is missing"},
		{"negative price", "stocks:\n  - symbol: A\n    price: -1\n", "price must be positive"},
		{"inverted band", "stocks:\n  - symbol: A\n    price: 10\n    history: {centre: 10, min: 20, max: 5}\n", "above max"},
		{"duplicate", "stocks:\n  - symbol: A\n    price: 1\n  - symbol: A\n    price: 2\n", ErrDuplicateSymbol.Error()},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := LoadUniverse(strings.NewReader(tc.universe))
			if err == nil {
				t.Fatal("LoadUniverse() succeeded, want an error")
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Errorf("LoadUniverse() error = %q, want it to contain %q", err, tc.wantErr)
			}
		})
	}

	_, err := LoadUniverse(strings.NewReader("stocks:\n  - symbol: A\n    price: 1\n  - symbol: A\n    price: 2\n"))
	if !errors.Is(err, ErrDuplicateSymbol) {
		t.Errorf("LoadUniverse() error = %v, want %v", err, ErrDuplicateSymbol)
	}
}
