package stocksim

import (
	"io"
	"math/rand"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
)

// day0 is the fixed clock of the tests.
var day0 = time.Date(2025, time.March, 14, 10, 30, 0, 0, time.UTC)

// quietLogger returns a logger that discards everything.
func quietLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// quote is a helper to create a stock with a price and a change.
func quote(symbol string, price, change, changePercent float64) *Stock {
	return &Stock{
		Symbol:        symbol,
		CompanyName:   symbol + " Corp.",
		Price:         USD(price),
		Change:        USD(change),
		ChangePercent: Percent(changePercent),
		LastUpdated:   day0,
	}
}

// newTestMarket lists stocks or fails the test.
func newTestMarket(t testing.TB, stocks ...*Stock) *Market {
	t.Helper()
	m, err := NewMarket(stocks...)
	if err != nil {
		t.Fatalf("NewMarket() error = %v", err)
	}
	return m
}

// newTestSession opens a seeded session on the default universe.
func newTestSession(t testing.TB) *Session {
	t.Helper()
	s, err := NewSession(SessionConfig{
		Rand:   rand.New(rand.NewSource(42)),
		Now:    func() time.Time { return day0 },
		Logger: quietLogger(),
	})
	if err != nil {
		t.Fatalf("NewSession() error = %v", err)
	}
	return s
}

// newRand returns a seeded random source.
func newRand() *rand.Rand { return rand.New(rand.NewSource(1)) }
