package agent

import (
	"context"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/etnz/stocksim"
	"google.golang.org/genai"
)

func newTestLibrary(t *testing.T) (Library, *stocksim.Session) {
	t.Helper()
	s, err := stocksim.NewSession(stocksim.SessionConfig{
		Rand: rand.New(rand.NewSource(1)),
		Now:  func() time.Time { return time.Date(2025, time.March, 14, 10, 30, 0, 0, time.UTC) },
	})
	if err != nil {
		t.Fatal(err)
	}
	return NewLibrary(SessionFunctions(s)), s
}

func call(lib Library, name string, args map[string]any) *genai.FunctionResponse {
	return lib(context.Background(), &genai.FunctionCall{ID: "1", Name: name, Args: args})
}

func TestSessionFunctions(t *testing.T) {
	lib, _ := newTestLibrary(t)
	testCases := []struct {
		name string
		args map[string]any
		want string
	}{
		{"MarketOverview", nil, "Top Gainers"},
		{"Stocks", map[string]any{"query": "tesla"}, "TSLA"},
		{"Stocks", map[string]any{"sort": "price", "dir": "desc"}, "NFLX"},
		{"StockDetail", map[string]any{"symbol": "AAPL"}, "Trade AAPL"},
		{"Portfolio", nil, "$100,000.00"},
		{"Portfolio", map[string]any{"view": "history"}, "No trades yet."},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			resp := call(lib, tc.name, tc.args)
			if resp.ID != "1" || resp.Name != tc.name {
				t.Errorf("response is for %s/%s, want 1/%s", resp.ID, resp.Name, tc.name)
			}
			out, ok := resp.Response["output"].(string)
			if !ok {
				t.Fatalf("no output: %v", resp.Response)
			}
			if !strings.Contains(out, tc.want) {
				t.Errorf("output does not contain %q:\n%s", tc.want, out)
			}
		})
	}
}

func TestTradeFunction(t *testing.T) {
	lib, s := newTestLibrary(t)

	resp := call(lib, "Trade", map[string]any{"action": "BUY", "symbol": "AAPL", "shares": 10.0})
	if out, _ := resp.Response["output"].(string); !strings.HasPrefix(out, "✓ Bought 10 shares of AAPL") {
		t.Errorf("Trade output = %v", resp.Response)
	}
	if h, ok := s.Snapshot().Portfolio.Holding("AAPL"); !ok || h.Shares != 10 {
		t.Errorf("holding = %+v, want 10 AAPL", h)
	}

	resp = call(lib, "Trade", map[string]any{"action": "SELL", "symbol": "MSFT", "shares": 1.0})
	if out, _ := resp.Response["output"].(string); out != "✗ You don't own any shares of MSFT." {
		t.Errorf("Trade output = %v", resp.Response)
	}
}

func TestFunctionErrors(t *testing.T) {
	lib, _ := newTestLibrary(t)
	testCases := []struct {
		name string
		fn   string
		args map[string]any
	}{
		{"unknown function", "Withdraw", nil},
		{"unknown symbol", "StockDetail", map[string]any{"symbol": "NOPE"}},
		{"bad view", "Portfolio", map[string]any{"view": "chart"}},
		{"bad sort", "Stocks", map[string]any{"sort": 3.0}},
		{"fractional shares", "Trade", map[string]any{"action": "BUY", "symbol": "AAPL", "shares": 1.5}},
		{"missing shares", "Trade", map[string]any{"action": "BUY", "symbol": "AAPL"}},
		{"bad action", "Trade", map[string]any{"action": "SHORT", "symbol": "AAPL", "shares": 1.0}},
		{"trade unknown symbol", "Trade", map[string]any{"action": "BUY", "symbol": "NOPE", "shares": 1.0}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			resp := call(lib, tc.fn, tc.args)
			if msg, ok := resp.Response["error"].(string); !ok || msg == "" {
				t.Errorf("response = %v, want an error", resp.Response)
			}
		})
	}
}

func TestExpertCallInvalidQuestion(t *testing.T) {
	e := NewExpert("Broker", "test")
	resp := e.Call(context.Background(), "7", map[string]any{"question": 42})
	if resp.ID != "7" || resp.Name != "Broker" {
		t.Errorf("response is for %s/%s", resp.ID, resp.Name)
	}
	if _, ok := resp.Response["error"]; !ok {
		t.Errorf("response = %v, want an error", resp.Response)
	}

	// not started: no chat to ask.
	resp = e.Call(context.Background(), "8", map[string]any{"question": "hello?"})
	if _, ok := resp.Response["error"]; !ok {
		t.Errorf("response = %v, want an error", resp.Response)
	}
}

func TestDeclarations(t *testing.T) {
	s, err := stocksim.NewSession(stocksim.SessionConfig{Rand: rand.New(rand.NewSource(1))})
	if err != nil {
		t.Fatal(err)
	}
	broker := NewBroker(s)
	decls := broker.Config.Tools[0].FunctionDeclarations
	var names []string
	for _, d := range decls {
		names = append(names, d.Name)
	}
	if got, want := strings.Join(names, ","), "MarketOverview,Stocks,StockDetail,Portfolio,Trade"; got != want {
		t.Errorf("declarations = %s, want %s", got, want)
	}

	f := newFacilitator(broker, NewTrader())
	if d := f.Config.Tools[0].FunctionDeclarations; len(d) != 2 || d[0].Name != "Broker" || d[1].Name != "Trader" {
		t.Errorf("facilitator declarations = %v", d)
	}
}
