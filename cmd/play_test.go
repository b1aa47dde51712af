package cmd

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/etnz/stocksim"
)

func TestPlayerExec(t *testing.T) {
	s := newTestSession(t)
	p := newPlayer(s, &bytes.Buffer{})

	// commands are run in sequence on the same session.
	testCases := []struct {
		line    string
		want    []string
		wantTab stocksim.Tab
		wantErr error
	}{
		{line: "", want: []string{"Market Overview"}, wantTab: stocksim.TabMarket},
		{line: "help", want: []string{"buy SYM N"}},
		{line: "buy AAPL 10", want: []string{"✓ Bought 10 shares of AAPL at $182.52."}},
		{line: "sell aapl 20", want: []string{"✗ You only have 10 shares to sell."}},
		{line: "buy AAPL 0", want: []string{"✗ Please enter a valid number of shares."}},
		{line: "sell NOPE 1", wantErr: stocksim.ErrUnknownSymbol},
		{line: "portfolio", want: []string{"Holdings", "AAPL"}, wantTab: stocksim.TabPortfolio},
		{line: "history", want: []string{"Trade History", "BUY"}, wantTab: stocksim.TabPortfolio},
		{line: "list tesla", want: []string{"1 of 8 stocks matching \"tesla\".", "TSLA"}, wantTab: stocksim.TabStocks},
		{line: "select tsla", want: []string{"TSLA - Tesla, Inc.", "Trade TSLA"}, wantTab: stocksim.TabStocks},
		{line: "sort price", want: []string{"Stocks"}},
		{line: "tab market", want: []string{"Top Gainers"}, wantTab: stocksim.TabMarket},
		{line: "tab charts", wantErr: stocksim.ErrUnknownTab},
		{line: "tick 3", want: []string{"Market Overview"}},
		{line: "select NOPE", wantErr: stocksim.ErrUnknownSymbol},
		{line: "QUIT", wantErr: errQuit},
	}
	for _, tc := range testCases {
		t.Run(tc.line, func(t *testing.T) {
			got, err := p.exec(tc.line)
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("exec(%q) error = %v, want %v", tc.line, err, tc.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("exec(%q) unexpected error: %v", tc.line, err)
			}
			for _, want := range tc.want {
				if !strings.Contains(got, want) {
					t.Errorf("exec(%q) does not contain %q:\n%s", tc.line, want, got)
				}
			}
			if tc.wantTab != "" {
				if tab := s.Snapshot().Tab; tab != tc.wantTab {
					t.Errorf("tab = %s, want %s", tab, tc.wantTab)
				}
			}
		})
	}
}

func TestPlayerUsage(t *testing.T) {
	p := newPlayer(newTestSession(t), &bytes.Buffer{})
	for _, line := range []string{"frobnicate", "buy AAPL", "buy AAPL ten", "tick -1", "sort", "sort volume", "select"} {
		if _, err := p.exec(line); err == nil {
			t.Errorf("exec(%q) succeeded", line)
		}
	}
}

func TestPlayerRun(t *testing.T) {
	var out bytes.Buffer
	s := newTestSession(t)
	p := newPlayer(s, &out)

	in := strings.NewReader("buy MSFT 2\nfoo\nquit\nbuy MSFT 2\n")
	if err := p.run(context.Background(), in); err != nil {
		t.Fatal(err)
	}
	got := out.String()
	for _, want := range []string{"Market Overview", playPrompt, "✓ Bought 2 shares of MSFT", `Error: unknown command "foo"`} {
		if !strings.Contains(got, want) {
			t.Errorf("output does not contain %q:\n%s", want, got)
		}
	}
	// nothing is read after quit.
	if h, _ := s.Snapshot().Portfolio.Holding("MSFT"); h.Shares != 2 {
		t.Errorf("MSFT shares = %d, want 2", h.Shares)
	}
}
