package cmd

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/etnz/stocksim"
)

func TestMarketRun(t *testing.T) {
	flags := sessionFlags{seed: 42, cash: 1000, days: 30}
	now := func() time.Time { return day0 }

	run := func(c *marketCmd) (string, error) {
		t.Helper()
		cfg, err := flags.config(quietLogger(), now)
		if err != nil {
			t.Fatal(err)
		}
		var buf bytes.Buffer
		err = c.run(&buf, cfg)
		return buf.String(), err
	}

	testCases := []struct {
		name    string
		cmd     marketCmd
		want    []string
		wantErr bool
	}{
		{"overview", marketCmd{ticks: 3, interval: time.Second, format: "markdown"}, []string{"# Market Overview", "## Top Gainers", "## Top Losers"}, false},
		{"detail", marketCmd{format: "md", symbol: "AAPL"}, []string{"# AAPL - Apple Inc.", "$182.52"}, false},
		{"html", marketCmd{ticks: 1, interval: time.Second, format: "html"}, []string{"<h1>Market Overview</h1>", "<table>"}, false},
		{"unknown format", marketCmd{format: "pdf"}, nil, true},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := run(&tc.cmd)
			if (err != nil) != tc.wantErr {
				t.Fatalf("run() error = %v, wantErr %v", err, tc.wantErr)
			}
			for _, want := range tc.want {
				if !strings.Contains(got, want) {
					t.Errorf("run() does not contain %q:\n%s", want, got)
				}
			}
		})
	}

	t.Run("unknown symbol", func(t *testing.T) {
		if _, err := run(&marketCmd{format: "markdown", symbol: "NOPE"}); !errors.Is(err, stocksim.ErrUnknownSymbol) {
			t.Errorf("run() error = %v, want %v", err, stocksim.ErrUnknownSymbol)
		}
	})

	t.Run("reproducible", func(t *testing.T) {
		c := marketCmd{ticks: 10, interval: time.Second, format: "markdown"}
		a, _ := run(&c)
		b, _ := run(&c)
		if a != b {
			t.Errorf("two runs with the same seed differ:\n%s\n%s", a, b)
		}
	})
}
