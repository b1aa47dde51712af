package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/etnz/stocksim"
	"github.com/etnz/stocksim/renderer"
	"github.com/google/subcommands"
	"github.com/sirupsen/logrus"
)

type marketCmd struct {
	sessionFlags
	ticks    int
	interval time.Duration
	format   string
	symbol   string
}

func (*marketCmd) Name() string     { return "market" }
func (*marketCmd) Synopsis() string { return "print the market after a number of ticks" }
func (*marketCmd) Usage() string {
	return `stocksim market [-ticks <n>] [-seed <n>] [-s <symbol>] [-format terminal|markdown|html]

  Opens a market, moves it n times and prints its overview, or the detail of
  one stock. With the same seed the output is the same.

Usage Examples:
$ stocksim market -seed 42 -ticks 10
$ stocksim market -seed 42 -s AAPL -format html > aapl.html
`
}

func (c *marketCmd) SetFlags(f *flag.FlagSet) {
	c.sessionFlags.SetFlags(f)
	f.IntVar(&c.ticks, "ticks", 0, "Number of ticks to simulate.")
	f.DurationVar(&c.interval, "interval", Env.Interval, "Simulated time between two ticks. Env: "+EnvTickInterval)
	f.StringVar(&c.format, "format", "terminal", "Output format: terminal, markdown or html.")
	f.StringVar(&c.symbol, "s", "", "Print the detail of this stock instead of the overview.")
}

func (c *marketCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	log, err := newLogger(logrus.ErrorLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	if c.ticks < 0 {
		fmt.Fprintf(os.Stderr, "Error: -ticks must not be negative, got %d\n", c.ticks)
		return subcommands.ExitUsageError
	}
	cfg, err := c.config(log, time.Now)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := c.run(os.Stdout, cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// run simulates the market of cfg and writes the requested view to w.
func (c *marketCmd) run(w io.Writer, cfg stocksim.SessionConfig) error {
	s, err := stocksim.NewSession(cfg)
	if err != nil {
		return err
	}
	now := s.Now()
	for i := range c.ticks {
		s.Tick(now.Add(time.Duration(i+1) * c.interval))
	}

	st := s.Snapshot()
	var md string
	if c.symbol != "" {
		stock := st.Market.Get(c.symbol)
		if stock == nil {
			return fmt.Errorf("cannot show %q: %w", c.symbol, stocksim.ErrUnknownSymbol)
		}
		md = renderer.StockDetail(stocksim.NewStockDetail(stock, st.Portfolio))
	} else {
		md = renderer.MarketOverview(stocksim.NewMarketOverview(st.Market), nil)
	}

	switch c.format {
	case "markdown", "md":
		_, err = fmt.Fprint(w, md)
	case "html":
		var html string
		if html, err = renderer.HTML(md); err == nil {
			_, err = fmt.Fprint(w, html)
		}
	case "terminal", "":
		fprintMarkdown(w, md)
	default:
		err = fmt.Errorf("unknown format %q, want terminal, markdown or html", c.format)
	}
	return err
}
