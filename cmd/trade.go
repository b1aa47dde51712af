package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/etnz/stocksim"
	"github.com/google/subcommands"
)

type tradeCmd struct {
	server string
}

func (*tradeCmd) Name() string     { return "trade" }
func (*tradeCmd) Synopsis() string { return "buy or sell shares on a running server" }
func (*tradeCmd) Usage() string {
	return `stocksim trade [-server <url>] buy|sell <symbol> <shares>

  Places a trade at the current price on a running "stocksim serve".

Usage Examples:
$ stocksim trade buy AAPL 10
`
}

func (c *tradeCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.server, "server", Env.Server, "Base URL of the server. Env: "+EnvServer)
}

func (c *tradeCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 3 {
		fmt.Fprintln(os.Stderr, "Error: want exactly 3 arguments: buy|sell <symbol> <shares>")
		return subcommands.ExitUsageError
	}
	action, err := stocksim.ParseAction(f.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	shares, err := strconv.Atoi(f.Arg(2))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid number of shares %q\n", f.Arg(2))
		return subcommands.ExitUsageError
	}

	msg, err := c.trade(new(http.Client), action, strings.ToUpper(f.Arg(1)), shares)
	var apiErr *apiError
	if errors.As(err, &apiErr) && apiErr.Status == http.StatusUnprocessableEntity {
		// rejected by the ledger.
		fmt.Println("✗ " + apiErr.Message)
		return subcommands.ExitFailure
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Println(msg)
	return subcommands.ExitSuccess
}

// trade posts the trade and describes its outcome.
func (c *tradeCmd) trade(client *http.Client, action stocksim.Action, symbol string, shares int) (string, error) {
	addr, err := endpoint(c.server, "trades")
	if err != nil {
		return "", err
	}
	body := map[string]any{"action": action, "symbol": symbol, "shares": shares}
	var jobj any
	if err := jwpost(client, addr, body, &jobj); err != nil {
		return "", err
	}

	price, err := jfloat(jobj, "$.trade.price")
	if err != nil {
		return "", err
	}
	traded, err := jfloat(jobj, "$.trade.shares")
	if err != nil {
		return "", err
	}
	cash, err := jfloat(jobj, "$.portfolio.cashBalance")
	if err != nil {
		return "", err
	}
	verb := "Bought"
	if action == stocksim.Sell {
		verb = "Sold"
	}
	return fmt.Sprintf("✓ %s %d shares of %s at %s. Cash balance: %s.",
		verb, int(traded), symbol,
		stocksim.FormatCurrency(stocksim.USD(price)),
		stocksim.FormatCurrency(stocksim.USD(cash))), nil
}
