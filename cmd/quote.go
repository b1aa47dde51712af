package cmd

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/etnz/stocksim"
	"github.com/google/subcommands"
	md "github.com/nao1215/markdown"
)

type quoteCmd struct {
	server string
	query  string
}

func (*quoteCmd) Name() string     { return "quote" }
func (*quoteCmd) Synopsis() string { return "print the quotes of a running server" }
func (*quoteCmd) Usage() string {
	return `stocksim quote [-server <url>] [-q <query>] [<symbol>...]

  Prints the current quotes of the given symbols from a running "stocksim serve",
  with the number of shares the portfolio can buy and holds.
  Without symbols, prints every stock matching the query.

Usage Examples:
$ stocksim quote AAPL TSLA
$ stocksim quote -q tech
`
}

func (c *quoteCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.server, "server", Env.Server, "Base URL of the server. Env: "+EnvServer)
	f.StringVar(&c.query, "q", "", "Only list the stocks whose symbol or company contains this text.")
}

func (c *quoteCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	doc, err := c.quotes(new(http.Client), f.Args())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(doc)
	return subcommands.ExitSuccess
}

// quote is one line of the quote table.
type quote struct {
	symbol, company string
	price, change   float64
	maxBuy, held    int
}

func (q quote) row() []string {
	return []string{
		q.symbol,
		q.company,
		stocksim.FormatCurrency(stocksim.USD(q.price)),
		stocksim.FormatPercent(stocksim.Percent(q.change)),
		strconv.Itoa(q.maxBuy),
		strconv.Itoa(q.held),
	}
}

// quotes returns the markdown table of the quotes of symbols, or of the stocks matching the query.
func (c *quoteCmd) quotes(client *http.Client, symbols []string) (string, error) {
	if len(symbols) == 0 {
		var err error
		if symbols, err = c.list(client); err != nil {
			return "", err
		}
	}
	if len(symbols) == 0 {
		return fmt.Sprintf("No stock matches %q.\n", c.query), nil
	}

	rows := make([][]string, 0, len(symbols))
	var errs error
	for _, sym := range symbols {
		q, err := c.quote(client, strings.ToUpper(sym))
		if err != nil {
			errs = errors.Join(errs, err)
			continue
		}
		rows = append(rows, q.row())
	}
	if errs != nil {
		return "", errs
	}

	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.Table(md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignLeft, md.AlignRight, md.AlignRight, md.AlignRight, md.AlignRight},
		Header:    []string{"Symbol", "Company", "Price", "Change", "Max. Buy", "Held"},
		Rows:      rows,
	})
	return doc.String(), nil
}

// list returns the symbols of the stocks matching the query.
func (c *quoteCmd) list(client *http.Client) ([]string, error) {
	addr, err := endpoint(c.server, "stocks")
	if err != nil {
		return nil, err
	}
	if c.query != "" {
		addr += "?" + url.Values{"q": {c.query}}.Encode()
	}
	var jobj any
	if err := jwget(client, addr, &jobj); err != nil {
		return nil, fmt.Errorf("cannot list stocks: %w", err)
	}
	list, err := jlist(jobj, "$[*].symbol")
	if err != nil {
		return nil, err
	}
	symbols := make([]string, 0, len(list))
	for _, v := range list {
		if s, ok := v.(string); ok {
			symbols = append(symbols, s)
		}
	}
	return symbols, nil
}

// quote reads the detail of symbol.
func (c *quoteCmd) quote(client *http.Client, symbol string) (q quote, err error) {
	addr, err := endpoint(c.server, "stocks", symbol)
	if err != nil {
		return q, err
	}
	var jobj any
	if err := jwget(client, addr, &jobj); err != nil {
		return q, fmt.Errorf("cannot quote %s: %w", symbol, err)
	}

	q.symbol = symbol
	if q.company, err = jstring(jobj, "$.stock.companyName"); err != nil {
		return q, err
	}
	if q.price, err = jfloat(jobj, "$.stock.price"); err != nil {
		return q, err
	}
	if q.change, err = jfloat(jobj, "$.stock.changePercent"); err != nil {
		return q, err
	}
	maxBuy, err := jfloat(jobj, "$.ticket.maxBuy")
	if err != nil {
		return q, err
	}
	q.maxBuy = int(maxBuy)
	// the position is omitted when no share is held.
	if held, err := jfloat(jobj, "$.position.shares"); err == nil {
		q.held = int(held)
	}
	return q, nil
}
