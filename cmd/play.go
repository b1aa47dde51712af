package cmd

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/etnz/stocksim"
	"github.com/etnz/stocksim/renderer"
	"github.com/google/subcommands"
	"github.com/sirupsen/logrus"
)

type playCmd struct {
	sessionFlags
	interval time.Duration
}

func (*playCmd) Name() string     { return "play" }
func (*playCmd) Synopsis() string { return "trade on the simulated market from the terminal" }
func (*playCmd) Usage() string {
	return `stocksim play [-interval <duration>] [-seed <n>] [-cash <amount>] [-universe <file.yaml>]

  Opens a trading session in the terminal. Type "help" to list the commands.
  By default the market only moves with the "tick" command, -interval makes it
  move on its own.

Usage Examples:
$ stocksim play -seed 42
stocksim> buy AAPL 10
`
}

func (c *playCmd) SetFlags(f *flag.FlagSet) {
	c.sessionFlags.SetFlags(f)
	f.DurationVar(&c.interval, "interval", 0, "Period of the market simulation, 0 to move it only with the tick command.")
}

func (c *playCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	log, err := newLogger(logrus.ErrorLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	s, err := c.open(log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: cannot open the session: %v\n", err)
		return subcommands.ExitFailure
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	if c.interval > 0 {
		go s.Run(ctx, c.interval)
	}

	p := newPlayer(s, os.Stdout)
	p.print = fprintMarkdown
	if err := p.run(ctx, os.Stdin); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

const playHelp = `# Commands

| Command | Effect |
|:--|:--|
| market | show the market overview |
| list [query] | list the stocks matching query |
| sort symbol\|price\|change | sort the list, twice to reverse |
| select SYM | show the detail of a stock |
| buy SYM N | buy N shares of SYM |
| sell SYM N | sell N shares of SYM |
| portfolio | show the holdings |
| history | show the trade history |
| tick [N] | move the market N times |
| quit | leave |
`

// player is a terminal trading session.
type player struct {
	session *stocksim.Session
	filter  stocksim.StockFilter
	w       io.Writer
	print   func(w io.Writer, md string)
}

func newPlayer(s *stocksim.Session, w io.Writer) *player {
	return &player{
		session: s,
		w:       w,
		print:   func(w io.Writer, md string) { fmt.Fprintln(w, md) },
	}
}

const playPrompt = "stocksim> "

var errQuit = errors.New("quit")

// run reads commands from r until it is exhausted, the quit command or ctx is done.
func (p *player) run(ctx context.Context, r io.Reader) error {
	p.print(p.w, p.show())
	scanner := bufio.NewScanner(r)
	for {
		fmt.Fprint(p.w, playPrompt)
		if !scanner.Scan() {
			fmt.Fprintln(p.w)
			return scanner.Err()
		}
		if err := ctx.Err(); err != nil {
			return nil
		}
		md, err := p.exec(scanner.Text())
		if errors.Is(err, errQuit) {
			return nil
		}
		if err != nil {
			fmt.Fprintf(p.w, "Error: %v\n", err)
			continue
		}
		p.print(p.w, md)
	}
}

// exec executes one command line and returns the markdown to print.
func (p *player) exec(line string) (string, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return p.show(), nil
	}
	cmd, args := strings.ToLower(fields[0]), fields[1:]
	s := p.session

	switch cmd {
	case "quit", "exit", "bye":
		return "", errQuit
	case "help", "?":
		return playHelp, nil

	case "market":
		return p.showTab(stocksim.TabMarket)

	case "list":
		p.filter.Query = strings.Join(args, " ")
		return p.showTab(stocksim.TabStocks)

	case "sort":
		if len(args) != 1 {
			return "", errors.New("usage: sort symbol|price|change")
		}
		col, err := stocksim.ParseSortColumn(args[0])
		if err != nil {
			return "", err
		}
		p.filter = p.filter.ToggleSort(col)
		return p.showTab(stocksim.TabStocks)

	case "select":
		if len(args) != 1 {
			return "", errors.New("usage: select SYM")
		}
		if err := s.SelectStock(strings.ToUpper(args[0])); err != nil {
			return "", err
		}
		return p.show(), nil

	case "tab":
		if len(args) != 1 {
			return "", errors.New("usage: tab market|stocks|portfolio")
		}
		tab, err := stocksim.ParseTab(args[0])
		if err != nil {
			return "", err
		}
		return p.showTab(tab)

	case "portfolio", "holdings", "history":
		view := stocksim.ViewHoldings
		if cmd == "history" {
			view = stocksim.ViewHistory
		}
		if err := s.SetPortfolioView(view); err != nil {
			return "", err
		}
		return p.showTab(stocksim.TabPortfolio)

	case "buy", "sell":
		if len(args) != 2 {
			return "", fmt.Errorf("usage: %s SYM N", cmd)
		}
		action, err := stocksim.ParseAction(cmd)
		if err != nil {
			return "", err
		}
		shares, err := strconv.Atoi(args[1])
		if err != nil {
			return "", fmt.Errorf("invalid number of shares %q", args[1])
		}
		res, err := s.Trade(action, strings.ToUpper(args[0]), shares)
		if err != nil {
			return "", err
		}
		return renderer.Result(res), nil

	case "tick":
		n := 1
		if len(args) > 0 {
			var err error
			if n, err = strconv.Atoi(args[0]); err != nil || n < 1 {
				return "", fmt.Errorf("invalid number of ticks %q", args[0])
			}
		}
		for range n {
			s.Tick(s.Now())
		}
		return p.show(), nil

	default:
		return "", fmt.Errorf("unknown command %q, type help to list them", cmd)
	}
}

func (p *player) showTab(tab stocksim.Tab) (string, error) {
	if err := p.session.SetTab(tab); err != nil {
		return "", err
	}
	return p.show(), nil
}

// show renders the current tab.
func (p *player) show() string {
	return renderer.Tab(p.session.Snapshot(), p.filter, nil)
}
