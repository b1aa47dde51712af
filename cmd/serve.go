package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/etnz/stocksim/server"
	"github.com/google/subcommands"
	"github.com/sirupsen/logrus"
)

type serveCmd struct {
	sessionFlags
	addr     string
	interval time.Duration
}

func (*serveCmd) Name() string     { return "serve" }
func (*serveCmd) Synopsis() string { return "serve the simulated market on the web" }
func (*serveCmd) Usage() string {
	return `stocksim serve [-addr <addr>] [-interval <duration>] [-seed <n>] [-cash <amount>] [-universe <file.yaml>]

  Opens a trading session and serves it over HTTP until interrupted: pages for
  the browser and a JSON API under /api. The market moves every interval.

Usage Examples:
# Serve on port 9000, prices moving every second.
$ stocksim serve -addr :9000 -interval 1s
`
}

func (c *serveCmd) SetFlags(f *flag.FlagSet) {
	c.sessionFlags.SetFlags(f)
	f.StringVar(&c.addr, "addr", Env.Addr, "Address to listen on. Env: "+EnvAddr)
	f.DurationVar(&c.interval, "interval", Env.Interval, "Period of the market simulation. Env: "+EnvTickInterval)
}

func (c *serveCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	log, err := newLogger(logrus.InfoLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	if err := c.validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	s, err := c.open(log)
	if err != nil {
		log.WithError(err).Error("cannot open the session")
		return subcommands.ExitFailure
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := server.Run(ctx, s, log, c.addr, c.interval); err != nil && !errors.Is(err, context.Canceled) {
		log.WithError(err).Error("server failed")
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

func (c *serveCmd) validate() error {
	if c.interval <= 0 {
		return fmt.Errorf("-interval must be positive, got %v", c.interval)
	}
	return nil
}
