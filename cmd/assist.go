package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/etnz/stocksim/agent"
	"github.com/google/subcommands"
	"github.com/sirupsen/logrus"
	"google.golang.org/genai"
)

// assistCmd is the subcommand for the AI assistant.
type assistCmd struct {
	sessionFlags
	interval time.Duration
}

// Name returns the name of the command.
func (*assistCmd) Name() string { return "assist" }

// Synopsis returns a short-one line synopsis of the command.
func (*assistCmd) Synopsis() string {
	return "Start an interactive session with the AI assistant over a live market."
}

// Usage returns a long-form usage string.
func (*assistCmd) Usage() string {
	return `stocksim assist [<prompt>...]

  Start an interactive session with the AI assistant. It sees the market and
  the portfolio of a new session and trades when asked to.
  Requires GEMINI_API_KEY (or GOOGLE_API_KEY) in the environment.
`
}

// SetFlags sets the flags for the command.
func (c *assistCmd) SetFlags(f *flag.FlagSet) {
	c.sessionFlags.SetFlags(f)
	f.DurationVar(&c.interval, "interval", Env.Interval, "Period of the market simulation. Env: "+EnvTickInterval)
}

// Execute executes the command.
func (c *assistCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	initialPrompt := ""
	if f.NArg() > 0 {
		initialPrompt = strings.Join(f.Args(), " ")
	}

	log, err := newLogger(logrus.ErrorLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	s, err := c.open(log)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error opening the session:", err)
		return subcommands.ExitFailure
	}

	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error initializing Gemini's client:", err)
		return subcommands.ExitFailure
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go s.Run(ctx, c.interval)

	broker := agent.NewBroker(s)
	broker.Log = log
	a := agent.New(os.Stdout, os.Stdin, agent.NewTrader(), broker)
	a.Print = fprintMarkdown

	if err := a.Run(ctx, client, initialPrompt); err != nil {
		fmt.Fprintln(os.Stderr, "Agent failed:", err)
		return subcommands.ExitFailure
	}

	return subcommands.ExitSuccess
}
