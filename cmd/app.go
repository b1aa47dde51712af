// Package cmd implements the stocksim command line application: the web
// server, a terminal trading session, the assistant and a client of the JSON
// API.
package cmd

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/etnz/stocksim/renderer"
	"github.com/google/subcommands"
	"github.com/sirupsen/logrus"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&serveCmd{}, "simulation")
	c.Register(&playCmd{}, "simulation")
	c.Register(&marketCmd{}, "simulation")
	c.Register(&assistCmd{}, "simulation")

	c.Register(&quoteCmd{}, "client")
	c.Register(&tradeCmd{}, "client")

	c.Register(&topicCmd{}, "help")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var jsonLogs = flag.Bool("json-logs", false, "Write logs as JSON lines instead of text.")
var logLevel = flag.String("log-level", "", "Minimum level of the logs (debug, info, warn, error). Defaults to info for serve, error otherwise.")
var style = flag.String("style", "auto", "Terminal style used to print markdown (auto, dark, light, notty, ascii...).")
var width = flag.Int("width", 100, "Terminal width used to wrap markdown.")

// newLogger returns the logger of a command, writing to stderr.
// level applies unless -log-level is set.
func newLogger(level logrus.Level) (*logrus.Logger, error) {
	return configureLogger(os.Stderr, *logLevel, level, *jsonLogs)
}

func configureLogger(w io.Writer, name string, level logrus.Level, asJSON bool) (*logrus.Logger, error) {
	log := logrus.New()
	log.SetOutput(w)
	if name != "" {
		var err error
		if level, err = logrus.ParseLevel(name); err != nil {
			return nil, err
		}
	}
	log.SetLevel(level)
	if asJSON {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return log, nil
}

// printMarkdown prints markdown to stdout with the terminal style.
func printMarkdown(md string) { fprintMarkdown(os.Stdout, md) }

// fprintMarkdown prints markdown to w, as is when it cannot be styled.
func fprintMarkdown(w io.Writer, md string) {
	out, err := renderer.Terminal(md, *style, *width)
	if err != nil {
		fmt.Fprintln(w, md)
		return
	}
	fmt.Fprint(w, strings.TrimLeft(out, "\n"))
}
