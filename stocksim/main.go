// Command stocksim runs a simulated stock market to practice trading.
package main

import (
	"context"
	"errors"
	"flag"
	"io/fs"
	"log"
	"os"
	"path"

	"github.com/etnz/stocksim/cmd"
	"github.com/google/subcommands"
	"github.com/joho/godotenv"
)

func main() {
	name := path.Base(os.Args[0])
	cmd.Complete(name)

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatalf("Error loading .env file: %v", err)
	}
	if err := cmd.LoadEnv(); err != nil {
		log.Fatal(err)
	}

	commander := subcommands.NewCommander(flag.CommandLine, name)
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	cmd.Register(commander)

	flag.Parse()

	if sub := flag.Arg(0); sub != "" {
		known := false
		commander.VisitCommands(func(_ *subcommands.CommandGroup, c subcommands.Command) {
			known = known || c.Name() == sub
		})
		if !known {
			if ok, code := cmd.RunExtension(sub, flag.Args()[1:]); ok {
				os.Exit(code)
			}
		}
	}

	os.Exit(int(commander.Execute(context.Background())))
}
