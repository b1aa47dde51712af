package cmd

import (
	"github.com/etnz/stocksim"
	"github.com/etnz/stocksim/docs"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// Complete answers the shell completion requests of the stocksim command and
// exits, it does nothing when the program was not invoked by the shell to
// complete a command line.
//
// Install the completion in bash with:
//
//	COMP_INSTALL=1 stocksim
func Complete(name string) {
	complete.Complete(name, Completion())
}

// Completion describes the subcommands, their flags and arguments.
func Completion() *complete.Command {
	symbols := make(predict.Set, 0, len(stocksim.SeedStocks))
	for _, s := range stocksim.SeedStocks {
		symbols = append(symbols, s.Symbol)
	}
	topics, _ := docs.GetAllTopics()

	session := map[string]complete.Predictor{
		"seed":     predict.Something,
		"cash":     predict.Something,
		"universe": predict.Files("*.yaml"),
		"days":     predict.Something,
	}
	with := func(flags map[string]complete.Predictor) map[string]complete.Predictor {
		for k, v := range session {
			flags[k] = v
		}
		return flags
	}
	client := map[string]complete.Predictor{"server": predict.Something}

	return &complete.Command{
		Flags: map[string]complete.Predictor{
			"json-logs": predict.Nothing,
			"log-level": predict.Set{"debug", "info", "warn", "error"},
			"style":     predict.Set{"auto", "dark", "light", "notty", "ascii", "dracula", "pink"},
			"width":     predict.Something,
		},
		Sub: map[string]*complete.Command{
			"serve": {Flags: with(map[string]complete.Predictor{
				"addr":     predict.Something,
				"interval": predict.Something,
			})},
			"play": {Flags: with(map[string]complete.Predictor{
				"interval": predict.Something,
			})},
			"market": {Flags: with(map[string]complete.Predictor{
				"ticks":    predict.Something,
				"interval": predict.Something,
				"format":   predict.Set{"terminal", "markdown", "html"},
				"s":        symbols,
			})},
			"assist": {Flags: with(map[string]complete.Predictor{
				"interval": predict.Something,
			})},
			"quote": {
				Flags: map[string]complete.Predictor{"server": predict.Something, "q": predict.Something},
				Args:  symbols,
			},
			"trade": {
				Flags: client,
				Args:  append(predict.Set{"buy", "sell"}, symbols...),
			},
			"topic": {Args: predict.Set(topics)},
		},
	}
}
