package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"
	"github.com/joho/godotenv"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"

	"github.com/etnz/ledgerboard/cmd"
)

func main() {
	completion()

	// Optional .env next to the binary's working directory; flags and the
	// real environment still win.
	godotenv.Load()

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))

	for _, c := range cmd.Commands {
		commander.Register(c, "")
	}
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}

// completion wires shell completion; it exits on its own when invoked by
// the shell's completion hook.
func completion() {
	ledgerFlag := map[string]complete.Predictor{"l": predict.Something}
	root := &complete.Command{
		Flags: map[string]complete.Predictor{
			"api-url": predict.Something,
			"timeout": predict.Something,
		},
		Sub: map[string]*complete.Command{
			"info":    {},
			"ledgers": {Flags: ledgerFlag},
			"accounts": {Flags: ledgerFlag},
			"transactions": {Flags: map[string]complete.Predictor{
				"l":   predict.Something,
				"src": predict.Something,
				"dst": predict.Something,
			}},
			"assets": {},
			"tx": {Flags: map[string]complete.Predictor{
				"l":      predict.Something,
				"src":    predict.Something,
				"dst":    predict.Something,
				"amount": predict.Something,
				"asset":  predict.Set([]string{"USD/2", "EUR/2", "JPY/0", "GBP/2", "PHP/2", "BTC/8", "ETH/18"}),
				"m":      predict.Something,
			}},
			"browse": {},
			"topic":  {Args: predict.Set([]string{"readme", "views", "browse", "tx"})},
		},
	}
	root.Complete("lbd")
}
