package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/etnz/ledgerboard"
	"github.com/etnz/ledgerboard/renderer"
)

type ledgersCmd struct {
	ledger string
}

func (*ledgersCmd) Name() string     { return "ledgers" }
func (*ledgersCmd) Synopsis() string { return "list ledgers, or summarize one" }
func (*ledgersCmd) Usage() string {
	return `lbd ledgers [-l <ledger>]

  Lists all ledgers known to the server. With -l, also shows the selected
  ledger's account and transaction counts and its migration history.
`
}

func (c *ledgersCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.ledger, "l", "", "Ledger to summarize.")
}

func (c *ledgersCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	client := NewClient()

	ledgers, err := client.ListLedgers(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error listing ledgers: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.LedgersMarkdown(ledgers))

	if c.ledger != "" {
		report := ledgerboard.BuildLedgerReport(ctx, client, c.ledger)
		printMarkdown(renderer.LedgerSummaryMarkdown(report))
	}
	return subcommands.ExitSuccess
}
