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

type accountsCmd struct {
	ledger string
}

func (*accountsCmd) Name() string     { return "accounts" }
func (*accountsCmd) Synopsis() string { return "list accounts, or show one account's detail" }
func (*accountsCmd) Usage() string {
	return `lbd accounts [-l <ledger>] [<address>]

  Without an address, lists accounts: from one ledger with -l, or
  aggregated across all ledgers otherwise. With an address (requires -l),
  shows the account's balances, volumes, activity and transactions.
`
}

func (c *accountsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.ledger, "l", "", "Ledger to list accounts from. All ledgers by default.")
}

func (c *accountsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	client := NewClient()

	if address := f.Arg(0); address != "" {
		if c.ledger == "" {
			fmt.Fprintln(os.Stderr, "Error: an account detail needs -l <ledger>")
			return subcommands.ExitUsageError
		}
		report, err := ledgerboard.BuildAccountReport(ctx, client, c.ledger, address)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error fetching account: %v\n", err)
			return subcommands.ExitFailure
		}
		printMarkdown(renderer.AccountDetailMarkdown(report))
		return subcommands.ExitSuccess
	}

	accounts, diags, hasMore, err := client.AccountsAcross(ctx, c.ledger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error fetching accounts: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.AccountsMarkdown(accounts, diags, hasMore))
	return subcommands.ExitSuccess
}
