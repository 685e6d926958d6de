package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/google/subcommands"

	"github.com/etnz/ledgerboard"
	"github.com/etnz/ledgerboard/renderer"
)

type transactionsCmd struct {
	ledger      string
	source      string
	destination string
}

func (*transactionsCmd) Name() string     { return "transactions" }
func (*transactionsCmd) Synopsis() string { return "list transactions, or show one in detail" }
func (*transactionsCmd) Usage() string {
	return `lbd transactions [-l <ledger>] [-src <account>] [-dst <account>] [<id>]

  Without an id, lists transactions: from one ledger with -l, or
  aggregated across all ledgers otherwise, optionally filtered by source
  and destination account. With an id (requires -l), shows the
  transaction's postings, graph and metadata.
`
}

func (c *transactionsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.ledger, "l", "", "Ledger to list transactions from. All ledgers by default.")
	f.StringVar(&c.source, "src", "", "Filter by source account.")
	f.StringVar(&c.destination, "dst", "", "Filter by destination account.")
}

func (c *transactionsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	client := NewClient()

	if arg := f.Arg(0); arg != "" {
		if c.ledger == "" {
			fmt.Fprintln(os.Stderr, "Error: a transaction detail needs -l <ledger>")
			return subcommands.ExitUsageError
		}
		id, err := strconv.ParseInt(arg, 10, 64)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: invalid transaction id %q\n", arg)
			return subcommands.ExitUsageError
		}
		tx, err := client.Transaction(ctx, c.ledger, id)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error fetching transaction: %v\n", err)
			return subcommands.ExitFailure
		}
		printMarkdown(renderer.TransactionDetailMarkdown(tx))
		return subcommands.ExitSuccess
	}

	filter := ledgerboard.TransactionFilter{Source: c.source, Destination: c.destination}
	txs, diags, hasMore, err := client.TransactionsAcross(ctx, c.ledger, filter)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error fetching transactions: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.TransactionsMarkdown(txs, diags, hasMore))
	return subcommands.ExitSuccess
}
