package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"
	"github.com/shopspring/decimal"

	"github.com/etnz/ledgerboard"
)

type txCmd struct {
	ledger      string
	source      string
	destination string
	amount      string
	asset       string
	meta        string
}

func (*txCmd) Name() string     { return "tx" }
func (*txCmd) Synopsis() string { return "submit a transaction to a ledger" }
func (*txCmd) Usage() string {
	return `lbd tx -l <ledger> -src <account> -dst <account> -amount <value> -asset <code> [-m k=v,...]

  Submits a single-posting transaction. The amount is a major-unit decimal
  value; it is scaled by the asset's declared precision (e.g. 1.50 of
  USD/2 becomes 150 minor units, 1 of JPY/0 stays 1). Common assets:
  ` + strings.Join(ledgerboard.CommonAssets, " ") + `

  Disabled unless the ` + txFormEnv + ` environment variable is "true".
`
}

func (c *txCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.ledger, "l", "", "Ledger to submit to.")
	f.StringVar(&c.source, "src", "", "Source account.")
	f.StringVar(&c.destination, "dst", "", "Destination account.")
	f.StringVar(&c.amount, "amount", "", "Amount in major units (e.g. 12.34).")
	f.StringVar(&c.asset, "asset", "", "Asset code with precision (e.g. USD/2, GOLD/3).")
	f.StringVar(&c.meta, "m", "", "Extra metadata as comma-separated k=v pairs.")
}

func (c *txCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if !TransactionFormEnabled() {
		fmt.Fprintf(os.Stderr, "Transaction creation is disabled in this environment (set %s=true to enable it).\n", txFormEnv)
		return subcommands.ExitFailure
	}
	if c.ledger == "" || c.source == "" || c.destination == "" || c.amount == "" || c.asset == "" {
		fmt.Fprintln(os.Stderr, "Error: -l, -src, -dst, -amount and -asset are all required")
		return subcommands.ExitUsageError
	}

	asset, err := ledgerboard.ParseAsset(c.asset)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	amount, err := decimal.NewFromString(c.amount)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid amount %q: %v\n", c.amount, err)
		return subcommands.ExitUsageError
	}
	minor, err := asset.MinorUnits(amount)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	metadata := map[string]string{"created_via": "lbd"}
	for pair := range strings.SplitSeq(c.meta, ",") {
		if pair = strings.TrimSpace(pair); pair == "" {
			continue
		}
		k, v, found := strings.Cut(pair, "=")
		if !found {
			fmt.Fprintf(os.Stderr, "Error: invalid metadata pair %q\n", pair)
			return subcommands.ExitUsageError
		}
		metadata[k] = v
	}

	postings := []ledgerboard.Posting{{
		Source:      c.source,
		Destination: c.destination,
		Asset:       asset.String(),
		Amount:      minor,
	}}
	if err := NewClient().CreateTransaction(ctx, c.ledger, postings, metadata); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Transaction created successfully on ledger %s: %s -> %s, %s.\n",
		c.ledger, c.source, c.destination, asset.FormatAmount(minor))
	return subcommands.ExitSuccess
}
