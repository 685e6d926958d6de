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

type assetsCmd struct{}

func (*assetsCmd) Name() string     { return "assets" }
func (*assetsCmd) Synopsis() string { return "list all assets, or detail one asset's supply and holders" }
func (*assetsCmd) Usage() string {
	return `lbd assets [<asset>]

  Scans every ledger's accounts and lists the observed assets. With an
  asset code (e.g. "USD/2"), shows its total supply across all ledgers and
  the accounts holding a non-zero balance.
`
}

func (*assetsCmd) SetFlags(f *flag.FlagSet) {}

func (c *assetsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	client := NewClient()

	idx, err := ledgerboard.BuildAssetIndex(ctx, client)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error scanning assets: %v\n", err)
		return subcommands.ExitFailure
	}

	if asset := f.Arg(0); asset != "" {
		detail, ok := idx.Detail(asset)
		if !ok {
			fmt.Fprintf(os.Stderr, "Error: asset %q not observed on any ledger\n", asset)
			return subcommands.ExitFailure
		}
		printMarkdown(renderer.AssetDetailMarkdown(asset, detail))
		return subcommands.ExitSuccess
	}

	printMarkdown(renderer.AssetsMarkdown(idx))
	return subcommands.ExitSuccess
}
