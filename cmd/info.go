package cmd

import (
	"context"
	"flag"
	"time"

	"github.com/google/subcommands"

	"github.com/etnz/ledgerboard/renderer"
)

type infoCmd struct{}

func (*infoCmd) Name() string     { return "info" }
func (*infoCmd) Synopsis() string { return "show the ledger server version and storage driver" }
func (*infoCmd) Usage() string {
	return `lbd info

  Fetches the server metadata endpoints and shows the merged result.
  A partially unreachable server still yields the fields it could answer.
`
}

func (*infoCmd) SetFlags(f *flag.FlagSet) {}

func (c *infoCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	client := NewClient()
	info := client.ServerInfo(ctx)
	printMarkdown(renderer.ServerInfoMarkdown(info, time.Now()))
	return subcommands.ExitSuccess
}
