package cmd

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/subcommands"

	"github.com/etnz/ledgerboard"
	"github.com/etnz/ledgerboard/renderer"
)

type browseCmd struct{}

func (*browseCmd) Name() string     { return "browse" }
func (*browseCmd) Synopsis() string { return "interactively navigate ledgers, accounts, transactions and assets" }
func (*browseCmd) Usage() string {
	return `lbd browse

  Starts an interactive session. Available commands at the prompt:

    view <ledgers|accounts|transactions|assets>   switch the top-level view
    ledger <name>                                 scope the view to one ledger ("" for all)
    select <address|id> [ledger]                  open a row's detail view
    filter [-src <account>] [-dst <account>]      set the transaction filters
    back                                          return from detail to list
    refresh                                       drop the cached asset index
    help                                          show this list
    bye                                           leave

  Every command re-renders the current view. Type 'bye' or Ctrl+D to exit.
`
}

func (*browseCmd) SetFlags(f *flag.FlagSet) {}

func (c *browseCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	client := NewClient()
	session := ledgerboard.NewSession()

	if info := client.ServerInfo(ctx); info != nil {
		printMarkdown(renderer.ServerInfoMarkdown(info, time.Now()))
	}

	b := browser{client: client, session: session, w: os.Stdout, r: bufio.NewReader(os.Stdin)}
	if err := b.run(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

const prompt = "lbd> "

// browser is the REPL driving the navigation session. All state changes go
// through the session's transition methods; the browser only parses input
// and renders.
type browser struct {
	client  *ledgerboard.Client
	session *ledgerboard.Session
	w       io.Writer
	r       *bufio.Reader

	// asset drills into the assets view; it is widget state, not
	// navigation state, so it lives outside the session.
	asset string
}

func (b *browser) run(ctx context.Context) error {
	fmt.Fprintln(b.w, "Welcome to the ledger dashboard. Type 'help' for commands, 'bye' to exit.")
	b.render(ctx)

	for {
		fmt.Fprint(b.w, prompt)
		input, err := b.r.ReadString('\n')
		if err != nil {
			if err == io.EOF {
				return nil // Clean exit on Ctrl+D
			}
			return err
		}
		fields := strings.Fields(input)
		if len(fields) == 0 {
			continue
		}
		if fields[0] == "bye" || fields[0] == "quit" {
			return nil
		}
		if err := b.dispatch(fields[0], fields[1:]); err != nil {
			fmt.Fprintln(b.w, "error:", err)
			continue
		}
		b.render(ctx)
	}
}

// dispatch applies one prompt command to the session.
func (b *browser) dispatch(verb string, args []string) error {
	switch verb {
	case "view":
		if len(args) != 1 {
			return fmt.Errorf("usage: view <ledgers|accounts|transactions|assets>")
		}
		v, err := ledgerboard.ParseView(args[0])
		if err != nil {
			return err
		}
		b.session.SwitchView(v)
	case "ledger":
		name := ""
		if len(args) > 0 {
			name = args[0]
		}
		b.session.SetLedgerFilter(name)
	case "select":
		if len(args) == 0 {
			return fmt.Errorf("usage: select <address|id> [ledger]")
		}
		ledger := ""
		if len(args) > 1 {
			ledger = args[1]
		}
		switch b.session.View() {
		case ledgerboard.ViewAccounts:
			return b.session.SelectAccount(ledger, args[0])
		case ledgerboard.ViewTransactions:
			// Accept ids as the tables show them, zero-padded.
			id := strings.TrimLeft(args[0], "0")
			if id == "" {
				id = "0"
			}
			return b.session.SelectTransaction(ledger, id)
		case ledgerboard.ViewAssets:
			b.asset = args[0]
		default:
			return fmt.Errorf("nothing to select in the %s view", b.session.View())
		}
	case "filter":
		f := flag.NewFlagSet("filter", flag.ContinueOnError)
		src := f.String("src", "", "source account")
		dst := f.String("dst", "", "destination account")
		if err := f.Parse(args); err != nil {
			return err
		}
		b.session.ApplyTransactionFilters(*src, *dst, "")
	case "back":
		if b.session.View() == ledgerboard.ViewAssets {
			b.asset = ""
		}
		b.session.Back()
	case "refresh":
		b.session.Refresh()
	case "help":
		fmt.Fprint(b.w, new(browseCmd).Usage())
	default:
		return fmt.Errorf("unknown command %q (try 'help')", verb)
	}
	return nil
}

// render fetches what the current session state requires and prints it.
// Remote failures degrade the view, they never end the session.
func (b *browser) render(ctx context.Context) {
	s := b.session
	switch s.View() {
	case ledgerboard.ViewLedgers:
		ledgers, err := b.client.ListLedgers(ctx)
		if err != nil {
			fmt.Fprintln(b.w, "error:", err)
			return
		}
		printMarkdown(renderer.LedgersMarkdown(ledgers))
		if s.SelectedLedger() != "" {
			printMarkdown(renderer.LedgerSummaryMarkdown(ledgerboard.BuildLedgerReport(ctx, b.client, s.SelectedLedger())))
		}

	case ledgerboard.ViewAccounts:
		if s.ShowingAccountDetail() {
			if s.SelectedLedger() == "" {
				fmt.Fprintln(b.w, "error: no ledger scoped; use 'select <address> <ledger>' or 'ledger <name>'")
				s.Back()
				return
			}
			report, err := ledgerboard.BuildAccountReport(ctx, b.client, s.SelectedLedger(), s.SelectedAccount())
			if err != nil {
				fmt.Fprintln(b.w, "error:", err)
				return
			}
			printMarkdown(renderer.AccountDetailMarkdown(report))
			return
		}
		accounts, diags, hasMore, err := b.client.AccountsAcross(ctx, s.SelectedLedger())
		if err != nil {
			fmt.Fprintln(b.w, "error:", err)
			return
		}
		printMarkdown(renderer.AccountsMarkdown(accounts, diags, hasMore))

	case ledgerboard.ViewTransactions:
		if s.ShowingTransactionDetail() {
			if s.SelectedLedger() == "" {
				fmt.Fprintln(b.w, "error: no ledger scoped; use 'select <id> <ledger>' or 'ledger <name>'")
				s.Back()
				return
			}
			id, err := strconv.ParseInt(s.SelectedTransaction(), 10, 64)
			if err != nil {
				fmt.Fprintln(b.w, "error: invalid transaction id", s.SelectedTransaction())
				return
			}
			tx, err := b.client.Transaction(ctx, s.SelectedLedger(), id)
			if err != nil {
				fmt.Fprintln(b.w, "error:", err)
				return
			}
			printMarkdown(renderer.TransactionDetailMarkdown(tx))
			return
		}
		txs, diags, hasMore, err := b.client.TransactionsAcross(ctx, s.SelectedLedger(), s.Filter())
		if err != nil {
			fmt.Fprintln(b.w, "error:", err)
			return
		}
		printMarkdown(renderer.TransactionsMarkdown(txs, diags, hasMore))

	case ledgerboard.ViewAssets:
		idx, err := s.AssetIndex(ctx, b.client)
		if err != nil {
			fmt.Fprintln(b.w, "error:", err)
			return
		}
		printMarkdown(renderer.AssetsMarkdown(idx))
		if b.asset != "" {
			if detail, ok := idx.Detail(b.asset); ok {
				printMarkdown(renderer.AssetDetailMarkdown(b.asset, detail))
			} else {
				fmt.Fprintf(b.w, "asset %q not observed on any ledger\n", b.asset)
			}
		}
	}
}
