// Package cmd implements the CLI application browsing a remote ledger
// service.
package cmd

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"

	"github.com/etnz/ledgerboard"
)

// Commands lists the subcommands a main package registers.
var Commands = []subcommands.Command{
	&infoCmd{},
	&ledgersCmd{},
	&accountsCmd{},
	&transactionsCmd{},
	&assetsCmd{},
	&txCmd{},
	&browseCmd{},
	&topicCmd{},
}

const (
	apiURLEnv = "LEDGER_API_URL"
	txFormEnv = "SHOW_TRANSACTION_FORM"
)

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var apiURL = flag.String("api-url", "", "Base URL of the ledger API.\n If missing it will read the environment variable \""+apiURLEnv+"\", and default to "+ledgerboard.DefaultBaseURL+".")
var apiTimeout = flag.Duration("timeout", 10*time.Second, "Bound on every remote call to the ledger API.")

// NewClient builds the ledger client from the app flags and environment.
func NewClient() *ledgerboard.Client {
	url := *apiURL
	if url == "" {
		url = os.Getenv(apiURLEnv)
	}
	return ledgerboard.NewClient(url, ledgerboard.WithTimeout(*apiTimeout))
}

// TransactionFormEnabled reports whether transaction creation is allowed
// in this environment.
func TransactionFormEnabled() bool {
	return strings.ToLower(os.Getenv(txFormEnv)) == "true"
}

// printMarkdown renders markdown to the terminal, falling back to the raw
// text when styling fails (e.g. no TTY).
func printMarkdown(content string) {
	out, err := glamour.Render(content, "auto")
	if err != nil {
		fmt.Print(content)
		return
	}
	fmt.Print(out)
}
