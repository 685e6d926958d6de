package renderer

import (
	"bytes"
	"fmt"

	md "github.com/nao1215/markdown"

	"github.com/etnz/ledgerboard"
)

// LedgersMarkdown renders the ledgers overview list.
func LedgersMarkdown(ledgers []ledgerboard.Ledger) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.H1("Ledgers Overview")
	if len(ledgers) == 0 {
		doc.PlainText("No ledgers found in the system.")
		return doc.String()
	}
	table := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft},
		Header:    []string{"Name"},
	}
	for _, l := range ledgers {
		table.Rows = append(table.Rows, []string{l.Name})
	}
	doc.Table(table)
	return doc.String()
}

// LedgerSummaryMarkdown renders the drill-down of one ledger: entity
// counts and migration history.
func LedgerSummaryMarkdown(r *ledgerboard.LedgerReport) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.H1(fmt.Sprintf("Summary for %s", r.Ledger))

	counts := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
		Header:    []string{"Metric", "Count"},
	}
	counts.Rows = append(counts.Rows, []string{"Total Accounts", countCell(r.AccountCount, r.MoreAccounts)})
	counts.Rows = append(counts.Rows, []string{"Total Transactions", countCell(r.TransactionCount, r.MoreTransactions)})
	doc.Table(counts)

	doc.H2("Migration History")
	if len(r.Migrations) == 0 {
		doc.PlainText("No migration history available for this ledger.")
	} else {
		table := md.TableSet{
			Alignment: []md.TableAlignment{md.AlignRight, md.AlignLeft, md.AlignLeft, md.AlignLeft, md.AlignRight},
			Header:    []string{"Version", "Migration Name", "Status", "Start Time", "Duration (s)"},
		}
		for _, m := range r.Migrations {
			table.Rows = append(table.Rows, []string{
				fmt.Sprintf("%d", m.Version),
				m.Name,
				m.State,
				m.Date.Format(timeLayout),
				fmt.Sprintf("%.2f", m.Duration().Seconds()),
			})
		}
		doc.Table(table)
	}

	diagnosticsSection(doc, r.Diags)
	return doc.String()
}

// countCell marks first-page-only counts as lower bounds.
func countCell(n int, more bool) string {
	if more {
		return fmt.Sprintf("%d+", n)
	}
	return fmt.Sprintf("%d", n)
}
