package renderer

import (
	"bytes"
	"fmt"
	"sort"

	md "github.com/nao1215/markdown"

	"github.com/etnz/ledgerboard"
)

// AccountsMarkdown renders the accounts list view.
func AccountsMarkdown(accounts []ledgerboard.Account, diags ledgerboard.Diagnostics, truncated bool) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.H1("Accounts")
	if len(accounts) == 0 {
		doc.PlainText("No accounts found with the selected filter.")
	} else {
		table := md.TableSet{
			Alignment: []md.TableAlignment{md.AlignLeft, md.AlignLeft, md.AlignLeft},
			Header:    []string{"Address", "Ledger", "Metadata"},
		}
		for _, a := range accounts {
			table.Rows = append(table.Rows, []string{a.Address, a.Ledger, metadataString(a.Metadata)})
		}
		doc.Table(table)
		truncatedNotice(doc, truncated)
	}
	diagnosticsSection(doc, diags)
	return doc.String()
}

// AccountDetailMarkdown renders the drill-down of one account: activity,
// balances, volumes, transactions and metadata.
func AccountDetailMarkdown(r *ledgerboard.AccountReport) string {
	a := r.Account
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.PlainText(fmt.Sprintf("**All ledgers > %s > Accounts > %s**", a.Ledger, a.Address))
	doc.H1(a.Address)

	doc.H3("Transactions Volume")
	if len(r.Activity) == 0 {
		doc.PlainText("No transaction volume data available.")
	} else {
		table := md.TableSet{
			Alignment: []md.TableAlignment{md.AlignLeft, md.AlignLeft, md.AlignRight},
			Header:    []string{"Date", "Asset", "Volume"},
		}
		for _, e := range r.Activity {
			table.Rows = append(table.Rows, []string{e.Date, e.Asset, e.Volume.String()})
		}
		doc.Table(table)
	}

	doc.H3("Balances")
	if len(a.Balances) == 0 {
		doc.PlainText("No balances.")
	} else {
		table := md.TableSet{
			Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
			Header:    []string{"Asset", "Balance"},
		}
		for _, asset := range sortedKeys(a.Balances) {
			table.Rows = append(table.Rows, []string{asset, a.Balances[asset].String()})
		}
		doc.Table(table)
	}

	doc.H3("Volumes")
	if len(a.Volumes) == 0 {
		doc.PlainText("No volumes.")
	} else {
		table := md.TableSet{
			Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight, md.AlignRight},
			Header:    []string{"Asset", "Received", "Sent"},
		}
		for _, asset := range sortedKeys(a.Volumes) {
			v := a.Volumes[asset]
			table.Rows = append(table.Rows, []string{asset, v.Input.String(), v.Output.String()})
		}
		doc.Table(table)
	}

	doc.H3("Transactions")
	if len(r.Transactions) == 0 {
		doc.PlainText("No transactions found for this account.")
	} else {
		doc.Table(transactionsTable(r.Transactions, a.Address))
		truncatedNotice(doc, r.MoreTransactions)
	}

	metadataSection(doc, a.Metadata)
	return doc.String()
}

// transactionsTable lists one row per posting. When address is non-empty,
// only postings involving it are shown.
func transactionsTable(txs []ledgerboard.Transaction, address string) md.TableSet {
	table := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignRight, md.AlignRight, md.AlignLeft, md.AlignLeft, md.AlignLeft, md.AlignLeft},
		Header:    []string{"Txid", "Value", "Source", "Destination", "Ledger", "Date"},
	}
	for _, tx := range txs {
		for _, p := range tx.Postings {
			if address != "" && p.Source != address && p.Destination != address {
				continue
			}
			table.Rows = append(table.Rows, []string{
				TxID(tx.ID),
				fmt.Sprintf("%s %s", p.Asset, p.Amount),
				p.Source,
				p.Destination,
				tx.Ledger,
				tx.Timestamp.Format(timeLayout),
			})
		}
	}
	return table
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
