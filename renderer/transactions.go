package renderer

import (
	"bytes"
	"fmt"

	md "github.com/nao1215/markdown"

	"github.com/etnz/ledgerboard"
)

// TransactionsMarkdown renders the transactions list view, one row per
// posting.
func TransactionsMarkdown(txs []ledgerboard.Transaction, diags ledgerboard.Diagnostics, truncated bool) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.H1("Transactions")
	if len(txs) == 0 {
		doc.PlainText("No transactions found with the selected filters.")
	} else {
		doc.Table(transactionsTable(txs, ""))
		truncatedNotice(doc, truncated)
	}
	diagnosticsSection(doc, diags)
	return doc.String()
}

// TransactionDetailMarkdown renders the drill-down of one transaction:
// postings, posting graph and metadata.
func TransactionDetailMarkdown(tx *ledgerboard.Transaction) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.PlainText(fmt.Sprintf("**All ledgers > %s > Transactions > %d**", tx.Ledger, tx.ID))
	doc.H1("Transaction " + TxID(tx.ID))

	doc.H3("Postings")
	if len(tx.Postings) == 0 {
		doc.PlainText("This transaction has no postings.")
	} else {
		doc.Table(transactionsTable([]ledgerboard.Transaction{*tx}, ""))
	}

	doc.H3("Graph")
	g := ledgerboard.TransactionGraph(tx)
	if len(g.Edges()) == 0 {
		doc.PlainText("Empty graph.")
	} else {
		for _, e := range g.Edges() {
			doc.PlainText(fmt.Sprintf("%s -> %s (%s)", e.Source, e.Destination, e.Label))
		}
		if dot, err := g.DOT(); err == nil {
			doc.CodeBlocks(md.SyntaxHighlight("dot"), dot)
		}
	}

	metadataSection(doc, tx.Metadata)
	return doc.String()
}
