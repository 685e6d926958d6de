package renderer

import (
	"bytes"
	"fmt"

	md "github.com/nao1215/markdown"

	"github.com/etnz/ledgerboard"
)

// AssetsMarkdown renders the asset universe list.
func AssetsMarkdown(idx *ledgerboard.AssetIndex) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.H1("Asset Management")
	doc.H2("All Assets")
	assets := idx.Assets()
	if len(assets) == 0 {
		doc.PlainText("No assets observed on any ledger.")
	} else {
		table := md.TableSet{
			Alignment: []md.TableAlignment{md.AlignLeft},
			Header:    []string{"Asset"},
		}
		for _, a := range assets {
			table.Rows = append(table.Rows, []string{a})
		}
		doc.Table(table)
	}
	diagnosticsSection(doc, idx.Diagnostics())
	return doc.String()
}

// AssetDetailMarkdown renders one asset's total supply and holders.
func AssetDetailMarkdown(asset string, d ledgerboard.AssetDetail) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.H1("Asset Details: " + asset)
	doc.PlainText(fmt.Sprintf("Total Supply: %s", d.TotalSupply))

	doc.H3("Accounts Holding This Asset")
	if len(d.Holders) == 0 {
		doc.PlainText("No accounts currently hold this asset.")
		return doc.String()
	}
	table := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignLeft, md.AlignRight},
		Header:    []string{"Account", "Ledger", "Balance"},
	}
	for _, h := range d.Holders {
		table.Rows = append(table.Rows, []string{h.Account, h.Ledger, h.Balance.String()})
	}
	doc.Table(table)
	return doc.String()
}
